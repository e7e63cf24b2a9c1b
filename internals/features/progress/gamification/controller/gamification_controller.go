package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"geometriku_backend/internals/features/progress/gamification/service"
	helper "geometriku_backend/internals/helpers"
)

type GamificationController struct {
	DB    *gorm.DB
	Cache *gorm.DB
}

func NewGamificationController(db *gorm.DB, cache *gorm.DB) *GamificationController {
	return &GamificationController{DB: db, Cache: cache}
}

// 🟢 GET /api/u/gamification
// Ledger XP/level/streak milik user; dibuat lazy kalau belum ada.
func (ctrl *GamificationController) GetState(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	state, err := service.GetOrInitState(ctrl.DB, userID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil ledger gamifikasi:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data gamifikasi")
	}

	return helper.Success(c, "Data gamifikasi", state)
}
