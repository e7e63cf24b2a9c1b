package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"geometriku_backend/internals/features/progress/badges/model"
	"geometriku_backend/internals/features/progress/badges/service"
	helper "geometriku_backend/internals/helpers"
)

type BadgeController struct {
	DB *gorm.DB
}

func NewBadgeController(db *gorm.DB) *BadgeController {
	return &BadgeController{DB: db}
}

// 🟢 GET /api/u/badges
// Badge yang sudah diraih user (beserta data katalognya).
func (ctrl *BadgeController) ListEarned(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	earned, err := service.ListEarned(ctrl.DB, userID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil badge user:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil badge")
	}

	return helper.Success(c, "Badge user", earned)
}

// 🟢 GET /api/p/badges/catalog
// Katalog badge statis (publik, untuk layar pencapaian).
func (ctrl *BadgeController) Catalog(c *fiber.Ctx) error {
	var catalog []model.BadgeModel
	if err := ctrl.DB.Order("badge_requirement_type, badge_requirement_value").Find(&catalog).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil katalog badge:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil katalog badge")
	}

	return helper.Success(c, "Katalog badge", catalog)
}
