package controllers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"geometriku_backend/internals/features/progress/tab_progress/dto"
	"geometriku_backend/internals/features/progress/tab_progress/service"
	helper "geometriku_backend/internals/helpers"
)

type TabProgressController struct {
	DB       *gorm.DB
	Cache    *gorm.DB
	Validate *validator.Validate
}

func NewTabProgressController(db *gorm.DB, cache *gorm.DB) *TabProgressController {
	return &TabProgressController{
		DB:       db,
		Cache:    cache,
		Validate: validator.New(),
	}
}

// 🟡 POST /api/u/tab-progress/visit
// Mencatat kunjungan satu tab modul. Kunjungan ulang idempoten (tanpa XP).
func (ctrl *TabProgressController) RecordVisit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RecordTabVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	rec, isNew, err := service.RecordTabVisit(ctrl.DB, ctrl.Cache, userID, req.ModuleID, *req.TabIndex)
	switch {
	case errors.Is(err, service.ErrInvalidModuleID), errors.Is(err, service.ErrInvalidTabIndex):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		log.Println("[ERROR] Gagal mencatat kunjungan tab:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mencatat kunjungan tab")
	}

	return helper.Success(c, "Kunjungan tab tercatat", dto.RecordTabVisitResponse{
		Progress:   dto.ToTabProgressResponse(rec),
		IsNewVisit: isNew,
	})
}

// 🟢 GET /api/u/tab-progress
// Pandangan gabungan (cache ∪ remote) progres seluruh modul.
func (ctrl *TabProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rows, err := service.GetProgress(ctrl.DB, ctrl.Cache, userID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil progres tab:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil progres")
	}

	return helper.Success(c, "Progres modul", dto.ToTabProgressResponses(rows))
}

// 🟡 POST /api/u/tab-progress/sync
// Rekonsiliasi dua tier: merge lalu tulis balik ke keduanya.
func (ctrl *TabProgressController) Sync(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	merged, err := service.SyncProgress(ctrl.DB, ctrl.Cache, userID)
	if err != nil {
		log.Println("[ERROR] Gagal sinkronisasi progres:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal sinkronisasi progres")
	}

	return helper.Success(c, "Progres tersinkron", dto.ToTabProgressResponses(merged))
}
