package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tabController "geometriku_backend/internals/features/progress/tab_progress/controller"
)

func TabProgressUserRoutes(router fiber.Router, db *gorm.DB, cache *gorm.DB) {
	ctrl := tabController.NewTabProgressController(db, cache)
	r := router.Group("/tab-progress")

	r.Post("/visit", ctrl.RecordVisit)
	r.Post("/sync", ctrl.Sync)
	r.Get("/", ctrl.GetProgress)
}
