package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gamificationController "geometriku_backend/internals/features/progress/gamification/controller"
)

func GamificationUserRoutes(router fiber.Router, db *gorm.DB, cache *gorm.DB) {
	ctrl := gamificationController.NewGamificationController(db, cache)
	r := router.Group("/gamification")

	r.Get("/", ctrl.GetState)
}
