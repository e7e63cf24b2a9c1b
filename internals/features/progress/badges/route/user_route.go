package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	badgeController "geometriku_backend/internals/features/progress/badges/controller"
)

func BadgeUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := badgeController.NewBadgeController(db)
	r := router.Group("/badges")

	r.Get("/", ctrl.ListEarned)
	r.Get("/catalog", ctrl.Catalog)
}

func BadgePublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := badgeController.NewBadgeController(db)
	r := router.Group("/badges")

	r.Get("/catalog", ctrl.Catalog)
}
