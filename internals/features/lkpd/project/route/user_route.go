package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"geometriku_backend/internals/features/lkpd/autosave"
	lkpdController "geometriku_backend/internals/features/lkpd/project/controller"
	"geometriku_backend/internals/middlewares"
)

func LkpdUserRoutes(router fiber.Router, db *gorm.DB, cache *gorm.DB, rec *autosave.Reconciler) {
	ctrl := lkpdController.NewLkpdController(db, cache, rec)
	r := router.Group("/lkpd")

	r.Post("/", ctrl.Create)
	r.Get("/", ctrl.List)
	r.Get("/:id", ctrl.Get)
	r.Get("/:id/can-enter/:stage", ctrl.CanEnter)
	r.Patch("/:id/stage/:n", ctrl.SaveDraft)
	r.Post("/:id/stage/:n/advance", ctrl.Advance)
	r.Post("/:id/submit", ctrl.Submit)
	r.Post("/:id/stage/:n/artifact", middlewares.UploadRateLimiter(), ctrl.UploadArtifact)
}
