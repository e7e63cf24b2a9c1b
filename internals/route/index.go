// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"geometriku_backend/internals/features/lkpd/autosave"
	authMiddleware "geometriku_backend/internals/middlewares/auth"
	routeDetails "geometriku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cache *gorm.DB, rec *autosave.Reconciler) {
	startTime = time.Now()

	// ===================== GROUPS =====================

	// PUBLIC → tanpa token
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/p")

	// PRIVATE (USER) → wajib JWT
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Progress routes...")
	routeDetails.ProgressPublicRoutes(public, db)
	routeDetails.ProgressUserRoutes(private, db, cache)

	log.Println("[INFO] Mounting LKPD routes...")
	routeDetails.LkpdUserRoutes(private, db, cache, rec)
}
