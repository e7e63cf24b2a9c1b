package details

import (
	BadgeRoutes "geometriku_backend/internals/features/progress/badges/route"
	GamificationRoutes "geometriku_backend/internals/features/progress/gamification/route"
	TabProgressRoutes "geometriku_backend/internals/features/progress/tab_progress/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ✅ Untuk route publik tanpa token
// Contoh akses: /api/p/badges/catalog
func ProgressPublicRoutes(api fiber.Router, db *gorm.DB) {
	BadgeRoutes.BadgePublicRoutes(api, db)
}

// ✅ Untuk route user login (dengan token)
// Contoh akses: /api/u/tab-progress/visit
func ProgressUserRoutes(api fiber.Router, db *gorm.DB, cache *gorm.DB) {
	TabProgressRoutes.TabProgressUserRoutes(api, db, cache)
	GamificationRoutes.GamificationUserRoutes(api, db, cache)
	BadgeRoutes.BadgeUserRoutes(api, db)
}
