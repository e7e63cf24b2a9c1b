package details

import (
	"geometriku_backend/internals/features/lkpd/autosave"
	LkpdRoutes "geometriku_backend/internals/features/lkpd/project/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ✅ Untuk route user login (dengan token)
// Contoh akses: /api/u/lkpd
func LkpdUserRoutes(api fiber.Router, db *gorm.DB, cache *gorm.DB, rec *autosave.Reconciler) {
	LkpdRoutes.LkpdUserRoutes(api, db, cache, rec)
}
