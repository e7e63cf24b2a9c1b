package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	lkpdModel "geometriku_backend/internals/features/lkpd/project/model"
	badgeModel "geometriku_backend/internals/features/progress/badges/model"
	gamifModel "geometriku_backend/internals/features/progress/gamification/model"
	tabModel "geometriku_backend/internals/features/progress/tab_progress/model"
)

// OpenTestDB membuka SQLite in-memory dan migrasi semua tabel engine.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&tabModel.ModuleTabProgressModel{},
		&gamifModel.UserGamificationModel{},
		&badgeModel.BadgeModel{},
		&badgeModel.UserBadgeModel{},
		&lkpdModel.LkpdProjectModel{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}
