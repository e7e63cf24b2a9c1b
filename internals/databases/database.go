package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"geometriku_backend/internals/configs"
	badgeModel "geometriku_backend/internals/features/progress/badges/model"
	gamificationModel "geometriku_backend/internals/features/progress/gamification/model"
	tabModel "geometriku_backend/internals/features/progress/tab_progress/model"
	lkpdModel "geometriku_backend/internals/features/lkpd/project/model"
)

// DB adalah store remote (Postgres) — sumber kebenaran antar-sesi.
// Cache adalah tier lokal (SQLite, pure-Go) — selalu bisa ditulis walau remote down,
// direkonsiliasi lewat kebijakan merge di tab_progress.
var (
	DB    *gorm.DB
	Cache *gorm.DB
)

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=geometriku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

// ConnectLocalCache membuka tier cache SQLite. Gagal di sini tidak fatal:
// engine jatuh ke mode remote-only.
func ConnectLocalCache() {
	path := getenv("LOCAL_CACHE_PATH", "data/localcache.db")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("[WARN] Gagal membuat direktori cache: %v", err)
		return
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Printf("[WARN] Gagal membuka cache lokal, lanjut remote-only: %v", err)
		return
	}
	Cache = db
	log.Println("✅ Local cache (SQLite) siap.")
}

// Migrate menyiapkan tabel engine di kedua tier.
func Migrate() {
	models := []interface{}{
		&tabModel.ModuleTabProgressModel{},
		&gamificationModel.UserGamificationModel{},
		&badgeModel.BadgeModel{},
		&badgeModel.UserBadgeModel{},
		&lkpdModel.LkpdProjectModel{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		log.Fatalf("❌ Gagal migrasi DB: %v", err)
	}
	if Cache != nil {
		if err := Cache.AutoMigrate(models...); err != nil {
			log.Printf("[WARN] Gagal migrasi cache lokal: %v", err)
			Cache = nil
		}
	}
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
