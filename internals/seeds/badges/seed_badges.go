package badges

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"geometriku_backend/internals/features/progress/badges/model"
)

type BadgeSeed struct {
	BadgeSlug             string `json:"badge_slug"`
	BadgeName             string `json:"badge_name"`
	BadgeDescription      string `json:"badge_description"`
	BadgeIconURL          string `json:"badge_icon_url"`
	BadgeRequirementType  string `json:"badge_requirement_type"`
	BadgeRequirementValue int    `json:"badge_requirement_value"`
}

func SeedBadgesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal baca file JSON: %v", err)
	}

	var data []BadgeSeed
	if err := json.Unmarshal(content, &data); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, item := range data {
		var existing model.BadgeModel
		if err := db.Where("badge_slug = ?", item.BadgeSlug).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Badge '%s' sudah ada, lewati...", item.BadgeSlug)
			continue
		}

		record := model.BadgeModel{
			BadgeSlug:             item.BadgeSlug,
			BadgeName:             item.BadgeName,
			BadgeDescription:      item.BadgeDescription,
			BadgeIconURL:          item.BadgeIconURL,
			BadgeRequirementType:  item.BadgeRequirementType,
			BadgeRequirementValue: item.BadgeRequirementValue,
		}

		if err := db.Create(&record).Error; err != nil {
			log.Printf("❌ Gagal insert badge '%s': %v", item.BadgeSlug, err)
		} else {
			log.Printf("✅ Berhasil insert badge '%s'", item.BadgeSlug)
		}
	}
}
