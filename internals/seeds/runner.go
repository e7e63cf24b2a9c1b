package seeds

import (
	badges "geometriku_backend/internals/seeds/badges"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {

	//* Progress
	badges.SeedBadgesFromJSON(db, "internals/seeds/badges/data_badges.json")
}
