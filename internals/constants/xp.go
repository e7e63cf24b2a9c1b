package constants

// =======================
// KEBIJAKAN XP & LEVEL
// =======================

const (
	// XP per kunjungan tab baru (kunjungan ulang = 0).
	XPPerTabVisit = 10

	// Bonus sekali saat kelima tab sebuah modul lengkap.
	XPModuleCompleteBonus = 50

	// XP per penyelesaian tahap LKPD (sekali per tahap).
	XPPerLkpdStage = 25

	// Bonus saat LKPD dikumpulkan (sekali per proyek).
	XPLkpdSubmit = 100

	// Lebar satu level: level = totalXP/XPPerLevel + 1.
	XPPerLevel = 500
)

// LevelForXP menghitung level dari total XP.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// =======================
// TIPE SYARAT BADGE
// =======================

const (
	BadgeRequirementXP      = "xp"
	BadgeRequirementStreak  = "streak"
	BadgeRequirementLessons = "lessons"
	BadgeRequirementModules = "modules"
)
