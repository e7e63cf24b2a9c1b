package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"geometriku_backend/internals/features/progress/badges/model"
	gamificationService "geometriku_backend/internals/features/progress/gamification/service"
	tabModel "geometriku_backend/internals/features/progress/tab_progress/model"
	"geometriku_backend/internals/testutil"
)

func seedBadge(t *testing.T, db *gorm.DB, slug, reqType string, reqValue int) model.BadgeModel {
	t.Helper()
	badge := model.BadgeModel{
		BadgeSlug:             slug,
		BadgeName:             slug,
		BadgeRequirementType:  reqType,
		BadgeRequirementValue: reqValue,
	}
	if err := db.Create(&badge).Error; err != nil {
		t.Fatalf("seed badge %s: %v", slug, err)
	}
	return badge
}

func TestEvaluateBadgesGrantsXpBadgeOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()
	seedBadge(t, db, "xp-100", "xp", 100)

	// Belum cukup XP → tidak ada badge.
	if _, err := gamificationService.AwardXp(db, nil, userID, 50); err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}
	granted, err := EvaluateBadges(db, userID)
	if err != nil {
		t.Fatalf("EvaluateBadges error: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("granted=%d, want 0", len(granted))
	}

	// Lewati ambang → badge diberikan.
	if _, err := gamificationService.AwardXp(db, nil, userID, 60); err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}
	granted, err = EvaluateBadges(db, userID)
	if err != nil {
		t.Fatalf("EvaluateBadges error: %v", err)
	}
	if len(granted) != 1 || granted[0].BadgeSlug != "xp-100" {
		t.Fatalf("granted=%+v, want [xp-100]", granted)
	}

	// Evaluasi ulang → tidak dobel.
	granted, err = EvaluateBadges(db, userID)
	if err != nil {
		t.Fatalf("EvaluateBadges error: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("badge diberikan dua kali: %+v", granted)
	}
}

func TestStreakBadgeSurvivesStreakReset(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()
	seedBadge(t, db, "streak-3", "streak", 3)

	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := gamificationService.UpdateStreakAt(db, nil, userID, day.AddDate(0, 0, i)); err != nil {
			t.Fatalf("UpdateStreakAt error: %v", err)
		}
	}
	granted, err := EvaluateBadges(db, userID)
	if err != nil {
		t.Fatalf("EvaluateBadges error: %v", err)
	}
	if len(granted) != 1 {
		t.Fatalf("granted=%d, want 1", len(granted))
	}

	// Streak putus (bolong seminggu) → badge tetap dimiliki.
	if _, err := gamificationService.UpdateStreakAt(db, nil, userID, day.AddDate(0, 0, 10)); err != nil {
		t.Fatalf("UpdateStreakAt error: %v", err)
	}
	earned, err := ListEarned(db, userID)
	if err != nil {
		t.Fatalf("ListEarned error: %v", err)
	}
	if len(earned) != 1 || earned[0].Badge.BadgeSlug != "streak-3" {
		t.Fatalf("earned=%+v, badge harus tetap ada setelah streak putus", earned)
	}
}

func TestEvaluateBadgesSkipsUnknownRequirementType(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()
	seedBadge(t, db, "aneh", "planets_visited", 1)
	seedBadge(t, db, "xp-10", "xp", 10)

	if _, err := gamificationService.AwardXp(db, nil, userID, 20); err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}

	granted, err := EvaluateBadges(db, userID)
	if err != nil {
		t.Fatalf("definisi rusak tidak boleh menggagalkan evaluasi: %v", err)
	}
	if len(granted) != 1 || granted[0].BadgeSlug != "xp-10" {
		t.Fatalf("granted=%+v, want hanya [xp-10]", granted)
	}
}

func TestModuleAndLessonBadges(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()
	seedBadge(t, db, "modul-pertama", "modules", 1)
	seedBadge(t, db, "tuntas-pertama", "lessons", 1)

	// Satu modul baru dimulai: dapat "modules", belum "lessons".
	now := time.Now()
	row := tabModel.ModuleTabProgressModel{
		ModuleTabProgressUserID:        userID,
		ModuleTabProgressModuleID:      "tabung",
		ModuleTabProgressStatus:        tabModel.TabProgressStatusInProgress,
		ModuleTabProgressLastVisitedAt: now,
	}
	row.SetVisitedTabs([]int{0, 1})
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed progres: %v", err)
	}

	granted, err := EvaluateBadges(db, userID)
	if err != nil {
		t.Fatalf("EvaluateBadges error: %v", err)
	}
	if len(granted) != 1 || granted[0].BadgeSlug != "modul-pertama" {
		t.Fatalf("granted=%+v, want [modul-pertama]", granted)
	}

	// Modul tuntas → "lessons" menyusul.
	row.SetVisitedTabs([]int{0, 1, 2, 3, 4})
	row.ModuleTabProgressStatus = tabModel.TabProgressStatusCompleted
	row.ModuleTabProgressCompletedAt = &now
	if err := db.Save(&row).Error; err != nil {
		t.Fatalf("update progres: %v", err)
	}

	granted, err = EvaluateBadges(db, userID)
	if err != nil {
		t.Fatalf("EvaluateBadges error: %v", err)
	}
	if len(granted) != 1 || granted[0].BadgeSlug != "tuntas-pertama" {
		t.Fatalf("granted=%+v, want [tuntas-pertama]", granted)
	}
}
