package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"geometriku_backend/internals/constants"
	"geometriku_backend/internals/features/progress/badges/model"
	gamificationService "geometriku_backend/internals/features/progress/gamification/service"
	tabModel "geometriku_backend/internals/features/progress/tab_progress/model"
)

// EvaluateBadges memindai katalog badge terhadap agregat user saat ini dan
// memberikan badge yang baru memenuhi syarat, tepat satu kali per badge.
// Badge tidak pernah dicabut walau metriknya turun lagi (mis. streak putus).
// Definisi badge yang rusak dilewati diam-diam — hanya dicatat di log.
func EvaluateBadges(db *gorm.DB, userID uuid.UUID) ([]model.BadgeModel, error) {
	var catalog []model.BadgeModel
	if err := db.Find(&catalog).Error; err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, nil
	}

	var earned []model.UserBadgeModel
	if err := db.Where("user_badge_user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, err
	}
	earnedSet := make(map[uint]bool, len(earned))
	for _, ub := range earned {
		earnedSet[ub.UserBadgeBadgeID] = true
	}

	state, err := gamificationService.GetOrInitState(db, userID)
	if err != nil {
		return nil, err
	}

	lessons, modules, err := progressCounts(db, userID)
	if err != nil {
		return nil, err
	}

	var granted []model.BadgeModel
	now := time.Now()
	for _, badge := range catalog {
		if earnedSet[badge.BadgeID] {
			continue
		}

		var metric int
		switch badge.BadgeRequirementType {
		case constants.BadgeRequirementXP:
			metric = state.UserGamificationTotalXP
		case constants.BadgeRequirementStreak:
			metric = state.UserGamificationCurrentStreakDays
		case constants.BadgeRequirementLessons:
			metric = lessons
		case constants.BadgeRequirementModules:
			metric = modules
		default:
			log.Printf("[WARN] Badge %q punya requirement_type tidak dikenal (%q), dilewati",
				badge.BadgeSlug, badge.BadgeRequirementType)
			continue
		}

		if metric < badge.BadgeRequirementValue {
			continue
		}

		ub := model.UserBadgeModel{
			UserBadgeUserID:   userID,
			UserBadgeBadgeID:  badge.BadgeID,
			UserBadgeEarnedAt: now,
		}
		if err := db.Create(&ub).Error; err != nil {
			// Kemungkinan race dengan evaluasi lain — unique index yang jaga.
			log.Printf("[WARN] Gagal mencatat badge %q: %v", badge.BadgeSlug, err)
			continue
		}
		log.Printf("[BADGE] User %s meraih badge %q", userID.String(), badge.BadgeSlug)
		granted = append(granted, badge)
	}

	return granted, nil
}

// ListEarned mengembalikan badge milik user beserta data katalognya.
func ListEarned(db *gorm.DB, userID uuid.UUID) ([]model.UserBadgeModel, error) {
	var earned []model.UserBadgeModel
	err := db.Preload("Badge").
		Where("user_badge_user_id = ?", userID).
		Order("user_badge_earned_at ASC").
		Find(&earned).Error
	return earned, err
}

// progressCounts: "lessons" = modul yang tuntas 100%, "modules" = modul
// berbeda yang pernah dikunjungi.
func progressCounts(db *gorm.DB, userID uuid.UUID) (lessons int, modules int, err error) {
	var completed int64
	if err = db.Model(&tabModel.ModuleTabProgressModel{}).
		Where("module_tab_progress_user_id = ? AND module_tab_progress_status = ?",
			userID, tabModel.TabProgressStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}

	var visited int64
	if err = db.Model(&tabModel.ModuleTabProgressModel{}).
		Where("module_tab_progress_user_id = ?", userID).
		Count(&visited).Error; err != nil {
		return 0, 0, err
	}

	return int(completed), int(visited), nil
}
