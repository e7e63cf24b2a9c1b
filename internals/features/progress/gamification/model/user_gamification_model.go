package model

import (
	"time"

	"github.com/google/uuid"

	"geometriku_backend/internals/constants"
)

// UserGamificationModel adalah ledger XP/level/streak per user.
// Invariant yang dijaga service:
//   - total XP tidak pernah turun
//   - level selalu = totalXP/500 + 1
//   - current streak ≤ longest streak
type UserGamificationModel struct {
	UserGamificationID     uint      `gorm:"column:user_gamification_id;primaryKey" json:"user_gamification_id"`
	UserGamificationUserID uuid.UUID `gorm:"column:user_gamification_user_id;type:uuid;not null;unique" json:"user_gamification_user_id"`

	UserGamificationTotalXP int `gorm:"column:user_gamification_total_xp;not null;default:0" json:"user_gamification_total_xp"`
	UserGamificationLevel   int `gorm:"column:user_gamification_level;not null;default:1" json:"user_gamification_level"`

	UserGamificationCurrentStreakDays int        `gorm:"column:user_gamification_current_streak_days;not null;default:0" json:"user_gamification_current_streak_days"`
	UserGamificationLongestStreakDays int        `gorm:"column:user_gamification_longest_streak_days;not null;default:0" json:"user_gamification_longest_streak_days"`
	UserGamificationLastActivityDate  *time.Time `gorm:"column:user_gamification_last_activity_date;type:date" json:"user_gamification_last_activity_date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserGamificationModel) TableName() string {
	return "user_gamifications"
}

// RecomputeLevel menurunkan level dari total XP.
func (m *UserGamificationModel) RecomputeLevel() {
	m.UserGamificationLevel = constants.LevelForXP(m.UserGamificationTotalXP)
}
