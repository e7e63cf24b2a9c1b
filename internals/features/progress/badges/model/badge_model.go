package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeModel adalah katalog badge statis (di-seed dari JSON).
// badge_requirement_type ∈ {xp, streak, lessons, modules}.
type BadgeModel struct {
	BadgeID               uint   `gorm:"column:badge_id;primaryKey" json:"badge_id"`
	BadgeSlug             string `gorm:"column:badge_slug;type:varchar(50);unique;not null" json:"badge_slug"`
	BadgeName             string `gorm:"column:badge_name;type:varchar(100);not null" json:"badge_name"`
	BadgeDescription      string `gorm:"column:badge_description;type:text" json:"badge_description"`
	BadgeIconURL          string `gorm:"column:badge_icon_url;type:varchar(255)" json:"badge_icon_url"`
	BadgeRequirementType  string `gorm:"column:badge_requirement_type;type:varchar(20);not null" json:"badge_requirement_type"`
	BadgeRequirementValue int    `gorm:"column:badge_requirement_value;not null" json:"badge_requirement_value"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BadgeModel) TableName() string {
	return "badges"
}

// UserBadgeModel: badge yang sudah diraih user. Semantik himpunan —
// unik per (user, badge), tidak pernah dicabut walau metriknya turun lagi.
type UserBadgeModel struct {
	UserBadgeID       uint      `gorm:"column:user_badge_id;primaryKey" json:"user_badge_id"`
	UserBadgeUserID   uuid.UUID `gorm:"column:user_badge_user_id;type:uuid;not null;uniqueIndex:idx_user_badge_user_badge" json:"user_badge_user_id"`
	UserBadgeBadgeID  uint      `gorm:"column:user_badge_badge_id;not null;uniqueIndex:idx_user_badge_user_badge" json:"user_badge_badge_id"`
	UserBadgeEarnedAt time.Time `gorm:"column:user_badge_earned_at;not null" json:"user_badge_earned_at"`

	Badge BadgeModel `gorm:"foreignKey:UserBadgeBadgeID;references:BadgeID" json:"badge,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserBadgeModel) TableName() string {
	return "user_badges"
}
