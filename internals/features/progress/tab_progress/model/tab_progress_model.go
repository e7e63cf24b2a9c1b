package model

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"geometriku_backend/internals/constants"
)

// Status mengikuti kontrak progress record di remote store.
type TabProgressStatus string

const (
	TabProgressStatusInProgress TabProgressStatus = "in_progress"
	TabProgressStatusCompleted  TabProgressStatus = "completed"
)

// ModuleTabProgressModel menyimpan IDENTITAS tab yang sudah dikunjungi
// (himpunan indeks 0..4), bukan persentase turunannya. Persentase selalu
// dihitung ulang dari himpunan ini.
type ModuleTabProgressModel struct {
	ModuleTabProgressID       uint      `gorm:"column:module_tab_progress_id;primaryKey" json:"module_tab_progress_id"`
	ModuleTabProgressUserID   uuid.UUID `gorm:"column:module_tab_progress_user_id;type:uuid;not null;uniqueIndex:idx_tab_progress_user_module" json:"module_tab_progress_user_id"`
	ModuleTabProgressModuleID string    `gorm:"column:module_tab_progress_module_id;type:varchar(50);not null;uniqueIndex:idx_tab_progress_user_module" json:"module_tab_progress_module_id"`

	ModuleTabProgressVisitedTabs datatypes.JSON `gorm:"column:module_tab_progress_visited_tabs;not null" json:"module_tab_progress_visited_tabs"`

	ModuleTabProgressStatus        TabProgressStatus `gorm:"column:module_tab_progress_status;type:varchar(20);not null;default:'in_progress'" json:"module_tab_progress_status"`
	ModuleTabProgressLastVisitedAt time.Time         `gorm:"column:module_tab_progress_last_visited_at;not null" json:"module_tab_progress_last_visited_at"`
	ModuleTabProgressCompletedAt   *time.Time        `gorm:"column:module_tab_progress_completed_at" json:"module_tab_progress_completed_at,omitempty"`

	// false = tulisan remote terakhir gagal, baris ini belum tersinkron.
	ModuleTabProgressIsSynced bool `gorm:"column:module_tab_progress_is_synced;not null;default:true" json:"module_tab_progress_is_synced"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ModuleTabProgressModel) TableName() string {
	return "module_tab_progress"
}

// VisitedTabs mendekode himpunan indeks tab; hasil selalu terurut naik dan
// sudah difilter ke rentang 0..4.
func (m *ModuleTabProgressModel) VisitedTabs() []int {
	var raw []int
	if len(m.ModuleTabProgressVisitedTabs) > 0 {
		_ = json.Unmarshal(m.ModuleTabProgressVisitedTabs, &raw)
	}
	seen := map[int]bool{}
	out := make([]int, 0, constants.TotalTabsPerModule)
	for _, idx := range raw {
		if constants.IsValidTabIndex(idx) && !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// SetVisitedTabs menulis himpunan indeks (dedup + sort) ke kolom JSON.
func (m *ModuleTabProgressModel) SetVisitedTabs(tabs []int) {
	seen := map[int]bool{}
	out := make([]int, 0, constants.TotalTabsPerModule)
	for _, idx := range tabs {
		if constants.IsValidTabIndex(idx) && !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	raw, _ := json.Marshal(out)
	m.ModuleTabProgressVisitedTabs = datatypes.JSON(raw)
}

// HasVisited cek keanggotaan satu indeks tab.
func (m *ModuleTabProgressModel) HasVisited(tabIndex int) bool {
	for _, idx := range m.VisitedTabs() {
		if idx == tabIndex {
			return true
		}
	}
	return false
}

// CompletionPercentage = |visited| / 5 × 100. Selalu kelipatan 20.
func (m *ModuleTabProgressModel) CompletionPercentage() int {
	n := len(m.VisitedTabs())
	return int(math.Round(float64(n) / float64(constants.TotalTabsPerModule) * 100))
}

// IsComplete: kelima tab sudah dikunjungi.
func (m *ModuleTabProgressModel) IsComplete() bool {
	return len(m.VisitedTabs()) == constants.TotalTabsPerModule
}
