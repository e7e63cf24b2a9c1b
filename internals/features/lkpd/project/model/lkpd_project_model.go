package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"geometriku_backend/internals/constants"
)

// Jumlah tahapan LKPD (siklus engineering design process).
const TotalStages = 6

// Nama tahapan, indeks 1..6.
var StageNames = [TotalStages + 1]string{
	"", // tidak dipakai
	"Define",
	"Imagine",
	"Plan & Design",
	"Build",
	"Test",
	"Reflect",
}

// LkpdProjectModel adalah dokumen proyek terbimbing enam tahap.
// Invariant yang dijaga service:
//   - tahap N hanya bisa complete jika tahap N-1 sudah complete
//   - current_stage = tahap incomplete terkecil, di-clamp ke 6
//   - setelah submit (is_completed) seluruh dokumen beku
type LkpdProjectModel struct {
	LkpdProjectID     uuid.UUID `gorm:"column:lkpd_project_id;type:uuid;primaryKey" json:"lkpd_project_id"`
	LkpdProjectUserID uuid.UUID `gorm:"column:lkpd_project_user_id;type:uuid;not null;index" json:"lkpd_project_user_id"`

	LkpdProjectTitle string                 `gorm:"column:lkpd_project_title;type:varchar(120);not null" json:"lkpd_project_title"`
	LkpdProjectType  constants.GeometryKind `gorm:"column:lkpd_project_type;type:varchar(20);not null" json:"lkpd_project_type"`

	LkpdProjectCurrentStage int  `gorm:"column:lkpd_project_current_stage;not null;default:1" json:"lkpd_project_current_stage"`
	LkpdProjectIsCompleted  bool `gorm:"column:lkpd_project_is_completed;not null;default:false" json:"lkpd_project_is_completed"`

	LkpdProjectStage1 datatypes.JSON `gorm:"column:lkpd_project_stage1" json:"lkpd_project_stage1,omitempty"`
	LkpdProjectStage2 datatypes.JSON `gorm:"column:lkpd_project_stage2" json:"lkpd_project_stage2,omitempty"`
	LkpdProjectStage3 datatypes.JSON `gorm:"column:lkpd_project_stage3" json:"lkpd_project_stage3,omitempty"`
	LkpdProjectStage4 datatypes.JSON `gorm:"column:lkpd_project_stage4" json:"lkpd_project_stage4,omitempty"`
	LkpdProjectStage5 datatypes.JSON `gorm:"column:lkpd_project_stage5" json:"lkpd_project_stage5,omitempty"`
	LkpdProjectStage6 datatypes.JSON `gorm:"column:lkpd_project_stage6" json:"lkpd_project_stage6,omitempty"`

	LkpdProjectStartedAt    time.Time  `gorm:"column:lkpd_project_started_at;not null" json:"lkpd_project_started_at"`
	LkpdProjectSubmittedAt  *time.Time `gorm:"column:lkpd_project_submitted_at" json:"lkpd_project_submitted_at,omitempty"`
	LkpdProjectLastAutoSave *time.Time `gorm:"column:lkpd_project_last_auto_save" json:"lkpd_project_last_auto_save,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LkpdProjectModel) TableName() string {
	return "lkpd_projects"
}

func (m *LkpdProjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.LkpdProjectID == uuid.Nil {
		m.LkpdProjectID = uuid.New()
	}
	if m.LkpdProjectCurrentStage == 0 {
		m.LkpdProjectCurrentStage = 1
	}
	if m.LkpdProjectStartedAt.IsZero() {
		m.LkpdProjectStartedAt = time.Now()
	}
	return nil
}

// StageColumn memetakan nomor tahap ke nama kolomnya.
func StageColumn(n int) string {
	switch n {
	case 1:
		return "lkpd_project_stage1"
	case 2:
		return "lkpd_project_stage2"
	case 3:
		return "lkpd_project_stage3"
	case 4:
		return "lkpd_project_stage4"
	case 5:
		return "lkpd_project_stage5"
	case 6:
		return "lkpd_project_stage6"
	}
	return ""
}

// StageRaw mengambil payload mentah tahap n (nil jika belum pernah diisi).
func (m *LkpdProjectModel) StageRaw(n int) datatypes.JSON {
	switch n {
	case 1:
		return m.LkpdProjectStage1
	case 2:
		return m.LkpdProjectStage2
	case 3:
		return m.LkpdProjectStage3
	case 4:
		return m.LkpdProjectStage4
	case 5:
		return m.LkpdProjectStage5
	case 6:
		return m.LkpdProjectStage6
	}
	return nil
}

// SetStageRaw menulis payload mentah tahap n.
func (m *LkpdProjectModel) SetStageRaw(n int, raw datatypes.JSON) {
	switch n {
	case 1:
		m.LkpdProjectStage1 = raw
	case 2:
		m.LkpdProjectStage2 = raw
	case 3:
		m.LkpdProjectStage3 = raw
	case 4:
		m.LkpdProjectStage4 = raw
	case 5:
		m.LkpdProjectStage5 = raw
	case 6:
		m.LkpdProjectStage6 = raw
	}
}

// stageMeta hanya membaca completed_at tanpa peduli bentuk payload tahapnya.
type stageMeta struct {
	CompletedAt *time.Time `json:"completed_at"`
}

// StageCompletedAt membaca stempel selesai tahap n (nil = belum selesai).
func (m *LkpdProjectModel) StageCompletedAt(n int) *time.Time {
	raw := m.StageRaw(n)
	if len(raw) == 0 {
		return nil
	}
	var meta stageMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil
	}
	return meta.CompletedAt
}

// IsStageCompleted: tahap n sudah distempel selesai.
func (m *LkpdProjectModel) IsStageCompleted(n int) bool {
	return m.StageCompletedAt(n) != nil
}

// RecomputeCurrentStage: tahap incomplete terkecil, clamp ke 6.
func (m *LkpdProjectModel) RecomputeCurrentStage() {
	for n := 1; n <= TotalStages; n++ {
		if !m.IsStageCompleted(n) {
			m.LkpdProjectCurrentStage = n
			return
		}
	}
	m.LkpdProjectCurrentStage = TotalStages
}
