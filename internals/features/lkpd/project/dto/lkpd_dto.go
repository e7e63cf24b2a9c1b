package dto

import (
	"time"

	"geometriku_backend/internals/features/lkpd/project/model"
	"geometriku_backend/internals/features/lkpd/project/service"
)

type CreateLkpdRequest struct {
	Title       string `json:"title"`
	ProjectType string `json:"project_type" validate:"required"`
}

// Guard navigasi yang dikonsumsi layer presentasi sebelum merender layar
// tahap — routing klien saja bukan gerbang yang memadai.
type CanEnterStageResponse struct {
	Stage           int    `json:"stage"`
	Allowed         bool   `json:"allowed"`
	BlockedBy       int    `json:"blocked_by,omitempty"`
	ReasonIfBlocked string `json:"reason_if_blocked,omitempty"`
}

type StageStatus struct {
	Stage       int        `json:"stage"`
	Name        string     `json:"name"`
	Unlocked    bool       `json:"unlocked"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type LkpdProjectResponse struct {
	Project *model.LkpdProjectModel `json:"project"`
	Stages  []StageStatus           `json:"stages"`
}

func ToLkpdProjectResponse(p *model.LkpdProjectModel) LkpdProjectResponse {
	stages := make([]StageStatus, 0, model.TotalStages)
	for n := 1; n <= model.TotalStages; n++ {
		unlocked, _ := service.CanEnterStage(p, n)
		stages = append(stages, StageStatus{
			Stage:       n,
			Name:        model.StageNames[n],
			Unlocked:    unlocked,
			Completed:   p.IsStageCompleted(n),
			CompletedAt: p.StageCompletedAt(n),
		})
	}
	return LkpdProjectResponse{Project: p, Stages: stages}
}
