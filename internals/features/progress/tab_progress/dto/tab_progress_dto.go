package dto

import (
	"time"

	"geometriku_backend/internals/features/progress/tab_progress/model"
)

type RecordTabVisitRequest struct {
	ModuleID string `json:"module_id" validate:"required"`
	TabIndex *int   `json:"tab_index" validate:"required,min=0,max=4"`
}

type TabProgressResponse struct {
	ModuleID             string     `json:"module_id"`
	VisitedTabs          []int      `json:"visited_tabs"`
	CompletionPercentage int        `json:"completion_percentage"`
	Status               string     `json:"status"`
	LastVisitedAt        time.Time  `json:"last_visited_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	IsSynced             bool       `json:"is_synced"`
}

type RecordTabVisitResponse struct {
	Progress   TabProgressResponse `json:"progress"`
	IsNewVisit bool                `json:"is_new_visit"`
}

func ToTabProgressResponse(m *model.ModuleTabProgressModel) TabProgressResponse {
	return TabProgressResponse{
		ModuleID:             m.ModuleTabProgressModuleID,
		VisitedTabs:          m.VisitedTabs(),
		CompletionPercentage: m.CompletionPercentage(),
		Status:               string(m.ModuleTabProgressStatus),
		LastVisitedAt:        m.ModuleTabProgressLastVisitedAt,
		CompletedAt:          m.ModuleTabProgressCompletedAt,
		IsSynced:             m.ModuleTabProgressIsSynced,
	}
}

func ToTabProgressResponses(rows []model.ModuleTabProgressModel) []TabProgressResponse {
	out := make([]TabProgressResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToTabProgressResponse(&rows[i]))
	}
	return out
}
