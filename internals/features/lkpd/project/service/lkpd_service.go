package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"geometriku_backend/internals/constants"
	"geometriku_backend/internals/features/lkpd/autosave"
	"geometriku_backend/internals/features/lkpd/project/model"
	gamificationService "geometriku_backend/internals/features/progress/gamification/service"
)

// CreateProject membuka dokumen LKPD baru di tahap 1.
func CreateProject(db *gorm.DB, userID uuid.UUID, title string, projectType string) (*model.LkpdProjectModel, error) {
	kind, ok := constants.ParseGeometryKind(projectType)
	if !ok {
		return nil, ErrInvalidType
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Proyek " + string(kind)
	}

	project := model.LkpdProjectModel{
		LkpdProjectUserID:       userID,
		LkpdProjectTitle:        title,
		LkpdProjectType:         kind,
		LkpdProjectCurrentStage: 1,
		LkpdProjectStartedAt:    time.Now(),
	}
	if err := db.Create(&project).Error; err != nil {
		log.Println("[ERROR] Gagal membuat proyek LKPD:", err)
		return nil, err
	}
	return &project, nil
}

// GetProject memuat proyek milik user; proyek user lain dianggap tidak ada.
func GetProject(db *gorm.DB, userID uuid.UUID, projectID uuid.UUID) (*model.LkpdProjectModel, error) {
	var project model.LkpdProjectModel
	err := db.Where("lkpd_project_id = ? AND lkpd_project_user_id = ?", projectID, userID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects mengembalikan halaman proyek milik user, terbaru dulu,
// beserta total untuk meta pagination.
func ListProjects(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]model.LkpdProjectModel, int64, error) {
	var total int64
	if err := db.Model(&model.LkpdProjectModel{}).
		Where("lkpd_project_user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []model.LkpdProjectModel
	err := db.Where("lkpd_project_user_id = ?", userID).
		Order("lkpd_project_started_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error
	return projects, total, err
}

// CanEnterStage adalah predikat unlock: tahap 1 selalu terbuka; tahap n>1
// terbuka iff tahap n-1 sudah distempel selesai. Dievaluasi ulang dari state
// terkini pada setiap percobaan navigasi — tidak pernah di-cache.
func CanEnterStage(p *model.LkpdProjectModel, n int) (allowed bool, blockedBy int) {
	if n < 1 || n > model.TotalStages {
		return false, 0
	}
	if n == 1 {
		return true, 0
	}
	if p.IsStageCompleted(n - 1) {
		return true, 0
	}
	return false, n - 1
}

// SaveStageDraft menyimpan draft tahap lewat reconciler auto-save (debounce).
// Lock dan status submit dicek sekarang; tulisannya sendiri ditunda sampai
// jendela tenang lewat.
func SaveStageDraft(db *gorm.DB, rec *autosave.Reconciler, userID uuid.UUID, projectID uuid.UUID, stage int, raw []byte) error {
	if stage < 1 || stage > model.TotalStages {
		return ErrInvalidStage
	}

	project, err := GetProject(db, userID, projectID)
	if err != nil {
		return err
	}
	if project.LkpdProjectIsCompleted {
		return ErrProjectSubmitted
	}
	if ok, blockedBy := CanEnterStage(project, stage); !ok {
		return &StageLockedError{Stage: stage, BlockedBy: blockedBy}
	}

	payload, err := decodeStagePayload(project, stage, raw)
	if err != nil {
		return &StageValidationError{Stage: stage, Fields: map[string]string{"payload": "format JSON tidak valid"}}
	}
	encoded, err := marshalStagePayload(payload)
	if err != nil {
		return err
	}

	column := model.StageColumn(stage)
	rec.Schedule(autosave.Key(projectID, stage), func() error {
		now := time.Now()
		res := db.Model(&model.LkpdProjectModel{}).
			Where("lkpd_project_id = ? AND lkpd_project_is_completed = ?", projectID, false).
			Updates(map[string]interface{}{
				column:                        encoded,
				"lkpd_project_last_auto_save": now,
			})
		return res.Error
	})
	return nil
}

// AdvanceStage adalah transisi eksplisit: payload divalidasi penuh, tahap
// distempel selesai, current_stage maju ke min(n+1, 6). Gagal validasi =
// tidak ada mutasi sama sekali.
func AdvanceStage(db *gorm.DB, cache *gorm.DB, rec *autosave.Reconciler, userID uuid.UUID, projectID uuid.UUID, stage int, raw []byte) (*model.LkpdProjectModel, error) {
	if stage < 1 || stage > model.TotalStages {
		return nil, ErrInvalidStage
	}

	project, err := GetProject(db, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project.LkpdProjectIsCompleted {
		return nil, ErrProjectSubmitted
	}
	if ok, blockedBy := CanEnterStage(project, stage); !ok {
		return nil, &StageLockedError{Stage: stage, BlockedBy: blockedBy}
	}

	payload, err := decodeStagePayload(project, stage, raw)
	if err != nil {
		return nil, &StageValidationError{Stage: stage, Fields: map[string]string{"payload": "format JSON tidak valid"}}
	}
	if problems := validateStagePayload(project, stage, payload); len(problems) > 0 {
		return nil, &StageValidationError{Stage: stage, Fields: problems}
	}

	// Draft tertunda untuk tahap ini dibuang supaya tidak menimpa payload
	// yang sudah distempel.
	if rec != nil {
		rec.Cancel(autosave.Key(projectID, stage))
	}

	firstCompletion := !project.IsStageCompleted(stage)
	now := time.Now()
	stampCompletedAt(payload, stage, project, now)

	encoded, err := marshalStagePayload(payload)
	if err != nil {
		return nil, err
	}
	project.SetStageRaw(stage, encoded)
	project.RecomputeCurrentStage()
	if err := db.Save(project).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan advance tahap:", err)
		return nil, err
	}

	if firstCompletion {
		log.Printf("[SERVICE] LKPD %s: tahap %d (%s) selesai", projectID.String(), stage, model.StageNames[stage])
		if _, err := gamificationService.AwardXp(db, cache, userID, constants.XPPerLkpdStage); err != nil {
			log.Println("[WARN] Gagal award XP tahap LKPD (degraded):", err)
		}
	}
	return project, nil
}

// SubmitProject: transisi terminal dari tahap 6. Seluruh dokumen beku setelah
// ini — mutasi apa pun ditolak controller maupun service.
func SubmitProject(db *gorm.DB, cache *gorm.DB, userID uuid.UUID, projectID uuid.UUID) (*model.LkpdProjectModel, error) {
	project, err := GetProject(db, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project.LkpdProjectIsCompleted {
		return nil, ErrProjectSubmitted
	}
	for n := 1; n <= model.TotalStages; n++ {
		if !project.IsStageCompleted(n) {
			return nil, &StageLockedError{Stage: model.TotalStages, BlockedBy: n}
		}
	}

	now := time.Now()
	project.LkpdProjectIsCompleted = true
	project.LkpdProjectSubmittedAt = &now
	project.LkpdProjectCurrentStage = model.TotalStages
	if err := db.Save(project).Error; err != nil {
		log.Println("[ERROR] Gagal submit LKPD:", err)
		return nil, err
	}

	log.Printf("[SUCCESS] LKPD %s dikumpulkan oleh %s", projectID.String(), userID.String())
	if _, err := gamificationService.AwardXp(db, cache, userID, constants.XPLkpdSubmit); err != nil {
		log.Println("[WARN] Gagal award XP submit LKPD (degraded):", err)
	}
	return project, nil
}

// AttachArtifact menyimpan rujukan artefak hasil upload ke payload tahapnya
// (sketsa di tahap 3, foto di tahap 4). Engine tidak pernah membaca isi file.
func AttachArtifact(db *gorm.DB, userID uuid.UUID, projectID uuid.UUID, stage int, artifact model.StageArtifact) (*model.LkpdProjectModel, error) {
	if stage != 3 && stage != 4 {
		return nil, ErrArtifactStage
	}

	project, err := GetProject(db, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project.LkpdProjectIsCompleted {
		return nil, ErrProjectSubmitted
	}
	if ok, blockedBy := CanEnterStage(project, stage); !ok {
		return nil, &StageLockedError{Stage: stage, BlockedBy: blockedBy}
	}

	raw := project.StageRaw(stage)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	payload, err := decodeStagePayload(project, stage, raw)
	if err != nil {
		return nil, err
	}
	switch s := payload.(type) {
	case *model.Stage3PlanDesign:
		s.Sketch = &artifact
	case *model.Stage4Build:
		s.Photo = &artifact
	}

	encoded, err := marshalStagePayload(payload)
	if err != nil {
		return nil, err
	}
	project.SetStageRaw(stage, encoded)
	now := time.Now()
	project.LkpdProjectLastAutoSave = &now
	if err := db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// stampCompletedAt menyetempel completed_at payload (sekali; stempel lama
// dipertahankan supaya tahap tidak pernah "selesai ulang").
func stampCompletedAt(payload interface{}, stage int, p *model.LkpdProjectModel, now time.Time) {
	existing := p.StageCompletedAt(stage)
	stamp := &now
	if existing != nil {
		stamp = existing
	}
	switch s := payload.(type) {
	case *model.Stage1Define:
		s.CompletedAt = stamp
	case *model.Stage2Imagine:
		s.CompletedAt = stamp
	case *model.Stage3PlanDesign:
		s.CompletedAt = stamp
	case *model.Stage4Build:
		s.CompletedAt = stamp
	case *model.Stage5Test:
		s.CompletedAt = stamp
	case *model.Stage6Reflect:
		s.CompletedAt = stamp
	}
}
