package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"geometriku_backend/internals/features/lkpd/autosave"
	"geometriku_backend/internals/features/lkpd/project/dto"
	"geometriku_backend/internals/features/lkpd/project/service"
	helper "geometriku_backend/internals/helpers"
)

type LkpdController struct {
	DB         *gorm.DB
	Cache      *gorm.DB
	Reconciler *autosave.Reconciler
	Validate   *validator.Validate
}

func NewLkpdController(db *gorm.DB, cache *gorm.DB, rec *autosave.Reconciler) *LkpdController {
	return &LkpdController{
		DB:         db,
		Cache:      cache,
		Reconciler: rec,
		Validate:   validator.New(),
	}
}

// 🟡 POST /api/u/lkpd
func (ctrl *LkpdController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateLkpdRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	project, err := service.CreateProject(ctrl.DB, userID, req.Title, req.ProjectType)
	if err != nil {
		return ctrl.respondServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Proyek LKPD dibuat", dto.ToLkpdProjectResponse(project))
}

// 🟢 GET /api/u/lkpd
func (ctrl *LkpdController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	page := helper.ParsePagination(c, helper.DefaultPaginationOpts)
	projects, total, err := service.ListProjects(ctrl.DB, userID, page.Limit(), page.Offset())
	if err != nil {
		log.Println("[ERROR] Gagal mengambil daftar LKPD:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar LKPD")
	}
	return helper.Success(c, "Daftar LKPD", fiber.Map{
		"projects":   projects,
		"pagination": helper.BuildPaginationMeta(total, page),
	})
}

// 🟢 GET /api/u/lkpd/:id
func (ctrl *LkpdController) Get(c *fiber.Ctx) error {
	userID, projectID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}

	project, err := service.GetProject(ctrl.DB, userID, projectID)
	if err != nil {
		return ctrl.respondServiceError(c, err)
	}
	return helper.Success(c, "Detail LKPD", dto.ToLkpdProjectResponse(project))
}

// 🟢 GET /api/u/lkpd/:id/can-enter/:stage
// Guard navigasi tahap; presentasi WAJIB memanggil ini sebelum merender.
func (ctrl *LkpdController) CanEnter(c *fiber.Ctx) error {
	userID, projectID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}
	stage, err := ctrl.parseStage(c)
	if err != nil {
		return err
	}

	project, err := service.GetProject(ctrl.DB, userID, projectID)
	if err != nil {
		return ctrl.respondServiceError(c, err)
	}

	allowed, blockedBy := service.CanEnterStage(project, stage)
	resp := dto.CanEnterStageResponse{Stage: stage, Allowed: allowed}
	if !allowed {
		resp.BlockedBy = blockedBy
		resp.ReasonIfBlocked = (&service.StageLockedError{Stage: stage, BlockedBy: blockedBy}).Error()
	}
	return helper.Success(c, "Status tahap", resp)
}

// 🟠 PATCH /api/u/lkpd/:id/stage/:n
// Draft tahap; dipersist lewat auto-save (debounce 3 detik).
func (ctrl *LkpdController) SaveDraft(c *fiber.Ctx) error {
	userID, projectID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}
	stage, err := ctrl.parseStage(c)
	if err != nil {
		return err
	}

	if err := service.SaveStageDraft(ctrl.DB, ctrl.Reconciler, userID, projectID, stage, c.Body()); err != nil {
		return ctrl.respondServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusAccepted, "Draft dijadwalkan tersimpan", fiber.Map{
		"stage": stage,
	})
}

// 🟡 POST /api/u/lkpd/:id/stage/:n/advance
func (ctrl *LkpdController) Advance(c *fiber.Ctx) error {
	userID, projectID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}
	stage, err := ctrl.parseStage(c)
	if err != nil {
		return err
	}

	project, err := service.AdvanceStage(ctrl.DB, ctrl.Cache, ctrl.Reconciler, userID, projectID, stage, c.Body())
	if err != nil {
		return ctrl.respondServiceError(c, err)
	}
	return helper.Success(c, "Tahap selesai", dto.ToLkpdProjectResponse(project))
}

// 🟡 POST /api/u/lkpd/:id/submit
func (ctrl *LkpdController) Submit(c *fiber.Ctx) error {
	userID, projectID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}

	project, err := service.SubmitProject(ctrl.DB, ctrl.Cache, userID, projectID)
	if err != nil {
		return ctrl.respondServiceError(c, err)
	}
	return helper.Success(c, "LKPD berhasil dikumpulkan", dto.ToLkpdProjectResponse(project))
}

// ===========================================================
// internal
// ===========================================================

func (ctrl *LkpdController) parseIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, helper.Error(c, fiber.StatusBadRequest, "ID proyek tidak valid")
	}
	return userID, projectID, nil
}

func (ctrl *LkpdController) parseStage(c *fiber.Ctx) (int, error) {
	raw := c.Params("n")
	if raw == "" {
		raw = c.Params("stage")
	}
	stage, err := strconv.Atoi(raw)
	if err != nil {
		return 0, helper.Error(c, fiber.StatusBadRequest, "Nomor tahap tidak valid")
	}
	return stage, nil
}

// respondServiceError memetakan taksonomi error engine ke HTTP.
// Validasi & lock selalu disurfacekan ke murid; error lain jadi 500 generik.
func (ctrl *LkpdController) respondServiceError(c *fiber.Ctx, err error) error {
	var ve *service.StageValidationError
	if errors.As(err, &ve) {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validasi tahap gagal", ve.Fields)
	}

	var le *service.StageLockedError
	if errors.As(err, &le) {
		return helper.ErrorWithDetails(c, fiber.StatusConflict, le.Error(), fiber.Map{
			"stage":      le.Stage,
			"blocked_by": le.BlockedBy,
		})
	}

	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProjectSubmitted):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStage),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrArtifactStage):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	log.Println("[ERROR] LKPD service:", err)
	return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
