package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"geometriku_backend/internals/features/lkpd/project/dto"
	"geometriku_backend/internals/features/lkpd/project/model"
	"geometriku_backend/internals/features/lkpd/project/service"
	helper "geometriku_backend/internals/helpers"
	ossHelper "geometriku_backend/internals/helpers/oss"
)

// 🟡 POST /api/u/lkpd/:id/stage/:n/artifact
// Upload bukti karya (sketsa tahap 3, foto tahap 4) ke OSS lalu tempel ke payload tahap.
func (ctrl *LkpdController) UploadArtifact(c *fiber.Ctx) error {
	userID, projectID, err := ctrl.parseIDs(c)
	if err != nil {
		return err
	}
	stage, err := ctrl.parseStage(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File wajib diunggah (field 'file')")
	}
	kind := c.FormValue("kind")
	if kind == "" {
		if stage == 3 {
			kind = "sketsa"
		} else {
			kind = "foto"
		}
	}

	// Validasi kepemilikan & status sebelum membayar biaya upload.
	project, err := service.GetProject(ctrl.DB, userID, projectID)
	if err != nil {
		return ctrl.respondServiceError(c, err)
	}
	if project.LkpdProjectIsCompleted {
		return ctrl.respondServiceError(c, service.ErrProjectSubmitted)
	}

	res, err := ossHelper.UploadStageArtifact(userID, projectID, stage, fh, kind)
	if err != nil {
		log.Println("[ERROR] Upload artefak gagal:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal mengunggah file: "+err.Error())
	}

	project, err = service.AttachArtifact(ctrl.DB, userID, projectID, stage, model.StageArtifact{
		URL:  res.URL,
		Path: res.Path,
		Size: res.Size,
	})
	if err != nil {
		return ctrl.respondServiceError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Artefak tersimpan", fiber.Map{
		"artifact": res,
		"project":  dto.ToLkpdProjectResponse(project),
	})
}
