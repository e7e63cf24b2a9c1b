package service

import (
	"encoding/json"
	"math"
	"strings"
	"unicode/utf8"

	"gorm.io/datatypes"

	"geometriku_backend/internals/constants"
	"geometriku_backend/internals/features/lkpd/project/model"
)

// Panjang minimum field teks bebas pada tiap tahap.
const minTextLen = 10

// decodeStagePayload mem-parse raw JSON ke struct payload tahap n.
// Stempel completed_at SELALU diambil dari payload tersimpan, bukan dari
// kiriman klien — hanya Advance yang boleh menyetempel.
func decodeStagePayload(p *model.LkpdProjectModel, n int, raw []byte) (interface{}, error) {
	stored := p.StageCompletedAt(n)

	switch n {
	case 1:
		var s model.Stage1Define
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.CompletedAt = stored
		return &s, nil
	case 2:
		var s model.Stage2Imagine
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.CompletedAt = stored
		return &s, nil
	case 3:
		var s model.Stage3PlanDesign
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.CompletedAt = stored
		return &s, nil
	case 4:
		var s model.Stage4Build
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.CompletedAt = stored
		return &s, nil
	case 5:
		var s model.Stage5Test
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.CompletedAt = stored
		enrichStage5(p, &s)
		return &s, nil
	case 6:
		var s model.Stage6Reflect
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.CompletedAt = stored
		return &s, nil
	}
	return nil, ErrInvalidStage
}

func marshalStagePayload(payload interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// enrichStage5 mengisi volume teoretis dan deviasinya dari tabel rumus
// bangun ruang + dimensi tahap 3. Bukan gate — hanya pembanding.
func enrichStage5(p *model.LkpdProjectModel, s *model.Stage5Test) {
	formula, ok := constants.FormulaFor(p.LkpdProjectType)
	if !ok {
		return
	}
	raw := p.StageRaw(3)
	if len(raw) == 0 {
		return
	}
	var plan model.Stage3PlanDesign
	if err := json.Unmarshal(raw, &plan); err != nil || plan.RadiusCm <= 0 {
		return
	}

	s.ComputedVolumeCm3 = formula.Volume(plan.RadiusCm, plan.HeightCm)
	if s.ComputedVolumeCm3 > 0 && s.MeasuredVolumeCm3 > 0 {
		s.DeviationPct = math.Abs(s.MeasuredVolumeCm3-s.ComputedVolumeCm3) / s.ComputedVolumeCm3 * 100
	}
}

// validateStagePayload menjalankan aturan field tahap n; map kosong = lolos.
// Dipakai sebagai gate Advance — draft boleh tidak lengkap.
func validateStagePayload(p *model.LkpdProjectModel, n int, payload interface{}) map[string]string {
	problems := map[string]string{}

	switch s := payload.(type) {
	case *model.Stage1Define:
		requireText(problems, "problem_statement", s.ProblemStatement)
		requireText(problems, "project_goal", s.ProjectGoal)
	case *model.Stage2Imagine:
		requireText(problems, "brainstorm_ideas", s.BrainstormIdeas)
		requireText(problems, "chosen_idea", s.ChosenIdea)
	case *model.Stage3PlanDesign:
		if s.Sketch == nil || strings.TrimSpace(s.Sketch.URL) == "" {
			problems["sketch"] = "sketsa desain wajib diunggah"
		}
		if s.RadiusCm <= 0 {
			problems["radius_cm"] = "jari-jari harus lebih dari 0"
		}
		if s.HeightCm <= 0 && needsHeight(p) {
			problems["height_cm"] = "tinggi harus lebih dari 0"
		}
		requireText(problems, "materials", s.Materials)
	case *model.Stage4Build:
		if s.Photo == nil || strings.TrimSpace(s.Photo.URL) == "" {
			problems["photo"] = "foto hasil karya wajib diunggah"
		}
		requireText(problems, "build_notes", s.BuildNotes)
	case *model.Stage5Test:
		if s.MeasuredVolumeCm3 <= 0 {
			problems["measured_volume_cm3"] = "volume terukur harus lebih dari 0"
		}
		requireText(problems, "test_notes", s.TestNotes)
	case *model.Stage6Reflect:
		requireText(problems, "reflection", s.Reflection)
		requireText(problems, "learnings", s.Learnings)
	}

	return problems
}

func needsHeight(p *model.LkpdProjectModel) bool {
	formula, ok := constants.FormulaFor(p.LkpdProjectType)
	if !ok {
		return true
	}
	return formula.NeedsHeight
}

func requireText(problems map[string]string, field, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		problems[field] = "wajib diisi"
		return
	}
	if utf8.RuneCountInString(trimmed) < minTextLen {
		problems[field] = "minimal 10 karakter"
	}
}
