package model

import "time"

// Referensi artefak hasil upload (OSS). Engine hanya menyimpan rujukannya,
// tidak pernah membaca isi file.
type StageArtifact struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ===========================================================
// PAYLOAD PER TAHAP
// Field teks wajib minimal 10 karakter; aturan lengkap ada di
// service.ValidateStagePayload.
// ===========================================================

// Tahap 1 — Define: rumusan masalah proyek.
type Stage1Define struct {
	ProblemStatement string     `json:"problem_statement"`
	ProjectGoal      string     `json:"project_goal"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// Tahap 2 — Imagine: curah gagasan dan pilihan ide.
type Stage2Imagine struct {
	BrainstormIdeas string     `json:"brainstorm_ideas"`
	ChosenIdea      string     `json:"chosen_idea"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Tahap 3 — Plan & Design: sketsa terunggah + dimensi bangun ruang.
// HeightCm tidak wajib untuk proyek bola.
type Stage3PlanDesign struct {
	Sketch      *StageArtifact `json:"sketch,omitempty"`
	RadiusCm    float64        `json:"radius_cm"`
	HeightCm    float64        `json:"height_cm"`
	Materials   string         `json:"materials"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// Tahap 4 — Build: dokumentasi foto + catatan pembuatan.
type Stage4Build struct {
	Photo       *StageArtifact `json:"photo,omitempty"`
	BuildNotes  string         `json:"build_notes"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// Tahap 5 — Test: volume terukur dibandingkan volume teoretis.
// DeviationPct diisi engine dari tabel rumus, bukan oleh murid.
type Stage5Test struct {
	MeasuredVolumeCm3 float64    `json:"measured_volume_cm3"`
	ComputedVolumeCm3 float64    `json:"computed_volume_cm3"`
	DeviationPct      float64    `json:"deviation_pct"`
	TestNotes         string     `json:"test_notes"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// Tahap 6 — Reflect: refleksi akhir.
type Stage6Reflect struct {
	Reflection  string     `json:"reflection"`
	Learnings   string     `json:"learnings"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
