package service

import (
	"errors"
	"fmt"
)

// Taksonomi error engine LKPD. Validasi dan penguncian selalu disurfacekan ke
// caller; kegagalan persistensi hanya dicatat (lihat controller).
var (
	ErrProjectNotFound  = errors.New("proyek LKPD tidak ditemukan")
	ErrProjectSubmitted = errors.New("LKPD sudah dikumpulkan dan tidak bisa diubah lagi")
	ErrInvalidStage     = errors.New("nomor tahap harus 1..6")
	ErrInvalidType      = errors.New("tipe proyek tidak dikenal")
	ErrArtifactStage    = errors.New("artefak hanya untuk tahap 3 (sketsa) atau 4 (foto)")
)

// StageLockedError: navigasi/mutasi ke tahap yang prasyaratnya belum selesai.
// Menyebut tahap pemblokir supaya caller bisa mengarahkan murid ke sana.
type StageLockedError struct {
	Stage     int
	BlockedBy int
}

func (e *StageLockedError) Error() string {
	return fmt.Sprintf("tahap %d masih terkunci: selesaikan tahap %d terlebih dahulu", e.Stage, e.BlockedBy)
}

// StageValidationError: aturan field sebuah tahap tidak terpenuhi.
// Fields memetakan nama field ke alasannya; tidak ada mutasi state.
type StageValidationError struct {
	Stage  int
	Fields map[string]string
}

func (e *StageValidationError) Error() string {
	return fmt.Sprintf("payload tahap %d tidak valid (%d field bermasalah)", e.Stage, len(e.Fields))
}
