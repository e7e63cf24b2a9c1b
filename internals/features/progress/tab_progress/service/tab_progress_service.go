package service

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"geometriku_backend/internals/constants"
	badgeService "geometriku_backend/internals/features/progress/badges/service"
	gamificationService "geometriku_backend/internals/features/progress/gamification/service"
	"geometriku_backend/internals/features/progress/tab_progress/model"
)

var (
	ErrInvalidModuleID = errors.New("module_id tidak dikenal")
	ErrInvalidTabIndex = errors.New("tab_index harus 0..4")
)

// RecordTabVisit menambahkan tabIndex ke himpunan tab modul secara idempoten.
// Kunjungan ulang tidak mengubah himpunan dan tidak memberi XP, tapi tetap
// menyegarkan last_visited_at. Tulisan menembus dua tier: cache lokal
// sinkron, remote best-effort — gagal remote tidak menggagalkan kunjungan
// (PersistenceDegraded, baris ditandai belum tersinkron).
func RecordTabVisit(db *gorm.DB, cache *gorm.DB, userID uuid.UUID, moduleID string, tabIndex int) (*model.ModuleTabProgressModel, bool, error) {
	if !constants.IsValidModuleID(moduleID) {
		return nil, false, ErrInvalidModuleID
	}
	if !constants.IsValidTabIndex(tabIndex) {
		return nil, false, ErrInvalidTabIndex
	}

	now := time.Now()
	rec, err := loadMergedRecord(db, cache, userID, moduleID)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		rec = &model.ModuleTabProgressModel{
			ModuleTabProgressUserID:   userID,
			ModuleTabProgressModuleID: moduleID,
			ModuleTabProgressStatus:   model.TabProgressStatusInProgress,
		}
		rec.SetVisitedTabs(nil)
	}

	wasComplete := rec.IsComplete()
	isNewVisit := !rec.HasVisited(tabIndex)
	if isNewVisit {
		rec.SetVisitedTabs(append(rec.VisitedTabs(), tabIndex))
	}
	rec.ModuleTabProgressLastVisitedAt = now
	if rec.IsComplete() && rec.ModuleTabProgressCompletedAt == nil {
		rec.ModuleTabProgressStatus = model.TabProgressStatusCompleted
		rec.ModuleTabProgressCompletedAt = &now
	}

	if err := persistBothTiers(db, cache, rec); err != nil {
		return nil, false, err
	}

	// Pipeline gamifikasi: ledger → streak → badge, urutan tetap.
	// XP hanya untuk kunjungan baru; bonus modul diberikan pada TRANSISI
	// menjadi lengkap, bukan pada post-state, supaya tidak terulang.
	if isNewVisit {
		xp := constants.XPPerTabVisit
		if !wasComplete && rec.IsComplete() {
			xp += constants.XPModuleCompleteBonus
			log.Printf("[SERVICE] Modul %s tuntas oleh %s — bonus %d XP", moduleID, userID.String(), constants.XPModuleCompleteBonus)
		}
		runGamificationPipeline(db, cache, userID, xp)
	}

	return rec, isNewVisit, nil
}

// GetProgress mengembalikan pandangan gabungan (cache ∪ remote) seluruh modul.
func GetProgress(db *gorm.DB, cache *gorm.DB, userID uuid.UUID) ([]model.ModuleTabProgressModel, error) {
	remoteRows, err := listRecords(db, userID)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		return remoteRows, nil
	}
	localRows, err := listRecords(cache, userID)
	if err != nil {
		log.Println("[WARN] Cache lokal gagal dibaca, pakai remote saja:", err)
		return remoteRows, nil
	}
	return MergeProgress(localRows, remoteRows), nil
}

// SyncProgress menggabungkan kedua tier lalu menulis balik hasilnya ke
// keduanya; baris yang berhasil ditandai tersinkron.
func SyncProgress(db *gorm.DB, cache *gorm.DB, userID uuid.UUID) ([]model.ModuleTabProgressModel, error) {
	merged, err := GetProgress(db, cache, userID)
	if err != nil {
		return nil, err
	}
	for i := range merged {
		if err := persistBothTiers(db, cache, &merged[i]); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// MergeProgress adalah kebijakan rekonsiliasi murni antara dua replika.
// Per modul: himpunan dengan KARDINALITAS lebih besar menang (seri → local,
// karena local mencerminkan sesi interaktif terakhir); last_visited_at
// diambil maksimum keduanya. Ini resolusi per modul, bukan union per tab —
// persentase harus sesuai sesi yang benar-benar pernah terjadi.
func MergeProgress(local, remote []model.ModuleTabProgressModel) []model.ModuleTabProgressModel {
	byModule := map[string]model.ModuleTabProgressModel{}
	for _, r := range remote {
		byModule[r.ModuleTabProgressModuleID] = r
	}
	for _, l := range local {
		r, both := byModule[l.ModuleTabProgressModuleID]
		if !both {
			byModule[l.ModuleTabProgressModuleID] = l
			continue
		}
		byModule[l.ModuleTabProgressModuleID] = mergePair(l, r)
	}

	out := make([]model.ModuleTabProgressModel, 0, len(byModule))
	for _, rec := range byModule {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ModuleTabProgressModuleID < out[j].ModuleTabProgressModuleID
	})
	return out
}

func mergePair(local, remote model.ModuleTabProgressModel) model.ModuleTabProgressModel {
	winner := local
	loser := remote
	if len(remote.VisitedTabs()) > len(local.VisitedTabs()) {
		winner = remote
		loser = local
	}

	if loser.ModuleTabProgressLastVisitedAt.After(winner.ModuleTabProgressLastVisitedAt) {
		winner.ModuleTabProgressLastVisitedAt = loser.ModuleTabProgressLastVisitedAt
	}
	if winner.IsComplete() {
		winner.ModuleTabProgressStatus = model.TabProgressStatusCompleted
		if winner.ModuleTabProgressCompletedAt == nil {
			if loser.ModuleTabProgressCompletedAt != nil {
				winner.ModuleTabProgressCompletedAt = loser.ModuleTabProgressCompletedAt
			} else {
				t := winner.ModuleTabProgressLastVisitedAt
				winner.ModuleTabProgressCompletedAt = &t
			}
		}
	}
	return winner
}

// ===========================================================
// internal
// ===========================================================

func runGamificationPipeline(db *gorm.DB, cache *gorm.DB, userID uuid.UUID, xp int) {
	if _, err := gamificationService.AwardXp(db, cache, userID, xp); err != nil {
		log.Println("[ERROR] Pipeline: gagal award XP:", err)
		return
	}
	if _, err := gamificationService.UpdateStreak(db, cache, userID); err != nil {
		log.Println("[ERROR] Pipeline: gagal update streak:", err)
		return
	}
	if _, err := badgeService.EvaluateBadges(db, userID); err != nil {
		log.Println("[ERROR] Pipeline: gagal evaluasi badge:", err)
	}
}

func listRecords(db *gorm.DB, userID uuid.UUID) ([]model.ModuleTabProgressModel, error) {
	var rows []model.ModuleTabProgressModel
	err := db.Where("module_tab_progress_user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func findRecord(db *gorm.DB, userID uuid.UUID, moduleID string) (*model.ModuleTabProgressModel, error) {
	var rec model.ModuleTabProgressModel
	err := db.Where("module_tab_progress_user_id = ? AND module_tab_progress_module_id = ?", userID, moduleID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func loadMergedRecord(db *gorm.DB, cache *gorm.DB, userID uuid.UUID, moduleID string) (*model.ModuleTabProgressModel, error) {
	remote, err := findRecord(db, userID, moduleID)
	if err != nil {
		log.Println("[WARN] Remote gagal dibaca saat load record:", err)
		remote = nil
	}
	var local *model.ModuleTabProgressModel
	if cache != nil {
		local, err = findRecord(cache, userID, moduleID)
		if err != nil {
			log.Println("[WARN] Cache lokal gagal dibaca saat load record:", err)
			local = nil
		}
	}

	switch {
	case local == nil && remote == nil:
		return nil, nil
	case local == nil:
		return remote, nil
	case remote == nil:
		return local, nil
	default:
		merged := mergePair(*local, *remote)
		return &merged, nil
	}
}

// persistBothTiers: cache dulu (sinkron), lalu remote. Gagal remote bukan
// error bagi caller — baris ditandai is_synced=false dan dicatat di log.
// Error hanya jika KEDUA tier gagal.
func persistBothTiers(db *gorm.DB, cache *gorm.DB, rec *model.ModuleTabProgressModel) error {
	var cacheErr error
	if cache != nil {
		rec.ModuleTabProgressIsSynced = true
		cacheErr = upsertRecord(cache, rec)
		if cacheErr != nil {
			log.Println("[WARN] Cache lokal gagal menyimpan progres:", cacheErr)
		}
	}

	remoteErr := upsertRecord(db, rec)
	if remoteErr != nil {
		log.Println("[WARN] Remote gagal menyimpan progres (degraded, lanjut lokal):", remoteErr)
		rec.ModuleTabProgressIsSynced = false
		if cache != nil && cacheErr == nil {
			// Tandai baris cache supaya sync berikutnya tahu ada divergensi.
			_ = upsertRecord(cache, rec)
			return nil
		}
		if cache == nil {
			return remoteErr
		}
		if cacheErr != nil {
			return remoteErr
		}
	}
	return nil
}

func upsertRecord(db *gorm.DB, rec *model.ModuleTabProgressModel) error {
	existing, err := findRecord(db, rec.ModuleTabProgressUserID, rec.ModuleTabProgressModuleID)
	if err != nil {
		return err
	}
	if existing == nil {
		clone := *rec
		clone.ModuleTabProgressID = 0
		return db.Create(&clone).Error
	}

	existing.ModuleTabProgressVisitedTabs = rec.ModuleTabProgressVisitedTabs
	existing.ModuleTabProgressStatus = rec.ModuleTabProgressStatus
	existing.ModuleTabProgressLastVisitedAt = rec.ModuleTabProgressLastVisitedAt
	existing.ModuleTabProgressCompletedAt = rec.ModuleTabProgressCompletedAt
	existing.ModuleTabProgressIsSynced = rec.ModuleTabProgressIsSynced
	return db.Save(existing).Error
}
