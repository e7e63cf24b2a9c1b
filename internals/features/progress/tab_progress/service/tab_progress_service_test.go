package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	gamificationService "geometriku_backend/internals/features/progress/gamification/service"
	"geometriku_backend/internals/features/progress/tab_progress/model"
	"geometriku_backend/internals/testutil"
)

func TestRecordTabVisitAccumulates(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	for _, idx := range []int{0, 1, 2} {
		rec, isNew, err := RecordTabVisit(db, nil, userID, "tabung", idx)
		if err != nil {
			t.Fatalf("RecordTabVisit(%d) error: %v", idx, err)
		}
		if !isNew {
			t.Fatalf("kunjungan tab %d harus dihitung baru", idx)
		}
		if rec.HasVisited(idx) == false {
			t.Fatalf("tab %d tidak tercatat", idx)
		}
	}

	rec, _, err := RecordTabVisit(db, nil, userID, "tabung", 2)
	if err != nil {
		t.Fatalf("RecordTabVisit error: %v", err)
	}
	if rec.CompletionPercentage() != 60 {
		t.Fatalf("persentase=%d, want 60", rec.CompletionPercentage())
	}

	state, err := gamificationService.GetOrInitState(db, userID)
	if err != nil {
		t.Fatalf("GetOrInitState error: %v", err)
	}
	if state.UserGamificationTotalXP != 30 {
		t.Fatalf("xp=%d, want 30 (tiga kunjungan baru, kunjungan ulang gratis)", state.UserGamificationTotalXP)
	}
}

func TestRecordTabVisitRevisitIsIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	if _, _, err := RecordTabVisit(db, nil, userID, "kerucut", 3); err != nil {
		t.Fatalf("RecordTabVisit error: %v", err)
	}

	rec, isNew, err := RecordTabVisit(db, nil, userID, "kerucut", 3)
	if err != nil {
		t.Fatalf("RecordTabVisit error: %v", err)
	}
	if isNew {
		t.Fatal("kunjungan ulang tidak boleh dihitung baru")
	}
	if got := rec.VisitedTabs(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("visited=%v, want [3]", got)
	}

	state, err := gamificationService.GetOrInitState(db, userID)
	if err != nil {
		t.Fatalf("GetOrInitState error: %v", err)
	}
	if state.UserGamificationTotalXP != 10 {
		t.Fatalf("xp=%d, kunjungan ulang tidak boleh memberi XP", state.UserGamificationTotalXP)
	}
}

func TestRecordTabVisitCompletionBonusOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	var last *model.ModuleTabProgressModel
	for idx := 0; idx < 5; idx++ {
		rec, _, err := RecordTabVisit(db, nil, userID, "bola", idx)
		if err != nil {
			t.Fatalf("RecordTabVisit(%d) error: %v", idx, err)
		}
		last = rec
	}

	if !last.IsComplete() || last.ModuleTabProgressStatus != model.TabProgressStatusCompleted {
		t.Fatalf("modul harus tuntas: %+v", last)
	}
	if last.ModuleTabProgressCompletedAt == nil {
		t.Fatal("completed_at harus terisi saat transisi tuntas")
	}
	firstCompletedAt := *last.ModuleTabProgressCompletedAt

	// 5×10 + bonus 50.
	state, err := gamificationService.GetOrInitState(db, userID)
	if err != nil {
		t.Fatalf("GetOrInitState error: %v", err)
	}
	if state.UserGamificationTotalXP != 100 {
		t.Fatalf("xp=%d, want 100", state.UserGamificationTotalXP)
	}

	// Kunjungan ulang setelah tuntas: tanpa XP, stempel tuntas tidak bergeser.
	rec, _, err := RecordTabVisit(db, nil, userID, "bola", 0)
	if err != nil {
		t.Fatalf("RecordTabVisit error: %v", err)
	}
	if !rec.ModuleTabProgressCompletedAt.Equal(firstCompletedAt) {
		t.Fatalf("completed_at bergeser: %v → %v", firstCompletedAt, rec.ModuleTabProgressCompletedAt)
	}
	state, _ = gamificationService.GetOrInitState(db, userID)
	if state.UserGamificationTotalXP != 100 {
		t.Fatalf("xp=%d setelah kunjungan ulang, want tetap 100", state.UserGamificationTotalXP)
	}
}

func TestRecordTabVisitRejectsInvalidInput(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	if _, _, err := RecordTabVisit(db, nil, userID, "kubus", 0); err != ErrInvalidModuleID {
		t.Fatalf("err=%v, want ErrInvalidModuleID", err)
	}
	if _, _, err := RecordTabVisit(db, nil, userID, "tabung", 5); err != ErrInvalidTabIndex {
		t.Fatalf("err=%v, want ErrInvalidTabIndex", err)
	}
	if _, _, err := RecordTabVisit(db, nil, userID, "tabung", -1); err != ErrInvalidTabIndex {
		t.Fatalf("err=%v, want ErrInvalidTabIndex", err)
	}
}

func makeProgressRow(moduleID string, tabs []int, lastVisited time.Time) model.ModuleTabProgressModel {
	row := model.ModuleTabProgressModel{
		ModuleTabProgressModuleID:      moduleID,
		ModuleTabProgressStatus:        model.TabProgressStatusInProgress,
		ModuleTabProgressLastVisitedAt: lastVisited,
	}
	row.SetVisitedTabs(tabs)
	return row
}

func TestMergeProgressGreaterCardinalityWins(t *testing.T) {
	t1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)

	local := []model.ModuleTabProgressModel{
		makeProgressRow("tabung", []int{0, 1, 2, 3}, t1),
		makeProgressRow("kerucut", []int{0}, t2),
	}
	remote := []model.ModuleTabProgressModel{
		makeProgressRow("tabung", []int{0, 1}, t2),
		makeProgressRow("bola", []int{0, 1, 2}, t1),
	}

	merged := MergeProgress(local, remote)
	if len(merged) != 3 {
		t.Fatalf("merged=%d modul, want 3", len(merged))
	}
	byModule := map[string]model.ModuleTabProgressModel{}
	for _, m := range merged {
		byModule[m.ModuleTabProgressModuleID] = m
	}

	// tabung: lokal 4 tab menang atas remote 2 tab, last_visited_at ambil max.
	tabung := byModule["tabung"]
	if got := tabung.VisitedTabs(); len(got) != 4 {
		t.Fatalf("tabung visited=%v, want 4 tab milik lokal", got)
	}
	if !tabung.ModuleTabProgressLastVisitedAt.Equal(t2) {
		t.Fatalf("tabung last_visited_at=%v, want %v", tabung.ModuleTabProgressLastVisitedAt, t2)
	}

	// Modul yang hanya ada di satu sisi ikut apa adanya.
	kerucut := byModule["kerucut"]
	if got := kerucut.VisitedTabs(); len(got) != 1 {
		t.Fatalf("kerucut visited=%v, want [0]", got)
	}
	bola := byModule["bola"]
	if got := bola.VisitedTabs(); len(got) != 3 {
		t.Fatalf("bola visited=%v, want 3 tab milik remote", got)
	}
}

func TestMergeProgressTieGoesToLocal(t *testing.T) {
	t1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	local := []model.ModuleTabProgressModel{makeProgressRow("tabung", []int{3, 4}, t1)}
	remote := []model.ModuleTabProgressModel{makeProgressRow("tabung", []int{0, 1}, t1)}

	merged := MergeProgress(local, remote)
	if len(merged) != 1 {
		t.Fatalf("merged=%d, want 1", len(merged))
	}
	// Kardinalitas seri → lokal menang (sesi interaktif terakhir).
	if got := merged[0].VisitedTabs(); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("visited=%v, want [3 4]", got)
	}
}

func TestMergeProgressCompletedSideInheritsStamp(t *testing.T) {
	t1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	done := t1.Add(time.Hour)

	remote := makeProgressRow("tabung", []int{0, 1, 2, 3, 4}, t1)
	remote.ModuleTabProgressStatus = model.TabProgressStatusCompleted
	remote.ModuleTabProgressCompletedAt = &done

	local := makeProgressRow("tabung", []int{0, 1}, t1)

	merged := MergeProgress([]model.ModuleTabProgressModel{local}, []model.ModuleTabProgressModel{remote})
	if merged[0].ModuleTabProgressStatus != model.TabProgressStatusCompleted {
		t.Fatalf("status=%s, want completed", merged[0].ModuleTabProgressStatus)
	}
	if merged[0].ModuleTabProgressCompletedAt == nil || !merged[0].ModuleTabProgressCompletedAt.Equal(done) {
		t.Fatalf("completed_at=%v, want %v", merged[0].ModuleTabProgressCompletedAt, done)
	}
}

func TestRecordTabVisitWritesBothTiers(t *testing.T) {
	db := testutil.OpenTestDB(t)
	cache := testutil.OpenTestDB(t)
	userID := uuid.New()

	if _, _, err := RecordTabVisit(db, cache, userID, "tabung", 0); err != nil {
		t.Fatalf("RecordTabVisit error: %v", err)
	}

	remote, err := findRecord(db, userID, "tabung")
	if err != nil || remote == nil {
		t.Fatalf("baris remote hilang: %v", err)
	}
	local, err := findRecord(cache, userID, "tabung")
	if err != nil || local == nil {
		t.Fatalf("baris cache hilang: %v", err)
	}
	if !local.ModuleTabProgressIsSynced {
		t.Fatal("is_synced harus true saat kedua tier berhasil")
	}
}

func TestGetProgressMergesTiers(t *testing.T) {
	db := testutil.OpenTestDB(t)
	cache := testutil.OpenTestDB(t)
	userID := uuid.New()

	t1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	remoteRow := makeProgressRow("tabung", []int{0, 1}, t1)
	remoteRow.ModuleTabProgressUserID = userID
	if err := db.Create(&remoteRow).Error; err != nil {
		t.Fatalf("seed remote: %v", err)
	}

	localRow := makeProgressRow("tabung", []int{0, 1, 2, 3}, t1.Add(time.Hour))
	localRow.ModuleTabProgressUserID = userID
	if err := cache.Create(&localRow).Error; err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	merged, err := GetProgress(db, cache, userID)
	if err != nil {
		t.Fatalf("GetProgress error: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("merged=%d, want 1", len(merged))
	}
	if got := merged[0].VisitedTabs(); len(got) != 4 {
		t.Fatalf("visited=%v, want 4 tab milik cache", got)
	}

	// Sync menulis balik hasil gabungan ke remote.
	if _, err := SyncProgress(db, cache, userID); err != nil {
		t.Fatalf("SyncProgress error: %v", err)
	}
	after, err := findRecord(db, userID, "tabung")
	if err != nil || after == nil {
		t.Fatalf("baris remote hilang: %v", err)
	}
	if got := after.VisitedTabs(); len(got) != 4 {
		t.Fatalf("remote setelah sync=%v, want 4 tab", got)
	}
	if !after.ModuleTabProgressIsSynced {
		t.Fatal("baris remote harus tersinkron setelah sync")
	}
}
