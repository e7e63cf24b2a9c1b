package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"geometriku_backend/internals/testutil"
)

func TestAwardXpRecomputesLevel(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	state, err := AwardXp(db, nil, userID, 120)
	if err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}
	if state.UserGamificationTotalXP != 120 || state.UserGamificationLevel != 1 {
		t.Fatalf("got xp=%d level=%d, want xp=120 level=1",
			state.UserGamificationTotalXP, state.UserGamificationLevel)
	}

	// 120 + 380 = 500 → tepat naik level.
	state, err = AwardXp(db, nil, userID, 380)
	if err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}
	if state.UserGamificationTotalXP != 500 || state.UserGamificationLevel != 2 {
		t.Fatalf("got xp=%d level=%d, want xp=500 level=2",
			state.UserGamificationTotalXP, state.UserGamificationLevel)
	}
}

func TestAwardXpZeroIsNoOp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	if _, err := AwardXp(db, nil, userID, 50); err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}
	state, err := AwardXp(db, nil, userID, 0)
	if err != nil {
		t.Fatalf("AwardXp(0) error: %v", err)
	}
	if state.UserGamificationTotalXP != 50 {
		t.Fatalf("xp=%d, want 50", state.UserGamificationTotalXP)
	}
}

func TestAwardXpRejectsNegative(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	if _, err := AwardXp(db, nil, userID, 30); err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}
	if _, err := AwardXp(db, nil, userID, -10); err != ErrNegativeXP {
		t.Fatalf("err=%v, want ErrNegativeXP", err)
	}

	state, err := GetOrInitState(db, userID)
	if err != nil {
		t.Fatalf("GetOrInitState error: %v", err)
	}
	if state.UserGamificationTotalXP != 30 {
		t.Fatalf("xp=%d, total tidak boleh berubah setelah award ditolak", state.UserGamificationTotalXP)
	}
}

func TestGetOrInitStateLazyCreate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	state, err := GetOrInitState(db, userID)
	if err != nil {
		t.Fatalf("GetOrInitState error: %v", err)
	}
	if state.UserGamificationTotalXP != 0 || state.UserGamificationLevel != 1 {
		t.Fatalf("state awal = xp=%d level=%d, want xp=0 level=1",
			state.UserGamificationTotalXP, state.UserGamificationLevel)
	}
	if state.UserGamificationCurrentStreakDays != 0 || state.UserGamificationLastActivityDate != nil {
		t.Fatalf("streak awal harus kosong: %+v", state)
	}
}

func TestUpdateStreakTransitions(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	day1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	// Aktivitas pertama → streak 1.
	state, err := UpdateStreakAt(db, nil, userID, day1)
	if err != nil {
		t.Fatalf("UpdateStreakAt error: %v", err)
	}
	if state.UserGamificationCurrentStreakDays != 1 {
		t.Fatalf("streak=%d, want 1", state.UserGamificationCurrentStreakDays)
	}

	// Hari yang sama (jam berbeda) → no-op.
	state, err = UpdateStreakAt(db, nil, userID, day1.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("UpdateStreakAt error: %v", err)
	}
	if state.UserGamificationCurrentStreakDays != 1 {
		t.Fatalf("streak=%d setelah aktivitas kedua di hari sama, want 1", state.UserGamificationCurrentStreakDays)
	}

	// Keesokan harinya → lanjut.
	state, err = UpdateStreakAt(db, nil, userID, day1.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("UpdateStreakAt error: %v", err)
	}
	if state.UserGamificationCurrentStreakDays != 2 {
		t.Fatalf("streak=%d, want 2", state.UserGamificationCurrentStreakDays)
	}

	// Bolong sehari → reset ke 1, longest tetap 2.
	state, err = UpdateStreakAt(db, nil, userID, day1.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("UpdateStreakAt error: %v", err)
	}
	if state.UserGamificationCurrentStreakDays != 1 {
		t.Fatalf("streak=%d setelah bolong, want 1", state.UserGamificationCurrentStreakDays)
	}
	if state.UserGamificationLongestStreakDays != 2 {
		t.Fatalf("longest=%d, want 2", state.UserGamificationLongestStreakDays)
	}
}

func TestUpdateStreakAcrossMidnightUTC(t *testing.T) {
	db := testutil.OpenTestDB(t)
	userID := uuid.New()

	// 23:59 UTC lalu 00:01 UTC keesokannya = dua hari kalender berurutan.
	late := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC)

	if _, err := UpdateStreakAt(db, nil, userID, late); err != nil {
		t.Fatalf("UpdateStreakAt error: %v", err)
	}
	state, err := UpdateStreakAt(db, nil, userID, early)
	if err != nil {
		t.Fatalf("UpdateStreakAt error: %v", err)
	}
	if state.UserGamificationCurrentStreakDays != 2 {
		t.Fatalf("streak=%d, want 2", state.UserGamificationCurrentStreakDays)
	}
}

func TestMirrorToCacheWritesLocalTier(t *testing.T) {
	db := testutil.OpenTestDB(t)
	cache := testutil.OpenTestDB(t)
	userID := uuid.New()

	if _, err := AwardXp(db, cache, userID, 75); err != nil {
		t.Fatalf("AwardXp error: %v", err)
	}

	local, err := GetOrInitState(cache, userID)
	if err != nil {
		t.Fatalf("baca cache error: %v", err)
	}
	if local.UserGamificationTotalXP != 75 {
		t.Fatalf("cache xp=%d, want 75", local.UserGamificationTotalXP)
	}
}
