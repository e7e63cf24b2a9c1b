package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"geometriku_backend/internals/features/progress/gamification/model"
)

var ErrNegativeXP = errors.New("jumlah XP tidak boleh negatif")

// GetOrInitState mengambil ledger user; dibuat lazy dengan state nol saat
// pertama kali dibaca.
func GetOrInitState(db *gorm.DB, userID uuid.UUID) (*model.UserGamificationModel, error) {
	var state model.UserGamificationModel
	err := db.Where("user_gamification_user_id = ?", userID).First(&state).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	state = model.UserGamificationModel{
		UserGamificationUserID: userID,
		UserGamificationLevel:  1,
	}
	if err := db.Create(&state).Error; err != nil {
		log.Println("[ERROR] Gagal inisialisasi user_gamifications:", err)
		return nil, err
	}
	return &state, nil
}

// AwardXp menambah XP dan menghitung ulang level dalam satu transaksi,
// sehingga pembaca lain tidak pernah melihat total dan level yang tidak
// konsisten. amount = 0 sah (dipakai caller untuk kunjungan ulang).
func AwardXp(db *gorm.DB, cache *gorm.DB, userID uuid.UUID, amount int) (*model.UserGamificationModel, error) {
	if amount < 0 {
		return nil, ErrNegativeXP
	}

	var state *model.UserGamificationModel
	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := GetOrInitState(tx, userID)
		if err != nil {
			return err
		}
		s.UserGamificationTotalXP += amount
		s.RecomputeLevel()
		if err := tx.Save(s).Error; err != nil {
			log.Println("[ERROR] Gagal update ledger XP:", err)
			return err
		}
		state = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	if amount > 0 {
		log.Printf("[SERVICE] AwardXp - userID: %s amount: %d total: %d level: %d",
			userID.String(), amount, state.UserGamificationTotalXP, state.UserGamificationLevel)
	}

	mirrorToCache(cache, state)
	return state, nil
}

// UpdateStreak dipanggil sekali per aktivitas yang memenuhi syarat.
// Perbandingan tanggal memakai kalender UTC; idempotent dalam satu hari.
func UpdateStreak(db *gorm.DB, cache *gorm.DB, userID uuid.UUID) (*model.UserGamificationModel, error) {
	return UpdateStreakAt(db, cache, userID, time.Now().UTC())
}

// UpdateStreakAt adalah varian dengan jam tersuntik.
// Tiga transisi: hari ini sudah tercatat → no-op; kemarin → lanjut (+1);
// selain itu → reset ke 1.
func UpdateStreakAt(db *gorm.DB, cache *gorm.DB, userID uuid.UUID, now time.Time) (*model.UserGamificationModel, error) {
	today := truncateToDay(now)

	var state *model.UserGamificationModel
	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := GetOrInitState(tx, userID)
		if err != nil {
			return err
		}

		if s.UserGamificationLastActivityDate != nil {
			last := truncateToDay(*s.UserGamificationLastActivityDate)
			if last.Equal(today) {
				// Sudah dihitung hari ini.
				state = s
				return nil
			}
			if last.AddDate(0, 0, 1).Equal(today) {
				s.UserGamificationCurrentStreakDays++
			} else {
				s.UserGamificationCurrentStreakDays = 1
			}
		} else {
			s.UserGamificationCurrentStreakDays = 1
		}

		if s.UserGamificationCurrentStreakDays > s.UserGamificationLongestStreakDays {
			s.UserGamificationLongestStreakDays = s.UserGamificationCurrentStreakDays
		}
		s.UserGamificationLastActivityDate = &today

		if err := tx.Save(s).Error; err != nil {
			log.Println("[ERROR] Gagal update streak:", err)
			return err
		}
		state = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	mirrorToCache(cache, state)
	return state, nil
}

// mirrorToCache menyalin ledger ke tier lokal. Gagal di sini tidak membatalkan
// state utama — hanya dicatat (PersistenceDegraded).
func mirrorToCache(cache *gorm.DB, state *model.UserGamificationModel) {
	if cache == nil || state == nil {
		return
	}
	var row model.UserGamificationModel
	err := cache.Where(model.UserGamificationModel{UserGamificationUserID: state.UserGamificationUserID}).
		Assign(map[string]interface{}{
			"user_gamification_total_xp":            state.UserGamificationTotalXP,
			"user_gamification_level":               state.UserGamificationLevel,
			"user_gamification_current_streak_days": state.UserGamificationCurrentStreakDays,
			"user_gamification_longest_streak_days": state.UserGamificationLongestStreakDays,
			"user_gamification_last_activity_date":  state.UserGamificationLastActivityDate,
		}).
		FirstOrCreate(&row).Error
	if err != nil {
		log.Println("[WARN] Cache lokal gagal menyimpan ledger (degraded):", err)
	}
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
