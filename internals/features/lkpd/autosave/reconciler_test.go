package autosave

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestScheduleCoalescesEdits(t *testing.T) {
	r := NewReconciler(30 * time.Millisecond)
	key := Key(uuid.New(), 1)

	var fired int32
	var lastSeen int32
	for i := 1; i <= 5; i++ {
		v := int32(i)
		r.Schedule(key, func() error {
			atomic.AddInt32(&fired, 1)
			atomic.StoreInt32(&lastSeen, v)
			return nil
		})
		time.Sleep(5 * time.Millisecond) // masih di dalam jendela tenang
	}

	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Fatalf("persist terpanggil %d kali, want 1 (rentetan edit menyatu)", got)
	}
	if got := atomic.LoadInt32(&lastSeen); got != 5 {
		t.Fatalf("versi terpersist=%d, want 5 (edit terakhir)", got)
	}
}

func TestScheduleRearmsTimer(t *testing.T) {
	r := NewReconciler(40 * time.Millisecond)
	key := Key(uuid.New(), 2)

	var fired int32
	r.Schedule(key, func() error {
		atomic.AddInt32(&fired, 1)
		return nil
	})

	// Edit kedua di tengah jendela me-rearm timer.
	time.Sleep(25 * time.Millisecond)
	r.Schedule(key, func() error {
		atomic.AddInt32(&fired, 1)
		return nil
	})

	// 25ms lagi = lewat jendela pertama tapi belum jendela kedua.
	time.Sleep(25 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Fatalf("persist terpanggil terlalu cepat (%d kali)", got)
	}

	time.Sleep(40 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Fatalf("persist terpanggil %d kali, want 1", got)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	r := NewReconciler(20 * time.Millisecond)
	projectID := uuid.New()

	var stage1, stage2 int32
	r.Schedule(Key(projectID, 1), func() error {
		atomic.AddInt32(&stage1, 1)
		return nil
	})
	r.Schedule(Key(projectID, 2), func() error {
		atomic.AddInt32(&stage2, 1)
		return nil
	})

	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&stage1) != 1 || atomic.LoadInt32(&stage2) != 1 {
		t.Fatalf("stage1=%d stage2=%d, tiap (proyek, tahap) harus punya timer sendiri",
			atomic.LoadInt32(&stage1), atomic.LoadInt32(&stage2))
	}
}

func TestCancelDropsPending(t *testing.T) {
	r := NewReconciler(20 * time.Millisecond)
	key := Key(uuid.New(), 3)

	var fired int32
	r.Schedule(key, func() error {
		atomic.AddInt32(&fired, 1)
		return nil
	})
	r.Cancel(key)

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Fatalf("persist terpanggil %d kali setelah Cancel, want 0", got)
	}
	if r.PendingCount() != 0 {
		t.Fatalf("pending=%d, want 0", r.PendingCount())
	}
}

func TestFlushAllRunsImmediately(t *testing.T) {
	r := NewReconciler(time.Hour) // jendela panjang; hanya FlushAll yang memicu
	projectID := uuid.New()

	var fired int32
	r.Schedule(Key(projectID, 1), func() error {
		atomic.AddInt32(&fired, 1)
		return nil
	})
	r.Schedule(Key(projectID, 2), func() error {
		atomic.AddInt32(&fired, 1)
		return nil
	})

	r.FlushAll()
	if got := atomic.LoadInt32(&fired); got != 2 {
		t.Fatalf("FlushAll menjalankan %d persist, want 2", got)
	}
	if r.PendingCount() != 0 {
		t.Fatalf("pending=%d setelah FlushAll, want 0", r.PendingCount())
	}
}
