package autosave

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Jeda tenang default sebelum draft benar-benar ditulis.
const DefaultQuietPeriod = 3 * time.Second

// Reconciler men-debounce penyimpanan draft per (proyek, tahap): setiap edit
// me-rearm timer; baru setelah jeda tenang tanpa edit draft dipersist, dan
// rentetan edit dalam jendela itu menyatu jadi satu tulisan. Ini murni
// kontrol write-amplification — edit yang masih di dalam jendela saat proses
// berhenti memang hilang, dan itu trade-off yang diterima.
type Reconciler struct {
	mu      sync.Mutex
	quiet   time.Duration
	timers  map[string]*time.Timer
	pending map[string]func() error
}

func NewReconciler(quiet time.Duration) *Reconciler {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Reconciler{
		quiet:   quiet,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]func() error),
	}
}

// Key membentuk kunci debounce per (proyek, tahap).
func Key(projectID uuid.UUID, stage int) string {
	return fmt.Sprintf("%s:%d", projectID.String(), stage)
}

// Schedule (re)arm timer untuk key; persist yang lama diganti yang baru.
func (r *Reconciler) Schedule(key string, persist func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[key]; ok {
		t.Stop()
	}
	r.pending[key] = persist
	r.timers[key] = time.AfterFunc(r.quiet, func() {
		r.fire(key)
	})
}

// Cancel membuang draft tertunda untuk key (dipakai saat tahap di-advance,
// supaya draft basi tidak menimpa payload yang sudah distempel).
func (r *Reconciler) Cancel(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[key]; ok {
		t.Stop()
		delete(r.timers, key)
	}
	delete(r.pending, key)
}

// Flush menjalankan persist tertunda untuk key sekarang juga.
func (r *Reconciler) Flush(key string) {
	r.fire(key)
}

// FlushAll dipakai saat shutdown: semua draft tertunda dipersist.
func (r *Reconciler) FlushAll() {
	r.mu.Lock()
	keys := make([]string, 0, len(r.pending))
	for k := range r.pending {
		keys = append(keys, k)
	}
	r.mu.Unlock()

	for _, k := range keys {
		r.fire(k)
	}
}

// PendingCount untuk observabilitas/test.
func (r *Reconciler) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Reconciler) fire(key string) {
	r.mu.Lock()
	persist, ok := r.pending[key]
	if ok {
		delete(r.pending, key)
	}
	if t, exists := r.timers[key]; exists {
		t.Stop()
		delete(r.timers, key)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	if err := persist(); err != nil {
		log.Printf("[WARN] Auto-save %s gagal (degraded): %v", key, err)
	}
}
