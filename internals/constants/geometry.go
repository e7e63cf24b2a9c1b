package constants

import (
	"math"
	"strings"
)

// =======================
// KATALOG BANGUN RUANG
// =======================

// GeometryKind adalah varian bangun ruang yang didukung aplikasi.
// Diselesaikan sekali saat load lewat ParseGeometryKind, bukan switch string
// berulang di tiap kalkulasi.
type GeometryKind string

const (
	GeometryTabung  GeometryKind = "tabung"
	GeometryKerucut GeometryKind = "kerucut"
	GeometryBola    GeometryKind = "bola"
)

// GeometryFormula adalah tabel rumus per varian (volume & luas permukaan).
// height diabaikan untuk bola.
type GeometryFormula struct {
	Kind        GeometryKind
	DisplayName string
	NeedsHeight bool
	Volume      func(radius, height float64) float64
	SurfaceArea func(radius, height float64) float64
}

var geometryCatalog = map[GeometryKind]GeometryFormula{
	GeometryTabung: {
		Kind:        GeometryTabung,
		DisplayName: "Tabung",
		NeedsHeight: true,
		Volume:      func(r, t float64) float64 { return math.Pi * r * r * t },
		SurfaceArea: func(r, t float64) float64 { return 2 * math.Pi * r * (r + t) },
	},
	GeometryKerucut: {
		Kind:        GeometryKerucut,
		DisplayName: "Kerucut",
		NeedsHeight: true,
		Volume:      func(r, t float64) float64 { return math.Pi * r * r * t / 3 },
		SurfaceArea: func(r, t float64) float64 {
			s := math.Sqrt(r*r + t*t) // garis pelukis
			return math.Pi * r * (r + s)
		},
	},
	GeometryBola: {
		Kind:        GeometryBola,
		DisplayName: "Bola",
		NeedsHeight: false,
		Volume:      func(r, _ float64) float64 { return 4 * math.Pi * r * r * r / 3 },
		SurfaceArea: func(r, _ float64) float64 { return 4 * math.Pi * r * r },
	},
}

// ParseGeometryKind menerima slug modul ("tabung", "kerucut", "bola").
func ParseGeometryKind(s string) (GeometryKind, bool) {
	k := GeometryKind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := geometryCatalog[k]
	return k, ok
}

// FormulaFor mengembalikan tabel rumus untuk varian yang sudah valid.
func FormulaFor(kind GeometryKind) (GeometryFormula, bool) {
	f, ok := geometryCatalog[kind]
	return f, ok
}

// IsValidModuleID: modul pembelajaran diidentifikasi slug bangun ruangnya.
func IsValidModuleID(moduleID string) bool {
	_, ok := ParseGeometryKind(moduleID)
	return ok
}

// =======================
// TAB MODUL
// =======================

// Setiap modul punya 5 tab tetap; indeks 0..4.
const TotalTabsPerModule = 5

var ModuleTabNames = [TotalTabsPerModule]string{
	"konsep",
	"unsur",
	"jaring-jaring",
	"rumus",
	"latihan",
}

// IsValidTabIndex: indeks tab harus 0..4.
func IsValidTabIndex(idx int) bool {
	return idx >= 0 && idx < TotalTabsPerModule
}
