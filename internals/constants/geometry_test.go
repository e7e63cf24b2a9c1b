package constants

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestFormulaCatalog(t *testing.T) {
	tabung, ok := FormulaFor(GeometryTabung)
	if !ok || !tabung.NeedsHeight {
		t.Fatalf("tabung harus ada di katalog dan butuh tinggi")
	}
	if got := tabung.Volume(7, 10); !almostEqual(got, math.Pi*490) {
		t.Fatalf("volume tabung r=7 t=10 = %f, want πr²t", got)
	}
	if got := tabung.SurfaceArea(7, 10); !almostEqual(got, 2*math.Pi*7*17) {
		t.Fatalf("luas tabung = %f, want 2πr(r+t)", got)
	}

	kerucut, _ := FormulaFor(GeometryKerucut)
	if got := kerucut.Volume(3, 4); !almostEqual(got, math.Pi*12) {
		t.Fatalf("volume kerucut r=3 t=4 = %f, want πr²t/3", got)
	}
	// r=3 t=4 → garis pelukis 5.
	if got := kerucut.SurfaceArea(3, 4); !almostEqual(got, math.Pi*24) {
		t.Fatalf("luas kerucut = %f, want πr(r+s)", got)
	}

	bola, _ := FormulaFor(GeometryBola)
	if bola.NeedsHeight {
		t.Fatal("bola tidak butuh tinggi")
	}
	// Tinggi diabaikan untuk bola.
	if bola.Volume(6, 0) != bola.Volume(6, 99) {
		t.Fatal("tinggi harus diabaikan untuk volume bola")
	}
	if got := bola.Volume(6, 0); !almostEqual(got, 288*math.Pi) {
		t.Fatalf("volume bola r=6 = %f, want 4πr³/3", got)
	}
}

func TestParseGeometryKind(t *testing.T) {
	if k, ok := ParseGeometryKind("  Tabung "); !ok || k != GeometryTabung {
		t.Fatalf("parse gagal: %v %v", k, ok)
	}
	if _, ok := ParseGeometryKind("kubus"); ok {
		t.Fatal("kubus bukan varian yang didukung")
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{-10, 1}, // nilai rusak di-clamp
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", c.xp, got, c.want)
		}
	}
}

func TestTabIndexBounds(t *testing.T) {
	for idx := 0; idx < TotalTabsPerModule; idx++ {
		if !IsValidTabIndex(idx) {
			t.Fatalf("indeks %d harus valid", idx)
		}
	}
	if IsValidTabIndex(-1) || IsValidTabIndex(5) {
		t.Fatal("indeks di luar 0..4 harus ditolak")
	}
}
