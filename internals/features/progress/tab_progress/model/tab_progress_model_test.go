package model

import "testing"

func TestVisitedTabsDedupAndFilter(t *testing.T) {
	var m ModuleTabProgressModel
	m.SetVisitedTabs([]int{4, 1, 4, 1, 9, -3, 0})

	got := m.VisitedTabs()
	want := []int{0, 1, 4}
	if len(got) != len(want) {
		t.Fatalf("visited=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited=%v, want %v (terurut, dedup, difilter)", got, want)
		}
	}
}

func TestCompletionPercentageSteps(t *testing.T) {
	cases := []struct {
		tabs []int
		want int
	}{
		{nil, 0},
		{[]int{0}, 20},
		{[]int{0, 1}, 40},
		{[]int{0, 1, 2}, 60},
		{[]int{0, 1, 2, 3}, 80},
		{[]int{0, 1, 2, 3, 4}, 100},
	}
	for _, c := range cases {
		var m ModuleTabProgressModel
		m.SetVisitedTabs(c.tabs)
		if got := m.CompletionPercentage(); got != c.want {
			t.Fatalf("persentase(%v)=%d, want %d", c.tabs, got, c.want)
		}
	}
}

func TestIsCompleteNeedsAllFiveTabs(t *testing.T) {
	var m ModuleTabProgressModel
	m.SetVisitedTabs([]int{0, 1, 2, 3})
	if m.IsComplete() {
		t.Fatal("4 tab belum lengkap")
	}
	m.SetVisitedTabs([]int{0, 1, 2, 3, 4})
	if !m.IsComplete() {
		t.Fatal("5 tab harus lengkap")
	}
}
