package imaging

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindRegions(t *testing.T) {
	mask := gridFromRows([][]int{
		{255, 255, 0, 0, 0, 0},
		{255, 0, 0, 0, 9, 0},
		{0, 0, 0, 0, 0, 9},
		{0, 0, 0, 0, 0, 9},
		{0, 7, 0, 0, 0, 0},
	})

	got := FindRegions(mask, 1)

	// Equal areas keep scan order, so the top-left region leads.
	want := []Region{
		{Bounds: Bounds{Top: 0, Left: 0, Bottom: 2, Right: 2}, Centroid: Point{Row: 0, Col: 0}, Area: 3},
		{Bounds: Bounds{Top: 1, Left: 4, Bottom: 4, Right: 6}, Centroid: Point{Row: 2, Col: 4}, Area: 3},
		{Bounds: Bounds{Top: 4, Left: 1, Bottom: 5, Right: 2}, Centroid: Point{Row: 4, Col: 1}, Area: 1},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindRegions mismatch (-want +got):\n%s", diff)
	}
}

func TestFindRegions_MinArea(t *testing.T) {
	mask := gridFromRows([][]int{
		{1, 0, 1},
		{0, 0, 1},
	})

	got := FindRegions(mask, 2)
	if len(got) != 1 {
		t.Fatalf("regions: got %d, want 1", len(got))
	}
	if got[0].Area != 2 || got[0].Bounds != (Bounds{Top: 0, Left: 2, Bottom: 2, Right: 3}) {
		t.Errorf("region: got %+v", got[0])
	}
}

func TestFindRegions_DiagonalConnects(t *testing.T) {
	mask := gridFromRows([][]int{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})

	got := FindRegions(mask, 1)
	if len(got) != 1 || got[0].Area != 3 {
		t.Errorf("diagonal samples should form one region, got %+v", got)
	}
}

func TestFindRegions_Empty(t *testing.T) {
	if got := FindRegions(NewGrid(3, 3, 255), 1); len(got) != 0 {
		t.Errorf("all-zero mask: got %d regions, want 0", len(got))
	}
	if got := FindRegions(NewGrid(0, 0, 255), 1); len(got) != 0 {
		t.Errorf("empty mask: got %d regions, want 0", len(got))
	}
}
