package imaging

import "sort"

// Bounds is a rectangle of grid coordinates. Top and Left are inclusive,
// Bottom and Right exclusive, matching Crop.
type Bounds struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Point is a grid coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Region is one 8-connected group of nonzero samples.
type Region struct {
	// Bounds encloses every sample of the region.
	Bounds Bounds `json:"bounds"`

	// Centroid is the mean position of the region's samples, truncated.
	Centroid Point `json:"centroid"`

	// Area is the number of samples in the region.
	Area int `json:"area"`
}

// FindRegions groups the nonzero samples of mask into 8-connected regions
// and returns those with at least minArea samples, largest first. Regions
// of equal area keep scan order (top to bottom, left to right by first
// sample).
func FindRegions(mask *Grid, minArea int) []Region {
	visited := make([]bool, len(mask.pix))
	regions := make([]Region, 0)

	for r := 0; r < mask.rows; r++ {
		for c := 0; c < mask.cols; c++ {
			i := r*mask.cols + c
			if mask.pix[i] == 0 || visited[i] {
				continue
			}
			reg := fillRegion(mask, visited, r, c)
			if reg.Area >= minArea {
				regions = append(regions, reg)
			}
		}
	}

	sort.SliceStable(regions, func(a, b int) bool {
		return regions[a].Area > regions[b].Area
	})
	return regions
}

// fillRegion marks the region containing (row, col) as visited and
// measures it. The fill is stack based.
func fillRegion(mask *Grid, visited []bool, row, col int) Region {
	b := Bounds{Top: row, Left: col, Bottom: row + 1, Right: col + 1}
	var area, sumR, sumC int

	stack := []Point{{Row: row, Col: col}}
	visited[row*mask.cols+col] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		area++
		sumR += p.Row
		sumC += p.Col
		b.Top = min(b.Top, p.Row)
		b.Left = min(b.Left, p.Col)
		b.Bottom = max(b.Bottom, p.Row+1)
		b.Right = max(b.Right, p.Col+1)

		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nr, nc := p.Row+dr, p.Col+dc
				if !mask.InBounds(nr, nc) {
					continue
				}
				j := nr*mask.cols + nc
				if visited[j] || mask.pix[j] == 0 {
					continue
				}
				visited[j] = true
				stack = append(stack, Point{Row: nr, Col: nc})
			}
		}
	}

	return Region{
		Bounds:   b,
		Centroid: Point{Row: sumR / area, Col: sumC / area},
		Area:     area,
	}
}
