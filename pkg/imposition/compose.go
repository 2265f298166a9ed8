package imposition

import "fmt"

// Size is a page size in PDF points.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%.2fx%.2f", s.Width, s.Height)
}

// Placement draws one input page, unscaled, with its lower-left corner at
// (X, Y) on a double-wide page.
type Placement[P any] struct {
	Page P
	X, Y float64
}

// DoublePage is a blank page of Size with zero, one or two pages drawn on it.
type DoublePage[P any] struct {
	Size       Size
	Placements []Placement[P]
}

// ComposeDoublePage lays out one face for input pages of the given size.
// The result is twice as wide; the left page sits at the origin and the
// right page is shifted by one page width. Blank halves draw nothing.
func ComposeDoublePage[P any](pp PrintPage[P], size Size) DoublePage[P] {
	dp := DoublePage[P]{Size: Size{Width: 2 * size.Width, Height: size.Height}}
	if p, ok := pp.Left.Get(); ok {
		dp.Placements = append(dp.Placements, Placement[P]{Page: p})
	}
	if p, ok := pp.Right.Get(); ok {
		dp.Placements = append(dp.Placements, Placement[P]{Page: p, X: size.Width})
	}
	return dp
}
