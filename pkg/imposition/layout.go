package imposition

import (
	"fmt"
	"iter"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
)

// PagesPerSheet is the number of input pages one folded double-wide sheet
// carries: two on the front and two on the back.
const PagesPerSheet = 4

// Face selects one printed side of a sheet.
type Face int

const (
	Front Face = iota
	Back
)

func (f Face) String() string {
	if f == Back {
		return "back"
	}
	return "front"
}

// Side selects one half of a double-wide face.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Slot addresses a single container: one half of one face of one sheet.
type Slot struct {
	Sheet int
	Face  Face
	Side  Side
}

func (s Slot) String() string {
	return fmt.Sprintf("sheet %d %s %s", s.Sheet, s.Face, s.Side)
}

// SheetCount returns how many double-wide sheets are needed for pageCount
// pages, i.e. ceil(pageCount/4).
func SheetCount(pageCount int) (int, error) {
	if pageCount < 0 {
		return 0, apperr.New(apperr.ErrCodeInvalidInput, "page count must not be negative, got %d", pageCount)
	}
	return (pageCount + PagesPerSheet - 1) / PagesPerSheet, nil
}

// ContainerOrder yields the containers of a booklet with the given number
// of sheets in the order pages are assigned to them. The outer half of the
// stack is filled walking sheets forwards (back-right, front-left), the
// inner half walking backwards (front-right, back-left). Once folded, the
// stack then reads 1..4*sheets.
//
// The sequence is recomputed on every range, so it can be iterated any
// number of times.
func ContainerOrder(sheets int) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for i := 0; i < sheets; i++ {
			if !yield(Slot{Sheet: i, Face: Back, Side: Right}) {
				return
			}
			if !yield(Slot{Sheet: i, Face: Front, Side: Left}) {
				return
			}
		}
		for i := sheets - 1; i >= 0; i-- {
			if !yield(Slot{Sheet: i, Face: Front, Side: Right}) {
				return
			}
			if !yield(Slot{Sheet: i, Face: Back, Side: Left}) {
				return
			}
		}
	}
}
