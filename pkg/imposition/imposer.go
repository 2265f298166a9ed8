package imposition

import (
	"fmt"
	"strings"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
)

// Page is the content of one container: either a handle to an input page or
// nothing. The zero value is the blank page.
type Page[P any] struct {
	value   P
	present bool
}

// Content wraps an input page handle.
func Content[P any](p P) Page[P] {
	return Page[P]{value: p, present: true}
}

// Blank returns the blank page.
func Blank[P any]() Page[P] {
	return Page[P]{}
}

// Get returns the page handle and whether there is one.
func (p Page[P]) Get() (P, bool) {
	return p.value, p.present
}

// IsBlank reports whether nothing is drawn for p.
func (p Page[P]) IsBlank() bool {
	return !p.present
}

func (p Page[P]) String() string {
	if !p.present {
		return "-"
	}
	return fmt.Sprint(p.value)
}

// Pages wraps every handle in handles as content.
func Pages[P any](handles []P) []Page[P] {
	out := make([]Page[P], len(handles))
	for i, h := range handles {
		out[i] = Content(h)
	}
	return out
}

// BlankPages returns n blank pages.
func BlankPages[P any](n int) ([]Page[P], error) {
	if n < 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidUsage, "blank page count must not be negative, got %d", n)
	}
	return make([]Page[P], n), nil
}

// WithLeadingBlanks returns pages preceded by n blank pages.
func WithLeadingBlanks[P any](pages []Page[P], n int) ([]Page[P], error) {
	blanks, err := BlankPages[P](n)
	if err != nil {
		return nil, err
	}
	return append(blanks, pages...), nil
}

// PrintPage is one face of a sheet, split into a left and a right half.
type PrintPage[P any] struct {
	Left  Page[P]
	Right Page[P]
}

// Sheet is one physical leaf of the booklet.
type Sheet[P any] struct {
	Front PrintPage[P]
	Back  PrintPage[P]
}

func (s *Sheet[P]) container(face Face, side Side) *Page[P] {
	pp := &s.Front
	if face == Back {
		pp = &s.Back
	}
	if side == Right {
		return &pp.Right
	}
	return &pp.Left
}

// Booklet is the ordered stack of sheets for one conversion.
type Booklet[P any] struct {
	Sheets []Sheet[P]
}

// Assign places pages, in order, into the containers of a freshly built
// booklet following ContainerOrder. When len(pages) is not a multiple of
// four the trailing containers of the traversal stay blank.
func Assign[P any](pages []Page[P]) (*Booklet[P], error) {
	n, err := SheetCount(len(pages))
	if err != nil {
		return nil, err
	}
	b := &Booklet[P]{Sheets: make([]Sheet[P], n)}

	i := 0
	for slot := range ContainerOrder(n) {
		if i == len(pages) {
			break
		}
		*b.At(slot) = pages[i]
		i++
	}
	return b, nil
}

// At returns the container addressed by slot.
func (b *Booklet[P]) At(slot Slot) *Page[P] {
	return b.Sheets[slot.Sheet].container(slot.Face, slot.Side)
}

// SheetCount returns the number of sheets in the booklet.
func (b *Booklet[P]) SheetCount() int {
	return len(b.Sheets)
}

// OutputOrder returns the faces in the order they are handed to a writer:
// the backs of all sheets, then the fronts of all sheets. Instructions
// describes how to feed this order through a printer.
func (b *Booklet[P]) OutputOrder() []PrintPage[P] {
	out := make([]PrintPage[P], 0, 2*len(b.Sheets))
	for _, s := range b.Sheets {
		out = append(out, s.Back)
	}
	for _, s := range b.Sheets {
		out = append(out, s.Front)
	}
	return out
}

// Plan describes every sheet on its own line, for debugging a layout.
func (b *Booklet[P]) Plan() []string {
	lines := make([]string, len(b.Sheets))
	for i, s := range b.Sheets {
		lines[i] = fmt.Sprintf("sheet %2d: front=[%s | %s] back=[%s | %s]",
			i+1, s.Front.Left, s.Front.Right, s.Back.Left, s.Back.Right)
	}
	return lines
}

func (b *Booklet[P]) String() string {
	return strings.Join(b.Plan(), "\n")
}

// Impose composes the faces in output order into double-wide pages for
// source pages of the given size.
func (b *Booklet[P]) Impose(size Size) []DoublePage[P] {
	faces := b.OutputOrder()
	out := make([]DoublePage[P], len(faces))
	for i, pp := range faces {
		out[i] = ComposeDoublePage(pp, size)
	}
	return out
}
