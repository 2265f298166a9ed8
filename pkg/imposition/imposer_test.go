package imposition

import (
	"reflect"
	"strings"
	"testing"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
)

func pageNumbers(n int) []Page[int] {
	handles := make([]int, n)
	for i := range handles {
		handles[i] = i + 1
	}
	return Pages(handles)
}

func face(l, r int) PrintPage[int] {
	var pp PrintPage[int]
	if l > 0 {
		pp.Left = Content(l)
	}
	if r > 0 {
		pp.Right = Content(r)
	}
	return pp
}

func TestAssign_FourPages(t *testing.T) {
	b, err := Assign(pageNumbers(4))
	if err != nil {
		t.Fatal(err)
	}
	want := []Sheet[int]{{Front: face(2, 3), Back: face(4, 1)}}
	if !reflect.DeepEqual(b.Sheets, want) {
		t.Fatalf("sheets mismatch.\n got=%v\nwant=%v", b.Sheets, want)
	}
}

func TestAssign_EightPages(t *testing.T) {
	b, err := Assign(pageNumbers(8))
	if err != nil {
		t.Fatal(err)
	}
	want := []Sheet[int]{
		{Front: face(2, 7), Back: face(8, 1)},
		{Front: face(4, 5), Back: face(6, 3)},
	}
	if !reflect.DeepEqual(b.Sheets, want) {
		t.Fatalf("sheets mismatch.\n got=%v\nwant=%v", b.Sheets, want)
	}
}

func TestAssign_Empty(t *testing.T) {
	b, err := Assign[int](nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.SheetCount() != 0 {
		t.Fatalf("expected no sheets, got %d", b.SheetCount())
	}
	if got := b.OutputOrder(); len(got) != 0 {
		t.Fatalf("expected no output faces, got %v", got)
	}
}

func TestAssign_PartialSheet(t *testing.T) {
	tests := []struct {
		n    int
		want Sheet[int]
	}{
		{1, Sheet[int]{Back: face(0, 1)}},
		{2, Sheet[int]{Front: face(2, 0), Back: face(0, 1)}},
		{3, Sheet[int]{Front: face(2, 3), Back: face(0, 1)}},
	}
	for _, tt := range tests {
		b, err := Assign(pageNumbers(tt.n))
		if err != nil {
			t.Fatal(err)
		}
		if b.SheetCount() != 1 {
			t.Fatalf("n=%d: expected 1 sheet, got %d", tt.n, b.SheetCount())
		}
		if !reflect.DeepEqual(b.Sheets[0], tt.want) {
			t.Fatalf("n=%d: got %v, want %v", tt.n, b.Sheets[0], tt.want)
		}
	}
}

func TestAssign_LeadingBlanks(t *testing.T) {
	pages, err := WithLeadingBlanks(pageNumbers(8), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 10 {
		t.Fatalf("expected 10 pages, got %d", len(pages))
	}
	b, err := Assign(pages)
	if err != nil {
		t.Fatal(err)
	}
	if b.SheetCount() != 3 {
		t.Fatalf("expected 3 sheets, got %d", b.SheetCount())
	}
	want := []Sheet[int]{
		{Front: face(0, 0), Back: face(0, 0)},
		{Front: face(2, 7), Back: face(8, 1)},
		{Front: face(4, 5), Back: face(6, 3)},
	}
	if !reflect.DeepEqual(b.Sheets, want) {
		t.Fatalf("sheets mismatch.\n got=%v\nwant=%v", b.Sheets, want)
	}

	// The two containers left unvisited are the last two of the traversal.
	var empty []Slot
	i := 0
	for slot := range ContainerOrder(3) {
		if i >= len(pages) {
			empty = append(empty, slot)
		}
		i++
	}
	wantEmpty := []Slot{{0, Front, Right}, {0, Back, Left}}
	if !reflect.DeepEqual(empty, wantEmpty) {
		t.Fatalf("empty slots = %v, want %v", empty, wantEmpty)
	}
}

func TestWithLeadingBlanks_Negative(t *testing.T) {
	_, err := WithLeadingBlanks(pageNumbers(4), -1)
	if !apperr.Is(err, apperr.ErrCodeInvalidUsage) {
		t.Fatalf("expected INVALID_USAGE, got %v", err)
	}
}

func TestBlankPages(t *testing.T) {
	pages, err := BlankPages[int](3)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 {
		t.Fatalf("len = %d, want 3", len(pages))
	}
	for i, p := range pages {
		if !p.IsBlank() {
			t.Errorf("page %d should be blank", i)
		}
	}
}

// foldedPage returns the reading position of a half-face in a stack of k
// nested sheets folded in the middle, sheet 0 outermost. Sheet i is leaf i
// from the front cover and leaf i from the back cover: its outer face shows
// page 2i+1 on the right and its mirror 4k-2i on the left, and its inner
// face shows 2i+2 on the left and its mirror 4k-2i-1 on the right.
func foldedPage(k int, s Slot) int {
	last := 4 * k
	switch {
	case s.Face == Back && s.Side == Right:
		return 2*s.Sheet + 1
	case s.Face == Front && s.Side == Left:
		return 2*s.Sheet + 2
	case s.Face == Front && s.Side == Right:
		return last - 2*s.Sheet - 1
	default:
		return last - 2*s.Sheet
	}
}

func TestAssign_RoundTrip(t *testing.T) {
	for n := 0; n <= 41; n++ {
		b, err := Assign(pageNumbers(n))
		if err != nil {
			t.Fatal(err)
		}
		k := b.SheetCount()
		for i := 0; i < k; i++ {
			for _, face := range []Face{Front, Back} {
				for _, side := range []Side{Left, Right} {
					slot := Slot{Sheet: i, Face: face, Side: side}
					want := foldedPage(k, slot)
					got, ok := b.At(slot).Get()
					switch {
					case want > n && ok:
						t.Fatalf("n=%d: %v holds page %d, want blank", n, slot, got)
					case want <= n && (!ok || got != want):
						t.Fatalf("n=%d: %v holds %v, want page %d", n, slot, b.At(slot), want)
					}
				}
			}
		}
	}
}

func TestFoldedPage_FacingPagesSum(t *testing.T) {
	// Halves sharing a face are mirror images across the fold.
	for k := 1; k <= 6; k++ {
		for i := 0; i < k; i++ {
			for _, face := range []Face{Front, Back} {
				l := foldedPage(k, Slot{Sheet: i, Face: face, Side: Left})
				r := foldedPage(k, Slot{Sheet: i, Face: face, Side: Right})
				if l+r != 4*k+1 {
					t.Fatalf("k=%d sheet %d %v: %d + %d != %d", k, i, face, l, r, 4*k+1)
				}
			}
		}
		center := Slot{Sheet: k - 1, Face: Front, Side: Left}
		if got := foldedPage(k, center); got != 2*k {
			t.Fatalf("k=%d: center spread starts at %d, want %d", k, got, 2*k)
		}
	}
}

func TestAssign_EveryPageOnce(t *testing.T) {
	for n := 0; n <= 41; n++ {
		b, err := Assign(pageNumbers(n))
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[int]int)
		for _, s := range b.Sheets {
			for _, p := range []Page[int]{s.Front.Left, s.Front.Right, s.Back.Left, s.Back.Right} {
				if v, ok := p.Get(); ok {
					seen[v]++
				}
			}
		}
		if len(seen) != n {
			t.Fatalf("n=%d: %d distinct pages placed", n, len(seen))
		}
		for p, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: page %d placed %d times", n, p, c)
			}
		}
	}
}

func TestOutputOrder_BacksThenFronts(t *testing.T) {
	b, err := Assign(pageNumbers(8))
	if err != nil {
		t.Fatal(err)
	}
	got := b.OutputOrder()
	want := []PrintPage[int]{face(8, 1), face(6, 3), face(2, 7), face(4, 5)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("output order mismatch.\n got=%v\nwant=%v", got, want)
	}
}

func TestImpose_FourPages(t *testing.T) {
	size := Size{Width: 300, Height: 400}
	b, err := Assign(pageNumbers(4))
	if err != nil {
		t.Fatal(err)
	}
	got := b.Impose(size)
	double := Size{Width: 600, Height: 400}
	want := []DoublePage[int]{
		{Size: double, Placements: []Placement[int]{{Page: 4}, {Page: 1, X: 300}}},
		{Size: double, Placements: []Placement[int]{{Page: 2}, {Page: 3, X: 300}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("impose mismatch.\n got=%+v\nwant=%+v", got, want)
	}
}

func TestImpose_Empty(t *testing.T) {
	b, err := Assign[int](nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Impose(Size{Width: 1, Height: 1}); len(got) != 0 {
		t.Fatalf("expected no pages, got %d", len(got))
	}
}

func TestPlan(t *testing.T) {
	pages, _ := WithLeadingBlanks(pageNumbers(2), 1)
	b, err := Assign(pages)
	if err != nil {
		t.Fatal(err)
	}
	want := "sheet  1: front=[1 | 2] back=[- | -]"
	if got := b.String(); got != want {
		t.Fatalf("Plan() = %q, want %q", got, want)
	}
	if !strings.Contains(b.Plan()[0], "front=[1 | 2]") {
		t.Fatalf("unexpected plan %v", b.Plan())
	}
}
