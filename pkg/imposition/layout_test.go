package imposition

import (
	"reflect"
	"slices"
	"testing"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
)

func TestSheetCount(t *testing.T) {
	for n := 0; n <= 64; n++ {
		got, err := SheetCount(n)
		if err != nil {
			t.Fatalf("SheetCount(%d): %v", n, err)
		}
		want := n / 4
		if n%4 != 0 {
			want++
		}
		if got != want {
			t.Fatalf("SheetCount(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestSheetCount_Negative(t *testing.T) {
	_, err := SheetCount(-1)
	if !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestContainerOrder_OneSheet(t *testing.T) {
	got := slices.Collect(ContainerOrder(1))
	want := []Slot{
		{0, Back, Right},
		{0, Front, Left},
		{0, Front, Right},
		{0, Back, Left},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order mismatch.\n got=%v\nwant=%v", got, want)
	}
}

func TestContainerOrder_ThreeSheets(t *testing.T) {
	got := slices.Collect(ContainerOrder(3))
	want := []Slot{
		{0, Back, Right}, {0, Front, Left},
		{1, Back, Right}, {1, Front, Left},
		{2, Back, Right}, {2, Front, Left},
		{2, Front, Right}, {2, Back, Left},
		{1, Front, Right}, {1, Back, Left},
		{0, Front, Right}, {0, Back, Left},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order mismatch.\n got=%v\nwant=%v", got, want)
	}
}

func TestContainerOrder_VisitsEachContainerOnce(t *testing.T) {
	for sheets := 0; sheets <= 12; sheets++ {
		seen := make(map[Slot]bool)
		count := 0
		for s := range ContainerOrder(sheets) {
			if seen[s] {
				t.Fatalf("%d sheets: %v visited twice", sheets, s)
			}
			if s.Sheet < 0 || s.Sheet >= sheets {
				t.Fatalf("%d sheets: %v out of range", sheets, s)
			}
			seen[s] = true
			count++
		}
		if count != 4*sheets {
			t.Fatalf("%d sheets: got %d containers, want %d", sheets, count, 4*sheets)
		}
	}
}

func TestContainerOrder_Restartable(t *testing.T) {
	seq := ContainerOrder(4)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("second iteration differs:\n first=%v\nsecond=%v", first, second)
	}
}

func TestContainerOrder_EarlyStop(t *testing.T) {
	var got []Slot
	for s := range ContainerOrder(5) {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}
	want := []Slot{{0, Back, Right}, {0, Front, Left}, {1, Back, Right}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestSlotString(t *testing.T) {
	if got := (Slot{2, Back, Left}).String(); got != "sheet 2 back left" {
		t.Fatalf("String() = %q", got)
	}
}
