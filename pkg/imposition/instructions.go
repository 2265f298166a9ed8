package imposition

import "fmt"

// Instructions tells the user how to print an imposed document on a
// single-sided printer: the first run prints the backs, the second the
// fronts on the reverse of the same stack.
type Instructions struct {
	Sheets int
}

// NewInstructions returns the print instructions for a booklet of the given
// number of sheets.
func NewInstructions(sheets int) Instructions {
	return Instructions{Sheets: sheets}
}

// FirstRun returns the 1-based output page range printed first.
func (in Instructions) FirstRun() (from, to int) {
	return 1, in.Sheets
}

// SecondRun returns the 1-based output page range printed on the other side.
func (in Instructions) SecondRun() (from, to int) {
	return in.Sheets + 1, 2 * in.Sheets
}

func (in Instructions) String() string {
	f1, t1 := in.FirstRun()
	f2, t2 := in.SecondRun()
	return fmt.Sprintf("Print pages %d to %d (however many copies you need).\n"+
		"Put them back in, rotated/flipped in order to print on the other side.\n"+
		"Print pages %d to %d.\n", f1, t1, f2, t2)
}
