// Package imposition computes booklet layouts.
//
// A booklet is a stack of double-wide sheets. Each sheet carries four input
// pages: two side by side on the front and two on the back. Printing the
// stack double-sided, folding it in half and trimming gives the input pages
// in reading order.
//
// The package is independent of any document format. Page handles are a
// type parameter; the PDF code uses 1-based page numbers.
//
//	pages, _ := imposition.WithLeadingBlanks(imposition.Pages([]int{1, 2, 3, 4}), 0)
//	b, _ := imposition.Assign(pages)
//	doubles := b.Impose(imposition.Size{Width: 595, Height: 842})
//	// doubles[0] is the back of sheet 1: page 4 left, page 1 right.
//	// doubles[1] is the front of sheet 1: page 2 left, page 3 right.
package imposition
