// Package testpdf builds tiny PDF documents for tests.
package testpdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spookylukey/booklet-maker/pkg/imposition"
)

// A5 is a portrait A5 page in points.
var A5 = imposition.Size{Width: 420, Height: 595}

// Content returns the content stream drawn on the 0-based page i.
func Content(i int) string {
	return fmt.Sprintf("0 g %d 10 10 10 re f", 10+i)
}

// Build returns a minimal PDF with one page per size. Each page carries a
// small filled square in an unfiltered content stream.
func Build(sizes []imposition.Size) []byte {
	return build(sizes, false)
}

// BuildFlate is like Build but compresses the content streams with
// FlateDecode.
func BuildFlate(sizes []imposition.Size) []byte {
	return build(sizes, true)
}

func build(sizes []imposition.Size, flate bool) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<</Type/Catalog/Pages 2 0 R>>")

	kids := ""
	for i := range sizes {
		kids += fmt.Sprintf("%d 0 R ", 3+2*i)
	}
	obj(fmt.Sprintf("<</Type/Pages/Kids[%s]/Count %d>>", kids, len(sizes)))

	for i, s := range sizes {
		obj(fmt.Sprintf("<</Type/Page/Parent 2 0 R/MediaBox[0 0 %g %g]/Resources<<>>/Contents %d 0 R>>",
			s.Width, s.Height, 4+2*i))
		if flate {
			data := deflate(Content(i))
			obj(fmt.Sprintf("<</Length %d/Filter/FlateDecode>>\nstream\n%s\nendstream", len(data), data))
		} else {
			content := Content(i)
			obj(fmt.Sprintf("<</Length %d>>\nstream\n%s\nendstream", len(content), content))
		}
	}

	// Each xref entry is exactly 20 bytes including the CRLF.
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	fmt.Fprintf(&buf, "%010d %05d f\r\n", 0, 65535)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n\r\n", off, 0)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func deflate(s string) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte(s))
	zw.Close()
	return buf.Bytes()
}

// Uniform returns n copies of s.
func Uniform(n int, s imposition.Size) []imposition.Size {
	out := make([]imposition.Size, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// Write writes a document with the given page sizes into a temp dir and
// returns its path.
func Write(t testing.TB, sizes []imposition.Size) string {
	t.Helper()
	return write(t, Build(sizes))
}

// WriteFlate is like Write with compressed content streams.
func WriteFlate(t testing.TB, sizes []imposition.Size) string {
	t.Helper()
	return write(t, BuildFlate(sizes))
}

func write(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
