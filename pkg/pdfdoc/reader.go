// Package pdfdoc reads and writes the PDF documents booklet-maker works on.
//
// Reading and serialization are done by pdfcpu. A Document gives access to
// the page count and page sizes of an input file; a Writer builds double-wide
// pages from imposition.DoublePage plans, drawing source pages as form
// XObjects.
package pdfdoc

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
	"github.com/spookylukey/booklet-maker/pkg/imposition"
)

// Document is a PDF read into memory.
type Document struct {
	Path string
	ctx  *model.Context
}

// Open reads and validates the PDF at path. The file is closed before Open
// returns. A nil conf uses pdfcpu's default configuration.
func Open(path string, conf *model.Configuration) (*Document, error) {
	if conf == nil {
		conf = model.NewDefaultConfiguration()
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read %s", path)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "count pages of %s", path)
	}
	return &Document{Path: path, ctx: ctx}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// PageSize returns the MediaBox size of the 1-based page pageNr.
func (d *Document) PageSize(pageNr int) (imposition.Size, error) {
	box, err := d.mediaBox(pageNr)
	if err != nil {
		return imposition.Size{}, err
	}
	return imposition.Size{Width: box.Width(), Height: box.Height()}, nil
}

// PageSizes returns the sizes of all pages in order.
func (d *Document) PageSizes() ([]imposition.Size, error) {
	sizes := make([]imposition.Size, d.PageCount())
	for i := range sizes {
		s, err := d.PageSize(i + 1)
		if err != nil {
			return nil, err
		}
		sizes[i] = s
	}
	return sizes, nil
}

func (d *Document) mediaBox(pageNr int) (*types.Rectangle, error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "page %d out of range 1..%d", pageNr, d.ctx.PageCount)
	}
	_, _, inh, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "page %d", pageNr)
	}
	if inh == nil || inh.MediaBox == nil {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "page %d has no media box", pageNr)
	}
	return inh.MediaBox, nil
}
