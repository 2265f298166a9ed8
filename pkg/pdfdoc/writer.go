package pdfdoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
	"github.com/spookylukey/booklet-maker/pkg/imposition"
)

// form is a source page wrapped as a Form XObject.
type form struct {
	ref types.IndirectRef
	box *types.Rectangle
}

// Writer accumulates double-wide pages drawn from the pages of one source
// Document. Page handles in the plans are 1-based source page numbers.
type Writer struct {
	src      *model.Context
	ctx      *model.Context
	pagesRef types.IndirectRef
	forms    map[int]form
	kids     types.Array
}

// NewWriter prepares an output document for pages taken from doc.
func NewWriter(doc *Document) (*Writer, error) {
	n := doc.PageCount()
	if n == 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "%s has no pages", doc.Path)
	}
	pageNrs := make([]int, n)
	for i := range pageNrs {
		pageNrs[i] = i + 1
	}

	// Work on a fresh context holding only the page objects, so the source
	// outline and page tree are left behind.
	ctx, err := pdfcpu.ExtractPages(doc.ctx, pageNrs, false)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "copy pages of %s", doc.Path)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "count copied pages")
	}

	root, err := ctx.Catalog()
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "catalog")
	}
	pagesRef, ok := root["Pages"].(types.IndirectRef)
	if !ok {
		return nil, apperr.New(apperr.ErrCodeInternal, "catalog has no page tree reference")
	}

	return &Writer{
		src:      doc.ctx,
		ctx:      ctx,
		pagesRef: pagesRef,
		forms:    make(map[int]form),
	}, nil
}

// PageCount returns the number of pages added so far.
func (w *Writer) PageCount() int {
	return len(w.kids)
}

// AddDoublePage appends a blank page of dp.Size and draws each placement on it.
func (w *Writer) AddDoublePage(dp imposition.DoublePage[int]) error {
	xobjects := types.Dict{}
	var content bytes.Buffer

	for _, p := range dp.Placements {
		f, err := w.form(p.Page)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("Pg%d", p.Page)
		xobjects.Insert(name, f.ref)
		fmt.Fprintf(&content, "q 1 0 0 1 %.5f %.5f cm /%s Do Q\n", p.X-f.box.LL.X, p.Y-f.box.LL.Y, name)
	}

	page := types.Dict{
		"Type":     types.Name("Page"),
		"Parent":   w.pagesRef,
		"MediaBox": types.RectForWidthAndHeight(0, 0, dp.Size.Width, dp.Size.Height).Array(),
	}
	if len(xobjects) > 0 {
		page["Resources"] = types.Dict{"XObject": xobjects}
		sd, err := w.ctx.NewStreamDictForBuf(content.Bytes())
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "page content")
		}
		if err := sd.Encode(); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "encode page content")
		}
		ref, err := w.ctx.IndRefForNewObject(*sd)
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "page content")
		}
		page["Contents"] = *ref
	} else {
		page["Resources"] = types.Dict{}
	}

	ref, err := w.ctx.IndRefForNewObject(page)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "new page")
	}
	w.kids = append(w.kids, *ref)
	return nil
}

// form returns the Form XObject for source page pageNr, creating it on first use.
func (w *Writer) form(pageNr int) (form, error) {
	if f, ok := w.forms[pageNr]; ok {
		return f, nil
	}
	if pageNr < 1 || pageNr > w.ctx.PageCount {
		return form{}, apperr.New(apperr.ErrCodeInvalidInput, "page %d out of range 1..%d", pageNr, w.ctx.PageCount)
	}

	d, _, inh, err := w.ctx.PageDict(pageNr, true)
	if err != nil {
		return form{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "page %d", pageNr)
	}
	if inh == nil || inh.MediaBox == nil {
		return form{}, apperr.New(apperr.ErrCodeInvalidInput, "page %d has no media box", pageNr)
	}

	// Content is read from the source document, whose streams are loaded
	// as read from disk.
	srcPage, _, _, err := w.src.PageDict(pageNr, false)
	if err != nil {
		return form{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "page %d", pageNr)
	}
	content, err := pageContent(w.src, srcPage)
	if err != nil {
		return form{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "content of page %d", pageNr)
	}

	sd, err := w.ctx.NewStreamDictForBuf(content)
	if err != nil {
		return form{}, apperr.Wrap(apperr.ErrCodeInternal, err, "form for page %d", pageNr)
	}
	sd.InsertName("Type", "XObject")
	sd.InsertName("Subtype", "Form")
	sd.Insert("BBox", inh.MediaBox.Array())
	if inh.Resources != nil {
		sd.Insert("Resources", inh.Resources)
	} else if res, found := d.Find("Resources"); found {
		sd.Insert("Resources", res)
	}
	if err := sd.Encode(); err != nil {
		return form{}, apperr.Wrap(apperr.ErrCodeInternal, err, "encode form for page %d", pageNr)
	}
	ref, err := w.ctx.IndRefForNewObject(*sd)
	if err != nil {
		return form{}, apperr.Wrap(apperr.ErrCodeInternal, err, "form for page %d", pageNr)
	}

	f := form{ref: *ref, box: inh.MediaBox}
	w.forms[pageNr] = f
	return f, nil
}

// pageContent returns the decoded content of page dict d. Content arrays are
// joined with newlines. A page without Contents has empty content.
func pageContent(ctx *model.Context, d types.Dict) ([]byte, error) {
	o, found := d.Find("Contents")
	if !found {
		return nil, nil
	}
	o, err := ctx.Dereference(o)
	if err != nil {
		return nil, err
	}

	switch o := o.(type) {
	case nil:
		return nil, nil
	case types.StreamDict:
		return streamContent(&o)
	case types.Array:
		var buf bytes.Buffer
		for _, e := range o {
			e, err := ctx.Dereference(e)
			if err != nil {
				return nil, err
			}
			sd, ok := e.(types.StreamDict)
			if !ok {
				continue
			}
			b, err := streamContent(&sd)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unexpected Contents type %T", o)
	}
}

func streamContent(sd *types.StreamDict) ([]byte, error) {
	if sd.Content != nil {
		return sd.Content, nil
	}
	if sd.Raw == nil {
		return nil, nil
	}
	if len(sd.FilterPipeline) == 0 {
		return sd.Raw, nil
	}
	if err := sd.Decode(); err != nil {
		return nil, err
	}
	return sd.Content, nil
}

// finish replaces the page tree with the pages added so far.
func (w *Writer) finish() error {
	pages, err := w.ctx.DereferenceDict(w.pagesRef)
	if err != nil || pages == nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "page tree")
	}
	pages["Kids"] = w.kids
	pages["Count"] = types.Integer(len(w.kids))
	// Attributes inherited from the root would apply to the new pages.
	for _, k := range []string{"Rotate", "MediaBox", "CropBox", "Resources"} {
		pages.Delete(k)
	}
	w.ctx.PageCount = len(w.kids)
	return nil
}

// Write serializes the output document to out.
func (w *Writer) Write(out io.Writer) error {
	if err := w.finish(); err != nil {
		return err
	}
	if err := api.WriteContext(w.ctx, out); err != nil {
		return apperr.Wrap(apperr.ErrCodeOutputFailed, err, "serialize document")
	}
	return nil
}

// WriteFile serializes the output document to path. The document is fully
// rendered in memory and then moved into place, so path is either left
// untouched or holds the complete result.
func (w *Writer) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := w.Write(&buf); err != nil {
		return err
	}
	if err := writeFileAtomic(path, &buf); err != nil {
		return apperr.Wrap(apperr.ErrCodeOutputFailed, err, "write %s", path)
	}
	return nil
}

func writeFileAtomic(path string, src io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.ReadFrom(src); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
