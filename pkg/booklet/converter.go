// Package booklet converts a PDF into a printable booklet.
//
// A conversion is a single pass: read the input, check page sizes, insert
// leading blanks, impose, and write the double-wide pages (all backs, then
// all fronts). The returned Result carries the print instructions that match
// the written order.
package booklet

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
	"github.com/spookylukey/booklet-maker/pkg/imposition"
	"github.com/spookylukey/booklet-maker/pkg/pdfdoc"
)

// Result describes a finished conversion.
type Result struct {
	InputPages   int
	Blanks       int
	Sheets       int
	OutputPages  int
	PageSize     imposition.Size
	Instructions imposition.Instructions
	Plan         []string
	Duration     time.Duration
}

// Converter runs conversions. The zero value is not usable; use NewConverter.
type Converter struct {
	Logger *log.Logger
	PDF    *model.Configuration
}

// NewConverter creates a converter logging to logger.
// If logger is nil, log.Default() is used.
func NewConverter(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.Default()
	}
	return &Converter{
		Logger: logger,
		PDF:    model.NewDefaultConfiguration(),
	}
}

// Convert reads opts.InputPath, imposes it and writes opts.OutputPath.
// Nothing is written unless every step before serialization succeeds.
func (c *Converter) Convert(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doc, err := pdfdoc.Open(opts.InputPath, c.PDF)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	c.Logger.Info("read document", "path", opts.InputPath, "pages", doc.PageCount())

	size, err := c.pageSize(doc, opts.AllowMixedSizes)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	handles := make([]int, doc.PageCount())
	for i := range handles {
		handles[i] = i + 1
	}
	pages, err := imposition.WithLeadingBlanks(imposition.Pages(handles), opts.Blanks)
	if err != nil {
		return nil, err
	}

	b, err := imposition.Assign(pages)
	if err != nil {
		return nil, fmt.Errorf("impose: %w", err)
	}
	plan := b.Plan()
	c.Logger.Info("computed layout", "pages", len(pages), "blanks", opts.Blanks, "sheets", b.SheetCount())
	for _, line := range plan {
		c.Logger.Debug(line)
	}

	w, err := pdfdoc.NewWriter(doc)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	for _, dp := range b.Impose(size) {
		if err := w.AddDoublePage(dp); err != nil {
			return nil, fmt.Errorf("compose: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := w.WriteFile(opts.OutputPath); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	result := &Result{
		InputPages:   doc.PageCount(),
		Blanks:       opts.Blanks,
		Sheets:       b.SheetCount(),
		OutputPages:  w.PageCount(),
		PageSize:     size,
		Instructions: imposition.NewInstructions(b.SheetCount()),
		Plan:         plan,
		Duration:     time.Since(start),
	}
	c.Logger.Info("wrote booklet",
		"path", opts.OutputPath,
		"pages", result.OutputPages,
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// pageSize returns the size every page is laid out with: the first page's.
// Pages of a different size are an error unless allowMixed is set.
func (c *Converter) pageSize(doc *pdfdoc.Document, allowMixed bool) (imposition.Size, error) {
	sizes, err := doc.PageSizes()
	if err != nil {
		return imposition.Size{}, fmt.Errorf("read: %w", err)
	}
	if len(sizes) == 0 {
		return imposition.Size{}, apperr.New(apperr.ErrCodeInvalidInput, "%s has no pages", doc.Path)
	}
	first := sizes[0]
	for i, s := range sizes[1:] {
		if s == first {
			continue
		}
		if !allowMixed {
			return imposition.Size{}, apperr.New(apperr.ErrCodeMixedPageSizes,
				"page %d is %s but page 1 is %s (use --allow-mixed-sizes to lay out with page 1's size)", i+2, s, first)
		}
		c.Logger.Warn("page size differs from page 1", "page", i+2, "size", s.String(), "using", first.String())
	}
	return first, nil
}
