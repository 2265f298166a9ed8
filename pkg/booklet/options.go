package booklet

import (
	"strconv"
	"strings"

	apperr "github.com/spookylukey/booklet-maker/pkg/errors"
)

// Options configures a single conversion.
type Options struct {
	InputPath  string // source PDF
	OutputPath string // destination PDF, replaced atomically
	Blanks     int    // blank pages inserted before page 1

	// AllowMixedSizes lays out every page as if it had the first page's
	// size instead of rejecting documents whose pages differ in size.
	AllowMixedSizes bool
}

// Validate checks the options without touching the filesystem.
func (o Options) Validate() error {
	if strings.TrimSpace(o.InputPath) == "" {
		return apperr.New(apperr.ErrCodeInvalidUsage, "input path is required")
	}
	if strings.TrimSpace(o.OutputPath) == "" {
		return apperr.New(apperr.ErrCodeInvalidUsage, "output path is required")
	}
	if o.Blanks < 0 {
		return apperr.New(apperr.ErrCodeInvalidUsage, "blank page count must not be negative, got %d", o.Blanks)
	}
	return nil
}

// ParseBlanks parses a leading-blank-count argument.
func ParseBlanks(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperr.New(apperr.ErrCodeInvalidUsage, "blank page count must be a whole number, got %q", s)
	}
	if n < 0 {
		return 0, apperr.New(apperr.ErrCodeInvalidUsage, "blank page count must not be negative, got %d", n)
	}
	return n, nil
}
