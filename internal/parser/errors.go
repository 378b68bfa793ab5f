package parser

import (
	"fmt"
	"strings"

	"github.com/dgallion1/formgest/internal/document"
)

// UnsupportedFormatError is returned when a file's extension is not in
// the supported set. Fatal; no repair is attempted.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (supported: %s)", e.Ext, strings.Join(supportedOrder, ", "))
}

// ExtractionFailure wraps a text decoding error from an underlying
// format library, carrying the cause's type name for the caller.
type ExtractionFailure struct {
	Format document.Format
	Cause  error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("failed to extract %s text: %s (%T)", e.Format, e.Cause, e.Cause)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Cause
}
