package printing

import (
	"context"
	"time"
)

// Margins in millimeters.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins suit an A4 business document.
var DefaultMargins = Margins{Top: 15, Right: 12, Bottom: 15, Left: 12}

// A4 paper size in millimeters.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML      string
	Title     string
	Margins   Margins
	Landscape bool
	// Timeout overrides the renderer default.
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for rendering HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// Render error codes
const (
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeDisabled      = "PRINTING_DISABLED"
)

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

// DisabledRenderer is used when printing is turned off in config.
type DisabledRenderer struct{}

func (DisabledRenderer) Render(context.Context, *RenderRequest) (*RenderResult, error) {
	return nil, NewRenderError(ErrCodeDisabled, "PDF printing is disabled", nil)
}

func (DisabledRenderer) Close() error { return nil }
