// Package common holds request plumbing shared by the application services.
package common

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// ListQuery is the paging and sorting part of every list request
type ListQuery struct {
	Search   string `form:"search" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"max=50"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Filter converts the query into a domain filter with defaults applied
func (q ListQuery) Filter(defaultOrderBy, defaultOrderDir string) shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: strings.ToLower(q.OrderDir),
		Search:   strings.TrimSpace(q.Search),
	}
	if f.OrderBy == "" {
		f.OrderBy = defaultOrderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = defaultOrderDir
	}
	return f.Normalize()
}

// CodeLister returns every code of a tenant that starts with prefix
type CodeLister func(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)

// NextCode allocates the next sequential code for prefix
func NextCode(ctx context.Context, list CodeLister, tenantID uuid.UUID, prefix string, width int) (string, error) {
	codes, err := list(ctx, tenantID, prefix)
	if err != nil {
		return "", err
	}
	return shared.NextCode(prefix, width, codes), nil
}

// NextCodeResponse is returned by the next-code endpoints
type NextCodeResponse struct {
	Code string `json:"code"`
}

// StringOr returns *p when set, otherwise fallback
func StringOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

// ParseOptionalDate parses s, returning nil for an empty string
func ParseOptionalDate(s string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
