package importapp

import (
	"time"

	csvimport "github.com/kioskcrm/backend/internal/infrastructure/import"
)

// Export resources
const (
	ResourceKiosks   = "kiosks"
	ResourcePartners = "partners"
	ResourceBranches = "branches"
	ResourceLeads    = "leads"
)

// ExportResources lists the exportable resources
var ExportResources = []string{ResourceKiosks, ResourcePartners, ResourceBranches, ResourceLeads}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Total       int                  `json:"total"`
	Created     int                  `json:"created"`
	Updated     int                  `json:"updated"`
	Failed      int                  `json:"failed"`
	Errors      []csvimport.RowError `json:"errors"`
	IsTruncated bool                 `json:"is_truncated,omitempty"`
	TotalErrors int                  `json:"total_errors,omitempty"`
}

func (r *ImportResult) collect(errs *csvimport.ErrorCollection) {
	r.Errors = errs.Errors()
	if r.Errors == nil {
		r.Errors = []csvimport.RowError{}
	}
	r.TotalErrors = errs.TotalCount()
	r.IsTruncated = errs.IsTruncated()
}

// S3ExportResponse is an export written to object storage
type S3ExportResponse struct {
	Resource    string    `json:"resource"`
	Format      string    `json:"format"`
	Bucket      string    `json:"bucket"`
	Key         string    `json:"key"`
	Rows        int       `json:"rows"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ExportFile is a rendered export
type ExportFile struct {
	Filename    string
	ContentType string
	Rows        int
	Data        []byte
}
