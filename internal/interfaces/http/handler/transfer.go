package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	importapp "github.com/kioskcrm/backend/internal/application/import"
	"github.com/kioskcrm/backend/internal/interfaces/http/dto"
)

// maxImportFileSize caps uploaded import files at 10MB
const maxImportFileSize = 10 * 1024 * 1024

// TransferHandler handles bulk import and export
type TransferHandler struct {
	BaseHandler
	kioskImport   *importapp.KioskImportService
	partnerImport *importapp.PartnerImportService
	export        *importapp.ExportService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(
	kioskImport *importapp.KioskImportService,
	partnerImport *importapp.PartnerImportService,
	export *importapp.ExportService,
) *TransferHandler {
	return &TransferHandler{
		kioskImport:   kioskImport,
		partnerImport: partnerImport,
		export:        export,
	}
}

// ExportQuery selects the export format
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv json"`
}

// ImportKiosks godoc
// @ID           importKiosks
//
//	@Summary		Import kiosks from CSV
//	@Description	Rows are applied one by one; failed rows are reported and skipped
//	@Tags			import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"CSV file"
//	@Param			encoding	formData	string	false	"utf-8 (default) or shift_jis"
//	@Success		200			{object}	APIResponse[importapp.ImportResult]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		413			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/import/kiosks [post]
func (h *TransferHandler) ImportKiosks(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "file exceeds maximum size of 10MB")
		return
	}

	result, err := h.kioskImport.Import(c.Request.Context(), tenantID, file, c.PostForm("encoding"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ImportPartners godoc
// @ID           importPartners
//
//	@Summary		Import partners from a JSON document
//	@Description	The document is validated against the partner schema; any violation rejects the whole file
//	@Tags			import
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	APIResponse[importapp.ImportResult]
//	@Failure		400	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/import/partners [post]
func (h *TransferHandler) ImportPartners(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	document, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportFileSize+1))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(document) > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "document exceeds maximum size of 10MB")
		return
	}

	result, err := h.partnerImport.Import(c.Request.Context(), tenantID, document)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Export godoc
// @ID           exportResource
//
//	@Summary		Download a resource export
//	@Tags			export
//	@Produce		text/csv
//	@Produce		application/json
//	@Param			resource	path	string	true	"kiosks, partners, branches or leads"
//	@Param			format		query	string	false	"csv (default) or json"
//	@Success		200			{file}	binary
//	@Failure		400			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/export/{resource} [get]
func (h *TransferHandler) Export(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var q ExportQuery
	if !h.bindQuery(c, &q) {
		return
	}

	file, err := h.export.Export(c.Request.Context(), tenantID, c.Param("resource"), q.Format)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// ExportToS3 godoc
// @ID           exportResourceToS3
//
//	@Summary		Write a resource export to object storage
//	@Description	Returns a presigned download URL
//	@Tags			export
//	@Produce		json
//	@Param			resource	path		string	true	"kiosks, partners, branches or leads"
//	@Param			format		query		string	false	"csv (default) or json"
//	@Success		201			{object}	APIResponse[importapp.S3ExportResponse]
//	@Failure		503			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/export/{resource}/s3 [post]
func (h *TransferHandler) ExportToS3(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var q ExportQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.export.ExportToS3(c.Request.Context(), tenantID, c.Param("resource"), q.Format)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
