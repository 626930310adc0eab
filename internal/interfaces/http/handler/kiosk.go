package handler

import (
	"github.com/gin-gonic/gin"
	assetapp "github.com/kioskcrm/backend/internal/application/asset"
)

// KioskHandler handles kiosk inventory and contract endpoints
type KioskHandler struct {
	BaseHandler
	kioskService *assetapp.KioskService
}

// NewKioskHandler creates a new KioskHandler
func NewKioskHandler(kioskService *assetapp.KioskService) *KioskHandler {
	return &KioskHandler{kioskService: kioskService}
}

// Create godoc
// @ID           createKiosk
//
//	@Summary		Register a kiosk
//	@Tags			kiosks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		assetapp.CreateKioskRequest	true	"Kiosk"
//	@Success		201		{object}	APIResponse[assetapp.KioskResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/kiosks [post]
func (h *KioskHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req assetapp.CreateKioskRequest
	if !h.bindJSON(c, &req) {
		return
	}
	kiosk, err := h.kioskService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, kiosk)
}

// GetByID godoc
// @ID           getKiosk
//
//	@Summary		Get a kiosk
//	@Tags			kiosks
//	@Produce		json
//	@Param			id	path		string	true	"Kiosk ID"
//	@Success		200	{object}	APIResponse[assetapp.KioskResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/kiosks/{id} [get]
func (h *KioskHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	kiosk, err := h.kioskService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, kiosk)
}

// List godoc
// @ID           listKiosks
//
//	@Summary		List kiosks
//	@Tags			kiosks
//	@Produce		json
//	@Param			search		query		string	false	"Serial number or model"
//	@Param			status		query		string	false	"Kiosk status"
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Param			partner_id	query		string	false	"Partner ID"
//	@Param			region_id	query		string	false	"Region ID"
//	@Param			area_id		query		string	false	"Area ID"
//	@Success		200			{object}	APIResponse[[]assetapp.KioskResponse]
//	@Security		BearerAuth
//	@Router			/kiosks [get]
func (h *KioskHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter assetapp.KioskListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	kiosks, total, err := h.kioskService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, kiosks, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateKiosk
//
//	@Summary		Update a kiosk
//	@Tags			kiosks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Kiosk ID"
//	@Param			request	body		assetapp.UpdateKioskRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[assetapp.KioskResponse]
//	@Security		BearerAuth
//	@Router			/kiosks/{id} [put]
func (h *KioskHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req assetapp.UpdateKioskRequest
	if !h.bindJSON(c, &req) {
		return
	}
	kiosk, err := h.kioskService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, kiosk)
}

// Delete godoc
// @ID           deleteKiosk
//
//	@Summary		Delete a kiosk
//	@Tags			kiosks
//	@Param			id	path	string	true	"Kiosk ID"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/kiosks/{id} [delete]
func (h *KioskHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.kioskService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Lease godoc
// @ID           leaseKiosk
//
//	@Summary		Lease a kiosk out
//	@Description	Opens a lease contract and moves the kiosk to leased
//	@Tags			kiosks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Kiosk ID"
//	@Param			request	body		assetapp.ContractRequest	true	"Contract"
//	@Success		201		{object}	APIResponse[assetapp.ContractActionResponse]
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/kiosks/{id}/lease [post]
func (h *KioskHandler) Lease(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req assetapp.ContractRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.kioskService.Lease(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Sell godoc
// @ID           sellKiosk
//
//	@Summary		Sell a kiosk
//	@Description	Records a sale contract and moves the kiosk to sold
//	@Tags			kiosks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Kiosk ID"
//	@Param			request	body		assetapp.ContractRequest	true	"Contract"
//	@Success		201		{object}	APIResponse[assetapp.ContractActionResponse]
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/kiosks/{id}/sale [post]
func (h *KioskHandler) Sell(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req assetapp.ContractRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.kioskService.Sell(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// EndContract godoc
// @ID           endKioskContract
//
//	@Summary		End a lease contract
//	@Tags			kiosks
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Kiosk ID"
//	@Param			contract_id	path		string							true	"Contract ID"
//	@Param			request		body		assetapp.EndContractRequest	true	"End date"
//	@Success		200			{object}	APIResponse[assetapp.ContractActionResponse]
//	@Failure		409			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/kiosks/{id}/contracts/{contract_id}/end [post]
func (h *KioskHandler) EndContract(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	contractID, ok := h.pathUUID(c, "contract_id")
	if !ok {
		return
	}
	var req assetapp.EndContractRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.kioskService.EndContract(c.Request.Context(), tenantID, id, contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Contracts godoc
// @ID           listKioskContracts
//
//	@Summary		List a kiosk's contracts, newest first
//	@Tags			kiosks
//	@Produce		json
//	@Param			id	path		string	true	"Kiosk ID"
//	@Success		200	{object}	APIResponse[[]assetapp.ContractResponse]
//	@Security		BearerAuth
//	@Router			/kiosks/{id}/contracts [get]
func (h *KioskHandler) Contracts(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	contracts, err := h.kioskService.Contracts(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contracts)
}

// Summary godoc
// @ID           kioskSummary
//
//	@Summary		Count kiosks by status and region
//	@Tags			kiosks
//	@Produce		json
//	@Success		200	{object}	APIResponse[assetapp.KioskSummaryResponse]
//	@Security		BearerAuth
//	@Router			/kiosks/summary [get]
func (h *KioskHandler) Summary(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	summary, err := h.kioskService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
