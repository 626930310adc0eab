package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/kioskcrm/backend/internal/application/partner"
)

// PartnerHandler handles partner and partner pricing endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *partnerapp.PartnerService
	pricingService *partnerapp.PricingService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *partnerapp.PartnerService, pricingService *partnerapp.PricingService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		pricingService: pricingService,
	}
}

// NextCode godoc
// @ID           nextPartnerCode
//
//	@Summary		Preview the next partner code
//	@Tags			partners
//	@Produce		json
//	@Success		200	{object}	APIResponse[common.NextCodeResponse]
//	@Security		BearerAuth
//	@Router			/partners/next-code [get]
func (h *PartnerHandler) NextCode(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	code, err := h.partnerService.NextCode(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, code)
}

// Create godoc
// @ID           createPartner
//
//	@Summary		Create a partner
//	@Tags			partners
//	@Accept			json
//	@Produce		json
//	@Param			request	body		partnerapp.CreatePartnerRequest	true	"Partner"
//	@Success		201		{object}	APIResponse[partnerapp.PartnerResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/partners [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req partnerapp.CreatePartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.partnerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// GetByID godoc
// @ID           getPartner
//
//	@Summary		Get a partner
//	@Tags			partners
//	@Produce		json
//	@Param			id	path		string	true	"Partner ID"
//	@Success		200	{object}	APIResponse[partnerapp.PartnerResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/partners/{id} [get]
func (h *PartnerHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	p, err := h.partnerService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// List godoc
// @ID           listPartners
//
//	@Summary		List partners
//	@Tags			partners
//	@Produce		json
//	@Param			search		query		string	false	"Search by code or name"
//	@Param			type		query		string	false	"Partner type"
//	@Param			status		query		string	false	"active or inactive"
//	@Param			region_id	query		string	false	"Region ID"
//	@Param			prefecture	query		string	false	"Prefecture"
//	@Success		200			{object}	APIResponse[[]partnerapp.PartnerResponse]
//	@Security		BearerAuth
//	@Router			/partners [get]
func (h *PartnerHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter partnerapp.PartnerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	partners, total, err := h.partnerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, partners, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePartner
//
//	@Summary		Update a partner
//	@Tags			partners
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Partner ID"
//	@Param			request	body		partnerapp.UpdatePartnerRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[partnerapp.PartnerResponse]
//	@Security		BearerAuth
//	@Router			/partners/{id} [put]
func (h *PartnerHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdatePartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.partnerService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @ID           deletePartner
//
//	@Summary		Delete a partner
//	@Tags			partners
//	@Param			id	path	string	true	"Partner ID"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/partners/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.partnerService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SyncPipedrive godoc
// @ID           syncPartnerPipedrive
//
//	@Summary		Push a partner to Pipedrive as an organization
//	@Tags			partners
//	@Produce		json
//	@Param			id	path		string	true	"Partner ID"
//	@Success		200	{object}	APIResponse[partnerapp.PipedriveSyncResponse]
//	@Failure		502	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/partners/{id}/pipedrive-sync [post]
func (h *PartnerHandler) SyncPipedrive(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.partnerService.SyncPipedrive(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListPricings godoc
// @ID           listPartnerPricings
//
//	@Summary		List a partner's price entries
//	@Tags			pricings
//	@Produce		json
//	@Param			id	path		string	true	"Partner ID"
//	@Success		200	{object}	APIResponse[[]partnerapp.PricingResponse]
//	@Security		BearerAuth
//	@Router			/partners/{id}/pricings [get]
func (h *PartnerHandler) ListPricings(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	pricings, err := h.pricingService.ListByPartner(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pricings)
}

// CreatePricing godoc
// @ID           createPricing
//
//	@Summary		Create a price entry
//	@Tags			pricings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		partnerapp.CreatePricingRequest	true	"Price entry"
//	@Success		201		{object}	APIResponse[partnerapp.PricingResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/pricings [post]
func (h *PartnerHandler) CreatePricing(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req partnerapp.CreatePricingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	pricing, err := h.pricingService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pricing)
}

// EffectivePricing godoc
// @ID           effectivePricing
//
//	@Summary		Find the price entry in force on a date
//	@Tags			pricings
//	@Produce		json
//	@Param			partner_id	query		string	true	"Partner ID"
//	@Param			item_code	query		string	true	"Item code"
//	@Param			date		query		string	false	"YYYY-MM-DD, defaults to today"
//	@Success		200			{object}	APIResponse[partnerapp.PricingResponse]
//	@Failure		404			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/pricings/effective [get]
func (h *PartnerHandler) EffectivePricing(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var q partnerapp.EffectivePricingQuery
	if !h.bindQuery(c, &q) {
		return
	}
	pricing, err := h.pricingService.Effective(c.Request.Context(), tenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pricing)
}

// GetPricing returns one price entry
//
//	@Summary	Get a price entry
//	@Tags		pricings
//	@Produce	json
//	@Param		id	path		string	true	"Pricing ID"
//	@Success	200	{object}	APIResponse[partnerapp.PricingResponse]
//	@Security	BearerAuth
//	@Router		/pricings/{id} [get]
func (h *PartnerHandler) GetPricing(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	pricing, err := h.pricingService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pricing)
}

// UpdatePricing updates a price entry
//
//	@Summary	Update a price entry
//	@Tags		pricings
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Pricing ID"
//	@Param		request	body		partnerapp.UpdatePricingRequest	true	"Changes"
//	@Success	200		{object}	APIResponse[partnerapp.PricingResponse]
//	@Security	BearerAuth
//	@Router		/pricings/{id} [put]
func (h *PartnerHandler) UpdatePricing(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdatePricingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	pricing, err := h.pricingService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pricing)
}

// DeletePricing deletes a price entry
//
//	@Summary	Delete a price entry
//	@Tags		pricings
//	@Param		id	path	string	true	"Pricing ID"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/pricings/{id} [delete]
func (h *PartnerHandler) DeletePricing(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.pricingService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
