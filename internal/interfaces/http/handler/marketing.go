package handler

import (
	"github.com/gin-gonic/gin"
	marketingapp "github.com/kioskcrm/backend/internal/application/marketing"
)

// CampaignHandler handles marketing campaign endpoints
type CampaignHandler struct {
	BaseHandler
	campaignService *marketingapp.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *marketingapp.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Create godoc
// @ID           createCampaign
//
//	@Summary		Create a campaign
//	@Tags			campaigns
//	@Accept			json
//	@Produce		json
//	@Param			request	body		marketingapp.CreateCampaignRequest	true	"Campaign"
//	@Success		201		{object}	APIResponse[marketingapp.CampaignResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req marketingapp.CreateCampaignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	campaign, err := h.campaignService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, campaign)
}

// GetByID godoc
// @ID           getCampaign
//
//	@Summary		Get a campaign
//	@Tags			campaigns
//	@Produce		json
//	@Param			id	path		string	true	"Campaign ID"
//	@Success		200	{object}	APIResponse[marketingapp.CampaignResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/campaigns/{id} [get]
func (h *CampaignHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	campaign, err := h.campaignService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, campaign)
}

// List godoc
// @ID           listCampaigns
//
//	@Summary		List campaigns
//	@Tags			campaigns
//	@Produce		json
//	@Param			status	query		string	false	"planned, active or finished"
//	@Param			channel	query		string	false	"Channel"
//	@Success		200		{object}	APIResponse[[]marketingapp.CampaignResponse]
//	@Security		BearerAuth
//	@Router			/campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter marketingapp.CampaignListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	campaigns, total, err := h.campaignService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, campaigns, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateCampaign
//
//	@Summary		Update a campaign
//	@Tags			campaigns
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Campaign ID"
//	@Param			request	body		marketingapp.UpdateCampaignRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[marketingapp.CampaignResponse]
//	@Security		BearerAuth
//	@Router			/campaigns/{id} [put]
func (h *CampaignHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req marketingapp.UpdateCampaignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	campaign, err := h.campaignService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, campaign)
}

// Delete godoc
// @ID           deleteCampaign
//
//	@Summary		Delete a campaign
//	@Tags			campaigns
//	@Param			id	path	string	true	"Campaign ID"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.campaignService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stats godoc
// @ID           campaignStats
//
//	@Summary		Lead counts and conversion rate of a campaign
//	@Tags			campaigns
//	@Produce		json
//	@Param			id	path		string	true	"Campaign ID"
//	@Success		200	{object}	APIResponse[marketingapp.CampaignStatsResponse]
//	@Security		BearerAuth
//	@Router			/campaigns/{id}/stats [get]
func (h *CampaignHandler) Stats(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	stats, err := h.campaignService.Stats(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// LeadHandler handles lead endpoints
type LeadHandler struct {
	BaseHandler
	leadService *marketingapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *marketingapp.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create creates a lead
//
//	@Summary	Create a lead
//	@Tags		leads
//	@Accept		json
//	@Produce	json
//	@Param		request	body		marketingapp.CreateLeadRequest	true	"Lead"
//	@Success	201		{object}	APIResponse[marketingapp.LeadResponse]
//	@Security	BearerAuth
//	@Router		/leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req marketingapp.CreateLeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	lead, err := h.leadService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lead)
}

// GetByID returns one lead
//
//	@Summary	Get a lead
//	@Tags		leads
//	@Produce	json
//	@Param		id	path		string	true	"Lead ID"
//	@Success	200	{object}	APIResponse[marketingapp.LeadResponse]
//	@Security	BearerAuth
//	@Router		/leads/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	lead, err := h.leadService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lead)
}

// List lists leads
//
//	@Summary	List leads
//	@Tags		leads
//	@Produce	json
//	@Param		status		query		string	false	"Lead status"
//	@Param		source		query		string	false	"Lead source"
//	@Param		campaign_id	query		string	false	"Campaign ID"
//	@Success	200			{object}	APIResponse[[]marketingapp.LeadResponse]
//	@Security	BearerAuth
//	@Router		/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter marketingapp.LeadListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	leads, total, err := h.leadService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, leads, total, filter.Page, filter.PageSize)
}

// Update updates a lead
//
//	@Summary	Update a lead
//	@Tags		leads
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Lead ID"
//	@Param		request	body		marketingapp.UpdateLeadRequest	true	"Changes"
//	@Success	200		{object}	APIResponse[marketingapp.LeadResponse]
//	@Security	BearerAuth
//	@Router		/leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req marketingapp.UpdateLeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	lead, err := h.leadService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lead)
}

// Delete deletes a lead
//
//	@Summary	Delete a lead
//	@Tags		leads
//	@Param		id	path	string	true	"Lead ID"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.leadService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Convert godoc
// @ID           convertLead
//
//	@Summary		Convert a lead into a customer partner
//	@Tags			leads
//	@Produce		json
//	@Param			id	path		string	true	"Lead ID"
//	@Success		201	{object}	APIResponse[marketingapp.ConvertLeadResponse]
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/leads/{id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.leadService.Convert(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// SyncPipedrive pushes a lead to Pipedrive
//
//	@Summary	Push a lead to Pipedrive
//	@Tags		leads
//	@Produce	json
//	@Param		id	path		string	true	"Lead ID"
//	@Success	200	{object}	APIResponse[marketingapp.LeadPipedriveSyncResponse]
//	@Failure	503	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/leads/{id}/pipedrive-sync [post]
func (h *LeadHandler) SyncPipedrive(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.leadService.SyncPipedrive(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
