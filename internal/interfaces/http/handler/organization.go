package handler

import (
	"github.com/gin-gonic/gin"
	orgapp "github.com/kioskcrm/backend/internal/application/organization"
)

// FCHandler handles franchise company endpoints
type FCHandler struct {
	BaseHandler
	fcService *orgapp.FCService
}

// NewFCHandler creates a new FCHandler
func NewFCHandler(fcService *orgapp.FCService) *FCHandler {
	return &FCHandler{fcService: fcService}
}

// NextCode godoc
// @ID           nextFCCode
//
//	@Summary		Preview the next FC code
//	@Tags			organization
//	@Produce		json
//	@Success		200	{object}	APIResponse[common.NextCodeResponse]
//	@Security		BearerAuth
//	@Router			/fcs/next-code [get]
func (h *FCHandler) NextCode(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	code, err := h.fcService.NextCode(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, code)
}

// Create godoc
// @ID           createFC
//
//	@Summary		Create an FC
//	@Description	An empty code allocates the next FC code
//	@Tags			organization
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orgapp.CreateFCRequest	true	"FC"
//	@Success		201		{object}	APIResponse[orgapp.FCResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/fcs [post]
func (h *FCHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req orgapp.CreateFCRequest
	if !h.bindJSON(c, &req) {
		return
	}
	fc, err := h.fcService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, fc)
}

// GetByID godoc
// @ID           getFC
//
//	@Summary		Get an FC
//	@Tags			organization
//	@Produce		json
//	@Param			id	path		string	true	"FC ID"
//	@Success		200	{object}	APIResponse[orgapp.FCResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/fcs/{id} [get]
func (h *FCHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	fc, err := h.fcService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fc)
}

// Tree godoc
// @ID           getFCTree
//
//	@Summary		Get an FC with its corporations and branches
//	@Tags			organization
//	@Produce		json
//	@Param			id	path		string	true	"FC ID"
//	@Success		200	{object}	APIResponse[orgapp.FCTreeResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/fcs/{id}/tree [get]
func (h *FCHandler) Tree(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	tree, err := h.fcService.Tree(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// List godoc
// @ID           listFCs
//
//	@Summary		List FCs
//	@Tags			organization
//	@Produce		json
//	@Param			search		query		string	false	"Search by code or name"
//	@Param			status		query		string	false	"active or inactive"
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	APIResponse[[]orgapp.FCResponse]
//	@Security		BearerAuth
//	@Router			/fcs [get]
func (h *FCHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter orgapp.FCListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	fcs, total, err := h.fcService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, fcs, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateFC
//
//	@Summary		Update an FC
//	@Tags			organization
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"FC ID"
//	@Param			request	body		orgapp.UpdateFCRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[orgapp.FCResponse]
//	@Security		BearerAuth
//	@Router			/fcs/{id} [put]
func (h *FCHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req orgapp.UpdateFCRequest
	if !h.bindJSON(c, &req) {
		return
	}
	fc, err := h.fcService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fc)
}

// Delete godoc
// @ID           deleteFC
//
//	@Summary		Delete an FC without corporations
//	@Tags			organization
//	@Param			id	path	string	true	"FC ID"
//	@Success		204
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/fcs/{id} [delete]
func (h *FCHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.fcService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CorporationHandler handles corporation endpoints
type CorporationHandler struct {
	BaseHandler
	corporationService *orgapp.CorporationService
}

// NewCorporationHandler creates a new CorporationHandler
func NewCorporationHandler(corporationService *orgapp.CorporationService) *CorporationHandler {
	return &CorporationHandler{corporationService: corporationService}
}

// NextCode previews the next corporation code
//
//	@Summary	Preview the next corporation code
//	@Tags		organization
//	@Produce	json
//	@Success	200	{object}	APIResponse[common.NextCodeResponse]
//	@Security	BearerAuth
//	@Router		/corporations/next-code [get]
func (h *CorporationHandler) NextCode(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	code, err := h.corporationService.NextCode(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, code)
}

// Create creates a corporation under an FC
//
//	@Summary	Create a corporation
//	@Tags		organization
//	@Accept		json
//	@Produce	json
//	@Param		request	body		orgapp.CreateCorporationRequest	true	"Corporation"
//	@Success	201		{object}	APIResponse[orgapp.CorporationResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/corporations [post]
func (h *CorporationHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req orgapp.CreateCorporationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	corp, err := h.corporationService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, corp)
}

// GetByID returns one corporation
//
//	@Summary	Get a corporation
//	@Tags		organization
//	@Produce	json
//	@Param		id	path		string	true	"Corporation ID"
//	@Success	200	{object}	APIResponse[orgapp.CorporationResponse]
//	@Security	BearerAuth
//	@Router		/corporations/{id} [get]
func (h *CorporationHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	corp, err := h.corporationService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, corp)
}

// List lists corporations
//
//	@Summary	List corporations
//	@Tags		organization
//	@Produce	json
//	@Param		fc_id	query		string	false	"FC ID"
//	@Success	200		{object}	APIResponse[[]orgapp.CorporationResponse]
//	@Security	BearerAuth
//	@Router		/corporations [get]
func (h *CorporationHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter orgapp.CorporationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	corps, total, err := h.corporationService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, corps, total, filter.Page, filter.PageSize)
}

// Update updates a corporation
//
//	@Summary	Update a corporation
//	@Tags		organization
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Corporation ID"
//	@Param		request	body		orgapp.UpdateCorporationRequest	true	"Changes"
//	@Success	200		{object}	APIResponse[orgapp.CorporationResponse]
//	@Security	BearerAuth
//	@Router		/corporations/{id} [put]
func (h *CorporationHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req orgapp.UpdateCorporationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	corp, err := h.corporationService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, corp)
}

// Delete deletes a corporation without branches
//
//	@Summary	Delete a corporation
//	@Tags		organization
//	@Param		id	path	string	true	"Corporation ID"
//	@Success	204
//	@Failure	409	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/corporations/{id} [delete]
func (h *CorporationHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.corporationService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BranchHandler handles branch endpoints
type BranchHandler struct {
	BaseHandler
	branchService *orgapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *orgapp.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// NextCode previews the next branch code
//
//	@Summary	Preview the next branch code
//	@Tags		organization
//	@Produce	json
//	@Success	200	{object}	APIResponse[common.NextCodeResponse]
//	@Security	BearerAuth
//	@Router		/branches/next-code [get]
func (h *BranchHandler) NextCode(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	code, err := h.branchService.NextCode(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, code)
}

// Create creates a branch; its region and area are derived from the address
//
//	@Summary	Create a branch
//	@Tags		organization
//	@Accept		json
//	@Produce	json
//	@Param		request	body		orgapp.CreateBranchRequest	true	"Branch"
//	@Success	201		{object}	APIResponse[orgapp.BranchResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req orgapp.CreateBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.branchService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, branch)
}

// GetByID returns one branch
//
//	@Summary	Get a branch
//	@Tags		organization
//	@Produce	json
//	@Param		id	path		string	true	"Branch ID"
//	@Success	200	{object}	APIResponse[orgapp.BranchResponse]
//	@Security	BearerAuth
//	@Router		/branches/{id} [get]
func (h *BranchHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	branch, err := h.branchService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branch)
}

// List lists branches
//
//	@Summary	List branches
//	@Tags		organization
//	@Produce	json
//	@Param		corporation_id	query		string	false	"Corporation ID"
//	@Param		region_id		query		string	false	"Region ID"
//	@Param		area_id			query		string	false	"Area ID"
//	@Success	200				{object}	APIResponse[[]orgapp.BranchResponse]
//	@Security	BearerAuth
//	@Router		/branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter orgapp.BranchListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	branches, total, err := h.branchService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, branches, total, filter.Page, filter.PageSize)
}

// Update updates a branch
//
//	@Summary	Update a branch
//	@Tags		organization
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Branch ID"
//	@Param		request	body		orgapp.UpdateBranchRequest	true	"Changes"
//	@Success	200		{object}	APIResponse[orgapp.BranchResponse]
//	@Security	BearerAuth
//	@Router		/branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req orgapp.UpdateBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.branchService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branch)
}

// Delete deletes a branch
//
//	@Summary	Delete a branch
//	@Tags		organization
//	@Param		id	path	string	true	"Branch ID"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/branches/{id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.branchService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
