package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
)

// GeoHandler serves the region/area catalog and address matching
type GeoHandler struct {
	BaseHandler
	geoService *geoapp.GeoService
}

// NewGeoHandler creates a new GeoHandler
func NewGeoHandler(geoService *geoapp.GeoService) *GeoHandler {
	return &GeoHandler{geoService: geoService}
}

// AreaListQuery filters the area list
type AreaListQuery struct {
	RegionID string `form:"region_id" binding:"omitempty,uuid"`
}

// Catalog godoc
// @ID           getGeoCatalog
//
//	@Summary		Get the region/area catalog
//	@Tags			geo
//	@Produce		json
//	@Success		200	{object}	APIResponse[geoapp.CatalogResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/areas/catalog [get]
func (h *GeoHandler) Catalog(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	catalog, err := h.geoService.GetCatalog(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalog)
}

// Match godoc
// @ID           matchAddress
//
//	@Summary		Resolve the region and area of an address
//	@Tags			geo
//	@Accept			json
//	@Produce		json
//	@Param			request	body		geoapp.MatchRequest	true	"Address"
//	@Success		200		{object}	APIResponse[geoapp.MatchResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/areas/match [post]
func (h *GeoHandler) Match(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req geoapp.MatchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	match, err := h.geoService.MatchAddress(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, match)
}

// Seed godoc
// @ID           seedGeoCatalog
//
//	@Summary		Create the default region/area catalog
//	@Description	Only allowed while the tenant has no regions
//	@Tags			geo
//	@Produce		json
//	@Success		201	{object}	APIResponse[geoapp.SeedResponse]
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/areas/seed [post]
func (h *GeoHandler) Seed(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	result, err := h.geoService.Seed(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListRegions godoc
// @ID           listRegions
//
//	@Summary		List regions
//	@Tags			geo
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]geoapp.RegionResponse]
//	@Security		BearerAuth
//	@Router			/regions [get]
func (h *GeoHandler) ListRegions(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	regions, err := h.geoService.ListRegions(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, regions)
}

// GetRegion godoc
// @ID           getRegion
//
//	@Summary		Get a region
//	@Tags			geo
//	@Produce		json
//	@Param			id	path		string	true	"Region ID"
//	@Success		200	{object}	APIResponse[geoapp.RegionResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/regions/{id} [get]
func (h *GeoHandler) GetRegion(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	region, err := h.geoService.GetRegion(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, region)
}

// CreateRegion godoc
// @ID           createRegion
//
//	@Summary		Create a region
//	@Tags			geo
//	@Accept			json
//	@Produce		json
//	@Param			request	body		geoapp.CreateRegionRequest	true	"Region"
//	@Success		201		{object}	APIResponse[geoapp.RegionResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/regions [post]
func (h *GeoHandler) CreateRegion(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req geoapp.CreateRegionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	region, err := h.geoService.CreateRegion(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, region)
}

// UpdateRegion godoc
// @ID           updateRegion
//
//	@Summary		Update a region
//	@Tags			geo
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Region ID"
//	@Param			request	body		geoapp.UpdateRegionRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[geoapp.RegionResponse]
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/regions/{id} [put]
func (h *GeoHandler) UpdateRegion(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req geoapp.UpdateRegionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	region, err := h.geoService.UpdateRegion(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, region)
}

// DeleteRegion godoc
// @ID           deleteRegion
//
//	@Summary		Delete a region without areas
//	@Tags			geo
//	@Param			id	path	string	true	"Region ID"
//	@Success		204
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/regions/{id} [delete]
func (h *GeoHandler) DeleteRegion(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.geoService.DeleteRegion(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAreas godoc
// @ID           listAreas
//
//	@Summary		List areas
//	@Tags			geo
//	@Produce		json
//	@Param			region_id	query		string	false	"Region ID"
//	@Success		200			{object}	APIResponse[[]geoapp.AreaResponse]
//	@Security		BearerAuth
//	@Router			/areas [get]
func (h *GeoHandler) ListAreas(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var q AreaListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	var regionID *uuid.UUID
	if q.RegionID != "" {
		id := uuid.MustParse(q.RegionID)
		regionID = &id
	}
	areas, err := h.geoService.ListAreas(c.Request.Context(), tenantID, regionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, areas)
}

// GetArea godoc
// @ID           getArea
//
//	@Summary		Get an area
//	@Tags			geo
//	@Produce		json
//	@Param			id	path		string	true	"Area ID"
//	@Success		200	{object}	APIResponse[geoapp.AreaResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/areas/{id} [get]
func (h *GeoHandler) GetArea(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	area, err := h.geoService.GetArea(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, area)
}

// CreateArea godoc
// @ID           createArea
//
//	@Summary		Create an area
//	@Tags			geo
//	@Accept			json
//	@Produce		json
//	@Param			request	body		geoapp.CreateAreaRequest	true	"Area"
//	@Success		201		{object}	APIResponse[geoapp.AreaResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/areas [post]
func (h *GeoHandler) CreateArea(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req geoapp.CreateAreaRequest
	if !h.bindJSON(c, &req) {
		return
	}
	area, err := h.geoService.CreateArea(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, area)
}

// UpdateArea godoc
// @ID           updateArea
//
//	@Summary		Update an area
//	@Tags			geo
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Area ID"
//	@Param			request	body		geoapp.UpdateAreaRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[geoapp.AreaResponse]
//	@Security		BearerAuth
//	@Router			/areas/{id} [put]
func (h *GeoHandler) UpdateArea(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req geoapp.UpdateAreaRequest
	if !h.bindJSON(c, &req) {
		return
	}
	area, err := h.geoService.UpdateArea(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, area)
}

// DeleteArea godoc
// @ID           deleteArea
//
//	@Summary		Delete an area
//	@Tags			geo
//	@Param			id	path	string	true	"Area ID"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/areas/{id} [delete]
func (h *GeoHandler) DeleteArea(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.geoService.DeleteArea(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
