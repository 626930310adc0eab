package handler

import (
	"github.com/gin-gonic/gin"
	workflowapp "github.com/kioskcrm/backend/internal/application/workflow"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *workflowapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *workflowapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// NextNumber godoc
// @ID           nextOrderNumber
//
//	@Summary		Preview the next order number
//	@Description	Creating an order always allocates its own number
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	APIResponse[common.NextCodeResponse]
//	@Security		BearerAuth
//	@Router			/orders/next-number [get]
func (h *OrderHandler) NextNumber(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	number, err := h.orderService.NextNumber(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, number)
}

// Create godoc
// @ID           createOrder
//
//	@Summary		Create an order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		workflowapp.CreateOrderRequest	true	"Order"
//	@Success		201		{object}	APIResponse[workflowapp.OrderResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req workflowapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @ID           getOrder
//
//	@Summary		Get an order
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	APIResponse[workflowapp.OrderResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @ID           listOrders
//
//	@Summary		List orders
//	@Tags			orders
//	@Produce		json
//	@Param			status		query		string	false	"Order status"
//	@Param			partner_id	query		string	false	"Partner ID"
//	@Param			kiosk_id	query		string	false	"Kiosk ID"
//	@Success		200			{object}	APIResponse[[]workflowapp.OrderResponse]
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter workflowapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateOrder
//
//	@Summary		Update an order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID"
//	@Param			request	body		workflowapp.UpdateOrderRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[workflowapp.OrderResponse]
//	@Security		BearerAuth
//	@Router			/orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req workflowapp.UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @ID           deleteOrder
//
//	@Summary		Delete an order
//	@Tags			orders
//	@Param			id	path	string	true	"Order ID"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Quotation godoc
// @ID           orderQuotation
//
//	@Summary		Download the order's quotation as PDF
//	@Tags			orders
//	@Produce		application/pdf
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{file}		binary
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{id}/quotation.pdf [get]
func (h *OrderHandler) Quotation(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	file, err := h.orderService.Quotation(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file.Filename, "application/pdf", file.PDF)
}

// ProcessHandler handles kiosk process (task) endpoints
type ProcessHandler struct {
	BaseHandler
	processService *workflowapp.ProcessService
}

// NewProcessHandler creates a new ProcessHandler
func NewProcessHandler(processService *workflowapp.ProcessService) *ProcessHandler {
	return &ProcessHandler{processService: processService}
}

// Create creates a process
//
//	@Summary	Create a process
//	@Tags		processes
//	@Accept		json
//	@Produce	json
//	@Param		request	body		workflowapp.CreateProcessRequest	true	"Process"
//	@Success	201		{object}	APIResponse[workflowapp.ProcessResponse]
//	@Security	BearerAuth
//	@Router		/processes [post]
func (h *ProcessHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req workflowapp.CreateProcessRequest
	if !h.bindJSON(c, &req) {
		return
	}
	process, err := h.processService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, process)
}

// GetByID returns one process
//
//	@Summary	Get a process
//	@Tags		processes
//	@Produce	json
//	@Param		id	path		string	true	"Process ID"
//	@Success	200	{object}	APIResponse[workflowapp.ProcessResponse]
//	@Security	BearerAuth
//	@Router		/processes/{id} [get]
func (h *ProcessHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	process, err := h.processService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, process)
}

// List lists processes
//
//	@Summary	List processes
//	@Tags		processes
//	@Produce	json
//	@Param		status		query		string	false	"Process status"
//	@Param		assignee_id	query		string	false	"Assignee user ID"
//	@Success	200			{object}	APIResponse[[]workflowapp.ProcessResponse]
//	@Security	BearerAuth
//	@Router		/processes [get]
func (h *ProcessHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter workflowapp.ProcessListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	processes, total, err := h.processService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, processes, total, filter.Page, filter.PageSize)
}

// Update updates a process
//
//	@Summary	Update a process
//	@Tags		processes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Process ID"
//	@Param		request	body		workflowapp.UpdateProcessRequest	true	"Changes"
//	@Success	200		{object}	APIResponse[workflowapp.ProcessResponse]
//	@Security	BearerAuth
//	@Router		/processes/{id} [put]
func (h *ProcessHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req workflowapp.UpdateProcessRequest
	if !h.bindJSON(c, &req) {
		return
	}
	process, err := h.processService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, process)
}

// Delete deletes a process
//
//	@Summary	Delete a process
//	@Tags		processes
//	@Param		id	path	string	true	"Process ID"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/processes/{id} [delete]
func (h *ProcessHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.processService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeliveryHandler handles delivery request endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *workflowapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *workflowapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Create creates a delivery request
//
//	@Summary	Create a delivery request
//	@Tags		deliveries
//	@Accept		json
//	@Produce	json
//	@Param		request	body		workflowapp.CreateDeliveryRequest	true	"Delivery"
//	@Success	201		{object}	APIResponse[workflowapp.DeliveryResponse]
//	@Security	BearerAuth
//	@Router		/deliveries [post]
func (h *DeliveryHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req workflowapp.CreateDeliveryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	delivery, err := h.deliveryService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, delivery)
}

// GetByID returns one delivery request
//
//	@Summary	Get a delivery request
//	@Tags		deliveries
//	@Produce	json
//	@Param		id	path		string	true	"Delivery ID"
//	@Success	200	{object}	APIResponse[workflowapp.DeliveryResponse]
//	@Security	BearerAuth
//	@Router		/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	delivery, err := h.deliveryService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, delivery)
}

// List lists delivery requests
//
//	@Summary	List delivery requests
//	@Tags		deliveries
//	@Produce	json
//	@Param		status		query		string	false	"Delivery status"
//	@Param		order_id	query		string	false	"Order ID"
//	@Success	200			{object}	APIResponse[[]workflowapp.DeliveryResponse]
//	@Security	BearerAuth
//	@Router		/deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter workflowapp.DeliveryListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	deliveries, total, err := h.deliveryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, deliveries, total, filter.Page, filter.PageSize)
}

// Update updates a delivery request
//
//	@Summary	Update a delivery request
//	@Tags		deliveries
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Delivery ID"
//	@Param		request	body		workflowapp.UpdateDeliveryRequest	true	"Changes"
//	@Success	200		{object}	APIResponse[workflowapp.DeliveryResponse]
//	@Security	BearerAuth
//	@Router		/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req workflowapp.UpdateDeliveryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	delivery, err := h.deliveryService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, delivery)
}

// Delete deletes a delivery request
//
//	@Summary	Delete a delivery request
//	@Tags		deliveries
//	@Param		id	path	string	true	"Delivery ID"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.deliveryService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
