package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/kioskcrm/backend/internal/application/identity"
)

// UserHandler handles user administration. Every route requires the
// admin role.
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @ID           createUser
//
//	@Summary		Create a user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.CreateUserRequest	true	"User"
//	@Success		201		{object}	APIResponse[identityapp.UserResponse]
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req identityapp.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// GetByID godoc
// @ID           getUser
//
//	@Summary		Get a user
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	APIResponse[identityapp.UserResponse]
//	@Security		BearerAuth
//	@Router			/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List godoc
// @ID           listUsers
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Param			role	query		string	false	"admin, staff or viewer"
//	@Param			status	query		string	false	"active or disabled"
//	@Success		200		{object}	APIResponse[[]identityapp.UserResponse]
//	@Security		BearerAuth
//	@Router			/users [get]
func (h *UserHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter identityapp.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	users, total, err := h.userService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateUser
//
//	@Summary		Update a user
//	@Description	Disabling a user, changing the role or resetting the password revokes the user's tokens
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User ID"
//	@Param			request	body		identityapp.UpdateUserRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[identityapp.UserResponse]
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req identityapp.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), principal.TenantID, principal.UserID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete godoc
// @ID           deleteUser
//
//	@Summary		Delete a user
//	@Tags			users
//	@Param			id	path	string	true	"User ID"
//	@Success		204
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), principal.TenantID, principal.UserID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
