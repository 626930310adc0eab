package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=1,max=72"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// LogoutInput identifies the token being revoked. TokenID is empty for
// cookie-only sessions.
type LogoutInput struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	CanWrite    bool       `json:"can_write"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User. The password hash never leaves
// the service.
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayNameOrUsername(),
		Role:        string(u.Role),
		Status:      string(u.Status),
		CanWrite:    u.Role.CanWrite(),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	DisplayName string `json:"display_name" binding:"max=100"`
	Role        string `json:"role" binding:"required,oneof=admin staff viewer"`
}

// UpdateUserRequest represents a request to update a user
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,max=200"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin staff viewer"`
	Status      *string `json:"status" binding:"omitempty,oneof=active disabled"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	common.ListQuery
	Role   string `form:"role" binding:"omitempty,oneof=admin staff viewer"`
	Status string `form:"status" binding:"omitempty,oneof=active disabled"`
}
