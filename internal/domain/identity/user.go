// Package identity holds the back-office users who sign in to the system.
package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role decides what a user may do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleViewer Role = "viewer"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleViewer
}

// CanWrite reports whether the role may modify records.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleStaff
}

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]{3,100}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
)

// User is a back-office account. Usernames are unique across tenants so
// that login does not need a tenant selector.
type User struct {
	shared.TenantAggregateRoot
	Username       string
	Email          string
	DisplayName    string
	PasswordHash   string
	Role           Role
	Status         UserStatus
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUser creates an active user.
func NewUser(tenantID uuid.UUID, username, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be 3-100 letters, digits, underscores, hyphens or dots")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin, staff or viewer")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Username:            username,
		PasswordHash:        hash,
		Role:                role,
		Status:              UserStatusActive,
	}, nil
}

// SetProfile sets email and display name.
func (u *User) SetProfile(email, displayName string) error {
	email = strings.TrimSpace(email)
	if email != "" && (len(email) > 200 || !emailPattern.MatchString(email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	u.Email = strings.ToLower(email)
	u.DisplayName = strings.TrimSpace(displayName)
	u.MarkModified()
	return nil
}

func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be admin, staff or viewer")
	}
	u.Role = role
	u.MarkModified()
	return nil
}

// SetPassword replaces the password hash.
func (u *User) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.MarkModified()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) Enable() {
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.MarkModified()
}

func (u *User) Disable() {
	u.Status = UserStatusDisabled
	u.MarkModified()
}

// IsLocked reports whether a lockout is in force at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// CanLogin reports whether the account may sign in at now.
func (u *User) CanLogin(now time.Time) bool {
	return u.Status == UserStatusActive && !u.IsLocked(now)
}

// RecordLoginSuccess resets the failure counter.
func (u *User) RecordLoginSuccess(at time.Time) {
	u.LastLoginAt = &at
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.MarkModified()
}

// RecordLoginFailure counts a failure and locks the account once
// maxAttempts is reached. It reports whether the account is now locked.
func (u *User) RecordLoginFailure(at time.Time, maxAttempts int, lockFor time.Duration) bool {
	u.FailedAttempts++
	locked := false
	if maxAttempts > 0 && u.FailedAttempts >= maxAttempts {
		until := at.Add(lockFor)
		u.LockedUntil = &until
		u.FailedAttempts = 0
		locked = true
	}
	u.MarkModified()
	return locked
}

// DisplayNameOrUsername is what the UI shows for the user.
func (u *User) DisplayNameOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 || len(password) > 72 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be 8-72 characters")
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return string(hash), nil
}
