package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles user administration
type UserService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewUserService creates a new UserService. blacklist may be nil.
func NewUserService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Create creates a user in the tenant
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this username already exists")
	}

	user, err := identity.NewUser(tenantID, req.Username, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := user.SetProfile(req.Email, req.DisplayName); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List lists users with filtering and pagination
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := filter.Filter("username", "asc")
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToUserResponses(users), total, nil
}

// Update updates a user. actorID is the administrator performing the
// change; an administrator cannot disable or demote themselves.
func (s *UserService) Update(ctx context.Context, tenantID, actorID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	revoke := false
	if req.Email != nil || req.DisplayName != nil {
		if err := user.SetProfile(common.StringOr(req.Email, user.Email), common.StringOr(req.DisplayName, user.DisplayName)); err != nil {
			return nil, err
		}
	}
	if req.Role != nil && identity.Role(*req.Role) != user.Role {
		if id == actorID {
			return nil, shared.NewDomainError("INVALID_STATE", "You cannot change your own role")
		}
		if err := user.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
		revoke = true
	}
	if req.Status != nil && identity.UserStatus(*req.Status) != user.Status {
		switch identity.UserStatus(*req.Status) {
		case identity.UserStatusActive:
			user.Enable()
		case identity.UserStatusDisabled:
			if id == actorID {
				return nil, shared.NewDomainError("INVALID_STATE", "You cannot disable your own account")
			}
			user.Disable()
			revoke = true
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Status must be active or disabled")
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
		revoke = true
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if revoke {
		s.revokeTokens(ctx, user.ID)
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete deletes a user and revokes their tokens
func (s *UserService) Delete(ctx context.Context, tenantID, actorID, id uuid.UUID) error {
	if id == actorID {
		return shared.NewDomainError("INVALID_STATE", "You cannot delete your own account")
	}
	if err := s.userRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.revokeTokens(ctx, id)
	return nil
}

func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil || s.jwtService == nil {
		return
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.Expiration()); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
