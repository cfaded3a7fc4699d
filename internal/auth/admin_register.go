package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campusmart/storefront/internal/users"
	"github.com/campusmart/storefront/pkg/config"
	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/enums"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
)

// AdminSeeder creates the storefront administrator account.
type AdminSeeder interface {
	Seed(ctx context.Context, req RegisterRequest) (*users.UserDTO, bool, error)
}

type adminRepository interface {
	userCreator
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.Role) error
}

// AdminSeederParams names the dependencies for the admin seed flow.
type AdminSeederParams struct {
	UserRepo       adminRepository
	PasswordConfig config.PasswordConfig
}

type adminSeeder struct {
	users       adminRepository
	passwordCfg config.PasswordConfig
}

// NewAdminSeeder builds the admin seeder used by the seed-admin command.
func NewAdminSeeder(params AdminSeederParams) (AdminSeeder, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &adminSeeder{users: params.UserRepo, passwordCfg: params.PasswordConfig}, nil
}

// Seed creates the admin when the email is free and promotes the existing
// account otherwise. The bool reports whether a new account was created.
func (s *adminSeeder) Seed(ctx context.Context, req RegisterRequest) (*users.UserDTO, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return s.promote(ctx, existing)
	}

	user, err := createAccount(ctx, s.users, s.passwordCfg, req, enums.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return users.FromModel(user), true, nil
}

func (s *adminSeeder) promote(ctx context.Context, user *models.User) (*users.UserDTO, bool, error) {
	if user.Role == enums.RoleAdmin && user.IsActive {
		return users.FromModel(user), false, nil
	}
	if err := s.users.UpdateRole(ctx, user.ID, enums.RoleAdmin); err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote user")
	}
	user.Role = enums.RoleAdmin
	user.IsActive = true
	return users.FromModel(user), false, nil
}

var errSeedMissing = errors.New("seed admin email and password are required")

// SeedRequestFromConfig converts the seed config into a register request.
func SeedRequestFromConfig(cfg config.SeedConfig) (RegisterRequest, error) {
	if strings.TrimSpace(cfg.AdminEmail) == "" || cfg.AdminPassword == "" {
		return RegisterRequest{}, errSeedMissing
	}
	return RegisterRequest{Name: cfg.AdminName, Email: cfg.AdminEmail, Password: cfg.AdminPassword}, nil
}
