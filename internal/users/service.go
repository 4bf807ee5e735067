package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"github.com/pitlanehq/garage-backend/pkg/enums"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/pitlanehq/garage-backend/pkg/security"
	"gorm.io/gorm"
)

// Service exposes team member management operations.
type Service interface {
	List(ctx context.Context) ([]UserView, error)
	Get(ctx context.Context, id int64) (*UserView, error)
	Create(ctx context.Context, input CreateUserInput) (*UserView, error)
	SetRoles(ctx context.Context, id int64, roleNames []string) (*UserView, error)
	Deactivate(ctx context.Context, id int64) error
}

type service struct {
	repo        *Repository
	dbClient    *db.Client
	passwordCfg config.PasswordConfig
}

// NewService constructs a users service instance.
func NewService(repo *Repository, dbClient *db.Client, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context) ([]UserView, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	views := make([]UserView, 0, len(rows))
	for i := range rows {
		views = append(views, *FromModel(&rows[i]))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id int64) (*UserView, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserView, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email, and password are required")
	}

	roles, err := s.resolveRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		Roles:        roles,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "email %s already registered", email)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) SetRoles(ctx context.Context, id int64, roleNames []string) (*UserView, error) {
	if len(roleNames) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one role is required")
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceRoles(ctx, user, roles); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace roles")
	}
	return s.Get(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id must be positive")
	}
	found, err := s.repo.SetActive(ctx, id, false)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate user")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "user %d not found", id)
	}
	return nil
}

func (s *service) loadUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id must be positive")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "user %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}

// resolveRoles maps role names onto the seeded role rows. Unknown names are
// rejected before any write happens.
func (s *service) resolveRoles(ctx context.Context, names []string) ([]models.Role, error) {
	parsed := make([]string, 0, len(names))
	for _, name := range names {
		role, err := enums.ParseRole(strings.TrimSpace(name))
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid role %q", name)
		}
		parsed = append(parsed, role.String())
	}
	if len(parsed) == 0 {
		return []models.Role{}, nil
	}

	roles, err := s.repo.FindRolesByNames(ctx, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load roles")
	}
	if len(roles) != len(parsed) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more roles are not seeded")
	}
	return roles, nil
}
