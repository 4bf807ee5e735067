package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"github.com/pitlanehq/garage-backend/pkg/enums"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/pitlanehq/garage-backend/pkg/security"
)

func TestCreateUserWithRoles(t *testing.T) {
	t.Parallel()

	svc, client := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateUserInput{
		Name:     "Sam Wrench",
		Email:    "Sam@Team.com",
		Password: "pit-lane-9",
		Roles:    []string{"Mechanic", "Driver"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Email != "sam@team.com" {
		t.Fatalf("expected normalized email, got %q", view.Email)
	}
	if len(view.Roles) != 2 {
		t.Fatalf("expected two roles, got %v", view.Roles)
	}

	var stored models.User
	if err := client.DB().First(&stored, "id = ?", view.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	ok, err := security.VerifyPassword("pit-lane-9", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	input := CreateUserInput{Name: "First", Email: "dupe@team.com", Password: "secret-1", Roles: []string{"Driver"}}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("create: %v", err)
	}
	input.Name = "Second"
	_, err := svc.Create(ctx, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "Badrole",
		Email:    "badrole@team.com",
		Password: "secret-1",
		Roles:    []string{"Astronaut"},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetRolesReplacesSet(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateUserInput{
		Name:     "Role Swap",
		Email:    "swap@team.com",
		Password: "secret-1",
		Roles:    []string{"Driver"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetRoles(ctx, view.ID, []string{"Manager"})
	if err != nil {
		t.Fatalf("set roles: %v", err)
	}
	if len(updated.Roles) != 1 || updated.Roles[0] != "Manager" {
		t.Fatalf("expected roles replaced with Manager, got %v", updated.Roles)
	}
}

func TestDeactivateUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateUserInput{
		Name:     "Leaving Soon",
		Email:    "leaving@team.com",
		Password: "secret-1",
		Roles:    []string{"Mechanic"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Deactivate(ctx, view.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	reloaded, err := svc.Get(ctx, view.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.IsActive {
		t.Fatal("expected user to be inactive")
	}

	err = svc.Deactivate(ctx, 99999)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	ctx := context.Background()

	client, err := db.New(ctx, config.DBConfig{
		Driver:       "sqlite",
		DSN:          "file:users_" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(&models.User{}, &models.Role{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, role := range enums.AllRoles() {
		if err := client.DB().Create(&models.Role{Name: role.String()}).Error; err != nil {
			t.Fatalf("seed role %s: %v", role, err)
		}
	}

	svc, err := NewService(NewRepository(client.DB()), client, config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}
