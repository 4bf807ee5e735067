package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	pkgauth "github.com/pitlanehq/garage-backend/pkg/auth"
	"github.com/pitlanehq/garage-backend/pkg/auth/session"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"github.com/pitlanehq/garage-backend/pkg/enums"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/pitlanehq/garage-backend/pkg/security"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "garage-test",
	ExpirationMinutes: 15,
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	svc, store, sessions := newTestService(t)
	store.add(t, "pat@team.com", "pit-lane-9", true, enums.RoleMechanic)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Pat@Team.com", Password: "pit-lane-9"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.Email != "pat@team.com" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if !claims.HasRole(enums.RoleMechanic) {
		t.Fatalf("expected mechanic role in claims, got %v", claims.Roles)
	}
	if _, ok := sessions.tokens[claims.ID]; !ok {
		t.Fatal("expected refresh session stored under jti")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestService(t)
	store.add(t, "pat@team.com", "pit-lane-9", true, enums.RoleMechanic)
	store.add(t, "gone@team.com", "pit-lane-9", false, enums.RoleDriver)

	cases := []LoginRequest{
		{Email: "pat@team.com", Password: "wrong"},
		{Email: "nobody@team.com", Password: "pit-lane-9"},
		{Email: "gone@team.com", Password: "pit-lane-9"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %s, got %v", req.Email, err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("expected uniform credential message, got %q", typed.Message())
		}
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	t.Parallel()

	svc, store, sessions := newTestService(t)
	store.add(t, "pat@team.com", "pit-lane-9", true, enums.RoleManager)

	login, err := svc.Login(context.Background(), LoginRequest{Email: "pat@team.com", Password: "pit-lane-9"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected a rotated token pair")
	}

	oldClaims, err := pkgauth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse old token: %v", err)
	}
	if _, ok := sessions.tokens[oldClaims.ID]; ok {
		t.Fatal("expected old session removed after rotation")
	}

	// The consumed refresh token must not work a second time.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on replay, got %v", err)
	}
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestService(t)
	user := store.add(t, "pat@team.com", "pit-lane-9", true, enums.RoleMechanic)

	login, err := svc.Login(context.Background(), LoginRequest{Email: "pat@team.com", Password: "pit-lane-9"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user.IsActive = false
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	svc, store, sessions := newTestService(t)
	store.add(t, "pat@team.com", "pit-lane-9", true, enums.RoleMechanic)

	login, err := svc.Login(context.Background(), LoginRequest{Email: "pat@team.com", Password: "pit-lane-9"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), LogoutRequest{AccessToken: login.AccessToken}); err != nil {
		t.Fatalf("logout: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if _, ok := sessions.tokens[claims.ID]; ok {
		t.Fatal("expected session revoked")
	}
}

type stubUserStore struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User
	nextID  int64
}

func (s *stubUserStore) add(t *testing.T, email, password string, active bool, roles ...enums.Role) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	s.nextID++
	user := &models.User{
		ID:           s.nextID,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		IsActive:     active,
	}
	for _, role := range roles {
		user.Roles = append(user.Roles, models.Role{Name: role.String()})
	}
	s.byEmail[email] = user
	s.byID[user.ID] = user
	return user
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	if user, ok := s.byID[id]; ok {
		user.LastLoginAt = &at
		return nil
	}
	return gorm.ErrRecordNotFound
}

type stubSessionManager struct {
	tokens map[string]string
	seq    int
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.seq++
	token := fmt.Sprintf("refresh-%d", s.seq)
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	s.seq++
	newID := fmt.Sprintf("jti-%d", s.seq)
	newToken := fmt.Sprintf("refresh-%d", s.seq)
	s.tokens[newID] = newToken
	return newID, newToken, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	delete(s.tokens, accessID)
	return nil
}

func newTestService(t *testing.T) (Service, *stubUserStore, *stubSessionManager) {
	t.Helper()
	store := &stubUserStore{byEmail: map[string]*models.User{}, byID: map[int64]*models.User{}}
	sessions := &stubSessionManager{tokens: map[string]string{}}
	svc, err := NewService(ServiceParams{
		UserRepo:       store,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store, sessions
}
