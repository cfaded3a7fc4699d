package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/campusmart/storefront/pkg/auth"
	"github.com/campusmart/storefront/pkg/auth/session"
	"github.com/campusmart/storefront/pkg/config"
	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/enums"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:                 "secret",
	Issuer:                 "campusmart",
	ExpirationMinutes:      30,
	RefreshTokenTTLMinutes: 600,
}

func TestServiceLoginMintsRoleClaim(t *testing.T) {
	password := "admin-secret"
	user := testUser(t, "admin@example.com", password, enums.RoleAdmin)
	svc, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: " ADMIN@example.com ", Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if sessions.tokens[claims.ID] != resp.RefreshToken {
		t.Fatalf("expected refresh token stored under jti")
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatalf("expected user with last login set")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	user := testUser(t, "ada@example.com", "correct-horse", enums.RoleCustomer)
	svc, _ := buildTestService(t, user)

	cases := []LoginRequest{
		{Email: "ada@example.com", Password: "wrong-horse"},
		{Email: "nobody@example.com", Password: "correct-horse"},
		{Email: " ", Password: "correct-horse"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			t.Fatalf("expected unauthorized for %q, got %v", req.Email, err)
		}
	}

	user.IsActive = false
	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "correct-horse"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	password := "customer-secret"
	user := testUser(t, "c@example.com", password, enums.RoleCustomer)
	svc, sessions := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	oldClaims, err := pkgAuth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	newClaims, err := pkgAuth.ParseAccessToken(testJWTConfig, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed: %v", err)
	}
	if newClaims.ID == oldClaims.ID {
		t.Fatalf("expected new jti after refresh")
	}
	if _, ok := sessions.tokens[oldClaims.ID]; ok {
		t.Fatalf("expected old session removed")
	}
	if sessions.tokens[newClaims.ID] != pair.RefreshToken {
		t.Fatalf("expected new refresh token stored")
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected replayed refresh to fail, got %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{AccessToken: "garbage", RefreshToken: "x"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected invalid access token to fail, got %v", err)
	}
}

func TestServiceLogoutRevokes(t *testing.T) {
	user := testUser(t, "out@example.com", "password123", enums.RoleCustomer)
	svc, sessions := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, _ := pkgAuth.ParseAccessToken(testJWTConfig, login.AccessToken)

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.tokens) != 0 {
		t.Fatalf("expected no sessions after logout, got %d", len(sessions.tokens))
	}
	if err := svc.Logout(context.Background(), ""); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for empty access id, got %v", err)
	}
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{tokens: map[string]string{}}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func testUser(t *testing.T, email, password string, role enums.Role) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: mustHashPassword(t, password),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSessionManager struct {
	tokens map[string]string
	seq    int
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.seq++
	token := accessID + "-refresh-" + string(rune('a'+s.seq))
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newID := session.NewAccessID()
	token, err := s.Generate(ctx, newID)
	return newID, token, err
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	if accessID == "" {
		return errors.New("access id is required")
	}
	delete(s.tokens, accessID)
	return nil
}
