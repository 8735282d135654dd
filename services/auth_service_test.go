package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/repository"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, secret string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func newTestAuth(t *testing.T) *authService {
	t.Helper()
	store, closeStore := repository.NewMemoryRevocationStore()
	t.Cleanup(closeStore)
	return NewAuthService("admin", mustHash(t, "hunter2"), "test-secret", time.Hour, store).(*authService)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("username = %q", claims.Username)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("token lifetime = %v, want 1h", got)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	cases := []models.LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "hunter2"},
		{Username: "", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, &req)
		if !errors.Is(err, pkg.ErrUnauthorized) {
			t.Errorf("Login(%q, %q) err = %v, want ErrUnauthorized", req.Username, req.Password, err)
		}
		if pkg.PublicMessage(err) != "Invalid credentials" {
			t.Errorf("message = %q", pkg.PublicMessage(err))
		}
	}
}

func TestAuthService_ExpiredTokenIsForbidden(t *testing.T) {
	svc := newTestAuth(t)

	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }
	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(resp.Token); !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestAuthService_ForeignSignatureIsForbidden(t *testing.T) {
	svc := newTestAuth(t)
	other := newTestAuth(t)
	other.jwtSecret = []byte("different")

	resp, err := other.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.ValidateToken(resp.Token); !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if _, err := svc.ValidateToken("not-a-jwt"); !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("garbage err = %v, want ErrForbidden", err)
	}
}

func TestAuthService_LogoutTwice(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	resp, _ := svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "hunter2"})
	claims, _ := svc.ValidateToken(resp.Token)

	if err := svc.Logout(ctx, resp.Token, claims); err != nil {
		t.Fatalf("first Logout: %v", err)
	}
	err := svc.Logout(ctx, resp.Token, claims)
	if !errors.Is(err, pkg.ErrForbidden) || pkg.PublicMessage(err) != "Token is already blacklisted" {
		t.Fatalf("second Logout err = %v", err)
	}

	revoked, err := svc.IsRevoked(ctx, resp.Token)
	if err != nil || !revoked {
		t.Fatalf("IsRevoked = %v, %v", revoked, err)
	}

	// Revocation does not affect plain validation.
	if _, err := svc.ValidateToken(resp.Token); err != nil {
		t.Fatalf("ValidateToken after logout: %v", err)
	}
}
