// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (dosya/Redis) arasında oturur:
//   - Şifre ve pin karşılaştırma (bcrypt)
//   - JWT token oluşturma/doğrulama
//   - Slug, id ve tarih üretimi
//   - Yayın (WebSocket) ve bildirim (email) tetikleme
//
// Service http.Request/Response bilmez: sadece domain modelleri alır/verir.
package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService, admin oturumu için interface.
type AuthService interface {
	// Login, kullanıcı adı + şifreyi doğrular ve imzalı token döner.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// ValidateToken, sadece imza ve expire kontrolü yapar: iptal listesine BAKMAZ.
	ValidateToken(tokenString string) (*models.TokenClaims, error)
	// Logout, token'ı iptal listesine ekler. Zaten listedeyse ErrForbidden.
	Logout(ctx context.Context, tokenString string, claims *models.TokenClaims) error
	// IsRevoked, token iptal listesinde mi?
	IsRevoked(ctx context.Context, tokenString string) (bool, error)
}

// Client'a dönen sabit mesajlar: frontend bu metinleri gösterir.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidToken       = "Invalid token"
	msgAlreadyRevoked     = "Token is already blacklisted"
)

type authService struct {
	adminUsername string
	adminHash     []byte
	jwtSecret     []byte
	expiry        time.Duration
	revocations   repository.RevocationStore
	now           func() time.Time
}

// NewAuthService, constructor.
//
// passwordHash: ADMIN_PASSWORD env'indeki bcrypt hash.
// expiry: token ömrü (JWT_EXPIRY).
func NewAuthService(
	adminUsername string,
	passwordHash string,
	jwtSecret string,
	expiry time.Duration,
	revocations repository.RevocationStore,
) AuthService {
	return &authService{
		adminUsername: adminUsername,
		adminHash:     []byte(passwordHash),
		jwtSecret:     []byte(jwtSecret),
		expiry:        expiry,
		revocations:   revocations,
		now:           time.Now,
	}
}

// Login, kullanıcı adı birebir, şifre bcrypt ile karşılaştırılır.
// Hangi alanın yanlış olduğu client'a söylenmez.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.adminUsername)) != 1 {
		return nil, pkg.NewError(pkg.ErrUnauthorized, msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)); err != nil {
		return nil, pkg.NewError(pkg.ErrUnauthorized, msgInvalidCredentials)
	}

	token, err := s.sign(req.Username)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token}, nil
}

func (s *authService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, pkg.NewError(pkg.ErrForbidden, msgInvalidToken)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, pkg.NewError(pkg.ErrForbidden, msgInvalidToken)
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, tokenString string, claims *models.TokenClaims) error {
	expiresAt := s.now().Add(s.expiry)
	if claims != nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	added, err := s.revocations.Revoke(ctx, tokenString, expiresAt)
	if err != nil {
		return err
	}
	if !added {
		return pkg.NewError(pkg.ErrForbidden, msgAlreadyRevoked)
	}
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	return s.revocations.IsRevoked(ctx, tokenString)
}

// ─── Private Helpers ───

func (s *authService) sign(username string) (string, error) {
	now := s.now()
	claims := &models.TokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
