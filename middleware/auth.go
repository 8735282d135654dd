// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Hata varsa next'i çağırmaz → request burada durur.
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/akinalp/quill/handlers"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/services"
)

// AuthMiddleware, admin token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService       services.AuthService
	enforceRevocation bool
}

// NewAuthMiddleware, constructor.
//
// enforceRevocation: true ise logout ile iptal edilmiş token'lar da
// reddedilir (AUTH_ENFORCE_REVOCATION). false ise sadece imza + expire bakılır.
func NewAuthMiddleware(authService services.AuthService, enforceRevocation bool) *AuthMiddleware {
	return &AuthMiddleware{
		authService:       authService,
		enforceRevocation: enforceRevocation,
	}
}

// Require, geçerli bir admin token'ı zorunlu kılar.
//
// Header formatı: Authorization: Bearer <token>
// Header'ın ikinci kelimesi token kabul edilir; şema adı kontrol edilmez.
//
//   - Header yok → 401 "Missing token"
//   - Token geçersiz / süresi dolmuş / (enforce ise) iptal edilmiş → 403 "Invalid token"
//
// Geçerliyse claims ve ham token context'e eklenir.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "Missing token")
			return
		}

		tokenString := bearerToken(authHeader)

		claims, err := m.authService.ValidateToken(tokenString)
		if err != nil {
			pkg.Error(w, err, "Invalid token")
			return
		}

		if m.enforceRevocation {
			revoked, err := m.authService.IsRevoked(r.Context(), tokenString)
			if err != nil {
				log.Printf("[auth] revocation lookup failed: %v", err)
				pkg.ErrorWithMessage(w, http.StatusInternalServerError, "Failed to verify token")
				return
			}
			if revoked {
				pkg.ErrorWithMessage(w, http.StatusForbidden, "Invalid token")
				return
			}
		}

		ctx := context.WithValue(r.Context(), handlers.ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, handlers.TokenContextKey, tokenString)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken, "Bearer abc" → "abc". İkinci kelime yoksa boş string.
func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
