// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler "ince" (thin) olmalı:
//  1. Request body'yi parse et (JSON/multipart → struct)
//  2. Service katmanını çağır
//  3. Sonucu HTTP response olarak döndür
//
// Handler iş mantığı içermez ve dosyalara doğrudan erişmez.
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/pkg/ratelimit"
	"github.com/akinalp/quill/services"
)

// AuthHandler, login/logout/verify endpoint'lerini yöneten struct.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAuthHandler, constructor.
// loginLimiter nil ise rate limiting devre dışı kalır.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// messageResponse, logout'un kullandığı { "message": "..." } formatı.
type messageResponse struct {
	Message string `json:"message"`
}

// Login godoc
// POST /api/login
//
// IP bazlı brute-force koruması: limit aşılırsa 429 + Retry-After.
// Başarılı login sayacı sıfırlar.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		msg := fmt.Sprintf("Too many login attempts, please try again in %s",
			ratelimit.FormatRetryMessage(retryAfter))
		pkg.Error(w, pkg.NewError(pkg.ErrTooManyRequests, msg), msg)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err, "Failed to log in")
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}
	log.Printf("[auth] admin %q logged in from %s", req.Username, ip)
	pkg.JSON(w, http.StatusOK, resp)
}

// Logout godoc
// POST /api/logout
// Auth middleware gerektirir: token ve claims context'te hazırdır.
// Aynı token ile ikinci çağrı 403 döner.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(TokenContextKey).(string)
	claims, _ := r.Context().Value(ClaimsContextKey).(*models.TokenClaims)

	if err := h.authService.Logout(r.Context(), token, claims); err != nil {
		status := pkg.StatusFor(err)
		msg := pkg.PublicMessage(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[auth] logout failed: %v", err)
			msg = "Failed to log out"
		}
		pkg.JSON(w, status, messageResponse{Message: msg})
		return
	}

	pkg.JSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// VerifyToken godoc
// GET /api/verify-token
// Token geçerliyse 200 + kullanıcı adı ve expire zamanı (unix saniye).
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ClaimsContextKey).(*models.TokenClaims)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var exp int64
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Unix()
	}
	pkg.JSON(w, http.StatusOK, map[string]any{
		"username": claims.Username,
		"exp":      exp,
	})
}

// contextKey, context'te değer taşımak için kullanılan key tipi.
// Başka paketlerin string key'leriyle çakışmayı önler.
type contextKey string

// ClaimsContextKey, doğrulanmış *models.TokenClaims'i taşır (auth middleware ekler).
const ClaimsContextKey contextKey = "claims"

// TokenContextKey, ham token string'ini taşır: logout iptal listesine bunu yazar.
const TokenContextKey contextKey = "token"
