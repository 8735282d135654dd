// Package main: HTTP route registration.
//
// initRoutes, tüm endpoint'leri mux'a bağlar. Korumalı route'lar
// auth helper'ı ile sarılır.
package main

import (
	"net/http"

	"github.com/akinalp/quill/middleware"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// "GET /" en genel pattern'dir; Go 1.22 mux daha spesifik pattern'i seçtiği
// için API route'ları her zaman sayfa handler'ından önce eşleşir.
func initRoutes(mux *http.ServeMux, h *Handlers, authService services.AuthService, enforceRevocation bool) {
	authMw := middleware.NewAuthMiddleware(authService, enforceRevocation)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Posts: okuma herkese açık
	mux.HandleFunc("GET /posts", h.Post.List)
	mux.HandleFunc("GET /api/posts", h.Post.List)

	// TODO: /add-post auth() ile sarılmalı; mevcut admin formu token göndermediği için şimdilik açık.
	mux.HandleFunc("POST /add-post", h.Post.Create)

	mux.Handle("PUT /api/blogs/{id}", auth(h.Post.Update))
	mux.Handle("DELETE /api/blogs/{id}", auth(h.Post.Delete))

	// Comments: anonim, IP bazlı rate limit
	mux.HandleFunc("POST /api/add-comment", h.Comment.Add)

	// Auth
	mux.HandleFunc("POST /api/login", h.Auth.Login)
	mux.Handle("POST /api/logout", auth(h.Auth.Logout))
	mux.Handle("GET /api/verify-token", auth(h.Auth.VerifyToken))

	// Script enjeksiyonu: token + pin
	mux.Handle("POST /api/add-script", auth(h.Script.AddScript))

	// WebSocket: salt okunur event feed, auth yok
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)

	// Sayfalar + statik dosyalar
	mux.Handle("GET /", h.Page)
}
