// Package main: Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Handler'lar "thin" dir: sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/quill/config"
	"github.com/akinalp/quill/handlers"
	"github.com/akinalp/quill/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Post    *handlers.PostHandler
	Comment *handlers.CommentHandler
	Script  *handlers.ScriptHandler
	Page    *handlers.PageHandler
	WS      *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:    handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Post:    handlers.NewPostHandler(svcs.Post, cfg.Content.UploadMaxSize),
		Comment: handlers.NewCommentHandler(svcs.Post, limiters.Comment),
		Script:  handlers.NewScriptHandler(svcs.Script),
		Page:    handlers.NewPageHandler(cfg.Content.PublicDir),
		WS:      ws.NewHandler(hub, cfg.CORS.AllowedOrigins),
	}
}
