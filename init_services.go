// Package main: Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"github.com/akinalp/quill/config"
	"github.com/akinalp/quill/pkg/email"
	"github.com/akinalp/quill/pkg/ratelimit"
	"github.com/akinalp/quill/services"
	"github.com/akinalp/quill/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth   services.AuthService
	Post   services.PostService
	Script services.ScriptService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
// Limit 0 ise ilgili alan nil'dir (koruma kapalı).
type RateLimiters struct {
	Login   *ratelimit.LoginRateLimiter
	Comment *ratelimit.CommentRateLimiter
}

// Close, limiter'ların cleanup goroutine'lerini durdurur.
func (l *RateLimiters) Close() {
	if l.Login != nil {
		l.Login.Close()
	}
	if l.Comment != nil {
		l.Comment.Close()
	}
}

// initServices, repository'ler ve hub ile service'leri oluşturur.
func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config) *Services {
	notifier := email.NewNotifier(cfg.Notify.ResendAPIKey, cfg.Notify.From, cfg.Notify.To)
	images := services.NewImageService(cfg.Content.ImagesDir)

	return &Services{
		Auth: services.NewAuthService(
			cfg.Admin.Username,
			cfg.Admin.PasswordHash,
			cfg.JWT.Secret,
			cfg.JWT.Expiry,
			repos.Revocations,
		),
		Post:   services.NewPostService(repos.Post, images, hub, notifier),
		Script: services.NewScriptService(repos.Template, cfg.Admin.ScriptPinHash),
	}
}

// initRateLimiters, login ve yorum limiter'larını config'ten oluşturur.
func initRateLimiters(cfg *config.Config) *RateLimiters {
	rl := cfg.RateLimit
	return &RateLimiters{
		Login:   ratelimit.NewLoginRateLimiter(rl.LoginMax, rl.LoginWindow),
		Comment: ratelimit.NewCommentRateLimiter(rl.CommentMax, rl.CommentWindow, rl.CommentCooldown),
	}
}
