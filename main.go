// Package main, quill blog backend'inin giriş noktasıdır.
//
// Bu dosyanın görevi: Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. İçerik dosyalarını kontrol et, görsel dizinini oluştur
//  3. Repository'leri oluştur (dosya + iptal listesi)
//  4. WebSocket Hub'ı başlat
//  5. Service'leri ve rate limiter'ları oluştur
//  6. Handler'ları oluştur
//  7. Route'ları bağla, CORS + request log sarmala
//  8. HTTP Server'ı başlat
//  9. Graceful shutdown
//
// Global değişken YOK: her şey burada oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/quill/config"
	"github.com/akinalp/quill/database"
	"github.com/akinalp/quill/middleware"
	"github.com/akinalp/quill/ws"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] quill server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d, public=%s)", cfg.Server.Port, cfg.Content.PublicDir)

	// ─── 2. İçerik dosyaları ───
	if err := database.PrepareDataFiles(cfg.Content.PostsFile, cfg.Content.TemplateFile, cfg.Content.ImagesDir); err != nil {
		log.Fatalf("[main] failed to prepare content directory: %v", err)
	}

	// ─── 3. Repository Layer ───
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	repos, closeRepos, err := initRepositories(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		log.Fatalf("[main] %v", err)
	}
	defer closeRepos()

	// ─── 4. WebSocket Hub ───
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	svcs := initServices(repos, hub, cfg)
	limiters := initRateLimiters(cfg)
	defer limiters.Close()

	if cfg.Admin.ScriptPinHash == "" {
		log.Println("[main] ADD_SCRIPT_KEY not set, /api/add-script will reject every request")
	}
	if cfg.Revocation.Enforce {
		log.Println("[main] revoked tokens are rejected on all protected routes")
	}

	// ─── 6. Handler Layer ───
	h := initHandlers(svcs, limiters, hub, cfg)

	// ─── 7. Router + CORS ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, cfg.Revocation.Enforce)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
	})

	handler := middleware.RequestLogger(corsHandler.Handler(mux))

	// ─── 8. HTTP Server ───
	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: handler,
		// Multipart upload yavaş bağlantılarda uzun sürebilir.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 9. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra yeni request kabul etmeyi
	// durdur ve mevcut request'lerin bitmesini bekle (5sn timeout).
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
