// Package main: Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Yazılar ve template düz dosyadır; iptal listesi config'e göre
// bellekte veya Redis'te tutulur.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/akinalp/quill/config"
	"github.com/akinalp/quill/database"
	"github.com/akinalp/quill/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	Post        repository.PostRepository
	Template    repository.TemplateRepository
	Revocations repository.RevocationStore
}

// initRepositories, repository'leri oluşturur ve kapanışta çağrılacak
// cleanup fonksiyonunu döner (Redis bağlantısı / TTL cache goroutine'i).
func initRepositories(ctx context.Context, cfg *config.Config) (*Repositories, func(), error) {
	repos := &Repositories{
		Post:     repository.NewJSONPostRepo(cfg.Content.PostsFile),
		Template: repository.NewFileTemplateRepo(cfg.Content.TemplateFile),
	}

	switch cfg.Revocation.Backend {
	case "redis":
		client, err := database.NewRedis(ctx, cfg.Revocation.RedisAddr, cfg.Revocation.RedisPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init revocation store: %w", err)
		}
		repos.Revocations = repository.NewRedisRevocationStore(client)
		log.Printf("[main] revocation store: redis (%s)", cfg.Revocation.RedisAddr)
		return repos, func() { client.Close() }, nil

	default:
		store, closeStore := repository.NewMemoryRevocationStore()
		repos.Revocations = store
		log.Println("[main] revocation store: memory (cleared on restart)")
		return repos, closeStore, nil
	}
}
