// Package database, harici veri kaynaklarına bağlantı kurulumunu toplar.
//
// Blog verisi tek bir JSON dosyasında yaşar (bkz. repository.NewJSONPostRepo);
// bu paket yalnızca opsiyonel Redis bağlantısını ve başlangıçtaki
// dosya kontrollerini içerir.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis, Redis client'ı oluşturur ve 2 saniye içinde PING atar.
// Bağlantı kurulamazsa client kapatılır ve error döner.
func NewRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	log.Printf("[database] redis connected (%s)", addr)
	return client, nil
}
