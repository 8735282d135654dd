package repository

import (
	"context"
	"time"
)

// RevocationStore, logout edilmiş token'ların iptal listesi.
//
// İki implementasyon var:
//   - memory: process ömrü boyunca yaşar, restart'ta tamamen unutulur
//   - redis: restart'tan etkilenmez, birden fazla instance paylaşabilir
//
// Kayıtlar token'ın expire zamanına kadar tutulur; sonrasında token imza
// kontrolünde zaten reddedildiği için listede kalmasına gerek yoktur.
type RevocationStore interface {
	// Revoke, token'ı listeye ekler. Token zaten listedeyse false döner.
	Revoke(ctx context.Context, token string, expiresAt time.Time) (bool, error)
	// IsRevoked, token listede mi?
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// minRevocationTTL, expire zamanı geçmiş veya çok yakın token'lar için
// uygulanan alt sınır.
const minRevocationTTL = time.Minute

func revocationTTL(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}
