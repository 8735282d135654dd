package repository

import (
	"context"
	"encoding/json"

	"github.com/akinalp/quill/models"
)

// PostRepository, blog yazılarının saklandığı katman için interface.
//
// Kayıtlar ham JSON olarak taşınır: repository sadece id, slug ve comments
// alanlarını okur, geri kalan her şeyi dokunmadan geri yazar.
//
// Her mutasyon tam bir read-modify-write döngüsüdür: tüm liste okunur,
// değiştirilir ve tüm liste geri yazılır. Kilit yoktur: aynı anda iki
// yazma gelirse birinin değişikliği kaybolabilir (bilinen yarış durumu).
type PostRepository interface {
	// List, tüm kayıtları dosyadaki sırayla döner.
	List(ctx context.Context) ([]json.RawMessage, error)
	// Append, yazıyı listenin sonuna ekler.
	Append(ctx context.Context, post *models.Post) error
	// Replace, id'si eşleşen ilk kaydı body ile değiştirir. Yoksa ErrNotFound.
	Replace(ctx context.Context, id int, body json.RawMessage) error
	// Remove, id'si eşleşen ilk kaydı siler. Yoksa ErrNotFound.
	Remove(ctx context.Context, id int) error
	// AddComment, slug'ı eşleşen ilk kaydın yorumlarına ekler. Yoksa ErrNotFound.
	AddComment(ctx context.Context, slug, comment string) error
	// NextID, son kaydın id'si + 1 döner (max değil!). Boş listede 1.
	NextID(ctx context.Context) (int, error)
}
