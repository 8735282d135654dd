package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PostDateLayout, post tarihinin saklandığı format (ör: "October 19, 2026").
const PostDateLayout = "January 2, 2006"

// Post, /add-post ile oluşturulan yeni bir blog yazısı.
//
// Dosyadaki kayıtlar bu struct'a zorlanmaz: repository her kaydı ham JSON
// olarak taşır, böylece elle eklenmiş alanlar ("author", "tags" ...) ve
// PUT ile gelen gövdeler olduğu gibi korunur.
//
// ID ve Slug benzersiz olmalıdır ama bu hiçbir yerde zorlanmaz:
// dosya elle düzenlenirse veya iki yazma çakışırsa tekrar edebilir.
type Post struct {
	ID           int      `json:"id"`
	Date         string   `json:"date"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Content      string   `json:"content"`
	Category     string   `json:"category"`
	Image        string   `json:"image"`
	Slug         string   `json:"slug"`
	CategorySlug string   `json:"categorySlug"`
	Comments     []string `json:"comments"`
}

// CreatePostRequest, POST /add-post multipart form alanları.
// Image dosyası ayrıca taşınır (bkz. handlers.PostHandler.Create).
type CreatePostRequest struct {
	Title    string
	Summary  string
	Content  string
	Category string
}

// Validate, zorunlu alanları kontrol eder.
// Slug başlıktan türetildiği için boş başlık kabul edilmez.
func (r *CreatePostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// AddCommentRequest, POST /api/add-comment body'si.
// Comment opak bir string'tir; içeriği yorumlanmaz.
type AddCommentRequest struct {
	Slug    string `json:"slug"`
	Comment string `json:"comment"`
}

// PostField, ham bir kayıttan tek bir alanın JSON değerini döner.
// Kayıt bir JSON objesi değilse veya alan yoksa ok=false.
func PostField(raw json.RawMessage, name string) (json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	v, ok := fields[name]
	return v, ok
}
