package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/services"
)

// PostHandler, blog yazısı endpoint'lerini yöneten struct.
type PostHandler struct {
	postService   services.PostService
	maxUploadSize int64
}

// NewPostHandler, constructor. maxUploadSize: multipart body üst sınırı (byte).
func NewPostHandler(postService services.PostService, maxUploadSize int64) *PostHandler {
	return &PostHandler{
		postService:   postService,
		maxUploadSize: maxUploadSize,
	}
}

// List godoc
// GET /posts, GET /api/posts
// Dosyadaki tüm yazılar, dosya sırasıyla. Sayfalama yok.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		pkg.Error(w, err, "Failed to read posts file.")
		return
	}
	pkg.JSON(w, http.StatusOK, posts)
}

// Create godoc
// POST /add-post
//
// Multipart form: title, summary, content, category, image (dosya).
// Yanıt: { "status": "success", "id": <yeni id> }
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			pkg.ErrorWithMessage(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload too large (max %d bytes)", h.maxUploadSize))
			return
		}
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "image is required")
		return
	}
	defer file.Close()

	req := models.CreatePostRequest{
		Title:    r.FormValue("title"),
		Summary:  r.FormValue("summary"),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
	}

	post, err := h.postService.Create(r.Context(), &req, header.Filename, file)
	if err != nil {
		pkg.Error(w, err, "Failed to save post.")
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"status": "success", "id": post.ID})
}

// Update godoc
// PUT /api/blogs/{id}
//
// Body olduğu gibi kaydedilir: id'si path'tekinden farklı olabilir,
// eksik alanlar eksik kalır, bilinmeyen alanlar korunur. Boş body {} sayılır.
// Yanıttaki id body'dekidir; body'de id yoksa yanıtta da yoktur.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusNotFound, "Blog not found")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			pkg.ErrorWithMessage(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body too large (max %d bytes)", h.maxUploadSize))
			return
		}
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, ok := postRecord(body)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.postService.Update(r.Context(), id, record); err != nil {
		pkg.Error(w, err, "Failed to save post.")
		return
	}

	resp := updateResponse{Status: "success"}
	resp.ID, _ = models.PostField(record, "id")
	pkg.JSON(w, http.StatusOK, resp)
}

type updateResponse struct {
	Status string          `json:"status"`
	ID     json.RawMessage `json:"id,omitempty"`
}

// postRecord, PUT body'sini saklanacak kayda çevirir. Sadece obje veya
// dizi kabul edilir; boş body {} olur.
func postRecord(body []byte) (json.RawMessage, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return json.RawMessage(`{}`), true
	}
	if body[0] != '{' && body[0] != '[' {
		return nil, false
	}
	if !json.Valid(body) {
		return nil, false
	}
	return json.RawMessage(body), true
}

// Delete godoc
// DELETE /api/blogs/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusNotFound, "Blog not found")
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err, "Failed to delete blog.")
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("Blog with ID %d deleted.", id),
	})
}

// parsePostID, path'teki {id}'yi çözer. Sayı değilse hiçbir yazıyla
// eşleşemeyeceği için çağıran 404 döner.
func parsePostID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
