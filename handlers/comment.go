package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/pkg/ratelimit"
	"github.com/akinalp/quill/services"
)

// CommentHandler, anonim yorum endpoint'i.
type CommentHandler struct {
	postService    services.PostService
	commentLimiter *ratelimit.CommentRateLimiter
}

// NewCommentHandler, constructor. commentLimiter nil ise spam koruması kapalı.
func NewCommentHandler(postService services.PostService, commentLimiter *ratelimit.CommentRateLimiter) *CommentHandler {
	return &CommentHandler{
		postService:    postService,
		commentLimiter: commentLimiter,
	}
}

// Add godoc
// POST /api/add-comment
// Body: { "slug": "...", "comment": "..." }
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.commentLimiter != nil && !h.commentLimiter.Allow(ip) {
		cooldown := h.commentLimiter.CooldownSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", cooldown))
		msg := fmt.Sprintf("Too many comments, please try again in %s", ratelimit.FormatRetryMessage(cooldown))
		pkg.Error(w, pkg.NewError(pkg.ErrTooManyRequests, msg), msg)
		return
	}

	var req models.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.postService.AddComment(r.Context(), &req); err != nil {
		pkg.Error(w, err, "Failed to add comment.")
		return
	}

	pkg.JSON(w, http.StatusOK, messageResponse{Message: "Comment added successfully"})
}
