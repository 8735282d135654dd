package services

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/pkg/email"
	"github.com/akinalp/quill/pkg/slug"
	"github.com/akinalp/quill/repository"
	"github.com/akinalp/quill/ws"
)

// PostService, blog yazıları ve yorumlar için iş mantığı.
type PostService interface {
	// List, dosyadaki kayıtları ham JSON olarak döner.
	List(ctx context.Context) ([]json.RawMessage, error)
	// Create, yeni yazıya id atar, görseli kaydeder ve listenin sonuna ekler.
	Create(ctx context.Context, req *models.CreatePostRequest, imageName string, image io.Reader) (*models.Post, error)
	// Update, id'li yazıyı gönderilen JSON gövdesi ile birebir değiştirir.
	Update(ctx context.Context, id int, body json.RawMessage) error
	Delete(ctx context.Context, id int) error
	AddComment(ctx context.Context, req *models.AddCommentRequest) error
}

type postService struct {
	postRepo repository.PostRepository
	images   ImageService
	hub      ws.EventPublisher
	notifier email.Notifier
	now      func() time.Time
}

// NewPostService, constructor.
func NewPostService(
	postRepo repository.PostRepository,
	images ImageService,
	hub ws.EventPublisher,
	notifier email.Notifier,
) PostService {
	return &postService{
		postRepo: postRepo,
		images:   images,
		hub:      hub,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *postService) List(ctx context.Context) ([]json.RawMessage, error) {
	return s.postRepo.List(ctx)
}

// Create akışı:
//  1. NextID: son eleman + 1
//  2. Görseli post<id><ext> olarak kaydet
//  3. Slug'ları türet, tarihi formatla
//  4. Append: dosya tekrar okunur, yazı sona eklenir
//
// 1 ile 4 arasında başka bir yazma olursa id tekrar edebilir (bilinen yarış).
func (s *postService) Create(ctx context.Context, req *models.CreatePostRequest, imageName string, image io.Reader) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, pkg.NewError(pkg.ErrBadRequest, err.Error())
	}

	id, err := s.postRepo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.images.Save(id, imageName, image)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:           id,
		Date:         s.now().Format(models.PostDateLayout),
		Title:        req.Title,
		Summary:      req.Summary,
		Content:      req.Content,
		Category:     req.Category,
		Image:        imagePath,
		Slug:         slug.Make(req.Title),
		CategorySlug: slug.Make(req.Category),
		Comments:     []string{},
	}

	if err := s.postRepo.Append(ctx, post); err != nil {
		if rmErr := s.images.Remove(imagePath); rmErr != nil {
			log.Printf("[posts] failed to clean up image %s: %v", imagePath, rmErr)
		}
		return nil, err
	}

	log.Printf("[posts] created post id=%d slug=%s", post.ID, post.Slug)
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpPostCreate, Data: post})
	return post, nil
}

func (s *postService) Update(ctx context.Context, id int, body json.RawMessage) error {
	if err := s.postRepo.Replace(ctx, id, body); err != nil {
		return err
	}

	log.Printf("[posts] replaced post id=%d (%d bytes)", id, len(body))
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpPostUpdate, Data: body})
	return nil
}

func (s *postService) Delete(ctx context.Context, id int) error {
	if err := s.postRepo.Remove(ctx, id); err != nil {
		return err
	}

	log.Printf("[posts] deleted post id=%d", id)
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpPostDelete, Data: ws.PostDeleteData{ID: id}})
	return nil
}

// AddComment, yorumu ekler; bildirim email'i arka planda gönderilir ve
// başarısız olursa sadece loglanır.
func (s *postService) AddComment(ctx context.Context, req *models.AddCommentRequest) error {
	if err := s.postRepo.AddComment(ctx, req.Slug, req.Comment); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpCommentCreate,
		Data: ws.CommentCreateData{Slug: req.Slug, Comment: req.Comment},
	})

	go func(postSlug, comment string) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.CommentAdded(notifyCtx, postSlug, comment); err != nil {
			log.Printf("[posts] comment notification failed: %v", err)
		}
	}(req.Slug, req.Comment)

	return nil
}
