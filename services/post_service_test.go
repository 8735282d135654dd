package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/repository"
	"github.com/akinalp/quill/ws"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) BroadcastToAll(ev ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ops []string
	for _, ev := range p.events {
		ops = append(ops, ev.Op)
	}
	return ops
}

type chanNotifier chan string

func (n chanNotifier) CommentAdded(_ context.Context, slug, comment string) error {
	n <- slug + ":" + comment
	return nil
}

// listPosts, repository'deki ham kayıtları Post olarak okur.
func (f *postFixture) listPosts(t *testing.T) []models.Post {
	t.Helper()
	records, err := f.repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	posts := make([]models.Post, len(records))
	for i, raw := range records {
		if err := json.Unmarshal(raw, &posts[i]); err != nil {
			t.Fatalf("decode record %d: %v", i, err)
		}
	}
	return posts
}

type postFixture struct {
	svc       *postService
	repo      repository.PostRepository
	pub       *recordingPublisher
	notes     chanNotifier
	imagesDir string
}

func newPostFixture(t *testing.T, seed string) *postFixture {
	t.Helper()
	dir := t.TempDir()
	postsFile := filepath.Join(dir, "posts.json")
	if err := os.WriteFile(postsFile, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}
	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		t.Fatal(err)
	}

	repo := repository.NewJSONPostRepo(postsFile)
	pub := &recordingPublisher{}
	notes := make(chanNotifier, 4)
	svc := NewPostService(repo, NewImageService(imagesDir), pub, notes).(*postService)
	svc.now = func() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }

	return &postFixture{svc: svc, repo: repo, pub: pub, notes: notes, imagesDir: imagesDir}
}

func TestPostService_Create(t *testing.T) {
	f := newPostFixture(t, `[{"id":1,"slug":"first","comments":[]}]`)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, &models.CreatePostRequest{
		Title:    "Hello World",
		Summary:  "s",
		Content:  "c",
		Category: "Go Tips & Tricks",
	}, "cover.png", strings.NewReader("PNGDATA"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if post.ID != 2 || post.Slug != "hello-world" {
		t.Errorf("id=%d slug=%q", post.ID, post.Slug)
	}
	if post.CategorySlug != "go-tips-tricks" {
		t.Errorf("categorySlug = %q", post.CategorySlug)
	}
	if post.Date != "October 19, 2026" {
		t.Errorf("date = %q", post.Date)
	}
	if post.Image != "assets/images/post2.png" {
		t.Errorf("image = %q", post.Image)
	}
	if post.Comments == nil || len(post.Comments) != 0 {
		t.Errorf("comments = %#v", post.Comments)
	}

	data, err := os.ReadFile(filepath.Join(f.imagesDir, "post2.png"))
	if err != nil || string(data) != "PNGDATA" {
		t.Fatalf("image file = %q, %v", data, err)
	}

	posts := f.listPosts(t)
	if len(posts) != 2 || posts[1].ID != 2 {
		t.Fatalf("posts = %+v", posts)
	}
	if ops := f.pub.ops(); len(ops) != 1 || ops[0] != ws.OpPostCreate {
		t.Errorf("events = %v", ops)
	}
}

func TestPostService_CreateRequiresTitle(t *testing.T) {
	f := newPostFixture(t, `[]`)

	_, err := f.svc.Create(context.Background(), &models.CreatePostRequest{Title: "  "}, "a.png", strings.NewReader("x"))
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
	entries, _ := os.ReadDir(f.imagesDir)
	if len(entries) != 0 {
		t.Errorf("image written for rejected post: %v", entries)
	}
}

func TestPostService_UpdateAndDelete(t *testing.T) {
	f := newPostFixture(t, `[{"id":1,"slug":"a","comments":[]},{"id":2,"slug":"b","comments":[]}]`)
	ctx := context.Background()

	replacement := json.RawMessage(`{"id":2,"title":"Edited","slug":"edited","comments":["kept"]}`)
	if err := f.svc.Update(ctx, 2, replacement); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := f.svc.Update(ctx, 9, replacement); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Update missing err = %v", err)
	}

	if err := f.svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.svc.Delete(ctx, 1); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Delete missing err = %v", err)
	}

	posts := f.listPosts(t)
	if len(posts) != 1 || posts[0].Title != "Edited" || posts[0].Comments[0] != "kept" {
		t.Fatalf("posts = %+v", posts)
	}

	want := []string{ws.OpPostUpdate, ws.OpPostDelete}
	if got := f.pub.ops(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
	if data, ok := f.pub.events[0].Data.(json.RawMessage); !ok || string(data) != string(replacement) {
		t.Errorf("post_update payload = %#v, want the submitted body", f.pub.events[0].Data)
	}
}

func TestPostService_AddComment(t *testing.T) {
	f := newPostFixture(t, `[{"id":1,"slug":"x","comments":[]},{"id":2,"slug":"y","comments":[]}]`)
	ctx := context.Background()

	if err := f.svc.AddComment(ctx, &models.AddCommentRequest{Slug: "x", Comment: "nice"}); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	select {
	case got := <-f.notes:
		if got != "x:nice" {
			t.Errorf("notification = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier not called")
	}

	err := f.svc.AddComment(ctx, &models.AddCommentRequest{Slug: "missing", Comment: "?"})
	if !errors.Is(err, pkg.ErrNotFound) || pkg.PublicMessage(err) != "Post not found" {
		t.Fatalf("missing slug err = %v", err)
	}

	posts := f.listPosts(t)
	if len(posts[0].Comments) != 1 || len(posts[1].Comments) != 0 {
		t.Fatalf("comments = %v / %v", posts[0].Comments, posts[1].Comments)
	}
}

func TestImageExt(t *testing.T) {
	tests := map[string]string{
		"photo.jpg":        ".jpg",
		"archive.tar.gz":   ".gz",
		"noext":            "",
		"../../etc/x.png":  ".png",
		`C:\Users\a\b.gif`: ".gif",
	}
	for in, want := range tests {
		if got := imageExt(in); got != want {
			t.Errorf("imageExt(%q) = %q, want %q", in, got, want)
		}
	}
}
