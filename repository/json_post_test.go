package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
)

func writePostsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// decodePosts, ham kayıtları test karşılaştırmaları için Post'a çevirir.
func decodePosts(t *testing.T, records []json.RawMessage) []models.Post {
	t.Helper()
	posts := make([]models.Post, len(records))
	for i, raw := range records {
		if err := json.Unmarshal(raw, &posts[i]); err != nil {
			t.Fatalf("decode record %d: %v", i, err)
		}
	}
	return posts
}

// decodeFields, ham kaydı alan haritasına çevirir.
func decodeFields(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	return fields
}

const twoPosts = `[
  {"id": 1, "title": "First", "slug": "first", "comments": []},
  {"id": 2, "title": "Second", "slug": "second", "comments": ["hi"]}
]`

func TestJSONPostRepo_List(t *testing.T) {
	repo := NewJSONPostRepo(writePostsFile(t, twoPosts))

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	posts := decodePosts(t, records)
	if len(posts) != 2 || posts[0].ID != 1 || posts[1].Slug != "second" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestJSONPostRepo_ListErrors(t *testing.T) {
	missing := NewJSONPostRepo(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := missing.List(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}

	broken := NewJSONPostRepo(writePostsFile(t, "{not json"))
	_, err := broken.List(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed file")
	}
	if pkg.StatusFor(err) != 500 {
		t.Fatalf("parse error should map to 500, got %d", pkg.StatusFor(err))
	}
}

func TestJSONPostRepo_AppendAndNextID(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONPostRepo(writePostsFile(t, twoPosts))

	id, err := repo.NextID(ctx)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if id != 3 {
		t.Fatalf("NextID = %d, want 3", id)
	}

	if err := repo.Append(ctx, &models.Post{ID: id, Title: "Third", Slug: "third", Comments: []string{}}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, _ := repo.List(ctx)
	posts := decodePosts(t, records)
	if len(posts) != 3 || posts[2].ID != 3 {
		t.Fatalf("expected appended post at the end, got %+v", posts)
	}
}

func TestJSONPostRepo_NextIDUsesLastElement(t *testing.T) {
	ctx := context.Background()

	empty := NewJSONPostRepo(writePostsFile(t, `[]`))
	if id, _ := empty.NextID(ctx); id != 1 {
		t.Fatalf("NextID on empty list = %d, want 1", id)
	}

	// Son eleman max değil: id 3 tekrar üretilir.
	unordered := NewJSONPostRepo(writePostsFile(t, `[{"id":1},{"id":3},{"id":2}]`))
	if id, _ := unordered.NextID(ctx); id != 3 {
		t.Fatalf("NextID = %d, want 3 (last+1, not max+1)", id)
	}
}

func TestJSONPostRepo_Replace(t *testing.T) {
	ctx := context.Background()
	path := writePostsFile(t, twoPosts)
	repo := NewJSONPostRepo(path)

	updated := json.RawMessage(`{"id":2,"title":"Second (edited)"}`)
	if err := repo.Replace(ctx, 2, updated); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	records, _ := repo.List(ctx)
	want := map[string]any{"id": float64(2), "title": "Second (edited)"}
	if got := decodeFields(t, records[1]); !reflect.DeepEqual(got, want) {
		t.Fatalf("post not replaced wholesale: got %v", got)
	}
	if decodePosts(t, records)[0].Title != "First" {
		t.Fatalf("other post touched: %s", records[0])
	}

	before, _ := os.ReadFile(path)
	err := repo.Replace(ctx, 99, updated)
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Replace missing id: err = %v, want ErrNotFound", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatal("file changed after failed Replace")
	}
}

func TestJSONPostRepo_Remove(t *testing.T) {
	ctx := context.Background()
	path := writePostsFile(t, twoPosts)
	repo := NewJSONPostRepo(path)

	before, _ := os.ReadFile(path)
	if err := repo.Remove(ctx, 42); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Remove missing id: err = %v, want ErrNotFound", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatal("file changed after failed Remove")
	}

	if err := repo.Remove(ctx, 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	records, _ := repo.List(ctx)
	posts := decodePosts(t, records)
	if len(posts) != 1 || posts[0].ID != 2 {
		t.Fatalf("expected only post 2 left, got %+v", posts)
	}
}

func TestJSONPostRepo_AddComment(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONPostRepo(writePostsFile(t, twoPosts))

	if err := repo.AddComment(ctx, "second", "nice post"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	records, _ := repo.List(ctx)
	posts := decodePosts(t, records)
	if want := []string{"hi", "nice post"}; !reflect.DeepEqual(posts[1].Comments, want) {
		t.Fatalf("comments = %v, want %v", posts[1].Comments, want)
	}
	if len(posts[0].Comments) != 0 {
		t.Fatalf("other post's comments touched: %v", posts[0].Comments)
	}

	if err := repo.AddComment(ctx, "missing", "x"); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("AddComment missing slug: err = %v, want ErrNotFound", err)
	}
}

func TestJSONPostRepo_SaveKeepsHTML(t *testing.T) {
	ctx := context.Background()
	path := writePostsFile(t, `[]`)
	repo := NewJSONPostRepo(path)

	if err := repo.Append(ctx, &models.Post{ID: 1, Content: "<p>a & b</p>", Comments: []string{}}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"content": "<p>a & b</p>"`) {
		t.Fatalf("expected unescaped, indented HTML in file, got:\n%s", data)
	}
}

func TestJSONPostRepo_KeepsUnknownFields(t *testing.T) {
	ctx := context.Background()
	seed := `[{"id":1,"slug":"x","comments":[],"author":"Ann","tags":["go"]},{"id":2,"slug":"y","comments":[],"featured":true}]`
	path := writePostsFile(t, seed)
	repo := NewJSONPostRepo(path)

	if err := repo.AddComment(ctx, "x", "hi"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	records, _ := repo.List(ctx)
	first := decodeFields(t, records[0])
	wantFirst := map[string]any{
		"id":       float64(1),
		"slug":     "x",
		"comments": []any{"hi"},
		"author":   "Ann",
		"tags":     []any{"go"},
	}
	if !reflect.DeepEqual(first, wantFirst) {
		t.Fatalf("record after AddComment = %v, want %v", first, wantFirst)
	}
	wantSecond := map[string]any{"id": float64(2), "slug": "y", "comments": []any{}, "featured": true}
	if got := decodeFields(t, records[1]); !reflect.DeepEqual(got, wantSecond) {
		t.Fatalf("untouched record = %v, want %v", got, wantSecond)
	}

	// Alan sırası da korunmalı.
	data, _ := os.ReadFile(path)
	order := []string{`"id": 1`, `"slug": "x"`, `"comments": [`, `"author": "Ann"`, `"tags": [`}
	last := -1
	for _, key := range order {
		i := strings.Index(string(data), key)
		if i <= last {
			t.Fatalf("field %s out of order in:\n%s", key, data)
		}
		last = i
	}

	if err := repo.Remove(ctx, 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	records, _ = repo.List(ctx)
	if len(records) != 1 || !reflect.DeepEqual(decodeFields(t, records[0]), wantSecond) {
		t.Fatalf("record after Remove = %s", records)
	}

	replacement := json.RawMessage(`{"id":2,"slug":"y","comments":[],"featured":false,"series":{"part":2}}`)
	if err := repo.Replace(ctx, 2, replacement); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	records, _ = repo.List(ctx)
	wantReplaced := map[string]any{
		"id":       float64(2),
		"slug":     "y",
		"comments": []any{},
		"featured": false,
		"series":   map[string]any{"part": float64(2)},
	}
	if got := decodeFields(t, records[0]); !reflect.DeepEqual(got, wantReplaced) {
		t.Fatalf("record after Replace = %v, want %v", got, wantReplaced)
	}
}

func TestJSONPostRepo_LooseIDMatch(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONPostRepo(writePostsFile(t, `[{"id":"3","slug":"a"},{"id":4.0,"slug":"b"},{"slug":"c"}]`))

	if err := repo.Replace(ctx, 3, json.RawMessage(`{"id":3,"slug":"a2"}`)); err != nil {
		t.Fatalf("Replace string id: %v", err)
	}
	if err := repo.Remove(ctx, 4); err != nil {
		t.Fatalf("Remove float id: %v", err)
	}

	records, _ := repo.List(ctx)
	if len(records) != 2 || decodePosts(t, records)[0].Slug != "a2" {
		t.Fatalf("unexpected records: %s", records)
	}

	// id alanı olmayan kayıt hiçbir id ile eşleşmez.
	if err := repo.Remove(ctx, 0); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Remove id 0: err = %v, want ErrNotFound", err)
	}
}

func TestJSONPostRepo_NextIDFromRawIDs(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		seed string
		want int
	}{
		{`[{"id":"7"}]`, 8},
		{`[{"id":"12abc"}]`, 13},
		{`[{"id":2.9}]`, 3},
		{`[{"slug":"no-id"}]`, 1},
		{`[{"id":null}]`, 1},
		{`[{"id":""}]`, 1},
	}

	for _, tt := range tests {
		repo := NewJSONPostRepo(writePostsFile(t, tt.seed))
		got, err := repo.NextID(ctx)
		if err != nil {
			t.Fatalf("NextID(%s): %v", tt.seed, err)
		}
		if got != tt.want {
			t.Errorf("NextID(%s) = %d, want %d", tt.seed, got, tt.want)
		}
	}

	bad := NewJSONPostRepo(writePostsFile(t, `[{"id":"abc"}]`))
	if _, err := bad.NextID(ctx); err == nil {
		t.Fatal("expected error for non-numeric last id")
	}
}

func TestJSONPostRepo_AddCommentWithoutCommentsArray(t *testing.T) {
	ctx := context.Background()
	path := writePostsFile(t, `[{"id":1,"slug":"x"}]`)
	repo := NewJSONPostRepo(path)

	before, _ := os.ReadFile(path)
	err := repo.AddComment(ctx, "x", "hi")
	if err == nil {
		t.Fatal("expected error for post without comments array")
	}
	if pkg.StatusFor(err) != 500 {
		t.Fatalf("status = %d, want 500", pkg.StatusFor(err))
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatal("file changed after failed AddComment")
	}
}
