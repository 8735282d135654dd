package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
)

// jsonPostRepo, PostRepository'nin tek bir JSON dosyası üzerindeki implementasyonu.
// Dosya, yazı objelerinden oluşan bir JSON dizisidir. Objeler ham tutulur:
// bilinmeyen alanlar ve alan sırası her yazmada korunur.
type jsonPostRepo struct {
	path string
}

// NewJSONPostRepo, constructor. Dosyanın var olduğu varsayılır;
// yoksa her işlem error döner.
func NewJSONPostRepo(path string) PostRepository {
	return &jsonPostRepo{path: path}
}

func (r *jsonPostRepo) List(ctx context.Context) ([]json.RawMessage, error) {
	return r.load(ctx)
}

func (r *jsonPostRepo) Append(ctx context.Context, post *models.Post) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	raw, err := marshalNoEscape(post)
	if err != nil {
		return fmt.Errorf("failed to encode post: %w", err)
	}

	records = append(records, raw)
	return r.save(ctx, records)
}

func (r *jsonPostRepo) Replace(ctx context.Context, id int, body json.RawMessage) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := indexByID(records, id)
	if idx == -1 {
		return pkg.NewError(pkg.ErrNotFound, "Blog not found")
	}

	records[idx] = body
	return r.save(ctx, records)
}

func (r *jsonPostRepo) Remove(ctx context.Context, id int) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := indexByID(records, id)
	if idx == -1 {
		return pkg.NewError(pkg.ErrNotFound, "Blog not found")
	}

	records = append(records[:idx], records[idx+1:]...)
	return r.save(ctx, records)
}

func (r *jsonPostRepo) AddComment(ctx context.Context, slug, comment string) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range records {
		if matchesSlug(records[i], slug) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return pkg.NewError(pkg.ErrNotFound, "Post not found")
	}

	updated, err := appendComment(records[idx], comment)
	if err != nil {
		return fmt.Errorf("failed to add comment to %q: %w", slug, err)
	}

	records[idx] = updated
	return r.save(ctx, records)
}

// NextID, son elemanın id'si + 1.
//
// Max-scan değil: liste [1, 3, 2] ise 3 döner ve id 3 ikinci kez kullanılır.
// Eski veriler ve frontend bu davranışla oluştu, bilinçli olarak korunuyor.
func (r *jsonPostRepo) NextID(ctx context.Context) (int, error) {
	records, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	if len(records) == 0 {
		return 1, nil
	}
	return nextIDAfter(records[len(records)-1])
}

// ─── Private Helpers ───

func (r *jsonPostRepo) load(ctx context.Context) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts file: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse posts file: %w", err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}

	return records, nil
}

// save, tüm listeyi 2 boşluk girintili JSON olarak yazar.
// HTML escape kapalı: yazı içerikleri "<p>" gibi etiketleri olduğu gibi saklar.
func (r *jsonPostRepo) save(ctx context.Context, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}

	if err := writeFileAtomic(r.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write posts file: %w", err)
	}
	return nil
}

func indexByID(records []json.RawMessage, id int) int {
	for i := range records {
		if matchesID(records[i], id) {
			return i
		}
	}
	return -1
}
