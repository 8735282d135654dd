package repository

import (
	"context"
	"fmt"
	"os"
)

// TemplateRepository, script enjeksiyonunun hedefi olan HTML template'i okur/yazar.
// PostRepository gibi tam dosya okuma/yazma yapar, kilit yoktur.
type TemplateRepository interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, html string) error
}

type fileTemplateRepo struct {
	path string
}

// NewFileTemplateRepo, constructor.
func NewFileTemplateRepo(path string) TemplateRepository {
	return &fileTemplateRepo{path: path}
}

func (r *fileTemplateRepo) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

func (r *fileTemplateRepo) Write(ctx context.Context, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeFileAtomic(r.path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
