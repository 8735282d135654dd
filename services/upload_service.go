package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImagePublicPrefix, post.image alanında saklanan, public dizine göreli yol.
const ImagePublicPrefix = "assets/images/"

// ImageService, post görsellerini diske yazar.
type ImageService interface {
	// Save, görseli "post<id><ext>" adıyla kaydeder ve public yolu döner
	// (ör: "assets/images/post3.png"). Aynı isimde dosya varsa üzerine yazılır.
	Save(id int, originalName string, src io.Reader) (string, error)
	// Remove, Save'in döndüğü public yoldaki dosyayı siler.
	Remove(publicPath string) error
}

type imageService struct {
	dir string
}

// NewImageService, constructor. dir: IMAGES_DIR.
func NewImageService(dir string) ImageService {
	return &imageService{dir: dir}
}

func (s *imageService) Save(id int, originalName string, src io.Reader) (string, error) {
	filename := fmt.Sprintf("post%d%s", id, imageExt(originalName))
	destPath := filepath.Join(s.dir, filename)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return ImagePublicPrefix + filename, nil
}

func (s *imageService) Remove(publicPath string) error {
	name := filepath.Base(strings.TrimPrefix(publicPath, ImagePublicPrefix))
	return os.Remove(filepath.Join(s.dir, name))
}

// imageExt, orijinal dosya adının uzantısını döner (nokta dahil).
// Sadece dosya adı kullanılır: "../../x.png" gibi yollar etkisizdir.
func imageExt(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return filepath.Ext(name)
}
