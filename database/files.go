package database

import (
	"fmt"
	"log"
	"os"
)

// PrepareDataFiles, başlangıçta veri dosyalarını kontrol eder.
//
// Upload dizini yoksa oluşturulur. Posts ve template dosyaları
// oluşturulMAZ: eksikse sadece uyarı loglanır; ilgili endpoint'ler
// her istekte 500 döner.
func PrepareDataFiles(postsFile, templateFile, imagesDir string) error {
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return fmt.Errorf("failed to create images directory: %w", err)
	}

	for _, path := range []string{postsFile, templateFile} {
		if _, err := os.Stat(path); err != nil {
			log.Printf("[database] WARNING: %s is not readable: %v", path, err)
		}
	}
	return nil
}
