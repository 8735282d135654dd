package repository

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic, veriyi aynı dizinde geçici bir dosyaya yazar ve rename eder.
// Okuyucu hiçbir zaman yarım yazılmış bir dosya görmez.
//
// Bu bir eşzamanlılık kontrolü DEĞİLDİR: iki paralel read-modify-write
// döngüsünde son rename kazanır, diğer değişiklik kaybolur.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
