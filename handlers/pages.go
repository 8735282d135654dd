package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// namedPages, kendi HTML dosyası olan sabit sayfalar (/about → about.html).
var namedPages = map[string]bool{
	"about":          true,
	"contact":        true,
	"privacy-policy": true,
	"cookie-policy":  true,
	"login":          true,
}

// PageHandler, public dizinindeki HTML sayfalarını ve statik dosyaları servis eder.
//
// Çözümleme sırası:
//  1. Uzantısız path ve public/<path>.html varsa → o dosya
//  2. public/ altında gerçek bir dosyaysa → statik dosya
//  3. "/" → index.html
//  4. "/blogs", "/category/{slug}" → blogs.html
//  5. Sabit sayfalar → <name>.html
//  6. Tek segmentli her path (yazı slug'ı) → blog-details.html
//  7. Diğerleri → 404
//
// API route'ları mux'ta daha spesifik pattern'lerle kayıtlı olduğu için
// bu handler'a hiç ulaşmaz.
type PageHandler struct {
	publicDir string
}

// NewPageHandler, constructor. publicDir: PUBLIC_DIR.
func NewPageHandler(publicDir string) *PageHandler {
	return &PageHandler{publicDir: publicDir}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean("/" + r.URL.Path)

	if hasHiddenSegment(urlPath) {
		http.NotFound(w, r)
		return
	}

	if path.Ext(urlPath) == "" && urlPath != "/" {
		if file := h.resolve(urlPath + ".html"); isRegularFile(file) {
			http.ServeFile(w, r, file)
			return
		}
	}

	if file := h.resolve(urlPath); isRegularFile(file) {
		http.ServeFile(w, r, file)
		return
	}

	page, ok := pageFor(urlPath)
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.resolve("/"+page))
}

// pageFor, dosya olarak bulunamayan path'i hangi HTML sayfasının karşılayacağını seçer.
func pageFor(urlPath string) (string, bool) {
	if urlPath == "/" {
		return "index.html", true
	}

	segments := strings.Split(strings.TrimPrefix(urlPath, "/"), "/")
	switch {
	case len(segments) == 1 && segments[0] == "blogs":
		return "blogs.html", true
	case len(segments) == 2 && segments[0] == "category":
		return "blogs.html", true
	case len(segments) == 1 && namedPages[segments[0]]:
		return segments[0] + ".html", true
	case len(segments) == 1:
		return "blog-details.html", true
	default:
		return "", false
	}
}

// resolve, temizlenmiş URL path'ini public dizini altındaki dosya yoluna çevirir.
func (h *PageHandler) resolve(urlPath string) string {
	return filepath.Join(h.publicDir, filepath.FromSlash(urlPath))
}

func isRegularFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// hasHiddenSegment, ".env" gibi nokta ile başlayan segmentleri yakalar.
// Bunlar hiçbir zaman servis edilmez.
func hasHiddenSegment(urlPath string) bool {
	for _, seg := range strings.Split(urlPath, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
