package services

import (
	"context"
	"log"
	"strings"

	"github.com/akinalp/quill/models"
	"github.com/akinalp/quill/pkg"
	"github.com/akinalp/quill/repository"
	"golang.org/x/crypto/bcrypt"
)

// ScriptService, sunulan HTML template'ine script ekler (analytics, reklam vb.).
//
// DİKKAT: Bu, tüm sayfalara kısıtsız kod enjeksiyonu demektir. Tek koruma
// geçerli bir admin token'ı + ayrı pin'dir. "<script>" prefix kontrolü
// sadece çift sarmalamayı önler, XSS'e karşı bir önlem DEĞİLDİR.
type ScriptService interface {
	AddScript(ctx context.Context, req *models.AddScriptRequest) error
}

type scriptService struct {
	templates repository.TemplateRepository
	pinHash   []byte
}

// NewScriptService, constructor. pinHash boşsa her istek "Incorrect pin" ile reddedilir.
func NewScriptService(templates repository.TemplateRepository, pinHash string) ScriptService {
	return &scriptService{
		templates: templates,
		pinHash:   []byte(pinHash),
	}
}

// AddScript, kontrolleri şu sırayla yapar:
//  1. script "<script>" ile başlıyorsa → 403
//  2. pin bcrypt ile eşleşmiyorsa → 403
//  3. sarılmış snippet template'te zaten varsa → 400
//  4. pozisyon head/body değilse → 400
//
// Ekleme ilgili kapanış tag'inin İLK geçtiği yerin önüne yapılır.
func (s *scriptService) AddScript(ctx context.Context, req *models.AddScriptRequest) error {
	if strings.HasPrefix(req.Script, "<script>") {
		return pkg.NewError(pkg.ErrForbidden, "Error: Script content should not start with <script> tag.")
	}

	if len(s.pinHash) == 0 || bcrypt.CompareHashAndPassword(s.pinHash, []byte(req.Pin)) != nil {
		return pkg.NewError(pkg.ErrForbidden, "Error: Incorrect pin")
	}

	html, err := s.templates.Read(ctx)
	if err != nil {
		return err
	}

	snippet := "\n<script>\n" + req.Script + "\n</script>\n"
	if strings.Contains(html, snippet) {
		return pkg.NewError(pkg.ErrBadRequest, "Error: Script already present.")
	}

	closing, ok := req.Position.ClosingTag()
	if !ok {
		return pkg.NewError(pkg.ErrBadRequest, "Error: Invalid position specified.")
	}

	html = strings.Replace(html, closing, snippet+closing, 1)
	if err := s.templates.Write(ctx, html); err != nil {
		return err
	}

	log.Printf("[script] injected %d-byte script before %s", len(req.Script), closing)
	return nil
}
