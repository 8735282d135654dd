package pkg

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// ErrorResponse, hata yanıtlarının standart formatı: { "error": "..." }.
// Blog frontend'i bu alanı okuyup kullanıcıya gösterir.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON, verilen değeri status code ile JSON olarak yazar.
// Yanıt zarfsızdır (envelope yok): frontend {token}, {status, id} gibi
// düz objeler bekler.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[response] failed to encode response: %v", err)
	}
}

// Error, domain error'ını uygun HTTP status code'a çevirip yazar.
//
// 5xx durumlarında error mesajı client'a sızdırılmaz; yerine fallback
// mesajı gider ve asıl hata loglanır. 4xx mesajları client'a aynen döner.
func Error(w http.ResponseWriter, err error, fallback string) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[response] internal error: %v", err)
		ErrorWithMessage(w, status, fallback)
		return
	}
	ErrorWithMessage(w, status, PublicMessage(err))
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// StatusFor, domain error'ları HTTP status code'larına eşler.
// errors.Is() wrap edilmiş error'ları da yakalar.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage, NewError ile oluşturulmuş error'ın client mesajını döner.
// Zincirde publicError yoksa error'ın kendi mesajı döner.
func PublicMessage(err error) string {
	var pe *publicError
	if errors.As(err, &pe) {
		return pe.msg
	}
	return err.Error()
}

// publicError, client'a gösterilecek mesajı sentinel'den ayrı taşır.
type publicError struct {
	kind error
	msg  string
}

func (e *publicError) Error() string { return e.kind.Error() + ": " + e.msg }
func (e *publicError) Unwrap() error { return e.kind }

// NewError, client'a aynen gidecek mesajı taşıyan bir domain error oluşturur.
// errors.Is(err, kind) çalışmaya devam eder.
//
//	return pkg.NewError(pkg.ErrNotFound, "Post not found")
func NewError(kind error, msg string) error {
	return &publicError{kind: kind, msg: msg}
}
