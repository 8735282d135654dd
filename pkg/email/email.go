// Package email, yeni yorum bildirimlerini admin'e email olarak gönderir.
//
// Notifier interface'i ile gönderim detayları soyutlanır; service katmanı
// concrete Resend implementasyonunu bilmez. Konfigürasyon eksikse
// NewNotifier hiçbir şey göndermeyen bir implementasyon döner.
package email

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/resend/resend-go/v3"
)

// Notifier, yorum bildirimi için interface.
type Notifier interface {
	// CommentAdded, slug'ı verilen yazıya yeni yorum geldiğini bildirir.
	CommentAdded(ctx context.Context, slug, comment string) error
}

// resendNotifier, Resend API üzerinden gönderen Notifier.
type resendNotifier struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
}

// NewNotifier, apiKey ve toEmail doluysa Resend notifier, değilse no-op döner.
func NewNotifier(apiKey, fromEmail, toEmail string) Notifier {
	if apiKey == "" || toEmail == "" {
		log.Println("[email] comment notifications disabled (RESEND_API_KEY or NOTIFY_EMAIL empty)")
		return nopNotifier{}
	}
	return &resendNotifier{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

func (n *resendNotifier) CommentAdded(ctx context.Context, slug, comment string) error {
	body := fmt.Sprintf(`<p>New comment on <strong>/%s</strong>:</p><blockquote>%s</blockquote>`,
		html.EscapeString(slug), html.EscapeString(comment))

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Blog <%s>", n.fromEmail),
		To:      []string{n.toEmail},
		Subject: "New comment on /" + slug,
		Html:    body,
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send comment notification: %w", err)
	}
	return nil
}

type nopNotifier struct{}

func (nopNotifier) CommentAdded(context.Context, string, string) error { return nil }
