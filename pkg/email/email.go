// Package email, iletişim formu bildirimleri için email gönderim katmanı.
//
// Notifier interface'i ile gönderim detayları soyutlanır. Resend API key
// yapılandırılmamışsa NewNopNotifier kullanılır; mesaj yine backend'e
// kaydedilir, sadece email gitmez.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"github.com/portfolyo/site/models"
)

// Notifier, site sahibine yeni iletişim mesajını bildirir.
type Notifier interface {
	NotifyContact(ctx context.Context, msg models.MessageInput) error
}

type resendNotifier struct {
	client *resend.Client
	from   string
	to     string
}

// NewResendNotifier, Resend API ile çalışan bir Notifier oluşturur.
//
// from: Resend'de doğrulanmış domain altında gönderici adresi.
// to: bildirimin gideceği site sahibi adresi (CONTACT_NOTIFY_EMAIL).
func NewResendNotifier(apiKey, from, to string) Notifier {
	return &resendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *resendNotifier) NotifyContact(ctx context.Context, msg models.MessageInput) error {
	body, err := RenderContactEmail(msg)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Portfolyo <%s>", n.from),
		To:      []string{n.to},
		Subject: "Yeni iletişim mesajı: " + msg.Subject,
		Html:    body,
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	return nil
}

type nopNotifier struct{}

// NewNopNotifier, hiçbir şey göndermeyen Notifier döner.
func NewNopNotifier() Notifier { return nopNotifier{} }

func (nopNotifier) NotifyContact(context.Context, models.MessageInput) error { return nil }

// contactTemplate: html/template kullanıcı girdisini otomatik escape eder.
var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:24px;background-color:#0f172a;font-family:Arial,Helvetica,sans-serif;color:#e2e8f0;">
  <h2 style="margin:0 0 16px 0;">{{.Subject}}</h2>
  <p style="margin:0 0 8px 0;color:#94a3b8;">{{.SenderName}} &lt;{{.SenderEmail}}&gt;</p>
  <p style="white-space:pre-wrap;line-height:1.6;">{{.Content}}</p>
</body>
</html>`))

// RenderContactEmail, bildirim email'inin HTML gövdesini üretir.
func RenderContactEmail(msg models.MessageInput) (string, error) {
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("render contact email: %w", err)
	}
	return buf.String(), nil
}
