// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya üç şey sunar:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
// 3. Wrap — düz metin gövdesini sabit sütun genişliğine katlayan helper
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v3"
)

// Message, gönderilecek tek bir düz metin email'i temsil eder.
//
// Headers: From dışındaki ek başlıklar (X-Blog-Id, X-Blog-Url,
// X-Originating-IP gibi). Bildirim mailleri kaynağını başlıklarda taşır ki
// alıcı taraftaki filtreler blog bazında çalışabilsin.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	Headers map[string]string
}

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	Send(ctx context.Context, msg *Message) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client *resend.Client
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// Gönderici adresi mesaj başına gelir — her blogun kendi email_from ayarı var.
func NewResendSender(apiKey string) EmailSender {
	return &resendSender{
		client: resend.NewClient(apiKey),
	}
}

func (s *resendSender) Send(ctx context.Context, msg *Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Headers: msg.Headers,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	return nil
}

// WrapWidth, bildirim maillerinin satır genişliği.
// Düz metin mail geleneği: 80 sütunluk terminal.
const WrapWidth = 80

// Wrap, metni kelime sınırlarından bölerek width sütuna katlar.
//
// Mevcut satır sonları korunur; width'ten uzun tek kelimeler bölünmez
// (URL'ler ortadan kırılırsa tıklanamaz hale gelir).
func Wrap(text string, width int) string {
	var out strings.Builder

	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		lineLen := 0
		for j, word := range words {
			if j > 0 {
				if lineLen+1+len(word) > width {
					out.WriteByte('\n')
					lineLen = 0
				} else {
					out.WriteByte(' ')
					lineLen++
				}
			}
			out.WriteString(word)
			lineLen += len(word)
		}
	}

	return out.String()
}
