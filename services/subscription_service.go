package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg/email"
	"github.com/akinalp/okundu/pkg/i18n"
	"github.com/akinalp/okundu/repository"
	"github.com/google/uuid"
)

// SubscriptionService, yazı bazlı yorum bildirimi aboneliklerinin iş mantığı.
//
// Abonelik, tracking tablosunda "mail" türünde bir satırdır — okuma
// kayıtlarından bağımsız yaşar. Subscribe/Unsubscribe idempotenttir:
// zaten aboneyken tekrar abone olmak hata değildir.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID string, postID int64) error
	Unsubscribe(ctx context.Context, userID string, postID int64) error
	IsSubscribed(ctx context.Context, userID string, postID int64) (bool, error)
	// UnsubscribeAll, kullanıcının bir blogdaki tüm aboneliklerini kaldırır.
	UnsubscribeAll(ctx context.Context, userID, blogID string) error
	ListSubscribers(ctx context.Context, postID int64) ([]models.Subscriber, error)
	// NotifySubscribers, yayınlanan yorum için abonelere mail gönderir.
	// Gönderilen mail sayısını döner. Blogun gönderici adresi boşsa hiç
	// mail gönderilmez (0, nil).
	NotifySubscribers(ctx context.Context, comment *models.Comment, originIP string) (int, error)
}

type subscriptionService struct {
	trackingRepo repository.TrackingRepository
	postRepo     repository.PostRepository
	blogRepo     repository.BlogRepository
	settings     SettingsService
	sender       email.EmailSender
}

// NewSubscriptionService, constructor.
func NewSubscriptionService(
	trackingRepo repository.TrackingRepository,
	postRepo repository.PostRepository,
	blogRepo repository.BlogRepository,
	settings SettingsService,
	sender email.EmailSender,
) SubscriptionService {
	return &subscriptionService{
		trackingRepo: trackingRepo,
		postRepo:     postRepo,
		blogRepo:     blogRepo,
		settings:     settings,
		sender:       sender,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID string, postID int64) error {
	// Yazı var mı? Hayalet yazıya abonelik satırı bırakma.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}

	return s.trackingRepo.Insert(ctx, &models.TrackingRecord{
		UserID: userID,
		Kind:   models.TrackKindMail,
		PostID: postID,
	})
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID string, postID int64) error {
	// Abonelik yoksa sessiz no-op — Delete satır bulamayınca hata dönmez.
	return s.trackingRepo.Delete(ctx, models.TrackingFilter{
		UserID: userID,
		PostID: postID,
		Kinds:  []models.TrackKind{models.TrackKindMail},
	})
}

func (s *subscriptionService) IsSubscribed(ctx context.Context, userID string, postID int64) (bool, error) {
	return s.trackingRepo.Exists(ctx, models.TrackingFilter{
		UserID: userID,
		PostID: postID,
		Kinds:  []models.TrackKind{models.TrackKindMail},
	})
}

func (s *subscriptionService) UnsubscribeAll(ctx context.Context, userID, blogID string) error {
	return s.trackingRepo.Delete(ctx, models.TrackingFilter{
		UserID: userID,
		Kinds:  []models.TrackKind{models.TrackKindMail},
		BlogID: blogID,
	})
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, postID int64) ([]models.Subscriber, error) {
	return s.trackingRepo.ListSubscribers(ctx, postID)
}

// NotifySubscribers, yorum yayınlandığında abonelere bildirim maili gönderir.
//
// Kurallar:
// - Blogun email_from ayarı boşsa gönderim tamamen kapalıdır.
// - Yorumun yazarı kendi yorumunun bildirimini almaz.
// - Email adresi boş aboneler atlanır.
// - Mail her alıcının kendi dilinde yazılır; selamlama kullanıcı adıyla
//   kişiselleştirilir.
// - Tek bir alıcıya gönderim hatası diğerlerini durdurmaz — loglanır, geçilir.
func (s *subscriptionService) NotifySubscribers(ctx context.Context, comment *models.Comment, originIP string) (int, error) {
	// Sender yoksa (API key verilmemiş) gönderim tamamen kapalıdır
	if s.sender == nil {
		return 0, nil
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return 0, err
	}

	settings, err := s.settings.Get(ctx, post.BlogID)
	if err != nil {
		return 0, err
	}
	if settings.EmailFrom == "" {
		return 0, nil
	}

	blog, err := s.blogRepo.GetByID(ctx, post.BlogID)
	if err != nil {
		return 0, err
	}

	subscribers, err := s.trackingRepo.ListSubscribers(ctx, comment.PostID)
	if err != nil {
		return 0, err
	}

	// dispatchID tüm alıcı maillerini tek gönderim grubuna bağlar —
	// loglar ve alıcı taraftaki thread'leme bu ID üzerinden eşleşir.
	dispatchID := uuid.New().String()

	headers := map[string]string{
		"X-Blog-Id":        blog.ID,
		"X-Blog-Url":       blog.URL,
		"X-Entity-Ref-ID":  dispatchID,
		"X-Originating-IP": originIP,
	}

	sent := 0
	for _, sub := range subscribers {
		if sub.UserID == comment.AuthorID {
			continue
		}
		if strings.TrimSpace(sub.Email) == "" {
			continue
		}

		loc := i18n.NewLocalizer(sub.Language)
		msg := &email.Message{
			From:    fmt.Sprintf("%s <%s>", blog.Name, settings.EmailFrom),
			To:      sub.Email,
			Subject: loc.TWithParams("mail.subject", map[string]string{"post": post.Title}),
			Text:    composeNotificationBody(loc, sub.Username, blog.Name, post.Title, post.URL),
			Headers: headers,
		}

		if err := s.sender.Send(ctx, msg); err != nil {
			log.Printf("[mail] dispatch %s: failed to notify %s: %v", dispatchID, sub.UserID, err)
			continue
		}
		sent++
	}

	log.Printf("[mail] dispatch %s: post=%d sent=%d of %d subscribers", dispatchID, comment.PostID, sent, len(subscribers))
	return sent, nil
}

// composeNotificationBody, düz metin mail gövdesini kurar ve 80 sütuna katlar.
func composeNotificationBody(loc *i18n.Localizer, username, blogName, postTitle, postURL string) string {
	var b strings.Builder

	b.WriteString(loc.TWithParams("mail.greeting", map[string]string{"user": username}))
	b.WriteString("\n\n")
	b.WriteString(loc.TWithParams("mail.body", map[string]string{
		"post": postTitle,
		"blog": blogName,
	}))
	if postURL != "" {
		b.WriteString("\n\n")
		b.WriteString(loc.TWithParams("mail.link", map[string]string{"url": postURL}))
	}
	b.WriteString("\n\n--\n")
	b.WriteString(loc.T("mail.footer"))

	return email.Wrap(b.String(), email.WrapWidth)
}
