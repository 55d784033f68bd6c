// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
//
// ÖNEMLİ sıralama kuralları:
// 1. settingsService → trackingService ve subscriptionService'den ÖNCE
//    (her ikisi de blog ayarlarına bakar)
// 2. trackingService → prefsService, postService ve commentService'den ÖNCE
//    (tercih/yazı/yorum akışları takip kayıtlarını tetikler)
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/akinalp/okundu/config"
	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg/cache"
	"github.com/akinalp/okundu/pkg/email"
	"github.com/akinalp/okundu/pkg/ratelimit"
	"github.com/akinalp/okundu/services"
	"github.com/akinalp/okundu/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth         services.AuthService
	Blog         services.BlogService
	Settings     services.SettingsService
	Post         services.PostService
	Comment      services.CommentService
	Tracking     services.TrackingService
	Subscription services.SubscriptionService
	Prefs        services.PrefsService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login   *ratelimit.LoginRateLimiter
	Comment *ratelimit.CommentRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
//
// Sıralama kritiktir — bkz. dosya başı yorum.
// hub service'ler arası paylaşılan dependency'dir.
func initServices(db *sql.DB, repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters) {
	// ─── Email sender (opsiyonel) ───
	var emailSender email.EmailSender
	if cfg.Mail.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Mail.ResendAPIKey)
		log.Println("[main] mail dispatch enabled")
	} else {
		log.Println("[main] mail dispatch disabled (RESEND_API_KEY not set)")
	}

	// ─── Sıralama-kritik service'ler ───

	// Blog ayarları her istek yolunda okunur — TTL cache DB yükünü keser.
	// 30 saniyelik pencere: superadmin değişikliği en geç yarım dakikada
	// tüm instance'lara yansır, yazma yolunda cache ayrıca invalidate edilir.
	settingsCache := cache.New[string, *models.BlogSettings](30*time.Second, time.Minute)
	settingsService := services.NewSettingsService(repos.Settings, settingsCache)

	trackingService := services.NewTrackingService(
		db, repos.Tracking, repos.Post, repos.Prefs, repos.User,
		settingsService, hub,
	)

	subscriptionService := services.NewSubscriptionService(
		repos.Tracking, repos.Post, repos.Blog, settingsService, emailSender,
	)

	// ─── Diğer service'ler ───
	authService := services.NewAuthService(
		repos.User, repos.Session,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)

	blogService := services.NewBlogService(repos.Blog)
	postService := services.NewPostService(repos.Post, repos.User, repos.Blog, trackingService)
	commentService := services.NewCommentService(
		repos.Comment, repos.Post, repos.User, trackingService, subscriptionService,
	)
	prefsService := services.NewPrefsService(repos.Prefs, trackingService, hub)

	// ─── Rate Limiters ───
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)
	commentLimiter := ratelimit.NewCommentRateLimiter(5, 30*time.Second, 60*time.Second)

	svcs := &Services{
		Auth:         authService,
		Blog:         blogService,
		Settings:     settingsService,
		Post:         postService,
		Comment:      commentService,
		Tracking:     trackingService,
		Subscription: subscriptionService,
		Prefs:        prefsService,
	}

	limiters := &RateLimiters{
		Login:   loginLimiter,
		Comment: commentLimiter,
	}

	return svcs, limiters
}
