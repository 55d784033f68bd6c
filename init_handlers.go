// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/okundu/handlers"
	"github.com/akinalp/okundu/pkg/nonce"
	"github.com/akinalp/okundu/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Blog         *handlers.BlogHandler
	Settings     *handlers.SettingsHandler
	Post         *handlers.PostHandler
	Comment      *handlers.CommentHandler
	Tracking     *handlers.TrackingHandler
	Subscription *handlers.SubscriptionHandler
	Prefs        *handlers.PrefsHandler
	WS           *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, nonceMaker *nonce.Maker, hub *ws.Hub) *Handlers {
	return &Handlers{
		Auth:         handlers.NewAuthHandler(svcs.Auth, nonceMaker, limiters.Login),
		Blog:         handlers.NewBlogHandler(svcs.Blog),
		Settings:     handlers.NewSettingsHandler(svcs.Settings),
		Post:         handlers.NewPostHandler(svcs.Post),
		Comment:      handlers.NewCommentHandler(svcs.Comment, limiters.Comment),
		Tracking:     handlers.NewTrackingHandler(svcs.Tracking),
		Subscription: handlers.NewSubscriptionHandler(svcs.Subscription),
		Prefs:        handlers.NewPrefsHandler(svcs.Prefs),
		WS:           ws.NewHandler(hub, svcs.Auth),
	}
}
