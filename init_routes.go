// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token doğrulaması
//   - authNonce: auth + form aksiyonu CSRF token kontrolü
//   - authBlog: auth + blog varlık kontrolü ({blogId} path parametresi)
//   - authBlogNonce: auth + blog + nonce
//   - authAdmin: auth + superadmin yetkisi
//   - authBlogAdmin: auth + blog + superadmin
package main

import (
	"net/http"

	"github.com/akinalp/okundu/middleware"
	"github.com/akinalp/okundu/pkg/nonce"
	"github.com/akinalp/okundu/repository"
	"github.com/akinalp/okundu/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE tanımlanmalı.
// Örnek: "/api/tracking/artifact/{id}" gibi literal prefix'li route'lar
// "/api/posts/{id}" ile çakışmaz çünkü Go 1.22 router en spesifik pattern'ı seçer.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	blogRepo repository.BlogRepository,
	nonceMaker *nonce.Maker,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	blogMw := middleware.NewBlogMiddleware(blogRepo)
	nonceMw := middleware.NewNonceMiddleware(nonceMaker)
	adminMw := middleware.NewSuperadminMiddleware()

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authNonce := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(nonceMw.Require(http.HandlerFunc(handler)))
	}
	authBlog := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(blogMw.Resolve(http.HandlerFunc(handler)))
	}
	authBlogNonce := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(blogMw.Resolve(nonceMw.Require(http.HandlerFunc(handler))))
	}
	authAdmin := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(adminMw.Require(http.HandlerFunc(handler)))
	}
	authBlogAdmin := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(blogMw.Resolve(adminMw.Require(http.HandlerFunc(handler))))
	}

	// ╔══════════════════════════════════════════╗
	// ║  GLOBAL ROUTES (blog bağımsız)           ║
	// ╚══════════════════════════════════════════╝

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))
	mux.Handle("GET /api/auth/action-token", auth(h.Auth.ActionToken))

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("GET /api/users/me/prefs", auth(h.Prefs.Get))
	// Tercih değişikliği form aksiyonudur — nonce zorunlu
	mux.Handle("PUT /api/users/me/prefs", authNonce(h.Prefs.Update))

	// Blogs — liste herkese açık (login sonrası), yönetim superadmin
	mux.Handle("GET /api/blogs", auth(h.Blog.List))
	mux.Handle("POST /api/blogs", authAdmin(h.Blog.Create))

	// Artifacts — seçilebilir glyph kataloğu
	mux.Handle("GET /api/artifacts", auth(h.Settings.Artifacts))

	// Posts (ID global benzersiz — blog path'i gerekmez)
	mux.Handle("GET /api/posts/{id}", auth(h.Post.View))
	mux.Handle("DELETE /api/posts/{id}", auth(h.Post.Delete))

	// Comments
	mux.Handle("GET /api/posts/{id}/comments", auth(h.Comment.List))
	mux.Handle("POST /api/posts/{id}/comments", auth(h.Comment.Create))
	mux.Handle("POST /api/comments/{id}/publish", authAdmin(h.Comment.Publish))
	mux.Handle("DELETE /api/comments/{id}", auth(h.Comment.Delete))

	// Tracking — artifact lookup GET (nonce gerekmez), yazma işlemleri nonce'lu
	mux.Handle("GET /api/tracking/artifact/{id}", auth(h.Tracking.Artifact))
	mux.Handle("GET /api/tracking/read/{id}", auth(h.Tracking.Status))
	mux.Handle("POST /api/tracking/read/{id}", authNonce(h.Tracking.MarkRead))

	// Subscriptions (per-post)
	mux.Handle("GET /api/posts/{id}/subscription", auth(h.Subscription.Status))
	mux.Handle("POST /api/posts/{id}/subscription", authNonce(h.Subscription.Subscribe))
	mux.Handle("DELETE /api/posts/{id}/subscription", authNonce(h.Subscription.Unsubscribe))
	mux.Handle("GET /api/posts/{id}/subscribers", authAdmin(h.Subscription.ListSubscribers))

	// ╔══════════════════════════════════════════╗
	// ║  BLOG-SCOPED ROUTES                      ║
	// ╚══════════════════════════════════════════╝

	mux.Handle("GET /api/blogs/{blogId}", authBlog(h.Blog.Get))
	mux.Handle("DELETE /api/blogs/{blogId}", authBlogAdmin(h.Blog.Delete))

	// Settings
	mux.Handle("GET /api/blogs/{blogId}/settings", authBlog(h.Settings.Get))
	mux.Handle("PUT /api/blogs/{blogId}/settings", authBlogAdmin(h.Settings.Update))
	mux.Handle("GET /api/blogs/{blogId}/url-types", authBlog(h.Settings.URLTypes))
	mux.Handle("POST /api/blogs/{blogId}/url-types", authBlogAdmin(h.Settings.RegisterURLType))

	// Posts
	mux.Handle("GET /api/blogs/{blogId}/posts", authBlog(h.Post.List))
	mux.Handle("POST /api/blogs/{blogId}/posts", authBlogAdmin(h.Post.Create))

	// Tracking — toplu işlemler form aksiyonudur, nonce zorunlu
	mux.Handle("POST /api/blogs/{blogId}/tracking/read-all", authBlogNonce(h.Tracking.MarkAllRead))
	mux.Handle("POST /api/blogs/{blogId}/tracking/reset", authBlogNonce(h.Tracking.Reset))

	// Subscriptions — blog genelinde temizlik
	mux.Handle("DELETE /api/blogs/{blogId}/subscriptions", authBlogNonce(h.Subscription.UnsubscribeAll))

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token doğrulaması yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
