package middleware

import (
	"net/http"

	"github.com/akinalp/okundu/handlers"
	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
)

// SuperadminMiddleware, sadece süperadminlerin erişebileceği endpoint'leri korur.
// Blog ayarları, yorum yayınlama ve başka kullanıcı adına tracking sıfırlama
// gibi işlemler bu katmanın arkasında durur.
type SuperadminMiddleware struct{}

// NewSuperadminMiddleware, constructor.
func NewSuperadminMiddleware() *SuperadminMiddleware {
	return &SuperadminMiddleware{}
}

// Require, süperadmin yetkisi zorunlu kılan middleware.
// AuthMiddleware'dan SONRA çalışmalı — context'te user bekler.
func (m *SuperadminMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if !user.IsSuperadmin {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "superadmin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
