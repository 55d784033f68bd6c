package middleware

import (
	"net/http"

	"github.com/akinalp/okundu/handlers"
	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/pkg/nonce"
)

// NonceHeader, state değiştiren istekte beklenen CSRF token header'ı.
// Form gönderimlerinde aynı değer "token" form alanıyla da gelebilir.
const NonceHeader = "X-Action-Token"

// NonceMiddleware, state değiştiren form aksiyonlarını CSRF'e karşı korur.
// Token, kullanıcının oturumuna HMAC ile bağlıdır — başka oturumdan
// kopyalanan veya oturum kapandıktan sonra kullanılan token tutmaz.
//
// Başarısızlık 401 değil 412 döner: kullanıcı kimliği doğrulanmış,
// sadece aksiyon token'ı bayat veya kurcalanmış.
type NonceMiddleware struct {
	maker *nonce.Maker
}

// NewNonceMiddleware, constructor.
func NewNonceMiddleware(maker *nonce.Maker) *NonceMiddleware {
	return &NonceMiddleware{maker: maker}
}

// Require, geçerli bir aksiyon token'ı zorunlu kılan middleware.
// AuthMiddleware'dan SONRA çalışmalı — context'te claims bekler.
func (m *NonceMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(handlers.ClaimsContextKey).(*models.TokenClaims)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		token := r.Header.Get(NonceHeader)
		if token == "" {
			// Form gönderimi: token body'de gelir.
			// ParseForm idempotent — handler tekrar çağırabilir.
			if err := r.ParseForm(); err == nil {
				token = r.PostFormValue("token")
			}
		}
		if token == "" {
			pkg.Error(w, pkg.ErrPrecondition)
			return
		}

		if !m.maker.Verify(claims.UserID, claims.SessionID, token) {
			pkg.Error(w, pkg.ErrPrecondition)
			return
		}

		next.ServeHTTP(w, r)
	})
}
