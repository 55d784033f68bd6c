package middleware

import (
	"context"
	"net/http"

	"github.com/akinalp/okundu/handlers"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/repository"
)

// BlogMiddleware, URL'deki blog ID'sini doğrular.
// Blog içeriği herkese açık — üyelik kontrolü yok, sadece blogun
// gerçekten var olduğunu garanti ederiz. Böylece handler'lar
// context'teki blog ID'sine güvenebilir.
type BlogMiddleware struct {
	blogRepo repository.BlogRepository
}

// NewBlogMiddleware, constructor.
func NewBlogMiddleware(blogRepo repository.BlogRepository) *BlogMiddleware {
	return &BlogMiddleware{blogRepo: blogRepo}
}

// Resolve, {blogId} path parametresini doğrulayıp context'e ekler.
func (m *BlogMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		blogID := r.PathValue("blogId")
		if blogID == "" {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog id required")
			return
		}

		blog, err := m.blogRepo.GetByID(r.Context(), blogID)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.BlogIDContextKey, blog.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
