package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/services"
)

// PostHandler, yazı endpoint'lerini yöneten struct.
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler, constructor.
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create godoc
// POST /api/blogs/{blogId}/posts
// Yeni yazı oluşturur. Superadmin middleware gerektirir.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.CreatePost(r.Context(), user.ID, blogID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, post)
}

// List godoc
// GET /api/blogs/{blogId}/posts
// Blogdaki yazıları okunma durumu ve artifact glyph'iyle birlikte döner.
// Frontend her yazının yanında glyph'i ayrıca sorgulamak zorunda kalmaz.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	posts, err := h.postService.ListPosts(r.Context(), user.ID, blogID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, posts)
}

// View godoc
// GET /api/posts/{id}
// Yazıyı döner ve kullanıcı için okundu işaretler.
// Dotclear mantığı: yazıyı görüntülemek = okumak.
func (h *PostHandler) View(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	postID, err := parsePostID(r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	post, err := h.postService.ViewPost(r.Context(), user.ID, postID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// Delete godoc
// DELETE /api/posts/{id}
// Yazar veya superadmin silebilir.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	postID, err := parsePostID(r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.postService.DeletePost(r.Context(), user.ID, postID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// parsePostID, path'teki yazı ID'sini parse eder.
// Sayısal olmayan ID → ErrNotFound: var olmayan bir kaynağa işaret eder,
// format hatası değil. Frontend script'i hatalı ID gönderdiğinde 404 bekler.
func parsePostID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkg.ErrNotFound
	}
	return id, nil
}
