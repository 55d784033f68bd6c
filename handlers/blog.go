package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/services"
)

// BlogHandler, blog yönetimi endpoint'lerini yöneten struct.
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler, constructor.
func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// Create godoc
// POST /api/blogs
// Yeni blog oluşturur. Superadmin middleware gerektirir.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	blog, err := h.blogService.CreateBlog(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, blog)
}

// List godoc
// GET /api/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.ListBlogs(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blogs)
}

// Get godoc
// GET /api/blogs/{blogId}
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	blog, err := h.blogService.GetBlog(r.Context(), blogID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blog)
}

// Delete godoc
// DELETE /api/blogs/{blogId}
// Superadmin middleware gerektirir. Yazılar ve izleme kayıtları
// FK cascade ile birlikte silinir.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	if err := h.blogService.DeleteBlog(r.Context(), blogID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "blog deleted"})
}
