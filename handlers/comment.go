package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/pkg/ratelimit"
	"github.com/akinalp/okundu/services"
)

// CommentHandler, yorum endpoint'lerini yöneten struct.
type CommentHandler struct {
	commentService services.CommentService
	commentLimiter *ratelimit.CommentRateLimiter
}

// NewCommentHandler, constructor.
// commentLimiter: Yorum spam koruması. nil ise rate limiting devre dışı kalır.
func NewCommentHandler(commentService services.CommentService, commentLimiter *ratelimit.CommentRateLimiter) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		commentLimiter: commentLimiter,
	}
}

// Create godoc
// POST /api/posts/{id}/comments
// Yeni yorum gönderir. Superadmin yorumları anında yayınlanır,
// diğerleri moderasyon kuyruğuna düşer.
//
// Rate limiting kullanıcı bazlıdır — yorum spam'i aynı zamanda
// abonelere mail tetiklediği için IP yerine kimlik üstünden sınırlanır.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if h.commentLimiter != nil && !h.commentLimiter.Allow(user.ID) {
		cooldown := h.commentLimiter.CooldownSeconds(user.ID)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", cooldown))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("you are commenting too fast, please wait %d seconds", cooldown))
		return
	}

	postID, err := parsePostID(r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), user.ID, postID, &req, ratelimit.ExtractIP(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, comment)
}

// List godoc
// GET /api/posts/{id}/comments
// Yazının yayınlanmış yorumlarını döner.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	comments, err := h.commentService.GetComments(r.Context(), postID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comments)
}

// Publish godoc
// POST /api/comments/{id}/publish
// Bekleyen yorumu yayınlar. Superadmin middleware gerektirir.
//
// Yayınlama yan etkileri tetikler: comment türü okuma kayıtları
// silinir (yazı tekrar okunmamış görünür) ve abonelere mail gider.
func (h *CommentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseCommentID(r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	comment, err := h.commentService.PublishComment(r.Context(), commentID, ratelimit.ExtractIP(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comment)
}

// Delete godoc
// DELETE /api/comments/{id}
// Yorum sahibi veya superadmin silebilir.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	commentID, err := parseCommentID(r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), user.ID, commentID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

// parseCommentID, path'teki yorum ID'sini parse eder.
func parseCommentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkg.ErrNotFound
	}
	return id, nil
}
