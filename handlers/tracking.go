package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/services"
)

// TrackingHandler, okuma takibi endpoint'lerini yöneten struct.
type TrackingHandler struct {
	trackingService services.TrackingService
}

// NewTrackingHandler, constructor.
func NewTrackingHandler(trackingService services.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// Artifact godoc
// GET /api/tracking/artifact/{id}
//
// Yazının yanında gösterilecek glyph'i döner. Frontend script'i
// sayfadaki her yazı için bu endpoint'i çağırıp başlığı süsler.
//
// Yanıt formatı sabittir: {"ret": "👁"} — script ham "ret" alanını
// bekler, standart APIResponse zarfı kullanılmaz.
//
// Okunmuş yazı veya kapalı gösterim → {"ret": ""}.
// Sayısal olmayan ID, olmayan yazı veya pasif blog → 404.
func (h *TrackingHandler) Artifact(w http.ResponseWriter, r *http.Request) {
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

	glyph, err := h.trackingService.Artifact(r.Context(), user.ID, postID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"ret": glyph}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// MarkRead godoc
// POST /api/tracking/read/{id}
// Yazıyı okundu işaretler. Nonce middleware gerektirir.
// İdempotent: zaten okunmuş yazı için sessizce başarılı döner.
func (h *TrackingHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.trackingService.MarkRead(r.Context(), user.ID, postID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}

// Status godoc
// GET /api/tracking/read/{id}
// Yazının kullanıcı için okunma durumunu döner.
func (h *TrackingHandler) Status(w http.ResponseWriter, r *http.Request) {
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

	read, err := h.trackingService.IsRead(r.Context(), user.ID, postID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"read": read})
}

// MarkAllRead godoc
// POST /api/blogs/{blogId}/tracking/read-all
// Blogdaki tüm yazıları okundu işaretler. Nonce middleware gerektirir.
//
// Body (opsiyonel): { "user_id": "..." } — superadmin başka kullanıcı
// adına işlem yapabilir, boşsa kendisi hedeflenir.
func (h *TrackingHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
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

	targetID := user.ID
	var req struct {
		UserID string `json:"user_id"`
	}
	// Body boş olabilir — decode hatası yutulur, hedef kendisi kalır
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.UserID != "" {
		targetID = req.UserID
	}

	if err := h.trackingService.MarkAllRead(r.Context(), user.ID, targetID, blogID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "all posts marked as read"})
}

// Reset godoc
// POST /api/blogs/{blogId}/tracking/reset
// Kullanıcının blogdaki tüm okuma kayıtlarını siler. Nonce middleware gerektirir.
// Mail abonelikleri korunur — sadece okuma durumu sıfırlanır.
func (h *TrackingHandler) Reset(w http.ResponseWriter, r *http.Request) {
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

	targetID := user.ID
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.UserID != "" {
		targetID = req.UserID
	}

	if err := h.trackingService.ResetAll(r.Context(), user.ID, targetID, blogID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "tracking reset"})
}
