package handlers

import (
	"net/http"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/services"
)

// SubscriptionHandler, yorum bildirimi aboneliği endpoint'lerini yöneten struct.
type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
}

// NewSubscriptionHandler, constructor.
func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Subscribe godoc
// POST /api/posts/{id}/subscription
// Yazıya yeni yorum geldiğinde mail almak için abone olur.
// Nonce middleware gerektirir. İdempotent.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
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

	if err := h.subscriptionService.Subscribe(r.Context(), user.ID, postID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "subscribed"})
}

// Unsubscribe godoc
// DELETE /api/posts/{id}/subscription
// Aboneliği kaldırır. Nonce middleware gerektirir.
// Abonelik yoksa sessizce başarılı döner.
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
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

	if err := h.subscriptionService.Unsubscribe(r.Context(), user.ID, postID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "unsubscribed"})
}

// Status godoc
// GET /api/posts/{id}/subscription
// Kullanıcının yazıya abone olup olmadığını döner.
// Frontend abonelik butonunun durumunu buna göre çizer.
func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
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

	subscribed, err := h.subscriptionService.IsSubscribed(r.Context(), user.ID, postID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"subscribed": subscribed})
}

// UnsubscribeAll godoc
// DELETE /api/blogs/{blogId}/subscriptions
// Kullanıcının blogdaki tüm aboneliklerini tek seferde kaldırır.
// Nonce middleware gerektirir.
func (h *SubscriptionHandler) UnsubscribeAll(w http.ResponseWriter, r *http.Request) {
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

	if err := h.subscriptionService.UnsubscribeAll(r.Context(), user.ID, blogID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "all subscriptions removed"})
}

// ListSubscribers godoc
// GET /api/posts/{id}/subscribers
// Yazının abonelerini döner. Superadmin middleware gerektirir —
// email adresleri sıradan kullanıcılara gösterilmez.
func (h *SubscriptionHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	subscribers, err := h.subscriptionService.ListSubscribers(r.Context(), postID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, subscribers)
}
