package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/services"
)

// PrefsHandler, kullanıcı takip tercihleri endpoint'lerini yöneten struct.
type PrefsHandler struct {
	prefsService services.PrefsService
}

// NewPrefsHandler, constructor.
func NewPrefsHandler(prefsService services.PrefsService) *PrefsHandler {
	return &PrefsHandler{prefsService: prefsService}
}

// Get godoc
// GET /api/users/me/prefs
// Kullanıcının takip tercihlerini döner.
// Hiç kaydedilmemişse varsayılanlar döner — frontend ayrım yapmaz.
func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	prefs, err := h.prefsService.Get(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, prefs)
}

// Update godoc
// PUT /api/users/me/prefs
// Body: { "show_artifact": bool, "comment_reset": bool } — alanlar opsiyonel.
//
// comment_reset değişirse mevcut okuma kayıtları yeni türe taşınır,
// kullanıcının okuma geçmişi kaybolmaz.
func (h *PrefsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdatePrefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := h.prefsService.Update(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, prefs)
}
