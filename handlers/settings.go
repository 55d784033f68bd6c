package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/services"
)

// SettingsHandler, blog takip ayarları endpoint'lerini yöneten struct.
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler, constructor.
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get godoc
// GET /api/blogs/{blogId}/settings
// Blogun takip ayarlarını döner.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	settings, err := h.settingsService.Get(r.Context(), blogID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, settings)
}

// Update godoc
// PUT /api/blogs/{blogId}/settings
// Superadmin middleware gerektirir.
//
// Body: { "active": bool, "artifact": "👁", "email_from": "..." } — alanlar opsiyonel.
// Gönderilmeyen alanlar değişmez (partial update).
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), blogID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, settings)
}

// Artifacts godoc
// GET /api/artifacts
// Seçilebilir glyph listesini döner. Admin paneli dropdown'ı bunu kullanır.
func (h *SettingsHandler) Artifacts(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, models.Artifacts())
}

// URLTypes godoc
// GET /api/blogs/{blogId}/url-types
// Artifact dekorasyonunun geçerli olduğu sayfa türlerini döner.
func (h *SettingsHandler) URLTypes(w http.ResponseWriter, r *http.Request) {
	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	types, err := h.settingsService.URLTypes(r.Context(), blogID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, types)
}

// RegisterURLType godoc
// POST /api/blogs/{blogId}/url-types
// Superadmin middleware gerektirir.
// Body: { "url_type": "gallery" }
//
// Tema eklentileri kendi sayfa türlerini buradan kaydeder —
// listede zaten varsa sessizce başarılı döner.
func (h *SettingsHandler) RegisterURLType(w http.ResponseWriter, r *http.Request) {
	blogID, ok := r.Context().Value(BlogIDContextKey).(string)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "blog not found in context")
		return
	}

	var req struct {
		URLType string `json:"url_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URLType == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "url_type is required")
		return
	}

	if err := h.settingsService.RegisterURLType(r.Context(), blogID, req.URLType); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "url type registered"})
}
