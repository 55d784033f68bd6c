package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTrackingService, sadece test edilen metodları override eden stub.
// Gömülü interface sayesinde kalan metodlar tanımlanmak zorunda değil —
// çağrılırlarsa nil pointer panic'i testi zaten düşürür.
type stubTrackingService struct {
	services.TrackingService
	artifactFn func(ctx context.Context, userID string, postID int64) (string, error)
	calls      int
}

func (s *stubTrackingService) Artifact(ctx context.Context, userID string, postID int64) (string, error) {
	s.calls++
	return s.artifactFn(ctx, userID, postID)
}

// newArtifactRequest, path parametresi çözülmüş ve kullanıcısı context'e
// konmuş bir istek kurar — route katmanının yaptığı işin test karşılığı.
func newArtifactRequest(t *testing.T, rawID string, user *models.User) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/tracking/artifact/"+rawID, nil)
	req.SetPathValue("id", rawID)
	if user != nil {
		req = req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
	}
	return req
}

func TestArtifactReturnsRawGlyph(t *testing.T) {
	stub := &stubTrackingService{
		artifactFn: func(_ context.Context, userID string, postID int64) (string, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, int64(42), postID)
			return "👁", nil
		},
	}
	h := NewTrackingHandler(stub)

	rec := httptest.NewRecorder()
	h.Artifact(rec, newArtifactRequest(t, "42", &models.User{ID: "u1"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	// Zarf yok: script ham "ret" alanını okur
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"ret": "👁"}, body)
}

func TestArtifactEmptyWhenRead(t *testing.T) {
	stub := &stubTrackingService{
		artifactFn: func(_ context.Context, _ string, _ int64) (string, error) {
			return "", nil
		},
	}
	h := NewTrackingHandler(stub)

	rec := httptest.NewRecorder()
	h.Artifact(rec, newArtifactRequest(t, "42", &models.User{ID: "u1"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "", body["ret"])
}

func TestArtifactNonNumericIDIs404(t *testing.T) {
	stub := &stubTrackingService{
		artifactFn: func(_ context.Context, _ string, _ int64) (string, error) {
			return "👁", nil
		},
	}
	h := NewTrackingHandler(stub)

	for _, raw := range []string{"abc", "12abc", "-5", "0", ""} {
		rec := httptest.NewRecorder()
		h.Artifact(rec, newArtifactRequest(t, raw, &models.User{ID: "u1"}))
		assert.Equal(t, http.StatusNotFound, rec.Code, "id=%q", raw)
	}

	// Sayısal olmayan ID service'e hiç ulaşmamalı
	assert.Zero(t, stub.calls)
}

func TestArtifactInactiveBlogIs404(t *testing.T) {
	stub := &stubTrackingService{
		artifactFn: func(_ context.Context, _ string, _ int64) (string, error) {
			return "", pkg.ErrNotFound
		},
	}
	h := NewTrackingHandler(stub)

	rec := httptest.NewRecorder()
	h.Artifact(rec, newArtifactRequest(t, "42", &models.User{ID: "u1"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArtifactRequiresUser(t *testing.T) {
	h := NewTrackingHandler(&stubTrackingService{})

	rec := httptest.NewRecorder()
	h.Artifact(rec, newArtifactRequest(t, "42", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
