package services

import (
	"context"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/repository"
	"github.com/akinalp/okundu/ws"
)

// PrefsService, kullanıcı okuma tercihlerinin iş mantığı interface'i.
type PrefsService interface {
	Get(ctx context.Context, userID string) (*models.UserPrefs, error)
	Update(ctx context.Context, userID string, req *models.UpdatePrefsRequest) (*models.UserPrefs, error)
}

type prefsService struct {
	prefsRepo repository.PrefsRepository
	tracking  TrackingService
	hub       ws.EventPublisher
}

// NewPrefsService, constructor.
func NewPrefsService(
	prefsRepo repository.PrefsRepository,
	tracking TrackingService,
	hub ws.EventPublisher,
) PrefsService {
	return &prefsService{
		prefsRepo: prefsRepo,
		tracking:  tracking,
		hub:       hub,
	}
}

func (s *prefsService) Get(ctx context.Context, userID string) (*models.UserPrefs, error) {
	return s.prefsRepo.Get(ctx, userID)
}

// Update, tercihleri kısmi günceller.
//
// Sıralama kuralı: sıfırlama tercihi (CommentReset) değişiyorsa mevcut
// kayıtlar ÖNCE yeni türe taşınır, tercih SONRA kaydedilir. Taşıma
// başarısız olursa tercih eski halinde kalır — kayıtlar ile tercih
// birbirinden kopmaz.
func (s *prefsService) Update(ctx context.Context, userID string, req *models.UpdatePrefsRequest) (*models.UserPrefs, error) {
	prefs, err := s.prefsRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CommentReset != nil && *req.CommentReset != prefs.CommentReset {
		from := prefs.PreferredKind()
		prefs.CommentReset = *req.CommentReset
		to := prefs.PreferredKind()

		if err := s.tracking.SwitchTrackingKind(ctx, userID, from, to); err != nil {
			return nil, err
		}
	}

	if req.ShowArtifact != nil {
		prefs.ShowArtifact = *req.ShowArtifact
	}

	prefs.UserID = userID
	if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}

	s.hub.BroadcastToUser(userID, ws.Event{
		Op: ws.OpPrefsUpdate,
		Data: ws.PrefsUpdateData{
			ShowArtifact: prefs.ShowArtifact,
			CommentReset: prefs.CommentReset,
		},
	})

	return prefs, nil
}
