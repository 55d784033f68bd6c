package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/okundu/database"
	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/repository"
	"github.com/akinalp/okundu/ws"
)

// TrackingService, okuma takibi iş mantığı interface'i.
//
// Temel kural: bir yazı için takip kaydı VARSA yazı okunmuş sayılır.
// Kaydın türü (post/comment) ne zaman sıfırlanacağını belirler:
// - post: yazı görüntülenene kadar okunmamış kalır, yorum etkilemez
// - comment: yeni yorum yayınlandığında kayıt silinir → tekrar okunmamış
//
// MarkAllRead ve ResetAll bir hedef kullanıcı alır: kullanıcı kendi
// kayıtlarını yönetir, superadmin herkesinkini.
type TrackingService interface {
	MarkRead(ctx context.Context, userID string, postID int64) error
	IsRead(ctx context.Context, userID string, postID int64) (bool, error)
	// Artifact, yazının yanında gösterilecek glyph'i döner.
	// Okunmuşsa veya gösterim kapalıysa boş string döner.
	// Yazı yoksa veya blogda takip pasifse ErrNotFound.
	Artifact(ctx context.Context, userID string, postID int64) (string, error)
	UseArtifact(ctx context.Context, userID, blogID string) (bool, error)
	MarkAllRead(ctx context.Context, actorID, targetUserID, blogID string) error
	ResetAll(ctx context.Context, actorID, targetUserID, blogID string) error
	SwitchTrackingKind(ctx context.Context, userID string, from, to models.TrackKind) error
	// OnCommentCreated, yorum yayınlandığında comment türü kayıtları siler.
	// Silme TÜM kullanıcılar için geçerlidir — satırın türü sahibinin
	// tercihini taşıdığı için ayrıca tercih kontrolü gerekmez.
	OnCommentCreated(ctx context.Context, postID int64) error
	DecoratePosts(ctx context.Context, userID, blogID string) ([]models.DecoratedPost, error)
}

type trackingService struct {
	db           *sql.DB // MarkRead ve MarkAllRead atomik çalışır (WithTx)
	trackingRepo repository.TrackingRepository
	postRepo     repository.PostRepository
	prefsRepo    repository.PrefsRepository
	userRepo     repository.UserRepository
	settings     SettingsService
	hub          ws.EventPublisher
}

// NewTrackingService, constructor.
func NewTrackingService(
	db *sql.DB,
	trackingRepo repository.TrackingRepository,
	postRepo repository.PostRepository,
	prefsRepo repository.PrefsRepository,
	userRepo repository.UserRepository,
	settings SettingsService,
	hub ws.EventPublisher,
) TrackingService {
	return &trackingService{
		db:           db,
		trackingRepo: trackingRepo,
		postRepo:     postRepo,
		prefsRepo:    prefsRepo,
		userRepo:     userRepo,
		settings:     settings,
		hub:          hub,
	}
}

// MarkRead, bir yazıyı kullanıcı için okunmuş işaretler.
//
// Blogda takip pasifse sessiz no-op — yazı görüntüleme akışından çağrıldığı
// için hata dönmek sayfayı bozar.
//
// Delete + Insert tek transaction'da çalışır: tercih değişiminden kalmış
// farklı türde bir kayıt varsa temizlenir, yerine güncel tercihe uygun tek
// kayıt yazılır. Insert ON CONFLICT DO NOTHING olduğu için eşzamanlı çift
// işaretleme de güvenlidir.
func (s *trackingService) MarkRead(ctx context.Context, userID string, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	settings, err := s.settings.Get(ctx, post.BlogID)
	if err != nil {
		return err
	}
	if !settings.Active {
		return nil
	}

	prefs, err := s.prefsRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	kind := prefs.PreferredKind()

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txRepo := repository.NewSQLiteTrackingRepo(tx)

		if err := txRepo.Delete(ctx, models.TrackingFilter{
			UserID: userID,
			PostID: postID,
			Kinds:  models.ReadKinds,
		}); err != nil {
			return err
		}

		return txRepo.Insert(ctx, &models.TrackingRecord{
			UserID: userID,
			Kind:   kind,
			PostID: postID,
		})
	})
	if err != nil {
		return err
	}

	// Diğer tab'lar artifact'ı düşürsün
	s.hub.BroadcastToUser(userID, ws.Event{
		Op:   ws.OpPostRead,
		Data: ws.PostReadData{PostID: postID},
	})

	return nil
}

func (s *trackingService) IsRead(ctx context.Context, userID string, postID int64) (bool, error) {
	return s.trackingRepo.Exists(ctx, models.TrackingFilter{
		UserID: userID,
		PostID: postID,
		Kinds:  models.ReadKinds,
	})
}

func (s *trackingService) Artifact(ctx context.Context, userID string, postID int64) (string, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}

	settings, err := s.settings.Get(ctx, post.BlogID)
	if err != nil {
		return "", err
	}
	// Takip pasifken endpoint var olmayan bir kaynak gibi davranır.
	if !settings.Active {
		return "", pkg.ErrNotFound
	}

	prefs, err := s.prefsRepo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !prefs.ShowArtifact {
		return "", nil
	}

	read, err := s.IsRead(ctx, userID, postID)
	if err != nil {
		return "", err
	}
	if read {
		return "", nil
	}

	return settings.Artifact, nil
}

// UseArtifact, glyph gösteriminin bu kullanıcı + blog için geçerli olup
// olmadığını söyler: blogda takip aktif VE glyph boş değil VE kullanıcı
// gösterimi açmış. Üç koşuldan biri düşerse dekorasyon tamamen kapalıdır.
func (s *trackingService) UseArtifact(ctx context.Context, userID, blogID string) (bool, error) {
	settings, err := s.settings.Get(ctx, blogID)
	if err != nil {
		return false, err
	}
	if !settings.Active || settings.Artifact == "" {
		return false, nil
	}

	prefs, err := s.prefsRepo.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	return prefs.ShowArtifact, nil
}

// MarkAllRead, hedef kullanıcının blogdaki tüm yazılarını okunmuş işaretler.
//
// Temizle + hepsini ekle, tek transaction'da: önce kullanıcının blogdaki
// okuma kayıtları silinir, sonra her yazı için güncel tercihe uygun kayıt
// yazılır. Net etki "her yazı okundu" — eski türden kalıntı kayıt kalmaz.
func (s *trackingService) MarkAllRead(ctx context.Context, actorID, targetUserID, blogID string) error {
	if err := s.authorizeTarget(ctx, actorID, targetUserID); err != nil {
		return err
	}

	prefs, err := s.prefsRepo.Get(ctx, targetUserID)
	if err != nil {
		return err
	}
	kind := prefs.PreferredKind()

	postIDs, err := s.postRepo.ListIDsByBlog(ctx, blogID)
	if err != nil {
		return err
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txRepo := repository.NewSQLiteTrackingRepo(tx)

		if err := txRepo.Delete(ctx, models.TrackingFilter{
			UserID: targetUserID,
			Kinds:  models.ReadKinds,
			BlogID: blogID,
		}); err != nil {
			return err
		}

		for _, postID := range postIDs {
			if err := txRepo.Insert(ctx, &models.TrackingRecord{
				UserID: targetUserID,
				Kind:   kind,
				PostID: postID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastToUser(targetUserID, ws.Event{
		Op:   ws.OpAllRead,
		Data: ws.AllReadData{BlogID: blogID},
	})

	return nil
}

// ResetAll, hedef kullanıcının blogdaki tüm okuma kayıtlarını siler —
// her yazı yeniden okunmamış olur. Mail abonelikleri korunur.
func (s *trackingService) ResetAll(ctx context.Context, actorID, targetUserID, blogID string) error {
	if err := s.authorizeTarget(ctx, actorID, targetUserID); err != nil {
		return err
	}

	if err := s.trackingRepo.Delete(ctx, models.TrackingFilter{
		UserID: targetUserID,
		Kinds:  models.ReadKinds,
		BlogID: blogID,
	}); err != nil {
		return err
	}

	s.hub.BroadcastToUser(targetUserID, ws.Event{
		Op:   ws.OpTrackingReset,
		Data: ws.AllReadData{BlogID: blogID},
	})

	return nil
}

// SwitchTrackingKind, kullanıcının mevcut okuma kayıtlarını topluca yeni
// türe taşır. Tercih kaydedilmeden ÖNCE çağrılır (bkz. PrefsService.Update) —
// sıra ters olursa eski kayıtlar eski türde sahipsiz kalır.
func (s *trackingService) SwitchTrackingKind(ctx context.Context, userID string, from, to models.TrackKind) error {
	if !isReadKind(from) || !isReadKind(to) {
		return fmt.Errorf("%w: invalid tracking kind", pkg.ErrBadRequest)
	}
	if from == to {
		return nil
	}
	return s.trackingRepo.UpdateKind(ctx, userID, from, to, "")
}

func (s *trackingService) OnCommentCreated(ctx context.Context, postID int64) error {
	if err := s.trackingRepo.Delete(ctx, models.TrackingFilter{
		PostID: postID,
		Kinds:  []models.TrackKind{models.TrackKindComment},
	}); err != nil {
		return err
	}

	// Silme tüm kullanıcıları etkileyebilir — herkese gönder, client kendi
	// listesinde yazı yoksa görmezden gelir.
	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpPostUnread,
		Data: ws.PostReadData{PostID: postID},
	})

	return nil
}

// DecoratePosts, blogdaki yazıları okuma durumu ve artifact ön ekiyle döner.
func (s *trackingService) DecoratePosts(ctx context.Context, userID, blogID string) ([]models.DecoratedPost, error) {
	posts, err := s.postRepo.GetByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	readIDs, err := s.trackingRepo.ListReadPostIDs(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}
	readSet := make(map[int64]bool, len(readIDs))
	for _, id := range readIDs {
		readSet[id] = true
	}

	useArtifact, err := s.UseArtifact(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	var glyph string
	if useArtifact {
		settings, err := s.settings.Get(ctx, blogID)
		if err != nil {
			return nil, err
		}
		glyph = settings.Artifact
	}

	decorated := make([]models.DecoratedPost, 0, len(posts))
	for _, p := range posts {
		dp := models.DecoratedPost{Post: p, Read: readSet[p.ID]}
		if !dp.Read {
			dp.Artifact = glyph
		}
		decorated = append(decorated, dp)
	}

	return decorated, nil
}

// ─── Private Helpers ───

// authorizeTarget: kullanıcı kendi kayıtlarını her zaman yönetir; başka bir
// kullanıcınınkine dokunmak superadmin ister.
func (s *trackingService) authorizeTarget(ctx context.Context, actorID, targetUserID string) error {
	if actorID == targetUserID {
		return nil
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return pkg.ErrUnauthorized
		}
		return err
	}
	if !actor.IsSuperadmin {
		return fmt.Errorf("%w: cannot manage another user's tracking", pkg.ErrForbidden)
	}
	return nil
}

func isReadKind(k models.TrackKind) bool {
	return k == models.TrackKindPost || k == models.TrackKindComment
}
