package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/pkg/cache"
	"github.com/akinalp/okundu/repository"
)

// SettingsService, blog bazlı takip ayarlarının iş mantığı interface'i.
//
// Get her artifact isteğinde çağrılır — TTL cache ile DB yükü düşürülür.
// Update superadmin-only'dir; yetki kontrolü middleware'de yapılır.
type SettingsService interface {
	Get(ctx context.Context, blogID string) (*models.BlogSettings, error)
	Update(ctx context.Context, blogID string, req *models.UpdateSettingsRequest) (*models.BlogSettings, error)
	// URLTypes, artifact dekorasyonunun geçerli olduğu sayfa türlerini döner.
	URLTypes(ctx context.Context, blogID string) ([]string, error)
	// RegisterURLType, listeye yeni bir sayfa türü ekler (genişletme noktası).
	RegisterURLType(ctx context.Context, blogID, urlType string) error
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	settingsCache *cache.TTLCache[string, *models.BlogSettings]
}

// NewSettingsService, constructor.
func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	settingsCache *cache.TTLCache[string, *models.BlogSettings],
) SettingsService {
	return &settingsService{
		settingsRepo:  settingsRepo,
		settingsCache: settingsCache,
	}
}

func (s *settingsService) Get(ctx context.Context, blogID string) (*models.BlogSettings, error) {
	if cached, ok := s.settingsCache.Get(blogID); ok {
		return cached, nil
	}

	settings, err := s.settingsRepo.Get(ctx, blogID)
	if err != nil {
		return nil, err
	}

	s.settingsCache.Set(blogID, settings)
	return settings, nil
}

// Update, ayarları kısmi günceller ve cache'i invalidate eder.
//
// Pointer alanlar: nil → dokunma, değer → güncelle. Böylece "active=false
// gönderildi" ile "active gönderilmedi" ayrımı korunur.
func (s *settingsService) Update(ctx context.Context, blogID string, req *models.UpdateSettingsRequest) (*models.BlogSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if req.Active != nil {
		settings.Active = *req.Active
	}
	if req.Artifact != nil {
		// Boş glyph geçerli — dekorasyon kapalı, takip yine çalışır
		glyph := *req.Artifact
		if glyph != "" && !isKnownArtifact(glyph) {
			return nil, fmt.Errorf("%w: unknown artifact glyph", pkg.ErrBadRequest)
		}
		settings.Artifact = glyph
	}
	if req.EmailFrom != nil {
		// Boş adres geçerli — bildirim gönderimi kapalı demektir.
		from := strings.TrimSpace(*req.EmailFrom)
		if from != "" && !models.EmailRegex().MatchString(from) {
			return nil, fmt.Errorf("%w: invalid sender address", pkg.ErrBadRequest)
		}
		settings.EmailFrom = from
	}
	if req.URLTypes != nil {
		settings.URLTypes = normalizeURLTypes(*req.URLTypes)
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.settingsCache.Delete(blogID)
	return settings, nil
}

func (s *settingsService) URLTypes(ctx context.Context, blogID string) ([]string, error) {
	settings, err := s.Get(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return splitURLTypes(settings.URLTypes), nil
}

// RegisterURLType, listede olmayan bir türü sona ekler. Zaten varsa no-op.
func (s *settingsService) RegisterURLType(ctx context.Context, blogID, urlType string) error {
	urlType = strings.ToLower(strings.TrimSpace(urlType))
	if urlType == "" {
		return fmt.Errorf("%w: url type is required", pkg.ErrBadRequest)
	}

	settings, err := s.settingsRepo.Get(ctx, blogID)
	if err != nil {
		return err
	}

	types := splitURLTypes(settings.URLTypes)
	for _, t := range types {
		if t == urlType {
			return nil
		}
	}

	settings.URLTypes = strings.Join(append(types, urlType), ",")
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return err
	}

	s.settingsCache.Delete(blogID)
	return nil
}

// ─── Helpers ───

func isKnownArtifact(glyph string) bool {
	for _, a := range models.Artifacts() {
		if a == glyph {
			return true
		}
	}
	return false
}

func splitURLTypes(raw string) []string {
	parts := strings.Split(raw, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			types = append(types, t)
		}
	}
	return types
}

func normalizeURLTypes(raw string) string {
	return strings.Join(splitURLTypes(strings.ToLower(raw)), ",")
}
