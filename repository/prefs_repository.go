package repository

import (
	"context"

	"github.com/akinalp/okundu/models"
)

// PrefsRepository, kullanıcı okuma tercihleri için interface.
//
// Get: Kayıt yoksa varsayılan tercihleri döner (hata değil) — her kullanıcı
// için satır açmak yerine "yokluk = varsayılan" kuralı geçerli.
type PrefsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserPrefs, error)
	Upsert(ctx context.Context, prefs *models.UserPrefs) error
}
