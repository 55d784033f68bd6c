package repository

import (
	"context"

	"github.com/akinalp/okundu/models"
)

// SettingsRepository, blog bazlı takip ayarları için interface.
//
// Get: Ayarlar her artifact isteğinde okunur; service katmanı TTL cache ile sarar.
// Update: Ayar satırı blog oluşturulurken açıldığı için burada yalnızca UPDATE var.
type SettingsRepository interface {
	Get(ctx context.Context, blogID string) (*models.BlogSettings, error)
	Update(ctx context.Context, settings *models.BlogSettings) error
}
