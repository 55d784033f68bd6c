package repository

import (
	"context"

	"github.com/akinalp/okundu/models"
)

// BlogRepository, blog veritabanı işlemleri için interface.
//
// Her blog kendi ayar satırına sahiptir (blog_settings); Create ikisini
// birlikte açar ki yeni blog hiçbir zaman ayarsız kalmasın.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	GetAll(ctx context.Context) ([]models.Blog, error)
	Delete(ctx context.Context, id string) error
}
