package repository

import (
	"context"

	"github.com/akinalp/okundu/models"
)

// PostRepository, yazı veritabanı işlemleri için interface.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetByBlog(ctx context.Context, blogID string) ([]models.Post, error)
	ListIDsByBlog(ctx context.Context, blogID string) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}
