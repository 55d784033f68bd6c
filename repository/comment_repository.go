package repository

import (
	"context"

	"github.com/akinalp/okundu/models"
)

// CommentRepository, yorum veritabanı işlemleri için interface.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	GetByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}
