package repository

import (
	"context"

	"github.com/akinalp/okundu/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
//
// Neden interface? Service katmanı somut SQLite tipine değil bu interface'e
// bağlanır — testlerde in-memory fake ile değiştirilebilir.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
