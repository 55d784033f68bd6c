package services

import (
	"context"
	"fmt"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/repository"
)

// BlogService, blog yönetimi iş mantığı.
type BlogService interface {
	CreateBlog(ctx context.Context, req *models.CreateBlogRequest) (*models.Blog, error)
	GetBlog(ctx context.Context, blogID string) (*models.Blog, error)
	ListBlogs(ctx context.Context) ([]models.Blog, error)
	DeleteBlog(ctx context.Context, blogID string) error
}

type blogService struct {
	blogRepo repository.BlogRepository
}

// NewBlogService, constructor.
func NewBlogService(blogRepo repository.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

func (s *blogService) CreateBlog(ctx context.Context, req *models.CreateBlogRequest) (*models.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	blog := &models.Blog{
		Name: req.Name,
		URL:  req.URL,
	}

	// Repo blog ile birlikte varsayılan takip ayarlarını da oluşturur —
	// yeni blog pasif başlar, superadmin açana kadar takip çalışmaz.
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) GetBlog(ctx context.Context, blogID string) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, blogID)
}

func (s *blogService) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	return s.blogRepo.GetAll(ctx)
}

func (s *blogService) DeleteBlog(ctx context.Context, blogID string) error {
	// Yazılar, yorumlar ve izleme kayıtları FK cascade ile temizlenir
	return s.blogRepo.Delete(ctx, blogID)
}
