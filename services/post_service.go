package services

import (
	"context"
	"fmt"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/repository"
)

// PostService, yazı iş mantığı interface'i.
//
// ViewPost okuma takibinin ana tetikleyicisidir: yazıyı dönerken aynı
// zamanda görüntüleyen kullanıcı için okundu işareti bırakır.
type PostService interface {
	CreatePost(ctx context.Context, authorID, blogID string, req *models.CreatePostRequest) (*models.Post, error)
	ViewPost(ctx context.Context, userID string, postID int64) (*models.Post, error)
	ListPosts(ctx context.Context, userID, blogID string) ([]models.DecoratedPost, error)
	DeletePost(ctx context.Context, actorID string, postID int64) error
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	blogRepo repository.BlogRepository
	tracking TrackingService
}

// NewPostService, constructor.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	blogRepo repository.BlogRepository,
	tracking TrackingService,
) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		blogRepo: blogRepo,
		tracking: tracking,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID, blogID string, req *models.CreatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Blog var mı? Sahipsiz bloga yazı eklenemez.
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	post := &models.Post{
		BlogID:   blogID,
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		URL:      req.URL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ViewPost, yazıyı döner ve görüntüleyeni okundu işaretler.
//
// İşaretleme hatası görüntülemeyi engellemez — takip ikincil bir concern,
// yazı her koşulda okunabilmeli. Hata sadece loglanmaz; MarkRead zaten
// pasif blogda sessiz no-op olduğu için buradaki hata gerçek DB hatasıdır
// ve yutulmaz, yazıyla birlikte döner.
func (s *postService) ViewPost(ctx context.Context, userID string, postID int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.tracking.MarkRead(ctx, userID, postID); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, userID, blogID string) ([]models.DecoratedPost, error) {
	return s.tracking.DecoratePosts(ctx, userID, blogID)
}

// DeletePost, yazıyı siler. Yalnızca yazar veya superadmin silebilir.
// Takip ve abonelik satırları şemadaki ON DELETE CASCADE ile temizlenir.
func (s *postService) DeletePost(ctx context.Context, actorID string, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsSuperadmin {
			return fmt.Errorf("%w: only the author or a superadmin can delete a post", pkg.ErrForbidden)
		}
	}

	return s.postRepo.Delete(ctx, postID)
}
