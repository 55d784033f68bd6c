package services

import (
	"context"
	"fmt"
	"log"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/repository"
)

// CommentService, yorum iş mantığı interface'i.
//
// Yayınlanan her yorum iki yan etki tetikler:
// 1. Comment türü okuma kayıtları silinir (yazı tekrar okunmamış olur)
// 2. Mail aboneleri bilgilendirilir
// Bekleyen (pending) yorumlar bu etkileri moderasyon onayına kadar tetiklemez.
type CommentService interface {
	CreateComment(ctx context.Context, authorID string, postID int64, req *models.CreateCommentRequest, originIP string) (*models.Comment, error)
	GetComments(ctx context.Context, postID int64) ([]models.Comment, error)
	// PublishComment, bekleyen yorumu yayınlar ve yan etkileri tetikler (superadmin).
	PublishComment(ctx context.Context, commentID int64, originIP string) (*models.Comment, error)
	DeleteComment(ctx context.Context, actorID string, commentID int64) error
}

type commentService struct {
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	userRepo      repository.UserRepository
	tracking      TrackingService
	subscriptions SubscriptionService
}

// NewCommentService, constructor.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	tracking TrackingService,
	subscriptions SubscriptionService,
) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		userRepo:      userRepo,
		tracking:      tracking,
		subscriptions: subscriptions,
	}
}

// CreateComment, yeni yorum oluşturur.
//
// Superadmin yorumları doğrudan yayınlanır; diğer kullanıcıların yorumları
// moderasyon kuyruğuna (pending) düşer.
func (s *commentService) CreateComment(ctx context.Context, authorID string, postID int64, req *models.CreateCommentRequest, originIP string) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	status := models.CommentStatusPending
	if author.IsSuperadmin {
		status = models.CommentStatusPublished
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
		Status:   status,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if comment.Status == models.CommentStatusPublished {
		s.firePublishEffects(ctx, comment, originIP)
	}

	return comment, nil
}

func (s *commentService) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPost(ctx, postID)
}

func (s *commentService) PublishComment(ctx context.Context, commentID int64, originIP string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.Status == models.CommentStatusPublished {
		return comment, nil
	}

	if err := s.commentRepo.UpdateStatus(ctx, commentID, models.CommentStatusPublished); err != nil {
		return nil, err
	}
	comment.Status = models.CommentStatusPublished

	s.firePublishEffects(ctx, comment, originIP)

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actorID string, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsSuperadmin {
			return fmt.Errorf("%w: only the author or a superadmin can delete a comment", pkg.ErrForbidden)
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}

// ─── Private Helpers ───

// firePublishEffects, yayınlanan yorumun yan etkilerini çalıştırır.
//
// Yan etki hataları yorumu geri almaz — yorum DB'de ve yayında, takip
// sıfırlama veya mail gönderimi aksadıysa loglanır. Mail gönderimi harici
// API çağrısı olduğu için yanıtı bekletmemek adına loglamayla yetinilir.
func (s *commentService) firePublishEffects(ctx context.Context, comment *models.Comment, originIP string) {
	if err := s.tracking.OnCommentCreated(ctx, comment.PostID); err != nil {
		log.Printf("[comment] failed to reset read state for post %d: %v", comment.PostID, err)
	}

	sent, err := s.subscriptions.NotifySubscribers(ctx, comment, originIP)
	if err != nil {
		log.Printf("[comment] failed to notify subscribers for post %d: %v", comment.PostID, err)
		return
	}
	if sent > 0 {
		log.Printf("[comment] notified %d subscriber(s) for post %d", sent, comment.PostID)
	}
}
