package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Yorum durumları. Bildirim ve okuma-sıfırlama akışı yalnızca yayınlanmış
// yorumlarda tetiklenir; bekleyen yorumlar moderasyon onayına kadar sessizdir.
const (
	CommentStatusPending   = "pending"
	CommentStatusPublished = "published"
)

// Comment, bir yazıya yapılmış yorumu temsil eder.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest, yorum oluşturma isteği.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Validate, CreateCommentRequest'i kontrol eder.
func (r *CreateCommentRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(r.Content) > 4000 {
		return fmt.Errorf("content must be at most 4000 characters")
	}
	return nil
}
