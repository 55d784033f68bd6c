package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Post, bir blog yazısını temsil eder.
//
// ID neden int64?
// Yazı ID'leri public URL'lerde geçer (artifact endpoint'i sayısal ID bekler
// ve sayısal olmayan istekleri 404'ler). AUTOINCREMENT integer bu sözleşmeyi
// şemada garanti eder.
type Post struct {
	ID        int64     `json:"id"`
	BlogID    string    `json:"blog_id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// DecoratedPost, liste görünümünde artifact ön eki eklenmiş yazı.
// Read true ise Artifact her zaman boştur.
type DecoratedPost struct {
	Post
	Read     bool   `json:"read"`
	Artifact string `json:"artifact"`
}

// CreatePostRequest, yazı oluşturma isteği (superadmin).
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Validate, CreatePostRequest'i kontrol eder.
func (r *CreatePostRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(r.Title) > 255 {
		return fmt.Errorf("title must be at most 255 characters")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
