package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/okundu/database"
	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
)

// sqlitePostRepo, PostRepository interface'inin SQLite implementasyonu.
//
// Yazı ID'leri AUTOINCREMENT integer — public URL'lerde geçtiği için
// artifact endpoint'i sayısal olmayan ID'leri daha handler'da 404'ler.
type sqlitePostRepo struct {
	db database.TxQuerier
}

// NewSQLitePostRepo, constructor.
func NewSQLitePostRepo(db database.TxQuerier) PostRepository {
	return &sqlitePostRepo{db: db}
}

func (r *sqlitePostRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (blog_id, author_id, title, content, url)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		post.BlogID,
		post.AuthorID,
		post.Title,
		post.Content,
		post.URL,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *sqlitePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, blog_id, author_id, title, content, url, created_at
		FROM posts WHERE id = ?`

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.BlogID, &post.AuthorID, &post.Title,
		&post.Content, &post.URL, &post.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *sqlitePostRepo) GetByBlog(ctx context.Context, blogID string) ([]models.Post, error) {
	query := `
		SELECT id, blog_id, author_id, title, content, url, created_at
		FROM posts WHERE blog_id = ?
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by blog: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(
			&p.ID, &p.BlogID, &p.AuthorID, &p.Title,
			&p.Content, &p.URL, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	if posts == nil {
		posts = []models.Post{}
	}

	return posts, nil
}

// ListIDsByBlog, bir blogdaki tüm yazı ID'lerini döner.
// MarkAllRead snapshot sonrası yeniden eklerken kullanılıyor — içerik sütunlarını
// taşımamak için ayrı, hafif bir sorgu.
func (r *sqlitePostRepo) ListIDsByBlog(ctx context.Context, blogID string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM posts WHERE blog_id = ?`, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post id rows: %w", err)
	}

	return ids, nil
}

func (r *sqlitePostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
