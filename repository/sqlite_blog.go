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

// sqliteBlogRepo, BlogRepository interface'inin SQLite implementasyonu.
type sqliteBlogRepo struct {
	db database.TxQuerier
}

// NewSQLiteBlogRepo, constructor.
func NewSQLiteBlogRepo(db database.TxQuerier) BlogRepository {
	return &sqliteBlogRepo{db: db}
}

func (r *sqliteBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (id, name, url)
		VALUES (lower(hex(randomblob(8))), ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, blog.Name, blog.URL).
		Scan(&blog.ID, &blog.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	// Ayar satırını varsayılanlarla birlikte aç.
	// Takip pasif, glyph 👁, gönderici adresi boş — superadmin sonradan düzenler.
	settingsQuery := `
		INSERT INTO blog_settings (blog_id, active, artifact, email_from, url_types)
		VALUES (?, 0, ?, '', ?)`

	_, err = r.db.ExecContext(ctx, settingsQuery, blog.ID, models.DefaultArtifact, models.DefaultURLTypes)
	if err != nil {
		return fmt.Errorf("failed to create blog settings: %w", err)
	}

	return nil
}

func (r *sqliteBlogRepo) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	query := `SELECT id, name, url, created_at FROM blogs WHERE id = ?`

	blog := &models.Blog{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&blog.ID, &blog.Name, &blog.URL, &blog.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog by id: %w", err)
	}

	return blog, nil
}

func (r *sqliteBlogRepo) GetAll(ctx context.Context) ([]models.Blog, error) {
	query := `SELECT id, name, url, created_at FROM blogs ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all blogs: %w", err)
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Name, &b.URL, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

func (r *sqliteBlogRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
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
