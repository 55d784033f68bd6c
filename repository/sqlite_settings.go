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

// sqliteSettingsRepo, SettingsRepository interface'inin SQLite implementasyonu.
type sqliteSettingsRepo struct {
	db database.TxQuerier
}

// NewSQLiteSettingsRepo, constructor.
func NewSQLiteSettingsRepo(db database.TxQuerier) SettingsRepository {
	return &sqliteSettingsRepo{db: db}
}

func (r *sqliteSettingsRepo) Get(ctx context.Context, blogID string) (*models.BlogSettings, error) {
	query := `
		SELECT blog_id, active, artifact, email_from, url_types
		FROM blog_settings WHERE blog_id = ?`

	settings := &models.BlogSettings{}
	err := r.db.QueryRowContext(ctx, query, blogID).Scan(
		&settings.BlogID, &settings.Active, &settings.Artifact,
		&settings.EmailFrom, &settings.URLTypes,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog settings: %w", err)
	}

	return settings, nil
}

func (r *sqliteSettingsRepo) Update(ctx context.Context, settings *models.BlogSettings) error {
	query := `
		UPDATE blog_settings
		SET active = ?, artifact = ?, email_from = ?, url_types = ?
		WHERE blog_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		settings.Active, settings.Artifact, settings.EmailFrom,
		settings.URLTypes, settings.BlogID,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog settings: %w", err)
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
