package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/okundu/database"
	"github.com/akinalp/okundu/models"
)

// sqlitePrefsRepo, PrefsRepository interface'inin SQLite implementasyonu.
type sqlitePrefsRepo struct {
	db database.TxQuerier
}

// NewSQLitePrefsRepo, constructor.
func NewSQLitePrefsRepo(db database.TxQuerier) PrefsRepository {
	return &sqlitePrefsRepo{db: db}
}

func (r *sqlitePrefsRepo) Get(ctx context.Context, userID string) (*models.UserPrefs, error) {
	query := `
		SELECT user_id, show_artifact, comment_reset
		FROM user_prefs WHERE user_id = ?`

	prefs := &models.UserPrefs{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID, &prefs.ShowArtifact, &prefs.CommentReset,
	)

	if errors.Is(err, sql.ErrNoRows) {
		// Satır yok → varsayılan tercihler. Artifact kapalı başlar,
		// sıfırlama kuralı yazı görüntüleme.
		return &models.UserPrefs{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user prefs: %w", err)
	}

	return prefs, nil
}

func (r *sqlitePrefsRepo) Upsert(ctx context.Context, prefs *models.UserPrefs) error {
	query := `
		INSERT INTO user_prefs (user_id, show_artifact, comment_reset)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id)
		DO UPDATE SET show_artifact = excluded.show_artifact,
		              comment_reset = excluded.comment_reset`

	_, err := r.db.ExecContext(ctx, query, prefs.UserID, prefs.ShowArtifact, prefs.CommentReset)
	if err != nil {
		return fmt.Errorf("failed to upsert user prefs: %w", err)
	}
	return nil
}
