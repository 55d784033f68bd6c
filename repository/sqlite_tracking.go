package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/akinalp/okundu/database"
	"github.com/akinalp/okundu/models"
)

// sqliteTrackingRepo, TrackingRepository interface'inin SQLite implementasyonu.
type sqliteTrackingRepo struct {
	db database.TxQuerier
}

// NewSQLiteTrackingRepo, constructor.
func NewSQLiteTrackingRepo(db database.TxQuerier) TrackingRepository {
	return &sqliteTrackingRepo{db: db}
}

// Insert, bir takip kaydı ekler.
//
// ON CONFLICT DO NOTHING: PK (user_id, kind, post_id) çakışırsa sessizce
// geçilir. İşaretleme idempotent — aynı yazıyı iki kez "okundu" yapmak
// hata değildir ve eşzamanlı delete/insert yarışında da güvenlidir.
func (r *sqliteTrackingRepo) Insert(ctx context.Context, record *models.TrackingRecord) error {
	query := `
		INSERT INTO tracking (user_id, kind, post_id)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, kind, post_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, record.UserID, record.Kind, record.PostID)
	if err != nil {
		return fmt.Errorf("failed to insert tracking record: %w", err)
	}
	return nil
}

// buildFilter, TrackingFilter'dan WHERE parçaları ve argümanları üretir.
//
// Zero value = filtre yok. BlogID dolu ise yazı tablosu üzerinden blog
// kapsaması yapılır — başka blogun kayıtlarına asla dokunulmaz.
func buildFilter(f models.TrackingFilter) (string, []any) {
	var conds []string
	var args []any

	if f.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.PostID != 0 {
		conds = append(conds, "post_id = ?")
		args = append(args, f.PostID)
	}
	if len(f.Kinds) > 0 {
		placeholders := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			placeholders[i] = "?"
			args = append(args, k)
		}
		conds = append(conds, "kind IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.BlogID != "" {
		conds = append(conds, "post_id IN (SELECT id FROM posts WHERE blog_id = ?)")
		args = append(args, f.BlogID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *sqliteTrackingRepo) Delete(ctx context.Context, filter models.TrackingFilter) error {
	where, args := buildFilter(filter)

	// Silinecek satır olmaması hata değil — sıfırlama işlemleri no-op olabilir.
	_, err := r.db.ExecContext(ctx, "DELETE FROM tracking"+where, args...)
	if err != nil {
		return fmt.Errorf("failed to delete tracking records: %w", err)
	}
	return nil
}

func (r *sqliteTrackingRepo) Exists(ctx context.Context, filter models.TrackingFilter) (bool, error) {
	where, args := buildFilter(filter)

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM tracking" + where + ")"
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check tracking record: %w", err)
	}
	return exists, nil
}

// UpdateKind, kullanıcının takip kayıtlarını topluca başka türe taşır.
// Tercih değişiminde okunmuş küme kaybolmaz — yalnızca satırların sıfırlanma
// kuralı değişir. blogID boşsa tüm bloglardaki kayıtlar taşınır (tercih
// kullanıcı bazlıdır, blog bazlı değil).
func (r *sqliteTrackingRepo) UpdateKind(ctx context.Context, userID string, from, to models.TrackKind, blogID string) error {
	query := `UPDATE tracking SET kind = ? WHERE user_id = ? AND kind = ?`
	args := []any{to, userID, from}

	if blogID != "" {
		query += ` AND post_id IN (SELECT id FROM posts WHERE blog_id = ?)`
		args = append(args, blogID)
	}

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tracking kind: %w", err)
	}
	return nil
}

// ListReadPostIDs, kullanıcının bir blogda okunmuş saydığı yazı ID'lerini döner.
// Mail abonelik satırları okuma durumu DEĞİLDİR — yalnızca post/comment türleri sayılır.
func (r *sqliteTrackingRepo) ListReadPostIDs(ctx context.Context, userID, blogID string) ([]int64, error) {
	query := `
		SELECT t.post_id
		FROM tracking t
		INNER JOIN posts p ON p.id = t.post_id
		WHERE t.user_id = ? AND t.kind IN (?, ?) AND p.blog_id = ?`

	rows, err := r.db.QueryContext(ctx, query,
		userID, models.TrackKindPost, models.TrackKindComment, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list read post ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan read post id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating read post rows: %w", err)
	}

	return ids, nil
}

// ListSubscribers, bir yazının mail abonelerini döner.
//
// Email adresi boş olan kullanıcılar elenmez — mail gönderimi service
// katmanında adres kontrolü yapar ve adressiz aboneleri atlar.
func (r *sqliteTrackingRepo) ListSubscribers(ctx context.Context, postID int64) ([]models.Subscriber, error) {
	query := `
		SELECT u.id, u.username, u.email, u.language
		FROM tracking t
		INNER JOIN users u ON u.id = t.user_id
		WHERE t.post_id = ? AND t.kind = ?
		ORDER BY u.username`

	rows, err := r.db.QueryContext(ctx, query, postID, models.TrackKindMail)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.UserID, &s.Username, &s.Email, &s.Language); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber rows: %w", err)
	}

	if subs == nil {
		subs = []models.Subscriber{}
	}

	return subs, nil
}
