package repository

import (
	"context"

	"github.com/akinalp/okundu/models"
)

// TrackingRepository, okuma takibi ve abonelik kayıtları için interface.
//
// Tek tablo üç tür kaydı birden taşır (post, comment, mail) — tür sütunu
// satırın anlamını belirler. Okuma kayıtları ile mail abonelikleri aynı
// filtre mekanizmasıyla sorgulanır.
//
// Insert: PK çakışmasında sessizce no-op (idempotent işaretleme).
// Delete: Filtreye uyan tüm satırları siler; hiç satır yoksa hata dönmez.
// Exists: Filtreye uyan en az bir satır var mı?
// UpdateKind: Kullanıcının okuma kayıtlarını topluca başka türe taşır
// (tercih değişiminde okunmuş küme korunur).
// ListReadPostIDs: Kullanıcının bir blogda okunmuş saydığı yazı ID'leri.
// ListSubscribers: Bir yazının mail abonelerini email adresiyle döner.
type TrackingRepository interface {
	Insert(ctx context.Context, record *models.TrackingRecord) error
	Delete(ctx context.Context, filter models.TrackingFilter) error
	Exists(ctx context.Context, filter models.TrackingFilter) (bool, error)
	UpdateKind(ctx context.Context, userID string, from, to models.TrackKind, blogID string) error
	ListReadPostIDs(ctx context.Context, userID, blogID string) ([]int64, error)
	ListSubscribers(ctx context.Context, postID int64) ([]models.Subscriber, error)
}
