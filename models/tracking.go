package models

import "time"

// TrackKind, bir izleme kaydının türünü belirtir.
//
// Okuma takibi iki granülerlikte çalışır:
//   - TrackKindPost: kayıt sadece yazı tekrar görüntülenince yenilenir
//   - TrackKindComment: yazıya yeni yorum gelince kayıt silinir,
//     yazı herkes için tekrar "okunmamış" görünür
//
// TrackKindMail ayrı bir concern'dür — yorum bildirimi aboneliği.
// Aynı (kullanıcı, yazı) için okuma kaydı ile abonelik kaydı
// birbirinden bağımsız olarak bir arada bulunabilir.
type TrackKind string

const (
	TrackKindPost    TrackKind = "post"
	TrackKindComment TrackKind = "comment"
	TrackKindMail    TrackKind = "mail"
)

// ReadKinds, okuma takibi sayılan kind'lar — abonelik hariç.
// IsRead kontrolü ve toplu silme işlemleri bu ikisi üzerinden yapılır.
var ReadKinds = []TrackKind{TrackKindPost, TrackKindComment}

// TrackingRecord, bir kullanıcının bir yazı üzerindeki işaretini temsil eder.
// (user_id, kind, post_id) üçlüsü PRIMARY KEY'dir — bir yazı ya okunmuştur
// ya değildir, aynı kind için ikinci kayıt oluşamaz.
type TrackingRecord struct {
	UserID    string    `json:"user_id"`
	Kind      TrackKind `json:"kind"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackingFilter, repository silme/varlık sorgularının ortak filtresi.
// Sıfır değerli alanlar filtreye dahil edilmez:
//   - UserID "" → tüm kullanıcılar
//   - PostID 0  → tüm yazılar
//   - Kinds boş → tüm kind'lar
//   - BlogID "" → blog kısıtı yok (doluysa posts tablosu üzerinden join)
type TrackingFilter struct {
	UserID string
	PostID int64
	Kinds  []TrackKind
	BlogID string
}

// DefaultArtifact, blog ayarlarında glyph seçilmemişse kullanılan işaret.
const DefaultArtifact = "\U0001F441" // 👁

// Artifacts, blog ayar formunda sunulan glyph seçenekleri.
func Artifacts() []string {
	return []string{DefaultArtifact, "⏵", "⏰", "★", "☆"}
}

// Subscriber, bir yazının yorum bildirimi abonesi.
// ListSubscribers sorgusunun users tablosu ile join sonucu.
type Subscriber struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Language string `json:"language"`
}
