// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Kullanıcı bir yazıyı görüntüler → HTTP GET → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToUser metodunu çağırır
// 3. Hub, event'i kullanıcının tüm bağlantılarına (tab'larına) iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
// 5. Frontend event'i alır ve yazı listesindeki artifact'ı günceller
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "post_read", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt — "seni duydum"

	// Okuma durumu operasyonları — başka bir tab'da yapılan işaretleme
	// tüm tab'larda anında yansısın diye kullanıcıya push edilir.
	OpPostRead      = "post_read"      // Yazı okundu olarak işaretlendi
	OpPostUnread    = "post_unread"    // Yazı tekrar okunmamış oldu (yeni yorum)
	OpAllRead       = "all_read"       // Blogdaki tüm yazılar okundu
	OpTrackingReset = "tracking_reset" // Takip geçmişi sıfırlandı
	OpPrefsUpdate   = "prefs_update"   // Okuma tercihleri değişti
)

// ReadyData, bağlantı kurulduğunda client'a gönderilen ilk event'in payload'ı.
type ReadyData struct {
	UserID string `json:"user_id"`
}

// PostReadData, post_read ve post_unread event'lerinin payload'ı.
type PostReadData struct {
	PostID int64 `json:"post_id"`
}

// AllReadData, all_read ve tracking_reset event'lerinin payload'ı.
type AllReadData struct {
	BlogID string `json:"blog_id"`
}

// PrefsUpdateData, prefs_update event'inin payload'ı.
type PrefsUpdateData struct {
	ShowArtifact bool `json:"show_artifact"`
	CommentReset bool `json:"comment_reset"`
}
