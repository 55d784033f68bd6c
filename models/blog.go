package models

import (
	"fmt"
	"time"
)

// Blog, platformdaki bir blogu temsil eder.
// Tüm yazılar ve izleme kayıtları bir bloga aittir —
// bloglar arası veri sızıntısı olmaz (cross-blog isolation).
type Blog struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogSettings, blog bazlı okuma takibi ayarları.
//
// Active false ise tüm takip operasyonları sessizce no-op olur.
// Artifact "" ise okunmamış işareti gösterilmez (takip yine çalışır).
// EmailFrom "" ise yorum bildirimi email'leri tamamen devre dışıdır.
// URLTypes: artifact UI'ının aktif olduğu sayfa türleri (virgülle ayrık
// saklanır, RegisterURLType ile genişletilir).
type BlogSettings struct {
	BlogID    string `json:"blog_id"`
	Active    bool   `json:"active"`
	Artifact  string `json:"artifact"`
	EmailFrom string `json:"email_from"`
	URLTypes  string `json:"url_types"`
}

// DefaultURLTypes, kurulumda seed edilen sayfa türleri.
const DefaultURLTypes = "post,category,tag,search,archive"

// CreateBlogRequest, yeni blog oluşturma isteği (superadmin).
type CreateBlogRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Validate, istek alanlarını kontrol eder.
func (r *CreateBlogRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len([]rune(r.Name)) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}
	return nil
}

// UpdateSettingsRequest, blog ayar güncellemesi (superadmin).
// Pointer field'lar "gönderilmedi" (nil) ile "boş değere çek" ("") ayrımı için.
type UpdateSettingsRequest struct {
	Active    *bool   `json:"active"`
	Artifact  *string `json:"artifact"`
	EmailFrom *string `json:"email_from"`
	URLTypes  *string `json:"url_types"`
}
