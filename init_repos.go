// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir SQL.DB bağlantısı alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/akinalp/okundu/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı repository değişkenleri yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar (sekiz parametre yerine tek parametre)
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Tracking, vb.)
type Repositories struct {
	User     repository.UserRepository
	Session  repository.SessionRepository
	Blog     repository.BlogRepository
	Settings repository.SettingsRepository
	Post     repository.PostRepository
	Comment  repository.CommentRepository
	Tracking repository.TrackingRepository
	Prefs    repository.PrefsRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:     repository.NewSQLiteUserRepo(conn),
		Session:  repository.NewSQLiteSessionRepo(conn),
		Blog:     repository.NewSQLiteBlogRepo(conn),
		Settings: repository.NewSQLiteSettingsRepo(conn),
		Post:     repository.NewSQLitePostRepo(conn),
		Comment:  repository.NewSQLiteCommentRepo(conn),
		Tracking: repository.NewSQLiteTrackingRepo(conn),
		Prefs:    repository.NewSQLitePrefsRepo(conn),
	}
}
