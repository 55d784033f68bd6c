// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// Go'da `json:"username"` gibi tag'ler, struct field'larının JSON'a
// nasıl serialize/deserialize edileceğini belirler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// User, platformun bir kullanıcısını temsil eder.
//
// IsSuperadmin: platform genel yöneticisi — blog ayarlarını değiştirebilir
// ve başka bir kullanıcı adına toplu okuma işlemleri yapabilir.
// Language: bildirim email'lerinin dili ("en", "tr").
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // json:"-" → API response'a DAHİL ETME
	Language     string    `json:"language"`
	IsSuperadmin bool      `json:"is_superadmin"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserRequest, kayıt olurken gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
// Email zorunludur: yorum bildirimleri email üzerinden gönderilir.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Language string `json:"language"`
}

// Validate, CreateUserRequest'in geçerli olup olmadığını kontrol eder.
// Kurallar:
//   - Username: 3-32 karakter, alfanumerik + alt çizgi
//   - Password: minimum 8 karakter
//   - Email: zorunlu, basit format kontrolü
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	usernameLen := utf8.RuneCountInString(r.Username)
	if usernameLen < 3 || usernameLen > 32 {
		return fmt.Errorf("username must be between 3 and 32 characters")
	}

	for _, ch := range r.Username {
		if !isValidUsernameChar(ch) {
			return fmt.Errorf("username can only contain letters, numbers, and underscores")
		}
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.Email = strings.TrimSpace(r.Email)
	if !EmailRegex().MatchString(r.Email) {
		return fmt.Errorf("a valid email address is required")
	}

	// Dil tercihi opsiyonel — boşsa varsayılan dile düşer.
	r.Language = strings.TrimSpace(r.Language)

	return nil
}

// LoginRequest, giriş yaparken gelen veri.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// emailRegex, basit email format kontrolü.
// RFC 5322'nin tamamını kapsamaz — kasıtlı olarak gevşek:
// gerçek doğrulama gönderilen email'in ulaşmasıdır.
var (
	emailRegexOnce sync.Once
	emailRegex     *regexp.Regexp
)

// EmailRegex, email format kontrolü için derlenmiş regex'i döner.
// sync.Once ile ilk çağrıda bir kere derlenir.
func EmailRegex() *regexp.Regexp {
	emailRegexOnce.Do(func() {
		emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	})
	return emailRegex
}

// isValidUsernameChar, username'de izin verilen karakterleri kontrol eder.
func isValidUsernameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}
