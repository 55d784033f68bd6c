package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// SessionID claims'te taşınır: CSRF nonce'u oturuma bağlıdır,
// middleware token'dan session'ı DB sorgusu yapmadan çıkarabilmelidir.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, middleware, pkg/nonce) tarafından kullanılır —
// circular dependency'yi önler.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}
