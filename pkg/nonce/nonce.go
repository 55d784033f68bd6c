// Package nonce, form aksiyonlarını koruyan tek kullanımlık istek token'ları üretir.
//
// Token, kullanıcı + oturum kimliği üzerinden HMAC-SHA256 ile türetilir:
// sunucu tarafında state tutulmaz, doğrulama deterministiktir. Oturum
// kapandığında (session silinince) eski token'lar otomatik geçersizleşir
// çünkü claims'teki session ID artık eşleşmez.
//
// Doğrulama başarısızlığı handler'larda 412 Precondition Failed'e map'lenir.
package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Maker, HMAC anahtarını taşıyan token üreticisi.
type Maker struct {
	secret []byte
}

// NewMaker, verilen secret ile Maker oluşturur.
// Secret JWT secret'tan AYRI tutulur — biri sızarsa diğeri etkilenmez.
func NewMaker(secret string) *Maker {
	return &Maker{secret: []byte(secret)}
}

// Generate, kullanıcı ve oturum kimliğinden token üretir.
func (m *Maker) Generate(userID, sessionID string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(userID))
	mac.Write([]byte{0}) // alan ayracı — "ab"+"c" ile "a"+"bc" aynı token üretmesin
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify, verilen token'ın bu kullanıcı + oturum için üretilmiş olup
// olmadığını kontrol eder. hmac.Equal sabit zamanlı karşılaştırma yapar —
// timing saldırılarına karşı string karşılaştırması kullanılmaz.
func (m *Maker) Verify(userID, sessionID, token string) bool {
	want := m.Generate(userID, sessionID)
	return hmac.Equal([]byte(want), []byte(token))
}
