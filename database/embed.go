// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
//
// Go'nun embed paketi, derleme zamanında dosyaları binary'nin içine gömer.
// Deploy edilen binary yanında migration dosyası taşımaz; test tarafı da
// aynı gömülü şemadan in-memory veritabanı kurar.
package database

import "embed"

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını içerir
// (kullanıcı, blog, yazı, yorum, takip ve tercih tabloları).
// Kullanım: fs.Sub(EmbeddedMigrations, "migrations") ile alt dizine eriş.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS
