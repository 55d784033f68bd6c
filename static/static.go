// Package static, artifact client script'ini binary'ye gömer.
//
// Go'nun embed paketi, derleme zamanında dosyaları binary'nin içine gömer.
// Bu sayede deploy edilen binary yanında ayrıca statik dosya taşımak gerekmez.
// //go:embed directive'i derleyiciye hangi dosyaları gömeceğini söyler.
package static

import (
	"embed"
	"io/fs"
)

//go:embed js/*.js
var embedded embed.FS

// Assets, gömülü statik dosyaları js/ öneki olmadan servis etmek için
// alt dizine inilmiş fs.FS döner. Hata imkansızdır — dizin embed ile
// derleme zamanında garanti edilir.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "js")
	if err != nil {
		panic(err)
	}
	return sub
}
