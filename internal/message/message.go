// Package message holds the user-facing flash messages. The catalog is keyed
// by English text and translated to Indonesian, the application's language.
package message

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	AlbumCreated   = "Album created. Let's add the first photo!"
	AlbumUpdated   = "Album details updated."
	AlbumDeleted   = "Album and all of its photos were deleted."
	PhotoDeleted   = "Photo deleted."
	PhotosUploaded = "%d photos uploaded to the album."
	PhotosFailed   = "%d photos could not be saved. Please try again."
	StorageDown    = "Photo storage is unavailable right now. Please try again."
	LoggedIn       = "Welcome back, %s."
	LoggedOut      = "You have been logged out."
)

// Language is the language flash messages are rendered in.
var Language = language.Indonesian

func init() {
	tag := Language
	set := func(key, msg string) {
		_ = message.SetString(tag, key, msg)
	}

	set(AlbumCreated, "Album berhasil dibuat. Mari tambahkan foto pertama!")
	set(AlbumUpdated, "Detail album diperbarui.")
	set(AlbumDeleted, "Album dan semua foto di dalamnya berhasil dihapus.")
	set(PhotoDeleted, "Foto berhasil dihapus.")
	set(StorageDown, "Penyimpanan foto sedang tidak tersedia. Silakan coba lagi.")
	set(LoggedIn, "Selamat datang kembali, %s.")
	set(LoggedOut, "Anda telah keluar.")

	_ = message.Set(tag, PhotosUploaded, plural.Selectf(1, "%d",
		"=1", "Foto berhasil diunggah ke album.",
		plural.Other, "%[1]d foto berhasil diunggah ke album.",
	))
	_ = message.Set(tag, PhotosFailed, plural.Selectf(1, "%d",
		"=1", "1 foto gagal disimpan. Silakan coba lagi.",
		plural.Other, "%[1]d foto gagal disimpan. Silakan coba lagi.",
	))
}

// Sprintf renders key in the application language.
func Sprintf(key string, args ...any) string {
	return message.NewPrinter(Language).Sprintf(key, args...)
}
