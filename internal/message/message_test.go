package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSprintf_PhotosUploadedPluralizes(t *testing.T) {
	assert.Equal(t, "Foto berhasil diunggah ke album.", Sprintf(PhotosUploaded, 1))
	assert.Equal(t, "3 foto berhasil diunggah ke album.", Sprintf(PhotosUploaded, 3))
}

func TestSprintf_Translates(t *testing.T) {
	assert.Equal(t, "Album berhasil dibuat. Mari tambahkan foto pertama!", Sprintf(AlbumCreated))
	assert.Equal(t, "Album dan semua foto di dalamnya berhasil dihapus.", Sprintf(AlbumDeleted))
	assert.Equal(t, "Selamat datang kembali, Ecin.", Sprintf(LoggedIn, "Ecin"))
}
