package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/galeri/internal/db/dbtest"
	"github.com/templui/galeri/internal/model"
)

func TestPhotoDelete_ScopedToAlbum(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPhotoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM photos WHERE id = \$1 AND album_id = \$2`).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(&model.Photo{ID: 5, AlbumID: 2, Path: "albums/2/a.jpg"})
	assert.ErrorIs(t, err, ErrPhotoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoDelete_RollsBackWhenCoverUpdateFails(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPhotoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM photos WHERE id = \$1 AND album_id = \$2`).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE albums`).
		WithArgs(int64(2), sqlmock.AnyArg(), "albums/2/a.jpg").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.Delete(&model.Photo{ID: 5, AlbumID: 2, Path: "albums/2/a.jpg"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoDelete_Commits(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPhotoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM photos`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE albums`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(&model.Photo{ID: 5, AlbumID: 2, Path: "albums/2/a.jpg"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoDelete_MovesCoverToNewest(t *testing.T) {
	db := dbtest.New(t)
	albums := NewAlbumRepository(db)
	photos := NewPhotoRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	album := &model.Album{Title: "A", CreatedAt: base, UpdatedAt: base}
	require.NoError(t, albums.Create(album))

	create := func(path string, at time.Time) *model.Photo {
		p := &model.Photo{AlbumID: album.ID, Path: path, CreatedAt: at, UpdatedAt: at}
		require.NoError(t, photos.Create(p))
		return p
	}
	cover := create("cover.jpg", base)
	create("older.jpg", base.Add(time.Minute))
	newest := create("newest.jpg", base.Add(time.Hour))

	set, err := albums.SetCoverIfUnset(album.ID, cover.Path)
	require.NoError(t, err)
	require.True(t, set)

	// A non-cover photo leaves the cover alone.
	require.NoError(t, photos.Delete(newest))
	got, err := albums.ByID(album.ID)
	require.NoError(t, err)
	assert.Equal(t, "cover.jpg", *got.CoverPath)

	require.NoError(t, photos.Delete(cover))
	got, err = albums.ByID(album.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CoverPath)
	assert.Equal(t, "older.jpg", *got.CoverPath)
}

func TestPhotos_OrderAndScope(t *testing.T) {
	db := dbtest.New(t)
	albums := NewAlbumRepository(db)
	photos := NewPhotoRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := &model.Album{Title: "A", CreatedAt: base, UpdatedAt: base}
	b := &model.Album{Title: "B", CreatedAt: base, UpdatedAt: base}
	require.NoError(t, albums.Create(a))
	require.NoError(t, albums.Create(b))

	create := func(albumID int64, path string, at time.Time) *model.Photo {
		p := &model.Photo{AlbumID: albumID, Path: path, CreatedAt: at, UpdatedAt: at}
		require.NoError(t, photos.Create(p))
		return p
	}

	old := create(a.ID, "old.jpg", base)
	tieLow := create(a.ID, "tie-low.jpg", base.Add(time.Minute))
	tieHigh := create(a.ID, "tie-high.jpg", base.Add(time.Minute))
	other := create(b.ID, "other.jpg", base.Add(time.Hour))

	list, err := photos.Photos(a.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{tieHigh.ID, tieLow.ID, old.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})

	_, err = photos.ByAlbumAndID(a.ID, other.ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)

	got, err := photos.ByAlbumAndID(b.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "other.jpg", got.Path)

	require.NoError(t, photos.Delete(other))
	_, err = photos.ByAlbumAndID(b.ID, other.ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestRecentPerAlbum(t *testing.T) {
	db := dbtest.New(t)
	albums := NewAlbumRepository(db)
	photos := NewPhotoRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := &model.Album{Title: "A", CreatedAt: base, UpdatedAt: base}
	b := &model.Album{Title: "B", CreatedAt: base, UpdatedAt: base}
	empty := &model.Album{Title: "Empty", CreatedAt: base, UpdatedAt: base}
	for _, album := range []*model.Album{a, b, empty} {
		require.NoError(t, albums.Create(album))
	}

	var lastA int64
	for i := 0; i < 8; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		p := &model.Photo{AlbumID: a.ID, Path: fmt.Sprintf("a%d.jpg", i), CreatedAt: at, UpdatedAt: at}
		require.NoError(t, photos.Create(p))
		lastA = p.ID
	}
	require.NoError(t, photos.Create(&model.Photo{AlbumID: b.ID, Path: "b.jpg", CreatedAt: base, UpdatedAt: base}))

	recent, err := photos.RecentPerAlbum(6)
	require.NoError(t, err)

	require.Len(t, recent[a.ID], 6)
	assert.Equal(t, lastA, recent[a.ID][0].ID)
	assert.Equal(t, "a2.jpg", recent[a.ID][5].Path)
	assert.Len(t, recent[b.ID], 1)
	assert.Empty(t, recent[empty.ID])
}
