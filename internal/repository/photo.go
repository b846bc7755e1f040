package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/galeri/internal/model"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")
)

type PhotoRepository interface {
	Create(photo *model.Photo) error
	ByAlbumAndID(albumID, photoID int64) (*model.Photo, error)
	Photos(albumID int64) ([]*model.Photo, error)
	RecentPerAlbum(limit int) (map[int64][]*model.Photo, error)
	Delete(photo *model.Photo) error
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

const photoColumns = `id, album_id, user_id, title, caption, taken_at, path, created_at, updated_at`

func (r *photoRepository) Create(photo *model.Photo) error {
	query := `INSERT INTO photos (album_id, user_id, title, caption, taken_at, path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	return r.db.QueryRow(query,
		photo.AlbumID,
		photo.UserID,
		photo.Title,
		photo.Caption,
		photo.TakenAt,
		photo.Path,
		photo.CreatedAt,
		photo.UpdatedAt,
	).Scan(&photo.ID)
}

// ByAlbumAndID only finds the photo when it belongs to the given album.
func (r *photoRepository) ByAlbumAndID(albumID, photoID int64) (*model.Photo, error) {
	photo := &model.Photo{}
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1 AND album_id = $2`

	err := r.db.Get(photo, query, photoID, albumID)
	if err == sql.ErrNoRows {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}

	return photo, nil
}

// Photos returns the album's photos newest first, with uploader names.
func (r *photoRepository) Photos(albumID int64) ([]*model.Photo, error) {
	var photos []*model.Photo
	query := `SELECT p.id, p.album_id, p.user_id, p.title, p.caption, p.taken_at, p.path, p.created_at, p.updated_at,
	                 u.name AS uploader_name
	          FROM photos p LEFT JOIN users u ON u.id = p.user_id
	          WHERE p.album_id = $1
	          ORDER BY p.created_at DESC, p.id DESC`

	err := r.db.Select(&photos, query, albumID)
	if err != nil {
		return nil, err
	}

	return photos, nil
}

// RecentPerAlbum returns up to limit newest photos for every album, keyed by album ID.
func (r *photoRepository) RecentPerAlbum(limit int) (map[int64][]*model.Photo, error) {
	var photos []*model.Photo
	query := `SELECT ` + photoColumns + ` FROM (
	              SELECT p.*, ROW_NUMBER() OVER (PARTITION BY p.album_id ORDER BY p.created_at DESC, p.id DESC) AS rn
	              FROM photos p
	          ) ranked
	          WHERE rn <= $1
	          ORDER BY album_id, created_at DESC, id DESC`

	err := r.db.Select(&photos, query, limit)
	if err != nil {
		return nil, err
	}

	byAlbum := make(map[int64][]*model.Photo)
	for _, photo := range photos {
		byAlbum[photo.AlbumID] = append(byAlbum[photo.AlbumID], photo)
	}

	return byAlbum, nil
}

// Delete removes the photo record. If it was the album cover, the newest
// remaining photo becomes the cover, or the cover is cleared. Both writes
// commit together.
func (r *photoRepository) Delete(photo *model.Photo) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`DELETE FROM photos WHERE id = $1 AND album_id = $2`, photo.ID, photo.AlbumID)
	if err != nil {
		return err
	}

	err = expectAffected(result, ErrPhotoNotFound)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE albums
	                  SET cover_path = (
	                      SELECT path FROM photos
	                      WHERE album_id = $1
	                      ORDER BY created_at DESC, id DESC
	                      LIMIT 1
	                  ), updated_at = $2
	                  WHERE id = $1 AND cover_path = $3`,
		photo.AlbumID, time.Now().UTC(), photo.Path)
	if err != nil {
		return err
	}

	return tx.Commit()
}
