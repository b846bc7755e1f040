package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/galeri/internal/model"
)

var (
	ErrAlbumNotFound = errors.New("album not found")
)

type AlbumRepository interface {
	Create(album *model.Album) error
	ByID(id int64) (*model.Album, error)
	Albums() ([]*model.Album, error)
	Update(album *model.Album) error
	SetCoverIfUnset(albumID int64, coverPath string) (bool, error)
	Delete(id int64) error
}

type albumRepository struct {
	db *sqlx.DB
}

func NewAlbumRepository(db *sqlx.DB) AlbumRepository {
	return &albumRepository{db: db}
}

const albumColumns = `a.id, a.user_id, a.title, a.description, a.cover_path, a.created_at, a.updated_at, u.name AS owner_name`

func (r *albumRepository) Create(album *model.Album) error {
	query := `INSERT INTO albums (user_id, title, description, cover_path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	return r.db.QueryRow(query,
		album.UserID,
		album.Title,
		album.Description,
		album.CoverPath,
		album.CreatedAt,
		album.UpdatedAt,
	).Scan(&album.ID)
}

func (r *albumRepository) ByID(id int64) (*model.Album, error) {
	album := &model.Album{}
	query := `SELECT ` + albumColumns + `
	          FROM albums a LEFT JOIN users u ON u.id = a.user_id
	          WHERE a.id = $1`

	err := r.db.Get(album, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, err
	}

	return album, nil
}

// Albums lists every album newest first, with owner name and photo count.
func (r *albumRepository) Albums() ([]*model.Album, error) {
	var albums []*model.Album
	query := `SELECT ` + albumColumns + `,
	                 (SELECT COUNT(*) FROM photos p WHERE p.album_id = a.id) AS photos_count
	          FROM albums a LEFT JOIN users u ON u.id = a.user_id
	          ORDER BY a.created_at DESC, a.id DESC`

	err := r.db.Select(&albums, query)
	if err != nil {
		return nil, err
	}

	return albums, nil
}

func (r *albumRepository) Update(album *model.Album) error {
	query := `UPDATE albums
	          SET user_id = $1, title = $2, description = $3, updated_at = $4
	          WHERE id = $5`

	result, err := r.db.Exec(query,
		album.UserID,
		album.Title,
		album.Description,
		album.UpdatedAt,
		album.ID,
	)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrAlbumNotFound)
}

// SetCoverIfUnset sets the cover only when the album has none yet.
// The check and the write are one statement, so concurrent uploads cannot both win.
func (r *albumRepository) SetCoverIfUnset(albumID int64, coverPath string) (bool, error) {
	query := `UPDATE albums SET cover_path = $1, updated_at = $2
	          WHERE id = $3 AND (cover_path IS NULL OR cover_path = '')`

	result, err := r.db.Exec(query, coverPath, time.Now().UTC(), albumID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// Delete removes the album and its photo records in one transaction.
// Blobs are not touched here.
func (r *albumRepository) Delete(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`DELETE FROM photos WHERE album_id = $1`, id)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return err
	}

	err = expectAffected(result, ErrAlbumNotFound)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// expectAffected maps a zero-row write to notFound.
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
