package model

import (
	"time"
)

type Photo struct {
	ID        int64      `db:"id"`
	AlbumID   int64      `db:"album_id"`
	UserID    *int64     `db:"user_id"` // Uploader
	Title     *string    `db:"title"`
	Caption   *string    `db:"caption"`
	TakenAt   *time.Time `db:"taken_at"`
	Path      string     `db:"path"` // Blob path, namespaced by album: albums/{album_id}/{name}
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`

	// Joined fields (not in photos table)
	UploaderName *string `db:"uploader_name"`
}

// PhotoMeta is the metadata shared by every photo of one upload batch.
type PhotoMeta struct {
	Title   *string
	Caption *string
	TakenAt *time.Time
}
