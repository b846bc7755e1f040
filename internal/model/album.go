package model

import (
	"time"
)

type Album struct {
	ID          int64     `db:"id"`
	UserID      *int64    `db:"user_id"` // Nullable until someone claims the album
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	CoverPath   *string   `db:"cover_path"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// Joined fields (not in albums table)
	OwnerName   *string `db:"owner_name"`
	PhotosCount int     `db:"photos_count"`
}

func (a *Album) HasOwner() bool {
	return a.UserID != nil
}

func (a *Album) HasCover() bool {
	return a.CoverPath != nil && *a.CoverPath != ""
}

// ResolveCover picks the album's cover blob path: the explicit cover if set,
// otherwise the newest photo's path. Returns "" when the album has no cover.
func (a *Album) ResolveCover(latest *Photo) string {
	if a.HasCover() {
		return *a.CoverPath
	}
	if latest != nil {
		return latest.Path
	}
	return ""
}
