package ui

import (
	"github.com/templui/galeri/internal/model"
	"github.com/templui/galeri/internal/service"
	"github.com/templui/galeri/internal/validation"
)

// URLFunc maps a stored blob path to its public URL.
type URLFunc func(path string) string

type PhotoThumb struct {
	ID    int64   `json:"id"`
	Title *string `json:"title"`
	URL   string  `json:"url"`
}

type AlbumSummary struct {
	ID          int64        `json:"id"`
	Token       string       `json:"token"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Owner       *string      `json:"owner"`
	Cover       *string      `json:"cover"`
	Photos      []PhotoThumb `json:"photos"`
	PhotosCount int          `json:"photos_count"`
}

type Photo struct {
	ID       int64   `json:"id"`
	Title    *string `json:"title"`
	Caption  *string `json:"caption"`
	URL      string  `json:"url"`
	TakenAt  *string `json:"taken_at"`
	Uploader *string `json:"uploader"`
}

type AlbumDetail struct {
	ID          int64   `json:"id"`
	Token       string  `json:"token"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Owner       *string `json:"owner"`
	Cover       *string `json:"cover"`
	Photos      []Photo `json:"photos"`
}

// AlbumsPage is the public album list.
type AlbumsPage struct {
	Albums    []AlbumSummary `json:"albums"`
	CanManage bool           `json:"can_manage"`
}

// AlbumPage is one album with upload and management flags for the viewer.
type AlbumPage struct {
	Album     AlbumDetail `json:"album"`
	CanManage bool        `json:"can_manage"`
	CanUpload bool        `json:"can_upload"`
}

func NewAlbumSummary(s *service.AlbumSummary, url URLFunc) AlbumSummary {
	photos := make([]PhotoThumb, 0, len(s.Photos))
	for _, p := range s.Photos {
		photos = append(photos, PhotoThumb{ID: p.ID, Title: p.Title, URL: url(p.Path)})
	}

	return AlbumSummary{
		ID:          s.Album.ID,
		Token:       s.Token,
		Title:       s.Album.Title,
		Description: s.Album.Description,
		Owner:       s.Album.OwnerName,
		Cover:       optional(s.CoverURL),
		Photos:      photos,
		PhotosCount: s.PhotosCount,
	}
}

func NewAlbumDetail(d *service.AlbumDetail, url URLFunc) AlbumDetail {
	photos := make([]Photo, 0, len(d.Photos))
	for _, p := range d.Photos {
		photos = append(photos, NewPhoto(p, url))
	}

	return AlbumDetail{
		ID:          d.Album.ID,
		Token:       d.Token,
		Title:       d.Album.Title,
		Description: d.Album.Description,
		Owner:       d.Album.OwnerName,
		Cover:       optional(d.CoverURL),
		Photos:      photos,
	}
}

func NewPhoto(p *model.Photo, url URLFunc) Photo {
	var takenAt *string
	if p.TakenAt != nil {
		formatted := p.TakenAt.Format(validation.DateLayout)
		takenAt = &formatted
	}

	return Photo{
		ID:       p.ID,
		Title:    p.Title,
		Caption:  p.Caption,
		URL:      url(p.Path),
		TakenAt:  takenAt,
		Uploader: p.UploaderName,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
