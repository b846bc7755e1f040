package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/templui/galeri/internal/model"
	"github.com/templui/galeri/internal/repository"
	"github.com/templui/galeri/internal/storage"
	"github.com/templui/galeri/internal/tokenizer"
	"github.com/templui/galeri/internal/validation"
)

var (
	// ErrNotFound covers unknown albums, undecodable tokens and photos outside the album.
	// Callers cannot tell these apart on purpose.
	ErrNotFound = errors.New("not found")

	// ErrStorageFailure marks blob store write/delete failures. They are retryable.
	ErrStorageFailure = errors.New("storage failure")
)

// RecentPhotosPerAlbum is how many photos the album list previews.
const RecentPhotosPerAlbum = 6

// AlbumSummary is one entry of the public album list.
type AlbumSummary struct {
	Album       *model.Album
	Token       string
	CoverURL    string // "" when the album has no cover
	Photos      []*model.Photo
	PhotosCount int
}

// AlbumDetail is a single album with all of its photos, newest first.
type AlbumDetail struct {
	Album    *model.Album
	Token    string
	CoverURL string
	Photos   []*model.Photo
}

// UploadInput is one upload form submission. Every file shares the metadata.
type UploadInput struct {
	Files   []*multipart.FileHeader
	Title   *string
	Caption *string
	TakenAt string // YYYY-MM-DD or empty
}

type AlbumService struct {
	albumRepo   repository.AlbumRepository
	photoRepo   repository.PhotoRepository
	storage     storage.Storage
	tokens      tokenizer.Tokenizer
	constraints validation.FileConstraints
}

func NewAlbumService(
	albumRepo repository.AlbumRepository,
	photoRepo repository.PhotoRepository,
	storage storage.Storage,
	tokens tokenizer.Tokenizer,
	maxPhotoKB int64,
) *AlbumService {
	return &AlbumService{
		albumRepo:   albumRepo,
		photoRepo:   photoRepo,
		storage:     storage,
		tokens:      tokens,
		constraints: validation.ImageConstraints(maxPhotoKB),
	}
}

// Token returns a fresh opaque token for an album ID.
func (s *AlbumService) Token(albumID int64) string {
	return s.tokens.Encode(albumID)
}

// URL returns the public URL of a stored blob.
func (s *AlbumService) URL(path string) string {
	if path == "" {
		return ""
	}
	return s.storage.URL(path)
}

// Resolve decodes an album token and loads the album.
func (s *AlbumService) Resolve(token string) (*model.Album, error) {
	id, err := s.tokens.Decode(token)
	if err != nil {
		return nil, ErrNotFound
	}

	album, err := s.albumRepo.ByID(id)
	if errors.Is(err, repository.ErrAlbumNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}

	return album, nil
}

func (s *AlbumService) ListAlbums() ([]*AlbumSummary, error) {
	albums, err := s.albumRepo.Albums()
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	recent, err := s.photoRepo.RecentPerAlbum(RecentPhotosPerAlbum)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent photos: %w", err)
	}

	summaries := make([]*AlbumSummary, 0, len(albums))
	for _, album := range albums {
		photos := recent[album.ID]
		summaries = append(summaries, &AlbumSummary{
			Album:       album,
			Token:       s.Token(album.ID),
			CoverURL:    s.URL(album.ResolveCover(first(photos))),
			Photos:      photos,
			PhotosCount: album.PhotosCount,
		})
	}

	return summaries, nil
}

func (s *AlbumService) CreateAlbum(ownerID int64, title string, description *string) (*model.Album, error) {
	in, err := validation.ValidateAlbum(title, description)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	album := &model.Album{
		UserID:      &ownerID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.albumRepo.Create(album)
	if err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}

	return album, nil
}

// UpdateAlbum edits title and description. An album without an owner is
// claimed by the first user who edits it; an existing owner is kept even
// when somebody else edits.
func (s *AlbumService) UpdateAlbum(token, title string, description *string, actingUserID int64) (*model.Album, error) {
	album, err := s.Resolve(token)
	if err != nil {
		return nil, err
	}

	in, err := validation.ValidateAlbum(title, description)
	if err != nil {
		return nil, err
	}

	album.Title = in.Title
	album.Description = in.Description
	if !album.HasOwner() {
		album.UserID = &actingUserID
		slog.Info("album claimed by first editor", "album_id", album.ID, "user_id", actingUserID)
	}
	album.UpdatedAt = time.Now().UTC()

	err = s.albumRepo.Update(album)
	if err != nil {
		return nil, fmt.Errorf("failed to update album: %w", err)
	}

	return album, nil
}

func (s *AlbumService) ShowAlbum(token string) (*AlbumDetail, error) {
	album, err := s.Resolve(token)
	if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.Photos(album.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}

	return &AlbumDetail{
		Album:    album,
		Token:    s.Token(album.ID),
		CoverURL: s.URL(album.ResolveCover(first(photos))),
		Photos:   photos,
	}, nil
}

// UploadPhotos validates the whole batch first; nothing is stored if any file
// or field is invalid. After that each file is stored independently: a file
// that fails to store is skipped and reported through ErrStorageFailure while
// its siblings are kept. The first stored photo becomes the cover if the
// album has none.
func (s *AlbumService) UploadPhotos(token string, uploaderID int64, in UploadInput) ([]*model.Photo, error) {
	album, err := s.Resolve(token)
	if err != nil {
		return nil, err
	}

	meta, exts, err := s.validateUpload(in)
	if err != nil {
		return nil, err
	}

	var (
		photos   []*model.Photo
		failures []error
	)
	for i, header := range in.Files {
		photo, err := s.storePhoto(album.ID, uploaderID, header, exts[i], meta)
		if err != nil {
			slog.Error("failed to store photo", "error", err, "album_id", album.ID, "filename", header.Filename)
			failures = append(failures, err)
			continue
		}
		photos = append(photos, photo)
	}

	if len(photos) > 0 && !album.HasCover() {
		_, err := s.albumRepo.SetCoverIfUnset(album.ID, photos[0].Path)
		if err != nil {
			// Listing falls back to the newest photo, so the album still shows a cover.
			slog.Error("failed to set album cover", "error", err, "album_id", album.ID)
		}
	}

	if len(failures) > 0 {
		return photos, fmt.Errorf("%w: %d of %d photos not saved: %w",
			ErrStorageFailure, len(failures), len(in.Files), errors.Join(failures...))
	}

	return photos, nil
}

func (s *AlbumService) validateUpload(in UploadInput) (model.PhotoMeta, []string, error) {
	errs := validation.Errors{}
	merge := func(err error) {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			for field, msg := range fieldErrs {
				errs.Add(field, msg)
			}
		}
	}

	title, caption, err := validation.ValidatePhotoMeta(in.Title, in.Caption)
	merge(err)

	takenAt, err := validation.ParseDate("taken_at", in.TakenAt)
	merge(err)

	exts, err := validation.ValidateFiles("photos", in.Files, s.constraints)
	merge(err)

	if err := errs.Err(); err != nil {
		return model.PhotoMeta{}, nil, err
	}

	return model.PhotoMeta{Title: title, Caption: caption, TakenAt: takenAt}, exts, nil
}

// storePhoto writes one blob and its record. A record that cannot be written
// takes its blob down with it.
func (s *AlbumService) storePhoto(albumID, uploaderID int64, header *multipart.FileHeader, ext string, meta model.PhotoMeta) (*model.Photo, error) {
	path := fmt.Sprintf("albums/%d/%s%s", albumID, uuid.New().String(), ext)

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	err = s.storage.Save(path, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	now := time.Now().UTC()
	photo := &model.Photo{
		AlbumID:   albumID,
		UserID:    &uploaderID,
		Title:     meta.Title,
		Caption:   meta.Caption,
		TakenAt:   meta.TakenAt,
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.photoRepo.Create(photo)
	if err != nil {
		delErr := s.storage.Delete(path)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", path)
		}
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	return photo, nil
}

// DeletePhoto removes a photo of the album identified by token. A photo of a
// different album is reported as ErrNotFound. When the photo was the cover,
// the newest remaining photo takes over in the same write, or the cover is cleared.
func (s *AlbumService) DeletePhoto(token string, photoID, actingUserID int64) error {
	album, err := s.Resolve(token)
	if err != nil {
		return err
	}

	photo, err := s.photoRepo.ByAlbumAndID(album.ID, photoID)
	if errors.Is(err, repository.ErrPhotoNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get photo: %w", err)
	}

	// The record stays while its blob exists, so a failed delete can be retried.
	err = s.storage.Delete(photo.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	err = s.photoRepo.Delete(photo)
	if errors.Is(err, repository.ErrPhotoNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	slog.Info("photo deleted", "album_id", album.ID, "photo_id", photo.ID, "user_id", actingUserID)
	return nil
}

// DeleteAlbum removes every photo blob, then the album and its photo records.
// If any blob cannot be deleted nothing is removed from the database; blobs
// already gone count as deleted, so the call can simply be repeated.
func (s *AlbumService) DeleteAlbum(token string, actingUserID int64) error {
	album, err := s.Resolve(token)
	if err != nil {
		return err
	}

	photos, err := s.photoRepo.Photos(album.ID)
	if err != nil {
		return fmt.Errorf("failed to get photos: %w", err)
	}

	var failures []error
	for _, photo := range photos {
		err := s.storage.Delete(photo.Path)
		if err != nil {
			slog.Warn("failed to delete file from storage", "storage_path", photo.Path, "error", err)
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d photos not deleted: %w",
			ErrStorageFailure, len(failures), len(photos), errors.Join(failures...))
	}

	err = s.albumRepo.Delete(album.ID)
	if errors.Is(err, repository.ErrAlbumNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete album: %w", err)
	}

	slog.Info("album deleted", "album_id", album.ID, "photos", len(photos), "user_id", actingUserID)
	return nil
}

func first(photos []*model.Photo) *model.Photo {
	if len(photos) == 0 {
		return nil
	}
	return photos[0]
}
