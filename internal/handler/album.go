package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/templui/galeri/internal/ctxkeys"
	"github.com/templui/galeri/internal/message"
	"github.com/templui/galeri/internal/model"
	"github.com/templui/galeri/internal/service"
	"github.com/templui/galeri/internal/ui"
	"github.com/templui/galeri/internal/validation"
)

// storageRetryAfter is what 503 responses tell clients to wait, in seconds.
const storageRetryAfter = "30"

// multipartMemory is how much of an upload is buffered in memory; the rest spills to disk.
const multipartMemory = 32 << 20

type AlbumHandler struct {
	albumService *service.AlbumService
}

func NewAlbumHandler(albumService *service.AlbumService) *AlbumHandler {
	return &AlbumHandler{
		albumService: albumService,
	}
}

func albumURL(token string) string {
	return "/albums/" + token
}

func (h *AlbumHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.albumService.ListAlbums()
	if err != nil {
		h.fail(w, r, err, "failed to list albums")
		return
	}

	albums := make([]ui.AlbumSummary, 0, len(summaries))
	for _, s := range summaries {
		albums = append(albums, ui.NewAlbumSummary(s, h.albumService.URL))
	}

	ui.Render(w, r, "albums/index", ui.AlbumsPage{
		Albums:    albums,
		CanManage: ctxkeys.SignedIn(r.Context()),
	})
}

func (h *AlbumHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	detail, err := h.albumService.ShowAlbum(r.PathValue("album"))
	if err != nil {
		h.fail(w, r, err, "failed to show album")
		return
	}

	signedIn := ctxkeys.SignedIn(r.Context())
	ui.Render(w, r, "albums/show", ui.AlbumPage{
		Album:     ui.NewAlbumDetail(detail, h.albumService.URL),
		CanManage: signedIn,
		CanUpload: signedIn,
	})
}

func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	album, err := h.albumService.CreateAlbum(user.ID, r.FormValue("title"), formPtr(r, "description"))
	if err != nil {
		h.fail(w, r, err, "failed to create album", "user_id", user.ID)
		return
	}

	token := h.albumService.Token(album.ID)
	ui.Done(w, r, ui.Success(message.Sprintf(message.AlbumCreated)), albumURL(token), map[string]any{
		"id":    album.ID,
		"token": token,
	})
}

func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	token := r.PathValue("album")

	album, err := h.albumService.UpdateAlbum(token, r.FormValue("title"), formPtr(r, "description"), user.ID)
	if err != nil {
		h.fail(w, r, err, "failed to update album", "user_id", user.ID)
		return
	}

	ui.Done(w, r, ui.Success(message.Sprintf(message.AlbumUpdated)), ui.Back(r, albumURL(token)), map[string]any{
		"id":          album.ID,
		"title":       album.Title,
		"description": album.Description,
	})
}

func (h *AlbumHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	token := r.PathValue("album")

	err := r.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ui.Error(w, r, http.StatusRequestEntityTooLarge, "The upload is too large.")
			return
		}
		ui.Error(w, r, http.StatusBadRequest, "Invalid upload.")
		return
	}

	in := service.UploadInput{
		Title:   formPtr(r, "title"),
		Caption: formPtr(r, "caption"),
		TakenAt: r.FormValue("taken_at"),
	}
	if r.MultipartForm != nil {
		in.Files = append(r.MultipartForm.File["photos[]"], r.MultipartForm.File["photos"]...)
	}

	photos, err := h.albumService.UploadPhotos(token, user.ID, in)
	if errors.Is(err, service.ErrStorageFailure) && len(photos) > 0 {
		// Some files made it; keep them and tell the user about the rest.
		slog.Warn("upload partially failed", "error", err, "user_id", user.ID, "stored", len(photos), "total", len(in.Files))
		failed := len(in.Files) - len(photos)
		flash := ui.Warning(message.Sprintf(message.PhotosUploaded, len(photos)) + " " + message.Sprintf(message.PhotosFailed, failed))
		ui.Done(w, r, flash, ui.Back(r, albumURL(token)), photoIDs(photos))
		return
	}
	if err != nil {
		h.fail(w, r, err, "failed to upload photos", "user_id", user.ID)
		return
	}

	flash := ui.Success(message.Sprintf(message.PhotosUploaded, len(photos)))
	ui.Done(w, r, flash, ui.Back(r, albumURL(token)), photoIDs(photos))
}

func (h *AlbumHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	token := r.PathValue("album")

	photoID, err := strconv.ParseInt(r.PathValue("photo"), 10, 64)
	if err != nil {
		ui.NotFound(w, r)
		return
	}

	err = h.albumService.DeletePhoto(token, photoID, user.ID)
	if err != nil {
		h.fail(w, r, err, "failed to delete photo", "user_id", user.ID, "photo_id", photoID)
		return
	}

	ui.Done(w, r, ui.Success(message.Sprintf(message.PhotoDeleted)), ui.Back(r, albumURL(token)), nil)
}

func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.albumService.DeleteAlbum(r.PathValue("album"), user.ID)
	if err != nil {
		h.fail(w, r, err, "failed to delete album", "user_id", user.ID)
		return
	}

	ui.Done(w, r, ui.Success(message.Sprintf(message.AlbumDeleted)), "/", nil)
}

// fail maps service errors to responses: unknown albums and photos are 404,
// invalid input 422, blob store trouble a retryable 503.
func (h *AlbumHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	var fieldErrs validation.Errors
	switch {
	case errors.Is(err, service.ErrNotFound):
		ui.NotFound(w, r)
	case errors.As(err, &fieldErrs):
		ui.ValidationErrors(w, r, fieldErrs)
	case errors.Is(err, service.ErrStorageFailure):
		slog.Error(msg, append([]any{"error", err}, attrs...)...)
		retry := message.Sprintf(message.StorageDown)
		if !ui.WantsJSON(r) {
			// Browsers come back to the album page; it shows the failure there.
			ui.SetFlash(w, r, ui.Failure(retry))
		}
		w.Header().Set("Retry-After", storageRetryAfter)
		ui.Error(w, r, http.StatusServiceUnavailable, retry)
	default:
		slog.Error(msg, append([]any{"error", err}, attrs...)...)
		ui.Error(w, r, http.StatusInternalServerError, "Server Error")
	}
}

// formPtr returns the form value for key, or nil when the field was not sent.
func formPtr(r *http.Request, key string) *string {
	if r.Form == nil {
		_ = r.ParseMultipartForm(multipartMemory)
	}
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func photoIDs(photos []*model.Photo) []int64 {
	ids := make([]int64, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	return ids
}
