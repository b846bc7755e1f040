package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/galeri/internal/validation"
)

func TestBack(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"no referer", "", "/albums/x"},
		{"same origin", "http://example.com/albums/abc?page=2", "/albums/abc?page=2"},
		{"relative", "/albums/abc", "/albums/abc"},
		{"foreign host", "https://evil.test/phish", "/albums/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "http://example.com/albums/abc/photos", nil)
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, Back(r, "/albums/x"))
		})
	}
}

func TestDone_Browser(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/albums", nil)
	rec := httptest.NewRecorder()

	Done(rec, r, Success("Saved."), "/albums/abc", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/albums/abc", rec.Header().Get("Location"))

	// The next page shows the flash once.
	next := httptest.NewRequest(http.MethodGet, "/albums/abc", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	page := httptest.NewRecorder()
	flash := PopFlash(page, next)
	require.NotNil(t, flash)
	assert.Equal(t, Flash{Type: FlashSuccess, Message: "Saved."}, *flash)

	cleared := page.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestDone_JSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/albums", nil)
	r.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	Done(rec, r, Warning("Partly saved."), "/albums/abc", []int64{1, 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	var body struct {
		Flash    Flash   `json:"flash"`
		Location string  `json:"location"`
		Data     []int64 `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, FlashWarning, body.Flash.Type)
	assert.Equal(t, "/albums/abc", body.Location)
	assert.Equal(t, []int64{1, 2}, body.Data)
}

func TestPopFlash_IgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: flashCookieName, Value: "%%%"})
	assert.Nil(t, PopFlash(httptest.NewRecorder(), r))
}

func TestValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationErrors(rec, httptest.NewRequest(http.MethodPost, "/albums", nil), validation.Errors{"title": "The title field is required."})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "The title field is required.", body.Errors["title"])
}
