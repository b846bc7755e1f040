package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateAlbum(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description *string
		wantField   string
	}{
		{name: "valid", title: "Liburan", description: strPtr("Bali 2024")},
		{name: "title at limit", title: strings.Repeat("a", 255)},
		{name: "title counts characters not bytes", title: strings.Repeat("é", 255)},
		{name: "title too long", title: strings.Repeat("a", 256), wantField: "title"},
		{name: "missing title", title: "   ", wantField: "title"},
		{name: "description at limit", title: "t", description: strPtr(strings.Repeat("d", 1000))},
		{name: "description too long", title: "t", description: strPtr(strings.Repeat("d", 1001)), wantField: "description"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateAlbum(tc.title, tc.description)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}

			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tc.wantField)
		})
	}
}

func TestValidateAlbum_Normalizes(t *testing.T) {
	in, err := ValidateAlbum("  Keluarga  ", strPtr("   "))
	require.NoError(t, err)
	assert.Equal(t, "Keluarga", in.Title)
	assert.Nil(t, in.Description)
}

func TestValidatePhotoMeta(t *testing.T) {
	title, caption, err := ValidatePhotoMeta(strPtr(" Pantai "), nil)
	require.NoError(t, err)
	assert.Equal(t, "Pantai", *title)
	assert.Nil(t, caption)

	_, _, err = ValidatePhotoMeta(strPtr(strings.Repeat("x", 256)), strPtr(strings.Repeat("y", 1001)))
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "caption")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("taken_at", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.Format(DateLayout))

	d, err = ParseDate("taken_at", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("taken_at", "29/02/2024")
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "taken_at")
}

func TestErrors_ErrorIsSorted(t *testing.T) {
	errs := Errors{}
	errs.Add("title", "bad title")
	errs.Add("caption", "bad caption")
	errs.Add("title", "ignored")

	assert.Equal(t, "validation failed: caption: bad caption; title: bad title", errs.Error())
	assert.Nil(t, Errors{}.Err())
}
