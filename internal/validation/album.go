package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
	MaxCaptionLength     = 1000

	DateLayout = "2006-01-02"
)

// AlbumInput is a normalized album form: trimmed, empty optionals become nil.
type AlbumInput struct {
	Title       string
	Description *string
}

// ValidateAlbum trims and checks album fields.
func ValidateAlbum(title string, description *string) (AlbumInput, error) {
	errs := Errors{}
	in := AlbumInput{
		Title:       strings.TrimSpace(title),
		Description: Optional(description),
	}

	if in.Title == "" {
		errs.Add("title", "The title field is required.")
	}
	maxLength(errs, "title", &in.Title, MaxTitleLength)
	maxLength(errs, "description", in.Description, MaxDescriptionLength)

	return in, errs.Err()
}

// ValidatePhotoMeta checks the optional metadata shared by an upload batch.
func ValidatePhotoMeta(title, caption *string) (*string, *string, error) {
	errs := Errors{}
	title = Optional(title)
	caption = Optional(caption)

	maxLength(errs, "title", title, MaxTitleLength)
	maxLength(errs, "caption", caption, MaxCaptionLength)

	return title, caption, errs.Err()
}

// ParseDate parses an optional YYYY-MM-DD form value. Empty input yields nil.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, Errors{field: fmt.Sprintf("The %s field must be a valid date.", field)}
	}

	return &parsed, nil
}

// Optional trims s and turns blank input into nil.
func Optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// maxLength counts characters, not bytes.
func maxLength(errs Errors, field string, value *string, max int) {
	if value == nil {
		return
	}
	if utf8.RuneCountInString(*value) > max {
		errs.Add(field, fmt.Sprintf("The %s field must not be greater than %d characters.", field, max))
	}
}
