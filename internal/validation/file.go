package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	// AllowedMimeTypes maps a sniffed content type to the extension stored files get.
	AllowedMimeTypes  map[string]string
	AllowedExtensions map[string]bool
	MaxKB             int64
}

// DefaultMaxPhotoKB is the per-photo size limit (5 MB).
const DefaultMaxPhotoKB = 5120

// ImageConstraints returns the rules for photo uploads with the given size limit.
func ImageConstraints(maxKB int64) FileConstraints {
	return FileConstraints{
		AllowedMimeTypes: map[string]string{
			"image/jpeg": ".jpg",
			"image/png":  ".png",
			"image/gif":  ".gif",
			"image/bmp":  ".bmp",
			"image/webp": ".webp",
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".gif":  true,
			".bmp":  true,
			".webp": true,
		},
		MaxKB: maxKB,
	}
}

// ValidateFiles checks a whole upload batch before anything is stored.
// It returns the storage extension for every file, in order, or field errors
// keyed like "photos.0".
func ValidateFiles(field string, headers []*multipart.FileHeader, constraints FileConstraints) ([]string, error) {
	errs := Errors{}
	if len(headers) == 0 {
		errs.Add(field, fmt.Sprintf("The %s field is required.", field))
		return nil, errs
	}

	exts := make([]string, len(headers))
	for i, header := range headers {
		ext, err := ValidateFile(header, constraints)
		if err != nil {
			errs.Add(fmt.Sprintf("%s.%d", field, i), err.Error())
			continue
		}
		exts[i] = ext
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return exts, nil
}

// ValidateFile validates a single upload and returns the extension to store it under.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) (string, error) {
	if header == nil {
		return "", fmt.Errorf("file is missing")
	}

	// Check file size first (before reading content)
	if header.Size > constraints.MaxKB*1024 {
		return "", fmt.Errorf("file too large: maximum size is %d kilobytes", constraints.MaxKB)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads max 512 bytes to determine MIME type
	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Detect actual content type from file content (magic numbers)
	// This cannot be faked by just changing Content-Type header
	detectedType := http.DetectContentType(buffer[:n])

	ext, ok := constraints.AllowedMimeTypes[detectedType]
	if !ok {
		return "", fmt.Errorf("file must be an image (detected: %s)", detectedType)
	}

	if !constraints.AllowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return "", fmt.Errorf("invalid file extension: %s", filepath.Ext(header.Filename))
	}

	return ext, nil
}
