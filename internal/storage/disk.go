package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStorage keeps blobs on the local filesystem below basePath.
type DiskStorage struct {
	basePath  string
	publicURL string
}

func NewDiskStorage(basePath, publicURL string) (*DiskStorage, error) {
	err := os.MkdirAll(basePath, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &DiskStorage{
		basePath:  basePath,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// fullPath resolves a blob path inside basePath, rejecting anything that escapes it.
func (s *DiskStorage) fullPath(p string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	if cleaned == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.basePath, filepath.FromSlash(cleaned)), nil
}

func (s *DiskStorage) Save(p string, file io.Reader) error {
	full, err := s.fullPath(p)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(full), 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(out, file)
	closeErr := out.Close()
	if err != nil {
		_ = os.Remove(full)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if closeErr != nil {
		_ = os.Remove(full)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	return nil
}

func (s *DiskStorage) Delete(p string) error {
	full, err := s.fullPath(p)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *DiskStorage) URL(p string) string {
	return s.publicURL + "/" + strings.TrimPrefix(p, "/")
}

func (s *DiskStorage) Exists(p string) (bool, error) {
	full, err := s.fullPath(p)
	if err != nil {
		return false, nil
	}

	info, err := os.Stat(full)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return !info.IsDir(), nil
}

// Serve streams the blob at p, answering 404 when it does not exist.
func (s *DiskStorage) Serve(w http.ResponseWriter, r *http.Request, p string) {
	ok, err := s.Exists(p)
	if err != nil || !ok {
		http.NotFound(w, r)
		return
	}

	// Blob names are random and never rewritten.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	full, _ := s.fullPath(p)
	http.ServeFile(w, r, full)
}
