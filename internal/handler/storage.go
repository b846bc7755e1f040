package handler

import (
	"net/http"

	"github.com/templui/galeri/internal/storage"
)

// StorageHandler serves blobs kept by the disk driver under /storage/.
type StorageHandler struct {
	disk *storage.DiskStorage
}

func NewStorageHandler(disk *storage.DiskStorage) *StorageHandler {
	return &StorageHandler{disk: disk}
}

func (h *StorageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	h.disk.Serve(w, r, r.PathValue("path"))
}
