package handler

import (
	"log/slog"
	"net/http"
	"path"

	"github.com/contactapp/backend/internal/storage"
	"github.com/google/uuid"
)

const maxPhotoSize = 2 << 20 // 2 MB

var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PhotoHandler stores uploaded contact photos and returns their public URL,
// which clients then send as the contact's photo field.
type PhotoHandler struct {
	storage storage.Storage
}

func NewPhotoHandler(store storage.Storage) *PhotoHandler {
	return &PhotoHandler{storage: store}
}

// Upload handles POST /api/photos (multipart field "photo").
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize+(64<<10))
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo_required")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	ct := header.Header.Get("Content-Type")
	ext, ok := allowedPhotoTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}

	key := path.Join("photos", uuid.NewString()+ext)
	photoURL, err := h.storage.Save(r.Context(), key, file, ct)
	if err != nil {
		slog.Error("photo upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"photo_url": photoURL})
}
