package handlers

import (
	"net/http"

	"github.com/biblo/backend/respond"
	"github.com/biblo/backend/service"
	"go.uber.org/zap"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadHandler stores cover and photo images in S3 and hands back a public
// URL suitable for the bookCover and authorPhoto fields.
type UploadHandler struct {
	S3       *service.S3Service // nil when uploads are not configured
	MaxBytes int64
	Log      *zap.Logger
}

type UploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.S3 == nil {
		respond.Error(w, http.StatusServiceUnavailable, "Service Unavailable - media storage is not configured")
		return
	}
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		respond.Error(w, http.StatusBadRequest, "Bad Request - only jpeg, png and webp images are accepted")
		return
	}

	key, err := h.S3.Upload(r.Context(), "images/", header.Filename, file, contentType)
	if err != nil {
		h.Log.Error("upload image", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respond.JSON(w, http.StatusOK, UploadResponse{URL: h.S3.PublicURL(key)})
}
