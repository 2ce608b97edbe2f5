package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mcomanduci/diario-de-gratidao/pkg/helpers"
	"github.com/mcomanduci/diario-de-gratidao/pkg/response"
)

// MaxUploadBytes caps diary image uploads at 5 MB.
const MaxUploadBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/avif": true,
}

// UploadHandler pushes diary images to Cloudinary and hands the URL back
// to the client, which then submits it as the entry's image_url.
type UploadHandler struct {
	Uploader *helpers.CloudinaryUploader
	Logger   *logrus.Logger
}

func NewUploadHandler(up *helpers.CloudinaryUploader, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Uploader: up, Logger: logger}
}

// Image POST /api/uploads/image, multipart field "file".
func (h *UploadHandler) Image(c *gin.Context) {
	if h.Uploader == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "uploads are not configured", nil)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	if fh.Size > MaxUploadBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file exceeds 5MB limit", nil)
		return
	}
	if !allowedImageTypes[fh.Header.Get("Content-Type")] {
		response.Error[any](c, http.StatusBadRequest, "unsupported image type", nil)
		return
	}

	url, err := h.Uploader.UploadImageFromHeader(c.Request.Context(), fh)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("image upload failed")
		}
		response.Error[any](c, http.StatusBadGateway, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "image uploaded", nil)
}
