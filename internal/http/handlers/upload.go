package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"travelportal/internal/http/middleware"
	"travelportal/internal/imaging"
	"travelportal/internal/services"
	"travelportal/internal/storage"
	"travelportal/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps /api/upload bodies.
const maxUploadBytes = imaging.MaxSelectionBytes

// uploadError answers in the flat {error} shape the upload contract uses.
func uploadError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg, "request_id": middleware.GetRequestID(c)})
}

// readPart loads an uploaded file and sniffs its real content type.
func readPart(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	return data, imaging.Sniff(data), nil
}

// POST /api/upload (multipart: file, folder) -> {url} | {error}
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		uploadError(c, http.StatusBadRequest, "file wajib diisi")
		return
	}
	folder := strings.Trim(strings.TrimSpace(c.PostForm("folder")), "/")
	if !h.Folders.Allowed(folder) {
		uploadError(c, http.StatusBadRequest, "folder tidak diizinkan")
		return
	}
	data, mime, err := readPart(fh)
	if err != nil {
		uploadError(c, http.StatusBadRequest, "file tidak bisa dibaca")
		return
	}
	if len(data) > maxUploadBytes {
		uploadError(c, http.StatusRequestEntityTooLarge, "File must be 10MB or smaller")
		return
	}

	url, err := h.Uploader.Upload(c.Request.Context(), storage.File{
		Name:        utils.SafeFilenamePart(fh.Filename),
		ContentType: mime,
		Folder:      folder,
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "upload", "store", err)
		uploadError(c, http.StatusBadGateway, "Upload failed, please try again")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "upload", "store", "folder="+folder+" mime="+mime)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// POST /api/profile/avatar (multipart: file, x, y, width, height, [mime])
func (h *Handler) UpdateAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Please select an image file", map[string]string{"file": "Please select an image file"})
		return
	}
	var region imaging.CropRegion
	if err := c.ShouldBind(&region); err != nil {
		RespondError(c, http.StatusBadRequest, "area crop tidak valid", err)
		return
	}
	data, sniffed, err := readPart(fh)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file tidak bisa dibaca", err)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = sniffed
	}

	url, err := h.avatars(c).CropAndUpload(c.Request.Context(), middleware.CurrentUserID(c), services.AvatarInput{
		ContentType: contentType,
		Size:        fh.Size,
		Body:        bytes.NewReader(data),
		Region:      region,
		OutputMIME:  c.PostForm("mime"),
	})
	if err != nil {
		if msg := imaging.UserMessage(err); msg != "" {
			respondError(c, http.StatusBadRequest, "image_error", msg, map[string]string{"file": msg})
			return
		}
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{"avatarUrl": url})
}
