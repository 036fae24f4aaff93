package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velora/commerce-system/internal/infrastructure/storage"
)

// maxUploadBytes caps uploaded screenshots and product images at 5 MiB.
const maxUploadBytes = 5 << 20

type UploadHandler struct {
	store *storage.GridFSStore
}

func NewUploadHandler(store *storage.GridFSStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload stores a multipart image (field "file") and returns its id.
//
// @Summary      Upload an image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  storage.FileInfo
// @Failure      400  {object}  map[string]string
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds 5 MiB limit")
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "only image uploads are accepted")
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	id, err := h.store.Save(c.Request().Context(), contentType, src)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, storage.FileInfo{
		ID:          id,
		ContentType: contentType,
		Size:        fh.Size,
	})
}

// Get streams a stored image back to the client.
//
// @Summary      Fetch an uploaded image
// @Tags         uploads
// @Produce      octet-stream
// @Param        id   path  string  true  "Upload id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /uploads/{id} [get]
func (h *UploadHandler) Get(c echo.Context) error {
	stream, info, err := h.store.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer stream.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, stream)
}
