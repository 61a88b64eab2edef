package handler

import (
	"errors"
	"fmt"
	"net/http"

	"weshow/internal/auth"
	"weshow/internal/storage/s3"
	apperrors "weshow/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	uploadFormField = "file"

	// Uploads from the registration wizard land here; there is no studio
	// principal yet at that point.
	registrationLogoPrefix = "registration/logos"
)

type UploadHandler struct {
	uploader *s3.Uploader
}

func NewUploadHandler(uploader *s3.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// UploadLogo stores a studio logo. The endpoint is reachable without a
// session because the registration wizard uploads the logo before the
// account exists; an authenticated studio gets its own key prefix.
func (h *UploadHandler) UploadLogo(c echo.Context) error {
	prefix := registrationLogoPrefix
	if studioID, err := auth.GetStudioID(c); err == nil {
		prefix = fmt.Sprintf("studios/%s/logos", studioID)
	}

	return h.upload(c, prefix)
}

func (h *UploadHandler) UploadPhoto(c echo.Context) error {
	prefix := "photos"
	if studioID, err := auth.GetStudioID(c); err == nil {
		prefix = fmt.Sprintf("studios/%s/photos", studioID)
	}

	return h.upload(c, prefix)
}

func (h *UploadHandler) upload(c echo.Context, prefix string) error {
	fileHeader, err := c.FormFile(uploadFormField)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgMissingUploadFile)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgMissingUploadFile)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)

	result, err := h.uploader.UploadImage(
		c.Request().Context(),
		prefix,
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return handleAppError(c, err, http.StatusBadRequest)
		}
		c.Logger().Errorf("Failed to upload %s to prefix %s: %v", fileHeader.Filename, prefix, err)
		return respondError(c, http.StatusInternalServerError, "upload failed")
	}

	return c.JSON(http.StatusOK, result)
}
