package handler

import (
	"errors"
	"net/http"

	apperrors "weshow/pkg/errors"

	"github.com/labstack/echo/v4"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}

// respondNotFoundWithParent points the caller at the nearest valid listing so
// the UI can redirect instead of rendering a raw 404.
func respondNotFoundWithParent(c echo.Context, message, parent string) error {
	return c.JSON(http.StatusNotFound, map[string]string{
		jsonKeyError:    message,
		jsonKeyRedirect: parent,
	})
}

// handleAppError surfaces the app error's own message at the given status,
// falling back to the status text for anything else.
func handleAppError(c echo.Context, err error, status int) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return respondError(c, status, appErr.Message)
	}

	return respondError(c, status, http.StatusText(status))
}

func handleHTTPError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		return respondError(c, he.Code, msg)
	}

	return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
