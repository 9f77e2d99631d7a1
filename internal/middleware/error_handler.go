package middleware

import (
	"errors"
	"net/http"
	"strings"

	"youthBanking/pkg/logger"
	jsonres "youthBanking/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers, such as unknown routes
// or panics caught by Recover.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	} else {
		logger.Error("Unhandled error",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}

	code := strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(status)
	} else {
		respErr = c.JSON(status, jsonres.Error(code, message, nil))
	}
	if respErr != nil {
		logger.Error("Failed to write error response", "error", respErr)
	}
}
