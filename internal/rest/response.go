package rest

import (
	"errors"
	"net/http"
	"strconv"

	"youthBanking/domain"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

var errUnauthorized = errors.New("unauthorized")

func currentUserID(c echo.Context) (uint, error) {
	userID, ok := c.Get("user_id").(uint)
	if !ok || userID == 0 {
		return 0, errUnauthorized
	}
	return userID, nil
}

func uintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(v), nil
}

// notFoundStatus maps the shared "x not found" errors to 404 and anything
// else to 500.
func notFoundStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrAttemptNotFound),
		errors.Is(err, domain.ErrCertificateNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
