package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	userService "youthBanking/business/user"
	"youthBanking/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (domain.UserDetail, error)
	UpdateProfile(ctx context.Context, userID uint, update domain.ProfileUpdate) (domain.User, error)
	Subscribe(ctx context.Context, userID uint, kind domain.ProductKind, code string) error
	Unsubscribe(ctx context.Context, userID uint, kind domain.ProductKind, code string) error
}

type ProfileHandler struct {
	profileService ProfileService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type UpdateProfileRequest struct {
	Age                *int    `json:"age" validate:"omitempty,min=0,max=150"`
	Assets             *int64  `json:"assets" validate:"omitempty,min=0"`
	AnnualIncome       *int64  `json:"annual_income" validate:"omitempty,min=0"`
	SavingsTendency    *string `json:"savings_tendency"`
	InvestmentTendency *string `json:"investment_tendency"`
	PreferredBank      *string `json:"preferred_bank" validate:"omitempty,max=20"`
}

type SubscribeRequest struct {
	Kind string `json:"kind" validate:"required,oneof=deposit saving"`
	Code string `json:"code" validate:"required"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	detail, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		return c.JSON(notFoundStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(detail))
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.profileService.UpdateProfile(ctx, userID, domain.ProfileUpdate{
		Age:                req.Age,
		Assets:             req.Assets,
		AnnualIncome:       req.AnnualIncome,
		SavingsTendency:    req.SavingsTendency,
		InvestmentTendency: req.InvestmentTendency,
		PreferredBank:      req.PreferredBank,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *ProfileHandler) Subscribe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	var req SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.profileService.Subscribe(ctx, userID, domain.ProductKind(req.Kind), req.Code); err != nil {
		if errors.Is(err, userService.ErrInvalidProductKind) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(notFoundStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Subscribed successfully",
	})
}

func (h *ProfileHandler) Unsubscribe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.profileService.Unsubscribe(ctx, userID, domain.ProductKind(c.Param("kind")), c.Param("code"))
	if err != nil {
		if errors.Is(err, userService.ErrInvalidProductKind) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(notFoundStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Unsubscribed successfully",
	})
}
