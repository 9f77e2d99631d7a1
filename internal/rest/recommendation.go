package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"youthBanking/business/recommend"
	"youthBanking/domain"
	"youthBanking/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	msgCompleteProfile = "Please complete your profile (age, assets and annual income) to get recommendations"
	msgRecommendFailed = "Failed to generate recommendations. Please try again later"
)

type RecommendationService interface {
	Recommend(ctx context.Context, userID uint) (domain.RecommendationResult, error)
}

type RecommendationHandler struct {
	recommendService RecommendationService
	timeout          time.Duration
}

func NewRecommendationHandler(recommendService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendService: recommendService,
		timeout:          10 * time.Second,
	}
}

type recommendationError struct {
	Error           string                  `json:"error"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

func recommendFailure(c echo.Context, status int, message string) error {
	return c.JSON(status, recommendationError{
		Error:           message,
		Recommendations: []domain.Recommendation{},
	})
}

func (h *RecommendationHandler) Recommend(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recommendService.Recommend(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrMissingProfileData):
			return recommendFailure(c, http.StatusBadRequest, msgCompleteProfile)
		case errors.Is(err, domain.ErrUserNotFound):
			return recommendFailure(c, http.StatusNotFound, err.Error())
		default:
			logger.Error("Failed to build recommendations",
				"trace_id", recommend.TraceIDFromContext(ctx),
				"user_id", userID,
				"error", err,
			)
			return recommendFailure(c, http.StatusInternalServerError, msgRecommendFailed)
		}
	}

	if result.Recommendations == nil {
		result.Recommendations = []domain.Recommendation{}
	}

	return c.JSON(http.StatusOK, result)
}
