package rest

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	quizService "youthBanking/business/quiz"
	"youthBanking/domain"
	"youthBanking/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type QuizService interface {
	Difficulties() []domain.DifficultyOption
	GetQuiz(ctx context.Context, difficulty domain.Difficulty) ([]domain.QuizQuestion, error)
	SubmitQuiz(ctx context.Context, userID uint, difficulty domain.Difficulty, answers []domain.SubmittedAnswer) (domain.QuizResult, error)
	History(ctx context.Context, userID uint) ([]domain.QuizAttempt, error)
	ConceptStudy(ctx context.Context, difficulty domain.Difficulty, categoryID uint64) ([]domain.Question, error)
	IssueCertificate(ctx context.Context, userID, attemptID uint) (domain.Certificate, error)
	ListCertificates(ctx context.Context, userID uint) ([]domain.Certificate, error)
	CertificateFile(ctx context.Context, userID, certID uint) (domain.Certificate, error)
	ListQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error)
	GetQuestion(ctx context.Context, id uint) (domain.Question, error)
	CheckAnswer(ctx context.Context, questionID, choiceID uint) (domain.AnswerResult, error)
}

type QuizHandler struct {
	quizService QuizService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewQuizHandler(quizService QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type SubmitQuizRequest struct {
	Difficulty string                   `json:"difficulty" validate:"required"`
	Answers    []domain.SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
}

type AnswerRequest struct {
	ChoiceID uint `json:"choice_id" validate:"required"`
}

func quizErrorStatus(err error) int {
	switch {
	case errors.Is(err, quizService.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, quizService.ErrInvalidDifficulty),
		errors.Is(err, quizService.ErrNotEnoughQuestions),
		errors.Is(err, quizService.ErrNoAnswers),
		errors.Is(err, quizService.ErrInvalidAnswer),
		errors.Is(err, quizService.ErrGradeTooLow),
		errors.Is(err, quizService.ErrIncompleteAttempt):
		return http.StatusBadRequest
	default:
		return notFoundStatus(err)
	}
}

func (h *QuizHandler) Difficulties(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "successfully get difficulties",
		"difficulties": h.quizService.Difficulties(),
	})
}

func (h *QuizHandler) GetQuiz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	difficulty := domain.Difficulty(c.Param("difficulty"))
	questions, err := h.quizService.GetQuiz(ctx, difficulty)
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"difficulty": difficulty,
		"label":      difficulty.Label(),
		"questions":  questions,
	})
}

func (h *QuizHandler) SubmitQuiz(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	var req SubmitQuizRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.quizService.SubmitQuiz(ctx, userID, domain.Difficulty(req.Difficulty), req.Answers)
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, result)
}

// ListQuestions serves /academy/questions?difficulty=
func (h *QuizHandler) ListQuestions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	questions, err := h.quizService.ListQuestions(ctx, domain.Difficulty(c.QueryParam("difficulty")))
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get questions",
		"questions": questions,
	})
}

func (h *QuizHandler) GetQuestion(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	question, err := h.quizService.GetQuestion(ctx, id)
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get question",
		"question": question,
	})
}

func (h *QuizHandler) CheckAnswer(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.quizService.CheckAnswer(ctx, id, req.ChoiceID)
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) History(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	attempts, err := h.quizService.History(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get quiz history",
		"attempts": attempts,
	})
}

// ConceptStudy serves /academy/concepts/:difficulty/:category_id
func (h *QuizHandler) ConceptStudy(c echo.Context) error {
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	questions, err := h.quizService.ConceptStudy(ctx, domain.Difficulty(c.Param("difficulty")), categoryID)
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get concept questions",
		"questions": questions,
	})
}

func (h *QuizHandler) IssueCertificate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	attemptID, err := uintParam(c, "attempt_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cert, err := h.quizService.IssueCertificate(ctx, userID, attemptID)
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "certificate issued",
		"certificate": cert,
	})
}

func (h *QuizHandler) ListCertificates(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	certs, err := h.quizService.ListCertificates(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "successfully get certificates",
		"certificates": certs,
	})
}

func (h *QuizHandler) DownloadCertificate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	certID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cert, err := h.quizService.CertificateFile(ctx, userID, certID)
	if err != nil {
		return c.JSON(quizErrorStatus(err), ResponseError{Message: err.Error()})
	}

	if _, err := os.Stat(cert.FilePath); err != nil {
		logger.Error("Certificate file missing", "certificate_id", cert.ID, "path", cert.FilePath, "error", err)
		return c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrCertificateNotFound.Error()})
	}

	return c.Attachment(cert.FilePath, cert.Number+".png")
}
