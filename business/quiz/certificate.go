package quiz

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"youthBanking/domain"
	"youthBanking/pkg/logger"

	"github.com/google/uuid"
)

const GradeFail = "F"

var gradePrefix = map[domain.Difficulty]string{
	domain.DifficultyAdultAdvanced: "A",
	domain.DifficultyAdultBasic:    "I",
	domain.DifficultyYouth:         "N",
}

// Grade maps a score to a certificate grade: the difficulty prefix followed
// by H (90+), M (75+) or L (60+). Anything lower is F.
func Grade(difficulty domain.Difficulty, score float64) string {
	prefix, ok := gradePrefix[difficulty]
	if !ok {
		prefix = gradePrefix[domain.DifficultyYouth]
	}

	switch {
	case score >= 90:
		return prefix + "H"
	case score >= 75:
		return prefix + "M"
	case score >= 60:
		return prefix + "L"
	default:
		return GradeFail
	}
}

func CertificateNumber(year int, seq int64) string {
	return fmt.Sprintf("YBK-%d-%06d", year, seq)
}

// IssueCertificate returns the certificate for a passed attempt, creating
// it on first request.
func (s *quizService) IssueCertificate(ctx context.Context, userID, attemptID uint) (domain.Certificate, error) {
	attempt, err := s.quizRepo.FindAttempt(ctx, attemptID)
	if err != nil {
		return domain.Certificate{}, err
	}
	if attempt.UserID != userID {
		return domain.Certificate{}, ErrForbidden
	}

	existing, err := s.quizRepo.FindCertificateByAttempt(ctx, attemptID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrCertificateNotFound) {
		return domain.Certificate{}, err
	}

	if attempt.TotalQuestions < QuizSize {
		return domain.Certificate{}, ErrIncompleteAttempt
	}

	grade := Grade(attempt.Difficulty, attempt.Score)
	if grade == GradeFail {
		return domain.Certificate{}, ErrGradeTooLow
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.Certificate{}, err
	}

	now := s.now()
	issued, err := s.quizRepo.CountCertificatesIssuedIn(ctx, now.Year())
	if err != nil {
		return domain.Certificate{}, err
	}

	cert := domain.Certificate{
		UserID:     userID,
		AttemptID:  attemptID,
		Number:     CertificateNumber(now.Year(), issued+1),
		Grade:      grade,
		Difficulty: attempt.Difficulty,
		Score:      attempt.Score,
		FilePath:   filepath.Join(s.certificateDir, uuid.NewString()+".png"),
		IssuedAt:   now,
	}

	err = s.renderer.Render(cert.FilePath, CertificateData{
		Number:     cert.Number,
		Holder:     user.Username,
		Difficulty: attempt.Difficulty.Label(),
		Score:      attempt.Score,
		Grade:      grade,
		IssuedAt:   now.Format("2006-01-02"),
	})
	if err != nil {
		logger.Error("Failed to render certificate", "user_id", userID, "attempt_id", attemptID, "error", err)
		return domain.Certificate{}, err
	}

	if err := s.quizRepo.CreateCertificate(ctx, &cert); err != nil {
		if rmErr := os.Remove(cert.FilePath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("Failed to remove orphan certificate file", "path", cert.FilePath, "error", rmErr)
		}
		logger.Error("Failed to store certificate", "user_id", userID, "attempt_id", attemptID, "error", err)
		return domain.Certificate{}, err
	}

	logger.Info("certificate issued", "user_id", userID, "number", cert.Number, "grade", grade)

	return cert, nil
}

func (s *quizService) ListCertificates(ctx context.Context, userID uint) ([]domain.Certificate, error) {
	return s.quizRepo.FindCertificates(ctx, userID)
}

// CertificateFile returns the certificate if it belongs to userID.
func (s *quizService) CertificateFile(ctx context.Context, userID, certID uint) (domain.Certificate, error) {
	cert, err := s.quizRepo.FindCertificateByID(ctx, certID)
	if err != nil {
		return domain.Certificate{}, err
	}
	if cert.UserID != userID {
		return domain.Certificate{}, ErrForbidden
	}

	return cert, nil
}
