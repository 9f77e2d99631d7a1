package postgres

import (
	"context"
	"errors"
	"fmt"

	"youthBanking/domain"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{
		DB: db,
	}
}

func (r *QuizRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("Category").Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	return nil
}

func (r *QuizRepository) FindQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}

	var questions []domain.Question
	if err := q.Order("id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	return questions, nil
}

func (r *QuizRepository) FindQuestionsByIDs(ctx context.Context, ids []uint) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Question{}, nil
	}

	var questions []domain.Question
	err := r.DB.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Where("id IN ?", ids).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	return questions, nil
}

func (r *QuizRepository) FindQuestionsByCategory(ctx context.Context, difficulty domain.Difficulty, categoryID uint64) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var questions []domain.Question
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Where("difficulty = ? AND category_id = ?", difficulty, categoryID).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	return questions, nil
}

// CreateAttempt stores the attempt together with its answers.
func (r *QuizRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(attempt).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}

	return nil
}

func (r *QuizRepository) FindAttempts(ctx context.Context, userID uint) ([]domain.QuizAttempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var attempts []domain.QuizAttempt
	err := r.DB.WithContext(ctx).
		Preload("Answers").
		Where("user_id = ?", userID).
		Order("completed_at DESC").Order("id DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find quiz attempts: %w", err)
	}

	return attempts, nil
}

func (r *QuizRepository) FindAttempt(ctx context.Context, id uint) (domain.QuizAttempt, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("context error: %w", err)
	}

	var attempt domain.QuizAttempt
	if err := r.DB.WithContext(ctx).First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.QuizAttempt{}, domain.ErrAttemptNotFound
		}
		return domain.QuizAttempt{}, fmt.Errorf("failed to find quiz attempt: %w", err)
	}

	return attempt, nil
}

func (r *QuizRepository) FindCertificateByAttempt(ctx context.Context, attemptID uint) (domain.Certificate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Certificate{}, fmt.Errorf("context error: %w", err)
	}

	var cert domain.Certificate
	if err := r.DB.WithContext(ctx).Where("attempt_id = ?", attemptID).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Certificate{}, domain.ErrCertificateNotFound
		}
		return domain.Certificate{}, fmt.Errorf("failed to find certificate: %w", err)
	}

	return cert, nil
}

func (r *QuizRepository) FindCertificateByID(ctx context.Context, id uint) (domain.Certificate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Certificate{}, fmt.Errorf("context error: %w", err)
	}

	var cert domain.Certificate
	if err := r.DB.WithContext(ctx).First(&cert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Certificate{}, domain.ErrCertificateNotFound
		}
		return domain.Certificate{}, fmt.Errorf("failed to find certificate: %w", err)
	}

	return cert, nil
}

func (r *QuizRepository) FindCertificates(ctx context.Context, userID uint) ([]domain.Certificate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var certs []domain.Certificate
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("issued_at DESC").Find(&certs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find certificates: %w", err)
	}

	return certs, nil
}

// CountCertificatesIssuedIn feeds the yearly certificate sequence.
func (r *QuizRepository) CountCertificatesIssuedIn(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Certificate{}).
		Where("EXTRACT(YEAR FROM issued_at) = ?", year).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count certificates: %w", err)
	}

	return count, nil
}

func (r *QuizRepository) CreateCertificate(ctx context.Context, cert *domain.Certificate) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(cert).Error; err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	return nil
}
