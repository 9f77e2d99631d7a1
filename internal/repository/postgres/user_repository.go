package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"youthBanking/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	if err := r.DB.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateProfile writes the personal fields, including explicit NULLs.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).
		Select("age", "assets", "annual_income", "savings_tendency", "investment_tendency", "preferred_bank", "updated_at").
		Updates(user)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Delete soft deletes the user and drops their subscriptions so they stop
// feeding other users' recommendations.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.User{}, id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return errors.New("user not found or already deleted")
		}

		if err := tx.Where("user_id = ?", id).Delete(&domain.Subscription{}).Error; err != nil {
			return fmt.Errorf("failed to delete subscriptions: %w", err)
		}

		return nil
	})
}

func (r *UserRepository) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_verified", isVerified)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("user not found or status already updated")
	}

	return nil
}

type profileRow struct {
	ID           uint
	Age          *int
	Assets       *int64
	AnnualIncome *int64
}

func (p profileRow) toDomain() domain.UserProfile {
	return domain.UserProfile{
		UserID:       p.ID,
		Age:          p.Age,
		Assets:       p.Assets,
		AnnualIncome: p.AnnualIncome,
	}
}

func (r *UserRepository) FindProfile(ctx context.Context, userID uint) (domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserProfile{}, fmt.Errorf("context error: %w", err)
	}

	var row profileRow
	err := r.DB.WithContext(ctx).Model(&domain.User{}).
		Select("id", "age", "assets", "annual_income").
		Where("id = ?", userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, fmt.Errorf("failed to find profile: %w", err)
	}

	return row.toDomain(), nil
}

// FindEligibleProfiles returns every live user with age, assets and income set.
func (r *UserRepository) FindEligibleProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []profileRow
	err := r.DB.WithContext(ctx).Model(&domain.User{}).
		Select("id", "age", "assets", "annual_income").
		Where("age IS NOT NULL AND assets IS NOT NULL AND annual_income IS NOT NULL").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}

	out := make([]domain.UserProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
