package database

import (
	"fmt"

	"youthBanking/domain"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Bank{},
		&domain.Product{},
		&domain.Subscription{},

		&domain.Post{},
		&domain.PostLike{},
		&domain.Comment{},

		&domain.QuestionCategory{},
		&domain.Question{},
		&domain.Choice{},
		&domain.QuizAttempt{},
		&domain.UserAnswer{},
		&domain.Certificate{},

		&domain.MetalPrice{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
