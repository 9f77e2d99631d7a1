package domain

import (
	"time"
)

// QuestionCategory groups quiz questions by topic.
type QuestionCategory struct {
	CategoryID  uint64    `gorm:"primaryKey;column:category_id;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (QuestionCategory) TableName() string {
	return "question_categories"
}

type CategoryWithCount struct {
	QuestionCategory
	QuestionCount int `json:"question_count"`
}
