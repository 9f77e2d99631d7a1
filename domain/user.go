package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Username           string         `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email              string         `gorm:"column:email;unique;not null" json:"email"`
	IsVerified         bool           `gorm:"column:is_verified;default:false" json:"is_verified"`
	Password           string         `gorm:"column:password;not null" json:"-"`
	Role               string         `gorm:"column:role;default:customer" json:"role"`
	Age                *int           `gorm:"column:age" json:"age"`
	Assets             *int64         `gorm:"column:assets" json:"assets"`
	AnnualIncome       *int64         `gorm:"column:annual_income" json:"annual_income"`
	SavingsTendency    *string        `gorm:"column:savings_tendency;size:20" json:"savings_tendency"`
	InvestmentTendency *string        `gorm:"column:investment_tendency;size:20" json:"investment_tendency"`
	PreferredBank      *string        `gorm:"column:preferred_bank;size:20" json:"preferred_bank"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile is the slice of a user the recommender compares on.
type UserProfile struct {
	UserID       uint
	Age          *int
	Assets       *int64
	AnnualIncome *int64
}

func (p UserProfile) Complete() bool {
	return p.Age != nil && p.Assets != nil && p.AnnualIncome != nil
}

func (u User) Profile() UserProfile {
	return UserProfile{
		UserID:       u.ID,
		Age:          u.Age,
		Assets:       u.Assets,
		AnnualIncome: u.AnnualIncome,
	}
}

// ProfileUpdate carries the editable personal fields. Nil means "leave as is".
type ProfileUpdate struct {
	Age                *int
	Assets             *int64
	AnnualIncome       *int64
	SavingsTendency    *string
	InvestmentTendency *string
	PreferredBank      *string
}

var SavingsTendencies = map[string]string{
	"conservative": "안정형",
	"moderate":     "균형형",
	"aggressive":   "적극형",
}

var InvestmentTendencies = map[string]string{
	"very_conservative": "매우 보수적",
	"conservative":      "보수적",
	"moderate":          "중립적",
	"aggressive":        "적극적",
	"very_aggressive":   "매우 적극적",
}

// UserDetail is the profile page: the user plus the products they hold.
type UserDetail struct {
	User               User      `json:"user"`
	SubscribedDeposits []Product `json:"subscribed_deposits"`
	SubscribedSavings  []Product `json:"subscribed_savings"`
}
