package domain

import "time"

type Difficulty string

const (
	DifficultyYouth         Difficulty = "youth"
	DifficultyAdultBasic    Difficulty = "adult_basic"
	DifficultyAdultAdvanced Difficulty = "adult_advanced"
)

type DifficultyOption struct {
	Value Difficulty `json:"value"`
	Label string     `json:"label"`
}

var Difficulties = []DifficultyOption{
	{Value: DifficultyYouth, Label: "청소년"},
	{Value: DifficultyAdultBasic, Label: "성인 기본"},
	{Value: DifficultyAdultAdvanced, Label: "성인 심화"},
}

func (d Difficulty) Valid() bool {
	for _, o := range Difficulties {
		if o.Value == d {
			return true
		}
	}
	return false
}

func (d Difficulty) Label() string {
	for _, o := range Difficulties {
		if o.Value == d {
			return o.Label
		}
	}
	return string(d)
}

type Question struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	CategoryID  *uint64           `gorm:"column:category_id;index" json:"category_id"`
	Category    *QuestionCategory `gorm:"foreignKey:CategoryID;references:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Text        string            `gorm:"column:text;type:text;not null" json:"text"`
	Difficulty  Difficulty        `gorm:"column:difficulty;size:20;index;not null" json:"difficulty"`
	Explanation string            `gorm:"column:explanation;type:text" json:"explanation"`
	Keywords    string            `gorm:"column:keywords;size:200" json:"keywords"`
	Choices     []Choice          `gorm:"foreignKey:QuestionID" json:"choices"`
}

func (Question) TableName() string {
	return "questions"
}

type Choice struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"column:question_id;index;not null" json:"-"`
	Text       string `gorm:"column:text;size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"column:is_correct;default:false" json:"is_correct"`
}

func (Choice) TableName() string {
	return "choices"
}

type QuizAttempt struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"column:user_id;index;not null" json:"user_id"`
	Difficulty     Difficulty   `gorm:"column:difficulty;size:20" json:"difficulty"`
	Score          float64      `gorm:"column:score" json:"score"`
	TotalQuestions int          `gorm:"column:total_questions" json:"total_questions"`
	CorrectAnswers int          `gorm:"column:correct_answers" json:"correct_answers"`
	CompletedAt    time.Time    `gorm:"column:completed_at" json:"completed_at"`
	Answers        []UserAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type UserAnswer struct {
	ID               uint `gorm:"primaryKey" json:"-"`
	AttemptID        uint `gorm:"column:attempt_id;index;not null" json:"-"`
	QuestionID       uint `gorm:"column:question_id;not null" json:"question"`
	SelectedChoiceID uint `gorm:"column:selected_choice_id;not null" json:"selected_choice"`
	IsCorrect        bool `gorm:"column:is_correct" json:"is_correct"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}

type Certificate struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	AttemptID  uint       `gorm:"column:attempt_id;uniqueIndex;not null" json:"attempt_id"`
	Number     string     `gorm:"column:number;size:30;uniqueIndex;not null" json:"certificate_number"`
	Grade      string     `gorm:"column:grade;size:4" json:"grade"`
	Difficulty Difficulty `gorm:"column:difficulty;size:20" json:"difficulty"`
	Score      float64    `gorm:"column:score" json:"score"`
	FilePath   string     `gorm:"column:file_path" json:"-"`
	IssuedAt   time.Time  `gorm:"column:issued_at" json:"issued_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// QuizQuestion is a question as handed to a quiz taker: no correctness flags.
type QuizQuestion struct {
	ID       uint         `json:"id"`
	Text     string       `json:"text"`
	Keywords string       `json:"keywords"`
	Choices  []QuizChoice `json:"choices"`
}

type QuizChoice struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type SubmittedAnswer struct {
	QuestionID uint `json:"question_id" validate:"required"`
	ChoiceID   uint `json:"choice_id" validate:"required"`
}

type AnswerResult struct {
	QuestionID     uint       `json:"question_id"`
	QuestionText   string     `json:"question_text"`
	SelectedChoice QuizChoice `json:"selected_choice"`
	CorrectChoice  QuizChoice `json:"correct_choice"`
	IsCorrect      bool       `json:"is_correct"`
	Explanation    string     `json:"explanation"`
}

type QuizResult struct {
	AttemptID      uint           `json:"attempt_id"`
	Score          float64        `json:"score"`
	CorrectAnswers int            `json:"correct_answers"`
	TotalQuestions int            `json:"total_questions"`
	Results        []AnswerResult `json:"results"`
}
