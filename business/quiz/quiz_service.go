package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
)

// QuizSize is the number of questions in one quiz.
const QuizSize = 10

// QuizRepository contract interface
type QuizRepository interface {
	FindQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error)
	FindQuestionsByIDs(ctx context.Context, ids []uint) ([]domain.Question, error)
	FindQuestionsByCategory(ctx context.Context, difficulty domain.Difficulty, categoryID uint64) ([]domain.Question, error)
	CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error
	FindAttempts(ctx context.Context, userID uint) ([]domain.QuizAttempt, error)
	FindAttempt(ctx context.Context, id uint) (domain.QuizAttempt, error)
	FindCertificateByAttempt(ctx context.Context, attemptID uint) (domain.Certificate, error)
	FindCertificateByID(ctx context.Context, id uint) (domain.Certificate, error)
	FindCertificates(ctx context.Context, userID uint) ([]domain.Certificate, error)
	CountCertificatesIssuedIn(ctx context.Context, year int) (int64, error)
	CreateCertificate(ctx context.Context, cert *domain.Certificate) error
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// Renderer draws a certificate image to a file.
type Renderer interface {
	Render(path string, data CertificateData) error
}

var (
	ErrInvalidDifficulty  = errors.New("invalid difficulty")
	ErrNotEnoughQuestions = errors.New("not enough questions for this difficulty")
	ErrNoAnswers          = errors.New("answers are required")
	ErrInvalidAnswer      = errors.New("answer does not match a question choice")
	ErrForbidden          = errors.New("you can only access your own quiz records")
	ErrGradeTooLow        = errors.New("score is too low for a certificate")
	ErrIncompleteAttempt  = errors.New("only full quizzes earn a certificate")
)

type quizService struct {
	quizRepo       QuizRepository
	userRepo       UserRepository
	renderer       Renderer
	certificateDir string
	now            func() time.Time
}

func NewQuizService(quizRepo QuizRepository, userRepo UserRepository, renderer Renderer, certificateDir string) *quizService {
	return &quizService{
		quizRepo:       quizRepo,
		userRepo:       userRepo,
		renderer:       renderer,
		certificateDir: certificateDir,
		now:            time.Now,
	}
}

func (s *quizService) Difficulties() []domain.DifficultyOption {
	return domain.Difficulties
}

// GetQuiz draws QuizSize random questions with their choices shuffled.
// Correct answers are not part of the result.
func (s *quizService) GetQuiz(ctx context.Context, difficulty domain.Difficulty) ([]domain.QuizQuestion, error) {
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	questions, err := s.quizRepo.FindQuestions(ctx, difficulty)
	if err != nil {
		logger.Error("Failed to load questions", "difficulty", difficulty, "error", err)
		return nil, err
	}

	if len(questions) < QuizSize {
		return nil, ErrNotEnoughQuestions
	}

	picked := rand.Perm(len(questions))[:QuizSize]
	quiz := make([]domain.QuizQuestion, 0, QuizSize)
	for _, idx := range picked {
		q := questions[idx]
		choices := make([]domain.QuizChoice, len(q.Choices))
		for i, c := range q.Choices {
			choices[i] = domain.QuizChoice{ID: c.ID, Text: c.Text}
		}
		rand.Shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})

		quiz = append(quiz, domain.QuizQuestion{
			ID:       q.ID,
			Text:     q.Text,
			Keywords: q.Keywords,
			Choices:  choices,
		})
	}

	return quiz, nil
}

// SubmitQuiz grades the answers and stores the attempt.
func (s *quizService) SubmitQuiz(ctx context.Context, userID uint, difficulty domain.Difficulty, answers []domain.SubmittedAnswer) (domain.QuizResult, error) {
	if !difficulty.Valid() {
		return domain.QuizResult{}, ErrInvalidDifficulty
	}
	if len(answers) == 0 {
		return domain.QuizResult{}, ErrNoAnswers
	}
	if len(answers) > QuizSize {
		return domain.QuizResult{}, fmt.Errorf("%w: at most %d answers per quiz", ErrInvalidAnswer, QuizSize)
	}

	ids := make([]uint, 0, len(answers))
	seen := make(map[uint]struct{}, len(answers))
	for _, a := range answers {
		if _, dup := seen[a.QuestionID]; dup {
			return domain.QuizResult{}, fmt.Errorf("%w: question %d answered twice", ErrInvalidAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
		ids = append(ids, a.QuestionID)
	}

	questions, err := s.quizRepo.FindQuestionsByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load submitted questions", "user_id", userID, "error", err)
		return domain.QuizResult{}, err
	}
	byID := make(map[uint]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	attempt := domain.QuizAttempt{
		UserID:         userID,
		Difficulty:     difficulty,
		TotalQuestions: len(answers),
		CompletedAt:    s.now(),
		Answers:        make([]domain.UserAnswer, 0, len(answers)),
	}
	results := make([]domain.AnswerResult, 0, len(answers))

	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return domain.QuizResult{}, fmt.Errorf("%w: unknown question %d", ErrInvalidAnswer, a.QuestionID)
		}
		if q.Difficulty != difficulty {
			return domain.QuizResult{}, fmt.Errorf("%w: question %d is not a %s question", ErrInvalidAnswer, q.ID, difficulty)
		}

		res, err := gradeAnswer(q, a.ChoiceID)
		if err != nil {
			return domain.QuizResult{}, err
		}
		if res.IsCorrect {
			attempt.CorrectAnswers++
		}

		results = append(results, res)
		attempt.Answers = append(attempt.Answers, domain.UserAnswer{
			QuestionID:       q.ID,
			SelectedChoiceID: res.SelectedChoice.ID,
			IsCorrect:        res.IsCorrect,
		})
	}

	attempt.Score = Score(attempt.CorrectAnswers, attempt.TotalQuestions)

	if err := s.quizRepo.CreateAttempt(ctx, &attempt); err != nil {
		logger.Error("Failed to store quiz attempt", "user_id", userID, "error", err)
		return domain.QuizResult{}, err
	}

	return domain.QuizResult{
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		Results:        results,
	}, nil
}

func gradeAnswer(q domain.Question, choiceID uint) (domain.AnswerResult, error) {
	var selected, correct *domain.Choice
	for i := range q.Choices {
		c := &q.Choices[i]
		if c.ID == choiceID {
			selected = c
		}
		if c.IsCorrect && correct == nil {
			correct = c
		}
	}
	if selected == nil {
		return domain.AnswerResult{}, fmt.Errorf("%w: choice %d is not part of question %d", ErrInvalidAnswer, choiceID, q.ID)
	}

	res := domain.AnswerResult{
		QuestionID:     q.ID,
		QuestionText:   q.Text,
		SelectedChoice: domain.QuizChoice{ID: selected.ID, Text: selected.Text},
		IsCorrect:      selected.IsCorrect,
		Explanation:    q.Explanation,
	}
	if correct != nil {
		res.CorrectChoice = domain.QuizChoice{ID: correct.ID, Text: correct.Text}
	}

	return res, nil
}

// Score is the percentage of correct answers.
func Score(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

func (s *quizService) History(ctx context.Context, userID uint) ([]domain.QuizAttempt, error) {
	attempts, err := s.quizRepo.FindAttempts(ctx, userID)
	if err != nil {
		logger.Error("Failed to load quiz history", "user_id", userID, "error", err)
		return nil, err
	}

	return attempts, nil
}

// ConceptStudy lists a category's questions with the correct choice first.
func (s *quizService) ConceptStudy(ctx context.Context, difficulty domain.Difficulty, categoryID uint64) ([]domain.Question, error) {
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	questions, err := s.quizRepo.FindQuestionsByCategory(ctx, difficulty, categoryID)
	if err != nil {
		logger.Error("Failed to load concept questions", "difficulty", difficulty, "category_id", categoryID, "error", err)
		return nil, err
	}

	for i := range questions {
		choices := questions[i].Choices
		sort.SliceStable(choices, func(a, b int) bool {
			return choices[a].IsCorrect && !choices[b].IsCorrect
		})
	}

	return questions, nil
}

func shuffledChoices(q domain.Question) domain.Question {
	choices := append([]domain.Choice(nil), q.Choices...)
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	q.Choices = choices
	return q
}

// ListQuestions returns every question for self study, optionally limited to
// one difficulty. Choices come in random order and keep their correctness flag.
func (s *quizService) ListQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	if difficulty != "" && !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	questions, err := s.quizRepo.FindQuestions(ctx, difficulty)
	if err != nil {
		logger.Error("Failed to load study questions", "difficulty", difficulty, "error", err)
		return nil, err
	}

	for i := range questions {
		questions[i] = shuffledChoices(questions[i])
	}

	return questions, nil
}

func (s *quizService) GetQuestion(ctx context.Context, id uint) (domain.Question, error) {
	q, err := s.findQuestion(ctx, id)
	if err != nil {
		return domain.Question{}, err
	}

	return shuffledChoices(q), nil
}

// CheckAnswer grades a single answer right away. Nothing is stored.
func (s *quizService) CheckAnswer(ctx context.Context, questionID, choiceID uint) (domain.AnswerResult, error) {
	q, err := s.findQuestion(ctx, questionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	return gradeAnswer(q, choiceID)
}

func (s *quizService) findQuestion(ctx context.Context, id uint) (domain.Question, error) {
	questions, err := s.quizRepo.FindQuestionsByIDs(ctx, []uint{id})
	if err != nil {
		logger.Error("Failed to load question", "question_id", id, "error", err)
		return domain.Question{}, err
	}
	if len(questions) == 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}

	return questions[0], nil
}
