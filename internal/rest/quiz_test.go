//go:build !integration

package rest

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	quizService "youthBanking/business/quiz"
	"youthBanking/domain"
)

type stubQuizService struct {
	answers    []domain.SubmittedAnswer
	cert       domain.Certificate
	difficulty domain.Difficulty
	checked    [2]uint
	err        error
}

func (s *stubQuizService) Difficulties() []domain.DifficultyOption { return domain.Difficulties }

func (s *stubQuizService) GetQuiz(ctx context.Context, difficulty domain.Difficulty) ([]domain.QuizQuestion, error) {
	return []domain.QuizQuestion{}, s.err
}

func (s *stubQuizService) SubmitQuiz(ctx context.Context, userID uint, difficulty domain.Difficulty, answers []domain.SubmittedAnswer) (domain.QuizResult, error) {
	s.answers = answers
	return domain.QuizResult{AttemptID: 1, TotalQuestions: len(answers)}, s.err
}

func (s *stubQuizService) History(ctx context.Context, userID uint) ([]domain.QuizAttempt, error) {
	return nil, s.err
}

func (s *stubQuizService) ConceptStudy(ctx context.Context, difficulty domain.Difficulty, categoryID uint64) ([]domain.Question, error) {
	return nil, s.err
}

func (s *stubQuizService) IssueCertificate(ctx context.Context, userID, attemptID uint) (domain.Certificate, error) {
	return s.cert, s.err
}

func (s *stubQuizService) ListCertificates(ctx context.Context, userID uint) ([]domain.Certificate, error) {
	return nil, s.err
}

func (s *stubQuizService) CertificateFile(ctx context.Context, userID, certID uint) (domain.Certificate, error) {
	return s.cert, s.err
}

func (s *stubQuizService) ListQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	s.difficulty = difficulty
	return []domain.Question{}, s.err
}

func (s *stubQuizService) GetQuestion(ctx context.Context, id uint) (domain.Question, error) {
	return domain.Question{ID: id}, s.err
}

func (s *stubQuizService) CheckAnswer(ctx context.Context, questionID, choiceID uint) (domain.AnswerResult, error) {
	s.checked = [2]uint{questionID, choiceID}
	return domain.AnswerResult{QuestionID: questionID, IsCorrect: true, Explanation: "because"}, s.err
}

func TestSubmitQuiz(t *testing.T) {
	svc := &stubQuizService{}
	h := NewQuizHandler(svc)

	rec := serve(t, http.MethodPost, "/api/v1/academy/quiz",
		`{"difficulty":"youth","answers":[{"question_id":1,"choice_id":2}]}`, 5, h.SubmitQuiz)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if len(svc.answers) != 1 || svc.answers[0].ChoiceID != 2 {
		t.Fatalf("answers not forwarded: %+v", svc.answers)
	}

	rec = serve(t, http.MethodPost, "/api/v1/academy/quiz", `{"difficulty":"youth","answers":[]}`, 5, h.SubmitQuiz)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty answers: status %d", rec.Code)
	}
}

func TestQuizErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not enough questions", quizService.ErrNotEnoughQuestions, http.StatusBadRequest},
		{"invalid difficulty", quizService.ErrInvalidDifficulty, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewQuizHandler(&stubQuizService{err: tt.err})

			rec := serve(t, http.MethodGet, "/api/v1/academy/quiz/youth", "", 0, h.GetQuiz, "difficulty", "youth")

			if rec.Code != tt.status {
				t.Fatalf("status %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestIssueCertificateStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"issued", nil, http.StatusCreated},
		{"other user", quizService.ErrForbidden, http.StatusForbidden},
		{"failed grade", quizService.ErrGradeTooLow, http.StatusBadRequest},
		{"short attempt", quizService.ErrIncompleteAttempt, http.StatusBadRequest},
		{"missing attempt", domain.ErrAttemptNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewQuizHandler(&stubQuizService{err: tt.err})

			rec := serve(t, http.MethodPost, "/api/v1/academy/attempts/3/certificate", "", 1, h.IssueCertificate, "attempt_id", "3")

			if rec.Code != tt.status {
				t.Fatalf("status %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestDownloadCertificate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cert.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewQuizHandler(&stubQuizService{cert: domain.Certificate{ID: 1, Number: "YBK-2026-000001", FilePath: path}})

	rec := serve(t, http.MethodGet, "/api/v1/academy/certificates/1/download", "", 1, h.DownloadCertificate, "id", "1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "YBK-2026-000001.png") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}

	h = NewQuizHandler(&stubQuizService{cert: domain.Certificate{ID: 1, FilePath: filepath.Join(t.TempDir(), "gone.png")}})
	rec = serve(t, http.MethodGet, "/api/v1/academy/certificates/1/download", "", 1, h.DownloadCertificate, "id", "1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing file: status %d", rec.Code)
	}
}

func TestListQuestionsForwardsDifficulty(t *testing.T) {
	svc := &stubQuizService{}
	h := NewQuizHandler(svc)

	rec := serve(t, http.MethodGet, "/api/v1/academy/questions?difficulty=adult_basic", "", 0, h.ListQuestions)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if svc.difficulty != domain.DifficultyAdultBasic {
		t.Fatalf("difficulty not forwarded: %q", svc.difficulty)
	}

	h = NewQuizHandler(&stubQuizService{err: quizService.ErrInvalidDifficulty})
	rec = serve(t, http.MethodGet, "/api/v1/academy/questions?difficulty=expert", "", 0, h.ListQuestions)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid difficulty: status %d", rec.Code)
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	h := NewQuizHandler(&stubQuizService{err: domain.ErrQuestionNotFound})

	rec := serve(t, http.MethodGet, "/api/v1/academy/questions/4", "", 0, h.GetQuestion, "id", "4")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestCheckAnswer(t *testing.T) {
	svc := &stubQuizService{}
	h := NewQuizHandler(svc)

	rec := serve(t, http.MethodPost, "/api/v1/academy/questions/4/answer", `{"choice_id":42}`, 5, h.CheckAnswer, "id", "4")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if svc.checked != [2]uint{4, 42} {
		t.Fatalf("unexpected forwarded ids %v", svc.checked)
	}
	body := decodeBody(t, rec)
	if body["is_correct"] != true || body["explanation"] != "because" {
		t.Fatalf("unexpected body %v", body)
	}

	rec = serve(t, http.MethodPost, "/api/v1/academy/questions/4/answer", `{}`, 5, h.CheckAnswer, "id", "4")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing choice: status %d", rec.Code)
	}

	h = NewQuizHandler(&stubQuizService{err: quizService.ErrInvalidAnswer})
	rec = serve(t, http.MethodPost, "/api/v1/academy/questions/4/answer", `{"choice_id":99}`, 5, h.CheckAnswer, "id", "4")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("foreign choice: status %d", rec.Code)
	}
}
