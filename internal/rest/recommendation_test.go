//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"youthBanking/business/recommend"
	"youthBanking/domain"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

type stubRecommender struct {
	result domain.RecommendationResult
	err    error
	gotID  uint
}

func (s *stubRecommender) Recommend(ctx context.Context, userID uint) (domain.RecommendationResult, error) {
	s.gotID = userID
	return s.result, s.err
}

// serve runs h with user_id preset the way the auth middleware leaves it.
func serve(t *testing.T, method, target, body string, userID uint, h echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRecommendSuccess(t *testing.T) {
	svc := &stubRecommender{result: domain.RecommendationResult{
		Message:           "Recommendations based on 2 users with a similar profile",
		SimilarUsersCount: 2,
		Recommendations: []domain.Recommendation{
			{
				Product:             domain.ProductMetadata{Code: "D1", Name: "정기예금", BankName: "우리은행"},
				RecommendationCount: 2,
				Type:                domain.ProductKindDeposit,
			},
		},
	}}
	h := NewRecommendationHandler(svc)

	rec := serve(t, http.MethodGet, "/api/v1/recommendations", "", 7, h.Recommend)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if svc.gotID != 7 {
		t.Fatalf("service called with user %d", svc.gotID)
	}
	body := decodeBody(t, rec)
	recs, ok := body["recommendations"].([]any)
	if !ok || len(recs) != 1 {
		t.Fatalf("unexpected recommendations %v", body["recommendations"])
	}
	if body["similar_users_count"] != float64(2) {
		t.Fatalf("unexpected similar_users_count %v", body["similar_users_count"])
	}
}

func TestRecommendNilListBecomesEmptyArray(t *testing.T) {
	h := NewRecommendationHandler(&stubRecommender{result: domain.RecommendationResult{Message: recommend.MessageNoSimilarUsers}})

	rec := serve(t, http.MethodGet, "/api/v1/recommendations", "", 1, h.Recommend)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	recs, ok := decodeBody(t, rec)["recommendations"].([]any)
	if !ok || len(recs) != 0 {
		t.Fatalf("expected an empty array, got %s", rec.Body.String())
	}
}

func TestRecommendErrorShapes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"incomplete profile", recommend.ErrMissingProfileData, http.StatusBadRequest, msgCompleteProfile},
		{"deleted user", domain.ErrUserNotFound, http.StatusNotFound, domain.ErrUserNotFound.Error()},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, msgRecommendFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRecommendationHandler(&stubRecommender{err: tt.err})

			rec := serve(t, http.MethodGet, "/api/v1/recommendations", "", 3, h.Recommend)

			if rec.Code != tt.status {
				t.Fatalf("status %d, want %d", rec.Code, tt.status)
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.message {
				t.Fatalf("error %q, want %q", body["error"], tt.message)
			}
			recs, ok := body["recommendations"].([]any)
			if !ok || len(recs) != 0 {
				t.Fatalf("expected empty recommendations, got %v", body["recommendations"])
			}
		})
	}
}

func TestRecommendRequiresIdentity(t *testing.T) {
	h := NewRecommendationHandler(&stubRecommender{})

	rec := serve(t, http.MethodGet, "/api/v1/recommendations", "", 0, h.Recommend)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
}
