//go:build !integration

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"youthBanking/domain"
)

type stubProfiles struct {
	profiles  map[uint]domain.UserProfile
	loadErr   error
	scanCalls int
}

func (s *stubProfiles) FindProfile(ctx context.Context, userID uint) (domain.UserProfile, error) {
	if s.loadErr != nil {
		return domain.UserProfile{}, s.loadErr
	}
	p, ok := s.profiles[userID]
	if !ok {
		return domain.UserProfile{}, domain.ErrUserNotFound
	}
	return p, nil
}

func (s *stubProfiles) FindEligibleProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	s.scanCalls++
	out := make([]domain.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if p.Complete() {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubSubscriptions struct {
	subs    []domain.Subscription
	failFor domain.ProductKind
}

func (s *stubSubscriptions) FindByUsers(ctx context.Context, userIDs []uint, kind domain.ProductKind) ([]domain.Subscription, error) {
	if kind == s.failFor || s.failFor == "*" {
		return nil, errors.New("connection refused")
	}
	want := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		want[id] = struct{}{}
	}
	var out []domain.Subscription
	for _, sub := range s.subs {
		if _, ok := want[sub.UserID]; ok && sub.Kind == kind {
			out = append(out, sub)
		}
	}
	return out, nil
}

type stubProducts struct {
	meta map[domain.ProductKind]map[string]domain.ProductMetadata
}

func (s *stubProducts) FindMetadata(ctx context.Context, codes []string, kind domain.ProductKind) (map[string]domain.ProductMetadata, error) {
	out := make(map[string]domain.ProductMetadata)
	for _, c := range codes {
		if m, ok := s.meta[kind][c]; ok {
			out[c] = m
		}
	}
	return out, nil
}

func newFixture() (*stubProfiles, *stubSubscriptions, *stubProducts) {
	profiles := &stubProfiles{profiles: map[uint]domain.UserProfile{
		1: profile(1, 30, 10_000_000, 40_000_000),
		2: profile(2, 29, 11_000_000, 41_000_000),
		3: profile(3, 31, 9_000_000, 39_000_000),
		4: profile(4, 32, 10_500_000, 42_000_000),
	}}
	subs := &stubSubscriptions{subs: []domain.Subscription{
		sub(2, domain.ProductKindDeposit, "P1"),
		sub(3, domain.ProductKindDeposit, "P1"),
		sub(4, domain.ProductKindDeposit, "P2"),
		sub(1, domain.ProductKindDeposit, "P2"),
		sub(2, domain.ProductKindSaving, "S1"),
		sub(3, domain.ProductKindSaving, "GONE"),
	}}
	products := &stubProducts{meta: map[domain.ProductKind]map[string]domain.ProductMetadata{
		domain.ProductKindDeposit: {
			"P1": {Code: "P1", Name: "Deposit One", BankName: "Bank A"},
			"P2": {Code: "P2", Name: "Deposit Two", BankName: "Bank B"},
		},
		domain.ProductKindSaving: {
			"S1": {Code: "S1", Name: "Saving One", BankName: "Bank A"},
		},
	}}
	return profiles, subs, products
}

func TestRecommend(t *testing.T) {
	profiles, subs, products := newFixture()
	svc := NewService(profiles, subs, products, DefaultConfig())

	res, err := svc.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.SimilarUsersCount != 3 {
		t.Fatalf("expected 3 similar users, got %d", res.SimilarUsersCount)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %+v", res.Recommendations)
	}
	first, second := res.Recommendations[0], res.Recommendations[1]
	if first.Product.Code != "P1" || first.RecommendationCount != 2 || first.Type != domain.ProductKindDeposit {
		t.Fatalf("unexpected first recommendation %+v", first)
	}
	if second.Product.Code != "S1" || second.Type != domain.ProductKindSaving {
		t.Fatalf("unexpected second recommendation %+v", second)
	}
	for _, r := range res.Recommendations {
		if r.Product.Code == "P2" {
			t.Fatal("already-held product P2 must not be recommended")
		}
	}
}

func TestRecommendIsIdempotent(t *testing.T) {
	profiles, subs, products := newFixture()
	svc := NewService(profiles, subs, products, DefaultConfig())

	a, err := svc.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	b, err := svc.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestRecommendIncompleteProfileSkipsScan(t *testing.T) {
	profiles, subs, products := newFixture()
	age := 30
	income := int64(40_000_000)
	profiles.profiles[1] = domain.UserProfile{UserID: 1, Age: &age, AnnualIncome: &income}
	svc := NewService(profiles, subs, products, DefaultConfig())

	_, err := svc.Recommend(context.Background(), 1)
	if !errors.Is(err, ErrMissingProfileData) {
		t.Fatalf("expected ErrMissingProfileData, got %v", err)
	}
	if profiles.scanCalls != 0 {
		t.Fatalf("expected no candidate scan, got %d", profiles.scanCalls)
	}
}

func TestRecommendUnknownUser(t *testing.T) {
	profiles, subs, products := newFixture()
	svc := NewService(profiles, subs, products, DefaultConfig())

	_, err := svc.Recommend(context.Background(), 404)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecommendNoCandidates(t *testing.T) {
	profiles := &stubProfiles{profiles: map[uint]domain.UserProfile{
		1: profile(1, 30, 1, 1),
		2: {UserID: 2},
	}}
	svc := NewService(profiles, &stubSubscriptions{}, &stubProducts{}, DefaultConfig())

	res, err := svc.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != MessageNoSimilarUsers || len(res.Recommendations) != 0 || res.Recommendations == nil {
		t.Fatalf("unexpected empty result %+v", res)
	}
}

func TestRecommendPartialFailure(t *testing.T) {
	profiles, subs, products := newFixture()
	subs.failFor = domain.ProductKindSaving
	svc := NewService(profiles, subs, products, DefaultConfig())

	res, err := svc.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Type != domain.ProductKindDeposit {
		t.Fatalf("expected only deposit recommendations, got %+v", res.Recommendations)
	}
}

func TestRecommendAllKindsFail(t *testing.T) {
	profiles, subs, products := newFixture()
	subs.failFor = "*"
	svc := NewService(profiles, subs, products, DefaultConfig())

	_, err := svc.Recommend(context.Background(), 1)
	if !errors.Is(err, ErrUnexpectedFailure) {
		t.Fatalf("expected ErrUnexpectedFailure, got %v", err)
	}
}

func TestRecommendStoreFailure(t *testing.T) {
	profiles, subs, products := newFixture()
	profiles.loadErr = errors.New("db down")
	svc := NewService(profiles, subs, products, DefaultConfig())

	_, err := svc.Recommend(context.Background(), 1)
	if !errors.Is(err, ErrUnexpectedFailure) {
		t.Fatalf("expected ErrUnexpectedFailure, got %v", err)
	}
}

func TestRecommendRespectsLimits(t *testing.T) {
	profiles, subs, products := newFixture()
	svc := NewService(profiles, subs, products, Config{Neighbors: 1, TopPerKind: 1, TopTotal: 1})

	res, err := svc.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SimilarUsersCount != 1 {
		t.Fatalf("expected one neighbor, got %d", res.SimilarUsersCount)
	}
	if len(res.Recommendations) > 1 {
		t.Fatalf("expected at most one recommendation, got %+v", res.Recommendations)
	}
}
