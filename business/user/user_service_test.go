//go:build !integration

package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"youthBanking/domain"
	"youthBanking/pkg/utils"

	"github.com/go-playground/validator/v10"
)

const testVerificationKey = "0123456789abcdef0123456789abcdef"

type memUsers struct {
	byID   map[uint]domain.User
	nextID uint
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uint]domain.User{}, nextID: 1}
}

func (m *memUsers) Create(ctx context.Context, u *domain.User) error {
	u.ID = m.nextID
	m.nextID++
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *memUsers) FindAll(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) UpdateProfile(ctx context.Context, u *domain.User) error {
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(ctx context.Context, id uint) error {
	delete(m.byID, id)
	return nil
}

func (m *memUsers) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	u := m.byID[id]
	u.IsVerified = isVerified
	m.byID[id] = u
	return nil
}

type memSubs struct {
	subs []domain.Subscription
}

func (m *memSubs) Create(ctx context.Context, s *domain.Subscription) error {
	for _, e := range m.subs {
		if e.UserID == s.UserID && e.Kind == s.Kind && e.ProductCode == s.ProductCode {
			return nil
		}
	}
	m.subs = append(m.subs, *s)
	return nil
}

func (m *memSubs) Delete(ctx context.Context, userID uint, kind domain.ProductKind, code string) error {
	for i, e := range m.subs {
		if e.UserID == userID && e.Kind == kind && e.ProductCode == code {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return domain.ErrSubscriptionNotFound
}

func (m *memSubs) FindProducts(ctx context.Context, userID uint, kind domain.ProductKind) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, e := range m.subs {
		if e.UserID == userID && e.Kind == kind {
			out = append(out, domain.Product{Kind: kind, Code: e.ProductCode})
		}
	}
	return out, nil
}

type memProducts map[string]bool

func (m memProducts) FindByCode(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error) {
	if !m[string(kind)+"/"+code] {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return domain.Product{Kind: kind, Code: code}, nil
}

type memTokens struct {
	byToken map[string]string
}

func (m *memTokens) StoreToken(ctx context.Context, userID, token string, data domain.TokenData, ttl time.Duration) error {
	m.byToken[token] = userID
	return nil
}

func (m *memTokens) ValidateToken(ctx context.Context, token string) (string, error) {
	id, ok := m.byToken[token]
	if !ok {
		return "", errors.New("token not found or expired")
	}
	return id, nil
}

func (m *memTokens) DeleteToken(ctx context.Context, userID, token string) error {
	delete(m.byToken, token)
	return nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (r *recordingMailer) SendEmail(ctx context.Context, toName, toEmail, subject, body string) error {
	r.sent = append(r.sent, body)
	return r.err
}

type fixture struct {
	svc    *userService
	users  *memUsers
	subs   *memSubs
	tokens *memTokens
	mailer *recordingMailer
}

func newFixture() fixture {
	utils.InitJWT("test-secret", time.Hour)
	f := fixture{
		users:  newMemUsers(),
		subs:   &memSubs{},
		tokens: &memTokens{byToken: map[string]string{}},
		mailer: &recordingMailer{},
	}
	products := memProducts{"deposit/WR0001B": true}
	f.svc = NewUserService(f.users, f.subs, products, f.tokens, f.mailer, validator.New(), testVerificationKey, "https://youthbanking.test")
	return f
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.svc.Register(ctx, &domain.User{Username: "minji", Email: "minji@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Password != "" || u.Role != domain.RoleCustomer {
		t.Fatalf("unexpected registered user %+v", u)
	}
	if len(f.mailer.sent) != 1 || !strings.Contains(f.mailer.sent[0], "/api/v1/users/email-verification/") {
		t.Fatalf("expected a verification mail, got %v", f.mailer.sent)
	}

	if _, _, err := f.svc.Login(ctx, "minji@example.com", "secret1", "", ""); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected unverified error, got %v", err)
	}

	_ = f.users.UpdateEmailVerification(ctx, u.ID, true)

	if _, _, err := f.svc.Login(ctx, "minji@example.com", "wrong", "", ""); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected incorrect password, got %v", err)
	}

	token, _, err := f.svc.Login(ctx, "minji@example.com", "secret1", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id, err := f.svc.ValidateTokenFromRedis(ctx, token); err != nil || id != "1" {
		t.Fatalf("token not stored: %q %v", id, err)
	}

	if err := f.svc.Logout(ctx, u.ID, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.svc.ValidateTokenFromRedis(ctx, token); err == nil {
		t.Fatal("token should be gone after logout")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, &domain.User{Username: "minji", Email: "minji@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.svc.Register(ctx, &domain.User{Username: "other", Email: "minji@example.com", Password: "secret1"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	if _, err := f.svc.Register(ctx, &domain.User{Username: "minji", Email: "other@example.com", Password: "secret1"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	f := newFixture()
	f.mailer.err = errors.New("smtp down")

	if _, err := f.svc.Register(context.Background(), &domain.User{Username: "minji", Email: "minji@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("mail failure should not fail registration: %v", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.svc.Register(ctx, &domain.User{Username: "minji", Email: "minji@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	link, err := f.svc.activationLink(u.Email, time.Now())
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	code := link[strings.LastIndex(link, "/")+1:]

	if err := f.svc.VerifyEmail(ctx, code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !f.users.byID[u.ID].IsVerified {
		t.Fatal("user should be verified")
	}
	if err := f.svc.VerifyEmail(ctx, code); !errors.Is(err, ErrInvalidVerifyCode) {
		t.Fatalf("second verification should fail, got %v", err)
	}

	expired, err := f.svc.activationLink(u.Email, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := f.svc.VerifyEmail(ctx, expired[strings.LastIndex(expired, "/")+1:]); !errors.Is(err, ErrInvalidVerifyCode) {
		t.Fatalf("expired code should fail, got %v", err)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u, _ := f.svc.Register(ctx, &domain.User{Username: "minji", Email: "minji@example.com", Password: "secret1"})

	bad := []domain.ProfileUpdate{
		{Age: ptr(151)},
		{Age: ptr(-1)},
		{Assets: ptr(int64(-5))},
		{AnnualIncome: ptr(int64(-5))},
		{SavingsTendency: ptr("reckless")},
		{InvestmentTendency: ptr("yolo")},
	}
	for i, update := range bad {
		if _, err := f.svc.UpdateProfile(ctx, u.ID, update); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}

	updated, err := f.svc.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{
		Age:             ptr(27),
		Assets:          ptr(int64(15_000_000)),
		SavingsTendency: ptr("moderate"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if *updated.Age != 27 || *updated.Assets != 15_000_000 || updated.AnnualIncome != nil {
		t.Fatalf("unexpected profile %+v", updated)
	}
	if f.users.byID[u.ID].Profile().Complete() {
		t.Fatal("profile without income should stay incomplete")
	}
}

func TestSubscriptions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u, _ := f.svc.Register(ctx, &domain.User{Username: "minji", Email: "minji@example.com", Password: "secret1"})

	if err := f.svc.Subscribe(ctx, u.ID, domain.ProductKindDeposit, "NOPE"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	if err := f.svc.Subscribe(ctx, u.ID, domain.ProductKind("loan"), "WR0001B"); !errors.Is(err, ErrInvalidProductKind) {
		t.Fatalf("expected invalid kind, got %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.svc.Subscribe(ctx, u.ID, domain.ProductKindDeposit, "WR0001B"); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
	}

	detail, err := f.svc.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(detail.SubscribedDeposits) != 1 || len(detail.SubscribedSavings) != 0 {
		t.Fatalf("unexpected subscriptions %+v", detail)
	}

	if err := f.svc.Unsubscribe(ctx, u.ID, domain.ProductKindDeposit, "WR0001B"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if err := f.svc.Unsubscribe(ctx, u.ID, domain.ProductKindDeposit, "WR0001B"); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected subscription not found, got %v", err)
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	f := newFixture()
	if err := f.svc.DeleteUser(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
