package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
	"youthBanking/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// SubscriptionRepository contract interface
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, userID uint, kind domain.ProductKind, code string) error
	FindProducts(ctx context.Context, userID uint, kind domain.ProductKind) ([]domain.Product, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByCode(ctx context.Context, kind domain.ProductKind, code string) (domain.Product, error)
}

// TokenRepository contract interface
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data domain.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, body string) error
}

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailNotVerified   = errors.New("email address has not been verified")
	ErrInvalidVerifyCode  = errors.New("invalid or expired url")
	ErrInvalidProductKind = errors.New("invalid product kind")
)

type userService struct {
	userRepo                UserRepository
	subRepo                 SubscriptionRepository
	productRepo             ProductRepository
	tokenRepo               TokenRepository
	notifRepo               NotificationRepository
	validate                *validator.Validate
	appEmailVerificationKey string
	appDeploymentUrl        string
}

const (
	verificationCodeTTL      = 5
	SubjectRegisterAccount   = "청년뱅킹 계정을 활성화하세요"
	EmailBodyRegisterAccount = `안녕하세요 %v 님, 아래 링크를 열어 계정을 활성화해 주세요.</br></br>%v</br>링크는 %v분 동안만 유효합니다.`
)

func NewUserService(
	userRepo UserRepository,
	subRepo SubscriptionRepository,
	productRepo ProductRepository,
	tokenRepo TokenRepository,
	notifRepo NotificationRepository,
	validate *validator.Validate,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		subRepo:                 subRepo,
		productRepo:             productRepo,
		tokenRepo:               tokenRepo,
		notifRepo:               notifRepo,
		validate:                validate,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Username, "required,min=3,max=30"); err != nil {
		return domain.User{}, errors.New("username must be between 3 and 30 characters")
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if existing, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil && existing.ID > 0 {
		return domain.User{}, ErrEmailExists
	}

	if existing, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil && existing.ID > 0 {
		return domain.User{}, ErrUsernameExists
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Username:   user.Username,
		Email:      user.Email,
		Password:   string(passwordHash),
		IsVerified: false,
		Role:       domain.RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return domain.User{}, err
	}

	activationLink, err := s.activationLink(newUser.Email, time.Now())
	if err != nil {
		logger.Error("Failed to build activation link", "user_id", newUser.ID, "error", err)
	} else {
		body := fmt.Sprintf(EmailBodyRegisterAccount, newUser.Username, activationLink, verificationCodeTTL)
		if err := s.notifRepo.SendEmail(ctx, newUser.Username, newUser.Email, SubjectRegisterAccount, body); err != nil {
			logger.Warn("Failed to send verification email", "user_id", newUser.ID, "error", err)
		}
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) activationLink(email string, now time.Time) (string, error) {
	expAt := now.Add(verificationCodeTTL * time.Minute).Unix()

	verificationCode := fmt.Sprintf("%v|%v", email, expAt)
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		return "", err
	}

	return s.appDeploymentUrl + "/api/v1/users/email-verification/" + goshortcute.StringtoBase64Encode(encrypted), nil
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Warn("Verifying email error", "error", err)
		return ErrInvalidVerifyCode
	}

	parts := strings.Split(decrypted, "|")
	if len(parts) != 2 {
		return ErrInvalidVerifyCode
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrInvalidVerifyCode
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return ErrInvalidVerifyCode
	}

	user, err := s.userRepo.FindByEmail(ctx, parts[0])
	if err != nil {
		logger.Error("Verifying email error", "error", err)
		return errors.New("failed to get user by email")
	}

	if user.IsVerified {
		logger.Warn("Email already verified", "user_id", user.ID)
		return ErrInvalidVerifyCode
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, user.ID, true); err != nil {
		logger.Error("Verify email err", "error", err)
		return err
	}

	return nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return "", domain.User{}, ErrIncorrectPassword
	}

	if !user.IsVerified {
		return "", domain.User{}, ErrEmailNotVerified
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	ttl := utils.TokenTTL()
	data := domain.TokenData{
		UserID:    userIDStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.tokenRepo.StoreToken(ctx, userIDStr, token, data, ttl); err != nil {
		logger.Error("Failed to store token", "user_id", user.ID, "error", err)
		return "", domain.User{}, errors.New("failed to store session")
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if err := s.tokenRepo.DeleteToken(ctx, strconv.FormatUint(uint64(userID), 10), token); err != nil {
		logger.Error("Failed to delete token", "user_id", userID, "error", err)
		return err
	}

	return nil
}

// GetProfile returns the user with the deposit and saving products they joined.
func (s *userService) GetProfile(ctx context.Context, userID uint) (domain.UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.UserDetail{}, err
	}

	deposits, err := s.subRepo.FindProducts(ctx, userID, domain.ProductKindDeposit)
	if err != nil {
		logger.Error("Failed to load subscribed deposits", "user_id", userID, "error", err)
		return domain.UserDetail{}, err
	}

	savings, err := s.subRepo.FindProducts(ctx, userID, domain.ProductKindSaving)
	if err != nil {
		logger.Error("Failed to load subscribed savings", "user_id", userID, "error", err)
		return domain.UserDetail{}, err
	}

	user.Password = ""
	return domain.UserDetail{
		User:               user,
		SubscribedDeposits: deposits,
		SubscribedSavings:  savings,
	}, nil
}

func validateProfile(update domain.ProfileUpdate) error {
	if update.Age != nil && (*update.Age < 0 || *update.Age > 150) {
		return errors.New("invalid age")
	}
	if update.Assets != nil && *update.Assets < 0 {
		return errors.New("invalid assets: must not be negative")
	}
	if update.AnnualIncome != nil && *update.AnnualIncome < 0 {
		return errors.New("invalid annual income: must not be negative")
	}
	if update.SavingsTendency != nil {
		if _, ok := domain.SavingsTendencies[*update.SavingsTendency]; !ok {
			return errors.New("invalid savings tendency")
		}
	}
	if update.InvestmentTendency != nil {
		if _, ok := domain.InvestmentTendencies[*update.InvestmentTendency]; !ok {
			return errors.New("invalid investment tendency")
		}
	}
	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, update domain.ProfileUpdate) (domain.User, error) {
	if err := validateProfile(update); err != nil {
		return domain.User{}, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if update.Age != nil {
		user.Age = update.Age
	}
	if update.Assets != nil {
		user.Assets = update.Assets
	}
	if update.AnnualIncome != nil {
		user.AnnualIncome = update.AnnualIncome
	}
	if update.SavingsTendency != nil {
		user.SavingsTendency = update.SavingsTendency
	}
	if update.InvestmentTendency != nil {
		user.InvestmentTendency = update.InvestmentTendency
	}
	if update.PreferredBank != nil {
		user.PreferredBank = update.PreferredBank
	}

	if err := s.userRepo.UpdateProfile(ctx, &user); err != nil {
		logger.Error("Failed to update profile", "user_id", userID, "error", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *userService) Subscribe(ctx context.Context, userID uint, kind domain.ProductKind, code string) error {
	if !kind.Valid() {
		return ErrInvalidProductKind
	}

	if _, err := s.productRepo.FindByCode(ctx, kind, code); err != nil {
		return err
	}

	return s.subRepo.Create(ctx, &domain.Subscription{
		UserID:      userID,
		Kind:        kind,
		ProductCode: code,
	})
}

func (s *userService) Unsubscribe(ctx context.Context, userID uint, kind domain.ProductKind, code string) error {
	if !kind.Valid() {
		return ErrInvalidProductKind
	}

	return s.subRepo.Delete(ctx, userID, kind, code)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", "error", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// DeleteUser soft deletes a user
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", "user_id", id, "error", err)
		return err
	}

	return nil
}
