package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	userdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/user"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type UserUsecase interface {
	Register(input *userdto.RegisterInput) (*userdto.AuthOutput, error)
	Login(input *userdto.LoginInput) (*userdto.AuthOutput, error)
	GetUser(userID string) (*domain.User, error)
}

type DefaultUserUsecase struct {
	UserRepo   domain.UserRepository
	WalletRepo domain.WalletRepository
	jwtSecret  []byte
	validate   *validator.Validate
}

func NewDefaultUserUsecase(userRepo domain.UserRepository, walletRepo domain.WalletRepository, jwtSecret string) *DefaultUserUsecase {
	return &DefaultUserUsecase{
		UserRepo:   userRepo,
		WalletRepo: walletRepo,
		jwtSecret:  []byte(jwtSecret),
		validate:   validator.New(),
	}
}

// Register creates the account and its wallet. Every user gets a wallet even
// if they never deposit; tutors receive earnings into theirs.
func (uc *DefaultUserUsecase) Register(input *userdto.RegisterInput) (*userdto.AuthOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := uc.UserRepo.GetUserByEmail(input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Role:         domain.UserRole(input.Role),
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.UserRepo.CreateUser(user); err != nil {
		return nil, err
	}

	wallet := &domain.Wallet{
		ID:     uuid.New().String(),
		UserID: user.ID,
	}
	if err := uc.WalletRepo.CreateWallet(wallet); err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &userdto.AuthOutput{UserID: user.ID, Role: string(user.Role), AccessToken: token}, nil
}

func (uc *DefaultUserUsecase) Login(input *userdto.LoginInput) (*userdto.AuthOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := uc.UserRepo.GetUserByEmail(input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrAuthentication)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrAuthentication)
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &userdto.AuthOutput{UserID: user.ID, Role: string(user.Role), AccessToken: token}, nil
}

func (uc *DefaultUserUsecase) GetUser(userID string) (*domain.User, error) {
	return uc.UserRepo.GetUserByID(userID)
}

func (uc *DefaultUserUsecase) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
