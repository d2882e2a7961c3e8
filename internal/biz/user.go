package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/salesintel/sales_radar/internal/conf"
)

// User is an account able to save company details and a persona used to
// steer the assistant.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	Company      string
	CompanyURL   string
	Persona      string
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateUserProfile(ctx context.Context, id int, company, companyURL, persona string) error
}

type UserUseCase struct {
	repo   UserRepo
	log    *log.Helper
	jwtKey string
}

func NewUserUseCase(repo UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:   repo,
		log:    log.NewHelper(logger),
		jwtKey: jwtKey,
	}
}

func (uc *UserUseCase) Register(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	return uc.repo.CreateUser(ctx, u)
}

func (uc *UserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": u.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString([]byte(uc.jwtKey))
}

func (uc *UserUseCase) GetProfile(ctx context.Context, username string) (*User, error) {
	return uc.repo.GetUserByUsername(ctx, username)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, username, company, companyURL, persona string) error {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return uc.repo.UpdateUserProfile(ctx, u.ID, company, companyURL, persona)
}
