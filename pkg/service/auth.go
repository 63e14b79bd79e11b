package service

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/currency"
	"cambio_wallet_back/pkg/repository"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	repos    repository.Authorization
	notifier Notifier
	cfg      Config
}

func NewAuthService(repos repository.Authorization, notifier Notifier, cfg Config) *AuthService {
	return &AuthService{
		repos:    repos,
		notifier: notifier,
		cfg:      cfg,
	}
}

// SignUp создаёт пользователя с профилем и сразу выдаёт сессию
func (s *AuthService) SignUp(input models.SignUpInput) (models.TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.TokenPair{}, err
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	// Значения профиля по умолчанию задаются один раз здесь, а не при чтении
	profile := models.Profile{
		DisplayName:         input.DisplayName,
		DefaultFromCurrency: "USD",
		DefaultToCurrency:   "BRL",
	}

	id, err := s.repos.CreateUser(user, profile)
	if err != nil {
		return models.TokenPair{}, err
	}

	return s.issueTokens(id)
}

func (s *AuthService) SignIn(input models.SignInInput) (models.TokenPair, error) {
	user, err := s.repos.GetUserByEmail(input.Email)
	if err != nil {
		return models.TokenPair{}, apperr.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return models.TokenPair{}, apperr.ErrNotFound
	}

	return s.issueTokens(user.Id)
}

// Refresh ротирует refresh-токен: старый удаляется, выдаётся новая пара
func (s *AuthService) Refresh(refreshToken string) (models.TokenPair, error) {
	stored, err := s.repos.GetRefreshToken(refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err := s.repos.DeleteRefreshToken(refreshToken); err != nil {
		return models.TokenPair{}, err
	}

	if time.Now().After(stored.ExpiresAt) {
		return models.TokenPair{}, apperr.ErrNotFound
	}

	return s.issueTokens(stored.UserId)
}

func (s *AuthService) SignOut(refreshToken string) error {
	return s.repos.DeleteRefreshToken(refreshToken)
}

func (s *AuthService) ParseToken(accessToken string) (int64, error) {
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("invalid token payload")
	}

	return int64(sub), nil
}

func (s *AuthService) GetUser(userId int64) (models.User, error) {
	return s.repos.GetUserById(userId)
}

// RequestPasswordReset отправляет токен сброса на почту.
// Несуществующий email не раскрываем — отвечаем как при успехе.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.repos.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		return err
	}

	reset := models.PasswordReset{
		Token:     uuid.NewString(),
		UserId:    user.Id,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.repos.SavePasswordReset(reset); err != nil {
		return err
	}

	s.notifier.PasswordReset(user.Email, reset.Token)
	return nil
}

func (s *AuthService) UpdatePassword(resetToken, newPassword string) error {
	reset, err := s.repos.GetPasswordReset(resetToken)
	if err != nil {
		return err
	}
	if time.Now().After(reset.ExpiresAt) {
		s.repos.DeletePasswordReset(resetToken)
		return apperr.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repos.UpdatePassword(reset.UserId, string(hash)); err != nil {
		return err
	}

	return s.repos.DeletePasswordReset(resetToken)
}

func (s *AuthService) GetProfile(userId int64) (models.Profile, error) {
	return s.repos.GetProfile(userId)
}

func (s *AuthService) UpdateProfile(userId int64, input models.UpdateProfileInput) error {
	if input.DefaultFromCurrency != nil {
		norm := currency.Normalize(*input.DefaultFromCurrency)
		if !currency.IsSupported(norm) {
			return apperr.ErrInvalidPair
		}
		input.DefaultFromCurrency = &norm
	}
	if input.DefaultToCurrency != nil {
		norm := currency.Normalize(*input.DefaultToCurrency)
		if !currency.IsSupported(norm) {
			return apperr.ErrInvalidPair
		}
		input.DefaultToCurrency = &norm
	}
	return s.repos.UpdateProfile(userId, input)
}

func (s *AuthService) issueTokens(userId int64) (models.TokenPair, error) {
	claims := jwt.MapClaims{
		"sub": userId,
		"exp": time.Now().Add(s.cfg.AccessTokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return models.TokenPair{}, err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.TokenPair{}, err
	}
	refresh := models.RefreshToken{
		Token:     hex.EncodeToString(buf),
		UserId:    userId,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.repos.SaveRefreshToken(refresh); err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{
		AccessToken:  signed,
		RefreshToken: refresh.Token,
	}, nil
}
