package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/rates"
	"cambio_wallet_back/pkg/repository"
)

// RateSource — источник спотовых курсов (pkg/rates либо заглушка в тестах)
type RateSource interface {
	GetRate(ctx context.Context, base, quote string) (decimal.Decimal, error)
	Snapshot(ctx context.Context, base string) (*rates.LatestResponse, error)
}

// Notifier доставляет письма; при пустой конфигурации SMTP только логирует
type Notifier interface {
	AlertTriggered(email string, event models.AlertEvent)
	PasswordReset(email, token string)
}

type Authorization interface {
	SignUp(input models.SignUpInput) (models.TokenPair, error)
	SignIn(input models.SignInInput) (models.TokenPair, error)
	Refresh(refreshToken string) (models.TokenPair, error)
	SignOut(refreshToken string) error
	ParseToken(accessToken string) (int64, error)
	GetUser(userId int64) (models.User, error)
	RequestPasswordReset(email string) error
	UpdatePassword(resetToken, newPassword string) error
	GetProfile(userId int64) (models.Profile, error)
	UpdateProfile(userId int64, input models.UpdateProfileInput) error
}

type Wallet interface {
	Balances(userId int64) ([]models.Balance, error)
	Deposit(userId int64, input models.DepositInput) error
	Send(userId int64, input models.SendInput) error
	Transactions(userId int64) ([]models.Transaction, error)
}

type Conversion interface {
	Rates(ctx context.Context, base string) (*rates.LatestResponse, error)
	Quote(ctx context.Context, userId int64, req models.QuoteRequest) (models.ConversionQuote, error)
	Commit(ctx context.Context, userId int64, quoteId string) (models.ConversionRecord, error)
	History(userId int64) ([]models.ConversionRecord, error)
	DeleteRecord(userId, recordId int64) error
}

type Watchlist interface {
	Add(userId int64, input models.WatchlistAddInput) (models.WatchlistEntry, error)
	List(userId int64) ([]models.WatchlistEntry, error)
	Update(userId, id int64, input models.WatchlistUpdateInput) error
	Delete(userId, id int64) error
	EvaluateOnce(ctx context.Context) ([]models.AlertEvent, error)
}

type Service struct {
	Authorization
	Wallet
	Conversion
	Watchlist
}

type Config struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	QuoteTTL        time.Duration
}

func NewService(repos *repository.Repository, rateSource RateSource, notifier Notifier, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Authorization, notifier, cfg),
		Wallet:        NewWalletService(repos.Wallet),
		Conversion:    NewConversionService(repos.Wallet, repos.Conversion, rateSource, cfg.QuoteTTL),
		Watchlist:     NewWatchlistService(repos.Watchlist, repos.Authorization, rateSource, notifier),
	}
}
