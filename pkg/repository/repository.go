package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"cambio_wallet_back/models"
)

type Authorization interface {
	CreateUser(user models.User, profile models.Profile) (int64, error)
	GetUserByEmail(email string) (models.User, error)
	GetUserById(id int64) (models.User, error)
	UpdatePassword(userId int64, passwordHash string) error

	GetProfile(userId int64) (models.Profile, error)
	UpdateProfile(userId int64, input models.UpdateProfileInput) error

	SaveRefreshToken(token models.RefreshToken) error
	GetRefreshToken(token string) (models.RefreshToken, error)
	DeleteRefreshToken(token string) error

	SavePasswordReset(reset models.PasswordReset) error
	GetPasswordReset(token string) (models.PasswordReset, error)
	DeletePasswordReset(token string) error
}

type Wallet interface {
	GetBalances(userId int64) ([]models.Balance, error)
	GetBalance(userId int64, currency string) (models.Balance, error)
	Deposit(userId int64, currency string, amount decimal.Decimal, method string) error
	Send(userId int64, pixKey string, amount decimal.Decimal) error
	ApplyConversion(record models.ConversionRecord) error
	GetTransactions(userId int64) ([]models.Transaction, error)
}

type Conversion interface {
	GetHistory(userId int64) ([]models.ConversionRecord, error)
	DeleteRecord(userId, recordId int64) error
}

type Watchlist interface {
	Create(entry models.WatchlistEntry) (int64, error)
	List(userId int64) ([]models.WatchlistEntry, error)
	ListAlertEnabled() ([]models.WatchlistEntry, error)
	Update(userId, id int64, input models.WatchlistUpdateInput) error
	SetTriggered(id int64, triggered bool) error
	Delete(userId, id int64) error
}

type Repository struct {
	Authorization
	Wallet
	Conversion
	Watchlist
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Authorization: NewAuthPostgres(db),
		Wallet:        NewWalletPostgres(db),
		Conversion:    NewConversionPostgres(db),
		Watchlist:     NewWatchlistPostgres(db),
	}
}
