package service

import (
	"context"

	"github.com/shopspring/decimal"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/rates"
	"cambio_wallet_back/pkg/repository"
)

// fakeRates — фиксированный снимок курсов, ключ вида "USD_BRL"
type fakeRates struct {
	rates map[string]decimal.Decimal
}

func (f *fakeRates) GetRate(_ context.Context, base, quote string) (decimal.Decimal, error) {
	rate, ok := f.rates[base+"_"+quote]
	if !ok {
		return decimal.Zero, apperr.ErrRateUnavailable
	}
	return rate, nil
}

func (f *fakeRates) Snapshot(_ context.Context, base string) (*rates.LatestResponse, error) {
	out := map[string]decimal.Decimal{}
	for key, rate := range f.rates {
		if len(key) > 4 && key[:3] == base {
			out[key[4:]] = rate
		}
	}
	if len(out) == 0 {
		return nil, apperr.ErrRateUnavailable
	}
	return &rates.LatestResponse{Base: base, Rates: out}, nil
}

// fakeStore — кошелёк и история в памяти, один пользователь на тест.
// Повторяет семантику WalletPostgres: отказ без мутаций, атомарность.
type fakeStore struct {
	balances     map[string]decimal.Decimal
	transactions []models.Transaction
	history      []models.ConversionRecord
	nextId       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{balances: map[string]decimal.Decimal{}}
}

func (f *fakeStore) GetBalances(userId int64) ([]models.Balance, error) {
	var out []models.Balance
	for code, balance := range f.balances {
		out = append(out, models.Balance{UserId: userId, Currency: code, Balance: balance})
	}
	return out, nil
}

func (f *fakeStore) GetBalance(userId int64, currency string) (models.Balance, error) {
	balance, ok := f.balances[currency]
	if !ok {
		return models.Balance{}, apperr.ErrNotFound
	}
	return models.Balance{UserId: userId, Currency: currency, Balance: balance}, nil
}

func (f *fakeStore) Deposit(userId int64, currency string, amount decimal.Decimal, method string) error {
	f.balances[currency] = f.balances[currency].Add(amount)
	f.transactions = append(f.transactions, models.Transaction{
		UserId:   userId,
		Type:     models.TxTypeDeposit,
		Currency: currency,
		Amount:   amount,
		Method:   method,
	})
	return nil
}

func (f *fakeStore) Send(userId int64, pixKey string, amount decimal.Decimal) error {
	if f.balances["BRL"].LessThan(amount) {
		return apperr.ErrInsufficientFunds
	}
	f.balances["BRL"] = f.balances["BRL"].Sub(amount)
	f.transactions = append(f.transactions, models.Transaction{
		UserId:   userId,
		Type:     models.TxTypeSend,
		Currency: "BRL",
		Amount:   amount,
		Method:   "pix",
		PixKey:   &pixKey,
	})
	return nil
}

func (f *fakeStore) ApplyConversion(record models.ConversionRecord) error {
	if f.balances[record.FromCurrency].LessThan(record.Amount) {
		return apperr.ErrInsufficientFunds
	}
	f.balances[record.FromCurrency] = f.balances[record.FromCurrency].Sub(record.Amount)
	f.balances[record.ToCurrency] = f.balances[record.ToCurrency].Add(record.Result)

	f.nextId++
	record.Id = f.nextId
	f.history = append(f.history, record)
	f.transactions = append(f.transactions, models.Transaction{
		UserId:   record.UserId,
		Type:     models.TxTypeConvert,
		Currency: record.FromCurrency,
		Amount:   record.Amount,
		Method:   "wallet",
	})
	return nil
}

func (f *fakeStore) GetTransactions(userId int64) ([]models.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeStore) GetHistory(userId int64) ([]models.ConversionRecord, error) {
	return f.history, nil
}

func (f *fakeStore) DeleteRecord(userId, recordId int64) error {
	for i, record := range f.history {
		if record.Id == recordId {
			f.history = append(f.history[:i], f.history[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

// fakeWatchlist — watchlist в памяти
type fakeWatchlist struct {
	entries []models.WatchlistEntry
	nextId  int64
}

func (f *fakeWatchlist) Create(entry models.WatchlistEntry) (int64, error) {
	for _, e := range f.entries {
		if e.UserId == entry.UserId && e.FromCurrency == entry.FromCurrency && e.ToCurrency == entry.ToCurrency {
			return 0, apperr.ErrPairExists
		}
	}
	f.nextId++
	entry.Id = f.nextId
	f.entries = append(f.entries, entry)
	return entry.Id, nil
}

func (f *fakeWatchlist) List(userId int64) ([]models.WatchlistEntry, error) {
	return f.entries, nil
}

func (f *fakeWatchlist) ListAlertEnabled() ([]models.WatchlistEntry, error) {
	var out []models.WatchlistEntry
	for _, e := range f.entries {
		if e.AlertEnabled && e.AlertRate != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWatchlist) Update(userId, id int64, input models.WatchlistUpdateInput) error {
	for i := range f.entries {
		if f.entries[i].Id == id {
			if input.AlertEnabled != nil {
				f.entries[i].AlertEnabled = *input.AlertEnabled
				f.entries[i].Triggered = false
			}
			if input.AlertRate != nil {
				f.entries[i].AlertRate = input.AlertRate
				f.entries[i].Triggered = false
			}
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeWatchlist) SetTriggered(id int64, triggered bool) error {
	for i := range f.entries {
		if f.entries[i].Id == id {
			f.entries[i].Triggered = triggered
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeWatchlist) Delete(userId, id int64) error {
	for i := range f.entries {
		if f.entries[i].Id == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

// fakeUsers подменяет только нужный в тестах метод
type fakeUsers struct {
	repository.Authorization
}

func (f *fakeUsers) GetUserById(id int64) (models.User, error) {
	return models.User{Id: id, Email: "user@test.com"}, nil
}

// fakeNotifier копит события, писем не шлёт
type fakeNotifier struct {
	alerts []models.AlertEvent
	resets []string
}

func (f *fakeNotifier) AlertTriggered(email string, event models.AlertEvent) {
	f.alerts = append(f.alerts, event)
}

func (f *fakeNotifier) PasswordReset(email, token string) {
	f.resets = append(f.resets, token)
}
