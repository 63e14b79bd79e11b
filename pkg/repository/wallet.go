package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
)

type WalletPostgres struct {
	db *sqlx.DB
}

func NewWalletPostgres(db *sqlx.DB) *WalletPostgres {
	return &WalletPostgres{db: db}
}

func (r *WalletPostgres) GetBalances(userId int64) ([]models.Balance, error) {
	var balances []models.Balance
	query := `SELECT id, user_id, currency, balance, updated_at FROM wallet
	          WHERE user_id = $1 ORDER BY currency`
	err := r.db.Select(&balances, query, userId)
	return balances, err
}

func (r *WalletPostgres) GetBalance(userId int64, currency string) (models.Balance, error) {
	var balance models.Balance
	query := `SELECT id, user_id, currency, balance, updated_at FROM wallet
	          WHERE user_id = $1 AND currency = $2`
	err := r.db.Get(&balance, query, userId, currency)
	if errors.Is(err, sql.ErrNoRows) {
		return balance, apperr.ErrNotFound
	}
	return balance, err
}

// Deposit зачисляет средства и пишет транзакцию одной db-транзакцией.
// Строка баланса создаётся при первом пополнении валюты.
func (r *WalletPostgres) Deposit(userId int64, currency string, amount decimal.Decimal, method string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}

	query := `INSERT INTO wallet (user_id, currency, balance) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, currency)
	          DO UPDATE SET balance = wallet.balance + EXCLUDED.balance, updated_at = now()`
	if _, err := tx.Exec(query, userId, currency, amount); err != nil {
		tx.Rollback()
		return translatePqError(err)
	}

	query = `INSERT INTO wallet_transactions (user_id, type, currency, amount, method)
	         VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(query, userId, models.TxTypeDeposit, currency, amount, method); err != nil {
		tx.Rollback()
		return translatePqError(err)
	}

	return tx.Commit()
}

// Send списывает BRL по pix-ключу. Списание условное: balance >= amount
// проверяется в самом UPDATE, гонка read-modify-write исключена.
func (r *WalletPostgres) Send(userId int64, pixKey string, amount decimal.Decimal) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}

	if err := debitTx(tx, userId, "BRL", amount); err != nil {
		tx.Rollback()
		return err
	}

	query := `INSERT INTO wallet_transactions (user_id, type, currency, amount, method, pix_key)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.Exec(query, userId, models.TxTypeSend, "BRL", amount, "pix", pixKey); err != nil {
		tx.Rollback()
		return translatePqError(err)
	}

	return tx.Commit()
}

// ApplyConversion выполняет весь перенос атомарно: списание исходной валюты,
// зачисление целевой, запись истории и транзакции. Любая ошибка откатывает всё.
func (r *WalletPostgres) ApplyConversion(record models.ConversionRecord) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}

	if err := debitTx(tx, record.UserId, record.FromCurrency, record.Amount); err != nil {
		tx.Rollback()
		return err
	}

	query := `INSERT INTO wallet (user_id, currency, balance) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, currency)
	          DO UPDATE SET balance = wallet.balance + EXCLUDED.balance, updated_at = now()`
	if _, err := tx.Exec(query, record.UserId, record.ToCurrency, record.Result); err != nil {
		tx.Rollback()
		return translatePqError(err)
	}

	query = `INSERT INTO conversion_history (user_id, from_currency, to_currency, amount, result, rate, fee_rate)
	         VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.Exec(query, record.UserId, record.FromCurrency, record.ToCurrency,
		record.Amount, record.Result, record.Rate, record.FeeRate); err != nil {
		tx.Rollback()
		return translatePqError(err)
	}

	query = `INSERT INTO wallet_transactions (user_id, type, currency, amount, method)
	         VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(query, record.UserId, models.TxTypeConvert, record.FromCurrency, record.Amount, "wallet"); err != nil {
		tx.Rollback()
		return translatePqError(err)
	}

	return tx.Commit()
}

func (r *WalletPostgres) GetTransactions(userId int64) ([]models.Transaction, error) {
	var transactions []models.Transaction
	query := `SELECT id, user_id, type, currency, amount, method, pix_key, created_at
	          FROM wallet_transactions WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.Select(&transactions, query, userId)
	return transactions, err
}

// debitTx — атомарное условное списание внутри транзакции
func debitTx(tx *sqlx.Tx, userId int64, currency string, amount decimal.Decimal) error {
	res, err := tx.Exec(`UPDATE wallet SET balance = balance - $1, updated_at = now()
	                     WHERE user_id = $2 AND currency = $3 AND balance >= $1`,
		amount, userId, currency)
	if err != nil {
		return translatePqError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrInsufficientFunds
	}
	return nil
}
