package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"cambio_wallet_back/pkg/apperr"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
}

func NewPostgresDB(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres",
		fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Username, cfg.DBName, cfg.Password, cfg.SSLMode))
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    email         TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profiles (
    user_id               BIGINT PRIMARY KEY REFERENCES users (id),
    display_name          TEXT NOT NULL DEFAULT '',
    default_from_currency VARCHAR(3) NOT NULL DEFAULT 'USD',
    default_to_currency   VARCHAR(3) NOT NULL DEFAULT 'BRL'
);

CREATE TABLE IF NOT EXISTS wallet (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL REFERENCES users (id),
    currency   VARCHAR(3) NOT NULL,
    balance    NUMERIC(20, 8) NOT NULL DEFAULT 0 CHECK (balance >= 0),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, currency)
);

CREATE TABLE IF NOT EXISTS wallet_transactions (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL REFERENCES users (id),
    type       TEXT NOT NULL,
    currency   VARCHAR(3) NOT NULL,
    amount     NUMERIC(20, 8) NOT NULL,
    method     TEXT NOT NULL DEFAULT '',
    pix_key    TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS conversion_history (
    id            BIGSERIAL PRIMARY KEY,
    user_id       BIGINT NOT NULL REFERENCES users (id),
    from_currency VARCHAR(3) NOT NULL,
    to_currency   VARCHAR(3) NOT NULL,
    amount        NUMERIC(20, 8) NOT NULL,
    result        NUMERIC(20, 8) NOT NULL,
    rate          NUMERIC(20, 8) NOT NULL,
    fee_rate      NUMERIC(8, 6) NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS watchlist (
    id            BIGSERIAL PRIMARY KEY,
    user_id       BIGINT NOT NULL REFERENCES users (id),
    from_currency VARCHAR(3) NOT NULL,
    to_currency   VARCHAR(3) NOT NULL,
    alert_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    alert_rate    NUMERIC(20, 8),
    triggered     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, from_currency, to_currency)
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
    token      TEXT PRIMARY KEY,
    user_id    BIGINT NOT NULL REFERENCES users (id),
    expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS password_resets (
    token      TEXT PRIMARY KEY,
    user_id    BIGINT NOT NULL REFERENCES users (id),
    expires_at TIMESTAMPTZ NOT NULL
);
`

// InitSchema создаёт таблицы, если их ещё нет
func InitSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "не удалось создать схему базы данных")
	}
	return nil
}

// translatePqError переводит коды ошибок postgres в доменные ошибки
func translatePqError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return errors.Wrap(apperr.ErrConcurrentUpdate, pqErr.Message)
		case "23514": // check_violation: balance >= 0
			return errors.Wrap(apperr.ErrInsufficientFunds, pqErr.Message)
		}
	}
	return err
}
