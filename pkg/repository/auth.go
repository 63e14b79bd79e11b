package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
)

type AuthPostgres struct {
	db *sqlx.DB
}

func NewAuthPostgres(db *sqlx.DB) *AuthPostgres {
	return &AuthPostgres{db: db}
}

// CreateUser создаёт пользователя вместе с профилем в одной транзакции
func (r *AuthPostgres) CreateUser(user models.User, profile models.Profile) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}

	var id int64
	query := `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`
	if err := tx.QueryRow(query, user.Email, user.PasswordHash).Scan(&id); err != nil {
		tx.Rollback()
		return 0, err
	}

	query = `INSERT INTO profiles (user_id, display_name, default_from_currency, default_to_currency)
	         VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(query, id, profile.DisplayName, profile.DefaultFromCurrency, profile.DefaultToCurrency); err != nil {
		tx.Rollback()
		return 0, err
	}

	return id, tx.Commit()
}

func (r *AuthPostgres) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return user, apperr.ErrNotFound
	}
	return user, err
}

func (r *AuthPostgres) GetUserById(id int64) (models.User, error) {
	var user models.User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return user, apperr.ErrNotFound
	}
	return user, err
}

func (r *AuthPostgres) UpdatePassword(userId int64, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userId)
	return err
}

func (r *AuthPostgres) GetProfile(userId int64) (models.Profile, error) {
	var profile models.Profile
	query := `SELECT user_id, display_name, default_from_currency, default_to_currency
	          FROM profiles WHERE user_id = $1`
	err := r.db.Get(&profile, query, userId)
	if errors.Is(err, sql.ErrNoRows) {
		return profile, apperr.ErrNotFound
	}
	return profile, err
}

// UpdateProfile обновляет только переданные поля
func (r *AuthPostgres) UpdateProfile(userId int64, input models.UpdateProfileInput) error {
	if input.DisplayName != nil {
		if _, err := r.db.Exec(`UPDATE profiles SET display_name = $1 WHERE user_id = $2`, *input.DisplayName, userId); err != nil {
			return err
		}
	}
	if input.DefaultFromCurrency != nil {
		if _, err := r.db.Exec(`UPDATE profiles SET default_from_currency = $1 WHERE user_id = $2`, *input.DefaultFromCurrency, userId); err != nil {
			return err
		}
	}
	if input.DefaultToCurrency != nil {
		if _, err := r.db.Exec(`UPDATE profiles SET default_to_currency = $1 WHERE user_id = $2`, *input.DefaultToCurrency, userId); err != nil {
			return err
		}
	}
	return nil
}

func (r *AuthPostgres) SaveRefreshToken(token models.RefreshToken) error {
	_, err := r.db.Exec(`INSERT INTO refresh_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token.Token, token.UserId, token.ExpiresAt)
	return err
}

func (r *AuthPostgres) GetRefreshToken(token string) (models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.Get(&rt, `SELECT token, user_id, expires_at FROM refresh_tokens WHERE token = $1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return rt, apperr.ErrNotFound
	}
	return rt, err
}

func (r *AuthPostgres) DeleteRefreshToken(token string) error {
	_, err := r.db.Exec(`DELETE FROM refresh_tokens WHERE token = $1`, token)
	return err
}

func (r *AuthPostgres) SavePasswordReset(reset models.PasswordReset) error {
	_, err := r.db.Exec(`INSERT INTO password_resets (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		reset.Token, reset.UserId, reset.ExpiresAt)
	return err
}

func (r *AuthPostgres) GetPasswordReset(token string) (models.PasswordReset, error) {
	var pr models.PasswordReset
	err := r.db.Get(&pr, `SELECT token, user_id, expires_at FROM password_resets WHERE token = $1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return pr, apperr.ErrNotFound
	}
	return pr, err
}

func (r *AuthPostgres) DeletePasswordReset(token string) error {
	_, err := r.db.Exec(`DELETE FROM password_resets WHERE token = $1`, token)
	return err
}
