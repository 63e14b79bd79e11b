package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
)

type WatchlistPostgres struct {
	db *sqlx.DB
}

func NewWatchlistPostgres(db *sqlx.DB) *WatchlistPostgres {
	return &WatchlistPostgres{db: db}
}

func (r *WatchlistPostgres) Create(entry models.WatchlistEntry) (int64, error) {
	var id int64
	query := `INSERT INTO watchlist (user_id, from_currency, to_currency, alert_enabled, alert_rate)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(query, entry.UserId, entry.FromCurrency, entry.ToCurrency,
		entry.AlertEnabled, entry.AlertRate).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, apperr.ErrPairExists
		}
		return 0, err
	}
	return id, nil
}

func (r *WatchlistPostgres) List(userId int64) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	query := `SELECT id, user_id, from_currency, to_currency, alert_enabled, alert_rate, triggered, created_at
	          FROM watchlist WHERE user_id = $1 ORDER BY created_at`
	err := r.db.Select(&entries, query, userId)
	return entries, err
}

// ListAlertEnabled возвращает записи всех пользователей для фонового опроса
func (r *WatchlistPostgres) ListAlertEnabled() ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	query := `SELECT id, user_id, from_currency, to_currency, alert_enabled, alert_rate, triggered, created_at
	          FROM watchlist WHERE alert_enabled = TRUE AND alert_rate IS NOT NULL`
	err := r.db.Select(&entries, query)
	return entries, err
}

func (r *WatchlistPostgres) Update(userId, id int64, input models.WatchlistUpdateInput) error {
	if input.AlertEnabled != nil {
		if _, err := r.db.Exec(`UPDATE watchlist SET alert_enabled = $1, triggered = FALSE WHERE id = $2 AND user_id = $3`,
			*input.AlertEnabled, id, userId); err != nil {
			return err
		}
	}
	if input.AlertRate != nil {
		// новый порог — алерт взводится заново
		if _, err := r.db.Exec(`UPDATE watchlist SET alert_rate = $1, triggered = FALSE WHERE id = $2 AND user_id = $3`,
			*input.AlertRate, id, userId); err != nil {
			return err
		}
	}
	return nil
}

func (r *WatchlistPostgres) SetTriggered(id int64, triggered bool) error {
	_, err := r.db.Exec(`UPDATE watchlist SET triggered = $1 WHERE id = $2`, triggered, id)
	return err
}

func (r *WatchlistPostgres) Delete(userId, id int64) error {
	res, err := r.db.Exec(`DELETE FROM watchlist WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
