package repository

import (
	"github.com/jmoiron/sqlx"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
)

type ConversionPostgres struct {
	db *sqlx.DB
}

func NewConversionPostgres(db *sqlx.DB) *ConversionPostgres {
	return &ConversionPostgres{db: db}
}

func (r *ConversionPostgres) GetHistory(userId int64) ([]models.ConversionRecord, error) {
	var records []models.ConversionRecord
	query := `SELECT id, user_id, from_currency, to_currency, amount, result, rate, fee_rate, created_at
	          FROM conversion_history WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.Select(&records, query, userId)
	return records, err
}

func (r *ConversionPostgres) DeleteRecord(userId, recordId int64) error {
	res, err := r.db.Exec(`DELETE FROM conversion_history WHERE id = $1 AND user_id = $2`, recordId, userId)
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
