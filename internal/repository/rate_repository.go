package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
)

// RateRepository provides data access methods for the currency_rate
// table: one record per (currency, organization, date), holding the rate
// of that currency relative to the organization's base currency.
type RateRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewRateRepository creates a new RateRepository with the provided database connection.
func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside
// the given transaction. The refresh pipeline wraps each organization's
// upserts in one transaction so the uniqueness invariant survives
// concurrent callers.
func (r *RateRepository) WithTx(tx *sql.Tx) *RateRepository {
	return &RateRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *RateRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Find retrieves the rate record for one (currency, organization, date)
// triple. Returns nil, nil if no record exists yet.
func (r *RateRepository) Find(ctx context.Context, currencyID, organizationID string, date time.Time) (*model.RateRecord, error) {
	query := `
		SELECT id, currency_id, organization_id, date, rate
		FROM currency_rate
		WHERE currency_id = ? AND organization_id = ? AND date = ?
	`

	var record model.RateRecord
	var dateStr string
	err := r.getQuerier().QueryRowContext(ctx, query, currencyID, organizationID, date.Format("2006-01-02")).
		Scan(&record.ID, &record.CurrencyID, &record.OrganizationID, &dateStr, &record.Rate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query currency_rate table: %w", err)
	}

	record.Date, err = ParseTime(dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate date: %w", err)
	}

	return &record, nil
}

// Create inserts a new rate record for a (currency, organization, date)
// triple not observed before.
func (r *RateRepository) Create(ctx context.Context, currencyID, organizationID string, date time.Time, rate float64) (model.RateRecord, error) {
	record := model.RateRecord{
		ID:             uuid.NewString(),
		CurrencyID:     currencyID,
		OrganizationID: organizationID,
		Date:           date,
		Rate:           rate,
	}

	query := `
		INSERT INTO currency_rate (id, currency_id, organization_id, date, rate)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		record.ID, record.CurrencyID, record.OrganizationID, record.Date.Format("2006-01-02"), record.Rate)
	if err != nil {
		return model.RateRecord{}, fmt.Errorf("failed to insert currency rate: %w", err)
	}

	return record, nil
}

// UpdateValue overwrites the rate value of an existing record. Used by
// the upsert path when a (currency, organization, date) triple is
// observed again: last write wins.
func (r *RateRepository) UpdateValue(ctx context.Context, id string, rate float64) error {
	query := `UPDATE currency_rate SET rate = ? WHERE id = ?`

	if _, err := r.getQuerier().ExecContext(ctx, query, rate, id); err != nil {
		return fmt.Errorf("failed to update currency rate %s: %w", id, err)
	}

	return nil
}

// RateFilter narrows GetRates. Zero values mean "no constraint".
type RateFilter struct {
	OrganizationID string
	CurrencyCode   string
	StartDate      time.Time
	EndDate        time.Time
}

// GetRates retrieves rate records matching the filter, joined with the
// currency table so results carry the currency code, newest first.
func (r *RateRepository) GetRates(ctx context.Context, filter RateFilter) ([]model.RateRecord, error) {
	query := `
		SELECT cr.id, cr.currency_id, c.code, cr.organization_id, cr.date, cr.rate
		FROM currency_rate cr
		JOIN currency c ON c.id = cr.currency_id
		WHERE 1=1
	`

	var args []any

	if filter.OrganizationID != "" {
		query += ` AND cr.organization_id = ?`
		args = append(args, filter.OrganizationID)
	}
	if filter.CurrencyCode != "" {
		query += ` AND c.code = ?`
		args = append(args, filter.CurrencyCode)
	}
	if !filter.StartDate.IsZero() {
		query += ` AND cr.date >= ?`
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		query += ` AND cr.date <= ?`
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}

	query += ` ORDER BY cr.date DESC, c.code ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency_rate table: %w", err)
	}
	defer rows.Close()

	records := []model.RateRecord{}

	for rows.Next() {
		var record model.RateRecord
		var dateStr string

		err := rows.Scan(&record.ID, &record.CurrencyID, &record.CurrencyCode,
			&record.OrganizationID, &dateStr, &record.Rate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency_rate table results: %w", err)
		}

		record.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate date: %w", err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency_rate table: %w", err)
	}

	return records, nil
}
