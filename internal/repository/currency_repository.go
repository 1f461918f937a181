package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
)

// CurrencyRepository provides data access methods for the currency table.
// The currency catalog is reference data: the rate pipeline reads it to
// know which codes to request from providers and to resolve fetched codes
// back to catalog entries.
type CurrencyRepository struct {
	db *sql.DB
}

// NewCurrencyRepository creates a new CurrencyRepository with the provided database connection.
func NewCurrencyRepository(db *sql.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// GetActiveCurrencies retrieves all active currencies, ordered by code.
func (r *CurrencyRepository) GetActiveCurrencies() ([]model.Currency, error) {
	query := `
		SELECT id, code, name, is_active
		FROM currency
		WHERE is_active = TRUE
		ORDER BY code ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency table: %w", err)
	}
	defer rows.Close()

	currencies := []model.Currency{}

	for rows.Next() {
		var c model.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan currency table results: %w", err)
		}
		currencies = append(currencies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency table: %w", err)
	}

	return currencies, nil
}

// GetByCode retrieves an active currency by its code.
// Returns nil, nil if no active currency carries the code: codes a
// provider publishes but the catalog does not track resolve to nothing,
// and callers skip them.
func (r *CurrencyRepository) GetByCode(code string) (*model.Currency, error) {
	query := `
		SELECT id, code, name, is_active
		FROM currency
		WHERE code = ? AND is_active = TRUE
	`

	var c model.Currency
	err := r.db.QueryRow(query, code).Scan(&c.ID, &c.Code, &c.Name, &c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query currency by code %s: %w", code, err)
	}

	return &c, nil
}

// Create inserts a new currency into the catalog.
func (r *CurrencyRepository) Create(code, name string, isActive bool) (model.Currency, error) {
	c := model.Currency{
		ID:       uuid.NewString(),
		Code:     code,
		Name:     name,
		IsActive: isActive,
	}

	query := `
		INSERT INTO currency (id, code, name, is_active)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, c.ID, c.Code, c.Name, c.IsActive); err != nil {
		return model.Currency{}, fmt.Errorf("failed to insert currency %s: %w", code, err)
	}

	return c, nil
}
