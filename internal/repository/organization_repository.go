package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
)

// OrganizationRepository provides data access methods for the
// organization table: the entities whose books need exchange rates,
// each with a base currency, provider selection and refresh cadence.
type OrganizationRepository struct {
	db *sql.DB
}

// NewOrganizationRepository creates a new OrganizationRepository with the provided database connection.
func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

const organizationColumns = `id, name, country_code, base_currency, provider, interval_unit, next_execution_date`

func scanOrganization(scan func(dest ...any) error) (model.Organization, error) {
	var o model.Organization
	var countryCode, provider, nextExecution sql.NullString

	err := scan(&o.ID, &o.Name, &countryCode, &o.BaseCurrency, &provider, &o.IntervalUnit, &nextExecution)
	if err != nil {
		return model.Organization{}, err
	}

	o.CountryCode = countryCode.String
	o.Provider = model.ProviderID(provider.String)
	if nextExecution.Valid && nextExecution.String != "" {
		date, err := ParseTime(nextExecution.String)
		if err != nil {
			return model.Organization{}, err
		}
		o.NextExecutionDate = &date
	}

	return o, nil
}

// GetAll retrieves all organizations, ordered by name.
func (r *OrganizationRepository) GetAll() ([]model.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organization ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query organization table: %w", err)
	}
	defer rows.Close()

	organizations := []model.Organization{}

	for rows.Next() {
		o, err := scanOrganization(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization table results: %w", err)
		}
		organizations = append(organizations, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organization table: %w", err)
	}

	return organizations, nil
}

// GetByID retrieves one organization.
// Returns apperrors.ErrOrganizationNotFound if no organization carries the ID.
func (r *OrganizationRepository) GetByID(id string) (model.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organization WHERE id = ?`

	o, err := scanOrganization(r.db.QueryRow(query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Organization{}, apperrors.ErrOrganizationNotFound
	}
	if err != nil {
		return model.Organization{}, fmt.Errorf("failed to query organization %s: %w", id, err)
	}

	return o, nil
}

// GetDue retrieves organizations whose next execution date has arrived,
// i.e. next_execution_date <= asOf. Organizations without a scheduled
// date (manual cadence) are never due.
func (r *OrganizationRepository) GetDue(asOf time.Time) ([]model.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organization
		WHERE next_execution_date IS NOT NULL AND next_execution_date <= ?
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query, asOf.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query due organizations: %w", err)
	}
	defer rows.Close()

	organizations := []model.Organization{}

	for rows.Next() {
		o, err := scanOrganization(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization table results: %w", err)
		}
		organizations = append(organizations, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due organizations: %w", err)
	}

	return organizations, nil
}

// Create inserts a new organization.
func (r *OrganizationRepository) Create(o model.Organization) (model.Organization, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	query := `
		INSERT INTO organization (id, name, country_code, base_currency, provider, interval_unit, next_execution_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var nextExecution any
	if o.NextExecutionDate != nil {
		nextExecution = o.NextExecutionDate.Format("2006-01-02")
	}

	_, err := r.db.Exec(query, o.ID, o.Name, nullIfEmpty(o.CountryCode), o.BaseCurrency,
		nullIfEmpty(string(o.Provider)), o.IntervalUnit, nextExecution)
	if err != nil {
		return model.Organization{}, fmt.Errorf("failed to insert organization %s: %w", o.Name, err)
	}

	return o, nil
}

// UpdateSettings updates the rate-related settings of an organization:
// base currency, provider and refresh cadence.
func (r *OrganizationRepository) UpdateSettings(id string, baseCurrency string, provider model.ProviderID, intervalUnit string) error {
	query := `
		UPDATE organization
		SET base_currency = ?, provider = ?, interval_unit = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, baseCurrency, nullIfEmpty(string(provider)), intervalUnit, id)
	if err != nil {
		return fmt.Errorf("failed to update organization %s settings: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for organization %s: %w", id, err)
	}
	if affected == 0 {
		return apperrors.ErrOrganizationNotFound
	}

	return nil
}

// UpdateNextExecution sets or clears the next scheduled refresh date.
// A nil date clears it, which is how the manual cadence is represented.
func (r *OrganizationRepository) UpdateNextExecution(id string, next *time.Time) error {
	query := `UPDATE organization SET next_execution_date = ? WHERE id = ?`

	var value any
	if next != nil {
		value = next.Format("2006-01-02")
	}

	result, err := r.db.Exec(query, value, id)
	if err != nil {
		return fmt.Errorf("failed to update next execution date for organization %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for organization %s: %w", id, err)
	}
	if affected == 0 {
		return apperrors.ErrOrganizationNotFound
	}

	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
