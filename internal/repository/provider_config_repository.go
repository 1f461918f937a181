package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

// ProviderConfigRepository provides data access for the provider_config
// table, a small key-value store for provider settings managed at
// runtime (access tokens, endpoint overrides). Sensitive values are
// encrypted by the service layer before they reach this repository.
type ProviderConfigRepository struct {
	db *sql.DB
}

// NewProviderConfigRepository creates a new ProviderConfigRepository with the provided database connection.
func NewProviderConfigRepository(db *sql.DB) *ProviderConfigRepository {
	return &ProviderConfigRepository{db: db}
}

// Get retrieves a configuration value. Returns "", nil when the key has
// never been set.
func (r *ProviderConfigRepository) Get(key string) (string, error) {
	query := `SELECT value FROM provider_config WHERE key = ?`

	var value string
	err := r.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query provider_config key %s: %w", key, err)
	}

	return value, nil
}

// Set stores a configuration value, replacing any previous one.
func (r *ProviderConfigRepository) Set(key, value string) error {
	query := `
		INSERT INTO provider_config (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store provider_config key %s: %w", key, err)
	}

	return nil
}
