package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/provider"
)

// MockAdapter is a mock implementation of provider.Adapter for testing.
// It returns predefined rates instead of calling external services and
// counts how often it was fetched, which is how tests assert the
// one-fetch-per-provider guarantee.
type MockAdapter struct {
	// MockResult is the result to return from Fetch
	MockResult provider.Result
	// MockError is the error to return from Fetch
	MockError error

	mu sync.Mutex
	// FetchCount tracks how many times Fetch was called
	FetchCount int
	// LastCurrencies records the currency codes of the last Fetch call
	LastCurrencies []string
}

// NewMockAdapter creates a mock adapter returning the given rates, all
// dated today.
func NewMockAdapter(rates map[string]float64) *MockAdapter {
	result := make(provider.Result, len(rates))
	date := time.Now().UTC().Truncate(24 * time.Hour)
	for code, value := range rates {
		result[code] = provider.Rate{Value: value, Date: date}
	}
	return &MockAdapter{MockResult: result}
}

// WithError configures the mock to return the specified error.
func (m *MockAdapter) WithError(err error) *MockAdapter {
	m.MockError = err
	return m
}

// Fetch returns the configured result or error and records the call.
func (m *MockAdapter) Fetch(_ context.Context, currencies []string) (provider.Result, error) {
	m.mu.Lock()
	m.FetchCount++
	m.LastCurrencies = append([]string(nil), currencies...)
	m.mu.Unlock()

	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockResult, nil
}

// Calls returns how many times Fetch was invoked.
func (m *MockAdapter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCount
}

// MockAdapterSource is a mock implementation of service.AdapterSource
// backed by a fixed adapter map.
type MockAdapterSource struct {
	Adapters map[model.ProviderID]provider.Adapter
	// GetError, when set, is returned for every lookup.
	GetError error
}

// NewMockAdapterSource creates an adapter source serving the given adapters.
func NewMockAdapterSource(adapters map[model.ProviderID]provider.Adapter) *MockAdapterSource {
	return &MockAdapterSource{Adapters: adapters}
}

// Get returns the adapter registered for the provider ID.
func (s *MockAdapterSource) Get(id model.ProviderID) (provider.Adapter, error) {
	if s.GetError != nil {
		return nil, s.GetError
	}
	return s.Adapters[id], nil
}

// MockSettings is a mock implementation of provider.Settings with fixed values.
type MockSettings struct {
	Token         string
	MindicadorURL string
	Err           error
}

// BanxicoToken returns the configured token.
func (m *MockSettings) BanxicoToken() (string, error) {
	return m.Token, m.Err
}

// MindicadorBaseURL returns the configured endpoint override.
func (m *MockSettings) MindicadorBaseURL() (string, error) {
	return m.MindicadorURL, m.Err
}
