package provider

import (
	"fmt"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
)

// Settings supplies the per-provider configuration that can change at
// runtime (tokens and base URLs managed through the provider-config API).
// Static tuning such as timeouts comes from Options instead.
type Settings interface {
	// BanxicoToken returns the configured SIE API token, or "" when the
	// banxico provider has not been configured.
	BanxicoToken() (string, error)

	// MindicadorBaseURL returns the configured mindicador endpoint, or ""
	// to use the public default.
	MindicadorBaseURL() (string, error)
}

// Options carries the static adapter tuning knobs.
type Options struct {
	// FetchTimeout bounds every outbound provider request.
	FetchTimeout time.Duration

	// BCRPLookbackDays bounds the Bank of Peru publication-gap search.
	BCRPLookbackDays int
}

// Registry resolves provider identifiers to adapters. The mapping is an
// explicit, closed switch over the supported set: an identifier outside
// it fails loudly instead of being looked up dynamically. Adapters that
// depend on runtime settings are constructed per call so that a token
// configured through the API takes effect on the next refresh.
type Registry struct {
	settings Settings
	opts     Options
}

// NewRegistry creates a registry over the given settings source.
func NewRegistry(settings Settings, opts Options) *Registry {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Registry{settings: settings, opts: opts}
}

// Get returns the adapter for the given provider identifier.
//
// Returns apperrors.ErrProviderUnknown for identifiers outside the
// supported set and apperrors.ErrProviderNotConfigured for providers
// whose required configuration (the Banxico access token) is missing.
func (r *Registry) Get(id model.ProviderID) (Adapter, error) {
	switch id {
	case model.ProviderECB:
		return NewECBAdapter(r.opts.FetchTimeout), nil
	case model.ProviderFTA:
		return NewFTAAdapter(r.opts.FetchTimeout), nil
	case model.ProviderBanxico:
		token, err := r.settings.BanxicoToken()
		if err != nil {
			return nil, fmt.Errorf("banxico: %w", err)
		}
		if token == "" {
			return nil, fmt.Errorf("banxico: access token is not set: %w", apperrors.ErrProviderNotConfigured)
		}
		return NewBanxicoAdapter(token, r.opts.FetchTimeout), nil
	case model.ProviderBOC:
		return NewBOCAdapter(r.opts.FetchTimeout), nil
	case model.ProviderXE:
		return NewXEAdapter(r.opts.FetchTimeout), nil
	case model.ProviderBNR:
		return NewBNRAdapter(r.opts.FetchTimeout), nil
	case model.ProviderMindicador:
		baseURL, err := r.settings.MindicadorBaseURL()
		if err != nil {
			return nil, fmt.Errorf("mindicador: %w", err)
		}
		return NewMindicadorAdapter(baseURL, r.opts.FetchTimeout), nil
	case model.ProviderBCRP:
		return NewBCRPAdapter(r.opts.BCRPLookbackDays, r.opts.FetchTimeout), nil
	case model.ProviderCBUAE:
		return NewCBUAEAdapter(r.opts.FetchTimeout), nil
	case model.ProviderCBEGY:
		return NewCBEGYAdapter(r.opts.FetchTimeout), nil
	case model.ProviderNBP:
		return NewNBPAdapter(r.opts.FetchTimeout), nil
	default:
		return nil, fmt.Errorf("%q: %w", string(id), apperrors.ErrProviderUnknown)
	}
}
