package service

import (
	"fmt"

	"github.com/fernet/fernet-go"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/config"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
)

// Keys in the provider_config table.
const (
	configKeyBanxicoToken  = "banxico_token"
	configKeyMindicadorURL = "mindicador_api_url"
)

// ProviderConfigService manages runtime provider settings. Values set
// through the environment always win; otherwise the provider_config
// table is consulted, with the banxico token stored fernet-encrypted so
// a database copy does not leak it.
//
// It satisfies provider.Settings, so the adapter registry reads tokens
// through it at construction time: a token saved through the API takes
// effect on the next refresh without a restart.
type ProviderConfigService struct {
	repo *repository.ProviderConfigRepository
	cfg  config.ProviderConfig
	keys []*fernet.Key
}

// NewProviderConfigService creates a new ProviderConfigService. The
// fernet key from the configuration is decoded once here; an invalid key
// fails startup rather than every later token operation.
func NewProviderConfigService(repo *repository.ProviderConfigRepository, cfg config.ProviderConfig) (*ProviderConfigService, error) {
	s := &ProviderConfigService{repo: repo, cfg: cfg}

	if cfg.FernetKey != "" {
		keys, err := fernet.DecodeKeys(cfg.FernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid FERNET_KEY: %w", err)
		}
		s.keys = keys
	}

	return s, nil
}

// BanxicoToken returns the Bank of Mexico SIE API token, or "" when none
// is configured. Environment first, then the encrypted stored value.
func (s *ProviderConfigService) BanxicoToken() (string, error) {
	if s.cfg.BanxicoToken != "" {
		return s.cfg.BanxicoToken, nil
	}

	stored, err := s.repo.Get(configKeyBanxicoToken)
	if err != nil {
		return "", err
	}
	if stored == "" {
		return "", nil
	}

	if len(s.keys) == 0 {
		return "", fmt.Errorf("a banxico token is stored but FERNET_KEY is not set, so it cannot be decrypted")
	}

	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, s.keys)
	if plain == nil {
		return "", fmt.Errorf("stored banxico token failed decryption; was FERNET_KEY rotated without re-saving the token?")
	}

	return string(plain), nil
}

// SetBanxicoToken encrypts and stores the Bank of Mexico SIE API token.
func (s *ProviderConfigService) SetBanxicoToken(token string) error {
	if len(s.keys) == 0 {
		return fmt.Errorf("FERNET_KEY must be set before provider tokens can be stored")
	}

	encrypted, err := fernet.EncryptAndSign([]byte(token), s.keys[0])
	if err != nil {
		return fmt.Errorf("failed to encrypt banxico token: %w", err)
	}

	return s.repo.Set(configKeyBanxicoToken, string(encrypted))
}

// MindicadorBaseURL returns the mindicador.cl endpoint override, or ""
// when the adapter should use its default endpoint.
func (s *ProviderConfigService) MindicadorBaseURL() (string, error) {
	if s.cfg.MindicadorBaseURL != "" {
		return s.cfg.MindicadorBaseURL, nil
	}
	return s.repo.Get(configKeyMindicadorURL)
}

// SetMindicadorBaseURL stores the mindicador.cl endpoint override. Not a
// secret, so it is stored in the clear.
func (s *ProviderConfigService) SetMindicadorBaseURL(url string) error {
	return s.repo.Set(configKeyMindicadorURL, url)
}
