package config

import "time"

// Built-in defaults applied after merging all sources. Deployments normally
// override these; tests and local runs rely on them.
const (
	defaultTokenIssuer     = "mintid"
	defaultTokenDuration   = time.Hour
	defaultRequestTimeout  = 30 * time.Second
	defaultRefreshInterval = 5 * time.Minute
	defaultLoginRate       = 30
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration <= 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.LoginRatePerMinute <= 0 {
		cfg.App.LoginRatePerMinute = defaultLoginRate
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.RefreshInterval <= 0 {
		cfg.Workers.RefreshInterval = defaultRefreshInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by all binaries. Binary-specific requirements (a server
// needs a DSN, a client needs a backend address) are enforced by the
// respective view constructors.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.OperatorUsername != "" && cfg.App.OperatorEmail == "" {
		return ErrInvalidOperatorConfigs
	}

	return nil
}

// ValidateServer enforces the settings the backend cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.RefreshInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
