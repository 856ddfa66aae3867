package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 || cfg.App.BaseURL == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Limits.MaxAttempts <= 0 || cfg.Limits.BlockDuration <= 0 {
		return ErrInvalidLimitConfigs
	}

	return nil
}
