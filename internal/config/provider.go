// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions names the explicit inputs of one configuration load.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set
		// (the --config flag). Platform lookup is skipped entirely.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Provider loads configuration from explicit options. Commands depend on
	// this interface so tests can substitute a canned configuration.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	fileProvider struct{}
)

// NewProvider creates the file-backed configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
