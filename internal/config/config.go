// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and PITCHMAP_* environment variables on top.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// ProviderBaseURL is the root of the open-data layout served over HTTP.
	ProviderBaseURL string `koanf:"provider_base_url" validate:"omitempty,url"`

	// DataDir, when set, reads the open-data layout from disk instead of HTTP.
	DataDir string `koanf:"data_dir" validate:"required_without=ProviderBaseURL"`

	// CompetitionID and SeasonID scope every match lookup.
	CompetitionID int `koanf:"competition_id" validate:"gt=0"`
	SeasonID      int `koanf:"season_id" validate:"gt=0"`

	// HTTPTimeoutMS bounds a single provider request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms" validate:"gt=0"`

	// MaxMarkerSize and MaxLineWidth are the pass network display bounds.
	MaxMarkerSize float64 `koanf:"max_marker_size" validate:"gt=0"`
	MaxLineWidth  float64 `koanf:"max_line_width" validate:"gt=0"`

	// PitchLength and PitchWidth are the provider's pitch size.
	PitchLength float64 `koanf:"pitch_length" validate:"gt=0"`
	PitchWidth  float64 `koanf:"pitch_width" validate:"gt=0"`

	// RenderScale is the number of pixels per pitch unit.
	RenderScale int `koanf:"render_scale" validate:"gt=0"`

	// GridColumns and GridRows lay out the pass grid.
	GridColumns int `koanf:"grid_columns" validate:"gt=0"`
	GridRows    int `koanf:"grid_rows" validate:"gt=0"`
}

// New creates a Config with defaults for the FIFA World Cup 2022 in the
// StatsBomb open data.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		ProviderBaseURL: "https://raw.githubusercontent.com/statsbomb/open-data/master/data",
		CompetitionID:   43,
		SeasonID:        106,
		HTTPTimeoutMS:   30_000,
		MaxMarkerSize:   1500,
		MaxLineWidth:    10,
		PitchLength:     120,
		PitchWidth:      80,
		RenderScale:     6,
		GridColumns:     4,
		GridRows:        4,
	}
}

// HTTPTimeout returns HTTPTimeoutMS as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}
