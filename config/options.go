// Package config loads construction-time options for a feature.Collector
// from YAML. It is a convenience for the driver that assembles a
// collection pipeline; the collector itself never touches the filesystem.
package config

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

// CollectorOptions configures a Collector at construction time.
type CollectorOptions struct {
	// InitialTableCapacity overrides the starting backing-array size for a
	// newly created ScoreTable. Zero means "use the package default".
	InitialTableCapacity int `mapstructure:"initial_table_capacity"`

	// Namespace prefixes telemetry metric names when a Prometheus observer
	// is attached (see the telemetry package).
	Namespace string `mapstructure:"namespace"`

	// LogLevel selects the default logger's minimum level: one of "debug",
	// "info", "warn", "error".
	LogLevel string `mapstructure:"log_level"`
}

// DefaultCollectorOptions returns the zero-value options a Collector
// behaves with when none are supplied.
func DefaultCollectorOptions() CollectorOptions {
	return CollectorOptions{
		InitialTableCapacity: 8,
		LogLevel:             "info",
	}
}

// LoadOptions decodes YAML from r into CollectorOptions. YAML is decoded
// into a loosely-typed map first, then mapstructure.Decode fills the typed
// struct, which lets callers layer partial overrides onto
// DefaultCollectorOptions before decoding.
func LoadOptions(r io.Reader) (CollectorOptions, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return CollectorOptions{}, errors.Wrap(err, "config: read")
	}

	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return CollectorOptions{}, errors.Wrap(err, "config: parse yaml")
	}

	opts := DefaultCollectorOptions()
	if generic == nil {
		return opts, nil
	}

	if err := mapstructure.Decode(generic, &opts); err != nil {
		return CollectorOptions{}, errors.Wrap(err, "config: decode")
	}
	return opts, nil
}
