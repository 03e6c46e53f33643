package config

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/yigithanyigit/vmaf/feature"
	"github.com/yigithanyigit/vmaf/internal/vlog"
	"github.com/yigithanyigit/vmaf/telemetry"
)

// Build assembles a ready-to-use Collector and its Prometheus observer from
// CollectorOptions: it parses LogLevel into a vlog.Logger, feeds Namespace
// into the telemetry registerer, and feeds InitialTableCapacity into every
// ScoreTable the Collector creates. This is the one place those three
// fields are consumed; LoadOptions itself only decodes YAML.
func Build(opts CollectorOptions) (*feature.Collector, *telemetry.Metrics, error) {
	level, err := parseLogLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := vlog.New(level).Module("feature")

	metrics := telemetry.New(telemetry.WithNamespace(opts.Namespace))

	c := feature.New(
		feature.WithLogger(logger),
		feature.WithObserver(metrics),
		feature.WithInitialTableCapacity(opts.InitialTableCapacity),
	)
	return c, metrics, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Wrapf(err, "config: invalid log_level %q", s)
	}
	return level, nil
}
