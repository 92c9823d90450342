package gridpricer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/viant/afs/storage"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/messaging/memory"
	"github.com/viant/gridpricer/service/meta"
	"github.com/viant/gridpricer/service/pricing"
	"github.com/viant/gridpricer/service/strategy"
	"go.uber.org/multierr"
)

// Config is a serialisable representation of the scheduler configuration. It
// can be populated from YAML, JSON, flags or environment variables.
type Config struct {
	Mode     model.Mode    `json:"mode" yaml:"mode"`
	TimeUnit time.Duration `json:"timeUnit" yaml:"timeUnit"`
	Overhead int           `json:"overhead" yaml:"overhead"`
	Strategy string        `json:"strategy" yaml:"strategy"`
	LogLevel string        `json:"logLevel" yaml:"logLevel"`

	// EventBuffer is the number of priced events queued ahead of the listener
	EventBuffer int           `json:"eventBuffer" yaml:"eventBuffer"`
	Tracing     TracingConfig `json:"tracing" yaml:"tracing"`
}

// TracingConfig controls the stdout OpenTelemetry exporter
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	OutputFile     string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with package defaults. Callers may
// modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Mode:        model.ModeAccelerated,
		TimeUnit:    pricing.DefaultTimeUnit,
		Overhead:    pricing.DefaultOverhead,
		Strategy:    strategy.GreedyName,
		LogLevel:    log.InfoLevel.String(),
		EventBuffer: memory.DefaultConfig().QueueBuffer,
		Tracing: TracingConfig{
			ServiceName:    "gridpricer",
			ServiceVersion: "dev",
		},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var err error
	if _, modeErr := model.ParseMode(string(c.Mode)); modeErr != nil {
		err = multierr.Append(err, modeErr)
	}
	if c.TimeUnit <= 0 {
		err = multierr.Append(err, errors.Errorf("timeUnit must be > 0, got %v", c.TimeUnit))
	}
	if c.Overhead < 0 {
		err = multierr.Append(err, errors.Errorf("overhead must be >= 0, got %v", c.Overhead))
	}
	if c.EventBuffer <= 0 {
		err = multierr.Append(err, errors.Errorf("eventBuffer must be > 0, got %v", c.EventBuffer))
	}
	if _, lookupErr := strategy.Lookup(c.Strategy); lookupErr != nil {
		err = multierr.Append(err, lookupErr)
	}
	if _, levelErr := log.ParseLevel(c.LogLevel); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}
	return err
}

// LoadConfig reads a YAML config from any afs location (file, mem, embed,
// cloud storage) over DefaultConfig and validates it. ${env.KEY} expressions
// are expanded before decoding.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(nil).Load(ctx, URL, ret, options...); err != nil {
		return nil, err
	}
	mode, err := model.ParseMode(string(ret.Mode))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %v", URL)
	}
	ret.Mode = mode
	if err = ret.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %v", URL)
	}
	log.WithFields(log.Fields{"url": URL, "mode": ret.Mode, "strategy": ret.Strategy}).Info("loaded config")
	return ret, nil
}
