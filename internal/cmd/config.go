package cmd

import (
	"context"

	"github.com/spf13/viper"
	"github.com/viant/gridpricer"
	"github.com/viant/gridpricer/model"
)

// loadConfig resolves the effective configuration: flags, then environment,
// then the --config resource, then package defaults.
func loadConfig(ctx context.Context, v *viper.Viper) (*gridpricer.Config, error) {
	if URL := v.GetString("config"); URL != "" {
		loaded, err := gridpricer.LoadConfig(ctx, URL)
		if err != nil {
			return nil, err
		}
		setDefaults(v, loaded)
	}
	ret := &gridpricer.Config{
		Mode:        model.Mode(v.GetString("mode")),
		TimeUnit:    v.GetDuration("time_unit"),
		Overhead:    v.GetInt("overhead"),
		Strategy:    v.GetString("strategy"),
		LogLevel:    v.GetString("log_level"),
		EventBuffer: v.GetInt("event_buffer"),
		Tracing: gridpricer.TracingConfig{
			Enabled:        v.GetBool("tracing.enabled"),
			ServiceName:    v.GetString("tracing.service_name"),
			ServiceVersion: v.GetString("tracing.service_version"),
			OutputFile:     v.GetString("tracing.output_file"),
		},
	}
	return ret, nil
}
