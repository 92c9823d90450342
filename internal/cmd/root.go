// Package cmd implements the gridpricer command line interface.
package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/gridpricer"
)

// EnvPrefix prefixes environment variables overriding flags, e.g.
// GRIDPRICER_TIME_UNIT for --time-unit.
const EnvPrefix = "GRIDPRICER"

// Execute runs the root command
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// NewRootCommand creates the command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "gridpricer",
		Short: "Bond pricing scheduler over a local lane and an elastic grid",
		Long: `gridpricer prices a batch of bonds by placing every bond, longest first,
either on the single local lane or on an elastic grid of lanes that pays a
one-time provisioning overhead, and reports the batch completion time.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		initConfig(v)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "YAML config URL (file path or any afs URL)")
	flags.String("log-level", gridpricer.DefaultConfig().LogLevel, "log level: debug, info, warn, error")
	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(newPriceCommand(v))
	rootCmd.AddCommand(newStrategiesCommand())
	return rootCmd
}

func initConfig(v *viper.Viper) {
	setDefaults(v, gridpricer.DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	// GRIDPRICER_TRACING_ENABLED for tracing.enabled
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// setDefaults makes config the fallback for every key not set by a flag or
// an environment variable.
func setDefaults(v *viper.Viper, config *gridpricer.Config) {
	v.SetDefault("mode", string(config.Mode))
	v.SetDefault("time_unit", config.TimeUnit)
	v.SetDefault("overhead", config.Overhead)
	v.SetDefault("strategy", config.Strategy)
	v.SetDefault("log_level", config.LogLevel)
	v.SetDefault("event_buffer", config.EventBuffer)
	v.SetDefault("tracing.enabled", config.Tracing.Enabled)
	v.SetDefault("tracing.service_name", config.Tracing.ServiceName)
	v.SetDefault("tracing.service_version", config.Tracing.ServiceVersion)
	v.SetDefault("tracing.output_file", config.Tracing.OutputFile)
}
