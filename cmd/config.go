package cmd

import (
	"time"

	consts "github.com/khanhnv2901/headercheck/internal/shared/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultOutputFormat = "text"
	defaultLogLevel     = "info"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Defaults DefaultValues
	Serve    ServeRuntimeConfig
}

// DefaultValues apply to every command.
type DefaultValues struct {
	Output   string
	LogLevel string
	NoColor  bool
}

// ServeRuntimeConfig consolidates flag-driven settings for the serve command.
type ServeRuntimeConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type defaultOverrides struct {
	Output          string
	LogLevel        string
	NoColor         *bool
	ServeAddr       string
	ShutdownTimeout *time.Duration
	CORSOrigins     []string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Defaults: DefaultValues{
			Output:   defaultOutputFormat,
			LogLevel: defaultLogLevel,
			NoColor:  false,
		},
		Serve: ServeRuntimeConfig{
			Addr:            consts.DefaultServeAddr,
			ShutdownTimeout: consts.DefaultShutdownTimeout,
			CORSOrigins:     []string{},
		},
	}
}

// loadDefaultOverrides reads config file and HEADERCHECK_* env values.
func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("output") {
		overrides.Output = viper.GetString("output")
	}

	if viper.IsSet("log.level") {
		overrides.LogLevel = viper.GetString("log.level")
	}

	if viper.IsSet("no_color") {
		val := viper.GetBool("no_color")
		overrides.NoColor = &val
	}

	if viper.IsSet("serve.addr") {
		overrides.ServeAddr = viper.GetString("serve.addr")
	}

	if viper.IsSet("serve.shutdown_timeout") {
		val := viper.GetDuration("serve.shutdown_timeout")
		overrides.ShutdownTimeout = &val
	}

	if viper.IsSet("serve.cors_origins") {
		overrides.CORSOrigins = viper.GetStringSlice("serve.cors_origins")
	}

	return overrides
}

// applyConfigDefaults merges config file defaults into the runtime config when the user
// did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	overrides := loadDefaultOverrides()
	persistent := cmd.Root().PersistentFlags()

	if overrides.Output != "" {
		applyStringDefault(persistent, "output", overrides.Output, func(v string) {
			cliConfig.Defaults.Output = v
		})
	}

	if overrides.LogLevel != "" {
		applyStringDefault(persistent, "log-level", overrides.LogLevel, func(v string) {
			cliConfig.Defaults.LogLevel = v
		})
	}

	if overrides.NoColor != nil {
		applyBoolDefault(persistent, "no-color", *overrides.NoColor, func(v bool) {
			cliConfig.Defaults.NoColor = v
		})
	}

	if overrides.ServeAddr != "" {
		applyStringDefault(serveCmd.Flags(), "addr", overrides.ServeAddr, func(v string) {
			cliConfig.Serve.Addr = v
		})
	}

	if overrides.ShutdownTimeout != nil && *overrides.ShutdownTimeout > 0 {
		applyDurationDefault(serveCmd.Flags(), "shutdown-timeout", *overrides.ShutdownTimeout, func(v time.Duration) {
			cliConfig.Serve.ShutdownTimeout = v
		})
	}

	if len(overrides.CORSOrigins) > 0 {
		applyStringSliceDefault(serveCmd.Flags(), "cors-origins", overrides.CORSOrigins, func(v []string) {
			cliConfig.Serve.CORSOrigins = v
		})
	}
}

func applyStringDefault(flags *pflag.FlagSet, name, value string, setter func(string)) {
	if flagChanged(flags, name) || setter == nil {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flagChanged(flags, name) || setter == nil {
		return
	}
	setter(value)
}

func applyDurationDefault(flags *pflag.FlagSet, name string, value time.Duration, setter func(time.Duration)) {
	if flagChanged(flags, name) || setter == nil {
		return
	}
	setter(value)
}

func applyStringSliceDefault(flags *pflag.FlagSet, name string, value []string, setter func([]string)) {
	if flagChanged(flags, name) || setter == nil {
		return
	}
	setter(append([]string(nil), value...))
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	flag := flags.Lookup(name)
	return flag != nil && flag.Changed
}
