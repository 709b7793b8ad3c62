package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/khanhnv2901/headercheck/internal/auditor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "HEADERCHECK"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "headercheck",
	Short:         "Check a URL for common security response headers (only on systems you may test)",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenvErr := godotenv.Load()

		if err := initConfig(); err != nil {
			return err
		}
		applyConfigDefaults(cmd)

		if cliConfig.Defaults.NoColor {
			color.NoColor = true
		}

		logger, err := buildLogger(cliConfig.Defaults.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		if dotenvErr != nil && !errors.Is(dotenvErr, fs.ErrNotExist) {
			logger.Warn("dotenv_load_failed", zap.Error(dotenvErr))
		}

		appCtx := &AppContext{
			Logger:     logger,
			Config:     cliConfig,
			ConfigFile: viper.ConfigFileUsed(),
			Auditor:    auditor.New(auditor.WithLogger(logger.Named("auditor"))),
		}
		storeAppContext(cmd, appCtx)

		logger.Debug("config_loaded",
			zap.String("config_file", appCtx.ConfigFile),
			zap.String("output", cliConfig.Defaults.Output),
			zap.String("log_level", cliConfig.Defaults.LogLevel),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appCtx := globalAppContext; appCtx != nil && appCtx.Logger != nil {
			_ = appCtx.Logger.Sync()
		}
	},
}

// initConfig reads the optional config file and binds HEADERCHECK_* env vars.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".headercheck")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config must exist; the default location is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// buildLogger returns a development logger for debug and a production
// (JSON, stderr) logger otherwise.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorError("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.headercheck.yaml)")
	rootCmd.PersistentFlags().StringVarP(&cliConfig.Defaults.Output, "output", "o", cliConfig.Defaults.Output, "output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&cliConfig.Defaults.LogLevel, "log-level", cliConfig.Defaults.LogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.Defaults.NoColor, "no-color", cliConfig.Defaults.NoColor, "disable colored output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(headersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}
