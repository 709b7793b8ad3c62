package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/khanhnv2901/headercheck/internal/auditor"
	consts "github.com/khanhnv2901/headercheck/internal/shared/constants"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show effective configuration and audit parameters",
	Long: `Display headercheck configuration information including:
  - Config file in use
  - Output format and log level
  - Serve address and CORS origins
  - Audit request timeout and watch-list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		cfg := appCtx.Config
		out := cmd.OutOrStdout()

		configFile := appCtx.ConfigFile
		if configFile == "" {
			configFile = "(none, using defaults)"
		}

		cors := "(none, same-origin only)"
		if len(cfg.Serve.CORSOrigins) > 0 {
			cors = strings.Join(cfg.Serve.CORSOrigins, ", ")
		}

		printBanner(out)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Version:           %s\n", Version)
		fmt.Fprintf(out, "Platform:          %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Config File:       %s\n", configFile)
		fmt.Fprintf(out, "Env Prefix:        %s_\n", envPrefix)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Defaults:")
		fmt.Fprintf(out, "  Output Format:   %s\n", cfg.Defaults.Output)
		fmt.Fprintf(out, "  Log Level:       %s\n", cfg.Defaults.LogLevel)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Serve:")
		fmt.Fprintf(out, "  Address:         %s\n", cfg.Serve.Addr)
		fmt.Fprintf(out, "  Shutdown:        %s\n", cfg.Serve.ShutdownTimeout)
		fmt.Fprintf(out, "  CORS Origins:    %s\n", cors)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Audit:")
		fmt.Fprintf(out, "  Request Timeout: %s\n", consts.RequestTimeout)
		fmt.Fprintf(out, "  Headers:         %s\n", strings.Join(auditor.HeaderNames(), ", "))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To override defaults, create ~/.headercheck.yaml with e.g.:")
		fmt.Fprintln(out, "  output: json")
		fmt.Fprintln(out, "  serve:")
		fmt.Fprintln(out, "    addr: 0.0.0.0:8080")

		return nil
	},
}
