package cmd

import (
	"github.com/khanhnv2901/headercheck/internal/auditor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AppContext carries the dependencies built once in PersistentPreRunE.
type AppContext struct {
	Logger     *zap.Logger
	Config     *CLIConfig
	ConfigFile string
	Auditor    *auditor.Auditor
}

var globalAppContext *AppContext

func storeAppContext(cmd *cobra.Command, appCtx *AppContext) {
	globalAppContext = appCtx
}

// getAppContext returns the stored context, or a default one for commands
// invoked without the root pre-run (tests call RunE directly).
func getAppContext(cmd *cobra.Command) *AppContext {
	if globalAppContext == nil {
		globalAppContext = &AppContext{
			Logger:  zap.NewNop(),
			Config:  cliConfig,
			Auditor: auditor.New(),
		}
	}
	return globalAppContext
}
