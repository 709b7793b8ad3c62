package cmd

import (
	"net/http"
	"testing"

	"github.com/fatih/color"
	"github.com/khanhnv2901/headercheck/internal/auditor"
	"go.uber.org/zap/zaptest"
)

// setupTestAppContext installs an AppContext backed by the shared cliConfig
// and restores both when the test finishes.
func setupTestAppContext(t *testing.T) *AppContext {
	t.Helper()

	original := globalAppContext
	savedConfig := *cliConfig
	logger := zaptest.NewLogger(t)

	appCtx := &AppContext{
		Logger:  logger,
		Config:  cliConfig,
		Auditor: auditor.New(auditor.WithLogger(logger)),
	}
	globalAppContext = appCtx

	t.Cleanup(func() {
		globalAppContext = original
		*cliConfig = savedConfig
	})
	return appCtx
}

func disableColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})
}

func headerHandler(headers map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(http.StatusOK)
	}
}
