package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/khanhnv2901/headercheck/internal/auditor"
	"github.com/khanhnv2901/headercheck/internal/output"
	consts "github.com/khanhnv2901/headercheck/internal/shared/constants"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Audit one URL for the five common security headers",
	Long: `Issue a single GET request to the URL and report which of these headers the
final response carries:

  Content-Security-Policy, X-Content-Type-Options, X-Frame-Options,
  Referrer-Policy, Strict-Transport-Security (HTTPS only)

The URL must start with http:// or https://. Redirects are followed and the
request times out after 10 seconds. HTTP error statuses are still audited.`,
	Example: `  headercheck check https://example.com
  headercheck check http://localhost:8000 -o json
  headercheck check https://example.com -o yaml --out result.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	appCtx := getAppContext(cmd)

	format, err := output.ParseFormat(appCtx.Config.Defaults.Output)
	if err != nil {
		return err
	}
	failOnError, _ := cmd.Flags().GetBool("fail-on-error")
	outPath, _ := cmd.Flags().GetString("out")

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, checkErr := appCtx.Auditor.Check(ctx, args[0])
	doc := auditor.Outcome(res, checkErr)

	if outPath == "" {
		if err := output.Render(cmd.OutOrStdout(), doc, format); err != nil {
			return err
		}
	} else {
		if err := writeOutputFile(outPath, doc, format); err != nil {
			return err
		}
		printSavedSummary(cmd.OutOrStdout(), outPath, doc)
	}

	if er, ok := doc.(*auditor.ErrorResult); ok && failOnError {
		return &AuditFailedError{Target: args[0], Result: er}
	}
	return nil
}

// writeOutputFile renders doc into path. The close error is returned so a
// failed flush is not reported as saved.
func writeOutputFile(path string, doc auditor.Document, format output.Format) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	if err := output.Render(f, doc, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

func printSavedSummary(w io.Writer, path string, doc auditor.Document) {
	switch d := doc.(type) {
	case *auditor.CheckResult:
		fmt.Fprintf(w, "%s %s (score %s)\n", colorInfo("Saved:"), path,
			formatScoreWithColor(d.PresentHeaders, d.ApplicableHeaders, d.Score))
	case *auditor.ErrorResult:
		fmt.Fprintf(w, "%s %s (%s)\n", colorInfo("Saved:"), path, colorError("error"))
	}
}

func init() {
	checkCmd.Flags().Bool("fail-on-error", false, "exit non-zero when the URL is invalid or unreachable")
	checkCmd.Flags().String("out", "", "write the rendered result to this file instead of stdout")
}
