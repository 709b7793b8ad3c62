package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/khanhnv2901/headercheck/internal/auditor"
	"github.com/khanhnv2901/headercheck/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "List the security headers that check looks for",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		format, err := output.ParseFormat(appCtx.Config.Defaults.Output)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		specs := auditor.Headers()

		switch format {
		case output.FormatJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(specs)
		case output.FormatYAML:
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(specs); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return enc.Close()
		}

		for i, spec := range specs {
			scope := ""
			if spec.HTTPSOnly {
				scope = " " + colorWarn("(HTTPS only)")
			}
			fmt.Fprintf(out, "%d. %s%s\n   %s\n", i+1, colorInfo(spec.Name), scope, spec.Description)
		}
		return nil
	},
}
