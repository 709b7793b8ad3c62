package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/khanhnv2901/headercheck/internal/auditor"
	"gopkg.in/yaml.v3"
)

func runHeadersForTest(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	headersCmd.SetOut(&buf)
	t.Cleanup(func() { headersCmd.SetOut(nil) })

	if err := headersCmd.RunE(headersCmd, nil); err != nil {
		t.Fatalf("headers failed: %v", err)
	}
	return buf.String()
}

func TestHeadersCommandText(t *testing.T) {
	disableColor(t)
	setupTestAppContext(t)

	out := runHeadersForTest(t)
	for i, name := range auditor.HeaderNames() {
		if !strings.Contains(out, name) {
			t.Errorf("header %d (%s) missing from output", i, name)
		}
	}
	if !strings.Contains(out, "5. Strict-Transport-Security (HTTPS only)") {
		t.Fatalf("expected HSTS to be flagged HTTPS only, got:\n%s", out)
	}
	if strings.Count(out, "(HTTPS only)") != 1 {
		t.Fatalf("only one header is HTTPS only, got:\n%s", out)
	}
}

func TestHeadersCommandYAML(t *testing.T) {
	appCtx := setupTestAppContext(t)
	appCtx.Config.Defaults.Output = "yaml"

	var specs []auditor.HeaderSpec
	if err := yaml.Unmarshal([]byte(runHeadersForTest(t)), &specs); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(specs) != 5 || specs[0].Name != "Content-Security-Policy" || !specs[4].HTTPSOnly {
		t.Fatalf("unexpected specs: %+v", specs)
	}
}
