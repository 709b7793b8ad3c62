package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khanhnv2901/headercheck/internal/auditor"
	"github.com/khanhnv2901/headercheck/internal/output"
	sharedErrors "github.com/khanhnv2901/headercheck/internal/shared/errors"
	"gopkg.in/yaml.v3"
)

func runCheckForTest(t *testing.T, args []string, flags map[string]string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	checkCmd.SetOut(&buf)
	t.Cleanup(func() { checkCmd.SetOut(nil) })

	for name, value := range flags {
		flag := checkCmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("unknown flag %s", name)
		}
		original := flag.Value.String()
		if err := flag.Value.Set(value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
		t.Cleanup(func() { _ = flag.Value.Set(original) })
	}

	err := checkCmd.RunE(checkCmd, args)
	return buf.String(), err
}

func TestCheckCommand_TextOutput(t *testing.T) {
	disableColor(t)
	setupTestAppContext(t)

	srv := httptest.NewServer(headerHandler(map[string]string{"X-Content-Type-Options": "nosniff"}))
	defer srv.Close()

	out, err := runCheckForTest(t, []string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	for _, want := range []string{
		"Final URL: " + srv.URL,
		"✓ X-Content-Type-Options",
		"✗ Content-Security-Policy",
		"– Strict-Transport-Security",
		auditor.NotApplicableMarker,
		"Score: 1/4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCheckCommand_JSONOutput(t *testing.T) {
	appCtx := setupTestAppContext(t)
	appCtx.Config.Defaults.Output = "json"

	srv := httptest.NewServer(headerHandler(map[string]string{
		"Content-Security-Policy": "default-src 'self'",
		"Referrer-Policy":         "no-referrer",
	}))
	defer srv.Close()

	out, err := runCheckForTest(t, []string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out)
	}
	if doc["score"] != "2/4" || doc["applicable_headers"] != float64(4) {
		t.Fatalf("unexpected document: %v", doc)
	}
	if doc["Strict-Transport-Security"] != auditor.NotApplicableMarker {
		t.Fatalf("unexpected HSTS entry: %v", doc["Strict-Transport-Security"])
	}
}

func TestCheckCommand_InvalidURLPrintsError(t *testing.T) {
	disableColor(t)
	setupTestAppContext(t)

	out, err := runCheckForTest(t, []string{"example.com"}, nil)
	if err != nil {
		t.Fatalf("invalid input must not fail without --fail-on-error: %v", err)
	}
	if !strings.Contains(out, "Error: Please include http:// or https:// in the URL.") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCheckCommand_FailOnError(t *testing.T) {
	setupTestAppContext(t)

	_, err := runCheckForTest(t, []string{"example.com"}, map[string]string{"fail-on-error": "true"})

	var failed *AuditFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected AuditFailedError, got %v", err)
	}
	if failed.Result.Kind != auditor.KindValidation {
		t.Fatalf("expected validation kind, got %s", failed.Result.Kind)
	}
	if !errors.Is(err, sharedErrors.ErrMissingScheme) {
		t.Fatal("expected ErrMissingScheme in chain")
	}
}

func TestCheckCommand_FailOnErrorUnreachable(t *testing.T) {
	setupTestAppContext(t)

	srv := httptest.NewServer(headerHandler(nil))
	target := srv.URL
	srv.Close()

	_, err := runCheckForTest(t, []string{target}, map[string]string{"fail-on-error": "true"})
	if !errors.Is(err, sharedErrors.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestCheckCommand_WritesOutFile(t *testing.T) {
	disableColor(t)
	appCtx := setupTestAppContext(t)
	appCtx.Config.Defaults.Output = "yaml"

	srv := httptest.NewServer(headerHandler(map[string]string{"X-Frame-Options": "DENY"}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "result.yaml")
	out, err := runCheckForTest(t, []string{srv.URL}, map[string]string{"out": path})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "Saved: "+path+" (score 1/4)") {
		t.Fatalf("unexpected stdout: %s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if doc["X-Frame-Options"] != "DENY" || doc["score"] != "1/4" {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestCheckCommand_UnsupportedFormat(t *testing.T) {
	appCtx := setupTestAppContext(t)
	appCtx.Config.Defaults.Output = "xml"

	_, err := runCheckForTest(t, []string{"https://example.com"}, nil)
	if !errors.Is(err, sharedErrors.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCheckCommand_RequiresOneArg(t *testing.T) {
	if err := checkCmd.Args(checkCmd, nil); err == nil {
		t.Fatal("expected error without URL argument")
	}
	if err := checkCmd.Args(checkCmd, []string{"a", "b"}); err == nil {
		t.Fatal("expected error with two arguments")
	}
}

func TestWriteOutputFileReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	doc := auditor.Evaluate("https://example.com/", 200, nil)
	if err := writeOutputFile("/dev/full", doc, output.FormatJSON); err == nil {
		t.Fatal("expected error writing to a full device")
	}
}

func TestCheckCommand_OutFileFailureIsNotReportedAsSaved(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	disableColor(t)
	setupTestAppContext(t)

	srv := httptest.NewServer(headerHandler(nil))
	defer srv.Close()

	out, err := runCheckForTest(t, []string{srv.URL}, map[string]string{"out": "/dev/full"})
	if err == nil {
		t.Fatal("expected write failure to be returned")
	}
	if strings.Contains(out, "Saved:") {
		t.Fatalf("failed write must not print a saved summary, got %q", out)
	}
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	doc := auditor.Evaluate("http://example.com/", 200, nil)

	if err := writeOutputFile(path, doc, output.FormatJSON); err != nil {
		t.Fatalf("writeOutputFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"score": "0/4"`) {
		t.Fatalf("unexpected file contents: %s", data)
	}
}

func TestWriteOutputFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "result.json")
	doc := auditor.Evaluate("http://example.com/", 200, nil)

	if err := writeOutputFile(path, doc, output.FormatText); err == nil || !strings.Contains(err.Error(), "open output file") {
		t.Fatalf("expected open error, got %v", err)
	}
}
