// Package output renders audit documents for terminals and files.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/khanhnv2901/headercheck/internal/auditor"
	sharedErrors "github.com/khanhnv2901/headercheck/internal/shared/errors"
	"gopkg.in/yaml.v3"
)

// Format selects how a document is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml (case-insensitive, "yml" allowed).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (use text, json or yaml)", sharedErrors.ErrUnsupportedFormat, s)
}

var (
	colorPresent = color.New(color.FgGreen).SprintFunc()
	colorMissing = color.New(color.FgRed).SprintFunc()
	colorNA      = color.New(color.FgYellow).SprintFunc()
	colorLabel   = color.New(color.FgCyan).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

// Render writes doc to w in the requested format.
func Render(w io.Writer, doc auditor.Document, format Format) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, doc)
	case FormatYAML:
		return renderYAML(w, doc)
	case FormatText, "":
		return renderText(w, doc)
	}
	return fmt.Errorf("%w: %q", sharedErrors.ErrUnsupportedFormat, format)
}

func renderJSON(w io.Writer, doc auditor.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, doc auditor.Document) error {
	node, err := yamlNode(doc)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// yamlNode builds a mapping node so keys keep the document order.
func yamlNode(doc auditor.Document) (*yaml.Node, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range doc.Fields() {
		var value yaml.Node
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Key, err)
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&value,
		)
	}
	return mapping, nil
}

func renderText(w io.Writer, doc auditor.Document) error {
	var b strings.Builder

	switch d := doc.(type) {
	case *auditor.CheckResult:
		fmt.Fprintf(&b, "%s %s\n", colorLabel("Final URL:"), d.FinalURL)
		fmt.Fprintf(&b, "%s %d\n", colorLabel("Status:   "), d.StatusCode)
		b.WriteString("\n")
		for _, f := range d.Findings {
			fmt.Fprintf(&b, "  %s %-26s %s\n", findingMarker(f.State), f.Name, f.Value)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s (%d of %d applicable headers present)\n",
			colorLabel("Score:"), colorBold(d.Score), d.PresentHeaders, d.ApplicableHeaders)
	case *auditor.ErrorResult:
		fmt.Fprintf(&b, "%s %s\n", colorMissing("Error:"), d.Message)
	default:
		for _, f := range doc.Fields() {
			fmt.Fprintf(&b, "%s: %v\n", f.Key, f.Value)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func findingMarker(state auditor.HeaderState) string {
	switch state {
	case auditor.StatePresent:
		return colorPresent("✓")
	case auditor.StateMissing:
		return colorMissing("✗")
	default:
		return colorNA("–")
	}
}
