// Package output serializes command results to stdout as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/axdriver/axdriver/pkg/automation"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ElementSummary is the serializable view of a single element: the stable
// identifier plus an attribute snapshot.
type ElementSummary struct {
	ID         string                         `yaml:"id,omitempty" json:"id,omitempty"`
	Attributes automation.UIElementAttributes `yaml:"attributes"   json:"attributes"`
}

// Summarize snapshots an element for output.
func Summarize(el *automation.UIElement) ElementSummary {
	return ElementSummary{ID: el.ID(), Attributes: el.Attributes()}
}

// TreeResult is the top-level output of the `tree` command.
type TreeResult struct {
	App    string            `yaml:"app,omitempty"    json:"app,omitempty"`
	PID    int32             `yaml:"pid,omitempty"    json:"pid,omitempty"`
	Window string            `yaml:"window,omitempty" json:"window,omitempty"`
	TS     int64             `yaml:"ts"               json:"ts"`
	Tree   automation.UINode `yaml:"tree"             json:"tree"`
}

// FindResult is the top-level output of the `find` command.
type FindResult struct {
	Selector string           `yaml:"selector" json:"selector"`
	Count    int              `yaml:"count"    json:"count"`
	Elements []ElementSummary `yaml:"elements" json:"elements"`
}

// ActionResult reports the outcome of an action command (click, type, press).
type ActionResult struct {
	Action   string `yaml:"action"             json:"action"`
	Selector string `yaml:"selector,omitempty" json:"selector,omitempty"`
	Method   string `yaml:"method,omitempty"   json:"method,omitempty"`
	Details  string `yaml:"details,omitempty"  json:"details,omitempty"`
}

// TextResult is the top-level output of the `text` command.
type TextResult struct {
	Selector string `yaml:"selector" json:"selector"`
	Text     string `yaml:"text"     json:"text"`
}

// AppsResult is the top-level output of the `apps` command.
type AppsResult struct {
	Count        int              `yaml:"count"        json:"count"`
	Applications []ElementSummary `yaml:"applications" json:"applications"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return FprintJSON(w, v, PrettyOutput)
	case FormatYAML:
		return FprintYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// FprintJSON serializes v to w as JSON. If pretty is true, uses indentation;
// otherwise single-line.
func FprintJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// FprintYAML serializes v to w as YAML.
func FprintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
