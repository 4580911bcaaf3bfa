package output

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/axdriver/axdriver/pkg/automation"
)

func sampleTree() TreeResult {
	return TreeResult{
		App:    "Safari",
		PID:    1234,
		Window: "GitHub",
		TS:     1707500000,
		Tree: automation.UINode{
			Attributes: automation.UIElementAttributes{Role: "window", Name: "GitHub", Enabled: true, Visible: true},
			Children: []automation.UINode{
				{Attributes: automation.UIElementAttributes{Role: "button", Name: "OK", Enabled: true, Visible: true}},
			},
		},
	}
}

func TestFprintYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintYAML(&buf, sampleTree()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}

	var decoded TreeResult
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.App != "Safari" {
		t.Errorf("app: got %q, want %q", decoded.App, "Safari")
	}
	if len(decoded.Tree.Children) != 1 {
		t.Errorf("children: got %d, want 1", len(decoded.Tree.Children))
	}
}

func TestFprintJSONCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, sampleTree(), false); err != nil {
		t.Fatal(err)
	}
	// Compact form is a single line plus the trailing newline.
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("compact JSON should be one line, got %d newlines:\n%s", got, buf.String())
	}
}

func TestFprintJSONPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, sampleTree(), true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("pretty JSON should be indented:\n%s", buf.String())
	}
}

func TestFprintHonorsFormat(t *testing.T) {
	old := OutputFormat
	defer func() { OutputFormat = old }()

	OutputFormat = FormatJSON
	var buf bytes.Buffer
	if err := Fprint(&buf, TextResult{Selector: "name:Status", Text: "Ready"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got:\n%s", buf.String())
	}

	OutputFormat = Format("toml")
	if err := Fprint(&buf, TextResult{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTreeResultOmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(TreeResult{TS: 123})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"app", "pid", "window"} {
		if _, ok := m[key]; ok {
			t.Errorf("empty %s should be omitted", key)
		}
	}
	if _, ok := m["ts"]; !ok {
		t.Error("ts should always be present")
	}
}
