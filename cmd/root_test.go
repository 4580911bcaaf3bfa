package cmd

import "testing"

func TestCommandsRegistered(t *testing.T) {
	names := []string{
		"tree", "find", "click", "type", "press", "set-value", "scroll",
		"focus", "wait", "expect", "text", "apps", "open", "run",
		"screenshot", "ocr", "serve", "window",
	}
	for _, name := range names {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil {
			t.Errorf("command %q not registered: %v", name, err)
			continue
		}
		if c == rootCmd {
			t.Errorf("command %q resolved to the root command", name)
		}
	}
}

func TestReadAliasesTree(t *testing.T) {
	c, _, err := rootCmd.Find([]string{"read"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "tree" {
		t.Errorf("read resolved to %q, want tree", c.Name())
	}
}

func TestPersistentFlagDefaults(t *testing.T) {
	format, err := rootCmd.PersistentFlags().GetString("format")
	if err != nil {
		t.Fatal(err)
	}
	if format != "yaml" {
		t.Errorf("default format = %q, want yaml", format)
	}
	timeout, err := rootCmd.PersistentFlags().GetDuration("timeout")
	if err != nil {
		t.Fatal(err)
	}
	if timeout <= 0 {
		t.Errorf("default timeout = %v, want positive", timeout)
	}
}
