package automation

import (
	"reflect"
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Selector
	}{
		{"role", "role:Button", ByRole("Button", "")},
		{"role with name filter", "role:Button|name:Submit", ByRole("Button", "Submit")},
		{"role with empty name filter", "role:Button|name:", ByRole("Button", "")},
		{"stable id", "#el_1f2e3d", ByID("el_1f2e3d")},
		{"name", "name:Save As", ByName("Save As")},
		{"text", "text:Welcome", ByText("Welcome")},
		{"class name", ".NSButton", ByClassName("NSButton")},
		{"bare string falls back to text", "Submit Order", ByText("Submit Order")},
		{"empty string is empty text", "", ByText("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelector(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSelector(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSelectorChain(t *testing.T) {
	got := ParseSelectorChain("role:Window|name:Login", "role:Button|name:Submit")
	want := Chain(ByRole("Window", "Login"), ByRole("Button", "Submit"))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSelectorChain = %+v, want %+v", got, want)
	}

	// A single part is not wrapped in a chain.
	single := ParseSelectorChain("name:Submit")
	if single.Kind != KindName || single.Value != "Submit" {
		t.Errorf("single-part chain = %+v, want plain name selector", single)
	}
}

func TestParseSelectorSplitsChains(t *testing.T) {
	got := ParseSelector("role:Window|name:Login >> role:Button|name:Submit")
	want := Chain(ByRole("Window", "Login"), ByRole("Button", "Submit"))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSelector = %+v, want %+v", got, want)
	}

	mixed := ParseSelector("#el_1f2e3d >> name:OK >> .NSButton")
	wantMixed := Chain(ByID("el_1f2e3d"), ByName("OK"), ByClassName("NSButton"))
	if !reflect.DeepEqual(mixed, wantMixed) {
		t.Errorf("ParseSelector = %+v, want %+v", mixed, wantMixed)
	}
}

func TestChainStringRoundTrip(t *testing.T) {
	chain := Chain(ByRole("Window", "Login"), ByRole("Button", "Submit"))
	got := ParseSelector(chain.String())
	if !reflect.DeepEqual(got, chain) {
		t.Errorf("ParseSelector(%q) = %+v, want %+v", chain.String(), got, chain)
	}
}

func TestSelectorAppendFlattens(t *testing.T) {
	chain := ByRole("Window", "").
		Append(ByRole("Pane", "")).
		Append(ByRole("Button", "OK"))

	if chain.Kind != KindChain {
		t.Fatalf("Kind = %v, want KindChain", chain.Kind)
	}
	if len(chain.Selectors) != 3 {
		t.Fatalf("chain has %d steps, want 3 (nested chains must flatten)", len(chain.Selectors))
	}
	for _, step := range chain.Selectors {
		if step.Kind == KindChain {
			t.Errorf("chain contains a nested chain step: %+v", step)
		}
	}
}

func TestSelectorAppendDoesNotMutateOriginal(t *testing.T) {
	base := Chain(ByRole("Window", ""), ByRole("Pane", ""))
	extended := base.Append(ByRole("Button", ""))

	if len(base.Selectors) != 2 {
		t.Errorf("original chain grew to %d steps after Append", len(base.Selectors))
	}
	if len(extended.Selectors) != 3 {
		t.Errorf("extended chain has %d steps, want 3", len(extended.Selectors))
	}
}

func TestSelectorStringRoundTrip(t *testing.T) {
	tests := []Selector{
		ByRole("Button", ""),
		ByRole("Button", "Submit"),
		ByID("el_cafe"),
		ByName("Save"),
		ByText("Welcome"),
		ByClassName("NSButton"),
	}
	for _, sel := range tests {
		t.Run(sel.String(), func(t *testing.T) {
			got := ParseSelector(sel.String())
			if !reflect.DeepEqual(got, sel) {
				t.Errorf("ParseSelector(%q) = %+v, want %+v", sel.String(), got, sel)
			}
		})
	}
}

func TestChainString(t *testing.T) {
	chain := Chain(ByRole("Window", "Login"), ByName("Submit"))
	got := chain.String()
	want := "role:Window|name:Login >> name:Submit"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
