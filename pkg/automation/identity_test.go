package automation

import (
	"math"
	"strings"
	"testing"
)

func TestStableIDDeterministic(t *testing.T) {
	attrs := IDAttributes{
		Role:        "button",
		Label:       "Submit",
		Description: "submits the order",
		Width:       120.4,
		Height:      32.6,
		ChildCount:  0,
		ParentLabel: "Checkout",
	}
	a := StableID(attrs)
	b := StableID(attrs)
	if a != b {
		t.Errorf("same attributes produced different IDs: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "el_") {
		t.Errorf("ID %q missing el_ prefix", a)
	}
}

func TestStableIDSensitivity(t *testing.T) {
	base := IDAttributes{Role: "button", Label: "Submit", Width: 120, Height: 32, ChildCount: 2}

	tests := []struct {
		name   string
		mutate func(a IDAttributes) IDAttributes
	}{
		{"role", func(a IDAttributes) IDAttributes { a.Role = "checkbox"; return a }},
		{"label", func(a IDAttributes) IDAttributes { a.Label = "Cancel"; return a }},
		{"description", func(a IDAttributes) IDAttributes { a.Description = "x"; return a }},
		{"width", func(a IDAttributes) IDAttributes { a.Width = 220; return a }},
		{"height", func(a IDAttributes) IDAttributes { a.Height = 64; return a }},
		{"child count", func(a IDAttributes) IDAttributes { a.ChildCount = 3; return a }},
		{"parent label", func(a IDAttributes) IDAttributes { a.ParentLabel = "Sidebar"; return a }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if StableID(base) == StableID(tt.mutate(base)) {
				t.Errorf("changing %s did not change the ID", tt.name)
			}
		})
	}
}

func TestStableIDFieldBoundaries(t *testing.T) {
	// The separator keeps "ab"+"c" distinct from "a"+"bc".
	a := StableID(IDAttributes{Role: "ab", Label: "c"})
	b := StableID(IDAttributes{Role: "a", Label: "bc"})
	if a == b {
		t.Errorf("field boundary collision: %q", a)
	}
}

func TestStableIDRoundsDimensions(t *testing.T) {
	a := StableID(IDAttributes{Role: "button", Width: 120.3, Height: 32.4})
	b := StableID(IDAttributes{Role: "button", Width: 120.1, Height: 31.9})
	if a != b {
		t.Errorf("sub-pixel size jitter changed the ID: %q vs %q", a, b)
	}
}

func TestStableIDNonFiniteDimensions(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := StableID(IDAttributes{Role: "button", Width: v, Height: v})
		want := StableID(IDAttributes{Role: "button", Width: 0, Height: 0})
		if got != want {
			t.Errorf("non-finite dimension %v hashed differently from 0", v)
		}
	}
}

func TestStableIDCollisionTolerance(t *testing.T) {
	// Two distinct elements with identical shape share an ID; callers must
	// tolerate that rather than assume uniqueness.
	attrs := IDAttributes{Role: "listitem", Label: "Row", Width: 300, Height: 24, ParentLabel: "Results"}
	if StableID(attrs) != StableID(attrs) {
		t.Fatal("identically shaped elements must share an ID")
	}
}
