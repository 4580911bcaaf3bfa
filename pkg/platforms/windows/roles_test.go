//go:build windows

package windows

import "testing"

func TestControlTypesFor(t *testing.T) {
	tests := []struct {
		role string
		want []int32
	}{
		{"button", []int32{ctButton}},
		{"Button", []int32{ctButton}},
		{"window", []int32{ctWindow, ctPane}},
		{"app", []int32{ctPane, ctWindow}},
		{"textarea", []int32{ctEdit, ctDocument}},
		{"made-up-widget", []int32{ctCustom}},
	}
	for _, tt := range tests {
		got := controlTypesFor(tt.role)
		if len(got) != len(tt.want) {
			t.Errorf("controlTypesFor(%q) = %v, want %v", tt.role, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("controlTypesFor(%q)[%d] = %d, want %d", tt.role, i, got[i], tt.want[i])
			}
		}
	}
}

func TestGenericRoleName(t *testing.T) {
	tests := []struct {
		controlType int32
		want        string
	}{
		{ctButton, "button"},
		{ctWindow, "window"},
		{ctEdit, "edit"},
		{99999, "unknown"},
	}
	for _, tt := range tests {
		if got := genericRoleName(tt.controlType); got != tt.want {
			t.Errorf("genericRoleName(%d) = %q, want %q", tt.controlType, got, tt.want)
		}
	}
}

func TestUTF16Units(t *testing.T) {
	if got := utf16Units('A'); len(got) != 1 || got[0] != 0x41 {
		t.Errorf("utf16Units('A') = %v", got)
	}
	// U+1F600 needs a surrogate pair.
	got := utf16Units(0x1F600)
	if len(got) != 2 || got[0] != 0xD83D || got[1] != 0xDE00 {
		t.Errorf("utf16Units(0x1F600) = %#v, want [0xD83D 0xDE00]", got)
	}
}
