//go:build darwin

package darwin

import "testing"

func TestAXRolesFor(t *testing.T) {
	tests := []struct {
		generic string
		want    string
	}{
		{"window", "AXWindow"},
		{"Window", "AXWindow"},
		{"button", "AXButton"},
		{"textfield", "AXTextField"},
		{"AXOutline", "AXOutline"},
		{"widget", "AXWidget"},
	}
	for _, tt := range tests {
		t.Run(tt.generic, func(t *testing.T) {
			roles := axRolesFor(tt.generic)
			if len(roles) == 0 || roles[0] != tt.want {
				t.Errorf("axRolesFor(%q) = %v, want first role %q", tt.generic, roles, tt.want)
			}
		})
	}
}

func TestButtonFansOutToClickableRoles(t *testing.T) {
	roles := axRolesFor("button")
	want := map[string]bool{"AXButton": true, "AXMenuItem": true}
	for _, r := range roles {
		delete(want, r)
	}
	for missing := range want {
		t.Errorf("button does not match %s", missing)
	}
}

func TestGenericRole(t *testing.T) {
	tests := []struct {
		ax   string
		want string
	}{
		{"AXButton", "button"},
		{"AXMenuBarItem", "menuitem"},
		{"AXSearchField", "textfield"},
		{"AXUnknownThing", "unknownthing"},
	}
	for _, tt := range tests {
		if got := genericRole(tt.ax); got != tt.want {
			t.Errorf("genericRole(%q) = %q, want %q", tt.ax, got, tt.want)
		}
	}
}

func TestParseKeyCombo(t *testing.T) {
	tests := []struct {
		combo   string
		wantErr bool
	}{
		{"enter", false},
		{"cmd+c", false},
		{"ctrl+shift+t", false},
		{"cmd+shift", true},
		{"cmd+bogus", true},
		{"a+b", true},
	}
	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			_, _, err := parseKeyCombo(tt.combo)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseKeyCombo(%q) error = %v, wantErr %v", tt.combo, err, tt.wantErr)
			}
		})
	}
}
