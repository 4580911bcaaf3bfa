//go:build darwin

package darwin

import (
	"strings"

	"github.com/axdriver/axdriver/pkg/automation"
)

// genericToAXRoles maps a generic role to the AX roles it covers. Several
// generic roles fan out: many clickable things on macOS are not AXButton.
var genericToAXRoles = map[string][]string{
	"app":         {"AXApplication"},
	"application": {"AXApplication"},
	"window":      {"AXWindow"},
	"button":      {"AXButton", "AXMenuItem", "AXMenuBarItem", "AXStaticText", "AXImage"},
	"checkbox":    {"AXCheckBox"},
	"radio":       {"AXRadioButton"},
	"menu":        {"AXMenu"},
	"menubar":     {"AXMenuBar"},
	"menuitem":    {"AXMenuItem", "AXMenuBarItem"},
	"dialog":      {"AXSheet", "AXDialog"},
	"text":        {"AXStaticText"},
	"statictext":  {"AXStaticText"},
	"textfield":   {"AXTextField", "AXTextArea", "AXSearchField"},
	"input":       {"AXTextField", "AXTextArea", "AXSearchField"},
	"textarea":    {"AXTextArea"},
	"list":        {"AXList"},
	"listitem":    {"AXCell"},
	"table":       {"AXTable"},
	"combobox":    {"AXPopUpButton", "AXComboBox"},
	"tab":         {"AXTabGroup"},
	"tabitem":     {"AXRadioButton"},
	"toolbar":     {"AXToolbar"},
	"link":        {"AXLink"},
	"image":       {"AXImage"},
	"slider":      {"AXSlider"},
	"scrollbar":   {"AXScrollBar"},
	"scrollarea":  {"AXScrollArea"},
	"group":       {"AXGroup"},
	"pane":        {"AXGroup", "AXScrollArea", "AXSplitGroup"},
	"row":         {"AXRow"},
	"column":      {"AXColumn"},
	"webarea":     {"AXWebArea"},
}

// axToGeneric maps an AX role back to the generic vocabulary for display.
var axToGeneric = map[string]string{
	"AXApplication": "application",
	"AXWindow":      "window",
	"AXButton":      "button",
	"AXCheckBox":    "checkbox",
	"AXRadioButton": "radio",
	"AXMenu":        "menu",
	"AXMenuBar":     "menubar",
	"AXMenuItem":    "menuitem",
	"AXMenuBarItem": "menuitem",
	"AXSheet":       "dialog",
	"AXDialog":      "dialog",
	"AXStaticText":  "text",
	"AXTextField":   "textfield",
	"AXSearchField": "textfield",
	"AXTextArea":    "textarea",
	"AXList":        "list",
	"AXCell":        "listitem",
	"AXTable":       "table",
	"AXPopUpButton": "combobox",
	"AXComboBox":    "combobox",
	"AXTabGroup":    "tab",
	"AXToolbar":     "toolbar",
	"AXLink":        "link",
	"AXImage":       "image",
	"AXSlider":      "slider",
	"AXScrollBar":   "scrollbar",
	"AXScrollArea":  "scrollarea",
	"AXGroup":       "group",
	"AXRow":         "row",
	"AXColumn":      "column",
	"AXWebArea":     "webarea",
}

// axRolesFor returns the AX roles matched by a generic role. Unknown roles
// are matched literally so callers can target raw AX roles directly.
func axRolesFor(generic string) []string {
	if roles, ok := genericToAXRoles[strings.ToLower(generic)]; ok {
		return roles
	}
	if strings.HasPrefix(generic, "AX") || generic == "" {
		return []string{generic}
	}
	lower := strings.ToLower(generic)
	return []string{"AX" + strings.ToUpper(lower[:1]) + lower[1:]}
}

// genericRole maps an AX role to its generic name, defaulting to the
// lowercased AX role without the prefix.
func genericRole(axRole string) string {
	if g, ok := axToGeneric[axRole]; ok {
		return g
	}
	return strings.ToLower(strings.TrimPrefix(axRole, "AX"))
}

// axErrorNames translates AXError codes worth naming in messages.
var axErrorNames = map[int]string{
	-25200: "failure",
	-25201: "illegal argument",
	-25202: "invalid element",
	-25203: "invalid observer",
	-25204: "cannot complete",
	-25205: "attribute unsupported",
	-25206: "action unsupported",
	-25207: "notification unsupported",
	-25208: "not implemented",
	-25211: "API disabled",
	-25212: "no value",
	-25213: "parameterized attribute unsupported",
	-25214: "not enough precision",
}

func axError(op string, code int) error {
	name, ok := axErrorNames[code]
	if !ok {
		name = "unknown error"
	}
	return automation.PlatformError("%s failed: AXError %d (%s)", op, code, name)
}
