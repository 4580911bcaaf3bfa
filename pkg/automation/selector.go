package automation

import (
	"fmt"
	"strings"
)

// chainSeparator joins chain steps in the selector string grammar.
const chainSeparator = " >> "

// SelectorKind discriminates the Selector union.
type SelectorKind int

const (
	// KindRole matches by generic role, optionally filtered by name.
	KindRole SelectorKind = iota
	// KindID matches by synthesized stable element ID.
	KindID
	// KindName matches by accessible name/label (substring, case-insensitive).
	KindName
	// KindText matches by visible text content (substring, case-insensitive).
	KindText
	// KindClassName matches by native class name.
	KindClassName
	// KindChain resolves an ordered list of selectors, each scoped to the
	// previous step's match.
	KindChain
	// KindPath is declared but unsupported on all current adapters.
	KindPath
	// KindAttributes is declared but unsupported on all current adapters.
	KindAttributes
	// KindFilter is declared but unsupported on all current adapters.
	KindFilter
)

// Selector is an immutable declarative match criterion for locating UI
// elements. Construct values with ByRole, ByID, ByName, ByText, ByClassName
// or Chain; parse the string grammar with ParseSelector.
type Selector struct {
	Kind SelectorKind

	// Role is the generic role for KindRole selectors.
	Role string
	// Name is the optional name filter for KindRole selectors.
	Name string
	// Value is the payload of ID, Name, Text, ClassName and Path selectors.
	Value string
	// Attributes is the payload of KindAttributes selectors.
	Attributes map[string]string
	// Selectors is the ordered payload of KindChain selectors. A chain must
	// be non-empty; adapters reject empty chains with ErrInvalidArgument.
	Selectors []Selector
}

// ByRole creates a role selector. name may be empty to match any name.
func ByRole(role, name string) Selector {
	return Selector{Kind: KindRole, Role: role, Name: name}
}

// ByID creates a selector matching a synthesized stable element ID.
func ByID(id string) Selector {
	return Selector{Kind: KindID, Value: id}
}

// ByName creates a selector matching an element's accessible name or label.
func ByName(name string) Selector {
	return Selector{Kind: KindName, Value: name}
}

// ByText creates a selector matching visible text content.
func ByText(text string) Selector {
	return Selector{Kind: KindText, Value: text}
}

// ByClassName creates a selector matching the native class name.
func ByClassName(class string) Selector {
	return Selector{Kind: KindClassName, Value: class}
}

// Chain creates a chained selector from the given steps.
func Chain(selectors ...Selector) Selector {
	return Selector{Kind: KindChain, Selectors: selectors}
}

// Append returns a chain extending s with next. If s is already a chain the
// step is appended to the existing list rather than nesting chains.
func (s Selector) Append(next Selector) Selector {
	if s.Kind == KindChain {
		chain := make([]Selector, 0, len(s.Selectors)+1)
		chain = append(chain, s.Selectors...)
		chain = append(chain, next)
		return Selector{Kind: KindChain, Selectors: chain}
	}
	return Selector{Kind: KindChain, Selectors: []Selector{s, next}}
}

// ParseSelector parses the selector string grammar used by bindings and the
// CLI:
//
//	role:Button              role selector
//	role:Button|name:Submit  role selector with name filter
//	#ax_1f2e3d               stable-ID selector
//	name:Submit              name selector
//	.NSButton                class-name selector
//	anything else            text selector
//
// Steps joined with " >> " parse as a chain, each step scoped to the
// previous step's match.
func ParseSelector(s string) Selector {
	if strings.Contains(s, chainSeparator) {
		return ParseSelectorChain(strings.Split(s, chainSeparator)...)
	}
	switch {
	case strings.HasPrefix(s, "role:"):
		rest := strings.TrimPrefix(s, "role:")
		if role, name, ok := strings.Cut(rest, "|name:"); ok {
			return ByRole(role, name)
		}
		return ByRole(rest, "")
	case strings.HasPrefix(s, "#"):
		return ByID(strings.TrimPrefix(s, "#"))
	case strings.HasPrefix(s, "name:"):
		return ByName(strings.TrimPrefix(s, "name:"))
	case strings.HasPrefix(s, "text:"):
		return ByText(strings.TrimPrefix(s, "text:"))
	case strings.HasPrefix(s, "."):
		return ByClassName(strings.TrimPrefix(s, "."))
	default:
		return ByText(s)
	}
}

// ParseSelectorChain parses each part with ParseSelector and composes them
// into a chain. A single part yields that selector directly.
func ParseSelectorChain(parts ...string) Selector {
	if len(parts) == 1 {
		return ParseSelector(parts[0])
	}
	chain := make([]Selector, 0, len(parts))
	for _, p := range parts {
		chain = append(chain, ParseSelector(p))
	}
	return Selector{Kind: KindChain, Selectors: chain}
}

// String renders the selector in the grammar accepted by ParseSelector.
// Chain steps are joined with " >> ".
func (s Selector) String() string {
	switch s.Kind {
	case KindRole:
		if s.Name != "" {
			return fmt.Sprintf("role:%s|name:%s", s.Role, s.Name)
		}
		return "role:" + s.Role
	case KindID:
		return "#" + s.Value
	case KindName:
		return "name:" + s.Value
	case KindText:
		return "text:" + s.Value
	case KindClassName:
		return "." + s.Value
	case KindPath:
		return "path:" + s.Value
	case KindAttributes:
		return fmt.Sprintf("attributes:%v", s.Attributes)
	case KindFilter:
		return "filter:" + s.Value
	case KindChain:
		parts := make([]string, len(s.Selectors))
		for i, sel := range s.Selectors {
			parts[i] = sel.String()
		}
		return strings.Join(parts, chainSeparator)
	default:
		return fmt.Sprintf("selector(kind=%d)", int(s.Kind))
	}
}
