package automation

import (
	"errors"
	"time"
)

// ResolveChain resolves a selector chain against an engine using the
// working-set algorithm shared by every adapter:
//
// A set of current roots starts as [root]. For every selector except the
// last, each current root is searched for matches; a root whose search
// yields exactly one match is replaced by that match, while a root yielding
// zero or several matches is dropped — an ambiguous or missing intermediate
// anchor fails only that branch, never the whole chain. The final selector
// fans out: all matches across all surviving roots are collected.
//
// A nil root means the engine's default search scope. Errors from searching
// one branch drop that branch when they are ErrElementNotFound; any other
// error aborts resolution.
func ResolveChain(engine AccessibilityEngine, selectors []Selector, root *UIElement, timeout time.Duration, depth int) ([]*UIElement, error) {
	if len(selectors) == 0 {
		return nil, invalidArgError("selector chain cannot be empty")
	}

	roots := []*UIElement{root}
	for i, sel := range selectors {
		last := i == len(selectors)-1
		var next []*UIElement
		for _, r := range roots {
			found, err := engine.FindElements(sel, r, timeout, depth)
			if err != nil {
				if errors.Is(err, ErrElementNotFound) {
					continue
				}
				return nil, err
			}
			if last {
				next = append(next, found...)
				continue
			}
			// Intermediate anchors must be deterministic.
			if len(found) == 1 {
				next = append(next, found[0])
			}
		}
		roots = next
		if len(roots) == 0 {
			break
		}
	}
	return roots, nil
}

// ResolveChainFirst resolves a chain and returns the first surviving match,
// or ErrElementNotFound when the chain yields nothing.
func ResolveChainFirst(engine AccessibilityEngine, selectors []Selector, root *UIElement, timeout time.Duration) (*UIElement, error) {
	matches, err := ResolveChain(engine, selectors, root, timeout, 0)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, notFoundError("no element matches chain %s", Selector{Kind: KindChain, Selectors: selectors})
	}
	return matches[0], nil
}
