package automation

import (
	"errors"
	"testing"
)

// loginTree builds a window with two panes: "Login" holds a unique Submit
// button, "Toolbar" holds two generic buttons.
func loginTree() *fakeElement {
	submit := newFakeElement("button", "Submit")
	login := newFakeElement("pane", "Login", submit)
	b1 := newFakeElement("button", "Back")
	b2 := newFakeElement("button", "Forward")
	toolbar := newFakeElement("pane", "Toolbar", b1, b2)
	window := newFakeElement("window", "Main", login, toolbar)
	return newFakeElement("desktop", "", window)
}

func TestResolveChainScopesEachStep(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}

	matches, err := ResolveChain(engine, []Selector{
		ByRole("pane", "Login"),
		ByRole("button", ""),
	}, nil, 0, 0)
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if name := matches[0].Attributes().Name; name != "Submit" {
		t.Errorf("matched %q, want the button inside the Login pane", name)
	}
}

func TestResolveChainFinalStepFansOut(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}

	matches, err := ResolveChain(engine, []Selector{
		ByRole("pane", "Toolbar"),
		ByRole("button", ""),
	}, nil, 0, 0)
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want both toolbar buttons", len(matches))
	}
}

func TestResolveChainDropsAmbiguousIntermediate(t *testing.T) {
	// Both panes match the intermediate "pane" step; an ambiguous anchor
	// drops that branch instead of guessing, so the chain yields nothing.
	engine := &fakeEngine{root: loginTree()}

	matches, err := ResolveChain(engine, []Selector{
		ByRole("pane", ""),
		ByRole("button", ""),
	}, nil, 0, 0)
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches from an ambiguous intermediate, want 0", len(matches))
	}
}

func TestResolveChainDropsMissingBranch(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}

	matches, err := ResolveChain(engine, []Selector{
		ByRole("pane", "NoSuchPane"),
		ByRole("button", ""),
	}, nil, 0, 0)
	if err != nil {
		t.Fatalf("a missing intermediate must drop the branch, not fail: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}

func TestResolveChainEmptyIsInvalid(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}

	_, err := ResolveChain(engine, nil, nil, 0, 0)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestResolveChainPropagatesPlatformErrors(t *testing.T) {
	engine := &fakeEngine{root: loginTree(), failWith: PlatformError("tree walk failed")}

	_, err := ResolveChain(engine, []Selector{ByRole("button", "")}, nil, 0, 0)
	if !errors.Is(err, ErrPlatform) {
		t.Errorf("err = %v, want the platform error to propagate", err)
	}
}

func TestResolveChainFirst(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}

	el, err := ResolveChainFirst(engine, []Selector{
		ByRole("pane", "Login"),
		ByRole("button", "Submit"),
	}, nil, 0)
	if err != nil {
		t.Fatalf("ResolveChainFirst: %v", err)
	}
	if name := el.Attributes().Name; name != "Submit" {
		t.Errorf("matched %q, want Submit", name)
	}

	_, err = ResolveChainFirst(engine, []Selector{
		ByRole("pane", "Login"),
		ByRole("button", "NoSuchButton"),
	}, nil, 0)
	if !errors.Is(err, ErrElementNotFound) {
		t.Errorf("err = %v, want ErrElementNotFound for an exhausted chain", err)
	}
}
