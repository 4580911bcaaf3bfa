package automation

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testDesktop(engine AccessibilityEngine) *Desktop {
	return NewDesktopWithEngine(engine, zerolog.Nop())
}

func TestDesktopLocatorString(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}
	d := testDesktop(engine)

	el, err := d.LocatorString("role:button|name:Submit").Wait(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if name := el.Attributes().Name; name != "Submit" {
		t.Errorf("found %q, want Submit", name)
	}
}

func TestDesktopLocatorStringChain(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}
	d := testDesktop(engine)

	// A chained string must scope each step, not parse as one selector.
	el, err := d.LocatorString("role:pane|name:Login >> role:button|name:Submit").
		Wait(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if name := el.Attributes().Name; name != "Submit" {
		t.Errorf("found %q, want Submit", name)
	}
}

func TestDesktopRoot(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}
	d := testDesktop(engine)

	root := d.Root()
	if root == nil {
		t.Fatal("Root() = nil")
	}
	if role := root.Role(); role != "desktop" {
		t.Errorf("root role = %q, want desktop", role)
	}
}

func TestNewDesktopWithoutEngineForPlatform(t *testing.T) {
	// Platform packages register via init on their own GOOS; with none
	// registered construction must fail with the platform sentinel.
	saved := NewEngineFunc
	NewEngineFunc = nil
	defer func() { NewEngineFunc = saved }()

	_, err := NewDesktop(false, false)
	if err == nil {
		t.Fatal("NewDesktop succeeded with no registered engine")
	}
}
