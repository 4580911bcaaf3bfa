package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func buttonTree(name string) *fakeElement {
	button := newFakeElement("button", name)
	window := newFakeElement("window", "Main", button)
	return newFakeElement("desktop", "", window)
}

func testLocator(engine AccessibilityEngine, selector Selector) *Locator {
	return newLocator(engine, selector, zerolog.Nop())
}

func TestWaitReturnsImmediatelyWhenPresent(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit")}
	loc := testLocator(engine, ByRole("button", "Submit"))

	el, err := loc.Wait(context.Background(), 5*time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if name := el.Attributes().Name; name != "Submit" {
		t.Errorf("found %q, want Submit", name)
	}
	if engine.findCalls != 1 {
		t.Errorf("engine searched %d times, want 1", engine.findCalls)
	}
}

func TestWaitPollsUntilElementAppears(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), notFoundUntil: 2}
	loc := testLocator(engine, ByRole("button", "Submit"))

	el, err := loc.Wait(context.Background(), 5*time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if el == nil {
		t.Fatal("Wait returned nil element")
	}
	if engine.findCalls != 3 {
		t.Errorf("engine searched %d times, want 3", engine.findCalls)
	}
}

func TestWaitNeverPassesZeroBudgetToEngine(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), notFoundUntil: 1 << 30}
	loc := testLocator(engine, ByRole("button", "Missing"))

	_, err := loc.Wait(context.Background(), 150*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	// A zero remaining budget would be reinterpreted by the engine as its
	// own (much larger) default.
	for i, d := range engine.findTimeouts {
		if d <= 0 {
			t.Errorf("search %d received budget %v, want positive", i, d)
		}
	}
}

func TestAllHonorsCancelledContext(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit")}
	loc := testLocator(engine, ByRole("button", "Submit"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loc.All(ctx, time.Second, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if engine.findAllCalls != 0 {
		t.Errorf("engine searched %d times after cancellation, want 0", engine.findAllCalls)
	}
}

func TestWaitTimesOutOnPersistentAbsence(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), notFoundUntil: 1 << 30}
	loc := testLocator(engine, ByRole("button", "Missing"))

	start := time.Now()
	_, err := loc.Wait(context.Background(), 250*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed < 250*time.Millisecond {
		t.Errorf("returned after %v, before the %v budget elapsed", elapsed, 250*time.Millisecond)
	}
	if elapsed > 2*time.Second {
		t.Errorf("returned after %v, far past the %v budget", elapsed, 250*time.Millisecond)
	}
}

func TestWaitPropagatesNonRetryableErrors(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), failWith: PlatformError("connection lost")}
	loc := testLocator(engine, ByRole("button", "Submit"))

	start := time.Now()
	_, err := loc.Wait(context.Background(), 5*time.Second)
	if !errors.Is(err, ErrPlatform) {
		t.Fatalf("err = %v, want the platform error immediately", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("platform error took %v to surface; it must not be retried", elapsed)
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), notFoundUntil: 1 << 30}
	loc := testLocator(engine, ByRole("button", "Submit"))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := loc.Wait(ctx, 30*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestWaitTimeoutZeroUsesLocatorDefault(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), notFoundUntil: 1 << 30}
	loc := testLocator(engine, ByRole("button", "Missing")).WithTimeout(200 * time.Millisecond)

	start := time.Now()
	_, err := loc.Wait(context.Background(), 0)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed < 200*time.Millisecond || elapsed > 2*time.Second {
		t.Errorf("elapsed %v, want roughly the locator default of 200ms", elapsed)
	}
}

func TestWithTimeoutReturnsCopy(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit")}
	base := testLocator(engine, ByRole("button", ""))
	derived := base.WithTimeout(time.Second)

	if base.timeout != DefaultLocatorTimeout {
		t.Errorf("WithTimeout mutated the original locator: %v", base.timeout)
	}
	if derived.timeout != time.Second {
		t.Errorf("derived timeout = %v, want 1s", derived.timeout)
	}
}

func TestNestedLocatorAppendsToChain(t *testing.T) {
	engine := &fakeEngine{root: loginTree()}
	loc := testLocator(engine, ByRole("pane", "Login")).Locator(ByRole("button", ""))

	el, err := loc.Wait(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if name := el.Attributes().Name; name != "Submit" {
		t.Errorf("found %q, want the button scoped to the Login pane", name)
	}
	if loc.selector.Kind != KindChain || len(loc.selector.Selectors) != 2 {
		t.Errorf("nested locator selector = %+v, want a two-step chain", loc.selector)
	}
}

func TestIsVisibleReportsFalseInsteadOfTimeout(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), notFoundUntil: 1 << 30}
	loc := testLocator(engine, ByRole("button", "Missing")).WithTimeout(150 * time.Millisecond)

	visible, err := loc.IsVisible(context.Background(), 0)
	if err != nil {
		t.Fatalf("IsVisible: %v", err)
	}
	if visible {
		t.Error("an absent element reported visible")
	}
}

func TestExpectEnabled(t *testing.T) {
	tree := buttonTree("Submit")
	engine := &fakeEngine{root: tree}
	loc := testLocator(engine, ByRole("button", "Submit"))

	if _, err := loc.ExpectEnabled(context.Background(), time.Second); err != nil {
		t.Fatalf("ExpectEnabled on an enabled button: %v", err)
	}

	tree.children[0].children[0].enabled = false
	_, err := loc.ExpectEnabled(context.Background(), 200*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout for a persistently disabled button", err)
	}
}

func TestExpectTextEqualsTrimsBothSides(t *testing.T) {
	tree := buttonTree("Status")
	tree.children[0].children[0].text = "  Ready  \n"
	engine := &fakeEngine{root: tree}
	loc := testLocator(engine, ByRole("button", "Status"))

	if _, err := loc.ExpectTextEquals(context.Background(), "Ready", 1, time.Second); err != nil {
		t.Errorf("trimmed comparison failed: %v", err)
	}
	if _, err := loc.ExpectTextEquals(context.Background(), "  Ready", 1, time.Second); err != nil {
		t.Errorf("expected value must be trimmed too: %v", err)
	}

	_, err := loc.ExpectTextEquals(context.Background(), "Done", 1, 200*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout for mismatched text", err)
	}
}

func TestExpectTimeoutMentionsGoal(t *testing.T) {
	engine := &fakeEngine{root: buttonTree("Submit"), notFoundUntil: 1 << 30}
	loc := testLocator(engine, ByRole("button", "Submit"))

	_, err := loc.ExpectVisible(context.Background(), 150*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestLocatorClickDelegates(t *testing.T) {
	tree := buttonTree("Submit")
	button := tree.children[0].children[0]
	engine := &fakeEngine{root: tree}
	loc := testLocator(engine, ByRole("button", "Submit"))

	result, err := loc.Click(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	if result.Method == "" {
		t.Error("click result missing the method that performed it")
	}
	if button.clicks != 1 {
		t.Errorf("button clicked %d times, want 1", button.clicks)
	}
}

func TestLocatorTypeTextDelegates(t *testing.T) {
	tree := buttonTree("Search")
	field := tree.children[0].children[0]
	field.role = "textfield"
	engine := &fakeEngine{root: tree}
	loc := testLocator(engine, ByRole("textfield", ""))

	if err := loc.TypeText(context.Background(), "hello", time.Second); err != nil {
		t.Fatalf("TypeText: %v", err)
	}
	if len(field.typed) != 1 || field.typed[0] != "hello" {
		t.Errorf("typed = %v, want [hello]", field.typed)
	}
}
