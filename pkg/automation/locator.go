package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLocatorTimeout applies when neither the locator nor the call
// specifies a timeout.
const DefaultLocatorTimeout = 30 * time.Second

// waitPollInterval is the sleep between Wait attempts.
const waitPollInterval = 100 * time.Millisecond

// expectPerTryTimeout bounds each individual find inside an expect loop so
// one slow native search cannot consume the whole budget.
const expectPerTryTimeout = 100 * time.Millisecond

// expectPollInterval is the sleep between expect attempts.
const expectPollInterval = 100 * time.Millisecond

// Locator is a lazily-resolved (selector, engine, scope, timeout) tuple
// exposing retry-aware action methods. Locators are immutable; WithTimeout,
// Within and Locator return derived copies.
//
// Every method's timeout parameter follows one rule: an explicit value
// overrides the locator default, and 0 falls back to it.
type Locator struct {
	engine   AccessibilityEngine
	selector Selector
	timeout  time.Duration
	root     *UIElement
	log      zerolog.Logger
}

func newLocator(engine AccessibilityEngine, selector Selector, log zerolog.Logger) *Locator {
	return &Locator{
		engine:   engine,
		selector: selector,
		timeout:  DefaultLocatorTimeout,
		log:      log,
	}
}

// Selector returns the locator's selector.
func (l *Locator) Selector() Selector { return l.selector }

// WithTimeout returns a copy of the locator with a new default timeout for
// waiting operations.
func (l *Locator) WithTimeout(timeout time.Duration) *Locator {
	c := *l
	c.timeout = timeout
	return &c
}

// Within returns a copy of the locator scoped to the given root element.
func (l *Locator) Within(root *UIElement) *Locator {
	c := *l
	c.root = root
	return &c
}

// Locator returns a nested locator. The new selector is appended to the
// existing chain rather than nesting wrapper locators.
func (l *Locator) Locator(next Selector) *Locator {
	c := *l
	c.selector = l.selector.Append(next)
	return &c
}

func (l *Locator) effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout > 0 {
		return timeout
	}
	return l.timeout
}

// Wait polls for an element matching the locator until one appears or the
// timeout elapses. Each attempt passes the remaining budget to the engine;
// a persistent ErrElementNotFound becomes a single ErrTimeout once the
// deadline passes, and any other error propagates immediately.
func (l *Locator) Wait(ctx context.Context, timeout time.Duration) (*UIElement, error) {
	effective := l.effectiveTimeout(timeout)
	start := time.Now()
	l.log.Debug().Stringer("selector", l.selector).Dur("timeout", effective).Msg("waiting for element")

	for {
		// The engine treats 0 as "use the adapter default", so an exhausted
		// budget is clamped to a minimal positive one instead.
		remaining := effective - time.Since(start)
		if remaining < time.Millisecond {
			remaining = time.Millisecond
		}

		element, err := l.engine.FindElement(l.selector, l.root, remaining)
		switch {
		case err == nil:
			return element, nil
		case errors.Is(err, ErrElementNotFound):
			if time.Since(start) >= effective {
				return nil, timeoutError("timed out after %s waiting for element %s", effective, l.selector)
			}
			if err := sleepCtx(ctx, waitPollInterval); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}
}

// First waits for and returns the first matching element.
func (l *Locator) First(ctx context.Context, timeout time.Duration) (*UIElement, error) {
	return l.Wait(ctx, timeout)
}

// All returns every element matching the locator. depth bounds the subtree
// search, 0 meaning the adapter default.
func (l *Locator) All(ctx context.Context, timeout time.Duration, depth int) ([]*UIElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.engine.FindElements(l.selector, l.root, l.effectiveTimeout(timeout), depth)
}

// Click waits for the element and clicks it.
func (l *Locator) Click(ctx context.Context, timeout time.Duration) (*ClickResult, error) {
	element, err := l.Wait(ctx, timeout)
	if err != nil {
		return nil, err
	}
	return element.Click()
}

// TypeText waits for the element and types text into it.
func (l *Locator) TypeText(ctx context.Context, text string, timeout time.Duration) error {
	element, err := l.Wait(ctx, timeout)
	if err != nil {
		return err
	}
	return element.TypeText(text)
}

// PressKey waits for the element and sends a key combination to it.
func (l *Locator) PressKey(ctx context.Context, combo string, timeout time.Duration) error {
	element, err := l.Wait(ctx, timeout)
	if err != nil {
		return err
	}
	return element.PressKey(combo)
}

// Text waits for the element and aggregates its text to maxDepth.
func (l *Locator) Text(ctx context.Context, maxDepth int, timeout time.Duration) (string, error) {
	element, err := l.Wait(ctx, timeout)
	if err != nil {
		return "", err
	}
	return element.Text(maxDepth)
}

// Attributes waits for the element and snapshots its attributes.
func (l *Locator) Attributes(ctx context.Context, timeout time.Duration) (UIElementAttributes, error) {
	element, err := l.Wait(ctx, timeout)
	if err != nil {
		return UIElementAttributes{}, err
	}
	return element.Attributes(), nil
}

// Bounds waits for the element and returns its screen rectangle.
func (l *Locator) Bounds(ctx context.Context, timeout time.Duration) (Rect, error) {
	element, err := l.Wait(ctx, timeout)
	if err != nil {
		return Rect{}, err
	}
	return element.Bounds()
}

// IsVisible reports whether a matching element is visible. An element that
// never appears within the timeout is reported as not visible rather than an
// error.
func (l *Locator) IsVisible(ctx context.Context, timeout time.Duration) (bool, error) {
	element, err := l.Wait(ctx, timeout)
	if err != nil {
		if errors.Is(err, ErrTimeout) || errors.Is(err, ErrElementNotFound) {
			return false, nil
		}
		return false, err
	}
	return element.IsVisible()
}

// ExpectEnabled polls until a matching element reports enabled, or the
// timeout elapses.
func (l *Locator) ExpectEnabled(ctx context.Context, timeout time.Duration) (*UIElement, error) {
	return l.expect(ctx, timeout, "be enabled", func(e *UIElement) (bool, error) {
		return e.IsEnabled()
	})
}

// ExpectVisible polls until a matching element reports visible, or the
// timeout elapses.
func (l *Locator) ExpectVisible(ctx context.Context, timeout time.Duration) (*UIElement, error) {
	return l.expect(ctx, timeout, "be visible", func(e *UIElement) (bool, error) {
		return e.IsVisible()
	})
}

// ExpectTextEquals polls until a matching element's aggregated text equals
// expected, or the timeout elapses. Both sides are trimmed before comparing
// so surrounding whitespace cannot cause a false negative.
func (l *Locator) ExpectTextEquals(ctx context.Context, expected string, maxDepth int, timeout time.Duration) (*UIElement, error) {
	want := strings.TrimSpace(expected)
	goal := fmt.Sprintf("have text %q", expected)
	return l.expect(ctx, timeout, goal, func(e *UIElement) (bool, error) {
		text, err := e.Text(maxDepth)
		if err != nil {
			return false, err
		}
		return strings.TrimSpace(text) == want, nil
	})
}

// expect runs the shared predicate loop: each attempt resolves the element
// with a short fixed per-try budget, evaluates the predicate, and sleeps a
// fixed interval. A found-but-false predicate does not short-circuit; a
// transiently vanished element is "not yet", not fatal.
func (l *Locator) expect(ctx context.Context, timeout time.Duration, goal string, predicate func(*UIElement) (bool, error)) (*UIElement, error) {
	effective := l.effectiveTimeout(timeout)
	start := time.Now()

	for {
		element, err := l.engine.FindElement(l.selector, l.root, expectPerTryTimeout)
		switch {
		case err == nil:
			ok, perr := predicate(element)
			if perr != nil && !errors.Is(perr, ErrElementNotFound) {
				return nil, perr
			}
			if perr == nil && ok {
				return element, nil
			}
		case errors.Is(err, ErrElementNotFound):
			// Not found yet; keep polling.
		default:
			return nil, err
		}

		if time.Since(start) >= effective {
			return nil, timeoutError("timed out after %s waiting for element %s to %s", effective, l.selector, goal)
		}
		if err := sleepCtx(ctx, expectPollInterval); err != nil {
			return nil, err
		}
	}
}

// sleepCtx sleeps without spinning, returning early if the context ends.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("wait aborted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
