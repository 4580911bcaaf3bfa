package server

import (
	"testing"
	"time"

	"github.com/axdriver/axdriver/pkg/automation"
)

// idOnlyElement implements just enough of ElementImpl for cache tests;
// unimplemented methods panic via the embedded nil interface.
type idOnlyElement struct {
	automation.ElementImpl
	id string
}

func (e idOnlyElement) ID() string { return e.id }

func newCachedElement(id string) *automation.UIElement {
	return automation.NewUIElement(idOnlyElement{id: id})
}

func TestElementCachePutGet(t *testing.T) {
	c := NewElementCache(time.Minute)
	el := newCachedElement("el_1a2b")
	c.Put(el)

	got, ok := c.Get("el_1a2b")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != el {
		t.Error("cache returned a different element")
	}

	if _, ok := c.Get("el_missing"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestElementCacheSkipsEmptyIDs(t *testing.T) {
	c := NewElementCache(time.Minute)
	c.Put(newCachedElement(""), nil)
	if _, ok := c.Get(""); ok {
		t.Error("empty id should never hit")
	}
}

func TestElementCacheTTLExpiry(t *testing.T) {
	c := NewElementCache(10 * time.Millisecond)
	c.Put(newCachedElement("el_ff"))
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("el_ff"); ok {
		t.Error("entry should have expired")
	}
}

func TestElementCacheDisabled(t *testing.T) {
	c := NewElementCache(0)
	c.Put(newCachedElement("el_ff"))
	if _, ok := c.Get("el_ff"); ok {
		t.Error("disabled cache should never hit")
	}
}

func TestElementCacheInvalidateAll(t *testing.T) {
	c := NewElementCache(time.Minute)
	c.Put(newCachedElement("el_1"), newCachedElement("el_2"))
	c.InvalidateAll()
	if _, ok := c.Get("el_1"); ok {
		t.Error("invalidated entry should miss")
	}
}
