package automation

import (
	"fmt"
	"hash/fnv"
	"math"
)

// IDAttributes is the tuple of quasi-stable attributes hashed into a
// synthesized element ID. Native handles carry no durable cross-query
// identity, so adapters derive one from element shape instead.
type IDAttributes struct {
	Role        string
	Label       string
	Description string
	// Width and Height are rounded to whole pixels before hashing; position
	// is deliberately excluded because elements move more often than they
	// resize.
	Width  float64
	Height float64
	// ChildCount is the number of direct children at snapshot time.
	ChildCount int
	// ParentLabel is the parent element's label, included to disambiguate
	// identically shaped siblings under different containers.
	ParentLabel string
}

// StableID hashes the attribute tuple into an identifier of the form
// "el_<hex>".
//
// This is a heuristic, not a uniqueness guarantee: two genuinely distinct
// elements with identical role, labels, rounded size and child count produce
// the same ID. Callers that cache by ID must tolerate collisions.
func StableID(attrs IDAttributes) string {
	h := fnv.New64a()
	writeField := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0x1f})
	}
	writeField(attrs.Role)
	writeField(attrs.Label)
	writeField(attrs.Description)
	writeField(fmt.Sprintf("%d", roundDim(attrs.Width)))
	writeField(fmt.Sprintf("%d", roundDim(attrs.Height)))
	writeField(fmt.Sprintf("%d", attrs.ChildCount))
	writeField(attrs.ParentLabel)
	return fmt.Sprintf("el_%x", h.Sum64())
}

func roundDim(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v))
}
