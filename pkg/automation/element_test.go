package automation

import "testing"

func TestSnapshotDepth(t *testing.T) {
	leaf := newFakeElement("button", "OK")
	pane := newFakeElement("pane", "Body", leaf)
	window := newFakeElement("window", "Main", pane)
	el := NewUIElement(window)

	tests := []struct {
		name     string
		maxDepth int
		want     func(n UINode) bool
	}{
		{"zero depth is the element alone", 0, func(n UINode) bool {
			return len(n.Children) == 0
		}},
		{"depth one stops at the pane", 1, func(n UINode) bool {
			return len(n.Children) == 1 && len(n.Children[0].Children) == 0
		}},
		{"depth two reaches the leaf", 2, func(n UINode) bool {
			return len(n.Children) == 1 &&
				len(n.Children[0].Children) == 1 &&
				n.Children[0].Children[0].Attributes.Name == "OK"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := el.Snapshot(tt.maxDepth)
			if node.Attributes.Role != "window" {
				t.Fatalf("root role = %q, want window", node.Attributes.Role)
			}
			if !tt.want(node) {
				t.Errorf("unexpected tree shape for maxDepth=%d: %+v", tt.maxDepth, node)
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 40}
	x, y := r.Center()
	if x != 60 || y != 40 {
		t.Errorf("Center() = (%v, %v), want (60, 40)", x, y)
	}
}

func TestTextAggregationDepth(t *testing.T) {
	deep := newFakeElement("statictext", "")
	deep.text = "deep"
	mid := newFakeElement("group", "", deep)
	mid.text = "mid"
	top := newFakeElement("pane", "", mid)
	top.text = "top"
	el := NewUIElement(top)

	got, err := el.Text(1)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "top mid" {
		t.Errorf("Text(1) = %q, want text from only the first level", got)
	}

	got, err = el.Text(2)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "top mid deep" {
		t.Errorf("Text(2) = %q, want all three levels", got)
	}
}
