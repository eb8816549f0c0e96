package platform

import (
	"testing"
)

func TestTextSelection_StartEnd(t *testing.T) {
	sel := TextSelection{BaseOffset: 7, ExtentOffset: 3}
	if sel.Start() != 3 || sel.End() != 7 {
		t.Errorf("Start/End = (%d, %d), want (3, 7)", sel.Start(), sel.End())
	}
	if sel.IsCollapsed() {
		t.Error("non-empty selection reported collapsed")
	}
}

func TestTextSelectionCollapsed(t *testing.T) {
	sel := TextSelectionCollapsed(4)
	if !sel.IsCollapsed() {
		t.Error("collapsed selection reported not collapsed")
	}
	if sel.BaseOffset != 4 || sel.ExtentOffset != 4 {
		t.Errorf("offsets = (%d, %d), want (4, 4)", sel.BaseOffset, sel.ExtentOffset)
	}
}

func TestController_InitialSelectionAtEnd(t *testing.T) {
	c := NewTextEditingController("héllo")

	// Offsets are runes, not bytes.
	if got := c.Selection(); got.BaseOffset != 5 || got.ExtentOffset != 5 {
		t.Errorf("Selection() = (%d, %d), want (5, 5)", got.BaseOffset, got.ExtentOffset)
	}
}

func TestController_SetTextClampsSelection(t *testing.T) {
	c := NewTextEditingController("hello world")
	c.SetText("hi")

	if got := c.Selection(); got.BaseOffset != 2 || got.ExtentOffset != 2 {
		t.Errorf("Selection() = (%d, %d), want (2, 2)", got.BaseOffset, got.ExtentOffset)
	}
}

func TestController_ListenerFiresAndUnsubscribes(t *testing.T) {
	c := NewTextEditingController("")

	var calls int
	unsubscribe := c.AddListener(func() { calls++ })

	c.SetText("a")
	if calls != 1 {
		t.Fatalf("calls = %d after SetText, want 1", calls)
	}

	unsubscribe()
	c.SetText("b")
	if calls != 1 {
		t.Errorf("calls = %d after unsubscribe, want 1", calls)
	}
}

func TestInsertAtSelection(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		base, extent int
		inserted     string
		wantText     string
		wantCaret    int
	}{
		{"append at end", "abc", 3, 3, "d", "abcd", 4},
		{"insert at start", "abc", 0, 0, "x", "xabc", 1},
		{"insert mid", "abcd", 2, 2, "-", "ab-cd", 3},
		{"replace selection", "abcdef", 1, 4, "X", "aXef", 2},
		{"reversed selection", "abcdef", 4, 1, "X", "aXef", 2},
		{"multi-rune insert", "ab", 1, 1, "xyz", "axyzb", 4},
		{"non-ascii", "héllo", 2, 2, "é", "hééllo", 3},
		{"into empty", "", 0, 0, "secret", "secret", 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, base, extent := insertAtSelection(tc.text, tc.base, tc.extent, tc.inserted)
			if text != tc.wantText {
				t.Errorf("text = %q, want %q", text, tc.wantText)
			}
			if base != tc.wantCaret || extent != tc.wantCaret {
				t.Errorf("caret = (%d, %d), want (%d, %d)", base, extent, tc.wantCaret, tc.wantCaret)
			}
		})
	}
}
