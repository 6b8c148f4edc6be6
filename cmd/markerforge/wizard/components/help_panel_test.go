package components

import (
	"strings"
	"testing"
)

func TestHelpPanel_Focus(t *testing.T) {
	h := NewHelpPanel()
	if !strings.Contains(h.View(), "Move to a field") {
		t.Error("Expected placeholder before any field is focused")
	}

	h.Focus("kind", "artoolkit")
	view := h.View()
	for _, want := range []string{"MARKER KIND", "32x32 base grid", "Current:", "artoolkit"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in help view", want)
		}
	}

	h.Focus("label", "")
	if strings.Contains(h.View(), "Current:") {
		t.Error("Empty values should not be echoed")
	}
}

func TestHelpPanel_SetWidth(t *testing.T) {
	h := NewHelpPanel()
	h.SetWidth(5)
	if h.width != minHelpWidth {
		t.Errorf("Expected width clamped to %d, got %d", minHelpWidth, h.width)
	}
	h.SetWidth(80)
	if h.width != 80 {
		t.Errorf("Expected width 80, got %d", h.width)
	}
}
