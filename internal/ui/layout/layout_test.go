package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{MinWidth, MinHeight, false},
		{MinWidth - 1, 24, true},
		{80, MinHeight - 1, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Review", 3, 7, 80)
	for _, want := range []string{"Leitner", "Review", "Day 3", "7 due"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if w := lipgloss.Width(out); w != 80 {
		t.Errorf("header width = %d, want 80", w)
	}
}

func TestRenderFrame(t *testing.T) {
	header := RenderHeader("Home", 0, 4, 60)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 60)
	frame := RenderFrame(header, "body", footer, 60, 20)

	if h := lipgloss.Height(frame); h != 20 {
		t.Errorf("frame height = %d, want 20", h)
	}
	if !strings.Contains(frame, "Esc") || !strings.Contains(frame, "body") {
		t.Errorf("frame missing content:\n%s", frame)
	}
}

func TestRenderHeader_NothingDue(t *testing.T) {
	out := RenderHeader("Home", 2, 0, 70)
	if !strings.Contains(out, "nothing due") {
		t.Errorf("header missing idle status:\n%s", out)
	}
}

func TestRenderFooter_DropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Reveal"},
		{Key: "Tab", Description: "Hint"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit the application right now"},
	}
	out := RenderFooter(hints, 40)
	if !strings.Contains(out, "Enter") {
		t.Errorf("first hint missing:\n%s", out)
	}
	if strings.Contains(out, "Ctrl+C") {
		t.Errorf("overflowing hint rendered:\n%s", out)
	}
}
