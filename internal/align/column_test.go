package align

import (
	"strings"
	"testing"
)

func TestVisualColumnWithoutTabs(t *testing.T) {
	line := "signal clk : std_logic;"
	for i := 0; i <= len(line); i++ {
		if got := VisualColumn(line, i, 4); got != i {
			t.Fatalf("VisualColumn(%q, %d, 4) = %d, want %d", line, i, got, i)
		}
	}
}

func TestVisualColumnTabs(t *testing.T) {
	tests := []struct {
		line    string
		index   int
		tabSize int
		want    int
	}{
		{"\t", 1, 4, 4},
		{"ab\t", 3, 4, 4},
		{"abc\t", 4, 4, 4},
		{"abcd\t", 5, 4, 8},
		{"\t\t", 2, 4, 8},
		{"a\tb", 3, 4, 5},
		{"a\tb", 3, 8, 9},
		{"\tx", 1, 2, 2},
		{"é\t", 2, 4, 4},
	}

	for _, tc := range tests {
		if got := VisualColumn(tc.line, tc.index, tc.tabSize); got != tc.want {
			t.Errorf("VisualColumn(%q, %d, %d) = %d, want %d", tc.line, tc.index, tc.tabSize, got, tc.want)
		}
	}
}

func TestVisualColumnClampsIndex(t *testing.T) {
	if got := VisualColumn("ab", 10, 4); got != 2 {
		t.Errorf("index past end: got %d, want 2", got)
	}
	if got := VisualColumn("ab", -1, 4); got != 0 {
		t.Errorf("negative index: got %d, want 0", got)
	}
}

func TestVisualColumnInvalidTabSize(t *testing.T) {
	if got := VisualColumn("\t", 1, 0); got != DefaultTabSize {
		t.Errorf("tab size 0: got %d, want %d", got, DefaultTabSize)
	}
}

func TestLineWidth(t *testing.T) {
	if got := LineWidth("x\t"+strings.Repeat(" ", 3), 4); got != 7 {
		t.Errorf("LineWidth = %d, want 7", got)
	}
}
