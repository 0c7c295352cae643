package align

import (
	"strings"
	"testing"
)

func TestAlignForward(t *testing.T) {
	opts := Options{Column: 95, TabSize: 4}

	edit, out := AlignForward("x -- c", 2, opts)
	if out != Aligned {
		t.Fatalf("outcome = %v, want aligned", out)
	}

	want := "x" + strings.Repeat(" ", 93) + "-- c"
	if edit.Text != want {
		t.Errorf("text = %q, want %q", edit.Text, want)
	}
	if edit.Cursor != 94 {
		t.Errorf("cursor = %d, want 94", edit.Cursor)
	}
	if idx, _ := FindComment(edit.Text); VisualColumn(edit.Text, idx, 4) != 94 {
		t.Errorf("marker not at column 94")
	}
	if edit.From != 2 || edit.To != 94 {
		t.Errorf("From/To = %d/%d, want 2/94", edit.From, edit.To)
	}
}

func TestAlignForwardCursorBeforeComment(t *testing.T) {
	edit, out := AlignForward("x -- c", 0, DefaultOptions())
	if out != Aligned {
		t.Fatalf("outcome = %v, want aligned", out)
	}
	if edit.Cursor != 94 {
		t.Errorf("cursor = %d, want 94", edit.Cursor)
	}
}

func TestAlignForwardTrimsCommentWhitespace(t *testing.T) {
	edit, out := AlignForward("a <= b;   \t--   c   ", 0, Options{Column: 21, TabSize: 4})
	if out != Aligned {
		t.Fatalf("outcome = %v, want aligned", out)
	}
	want := "a <= b;" + strings.Repeat(" ", 13) + "--   c"
	if edit.Text != want {
		t.Errorf("text = %q, want %q", edit.Text, want)
	}
}

func TestAlignForwardWithTabs(t *testing.T) {
	opts := Options{Column: 13, TabSize: 4}

	edit, out := AlignForward("\tx\t-- c", 3, opts)
	if out != Aligned {
		t.Fatalf("outcome = %v, want aligned", out)
	}
	if want := "\tx" + strings.Repeat(" ", 7) + "-- c"; edit.Text != want {
		t.Errorf("text = %q, want %q", edit.Text, want)
	}
	if edit.Cursor != 9 {
		t.Errorf("cursor = %d, want 9", edit.Cursor)
	}
	if got := VisualColumn(edit.Text, edit.Cursor, 4); got != 12 {
		t.Errorf("marker column = %d, want 12", got)
	}
}

func TestAlignForwardUnicodeCode(t *testing.T) {
	edit, out := AlignForward("é -- c", 2, DefaultOptions())
	if out != Aligned {
		t.Fatalf("outcome = %v, want aligned", out)
	}
	if edit.Cursor != 94 {
		t.Errorf("cursor = %d, want 94", edit.Cursor)
	}
}

func TestAlignForwardDefers(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name   string
		line   string
		cursor int
		want   Outcome
	}{
		{"no comment", "a <= b;", 0, NoComment},
		{"cursor after marker", "x -- c", 3, CursorPastComment},
		{"cursor at end", "x -- c", 6, CursorPastComment},
		{"at target", strings.Repeat("a", 94) + "-- c", 94, AlreadyAligned},
		{"beyond target", strings.Repeat("a", 100) + "-- c", 100, AlreadyAligned},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, out := AlignForward(tc.line, tc.cursor, opts)
			if out != tc.want {
				t.Errorf("outcome = %v, want %v", out, tc.want)
			}
		})
	}
}

func TestAlignBackward(t *testing.T) {
	line := "x" + strings.Repeat(" ", 109) + "-- c"

	edit, out := AlignBackward(line, 110, DefaultOptions())
	if out != Aligned {
		t.Fatalf("outcome = %v, want aligned", out)
	}
	if want := "x" + strings.Repeat(" ", 93) + "-- c"; edit.Text != want {
		t.Errorf("text = %q, want %q", edit.Text, want)
	}
	if edit.Cursor != 94 {
		t.Errorf("cursor = %d, want 94", edit.Cursor)
	}
}

func TestAlignBackwardDefers(t *testing.T) {
	opts := DefaultOptions()
	past := "x" + strings.Repeat(" ", 109) + "-- c"
	tests := []struct {
		name   string
		line   string
		cursor int
		want   Outcome
	}{
		{"no comment", "a <= b;", 0, NoComment},
		{"cursor before marker", past, 5, CursorNotAtComment},
		{"cursor after marker", past, 111, CursorNotAtComment},
		{"at target", strings.Repeat("a", 94) + "-- c", 94, NotPastTarget},
		{"before target", "x -- c", 2, NotPastTarget},
		{"code past target", strings.Repeat("a", 100) + " -- c", 101, CodePastTarget},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, out := AlignBackward(tc.line, tc.cursor, opts)
			if out != tc.want {
				t.Errorf("outcome = %v, want %v", out, tc.want)
			}
		})
	}
}

func TestAlignBackwardCodeEndsAtTarget(t *testing.T) {
	line := strings.Repeat("a", 94) + "   -- c"
	edit, out := AlignBackward(line, 97, DefaultOptions())
	if out != Aligned {
		t.Fatalf("outcome = %v, want aligned", out)
	}
	if want := strings.Repeat("a", 94) + "-- c"; edit.Text != want {
		t.Errorf("text = %q, want %q", edit.Text, want)
	}
}

func TestAlignRoundTrip(t *testing.T) {
	wide := Options{Column: 60, TabSize: 4}
	narrow := Options{Column: 30, TabSize: 4}

	original := "count <= count + 1;   --   increment  "
	fwd, out := AlignForward(original, 19, wide)
	if out != Aligned {
		t.Fatalf("forward outcome = %v", out)
	}

	back, out := AlignBackward(fwd.Text, fwd.Cursor, narrow)
	if out != Aligned {
		t.Fatalf("backward outcome = %v", out)
	}
	if got := VisualColumn(back.Text, back.Cursor, 4); got != 29 {
		t.Errorf("marker column = %d, want 29", got)
	}
	if want := "count <= count + 1;" + strings.Repeat(" ", 10) + "--   increment"; back.Text != want {
		t.Errorf("text = %q, want %q", back.Text, want)
	}

	// Same target both ways leaves the comment on the boundary.
	_, out = AlignBackward(fwd.Text, fwd.Cursor, wide)
	if out != NotPastTarget {
		t.Errorf("backward at same target = %v, want not past target", out)
	}
}

func TestAlignDirection(t *testing.T) {
	line := "x" + strings.Repeat(" ", 109) + "-- c"
	if _, out := Align(Forward, line, 110, DefaultOptions()); out != AlreadyAligned {
		t.Errorf("forward outcome = %v", out)
	}
	if _, out := Align(Backward, line, 110, DefaultOptions()); out != Aligned {
		t.Errorf("backward outcome = %v", out)
	}
}

func TestOptionsTarget(t *testing.T) {
	if got := (Options{Column: 1}).Target(); got != 0 {
		t.Errorf("Target() = %d, want 0", got)
	}
	if got := (Options{}).Target(); got != DefaultColumn-1 {
		t.Errorf("zero options Target() = %d, want %d", got, DefaultColumn-1)
	}
}
