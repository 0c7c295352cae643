package align

import "strings"

// LineReport describes a trailing comment found by Scan.
type LineReport struct {
	// Line is the 0-based line index.
	Line int

	// Column is the current 0-based visual column of the marker.
	Column int

	// Edit is the realigned line. Only meaningful when Outcome is Aligned.
	Edit Edit

	// Outcome tells whether the line can be aligned.
	Outcome Outcome
}

// Misaligned reports whether the comment is off target and fixable.
func (r LineReport) Misaligned() bool {
	return r.Outcome == Aligned
}

// Scan inspects every trailing comment in text.
//
// Full-line comments and lines without a comment are skipped. Comments
// already on the target column are reported with AlreadyAligned.
func Scan(text string, opts Options) []LineReport {
	var reports []LineReport
	for i, line := range splitLines(text) {
		line = strings.TrimSuffix(line, "\r")
		if !IsTrailing(line) {
			continue
		}
		reports = append(reports, scanLine(i, line, opts))
	}
	return reports
}

func scanLine(i int, line string, opts Options) LineReport {
	idx, _ := FindComment(line)
	target := opts.Target()
	current := VisualColumn(line, idx, opts.tabSize())

	report := LineReport{Line: i, Column: current}
	switch {
	case current < target:
		report.Edit, report.Outcome = AlignForward(line, idx, opts)
	case current > target:
		report.Edit, report.Outcome = AlignBackward(line, idx, opts)
	default:
		report.Outcome = AlreadyAligned
	}
	return report
}

// AlignText aligns every trailing comment in text to the target column.
//
// Comments left of the target move forward, comments right of it move back.
// Line endings are preserved. It returns the new text and the number of lines
// changed.
func AlignText(text string, opts Options) (string, int) {
	lines := splitLines(text)
	changed := 0
	for i, line := range lines {
		cr := strings.HasSuffix(line, "\r")
		body := strings.TrimSuffix(line, "\r")
		if !IsTrailing(body) {
			continue
		}
		r := scanLine(i, body, opts)
		if !r.Misaligned() || !r.Edit.Changed(body) {
			continue
		}
		if cr {
			lines[i] = r.Edit.Text + "\r"
		} else {
			lines[i] = r.Edit.Text
		}
		changed++
	}
	return strings.Join(lines, "\n"), changed
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
