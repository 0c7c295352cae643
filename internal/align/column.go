package align

// VisualColumn returns the on-screen column of the character at charIndex.
//
// Characters before charIndex are walked from the start of the line. A tab
// advances the column to the next tab stop: ceil((column+1)/tabSize)*tabSize.
// Any other character advances it by one. charIndex is clamped to the line.
func VisualColumn(line string, charIndex, tabSize int) int {
	if tabSize < 1 {
		tabSize = DefaultTabSize
	}

	column := 0
	i := 0
	for _, r := range line {
		if i >= charIndex {
			break
		}
		if r == '\t' {
			column = ceilDiv(column+1, tabSize) * tabSize
		} else {
			column++
		}
		i++
	}
	return column
}

// LineWidth returns the visual width of the whole line.
func LineWidth(line string, tabSize int) int {
	return VisualColumn(line, runeLen(line), tabSize)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
