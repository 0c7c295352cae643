package cursor

// LineLengths describes the shape of a document.
// LineLen is measured in characters.
type LineLengths interface {
	LineCount() uint32
	LineLen(line uint32) uint32
}

// ClampPoint moves p inside the document described by lines.
func ClampPoint(p Point, lines LineLengths) Point {
	n := lines.LineCount()
	if n == 0 {
		return Point{}
	}
	if p.Line >= n {
		p.Line = n - 1
	}
	if l := lines.LineLen(p.Line); p.Column > l {
		p.Column = l
	}
	return p
}

// Clamp returns the selection with both ends inside the document.
func (s Selection) Clamp(lines LineLengths) Selection {
	return Selection{
		Anchor: ClampPoint(s.Anchor, lines),
		Head:   ClampPoint(s.Head, lines),
	}
}
