package cursor

// CursorSet holds the selections of one document in the order they were
// added. The first is the primary selection. Identical selections are kept
// once, so two cursors that land on the same spot merge.
type CursorSet struct {
	selections []Selection
}

// NewCursorSetAt creates a cursor set with a single cursor at p.
func NewCursorSetAt(p Point) *CursorSet {
	return &CursorSet{selections: []Selection{NewCursorSelection(p)}}
}

// All returns a copy of the selections.
func (cs *CursorSet) All() []Selection {
	out := make([]Selection, len(cs.selections))
	copy(out, cs.selections)
	return out
}

// Add appends sel unless it is already present.
func (cs *CursorSet) Add(sel Selection) {
	for _, s := range cs.selections {
		if s == sel {
			return
		}
	}
	cs.selections = append(cs.selections, sel)
}

// SetAll replaces the selections. An empty slice leaves one cursor at the
// start of the document.
func (cs *CursorSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{{}}
		return
	}
	cs.selections = cs.selections[:0]
	for _, s := range sels {
		cs.Add(s)
	}
}

// MapInPlace replaces every selection with f(selection), merging any that
// become identical.
func (cs *CursorSet) MapInPlace(f func(sel Selection) Selection) {
	mapped := make([]Selection, len(cs.selections))
	for i, sel := range cs.selections {
		mapped[i] = f(sel)
	}
	cs.SetAll(mapped)
}

// Clamp moves every selection inside the document.
func (cs *CursorSet) Clamp(lines LineLengths) {
	cs.MapInPlace(func(s Selection) Selection { return s.Clamp(lines) })
}
