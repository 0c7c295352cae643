package editor

import (
	"sort"

	"github.com/dshills/vhdlalign/internal/dispatcher/execctx"
	"github.com/dshills/vhdlalign/internal/engine/buffer"
	"github.com/dshills/vhdlalign/internal/engine/cursor"
)

// workspace applies per-cursor edits to a copy of the document and records
// them as line edits. Cursors are processed from the bottom of the
// document up, so each edit leaves the positions still to be processed
// untouched; positions already processed are shifted as needed.
type workspace struct {
	lines  []string
	edits  []buffer.LineEdit
	points []cursor.Point
	done   []bool
}

func newWorkspace(ed execctx.EditorInterface, sels []cursor.Selection) *workspace {
	n := ed.LineCount()
	ws := &workspace{
		lines:  make([]string, n),
		points: make([]cursor.Point, len(sels)),
		done:   make([]bool, len(sels)),
	}
	for i := uint32(0); i < n; i++ {
		ws.lines[i] = ed.LineText(i)
	}
	for i, sel := range sels {
		ws.points[i] = sel.Cursor()
	}
	return ws
}

// order returns cursor indexes sorted bottom-right first.
func (ws *workspace) order() []int {
	idx := make([]int, len(ws.points))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return ws.points[idx[b]].Before(ws.points[idx[a]])
	})
	return idx
}

// each runs fn for every cursor, bottom-right first.
func (ws *workspace) each(fn func(i int, p cursor.Point)) {
	for _, i := range ws.order() {
		fn(i, ws.points[i])
		ws.done[i] = true
	}
}

// shift moves processed cursors on line at or after column col.
func (ws *workspace) shift(line, col uint32, move func(p cursor.Point) cursor.Point) {
	for i, p := range ws.points {
		if !ws.done[i] {
			continue
		}
		if p.Line > line || (p.Line == line && p.Column >= col) {
			ws.points[i] = move(p)
		}
	}
}

func (ws *workspace) replace(line uint32, text string) {
	ws.lines[line] = text
	ws.edits = append(ws.edits, buffer.ReplaceLine(line, text))
}

// insertText inserts single-line text at p.
func (ws *workspace) insertText(i int, p cursor.Point, text string) {
	rs := []rune(ws.lines[p.Line])
	col := clampCol(p.Column, rs)
	n := uint32(len([]rune(text)))

	ws.replace(p.Line, string(rs[:col])+text+string(rs[col:]))
	ws.shift(p.Line, col, func(q cursor.Point) cursor.Point {
		if q.Line == p.Line {
			q.Column += n
		}
		return q
	})
	ws.points[i] = cursor.Point{Line: p.Line, Column: col + n}
}

// splitLine breaks the line at p and moves the cursor to the new line.
func (ws *workspace) splitLine(i int, p cursor.Point) {
	rs := []rune(ws.lines[p.Line])
	col := clampCol(p.Column, rs)

	ws.replace(p.Line, string(rs[:col]))
	ws.lines = append(ws.lines, "")
	copy(ws.lines[p.Line+2:], ws.lines[p.Line+1:])
	ws.lines[p.Line+1] = string(rs[col:])
	ws.edits = append(ws.edits, buffer.InsertLine(p.Line+1, string(rs[col:])))

	ws.shift(p.Line, col, func(q cursor.Point) cursor.Point {
		if q.Line == p.Line {
			return cursor.Point{Line: q.Line + 1, Column: q.Column - col}
		}
		q.Line++
		return q
	})
	ws.points[i] = cursor.Point{Line: p.Line + 1}
}

// deleteLeft removes the character before p, joining lines at column 0.
func (ws *workspace) deleteLeft(i int, p cursor.Point) bool {
	rs := []rune(ws.lines[p.Line])
	col := clampCol(p.Column, rs)

	if col > 0 {
		ws.replace(p.Line, string(rs[:col-1])+string(rs[col:]))
		ws.shift(p.Line, col, func(q cursor.Point) cursor.Point {
			if q.Line == p.Line {
				q.Column--
			}
			return q
		})
		ws.points[i] = cursor.Point{Line: p.Line, Column: col - 1}
		return true
	}

	if p.Line == 0 {
		return false
	}

	prev := ws.lines[p.Line-1]
	prevLen := uint32(len([]rune(prev)))
	ws.replace(p.Line-1, prev+ws.lines[p.Line])
	ws.lines = append(ws.lines[:p.Line], ws.lines[p.Line+1:]...)
	ws.edits = append(ws.edits, buffer.DeleteLine(p.Line))

	ws.shift(p.Line, 0, func(q cursor.Point) cursor.Point {
		if q.Line == p.Line {
			return cursor.Point{Line: q.Line - 1, Column: q.Column + prevLen}
		}
		q.Line--
		return q
	})
	ws.points[i] = cursor.Point{Line: p.Line - 1, Column: prevLen}
	return true
}

// deleteRight removes the character at p, joining the next line at the end.
func (ws *workspace) deleteRight(i int, p cursor.Point) bool {
	rs := []rune(ws.lines[p.Line])
	col := clampCol(p.Column, rs)

	if int(col) < len(rs) {
		ws.replace(p.Line, string(rs[:col])+string(rs[col+1:]))
		ws.shift(p.Line, col+1, func(q cursor.Point) cursor.Point {
			if q.Line == p.Line {
				q.Column--
			}
			return q
		})
		ws.points[i] = cursor.Point{Line: p.Line, Column: col}
		return true
	}

	if int(p.Line)+1 >= len(ws.lines) {
		return false
	}

	next := ws.lines[p.Line+1]
	ws.replace(p.Line, ws.lines[p.Line]+next)
	ws.lines = append(ws.lines[:p.Line+1], ws.lines[p.Line+2:]...)
	ws.edits = append(ws.edits, buffer.DeleteLine(p.Line+1))

	ws.shift(p.Line+1, 0, func(q cursor.Point) cursor.Point {
		if q.Line == p.Line+1 {
			return cursor.Point{Line: p.Line, Column: q.Column + col}
		}
		q.Line--
		return q
	})
	ws.points[i] = cursor.Point{Line: p.Line, Column: col}
	return true
}

// selections returns collapsed selections at the resulting cursor points.
func (ws *workspace) selections() []cursor.Selection {
	sels := make([]cursor.Selection, len(ws.points))
	for i, p := range ws.points {
		sels[i] = cursor.NewCursorSelection(p)
	}
	return sels
}

func clampCol(col uint32, rs []rune) uint32 {
	if int(col) > len(rs) {
		return uint32(len(rs))
	}
	return col
}
