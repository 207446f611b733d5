package console

// location is the caret, tracked in both logical and screen coordinates:
// the line index, the row index within that line, the absolute offset into
// the line's buffer, and the display column within the row. All four are
// kept in sync by sync(); pos is authoritative, the rest derive from it.
type location struct {
	s       *session
	lineIdx int
	rowIdx  int
	pos     int
	col     int
}

// lineAndRow resolves the caret's line and row. ok is false when the indices
// have gone stale after a structural change; callers must reset rather than
// proceed.
func (lc *location) lineAndRow() (*line, *row, bool) {
	if lc.s == nil || lc.lineIdx < 0 || lc.lineIdx >= len(lc.s.lines) {
		return nil, nil, false
	}
	l := lc.s.lines[lc.lineIdx]
	if lc.rowIdx < 0 || lc.rowIdx >= len(l.rows) {
		return l, nil, false
	}
	r := &l.rows[lc.rowIdx]
	if lc.pos < r.start || lc.pos > r.end() {
		return l, r, false
	}
	return l, r, true
}

// reset snaps the caret to the first editable position of the session.
func (lc *location) reset() {
	lc.lineIdx = lc.s.firstInput
	if lc.lineIdx >= len(lc.s.lines) {
		lc.lineIdx = len(lc.s.lines) - 1
	}
	if lc.lineIdx < 0 {
		lc.lineIdx = 0
	}
	lc.pos = lc.s.lines[lc.lineIdx].promptLen
	lc.sync()
}

// sync recomputes rowIdx and col from lineIdx and pos, clamping pos into the
// editable span. A caret sitting at the end of an exactly-full row resolves
// to column zero of the following row.
func (lc *location) sync() {
	if lc.lineIdx < 0 {
		lc.lineIdx = 0
	}
	if lc.lineIdx >= len(lc.s.lines) {
		lc.lineIdx = len(lc.s.lines) - 1
	}
	l := lc.s.lines[lc.lineIdx]
	if l.isInput && lc.pos < l.promptLen {
		lc.pos = l.promptLen
	}
	if lc.pos > len(l.buf) {
		lc.pos = len(l.buf)
	}
	if lc.pos < 0 {
		lc.pos = 0
	}
	lc.rowIdx = l.rowForCaret(lc.pos, lc.s.winWidth)
	lc.col = l.widthBetween(l.rows[lc.rowIdx].start, lc.pos)
}

// moveLeft moves the caret one code point left, crossing row boundaries but
// never line boundaries. The prompt prefix is not enterable.
func (lc *location) moveLeft() bool {
	l, _, ok := lc.lineAndRow()
	if !ok {
		lc.reset()
		return true
	}
	if lc.pos <= l.promptLen {
		return false
	}
	lc.pos--
	lc.sync()
	return true
}

// moveRight moves the caret one code point right within the current line.
func (lc *location) moveRight() bool {
	l, _, ok := lc.lineAndRow()
	if !ok {
		lc.reset()
		return true
	}
	if lc.pos >= len(l.buf) {
		return false
	}
	lc.pos++
	lc.sync()
	return true
}

// moveUp moves the caret to the same column one screen row above, crossing
// into the previous line (clamped via trimCursorIndex) when the caret is on
// its line's first row.
func (lc *location) moveUp() bool {
	l, _, ok := lc.lineAndRow()
	if !ok {
		lc.reset()
		return true
	}
	if lc.rowIdx > 0 {
		lc.pos = l.trimCursorIndex(lc.rowIdx-1, lc.col)
		lc.sync()
		return true
	}
	if lc.lineIdx > lc.s.firstInput {
		prev := lc.s.lines[lc.lineIdx-1]
		lc.lineIdx--
		lc.pos = prev.trimCursorIndex(len(prev.rows)-1, lc.col)
		lc.sync()
		return true
	}
	return false
}

// moveDown mirrors moveUp toward the screen row below.
func (lc *location) moveDown() bool {
	l, _, ok := lc.lineAndRow()
	if !ok {
		lc.reset()
		return true
	}
	if lc.rowIdx < len(l.rows)-1 {
		lc.pos = l.trimCursorIndex(lc.rowIdx+1, lc.col)
		lc.sync()
		return true
	}
	if lc.lineIdx < len(lc.s.lines)-1 {
		next := lc.s.lines[lc.lineIdx+1]
		lc.lineIdx++
		lc.pos = next.trimCursorIndex(0, lc.col)
		lc.sync()
		return true
	}
	return false
}

// moveFirst moves the caret to the start of the current line's input (Home).
func (lc *location) moveFirst() {
	l, _, ok := lc.lineAndRow()
	if !ok {
		lc.reset()
		return
	}
	lc.pos = l.promptLen
	lc.sync()
}

// moveLast moves the caret past the current line's last code point (End).
func (lc *location) moveLast() {
	l, _, ok := lc.lineAndRow()
	if !ok {
		lc.reset()
		return
	}
	lc.pos = len(l.buf)
	lc.sync()
}

// move advances the caret by n code points after an insertion or deletion.
func (lc *location) move(n int) {
	lc.pos += n
	lc.sync()
}

// screenPos returns the caret's session-relative screen row and column.
func (lc *location) screenPos() (row, col int) {
	l, _, ok := lc.lineAndRow()
	if !ok {
		lc.reset()
		l, _, _ = lc.lineAndRow()
	}
	return l.top + lc.rowIdx, lc.col
}
