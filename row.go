package console

// row is one physical terminal line's worth of a line's buffer: a contiguous
// span that fits inside the window width. Rows live in a value slice owned by
// their line; neighbors are addressed by index, never by pointer.
type row struct {
	start      int // offset of the first code point within the line buffer
	length     int // number of code points
	width      int // cached sum of per-code-point display widths
	inputStart int // offset within the row where editable text begins, -1 if none
}

// end returns the buffer offset one past the row's last code point.
func (r *row) end() int {
	return r.start + r.length
}

// addInput grows the row's logical span after characters were spliced into
// it. The row may transiently exceed the window width until arrange runs.
func (r *row) addInput(lengthDelta, widthDelta int) {
	r.length += lengthDelta
	r.width += widthDelta
}

// arrange rebalances rows from index i onward so every row's width is back
// inside [0, winWidth]. Undersized rows pull whole code points from their
// successor, oversized rows push trailing code points into their successor
// (creating it on demand), and an exactly-full final row gains an empty
// successor so the caret can advance past the boundary. A 2-column code
// point always moves whole, leaving a one-column soft gap at the break
// rather than splitting. Reports whether any row was created or removed,
// which callers use to widen the repaint to everything below.
func (l *line) arrange(i, winWidth int) bool {
	if winWidth < 2 {
		winWidth = 2
	}
	changed := false

	for i < len(l.rows) {
		switch {
		case l.rows[i].width < winWidth:
			changed = l.pullFromNext(i, winWidth) || changed

		case l.rows[i].width > winWidth:
			if i+1 >= len(l.rows) {
				l.rows = append(l.rows, row{start: l.rows[i].end()})
				changed = true
			}
			for l.rows[i].width > winWidth {
				last := l.rows[i].end() - 1
				w := int(l.widths[last])
				l.rows[i].length--
				l.rows[i].width -= w
				l.rows[i+1].start--
				l.rows[i+1].length++
				l.rows[i+1].width += w
			}
		}

		if l.rows[i].width == winWidth && i+1 >= len(l.rows) {
			l.rows = append(l.rows, row{start: l.rows[i].end()})
			changed = true
		}
		i++
	}

	l.refreshInputStarts()
	return changed
}

// pullFromNext fills row i with code points from its successors while the
// result still fits. Successors drained empty are removed.
func (l *line) pullFromNext(i, winWidth int) bool {
	changed := false
	for i+1 < len(l.rows) {
		next := &l.rows[i+1]
		if next.length == 0 {
			// A trailing empty row is only kept behind an exactly-full row.
			if l.rows[i].width == winWidth && i+2 >= len(l.rows) {
				break
			}
			l.rows = append(l.rows[:i+1], l.rows[i+2:]...)
			changed = true
			continue
		}
		w := int(l.widths[next.start])
		if l.rows[i].width+w > winWidth {
			break
		}
		l.rows[i].length++
		l.rows[i].width += w
		next.start++
		next.length--
		next.width -= w
	}
	return changed
}

// refreshInputStarts recomputes each row's inputStart from the prompt span.
// Rows of frozen lines are always entirely fixed text.
func (l *line) refreshInputStarts() {
	for i := range l.rows {
		r := &l.rows[i]
		switch {
		case !l.isInput:
			r.inputStart = -1
		case r.end() <= l.promptLen && r.length > 0:
			r.inputStart = -1
		case r.start >= l.promptLen:
			r.inputStart = 0
		default:
			r.inputStart = l.promptLen - r.start
		}
	}
}
