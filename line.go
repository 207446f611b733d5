package console

// line is one logical prompt/input line. The buffer holds the immutable
// prompt prefix followed by the editable input span; widths caches the
// display width of every code point. Rows are rebuilt or rebalanced whenever
// the content changes a wrap boundary. top is the terminal row (relative to
// the session origin) at which the line currently renders.
type line struct {
	buf       []rune
	widths    []byte
	promptLen int
	rows      []row
	top       int
	index     int
	isInput   bool
}

// setPrompt installs the fixed prefix and rebuilds the rows from scratch.
func (l *line) setPrompt(text string, winWidth int) {
	l.buf = append(l.buf[:0], []rune(text)...)
	l.widths = l.widths[:0]
	for _, r := range l.buf {
		l.widths = append(l.widths, byte(displayWidth(r)))
	}
	l.promptLen = len(l.buf)
	l.resetRows(winWidth)
}

// resetRows rebuilds the row list with a full greedy re-wrap. Used after
// setPrompt, window resize, and bulk deletions; keystroke-sized edits go
// through arrange instead.
func (l *line) resetRows(winWidth int) {
	if winWidth < 2 {
		winWidth = 2
	}
	l.rows = l.rows[:0]
	cur := row{}
	for i := range l.buf {
		w := int(l.widths[i])
		if cur.width+w > winWidth {
			l.rows = append(l.rows, cur)
			cur = row{start: i}
		}
		cur.length++
		cur.width += w
	}
	l.rows = append(l.rows, cur)
	if cur.width == winWidth {
		l.rows = append(l.rows, row{start: cur.end()})
	}
	l.refreshInputStarts()
}

// insert splices rs into the buffer at pos, credits the caret's row via
// addInput and rebalances. Reports whether the row structure changed, in
// which case everything below the edit needs repainting.
func (l *line) insert(pos int, rs []rune, winWidth int) bool {
	if len(rs) == 0 {
		return false
	}
	widthDelta := 0
	ws := make([]byte, len(rs))
	for i, r := range rs {
		w := displayWidth(r)
		ws[i] = byte(w)
		widthDelta += w
	}

	l.buf = append(l.buf, make([]rune, len(rs))...)
	copy(l.buf[pos+len(rs):], l.buf[pos:])
	copy(l.buf[pos:], rs)
	l.widths = append(l.widths, make([]byte, len(ws))...)
	copy(l.widths[pos+len(ws):], l.widths[pos:])
	copy(l.widths[pos:], ws)

	ri := l.rowForCaret(pos, winWidth)
	for j := ri + 1; j < len(l.rows); j++ {
		l.rows[j].start += len(rs)
	}
	l.rows[ri].addInput(len(rs), widthDelta)
	return l.arrange(ri, winWidth)
}

// deleteRange removes n code points starting at pos. The span must lie
// within a single row, which holds for every keystroke-sized delete; bulk
// removal goes through clearInput/resetRows. Returns whether the row
// structure changed and the display width removed.
func (l *line) deleteRange(pos, n, winWidth int) (changed bool, widthRemoved int) {
	if n <= 0 || pos < 0 || pos+n > len(l.buf) {
		return false, 0
	}
	for i := pos; i < pos+n; i++ {
		widthRemoved += int(l.widths[i])
	}

	ri := l.rowContaining(pos)

	l.buf = append(l.buf[:pos], l.buf[pos+n:]...)
	l.widths = append(l.widths[:pos], l.widths[pos+n:]...)

	l.rows[ri].length -= n
	l.rows[ri].width -= widthRemoved
	for j := ri + 1; j < len(l.rows); j++ {
		l.rows[j].start -= n
	}

	from := ri
	if from > 0 {
		from--
	}
	return l.arrange(from, winWidth), widthRemoved
}

// clearInput drops all editable content, leaving only the prompt.
func (l *line) clearInput(winWidth int) {
	l.buf = l.buf[:l.promptLen]
	l.widths = l.widths[:l.promptLen]
	l.resetRows(winWidth)
}

// rowContaining returns the index of the row whose span holds pos.
func (l *line) rowContaining(pos int) int {
	for i := range l.rows {
		if pos < l.rows[i].end() {
			return i
		}
	}
	return len(l.rows) - 1
}

// rowForCaret returns the row a caret at pos belongs to. A caret sitting at
// the end of an exactly-full row lives on the following row's first column.
func (l *line) rowForCaret(pos, winWidth int) int {
	for i := range l.rows {
		r := &l.rows[i]
		if pos < r.end() {
			return i
		}
		if pos == r.end() {
			if r.width >= winWidth && i+1 < len(l.rows) {
				continue
			}
			return i
		}
	}
	return len(l.rows) - 1
}

// trimCursorIndex maps a target display column onto the given row, clamping
// to the row's span and to the editable region. Used when the caret crosses
// rows or lines whose width differs from the column it came from.
func (l *line) trimCursorIndex(rowIdx, col int) int {
	if rowIdx < 0 || rowIdx >= len(l.rows) {
		return l.promptLen
	}
	r := &l.rows[rowIdx]
	pos := r.start
	w := 0
	for pos < r.end() && w < col {
		w += int(l.widths[pos])
		pos++
	}
	if l.isInput && pos < l.promptLen {
		pos = l.promptLen
	}
	return pos
}

// repaintAnchor returns the buffer offset a repaint should start from after a
// mutation at pos: the start of the row above, since arrange may have pulled
// code points upward across the boundary.
func (l *line) repaintAnchor(pos int) int {
	ri := l.rowContaining(pos)
	if ri > 0 {
		ri--
	}
	return l.rows[ri].start
}

// widthBetween sums the display widths of buf[a:b].
func (l *line) widthBetween(a, b int) int {
	total := 0
	for i := a; i < b && i < len(l.widths); i++ {
		total += int(l.widths[i])
	}
	return total
}

// inputText returns the editable span as a string.
func (l *line) inputText() string {
	return string(l.buf[l.promptLen:])
}

// inputLen returns the number of editable code points.
func (l *line) inputLen() int {
	return len(l.buf) - l.promptLen
}

// height returns the number of terminal rows the line occupies.
func (l *line) height() int {
	return len(l.rows)
}

// reset clears every field so the line can return to the pool.
func (l *line) reset() {
	l.buf = l.buf[:0]
	l.widths = l.widths[:0]
	l.promptLen = 0
	l.rows = l.rows[:0]
	l.top = 0
	l.index = 0
	l.isInput = false
}
