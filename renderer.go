package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// renderer paints the edit region with minimal escape-sequence bursts.
//
// Every paint is assembled into one buffer and written with a single Write:
// hide cursor, reposition, repaint the dirtied rows, erase stale cells,
// reposition to the caret, show cursor. Positions are tracked relative to
// the session origin (the terminal row the prompt started on), so the
// renderer never queries the terminal; rows below the highest row reached so
// far are entered with real newlines, which makes the window scroll when the
// session grows past the bottom.
//
// Write errors are swallowed: rendering degrades but the edit loop
// continues.
type renderer struct {
	out       io.Writer
	scheme    *ColorScheme
	buf       bytes.Buffer
	winWidth  int
	winHeight int
	curRow    int // tracked cursor row, session-relative
	curCol    int
	maxRow    int // highest session row ever entered
}

func newRenderer(out io.Writer, scheme *ColorScheme) *renderer {
	return &renderer{out: out, scheme: scheme}
}

// beginSession resets position tracking for a session whose first row is the
// cursor's current terminal row, column zero.
func (rd *renderer) beginSession(winWidth, winHeight int) {
	rd.winWidth = winWidth
	rd.winHeight = winHeight
	rd.curRow = 0
	rd.curCol = 0
	rd.maxRow = 0
}

// scrollTop returns the first session row still inside the window. Entering
// fresh rows at the bottom scrolls the terminal, so once the session grows
// taller than the window the rows above this boundary are gone from the
// screen and can no longer be addressed by cursor moves.
func (rd *renderer) scrollTop() int {
	if rd.winHeight <= 0 {
		return 0
	}
	top := rd.maxRow - rd.winHeight + 1
	if top < 0 {
		top = 0
	}
	return top
}

// apply executes one repaint request and repositions the caret. A pure caret
// move that lands on the tracked position emits nothing at all.
func (rd *renderer) apply(s *session, p repaint, mask rune) {
	if p.kind == repaintNone {
		return
	}
	rd.winWidth = s.winWidth
	rd.winHeight = s.winHeight

	if p.kind == repaintCursor {
		row, col := s.loc.screenPos()
		if row == rd.curRow && col == rd.curCol {
			return
		}
		rd.moveTo(row, col)
		rd.flush()
		return
	}

	rd.buf.WriteString("\x1b[?25l")
	switch p.kind {
	case repaintSpan:
		rd.paintLineFrom(s.lines[p.lineIdx], p.fromPos, mask)
	case repaintBelow:
		rd.paintLineFrom(s.lines[p.lineIdx], p.fromPos, mask)
		for i := p.lineIdx + 1; i < len(s.lines); i++ {
			rd.paintLineFrom(s.lines[i], 0, mask)
		}
		rd.buf.WriteString("\x1b[J")
	case repaintFull:
		for _, l := range s.lines {
			rd.paintLineFrom(l, 0, mask)
		}
		rd.buf.WriteString("\x1b[J")
	}
	row, col := s.loc.screenPos()
	rd.moveTo(row, col)
	rd.buf.WriteString("\x1b[?25h")
	rd.flush()
}

// paintLineFrom repaints the line's rows starting at the row holding buffer
// offset from. Each painted row is erased to its end so glyphs left by
// shrunk or removed characters never linger.
func (rd *renderer) paintLineFrom(l *line, from int, mask rune) {
	if len(l.rows) == 0 {
		return
	}
	ri := l.rowContaining(from)
	for ; ri < len(l.rows); ri++ {
		if l.top+ri < rd.scrollTop() {
			// The row has scrolled off the top of the window.
			continue
		}
		r := &l.rows[ri]
		start := r.start
		if from > start {
			start = from
		}
		if start > r.end() {
			continue
		}
		rd.moveTo(l.top+ri, l.widthBetween(r.start, start))
		rd.writeSpan(l, start, r.end(), mask)
		if rd.curCol < rd.winWidth {
			rd.buf.WriteString("\x1b[K")
		}
		if r.width == rd.winWidth && ri+1 < len(l.rows) {
			// Force the wrap at the right edge so the terminal scrolls
			// instead of leaving the cursor in the pending-wrap state.
			rd.buf.WriteString("\r\n")
			rd.curRow++
			rd.curCol = 0
			if rd.curRow > rd.maxRow {
				rd.maxRow = rd.curRow
			}
		}
	}
}

// writeSpan writes buf[a:b] of the line: prompt text in the prefix color,
// input text in the input color, masked input as mask repeats matching the
// span's display width.
func (rd *renderer) writeSpan(l *line, a, b int, mask rune) {
	if a >= b {
		return
	}
	if a < l.promptLen {
		pe := b
		if pe > l.promptLen {
			pe = l.promptLen
		}
		rd.buf.WriteString(rd.scheme.Prefix.ToANSI())
		rd.buf.WriteString(string(l.buf[a:pe]))
		rd.buf.WriteString(Reset())
		rd.curCol += l.widthBetween(a, pe)
		a = pe
	}
	if a >= b {
		return
	}
	w := l.widthBetween(a, b)
	rd.buf.WriteString(rd.scheme.Input.ToANSI())
	if mask != 0 {
		rd.buf.WriteString(strings.Repeat(string(mask), w))
	} else {
		rd.buf.WriteString(string(l.buf[a:b]))
	}
	rd.buf.WriteString(Reset())
	rd.curCol += w
}

// writeAbove prints external output where the edit region currently is and
// repaints the whole session below it. Callers hold the paint lock.
func (rd *renderer) writeAbove(s *session, text string, mask rune) {
	rd.winWidth = s.winWidth
	rd.winHeight = s.winHeight
	rd.buf.WriteString("\x1b[?25l")
	rd.moveTo(0, 0)
	rd.buf.WriteString("\x1b[J")
	for _, ln := range strings.Split(text, "\n") {
		rd.buf.WriteString(ln)
		rd.buf.WriteString("\x1b[K\r\n")
	}
	// The row after the printed text becomes the session's new origin.
	rd.curRow = 0
	rd.curCol = 0
	rd.maxRow = 0
	for _, l := range s.lines {
		rd.paintLineFrom(l, 0, mask)
	}
	rd.buf.WriteString("\x1b[J")
	row, col := s.loc.screenPos()
	rd.moveTo(row, col)
	rd.buf.WriteString("\x1b[?25h")
	rd.flush()
}

// finish parks the cursor on a fresh row below the session, where the shell
// or the next prompt continues.
func (rd *renderer) finish(s *session) {
	if len(s.lines) > 0 {
		last := s.lines[len(s.lines)-1]
		rd.moveTo(last.top+len(last.rows)-1, last.rows[len(last.rows)-1].width)
	}
	rd.buf.WriteString("\r\n")
	rd.flush()
}

// moveTo emits the relative cursor moves from the tracked position to
// (row, col). Rows beyond maxRow are entered with newlines so the terminal
// scrolls at the window bottom; rows above scrollTop no longer exist on
// screen, so the vertical target clamps to the visible region.
func (rd *renderer) moveTo(row, col int) {
	if top := rd.scrollTop(); row < top {
		row = top
	}
	if row > rd.maxRow && rd.curRow < rd.maxRow {
		rd.vmove(rd.maxRow)
	}
	for rd.maxRow < row {
		rd.buf.WriteString("\r\n")
		rd.maxRow++
		rd.curRow = rd.maxRow
		rd.curCol = 0
	}
	rd.vmove(row)
	rd.hmove(col)
}

func (rd *renderer) vmove(row int) {
	switch d := row - rd.curRow; {
	case d > 0:
		fmt.Fprintf(&rd.buf, "\x1b[%dB", d)
	case d < 0:
		fmt.Fprintf(&rd.buf, "\x1b[%dA", -d)
	}
	rd.curRow = row
}

func (rd *renderer) hmove(col int) {
	if col == rd.curCol {
		return
	}
	rd.buf.WriteByte('\r')
	if col > 0 {
		fmt.Fprintf(&rd.buf, "\x1b[%dC", col)
	}
	rd.curCol = col
}

func (rd *renderer) flush() {
	if rd.buf.Len() == 0 {
		return
	}
	_, _ = rd.out.Write(rd.buf.Bytes())
	rd.buf.Reset()
}
