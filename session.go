package console

import "strings"

// inputMode tracks how the session decides whether input is complete.
type inputMode int

const (
	// modeSingleline accepts on the first Enter.
	modeSingleline inputMode = iota
	// modeDelimiter keeps reading lines until the count of the configured
	// delimiter token across entered lines becomes even again.
	modeDelimiter
	// modeContinuation keeps reading lines while each one ends with the
	// configured continuation rune.
	modeContinuation
)

// repaintKind names how much of the session a key event dirtied.
type repaintKind int

const (
	repaintNone   repaintKind = iota
	repaintCursor             // caret moved, no cells changed
	repaintSpan               // one line from fromPos to its end
	repaintBelow              // line from fromPos plus every later line
	repaintFull               // everything, e.g. after a resize
)

// repaint is the paint request a session mutation leaves for the renderer.
type repaint struct {
	kind    repaintKind
	lineIdx int
	fromPos int
}

// session owns the line list for one ReadLine call: the frozen multi-line
// prompt, the editable lines, the caret, and the multi-line state machine.
// Sessions are rented from a pool and fully reset on return.
type session struct {
	opts       ReadLineOptions
	lines      []*line
	firstInput int // index of the first editable line
	mode       inputMode
	contExit   bool // leaving continuation mode; assembly strips the trailing runes
	winWidth   int
	winHeight  int
	loc        location
	pending    repaint
}

// prepare populates a freshly rented session: the prompt is split on line
// breaks into frozen lines plus one trailing editable line.
func (s *session) prepare(opts ReadLineOptions, winWidth, winHeight int) {
	s.opts = opts
	s.winWidth = winWidth
	s.winHeight = winHeight
	s.mode = modeSingleline
	s.contExit = false
	s.loc.s = s

	parts := strings.Split(opts.Prompt, "\n")
	for _, p := range parts[:len(parts)-1] {
		l := rentLine()
		l.index = len(s.lines)
		l.setPrompt(p, winWidth)
		s.lines = append(s.lines, l)
	}
	l := rentLine()
	l.index = len(s.lines)
	l.isInput = true
	l.setPrompt(parts[len(parts)-1], winWidth)
	s.lines = append(s.lines, l)
	s.firstInput = len(s.lines) - 1

	s.retop()
	s.loc.reset()
	s.pending = repaint{kind: repaintFull}
}

// retop recomputes every line's starting screen row from the heights of the
// lines above it.
func (s *session) retop() {
	top := 0
	for _, l := range s.lines {
		l.top = top
		top += l.height()
	}
}

// height returns the total number of screen rows the session occupies.
func (s *session) height() int {
	if len(s.lines) == 0 {
		return 0
	}
	last := s.lines[len(s.lines)-1]
	return last.top + last.height()
}

// multiline reports whether the session is collecting multi-line input.
func (s *session) multiline() bool {
	return s.mode != modeSingleline
}

// currentLine resolves the caret's line, resetting stale indices first.
func (s *session) currentLine() *line {
	l, _, ok := s.loc.lineAndRow()
	if !ok {
		s.loc.reset()
		l, _, _ = s.loc.lineAndRow()
	}
	return l
}

// inputTotal is the length the assembled result would have right now: every
// editable line's input plus the newlines joining them.
func (s *session) inputTotal() int {
	total, n := 0, 0
	for _, l := range s.lines {
		if l.isInput {
			total += l.inputLen()
			n++
		}
	}
	if n > 1 {
		total += n - 1
	}
	return total
}

// remainingInput returns how many more code points fit under MaxInputLength.
func (s *session) remainingInput() int {
	return s.opts.MaxInputLength - s.inputTotal()
}

// inputEmpty reports whether every editable line is empty.
func (s *session) inputEmpty() bool {
	for _, l := range s.lines {
		if l.isInput && l.inputLen() > 0 {
			return false
		}
	}
	return true
}

// processKey applies one key event to the session. It reports true when
// Enter completed the read and assemble may be called. Every mutation leaves
// a repaint request in s.pending for the renderer.
func (s *session) processKey(ev KeyEvent) bool {
	s.pending = repaint{kind: repaintNone}

	switch ev.Key {
	case KeyRune:
		s.insertRunes([]rune{ev.Rune})
	case KeyEnter:
		return s.handleEnter()
	case KeyBackspace:
		s.backspace()
	case KeyDelete:
		s.deleteForward()
	case KeyCtrlU:
		s.clearLine()
	case KeyLeft:
		if s.loc.moveLeft() {
			s.pending = repaint{kind: repaintCursor}
		}
	case KeyRight:
		if s.loc.moveRight() {
			s.pending = repaint{kind: repaintCursor}
		}
	case KeyUp:
		// Reserved for history navigation outside multi-line input.
		if s.multiline() && s.loc.moveUp() {
			s.pending = repaint{kind: repaintCursor}
		}
	case KeyDown:
		if s.multiline() && s.loc.moveDown() {
			s.pending = repaint{kind: repaintCursor}
		}
	case KeyHome:
		s.loc.moveFirst()
		s.pending = repaint{kind: repaintCursor}
	case KeyEnd:
		s.loc.moveLast()
		s.pending = repaint{kind: repaintCursor}
	case KeyInsert:
		// Overtype mode is a stub.
	}
	return false
}

// insertRunes splices rs at the caret, truncating to whatever still fits
// under the length budget. Over-budget input is silently dropped.
func (s *session) insertRunes(rs []rune) {
	l := s.currentLine()
	if l == nil || !l.isInput || len(rs) == 0 {
		return
	}
	if room := s.remainingInput(); len(rs) > room {
		if room <= 0 {
			return
		}
		rs = rs[:room]
	}

	from := s.loc.pos
	changed := l.insert(from, rs, s.winWidth)
	s.loc.move(len(rs))
	if changed {
		s.retop()
		s.pending = repaint{kind: repaintBelow, lineIdx: l.index, fromPos: from}
	} else {
		s.pending = repaint{kind: repaintSpan, lineIdx: l.index, fromPos: from}
	}
}

// backspace deletes the code point before the caret. At the start of an
// empty continuation line it removes the line instead, merging the caret
// into the previous line.
func (s *session) backspace() {
	l := s.currentLine()
	if l == nil || !l.isInput {
		return
	}
	if s.loc.pos > l.promptLen {
		anchor := l.repaintAnchor(s.loc.pos - 1)
		changed, _ := l.deleteRange(s.loc.pos-1, 1, s.winWidth)
		s.loc.move(-1)
		if changed {
			s.retop()
			s.pending = repaint{kind: repaintBelow, lineIdx: l.index, fromPos: anchor}
		} else {
			s.pending = repaint{kind: repaintSpan, lineIdx: l.index, fromPos: anchor}
		}
		return
	}
	if l.inputLen() == 0 && l.index > s.firstInput {
		s.removeLine(l.index)
	}
}

// deleteForward deletes the code point under the caret, or removes an empty
// continuation line outright.
func (s *session) deleteForward() {
	l := s.currentLine()
	if l == nil || !l.isInput {
		return
	}
	if s.loc.pos < len(l.buf) {
		anchor := l.repaintAnchor(s.loc.pos)
		changed, _ := l.deleteRange(s.loc.pos, 1, s.winWidth)
		s.loc.sync()
		if changed {
			s.retop()
			s.pending = repaint{kind: repaintBelow, lineIdx: l.index, fromPos: anchor}
		} else {
			s.pending = repaint{kind: repaintSpan, lineIdx: l.index, fromPos: anchor}
		}
		return
	}
	if l.inputLen() == 0 && l.index > s.firstInput {
		s.removeLine(l.index)
	}
}

// clearLine drops all editable content of the caret's line (Ctrl+U).
func (s *session) clearLine() {
	l := s.currentLine()
	if l == nil || !l.isInput {
		return
	}
	l.clearInput(s.winWidth)
	s.loc.pos = l.promptLen
	s.loc.sync()
	s.retop()
	s.pending = repaint{kind: repaintBelow, lineIdx: l.index, fromPos: 0}
}

// removeLine returns line i to the pool and merges the caret into the line
// above it.
func (s *session) removeLine(i int) {
	l := s.lines[i]
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	returnLine(l)
	for j := i; j < len(s.lines); j++ {
		s.lines[j].index = j
	}
	s.retop()

	s.loc.lineIdx = i - 1
	if s.loc.lineIdx < 0 {
		s.loc.lineIdx = 0
	}
	s.loc.pos = len(s.lines[s.loc.lineIdx].buf)
	s.loc.sync()
	s.pending = repaint{kind: repaintBelow, lineIdx: s.loc.lineIdx, fromPos: 0}
}

// appendLine adds a fresh editable line under the continuation prompt and
// moves the caret onto it.
func (s *session) appendLine() {
	l := rentLine()
	l.index = len(s.lines)
	l.isInput = true
	l.setPrompt(s.opts.ContinuationPrompt, s.winWidth)
	s.lines = append(s.lines, l)
	s.retop()

	s.loc.lineIdx = l.index
	s.loc.pos = l.promptLen
	s.loc.sync()
	s.pending = repaint{kind: repaintBelow, lineIdx: l.index, fromPos: 0}
}

// handleEnter runs the multi-line state machine. It reports true when the
// input is complete and assemble may be called; false either continues
// editing or rejects the Enter without any state change.
func (s *session) handleEnter() bool {
	l := s.currentLine()
	if l == nil || !l.isInput {
		return false
	}

	if d := s.opts.Delimiter; d != "" {
		if strings.Count(l.inputText(), d)%2 == 1 {
			switch {
			case s.mode == modeSingleline && l.index == s.firstInput:
				s.mode = modeDelimiter
			case s.mode == modeDelimiter && l.index == len(s.lines)-1:
				s.mode = modeSingleline
			}
		}
	}

	if c := s.opts.ContinuationRune; c != 0 {
		ends := strings.HasSuffix(l.inputText(), string(c))
		if s.mode == modeSingleline && ends {
			s.mode = modeContinuation
		} else if s.mode == modeContinuation && !ends {
			s.contExit = true
			s.mode = modeSingleline
		}
	}

	if s.multiline() {
		if l.index == len(s.lines)-1 {
			if l.inputLen() == 0 || s.remainingInput() < 1 {
				return false
			}
			s.appendLine()
			return false
		}
		// Enter on a line the caret was moved up to just advances focus.
		s.loc.lineIdx = l.index + 1
		s.loc.pos = len(s.lines[s.loc.lineIdx].buf)
		s.loc.sync()
		s.pending = repaint{kind: repaintCursor}
		return false
	}

	if !s.opts.AllowEmptyInput && s.inputEmpty() {
		return false
	}
	return true
}

// assemble builds the final string. Delimiter tokens stay in the result; in
// line-continuation mode the trailing continuation rune is stripped from
// every line but the last and the pieces concatenate with no separator.
func (s *session) assemble() string {
	var parts []string
	for _, l := range s.lines {
		if l.isInput {
			parts = append(parts, l.inputText())
		}
	}
	if s.contExit && s.opts.ContinuationRune != 0 {
		suffix := string(s.opts.ContinuationRune)
		for i := 0; i < len(parts)-1; i++ {
			parts[i] = strings.TrimSuffix(parts[i], suffix)
		}
		return strings.Join(parts, "")
	}
	return strings.Join(parts, "\n")
}

// resize rebuilds every line's rows for the new window width. Wrap
// boundaries are width-dependent, so nothing survives a resize in place.
func (s *session) resize(winWidth, winHeight int) {
	if winWidth == s.winWidth && winHeight == s.winHeight {
		return
	}
	s.winWidth = winWidth
	s.winHeight = winHeight
	for _, l := range s.lines {
		l.resetRows(winWidth)
	}
	s.retop()
	s.loc.sync()
	s.pending = repaint{kind: repaintFull}
}

// reset clears every field so the session can return to the pool. Rented
// lines go back to their own pool first.
func (s *session) reset() {
	for _, l := range s.lines {
		returnLine(l)
	}
	s.lines = s.lines[:0]
	s.opts = ReadLineOptions{}
	s.firstInput = 0
	s.mode = modeSingleline
	s.contExit = false
	s.winWidth = 0
	s.winHeight = 0
	s.loc = location{}
	s.pending = repaint{}
}
