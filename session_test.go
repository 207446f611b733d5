package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPrepareSplitsPrompt(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt("Enter your query below.\n> "))

	require.Len(t, s.lines, 2)
	assert.False(t, s.lines[0].isInput, "prompt lines above the last are frozen")
	assert.True(t, s.lines[1].isInput)
	assert.Equal(t, 1, s.firstInput)
	assert.Equal(t, 0, s.lines[0].top)
	assert.Equal(t, 1, s.lines[1].top)
	assert.Equal(t, 1, s.loc.lineIdx, "caret starts on the editable line")
	assert.Equal(t, s.lines[1].promptLen, s.loc.pos)
	assert.Equal(t, repaintFull, s.pending.kind)
}

func TestSessionSinglelineAccept(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt("> "))

	assert.False(t, pressKeys(s, "hello"))
	assert.True(t, pressKeys(s, "\r"))
	assert.Equal(t, "hello", s.assemble())
}

func TestSessionDelimiterFlow(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt("sql> "), WithContinuationPrompt("...> "), WithDelimiter(`"""`))

	// An odd delimiter count on the first line opens multi-line collection.
	assert.False(t, pressKeys(s, "\"\"\"\r"))
	assert.Equal(t, modeDelimiter, s.mode)
	require.Len(t, s.lines, 2)
	assert.Equal(t, "...> ", string(s.lines[1].buf[:s.lines[1].promptLen]))

	assert.False(t, pressKeys(s, "done\r"))
	require.Len(t, s.lines, 3)

	// The closing token makes the count even again and completes the read.
	assert.True(t, pressKeys(s, "\"\"\"\r"))
	assert.Equal(t, modeSingleline, s.mode)
	assert.Equal(t, "\"\"\"\ndone\n\"\"\"", s.assemble(), "delimiter tokens stay in the result")
}

func TestSessionDelimiterBalancedLineStaysSingle(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithDelimiter(`"""`))

	// Two tokens on one line open and close in place.
	assert.True(t, pressKeys(s, "\"\"\"inline\"\"\"\r"))
	assert.Equal(t, `"""inline"""`, s.assemble())
}

func TestSessionContinuationFlow(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithLineContinuation('\\'))

	assert.False(t, pressKeys(s, "A\\\r"))
	assert.Equal(t, modeContinuation, s.mode)
	assert.False(t, pressKeys(s, "B\\\r"))
	require.Len(t, s.lines, 3)

	// A line without the trailing rune ends collection.
	assert.True(t, pressKeys(s, "C\r"))
	assert.Equal(t, "ABC", s.assemble(), "continuation runes are stripped and pieces concatenate")
}

func TestSessionMaxInputLengthDropsOverflow(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithMaxInputLength(5))
	pressKeys(s, "abcdef")

	assert.Equal(t, "abcde", s.lines[0].inputText(), "the sixth rune is over budget")
	assert.Equal(t, 0, s.remainingInput())
}

func TestSessionRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithAllowEmptyInput(false))

	assert.False(t, pressKeys(s, "\r"), "empty Enter is rejected")
	assert.True(t, pressKeys(s, "hi\r"))
	assert.Equal(t, "hi", s.assemble())
}

func TestSessionBackspaceRemovesEmptyLine(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithDelimiter(`"""`))
	pressKeys(s, "\"\"\"\r")
	require.Len(t, s.lines, 2)

	pressKeys(s, "\x7f")

	require.Len(t, s.lines, 1, "backspace on an empty appended line removes it")
	assert.Equal(t, 0, s.loc.lineIdx)
	assert.Equal(t, len(s.lines[0].buf), s.loc.pos, "caret merges to the end of the line above")
}

func TestSessionBackspaceKeepsFirstLine(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt("> "))
	pressKeys(s, "\x7f")

	require.Len(t, s.lines, 1, "the first editable line is never removed")
	assert.Equal(t, s.lines[0].promptLen, s.loc.pos)
}

func TestSessionCtrlUClearsLine(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt("> "))
	pressKeys(s, "hello world")

	s.processKey(KeyEvent{Key: KeyCtrlU})

	assert.Equal(t, "", s.lines[0].inputText())
	assert.Equal(t, s.lines[0].promptLen, s.loc.pos)
	assert.Equal(t, repaintBelow, s.pending.kind)
}

func TestSessionEnterMidListAdvancesFocus(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithDelimiter(`"""`))
	pressKeys(s, "\"\"\"\r")
	pressKeys(s, "body")
	require.Len(t, s.lines, 2)

	s.processKey(KeyEvent{Key: KeyUp})
	require.Equal(t, 0, s.loc.lineIdx)

	// Enter above the last line only moves focus; no line is appended.
	assert.False(t, s.processKey(KeyEvent{Key: KeyEnter}))
	require.Len(t, s.lines, 2)
	assert.Equal(t, 1, s.loc.lineIdx)
	assert.Equal(t, len(s.lines[1].buf), s.loc.pos)
}

func TestSessionEarlierMultilineLineStaysEditable(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithDelimiter(`"""`))
	pressKeys(s, "\"\"\"\r")
	pressKeys(s, "second")

	// Moving the caret back up re-focuses the earlier line; keystrokes apply
	// to whichever editable line holds the caret.
	s.processKey(KeyEvent{Key: KeyUp})
	require.Equal(t, 0, s.loc.lineIdx)
	s.processKey(KeyEvent{Key: KeyRune, Rune: '!'})

	assert.Equal(t, `"""!`, s.lines[0].inputText())
	assert.Equal(t, "second", s.lines[1].inputText())
}

func TestSessionEnterOnEmptyLastLineRejected(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithDelimiter(`"""`))
	pressKeys(s, "\"\"\"\r")
	require.Len(t, s.lines, 2)

	assert.False(t, pressKeys(s, "\r"), "an empty last line cannot spawn another")
	require.Len(t, s.lines, 2)
}

func TestSessionUpDownIgnoredOutsideMultiline(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 10, WithPrompt(""))
	pressKeys(s, "abcdefghijklmno") // wraps to two rows
	require.Greater(t, len(s.lines[0].rows), 1)

	s.processKey(KeyEvent{Key: KeyUp})
	assert.Equal(t, repaintNone, s.pending.kind, "vertical movement is reserved outside multi-line input")
	assert.Equal(t, 15, s.loc.pos)

	s.processKey(KeyEvent{Key: KeyDown})
	assert.Equal(t, repaintNone, s.pending.kind)
}

func TestSessionHomeEnd(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt("> "))
	pressKeys(s, "hello")

	s.processKey(KeyEvent{Key: KeyHome})
	assert.Equal(t, s.lines[0].promptLen, s.loc.pos)

	s.processKey(KeyEvent{Key: KeyEnd})
	assert.Equal(t, len(s.lines[0].buf), s.loc.pos)
}

func TestSessionDeleteForward(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt("> "))
	pressKeys(s, "hello")
	s.processKey(KeyEvent{Key: KeyHome})

	s.processKey(KeyEvent{Key: KeyDelete})
	assert.Equal(t, "ello", s.lines[0].inputText())

	s.processKey(KeyEvent{Key: KeyEnd})
	s.processKey(KeyEvent{Key: KeyDelete})
	assert.Equal(t, "ello", s.lines[0].inputText(), "delete at the end is a no-op")
}

func TestSessionResizeReflows(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithPrompt(""))
	for i := 0; i < 60; i++ {
		s.processKey(KeyEvent{Key: KeyRune, Rune: 'a'})
	}
	require.Equal(t, 1, s.height())

	s.resize(40, 24)

	assert.Equal(t, 2, s.height())
	assert.Equal(t, repaintFull, s.pending.kind)
	assert.Equal(t, 60, s.loc.pos, "the caret's buffer position survives the reflow")
	assert.Equal(t, 1, s.loc.rowIdx)
	assert.Equal(t, 20, s.loc.col)
}

func TestSessionInputTotalSpansLines(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithDelimiter(`"""`))
	pressKeys(s, "\"\"\"\r")
	pressKeys(s, "ab")

	// 3 + 2 runes of input plus the newline that will join them.
	assert.Equal(t, 6, s.inputTotal())
}

func TestSessionResetReturnsToPoolState(t *testing.T) {
	t.Parallel()

	s := newTestSessionWidth(t, 80, WithDelimiter(`"""`))
	pressKeys(s, "\"\"\"\r")
	pressKeys(s, "body")

	s.reset()

	assert.Empty(t, s.lines)
	assert.Equal(t, modeSingleline, s.mode)
	assert.False(t, s.contExit)
	assert.Zero(t, s.winWidth)
	assert.Equal(t, ReadLineOptions{}, s.opts)
}
