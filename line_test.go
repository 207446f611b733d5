package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newInputLine builds an editable line with the given prompt and input,
// wrapped at winWidth.
func newInputLine(t *testing.T, prompt, input string, winWidth int) *line {
	t.Helper()
	l := &line{isInput: true}
	l.setPrompt(prompt, winWidth)
	l.insert(l.promptLen, []rune(input), winWidth)
	return l
}

// checkRowInvariant verifies the structural invariants every mutation plus
// arrange must restore: row spans tile the buffer exactly, no row exceeds
// the window width, and non-final rows are filled to the width (minus at
// most one column for a wide-character soft wrap).
func checkRowInvariant(t *testing.T, l *line, winWidth int) {
	t.Helper()
	require.NotEmpty(t, l.rows)

	offset := 0
	total := 0
	for i, r := range l.rows {
		assert.Equal(t, offset, r.start, "row %d start", i)
		assert.Equal(t, l.widthBetween(r.start, r.end()), r.width, "row %d cached width", i)
		assert.LessOrEqual(t, r.width, winWidth, "row %d exceeds window", i)
		if i < len(l.rows)-1 {
			assert.GreaterOrEqual(t, r.width, winWidth-1, "non-final row %d under-filled", i)
		}
		offset = r.end()
		total += r.length
	}
	assert.Equal(t, len(l.buf), total, "row lengths must tile the buffer")
}

func TestSetPromptBuildsRows(t *testing.T) {
	t.Parallel()

	l := &line{isInput: true}
	l.setPrompt("$ ", 80)

	assert.Equal(t, 2, l.promptLen)
	assert.Len(t, l.rows, 1)
	assert.Equal(t, 2, l.rows[0].width)
	assert.Equal(t, 0, l.inputLen())
	checkRowInvariant(t, l, 80)
}

func TestInsertWrapsAcrossRows(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "", "abcdefghijklmno", 10) // 15 narrow chars at width 10

	require.Len(t, l.rows, 2)
	assert.Equal(t, 10, l.rows[0].width, "non-final row must be exactly full")
	assert.Equal(t, 5, l.rows[1].width)
	checkRowInvariant(t, l, 10)
}

func TestInsertExactlyFullRowGainsEmptySuccessor(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "", "abcdefghij", 10)

	require.Len(t, l.rows, 2, "an exactly-full row needs an empty successor for the caret")
	assert.Equal(t, 10, l.rows[0].width)
	assert.Equal(t, 0, l.rows[1].length)
	checkRowInvariant(t, l, 10)
}

func TestInsertMidBufferShiftsTail(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "> ", "held", 80)
	l.insert(l.promptLen+2, []rune("llo wor"), 80)

	assert.Equal(t, "hello world", l.inputText())
	checkRowInvariant(t, l, 80)
}

func TestWideRuneNeverSplitsAcrossRows(t *testing.T) {
	t.Parallel()

	// Nine narrow chars leave one free column; the 2-column rune must move
	// whole to the next row, leaving a soft gap.
	l := newInputLine(t, "", "abcdefghi世x", 10)

	require.Len(t, l.rows, 2)
	assert.Equal(t, 9, l.rows[0].width, "soft gap before the wide rune")
	assert.Equal(t, 9, l.rows[0].length)
	assert.Equal(t, '世', l.buf[l.rows[1].start])
	checkRowInvariant(t, l, 10)
}

func TestDeletePullsFromNextRow(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "", "abcdefghijklmno", 10)
	require.Len(t, l.rows, 2)

	changed, widthRemoved := l.deleteRange(0, 1, 10)

	assert.False(t, changed, "pulling across the boundary keeps the row count")
	assert.Equal(t, 1, widthRemoved)
	assert.Equal(t, "bcdefghijklmno", l.inputText())
	assert.Equal(t, 10, l.rows[0].width, "first row refills from its successor")
	assert.Equal(t, 4, l.rows[1].width)
	checkRowInvariant(t, l, 10)
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "> ", "abcdefghijklm", 10)

	wantRows := append([]row(nil), l.rows...)
	wantLen := len(l.buf)
	wantWidth := l.widthBetween(0, len(l.buf))

	pos := l.promptLen + 4
	l.insert(pos, []rune("XY"), 10)
	_, _ = l.deleteRange(pos, 2, 10)

	assert.Equal(t, wantLen, len(l.buf))
	assert.Equal(t, wantWidth, l.widthBetween(0, len(l.buf)))
	assert.Equal(t, wantRows, l.rows, "rows must be restored exactly")
	checkRowInvariant(t, l, 10)
}

func TestDeleteWideRuneRemovesFullWidth(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "", "a世b", 80)

	changed, widthRemoved := l.deleteRange(1, 1, 80)

	assert.False(t, changed)
	assert.Equal(t, 2, widthRemoved, "a 2-column rune is removed as a unit")
	assert.Equal(t, "ab", l.inputText())
	checkRowInvariant(t, l, 80)
}

func TestResetRowsAfterResize(t *testing.T) {
	t.Parallel()

	input := make([]rune, 60)
	for i := range input {
		input[i] = 'a'
	}
	l := newInputLine(t, "", string(input), 80)
	require.Len(t, l.rows, 1)

	l.resetRows(40)

	require.Len(t, l.rows, 2, "60 narrow chars at width 40 must reflow to 2 rows")
	assert.Equal(t, 40, l.rows[0].width)
	assert.Equal(t, 20, l.rows[1].width)
	assert.Equal(t, string(input), l.inputText(), "no character loss on reflow")
	checkRowInvariant(t, l, 40)
}

func TestClearInput(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "> ", "abcdefghijklmnop", 10)
	require.Greater(t, len(l.rows), 1)

	l.clearInput(10)

	assert.Equal(t, 0, l.inputLen())
	assert.Equal(t, "> ", string(l.buf))
	require.Len(t, l.rows, 1)
	checkRowInvariant(t, l, 10)
}

func TestRowInputStart(t *testing.T) {
	t.Parallel()

	// Prompt spans the whole first row; input starts on the second.
	l := newInputLine(t, "prompt> ", "abcd", 8)

	require.GreaterOrEqual(t, len(l.rows), 2)
	assert.Equal(t, -1, l.rows[0].inputStart, "all-prompt row has no editable span")
	assert.Equal(t, 0, l.rows[1].inputStart, "all-input row starts editable at offset 0")

	// Mixed row: prompt and input share the first row.
	m := newInputLine(t, "> ", "ab", 80)
	assert.Equal(t, 2, m.rows[0].inputStart)

	// Frozen lines are entirely fixed.
	f := &line{}
	f.setPrompt("title", 80)
	assert.Equal(t, -1, f.rows[0].inputStart)
}

func TestRowForCaretAtFullRowBoundary(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "", "abcdefghij", 10) // exactly full + empty successor

	assert.Equal(t, 0, l.rowForCaret(5, 10))
	assert.Equal(t, 1, l.rowForCaret(10, 10), "caret after a full row lives on the next row")
}

func TestTrimCursorIndex(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "", "abcdefghijklmno", 10)

	assert.Equal(t, 3, l.trimCursorIndex(0, 3))
	assert.Equal(t, 13, l.trimCursorIndex(1, 3))
	assert.Equal(t, 15, l.trimCursorIndex(1, 99), "column clamps to the row end")

	// The caret may not land inside the prompt.
	p := newInputLine(t, "> ", "x", 80)
	assert.Equal(t, 2, p.trimCursorIndex(0, 0))
}

func TestLineReset(t *testing.T) {
	t.Parallel()

	l := newInputLine(t, "> ", "abc", 80)
	l.top = 3
	l.index = 2

	l.reset()

	assert.Empty(t, l.buf)
	assert.Empty(t, l.widths)
	assert.Empty(t, l.rows)
	assert.Zero(t, l.promptLen)
	assert.Zero(t, l.top)
	assert.Zero(t, l.index)
	assert.False(t, l.isInput)
}
