package console

import (
	"os"

	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts the raw terminal for testability and
// cross-platform support.
//
// The edit loop needs a non-blocking key source: it drains injected input,
// polls the window size, and checks cancellation between keys, so it can
// never park on a blocking read. TryReadRune returns immediately with
// (0, false) when no key is pending.
//
// Implementations:
//   - realTerminal: go-tty input with a pump goroutine for non-blocking reads
//   - mockTerminal: scripted input for deterministic tests
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore original terminal settings
	Size() (width, height int, err error) // Terminal dimensions with safe fallbacks
	TryReadRune() (rune, bool)            // Non-blocking read of one input code unit
	Close() error                         // Clean up resources and prevent fd leaks
}

// realTerminal implements terminalInterface over go-tty and golang.org/x/term.
//
// go-tty only offers a blocking ReadRune, so a pump goroutine feeds a
// buffered channel that TryReadRune drains without blocking. Raw mode state
// is captured and restored with x/term so the terminal comes back intact
// even after nested reads. The closed flag prevents the double-close panic
// on Windows.
type realTerminal struct {
	tty           *tty.TTY
	keys          chan rune
	closed        bool
	stdinFd       int
	originalState *term.State
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	rt := &realTerminal{
		tty:     t,
		keys:    make(chan rune, 128),
		stdinFd: int(os.Stdin.Fd()),
	}
	go rt.pump()
	return rt, nil
}

// pump moves runes from the blocking tty reader into the key channel. It
// exits when the tty read fails, which includes the tty being closed.
func (t *realTerminal) pump() {
	for {
		r, err := t.tty.ReadRune()
		if err != nil {
			close(t.keys)
			return
		}
		if r == 0 {
			continue
		}
		t.keys <- r
	}
}

func (t *realTerminal) SetRaw() error {
	// Capture the current state every time so restoration works no matter
	// how often raw mode is entered and left.
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state
		if _, err := term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		// Safe fallback so layout math never divides by zero.
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) TryReadRune() (rune, bool) {
	select {
	case r, ok := <-t.keys:
		if !ok {
			return 0, false
		}
		return r, true
	default:
		return 0, false
	}
}

func (t *realTerminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if t.tty != nil {
		return t.tty.Close()
	}
	return nil
}
