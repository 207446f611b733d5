package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
)

// Common errors
var (
	// ErrClosed is returned when input is injected into a closed console.
	ErrClosed = errors.New("console is closed")
	// ErrQueueFull is returned when the injection queue is at capacity.
	ErrQueueFull = errors.New("input queue is full")
)

// ReadStatus classifies how a ReadLine call ended.
type ReadStatus int

const (
	// ReadSuccess means Enter completed the input; Text holds the result.
	ReadSuccess ReadStatus = iota
	// ReadCanceled means the user canceled (Escape with CancelOnEscape,
	// Ctrl+C, or a key hook returning KeyHandledCancel).
	ReadCanceled
	// ReadTerminated means an external shutdown was observed: context
	// cancellation, InjectTerminate, or the console closing.
	ReadTerminated
)

// ReadResult is the outcome of one ReadLine call. Text is set only for
// ReadSuccess.
type ReadResult struct {
	Status ReadStatus
	Text   string
}

const (
	// pollInterval is the cooperative sleep between key polls; cancellation
	// is observed within roughly one interval.
	pollInterval = 10 * time.Millisecond
	// escapeTimeout is how long a lone ESC may wait for sequence bytes
	// before it decodes as the Escape key.
	escapeTimeout = 20 * time.Millisecond
	// injectQueueCap bounds the programmatic input queue.
	injectQueueCap = 64
)

// injected is one queued programmatic input item.
type injected struct {
	text      string
	terminate bool
}

// Console is the public surface: it owns the terminal, serializes every
// paint behind one lock, and runs the edit loop for each ReadLine call.
//
// Reads may nest: a key hook can call ReadLine again, and the nested session
// owns the terminal focus until it completes. Background goroutines may call
// WriteLine at any time; the output is printed above the edit region and the
// region is redrawn.
type Console struct {
	mu       sync.Mutex // serializes paints and session mutation
	terminal terminalInterface
	out      io.Writer
	scheme   *ColorScheme
	decoder  *keyDecoder
	renderer *renderer
	inject   chan injected
	stack    []*session // nested reads; the last entry owns focus
	rawDepth int
	closed   bool
}

// Option configures a Console.
type Option func(*Console)

// WithOutput redirects escape-sequence output, mainly for tests.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		c.out = w
	}
}

// WithColorScheme sets the colors used for prompt and input text.
func WithColorScheme(scheme *ColorScheme) Option {
	return func(c *Console) {
		if scheme != nil {
			c.scheme = scheme
		}
	}
}

// New creates a console bound to the real terminal.
//
// Example:
//
//	c, err := console.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	res := c.ReadLine(context.Background(), console.WithPrompt("$ "))
//	if res.Status == console.ReadSuccess {
//		fmt.Printf("you entered: %s\n", res.Text)
//	}
func New(opts ...Option) (*Console, error) {
	t, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	var out io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		out = colorable.NewColorableStdout()
	}
	return newConsole(t, out, opts...), nil
}

func newConsole(t terminalInterface, out io.Writer, opts ...Option) *Console {
	c := &Console{
		terminal: t,
		out:      out,
		scheme:   ThemeDefault,
		decoder:  newKeyDecoder(),
		inject:   make(chan injected, injectQueueCap),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.renderer = newRenderer(c.out, c.scheme)
	return c
}

// ReadLine runs one interactive read and returns when the input is complete,
// canceled, or terminated. It never returns an error: terminal I/O failures
// degrade rendering but do not abort the read, and external shutdown is
// reported as the ReadTerminated status.
func (c *Console) ReadLine(ctx context.Context, opts ...ReadLineOption) ReadResult {
	o := defaultReadLineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ReadResult{Status: ReadTerminated}
	}
	if c.rawDepth == 0 {
		if err := c.terminal.SetRaw(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to enter raw mode: %v\n", err)
		}
	}
	c.rawDepth++

	w, h := c.size()
	s := rentSession()
	s.prepare(o, w, h)
	if len(c.stack) > 0 {
		// A nested read renders below the session it preempts.
		c.renderer.finish(c.stack[len(c.stack)-1])
	}
	c.stack = append(c.stack, s)
	c.renderer.beginSession(w, h)
	c.renderer.apply(s, s.pending, o.MaskRune)
	c.mu.Unlock()

	res := c.editLoop(ctx, s)

	c.mu.Lock()
	c.renderer.finish(s)
	c.stack = c.stack[:len(c.stack)-1]
	returnSession(s)
	if len(c.stack) > 0 {
		// Hand the terminal back to the preempted session by repainting it
		// below the nested read's output.
		outer := c.stack[len(c.stack)-1]
		c.renderer.beginSession(outer.winWidth, outer.winHeight)
		outer.pending = repaint{kind: repaintFull}
		c.renderer.apply(outer, outer.pending, outer.opts.MaskRune)
	}
	c.rawDepth--
	if c.rawDepth == 0 {
		if err := c.terminal.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal: %v\n", err)
		}
	}
	c.mu.Unlock()
	return res
}

// editLoop drains injected input, polls the terminal, and applies key events
// until the session produces a result.
func (c *Console) editLoop(ctx context.Context, s *session) ReadResult {
	for {
		if ctx.Err() != nil || c.isClosed() {
			return ReadResult{Status: ReadTerminated}
		}

		select {
		case in := <-c.inject:
			if in.terminate {
				return ReadResult{Status: ReadTerminated}
			}
			if res, done := c.feedText(s, in.text); done {
				return res
			}
			continue
		default:
		}

		c.pollResize(s)

		r, ok := c.terminal.TryReadRune()
		if !ok {
			time.Sleep(pollInterval)
			continue
		}

		var ev KeyEvent
		if r == 0x1b {
			ev = c.readEscape()
		} else {
			var decoded bool
			ev, decoded = c.decoder.decode(r)
			if !decoded {
				continue
			}
		}
		if res, done := c.handleEvent(s, ev); done {
			return res
		}
	}
}

// pollResize rebuilds the session layout when the window size changed since
// the last iteration.
func (c *Console) pollResize(s *session) {
	w, h := c.size()
	if w == s.winWidth && h == s.winHeight {
		return
	}
	c.mu.Lock()
	s.resize(w, h)
	c.renderer.apply(s, s.pending, s.opts.MaskRune)
	c.mu.Unlock()
}

// feedText replays injected text through the same path typed keys take.
// Line breaks act as Enter.
func (c *Console) feedText(s *session, text string) (ReadResult, bool) {
	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		var ev KeyEvent
		if r == '\r' || r == '\n' {
			if r == '\r' && i+1 < len(rs) && rs[i+1] == '\n' {
				i++
			}
			ev = KeyEvent{Key: KeyEnter}
		} else {
			var ok bool
			ev, ok = c.decoder.decode(r)
			if !ok {
				continue
			}
		}
		if res, done := c.handleEvent(s, ev); done {
			return res, true
		}
	}
	return ReadResult{}, false
}

// readEscape collects the bytes following an ESC into a key event. A lone
// ESC with no follow-up within the timeout is the Escape key itself.
func (c *Console) readEscape() KeyEvent {
	var seq strings.Builder
	deadline := time.Now().Add(escapeTimeout)
	for {
		r, ok := c.terminal.TryReadRune()
		if !ok {
			if time.Now().After(deadline) {
				if seq.Len() == 0 {
					return KeyEvent{Key: KeyEscape}
				}
				return c.decoder.sequenceKey(seq.String())
			}
			time.Sleep(time.Millisecond)
			continue
		}
		seq.WriteRune(r)
		s := seq.String()
		if isSequenceComplete(s) {
			return c.decoder.sequenceKey(s)
		}
		if !c.decoder.hasSequencePrefix(s) {
			return KeyEvent{Key: KeyNone}
		}
	}
}

// handleEvent runs one key event through the hook, the cancel keys, and the
// session, then repaints. done is true when the read finished.
func (c *Console) handleEvent(s *session, ev KeyEvent) (ReadResult, bool) {
	if ev.Key == KeyNone {
		return ReadResult{}, false
	}

	// The key hook runs outside the paint lock so it may open a nested read.
	if hook := s.opts.KeyHook; hook != nil {
		switch hook(ev) {
		case KeyHandled:
			return ReadResult{}, false
		case KeyHandledCancel:
			return ReadResult{Status: ReadCanceled}, true
		}
	}

	switch ev.Key {
	case KeyEscape:
		if s.opts.CancelOnEscape {
			return ReadResult{Status: ReadCanceled}, true
		}
		return ReadResult{}, false
	case KeyCtrlC:
		return ReadResult{Status: ReadCanceled}, true
	case KeyCtrlD, KeyTab:
		// Decoded for key hooks; no default editing behavior.
		return ReadResult{}, false
	}

	c.mu.Lock()
	accepted := s.processKey(ev)
	c.renderer.apply(s, s.pending, s.opts.MaskRune)
	c.mu.Unlock()

	if !accepted {
		return ReadResult{}, false
	}

	text := s.assemble()
	if hook := s.opts.TextHook; hook != nil {
		replaced, action := hook(text)
		if action == TextReject {
			return ReadResult{}, false
		}
		text = replaced
	}
	return ReadResult{Status: ReadSuccess, Text: text}, true
}

// WriteLine prints a line of output. It is safe to call from any goroutine
// while a ReadLine is in progress: the text appears above the edit region
// and the region is redrawn under it.
func (c *Console) WriteLine(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if len(c.stack) == 0 {
		fmt.Fprint(c.out, text+"\r\n")
		return
	}
	s := c.stack[len(c.stack)-1]
	c.renderer.writeAbove(s, text, s.opts.MaskRune)
}

// InjectInput enqueues text to be treated as if the user typed it. Line
// breaks act as Enter. The queue is bounded; ErrQueueFull reports an
// undrained queue rather than blocking the caller.
func (c *Console) InjectInput(text string) error {
	if c.isClosed() {
		return ErrClosed
	}
	select {
	case c.inject <- injected{text: text}:
		return nil
	default:
		return ErrQueueFull
	}
}

// InjectTerminate enqueues the termination sentinel: the active (or next)
// ReadLine returns ReadTerminated when it drains the queue.
func (c *Console) InjectTerminate() error {
	if c.isClosed() {
		return ErrClosed
	}
	select {
	case c.inject <- injected{terminate: true}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close restores the terminal and releases its resources. Safe to call more
// than once; an in-progress ReadLine observes the close within one poll
// interval and returns ReadTerminated.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.out != nil {
		fmt.Fprint(c.out, "\x1b[?25h")
	}
	if c.terminal != nil {
		if err := c.terminal.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal: %v\n", err)
		}
		return c.terminal.Close()
	}
	return nil
}

func (c *Console) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// size queries the terminal, falling back to 80x24 when the query fails.
func (c *Console) size() (int, int) {
	w, h, err := c.terminal.Size()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
