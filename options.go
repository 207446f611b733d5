package console

// KeyHookAction is what a key-input hook decided about a key event.
type KeyHookAction int

const (
	// KeyIgnored hands the key back to the normal handling path.
	KeyIgnored KeyHookAction = iota
	// KeyHandled consumes the key; nothing else sees it.
	KeyHandled
	// KeyHandledCancel consumes the key and cancels the read.
	KeyHandledCancel
)

// TextHookAction is a text-input hook's verdict on the finished string.
type TextHookAction int

const (
	// TextAccept accepts the (possibly transformed) string as the result.
	TextAccept TextHookAction = iota
	// TextReject re-opens editing; the session state is kept as-is.
	TextReject
)

// defaultMaxInputLength caps the assembled input at 64 KiB of code points.
const defaultMaxInputLength = 64 * 1024

// ReadLineOptions configures one ReadLine call.
type ReadLineOptions struct {
	Prompt             string // Prompt text; line breaks create a multi-line prompt
	ContinuationPrompt string // Prompt for appended lines in multi-line input
	Delimiter          string // Multi-line delimiter token; "" disables
	ContinuationRune   rune   // Trailing line-continuation rune; 0 disables
	MaxInputLength     int    // Cap on the assembled input length
	CancelOnEscape     bool   // Escape returns ReadCanceled
	AllowEmptyInput    bool   // Enter on all-empty input is accepted
	MaskRune           rune   // Rendered in place of input text; 0 disables

	// KeyHook pre-empts normal key handling. It runs outside the paint lock,
	// so it may itself call ReadLine to open a nested prompt.
	KeyHook func(KeyEvent) KeyHookAction

	// TextHook validates or transforms the finished string. TextReject
	// re-opens editing with the buffer intact.
	TextHook func(string) (string, TextHookAction)
}

func defaultReadLineOptions() ReadLineOptions {
	return ReadLineOptions{
		Prompt:             "> ",
		ContinuationPrompt: "| ",
		MaxInputLength:     defaultMaxInputLength,
		AllowEmptyInput:    true,
	}
}

// ReadLineOption mutates the options for one ReadLine call.
type ReadLineOption func(*ReadLineOptions)

// WithPrompt sets the prompt text. Line breaks split it into fixed lines
// rendered above the editable one.
func WithPrompt(prompt string) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.Prompt = prompt
	}
}

// WithContinuationPrompt sets the prompt used for lines appended in
// multi-line input mode.
func WithContinuationPrompt(prompt string) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.ContinuationPrompt = prompt
	}
}

// WithDelimiter enables delimiter-multiline mode: input keeps collecting
// lines while the count of token occurrences is odd, like a triple-quote
// heredoc.
//
// Example:
//
//	res := c.ReadLine(ctx,
//		console.WithPrompt(">>> "),
//		console.WithDelimiter(`"""`),
//	)
func WithDelimiter(token string) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.Delimiter = token
	}
}

// WithLineContinuation enables continuation-multiline mode: a line ending
// with r continues on the next line, and the continuation runes are stripped
// from the assembled result.
func WithLineContinuation(r rune) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.ContinuationRune = r
	}
}

// WithMaxInputLength caps the assembled input length. Insertions beyond the
// cap are silently dropped.
func WithMaxInputLength(n int) ReadLineOption {
	return func(o *ReadLineOptions) {
		if n > 0 {
			o.MaxInputLength = n
		}
	}
}

// WithCancelOnEscape makes the Escape key cancel the read.
func WithCancelOnEscape() ReadLineOption {
	return func(o *ReadLineOptions) {
		o.CancelOnEscape = true
	}
}

// WithAllowEmptyInput controls whether Enter on all-empty input produces a
// result. When false, the Enter is rejected and editing continues.
func WithAllowEmptyInput(allow bool) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.AllowEmptyInput = allow
	}
}

// WithMask renders r in place of every input character, password-style. The
// mask repeats to match the input's display width, so wide characters mask
// as two runes.
func WithMask(r rune) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.MaskRune = r
	}
}

// WithKeyHook installs a key-input hook that sees every key event before the
// normal handling path.
func WithKeyHook(hook func(KeyEvent) KeyHookAction) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.KeyHook = hook
	}
}

// WithTextHook installs a text-input hook that validates or transforms the
// finished string before it is returned.
//
// Example:
//
//	res := c.ReadLine(ctx, console.WithTextHook(func(s string) (string, console.TextHookAction) {
//		if s == "" {
//			return s, console.TextReject
//		}
//		return strings.TrimSpace(s), console.TextAccept
//	}))
func WithTextHook(hook func(string) (string, TextHookAction)) ReadLineOption {
	return func(o *ReadLineOptions) {
		o.TextHook = hook
	}
}
