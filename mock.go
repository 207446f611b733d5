package console

import "sync"

// mockTerminal implements terminalInterface with a scripted key stream and a
// fixed, settable window size. It gives loop-level tests deterministic input
// without a real tty; output assertions run against the bytes.Buffer the
// Console writes to.
type mockTerminal struct {
	mu      sync.Mutex
	input   []rune
	pos     int
	rawMode bool
	width   int
	height  int
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:  []rune(input),
		width:  80,
		height: 24,
	}
}

// push appends more scripted input, as if typed later.
func (m *mockTerminal) push(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.input = append(m.input, []rune(s)...)
}

// setSize changes the reported window size, simulating a resize.
func (m *mockTerminal) setSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width = width
	m.height = height
}

func (m *mockTerminal) SetRaw() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height, nil
}

func (m *mockTerminal) TryReadRune() (rune, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos >= len(m.input) {
		return 0, false
	}
	r := m.input[m.pos]
	m.pos++
	return r, true
}

func (m *mockTerminal) Close() error {
	return nil
}
