package console

import "strings"

// Key identifies a normalized key press.
type Key int

// Key codes produced by the decoder.
const (
	KeyNone Key = iota
	KeyRune     // printable character, see KeyEvent.Rune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyEscape
	KeyTab
	KeyCtrlC
	KeyCtrlD
	KeyCtrlU
)

// KeyEvent is one normalized key press. Rune is set only for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// keyDecoder converts the raw rune stream from the terminal into KeyEvents.
// Control bytes map through keys; escape sequences (without the leading ESC)
// map through sequences. UTF-16 surrogate halves delivered separately by the
// platform input layer are paired here so the rest of the library only ever
// sees whole code points.
type keyDecoder struct {
	keys        map[rune]Key
	sequences   map[string]Key
	pendingHigh rune
}

func newKeyDecoder() *keyDecoder {
	d := &keyDecoder{
		keys:      make(map[rune]Key),
		sequences: make(map[string]Key),
	}

	d.keys['\r'] = KeyEnter
	d.keys['\n'] = KeyEnter
	d.keys['\x7f'] = KeyBackspace
	d.keys['\b'] = KeyBackspace
	d.keys['\t'] = KeyTab
	d.keys['\x03'] = KeyCtrlC
	d.keys['\x04'] = KeyCtrlD
	d.keys['\x15'] = KeyCtrlU

	d.sequences["[A"] = KeyUp
	d.sequences["[B"] = KeyDown
	d.sequences["[C"] = KeyRight
	d.sequences["[D"] = KeyLeft
	d.sequences["[H"] = KeyHome
	d.sequences["[F"] = KeyEnd
	d.sequences["[1~"] = KeyHome
	d.sequences["[4~"] = KeyEnd
	d.sequences["[2~"] = KeyInsert
	d.sequences["[3~"] = KeyDelete
	// SS3 forms sent by application-mode terminals
	d.sequences["OA"] = KeyUp
	d.sequences["OB"] = KeyDown
	d.sequences["OC"] = KeyRight
	d.sequences["OD"] = KeyLeft
	d.sequences["OH"] = KeyHome
	d.sequences["OF"] = KeyEnd

	return d
}

// decode converts a single rune into a key event. ok is false when the rune
// is consumed as decoder state (a high surrogate waiting for its partner, or
// an unpaired low surrogate being dropped).
func (d *keyDecoder) decode(r rune) (KeyEvent, bool) {
	if d.pendingHigh != 0 {
		hi := d.pendingHigh
		d.pendingHigh = 0
		if combined, ok := combineSurrogate(hi, r); ok {
			return KeyEvent{Key: KeyRune, Rune: combined}, true
		}
		// Broken pair: drop the stale high half and decode r normally.
	}
	if isHighSurrogate(r) {
		d.pendingHigh = r
		return KeyEvent{}, false
	}
	if isLowSurrogate(r) {
		return KeyEvent{}, false
	}

	if key, ok := d.keys[r]; ok {
		return KeyEvent{Key: key}, true
	}
	if r >= 0x20 && r != 0x7F {
		return KeyEvent{Key: KeyRune, Rune: r}, true
	}
	return KeyEvent{Key: KeyNone}, true
}

// sequenceKey resolves a completed escape sequence (without the ESC prefix).
func (d *keyDecoder) sequenceKey(seq string) KeyEvent {
	if key, ok := d.sequences[seq]; ok {
		return KeyEvent{Key: key}
	}
	return KeyEvent{Key: KeyNone}
}

// hasSequencePrefix reports whether seq could still grow into a known
// sequence. The reader stops collecting once this turns false.
func (d *keyDecoder) hasSequencePrefix(seq string) bool {
	for known := range d.sequences {
		if strings.HasPrefix(known, seq) {
			return true
		}
	}
	return false
}

// isSequenceComplete reports whether seq terminates a CSI/SS3 sequence. CSI
// sequences end on a final byte in [0x40,0x7E]; SS3 sequences are two bytes.
func isSequenceComplete(seq string) bool {
	if len(seq) < 2 {
		return false
	}
	if seq[0] == 'O' {
		return len(seq) >= 2
	}
	last := seq[len(seq)-1]
	return last >= 0x40 && last <= 0x7E
}
