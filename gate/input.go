package gate

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const (
	maskRune   = '•'
	maxInputLn = 64
)

// Input is the gate state: the raw input buffer, the unlocked flag and the error indicator
type Input struct {
	buf      []rune
	unlocked bool
	failed   bool
}

// Insert appends a printable rune; editing clears a previous error
func (in *Input) Insert(r rune) {
	if in.unlocked || !unicode.IsPrint(r) || len(in.buf) >= maxInputLn {
		return
	}
	in.buf = append(in.buf, r)
	in.failed = false
}

// Backspace removes the last rune
func (in *Input) Backspace() {
	if in.unlocked || len(in.buf) == 0 {
		return
	}
	in.buf = in.buf[:len(in.buf)-1]
	in.failed = false
}

// Value returns the raw buffer contents
func (in *Input) Value() string {
	return string(in.buf)
}

// Masked returns one mask glyph per entered rune
func (in *Input) Masked() string {
	return strings.Repeat(string(maskRune), len(in.buf))
}

// MaskedWidth returns the display width of the masked buffer in cells
func (in *Input) MaskedWidth() int {
	return runewidth.StringWidth(in.Masked())
}

// Len returns the number of entered runes
func (in *Input) Len() int { return len(in.buf) }

// Unlocked reports whether the gate has been passed
func (in *Input) Unlocked() bool { return in.unlocked }

// Failed reports whether the error indicator is showing
func (in *Input) Failed() bool { return in.failed }

// Submit validates the buffer; a mismatch shows the error and clears the buffer
// Submitting after unlock is a no-op that reports true
func (in *Input) Submit(v *Validator) bool {
	if in.unlocked {
		return true
	}
	if v.Validate(in.Value()) {
		in.unlocked = true
		in.failed = false
		return true
	}
	in.failed = true
	in.buf = in.buf[:0]
	return false
}
