package interaction

import (
	"os"

	"golang.org/x/sys/unix"
)

// KeyType classifies a decoded key press.
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// KeyEvent is one decoded key press. Key carries the character for KeyChar
// events and is zero otherwise.
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyboardReader decodes raw-mode stdin into key events. Plain characters
// pass through, bare ESC and the CSI arrow sequences are decoded, and every
// other escape sequence is dropped.
type KeyboardReader struct {
	oldState *unix.Termios
	input    chan KeyEvent
	stop     chan struct{}
}

// NewKeyboardReader switches the terminal to raw mode and starts decoding
// stdin. Close restores the terminal.
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := &KeyboardReader{
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}
	go kr.readInput()
	return kr, nil
}

func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 3)

	for {
		select {
		case <-kr.stop:
			return
		default:
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			event, ok := kr.decode(buf[:n])
			if !ok {
				continue
			}
			select {
			case kr.input <- event:
			case <-kr.stop:
				return
			}
		}
	}
}

// arrowKeys maps the final byte of a CSI sequence to its key type.
var arrowKeys = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// decode turns one raw read into a key event. Raw-mode reads deliver a whole
// escape sequence in a single read, so a lone ESC byte really is the Escape
// key, not the start of a sequence.
func (kr *KeyboardReader) decode(buf []byte) (KeyEvent, bool) {
	if len(buf) == 0 {
		return KeyEvent{}, false
	}

	if buf[0] != 27 {
		return KeyEvent{Key: rune(buf[0]), Type: KeyChar}, true
	}
	if len(buf) == 1 {
		return KeyEvent{Key: 27, Type: KeyEscape}, true
	}
	if len(buf) == 3 && buf[1] == '[' {
		if kt, ok := arrowKeys[buf[2]]; ok {
			return KeyEvent{Type: kt}, true
		}
	}

	// Home, End, function keys and longer sequences have no binding here.
	return KeyEvent{}, false
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}
