// Package input turns raw terminal bytes into game actions.
package input

import (
	"bufio"
	"bytes"
)

// Input is the set of actions read since the previous frame.
type Input struct {
	Quit       bool
	Pause      bool // toggle
	Restart    bool
	Triggers   int // presses of space/enter plus mouse clicks
	Difficulty int // 1-3 when a difficulty key was pressed, else 0
	Closed     bool
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	in := Parse(buf)
	in.Closed = s.closed
	return in
}

// Parse decodes a batch of raw bytes. Escape sequences are consumed whole;
// a lone ESC is a pause toggle.
func Parse(buf []byte) Input {
	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			n, click := parseCSI(buf[i+2:])
			if click {
				in.Triggers++
			}
			i += 1 + n
			continue
		}
		applyByte(&in, b)
	}
	return in
}

// parseCSI consumes the body of a CSI sequence and returns its length and
// whether it was a left mouse button press. Mouse reports use the SGR
// form ESC [ < button ; col ; row M.
func parseCSI(seq []byte) (n int, click bool) {
	for n < len(seq) {
		c := seq[n]
		n++
		if c >= 0x40 && c <= 0x7e { // final byte
			if (c == 'M' || c == 'm') && len(seq) > 0 && seq[0] == '<' {
				params := bytes.SplitN(seq[1:n-1], []byte{';'}, 2)
				click = c == 'M' && string(params[0]) == "0"
			}
			return n, click
		}
	}
	return n, false
}

func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', 0x03:
		in.Quit = true
	case 'p', 'P', '\x1b':
		in.Pause = !in.Pause
	case 'r', 'R':
		in.Restart = true
	case ' ', '\n', '\r':
		in.Triggers++
	case '1', '2', '3':
		in.Difficulty = int(b - '0')
	}
}
