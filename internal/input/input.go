// Package input reads raw terminal bytes on a background goroutine and
// decodes them into per-frame game commands.
package input

import "bufio"

// Input holds the commands decoded during one frame. Flags are
// edge-triggered: they are set only on frames where the key arrived.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Pause bool
	Reset bool
	Quit  bool
	// Speed is 1 (slow), 2 (normal) or 3 (fast), or 0 when no speed key
	// was pressed this frame.
	Speed int
	// Pressed holds the raw bytes drained this frame, for activity checks.
	Pressed []byte
}

// Stream delivers input bytes from a reader via a buffered channel so the
// frame loop never blocks on the terminal.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads bytes from r until EOF.
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

// Closed reports whether the underlying reader reached EOF and all buffered
// bytes were consumed. A closed stream means the peer disconnected.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all bytes currently buffered on the stream without
// blocking and decodes them. Multiple direction keys within one frame all
// register; the caller decides which wins.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
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

	return Decode(buf)
}

// Decode parses a byte sequence into an Input. Arrow keys arrive as CSI
// sequences (ESC [ A..D); everything else is single bytes.
func Decode(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				in.Up = true
			case 'B':
				in.Down = true
			case 'C':
				in.Right = true
			case 'D':
				in.Left = true
			}
			i += 2
			continue
		}

		applyByte(&in, b)
	}

	return in
}

// applyByte decodes a single non-escape byte.
func applyByte(in *Input, b byte) {
	switch b {
	case 'w', 'W':
		in.Up = true
	case 's', 'S':
		in.Down = true
	case 'a', 'A':
		in.Left = true
	case 'd', 'D':
		in.Right = true
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Reset = true
	case 'q', 'Q', '\x03': // Ctrl-C in raw mode
		in.Quit = true
	case '1':
		in.Speed = 1
	case '2':
		in.Speed = 2
	case '3':
		in.Speed = 3
	}
}
