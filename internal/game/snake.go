package game

import "github.com/ar90n/textual-snake-game/internal/geom"

// Snake is the ordered snake body. The head is segments[0]. Length never
// drops below 1, and segments never overlap except transiently during a
// growth step.
type Snake struct {
	segments []geom.Position
	dir      geom.Direction
}

// NewSnake creates a snake of the given length laid out horizontally with
// the head at head, body extending to the left, moving right.
func NewSnake(head geom.Position, length int) *Snake {
	if length < 1 {
		length = 1
	}
	segments := make([]geom.Position, length)
	for i := range segments {
		segments[i] = geom.Position{X: head.X - i, Y: head.Y}
	}
	return &Snake{segments: segments, dir: geom.Right}
}

// Head returns the head position.
func (s *Snake) Head() geom.Position {
	return s.segments[0]
}

// Direction returns the current movement direction.
func (s *Snake) Direction() geom.Direction {
	return s.dir
}

// Length returns the number of segments.
func (s *Snake) Length() int {
	return len(s.segments)
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []geom.Position {
	out := make([]geom.Position, len(s.segments))
	copy(out, s.segments)
	return out
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p geom.Position) bool {
	for _, seg := range s.segments {
		if seg == p {
			return true
		}
	}
	return false
}

// SetDirection changes the movement direction. A 180-degree reversal is
// always rejected: it would move the head straight into the neck, and for a
// single-segment snake it would silently skip a turn the player did not see.
// Returns whether the direction changed.
func (s *Snake) SetDirection(d geom.Direction) bool {
	if d == s.dir.Opposite() {
		return false
	}
	s.dir = d
	return true
}

// NextHead returns the cell the head will move into on the next advance.
func (s *Snake) NextHead() geom.Position {
	return s.segments[0].Step(s.dir)
}

// HitsSelf reports whether moving the head to next would collide with the
// body. The tail cell is excluded when the snake is not growing, because the
// tail vacates it in the same tick (tail-chase is legal).
func (s *Snake) HitsSelf(next geom.Position, grow bool) bool {
	body := s.segments
	if !grow {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == next {
			return true
		}
	}
	return false
}

// Advance moves the snake one cell in its current direction. When grow is
// false the tail is dropped so length stays constant; when true the tail is
// kept and length increases by one.
func (s *Snake) Advance(grow bool) {
	next := s.NextHead()
	if grow {
		s.segments = append(s.segments, geom.Position{})
	}
	copy(s.segments[1:], s.segments)
	s.segments[0] = next
}
