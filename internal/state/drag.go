package state

// DragPhase is the stroke lifecycle between pointer-down and pointer-up.
type DragPhase int

const (
	Idle DragPhase = iota
	Dragging
)

func (p DragPhase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragSession tracks the stroke in progress, if any.
// The zero value is Idle.
type DragSession struct {
	phase    DragPhase
	id       string
	last     Point
	segments int
}

// Begin opens a session at p. It reports whether a session was already open,
// which happens when a pointer-up was lost; that session is replaced.
func (s *DragSession) Begin(p Point) (restarted bool) {
	restarted = s.phase == Dragging
	s.phase = Dragging
	s.id = NextSessionID()
	s.last = p
	s.segments = 0
	return restarted
}

// Extend moves the session to p and returns the segment start.
// ok is false while Idle.
func (s *DragSession) Extend(p Point) (from Point, ok bool) {
	if s.phase != Dragging {
		return Point{}, false
	}
	from = s.last
	s.last = p
	s.segments++
	return from, true
}

// End closes the session. ok is false while Idle.
func (s *DragSession) End() (ok bool) {
	if s.phase != Dragging {
		return false
	}
	s.phase = Idle
	return true
}

// Abandon drops any session without reporting it.
func (s *DragSession) Abandon() {
	s.phase = Idle
}

func (s *DragSession) Phase() DragPhase { return s.phase }

// ID is the id of the current or most recent session.
func (s *DragSession) ID() string { return s.id }

// Segments is the number of segments drawn in the current or most recent session.
func (s *DragSession) Segments() int { return s.segments }
