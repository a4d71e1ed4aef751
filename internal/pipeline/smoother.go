package pipeline

// Point is a position in canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Smoother is an exponential low-pass filter over the drawing point:
// smoothed += alpha * (raw - smoothed). With constant input it converges
// monotonically toward that input and never overshoots.
type Smoother struct {
	alpha   float64
	current Point
	seeded  bool
}

// NewSmoother creates a smoother with the given coefficient.
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Smooth folds one raw point into the filter and returns the smoothed
// position. The first point after a reset passes through unchanged, so a
// returning hand starts drawing where it actually is instead of lagging
// in from a stale location.
func (s *Smoother) Smooth(raw Point) Point {
	if !s.seeded {
		s.current = raw
		s.seeded = true
		return s.current
	}

	s.current.X += s.alpha * (raw.X - s.current.X)
	s.current.Y += s.alpha * (raw.Y - s.current.Y)
	return s.current
}

// Reset discards the filter state. Called whenever hand presence drops.
func (s *Smoother) Reset() {
	s.current = Point{}
	s.seeded = false
}

// Current returns the last smoothed point and whether one exists.
func (s *Smoother) Current() (Point, bool) {
	return s.current, s.seeded
}
