package pipeline

import (
	"log"

	"github.com/ayusman/rangoli/internal/classifier"
	"github.com/ayusman/rangoli/internal/tracker"
)

// Session owns all mutable interpretation state for one hand-tracking
// session: the stability filter, the pen latch and the point smoother.
// It is not safe for concurrent use; one frame loop drives one session.
type Session struct {
	classifier classifier.Classifier
	tunables   Tunables
	stability  StabilityFilter
	pen        Pen
	smoother   *Smoother
	width      int
	height     int
}

// Frame is the interpretation of one video frame.
type Frame struct {
	// HandPresent reports whether the tracker delivered a usable hand.
	HandPresent bool `json:"handPresent"`

	// Label and Confidence are this frame's raw classification. Both are
	// zero-valued when no hand was present: that is "no gesture this
	// frame", not idle.
	Label      classifier.Label `json:"label,omitempty"`
	Confidence float64          `json:"confidence"`

	// Stable is the stability state after this frame.
	Stable StabilityState `json:"stable"`

	// PenDown is the pen state after this frame; PenToggled marks the
	// single frame on which a qualifying pinch flipped it.
	PenDown    bool `json:"penDown"`
	PenToggled bool `json:"penToggled"`

	// Mode is the resolved interaction mode.
	Mode Mode `json:"mode"`

	// Point is the smoothed drawing point in canvas pixels, nil when no
	// hand was present.
	Point *Point `json:"point,omitempty"`
}

// NewSession creates a session that maps drawing points into a canvas of
// the given pixel size.
func NewSession(c classifier.Classifier, tunables Tunables, width, height int) *Session {
	if tunables.PinchDebounceFrames <= 0 {
		tunables.PinchDebounceFrames = DefaultTunables().PinchDebounceFrames
	}
	if tunables.SmoothingAlpha <= 0 || tunables.SmoothingAlpha > 1 {
		tunables.SmoothingAlpha = DefaultTunables().SmoothingAlpha
	}

	return &Session{
		classifier: c,
		tunables:   tunables,
		smoother:   NewSmoother(tunables.SmoothingAlpha),
		width:      width,
		height:     height,
	}
}

// Process interprets one frame. Pass nil when the tracker reported no
// hand: the stability filter and the smoother reset so a returning hand
// starts fresh, while the pen state deliberately persists across the gap.
func (s *Session) Process(pose *tracker.HandPose) Frame {
	if pose == nil {
		return s.noHandFrame()
	}

	result, err := s.classifier.Classify(pose)
	if err != nil {
		// Only reachable with a classifier that has no rule fallback.
		// Degrade the frame to a no-op rather than corrupting state.
		log.Printf("Classification failed, treating frame as no hand: %v", err)
		return s.noHandFrame()
	}

	stable := s.stability.Update(result.Label)
	toggled := s.pen.Update(stable, s.tunables.PinchDebounceFrames)
	mode := ResolveMode(result.Label, s.pen.IsDown())

	// The index fingertip drives drawing. X is mirrored so the stroke
	// follows the hand in the selfie view.
	tip := pose.Points[tracker.IndexTip]
	raw := Point{
		X: (1 - tip.X) * float64(s.width),
		Y: tip.Y * float64(s.height),
	}
	smoothed := s.smoother.Smooth(raw)

	return Frame{
		HandPresent: true,
		Label:       result.Label,
		Confidence:  result.Confidence,
		Stable:      stable,
		PenDown:     s.pen.IsDown(),
		PenToggled:  toggled,
		Mode:        mode,
		Point:       &smoothed,
	}
}

// noHandFrame resets the per-hand state and builds the frame for a
// trackerless frame. The pen is left alone.
func (s *Session) noHandFrame() Frame {
	s.smoother.Reset()
	return Frame{
		Stable:  s.stability.Reset(),
		PenDown: s.pen.IsDown(),
		Mode:    ModeIdle,
	}
}

// PenDown reports the current pen state.
func (s *Session) PenDown() bool {
	return s.pen.IsDown()
}

// Tunables returns the parameters the session was created with.
func (s *Session) Tunables() Tunables {
	return s.tunables
}
