package tracker

import (
	"gocv.io/x/gocv"
)

// MockTracker is a test implementation of the Tracker interface.
// It allows tests to control the detection results.
type MockTracker struct {
	hands []HandPose
	err   error
}

// NewMockTracker creates a new MockTracker instance.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockTracker) SetHands(hands []HandPose) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockTracker) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockTracker) Detect(frame *gocv.Mat) ([]HandPose, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock tracker.
func (m *MockTracker) Close() error {
	return nil
}

// PointingPose returns a preset HandPose with the index finger raised and
// all other fingers curled against the palm.
func PointingPose() HandPose {
	pose := HandPose{
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb tucked across the palm
	pose.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.80, Z: 0.0}
	pose.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.74, Z: 0.0}
	pose.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.69, Z: -0.02}
	pose.Points[ThumbTip] = Point3D{X: 0.53, Y: 0.66, Z: -0.03}

	// Index finger raised straight up
	pose.Points[IndexMCP] = Point3D{X: 0.50, Y: 0.60, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.50, Y: 0.45, Z: 0.0}
	pose.Points[IndexDIP] = Point3D{X: 0.50, Y: 0.34, Z: 0.0}
	pose.Points[IndexTip] = Point3D{X: 0.50, Y: 0.25, Z: 0.0}

	// Middle finger curled
	pose.Points[MiddleMCP] = Point3D{X: 0.455, Y: 0.60, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.455, Y: 0.54, Z: -0.02}
	pose.Points[MiddleDIP] = Point3D{X: 0.455, Y: 0.58, Z: -0.03}
	pose.Points[MiddleTip] = Point3D{X: 0.455, Y: 0.63, Z: -0.03}

	// Ring finger curled
	pose.Points[RingMCP] = Point3D{X: 0.41, Y: 0.62, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.41, Y: 0.56, Z: -0.02}
	pose.Points[RingDIP] = Point3D{X: 0.41, Y: 0.60, Z: -0.03}
	pose.Points[RingTip] = Point3D{X: 0.41, Y: 0.65, Z: -0.03}

	// Pinky curled
	pose.Points[PinkyMCP] = Point3D{X: 0.37, Y: 0.64, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.59, Z: -0.02}
	pose.Points[PinkyDIP] = Point3D{X: 0.36, Y: 0.62, Z: -0.03}
	pose.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.67, Z: -0.03}

	return pose
}

// PinchPose returns a preset HandPose with the thumb and index fingertips
// touching and the remaining fingers curled.
func PinchPose() HandPose {
	pose := HandPose{
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb reaching toward the index tip
	pose.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.78, Z: 0.0}
	pose.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70, Z: 0.0}
	pose.Points[ThumbIP] = Point3D{X: 0.57, Y: 0.62, Z: 0.0}
	pose.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.55, Z: 0.0}

	// Index finger curled down to meet the thumb
	pose.Points[IndexMCP] = Point3D{X: 0.50, Y: 0.60, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.52, Y: 0.50, Z: 0.0}
	pose.Points[IndexDIP] = Point3D{X: 0.53, Y: 0.53, Z: 0.0}
	pose.Points[IndexTip] = Point3D{X: 0.55, Y: 0.56, Z: 0.0}

	// Middle finger curled
	pose.Points[MiddleMCP] = Point3D{X: 0.455, Y: 0.60, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.455, Y: 0.54, Z: -0.02}
	pose.Points[MiddleDIP] = Point3D{X: 0.455, Y: 0.58, Z: -0.03}
	pose.Points[MiddleTip] = Point3D{X: 0.455, Y: 0.63, Z: -0.03}

	// Ring finger curled
	pose.Points[RingMCP] = Point3D{X: 0.41, Y: 0.62, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.41, Y: 0.56, Z: -0.02}
	pose.Points[RingDIP] = Point3D{X: 0.41, Y: 0.60, Z: -0.03}
	pose.Points[RingTip] = Point3D{X: 0.41, Y: 0.65, Z: -0.03}

	// Pinky curled
	pose.Points[PinkyMCP] = Point3D{X: 0.37, Y: 0.64, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.59, Z: -0.02}
	pose.Points[PinkyDIP] = Point3D{X: 0.36, Y: 0.62, Z: -0.03}
	pose.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.66, Z: -0.03}

	return pose
}

// OpenPalmPose returns a preset HandPose with all five fingers spread and
// extended.
func OpenPalmPose() HandPose {
	pose := HandPose{
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb extended out to the side
	pose.Points[ThumbCMC] = Point3D{X: 0.57, Y: 0.79, Z: 0.0}
	pose.Points[ThumbMCP] = Point3D{X: 0.63, Y: 0.73, Z: 0.0}
	pose.Points[ThumbIP] = Point3D{X: 0.70, Y: 0.67, Z: 0.0}
	pose.Points[ThumbTip] = Point3D{X: 0.76, Y: 0.61, Z: 0.0}

	// Index finger extended upward
	pose.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.60, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.46, Z: 0.0}
	pose.Points[IndexDIP] = Point3D{X: 0.56, Y: 0.36, Z: 0.0}
	pose.Points[IndexTip] = Point3D{X: 0.57, Y: 0.28, Z: 0.0}

	// Middle finger extended upward
	pose.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.58, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.43, Z: 0.0}
	pose.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.33, Z: 0.0}
	pose.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.24, Z: 0.0}

	// Ring finger extended upward
	pose.Points[RingMCP] = Point3D{X: 0.46, Y: 0.60, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.45, Y: 0.46, Z: 0.0}
	pose.Points[RingDIP] = Point3D{X: 0.45, Y: 0.36, Z: 0.0}
	pose.Points[RingTip] = Point3D{X: 0.44, Y: 0.28, Z: 0.0}

	// Pinky extended upward
	pose.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.63, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.52, Z: 0.0}
	pose.Points[PinkyDIP] = Point3D{X: 0.39, Y: 0.44, Z: 0.0}
	pose.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.37, Z: 0.0}

	return pose
}

// FistPose returns a preset HandPose with every finger curled into the
// palm. No rule matches it, so the classifier reports idle.
func FistPose() HandPose {
	pose := HandPose{
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb wrapped over the curled fingers
	pose.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.79, Z: 0.0}
	pose.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.73, Z: 0.0}
	pose.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	pose.Points[ThumbTip] = Point3D{X: 0.51, Y: 0.69, Z: -0.03}

	// Index finger curled
	pose.Points[IndexMCP] = Point3D{X: 0.50, Y: 0.60, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.50, Y: 0.54, Z: -0.02}
	pose.Points[IndexDIP] = Point3D{X: 0.48, Y: 0.58, Z: -0.03}
	pose.Points[IndexTip] = Point3D{X: 0.46, Y: 0.62, Z: -0.03}

	// Middle finger curled
	pose.Points[MiddleMCP] = Point3D{X: 0.455, Y: 0.60, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.455, Y: 0.54, Z: -0.02}
	pose.Points[MiddleDIP] = Point3D{X: 0.44, Y: 0.58, Z: -0.03}
	pose.Points[MiddleTip] = Point3D{X: 0.43, Y: 0.62, Z: -0.03}

	// Ring finger curled
	pose.Points[RingMCP] = Point3D{X: 0.41, Y: 0.62, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.41, Y: 0.56, Z: -0.02}
	pose.Points[RingDIP] = Point3D{X: 0.40, Y: 0.60, Z: -0.03}
	pose.Points[RingTip] = Point3D{X: 0.39, Y: 0.64, Z: -0.03}

	// Pinky curled
	pose.Points[PinkyMCP] = Point3D{X: 0.37, Y: 0.64, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.59, Z: -0.02}
	pose.Points[PinkyDIP] = Point3D{X: 0.36, Y: 0.62, Z: -0.03}
	pose.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.66, Z: -0.03}

	return pose
}
