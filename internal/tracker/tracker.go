package tracker

import "gocv.io/x/gocv"

// Tracker defines the interface for hand tracking implementations.
type Tracker interface {
	// Detect analyzes a video frame and returns detected hand poses.
	// Returns an empty slice if no hands are detected. Hands that do not
	// carry the full 21-landmark set are dropped, not partially reported.
	Detect(frame *gocv.Mat) ([]HandPose, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// Config holds configuration options for hand tracking.
type Config struct {
	// MaxHands is the maximum number of hands to detect. The drawing
	// pipeline consumes at most one hand per frame, so the default is 1.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
