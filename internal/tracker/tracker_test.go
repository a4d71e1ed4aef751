package tracker

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestDistance3D(t *testing.T) {
	a := Point3D{X: 1.0, Y: 2.0, Z: 3.0}
	b := Point3D{X: 4.0, Y: 6.0, Z: 3.0}

	got := Distance3D(a, b)
	if math.Abs(got-5.0) > epsilon {
		t.Errorf("Distance3D() = %f, want 5.0", got)
	}

	if d := Distance3D(a, a); math.Abs(d) > epsilon {
		t.Errorf("distance from a point to itself = %f, want 0", d)
	}
}

func TestDistance2D_IgnoresDepth(t *testing.T) {
	a := Point3D{X: 0.0, Y: 0.0, Z: 0.0}
	b := Point3D{X: 0.3, Y: 0.4, Z: 9.0}

	got := Distance2D(a, b)
	if math.Abs(got-0.5) > epsilon {
		t.Errorf("Distance2D() = %f, want 0.5 (depth must not contribute)", got)
	}
}

func TestJSONHand_ToHandPose(t *testing.T) {
	h := jsonHand{
		Handedness: "Left",
		Score:      0.87,
	}
	for i := 0; i < NumLandmarks; i++ {
		h.Points = append(h.Points, Point3D{X: float64(i) * 0.01, Y: 0.5})
	}

	pose := h.toHandPose()

	if pose.Handedness != "Left" {
		t.Errorf("Handedness = %q, want %q", pose.Handedness, "Left")
	}
	if pose.Score != 0.87 {
		t.Errorf("Score = %f, want 0.87", pose.Score)
	}
	if pose.Points[PinkyTip].X != 0.20 {
		t.Errorf("Points[PinkyTip].X = %f, want 0.20", pose.Points[PinkyTip].X)
	}
}

func TestJSONHand_MissingDepthDefaultsToZero(t *testing.T) {
	// Trackers that omit z leave it at the zero value after decoding.
	h := jsonHand{Points: make([]Point3D, NumLandmarks)}
	pose := h.toHandPose()

	for i, p := range pose.Points {
		if p.Z != 0 {
			t.Errorf("Points[%d].Z = %f, want 0", i, p.Z)
		}
	}
}

func TestPoseFixtures_CoordinatesNormalized(t *testing.T) {
	poses := map[string]HandPose{
		"pointing":  PointingPose(),
		"pinch":     PinchPose(),
		"open palm": OpenPalmPose(),
		"fist":      FistPose(),
	}

	for name, pose := range poses {
		for i, p := range pose.Points {
			if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
				t.Errorf("%s pose landmark %d = (%f, %f) outside [0,1]", name, i, p.X, p.Y)
			}
		}
	}
}

func TestPinchPose_FingertipsTouch(t *testing.T) {
	pose := PinchPose()

	d := Distance2D(pose.Points[ThumbTip], pose.Points[IndexTip])
	if d >= 0.05 {
		t.Errorf("pinch fixture thumb-index distance = %f, want < 0.05", d)
	}
}

func TestMockTracker(t *testing.T) {
	mock := NewMockTracker()
	mock.SetHands([]HandPose{PointingPose()})

	hands, err := mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("Detect() returned %d hands, want 1", len(hands))
	}
	if hands[0].Handedness != "Right" {
		t.Errorf("Handedness = %q, want %q", hands[0].Handedness, "Right")
	}
}
