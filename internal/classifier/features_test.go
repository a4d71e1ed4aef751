package classifier

import (
	"errors"
	"testing"

	"github.com/ayusman/rangoli/internal/tracker"
)

func TestFeatures_Order(t *testing.T) {
	points := make([]tracker.Point3D, tracker.NumLandmarks)
	for i := range points {
		points[i] = tracker.Point3D{
			X: float64(i),
			Y: float64(i) + 0.1,
			Z: float64(i) + 0.2,
		}
	}

	features, err := Features(points)
	if err != nil {
		t.Fatalf("Features() error = %v", err)
	}

	if len(features) != FeatureLength {
		t.Fatalf("Features() length = %d, want %d", len(features), FeatureLength)
	}

	// Landmark i occupies indices 3i..3i+2 as (x, y, z).
	for i := 0; i < tracker.NumLandmarks; i++ {
		if features[3*i] != float64(i) {
			t.Errorf("features[%d] = %f, want %f", 3*i, features[3*i], float64(i))
		}
		if features[3*i+1] != float64(i)+0.1 {
			t.Errorf("features[%d] = %f, want %f", 3*i+1, features[3*i+1], float64(i)+0.1)
		}
		if features[3*i+2] != float64(i)+0.2 {
			t.Errorf("features[%d] = %f, want %f", 3*i+2, features[3*i+2], float64(i)+0.2)
		}
	}
}

func TestFeatures_RejectsWrongLandmarkCount(t *testing.T) {
	for _, n := range []int{0, 1, 20, 22} {
		_, err := Features(make([]tracker.Point3D, n))
		if !errors.Is(err, ErrBadPose) {
			t.Errorf("Features() with %d points: error = %v, want ErrBadPose", n, err)
		}
	}
}

func TestPoseFeatures(t *testing.T) {
	pose := tracker.PointingPose()

	features := PoseFeatures(&pose)
	if len(features) != FeatureLength {
		t.Fatalf("PoseFeatures() length = %d, want %d", len(features), FeatureLength)
	}

	tip := pose.Points[tracker.IndexTip]
	if features[3*tracker.IndexTip] != tip.X {
		t.Errorf("index tip x not at expected offset")
	}
}
