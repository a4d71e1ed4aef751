package classifier

import (
	"errors"

	"github.com/ayusman/rangoli/internal/tracker"
)

// FeatureLength is the width of a feature vector: 21 landmarks, three
// coordinates each, flattened in landmark order.
const FeatureLength = 3 * tracker.NumLandmarks

// ErrBadPose is returned when a landmark set does not contain exactly 21
// points. Frames carrying such poses are treated as having no hand.
var ErrBadPose = errors.New("pose must contain exactly 21 landmarks")

// Features flattens a landmark set into a 63-float feature vector in the
// order the training pipeline expects: x0,y0,z0, x1,y1,z1, ...
func Features(points []tracker.Point3D) ([]float64, error) {
	if len(points) != tracker.NumLandmarks {
		return nil, ErrBadPose
	}

	features := make([]float64, 0, FeatureLength)
	for _, p := range points {
		features = append(features, p.X, p.Y, p.Z)
	}
	return features, nil
}

// PoseFeatures is the HandPose convenience form of Features.
func PoseFeatures(pose *tracker.HandPose) []float64 {
	features, _ := Features(pose.Points[:])
	return features
}
