package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	// blurKernel is the Gaussian kernel size used to suppress sensor
	// noise before differencing.
	blurKernel = 21

	// diffThreshold is the per-pixel intensity delta that counts as a
	// change.
	diffThreshold = 25
)

// ActivityDetector measures how much of the scene changed between
// consecutive frames. The frame loop uses it to fall back to a low idle
// frame rate when nobody is in front of the camera.
type ActivityDetector struct {
	threshold float64
	baseline  gocv.Mat
	primed    bool
	mu        sync.Mutex
}

// NewActivityDetector creates a detector that reports activity when more
// than threshold percent of pixels changed (e.g. 1.0 means 1%).
func NewActivityDetector(threshold float64) *ActivityDetector {
	return &ActivityDetector{
		threshold: threshold,
		baseline:  gocv.NewMat(),
	}
}

// Detect compares a frame against the previous one. Returns whether the
// scene is active and the percentage of pixels that changed. The first
// frame primes the baseline and always reports inactive.
func (d *ActivityDetector) Detect(frame *gocv.Mat) (bool, float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	d.prepare(frame, &blurred)

	if !d.primed {
		blurred.CopyTo(&d.baseline)
		d.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, d.baseline, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, diffThreshold, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(mask)
	total := mask.Rows() * mask.Cols()
	percent := float64(changed) / float64(total) * 100.0

	blurred.CopyTo(&d.baseline)

	return percent > d.threshold, percent
}

// prepare converts a frame to blurred grayscale for differencing.
func (d *ActivityDetector) prepare(frame *gocv.Mat, out *gocv.Mat) {
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	gocv.GaussianBlur(gray, out, image.Pt(blurKernel, blurKernel), 0, 0, gocv.BorderDefault)
}

// SetThreshold changes the activity threshold. Non-positive values are
// ignored.
func (d *ActivityDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.threshold = threshold
}

// Reset drops the baseline so the next frame primes it again.
func (d *ActivityDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.baseline.Empty() {
		d.baseline.Close()
		d.baseline = gocv.NewMat()
	}
	d.primed = false
}

// Close releases detector resources.
func (d *ActivityDetector) Close() {
	d.Reset()
}
