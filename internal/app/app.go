// Package app provides the main application logic for the Rangoli air
// drawing system.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/rangoli/internal/canvas"
	"github.com/ayusman/rangoli/internal/capture"
	"github.com/ayusman/rangoli/internal/classifier"
	"github.com/ayusman/rangoli/internal/pipeline"
	"github.com/ayusman/rangoli/internal/store"
	"github.com/ayusman/rangoli/internal/tracker"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no scene activity is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active interpretation.
	ActiveFPS = 30
	// IdleTimeoutMs is the time in milliseconds without activity before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
	// MaxRecordedPoses caps one recording batch.
	MaxRecordedPoses = 500
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	CameraID       int
	ModelDir       string
	Tunables       pipeline.Tunables
	ActivityThresh float64
}

// App owns the camera, tracker, interpretation session and canvas. All
// frame processing happens on its single pipeline goroutine; other
// goroutines only read the cached snapshots.
type App struct {
	config   Config
	camera   capture.Camera
	activity *capture.ActivityDetector
	tracker  tracker.Tracker
	session  *pipeline.Session
	canvas   *canvas.Canvas

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	lastJPEG  []byte
	lastFrame pipeline.Frame

	recording   bool
	recordLabel string
	recorded    []tracker.HandPose
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	activityThreshold := config.ActivityThresh
	if activityThreshold <= 0 {
		activityThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		activity: capture.NewActivityDetector(activityThreshold),
		canvas:   canvas.New(capture.DefaultWidth, capture.DefaultHeight, canvas.DefaultConfig()),
	}

	a.session = pipeline.NewSession(newClassifier(config.ModelDir), config.Tunables,
		capture.DefaultWidth, capture.DefaultHeight)

	// Try MediaPipe first, fall back to the mock tracker
	if mp, err := tracker.NewMediaPipeTracker(tracker.DefaultConfig()); err == nil {
		a.tracker = mp
		log.Println("Using MediaPipe hand tracking")
	} else {
		log.Printf("MediaPipe not available (%v), using mock tracker", err)
		a.tracker = tracker.NewMockTracker()
	}

	return a
}

// newClassifier builds the frame classifier: the learned model when it
// loads, with the geometric rules standing in per frame on failure.
func newClassifier(modelDir string) classifier.Classifier {
	rules := classifier.NewRuleBased(classifier.DefaultRuleConfig())

	if modelDir == "" {
		log.Println("No model directory configured, using rule-based classifier")
		return classifier.NewFallback(nil, rules)
	}

	model, err := classifier.LoadModel(modelDir)
	if err != nil {
		log.Printf("Failed to load gesture model (%v), using rule-based classifier", err)
		return classifier.NewFallback(nil, rules)
	}

	log.Printf("Loaded gesture model from %s", modelDir)
	learned := classifier.NewLearned(model, classifier.DefaultConfidenceThreshold)
	return classifier.NewFallback(learned, rules)
}

// SetEnabled enables or disables gesture interpretation.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether interpretation is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Enabled implements the server source interface.
func (a *App) Enabled() bool { return a.IsEnabled() }

// SetTracker sets the hand tracker implementation to use.
func (a *App) SetTracker(t tracker.Tracker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker = t
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Snapshot returns the most recent pipeline frame state.
func (a *App) Snapshot() pipeline.Frame {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastFrame
}

// LastJPEG returns the most recent composited frame encoded as JPEG,
// or nil when no frame has been processed yet.
func (a *App) LastJPEG() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastJPEG
}

// ClearCanvas erases all strokes.
func (a *App) ClearCanvas() {
	a.canvas.Clear()
}

// PenDown reports the current pen state.
func (a *App) PenDown() bool {
	return a.Snapshot().PenDown
}

// StartRecording begins buffering detected poses under the given label.
func (a *App) StartRecording(label string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recording = true
	a.recordLabel = label
	a.recorded = a.recorded[:0]
}

// StopRecording flushes the buffered poses to the store as one batch
// and returns the batch ID and sample count.
func (a *App) StopRecording(batchID string) (int, error) {
	a.mu.Lock()
	poses := a.recorded
	label := a.recordLabel
	a.recording = false
	a.recorded = nil
	a.mu.Unlock()

	if a.config.Store == nil || len(poses) == 0 {
		return 0, nil
	}
	return a.config.Store.Samples().Create(batchID, label, poses)
}

// recordPose buffers a pose while a recording is in progress.
func (a *App) recordPose(pose *tracker.HandPose) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.recording || len(a.recorded) >= MaxRecordedPoses {
		return
	}
	a.recorded = append(a.recorded, *pose)
}

// Start begins the interpretation pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Interpretation pipeline started")
	return nil
}

// Stop halts the interpretation pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.activity.Close()
	a.canvas.Close()

	if a.tracker != nil {
		if err := a.tracker.Close(); err != nil {
			log.Printf("Error closing tracker: %v", err)
		}
	}

	log.Println("Interpretation pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Session returns the interpretation session.
func (a *App) Session() *pipeline.Session {
	return a.session
}

// Canvas returns the stroke canvas.
func (a *App) Canvas() *canvas.Canvas {
	return a.canvas
}

// Tracker returns the hand tracker.
func (a *App) Tracker() tracker.Tracker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tracker
}
