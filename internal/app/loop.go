package app

import (
	"image"
	"log"
	"math"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/rangoli/internal/tracker"
)

// runPipeline is the main interpretation loop. It reads camera frames on
// a ticker, gates hand tracking on scene activity, feeds detected poses
// through the session, paints the resulting strokes and caches a
// composited preview for the server.
//
// Loop logic:
// 1. Start in idle mode (IdleFPS)
// 2. On scene activity, switch to active mode (ActiveFPS)
// 3. Run hand tracking and classify the pose
// 4. Toggle the pen, smooth the point, paint the stroke
// 5. After 2s without activity, switch back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastActivity := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			active, _ := a.activity.Detect(frame)

			if active {
				lastActivity = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastActivity) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if activeMode {
				a.processFrame(frame)
			}

			a.updatePreview(frame)
			frame.Close()
		}
	}
}

// processFrame runs one frame through tracking, classification and the
// stroke canvas.
func (a *App) processFrame(frame *gocv.Mat) {
	hands, err := a.Tracker().Detect(frame)
	if err != nil {
		log.Printf("Error tracking hands: %v", err)
		return
	}

	var pose *tracker.HandPose
	if len(hands) > 0 {
		pose = &hands[0]
		a.recordPose(pose)
	}

	result := a.session.Process(pose)

	var pt *image.Point
	if result.Point != nil {
		p := image.Pt(int(math.Round(result.Point.X)), int(math.Round(result.Point.Y)))
		pt = &p
	}
	a.canvas.Stroke(result.Mode, pt)

	a.mu.Lock()
	a.lastFrame = result
	a.mu.Unlock()
}

// updatePreview composites the canvas over the mirrored camera frame
// and caches the JPEG for streaming clients.
func (a *App) updatePreview(frame *gocv.Mat) {
	// Mirror for a selfie view. Stroke points are already mirrored by
	// the session, so the overlay lines up.
	mirrored := gocv.NewMat()
	defer mirrored.Close()
	gocv.Flip(*frame, &mirrored, 1)

	a.canvas.Composite(&mirrored)

	buf, err := gocv.IMEncode(".jpg", mirrored)
	if err != nil {
		log.Printf("Error encoding preview frame: %v", err)
		return
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())

	a.mu.Lock()
	a.lastJPEG = jpeg
	a.mu.Unlock()
}
