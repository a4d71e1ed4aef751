// Package canvas maintains the persistent drawing surface and renders
// stroke segments onto it.
package canvas

import (
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/rangoli/internal/pipeline"
)

// Config holds the stroke geometry parameters.
type Config struct {
	// DrawWidth is the stroke width in pixels for drawing mode.
	DrawWidth int

	// EraseWidth is the stroke width in pixels for erasing mode. Wider
	// than the draw width so one pass wipes a stroke cleanly.
	EraseWidth int
}

// DefaultConfig returns the stroke widths the renderer was tuned with.
func DefaultConfig() Config {
	return Config{
		DrawWidth:  10,
		EraseWidth: 40,
	}
}

// Canvas is a BGRA overlay sized to the video frame. Drawing paints
// opaque white segments; erasing writes fully transparent pixels, so it
// removes prior strokes instead of occluding them. The surface persists
// until an explicit Clear.
type Canvas struct {
	mu      sync.Mutex
	overlay gocv.Mat
	last    *image.Point
	config  Config
	width   int
	height  int
}

// New creates a transparent canvas of the given pixel size.
func New(width, height int, config Config) *Canvas {
	if config.DrawWidth <= 0 {
		config.DrawWidth = DefaultConfig().DrawWidth
	}
	if config.EraseWidth <= 0 {
		config.EraseWidth = DefaultConfig().EraseWidth
	}

	overlay := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC4)

	return &Canvas{
		overlay: overlay,
		config:  config,
		width:   width,
		height:  height,
	}
}

// Stroke consumes one (mode, point) pair. A nil point or idle mode breaks
// the stroke: the remembered previous point is cleared so the next
// segment does not jump-connect across the gap. The first point of a new
// stroke is recorded without drawing; every following point produces a
// segment from its predecessor.
func (c *Canvas) Stroke(mode pipeline.Mode, pt *image.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pt == nil || mode == pipeline.ModeIdle {
		c.last = nil
		return
	}

	if c.last == nil {
		p := *pt
		c.last = &p
		return
	}

	switch mode {
	case pipeline.ModeDrawing:
		gocv.Line(&c.overlay, *c.last, *pt, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c.config.DrawWidth)
	case pipeline.ModeErasing:
		// Zero alpha along the segment removes earlier strokes.
		gocv.Line(&c.overlay, *c.last, *pt, color.RGBA{}, c.config.EraseWidth)
	}

	p := *pt
	c.last = &p
}

// Clear wipes the whole surface and breaks the current stroke.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overlay.SetTo(gocv.NewScalar(0, 0, 0, 0))
	c.last = nil
}

// Composite paints the opaque parts of the canvas over a BGR frame of the
// same size. The frame is modified in place.
func (c *Canvas) Composite(frame *gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	channels := gocv.Split(c.overlay)
	defer func() {
		for _, ch := range channels {
			ch.Close()
		}
	}()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.Merge(channels[:3], &bgr)

	// Alpha channel doubles as the copy mask.
	bgr.CopyToWithMask(frame, channels[3])
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Close releases the overlay Mat.
func (c *Canvas) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overlay.Close()
}

// at returns the BGRA value at a pixel. Test helper.
func (c *Canvas) at(x, y int) gocv.Vecb {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.overlay.GetVecbAt(y, x)
}
