package canvas

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/rangoli/internal/pipeline"
)

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	c := New(320, 240, DefaultConfig())
	t.Cleanup(c.Close)
	return c
}

func TestCanvas_SinglePointDrawsNothing(t *testing.T) {
	c := newTestCanvas(t)

	pt := image.Pt(100, 100)
	c.Stroke(pipeline.ModeDrawing, &pt)

	px := c.at(100, 100)
	if px[3] != 0 {
		t.Errorf("alpha at the first stroke point = %d, want 0 (a segment needs two points)", px[3])
	}
}

func TestCanvas_SegmentIsOpaqueWhite(t *testing.T) {
	c := newTestCanvas(t)

	a := image.Pt(50, 100)
	b := image.Pt(150, 100)
	c.Stroke(pipeline.ModeDrawing, &a)
	c.Stroke(pipeline.ModeDrawing, &b)

	px := c.at(100, 100)
	if px[0] != 255 || px[1] != 255 || px[2] != 255 || px[3] != 255 {
		t.Errorf("segment midpoint = %v, want opaque white", px)
	}
}

func TestCanvas_EraseRemovesStroke(t *testing.T) {
	c := newTestCanvas(t)

	a := image.Pt(50, 100)
	b := image.Pt(150, 100)
	c.Stroke(pipeline.ModeDrawing, &a)
	c.Stroke(pipeline.ModeDrawing, &b)

	// Erase crosses the stroke vertically through its midpoint.
	top := image.Pt(100, 50)
	bottom := image.Pt(100, 150)
	c.Stroke(pipeline.ModeIdle, nil) // break, then start the erase pass
	c.Stroke(pipeline.ModeErasing, &top)
	c.Stroke(pipeline.ModeErasing, &bottom)

	px := c.at(100, 100)
	if px[3] != 0 {
		t.Errorf("alpha after erase = %d, want 0 (erase must remove, not occlude)", px[3])
	}
}

func TestCanvas_IdleBreaksStroke(t *testing.T) {
	c := newTestCanvas(t)

	a := image.Pt(20, 20)
	b := image.Pt(40, 20)
	c.Stroke(pipeline.ModeDrawing, &a)
	c.Stroke(pipeline.ModeDrawing, &b)

	// Idle gap, then resume far away: the gap must stay blank.
	c.Stroke(pipeline.ModeIdle, nil)
	d := image.Pt(200, 20)
	e := image.Pt(220, 20)
	c.Stroke(pipeline.ModeDrawing, &d)
	c.Stroke(pipeline.ModeDrawing, &e)

	px := c.at(120, 20)
	if px[3] != 0 {
		t.Errorf("alpha in the idle gap = %d, want 0 (no jump-connect)", px[3])
	}

	px = c.at(210, 20)
	if px[3] != 255 {
		t.Errorf("alpha on the resumed stroke = %d, want 255", px[3])
	}
}

func TestCanvas_NilPointBreaksStroke(t *testing.T) {
	c := newTestCanvas(t)

	a := image.Pt(20, 60)
	c.Stroke(pipeline.ModeDrawing, &a)
	c.Stroke(pipeline.ModeDrawing, nil)

	// Next point starts a new stroke: still no segment.
	b := image.Pt(100, 60)
	c.Stroke(pipeline.ModeDrawing, &b)

	px := c.at(60, 60)
	if px[3] != 0 {
		t.Errorf("alpha between points across a nil break = %d, want 0", px[3])
	}
}

func TestCanvas_Clear(t *testing.T) {
	c := newTestCanvas(t)

	a := image.Pt(50, 50)
	b := image.Pt(150, 50)
	c.Stroke(pipeline.ModeDrawing, &a)
	c.Stroke(pipeline.ModeDrawing, &b)

	c.Clear()

	px := c.at(100, 50)
	if px[3] != 0 {
		t.Errorf("alpha after Clear() = %d, want 0", px[3])
	}
}

func TestCanvas_CompositeOntoFrame(t *testing.T) {
	c := newTestCanvas(t)

	a := image.Pt(50, 100)
	b := image.Pt(150, 100)
	c.Stroke(pipeline.ModeDrawing, &a)
	c.Stroke(pipeline.ModeDrawing, &b)

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(20, 40, 60, 0), 240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()

	c.Composite(&frame)

	// On the stroke: white. Off the stroke: the frame untouched.
	on := frame.GetVecbAt(100, 100)
	if on[0] != 255 || on[1] != 255 || on[2] != 255 {
		t.Errorf("frame pixel on the stroke = %v, want white", on)
	}

	off := frame.GetVecbAt(10, 10)
	if off[0] != 20 || off[1] != 40 || off[2] != 60 {
		t.Errorf("frame pixel off the stroke = %v, want untouched (20,40,60)", off)
	}
}
