package pipeline

import (
	"math"
	"testing"
)

func TestSmoother_FirstPointPassesThrough(t *testing.T) {
	s := NewSmoother(0.35)

	got := s.Smooth(Point{X: 320, Y: 240})
	if got.X != 320 || got.Y != 240 {
		t.Errorf("first Smooth() = %+v, want the raw point unchanged", got)
	}
}

func TestSmoother_ConstantInputIsStable(t *testing.T) {
	s := NewSmoother(0.35)

	// Seeded at the target, repeated identical input must not drift.
	for i := 0; i < 3; i++ {
		got := s.Smooth(Point{X: 100, Y: 100})
		if got.X != 100 || got.Y != 100 {
			t.Fatalf("frame %d: Smooth() = %+v, want (100,100)", i+1, got)
		}
	}
}

func TestSmoother_ConvergesMonotonicallyWithoutOvershoot(t *testing.T) {
	s := NewSmoother(0.35)
	s.Smooth(Point{X: 0, Y: 0})

	target := Point{X: 200, Y: 150}
	prev := Point{X: 0, Y: 0}

	for i := 0; i < 50; i++ {
		got := s.Smooth(target)

		if got.X < prev.X || got.Y < prev.Y {
			t.Fatalf("step %d: smoothed point moved away from the target: %+v after %+v", i, got, prev)
		}
		if got.X > target.X || got.Y > target.Y {
			t.Fatalf("step %d: smoothed point overshot the target: %+v", i, got)
		}
		prev = got
	}

	if math.Abs(prev.X-target.X) > 1 || math.Abs(prev.Y-target.Y) > 1 {
		t.Errorf("after 50 steps the point is still at %+v, want near %+v", prev, target)
	}
}

func TestSmoother_StepMatchesCoefficient(t *testing.T) {
	s := NewSmoother(0.35)
	s.Smooth(Point{X: 0, Y: 0})

	got := s.Smooth(Point{X: 100, Y: 0})
	if math.Abs(got.X-35.0) > 1e-9 {
		t.Errorf("one step toward 100 from 0 = %f, want 35.0", got.X)
	}
}

func TestSmoother_ResetForgetsHistory(t *testing.T) {
	s := NewSmoother(0.35)
	s.Smooth(Point{X: 500, Y: 500})
	s.Reset()

	if _, ok := s.Current(); ok {
		t.Fatal("Current() reports a point after Reset()")
	}

	// The next point seeds again: no interpolation from the old stroke.
	got := s.Smooth(Point{X: 10, Y: 20})
	if got.X != 10 || got.Y != 20 {
		t.Errorf("first Smooth() after Reset() = %+v, want the raw point", got)
	}
}
