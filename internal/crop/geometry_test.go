package crop

import (
	"math"
	"testing"
)

func TestMapIdentity(t *testing.T) {
	got := Map(1000, 500, Viewport{X: 0, Y: 0, W: 1000, H: 500},
		Gesture{Scale: 1}, 1000, 500)

	want := Region{OriginX: 0, OriginY: 0, Width: 1000, Height: 500}
	if got != want {
		t.Fatalf("Map() = %+v, want %+v", got, want)
	}
}

func TestMapCenteredZoom(t *testing.T) {
	// pinch to 2x with a centered half-size frame selects the middle
	// quarter of the image
	got := Map(1000, 500, Viewport{X: 0, Y: 0, W: 1000, H: 500},
		Gesture{Scale: 2}, 500, 250)

	want := Region{OriginX: 375, OriginY: 187, Width: 250, Height: 125}
	if got != want {
		t.Fatalf("Map() = %+v, want %+v", got, want)
	}
}

func TestMapContainFitOffsets(t *testing.T) {
	// a 4:3 image letterboxed in a square viewport
	got := Map(800, 600, Viewport{X: 0, Y: 0, W: 400, H: 400},
		Gesture{Scale: 1}, 200, 200)

	want := Region{OriginX: 200, OriginY: 100, Width: 400, Height: 400}
	if got != want {
		t.Fatalf("Map() = %+v, want %+v", got, want)
	}
}

func TestMapInvalidScaleFallsBackToOne(t *testing.T) {
	base := Map(100, 100, Viewport{W: 100, H: 100}, Gesture{Scale: 1}, 100, 100)

	for _, scale := range []float64{0, -3, math.Inf(1), math.Inf(-1)} {
		got := Map(100, 100, Viewport{W: 100, H: 100}, Gesture{Scale: scale}, 100, 100)
		if got != base {
			t.Errorf("Map(scale=%v) = %+v, want %+v", scale, got, base)
		}
	}
}

func TestMapClampsToImageBounds(t *testing.T) {
	// panned nearly off the right edge: origin clamps to the last
	// column, width shrinks to what remains
	got := Map(100, 100, Viewport{W: 100, H: 100},
		Gesture{Scale: 1, TranslateX: -150}, 100, 100)

	want := Region{OriginX: 99, OriginY: 0, Width: 1, Height: 100}
	if got != want {
		t.Fatalf("Map() = %+v, want %+v", got, want)
	}
}

func TestMapDegenerateInputs(t *testing.T) {
	// unusable geometry falls back to the full image instead of
	// guessing
	if got := Map(0, 50, Viewport{W: 100, H: 100}, Gesture{Scale: 1}, 100, 100); got != (Region{Width: 1, Height: 50}) {
		t.Errorf("zero width image: %+v", got)
	}
	if got := Map(80, 60, Viewport{}, Gesture{Scale: 1}, 100, 100); got != (Region{Width: 80, Height: 60}) {
		t.Errorf("zero viewport: %+v", got)
	}
	if got := Map(80, 60, Viewport{W: 100, H: 100}, Gesture{Scale: 1}, 0, 0); got != (Region{Width: 80, Height: 60}) {
		t.Errorf("zero frame: %+v", got)
	}
}

func TestMapAlwaysInsideImage(t *testing.T) {
	gestures := []Gesture{
		{Scale: 1}, {Scale: 0.1}, {Scale: 25},
		{Scale: 2, TranslateX: 500, TranslateY: -500},
		{Scale: 0.5, TranslateX: -999, TranslateY: 999},
	}

	for _, g := range gestures {
		got := Map(640, 480, Viewport{W: 320, H: 480}, g, 300, 180)
		if got.OriginX < 0 || got.OriginY < 0 ||
			got.Width < 1 || got.Height < 1 ||
			got.OriginX+got.Width > 640 || got.OriginY+got.Height > 480 {
			t.Errorf("Map(%+v) out of bounds: %+v", g, got)
		}
	}
}
