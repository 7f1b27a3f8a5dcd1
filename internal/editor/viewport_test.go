package editor

import (
	"errors"
	"math"
	"testing"
)

func TestComputeViewportNativeSizeWhenImageFits(t *testing.T) {
	vs, err := ComputeViewport(100, 100, 900, 700, 100)
	if err != nil {
		t.Fatalf("ComputeViewport failed: %v", err)
	}
	if vs.DisplayWidth != 100 || vs.DisplayHeight != 100 {
		t.Errorf("expected native 100x100 display, got %dx%d", vs.DisplayWidth, vs.DisplayHeight)
	}
	if vs.Scale != 1.0 {
		t.Errorf("expected scale 1.0, got %v", vs.Scale)
	}
	if vs.CanvasWidth != 900 || vs.CanvasHeight != 700 {
		t.Errorf("expected canvas floored at 900x700, got %dx%d", vs.CanvasWidth, vs.CanvasHeight)
	}
	if vs.OffsetX != 400 || vs.OffsetY != 300 {
		t.Errorf("expected centered offsets (400,300), got (%d,%d)", vs.OffsetX, vs.OffsetY)
	}
}

func TestComputeViewportScalesDownLandscape(t *testing.T) {
	vs, err := ComputeViewport(4000, 3000, 900, 700, 100)
	if err != nil {
		t.Fatalf("ComputeViewport failed: %v", err)
	}
	if vs.DisplayWidth != 800 || vs.DisplayHeight != 600 {
		t.Errorf("expected 800x600 display, got %dx%d", vs.DisplayWidth, vs.DisplayHeight)
	}
	if vs.Scale != 5.0 {
		t.Errorf("expected scale 5.0, got %v", vs.Scale)
	}
	if vs.OffsetX != 50 || vs.OffsetY != 50 {
		t.Errorf("expected offsets (50,50), got (%d,%d)", vs.OffsetX, vs.OffsetY)
	}
}

func TestComputeViewportScalesDownPortrait(t *testing.T) {
	vs, err := ComputeViewport(900, 1200, 900, 700, 100)
	if err != nil {
		t.Fatalf("ComputeViewport failed: %v", err)
	}
	if vs.DisplayHeight != 600 {
		t.Errorf("expected height fitted to 600, got %d", vs.DisplayHeight)
	}
	if vs.DisplayWidth != 450 {
		t.Errorf("expected width 450, got %d", vs.DisplayWidth)
	}
	if vs.Scale != 2.0 {
		t.Errorf("expected scale 2.0, got %v", vs.Scale)
	}
}

func TestComputeViewportNeverExceedsBudget(t *testing.T) {
	// Aspect ratios just under 1 overflow the height budget when only the
	// width is fitted; the refit must keep both dimensions inside.
	cases := []struct{ w, h int }{
		{1000, 900},
		{2000, 1900},
		{4000, 3000},
		{900, 1200},
		{5000, 800},
		{800, 5000},
		{801, 601},
	}
	for _, tc := range cases {
		vs, err := ComputeViewport(tc.w, tc.h, 900, 700, 100)
		if err != nil {
			t.Fatalf("ComputeViewport(%dx%d) failed: %v", tc.w, tc.h, err)
		}
		if vs.DisplayWidth > 800 || vs.DisplayHeight > 600 {
			t.Errorf("source %dx%d: display %dx%d exceeds 800x600 budget",
				tc.w, tc.h, vs.DisplayWidth, vs.DisplayHeight)
		}
		if vs.DisplayWidth > tc.w || vs.DisplayHeight > tc.h {
			t.Errorf("source %dx%d: display %dx%d upscaled",
				tc.w, tc.h, vs.DisplayWidth, vs.DisplayHeight)
		}
		if vs.Scale < 1.0 {
			t.Errorf("source %dx%d: scale %v below 1", tc.w, tc.h, vs.Scale)
		}
	}
}

func TestComputeViewportRejectsInvalidDimensions(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 100}, {100, 0}, {-5, 100}, {100, -5}, {0, 0}} {
		if _, err := ComputeViewport(tc.w, tc.h, 900, 700, 100); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("ComputeViewport(%d,%d): expected ErrInvalidDimensions, got %v", tc.w, tc.h, err)
		}
	}
}

func TestCoordinateMapperRoundTrip(t *testing.T) {
	states := []ViewportState{
		{Scale: 1.0, OffsetX: 400, OffsetY: 300},
		{Scale: 1.5, OffsetX: 183, OffsetY: 50},
		{Scale: 2.0, OffsetX: 0, OffsetY: 0},
		{Scale: 5.0, OffsetX: 50, OffsetY: 50},
		{Scale: 0.5, OffsetX: 10, OffsetY: 20},
	}
	for _, vs := range states {
		for canvasX := 0.0; canvasX <= 200; canvasX += 7 {
			for canvasY := 0.0; canvasY <= 200; canvasY += 11 {
				imgX, imgY := vs.ToImageSpace(canvasX, canvasY)
				backX, backY := vs.ToCanvasSpace(imgX, imgY)
				if math.Abs(backX-canvasX) > 1 || math.Abs(backY-canvasY) > 1 {
					t.Fatalf("scale %v: canvas (%v,%v) -> image (%d,%d) -> canvas (%v,%v), drift above 1px",
						vs.Scale, canvasX, canvasY, imgX, imgY, backX, backY)
				}
			}
		}
	}
}

func TestCoordinateMapperImageRoundTrip(t *testing.T) {
	vs := ViewportState{Scale: 1.5, OffsetX: 183, OffsetY: 50}
	for imgX := 0; imgX <= 300; imgX += 13 {
		for imgY := 0; imgY <= 300; imgY += 17 {
			canvasX, canvasY := vs.ToCanvasSpace(imgX, imgY)
			backX, backY := vs.ToImageSpace(canvasX, canvasY)
			if abs(backX-imgX) > 1 || abs(backY-imgY) > 1 {
				t.Fatalf("image (%d,%d) -> canvas (%v,%v) -> image (%d,%d), drift above 1px",
					imgX, imgY, canvasX, canvasY, backX, backY)
			}
		}
	}
}

func TestCoordinateMapperKnownPoints(t *testing.T) {
	vs := ViewportState{Scale: 5.0, OffsetX: 50, OffsetY: 50}
	imgX, imgY := vs.ToImageSpace(50, 50)
	if imgX != 0 || imgY != 0 {
		t.Errorf("origin mapping: expected (0,0), got (%d,%d)", imgX, imgY)
	}
	imgX, imgY = vs.ToImageSpace(850, 650)
	if imgX != 4000 || imgY != 3000 {
		t.Errorf("far corner mapping: expected (4000,3000), got (%d,%d)", imgX, imgY)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
