package glyphsdf

import (
	"errors"
	"testing"
)

func TestNewBitmap(t *testing.T) {
	values := make([]uint8, 6)
	bm, err := NewBitmap(values, 3, 2, 0)
	if err != nil {
		t.Fatalf("NewBitmap error: %v", err)
	}
	if bm.Width() != 3 {
		t.Errorf("Width() = %d, want 3", bm.Width())
	}
	if bm.Height() != 2 {
		t.Errorf("Height() = %d, want 2", bm.Height())
	}
	if bm.Buffer() != 0 {
		t.Errorf("Buffer() = %d, want 0", bm.Buffer())
	}
}

func TestNewBitmapEmpty(t *testing.T) {
	bm, err := NewBitmap(nil, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewBitmap(nil, 0, 0, 0) error: %v", err)
	}
	if bm.Width() != 0 || bm.Height() != 0 {
		t.Errorf("empty bitmap size = %dx%d, want 0x0", bm.Width(), bm.Height())
	}
}

func TestNewBitmapInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		len           int
		width, height int
		buffer        int
	}{
		{"too few values", 5, 3, 2, 0},
		{"too many values", 7, 3, 2, 0},
		{"negative width", 6, -3, -2, 0},
		{"negative buffer", 6, 3, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBitmap(make([]uint8, tt.len), tt.width, tt.height, tt.buffer)
			if err == nil {
				t.Fatal("NewBitmap succeeded, want error")
			}
			var dimErr *DimensionsError
			if !errors.As(err, &dimErr) {
				t.Fatalf("error type = %T, want *DimensionsError", err)
			}
			if dimErr.Len != tt.len {
				t.Errorf("DimensionsError.Len = %d, want %d", dimErr.Len, tt.len)
			}
		})
	}
}

func TestNewBitmapUnbuffered(t *testing.T) {
	alpha := []uint8{
		10, 20,
		30, 40,
	}
	bm, err := NewBitmapUnbuffered(alpha, 2, 2, 1)
	if err != nil {
		t.Fatalf("NewBitmapUnbuffered error: %v", err)
	}
	if bm.Width() != 4 || bm.Height() != 4 {
		t.Errorf("size = %dx%d, want 4x4", bm.Width(), bm.Height())
	}
	if bm.Buffer() != 1 {
		t.Errorf("Buffer() = %d, want 1", bm.Buffer())
	}

	// Original values land in the center.
	if got := bm.At(1, 1); got != 10 {
		t.Errorf("At(1,1) = %d, want 10", got)
	}
	if got := bm.At(2, 2); got != 40 {
		t.Errorf("At(2,2) = %d, want 40", got)
	}

	// Border stays transparent.
	for x := 0; x < 4; x++ {
		if bm.At(x, 0) != 0 || bm.At(x, 3) != 0 {
			t.Errorf("border row pixel at x=%d is not 0", x)
		}
	}
	for y := 0; y < 4; y++ {
		if bm.At(0, y) != 0 || bm.At(3, y) != 0 {
			t.Errorf("border column pixel at y=%d is not 0", y)
		}
	}
}

func TestNewBitmapUnbufferedZeroBuffer(t *testing.T) {
	alpha := []uint8{1, 2, 3, 4, 5, 6}
	bm, err := NewBitmapUnbuffered(alpha, 3, 2, 0)
	if err != nil {
		t.Fatalf("NewBitmapUnbuffered error: %v", err)
	}
	if bm.Width() != 3 || bm.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", bm.Width(), bm.Height())
	}
	got := bm.Values()
	for i, want := range alpha {
		if got[i] != want {
			t.Errorf("Values()[%d] = %d, want %d", i, got[i], want)
		}
	}
}

func TestNewBitmapUnbufferedInvalid(t *testing.T) {
	_, err := NewBitmapUnbuffered(make([]uint8, 5), 2, 2, 1)
	if err == nil {
		t.Fatal("NewBitmapUnbuffered succeeded, want error")
	}
	var dimErr *DimensionsError
	if !errors.As(err, &dimErr) {
		t.Fatalf("error type = %T, want *DimensionsError", err)
	}
}

func TestBitmapAt(t *testing.T) {
	values := []uint8{
		1, 2, 3,
		4, 5, 6,
	}
	bm, err := NewBitmap(values, 3, 2, 0)
	if err != nil {
		t.Fatalf("NewBitmap error: %v", err)
	}
	if got := bm.At(0, 0); got != 1 {
		t.Errorf("At(0,0) = %d, want 1", got)
	}
	if got := bm.At(2, 1); got != 6 {
		t.Errorf("At(2,1) = %d, want 6", got)
	}
}

func TestBitmapAtOutOfRange(t *testing.T) {
	bm, err := NewBitmap(make([]uint8, 4), 2, 2, 0)
	if err != nil {
		t.Fatalf("NewBitmap error: %v", err)
	}
	coords := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}}
	for _, c := range coords {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d,%d) did not panic", c[0], c[1])
				}
			}()
			bm.At(c[0], c[1])
		}()
	}
}

func TestBitmapValuesCopy(t *testing.T) {
	bm, err := NewBitmap([]uint8{7, 8, 9, 10}, 2, 2, 0)
	if err != nil {
		t.Fatalf("NewBitmap error: %v", err)
	}
	got := bm.Values()
	got[0] = 99
	if bm.At(0, 0) != 7 {
		t.Error("mutating Values() result changed the bitmap")
	}
}
