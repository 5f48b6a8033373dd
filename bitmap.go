package glyphsdf

import "fmt"

// Bitmap is a rectangular 8-bit coverage image in row-major order.
//
// Width and Height describe the full stored pixel grid. Buffer records
// how many pixels of border the grid carries on each side; it is
// metadata for downstream consumers (texture padding, metrics
// adjustment) and has no effect on indexing. Distance fields need such
// a border so that values near the glyph edge have room to fall off
// instead of clipping at the bitmap boundary.
//
// A Bitmap is immutable after construction and safe for concurrent use.
type Bitmap struct {
	values []uint8
	width  int
	height int
	buffer int
}

// NewBitmap wraps a coverage buffer whose dimensions already include
// any border. It returns a *DimensionsError when len(values) does not
// equal width*height, or when a dimension is negative.
//
// The buffer argument records the border thickness baked into width and
// height. Pass 0 when the bitmap is tight.
func NewBitmap(values []uint8, width, height, buffer int) (*Bitmap, error) {
	if width < 0 || height < 0 || buffer < 0 || len(values) != width*height {
		return nil, &DimensionsError{Len: len(values), Width: width, Height: height, Buffer: buffer}
	}
	return &Bitmap{values: values, width: width, height: height, buffer: buffer}, nil
}

// NewBitmapUnbuffered wraps a tight coverage buffer of width*height
// pixels and surrounds it with a transparent border of buffer pixels on
// every side. The resulting bitmap is (width+2*buffer) by
// (height+2*buffer).
//
// Rasterizers typically produce tight bitmaps; this is the constructor
// for feeding them to Render.
func NewBitmapUnbuffered(alpha []uint8, width, height, buffer int) (*Bitmap, error) {
	if width < 0 || height < 0 || buffer < 0 || len(alpha) != width*height {
		return nil, &DimensionsError{Len: len(alpha), Width: width, Height: height, Buffer: buffer}
	}
	fullW := width + 2*buffer
	fullH := height + 2*buffer
	values := make([]uint8, fullW*fullH)
	for y := 0; y < height; y++ {
		src := alpha[y*width : (y+1)*width]
		dst := (y+buffer)*fullW + buffer
		copy(values[dst:dst+width], src)
	}
	return &Bitmap{values: values, width: fullW, height: fullH, buffer: buffer}, nil
}

// Width returns the stored width in pixels, border included.
func (b *Bitmap) Width() int { return b.width }

// Height returns the stored height in pixels, border included.
func (b *Bitmap) Height() int { return b.height }

// Buffer returns the border thickness in pixels recorded at
// construction.
func (b *Bitmap) Buffer() int { return b.buffer }

// At returns the coverage value at (x, y). Coordinates outside the
// bitmap panic; like slice indexing, an out-of-range access is a bug in
// the caller, not a recoverable condition.
func (b *Bitmap) At(x, y int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("glyphsdf: pixel (%d,%d) out of range for %dx%d bitmap", x, y, b.width, b.height))
	}
	return b.values[y*b.width+x]
}

// Values returns a copy of the pixel data in row-major order. The copy
// keeps the Bitmap immutable; callers on a hot path that only need to
// read single pixels should use At instead.
func (b *Bitmap) Values() []uint8 {
	out := make([]uint8, len(b.values))
	copy(out, b.values)
	return out
}
