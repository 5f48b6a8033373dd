package atlas

import (
	"image"
	"sync"

	"github.com/glyphstack/glyphsdf"
)

// Config holds sheet sizing for an Atlas.
type Config struct {
	// Size is the sheet width and height in pixels. Must be a power of
	// 2 between 64 and 8192.
	Size int

	// Padding is the gap in pixels kept between packed bitmaps.
	Padding int

	// MaxSheets caps how many sheets the atlas may open.
	MaxSheets int
}

// DefaultConfig returns the default atlas configuration.
func DefaultConfig() Config {
	return Config{
		Size:      1024,
		Padding:   1,
		MaxSheets: 8,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Size < 64 {
		return &ConfigError{Field: "Size", Reason: "must be at least 64"}
	}
	if c.Size > 8192 {
		return &ConfigError{Field: "Size", Reason: "must be at most 8192"}
	}
	if c.Size&(c.Size-1) != 0 {
		return &ConfigError{Field: "Size", Reason: "must be power of 2"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.Padding >= c.Size/2 {
		return &ConfigError{Field: "Padding", Reason: "must be less than half Size"}
	}
	if c.MaxSheets < 1 {
		return &ConfigError{Field: "MaxSheets", Reason: "must be at least 1"}
	}
	if c.MaxSheets > 256 {
		return &ConfigError{Field: "MaxSheets", Reason: "must be at most 256"}
	}
	return nil
}

// Region locates one bitmap inside an atlas.
type Region struct {
	// Sheet is the index of the sheet holding the bitmap.
	Sheet int

	// Pixel rectangle inside the sheet.
	X, Y, Width, Height int

	// Texture coordinates in [0, 1] for samplers.
	U0, V0, U1, V1 float32
}

// Sheet is one grayscale texture page.
type Sheet struct {
	pix   []uint8
	size  int
	alloc *ShelfAllocator
	count int
}

func newSheet(size, padding int) *Sheet {
	return &Sheet{
		pix:   make([]uint8, size*size),
		size:  size,
		alloc: NewShelfAllocator(size, size, padding),
	}
}

func (s *Sheet) place(bm *glyphsdf.Bitmap, x, y int) {
	vals := bm.Values()
	w := bm.Width()
	for row := 0; row < bm.Height(); row++ {
		dst := (y+row)*s.size + x
		copy(s.pix[dst:dst+w], vals[row*w:(row+1)*w])
	}
	s.count++
}

// Size returns the sheet's width and height in pixels.
func (s *Sheet) Size() int { return s.size }

// GlyphCount returns how many bitmaps the sheet holds.
func (s *Sheet) GlyphCount() int { return s.count }

// Utilization returns the fraction of the sheet's area in use.
func (s *Sheet) Utilization() float64 { return s.alloc.Utilization() }

// Image returns the sheet as a grayscale image. The pixel data is
// shared with the sheet, not copied.
func (s *Sheet) Image() *image.Gray {
	return &image.Gray{
		Pix:    s.pix,
		Stride: s.size,
		Rect:   image.Rect(0, 0, s.size, s.size),
	}
}

// Atlas packs distance field bitmaps into sheets and remembers where
// each one went. All methods are safe for concurrent use.
type Atlas struct {
	mu     sync.RWMutex
	config Config
	sheets []*Sheet
	lookup map[string]Region
}

// New creates an empty atlas.
func New(config Config) (*Atlas, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Atlas{
		config: config,
		lookup: make(map[string]Region),
	}, nil
}

// NewDefault creates an empty atlas with the default configuration.
func NewDefault() *Atlas {
	a, _ := New(DefaultConfig())
	return a
}

// Add packs bm into the atlas under key and returns its region. A key
// that is already present returns its existing region without packing
// again. Sheets are tried in order; a fresh sheet opens when the bitmap
// fits nowhere, and a FullError is returned once MaxSheets sheets are
// exhausted.
func (a *Atlas) Add(key string, bm *glyphsdf.Bitmap) (Region, error) {
	// Fast path: already packed (read lock).
	a.mu.RLock()
	if region, ok := a.lookup[key]; ok {
		a.mu.RUnlock()
		return region, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring the write lock.
	if region, ok := a.lookup[key]; ok {
		return region, nil
	}

	w, h := bm.Width(), bm.Height()
	if w+a.config.Padding > a.config.Size || h+a.config.Padding > a.config.Size {
		return Region{}, ErrTooLarge
	}

	index, sheet, err := a.findOrCreateSheet(w, h)
	if err != nil {
		return Region{}, err
	}
	x, y, ok := sheet.alloc.Allocate(w, h)
	if !ok {
		return Region{}, ErrAllocationFailed
	}
	sheet.place(bm, x, y)

	size := float32(a.config.Size)
	region := Region{
		Sheet:  index,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		U0:     float32(x) / size,
		V0:     float32(y) / size,
		U1:     float32(x+w) / size,
		V1:     float32(y+h) / size,
	}
	a.lookup[key] = region
	return region, nil
}

// findOrCreateSheet returns a sheet that can fit a w by h rectangle.
// Must be called with the write lock held.
func (a *Atlas) findOrCreateSheet(w, h int) (int, *Sheet, error) {
	for i, s := range a.sheets {
		if s.alloc.CanFit(w, h) {
			return i, s, nil
		}
	}

	if len(a.sheets) >= a.config.MaxSheets {
		return 0, nil, &FullError{MaxSheets: a.config.MaxSheets}
	}
	s := newSheet(a.config.Size, a.config.Padding)
	a.sheets = append(a.sheets, s)
	return len(a.sheets) - 1, s, nil
}

// Lookup returns the region stored under key.
func (a *Atlas) Lookup(key string) (Region, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	region, ok := a.lookup[key]
	return region, ok
}

// GlyphCount returns the number of packed bitmaps.
func (a *Atlas) GlyphCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.lookup)
}

// SheetCount returns the number of sheets in use.
func (a *Atlas) SheetCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.sheets)
}

// Sheet returns the sheet at index, or nil when index is out of range.
func (a *Atlas) Sheet(index int) *Sheet {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if index < 0 || index >= len(a.sheets) {
		return nil
	}
	return a.sheets[index]
}

// Config returns the atlas configuration.
func (a *Atlas) Config() Config {
	return a.config
}

// Clear removes all sheets and lookups.
func (a *Atlas) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sheets = nil
	a.lookup = make(map[string]Region)
}

// MemoryUsage returns the pixel memory held by all sheets in bytes.
func (a *Atlas) MemoryUsage() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var total int64
	for _, s := range a.sheets {
		total += int64(len(s.pix))
	}
	return total
}
