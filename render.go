package glyphsdf

import "math"

// SeedMode selects how coverage values seed the two distance fields.
type SeedMode int

const (
	// SeedThreshold classifies every pixel as glyph or background by
	// comparing its coverage against Options.Threshold. The recovered
	// edge runs between pixel centers.
	SeedThreshold SeedMode = iota

	// SeedGradient additionally converts partial coverage into a
	// fractional head start for the transform: a pixel that is 70%
	// covered sits 0.2px inside the edge, not on it. This recovers the
	// sub-pixel edge placement the rasterizer's anti-aliasing encoded.
	// Options.Threshold is not used; the split is the 50% coverage
	// midpoint.
	SeedGradient
)

// RoundingMode selects how quantization resolves distances that land
// exactly between two output levels.
type RoundingMode int

const (
	// RoundNearest rounds half values away from zero.
	RoundNearest RoundingMode = iota

	// RoundNearestEven rounds half values to the nearest even level.
	RoundNearestEven
)

// Options holds SDF rendering parameters.
type Options struct {
	// Radius is the distance range in pixels mapped onto the output
	// value range. Distances beyond ±Radius saturate. Larger values
	// give softer halos and wider effects at the cost of precision per
	// level. Must be positive.
	// Default: 8
	Radius int

	// Threshold is the minimum coverage for a pixel to count as inside
	// the glyph in SeedThreshold mode.
	// Default: 128
	Threshold uint8

	// Mode selects the seeding strategy.
	// Default: SeedThreshold
	Mode SeedMode

	// Rounding selects the quantization tie-break rule.
	// Default: RoundNearest
	Rounding RoundingMode
}

// DefaultOptions returns the rendering options used by the fontstack
// ecosystem: an 8px radius with threshold seeding at half coverage.
func DefaultOptions() Options {
	return Options{
		Radius:    8,
		Threshold: 128,
		Mode:      SeedThreshold,
		Rounding:  RoundNearest,
	}
}

// Validate checks if the options are valid and returns an error if not.
func (o *Options) Validate() error {
	if o.Radius <= 0 {
		return &ConfigError{Field: "Radius", Reason: "must be positive"}
	}
	if o.Mode != SeedThreshold && o.Mode != SeedGradient {
		return &ConfigError{Field: "Mode", Reason: "unknown seed mode"}
	}
	if o.Rounding != RoundNearest && o.Rounding != RoundNearestEven {
		return &ConfigError{Field: "Rounding", Reason: "unknown rounding mode"}
	}
	return nil
}

// RenderField computes the signed distance field of bm in pixel units:
// for every pixel, the Euclidean distance to the nearest glyph edge,
// positive inside the glyph and negative outside, unclamped. The result
// is row-major with bm's dimensions.
//
// Most callers want Render, which quantizes the field into an 8-bit
// bitmap. RenderField is for consumers that need raw distances, such as
// alternative encodings or debugging overlays.
//
// RenderField is pure: it reads only its arguments and allocates its
// own working memory, so any number of calls may run concurrently.
func RenderField(bm *Bitmap, opts Options) ([]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	w, h := bm.width, bm.height
	n := w * h
	if n == 0 {
		return []float64{}, nil
	}

	// outside[i] becomes the squared distance to the nearest glyph
	// pixel, inside[i] the squared distance to the nearest background
	// pixel. Seeds are 0 on the near side, inf on the far side, with
	// SeedGradient placing fractional seeds on partially covered
	// pixels.
	outside := make([]float64, n)
	inside := make([]float64, n)
	switch opts.Mode {
	case SeedThreshold:
		for i, a := range bm.values {
			if a >= opts.Threshold {
				inside[i] = inf
			} else {
				outside[i] = inf
			}
		}
	case SeedGradient:
		for i, a := range bm.values {
			c := float64(a) / 255
			if c > 0.5 {
				if a == 255 {
					inside[i] = inf
				} else {
					d := c - 0.5
					inside[i] = d * d
				}
			} else {
				if a == 0 {
					outside[i] = inf
				} else {
					d := 0.5 - c
					outside[i] = d * d
				}
			}
		}
	}

	sc := newScratch(max(w, h))
	sc.transform(outside, w, h)
	sc.transform(inside, w, h)

	field := make([]float64, n)
	for i, a := range bm.values {
		if pixelInside(a, opts) {
			field[i] = math.Sqrt(inside[i])
		} else {
			field[i] = -math.Sqrt(outside[i])
		}
	}
	return field, nil
}

// pixelInside reports whether a coverage value counts as glyph interior
// under the given options.
func pixelInside(a uint8, opts Options) bool {
	if opts.Mode == SeedGradient {
		return a >= 128
	}
	return a >= opts.Threshold
}

// Render converts a coverage bitmap into an 8-bit signed distance
// field bitmap with the same dimensions and border metadata.
//
// Each signed distance is clamped to ±Radius and mapped linearly onto
// [1, 255] with 128 at the edge: values above 128 are inside the glyph,
// values below are outside, and the distance in pixels is recovered as
// (value-128)/127*Radius. A bitmap with no glyph pixels at all renders
// to the uniform background floor.
//
// Render is pure in the same sense as RenderField and safe for
// unlimited concurrent use.
func Render(bm *Bitmap, opts Options) (*Bitmap, error) {
	field, err := RenderField(bm, opts)
	if err != nil {
		return nil, err
	}
	radius := float64(opts.Radius)
	out := make([]uint8, len(field))
	for i, d := range field {
		if d > radius {
			d = radius
		} else if d < -radius {
			d = -radius
		}
		v := roundTo(128+d*127/radius, opts.Rounding)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		out[i] = uint8(v)
	}
	return &Bitmap{values: out, width: bm.width, height: bm.height, buffer: bm.buffer}, nil
}

func roundTo(x float64, mode RoundingMode) float64 {
	if mode == RoundNearestEven {
		return math.RoundToEven(x)
	}
	return math.Round(x)
}
