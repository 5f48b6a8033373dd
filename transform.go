package glyphsdf

import "math"

// inf marks grid cells with no seed on their line. math.MaxFloat64
// rather than math.Inf(1): the envelope intersection below subtracts
// two cell values, and MaxFloat64-MaxFloat64 is 0 where Inf-Inf would
// poison the line with NaN.
const inf = math.MaxFloat64

// scratch holds the reusable working buffers for the distance
// transform. One scratch serves a whole render: the buffers are sized
// to the longer bitmap axis and shared by every line pass, so a render
// performs no per-line allocation.
type scratch struct {
	f []float64 // copy of the current line
	v []int     // parabola vertex positions
	z []float64 // envelope boundary coordinates
}

func newScratch(n int) *scratch {
	return &scratch{
		f: make([]float64, n),
		v: make([]int, n),
		z: make([]float64, n+1),
	}
}

// line replaces one line of grid with its 1D squared distance
// transform. The line starts at offset and advances by stride, visiting
// n cells. Input cells hold squared-distance lower bounds (0 for seeds,
// inf for unseeded); output cells hold, for each position, the minimum
// over all positions q of (x-q)^2 + input[q].
//
// This is the lower-envelope-of-parabolas algorithm of Felzenszwalb and
// Huttenlocher ("Distance Transforms of Sampled Functions"), which runs
// in O(n) per line.
func (sc *scratch) line(grid []float64, offset, stride, n int) {
	if n == 0 {
		return
	}
	f := sc.f[:n]
	v := sc.v[:n]
	z := sc.z[:n+1]
	for i := 0; i < n; i++ {
		f[i] = grid[offset+i*stride]
	}

	// Pass 1: build the lower envelope. v[0..k] are the vertices of the
	// parabolas on the envelope, z[i]..z[i+1] the interval where v[i]'s
	// parabola is lowest.
	k := 0
	v[0] = 0
	z[0] = -inf
	z[1] = inf
	for q := 1; q < n; q++ {
		fq := f[q] + float64(q)*float64(q)
		for {
			p := v[k]
			// Horizontal position where the parabolas from q and p
			// intersect. Right of s, q's parabola is lower.
			s := (fq - (f[p] + float64(p)*float64(p))) / float64(2*(q-p))
			if s <= z[k] {
				// q's parabola overtakes p's before p's interval even
				// starts, so p is never on the envelope. Drop it and
				// test against the previous vertex.
				k--
				continue
			}
			k++
			v[k] = q
			z[k] = s
			z[k+1] = inf
			break
		}
	}

	// Pass 2: walk the envelope left to right and read off the minimum
	// at each position.
	k = 0
	for x := 0; x < n; x++ {
		for z[k+1] < float64(x) {
			k++
		}
		p := v[k]
		d := float64(x - p)
		grid[offset+x*stride] = d*d + f[p]
	}
}

// transform applies the 2D squared distance transform to grid in place:
// every column first, then every row over the column results. The two
// passes compose because squared Euclidean distance separates into
// per-axis terms.
func (sc *scratch) transform(grid []float64, width, height int) {
	for x := 0; x < width; x++ {
		sc.line(grid, x, width, height)
	}
	for y := 0; y < height; y++ {
		sc.line(grid, y*width, 1, width)
	}
}
