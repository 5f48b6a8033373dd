// Package rangeset parses code point range expressions into merged,
// ordered sets and splits them into aligned blocks.
//
// An expression is a comma-separated list of single code points or
// inclusive ranges. Bounds may be written as U+hex, 0xhex, or decimal,
// and ranges use ".." or "-": "U+0000..U+00FF, 0x300, 900-999".
package rangeset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	rangeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Unicode", Pattern: `[Uu]\+[0-9A-Fa-f]+`},
		{Name: "Hex", Pattern: `0[xX][0-9A-Fa-f]+`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Dots", Pattern: `\.\.`},
		{Name: "Punct", Pattern: `[,\-]`},
	})

	rangeParser = participle.MustBuild[expression](
		participle.Lexer(rangeLexer),
		participle.Elide("Whitespace"),
	)
)

type expression struct {
	Items []*span `parser:"@@ ( ',' @@ )*"`
}

type span struct {
	Lo codePoint  `parser:"@( Unicode | Hex | Number )"`
	Hi *codePoint `parser:"( ( '..' | '-' ) @( Unicode | Hex | Number ) )?"`
}

// codePoint converts any accepted bound notation on capture.
type codePoint uint32

// Capture implements participle.Capture.
func (c *codePoint) Capture(values []string) error {
	s := values[0]
	digits, base := s, 10
	switch {
	case len(s) > 2 && (s[0] == 'U' || s[0] == 'u') && s[1] == '+':
		digits, base = s[2:], 16
	case len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return fmt.Errorf("bad code point %q: %w", s, err)
	}
	if v > 0x10FFFF {
		return fmt.Errorf("code point %q beyond U+10FFFF", s)
	}
	*c = codePoint(v)
	return nil
}

// Range is an inclusive code point range.
type Range struct {
	Lo, Hi uint32
}

func (r Range) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("U+%04X", r.Lo)
	}
	return fmt.Sprintf("U+%04X..U+%04X", r.Lo, r.Hi)
}

// Set is a sorted list of disjoint ranges.
type Set []Range

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Default returns the range the batch tools sweep when none is given,
// the basic multilingual plane.
func Default() Set {
	return Set{{Lo: 0, Hi: 0xFFFF}}
}

// Parse parses a range expression. Overlapping and adjacent ranges are
// merged and the result is sorted.
func Parse(input string) (Set, error) {
	expr, err := rangeParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("rangeset: %w", err)
	}

	set := make(Set, 0, len(expr.Items))
	for _, it := range expr.Items {
		lo := uint32(it.Lo)
		hi := lo
		if it.Hi != nil {
			hi = uint32(*it.Hi)
		}
		if hi < lo {
			return nil, fmt.Errorf("rangeset: reversed range U+%04X..U+%04X", lo, hi)
		}
		set = append(set, Range{Lo: lo, Hi: hi})
	}
	return set.normalize(), nil
}

func (s Set) normalize() Set {
	if len(s) <= 1 {
		return s
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Lo < s[j].Lo })

	merged := Set{s[0]}
	for _, r := range s[1:] {
		last := &merged[len(merged)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Blocks returns the size-aligned blocks that intersect the set, in
// ascending order. Every returned range is a whole block: Lo a multiple
// of size, Hi = Lo+size-1. Fontstack files cover such blocks.
func (s Set) Blocks(size uint32) []Range {
	if size == 0 {
		panic("rangeset: zero block size")
	}
	var out []Range
	for _, r := range s {
		for b := r.Lo / size; ; b++ {
			start := b * size
			if len(out) == 0 || out[len(out)-1].Lo != start {
				out = append(out, Range{Lo: start, Hi: start + size - 1})
			}
			if start+size-1 >= r.Hi {
				break
			}
		}
	}
	return out
}
