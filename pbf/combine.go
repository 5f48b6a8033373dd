package pbf

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/glyphstack/glyphsdf"
)

// Combine flattens glyph sets into a single fontstack. Input order is
// precedence: when two sets carry the same glyph ID, the earlier one
// wins. Stack names are joined with ", " and the range spans the IDs
// that were kept. Returns nil when no input contains any glyph; callers
// that need an empty message must construct it themselves.
//
// Glyphs are shared with the inputs, not copied.
func Combine(sets []*Glyphs) *Glyphs {
	combined := &Fontstack{}
	seen := make(map[uint32]bool)
	named := false
	lo := uint32(math.MaxUint32)
	hi := uint32(0)

	for _, set := range sets {
		if set == nil {
			continue
		}
		for _, stack := range set.Stacks {
			if named {
				combined.Name += ", " + stack.Name
			} else {
				combined.Name = stack.Name
				named = true
			}
			for _, g := range stack.Glyphs {
				if seen[g.ID] {
					continue
				}
				seen[g.ID] = true
				combined.Glyphs = append(combined.Glyphs, g)
				if g.ID < lo {
					lo = g.ID
				}
				if g.ID > hi {
					hi = g.ID
				}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	combined.Range = fmt.Sprintf("%d-%d", lo, hi)
	return &Glyphs{Stacks: []*Fontstack{combined}}
}

// NamedFontStack loads the [lo, hi] glyph range of every named font
// under dir and combines them into one stack, earlier fonts taking
// precedence. Fonts whose range fails to load are skipped. When nothing
// in the range is covered, the result is a single glyphless stack
// called stackName, so the message is never empty.
func NamedFontStack(dir, stackName string, fontNames []string, lo, hi uint32) (*Glyphs, error) {
	if len(fontNames) == 0 {
		return nil, ErrNoFonts
	}

	sets := make([]*Glyphs, len(fontNames))
	var wg sync.WaitGroup
	for i, name := range fontNames {
		wg.Add(1)
		go func(idx int, font string) {
			defer wg.Done()
			g, err := LoadGlyphs(dir, font, lo, hi)
			if err != nil {
				glyphsdf.Logger().Warn("skipping font range",
					"font", font, "range", fmt.Sprintf("%d-%d", lo, hi), "error", err)
				return
			}
			sets[idx] = g
		}(i, name)
	}
	wg.Wait()

	if combined := Combine(sets); combined != nil {
		return combined, nil
	}
	return &Glyphs{Stacks: []*Fontstack{{
		Name:  stackName,
		Range: fmt.Sprintf("%d-%d", lo, hi),
	}}}, nil
}

// FontStack is NamedFontStack with the stack named after the fonts
// themselves, joined with ", ".
func FontStack(dir string, fontNames []string, lo, hi uint32) (*Glyphs, error) {
	return NamedFontStack(dir, strings.Join(fontNames, ", "), fontNames, lo, hi)
}
