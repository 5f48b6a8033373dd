// Command glyphinspect examines fonts and the distance fields rendered
// from them.
//
// Without flags it prints a coverage report for every face in the
// font. With -char it renders a single glyph and shows its metrics and
// field; with -sheet it packs the requested ranges into atlas pages
// and writes them as PNG:
//
//	glyphinspect NotoSans-Regular.ttf
//	glyphinspect -char A -png a.png NotoSans-Regular.ttf
//	glyphinspect -char U+00DF NotoSans-Regular.ttf
//	glyphinspect -ranges U+0400..U+04FF -sheet cyrillic.png NotoSans-Regular.ttf
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"

	"github.com/glyphstack/glyphsdf"
	"github.com/glyphstack/glyphsdf/atlas"
	"github.com/glyphstack/glyphsdf/glyphgen"
	"github.com/glyphstack/glyphsdf/internal/rangeset"
)

func main() {
	cfg := glyphgen.DefaultConfig()
	var (
		size      = flag.Int("size", cfg.Size, "glyph size in pixels per em")
		buffer    = flag.Int("buffer", cfg.Buffer, "border around each glyph in pixels")
		radius    = flag.Int("radius", cfg.Radius, "distance field falloff in pixels")
		threshold = flag.Int("threshold", int(cfg.Threshold), "alpha level treated as inside, 1 to 255")
		gradient  = flag.Bool("gradient", false, "seed edge distances from fractional coverage")
		ranges    = flag.String("ranges", "", "code point ranges to inspect (default the basic plane)")
		faceIdx   = flag.Int("face", 0, "face index for -char and -sheet")
		char      = flag.String("char", "", "render one glyph: a character or code point like U+00DF")
		pngOut    = flag.String("png", "", "with -char, write the field as a grayscale PNG")
		sheet     = flag.String("sheet", "", "pack the ranges into atlas pages and write them as PNG")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	if *pngOut != "" && *char == "" {
		pterm.Error.Println("-png needs -char")
		os.Exit(2)
	}
	if *threshold < 1 || *threshold > 255 {
		pterm.Error.Printf("threshold must be between 1 and 255, got %d\n", *threshold)
		os.Exit(2)
	}
	cfg.Size = *size
	cfg.Buffer = *buffer
	cfg.Radius = *radius
	cfg.Threshold = uint8(*threshold)
	if *gradient {
		cfg.Mode = glyphsdf.SeedGradient
	}
	if err := cfg.Validate(); err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}

	set := rangeset.Default()
	if *ranges != "" {
		var err error
		set, err = rangeset.Parse(*ranges)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(2)
		}
	}

	path := flag.Arg(0)
	// #nosec G304 -- font path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	faces, err := glyphgen.ParseCollection(data)
	if err != nil {
		pterm.Error.Printf("parsing %s: %v\n", path, err)
		os.Exit(1)
	}
	if *faceIdx < 0 || *faceIdx >= len(faces) {
		pterm.Error.Printf("face %d out of range, %s has %d face(s)\n", *faceIdx, path, len(faces))
		os.Exit(2)
	}

	switch {
	case *char != "":
		ch, err := parseChar(*char)
		if err == nil {
			err = inspectChar(faces[*faceIdx], ch, cfg, *pngOut)
		}
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	case *sheet != "":
		if err := writeSheet(faces[*faceIdx], set, cfg, *sheet); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	default:
		report(path, faces, set)
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "usage: glyphinspect [flags] <font file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prints a per face coverage report for a font. With -char, renders a")
	fmt.Fprintln(w, "single glyph and shows its metrics and distance field. With -sheet,")
	fmt.Fprintln(w, "packs the requested ranges into atlas pages and writes them as PNG.")
	fmt.Fprintln(w)
	flag.PrintDefaults()
}

// report prints one table row per face with its coverage of the
// requested ranges.
func report(path string, faces []*glyphgen.Face, set rangeset.Set) {
	pterm.Info.Printf("%s: %d face(s), ranges %v\n", filepath.Base(path), len(faces), set)
	data := pterm.TableData{{"Face", "Family", "Style", "Glyphs", "Units/em", "Coverage"}}
	for i, face := range faces {
		covered := 0
		for _, r := range set {
			covered += len(face.Coverage(rune(r.Lo), rune(r.Hi)))
		}
		data = append(data, []string{
			strconv.Itoa(i),
			face.Family(),
			face.Style(),
			strconv.Itoa(face.NumGlyphs()),
			strconv.Itoa(face.UnitsPerEm()),
			strconv.Itoa(covered),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// parseChar accepts a literal character or any code point notation the
// range syntax knows.
func parseChar(arg string) (rune, error) {
	if utf8.RuneCountInString(arg) == 1 {
		r, _ := utf8.DecodeRuneInString(arg)
		return r, nil
	}
	set, err := rangeset.Parse(arg)
	if err != nil {
		return 0, fmt.Errorf("not a character or code point: %q", arg)
	}
	if len(set) != 1 || set[0].Lo != set[0].Hi {
		return 0, fmt.Errorf("-char wants a single code point, got %v", set)
	}
	return rune(set[0].Lo), nil
}

func inspectChar(face *glyphgen.Face, ch rune, cfg glyphgen.Config, pngOut string) error {
	r, err := glyphgen.NewRenderer(face, cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	g, err := r.Glyph(ch)
	if errors.Is(err, glyphgen.ErrMissingGlyph) {
		return fmt.Errorf("%s has no glyph for U+%04X", face.Name(), ch)
	}
	if err != nil {
		return err
	}

	m := g.Metrics
	pterm.Info.Printf("U+%04X %s\n", ch, runenames.Name(ch))
	pterm.Printf("face      %s\n", face.Name())
	pterm.Printf("extent    %d x %d px\n", m.Width, m.Height)
	pterm.Printf("bearings  left %d, top %d\n", m.LeftBearing, m.TopBearing)
	pterm.Printf("advance   %d px\n", m.Advance)
	pterm.Printf("offset    %d below line top (ascender %d)\n", m.TopBearing-m.Ascender, m.Ascender)
	pterm.Printf("bitmap    %d x %d px including border %d\n", g.Bitmap.Width(), g.Bitmap.Height(), cfg.Buffer)
	pterm.Println(asciiField(g.Bitmap))

	if pngOut != "" {
		if err := writePNG(pngOut, fieldImage(g.Bitmap)); err != nil {
			return err
		}
		pterm.Info.Printf("wrote %s\n", pngOut)
	}
	return nil
}

// asciiField draws the field two characters per pixel so glyphs keep
// their shape in square terminal cells. The jump from '+' to '.' is
// the 128 level where the outline sits.
func asciiField(bm *glyphsdf.Bitmap) string {
	var sb strings.Builder
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			var c byte
			switch v := bm.At(x, y); {
			case v >= 160:
				c = '#'
			case v >= 128:
				c = '+'
			case v >= 96:
				c = '.'
			default:
				c = ' '
			}
			sb.WriteByte(c)
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// writeSheet renders every covered code point of the ranges and packs
// the fields into atlas pages. A single page is written to out; more
// pages get a numeric suffix before the extension.
func writeSheet(face *glyphgen.Face, set rangeset.Set, cfg glyphgen.Config, out string) error {
	r, err := glyphgen.NewRenderer(face, cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	a, err := atlas.New(atlas.DefaultConfig())
	if err != nil {
		return err
	}
	total := 0
	for _, rng := range set {
		glyphs, err := r.Range(rune(rng.Lo), rune(rng.Hi))
		if err != nil {
			return err
		}
		for _, g := range glyphs {
			if _, err := a.Add(fmt.Sprintf("U+%04X", g.Rune), g.Bitmap); err != nil {
				return fmt.Errorf("packing U+%04X: %w", g.Rune, err)
			}
			total++
		}
	}
	if total == 0 {
		return fmt.Errorf("%s covers none of %v", face.Name(), set)
	}

	for i := 0; i < a.SheetCount(); i++ {
		s := a.Sheet(i)
		path := sheetPath(out, i, a.SheetCount())
		if err := writePNG(path, s.Image()); err != nil {
			return err
		}
		pterm.Info.Printf("wrote %s (%d glyphs, %.0f%% used)\n", path, s.GlyphCount(), s.Utilization()*100)
	}
	return nil
}

func sheetPath(out string, i, n int) string {
	if n == 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(out, ext), i, ext)
}

func fieldImage(bm *glyphsdf.Bitmap) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, bm.Width(), bm.Height()))
	copy(img.Pix, bm.Values())
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
