// Command glyphsdf renders font files into signed distance field glyph
// sets for map and GPU text renderers.
//
// It scans a directory for .ttf, .otf and .ttc files and writes
// fontstack protobuf files under the output directory, one
// subdirectory per font file, one file per 256 code point block:
//
//	out/OpenSans-Regular/0-255.pbf
//	out/OpenSans-Regular/256-511.pbf
//
// A combination spec merges rendered fonts into fallback stacks:
//
//	glyphsdf -combine stacks.json fonts out
//
// where stacks.json maps each combined stack name to an ordered list
// of font directory names, earlier fonts winning contested code
// points:
//
//	{"Sans with CJK": ["OpenSans-Regular", "NotoSansCJK-Regular"]}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"

	"github.com/glyphstack/glyphsdf"
	"github.com/glyphstack/glyphsdf/glyphgen"
	"github.com/glyphstack/glyphsdf/internal/pool"
	"github.com/glyphstack/glyphsdf/internal/rangeset"
	"github.com/glyphstack/glyphsdf/pbf"
)

func main() {
	cfg := glyphgen.DefaultConfig()
	var (
		size      = flag.Int("size", cfg.Size, "glyph size in pixels per em")
		buffer    = flag.Int("buffer", cfg.Buffer, "border around each glyph in pixels")
		radius    = flag.Int("radius", cfg.Radius, "distance field falloff in pixels")
		threshold = flag.Int("threshold", int(cfg.Threshold), "alpha level treated as inside, 1 to 255")
		gradient  = flag.Bool("gradient", false, "seed edge distances from fractional coverage")
		ranges    = flag.String("ranges", "", "code point ranges to render, e.g. 'U+0000..U+04FF,U+2000-U+206F' (default the basic plane)")
		jobs      = flag.Int("jobs", 0, "parallel font jobs, 0 for all CPUs")
		combine   = flag.String("combine", "", "JSON file mapping combined stack names to font lists")
		overwrite = flag.Bool("overwrite", false, "render ranges whose output file already exists")
		quiet     = flag.Bool("q", false, "report only errors")
		verbose   = flag.Bool("v", false, "report every file written")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	fontDir, outDir := flag.Arg(0), flag.Arg(1)

	if *quiet {
		*verbose = false
	}
	if *verbose {
		pterm.EnableDebugMessages()
		glyphsdf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
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

	var combos map[string][]string
	if *combine != "" {
		var err error
		combos, err = loadCombinations(*combine)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}

	files, err := fontFiles(fontDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	if len(files) == 0 && len(combos) == 0 {
		pterm.Warning.Printf("no font files in %s\n", fontDir)
		return
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	conv := &converter{
		outDir:    outDir,
		blocks:    set.Blocks(pbf.BlockSize),
		cfg:       cfg,
		overwrite: *overwrite,
		quiet:     *quiet,
		verbose:   *verbose,
	}
	for _, b := range conv.blocks {
		conv.span += int64(b.Hi-b.Lo) + 1
	}

	p := pool.NewWorkerPool(*jobs)
	defer p.Close()

	if len(files) > 0 {
		if !*quiet {
			pterm.Info.Printf("Rendering %d font file(s) on %d worker(s)\n", len(files), p.Workers())
		}

		start := time.Now()
		work := make([]func() error, len(files))
		for i, path := range files {
			work[i] = func() error { return conv.renderFont(path) }
		}
		failed := false
		for _, err := range p.ExecuteAll(work) {
			if err != nil {
				failed = true
				pterm.Error.Println(err)
			}
		}
		if failed {
			os.Exit(1)
		}

		if !*quiet {
			elapsed := time.Since(start).Round(time.Millisecond)
			if n := conv.rendered.Load(); n > 0 {
				per := (time.Since(start) / time.Duration(n)).Round(time.Microsecond)
				pterm.Info.Printf("Rendered %d glyph(s) in %v (%v/glyph)\n", n, elapsed, per)
			} else {
				pterm.Info.Printf("Rendered 0 glyphs in %v\n", elapsed)
			}
		}
	}

	names := make([]string, 0, len(combos))
	for name := range combos {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := conv.combineStacks(name, combos[name]); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "usage: glyphsdf [flags] <font dir> <out dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renders every font in <font dir> into signed distance field glyph")
	fmt.Fprintln(w, "sets under <out dir>, one fontstack .pbf file per 256 code points.")
	fmt.Fprintln(w)
	flag.PrintDefaults()
}

// converter holds the settings shared by all render jobs. The counter
// is updated from worker goroutines.
type converter struct {
	outDir    string
	blocks    []rangeset.Range
	span      int64
	cfg       glyphgen.Config
	overwrite bool
	quiet     bool
	verbose   bool

	rendered atomic.Int64
}

// renderFont renders every configured block of one font file into
// <outDir>/<file stem>/<lo>-<hi>.pbf. Collections produce one stack
// per face in each file. Faces that fail to render are reported and
// left out; the block file is still written for the others.
func (c *converter) renderFont(path string) error {
	// #nosec G304 -- font paths come from scanning the user's font directory
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	faces, err := glyphgen.ParseCollection(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	usable := make([]*glyphgen.Face, 0, len(faces))
	for i, face := range faces {
		if face.Name() == "" {
			pterm.Error.Printf("%s: face %d has no family name\n", path, i)
			continue
		}
		usable = append(usable, face)
	}
	if len(usable) == 0 {
		return fmt.Errorf("%s: no usable faces", path)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := os.MkdirAll(filepath.Join(c.outDir, stem), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if !c.quiet {
		pterm.Printf("Processing %s\n", path)
	}

	var found, skipped int64
	for _, blk := range c.blocks {
		out := pbf.GlyphsPath(c.outDir, stem, blk.Lo, blk.Hi)
		if !c.overwrite {
			if _, err := os.Stat(out); err == nil {
				skipped += int64(blk.Hi-blk.Lo) + 1
				continue
			}
		}

		g := &pbf.Glyphs{}
		n := int64(0)
		for i, face := range usable {
			stack, err := pbf.RenderStack(face, blk.Lo, blk.Hi, c.cfg)
			if err != nil {
				pterm.Error.Printf("%s face %d %v: %v\n", path, i, blk, err)
				continue
			}
			g.Stacks = append(g.Stacks, stack)
			n += int64(len(stack.Glyphs))
		}
		if err := pbf.WriteGlyphs(out, g); err != nil {
			return err
		}
		found += n
		c.rendered.Add(n)
		if c.verbose {
			pterm.Debug.Printf("wrote %s (%d glyphs)\n", out, n)
		}
	}

	if skipped > 0 && !c.quiet {
		pterm.Printf("Skipped up to %d glyph(s) in %s\n", skipped, path)
	}
	if skipped < c.span && !c.quiet {
		pterm.Printf("Found %d valid glyph(s) across %d face(s) in %s\n", found, len(usable), path)
	}
	return nil
}

// combineStacks merges previously rendered fonts into a single named
// stack under <outDir>/<name>, sweeping the same blocks the render
// pass used. Earlier fonts win contested code points.
func (c *converter) combineStacks(name string, fonts []string) error {
	if err := os.MkdirAll(filepath.Join(c.outDir, name), 0o755); err != nil {
		return fmt.Errorf("creating stack directory: %w", err)
	}
	var total int64
	for _, blk := range c.blocks {
		g, err := pbf.NamedFontStack(c.outDir, name, fonts, blk.Lo, blk.Hi)
		if err != nil {
			return fmt.Errorf("combining %s: %w", name, err)
		}
		for _, s := range g.Stacks {
			total += int64(len(s.Glyphs))
		}
		out := pbf.GlyphsPath(c.outDir, name, blk.Lo, blk.Hi)
		if err := pbf.WriteGlyphs(out, g); err != nil {
			return err
		}
		if c.verbose {
			pterm.Debug.Printf("wrote %s\n", out)
		}
	}
	if !c.quiet {
		pterm.Printf("Combined %d glyph(s) from [%s] into %s\n", total, strings.Join(fonts, ", "), name)
	}
	return nil
}

// fontFiles lists the font files directly inside dir, sorted by name.
// Subdirectories are not searched.
func fontFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading font directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".otf", ".ttf", ".ttc":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// loadCombinations reads a combination spec, a JSON object mapping
// each combined stack name to the list of font directories to merge.
func loadCombinations(path string) (map[string][]string, error) {
	// #nosec G304 -- combination spec path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading combination spec: %w", err)
	}
	var spec map[string][]string
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing combination spec %s: %w", path, err)
	}
	return spec, nil
}
