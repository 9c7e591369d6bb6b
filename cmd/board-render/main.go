// Command board-render draws a formation headlessly through the same layers
// as the board window and writes a PNG, or prints the draw trace.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/render"
)

type options struct {
	in       string
	dataDir  string
	id       string
	out      string
	width    int
	height   int
	selected string
	trace    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("board-render", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&o.in, "in", "", "exported formation JSON file")
	fs.StringVar(&o.dataDir, "data", "", "library data directory (with -id)")
	fs.StringVar(&o.id, "id", "", "saved formation id to render from the library")
	fs.StringVar(&o.out, "out", "", "PNG output path (default <slug>.png)")
	fs.IntVar(&o.width, "width", 800, "board width in pixels")
	fs.IntVar(&o.height, "height", 400, "board height in pixels")
	fs.StringVar(&o.selected, "selected", "", "player id drawn with the selection outline")
	fs.BoolVar(&o.trace, "trace", false, "print the draw trace instead of writing a PNG")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	switch {
	case o.in == "" && o.id == "":
		return o, errors.New("one of -in or -id is required")
	case o.in != "" && o.id != "":
		return o, errors.New("-in and -id are mutually exclusive")
	case o.width <= 0 || o.height <= 0:
		return o, fmt.Errorf("-width and -height must be > 0, got %dx%d", o.width, o.height)
	}
	return o, nil
}

func loadFormation(o options) (formation.Formation, error) {
	if o.id != "" {
		return formation.NewLibrary(o.dataDir).Get(o.id)
	}
	data, err := os.ReadFile(o.in)
	if err != nil {
		return formation.Formation{}, fmt.Errorf("read %s: %w", o.in, err)
	}
	return formation.NewLibrary(filepath.Dir(o.in)).ImportJSON(data)
}

func run(args []string, stdout io.Writer) error {
	o, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	f, err := loadFormation(o)
	if err != nil {
		return err
	}

	frame := render.FrameFromFormation(f, o.width, o.height, o.selected)
	comp := render.NewCompositor()

	fmt.Fprintf(stdout, "=== Board Render ===\n")
	fmt.Fprintf(stdout, "formation=%q players_on_field=%d drawings=%d size=%dx%d\n",
		f.Name, len(f.OnField()), len(f.Drawings), o.width, o.height)

	if o.trace {
		rec := render.NewRecorder(o.width, o.height)
		comp.Render(rec, frame)
		for _, op := range rec.Ops() {
			fmt.Fprintln(stdout, op.String())
		}
		fmt.Fprintf(stdout, "op_totals: %s\n", opTotals(rec.Ops()))
		return nil
	}

	r, err := render.NewRasterSize(o.width, o.height)
	if err != nil {
		return err
	}
	comp.Render(r, frame)

	out := o.out
	if out == "" {
		out = strings.TrimSuffix(formation.FileSlug(f.Name), ".json") + ".png"
	}
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := r.EncodePNG(file); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", out)
	return nil
}

// opTotals summarises a trace as "kind=count" pairs in kind order.
func opTotals(ops []render.Op) string {
	counts := map[string]int{}
	for _, op := range ops {
		counts[op.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}
