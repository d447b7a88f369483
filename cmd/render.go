/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/observerly/gohealpix/pkg/fitsio"
	"github.com/observerly/gohealpix/pkg/mollweide"
	"github.com/observerly/gohealpix/pkg/render"
)

/*****************************************************************************************************************/

// renderFlags collects the map2fig flag surface spec.md §6 describes, the same one-struct-per-
// command shape the teacher's internal/solver/solver.go uses for AstrometryCommand's own options.
var renderFlags struct {
	input        string
	output       string
	column       int
	title        string
	measureUnit  string
	format       string
	min          float64
	max          float64
	drawColorBar bool
	listFormats  bool
	verbose      bool
	width        int
	height       int
}

/*****************************************************************************************************************/

// renderCommand is map2fig's only subcommand: it reads a HEALPix FITS map, rasterizes it through
// the Mollweide projection, and saves the result as a PNG, mirroring the teacher's
// AstrometryCommand (internal/solver/solver.go) in shape: a flag struct, an input validation
// block, then a single pipeline of library calls.
var renderCommand = &cobra.Command{
	Use:   "render",
	Short: "Render a HEALPix FITS map to a Mollweide-projection image.",
	Long:  "render reads a HEALPix sky map from a FITS file, rasterizes it through the Mollweide projection, and writes the result as a PNG image, optionally annotated with a title and colour bar.",
	RunE:  runRender,
}

/*****************************************************************************************************************/

func init() {
	flags := renderCommand.Flags()

	flags.StringVarP(&renderFlags.input, "input", "i", "", "path to the input FITS file (required)")
	flags.StringVarP(&renderFlags.output, "output", "o", "", "path to write the output image to (required)")
	flags.IntVarP(&renderFlags.column, "column", "c", 1, "FITS data column to render (1 = intensity)")
	flags.StringVarP(&renderFlags.title, "title", "t", "", "title to draw above the rendered map")
	flags.StringVar(&renderFlags.measureUnit, "measure-unit", "", "physical unit label drawn on the colour bar")
	flags.StringVarP(&renderFlags.format, "format", "f", "png", "output image format")
	flags.Float64Var(&renderFlags.min, "min", math.NaN(), "colour scale lower bound (default: auto-detected from the map)")
	flags.Float64Var(&renderFlags.max, "max", math.NaN(), "colour scale upper bound (default: auto-detected from the map)")
	flags.BoolVar(&renderFlags.drawColorBar, "draw-color-bar", false, "draw a colour bar beneath the rendered map")
	flags.BoolVar(&renderFlags.listFormats, "list-formats", false, "list the supported output formats and exit")
	flags.BoolVarP(&renderFlags.verbose, "verbose", "v", false, "print diagnostic progress to stderr")
	flags.IntVar(&renderFlags.width, "width", 720, "output image width in pixels")
	flags.IntVar(&renderFlags.height, "height", 360, "output image height in pixels")
}

/*****************************************************************************************************************/

// runRender implements the map2fig pipeline: pkg/fitsio.LoadComponent -> pkg/mollweide.Rasterize
// -> pkg/render.Draw -> pkg/render.SavePNG. It returns an error (rather than panicking or calling
// os.Exit directly) so Execute/main can translate any failure into a non-zero process exit code
// per spec.md §6, while cobra itself still prints the error to stderr.
func runRender(cmd *cobra.Command, args []string) error {
	if renderFlags.listFormats {
		fmt.Println(strings.Join(render.SupportedFormats, ", "))
		return nil
	}

	if renderFlags.input == "" {
		return fmt.Errorf("render: --input is required")
	}

	if renderFlags.output == "" {
		return fmt.Errorf("render: --output is required")
	}

	format := strings.ToLower(strings.TrimPrefix(renderFlags.format, "."))

	supported := false

	for _, f := range render.SupportedFormats {
		if f == format {
			supported = true
			break
		}
	}

	if !supported {
		return fmt.Errorf(
			"render: --format %q is not supported; gg (and this build of map2fig) only rasterizes %s",
			renderFlags.format, strings.Join(render.SupportedFormats, ", "),
		)
	}

	logf := func(format string, a ...interface{}) {
		if renderFlags.verbose {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}
	}

	logf("loading %s (column %d)", renderFlags.input, renderFlags.column)

	m, err := fitsio.LoadComponent(renderFlags.input, fitsio.Column(renderFlags.column))
	if err != nil {
		return err
	}

	logf("loaded NSIDE=%d ordering=%v coordsys=%v", m.Nside(), m.Ordering(), m.CoordinateSystem())

	projection, err := mollweide.New(renderFlags.width, renderFlags.height, m.CoordinateSystem())
	if err != nil {
		return err
	}

	logf("rasterizing to %dx%d via the Mollweide projection", renderFlags.width, renderFlags.height)

	grid, err := projection.Rasterize(m)
	if err != nil {
		return err
	}

	if !math.IsNaN(renderFlags.min) {
		grid.Min = renderFlags.min
	}

	if !math.IsNaN(renderFlags.max) {
		grid.Max = renderFlags.max
	}

	logf("drawing (min=%g max=%g, colour bar=%v)", grid.Min, grid.Max, renderFlags.drawColorBar)

	dc, err := render.Draw(grid, render.Options{
		Title:        renderFlags.title,
		MeasureUnit:  renderFlags.measureUnit,
		DrawColorBar: renderFlags.drawColorBar,
		Palette:      render.Thermal,
	})
	if err != nil {
		return err
	}

	logf("writing %s", renderFlags.output)

	if err := render.SavePNG(dc, renderFlags.output); err != nil {
		return err
	}

	return nil
}

/*****************************************************************************************************************/
