/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package render is the graphics-backend half of M8 (spec.md §4.7/§6): it consumes a
// mollweide.Grid plus a caller-chosen palette and draws a title band and an optional colour bar,
// the same way the original's map2fig.c drives a Postscript/PNG backend from its own rasterizer
// output. Grounded on the teacher repository's only drawing code,
// examples/solve/main.go's gg.NewContext/SetRGB/SetPixel/DrawString/png.Encode(dc.Image())
// pipeline, generalised from a raw grayscale CCD frame to a palette-mapped Mollweide sky map.
package render

/*****************************************************************************************************************/

import (
	"fmt"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"

	"github.com/observerly/gohealpix/pkg/mollweide"
)

/*****************************************************************************************************************/

// Palette maps a normalized sample t in [0, 1] to a display colour.
type Palette func(t float64) color.Color

/*****************************************************************************************************************/

// Grayscale is the palette examples/solve/main.go itself uses for its raw CCD frame: equal
// R/G/B channels scaled linearly across [0, 1].
func Grayscale(t float64) color.Color {
	t = clamp01(t)

	g := uint8(math.Round(t * 255))

	return color.RGBA{R: g, G: g, B: g, A: 255}
}

/*****************************************************************************************************************/

// Thermal is a simple blue-white-red diverging palette, a reasonable default for a HEALPix
// intensity map where "too cold"/"too hot" extremes should read as visually distinct from the
// mid-range, unlike Grayscale.
func Thermal(t float64) color.Color {
	t = clamp01(t)

	switch {
	case t < 0.5:
		u := t / 0.5
		return color.RGBA{
			R: uint8(math.Round(u * 255)),
			G: uint8(math.Round(u * 255)),
			B: 255,
			A: 255,
		}
	default:
		u := (t - 0.5) / 0.5
		return color.RGBA{
			R: 255,
			G: uint8(math.Round((1 - u) * 255)),
			B: uint8(math.Round((1 - u) * 255)),
			A: 255,
		}
	}
}

/*****************************************************************************************************************/

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}

	if t > 1 {
		return 1
	}

	return t
}

/*****************************************************************************************************************/

// Options configures Draw's title/colour-bar/background decoration, mirroring map2fig's
// --title/--draw-color-bar/--measure-unit flags from spec.md §6.
type Options struct {
	Title         string
	MeasureUnit   string
	DrawColorBar  bool
	Palette       Palette
	Background    color.Color
	TransparentBG bool
}

/*****************************************************************************************************************/

const (
	titleBandHeight    = 32
	colorBarBandHeight = 48
	colorBarMargin     = 24
)

/*****************************************************************************************************************/

// Draw rasterizes grid into a gg.Context sized to fit the requested title band and colour bar
// band around the Mollweide image itself, following the same SetPixel-per-sample loop
// examples/solve/main.go uses to paint its grayscale CCD frame.
func Draw(grid *mollweide.Grid, opts Options) (*gg.Context, error) {
	if grid == nil {
		return nil, fmt.Errorf("render: grid must not be nil")
	}

	palette := opts.Palette
	if palette == nil {
		palette = Thermal
	}

	topBand := 0
	if opts.Title != "" {
		topBand = titleBandHeight
	}

	bottomBand := 0
	if opts.DrawColorBar {
		bottomBand = colorBarBandHeight
	}

	width := grid.Width
	height := grid.Height + topBand + bottomBand

	dc := gg.NewContext(width, height)

	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}

	if !opts.TransparentBG {
		dc.SetColor(bg)
		dc.DrawRectangle(0, 0, float64(width), float64(height))
		dc.Fill()
	}

	span := grid.Max - grid.Min
	if span <= 0 {
		span = 1
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := grid.At(x, y)

			if math.IsInf(v, 0) || mollweide.IsUnseen(v) {
				continue
			}

			t := (v - grid.Min) / span

			dc.SetColor(palette(t))
			dc.SetPixel(x, y+topBand)
		}
	}

	if opts.Title != "" {
		dc.SetColor(color.White)
		dc.DrawStringAnchored(opts.Title, float64(width)/2, float64(titleBandHeight)/2, 0.5, 0.5)
	}

	if opts.DrawColorBar {
		drawColorBar(dc, grid, palette, opts.MeasureUnit, topBand+grid.Height, width)
	}

	return dc, nil
}

/*****************************************************************************************************************/

// drawColorBar paints a horizontal gradient strip labelled with the grid's observed min/max, the
// same role map2fig's --draw-color-bar flag plays for the original Postscript backend.
func drawColorBar(dc *gg.Context, grid *mollweide.Grid, palette Palette, unit string, top, width int) {
	barWidth := width - 2*colorBarMargin
	if barWidth <= 0 {
		return
	}

	barTop := float64(top) + 8
	barHeight := 12.0

	for x := 0; x < barWidth; x++ {
		t := float64(x) / float64(barWidth-1)

		dc.SetColor(palette(t))
		dc.DrawRectangle(float64(colorBarMargin+x), barTop, 1, barHeight)
		dc.Fill()
	}

	label := fmt.Sprintf("%.4g %s  to  %.4g %s", grid.Min, unit, grid.Max, unit)

	dc.SetColor(color.White)
	dc.DrawStringAnchored(label, float64(width)/2, barTop+barHeight+10, 0.5, 0.5)
}

/*****************************************************************************************************************/

// SavePNG encodes dc's image as a PNG file at path, the same png.Encode(file, dc.Image()) call
// examples/solve/main.go uses for its annotated frame.
func SavePNG(dc *gg.Context, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: failed to create %s: %w", path, err)
	}

	defer file.Close()

	if err := png.Encode(file, dc.Image()); err != nil {
		return fmt.Errorf("render: failed to encode %s: %w", path, err)
	}

	return nil
}

/*****************************************************************************************************************/

// SupportedFormats lists the output formats map2fig actually rasterizes. spec.md §6 documents a
// map2fig CLI surface that also accepts --format {ps,eps,pdf,svg}; gg (and this package) only
// implements raster PNG output, so cmd/map2fig rejects the others explicitly rather than
// silently mis-handling them. See DESIGN.md.
var SupportedFormats = []string{"png"}

/*****************************************************************************************************************/
