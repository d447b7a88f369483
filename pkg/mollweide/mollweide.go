/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package mollweide implements M7: back-projecting each pixel of a W x H bitmap through the
// inverse Mollweide map onto the sphere, then sampling a HEALPix map at that direction. Grounded
// on spec.md §4.5 directly (the source's CLI-side rendering it would otherwise be grounded on,
// original_source/utilities/map2fig.c, only calls into the library's own inverse-projection
// routine rather than implementing the math inline).
package mollweide

/*****************************************************************************************************************/

import (
	"fmt"
	"math"

	"github.com/observerly/gohealpix/pkg/healpix"
)

/*****************************************************************************************************************/

// UnseenThreshold is the HEALPix "not observed" sentinel boundary: any finite pixel value at or
// below this is treated as unseen, alongside NaN, per spec.md §3/§6.
const UnseenThreshold = -1.63e30

/*****************************************************************************************************************/

// IsUnseen reports whether v is the HEALPix UNSEEN sentinel: NaN, or <= UnseenThreshold.
func IsUnseen(v float64) bool {
	return math.IsNaN(v) || v <= UnseenThreshold
}

/*****************************************************************************************************************/

// Projection is a passive descriptor of a target raster: its pixel dimensions and a coordinate
// tag carried through for the caller's benefit (spec.md's BmpProjection). gohealpix performs no
// coordinate rotation; the tag is metadata only.
type Projection struct {
	Width  int
	Height int
	Coord  healpix.CoordinateSystem
}

/*****************************************************************************************************************/

// New creates a Projection descriptor for a width x height raster.
func New(width, height int, coord healpix.CoordinateSystem) (*Projection, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("mollweide: width and height must be positive, got %dx%d", width, height)
	}

	return &Projection{Width: width, Height: height, Coord: coord}, nil
}

/*****************************************************************************************************************/

// Grid is the dense W x H raster produced by Rasterize, in row-major order (row v, column u at
// Values[v*Width+u]), plus the observed minimum and maximum over finite, non-sentinel samples.
type Grid struct {
	Width  int
	Height int
	Values []float64
	Min    float64
	Max    float64
}

/*****************************************************************************************************************/

// At returns the sampled value at bitmap column u, row v.
func (g *Grid) At(u, v int) float64 {
	return g.Values[v*g.Width+u]
}

/*****************************************************************************************************************/

// Rasterize back-projects every pixel of p through the inverse Mollweide map to a sphere point,
// then samples m's native ordering at that point. Image pixels outside the projection ellipse
// are set to +Inf, matching spec.md §4.5/§9 so a downstream renderer can key transparency off
// that marker; unseen pixels inside the ellipse keep the map's own UNSEEN encoding.
func (p *Projection) Rasterize(m *healpix.Map) (*Grid, error) {
	grid := &Grid{
		Width:  p.Width,
		Height: p.Height,
		Values: make([]float64, p.Width*p.Height),
	}

	min := math.Inf(1)
	max := math.Inf(-1)
	haveSample := false

	n := m.Nside()

	for v := 0; v < p.Height; v++ {
		// Y runs from +1 at the top row to -1 at the bottom row.
		Y := 1 - 2*(float64(v)+0.5)/float64(p.Height)

		for u := 0; u < p.Width; u++ {
			// X runs from -2 at the left column to +2 at the right column.
			X := 4*(float64(u)+0.5)/float64(p.Width) - 2

			idx := v*p.Width + u

			if X*X/4+Y*Y > 1 {
				grid.Values[idx] = math.Inf(1)
				continue
			}

			theta, phi := inverseMollweide(X, Y)

			var pix healpix.PixelIndex
			var err error

			switch m.Ordering() {
			case healpix.NESTED:
				pix, err = healpix.AnglesToNest(n, theta, phi)
			default:
				pix, err = healpix.AnglesToRing(n, theta, phi)
			}

			if err != nil {
				return nil, err
			}

			value, err := m.At(pix)
			if err != nil {
				return nil, err
			}

			grid.Values[idx] = value

			if !IsUnseen(value) && !math.IsInf(value, 0) {
				haveSample = true

				if value < min {
					min = value
				}

				if value > max {
					max = value
				}
			}
		}
	}

	if !haveSample {
		min, max = 0, 0
	}

	grid.Min = min
	grid.Max = max

	return grid, nil
}

/*****************************************************************************************************************/

// inverseMollweide implements spec.md §4.5 step 1: given normalized ellipse coordinates (X, Y)
// already known to lie inside the X^2/4 + Y^2 <= 1 ellipse, return the colatitude/longitude of
// the corresponding sphere point.
func inverseMollweide(X, Y float64) (theta, phi float64) {
	// Clamp for the poles, where asin(Y) would otherwise see a value microscopically outside
	// [-1, 1] from floating point error.
	clampedY := Y
	if clampedY > 1 {
		clampedY = 1
	}

	if clampedY < -1 {
		clampedY = -1
	}

	alpha := math.Asin(clampedY)

	cosAlpha := math.Cos(alpha)

	var phiFromX float64

	if math.Abs(cosAlpha) < 1e-12 {
		// At Y = +-1 (the poles of the ellipse) every longitude back-projects to the same
		// point; pick 0 arbitrarily, matching the pole convention spec.md §4.2 documents for
		// the pixel-index kernels themselves.
		phiFromX = 0
	} else {
		phiFromX = math.Pi * X / (2 * cosAlpha)
	}

	sinLat := (2*alpha + math.Sin(2*alpha)) / math.Pi

	if sinLat > 1 {
		sinLat = 1
	}

	if sinLat < -1 {
		sinLat = -1
	}

	// asin(sinLat) is the latitude (from the equator), sharing Y's sign; colatitude is its
	// complement, as required by the (theta, phi) convention spec.md §3 fixes for the rest of
	// the core.
	latitude := math.Asin(sinLat)
	theta = math.Pi/2 - latitude
	phi = wrapPhi(phiFromX)

	return theta, phi
}

/*****************************************************************************************************************/

func wrapPhi(phi float64) float64 {
	const twoPi = 2 * math.Pi

	phi = math.Mod(phi, twoPi)

	if phi < 0 {
		phi += twoPi
	}

	return phi
}

/*****************************************************************************************************************/
