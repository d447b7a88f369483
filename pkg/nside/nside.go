/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package nside implements the Nside resolution algebra for HEALPix (M2): validating the
// resolution parameter, deriving the pixel count and order, and bounding the angular size of
// a pixel. Grounded on misc.c's hpix_nside_to_npixel/hpix_npixel_to_nside/hpix_max_pixel_radius
// from the original HPixLib source (original_source/src/hpix.h).
package nside

/*****************************************************************************************************************/

import (
	"math"
	"math/bits"
)

/*****************************************************************************************************************/

// MaxNside is the largest Nside this package guarantees to handle correctly: 2^13 = 8192, the
// floor mandated by spec.md §3.
const MaxNside = 1 << 13

/*****************************************************************************************************************/

// Valid reports whether n is a legal HEALPix resolution: a positive power of two.
func Valid(n int) bool {
	return n >= 1 && bits.OnesCount(uint(n)) == 1
}

/*****************************************************************************************************************/

// Order returns k such that n == 2^k. The caller must ensure Valid(n).
func Order(n int) int {
	return bits.TrailingZeros(uint(n))
}

/*****************************************************************************************************************/

// Npix returns the total pixel count 12*n^2 for a resolution n. It returns 0 for n == 0,
// matching hpix_nside_to_npixel's documented behaviour for the degenerate case.
func Npix(n int) int64 {
	if n == 0 {
		return 0
	}

	nn := int64(n)

	return 12 * nn * nn
}

/*****************************************************************************************************************/

// NsideFromNpix returns the unique Nside n with Npix(n) == p, or 0 if no valid Nside satisfies
// that equation (the sentinel "invalid" result documented in spec.md §4.1 / §7).
func NsideFromNpix(p int64) int {
	if p <= 0 || p%12 != 0 {
		return 0
	}

	nsq := p / 12

	n := int64(isqrt(nsq))

	if n*n != nsq {
		return 0
	}

	if n <= 0 || n > MaxNside || !Valid(int(n)) {
		return 0
	}

	return int(n)
}

/*****************************************************************************************************************/

func isqrt(n int64) int64 {
	if n < 2 {
		return n
	}

	x := n
	y := (x + 1) / 2

	for y < x {
		x = y
		y = (x + n/x) / 2
	}

	return x
}

/*****************************************************************************************************************/

// MaxPixelRadius returns an upper bound on the angular radius, in radians, of any pixel at
// resolution n. HEALPix pixels are equal-area but not congruent, so the bound is the radius of a
// disc with the pixel's area, scaled by pixelRadiusSafetyFactor.
func MaxPixelRadius(n int) float64 {
	if n <= 0 {
		return 0
	}

	// Solid angle of a single pixel: Ω = 4π / Npix. Treating the pixel as a disc of the
	// same area gives a circumradius of sqrt(Ω/π); inflate slightly since HEALPix pixels
	// are not discs, to keep the bound conservative for query_disc's inclusive variant.
	npix := Npix(n)

	solidAngle := 4 * math.Pi / float64(npix)

	radius := math.Sqrt(solidAngle / math.Pi)

	return radius * pixelRadiusSafetyFactor
}

/*****************************************************************************************************************/

// pixelRadiusSafetyFactor accounts for the worst-case pixel elongation relative to an equal-area
// disc, so that MaxPixelRadius remains a true upper bound for every pixel shape. The largest
// centre-to-corner distance, found at the polar-cap boundary (|z| = 2/3), is 1.457 times the disc
// radius at Nside 1 and grows with Nside towards about 1.8515; 1.852 bounds it at every Nside.
const pixelRadiusSafetyFactor = 1.852
