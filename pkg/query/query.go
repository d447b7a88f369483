/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package query implements query_disc (M6): enumerating the RING pixels whose centers (the
// exclusive variant) or whose area (the inclusive variant) lie inside a spherical cap. The
// original HPixLib declares hpix_query_disc/hpix_query_disc_inclusive in
// original_source/src/hpix.h but never ships query_disc.c, and spec.md §9 documents the
// original's own query_disc test as broken; this package instead implements spec.md §4.4's
// algorithm directly, ring-by-ring, using the spherical cosine law to bound the in-ring
// longitude interval, and treats the spec's invariants 5/6 (§8) as the ground truth.
package query

/*****************************************************************************************************************/

import (
	"fmt"
	"math"
	"sort"

	"github.com/observerly/gohealpix/pkg/healpix"
	"github.com/observerly/gohealpix/pkg/nside"
	"github.com/observerly/gohealpix/pkg/vector"
)

/*****************************************************************************************************************/

// Disc enumerates the RING pixel indices of resolution n whose centers lie within angular
// radius r of the direction (theta, phi). Ascending-sorted, deduplicated, per spec.md §4.4.
func Disc(n int, theta, phi, r float64) ([]healpix.PixelIndex, error) {
	return queryDisc(n, theta, phi, r)
}

/*****************************************************************************************************************/

// DiscInclusive enumerates the RING pixels whose area (not just center) may intersect the cap,
// by first inflating the radius by nside.MaxPixelRadius(n), per spec.md §4.4's inclusive variant.
func DiscInclusive(n int, theta, phi, r float64) ([]healpix.PixelIndex, error) {
	if !nside.Valid(n) {
		return nil, fmt.Errorf("query: invalid nside %d", n)
	}

	inflated := r + nside.MaxPixelRadius(n)
	if inflated > math.Pi {
		inflated = math.Pi
	}

	return queryDisc(n, theta, phi, inflated)
}

/*****************************************************************************************************************/

func queryDisc(n int, theta, phi, r float64) ([]healpix.PixelIndex, error) {
	if !nside.Valid(n) {
		return nil, fmt.Errorf("query: invalid nside %d", n)
	}

	if r <= 0 || r > math.Pi {
		return nil, fmt.Errorf("query: radius %v out of range (0, π]", r)
	}

	thetaC := vector.NormalizeTheta(theta)
	phiC := vector.NormalizePhi(phi)

	ns := int64(n)
	numRings := 4*ns - 1

	sinThetaC := math.Sin(thetaC)
	cosThetaC := math.Cos(thetaC)
	cosR := math.Cos(r)

	// Only rings whose colatitude falls within [thetaC-r, thetaC+r] (clipped to [0, π]) can
	// possibly intersect the cap; every other ring is skipped without the cosine-law test.
	thetaLo := thetaC - r
	if thetaLo < 0 {
		thetaLo = 0
	}

	thetaHi := thetaC + r
	if thetaHi > math.Pi {
		thetaHi = math.Pi
	}

	zHi := math.Cos(thetaLo)
	zLo := math.Cos(thetaHi)

	result := make([]healpix.PixelIndex, 0)

	for ring := int64(1); ring <= numRings; ring++ {
		z, fodd, nr, ringpix, startpix, err := healpix.RingInfo(n, ring)
		if err != nil {
			return nil, err
		}

		if z > zHi || z < zLo {
			continue
		}

		lo, hi, full, none := ringWindow(z, fodd, nr, thetaC, sinThetaC, cosThetaC, phiC, cosR)
		if none {
			continue
		}

		if full {
			for offset := int64(0); offset < ringpix; offset++ {
				result = append(result, startpix+offset)
			}

			continue
		}

		for ip := lo; ip <= hi; ip++ {
			offset := ((ip-1)%ringpix + ringpix) % ringpix
			result = append(result, startpix+offset)
		}
	}

	result = dedupeSorted(result)

	return result, nil
}

/*****************************************************************************************************************/

// ringWindow computes, for a single ring of the given geometry, the inclusive range of in-ring
// pixel-phase indices [lo, hi] whose center longitude lies within the cap, following spec.md
// §4.4's spherical cosine law. full reports that every pixel in the ring qualifies (the cap
// covers the whole ring, e.g. near the pole); none reports that no pixel in the ring qualifies.
func ringWindow(
	z, fodd float64,
	nr int64,
	thetaC, sinThetaC, cosThetaC, phiC, cosR float64,
) (lo, hi int64, full, none bool) {
	sinThetaRing := math.Sqrt(math.Max(0, 1-z*z))

	denom := sinThetaC * sinThetaRing
	numerator := cosR - cosThetaC*z

	var dphi float64

	const epsilon = 1e-12

	switch {
	case math.Abs(denom) < epsilon:
		// Degenerate ring/center geometry (one of them sits at a pole): the cap either covers
		// the whole ring (every longitude is equidistant from the pole) or misses it entirely.
		if numerator <= epsilon {
			return 0, 0, true, false
		}

		return 0, 0, false, true
	default:
		cosDphi := numerator / denom

		switch {
		case cosDphi <= -1:
			return 0, 0, true, false
		case cosDphi >= 1:
			dphi = 0
		default:
			dphi = math.Acos(cosDphi)
		}
	}

	if dphi >= math.Pi {
		return 0, 0, true, false
	}

	step := math.Pi / (2 * float64(nr))

	ipCenter := phiC/step + fodd
	ipHalfWidth := dphi / step

	lo = int64(math.Ceil(ipCenter - ipHalfWidth - 1e-9))
	hi = int64(math.Floor(ipCenter + ipHalfWidth + 1e-9))

	ringpix := 4 * nr

	if hi-lo+1 >= ringpix {
		return 0, 0, true, false
	}

	if hi < lo {
		return 0, 0, false, true
	}

	return lo, hi, false, false
}

/*****************************************************************************************************************/

func dedupeSorted(p []healpix.PixelIndex) []healpix.PixelIndex {
	sort.Slice(p, func(i, j int) bool { return p[i] < p[j] })

	out := p[:0]

	var prev healpix.PixelIndex

	for i, v := range p {
		if i == 0 || v != prev {
			out = append(out, v)
		}

		prev = v
	}

	return out
}

/*****************************************************************************************************************/
