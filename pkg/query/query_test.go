/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package query

/*****************************************************************************************************************/

import (
	"math"
	"testing"

	"github.com/observerly/gohealpix/pkg/healpix"
	"github.com/observerly/gohealpix/pkg/nside"
)

/*****************************************************************************************************************/

// TestDiscFullSphereCoversEveryPixel checks invariant 5 from spec.md §8: Disc(theta, phi, π)
// returns every RING index in [0, Npix) exactly once.
func TestDiscFullSphereCoversEveryPixel(t *testing.T) {
	n := 8

	got, err := Disc(n, 1.0, 2.0, math.Pi)
	if err != nil {
		t.Fatalf("Disc() returned unexpected error: %v", err)
	}

	npix := int(nside.Npix(n))

	if len(got) != npix {
		t.Fatalf("Disc(π) returned %d pixels; want %d", len(got), npix)
	}

	for i, p := range got {
		if p != healpix.PixelIndex(i) {
			t.Fatalf("Disc(π) pixel %d = %d; want %d (result must be every index, ascending)", i, p, i)
		}
	}
}

/*****************************************************************************************************************/

// TestDiscInclusiveSupersetsExclusive checks invariant 6 from spec.md §8: the inclusive variant
// is a superset of the exclusive variant for the same inputs, across a spread of centers/radii.
func TestDiscInclusiveSupersetsExclusive(t *testing.T) {
	n := 16

	cases := []struct {
		theta, phi, r float64
	}{
		{0.0, 0.0, 0.05},
		{math.Pi / 2, 1.0, 0.1},
		{math.Pi, 0.3, 0.2},
		{1.2, 4.0, 0.3},
		{2.0, 0.0, 0.05},
	}

	for _, c := range cases {
		exclusive, err := Disc(n, c.theta, c.phi, c.r)
		if err != nil {
			t.Fatalf("Disc(%v, %v, %v) returned unexpected error: %v", c.theta, c.phi, c.r, err)
		}

		inclusive, err := DiscInclusive(n, c.theta, c.phi, c.r)
		if err != nil {
			t.Fatalf("DiscInclusive(%v, %v, %v) returned unexpected error: %v", c.theta, c.phi, c.r, err)
		}

		set := make(map[healpix.PixelIndex]struct{}, len(inclusive))
		for _, p := range inclusive {
			set[p] = struct{}{}
		}

		for _, p := range exclusive {
			if _, ok := set[p]; !ok {
				t.Errorf("DiscInclusive(%v, %v, %v) is missing exclusive pixel %d", c.theta, c.phi, c.r, p)
			}
		}
	}
}

/*****************************************************************************************************************/

// TestDiscCentersLieWithinRadius checks that every pixel Disc returns actually has its center
// within the requested angular radius of the query direction (the exclusive contract).
func TestDiscCentersLieWithinRadius(t *testing.T) {
	n := 32
	theta, phi, r := 1.3, 2.2, 0.2

	got, err := Disc(n, theta, phi, r)
	if err != nil {
		t.Fatalf("Disc() returned unexpected error: %v", err)
	}

	if len(got) == 0 {
		t.Fatalf("Disc() returned no pixels for a non-trivial cap")
	}

	for _, p := range got {
		a, err := healpix.RingToAngles(n, p)
		if err != nil {
			t.Fatalf("RingToAngles(%d) returned unexpected error: %v", p, err)
		}

		center := sphericalVector(theta, phi)
		pixel := sphericalVector(a.Theta, a.Phi)

		d := angularDistance(center, pixel)

		if d > r+1e-6 {
			t.Errorf("Disc() pixel %d center is %v radians from query center; want <= %v", p, d, r)
		}
	}
}

/*****************************************************************************************************************/

func sphericalVector(theta, phi float64) [3]float64 {
	sinTheta := math.Sin(theta)

	return [3]float64{sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), math.Cos(theta)}
}

/*****************************************************************************************************************/

func angularDistance(a, b [3]float64) float64 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2]

	if dot > 1 {
		dot = 1
	}

	if dot < -1 {
		dot = -1
	}

	return math.Acos(dot)
}

/*****************************************************************************************************************/
