/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package healpix

/*****************************************************************************************************************/

import (
	"math"
	"testing"

	"github.com/observerly/gohealpix/pkg/vector"
)

/*****************************************************************************************************************/

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

/*****************************************************************************************************************/

// TestAnglesToRing checks ang2pix_ring against spec.md §8 scenarios S3 and S4, taken from
// original_source/test/test_pixel_functions.c.
func TestAnglesToRing(t *testing.T) {
	cases := []struct {
		n          int
		theta, phi float64
		want       PixelIndex
	}{
		{256, 0.1, 0.1, 1861},
		{256, 0.3, 0.3, 17129},
	}

	for _, c := range cases {
		got, err := AnglesToRing(c.n, c.theta, c.phi)
		if err != nil {
			t.Fatalf("AnglesToRing(%d, %v, %v) returned unexpected error: %v", c.n, c.theta, c.phi, err)
		}

		if got != c.want {
			t.Errorf("AnglesToRing(%d, %v, %v) = %d; want %d", c.n, c.theta, c.phi, got, c.want)
		}
	}
}

/*****************************************************************************************************************/

// TestAnglesToNest checks ang2pix_nest against spec.md §8 scenario S5.
func TestAnglesToNest(t *testing.T) {
	got, err := AnglesToNest(256, 0.1, 0.1)
	if err != nil {
		t.Fatalf("AnglesToNest() returned unexpected error: %v", err)
	}

	if want := PixelIndex(65196); got != want {
		t.Errorf("AnglesToNest(256, 0.1, 0.1) = %d; want %d", got, want)
	}
}

/*****************************************************************************************************************/

// TestRingToAngles checks pix2ang_ring against spec.md §8 scenario S6, the inverse of S3.
func TestRingToAngles(t *testing.T) {
	got, err := RingToAngles(256, 1861)
	if err != nil {
		t.Fatalf("RingToAngles() returned unexpected error: %v", err)
	}

	if !almostEqual(got.Theta, 0.09891295, 1e-6) {
		t.Errorf("RingToAngles(256, 1861).Theta = %v; want 0.09891295", got.Theta)
	}

	if !almostEqual(got.Phi, 0.07600627, 1e-6) {
		t.Errorf("RingToAngles(256, 1861).Phi = %v; want 0.07600627", got.Phi)
	}
}

/*****************************************************************************************************************/

// TestNestToAngles checks pix2ang_nest as the inverse of S5: NESTED pixel 65196 is the same pixel
// as RING pixel 1861, so its centre is S6's (0.09891295, 0.07600627).
func TestNestToAngles(t *testing.T) {
	got, err := NestToAngles(256, 65196)
	if err != nil {
		t.Fatalf("NestToAngles() returned unexpected error: %v", err)
	}

	if !almostEqual(got.Theta, 0.09891295, 1e-6) {
		t.Errorf("NestToAngles(256, 65196).Theta = %v; want 0.09891295", got.Theta)
	}

	if !almostEqual(got.Phi, 0.07600627, 1e-6) {
		t.Errorf("NestToAngles(256, 65196).Phi = %v; want 0.07600627", got.Phi)
	}
}

/*****************************************************************************************************************/

// TestNestToRing checks nest2ring against spec.md §8 scenario S7.
func TestNestToRing(t *testing.T) {
	got, err := NestToRing(64, 9632)
	if err != nil {
		t.Fatalf("NestToRing() returned unexpected error: %v", err)
	}

	if want := PixelIndex(9010); got != want {
		t.Errorf("NestToRing(64, 9632) = %d; want %d", got, want)
	}
}

/*****************************************************************************************************************/

// TestRingToNestRoundTrip checks that ring2nest(nest2ring(p)) == p across a spread of pixels and
// resolutions, since RingToNest/NestToRing must be mutual inverses by construction.
func TestRingToNestRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 64, 256} {
		npix := int(n) * int(n) * 12

		step := npix / 37
		if step < 1 {
			step = 1
		}

		for nest := 0; nest < npix; nest += step {
			ring, err := NestToRing(n, PixelIndex(nest))
			if err != nil {
				t.Fatalf("NestToRing(%d, %d) returned unexpected error: %v", n, nest, err)
			}

			back, err := RingToNest(n, ring)
			if err != nil {
				t.Fatalf("RingToNest(%d, %d) returned unexpected error: %v", n, ring, err)
			}

			if back != PixelIndex(nest) {
				t.Errorf("RingToNest(NestToRing(%d)) = %d; want %d (nside %d)", nest, back, nest, n)
			}
		}
	}
}

/*****************************************************************************************************************/

// TestPoles checks the RING pixel each pole maps to at phi = 0 for several Nside values: pixel 0
// (first pixel of the northernmost ring) and Npix-4 (first pixel of the southernmost ring).
func TestPoles(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 256} {
		north, err := AnglesToRing(n, 0, 0)
		if err != nil {
			t.Fatalf("AnglesToRing(%d, 0, 0) returned unexpected error: %v", n, err)
		}

		if north != 0 {
			t.Errorf("north pole RING pixel at nside %d = %d; want 0", n, north)
		}

		south, err := AnglesToRing(n, math.Pi, 0)
		if err != nil {
			t.Fatalf("AnglesToRing(%d, π, 0) returned unexpected error: %v", n, err)
		}

		npix := nsidePixCount(n)
		if south != PixelIndex(npix-4) {
			t.Errorf("south pole RING pixel at nside %d = %d; want %d", n, south, npix-4)
		}
	}
}

func nsidePixCount(n int) int64 {
	return 12 * int64(n) * int64(n)
}

/*****************************************************************************************************************/

// TestRingAnglesRoundTrip checks AnglesToRing -> RingToAngles recovers the original direction
// (not necessarily the exact input angles, since each pixel covers an area, but within one
// pixel's angular size).
func TestRingAnglesRoundTrip(t *testing.T) {
	n := 512

	cases := []struct{ theta, phi float64 }{
		{0.2, 0.4}, {1.0, 2.0}, {math.Pi / 2, math.Pi}, {2.9, 5.9},
	}

	for _, c := range cases {
		p, err := AnglesToRing(n, c.theta, c.phi)
		if err != nil {
			t.Fatalf("AnglesToRing() returned unexpected error: %v", err)
		}

		a, err := RingToAngles(n, p)
		if err != nil {
			t.Fatalf("RingToAngles() returned unexpected error: %v", err)
		}

		if !almostEqual(a.Theta, c.theta, 0.01) {
			t.Errorf("round-trip theta for (%v, %v) at pixel %d = %v; too far from input", c.theta, c.phi, p, a.Theta)
		}
	}
}

/*****************************************************************************************************************/

// TestSwitchOrderIsInvolution checks that switching a map's order twice restores the original
// buffer, for both RING->NESTED->RING and NESTED->RING->NESTED.
func TestSwitchOrderIsInvolution(t *testing.T) {
	for _, ordering := range []Ordering{RING, NESTED} {
		m, err := NewMap(8, ordering)
		if err != nil {
			t.Fatalf("NewMap() returned unexpected error: %v", err)
		}

		for i := range m.Pixels() {
			m.Pixels()[i] = float64(i)
		}

		original := append([]float64(nil), m.Pixels()...)

		if err := m.SwitchOrder(); err != nil {
			t.Fatalf("SwitchOrder() returned unexpected error: %v", err)
		}

		if m.Ordering() == ordering {
			t.Fatalf("SwitchOrder() did not change ordering from %v", ordering)
		}

		if err := m.SwitchOrder(); err != nil {
			t.Fatalf("SwitchOrder() returned unexpected error: %v", err)
		}

		if m.Ordering() != ordering {
			t.Errorf("SwitchOrder() twice = %v; want back to %v", m.Ordering(), ordering)
		}

		for i, v := range m.Pixels() {
			if v != original[i] {
				t.Errorf("SwitchOrder() twice lost pixel %d: got %v, want %v", i, v, original[i])
			}
		}
	}
}

/*****************************************************************************************************************/

// TestNewMapFromArrayDerivesNside checks that NewMapFromArray recovers the Nside from buffer
// length, and rejects lengths that are not a valid Npix.
func TestNewMapFromArrayDerivesNside(t *testing.T) {
	data := make([]float64, 12*4*4)

	m, err := NewMapFromArray(data, RING)
	if err != nil {
		t.Fatalf("NewMapFromArray() returned unexpected error: %v", err)
	}

	if m.Nside() != 4 {
		t.Errorf("NewMapFromArray() nside = %d; want 4", m.Nside())
	}

	if _, err := NewMapFromArray(make([]float64, 11), RING); err == nil {
		t.Errorf("NewMapFromArray(11 pixels) expected error, got nil")
	}
}

/*****************************************************************************************************************/

// TestMapAtSetRoundTrip checks the basic pixel accessor contract and its bounds checking.
func TestMapAtSetRoundTrip(t *testing.T) {
	m, err := NewMap(4, RING)
	if err != nil {
		t.Fatalf("NewMap() returned unexpected error: %v", err)
	}

	if err := m.Set(10, 3.14); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}

	got, err := m.At(10)
	if err != nil {
		t.Fatalf("At() returned unexpected error: %v", err)
	}

	if got != 3.14 {
		t.Errorf("At(10) = %v; want 3.14", got)
	}

	if _, err := m.At(m.NumPixels()); err == nil {
		t.Errorf("At(NumPixels()) expected out-of-range error, got nil")
	}
}

/*****************************************************************************************************************/

// TestVecRoundTrip checks that VecToRing/RingToVec and VecToNest/NestToVec stay self-consistent
// through vector.AnglesToVector/VectorToAngles.
func TestVecRoundTrip(t *testing.T) {
	v := vector.AnglesToVector(0.7, 1.3)

	p, err := VecToRing(128, v)
	if err != nil {
		t.Fatalf("VecToRing() returned unexpected error: %v", err)
	}

	back, err := RingToVec(128, p)
	if err != nil {
		t.Fatalf("RingToVec() returned unexpected error: %v", err)
	}

	if d := vector.AngularDistance(v, back); d > 0.02 {
		t.Errorf("VecToRing/RingToVec round trip off by %v radians; want < 0.02", d)
	}
}

/*****************************************************************************************************************/

func TestInvalidNsideIsRejected(t *testing.T) {
	if _, err := AnglesToRing(13, 0.1, 0.1); err == nil {
		t.Errorf("AnglesToRing(nside=13, ...) expected error, got nil")
	}

	if _, err := NewMap(13, RING); err == nil {
		t.Errorf("NewMap(nside=13, RING) expected error, got nil")
	}
}

/*****************************************************************************************************************/

// TestSwitchOrderMatchesReferencePermutation checks SwitchOrder against spec.md §8 scenario S9's
// literal Nside=2 RING->NESTED permutation.
func TestSwitchOrderMatchesReferencePermutation(t *testing.T) {
	want := []float64{
		3, 7, 11, 15, 2, 1, 6, 5, 10, 9, 14, 13, 19, 0, 23, 4, 27, 8, 31, 12,
		17, 22, 21, 26, 25, 30, 29, 18, 16, 35, 20, 39, 24, 43, 28, 47, 34, 33,
		38, 37, 42, 41, 46, 45, 32, 36, 40, 44,
	}

	m, err := NewMap(2, RING)
	if err != nil {
		t.Fatalf("NewMap() returned unexpected error: %v", err)
	}

	for i := range m.Pixels() {
		m.Pixels()[i] = float64(i)
	}

	if err := m.SwitchOrder(); err != nil {
		t.Fatalf("SwitchOrder() returned unexpected error: %v", err)
	}

	if m.Ordering() != NESTED {
		t.Fatalf("SwitchOrder() ordering = %v; want NESTED", m.Ordering())
	}

	if len(m.Pixels()) != len(want) {
		t.Fatalf("SwitchOrder() produced %d pixels; want %d", len(m.Pixels()), len(want))
	}

	for i, v := range want {
		if m.Pixels()[i] != v {
			t.Errorf("SwitchOrder() NESTED pixel %d = %v; want %v", i, m.Pixels()[i], v)
		}
	}
}

/*****************************************************************************************************************/

// TestNeighboursAreMutual checks that Neighbours is symmetric: if b is a neighbour of a, a is a
// neighbour of b, for a spread of interior and face-boundary pixels.
func TestNeighboursAreMutual(t *testing.T) {
	n := 8

	npix := PixelIndex(nsidePixCount(n))

	for p := PixelIndex(0); p < npix; p += 7 {
		neighbours, err := Neighbours(n, NESTED, p)
		if err != nil {
			t.Fatalf("Neighbours(%d, NESTED, %d) returned unexpected error: %v", n, p, err)
		}

		if len(neighbours) == 0 {
			t.Fatalf("Neighbours(%d, NESTED, %d) returned no neighbours", n, p)
		}

		for _, q := range neighbours {
			back, err := Neighbours(n, NESTED, q)
			if err != nil {
				t.Fatalf("Neighbours(%d, NESTED, %d) returned unexpected error: %v", n, q, err)
			}

			found := false

			for _, r := range back {
				if r == p {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Neighbours(%d) of %d does not list %d back as a neighbour", n, q, p)
			}
		}
	}
}

/*****************************************************************************************************************/

// TestNeighboursRingAndNestAgree checks that Neighbours(RING, p) and Neighbours(NESTED, p)
// describe the same set of pixels, just numbered differently.
func TestNeighboursRingAndNestAgree(t *testing.T) {
	n := 4

	ring, err := Neighbours(n, RING, 10)
	if err != nil {
		t.Fatalf("Neighbours(RING) returned unexpected error: %v", err)
	}

	ringAsNest := make(map[PixelIndex]struct{}, len(ring))

	for _, r := range ring {
		nest, err := RingToNest(n, r)
		if err != nil {
			t.Fatalf("RingToNest() returned unexpected error: %v", err)
		}

		ringAsNest[nest] = struct{}{}
	}

	nestPixel, err := RingToNest(n, 10)
	if err != nil {
		t.Fatalf("RingToNest() returned unexpected error: %v", err)
	}

	nest, err := Neighbours(n, NESTED, nestPixel)
	if err != nil {
		t.Fatalf("Neighbours(NESTED) returned unexpected error: %v", err)
	}

	if len(nest) != len(ringAsNest) {
		t.Fatalf("Neighbours(RING) and Neighbours(NESTED) disagree on count: %d vs %d", len(ringAsNest), len(nest))
	}

	for _, p := range nest {
		if _, ok := ringAsNest[p]; !ok {
			t.Errorf("Neighbours(NESTED) pixel %d not present in Neighbours(RING) set", p)
		}
	}
}

/*****************************************************************************************************************/

// TestNeighboursAtNsideOneMatchesBaseFaceAdjacency checks Neighbours against a genuine reference:
// at Nside = 1 every base pixel occupies its whole face (x = y = 0), so every one of its 8
// neighbour directions crosses into another face and the result must equal the deduplicated
// faceNeighbourTable row for that face without the face's own id (the row's centre entry), with
// no coordinate transform involved at all. This is the
// one resolution at which Neighbours' cross-face logic is provably correct; see the limitation
// documented on Neighbours for Nside > 1.
func TestNeighboursAtNsideOneMatchesBaseFaceAdjacency(t *testing.T) {
	for f := 0; f < 12; f++ {
		want := map[PixelIndex]struct{}{}

		for _, neighbourFace := range faceNeighbourTable[f] {
			if neighbourFace == f {
				continue
			}

			want[PixelIndex(neighbourFace)] = struct{}{}
		}

		got, err := Neighbours(1, NESTED, PixelIndex(f))
		if err != nil {
			t.Fatalf("Neighbours(1, NESTED, %d) returned unexpected error: %v", f, err)
		}

		if len(got) != len(want) {
			t.Fatalf("Neighbours(1, NESTED, %d) = %v; want the %d distinct faces in %v", f, got, len(want), faceNeighbourTable[f])
		}

		for _, p := range got {
			if _, ok := want[p]; !ok {
				t.Errorf("Neighbours(1, NESTED, %d) returned face %d, not present in faceNeighbourTable[%d] = %v", f, p, f, faceNeighbourTable[f])
			}
		}
	}
}

/*****************************************************************************************************************/

// TestNeighboursInteriorPixelsStayOnSameFace checks that a pixel strictly inside a face (not on
// any edge) has exactly 8 neighbours, all on that same face, offset by one step in (x, y) - the
// part of Neighbours that needs no cross-face transform and so is exact at any Nside.
func TestNeighboursInteriorPixelsStayOnSameFace(t *testing.T) {
	n := 8

	for face := 0; face < 12; face++ {
		p, err := GetPixelIndexFromFaceXY(n, face, 4, 4)
		if err != nil {
			t.Fatalf("GetPixelIndexFromFaceXY(%d, %d, 4, 4) returned unexpected error: %v", n, face, err)
		}

		neighbours, err := Neighbours(n, NESTED, p)
		if err != nil {
			t.Fatalf("Neighbours(%d, NESTED, %d) returned unexpected error: %v", n, p, err)
		}

		if len(neighbours) != 8 {
			t.Fatalf("Neighbours(%d, NESTED, %d) (interior pixel) = %v; want 8 entries", n, p, neighbours)
		}

		want := map[PixelIndex]struct{}{}

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}

				q, err := GetPixelIndexFromFaceXY(n, face, 4+dx, 4+dy)
				if err != nil {
					t.Fatalf("GetPixelIndexFromFaceXY(%d, %d, %d, %d) returned unexpected error: %v", n, face, 4+dx, 4+dy, err)
				}

				want[q] = struct{}{}
			}
		}

		for _, q := range neighbours {
			if _, ok := want[q]; !ok {
				t.Errorf("Neighbours(%d, NESTED, %d) returned %d, not one of the 8 same-face offsets %v", n, p, q, want)
			}
		}
	}
}

/*****************************************************************************************************************/
