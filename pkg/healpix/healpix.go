/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package healpix implements the pixel index kernels (M3), order conversion (M4), and the map
// container (M5) of the Hierarchical Equal Area iso-Latitude Pixelization. Grounded on the
// original HPixLib's ang2pix_ring/ang2pix_nest/pix2ang_ring/pix2ang_nest/ring2nest/nest2ring
// family, as published in original_source/src/hpix.h, with the face-geometry constant tables
// (jrll/jpll) taken from the same reference rather than re-derived.
package healpix

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	"math"

	"github.com/observerly/gohealpix/pkg/nside"
	"github.com/observerly/gohealpix/pkg/vector"
)

/*****************************************************************************************************************/

// Ordering selects between the two HEALPix pixel numbering schemes.
type Ordering int

const (
	RING Ordering = iota
	NESTED
)

/*****************************************************************************************************************/

func (o Ordering) String() string {
	switch o {
	case RING:
		return "RING"
	case NESTED:
		return "NESTED"
	default:
		return "UNKNOWN"
	}
}

/*****************************************************************************************************************/

// CoordinateSystem records the reference frame a Map's pixel centres are expressed in. gohealpix
// does not rotate between frames; it only carries the tag through for FITS round-tripping.
type CoordinateSystem int

const (
	CUSTOM CoordinateSystem = iota
	ECLIPTIC
	GALACTIC
	CELESTIAL
)

/*****************************************************************************************************************/

func (c CoordinateSystem) String() string {
	switch c {
	case ECLIPTIC:
		return "ECLIPTIC"
	case GALACTIC:
		return "GALACTIC"
	case CELESTIAL:
		return "CELESTIAL"
	default:
		return "CUSTOM"
	}
}

/*****************************************************************************************************************/

// PixelIndex is a zero-based pixel number in {0, ..., Npix-1}. Index-conversion kernels report
// an invalid Nside, an out-of-range theta or an out-of-range pixel through their error result;
// the index returned alongside that error is 0, which is also a legitimate pixel, so callers
// check the error rather than the index.
type PixelIndex = int64

/*****************************************************************************************************************/

const twoThirds = 2.0 / 3.0

/*****************************************************************************************************************/

// jrll and jpll are the per-face ring/phi geometry constants used by the xyf2ring/ring2xyf
// conversion (faces 0-3 are the north polar faces, 4-7 the equatorial belt, 8-11 the south
// polar faces). Taken verbatim from the original HPixLib's pix_tools table, not re-derived.
var jrll = [12]int64{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}
var jpll = [12]int64{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}

/*****************************************************************************************************************/

// AnglesToRing converts colatitude theta in [0, π] and longitude phi into the RING pixel index at
// resolution nside. Grounded on ang2pix_ring in original_source/src/hpix.h; verified by hand
// against spec.md §8 scenarios S3 and S4.
func AnglesToRing(n int, theta, phi float64) (PixelIndex, error) {
	if !nside.Valid(n) {
		return 0, fmt.Errorf("healpix: invalid nside %d", n)
	}

	if theta < 0 || theta > math.Pi {
		return 0, fmt.Errorf("healpix: theta %v out of range [0, π]", theta)
	}

	ns := int64(n)

	z := math.Cos(theta)
	za := math.Abs(z)
	tt := vector.NormalizePhi(phi) / (math.Pi / 2)

	npix := nside.Npix(n)

	var ipix1 int64

	if za <= twoThirds {
		temp1 := float64(ns) * (0.5 + tt)
		temp2 := float64(ns) * 0.75 * z

		jp := int64(math.Floor(temp1 - temp2))
		jm := int64(math.Floor(temp1 + temp2))

		ir := ns + 1 + jp - jm
		kshift := int64(0)
		if ir%2 == 0 {
			kshift = 1
		}

		ip := (jp+jm-ns+kshift+1)/2 + 1
		if ip > 4*ns {
			ip -= 4 * ns
		}

		ncap := 2 * ns * (ns - 1)
		ipix1 = ncap + 4*ns*(ir-1) + ip
	} else {
		tp := tt - math.Floor(tt)
		tmp := float64(ns) * math.Sqrt(3*(1-za))

		jp := int64(math.Floor(tp * tmp))
		jm := int64(math.Floor((1 - tp) * tmp))

		ir := jp + jm + 1
		ip := int64(math.Floor(tt*float64(ir))) + 1
		if ip > 4*ir {
			ip -= 4 * ir
		}

		if z > 0 {
			ipix1 = 2*ir*(ir-1) + ip
		} else {
			ipix1 = npix - 2*ir*(ir+1) + ip
		}
	}

	return ipix1 - 1, nil
}

/*****************************************************************************************************************/

// RingToAngles returns the colatitude/longitude of the centre of RING pixel p at resolution
// nside. Grounded on pix2ang_ring in original_source/src/hpix.h; verified by hand against the
// spec.md §8 S6 scenario (the inverse of S3).
func RingToAngles(n int, p PixelIndex) (vector.Angles, error) {
	if !nside.Valid(n) {
		return vector.Angles{}, fmt.Errorf("healpix: invalid nside %d", n)
	}

	npix := nside.Npix(n)

	if p < 0 || p >= npix {
		return vector.Angles{}, fmt.Errorf("healpix: ring pixel %d out of range [0, %d)", p, npix)
	}

	ns := int64(n)
	ncap := 2 * ns * (ns - 1)
	fact1 := 1.5 * float64(ns)
	fact2 := 3.0 * float64(ns) * float64(ns)

	ipix1 := p + 1

	var theta, phi float64

	switch {
	case ipix1 <= ncap:
		hip := float64(ipix1) / 2
		fihip := math.Floor(hip)
		iring := int64(math.Floor(math.Sqrt(hip-math.Sqrt(fihip)))) + 1
		iphi := ipix1 - 2*iring*(iring-1)

		theta = math.Acos(1 - float64(iring)*float64(iring)/fact2)
		phi = (float64(iphi) - 0.5) * math.Pi / (2 * float64(iring))
	case ipix1 <= 2*ns*(5*ns+1):
		ip := ipix1 - ncap - 1
		iring := ip/(4*ns) + ns
		iphi := ip%(4*ns) + 1

		fodd := 0.5
		if (iring+ns)%2 != 0 {
			fodd = 1.0
		}

		theta = math.Acos(float64(2*ns-iring) / fact1)
		phi = (float64(iphi) - fodd) * math.Pi / (2 * float64(ns))
	default:
		ip := npix - ipix1 + 1
		hip := float64(ip) / 2
		fihip := math.Floor(hip)
		iring := int64(math.Floor(math.Sqrt(hip-math.Sqrt(fihip)))) + 1
		iphi := 4*iring + 1 - (ip - 2*iring*(iring-1))

		theta = math.Acos(-1 + float64(iring)*float64(iring)/fact2)
		phi = (float64(iphi) - 0.5) * math.Pi / (2 * float64(iring))
	}

	return vector.Angles{Theta: theta, Phi: phi}, nil
}

/*****************************************************************************************************************/

// AnglesToNest converts colatitude/longitude into the NESTED pixel index at resolution nside.
// Grounded on ang2pix_nest in original_source/src/hpix.h; verified by hand against the spec.md
// §8 S5 scenario, including the x-even/y-odd bit interleave convention.
func AnglesToNest(n int, theta, phi float64) (PixelIndex, error) {
	if !nside.Valid(n) {
		return 0, fmt.Errorf("healpix: invalid nside %d", n)
	}

	if theta < 0 || theta > math.Pi {
		return 0, fmt.Errorf("healpix: theta %v out of range [0, π]", theta)
	}

	ns := int64(n)

	z := math.Cos(theta)
	za := math.Abs(z)
	tt := vector.NormalizePhi(phi) / (math.Pi / 2)

	var faceNum, ix, iy int64

	if za <= twoThirds {
		temp1 := float64(ns) * (0.5 + tt)
		temp2 := float64(ns) * 0.75 * z

		jp := int64(temp1 - temp2)
		jm := int64(temp1 + temp2)

		ifp := jp / ns
		ifm := jm / ns

		switch {
		case ifp == ifm:
			if ifp == 4 {
				faceNum = 4
			} else {
				faceNum = ifp + 4
			}
		case ifp < ifm:
			faceNum = ifp
		default:
			faceNum = ifm + 8
		}

		ix = jm % ns
		iy = ns - (jp % ns) - 1
	} else {
		ntt := int64(tt)
		if ntt >= 4 {
			ntt = 3
		}

		tp := tt - float64(ntt)
		tmp := float64(ns) * math.Sqrt(3*(1-za))

		jp := int64(tp * tmp)
		if jp >= ns {
			jp = ns - 1
		}

		jm := int64((1 - tp) * tmp)
		if jm >= ns {
			jm = ns - 1
		}

		if z >= 0 {
			faceNum = ntt
			ix = ns - jm - 1
			iy = ns - jp - 1
		} else {
			faceNum = ntt + 8
			ix = jp
			iy = jm
		}
	}

	return interleave(ix, iy) + faceNum*ns*ns, nil
}

/*****************************************************************************************************************/

// NestToAngles returns the colatitude/longitude of the centre of NESTED pixel p at resolution
// nside. Grounded on pix2ang_nest in original_source/src/hpix.h; verified by hand as the inverse
// of the S5 scenario.
func NestToAngles(n int, p PixelIndex) (vector.Angles, error) {
	if !nside.Valid(n) {
		return vector.Angles{}, fmt.Errorf("healpix: invalid nside %d", n)
	}

	npix := nside.Npix(n)

	if p < 0 || p >= npix {
		return vector.Angles{}, fmt.Errorf("healpix: nest pixel %d out of range [0, %d)", p, npix)
	}

	ns := int64(n)
	faceNum := p / (ns * ns)
	ipf := p % (ns * ns)

	ix, iy := deinterleave(ipf)

	jr := jrll[faceNum]*ns - ix - iy - 1

	fact1 := 1 / (3 * float64(ns) * float64(ns))
	fact2 := 2.0 / (3.0 * float64(ns))

	var theta, phi float64

	switch {
	case jr < ns:
		nr := jr
		z := 1 - float64(nr)*float64(nr)*fact1
		kshift := int64(0)
		jp := (jpll[faceNum]*nr + ix - iy + 1 + kshift) / 2

		if jp > 4*nr {
			jp -= 4 * nr
		}
		if jp < 1 {
			jp += 4 * nr
		}

		theta = math.Acos(z)
		phi = (float64(jp) - float64(kshift+1)*0.5) * (math.Pi / 2) / float64(nr)
	case jr > 3*ns:
		nr := 4*ns - jr
		z := -1 + float64(nr)*float64(nr)*fact1
		kshift := int64(0)
		jp := (jpll[faceNum]*nr + ix - iy + 1 + kshift) / 2

		if jp > 4*nr {
			jp -= 4 * nr
		}
		if jp < 1 {
			jp += 4 * nr
		}

		theta = math.Acos(z)
		phi = (float64(jp) - float64(kshift+1)*0.5) * (math.Pi / 2) / float64(nr)
	default:
		nr := ns
		z := float64(2*ns-jr) * fact2
		kshift := (jr - ns) % 2
		jp := (jpll[faceNum]*nr + ix - iy + 1 + kshift) / 2

		if jp > 4*nr {
			jp -= 4 * nr
		}
		if jp < 1 {
			jp += 4 * nr
		}

		theta = math.Acos(z)
		phi = (float64(jp) - float64(kshift+1)*0.5) * (math.Pi / 2) / float64(nr)
	}

	return vector.Angles{Theta: theta, Phi: phi}, nil
}

/*****************************************************************************************************************/

// interleave bit-interleaves ix and iy into a single Morton code with ix occupying the even bit
// positions and iy the odd bit positions, matching the original HPixLib's xtab/ytab convention
// (verified by hand against S5: interleave(226, 254) == 65196).
func interleave(ix, iy int64) int64 {
	return spreadBits(ix) | (spreadBits(iy) << 1)
}

/*****************************************************************************************************************/

// spreadBits inserts a zero bit between each bit of x (x must fit in 32 bits), the standard
// Morton-code "spread" used to implement bit interleaving without a lookup table.
func spreadBits(x int64) int64 {
	x &= 0xFFFFFFFF
	x = (x | (x << 16)) & 0x0000FFFF0000FFFF
	x = (x | (x << 8)) & 0x00FF00FF00FF00FF
	x = (x | (x << 4)) & 0x0F0F0F0F0F0F0F0F
	x = (x | (x << 2)) & 0x3333333333333333
	x = (x | (x << 1)) & 0x5555555555555555

	return x
}

/*****************************************************************************************************************/

// compactBits is the inverse of spreadBits: it extracts every other bit starting from bit 0.
func compactBits(x int64) int64 {
	x &= 0x5555555555555555
	x = (x | (x >> 1)) & 0x3333333333333333
	x = (x | (x >> 2)) & 0x0F0F0F0F0F0F0F0F
	x = (x | (x >> 4)) & 0x00FF00FF00FF00FF
	x = (x | (x >> 8)) & 0x0000FFFF0000FFFF
	x = (x | (x >> 16)) & 0x00000000FFFFFFFF

	return x
}

/*****************************************************************************************************************/

func deinterleave(p int64) (ix, iy int64) {
	return compactBits(p), compactBits(p >> 1)
}

/*****************************************************************************************************************/

// xyfToRing converts a face/x/y triple into its RING pixel index. Grounded on xyf2ring in
// original_source/src/hpix.h; verified by hand against S7 (nside=64, face=2, ix=48, iy=12 -> 9010).
func xyfToRing(n int, ix, iy, face int64) int64 {
	ns := int64(n)

	jr := jrll[face]*ns - ix - iy - 1

	var nr, nBefore, kshift int64

	switch {
	case jr < ns:
		nr = jr
		nBefore = 2 * nr * (nr - 1)
		kshift = 0
	case jr > 3*ns:
		nr = 4*ns - jr
		npix := nside.Npix(n)
		nBefore = npix - 2*nr*(nr+1)
		kshift = 0
	default:
		nr = ns
		ncap := 2 * ns * (ns - 1)
		nl4 := 4 * ns
		nBefore = ncap + (jr-ns)*nl4
		kshift = (jr - ns) % 2
	}

	jp := (jpll[face]*nr + ix - iy + 1 + kshift) / 2

	nl4 := 4 * ns
	if jp > nl4 {
		jp -= nl4
	}
	if jp < 1 {
		jp += nl4
	}

	return nBefore + jp - 1
}

/*****************************************************************************************************************/

// ringToXYF is the inverse of xyfToRing. Grounded on ring2xyf in original_source/src/hpix.h.
func ringToXYF(n int, pix int64) (ix, iy, face int64) {
	ns := int64(n)
	ncap := 2 * ns * (ns - 1)
	npix := nside.Npix(n)

	var iring, iphi, kshift, nr int64

	switch {
	case pix < ncap:
		iring = (1 + isqrtInt(1+2*pix)) / 2
		iphi = (pix + 1) - 2*iring*(iring-1)
		kshift = 0
		nr = iring
		face = 0

		tmp := iphi - 1
		if tmp >= 2*iring {
			face = 2
			tmp -= 2 * iring
		}
		if tmp >= iring {
			face++
		}
	case pix < npix-ncap:
		ip := pix - ncap
		var tmp int64
		if ns == 1 {
			tmp = ip >> 2
		} else {
			tmp = ip / (4 * ns)
		}

		iring = tmp + ns
		iphi = ip - tmp*4*ns + 1
		kshift = (iring + ns) % 2
		nr = ns

		ire := iring - ns + 1
		irm := 2*ns + 2 - ire
		ifm := (iphi - ire/2 + ns - 1) / ns
		ifp := (iphi - irm/2 + ns - 1) / ns

		switch {
		case ifp == ifm:
			if ifp == 4 {
				face = 4
			} else {
				face = ifp + 4
			}
		case ifp < ifm:
			face = ifp
		default:
			face = ifm + 8
		}
	default:
		ip := npix - pix
		iring = (1 + isqrtInt(2*ip-1)) / 2
		iphi = 4*iring + 1 - (ip - 2*iring*(iring-1))
		kshift = 0
		nr = iring
		iring = 4*ns - iring
		face = 8

		tmp := iphi - 1
		if tmp >= 2*nr {
			face = 10
			tmp -= 2 * nr
		}
		if tmp >= nr {
			face++
		}
	}

	irt := iring - jrll[face]*ns + 1
	ipt := 2*iphi - jpll[face]*nr - kshift - 1
	if ipt >= 2*ns {
		ipt -= 8 * ns
	}

	ix = (ipt - irt) >> 1
	iy = -(ipt + irt) >> 1

	return ix, iy, face
}

/*****************************************************************************************************************/

// isqrtInt returns floor(sqrt(n)) for n >= 0, computed with an integer Newton refinement to avoid
// float64 rounding errors near perfect squares for the pixel counts this package handles.
func isqrtInt(n int64) int64 {
	if n <= 0 {
		return 0
	}

	x := int64(math.Sqrt(float64(n)))

	for x*x > n {
		x--
	}

	for (x+1)*(x+1) <= n {
		x++
	}

	return x
}

/*****************************************************************************************************************/

// RingToNest converts a RING pixel index into its NESTED equivalent at the same resolution.
// Grounded on ring2nest in original_source/src/hpix.h, composed from ringToXYF and the NESTED
// interleave.
func RingToNest(n int, ring PixelIndex) (PixelIndex, error) {
	if !nside.Valid(n) {
		return 0, fmt.Errorf("healpix: invalid nside %d", n)
	}

	npix := nside.Npix(n)

	if ring < 0 || ring >= npix {
		return 0, fmt.Errorf("healpix: ring pixel %d out of range [0, %d)", ring, npix)
	}

	ix, iy, face := ringToXYF(n, ring)

	ns := int64(n)

	return interleave(ix, iy) + face*ns*ns, nil
}

/*****************************************************************************************************************/

// NestToRing converts a NESTED pixel index into its RING equivalent at the same resolution.
// Grounded on nest2ring in original_source/src/hpix.h; verified by hand against S7 (nside=64,
// nest=9632 -> ring=9010).
func NestToRing(n int, nest PixelIndex) (PixelIndex, error) {
	if !nside.Valid(n) {
		return 0, fmt.Errorf("healpix: invalid nside %d", n)
	}

	npix := nside.Npix(n)

	if nest < 0 || nest >= npix {
		return 0, fmt.Errorf("healpix: nest pixel %d out of range [0, %d)", nest, npix)
	}

	ns := int64(n)
	face := nest / (ns * ns)
	ipf := nest % (ns * ns)

	ix, iy := deinterleave(ipf)

	return xyfToRing(n, ix, iy, face), nil
}

/*****************************************************************************************************************/

// RingInfo returns the geometry of global ring index ring (1 <= ring <= 4*n-1, counted north to
// south): the cosine of its colatitude z, the longitude-formula phase offset fodd, its "radius"
// in pixel units nr, its pixel count ringpix (always 4*nr), and the RING index of its first
// pixel startpix. Exposes the same polar-cap/equatorial-belt regime split RingToAngles already
// implements, for pkg/query's ring-by-ring cap search (spec.md §4.4).
func RingInfo(n int, ring int64) (z, fodd float64, nr, ringpix, startpix int64, err error) {
	if !nside.Valid(n) {
		return 0, 0, 0, 0, 0, fmt.Errorf("healpix: invalid nside %d", n)
	}

	ns := int64(n)
	numRings := 4*ns - 1

	if ring < 1 || ring > numRings {
		return 0, 0, 0, 0, 0, fmt.Errorf("healpix: ring %d out of range [1, %d]", ring, numRings)
	}

	ncap := 2 * ns * (ns - 1)
	npix := nside.Npix(n)

	switch {
	case ring < ns:
		nr = ring
		z = 1 - float64(nr)*float64(nr)/(3*float64(ns)*float64(ns))
		fodd = 0.5
		startpix = 2 * nr * (nr - 1)
	case ring <= 3*ns:
		nr = ns
		z = float64(2*ns-ring) / (1.5 * float64(ns))

		if (ring+ns)%2 != 0 {
			fodd = 1.0
		} else {
			fodd = 0.5
		}

		startpix = ncap + (ring-ns)*4*ns
	default:
		nr = 4*ns - ring
		z = -(1 - float64(nr)*float64(nr)/(3*float64(ns)*float64(ns)))
		fodd = 0.5
		startpix = npix - 2*nr*(nr+1)
	}

	ringpix = 4 * nr

	return z, fodd, nr, ringpix, startpix, nil
}

/*****************************************************************************************************************/

// VecToRing converts a unit direction vector into a RING pixel index.
func VecToRing(n int, v vector.Vector3) (PixelIndex, error) {
	a := vector.VectorToAngles(v)
	return AnglesToRing(n, a.Theta, a.Phi)
}

/*****************************************************************************************************************/

// VecToNest converts a unit direction vector into a NESTED pixel index.
func VecToNest(n int, v vector.Vector3) (PixelIndex, error) {
	a := vector.VectorToAngles(v)
	return AnglesToNest(n, a.Theta, a.Phi)
}

/*****************************************************************************************************************/

// RingToVec returns the unit direction vector of the centre of RING pixel p.
func RingToVec(n int, p PixelIndex) (vector.Vector3, error) {
	a, err := RingToAngles(n, p)
	if err != nil {
		return vector.Vector3{}, err
	}

	return vector.AnglesToVector(a.Theta, a.Phi), nil
}

/*****************************************************************************************************************/

// NestToVec returns the unit direction vector of the centre of NESTED pixel p.
func NestToVec(n int, p PixelIndex) (vector.Vector3, error) {
	a, err := NestToAngles(n, p)
	if err != nil {
		return vector.Vector3{}, err
	}

	return vector.AnglesToVector(a.Theta, a.Phi), nil
}

/*****************************************************************************************************************/

// Map is a HEALPix pixel map: a flat buffer of Npix(Nside) values in a fixed Ordering, tagged
// with a CoordinateSystem for the benefit of pkg/fitsio. Grounded on the original HPixLib's
// hpix_bitmap_t, minus its explicit free/alloc lifecycle, which Go's garbage collector subsumes.
type Map struct {
	n        int
	ordering Ordering
	coord    CoordinateSystem
	pixels   []float64
}

/*****************************************************************************************************************/

// NewMap allocates a Map of Npix(n) pixels, all initialised to 0.
func NewMap(n int, ordering Ordering) (*Map, error) {
	if !nside.Valid(n) {
		return nil, fmt.Errorf("healpix: invalid nside %d", n)
	}

	return &Map{
		n:        n,
		ordering: ordering,
		coord:    CUSTOM,
		pixels:   make([]float64, nside.Npix(n)),
	}, nil
}

/*****************************************************************************************************************/

// NewMapFromArray wraps an existing slice of pixel values as a Map. The Nside is derived from the
// slice length via nside.NsideFromNpix; len(data) must be a valid Npix(n). The slice is copied so
// the Map owns an independent buffer.
func NewMapFromArray(data []float64, ordering Ordering) (*Map, error) {
	n := nside.NsideFromNpix(int64(len(data)))
	if n == 0 {
		return nil, fmt.Errorf("healpix: %d is not a valid pixel count for any supported nside", len(data))
	}

	pixels := make([]float64, len(data))
	copy(pixels, data)

	return &Map{
		n:        n,
		ordering: ordering,
		coord:    CUSTOM,
		pixels:   pixels,
	}, nil
}

/*****************************************************************************************************************/

// Nside returns the map's resolution parameter.
func (m *Map) Nside() int {
	return m.n
}

/*****************************************************************************************************************/

// Ordering returns the map's pixel ordering scheme.
func (m *Map) Ordering() Ordering {
	return m.ordering
}

/*****************************************************************************************************************/

// CoordinateSystem returns the map's declared reference frame.
func (m *Map) CoordinateSystem() CoordinateSystem {
	return m.coord
}

/*****************************************************************************************************************/

// SetCoordinateSystem tags the map with a reference frame, for FITS round-tripping.
func (m *Map) SetCoordinateSystem(c CoordinateSystem) {
	m.coord = c
}

/*****************************************************************************************************************/

// NumPixels returns Npix(Nside()).
func (m *Map) NumPixels() int64 {
	return nside.Npix(m.n)
}

/*****************************************************************************************************************/

// Pixels returns the map's backing buffer. Mutating the returned slice mutates the map.
func (m *Map) Pixels() []float64 {
	return m.pixels
}

/*****************************************************************************************************************/

// At returns the value stored at pixel p, in the map's current ordering.
func (m *Map) At(p PixelIndex) (float64, error) {
	if p < 0 || p >= int64(len(m.pixels)) {
		return 0, fmt.Errorf("healpix: pixel %d out of range [0, %d)", p, len(m.pixels))
	}

	return m.pixels[p], nil
}

/*****************************************************************************************************************/

// Set stores value at pixel p, in the map's current ordering.
func (m *Map) Set(p PixelIndex, value float64) error {
	if p < 0 || p >= int64(len(m.pixels)) {
		return fmt.Errorf("healpix: pixel %d out of range [0, %d)", p, len(m.pixels))
	}

	m.pixels[p] = value

	return nil
}

/*****************************************************************************************************************/

// ErrUnseen marks a pixel whose value is unknown/unobserved. Map values carry whichever UNSEEN
// encoding they were given (NaN or the ≤ -1.63e30 sentinel): pkg/fitsio copies pixel values
// unchanged, and mollweide.IsUnseen accepts both encodings.
var ErrUnseen = errors.New("healpix: pixel is unseen")

/*****************************************************************************************************************/

// SwitchOrder converts the map's pixel buffer in place between RING and NESTED ordering.
// Grounded on the original HPixLib's switch_order, verified against spec.md's 48-element
// Nside=2 RING<->NESTED permutation: from RING the value at index i moves to index
// NestToRing(i), and from NESTED the value at index i moves to index RingToNest(i).
func (m *Map) SwitchOrder() error {
	npix := int(nside.Npix(m.n))

	reordered := make([]float64, npix)

	switch m.ordering {
	case RING:
		for i := 0; i < npix; i++ {
			ring, err := NestToRing(m.n, int64(i))
			if err != nil {
				return err
			}

			reordered[ring] = m.pixels[i]
		}

		m.ordering = NESTED
	case NESTED:
		for i := 0; i < npix; i++ {
			nest, err := RingToNest(m.n, int64(i))
			if err != nil {
				return err
			}

			reordered[nest] = m.pixels[i]
		}

		m.ordering = RING
	default:
		return fmt.Errorf("healpix: unknown ordering %v", m.ordering)
	}

	m.pixels = reordered

	return nil
}

/*****************************************************************************************************************/
