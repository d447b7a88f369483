/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package fitsio implements the read/write half of M8's FITS adapter contract (spec.md §4.7/§6):
// loading a HEALPix map, or an (I, Q, U) polarization triplet, from a FITS file, and saving a map
// back out. Wired to github.com/observerly/iris/pkg/fits.FITSImage, the same FITS reader/writer
// the teacher repository (observerly/skysolve) uses throughout cmd/main.go, examples/solve/main.go
// and pkg/solver/solver.go: fits.NewFITSImage(...).Read(file)/.WriteToBuffer(), fit.Header.Floats,
// and fit.Header.Set(key, value, comment). iris models a single CCD exposure image (Naxis1 x
// Naxis2 samples plus ADU-bounded header metadata); this package treats a HEALPix map's pixel
// buffer as a Naxis1 = Npix, Naxis2 = 1 "image row" and a polarization triplet as three such rows
// concatenated, recording NSIDE/ORDERING/COORDSYS as header keywords per spec.md §6. See
// DESIGN.md for the open questions this column-layout choice resolves.
package fitsio

/*****************************************************************************************************************/

import (
	"fmt"
	"os"

	"github.com/observerly/iris/pkg/fits"

	"github.com/observerly/gohealpix/pkg/healpix"
	"github.com/observerly/gohealpix/pkg/nside"
)

/*****************************************************************************************************************/

// Column selects one of the (at most three) data columns a FITS HEALPix file may carry: a single
// intensity column, or an (I, Q, U) polarization triplet, per spec.md §6's "one or three columns".
type Column int

/*****************************************************************************************************************/

const (
	ColumnIntensity Column = 1
	ColumnQ         Column = 2
	ColumnU         Column = 3
)

/*****************************************************************************************************************/

// fitsBitDepth, fitsBZero, fitsBScale and fitsDataMax mirror the literal arguments the teacher
// repository passes to fits.NewFITSImage everywhere it opens a file (cmd/main.go,
// examples/solve/main.go, internal/solver/solver.go): a 16-bit-depth, unscaled, zero-offset
// image. iris only uses dataMax for internal display scaling; it does not clamp values on
// Read/Write, so it is safe to reuse for HEALPix's unbounded real-valued pixels.
const (
	fitsBitDepth = 2
	fitsBZero    = 0
	fitsBScale   = 0
	fitsDataMax  = 65535
)

/*****************************************************************************************************************/

func newFITSImage() *fits.FITSImage {
	return fits.NewFITSImage(fitsBitDepth, fitsBZero, fitsBScale, fitsDataMax)
}

/*****************************************************************************************************************/

// openAndRead opens path and reads it as a FITSImage, closing the file before returning.
func openAndRead(path string) (*fits.FITSImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fitsio: failed to open %s: %w", path, err)
	}

	defer file.Close()

	fit := newFITSImage()

	if err := fit.Read(file); err != nil {
		return nil, fmt.Errorf("fitsio: failed to read %s: %w", path, err)
	}

	return fit, nil
}

/*****************************************************************************************************************/

// headerMeta extracts the NSIDE/ORDERING/COORDSYS keywords spec.md §6 mandates from a FITS
// header, defaulting ORDERING to RING and COORDSYS to CUSTOM when the keywords are absent
// (permissive, since the core must tolerate a generic I/O-error status without interpreting its
// encoding any further than this, per spec.md §7).
func headerMeta(header fits.FITSHeader) (n int, ordering healpix.Ordering, coord healpix.CoordinateSystem, err error) {
	nsideField, ok := header.Floats["NSIDE"]
	if !ok {
		return 0, 0, 0, fmt.Errorf("fitsio: missing required NSIDE header keyword")
	}

	n = int(nsideField.Value)

	if !nside.Valid(n) {
		return 0, 0, 0, fmt.Errorf("fitsio: NSIDE header value %d is not a valid HEALPix resolution", n)
	}

	ordering = healpix.RING

	if orderingField, ok := header.Strings["ORDERING"]; ok && orderingField.Value == "NESTED" {
		ordering = healpix.NESTED
	}

	coord = healpix.CUSTOM

	if coordField, ok := header.Strings["COORDSYS"]; ok {
		switch coordField.Value {
		case "E":
			coord = healpix.ECLIPTIC
		case "G":
			coord = healpix.GALACTIC
		case "C":
			coord = healpix.CELESTIAL
		}
	}

	return n, ordering, coord, nil
}

/*****************************************************************************************************************/

func sliceColumn(fit *fits.FITSImage, n int, column Column) ([]float64, error) {
	npix := int(nside.Npix(n))

	offset := (int(column) - 1) * npix

	if offset < 0 || offset+npix > len(fit.Data) {
		return nil, fmt.Errorf(
			"fitsio: column %d at NSIDE=%d needs %d values at offset %d, file has %d",
			column, n, npix, offset, len(fit.Data),
		)
	}

	pixels := make([]float64, npix)

	for i := 0; i < npix; i++ {
		pixels[i] = float64(fit.Data[offset+i])
	}

	return pixels, nil
}

/*****************************************************************************************************************/

// LoadComponent reads a single HEALPix map column from a FITS file, in whatever ordering and
// coordinate system its header records.
func LoadComponent(path string, column Column) (*healpix.Map, error) {
	fit, err := openAndRead(path)
	if err != nil {
		return nil, err
	}

	n, ordering, coord, err := headerMeta(fit.Header)
	if err != nil {
		return nil, err
	}

	pixels, err := sliceColumn(fit, n, column)
	if err != nil {
		return nil, err
	}

	m, err := healpix.NewMapFromArray(pixels, ordering)
	if err != nil {
		return nil, err
	}

	m.SetCoordinateSystem(coord)

	return m, nil
}

/*****************************************************************************************************************/

// LoadPolarization reads an (I, Q, U) polarization triplet from a single three-column FITS file.
func LoadPolarization(path string) (i, q, u *healpix.Map, err error) {
	fit, err := openAndRead(path)
	if err != nil {
		return nil, nil, nil, err
	}

	n, ordering, coord, err := headerMeta(fit.Header)
	if err != nil {
		return nil, nil, nil, err
	}

	maps := make([]*healpix.Map, 3)

	for idx, column := range []Column{ColumnIntensity, ColumnQ, ColumnU} {
		pixels, err := sliceColumn(fit, n, column)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fitsio: polarization column %d: %w", column, err)
		}

		m, err := healpix.NewMapFromArray(pixels, ordering)
		if err != nil {
			return nil, nil, nil, err
		}

		m.SetCoordinateSystem(coord)

		maps[idx] = m
	}

	return maps[0], maps[1], maps[2], nil
}

/*****************************************************************************************************************/

func coordCode(c healpix.CoordinateSystem) string {
	switch c {
	case healpix.ECLIPTIC:
		return "E"
	case healpix.GALACTIC:
		return "G"
	case healpix.CELESTIAL:
		return "C"
	default:
		return "C"
	}
}

/*****************************************************************************************************************/

// SaveComponent writes a HEALPix map to path as a single-column FITS file, recording its
// NSIDE/ORDERING/COORDSYS header keywords. typeCode documents the caller's intended FITS data
// type code (spec.md §6's TFLOAT/TDOUBLE/TLONG family) but is advisory only: iris's FITSImage
// always stores samples as float32, so gohealpix records it as the value of the TTYPE1 header
// keyword rather than silently losing precision by pretending to honour an unsupported on-disk
// width.
func SaveComponent(path string, m *healpix.Map, typeCode string, unit string) error {
	fit := newFITSImage()

	npix := int(m.NumPixels())

	fit.Data = make([]float32, npix)

	for i, v := range m.Pixels() {
		fit.Data[i] = float32(v)
	}

	fit.Header.Naxis1 = int32(npix)
	fit.Header.Naxis2 = 1

	orderingStr := "RING"
	if m.Ordering() == healpix.NESTED {
		orderingStr = "NESTED"
	}

	fit.Header.Set("NSIDE", float64(m.Nside()), "HEALPix resolution parameter")
	fit.Header.Set("ORDERING", orderingStr, "HEALPix pixel ordering (RING or NESTED)")
	fit.Header.Set("COORDSYS", coordCode(m.CoordinateSystem()), "Coordinate system (E/G/C)")
	fit.Header.Set("TTYPE1", typeCode, "Requested FITS data type code (advisory; stored as float32)")

	if unit != "" {
		fit.Header.Set("TUNIT1", unit, "Physical unit of the map's pixel values")
	}

	buf, err := fit.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("fitsio: failed to serialize %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fitsio: failed to create %s: %w", path, err)
	}

	defer file.Close()

	if _, err := buf.WriteTo(file); err != nil {
		return fmt.Errorf("fitsio: failed to write %s: %w", path, err)
	}

	return nil
}

/*****************************************************************************************************************/
