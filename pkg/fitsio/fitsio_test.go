/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package fitsio

/*****************************************************************************************************************/

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/observerly/gohealpix/pkg/healpix"
)

/*****************************************************************************************************************/

func TestLoadComponentMissingFileReturnsError(t *testing.T) {
	if _, err := LoadComponent("/nonexistent/path/to/map.fits", ColumnIntensity); err == nil {
		t.Errorf("LoadComponent() on a nonexistent file expected an error, got nil")
	}
}

/*****************************************************************************************************************/

// TestSaveThenLoadComponentRoundTrips writes a small map out and reads it back, checking that
// Nside, Ordering, CoordinateSystem and every pixel value survive the round trip.
func TestSaveThenLoadComponentRoundTrips(t *testing.T) {
	m, err := healpix.NewMap(4, healpix.NESTED)
	if err != nil {
		t.Fatalf("NewMap() returned unexpected error: %v", err)
	}

	for i := range m.Pixels() {
		m.Pixels()[i] = float64(i) * 1.5
	}

	m.SetCoordinateSystem(healpix.GALACTIC)

	path := filepath.Join(t.TempDir(), "roundtrip.fits")

	if err := SaveComponent(path, m, "TDOUBLE", "K_CMB"); err != nil {
		t.Fatalf("SaveComponent() returned unexpected error: %v", err)
	}

	loaded, err := LoadComponent(path, ColumnIntensity)
	if err != nil {
		t.Fatalf("LoadComponent() returned unexpected error: %v", err)
	}

	if loaded.Nside() != m.Nside() {
		t.Errorf("LoadComponent() Nside = %d; want %d", loaded.Nside(), m.Nside())
	}

	if loaded.Ordering() != m.Ordering() {
		t.Errorf("LoadComponent() Ordering = %v; want %v", loaded.Ordering(), m.Ordering())
	}

	if loaded.CoordinateSystem() != m.CoordinateSystem() {
		t.Errorf("LoadComponent() CoordinateSystem = %v; want %v", loaded.CoordinateSystem(), m.CoordinateSystem())
	}

	for i, want := range m.Pixels() {
		got := loaded.Pixels()[i]

		if diff := got - want; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("LoadComponent() pixel %d = %v; want %v (float32 round trip)", i, got, want)
		}
	}
}

/*****************************************************************************************************************/

// TestLoadPolarizationSlicesThreeColumns checks that LoadPolarization returns the I, Q, U
// components as the three consecutive Npix-sized column slices spec.md §6 describes, writing the
// three-column file directly (SaveComponent only ever writes a single intensity column).
func TestLoadPolarizationSlicesThreeColumns(t *testing.T) {
	n := 2

	npix := 12 * n * n

	fit := newFITSImage()

	fit.Data = make([]float32, 3*npix)

	for idx := 0; idx < npix; idx++ {
		fit.Data[idx] = float32(idx)                // I
		fit.Data[npix+idx] = float32(idx) + 100      // Q
		fit.Data[2*npix+idx] = float32(idx) + 200000 // U
	}

	fit.Header.Naxis1 = int32(3 * npix)
	fit.Header.Naxis2 = 1
	fit.Header.Set("NSIDE", float64(n), "HEALPix resolution parameter")
	fit.Header.Set("ORDERING", "RING", "HEALPix pixel ordering (RING or NESTED)")
	fit.Header.Set("COORDSYS", "C", "Coordinate system (E/G/C)")

	buf, err := fit.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() returned unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "polarization.fits")

	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() returned unexpected error: %v", err)
	}

	if _, err := buf.WriteTo(out); err != nil {
		t.Fatalf("WriteTo() returned unexpected error: %v", err)
	}

	out.Close()

	i, q, u, err := LoadPolarization(path)
	if err != nil {
		t.Fatalf("LoadPolarization() returned unexpected error: %v", err)
	}

	if i.Nside() != n || q.Nside() != n || u.Nside() != n {
		t.Fatalf("LoadPolarization() Nside mismatch: I=%d Q=%d U=%d; want %d", i.Nside(), q.Nside(), u.Nside(), n)
	}

	if i.Pixels()[0] != 0 {
		t.Errorf("LoadPolarization() I[0] = %v; want 0", i.Pixels()[0])
	}

	if q.Pixels()[0] != 100 {
		t.Errorf("LoadPolarization() Q[0] = %v; want 100", q.Pixels()[0])
	}

	if u.Pixels()[0] != 200000 {
		t.Errorf("LoadPolarization() U[0] = %v; want 200000", u.Pixels()[0])
	}
}

/*****************************************************************************************************************/
