/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"github.com/spf13/cobra"
)

/*****************************************************************************************************************/

// rootCommand is map2fig, spec.md §6's "collaborator, not part of the core": a thin CLI shelling
// out to pkg/fitsio, pkg/mollweide and pkg/render. Grounded on the teacher repository's
// rootCommand/AstrometryCommand split (cmd/root.go + internal/solver/solver.go), with the same
// single-top-level-command shape, generalised to this library's one command.
var rootCommand = &cobra.Command{
	Use:     "map2fig",
	Short:   "map2fig renders a HEALPix FITS map to a Mollweide-projection image.",
	Long:    "map2fig reads a HEALPix sky map from a FITS file and rasterizes it through the Mollweide projection into a PNG image, optionally annotated with a title and colour bar.",
	Version: version,
}

/*****************************************************************************************************************/

// version is reported by --version; gohealpix has no release process of its own yet, so this is
// a fixed development placeholder rather than a value threaded through from a build tag.
const version = "0.1.0-dev"

/*****************************************************************************************************************/

func init() {
	rootCommand.AddCommand(renderCommand)
}

/*****************************************************************************************************************/

// Execute runs the root command. Unlike the teacher's cmd.Execute (cmd/root.go), which panics
// on any error, Execute returns the error to main so it can set a non-zero process exit code:
// spec.md §6 explicitly requires map2fig to exit non-zero on any failure, which panicking (exit
// code 2, a Go runtime panic trace) does not satisfy.
func Execute() error {
	return rootCommand.Execute()
}

/*****************************************************************************************************************/
