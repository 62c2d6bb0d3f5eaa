package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/reverb3d/reverb/octree"
	"github.com/reverb3d/reverb/types"
	"github.com/reverb3d/reverb/wavefront"
)

// Build the spatial index for a mesh and export it as an obj wireframe for
// visual inspection.
func ExportOctree(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("no mesh file specified")
	}

	minCell := types.Vec3{1, 1, 1}
	if v := ctx.Float64("min-cell"); v > 0 {
		minCell = types.Vec3{v, v, v}
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		meshFile := ctx.Args().Get(idx)

		f, err := os.Open(meshFile)
		if err != nil {
			return err
		}
		msh, err := wavefront.ImportMesh(f)
		f.Close()
		if err != nil {
			return err
		}

		oct, err := octree.Build(msh, minCell)
		if err != nil {
			return err
		}

		outFile := strings.Replace(meshFile, ".obj", "_octree.obj", 1)
		out, err := os.Create(outFile)
		if err != nil {
			return err
		}
		err = wavefront.ExportOctree(out, oct)
		out.Close()
		if err != nil {
			return err
		}
		logger.Noticef("wrote octree wireframe to %q", outFile)
	}
	return nil
}
