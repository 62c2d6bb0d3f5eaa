package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/reverb3d/reverb/medium"
	"github.com/reverb3d/reverb/types"
	"github.com/reverb3d/reverb/wavefront"
)

// Decompose a mesh into acoustic partitions and write them out as an obj
// wireframe next to the input file.
func Decompose(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("no mesh file specified")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		meshFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(meshFile, ".obj") {
			return fmt.Errorf("unsupported file %s; expected a .obj mesh", meshFile)
		}

		if err := decomposeFile(ctx, meshFile); err != nil {
			return err
		}
	}
	return nil
}

func decomposeFile(ctx *cli.Context, meshFile string) error {
	f, err := os.Open(meshFile)
	if err != nil {
		return err
	}
	defer f.Close()

	msh, err := wavefront.ImportMesh(f)
	if err != nil {
		return err
	}
	logger.Noticef("parsed %q: %d vertices, %d faces", meshFile, msh.VertexCount(), msh.FaceCount())

	var (
		def        *medium.Medium
		grid       = types.Vec3{1, 1, 1}
		soundSpeed float64
	)
	if defFile := ctx.String("def"); defFile != "" {
		def, grid, soundSpeed, err = loadMediumDef(defFile)
		if err != nil {
			return err
		}
	}

	med := medium.New()
	if err = med.BuildFromMesh(def, msh, grid); err != nil {
		return err
	}
	if soundSpeed > 0 {
		for i := range med.Partitions {
			med.Partitions[i].SoundSpeed = soundSpeed
		}
	}

	if ctx.Bool("check") && !med.CheckIntegrity() {
		return fmt.Errorf("integrity check failed for %s", meshFile)
	}

	outFile := ctx.String("out")
	if outFile == "" {
		outFile = strings.Replace(meshFile, ".obj", "_partitions.obj", 1)
	}
	out, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer out.Close()
	if err = wavefront.ExportMedium(out, med); err != nil {
		return err
	}
	logger.Noticef("wrote %d partitions to %q", len(med.Partitions), outFile)

	printPartitions(med)
	return nil
}

func printPartitions(med *medium.Medium) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Min", "Max", "Speed", "Adjacent"})
	for i := range med.Partitions {
		p := &med.Partitions[i]
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%g, %g, %g", p.Box.Min[0], p.Box.Min[1], p.Box.Min[2]),
			fmt.Sprintf("%g, %g, %g", p.Box.Max[0], p.Box.Max[1], p.Box.Max[2]),
			fmt.Sprintf("%g", p.SoundSpeed),
			strings.Trim(strings.Join(strings.Fields(fmt.Sprint(p.Adjacent)), ", "), "[]"),
		})
	}
	table.Render()
}
