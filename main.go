package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/reverb3d/reverb/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "reverb"
	app.Usage = "preprocess meshes for acoustic wave simulation"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Before = cmd.SetupLogging
	app.Commands = []cli.Command{
		{
			Name:  "decompose",
			Usage: "decompose a mesh into homogeneous acoustic partitions",
			Description: `
Parse a triangulated mesh from a wavefront obj file, build an octree over its
faces and decompose the enclosed volume into axis-aligned partitions of
homogeneous material, linked into an adjacency graph.

The partitions are written as an obj wireframe and summarized on stdout.`,
			ArgsUsage: "mesh_file1.obj mesh_file2.obj ...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "def, d",
					Usage: "medium definition file (toml) with boundary and grid size",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output wireframe filename (default: <mesh>_partitions.obj)",
				},
				cli.BoolFlag{
					Name:  "check",
					Usage: "verify every grid cell is covered by exactly one partition",
				},
			},
			Action: cmd.Decompose,
		},
		{
			Name:      "octree",
			Usage:     "export a mesh's octree as an obj wireframe",
			ArgsUsage: "mesh_file1.obj mesh_file2.obj ...",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "min-cell",
					Value: 1.0,
					Usage: "smallest octree subdivision size",
				},
			},
			Action: cmd.ExportOctree,
		},
	}

	app.Run(os.Args)
}
