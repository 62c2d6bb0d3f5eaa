package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/reverb3d/reverb/medium"
	"github.com/reverb3d/reverb/types"
)

// A medium definition file describes the simulation volume independently of
// the mesh: the boundary box, the decomposition grid and default material
// parameters. Without one, the decomposer falls back to the mesh bounding
// box.
type mediumDef struct {
	Boundary struct {
		Min [3]float64 `toml:"min"`
		Max [3]float64 `toml:"max"`
	} `toml:"boundary"`
	GridSize   [3]float64 `toml:"grid-size"`
	SoundSpeed float64    `toml:"sound-speed"`
}

func loadMediumDef(path string) (*medium.Medium, types.Vec3, float64, error) {
	var def mediumDef
	if _, err := toml.DecodeFile(path, &def); err != nil {
		return nil, types.Vec3{}, 0, fmt.Errorf("could not parse medium definition: %w", err)
	}

	for i := 0; i != 3; i++ {
		if def.Boundary.Max[i] <= def.Boundary.Min[i] {
			return nil, types.Vec3{}, 0, fmt.Errorf("medium definition: boundary is empty along axis %d", i)
		}
		if def.GridSize[i] <= 0 {
			return nil, types.Vec3{}, 0, fmt.Errorf("medium definition: grid-size must be positive along axis %d", i)
		}
	}
	if def.SoundSpeed < 0 {
		return nil, types.Vec3{}, 0, fmt.Errorf("medium definition: sound-speed must not be negative")
	}

	m := medium.New()
	m.Boundary = types.AABB{
		Min: types.Vec3(def.Boundary.Min),
		Max: types.Vec3(def.Boundary.Max),
	}
	return m, types.Vec3(def.GridSize), def.SoundSpeed, nil
}
