package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reverb3d/reverb/mesh"
	"github.com/reverb3d/reverb/types"
)

// Parse a triangulated surface mesh from a wavefront obj stream. Only the
// geometry statements matter here: "v" entries and "f" entries with 3 or
// more vertex references (fan-triangulated). Texture/normal references and
// material statements are ignored; imported vertices carry the solid
// default attribute until a caller assigns something else.
func ImportMesh(r io.Reader) (*mesh.Mesh, error) {
	var vertexList []types.Vec3
	builder := mesh.NewBuilder()

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "v":
			v, err := parseVec3(tokens)
			if err != nil {
				return nil, emitError(lineNum, err)
			}
			vertexList = append(vertexList, v)
		case "f":
			corners, err := parseFace(tokens, vertexList)
			if err != nil {
				return nil, emitError(lineNum, err)
			}

			// Fan triangulation for faces with more than 3 vertices.
			for i := 2; i < len(corners); i++ {
				builder.AddFace(mesh.Face{
					{Position: corners[0], Attr: mesh.DefaultSolid()},
					{Position: corners[i-1], Attr: mesh.DefaultSolid()},
					{Position: corners[i], Attr: mesh.DefaultSolid()},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wavefront: %w", err)
	}

	return builder.Build()
}

// Parse a wireframe obj stream: the vertex positions in file order plus the
// edges ("f" entries with exactly 2 vertex references) as 0-based index
// pairs. This is the read side of the box exporter, used by debug tooling
// and round-trip tests.
func ReadWireframe(r io.Reader) ([]types.Vec3, [][2]int, error) {
	var vertexList []types.Vec3
	var edges [][2]int

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "v":
			v, err := parseVec3(tokens)
			if err != nil {
				return nil, nil, emitError(lineNum, err)
			}
			vertexList = append(vertexList, v)
		case "f":
			if len(tokens) != 3 {
				return nil, nil, emitError(lineNum,
					fmt.Errorf("expected 2 indices for a wireframe edge; got %d", len(tokens)-1))
			}
			var edge [2]int
			for i := 0; i != 2; i++ {
				idx, err := parseIndex(tokens[i+1], len(vertexList))
				if err != nil {
					return nil, nil, emitError(lineNum, err)
				}
				edge[i] = idx
			}
			edges = append(edges, edge)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("wavefront: %w", err)
	}

	return vertexList, edges, nil
}

func emitError(line int, err error) error {
	return fmt.Errorf("wavefront: [line %d] %w", line, err)
}

func parseVec3(tokens []string) (types.Vec3, error) {
	if len(tokens) < 4 {
		return types.Vec3{}, fmt.Errorf("expected 3 arguments for %q; got %d", tokens[0], len(tokens)-1)
	}

	var v types.Vec3
	for i := 0; i != 3; i++ {
		val, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("could not parse %q as a coordinate", tokens[i+1])
		}
		v[i] = val
	}
	return v, nil
}

func parseFace(tokens []string, vertexList []types.Vec3) ([]types.Vec3, error) {
	if len(tokens) < 4 {
		return nil, fmt.Errorf("expected at least 3 vertices for a face; got %d", len(tokens)-1)
	}

	corners := make([]types.Vec3, 0, len(tokens)-1)
	for _, token := range tokens[1:] {
		// Strip texture/normal references (v/vt/vn).
		vertexToken := strings.SplitN(token, "/", 2)[0]
		idx, err := parseIndex(vertexToken, len(vertexList))
		if err != nil {
			return nil, err
		}
		corners = append(corners, vertexList[idx])
	}
	return corners, nil
}

// Resolve an obj vertex reference to a 0-based index. Positive references
// are 1-based; negative ones count back from the most recently parsed
// vertex.
func parseIndex(token string, vertexCount int) (int, error) {
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("could not parse %q as a vertex index", token)
	}

	switch {
	case idx < 0:
		idx += vertexCount
	case idx > 0:
		idx--
	default:
		return 0, fmt.Errorf("vertex indices must not be 0")
	}

	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("vertex index %q out of range (%d vertices)", token, vertexCount)
	}
	return idx, nil
}
