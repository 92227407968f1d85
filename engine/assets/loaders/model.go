package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, name string) (*metadata.Resource, error) {
	g, err := LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     name,
		FullPath: path,
		Type:     metadata.ResourceTypeMesh,
		DataSize: uint64(g.VertexCount()*(16+12+16) + g.IndexCount()*2),
		Data:     g,
	}, nil
}

func (ml *ModelLoader) Unload(*metadata.Resource) error {
	return nil
}

// LoadOBJ reads a Wavefront OBJ file. See ParseOBJ.
func LoadOBJ(path string) (*metadata.Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()
	g, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

/**
 * @brief Parses the subset of OBJ the simulator uses: "v x y z" positions and
 * "f a b c" triangles with 1-based indices ("a/t/n" forms use only the vertex
 * index). Every other line is ignored. Normals are flat face normals and every
 * vertex starts opaque black.
 */
func ParseOBJ(r io.Reader) (*metadata.Geometry, error) {
	g := &metadata.Geometry{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", core.ErrInvalidMesh, lineNo)
			}
			var xyz [3]float32
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", core.ErrInvalidMesh, lineNo, err)
				}
				xyz[i] = float32(f)
			}
			g.Positions = append(g.Positions, math.NewVec4(xyz[0], xyz[1], xyz[2], 1))
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: only triangles are supported", core.ErrInvalidMesh, lineNo)
			}
			for _, field := range fields[1:] {
				idx, _, _ := strings.Cut(field, "/")
				n, err := strconv.ParseUint(idx, 10, 16)
				if err != nil || n == 0 {
					return nil, fmt.Errorf("%w: line %d: bad face index %q", core.ErrInvalidMesh, lineNo, field)
				}
				g.Elements = append(g.Elements, uint16(n-1))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mesh: %w", err)
	}

	g.FillColour(metadata.ColourBlack)
	g.Normals = make([]math.Vec3, len(g.Positions))
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.ComputeFaceNormals()
	core.LogDebug("mesh: %d vertices, %d elements", g.VertexCount(), g.IndexCount())
	return g, nil
}
