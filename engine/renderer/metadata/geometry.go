package metadata

import (
	"fmt"

	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
)

/**
 * @brief Per-vertex arrays of a triangle mesh. Positions, Normals and Colours
 * always have the same length; Elements indexes into them three at a time.
 */
type Geometry struct {
	/** @brief Vertex positions, W = 1. */
	Positions []math.Vec4
	/** @brief One normal per vertex. */
	Normals []math.Vec3
	/** @brief One RGBA colour per vertex. */
	Colours []math.Vec4
	/** @brief Triangle list. */
	Elements []uint16
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

func (g *Geometry) IndexCount() int {
	return len(g.Elements)
}

// Validate checks that the arrays agree in length and every index is in range.
func (g *Geometry) Validate() error {
	n := len(g.Positions)
	if len(g.Normals) != n || len(g.Colours) != n {
		return fmt.Errorf("%w: %d positions, %d normals, %d colours", core.ErrInvalidMesh, n, len(g.Normals), len(g.Colours))
	}
	if len(g.Elements)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", core.ErrInvalidMesh, len(g.Elements))
	}
	for i, e := range g.Elements {
		if int(e) >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", core.ErrInvalidMesh, e, i, n)
		}
	}
	return nil
}

// Clone returns a deep copy so builders can reshape a shared template.
func (g *Geometry) Clone() Geometry {
	return Geometry{
		Positions: append([]math.Vec4(nil), g.Positions...),
		Normals:   append([]math.Vec3(nil), g.Normals...),
		Colours:   append([]math.Vec4(nil), g.Colours...),
		Elements:  append([]uint16(nil), g.Elements...),
	}
}

// FillColour sets every vertex to c.
func (g *Geometry) FillColour(c Colour) {
	v := c.Vec4()
	if len(g.Colours) != len(g.Positions) {
		g.Colours = make([]math.Vec4, len(g.Positions))
	}
	for i := range g.Colours {
		g.Colours[i] = v
	}
}

// ComputeFaceNormals replaces Normals with flat per-triangle normals.
func (g *Geometry) ComputeFaceNormals() {
	g.Normals = math.GenerateFaceNormals(g.Positions, g.Elements)
}
