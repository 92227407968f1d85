package renderer

import (
	"fmt"

	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

const (
	// Rod radius relative to the unit cylinder template.
	ROD_RADIUS_SCALE float32 = 0.02
	// Alpha of rods, both initially and after every live update.
	ROD_ALPHA float32 = 0.6
)

var (
	baseVertices = []math.Vec4{
		{X: 0.25, Y: -0.26, Z: -0.25, W: 1}, {X: 0.25, Y: -0.26, Z: 0.25, W: 1},
		{X: -0.25, Y: -0.26, Z: 0.25, W: 1}, {X: -0.25, Y: -0.26, Z: -0.25, W: 1},
		{X: 0.25, Y: 0, Z: -0.25, W: 1}, {X: 0.25, Y: 0, Z: 0.25, W: 1},
		{X: -0.25, Y: 0, Z: 0.25, W: 1}, {X: -0.25, Y: 0, Z: -0.25, W: 1},
	}
	baseElements = []uint16{
		0, 1, 2,
		4, 7, 5,
		0, 4, 1,
		1, 5, 2,
		2, 6, 3,
		4, 0, 3,
		3, 0, 2,
		5, 6, 2,
		7, 6, 5,
		6, 7, 3,
		7, 4, 3,
		4, 5, 1,
	}
)

// BaseGeometry returns the slab the rods stand on, opaque black with flat normals.
func BaseGeometry() metadata.Geometry {
	g := metadata.Geometry{
		Positions: append([]math.Vec4(nil), baseVertices...),
		Elements:  append([]uint16(nil), baseElements...),
	}
	g.FillColour(metadata.ColourBlack)
	g.ComputeFaceNormals()
	return g
}

// GenBase builds the base slab mesh. It has no mailbox.
func GenBase() *Mesh {
	return NewMesh("base", BaseGeometry(), nil, 1.0)
}

/**
 * @brief Shapes a rod from a unit cylinder template. The template's radial
 * axes are scaled by ROD_RADIUS_SCALE and offset to (position.X, position.Y)
 * on the floor plane, its Y axis is scaled by position.Z (the height). Rods
 * start red at ROD_ALPHA.
 */
func RodGeometry(template *metadata.Geometry, position math.Vec3) metadata.Geometry {
	g := template.Clone()
	for i, v := range g.Positions {
		g.Positions[i] = math.Vec4{
			X: v.X*ROD_RADIUS_SCALE + position.X,
			Y: v.Y * position.Z,
			Z: v.Z*ROD_RADIUS_SCALE + position.Y,
			W: v.W,
		}
	}
	g.FillColour(metadata.ColourRed.WithAlpha(ROD_ALPHA))
	return g
}

// NewRod builds emitter id's rod, fed by mailbox.
func NewRod(id int, template *metadata.Geometry, position math.Vec3, mailbox *ColourMailbox) *Mesh {
	return NewMesh(fmt.Sprintf("rod-%d", id), RodGeometry(template, position), mailbox, ROD_ALPHA)
}
