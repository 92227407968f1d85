package components

import (
	"github.com/spaghettifunk/lumina/engine/math"
)

/**
 * @brief The scene camera. Keyboard input moves the whole scene through
 * Transform (additive deltas, applied per poll) while the look-at frame
 * and the perspective frustum stay fixed.
 */
type Camera struct {
	/** @brief Accumulated translation and rotation, turned into the model matrix each frame. */
	Transform math.Transform

	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3

	/** @brief Vertical field of view in radians. */
	Fovy   float32
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera(width, height uint32) *Camera {
	camera := &Camera{}
	camera.Reset()
	camera.SetViewport(width, height)
	return camera
}

// Reset clears the accumulated movement.
func (c *Camera) Reset() {
	c.Transform = math.NewTransform()
}

func (c *Camera) LookAt(eye, center, up math.Vec3) {
	c.Eye = eye
	c.Center = center
	c.Up = up
}

func (c *Camera) Perspective(fovy, near, far float32) {
	c.Fovy = fovy
	c.Near = near
	c.Far = far
}

// SetViewport updates the aspect ratio. A zero height (minimized window) is ignored.
func (c *Camera) SetViewport(width, height uint32) {
	if height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) Translate(delta math.Vec3) {
	c.Transform.Translate(delta)
}

func (c *Camera) Rotate(x, y, z float32) {
	c.Transform.Rotate(x, math.AxisX)
	c.Transform.Rotate(y, math.AxisY)
	c.Transform.Rotate(z, math.AxisZ)
}

func (c *Camera) Model() math.Mat4 {
	return c.Transform.Model()
}

// View requires Eye != Center.
func (c *Camera) View() math.Mat4 {
	return math.NewMat4LookAt(c.Eye, c.Center, c.Up)
}

func (c *Camera) Projection() math.Mat4 {
	return math.NewMat4Perspective(c.Fovy, c.Aspect, c.Near, c.Far)
}
