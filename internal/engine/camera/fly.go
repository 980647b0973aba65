package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/penumbra/pkg/math"
)

// Movement is the set of movement keys held during a frame.
type Movement struct {
	Forward, Back, Left, Right, Up, Down bool
	// Fast multiplies the speed by FastMultiplier.
	Fast bool
}

// FastMultiplier scales movement speed while Movement.Fast is held.
const FastMultiplier = 8

// FlyCamera is a free-look camera moved on the horizontal plane with
// WASD and vertically with dedicated up/down keys.
type FlyCamera struct {
	Pos   math.Vec3
	Front math.Vec3
	Up    math.Vec3

	// Yaw and Pitch are in degrees.
	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
}

// NewFlyCamera creates a camera at (0, 0, 3) looking down -Z.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Pos:         math.Vec3{Z: 3},
		Front:       math.Vec3{Z: -1},
		Up:          math.Vec3{Y: 1},
		Yaw:         -90,
		Speed:       2,
		Sensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() math.Vec3 {
	return c.Pos
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Pos, c.Pos.Add(c.Front), c.Up)
}

// Move applies one frame of keyboard movement. dt is in seconds.
func (c *FlyCamera) Move(m Movement, dt float32) {
	speed := c.Speed * dt
	if m.Fast {
		speed *= FastMultiplier
	}

	// Horizontal movement ignores pitch
	forward := math.Vec3{X: c.Front.X, Z: c.Front.Z}.Normalize()
	right := forward.Cross(c.Up).Normalize()

	if m.Forward {
		c.Pos = c.Pos.Add(forward.Scale(speed))
	}
	if m.Back {
		c.Pos = c.Pos.Sub(forward.Scale(speed))
	}
	if m.Left {
		c.Pos = c.Pos.Sub(right.Scale(speed))
	}
	if m.Right {
		c.Pos = c.Pos.Add(right.Scale(speed))
	}
	if m.Up {
		c.Pos.Y += speed
	}
	if m.Down {
		c.Pos.Y -= speed
	}
}

// Look turns the camera by a mouse delta in pixels. Positive dy looks up.
// Pitch is clamped to ±89 degrees.
func (c *FlyCamera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = math32.Max(-89, math32.Min(89, c.Pitch))
	c.updateFront()
}

// LookAt points the camera at target and updates yaw and pitch to match.
func (c *FlyCamera) LookAt(target math.Vec3) {
	dir := target.Sub(c.Pos)
	if dir.Length() == 0 {
		return
	}
	dir = dir.Normalize()
	c.Pitch = math32.Max(-89, math32.Min(89, math32.Asin(dir.Y)*180/math32.Pi))
	c.Yaw = math32.Atan2(dir.Z, dir.X) * 180 / math32.Pi
	c.updateFront()
}

func (c *FlyCamera) updateFront() {
	sinYaw, cosYaw := math32.Sincos(math.Radians(c.Yaw))
	sinPitch, cosPitch := math32.Sincos(math.Radians(c.Pitch))
	c.Front = math.Vec3{
		X: cosYaw * cosPitch,
		Y: sinPitch,
		Z: sinYaw * cosPitch,
	}.Normalize()
}
