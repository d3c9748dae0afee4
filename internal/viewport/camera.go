package viewport

import (
	"math"

	"softraster/internal/mathutil"
)

// maxPitch keeps the camera away from straight up and down, where yaw stops
// meaning anything.
const maxPitch = 89 * math.Pi / 180

// Camera is a world-space viewer. Yaw turns around the world Y axis, pitch
// tilts the view down for positive angles. At zero yaw and pitch the camera
// looks along world +Z.
type Camera struct {
	Position mathutil.Vec3
	Yaw      float64
	Pitch    float64
}

// NewCamera returns a camera at pos with the given angles in radians.
func NewCamera(pos mathutil.Vec3, yaw, pitch float64) *Camera {
	c := &Camera{Position: pos}
	c.SetAngles(yaw, pitch)
	return c
}

// SetAngles wraps yaw and clamps pitch.
func (c *Camera) SetAngles(yaw, pitch float64) {
	c.Yaw = mathutil.WrapAngle(yaw)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))
}

// Rotation maps camera axes to world axes.
func (c *Camera) Rotation() mathutil.Mat3 {
	yaw := mathutil.QuatAxisAngle(mathutil.Vec3{0, 1, 0}, c.Yaw)
	pitch := mathutil.QuatAxisAngle(mathutil.Vec3{1, 0, 0}, c.Pitch)
	return mathutil.QuatToMat3(yaw.Mul(pitch).Normalize())
}

// Forward is the world-space viewing direction.
func (c *Camera) Forward() mathutil.Vec3 {
	return c.Rotation().MulVec3(mathutil.Vec3{0, 0, 1})
}

// View returns the world-to-camera transform.
func (c *Camera) View() mathutil.Mat4 {
	return mathutil.FromMat3Translation(c.Rotation(), c.Position).RigidInverse()
}

// Orbit places the camera distance units from target, looking at it from
// the given angles.
func (c *Camera) Orbit(target mathutil.Vec3, distance, yaw, pitch float64) {
	c.SetAngles(yaw, pitch)
	c.Position = target.ScaleAdd(c.Forward(), -distance)
}

// Frame keeps the current angles and moves the camera back along its view
// direction until the sphere around the box [lo, hi] fits a perspective
// view with the given focal length and height/width ratio. It returns the
// distance from the box center.
func (c *Camera) Frame(lo, hi mathutil.Vec3, focalLength, heightOverWidth float64) float64 {
	center := lo.Lerp(hi, 0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius < 1e-3 {
		radius = 1e-3
	}

	// The narrower of the two screen axes limits the fit.
	f := focalLength * math.Max(1, heightOverWidth)
	if f <= 0 {
		f = 1
	}
	dist := radius * math.Sqrt(1+f*f)
	c.Orbit(center, dist, c.Yaw, c.Pitch)
	return dist
}
