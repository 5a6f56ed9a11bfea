package components

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/gondola/engine/math"
)

/**
 * @brief An orbiting camera described in spherical coordinates around a
 * fixed target. Ideally, these are created and managed by the camera
 * system. The position follows from radius, theta and phi; the view
 * matrix is rebuilt lazily whenever one of them changes.
 */
type Camera struct {
	/** @brief Distance from the Target. */
	Radius float32
	/** @brief Azimuthal angle around the y axis, in radians. */
	Theta float32
	/** @brief Polar angle measured from the y axis, in radians. */
	Phi float32
	/** @brief The point the camera looks at. Does not change while orbiting. */
	Target mgl32.Vec3
	/** @brief The world up direction. */
	Up mgl32.Vec3
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix mgl32.Mat4
}

type CameraLookup struct {
	ID             uint16
	ReferenceCount uint16
	Camera         *Camera
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

// Clamping phi away from the poles keeps the view direction from ever
// becoming parallel to the up vector.
const phiEpsilon float32 = 0.001

// The radius never reaches zero so the camera cannot collapse onto its
// target.
const minRadius float32 = 0.0001

// NewCamera builds an orbit camera from a cartesian starting position,
// a look target and an up direction. The position is converted to
// spherical coordinates around the target.
func NewCamera(position, target, up mgl32.Vec3) *Camera {
	radius := float32(gomath.Sqrt(float64(
		position.X()*position.X() + position.Y()*position.Y() + position.Z()*position.Z())))
	camera := &Camera{
		Radius:  radius,
		Theta:   float32(gomath.Atan(float64(position.Z() / position.X()))),
		Phi:     float32(gomath.Acos(float64(position.Y() / radius))),
		Target:  target,
		Up:      up,
		IsDirty: true,
	}
	return camera
}

func (c *Camera) Reset() {
	c.Radius = minRadius
	c.Theta = 0
	c.Phi = gomath.Pi / 2
	c.Target = mgl32.Vec3{0, 0, 0}
	c.Up = mgl32.Vec3{0, 1, 0}
	c.IsDirty = true
}

// GetPosition computes the camera's position in cartesian coordinates
// from its spherical coordinates.
func (c *Camera) GetPosition() mgl32.Vec3 {
	sinPhi, cosPhi := gomath.Sincos(float64(c.Phi))
	sinTheta, cosTheta := gomath.Sincos(float64(c.Theta))
	return mgl32.Vec3{
		c.Radius * float32(cosTheta*sinPhi),
		c.Radius * float32(cosPhi),
		c.Radius * float32(sinTheta*sinPhi),
	}
}

func (c *Camera) GetView() mgl32.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = mgl32.LookAtV(c.GetPosition(), c.Target, c.Up)
		c.IsDirty = false
	}
	return c.ViewMatrix
}

// RotateTheta spins the camera around the target at a fixed elevation
// by incrementing the azimuthal angle, in radians.
func (c *Camera) RotateTheta(amount float32) {
	c.Theta += amount
	c.IsDirty = true
}

// RotatePhi tilts the camera up or down by incrementing the polar
// angle, in radians. The angle is clamped just short of the poles.
func (c *Camera) RotatePhi(amount float32) {
	c.Phi += amount
	c.Phi = math.Clamp(c.Phi, phiEpsilon, gomath.Pi-phiEpsilon)
	c.IsDirty = true
}

// Zoom moves the camera along its radius. Negative amounts move inward,
// positive outward. The radius never drops below a small floor.
func (c *Camera) Zoom(amount float32) {
	c.Radius += amount
	if c.Radius <= minRadius {
		c.Radius = minRadius
	}
	c.IsDirty = true
}
