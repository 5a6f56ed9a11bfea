package components

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraSphericalConversion(t *testing.T) {
	camera := NewCamera(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	assert.InDelta(t, math.Sqrt(75), float64(camera.Radius), 1e-4)
	assert.InDelta(t, math.Pi/4, float64(camera.Theta), 1e-4)
	assert.InDelta(t, math.Acos(5/math.Sqrt(75)), float64(camera.Phi), 1e-4)
}

func TestGetPositionRoundTripsStartingPosition(t *testing.T) {
	start := mgl32.Vec3{5, 5, 5}
	camera := NewCamera(start, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	position := camera.GetPosition()
	assert.InDelta(t, float64(start.X()), float64(position.X()), 1e-3)
	assert.InDelta(t, float64(start.Y()), float64(position.Y()), 1e-3)
	assert.InDelta(t, float64(start.Z()), float64(position.Z()), 1e-3)
}

func TestRotatePhiClampsShortOfPoles(t *testing.T) {
	camera := NewCamera(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	camera.RotatePhi(100)
	assert.InDelta(t, math.Pi-0.001, float64(camera.Phi), 1e-6)

	camera.RotatePhi(-100)
	assert.InDelta(t, 0.001, float64(camera.Phi), 1e-6)

	// Small increments inside the range are not disturbed.
	camera.Phi = 1.0
	camera.RotatePhi(0.25)
	assert.InDelta(t, 1.25, float64(camera.Phi), 1e-6)
}

func TestRotateThetaIsUnclamped(t *testing.T) {
	camera := NewCamera(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	initial := camera.Theta

	camera.RotateTheta(4 * math.Pi)
	assert.InDelta(t, float64(initial)+4*math.Pi, float64(camera.Theta), 1e-4)

	camera.RotateTheta(-8 * math.Pi)
	assert.InDelta(t, float64(initial)-4*math.Pi, float64(camera.Theta), 1e-4)
}

func TestZoomNeverCollapsesOntoTarget(t *testing.T) {
	camera := NewCamera(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	camera.Zoom(-1000)
	assert.Equal(t, float32(0.0001), camera.Radius)

	camera.Zoom(0.5)
	assert.InDelta(t, 0.5001, float64(camera.Radius), 1e-6)
}

func TestGetViewRebuildsLazily(t *testing.T) {
	camera := NewCamera(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	expected := mgl32.LookAtV(camera.GetPosition(), camera.Target, camera.Up)
	assert.Equal(t, expected, camera.GetView())

	before := camera.GetView()
	camera.RotateTheta(0.5)
	after := camera.GetView()
	assert.NotEqual(t, before, after)
	assert.Equal(t, mgl32.LookAtV(camera.GetPosition(), camera.Target, camera.Up), after)
}
