package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles Target at Distance. Yaw and Pitch are in radians, Y is up.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32
	FovY     float32 // Degrees
	Near     float32
	Far      float32
}

func NewOrbitCamera() OrbitCamera {
	return OrbitCamera{
		Yaw:      mgl32.DegToRad(30),
		Pitch:    mgl32.DegToRad(20),
		Distance: 5,
		FovY:     60,
		Near:     0.1,
		Far:      1000,
	}
}

func (c OrbitCamera) Position() mgl32.Vec3 {
	pitch := mgl32.Clamp(c.Pitch, -math.Pi/2+0.01, math.Pi/2-0.01)
	offset := mgl32.Vec3{
		float32(math.Cos(float64(pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(pitch))),
		float32(math.Cos(float64(pitch)) * math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

func (c OrbitCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c OrbitCamera) Projection(viewport Rect) mgl32.Mat4 {
	aspect := float32(1)
	if viewport.Height() > 0 {
		aspect = viewport.Width() / viewport.Height()
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Apply writes the camera matrices and viewport into cfg.
func (c OrbitCamera) Apply(cfg *Config, viewport Rect) {
	cfg.Viewport = viewport
	cfg.View = c.View()
	cfg.Projection = c.Projection(viewport)
}
