package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perspectiveConfig() PreparedConfig {
	cfg := DefaultConfig()
	cam := NewOrbitCamera()
	cam.Apply(&cfg, NewRect(0, 0, 800, 600))
	return Prepare(cfg, NewTransform())
}

func TestWorldToScreen_Identity(t *testing.T) {
	vp := NewRect(0, 0, 800, 600)

	p, ok := WorldToScreen(vp, mgl32.Ident4(), mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 400, p.X(), 1e-4)
	assert.InDelta(t, 300, p.Y(), 1e-4)

	// Screen Y grows downwards.
	p, ok = WorldToScreen(vp, mgl32.Ident4(), mgl32.Vec3{0.5, 0.5, 0})
	require.True(t, ok)
	assert.InDelta(t, 600, p.X(), 1e-4)
	assert.InDelta(t, 150, p.Y(), 1e-4)
}

func TestWorldToScreen_ViewportOffset(t *testing.T) {
	vp := NewRect(100, 50, 200, 100)
	p, ok := WorldToScreen(vp, mgl32.Ident4(), mgl32.Vec3{-1, 1, 0})
	require.True(t, ok)
	assert.InDelta(t, 100, p.X(), 1e-4)
	assert.InDelta(t, 50, p.Y(), 1e-4)
}

func TestWorldToScreen_Unprojectable(t *testing.T) {
	vp := NewRect(0, 0, 800, 600)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 800.0/600.0, 0.1, 100)
	vpm := proj.Mul4(view)

	_, ok := WorldToScreen(vp, vpm, mgl32.Vec3{0, 0, 10})
	assert.False(t, ok, "point behind the camera")

	_, ok = WorldToScreen(vp, vpm, mgl32.Vec3{0, 0, 5})
	assert.False(t, ok, "point at the camera")

	_, ok = WorldToScreen(vp, mgl32.Mat4{}, mgl32.Vec3{1, 2, 3})
	assert.False(t, ok, "zero matrix")

	nan := float32(math.NaN())
	_, ok = WorldToScreen(vp, mgl32.Mat4{15: nan}, mgl32.Vec3{})
	assert.False(t, ok, "NaN W")

	_, ok = WorldToScreen(vp, vpm, mgl32.Vec3{0, 0, 0})
	assert.True(t, ok)
}

func TestPickRay_RoundTrip(t *testing.T) {
	cfg := perspectiveConfig()
	world := mgl32.Vec3{0.3, -0.2, 0.4}

	screen, ok := WorldToScreen(cfg.Viewport, cfg.ViewProjection, world)
	require.True(t, ok)

	ray, ok := cfg.PickRay(screen)
	require.True(t, ok)
	assert.Equal(t, screen, ray.ScreenPos)
	assert.InDelta(t, 1, ray.Direction.Len(), 1e-5)

	// The world point lies on the ray.
	along := world.Sub(ray.Origin).Dot(ray.Direction)
	closest := ray.Origin.Add(ray.Direction.Mul(along))
	assert.InDelta(t, 0, closest.Sub(world).Len(), 2e-3)
	assert.Greater(t, along, float32(0))
}

func TestPickRay_Singular(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Viewport = NewRect(0, 0, 800, 600)
	cfg.Projection = mgl32.Mat4{}
	p := Prepare(cfg, NewTransform())

	_, ok := p.PickRay(mgl32.Vec2{10, 10})
	assert.False(t, ok)
}

func TestRoundToInterval(t *testing.T) {
	assert.InDelta(t, 1.5, RoundToInterval(1.618, 0.25), 1e-6)
	assert.InDelta(t, 0.5, RoundToInterval(0.618, 0.25), 1e-6)
	assert.InDelta(t, 2.0, RoundToInterval(1.9, 0.5), 1e-6)

	// Ties round away from zero.
	assert.InDelta(t, 0.25, RoundToInterval(0.125, 0.25), 1e-6)
	assert.InDelta(t, -0.25, RoundToInterval(-0.125, 0.25), 1e-6)

	// Non-positive intervals disable snapping.
	assert.Equal(t, float32(1.618), RoundToInterval(1.618, 0))
	assert.Equal(t, float32(1.618), RoundToInterval(1.618, -1))
}

func TestRoundToInterval_Idempotent(t *testing.T) {
	for _, interval := range []float32{0.1, 0.25, 0.5, 1, 3} {
		for v := float32(-10); v <= 10; v += 0.37 {
			once := RoundToInterval(v, interval)
			twice := RoundToInterval(once, interval)
			if once != twice {
				t.Errorf("RoundToInterval(%v, %v): once %v, twice %v", v, interval, once, twice)
			}
		}
	}
}

func TestSegmentDistance(t *testing.T) {
	a, b := mgl32.Vec2{0, 0}, mgl32.Vec2{10, 0}
	assert.InDelta(t, 3, SegmentDistance(mgl32.Vec2{5, 3}, a, b), 1e-6)
	assert.InDelta(t, 5, SegmentDistance(mgl32.Vec2{-3, 4}, a, b), 1e-6)
	assert.InDelta(t, 2, SegmentDistance(mgl32.Vec2{12, 0}, a, b), 1e-6)
	assert.InDelta(t, 5, SegmentDistance(mgl32.Vec2{3, 4}, a, a), 1e-6)
}

func TestClosestPoints(t *testing.T) {
	// Ray along -Z at x=1 against the X axis.
	tRay, s, d := ClosestPoints(mgl32.Vec3{1, 0, 5}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 5, tRay, 1e-5)
	assert.InDelta(t, 1, s, 1e-5)
	assert.InDelta(t, 0, d, 1e-5)

	// Parallel lines fall back to the start distance.
	_, _, d = ClosestPoints(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 1, d, 1e-5)
}

func TestIntersectPlane(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}

	d, ok := IntersectPlane(ray, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})
	require.True(t, ok)
	assert.InDelta(t, 5, d, 1e-6)

	_, ok = IntersectPlane(ray, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.False(t, ok, "parallel plane")

	_, ok = IntersectPlane(ray, mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1})
	assert.False(t, ok, "plane behind the ray")
}
