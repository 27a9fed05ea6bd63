package subgizmo

import (
	"testing"

	"github.com/gekko3d/gizmo/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perspectiveConfig() *core.PreparedConfig {
	cfg := core.DefaultConfig()
	core.NewOrbitCamera().Apply(&cfg, core.NewRect(0, 0, 800, 600))
	p := core.Prepare(cfg, core.NewTransform())
	return &p
}

// lookDownZ looks at the origin from +Z, so the Z axis points at the camera.
func lookDownZ() *core.PreparedConfig {
	cfg := core.DefaultConfig()
	cfg.Viewport = core.NewRect(0, 0, 800, 600)
	cfg.View = mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	cfg.Projection = mgl32.Perspective(mgl32.DegToRad(60), 800.0/600.0, 0.1, 100)
	p := core.Prepare(cfg, core.NewTransform())
	return &p
}

func screenOf(t *testing.T, cfg *core.PreparedConfig, world mgl32.Vec3) mgl32.Vec2 {
	t.Helper()
	s, ok := core.WorldToScreen(cfg.Viewport, cfg.ViewProjection, world)
	require.True(t, ok)
	return s
}

func ringScreenPoint(t *testing.T, cfg *core.PreparedConfig) mgl32.Vec2 {
	return screenOf(t, cfg, cfg.Origin().Add(cfg.ViewRight.Mul(outerCircleRadius(cfg))))
}

func TestPickArrow(t *testing.T) {
	cfg := perspectiveConfig()
	start, end := arrowEnds(cfg, core.DirectionX, core.ModeScale)
	mid := screenOf(t, cfg, start.Add(end).Mul(0.5))

	ray := rayAt(t, cfg, mid.X(), mid.Y())
	res := pickArrow(cfg, ray, core.DirectionX, core.ModeScale)
	assert.True(t, res.picked)
	assert.Equal(t, float32(1), res.visibility)
	assert.InDelta(t, ray.Origin.Sub(start.Add(end).Mul(0.5)).Len(), res.t, 0.01)

	far := mid.Add(mgl32.Vec2{0, 40})
	res = pickArrow(cfg, rayAt(t, cfg, far.X(), far.Y()), core.DirectionX, core.ModeScale)
	assert.False(t, res.picked)
}

func TestPickArrow_FadesWhenAxisFacesCamera(t *testing.T) {
	cfg := lookDownZ()
	center := cfg.Viewport.Center()

	res := pickArrow(cfg, rayAt(t, cfg, center.X(), center.Y()), core.DirectionZ, core.ModeScale)
	assert.False(t, res.picked)
	assert.Zero(t, res.visibility)

	h := NewScale(cfg, ScaleParams{Mode: core.ModeScale, Direction: core.DirectionZ, Kind: KindAxis})
	_, ok := h.Pick(rayAt(t, cfg, center.X()+3, center.Y()))
	assert.False(t, ok)
	assert.Zero(t, h.Opacity())
	assert.Zero(t, h.Draw().Len())
}

func TestPickPlane(t *testing.T) {
	cfg := lookDownZ()
	center := screenOf(t, cfg, planeCenter(cfg, core.DirectionZ))

	ray := rayAt(t, cfg, center.X(), center.Y())
	res := pickPlane(cfg, ray, core.DirectionZ)
	assert.True(t, res.picked)
	assert.Equal(t, float32(1), res.visibility)
	assert.InDelta(t, ray.Origin.Sub(planeCenter(cfg, core.DirectionZ)).Len(), res.t, 0.01)

	// Edge-on planes are invisible and cannot be picked.
	x := screenOf(t, cfg, planeCenter(cfg, core.DirectionX))
	res = pickPlane(cfg, rayAt(t, cfg, x.X(), x.Y()), core.DirectionX)
	assert.False(t, res.picked)
	assert.Zero(t, res.visibility)

	outside := center.Add(mgl32.Vec2{200, 0})
	res = pickPlane(cfg, rayAt(t, cfg, outside.X(), outside.Y()), core.DirectionZ)
	assert.False(t, res.picked)
}

func TestPickCircle(t *testing.T) {
	cfg := perspectiveConfig()
	radius := outerCircleRadius(cfg)
	on := ringScreenPoint(t, cfg)

	res := pickCircle(cfg, rayAt(t, cfg, on.X(), on.Y()), radius, false)
	assert.True(t, res.picked)
	assert.Equal(t, float32(1), res.visibility)

	center := screenOf(t, cfg, cfg.Origin())
	res = pickCircle(cfg, rayAt(t, cfg, center.X(), center.Y()), radius, false)
	assert.False(t, res.picked, "ring center is not part of the ring")
	assert.Equal(t, float32(1), res.visibility)

	res = pickCircle(cfg, rayAt(t, cfg, center.X(), center.Y()), radius, true)
	assert.True(t, res.picked, "filled circle")
}

func TestGizmoColor(t *testing.T) {
	cfg := identityConfig(false)
	v := cfg.Visuals

	c := gizmoColor(cfg, false, core.DirectionZ)
	assert.Equal(t, v.ZColor[2], c[2])
	assert.InDelta(t, v.ZColor[3]*v.InactiveAlpha, c[3], 1e-6)

	c = gizmoColor(cfg, false, core.DirectionView)
	assert.Equal(t, v.SColor[0], c[0])

	highlight := [4]float32{1, 1, 0, 1}
	cfg.Visuals.HighlightColor = &highlight
	c = gizmoColor(cfg, true, core.DirectionX)
	assert.Equal(t, [4]float32{1, 1, 0, v.HighlightAlpha}, c)
}

func TestDrawArrow_TranslateStyle(t *testing.T) {
	cfg := identityConfig(false)
	data := drawArrow(cfg, 1, false, core.DirectionY, core.ModeTranslate)
	require.Equal(t, 2, data.Len())
	assert.Equal(t, core.ShapeLine, data.Primitives[0].Type)
	assert.Equal(t, core.ShapeCone, data.Primitives[1].Type)

	// Translate arrows start closer to the origin than scale arrows.
	scale := drawArrow(cfg, 1, false, core.DirectionY, core.ModeScale)
	assert.Less(t, data.Primitives[0].P1.Len(), scale.Primitives[0].P1.Len())

	other := drawArrow(cfg, 1, false, core.DirectionY, core.ModeRotate)
	require.Equal(t, 1, other.Len())
}

func TestDrawPlane(t *testing.T) {
	cfg := identityConfig(false)
	data := drawPlane(cfg, 0.5, true, core.DirectionZ)
	require.Equal(t, 1, data.Len())
	p := data.Primitives[0]
	assert.True(t, p.Filled)
	assert.Equal(t, float32(0.5), p.Opacity)

	// The unit quad maps to the plane patch in the XY plane.
	center := p.ModelMatrix.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.Equal(t, planeCenter(cfg, core.DirectionZ), center)
	assert.Zero(t, center.Z())

	assert.Zero(t, drawPlane(cfg, 0, false, core.DirectionZ).Len())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "armed", PhaseArmed.String())
	assert.Equal(t, "plane", KindPlane.String())
}
