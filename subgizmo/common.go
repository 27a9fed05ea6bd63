package subgizmo

import (
	"github.com/gekko3d/gizmo/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Handle geometry, as fractions of the gizmo size in world units.
const (
	arrowEnd            = 1.0
	scaleArrowStart     = 0.4
	translateArrowStart = 0.2
	scaleTipSize        = 0.12
	coneLength          = 0.22
	coneRadius          = 0.07
	planeOffset         = 0.5
	planeSize           = 0.15
)

// Visibility fades, over |dot(normal, view forward)|.
var (
	arrowFade = [2]float32{0.95, 0.99}
	planeFade = [2]float32{0.10, 0.25}
)

type pickResult struct {
	picked     bool
	t          float32
	visibility float32
}

func gizmoWidth(cfg *core.PreparedConfig) float32 {
	return cfg.ScaleFactor * cfg.Visuals.GizmoSize
}

// focusPixels is the screen-space pick tolerance.
func focusPixels(cfg *core.PreparedConfig) float32 {
	return cfg.Visuals.StrokeWidth/2 + 5
}

func outerCircleRadius(cfg *core.PreparedConfig) float32 {
	return cfg.ScaleFactor * (cfg.Visuals.GizmoSize + cfg.Visuals.StrokeWidth + 5)
}

func arrowStart(mode core.Mode) float32 {
	if mode == core.ModeTranslate {
		return translateArrowStart
	}
	return scaleArrowStart
}

func arrowVisibility(cfg *core.PreparedConfig, axis mgl32.Vec3) float32 {
	dot := abs32(axis.Dot(cfg.ViewForward))
	return mgl32.Clamp(1-(dot-arrowFade[0])/(arrowFade[1]-arrowFade[0]), 0, 1)
}

func planeVisibility(cfg *core.PreparedConfig, normal mgl32.Vec3) float32 {
	dot := abs32(normal.Dot(cfg.ViewForward))
	return mgl32.Clamp((dot-planeFade[0])/(planeFade[1]-planeFade[0]), 0, 1)
}

func arrowEnds(cfg *core.PreparedConfig, direction core.Direction, mode core.Mode) (mgl32.Vec3, mgl32.Vec3) {
	origin := cfg.Origin()
	axis := cfg.Axis(direction)
	width := gizmoWidth(cfg)
	return origin.Add(axis.Mul(width * arrowStart(mode))), origin.Add(axis.Mul(width * arrowEnd))
}

// planeAxes returns the tangent and bitangent spanning the plane with the given normal direction.
func planeAxes(cfg *core.PreparedConfig, direction core.Direction) (mgl32.Vec3, mgl32.Vec3) {
	switch direction {
	case core.DirectionX:
		return cfg.Axis(core.DirectionY), cfg.Axis(core.DirectionZ)
	case core.DirectionY:
		return cfg.Axis(core.DirectionZ), cfg.Axis(core.DirectionX)
	case core.DirectionZ:
		return cfg.Axis(core.DirectionX), cfg.Axis(core.DirectionY)
	}
	return cfg.ViewRight, cfg.ViewUp
}

func planeCenter(cfg *core.PreparedConfig, direction core.Direction) mgl32.Vec3 {
	tangent, bitangent := planeAxes(cfg, direction)
	return cfg.Origin().Add(tangent.Add(bitangent).Mul(gizmoWidth(cfg) * planeOffset))
}

func pickArrow(cfg *core.PreparedConfig, ray core.Ray, direction core.Direction, mode core.Mode) pickResult {
	start, end := arrowEnds(cfg, direction, mode)
	vis := arrowVisibility(cfg, cfg.Axis(direction))

	a, okA := core.WorldToScreen(cfg.Viewport, cfg.ViewProjection, start)
	b, okB := core.WorldToScreen(cfg.Viewport, cfg.ViewProjection, end)
	if !okA || !okB {
		return pickResult{visibility: vis}
	}

	dist := core.SegmentDistance(ray.ScreenPos, a, b)
	t, _, _ := core.ClosestPoints(ray.Origin, ray.Direction, start, end.Sub(start))
	return pickResult{
		picked:     vis > 0 && dist <= focusPixels(cfg),
		t:          t,
		visibility: vis,
	}
}

func pickPlane(cfg *core.PreparedConfig, ray core.Ray, direction core.Direction) pickResult {
	normal := cfg.Axis(direction)
	tangent, bitangent := planeAxes(cfg, direction)
	center := planeCenter(cfg, direction)
	vis := planeVisibility(cfg, normal)

	t, ok := core.IntersectPlane(ray, center, normal)
	if !ok {
		return pickResult{visibility: vis}
	}
	local := ray.Origin.Add(ray.Direction.Mul(t)).Sub(center)
	half := gizmoWidth(cfg) * planeSize / 2
	inside := abs32(local.Dot(tangent)) <= half && abs32(local.Dot(bitangent)) <= half
	return pickResult{
		picked:     vis > 0 && inside,
		t:          t,
		visibility: vis,
	}
}

func pickCircle(cfg *core.PreparedConfig, ray core.Ray, radius float32, filled bool) pickResult {
	origin := cfg.Origin()
	t, ok := core.IntersectPlane(ray, origin, cfg.Axis(core.DirectionView))
	if !ok {
		return pickResult{visibility: 1}
	}
	dist := ray.Origin.Add(ray.Direction.Mul(t)).Sub(origin).Len()

	var picked bool
	if filled {
		picked = dist <= radius+cfg.FocusDistance
	} else {
		picked = abs32(dist-radius) <= cfg.FocusDistance
	}
	return pickResult{picked: picked, t: t, visibility: 1}
}

func gizmoColor(cfg *core.PreparedConfig, focused bool, direction core.Direction) [4]float32 {
	v := cfg.Visuals
	var color [4]float32
	switch direction {
	case core.DirectionX:
		color = v.XColor
	case core.DirectionY:
		color = v.YColor
	case core.DirectionZ:
		color = v.ZColor
	default:
		color = v.SColor
	}

	alpha := v.InactiveAlpha
	if focused {
		alpha = v.HighlightAlpha
		if v.HighlightColor != nil {
			color = *v.HighlightColor
		}
	}
	color[3] *= alpha
	return color
}

func drawArrow(cfg *core.PreparedConfig, opacity float32, focused bool, direction core.Direction, mode core.Mode) core.DrawData {
	var data core.DrawData
	if opacity <= 1e-4 {
		return data
	}

	color := gizmoColor(cfg, focused, direction)
	axis := cfg.Axis(direction)
	width := gizmoWidth(cfg)
	start, end := arrowEnds(cfg, direction, mode)

	switch mode {
	case core.ModeTranslate:
		base := end.Sub(axis.Mul(width * coneLength))
		data.Add(
			core.Primitive{Type: core.ShapeLine, Color: color, Opacity: opacity, P1: start, P2: base, Stroke: cfg.Visuals.StrokeWidth},
			core.Primitive{
				Type:        core.ShapeCone,
				Color:       color,
				Opacity:     opacity,
				ModelMatrix: core.Basis(base, axis, mgl32.Vec3{width * coneRadius, width * coneRadius, width * coneLength}),
				Filled:      true,
			},
		)
	case core.ModeScale:
		tip := width * scaleTipSize
		data.Add(
			core.Primitive{Type: core.ShapeLine, Color: color, Opacity: opacity, P1: start, P2: end, Stroke: cfg.Visuals.StrokeWidth},
			core.Primitive{
				Type:        core.ShapeCube,
				Color:       color,
				Opacity:     opacity,
				ModelMatrix: core.Basis(end, axis, mgl32.Vec3{tip, tip, tip}),
				Filled:      true,
			},
		)
	default:
		data.Add(core.Primitive{Type: core.ShapeLine, Color: color, Opacity: opacity, P1: start, P2: end, Stroke: cfg.Visuals.StrokeWidth})
	}
	return data
}

func drawPlane(cfg *core.PreparedConfig, opacity float32, focused bool, direction core.Direction) core.DrawData {
	var data core.DrawData
	if opacity <= 1e-4 {
		return data
	}

	tangent, bitangent := planeAxes(cfg, direction)
	normal := cfg.Axis(direction)
	center := planeCenter(cfg, direction)
	size := gizmoWidth(cfg) * planeSize

	model := mgl32.Mat4FromCols(
		tangent.Mul(size).Vec4(0),
		bitangent.Mul(size).Vec4(0),
		normal.Vec4(0),
		center.Vec4(1),
	)
	data.Add(core.Primitive{
		Type:        core.ShapeQuad,
		Color:       gizmoColor(cfg, focused, direction),
		Opacity:     opacity,
		ModelMatrix: model,
		Filled:      true,
	})
	return data
}

func drawCircle(cfg *core.PreparedConfig, color [4]float32, radius float32, filled bool) core.DrawData {
	var data core.DrawData
	data.Add(core.Primitive{
		Type:        core.ShapeCircle,
		Color:       color,
		Opacity:     1,
		ModelMatrix: core.Basis(cfg.Origin(), cfg.Axis(core.DirectionView), mgl32.Vec3{radius, radius, radius}),
		Stroke:      cfg.Visuals.StrokeWidth,
		Filled:      filled,
	})
	return data
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
