package subgizmo

import (
	"math"

	"github.com/gekko3d/gizmo/core"
	"github.com/go-gl/mathgl/mgl32"
)

// minStartDelta is the smallest pick-time cursor distance from the projected
// origin, in pixels, that still defines a drag direction.
const minStartDelta = 1e-3

type ScaleParams struct {
	Mode      core.Mode
	Direction core.Direction
	Kind      TransformKind
}

type ScaleState struct {
	StartPos   mgl32.Vec2
	StartDelta float32
}

// ScaleSubGizmo is an axis, plane or view ring handle that always scales uniformly.
type ScaleSubGizmo struct {
	Envelope[ScaleParams, ScaleState]
}

var _ SubGizmo = (*ScaleSubGizmo)(nil)

func NewScale(config *core.PreparedConfig, params ScaleParams) *ScaleSubGizmo {
	return &ScaleSubGizmo{Envelope: newEnvelope[ScaleParams, ScaleState](config, params)}
}

func (s *ScaleSubGizmo) Pick(ray core.Ray) (float32, bool) {
	cfg := s.config

	var res pickResult
	switch {
	case s.Params.Kind == KindPlane && s.Params.Direction == core.DirectionView:
		res = pickCircle(cfg, ray, outerCircleRadius(cfg), false)
	case s.Params.Kind == KindPlane:
		res = pickPlane(cfg, ray, s.Params.Direction)
	default:
		res = pickArrow(cfg, ray, s.Params.Direction, s.Params.Mode)
	}

	startDelta, ok := distanceFromOrigin2D(cfg, ray.ScreenPos)
	if !ok {
		s.phase = PhaseIdle
		return 0, false
	}

	// Recorded on misses too: hover frames seed the next drag and drive the fade.
	s.opacity = res.visibility
	s.state = ScaleState{StartPos: ray.ScreenPos, StartDelta: startDelta}

	// A cursor on the projected origin has no drag direction.
	if !res.picked || startDelta < minStartDelta {
		s.phase = PhaseIdle
		return 0, false
	}
	s.phase = PhaseArmed
	return res.t, true
}

// Update scales uniformly whatever the handle shape.
func (s *ScaleSubGizmo) Update(ray core.Ray) (core.Result, bool) {
	if s.phase == PhaseIdle {
		return nil, false
	}
	cfg := s.config

	origin, ok := origin2D(cfg)
	if !ok {
		return nil, false
	}

	offset := s.state.StartPos.Sub(origin)
	length := offset.Len()
	if length < minStartDelta || s.state.StartDelta < minStartDelta {
		return nil, false
	}
	dir := offset.Mul(1 / length)
	change := ray.ScreenPos.Sub(s.state.StartPos)

	factor := ScaleMap(dir.Dot(change) / s.state.StartDelta)
	if cfg.Snapping {
		factor = core.RoundToInterval(factor, cfg.SnapScale)
	}

	s.phase = PhaseDragging
	return core.ScaleResult{Total: mgl32.Vec3{factor, factor, factor}}, true
}

func (s *ScaleSubGizmo) Draw() core.DrawData {
	cfg := s.config
	switch {
	case s.Params.Kind == KindAxis:
		return drawArrow(cfg, s.opacity, s.focused, s.Params.Direction, s.Params.Mode)
	case s.Params.Direction == core.DirectionView:
		return drawCircle(cfg, gizmoColor(cfg, s.focused, s.Params.Direction), outerCircleRadius(cfg), false)
	default:
		return drawPlane(cfg, s.opacity, s.focused, s.Params.Direction)
	}
}

// ScaleMap maps a signed, dimensionless drag distance to a scale factor.
// It is strictly increasing, ScaleMap(0) == 1, and positive for every finite d.
func ScaleMap(d float32) float32 {
	x := float64(d)
	h := math.Hypot(x, 2)
	if x < 0 {
		// Same value as (x+h)/2 without cancellation.
		return float32(2 / (h - x))
	}
	return float32((x + h) * 0.5)
}
