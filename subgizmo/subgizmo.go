package subgizmo

import (
	"fmt"

	"github.com/gekko3d/gizmo/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Namespace for handle IDs. IDs are derived from handle parameters only, so a
// rebuilt handle keeps the ID of the one it replaces.
var idNamespace = uuid.MustParse("6b0e3c1e-4f42-4a7d-9a53-2a1f0d8c5e71")

// Phase tracks the pick-then-update protocol of a handle.
type Phase int

const (
	PhaseIdle     Phase = iota
	PhaseArmed          // Picked, drag reference recorded
	PhaseDragging       // At least one update since the pick
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseDragging:
		return "dragging"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// TransformKind is the handle shape family.
type TransformKind int

const (
	KindAxis  TransformKind = iota
	KindPlane               // Quad for X/Y/Z, ring for DirectionView
)

func (k TransformKind) String() string {
	if k == KindPlane {
		return "plane"
	}
	return "axis"
}

// SubGizmo is one interactive handle of a gizmo.
type SubGizmo interface {
	ID() uuid.UUID
	SetConfig(cfg *core.PreparedConfig)
	Focused() bool
	SetFocused(focused bool)
	Opacity() float32
	SetOpacity(opacity float32)
	Phase() Phase
	Release()

	// Pick tests the ray against the handle and arms it on a hit.
	// The returned t orders hits between sibling handles.
	Pick(ray core.Ray) (float32, bool)
	// Update returns the transform delta since the pick. Idle handles return false.
	Update(ray core.Ray) (core.Result, bool)
	// Draw never mutates the handle.
	Draw() core.DrawData
}

// Envelope is the state shared by every handle kind: P holds the immutable
// parameters, S the per-drag runtime state.
type Envelope[P any, S any] struct {
	Params P

	id      uuid.UUID
	config  *core.PreparedConfig
	state   S
	opacity float32
	focused bool
	phase   Phase
}

func newEnvelope[P any, S any](config *core.PreparedConfig, params P) Envelope[P, S] {
	return Envelope[P, S]{
		Params:  params,
		id:      uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%T/%+v", params, params))),
		config:  config,
		opacity: 1,
	}
}

func (e *Envelope[P, S]) ID() uuid.UUID { return e.id }
func (e *Envelope[P, S]) Config() *core.PreparedConfig { return e.config }
func (e *Envelope[P, S]) SetConfig(cfg *core.PreparedConfig) { e.config = cfg }
func (e *Envelope[P, S]) Focused() bool { return e.focused }
func (e *Envelope[P, S]) SetFocused(focused bool) { e.focused = focused }
func (e *Envelope[P, S]) Opacity() float32 { return e.opacity }
func (e *Envelope[P, S]) SetOpacity(opacity float32) { e.opacity = opacity }
func (e *Envelope[P, S]) Phase() Phase { return e.phase }
func (e *Envelope[P, S]) State() S { return e.state }

func (e *Envelope[P, S]) Release() {
	e.phase = PhaseIdle
}

// origin2D projects the gizmo origin. It is recomputed every call since the
// camera may move between pick and update.
func origin2D(cfg *core.PreparedConfig) (mgl32.Vec2, bool) {
	return core.WorldToScreen(cfg.Viewport, cfg.MVP, mgl32.Vec3{0, 0, 0})
}

func distanceFromOrigin2D(cfg *core.PreparedConfig, cursor mgl32.Vec2) (float32, bool) {
	origin, ok := origin2D(cfg)
	if !ok {
		return 0, false
	}
	return cursor.Sub(origin).Len(), true
}
