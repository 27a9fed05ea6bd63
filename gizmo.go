package gizmo

import (
	"math"

	"github.com/gekko3d/gizmo/core"
	"github.com/gekko3d/gizmo/subgizmo"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Interaction is the pointer state of one frame.
type Interaction struct {
	CursorPos mgl32.Vec2
	// Hovered is false when the cursor is outside the viewport or captured by UI.
	Hovered     bool
	DragStarted bool
	Dragging    bool
}

// Gizmo owns the handles of one manipulated object. It chooses the hovered
// handle, runs the drag and applies the result to the target transform.
type Gizmo struct {
	config  core.PreparedConfig
	modes   core.ModeSet
	handles []subgizmo.SubGizmo

	active uuid.UUID
	start  core.Transform

	// Degenerate frames are logged once, when they begin.
	noRay   bool
	stalled bool

	logger Logger
}

func NewGizmo(cfg core.Config, logger Logger) *Gizmo {
	if logger == nil {
		logger = NewNopLogger()
	}
	g := &Gizmo{logger: logger}
	g.config = core.Prepare(cfg, core.NewTransform())
	g.modes = cfg.Modes
	g.rebuild()
	return g
}

// UpdateConfig replaces the per-frame configuration. Handles are rebuilt when
// the enabled modes change.
func (g *Gizmo) UpdateConfig(cfg core.Config) {
	g.config = core.Prepare(cfg, g.config.Target)
	if cfg.Modes != g.modes {
		g.modes = cfg.Modes
		g.rebuild()
	}
}

func (g *Gizmo) Config() *core.PreparedConfig {
	return &g.config
}

func (g *Gizmo) Handles() []subgizmo.SubGizmo {
	return g.handles
}

// Active returns the handle being dragged.
func (g *Gizmo) Active() (subgizmo.SubGizmo, bool) {
	if g.active == uuid.Nil {
		return nil, false
	}
	h := g.handle(g.active)
	return h, h != nil
}

// Update runs one interaction frame. It returns the new target transform and
// the result it was derived from, or false when nothing is being manipulated.
func (g *Gizmo) Update(in Interaction, target core.Transform) (core.Transform, core.Result, bool) {
	g.config = core.Prepare(g.config.Config, target)

	if !in.Dragging {
		g.release()
	}

	ray, ok := g.config.PickRay(in.CursorPos)
	if !ok {
		if !g.noRay {
			g.logger.Debugf("gizmo: no pick ray at %v", in.CursorPos)
			g.noRay = true
		}
		return target, nil, false
	}
	g.noRay = false

	if g.active == uuid.Nil {
		var hovered subgizmo.SubGizmo
		if in.Hovered {
			hovered = g.pick(ray)
		}
		for _, h := range g.handles {
			h.SetFocused(h == hovered)
		}
		if hovered != nil && in.DragStarted {
			g.active = hovered.ID()
			g.start = target
			g.logger.Debugf("gizmo: drag started on %s", hovered.ID())
		}
	}

	if g.active == uuid.Nil || !in.Dragging {
		return target, nil, false
	}

	h := g.handle(g.active)
	if h == nil {
		g.active = uuid.Nil
		return target, nil, false
	}
	res, ok := h.Update(ray)
	if !ok {
		if !g.stalled {
			g.logger.Debugf("gizmo: handle %s stopped producing results", h.ID())
			g.stalled = true
		}
		return target, nil, false
	}
	if g.stalled {
		g.logger.Debugf("gizmo: handle %s resumed", h.ID())
		g.stalled = false
	}
	return res.Apply(g.start), res, true
}

// Draw returns the primitives of every handle, or only the active one while dragging.
func (g *Gizmo) Draw() core.DrawData {
	var data core.DrawData
	if h, ok := g.Active(); ok {
		data.Merge(h.Draw())
		return data
	}
	for _, h := range g.handles {
		data.Merge(h.Draw())
	}
	return data
}

// pick returns the nearest handle under the ray. Every handle is tested so all
// of them refresh their visibility.
func (g *Gizmo) pick(ray core.Ray) subgizmo.SubGizmo {
	var best subgizmo.SubGizmo
	bestT := float32(math.MaxFloat32)
	for _, h := range g.handles {
		if t, ok := h.Pick(ray); ok && t < bestT {
			best = h
			bestT = t
		}
	}
	for _, h := range g.handles {
		if h != best {
			h.Release()
		}
	}
	return best
}

func (g *Gizmo) release() {
	if g.active == uuid.Nil {
		return
	}
	if h := g.handle(g.active); h != nil {
		h.Release()
	}
	g.logger.Debugf("gizmo: drag ended on %s", g.active)
	g.active = uuid.Nil
	g.stalled = false
}

func (g *Gizmo) handle(id uuid.UUID) subgizmo.SubGizmo {
	for _, h := range g.handles {
		if h.ID() == id {
			return h
		}
	}
	return nil
}

// rebuild recreates the handle set for the enabled modes. Handles whose ID
// already exists are kept, so a drag survives a mode change.
func (g *Gizmo) rebuild() {
	for _, m := range []core.Mode{core.ModeTranslate, core.ModeRotate} {
		if g.modes.Has(m) {
			g.logger.Warnf("gizmo: %s mode has no handles, ignoring", m)
		}
	}

	var params []subgizmo.ScaleParams
	if g.modes.Has(core.ModeScale) {
		axes := []core.Direction{core.DirectionX, core.DirectionY, core.DirectionZ}
		for _, d := range axes {
			params = append(params, subgizmo.ScaleParams{Mode: core.ModeScale, Direction: d, Kind: subgizmo.KindAxis})
		}
		for _, d := range axes {
			params = append(params, subgizmo.ScaleParams{Mode: core.ModeScale, Direction: d, Kind: subgizmo.KindPlane})
		}
		params = append(params, subgizmo.ScaleParams{Mode: core.ModeScale, Direction: core.DirectionView, Kind: subgizmo.KindPlane})
	}

	handles := make([]subgizmo.SubGizmo, 0, len(params))
	for _, p := range params {
		h := subgizmo.SubGizmo(subgizmo.NewScale(&g.config, p))
		if old := g.handle(h.ID()); old != nil {
			h = old
		}
		handles = append(handles, h)
	}
	g.handles = handles
	g.logger.Debugf("gizmo: %d handles for modes %08b", len(g.handles), g.modes)

	if g.active != uuid.Nil && g.handle(g.active) == nil {
		g.active = uuid.Nil
	}
}
