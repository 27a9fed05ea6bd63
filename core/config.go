package core

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Rect is a screen-space rectangle in pixels, Y growing downwards.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

func NewRect(x, y, w, h float32) Rect {
	return Rect{Min: mgl32.Vec2{x, y}, Max: mgl32.Vec2{x + w, y + h}}
}

func (r Rect) Width() float32 { return r.Max.X() - r.Min.X() }
func (r Rect) Height() float32 { return r.Max.Y() - r.Min.Y() }

func (r Rect) Center() mgl32.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() && p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

type Direction int

const (
	DirectionX Direction = iota
	DirectionY
	DirectionZ
	DirectionView // Camera facing
)

func (d Direction) String() string {
	switch d {
	case DirectionX:
		return "x"
	case DirectionY:
		return "y"
	case DirectionZ:
		return "z"
	case DirectionView:
		return "view"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Mode is a transform family. Handles of the same family emit the same Result kind.
type Mode int

const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeSet is a bitmask of enabled modes.
type ModeSet uint8

func Modes(modes ...Mode) ModeSet {
	var s ModeSet
	for _, m := range modes {
		s = s.With(m)
	}
	return s
}

func (s ModeSet) Has(m Mode) bool { return s&(1<<uint(m)) != 0 }
func (s ModeSet) With(m Mode) ModeSet { return s | 1<<uint(m) }

type Orientation int

const (
	OrientationGlobal Orientation = iota
	OrientationLocal
)

// Transform of the manipulated object.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix is the object-to-world matrix: translate, rotate, then scale.
func (t Transform) Matrix() mgl32.Mat4 {
	p, s := t.Position, t.Scale
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}

// Visuals controls the look of the gizmo. Sizes are in pixels.
type Visuals struct {
	XColor         [4]float32  `yaml:"x_color"`
	YColor         [4]float32  `yaml:"y_color"`
	ZColor         [4]float32  `yaml:"z_color"`
	SColor         [4]float32  `yaml:"s_color"`
	InactiveAlpha  float32     `yaml:"inactive_alpha"`
	HighlightAlpha float32     `yaml:"highlight_alpha"`
	HighlightColor *[4]float32 `yaml:"highlight_color,omitempty"`
	StrokeWidth    float32     `yaml:"stroke_width"`
	GizmoSize      float32     `yaml:"gizmo_size"`
}

func DefaultVisuals() Visuals {
	return Visuals{
		XColor:         [4]float32{1, 0, 0.49, 1},
		YColor:         [4]float32{0.53, 1, 0, 1},
		ZColor:         [4]float32{0, 0.53, 1, 1},
		SColor:         [4]float32{1, 1, 1, 1},
		InactiveAlpha:  0.7,
		HighlightAlpha: 1.0,
		StrokeWidth:    4.0,
		GizmoSize:      75.0,
	}
}

// LoadVisuals reads a YAML file on top of DefaultVisuals.
// Fields not set in the file keep their default values.
func LoadVisuals(path string) (Visuals, error) {
	v := DefaultVisuals()
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("visuals: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return DefaultVisuals(), fmt.Errorf("visuals: parse %s: %w", path, err)
	}
	return v, nil
}

// Config is refreshed by the owner every frame.
type Config struct {
	View        mgl32.Mat4
	Projection  mgl32.Mat4
	Viewport    Rect
	Modes       ModeSet
	Orientation Orientation

	Snapping  bool
	SnapScale float32

	Visuals Visuals
}

func DefaultConfig() Config {
	return Config{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Modes:      Modes(ModeScale),
		SnapScale:  0.25,
		Visuals:    DefaultVisuals(),
	}
}

// PreparedConfig is the read-only per-frame context shared by all handles of a gizmo.
type PreparedConfig struct {
	Config

	Target         Transform
	Model          mgl32.Mat4
	ViewProjection mgl32.Mat4
	MVP            mgl32.Mat4

	ViewForward    mgl32.Vec3
	ViewUp         mgl32.Vec3
	ViewRight      mgl32.Vec3
	CameraPosition mgl32.Vec3

	// ScaleFactor converts pixels to world units at the gizmo origin.
	ScaleFactor float32
	// FocusDistance is the pick tolerance in world units.
	FocusDistance float32
}

func Prepare(cfg Config, target Transform) PreparedConfig {
	p := PreparedConfig{Config: cfg, Target: target}

	rot := mgl32.QuatIdent()
	if cfg.Orientation == OrientationLocal {
		rot = target.Rotation.Normalize()
	}
	pos := target.Position
	p.Model = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot.Mat4())
	p.ViewProjection = cfg.Projection.Mul4(cfg.View)
	p.MVP = p.ViewProjection.Mul4(p.Model)

	// The camera looks down -Z in view space.
	v := cfg.View
	p.ViewRight = mgl32.Vec3{v.At(0, 0), v.At(0, 1), v.At(0, 2)}
	p.ViewUp = mgl32.Vec3{v.At(1, 0), v.At(1, 1), v.At(1, 2)}
	p.ViewForward = mgl32.Vec3{-v.At(2, 0), -v.At(2, 1), -v.At(2, 2)}
	if det := v.Det(); det != 0 {
		p.CameraPosition = v.Inv().Col(3).Vec3()
	}

	p00 := cfg.Projection.At(0, 0)
	width := cfg.Viewport.Width()
	if p00 != 0 && width > 0 {
		p.ScaleFactor = p.MVP[15] / p00 / width * 2
	}
	if math.IsNaN(float64(p.ScaleFactor)) || math.IsInf(float64(p.ScaleFactor), 0) {
		p.ScaleFactor = 0
	}
	p.FocusDistance = p.ScaleFactor * (cfg.Visuals.StrokeWidth/2 + 5)
	return p
}

// Axis returns the world-space unit vector of a direction, honoring orientation.
// DirectionView points towards the camera.
func (p *PreparedConfig) Axis(d Direction) mgl32.Vec3 {
	var n mgl32.Vec3
	switch d {
	case DirectionX:
		n = mgl32.Vec3{1, 0, 0}
	case DirectionY:
		n = mgl32.Vec3{0, 1, 0}
	case DirectionZ:
		n = mgl32.Vec3{0, 0, 1}
	default:
		return p.ViewForward.Mul(-1)
	}
	if p.Orientation == OrientationLocal {
		n = p.Target.Rotation.Normalize().Rotate(n)
	}
	return n
}

// Origin is the world-space position of the gizmo.
func (p *PreparedConfig) Origin() mgl32.Vec3 {
	return p.Target.Position
}
