package core

import "github.com/go-gl/mathgl/mgl32"

type ShapeType int

const (
	ShapeLine   ShapeType = iota
	ShapeCube             // Filled unit cube centered at the origin
	ShapeCone             // Unit cone, base at z=0, apex at z=1
	ShapeQuad             // Unit square in the XY plane centered at the origin
	ShapeCircle           // Unit circle in the XY plane
)

// Primitive is a backend-agnostic shape descriptor.
// For Line, P1 and P2 are world-space endpoints and ModelMatrix is unused.
// Every other shape is placed by ModelMatrix.
type Primitive struct {
	Type        ShapeType
	Color       [4]float32
	Opacity     float32
	ModelMatrix mgl32.Mat4
	P1, P2      mgl32.Vec3

	// Stroke width in pixels for lines and unfilled circles.
	Stroke float32
	Filled bool
}

// FinalColor is Color with its alpha scaled by Opacity.
func (p Primitive) FinalColor() [4]float32 {
	c := p.Color
	c[3] *= mgl32.Clamp(p.Opacity, 0, 1)
	return c
}

type DrawData struct {
	Primitives []Primitive
}

func (d *DrawData) Add(p ...Primitive) {
	d.Primitives = append(d.Primitives, p...)
}

func (d *DrawData) Merge(other DrawData) {
	d.Primitives = append(d.Primitives, other.Primitives...)
}

func (d DrawData) Len() int {
	return len(d.Primitives)
}

// Basis builds a model matrix placing a unit shape at pos, with its local Z along normal.
func Basis(pos, normal mgl32.Vec3, scale mgl32.Vec3) mgl32.Mat4 {
	z := normal.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if abs32(z.Dot(up)) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	rot := mgl32.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot).Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxLines outlines the unit cube placed by model.
func BoxLines(model mgl32.Mat4, color [4]float32, stroke float32) DrawData {
	var corners [8]mgl32.Vec3
	for i := range corners {
		local := mgl32.Vec4{-0.5, -0.5, -0.5, 1}
		if i&1 != 0 {
			local[0] = 0.5
		}
		if i&2 != 0 {
			local[1] = 0.5
		}
		if i&4 != 0 {
			local[2] = 0.5
		}
		corners[i] = model.Mul4x1(local).Vec3()
	}
	// Reorder bit-indexed corners into two rings of four.
	ring := [8]int{0, 1, 3, 2, 4, 5, 7, 6}

	var data DrawData
	for _, e := range boxEdges {
		data.Add(Primitive{
			Type:    ShapeLine,
			Color:   color,
			Opacity: 1,
			P1:      corners[ring[e[0]]],
			P2:      corners[ring[e[1]]],
			Stroke:  stroke,
		})
	}
	return data
}
