// Package raster renders gizmo draw data into an image without a GPU.
package raster

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/gekko3d/gizmo/core"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const circleSegments = 48

// Renderer paints primitives in submission order, so later primitives cover earlier ones.
type Renderer struct {
	Width       int
	Height      int
	Supersample int
	Background  color.NRGBA
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:       width,
		Height:      height,
		Supersample: 2,
	}
}

func (r *Renderer) Render(cfg *core.PreparedConfig, data core.DrawData) *image.NRGBA {
	ss := r.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := r.Width*ss, r.Height*ss

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	if cfg.Viewport.Width() <= 0 || cfg.Viewport.Height() <= 0 {
		data = core.DrawData{}
	}

	p := &painter{
		cfg:    cfg,
		rast:   vector.NewRasterizer(w, h),
		dst:    canvas,
		scaleX: float32(w) / cfg.Viewport.Width(),
		scaleY: float32(h) / cfg.Viewport.Height(),
	}
	for _, prim := range data.Primitives {
		p.paint(prim)
	}

	out := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	if ss == 1 {
		draw.Draw(out, out.Bounds(), canvas, image.Point{}, draw.Src)
		return out
	}
	small := image.NewRGBA(out.Bounds())
	draw.CatmullRom.Scale(small, small.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	draw.Draw(out, out.Bounds(), small, image.Point{}, draw.Src)
	return out
}

type painter struct {
	cfg            *core.PreparedConfig
	rast           *vector.Rasterizer
	dst            *image.RGBA
	scaleX, scaleY float32
}

func (p *painter) paint(prim core.Primitive) {
	c := prim.FinalColor()
	if c[3] <= 0 {
		return
	}
	polys := Tessellate(p.cfg, prim)
	if len(polys) == 0 {
		return
	}

	p.rast.Reset(p.dst.Bounds().Dx(), p.dst.Bounds().Dy())
	origin := p.cfg.Viewport.Min
	for _, poly := range polys {
		for i, q := range poly {
			x := (q.X() - origin.X()) * p.scaleX
			y := (q.Y() - origin.Y()) * p.scaleY
			if i == 0 {
				p.rast.MoveTo(x, y)
			} else {
				p.rast.LineTo(x, y)
			}
		}
		p.rast.ClosePath()
	}

	src := image.NewUniform(color.NRGBA{
		R: to8(c[0]),
		G: to8(c[1]),
		B: to8(c[2]),
		A: to8(c[3]),
	})
	p.rast.Draw(p.dst, p.dst.Bounds(), src, image.Point{})
}

// Tessellate converts a primitive into convex polygons in screen pixels.
// Polygons of one primitive share winding so overlaps do not cancel.
// Primitives with a vertex behind the camera yield nothing.
func Tessellate(cfg *core.PreparedConfig, prim core.Primitive) [][]mgl32.Vec2 {
	project := func(model mgl32.Mat4, local []mgl32.Vec3) ([]mgl32.Vec2, bool) {
		pts := make([]mgl32.Vec2, 0, len(local))
		for _, l := range local {
			s, ok := core.WorldToScreen(cfg.Viewport, cfg.ViewProjection, model.Mul4x1(l.Vec4(1)).Vec3())
			if !ok {
				return nil, false
			}
			pts = append(pts, s)
		}
		return pts, true
	}

	switch prim.Type {
	case core.ShapeLine:
		pts, ok := project(mgl32.Ident4(), []mgl32.Vec3{prim.P1, prim.P2})
		if !ok {
			return nil
		}
		if q := segmentQuad(pts[0], pts[1], prim.Stroke); q != nil {
			return [][]mgl32.Vec2{q}
		}
	case core.ShapeCube:
		if pts, ok := project(prim.ModelMatrix, cubeCorners); ok {
			return [][]mgl32.Vec2{ccw(convexHull(pts))}
		}
	case core.ShapeCone:
		if pts, ok := project(prim.ModelMatrix, coneOutline()); ok {
			return [][]mgl32.Vec2{ccw(convexHull(pts))}
		}
	case core.ShapeQuad:
		if pts, ok := project(prim.ModelMatrix, quadCorners); ok {
			return [][]mgl32.Vec2{ccw(pts)}
		}
	case core.ShapeCircle:
		pts, ok := project(prim.ModelMatrix, circleOutline())
		if !ok {
			return nil
		}
		if prim.Filled {
			return [][]mgl32.Vec2{ccw(pts)}
		}
		var polys [][]mgl32.Vec2
		for i := range pts {
			if q := segmentQuad(pts[i], pts[(i+1)%len(pts)], prim.Stroke); q != nil {
				polys = append(polys, q)
			}
		}
		return polys
	}
	return nil
}

func segmentQuad(a, b mgl32.Vec2, width float32) []mgl32.Vec2 {
	d := b.Sub(a)
	l := d.Len()
	if l < 1e-6 || width <= 0 {
		return nil
	}
	n := mgl32.Vec2{-d.Y(), d.X()}.Mul(width / 2 / l)
	return ccw([]mgl32.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
}

// ccw reverses pts in place when their signed area is negative.
func ccw(pts []mgl32.Vec2) []mgl32.Vec2 {
	var area float32
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		area += a.X()*b.Y() - b.X()*a.Y()
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}

var cubeCorners = []mgl32.Vec3{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
}

var quadCorners = []mgl32.Vec3{
	{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0},
}

func circleOutline() []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = mgl32.Vec3{float32(math.Cos(a)), float32(math.Sin(a)), 0}
	}
	return pts
}

func coneOutline() []mgl32.Vec3 {
	return append(circleOutline(), mgl32.Vec3{0, 0, 1})
}

// convexHull returns the hull of pts in counter-clockwise order (monotone chain).
func convexHull(pts []mgl32.Vec2) []mgl32.Vec2 {
	if len(pts) < 3 {
		return pts
	}
	sorted := append([]mgl32.Vec2(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X() != sorted[j].X() {
			return sorted[i].X() < sorted[j].X()
		}
		return sorted[i].Y() < sorted[j].Y()
	})

	cross := func(o, a, b mgl32.Vec2) float32 {
		return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
	}

	hull := make([]mgl32.Vec2, 0, 2*len(sorted))
	for _, q := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], q) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, q)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		q := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], q) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, q)
	}
	return hull[:len(hull)-1]
}

func to8(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
