package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a pick ray together with the screen position it was cast from.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
	ScreenPos mgl32.Vec2
}

// WorldToScreen projects pos through mvp into viewport pixels.
// Returns false if the point is at or behind the camera or the result is not finite.
func WorldToScreen(viewport Rect, mvp mgl32.Mat4, pos mgl32.Vec3) (mgl32.Vec2, bool) {
	clip := mvp.Mul4x1(pos.Vec4(1.0))
	if !(clip.W() >= 1e-10) {
		return mgl32.Vec2{}, false
	}

	ndc := clip.Vec3().Mul(1.0 / clip.W())
	center := viewport.Center()
	x := center.X() + ndc.X()*viewport.Width()/2
	y := center.Y() - ndc.Y()*viewport.Height()/2

	if !finite(x) || !finite(y) {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{x, y}, true
}

// ScreenToWorld maps a screen position at NDC depth (-1 near, 1 far) back into
// world space through the inverse of a view-projection matrix.
func ScreenToWorld(viewport Rect, invMVP mgl32.Mat4, pos mgl32.Vec2, depth float32) (mgl32.Vec3, bool) {
	w, h := viewport.Width(), viewport.Height()
	if w <= 0 || h <= 0 {
		return mgl32.Vec3{}, false
	}
	center := viewport.Center()
	nx := (pos.X() - center.X()) / (w / 2)
	ny := -(pos.Y() - center.Y()) / (h / 2)

	p := invMVP.Mul4x1(mgl32.Vec4{nx, ny, depth, 1})
	if math.Abs(float64(p.W())) < 1e-10 {
		return mgl32.Vec3{}, false
	}
	return p.Vec3().Mul(1.0 / p.W()), true
}

// PickRay builds the world-space ray under screenPos.
func (p *PreparedConfig) PickRay(screenPos mgl32.Vec2) (Ray, bool) {
	if p.ViewProjection.Det() == 0 {
		return Ray{}, false
	}
	inv := p.ViewProjection.Inv()

	near, ok := ScreenToWorld(p.Viewport, inv, screenPos, -1)
	if !ok {
		return Ray{}, false
	}
	// A point at mid depth stays well conditioned for large far/near ratios.
	mid, ok := ScreenToWorld(p.Viewport, inv, screenPos, 0)
	if !ok {
		return Ray{}, false
	}
	dir := mid.Sub(near)
	if dir.Len() < 1e-12 {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize(), ScreenPos: screenPos}, true
}

// RoundToInterval rounds v to the nearest multiple of interval, ties away from zero.
func RoundToInterval(v, interval float32) float32 {
	if !(interval > 0) {
		return v
	}
	return float32(math.Round(float64(v)/float64(interval)) * float64(interval))
}

// SegmentDistance is the distance from p to the segment ab.
func SegmentDistance(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := mgl32.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// ClosestPoints returns the ray parameter t, the line parameter s and the distance
// between the ray (ro, rd) and the line (ao, ad) at their closest approach.
func ClosestPoints(ro, rd, ao, ad mgl32.Vec3) (float32, float32, float32) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < 1e-6 {
		return 0, 0, r.Len()
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len()
}

// IntersectPlane returns the ray parameter where the ray hits the plane through point with normal.
func IntersectPlane(ray Ray, point, normal mgl32.Vec3) (float32, bool) {
	denom := ray.Direction.Dot(normal)
	if math.Abs(float64(denom)) < 1e-6 {
		return 0, false
	}
	t := point.Sub(ray.Origin).Dot(normal) / denom
	return t, t >= 0
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
