package core

import "github.com/go-gl/mathgl/mgl32"

type ResultKind int

const (
	ResultScale ResultKind = iota
)

// Result is the transform delta produced by a dragged handle.
// Total is relative to the target transform at the start of the drag.
type Result interface {
	Kind() ResultKind
	Apply(start Transform) Transform
}

type ScaleResult struct {
	Total mgl32.Vec3
}

func (ScaleResult) Kind() ResultKind { return ResultScale }

func (r ScaleResult) Apply(start Transform) Transform {
	out := start
	out.Scale = mgl32.Vec3{
		start.Scale.X() * r.Total.X(),
		start.Scale.Y() * r.Total.Y(),
		start.Scale.Z() * r.Total.Z(),
	}
	return out
}
