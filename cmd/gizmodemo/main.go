// Command gizmodemo opens a window with a box and its scale gizmo.
//
// Drag a handle with the left mouse button, hold Ctrl to snap, use the arrow
// keys to orbit the camera and R to reset the box.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/core"
	"github.com/gekko3d/gizmo/raster"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	screenW = 1024
	screenH = 768

	orbitStep     = 45 // Degrees per key press
	orbitDuration = 0.35
)

type game struct {
	gizmo  *gizmo.Gizmo
	cfg    core.Config
	camera core.OrbitCamera
	target core.Transform
	last   core.Result

	yawTween   *gween.Tween
	pitchTween *gween.Tween

	white *ebiten.Image
}

func newGame(cfg core.Config, logger gizmo.Logger) *game {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	g := &game{
		cfg:    cfg,
		camera: core.NewOrbitCamera(),
		target: core.NewTransform(),
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
	g.camera.Apply(&g.cfg, core.NewRect(0, 0, screenW, screenH))
	g.gizmo = gizmo.NewGizmo(g.cfg, logger)
	return g
}

func (g *game) orbit(dYaw, dPitch float32) {
	yaw := g.camera.Yaw
	if g.yawTween != nil {
		yaw, _ = g.yawTween.Update(0)
	}
	pitch := g.camera.Pitch
	if g.pitchTween != nil {
		pitch, _ = g.pitchTween.Update(0)
	}
	g.yawTween = gween.New(yaw, yaw+mgl32.DegToRad(dYaw), orbitDuration, ease.OutCubic)
	g.pitchTween = gween.New(pitch, mgl32.Clamp(pitch+mgl32.DegToRad(dPitch), -1.4, 1.4), orbitDuration, ease.OutCubic)
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if g.yawTween != nil {
		v, done := g.yawTween.Update(dt)
		g.camera.Yaw = v
		if done {
			g.yawTween = nil
		}
	}
	if g.pitchTween != nil {
		v, done := g.pitchTween.Update(dt)
		g.camera.Pitch = v
		if done {
			g.pitchTween = nil
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.orbit(-orbitStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.orbit(orbitStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.orbit(0, orbitStep/3)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.orbit(0, -orbitStep/3)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.target = core.NewTransform()
		g.last = nil
	}

	g.cfg.Snapping = ebiten.IsKeyPressed(ebiten.KeyControl)
	g.camera.Apply(&g.cfg, core.NewRect(0, 0, screenW, screenH))
	g.gizmo.UpdateConfig(g.cfg)

	mx, my := ebiten.CursorPosition()
	in := gizmo.Interaction{
		CursorPos:   mgl32.Vec2{float32(mx), float32(my)},
		Hovered:     mx >= 0 && my >= 0 && mx < screenW && my < screenH,
		DragStarted: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Dragging:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	if t, res, ok := g.gizmo.Update(in, g.target); ok {
		g.target = t
		g.last = res
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 30, G: 30, B: 34, A: 255})

	var data core.DrawData
	data.Merge(core.BoxLines(g.target.Matrix(), [4]float32{0.8, 0.8, 0.8, 1}, 1.5))
	data.Merge(g.gizmo.Draw())

	cfg := g.gizmo.Config()
	for _, prim := range data.Primitives {
		g.fill(screen, raster.Tessellate(cfg, prim), prim.FinalColor())
	}

	msg := fmt.Sprintf("scale %.3f", g.target.Scale.X())
	if r, ok := g.last.(core.ScaleResult); ok {
		msg += fmt.Sprintf("  last drag x%.3f", r.Total.X())
	}
	if g.cfg.Snapping {
		msg += fmt.Sprintf("  snap %.2f", g.cfg.SnapScale)
	}
	ebitenutil.DebugPrint(screen, msg+"\narrows: orbit  ctrl: snap  r: reset")
}

// fill draws convex polygons as triangle fans.
func (g *game) fill(screen *ebiten.Image, polys [][]mgl32.Vec2, c [4]float32) {
	if c[3] <= 0 {
		return
	}
	var vertices []ebiten.Vertex
	var indices []uint16
	for _, poly := range polys {
		base := uint16(len(vertices))
		for _, p := range poly {
			vertices = append(vertices, ebiten.Vertex{
				DstX:   p.X(),
				DstY:   p.Y(),
				SrcX:   1,
				SrcY:   1,
				ColorR: c[0] * c[3],
				ColorG: c[1] * c[3],
				ColorB: c[2] * c[3],
				ColorA: c[3],
			})
		}
		for i := 1; i+1 < len(poly); i++ {
			indices = append(indices, base, base+uint16(i), base+uint16(i+1))
		}
	}
	if len(indices) == 0 {
		return
	}
	screen.DrawTriangles(vertices, indices, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	visualsFile := flag.String("visuals", "", "Path to a visuals YAML file")
	snap := flag.Float64("snap", 0.25, "Snap interval for scale factors")
	local := flag.Bool("local", false, "Align handles with the target rotation")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := gizmo.NewDefaultLogger("gizmodemo", *debug)

	cfg := core.DefaultConfig()
	cfg.SnapScale = float32(*snap)
	if *local {
		cfg.Orientation = core.OrientationLocal
	}
	if *visualsFile != "" {
		v, err := core.LoadVisuals(*visualsFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Visuals = v
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("gizmo: uniform scale")
	if err := ebiten.RunGame(newGame(cfg, logger)); err != nil {
		log.Fatal(err)
	}
}
