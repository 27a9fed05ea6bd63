// Command gizmosnap renders one frame of the scale gizmo to an image file.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/core"
	"github.com/gekko3d/gizmo/raster"
	"github.com/gekko3d/gizmo/subgizmo"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	out := flag.String("o", "gizmo.webp", "Output file (.webp, .png or .tga)")
	width := flag.Int("w", 800, "Image width in pixels")
	height := flag.Int("h", 600, "Image height in pixels")
	yaw := flag.Float64("yaw", 30, "Camera yaw in degrees")
	pitch := flag.Float64("pitch", 20, "Camera pitch in degrees")
	distance := flag.Float64("distance", 5, "Camera distance from the target")
	scale := flag.Float64("scale", 1, "Uniform scale of the target")
	local := flag.Bool("local", false, "Align handles with the target rotation")
	visualsFile := flag.String("visuals", "", "Path to a visuals YAML file")
	hover := flag.String("hover", "", "Handle to highlight: x, y, z, xy, yz, zx or view")
	supersample := flag.Int("ss", 2, "Supersampling factor")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := gizmo.NewDefaultLogger("gizmosnap", *debug)

	format, err := raster.FormatFromPath(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	if *visualsFile != "" {
		cfg.Visuals, err = core.LoadVisuals(*visualsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading visuals: %v\n", err)
			os.Exit(1)
		}
	}
	if *local {
		cfg.Orientation = core.OrientationLocal
	}

	cam := core.NewOrbitCamera()
	cam.Yaw = mgl32.DegToRad(float32(*yaw))
	cam.Pitch = mgl32.DegToRad(float32(*pitch))
	cam.Distance = float32(*distance)
	cam.Apply(&cfg, core.NewRect(0, 0, float32(*width), float32(*height)))

	target := core.NewTransform()
	s := float32(*scale)
	target.Scale = mgl32.Vec3{s, s, s}

	g := gizmo.NewGizmo(cfg, logger)
	// A hover frame away from the handles refreshes their visibility.
	g.Update(gizmo.Interaction{CursorPos: cfg.Viewport.Min, Hovered: true}, target)

	if *hover != "" {
		params, ok := parseHandle(*hover)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown handle %q\n", *hover)
			os.Exit(1)
		}
		for _, h := range g.Handles() {
			if sg, ok := h.(*subgizmo.ScaleSubGizmo); ok && sg.Params == params {
				sg.SetFocused(true)
			}
		}
	}

	var data core.DrawData
	data.Merge(core.BoxLines(target.Matrix(), [4]float32{0.8, 0.8, 0.8, 1}, 1.5))
	data.Merge(g.Draw())
	logger.Debugf("rendering %d primitives", data.Len())

	r := raster.NewRenderer(*width, *height)
	r.Supersample = *supersample
	r.Background.A = 255
	r.Background.R, r.Background.G, r.Background.B = 30, 30, 34
	img := r.Render(g.Config(), data)

	if err := writeImage(*out, format, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Infof("wrote %s", *out)
}

// writeImage encodes img to path. A failed close is reported since it can lose buffered data.
func writeImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.Encode(f, format, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func parseHandle(name string) (subgizmo.ScaleParams, bool) {
	p := subgizmo.ScaleParams{Mode: core.ModeScale, Kind: subgizmo.KindPlane}
	switch strings.ToLower(name) {
	case "x":
		p.Direction, p.Kind = core.DirectionX, subgizmo.KindAxis
	case "y":
		p.Direction, p.Kind = core.DirectionY, subgizmo.KindAxis
	case "z":
		p.Direction, p.Kind = core.DirectionZ, subgizmo.KindAxis
	case "yz":
		p.Direction = core.DirectionX
	case "zx", "xz":
		p.Direction = core.DirectionY
	case "xy":
		p.Direction = core.DirectionZ
	case "view":
		p.Direction = core.DirectionView
	default:
		return p, false
	}
	return p, true
}
