package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// FormatFromPath returns the image format named by the file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "webp", "tga":
		return ext, nil
	case "":
		return "", fmt.Errorf("raster: %s has no extension", path)
	}
	return "", fmt.Errorf("raster: unsupported format %q", ext)
}

func Encode(w io.Writer, format string, img image.Image) error {
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "webp":
		err = nativewebp.Encode(w, img, nil)
	case "tga":
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("raster: unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("raster: encode %s: %w", format, err)
	}
	return nil
}
