// Package imageio writes rendered frames to disk as PNG or plain-text PPM.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WritePPM writes img as an ASCII (P3) PPM: a header line with the magic,
// the dimensions and the max value, then one "r g b" line per pixel in row-major order.
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8); err != nil {
				return fmt.Errorf("writing ppm pixel (%d, %d): %w", x, y, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing ppm: %w", err)
	}
	return nil
}

// SavePNG writes img to path as a PNG file
func SavePNG(path string, img image.Image) error {
	return save(path, img, png.Encode)
}

// SavePPM writes img to path as a P3 PPM file
func SavePPM(path string, img image.Image) error {
	return save(path, img, WritePPM)
}

// Save picks the format from the file extension: .ppm or .png
func Save(path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return SavePNG(path, img)
	case ".ppm":
		return SavePPM(path, img)
	default:
		return fmt.Errorf("unsupported image format %q (use .png or .ppm)", filepath.Ext(path))
	}
}

func save(path string, img image.Image, encode func(io.Writer, image.Image) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
