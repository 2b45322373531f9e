// Package imageio loads carriers into packed NRGBA buffers and writes stego
// images back out as PNG.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrLossyFormat indicates an output path whose format would destroy the
// embedded bits.
var ErrLossyFormat = errors.New("stego images must be saved as PNG")

// Load decodes the image at path into a fresh NRGBA anchored at (0,0).
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return imaging.Clone(img), nil
}

// Decode reads an image from r into a fresh NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Clone(img), nil
}

// Save writes img to path. Only .png paths are accepted.
func Save(path string, img image.Image) error {
	if !IsPNG(path) {
		return fmt.Errorf("%w: %s", ErrLossyFormat, path)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// IsPNG reports whether path has a .png extension.
func IsPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

// ListPNGs returns the PNG files directly inside dir, sorted by name.
func ListPNGs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && IsPNG(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
