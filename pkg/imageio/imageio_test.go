package imageio

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 13), G: uint8(y * 29), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestSaveLoadIsLossless(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carrier.png")
	src := gradient(17, 9)

	require.NoError(t, Save(path, src))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	assert.Equal(t, src.Pix, got.Pix)
}

func TestSaveRejectsLossyFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrier.jpg")
	assert.ErrorIs(t, Save(path, gradient(2, 2)), ErrLossyFormat)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	src := gradient(5, 5)
	require.NoError(t, Encode(&buf, src))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestListPNGs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.PNG", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	got, err := ListPNGs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.PNG"), filepath.Join(dir, "b.png")}, got)
}
