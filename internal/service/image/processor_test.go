package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestProcessDownscalesToJPEG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "task.png", gradient(400, 200))

	p := NewProcessor(100, 0, 0)
	out, err := p.Process(path)
	require.NoError(t, err)

	assert.Equal(t, path, out.Source)
	assert.Equal(t, "image/jpeg", out.MimeType)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, len(out.Data), out.SizeBytes)

	decoded, err := jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())

	raw, err := base64.StdEncoding.DecodeString(out.Base64())
	require.NoError(t, err)
	assert.Equal(t, out.Data, raw)
}

func TestEncodeKeepsSmallImages(t *testing.T) {
	out, err := NewProcessor(1280, 0, 90).Encode(gradient(64, 32))
	require.NoError(t, err)
	assert.Equal(t, 64, out.Width)
	assert.Equal(t, 32, out.Height)
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := NewProcessor(400, 10, 100).Encode(gradient(400, 400))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds max size")
}

func TestProcessMissingFile(t *testing.T) {
	_, err := NewProcessor(0, 0, 0).Process(filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
}

func TestCleanerRemovesOldImages(t *testing.T) {
	dir := t.TempDir()
	old := writePNG(t, dir, "old.png", gradient(4, 4))
	fresh := writePNG(t, dir, "fresh.png", gradient(4, 4))
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(notes, past, past))

	c := NewCleaner(zaptest.NewLogger(t).Sugar())
	assert.Equal(t, 0, c.Clean(dir, time.Minute, true))
	assert.Equal(t, 1, c.Clean(dir, time.Minute, false))

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, notes)
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.JPG"))
	assert.True(t, IsImageFile("b.jpeg"))
	assert.True(t, IsImageFile("c.png"))
	assert.False(t, IsImageFile("d.gif"))
}

func TestCleanerSkipsMissingDirAndZeroTTL(t *testing.T) {
	c := NewCleaner(zaptest.NewLogger(t).Sugar())
	assert.Zero(t, c.Clean(filepath.Join(t.TempDir(), "missing"), time.Minute, false))

	dir := t.TempDir()
	old := writePNG(t, dir, "old.png", gradient(4, 4))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	assert.Zero(t, c.Clean(dir, 0, false))
	assert.FileExists(t, old)

	stale, err := c.expired(dir, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{old}, stale)
}
