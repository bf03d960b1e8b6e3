package services

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return &buf
}

func decodeStored(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open stored avatar: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode stored avatar: %v", err)
	}
	return img
}

func TestAvatarRejectsDisallowedExtension(t *testing.T) {
	dir := t.TempDir()
	svc := NewAvatarService(dir)

	_, err := svc.Save(bytes.NewReader([]byte("MZ...")), "evil.exe")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	// Rejection must happen before any filesystem write
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files written, found %d", len(entries))
	}
}

func TestAvatarResizesLargeImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewAvatarService(dir)

	filename, err := svc.Save(pngBytes(t, 500, 250), "photo.png")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !strings.HasSuffix(filename, ".png") {
		t.Fatalf("expected generated name to keep extension, got %q", filename)
	}
	if strings.Contains(filename, "photo") {
		t.Fatalf("generated name must not derive from the upload name: %q", filename)
	}

	b := decodeStored(t, filepath.Join(dir, filename)).Bounds()
	if b.Dx() > MaxAvatarSize || b.Dy() > MaxAvatarSize {
		t.Fatalf("stored avatar exceeds bound: %dx%d", b.Dx(), b.Dy())
	}
	// 500x250 should keep its 2:1 aspect ratio
	if b.Dx() != 125 || b.Dy() != 62 {
		t.Fatalf("unexpected thumbnail size %dx%d, want 125x62", b.Dx(), b.Dy())
	}
}

func TestAvatarDoesNotUpscale(t *testing.T) {
	dir := t.TempDir()
	svc := NewAvatarService(dir)

	filename, err := svc.Save(pngBytes(t, 60, 40), "small.png")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	b := decodeStored(t, filepath.Join(dir, filename)).Bounds()
	if b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("small image must be stored unchanged, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestAvatarGeneratedNamesAreUnique(t *testing.T) {
	dir := t.TempDir()
	svc := NewAvatarService(dir)

	a, err := svc.Save(pngBytes(t, 10, 10), "a.png")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	b, err := svc.Save(pngBytes(t, 10, 10), "a.png")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if a == b {
		t.Fatalf("two uploads produced the same filename %q", a)
	}
}

func TestAvatarRemoveKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	svc := NewAvatarService(dir)

	if err := svc.Remove("default.jpg"); err != nil {
		t.Fatalf("Remove(default) error: %v", err)
	}
	// Missing files are not an error either
	if err := svc.Remove("gone.png"); err != nil {
		t.Fatalf("Remove(missing) error: %v", err)
	}

	filename, err := svc.Save(pngBytes(t, 10, 10), "a.png")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := svc.Remove(filename); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filename)); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed", filename)
	}
}
