package tray

import (
	"bytes"
	"image/png"
	"testing"
)

func TestIconPNG(t *testing.T) {
	data := iconPNG(3)
	if data == nil {
		t.Fatal("iconPNG returned nil")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 16 {
		t.Errorf("size = %dx%d, want 16x16", bounds.Dx(), bounds.Dy())
	}
}

func TestIconPNGVariesByDesktop(t *testing.T) {
	if bytes.Equal(iconPNG(1), iconPNG(2)) {
		t.Error("icons for desktops 1 and 2 should differ")
	}
}

func TestIconPNGDesktopTenUsesZeroGlyph(t *testing.T) {
	if !bytes.Equal(iconPNG(10), iconPNG(10)) {
		t.Fatal("icon rendering should be deterministic")
	}
	if bytes.Equal(iconPNG(10), iconPNG(1)) {
		t.Error("desktop 10 icon should not match desktop 1")
	}
}
