package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// iconPNG renders the tray icon: the current desktop number on a dark
// rounded square. Drawn at runtime so the icon always matches the
// tracked desktop without shipping asset files.
func iconPNG(desktop int) []byte {
	const size = 16
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	bg := color.RGBA{R: 0x10, G: 0x14, B: 0x18, A: 0xff}
	fg := color.RGBA{R: 0xf5, G: 0xf7, B: 0xfa, A: 0xff}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if cornerCut(x, y, size) {
				continue
			}
			img.SetRGBA(x, y, bg)
		}
	}

	drawLabel(img, desktop, fg)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// cornerCut clips one pixel from each corner for a rounded look.
func cornerCut(x, y, size int) bool {
	last := size - 1
	return (x == 0 || x == last) && (y == 0 || y == last)
}

// glyphs holds 3x5 bitmaps for the digits 0-9, one row per byte,
// lowest 3 bits used.
var glyphs = [10][5]byte{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

func drawLabel(img *image.RGBA, desktop int, fg color.RGBA) {
	// Desktop 10 is labeled "0", matching the Alt+0 binding.
	if desktop < 1 || desktop > 10 {
		return
	}
	digit := desktop % 10

	const scale = 2
	glyph := glyphs[digit]
	width := 3 * scale
	height := 5 * scale
	offX := (16 - width) / 2
	offY := (16 - height) / 2

	for row := 0; row < 5; row++ {
		for col := 0; col < 3; col++ {
			if glyph[row]&(1<<(2-col)) == 0 {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(offX+col*scale+dx, offY+row*scale+dy, fg)
				}
			}
		}
	}
}
