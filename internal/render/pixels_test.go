package render

import (
	"image/color"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, G: 2, B: 3, A: 255}, {R: 9, G: 8, B: 7, A: 128}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 5}, palette)
	want := []byte{1, 2, 3, 255, 9, 8, 7, 128, 9, 8, 7, 128}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (out-of-range index uses the last colour)", i, buf[i], want[i])
		}
	}

	fillPaletteRGBA(buf, []uint8{0, 1, 5}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette should clear, byte %d = %d", i, b)
		}
	}
}

func TestTint(t *testing.T) {
	buf := []byte{0, 100, 200, 255}
	tint(buf, 0, color.RGBA{R: 200, G: 100, B: 0}, 0.5)
	if buf[0] != 100 || buf[1] != 100 || buf[2] != 100 || buf[3] != 255 {
		t.Fatalf("half tint = %v", buf)
	}
	tint(buf, 0, color.RGBA{R: 255}, 0)
	if buf[0] != 100 {
		t.Fatal("zero strength must not change the pixel")
	}
}
