package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestToWebP_Downscales(t *testing.T) {
	out, err := ToWebP(pngOf(t, 800, 400), Options{MaxSide: 200, Quality: 75})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Fatalf("expected 200x100, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 40, 60), Avatar)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 60 {
		t.Fatalf("expected 40x60, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	if _, err := ToWebP([]byte("not an image"), Avatar); err != ErrUnsupported {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
