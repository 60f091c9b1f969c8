// Package imaging normalises uploaded pictures before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	ContentType = "image/webp"
	Extension   = ".webp"

	MaxUploadBytes = 5 << 20
)

var ErrUnsupported = errors.New("unsupported image format")

type Options struct {
	MaxSide int
	Quality float32
}

var (
	Avatar  = Options{MaxSide: 512, Quality: 80}
	Service = Options{MaxSide: 1280, Quality: 82}
)

// ToWebP decodes any supported image, shrinks it so its longer side fits
// MaxSide and re-encodes it as lossy WebP.
func ToWebP(raw []byte, opt Options) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnsupported
	}

	img := fit(src, opt.MaxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
