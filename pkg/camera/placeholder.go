package camera

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
)

// Placeholder serves a single pre-rendered frame when no webcam is
// available: a light gray field with a dark center band, unmistakably
// not a real picture.
type Placeholder struct {
	frame []byte
}

// NewPlaceholder renders the placeholder frame once at cfg's
// resolution and quality.
func NewPlaceholder(cfg Config) *Placeholder {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	bg := color.RGBA{R: 245, G: 245, B: 245, A: 255}
	band := color.RGBA{R: 100, G: 116, B: 139, A: 255}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	// Center band where the original overlay text sat.
	top, bottom := cfg.Height*2/5, cfg.Height*3/5
	for y := top; y < bottom; y++ {
		for x := cfg.Width / 10; x < cfg.Width*9/10; x++ {
			img.SetRGBA(x, y, band)
		}
	}

	var buf bytes.Buffer
	quality := cfg.Quality
	if quality < 1 || quality > 100 {
		quality = 85
	}
	// Encode errors are impossible for an in-memory RGBA image.
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})

	return &Placeholder{frame: buf.Bytes()}
}

// Frame returns the pre-rendered JPEG.
func (p *Placeholder) Frame() ([]byte, error) {
	return p.frame, nil
}

// Close is a no-op; there is no device to release.
func (p *Placeholder) Close() error {
	return nil
}
