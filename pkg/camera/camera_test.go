package camera

import (
	"bytes"
	"image/jpeg"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config should validate, got %v", errs)
	}

	cfg.Quality = 0
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("quality 0 should fail validation")
	}

	cfg = DefaultConfig()
	cfg.Index = -1
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("negative index should fail validation")
	}

	cfg = DefaultConfig()
	cfg.Width = 10
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("tiny width should fail validation")
	}
}

func TestPlaceholder_FrameDecodes(t *testing.T) {
	p := NewPlaceholder(DefaultConfig())

	frame, err := p.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(frame) == 0 {
		t.Fatal("empty frame")
	}

	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("frame is not valid JPEG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 480 {
		t.Errorf("got %dx%d, want 640x480", bounds.Dx(), bounds.Dy())
	}
}

func TestPlaceholder_FrameStable(t *testing.T) {
	p := NewPlaceholder(DefaultConfig())

	a, _ := p.Frame()
	b, _ := p.Frame()
	if !bytes.Equal(a, b) {
		t.Error("placeholder frames should be identical")
	}
}
