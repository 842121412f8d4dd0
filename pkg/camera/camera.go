// Package camera produces JPEG frames for captures and live streaming.
//
// The rover prefers a real webcam; when none opens it falls back to a
// generated placeholder frame so the photo pipeline and stream stay
// functional on a bench setup.
package camera

import "github.com/gni-robotics/fieldrover/internal/log"

// FrameSource yields one JPEG-encoded frame per call.
type FrameSource interface {
	Frame() ([]byte, error)
	Close() error
}

// Open returns a frame source for cfg: the webcam when it opens, the
// placeholder otherwise.
func Open(cfg Config) FrameSource {
	cam, err := OpenWebcam(cfg)
	if err != nil {
		log.Warn("no webcam, using placeholder frames", "index", cfg.Index, "err", err)
		return NewPlaceholder(cfg)
	}
	log.Info("webcam opened", "index", cfg.Index, "width", cfg.Width, "height", cfg.Height)
	return cam
}
