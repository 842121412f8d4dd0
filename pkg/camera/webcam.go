package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Webcam reads frames from a V4L2 device through OpenCV.
//
// VideoCapture is not safe for concurrent use, and the stream, the
// websocket feed and mission captures all pull frames at once, so every
// read goes through the mutex.
type Webcam struct {
	mu      sync.Mutex
	cap     *gocv.VideoCapture
	mat     gocv.Mat
	quality int
}

// OpenWebcam opens the device at cfg.Index and applies the requested
// capture mode.
func OpenWebcam(cfg Config) (*Webcam, error) {
	cap, err := gocv.VideoCaptureDevice(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("opening camera %d: %w", cfg.Index, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("camera %d did not open", cfg.Index)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))

	return &Webcam{
		cap:     cap,
		mat:     gocv.NewMat(),
		quality: cfg.Quality,
	}, nil
}

// Frame grabs one frame and returns it JPEG-encoded.
func (w *Webcam) Frame() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.cap.Read(&w.mat) || w.mat.Empty() {
		return nil, fmt.Errorf("camera read failed")
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, w.mat,
		[]int{gocv.IMWriteJpegQuality, w.quality})
	if err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	defer buf.Close()

	// Copy out: the buffer is freed on Close.
	frame := make([]byte, buf.Len())
	copy(frame, buf.GetBytes())
	return frame, nil
}

// Close releases the device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.mat.Close()
	return w.cap.Close()
}
