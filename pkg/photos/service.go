package photos

import (
	"fmt"

	"github.com/gni-robotics/fieldrover/internal/log"
)

// FrameSource is the slice of the camera this package needs.
type FrameSource interface {
	Frame() ([]byte, error)
}

// Service captures frames into the store. It is what the mission
// runner and the web handlers call; they never touch the camera or
// the directory directly.
type Service struct {
	cam   FrameSource
	store *Store
	sync  *DriveSync
}

// NewService wires a frame source to a store. sync may be nil, in
// which case captures stay local.
func NewService(cam FrameSource, store *Store, sync *DriveSync) *Service {
	return &Service{cam: cam, store: store, sync: sync}
}

// Capture grabs one frame, archives it under the given tag and
// returns the photo name.
func (s *Service) Capture(tag string) (string, error) {
	frame, err := s.cam.Frame()
	if err != nil {
		return "", fmt.Errorf("camera: %w", err)
	}

	photo, err := s.store.SaveJPEG(tag, frame)
	if err != nil {
		return "", err
	}

	log.Info("captured photo", "name", photo.ID, "tag", tag, "bytes", photo.Bytes)

	if s.sync != nil {
		s.sync.Enqueue(photo)
	}
	return photo.ID, nil
}
