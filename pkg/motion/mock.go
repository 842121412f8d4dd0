package motion

import (
	"time"

	"github.com/gni-robotics/fieldrover/internal/log"
	"github.com/gni-robotics/fieldrover/pkg/drive"
)

// Mock is the laptop-safety sink: it logs each command and sleeps for
// the command's duration so mission timing behaves exactly as it would
// on the robot, without anything moving.
type Mock struct {
	// SleepScale shrinks the hold windows (0.1 = ten times faster).
	// Zero means full duration.
	SleepScale float64
}

// NewMock creates a mock sink with real-time hold windows.
func NewMock() *Mock {
	return &Mock{}
}

// Send logs the command and blocks for its (scaled) duration.
func (m *Mock) Send(cmd drive.MotorCommand) error {
	log.Info("mock motor command",
		"left", cmd.Left, "right", cmd.Right, "duration", cmd.Duration)

	d := cmd.Duration
	if m.SleepScale > 0 {
		d = time.Duration(float64(d) * m.SleepScale)
	}
	time.Sleep(d)
	return nil
}
