// Package drive converts movement intents into differential wheel
// commands for the rover drivetrain. All functions are pure; sending
// the commands somewhere is the motion package's job.
package drive

import (
	"fmt"
	"time"
)

// WheelBaseCM is the distance between the left and right drive wheels.
// Fixed by the chassis.
const WheelBaseCM = 35.0

// ForwardPower is the nominal straight-line power for mission rows.
const ForwardPower = 70

// StopDuration is how long a stop command holds zero power.
const StopDuration = 300 * time.Millisecond

// MotorCommand is one directive to the drivetrain: signed power
// percentages per wheel, held for Duration.
type MotorCommand struct {
	Left     int
	Right    int
	Duration time.Duration
}

// Direction selects which way a turn curves.
type Direction string

const (
	Right Direction = "right"
	Left  Direction = "left"
)

// Opposite returns the mirrored direction.
func (d Direction) Opposite() Direction {
	if d == Right {
		return Left
	}
	return Right
}

// Forward drives both wheels at the same power.
func Forward(power int, d time.Duration) MotorCommand {
	return MotorCommand{Left: power, Right: power, Duration: d}
}

// Stop cuts power to both wheels for a short fixed window, long enough
// for the controller to latch the zero.
func Stop() MotorCommand {
	return MotorCommand{Left: 0, Right: 0, Duration: StopDuration}
}

// Nudge maps a manual-drive command name to a motor command.
// Power applies to both wheels; left/right spin the wheels against
// each other for an in-place rotation.
func Nudge(cmd string, power int, d time.Duration) (MotorCommand, error) {
	switch cmd {
	case "fwd":
		return MotorCommand{Left: power, Right: power, Duration: d}, nil
	case "back":
		return MotorCommand{Left: -power, Right: -power, Duration: d}, nil
	case "left":
		return MotorCommand{Left: -power, Right: power, Duration: d}, nil
	case "right":
		return MotorCommand{Left: power, Right: -power, Duration: d}, nil
	case "stop":
		return Stop(), nil
	default:
		return MotorCommand{}, fmt.Errorf("unknown drive command %q", cmd)
	}
}
