// Package motion delivers motor commands to the drivetrain.
//
// Senders are synchronous: Send dispatches the command and then holds
// the caller for the command's full duration, because the drive
// controller executes a command for exactly the window it was given
// and overlapping commands trample each other.
package motion

import "github.com/gni-robotics/fieldrover/pkg/drive"

// Sink accepts motor commands. Implementations report transport
// failures through the returned error; they never retry.
type Sink interface {
	Send(cmd drive.MotorCommand) error
}

// Ensure both transports satisfy Sink.
var (
	_ Sink = (*Robonect)(nil)
	_ Sink = (*Mock)(nil)
)
