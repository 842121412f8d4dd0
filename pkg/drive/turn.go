package drive

import (
	"math"
	"time"
)

// innerArcFloor keeps the inner arc length positive. When the requested
// radius is tighter than half the wheel base the true inner arc is
// negative (the inner wheel would have to reverse); this floor clamps
// such turns to a near-zero inner wheel instead of modeling the
// reversal, so commanded power never goes negative.
const innerArcFloor = 1e-6

// TurnRequest describes an arc turn: sweep AngleDeg degrees along a
// circle of RadiusCM (measured to the chassis center line) with the
// outer wheel at Power percent.
type TurnRequest struct {
	AngleDeg  float64
	RadiusCM  float64
	Power     int
	Direction Direction
	Duration  time.Duration
}

// PlanTurn computes the differential wheel powers for an arc turn.
//
// Both wheels travel concentric arcs; scaling the inner wheel's power
// by the ratio of the arc lengths makes them complete the sweep
// together. The outer wheel always receives Power, the inner wheel the
// scaled-down value, never below zero. For a right turn the left wheel
// is the outer one; a left turn mirrors the pair.
func PlanTurn(req TurnRequest) MotorCommand {
	angleRad := req.AngleDeg * math.Pi / 180

	arcOuter := angleRad * (req.RadiusCM + WheelBaseCM/2)
	arcInner := math.Max(innerArcFloor, angleRad*(req.RadiusCM-WheelBaseCM/2))

	inner := int(math.Round(float64(req.Power) * (arcInner / arcOuter)))
	if inner < 0 {
		inner = 0
	}

	cmd := MotorCommand{Duration: req.Duration}
	if req.Direction == Right {
		cmd.Left, cmd.Right = req.Power, inner
	} else {
		cmd.Left, cmd.Right = inner, req.Power
	}
	return cmd
}
