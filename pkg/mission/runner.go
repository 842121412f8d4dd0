// Package mission drives boustrophedon coverage missions: straight
// rows joined by alternating 180 degree turns, with photo captures
// along the way.
//
// One mission runs at a time. Start claims the single-flight slot and
// returns immediately; the mission itself runs on its own goroutine
// and reports progress through a published Status record that Observe
// snapshots without blocking.
package mission

import (
	"fmt"
	"sync"
	"time"

	"github.com/gni-robotics/fieldrover/internal/log"
	"github.com/gni-robotics/fieldrover/pkg/drive"
	"github.com/gni-robotics/fieldrover/pkg/motion"
)

// Capturer archives a tagged photo. Captures are best effort: the
// runner logs failures and keeps driving.
type Capturer interface {
	Capture(tag string) (string, error)
}

// settleDelay lets residual motion die out between segments so row
// photos come out sharp.
const settleDelay = 500 * time.Millisecond

// Runner executes missions against a motor sink and a capturer.
type Runner struct {
	sink motion.Sink
	cam  Capturer

	// OnStatus, when set, receives every published status on the
	// mission goroutine. Assign it during wiring, before Start.
	OnStatus func(Status)

	settle time.Duration

	mu     sync.Mutex
	status Status
}

// NewRunner returns an idle runner. cam may be nil when no camera is
// wired; captures then become no-ops.
func NewRunner(sink motion.Sink, cam Capturer) *Runner {
	return &Runner{
		sink:   sink,
		cam:    cam,
		settle: settleDelay,
		status: Status{Message: "idle"},
	}
}

// Start launches a mission and returns immediately. It returns false
// when a mission is already active: no queueing, no preemption, and
// the in-progress status stays untouched. The slot frees only when
// the mission goroutine finishes.
func (r *Runner) Start(p Params) bool {
	begin := Status{Running: true, Message: "starting"}

	r.mu.Lock()
	if r.status.Running {
		r.mu.Unlock()
		return false
	}
	r.status = begin
	r.mu.Unlock()

	r.notify(begin)
	go r.run(p)
	return true
}

// Observe returns the latest status snapshot. It never blocks on an
// in-progress mission.
func (r *Runner) Observe() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Runner) run(p Params) {
	defer r.finish()

	log.Info("mission start",
		"rows", p.NumRows, "row_ms", p.RowTimeMS,
		"turn_power", p.TurnPower, "turn_radius_cm", p.TurnRadiusCM,
		"capture_each", p.CaptureEachRow)

	r.capture("start")

	direction := drive.Right
	for i := 0; i < p.NumRows; i++ {
		r.publish(Status{
			Running:  true,
			Message:  fmt.Sprintf("Row %d/%d: forward", i+1, p.NumRows),
			RowsDone: i,
		})
		r.send(drive.Forward(drive.ForwardPower, time.Duration(p.RowTimeMS)*time.Millisecond))
		time.Sleep(r.settle)

		if p.CaptureEachRow {
			r.capture(fmt.Sprintf("row%d", i+1))
		}

		if i < p.NumRows-1 {
			r.publish(Status{
				Running:  true,
				Message:  "Turn " + string(direction),
				RowsDone: i,
			})
			r.send(drive.PlanTurn(drive.TurnRequest{
				AngleDeg:  180,
				RadiusCM:  float64(p.TurnRadiusCM),
				Power:     p.TurnPower,
				Direction: direction,
				Duration:  time.Duration(p.TurnTimeMS) * time.Millisecond,
			}))
			time.Sleep(r.settle)
			direction = direction.Opposite()
		}
	}

	r.send(drive.Stop())
	r.capture("end")

	r.publish(Status{Running: false, Message: "complete", RowsDone: p.NumRows})
	log.Info("mission complete", "rows", p.NumRows)
}

// finish releases the single-flight slot no matter how the mission
// goroutine exits. A panic anywhere in the sequence lands here and
// becomes the terminal status message.
func (r *Runner) finish() {
	if v := recover(); v != nil {
		log.Error("mission aborted", "cause", v)

		r.mu.Lock()
		r.status = Status{
			Running:  false,
			Message:  fmt.Sprintf("error: %v", v),
			RowsDone: r.status.RowsDone,
		}
		failed := r.status
		r.mu.Unlock()

		r.notify(failed)
		return
	}

	r.mu.Lock()
	r.status.Running = false
	r.mu.Unlock()
}

func (r *Runner) publish(s Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
	r.notify(s)
}

func (r *Runner) notify(s Status) {
	if r.OnStatus != nil {
		r.OnStatus(s)
	}
}

// send pushes one command at the sink. Transport failures do not stop
// the mission; they are logged and the sequence moves on.
func (r *Runner) send(cmd drive.MotorCommand) {
	if err := r.sink.Send(cmd); err != nil {
		log.Warn("motor command failed",
			"left", cmd.Left, "right", cmd.Right, "error", err)
	}
}

func (r *Runner) capture(tag string) {
	if r.cam == nil {
		return
	}
	if _, err := r.cam.Capture(tag); err != nil {
		log.Warn("capture failed", "tag", tag, "error", err)
	}
}
