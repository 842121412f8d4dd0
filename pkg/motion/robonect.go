package motion

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gni-robotics/fieldrover/internal/httpc"
	"github.com/gni-robotics/fieldrover/internal/log"
	"github.com/gni-robotics/fieldrover/pkg/drive"
)

// Robonect drives the wheels through the Robonect controller's XML
// endpoint. Each command is one GET with the wheel powers and the hold
// window; the controller applies the powers for `timeout` milliseconds
// and then coasts.
type Robonect struct {
	BaseURL  string
	User     string
	Password string

	client *http.Client
}

// NewRobonect creates a sink talking to the controller at baseURL
// (e.g. "http://192.168.4.14/xml").
func NewRobonect(baseURL, user, password string) *Robonect {
	return &Robonect{
		BaseURL:  baseURL,
		User:     user,
		Password: password,
		client:   httpc.Motor,
	}
}

// Send issues one direct-drive command and blocks for its duration.
func (r *Robonect) Send(cmd drive.MotorCommand) error {
	q := url.Values{}
	q.Set("user", r.User)
	q.Set("pass", r.Password)
	q.Set("cmd", "direct")
	q.Set("left", strconv.Itoa(cmd.Left))
	q.Set("right", strconv.Itoa(cmd.Right))
	q.Set("timeout", strconv.Itoa(int(cmd.Duration.Milliseconds())))

	resp, err := r.client.Get(r.BaseURL + "?" + q.Encode())
	if err != nil {
		return fmt.Errorf("robonect direct command failed: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("robonect returned %s", resp.Status)
	}

	log.Debug("motor command sent",
		"left", cmd.Left, "right", cmd.Right, "duration", cmd.Duration)
	time.Sleep(cmd.Duration)
	return nil
}
