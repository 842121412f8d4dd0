package motion

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gni-robotics/fieldrover/pkg/drive"
)

func TestRobonect_Send(t *testing.T) {
	var mu sync.Mutex
	var got []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		q := r.URL.Query()
		got = []string{
			q.Get("user"), q.Get("pass"), q.Get("cmd"),
			q.Get("left"), q.Get("right"), q.Get("timeout"),
		}
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewRobonect(srv.URL, "rover", "secret")
	err := sink.Send(drive.MotorCommand{Left: 70, Right: -30, Duration: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"rover", "secret", "direct", "70", "-30", "10"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("query[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRobonect_SendBlocksForDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewRobonect(srv.URL, "u", "p")

	start := time.Now()
	if err := sink.Send(drive.MotorCommand{Left: 10, Right: 10, Duration: 50 * time.Millisecond}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Send returned after %v, want at least the 50ms hold window", elapsed)
	}
}

func TestRobonect_SendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink := NewRobonect(srv.URL, "u", "wrong")
	if err := sink.Send(drive.Stop()); err == nil {
		t.Error("expected error for 401 response")
	}
}

func TestRobonect_SendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	sink := NewRobonect(srv.URL, "u", "p")
	if err := sink.Send(drive.Stop()); err == nil {
		t.Error("expected error for unreachable controller")
	}
}

func TestMock_SendScaledSleep(t *testing.T) {
	mock := &Mock{SleepScale: 0.01}

	start := time.Now()
	if err := mock.Send(drive.MotorCommand{Left: 70, Right: 70, Duration: time.Second}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("scaled sleep took %v, want well under the full 1s", elapsed)
	}
}
