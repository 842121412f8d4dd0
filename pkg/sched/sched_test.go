package sched

import (
	"testing"
	"time"
)

func TestStart_ExpressionValidation(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0 6 * * *", false},
		{"*/5 * * * *", false},
		{"30 18 * * 1-5", false},
		{"61 * * * *", true},
		{"not a schedule", true},
		{"", true},
		{"* * * *", true},
	}

	for _, tt := range tests {
		s, err := Start(tt.expr, func() bool { return true })
		if (err != nil) != tt.wantErr {
			t.Errorf("Start(%q): err = %v, wantErr %v", tt.expr, err, tt.wantErr)
		}
		if s != nil {
			s.Stop()
		}
	}
}

func TestScheduler_Next(t *testing.T) {
	s, err := Start("* * * * *", func() bool { return true })
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	next := s.Next()
	if next.IsZero() {
		t.Fatal("Next returned zero time")
	}
	if until := time.Until(next); until <= 0 || until > 61*time.Second {
		t.Errorf("next launch %v away, want within the coming minute", until)
	}
}

func TestLaunchJob_SkipsWhenBusy(t *testing.T) {
	var calls int

	busy := launchJob("* * * * *", func() bool {
		calls++
		return false
	})
	busy()
	busy()

	if calls != 2 {
		t.Errorf("launch attempts: got %d, want 2", calls)
	}

	free := launchJob("* * * * *", func() bool {
		calls++
		return true
	})
	free()

	if calls != 3 {
		t.Errorf("launch attempts: got %d, want 3", calls)
	}
}
