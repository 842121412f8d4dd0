package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Mock {
		t.Error("Mock should default to true")
	}
	if cfg.Mission.NumRows != 3 {
		t.Errorf("NumRows: got %d, want 3", cfg.Mission.NumRows)
	}
	if cfg.Mission.RowTimeMS != 1500 {
		t.Errorf("RowTimeMS: got %d, want 1500", cfg.Mission.RowTimeMS)
	}
	if !cfg.Mission.CaptureEachRow {
		t.Error("CaptureEachRow should default to true")
	}
	if cfg.Photos.Dir != "photos" {
		t.Errorf("Photos.Dir: got %q, want %q", cfg.Photos.Dir, "photos")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MOCK", "0")
	t.Setenv("NUM_ROWS", "7")
	t.Setenv("ROBONECT_BASE", "http://10.0.0.2/xml")
	t.Setenv("CAPTURE_EACH_ROW", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Mock {
		t.Error("MOCK=0 should disable mock")
	}
	if cfg.Mission.NumRows != 7 {
		t.Errorf("NumRows: got %d, want 7", cfg.Mission.NumRows)
	}
	if cfg.Robonect.BaseURL != "http://10.0.0.2/xml" {
		t.Errorf("BaseURL: got %q", cfg.Robonect.BaseURL)
	}
	if cfg.Mission.CaptureEachRow {
		t.Error("CAPTURE_EACH_ROW=false should disable per-row capture")
	}
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Setenv("NUM_ROWS", "many")

	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric NUM_ROWS")
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("MOCK", "maybe")

	if _, err := Load(""); err == nil {
		t.Error("expected error for invalid MOCK value")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rover.yml")
	body := []byte("port: \"8080\"\nmission:\n  num_rows: 5\n  turn_power: 80\nschedule:\n  cron: \"0 7 * * *\"\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want 8080", cfg.Port)
	}
	if cfg.Mission.NumRows != 5 {
		t.Errorf("NumRows: got %d, want 5", cfg.Mission.NumRows)
	}
	if cfg.Mission.TurnPower != 80 {
		t.Errorf("TurnPower: got %d, want 80", cfg.Mission.TurnPower)
	}
	if cfg.Schedule.Cron != "0 7 * * *" {
		t.Errorf("Schedule.Cron: got %q", cfg.Schedule.Cron)
	}
	// Values absent from the file keep their defaults
	if cfg.Mission.RowTimeMS != 1500 {
		t.Errorf("RowTimeMS: got %d, want default 1500", cfg.Mission.RowTimeMS)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rover.yml")
	if err := os.WriteFile(path, []byte("mission:\n  num_rows: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NUM_ROWS", "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mission.NumRows != 9 {
		t.Errorf("NumRows: got %d, want env override 9", cfg.Mission.NumRows)
	}
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Mission.NumRows != 3 {
		t.Errorf("NumRows: got %d, want default 3", cfg.Mission.NumRows)
	}
}
