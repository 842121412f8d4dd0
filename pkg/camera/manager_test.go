package camera

import (
	"encoding/json"
	"testing"
)

func testManager() *Manager {
	cfg := DefaultConfig()
	return &Manager{cfg: cfg, src: NewPlaceholder(cfg)}
}

func TestManager_FrameDelegates(t *testing.T) {
	m := testManager()

	frame, err := m.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(frame) == 0 {
		t.Fatal("empty frame")
	}
}

func TestManager_ApplyRejectsInvalid(t *testing.T) {
	m := testManager()

	bad := DefaultConfig()
	bad.Quality = 0
	if err := m.Apply(bad); err == nil {
		t.Fatal("invalid config should be rejected")
	}
	if got := m.Config().Quality; got != 85 {
		t.Errorf("config changed after rejected apply: quality %d", got)
	}
}

func TestManager_UpdateUnknownPreset(t *testing.T) {
	m := testManager()

	if err := m.Update(map[string]any{"preset": "nightvision"}); err == nil {
		t.Fatal("unknown preset should be rejected")
	}
	if got := m.Config(); got != DefaultConfig() {
		t.Errorf("config changed after rejected update: %+v", got)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range PresetNames() {
		if GetPreset(name) == nil {
			t.Errorf("preset %q missing from table", name)
		}
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset should return nil")
	}

	p := GetPreset(Preset720p)
	if p.Width != 1280 || p.Height != 720 {
		t.Errorf("720p preset is %dx%d", p.Width, p.Height)
	}
}

func TestToInt(t *testing.T) {
	cases := []struct {
		in   any
		want int
		ok   bool
	}{
		{42, 42, true},
		{int64(7), 7, true},
		{float64(19), 19, true},
		{json.Number("31"), 31, true},
		{"60", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := toInt(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("toInt(%v) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
