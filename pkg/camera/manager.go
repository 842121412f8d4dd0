package camera

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Manager is a FrameSource whose camera can be reconfigured while the
// rover runs. Reopening shares a lock with frame grabs, so a switch
// never races an in-flight read.
type Manager struct {
	mu  sync.RWMutex
	cfg Config
	src FrameSource
}

// NewManager opens a source for cfg and wraps it.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, src: Open(cfg)}
}

// Frame grabs one JPEG from the current source.
func (m *Manager) Frame() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.src.Frame()
}

// Close releases the current source.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.src.Close()
}

// Config returns the active configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Apply validates cfg and reopens the camera with it. The usual Open
// fallback applies: if no webcam opens at the new settings, frames
// come from the placeholder.
func (m *Manager) Apply(cfg Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid camera config: %v", errs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.src.Close()
	m.src = Open(cfg)
	m.cfg = cfg
	return nil
}

// Update applies a partial change: a "preset" name, individual fields,
// or a preset with field overrides on top. Unknown keys are ignored.
func (m *Manager) Update(params map[string]any) error {
	cfg := m.Config()

	if name, ok := params["preset"].(string); ok {
		p := GetPreset(name)
		if p == nil {
			return fmt.Errorf("unknown preset %q", name)
		}
		cfg = *p
		delete(params, "preset")
	}

	for key, value := range params {
		switch key {
		case "index":
			if v, ok := toInt(value); ok {
				cfg.Index = v
			}
		case "width":
			if v, ok := toInt(value); ok {
				cfg.Width = v
			}
		case "height":
			if v, ok := toInt(value); ok {
				cfg.Height = v
			}
		case "quality":
			if v, ok := toInt(value); ok {
				cfg.Quality = v
			}
		}
	}

	return m.Apply(cfg)
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}
