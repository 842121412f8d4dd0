// Package config loads rover configuration.
//
// Values come from three layers, later layers winning: compiled-in
// defaults, an optional YAML file, then environment variables. The
// environment variables keep their historical names so existing field
// deployments do not need changes.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the rover service.
type Config struct {
	// Port the web server listens on.
	Port string `yaml:"port"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Mock routes motor commands to the mock sink instead of the
	// Robonect controller. Default on, so a laptop run never moves
	// real wheels.
	Mock bool `yaml:"mock"`

	Robonect RobonectConfig `yaml:"robonect"`
	Camera   CameraConfig   `yaml:"camera"`
	Photos   PhotosConfig   `yaml:"photos"`
	Mission  MissionConfig  `yaml:"mission"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Drive    DriveConfig    `yaml:"drive"`
}

// RobonectConfig addresses the Robonect drive controller.
type RobonectConfig struct {
	BaseURL  string `yaml:"base_url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// CameraConfig selects and tunes the webcam.
type CameraConfig struct {
	Index   int `yaml:"index"`
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Quality int `yaml:"quality"`
}

// PhotosConfig locates the capture archive.
type PhotosConfig struct {
	Dir string `yaml:"dir"`
}

// MissionConfig holds the default mission parameters. Individual
// starts may override any of them.
type MissionConfig struct {
	RowTimeMS      int  `yaml:"row_time_ms"`
	NumRows        int  `yaml:"num_rows"`
	TurnPower      int  `yaml:"turn_power"`
	TurnRadiusCM   int  `yaml:"turn_radius_cm"`
	TurnTimeMS     int  `yaml:"turn_time_ms"`
	CaptureEachRow bool `yaml:"capture_each_row"`
}

// ScheduleConfig enables unattended missions on a cron expression.
// Empty cron disables scheduling.
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// DriveConfig enables Google Drive upload of captured photos.
// Sync stays off unless ClientID and ClientSecret are both set.
type DriveConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	FolderID     string `yaml:"folder_id"`
	TokenPath    string `yaml:"token_path"`
}

// Default returns the compiled-in configuration. Mission defaults are
// the field-tested values for the standard survey plot.
func Default() Config {
	return Config{
		Port:     "5000",
		LogLevel: "info",
		Mock:     true,
		Robonect: RobonectConfig{
			BaseURL:  "http://192.168.4.14/xml",
			User:     "GNI_Robonect",
			Password: "GNI",
		},
		Camera: CameraConfig{
			Index:   0,
			Width:   640,
			Height:  480,
			Quality: 85,
		},
		Photos: PhotosConfig{
			Dir: "photos",
		},
		Mission: MissionConfig{
			RowTimeMS:      1500,
			NumRows:        3,
			TurnPower:      60,
			TurnRadiusCM:   19,
			TurnTimeMS:     2500,
			CaptureEachRow: true,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty or the file does not exist), and the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func (c *Config) applyEnv() error {
	envStr(&c.Port, "PORT")
	envStr(&c.LogLevel, "LOG_LEVEL")
	envStr(&c.Robonect.BaseURL, "ROBONECT_BASE")
	envStr(&c.Robonect.User, "ROBONECT_USER")
	envStr(&c.Robonect.Password, "ROBONECT_PASS")
	envStr(&c.Photos.Dir, "PHOTO_DIR")
	envStr(&c.Schedule.Cron, "MISSION_SCHEDULE")
	envStr(&c.Drive.ClientID, "GOOGLE_CLIENT_ID")
	envStr(&c.Drive.ClientSecret, "GOOGLE_CLIENT_SECRET")
	envStr(&c.Drive.FolderID, "DRIVE_FOLDER_ID")
	envStr(&c.Drive.TokenPath, "GOOGLE_TOKEN_PATH")

	if err := envBool(&c.Mock, "MOCK"); err != nil {
		return err
	}
	if err := envBool(&c.Mission.CaptureEachRow, "CAPTURE_EACH_ROW"); err != nil {
		return err
	}

	ints := []struct {
		dst *int
		key string
	}{
		{&c.Camera.Index, "CAMERA_INDEX"},
		{&c.Mission.RowTimeMS, "ROW_TIME_MS"},
		{&c.Mission.NumRows, "NUM_ROWS"},
		{&c.Mission.TurnPower, "TURN_POWER"},
		{&c.Mission.TurnRadiusCM, "TURN_RADIUS_CM"},
		{&c.Mission.TurnTimeMS, "TURN_TIME_MS"},
	}
	for _, e := range ints {
		if err := envInt(e.dst, e.key); err != nil {
			return err
		}
	}
	return nil
}

func envStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

// envBool accepts the historical truthy spellings ("1", "true", "on").
func envBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	switch v {
	case "1", "true", "True", "on":
		*dst = true
	case "0", "false", "False", "off":
		*dst = false
	default:
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	return nil
}
