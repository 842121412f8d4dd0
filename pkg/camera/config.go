package camera

// Config holds the webcam parameters.
type Config struct {
	// Index is the V4L2 device index.
	Index int `json:"index"`

	// Requested capture resolution. The driver may pick the nearest
	// mode it supports.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Quality is the JPEG encode quality, 1-100.
	Quality int `json:"quality"`
}

// DefaultConfig returns the bench-safe 640x480 configuration.
func DefaultConfig() Config {
	return Config{
		Index:   0,
		Width:   640,
		Height:  480,
		Quality: 85,
	}
}

// Validate checks the config values. Returns a list of problems, or
// nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Index < 0 {
		errors = append(errors, "index must not be negative")
	}
	if c.Width < 160 || c.Width > 4096 {
		errors = append(errors, "width must be between 160 and 4096")
	}
	if c.Height < 120 || c.Height > 2160 {
		errors = append(errors, "height must be between 120 and 2160")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}

	return errors
}
