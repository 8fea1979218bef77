package animation

import "time"

// DefaultConfig returns a 30fps frame loop.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 33 * time.Millisecond,
	}
}
