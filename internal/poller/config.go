package poller

import (
	"fmt"
	"time"

	"github.com/Honkonx/wine-mice/wire"
)

// Config describes the provider endpoint and the poll loop timing.
type Config struct {
	Host             string        `help:"Provider host" default:"127.0.0.1" env:"MICEWINE_JOYSTICK_SERVER_IP"`
	Port             int           `help:"Provider UDP port" default:"7941" env:"MICEWINE_JOYSTICK_PORT"`
	ReceiveTimeout   time.Duration `help:"Receive timeout per poll cycle" default:"2s" env:"MICEWINE_JOYSTICK_RECEIVE_TIMEOUT"`
	TimeoutThreshold int           `help:"Consecutive timeouts tolerated before every controller is marked disconnected" default:"60"`
	ResetPause       time.Duration `help:"Pause after marking every controller disconnected" default:"250ms"`
	Interval         time.Duration `help:"Minimum time between poll cycles (0 = back to back)" default:"0s"`
}

// DefaultConfig returns the values used when no flags or config files are given.
func DefaultConfig() Config {
	return Config{
		Host:             "127.0.0.1",
		Port:             wire.Port,
		ReceiveTimeout:   2 * time.Second,
		TimeoutThreshold: 60,
		ResetPause:       250 * time.Millisecond,
	}
}

// Validate checks the endpoint and timing values.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid provider port %d", c.Port)
	}
	if c.ReceiveTimeout <= 0 {
		return fmt.Errorf("receive timeout must be positive, got %s", c.ReceiveTimeout)
	}
	if c.TimeoutThreshold < 0 {
		return fmt.Errorf("timeout threshold must not be negative, got %d", c.TimeoutThreshold)
	}
	if c.Interval < 0 || c.ResetPause < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
