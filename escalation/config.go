package escalation

import (
	"time"

	"encore.dev/config"
)

type TemporalConfig struct {
	HostPort  config.String
	Namespace config.String
	TaskQueue config.String
}

type Config struct {
	// FailureWindow is how far back dead-letter delivery failures count, in minutes.
	FailureWindow config.Int
	Temporal      TemporalConfig
}

var cfg = config.Load[*Config]()

func failureWindow() time.Duration {
	return time.Duration(cfg.FailureWindow()) * time.Minute
}
