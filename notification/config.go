package notification

import (
	"time"

	"encore.dev/config"
)

type Config struct {
	// HandlerTimeout is the wall-clock budget of one delivery, in seconds.
	HandlerTimeout config.Int
	// InProgressTTL bounds how long a crashed delivery can block its order, in seconds.
	InProgressTTL config.Int
	// CompletedTTL is how long duplicates are recognized, in minutes.
	CompletedTTL config.Int
	// MaxDeliveryAttempts is the retry budget before an event is dead-lettered.
	MaxDeliveryAttempts config.Int
}

var cfg = config.Load[*Config]()

func seconds(v config.Int) time.Duration { return time.Duration(v()) * time.Second }
func minutes(v config.Int) time.Duration { return time.Duration(v()) * time.Minute }
