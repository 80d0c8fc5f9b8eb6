package notification

import (
	"encore.dev/metrics"
)

// deadLetterDeliveryFailures counts dead-letter handoffs that failed.
var deadLetterDeliveryFailures = metrics.NewCounter[uint64]("dead_letter_delivery_failures", metrics.CounterConfig{})
