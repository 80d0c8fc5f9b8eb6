package escalation

import (
	"encore.dev/metrics"
)

// deadLetterDepth is the number of undrained dead letters at the last alarm evaluation.
var deadLetterDepth = metrics.NewGauge[float64]("dead_letter_depth", metrics.GaugeConfig{})
