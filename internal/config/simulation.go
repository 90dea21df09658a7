package config

import "time"

// SimulationConfig controls settlement outcomes.
// PaymentSuccess is nil when unset, which counts as success.
type SimulationConfig struct {
	TestMode          bool  `yaml:"test_mode"`
	ProcessingDelayMs int   `yaml:"processing_delay_ms"`
	PaymentSuccess    *bool `yaml:"payment_success"`
}

// ProcessingDelay returns the fixed test-mode delay
func (c SimulationConfig) ProcessingDelay() time.Duration {
	return time.Duration(c.ProcessingDelayMs) * time.Millisecond
}

// Succeeds reports the fixed test-mode outcome
func (c SimulationConfig) Succeeds() bool {
	return c.PaymentSuccess == nil || *c.PaymentSuccess
}
