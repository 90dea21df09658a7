package usecase

import (
	"math/rand"
	"time"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

const (
	defaultTestDelay = 1000 * time.Millisecond

	minSettlementDelayMs = 5000
	maxSettlementDelayMs = 10000

	upiSuccessRate  = 0.90
	cardSuccessRate = 0.95
)

// SimulationConfig controls how settlement outcomes are decided.
// In test mode the delay and outcome are fixed; otherwise both are drawn at random.
type SimulationConfig struct {
	TestMode        bool
	ProcessingDelay time.Duration
	PaymentSuccess  bool
}

// RandomSource yields uniform values in [0, 1)
type RandomSource interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// DefaultRandomSource uses the auto-seeded math/rand/v2 generator
func DefaultRandomSource() RandomSource {
	return globalRandom{}
}

// Settlement is the decision for one payment attempt
type Settlement struct {
	Delay   time.Duration
	Success bool
}

// SettlementSimulator decides delay and outcome for payment attempts
type SettlementSimulator struct {
	config SimulationConfig
	random RandomSource
}

// NewSettlementSimulator creates a simulator. A nil random source falls back to DefaultRandomSource.
func NewSettlementSimulator(config SimulationConfig, random RandomSource) *SettlementSimulator {
	if random == nil {
		random = DefaultRandomSource()
	}
	return &SettlementSimulator{
		config: config,
		random: random,
	}
}

// Decide returns the settlement delay and outcome for a payment made with method
func (s *SettlementSimulator) Decide(method model.PaymentMethod) Settlement {
	if s.config.TestMode {
		delay := s.config.ProcessingDelay
		if delay <= 0 {
			delay = defaultTestDelay
		}
		return Settlement{Delay: delay, Success: s.config.PaymentSuccess}
	}

	span := float64(maxSettlementDelayMs - minSettlementDelayMs + 1)
	delayMs := minSettlementDelayMs + int64(s.random.Float64()*span)

	threshold := cardSuccessRate
	if method == model.PaymentMethodUPI {
		threshold = upiSuccessRate
	}

	return Settlement{
		Delay:   time.Duration(delayMs) * time.Millisecond,
		Success: s.random.Float64() < threshold,
	}
}
