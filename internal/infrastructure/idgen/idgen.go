package idgen

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	OrderPrefix   = "order_"
	PaymentPrefix = "pay_"

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength = 16
)

// Generator creates prefixed opaque identifiers
type Generator interface {
	NewID(prefix string) (string, error)
}

// NanoIDGenerator draws identifier bodies from crypto/rand through go-nanoid
type NanoIDGenerator struct{}

// NewGenerator creates a new NanoIDGenerator
func NewGenerator() *NanoIDGenerator {
	return &NanoIDGenerator{}
}

// NewID returns prefix followed by 16 characters from [A-Za-z0-9].
// Example output with prefix "pay_": pay_Xk3d9QwLm2Pz8RtA
func (g *NanoIDGenerator) NewID(prefix string) (string, error) {
	body, err := gonanoid.Generate(alphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate identifier: %w", err)
	}
	return prefix + body, nil
}
