package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jperaza/bancodemo/internal/logger"
)

// ErrAccountNumberExhausted is returned when no unique account number could
// be generated within the retry budget. The key space is sparse enough that
// hitting this almost certainly means the store is misbehaving, not that the
// space is full.
var ErrAccountNumberExhausted = errors.New("could not generate a unique account number")

// accountNumberAttempts bounds the uniqueness retries.
const accountNumberAttempts = 10

// AccountNumberExister checks whether an account number is already taken.
type AccountNumberExister interface {
	Exists(ctx context.Context, number string) (bool, error)
}

// IntnSource yields uniformly distributed integers in [0, n).
// *math/rand.Rand satisfies it; tests inject a deterministic source.
type IntnSource interface {
	Intn(n int) int
}

// AccountNumberGenerator produces collision-checked external account numbers
// of the form NNN-NNNNNNN-NN.
type AccountNumberGenerator struct {
	store AccountNumberExister
	rnd   IntnSource
}

// NewAccountNumberGenerator creates a generator with an injected randomness source.
func NewAccountNumberGenerator(store AccountNumberExister, rnd IntnSource) *AccountNumberGenerator {
	return &AccountNumberGenerator{store: store, rnd: rnd}
}

// Generate returns an account number not present in the store.
func (g *AccountNumberGenerator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < accountNumberAttempts; i++ {
		number := fmt.Sprintf("%03d-%07d-%02d",
			g.rnd.Intn(1000), g.rnd.Intn(10000000), g.rnd.Intn(100))

		exists, err := g.store.Exists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}

		logger.Log.Warnw("account number collision", "number", number, "attempt", i+1)
	}
	return "", ErrAccountNumberExhausted
}
