package ponumber

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const (
	prefix = "EV"

	minSerial = 100000
	maxSerial = 999999

	DefaultMaxAttempts = 25
)

var (
	// ErrTaken is returned by a ReserveFunc when the candidate is already in use.
	ErrTaken = errors.New("po number already taken")
	// ErrExhausted means every attempt collided.
	ErrExhausted = errors.New("po number allocation attempts exhausted")
)

var formatPattern = regexp.MustCompile(`^EV-\d{4}-[1-9]\d{5}$`)

// Valid reports whether po has the EV-YYYY-NNNNNN shape.
func Valid(po string) bool {
	return formatPattern.MatchString(po)
}

// Generator draws PO number candidates.
type Generator struct {
	Now    func() time.Time
	Serial func() (int64, error)
}

func NewGenerator() *Generator {
	return &Generator{
		Now:    time.Now,
		Serial: randomSerial,
	}
}

func randomSerial() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxSerial-minSerial+1))
	if err != nil {
		return 0, err
	}

	return n.Int64() + minSerial, nil
}

// Next returns a candidate for the current UTC year.
func (g *Generator) Next() (string, error) {
	serial, err := g.Serial()
	if err != nil {
		return "", err
	}

	if serial < minSerial || serial > maxSerial {
		return "", fmt.Errorf("serial %d out of range", serial)
	}

	return fmt.Sprintf("%s-%04d-%06d", prefix, g.Now().UTC().Year(), serial), nil
}

// ReserveFunc claims po in storage, returning ErrTaken on a uniqueness conflict.
type ReserveFunc func(ctx context.Context, po string) error

// Allocator retries candidates against a storage-level uniqueness constraint.
type Allocator struct {
	generator   *Generator
	maxAttempts int
}

func NewAllocator(generator *Generator, maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Allocator{
		generator:   generator,
		maxAttempts: maxAttempts,
	}
}

// Allocate draws candidates until reserve accepts one. Errors other than
// ErrTaken abort the allocation.
func (a *Allocator) Allocate(ctx context.Context, reserve ReserveFunc) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		po, err := a.generator.Next()
		if err != nil {
			return "", err
		}

		err = reserve(ctx, po)
		if err == nil {
			return po, nil
		}

		if !errors.Is(err, ErrTaken) {
			return "", err
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrExhausted, a.maxAttempts)
}
