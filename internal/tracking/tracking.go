// Package tracking issues the numeric tokens printed on orders for carrier lookup.
// Tokens are not unique by construction; the orders table enforces uniqueness.
package tracking

import (
	"math/rand/v2"
	"sync"
)

const DefaultLength = 16

type Generator interface {
	Next() string
}

type RandomGenerator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	length int
}

// NewRandomGenerator returns a generator seeded from the runtime's entropy source.
func NewRandomGenerator(length int) *RandomGenerator {
	return NewRandomGeneratorWithSource(length, rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func NewRandomGeneratorWithSource(length int, src rand.Source) *RandomGenerator {
	if length <= 0 {
		length = DefaultLength
	}

	return &RandomGenerator{rnd: rand.New(src), length: length}
}

// Next draws every position uniformly from 0-9.
func (g *RandomGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, g.length)
	for i := range buf {
		buf[i] = byte('0' + g.rnd.IntN(10))
	}

	return string(buf)
}
