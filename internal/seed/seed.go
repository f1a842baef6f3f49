// Package seed owns the pseudorandom state the row generator draws from.
// State is explicit: callers hold a Controller instead of reseeding globals.
package seed

import (
	"sync"

	"golang.org/x/exp/rand"
)

const DefaultSeed int64 = 42

type Controller struct {
	mu   sync.Mutex
	seed int64
	rng  *rand.Rand
}

func New(seed int64) *Controller {
	c := &Controller{}
	c.Reset(seed)
	return c
}

// Reset re-establishes a known state. Draws already taken from a previously
// returned Rand are unaffected; the next Rand call reflects the new seed.
func (c *Controller) Reset(seed int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed = seed
	c.rng = NewRand(seed)
}

func (c *Controller) Seed() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seed
}

func (c *Controller) Rand() *rand.Rand {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng
}

// NewRand returns a fresh source for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(uint64(seed)))
}
