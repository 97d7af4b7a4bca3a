package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// TimestampIDGenerator derives ids from epoch milliseconds plus a random
// offset in [0,1000). Ids are strictly increasing within the process.
type TimestampIDGenerator struct {
	mu     sync.Mutex
	last   int64
	now    func() time.Time
	offset func() int64
}

func NewTimestampIDGenerator() *TimestampIDGenerator {
	return &TimestampIDGenerator{
		now:    time.Now,
		offset: func() int64 { return rand.Int64N(1000) },
	}
}

func (g *TimestampIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli() + g.offset()

	if id <= g.last {
		id = g.last + 1
	}

	g.last = id

	return id
}
