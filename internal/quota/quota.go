// Package quota limits how many random bytes are served per time window.
package quota

import (
	"sync"
	"time"

	"github.com/acolita/chance/internal/adapters/realclock"
	"github.com/acolita/chance/internal/ports"
)

// DefaultWindow is the window length used by the server.
const DefaultWindow = time.Minute

// Budget allows up to limit units per fixed window. A limit of zero or
// less disables it.
type Budget struct {
	mu     sync.Mutex
	clock  ports.Clock
	limit  int
	window time.Duration
	used   int
	start  time.Time
}

// Option configures a Budget.
type Option func(*Budget)

// WithClock sets the clock used by the Budget.
func WithClock(c ports.Clock) Option {
	return func(b *Budget) {
		b.clock = c
	}
}

// New creates a budget of limit units per window.
func New(limit int, window time.Duration, opts ...Option) *Budget {
	if window <= 0 {
		window = DefaultWindow
	}
	b := &Budget{
		clock:  realclock.New(),
		limit:  limit,
		window: window,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.start = b.clock.Now()
	return b
}

// Limit returns the configured limit.
func (b *Budget) Limit() int {
	return b.limit
}

// Take consumes n units if they fit in the current window. Otherwise
// nothing is consumed and the time until the window resets is returned.
// A request larger than the whole limit never fits.
func (b *Budget) Take(n int) (bool, time.Duration) {
	if b.limit <= 0 {
		return true, 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	if elapsed := now.Sub(b.start); elapsed >= b.window {
		b.start = now
		b.used = 0
	}

	if b.used+n > b.limit {
		return false, b.window - now.Sub(b.start)
	}
	b.used += n
	return true, 0
}

// Refund returns n units taken earlier in the current window. Units from a
// window that has since reset are not carried over.
func (b *Budget) Refund(n int) {
	if b.limit <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.used = max(b.used-n, 0)
}

// Remaining returns the units left in the current window.
func (b *Budget) Remaining() int {
	if b.limit <= 0 {
		return -1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.clock.Now().Sub(b.start) >= b.window {
		return b.limit
	}
	return b.limit - b.used
}
