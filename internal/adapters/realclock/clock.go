// Package realclock provides the system clock.
package realclock

import (
	"time"

	"github.com/acolita/chance/internal/ports"
)

// Clock reads the system clock.
type Clock struct{}

// New creates a system clock.
func New() *Clock {
	return &Clock{}
}

// Now returns time.Now().
func (c *Clock) Now() time.Time {
	return time.Now()
}

// Ensure Clock implements ports.Clock.
var _ ports.Clock = (*Clock)(nil)
