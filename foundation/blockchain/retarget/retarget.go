// Package retarget provides difficulty adjustment strategies for the chain.
// The strategy sits behind an interface so a stricter retargeting algorithm
// can be substituted without touching the chain's other responsibilities.
package retarget

import (
	"time"

	"github.com/minechain/minechain/foundation/blockchain/database"
)

// Adjuster represents the behavior required to be implemented by any
// difficulty adjustment strategy. Adjust receives the current difficulty and
// the chain's headers in order and returns the difficulty to use next.
type Adjuster interface {
	Adjust(current int, headers []database.BlockHeader) int
}

// =============================================================================

// Proportional is a simple proportional control heuristic over a fixed
// window of recent blocks: when the average inter-block time falls outside
// the band around the target, the difficulty moves by one step.
type Proportional struct {
	Window    int           // Number of recent blocks examined.
	Target    time.Duration // Desired time between blocks.
	LowerBand float64       // Fraction of target below which difficulty rises.
	UpperBand float64       // Fraction of target above which difficulty drops.
	Floor     int           // Difficulty never drops below this value.
}

// NewProportional constructs the default proportional adjuster: a 10 block
// window, a 10 second target, a 0.8x/1.2x band and a floor of 1.
func NewProportional() *Proportional {
	return &Proportional{
		Window:    10,
		Target:    10 * time.Second,
		LowerBand: 0.8,
		UpperBand: 1.2,
		Floor:     1,
	}
}

// Adjust implements the Adjuster interface. With fewer blocks than the
// window the current difficulty is returned unchanged.
func (p *Proportional) Adjust(current int, headers []database.BlockHeader) int {
	if len(headers) < p.Window {
		return current
	}

	recent := headers[len(headers)-p.Window:]
	span := recent[len(recent)-1].TimeStamp - recent[0].TimeStamp
	average := float64(span) / float64(p.Window-1)

	target := p.Target.Seconds()

	switch {
	case average < target*p.LowerBand:
		return current + 1

	case average > target*p.UpperBand:
		if current-1 < p.Floor {
			return p.Floor
		}
		return current - 1
	}

	return current
}
