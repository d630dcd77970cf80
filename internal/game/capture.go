package game

import (
	"math/rand"
	"sync"

	"github.com/ab1manyu/PokedexChallenge/internal/model"
)

// CaptureMode selects which probability law a resolver applies. The two
// laws come from the two front ends this game grew out of and are kept
// as distinct variants rather than merged into one formula.
type CaptureMode string

const (
	// ModeWeighted draws a ball tier and scales the species capture
	// rate by the tier multiplier.
	ModeWeighted CaptureMode = "weighted"
	// ModeFixed ignores capture rates entirely: every throw succeeds
	// with a flat 70% chance (the console emulator's law).
	ModeFixed CaptureMode = "fixed"
)

// fixed-law failure threshold: success iff draw > 0.3
const fixedFailBand = 0.3

// Ball is a drawn ball tier with its capture-rate multiplier.
type Ball struct {
	Tier       model.BallTier
	Multiplier float64
}

// ChooseBall buckets a uniform draw in [0,1) into a ball tier:
// 60% basic, 30% great, 10% ultra.
func ChooseBall(draw float64) Ball {
	switch {
	case draw < 0.6:
		return Ball{Tier: model.BallBasic, Multiplier: 1.0}
	case draw < 0.9:
		return Ball{Tier: model.BallGreat, Multiplier: 1.5}
	default:
		return Ball{Tier: model.BallUltra, Multiplier: 2.0}
	}
}

// CaptureChance maps a species capture rate (0..255) and a ball
// multiplier to a success probability, clamped to 1.
func CaptureChance(captureRate int, multiplier float64) float64 {
	if captureRate < 0 {
		captureRate = 0
	}
	if captureRate > 255 {
		captureRate = 255
	}
	chance := float64(captureRate) / 255 * multiplier
	if chance > 1 {
		chance = 1
	}
	return chance
}

// Outcome is the result of one capture attempt.
type Outcome struct {
	Ball    Ball
	Chance  float64
	Success bool
}

// Resolver rolls capture attempts. It owns its rand source so tests can
// seed it deterministically.
type Resolver struct {
	mode CaptureMode

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewResolver(mode CaptureMode, src rand.Source) *Resolver {
	if mode != ModeFixed {
		mode = ModeWeighted
	}
	return &Resolver{mode: mode, rng: rand.New(src)}
}

func (r *Resolver) Mode() CaptureMode { return r.mode }

// Attempt resolves a single throw against the given capture rate.
func (r *Resolver) Attempt(captureRate int) Outcome {
	if r.mode == ModeFixed {
		return Outcome{
			Ball:    Ball{Tier: model.BallBasic, Multiplier: 1.0},
			Chance:  1 - fixedFailBand,
			Success: r.draw() > fixedFailBand,
		}
	}

	ball := ChooseBall(r.draw())
	chance := CaptureChance(captureRate, ball.Multiplier)
	return Outcome{
		Ball:    ball,
		Chance:  chance,
		Success: r.draw() <= chance,
	}
}

func (r *Resolver) draw() float64 {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Float64()
}
