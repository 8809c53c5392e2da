// Package logits draws word indices from a model's output distribution
// using temperature-scaled weighted sampling.
package logits

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// probFloor keeps log() defined when the model assigns a word zero
// probability.
const probFloor = 1e-8

var ErrBadTemperature = errors.New("logits: temperature must be positive")

// SamplerConfig configures a Sampler. Seed < 0 selects a time-derived seed.
type SamplerConfig struct {
	Seed        int64
	Temperature float64
}

// Sampler turns probability distributions into single sampled indices. It
// is not safe for concurrent use; each generation session owns its own
// sampler.
type Sampler struct {
	rng    *rand.Rand
	temp   float64
	weight []float64
}

// NewSampler returns a sampler with the provided configuration.
func NewSampler(cfg SamplerConfig) (*Sampler, error) {
	if cfg.Temperature <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadTemperature, cfg.Temperature)
	}
	seed := cfg.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{
		rng:  rand.New(rand.NewSource(seed)),
		temp: cfg.Temperature,
	}, nil
}

// Temperature returns the configured temperature.
func (s *Sampler) Temperature() float64 {
	return s.temp
}

// Sample draws one index from probs after temperature rescaling:
//
//  1. Each probability is floored, logged and divided by the temperature.
//  2. The results are exponentiated and renormalized to sum to 1.
//  3. A uniform draw selects an index from the rescaled distribution.
//
// A temperature of 1 preserves the original distribution; lower values
// sharpen it toward the argmax, higher values flatten it toward uniform.
func (s *Sampler) Sample(probs []float32) int {
	if len(probs) == 0 {
		return 0
	}
	if cap(s.weight) < len(probs) {
		s.weight = make([]float64, len(probs))
	}
	weight := s.weight[:len(probs)]

	var sum float64
	for i, p := range probs {
		w := math.Exp(math.Log(float64(p)+probFloor) / s.temp)
		weight[i] = w
		sum += w
	}
	if sum == 0 {
		return argmax(probs)
	}

	r := s.rng.Float64() * sum
	var c float64
	for i, w := range weight {
		c += w
		if r <= c {
			return i
		}
	}
	return len(probs) - 1
}

// argmax returns the index of the maximum value in the slice.
func argmax(x []float32) int {
	bestI := 0
	bestV := x[0]
	for i, v := range x {
		if v > bestV {
			bestV = v
			bestI = i
		}
	}
	return bestI
}
