// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package bluenoise

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/2dChan/bluenoise/s2octree"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Sphere generates best-candidate samples on the surface of the unit
// sphere. It keeps the accepted samples in an octahedron-rooted spherical
// triangle tree, so successive calls to Generate continue the same run.
type Sphere struct {
	rnd        *rand.Rand
	tree       *s2octree.Tree
	candidates int
}

// NewSphere creates a sphere sampler seeded with seed.
func NewSphere(seed int64, setters ...Option) (*Sphere, error) {
	opts, err := applyOptions(setters)
	if err != nil {
		return nil, err
	}
	//nolint:gosec
	return &Sphere{
		rnd:        rand.New(rand.NewSource(seed)),
		tree:       s2octree.New(),
		candidates: opts.Candidates,
	}, nil
}

// GenerateSphere generates numSamples best-candidate samples on the unit
// sphere, trying numCandidates candidates per sample, and calls emit once
// per accepted sample in acceptance order.
func GenerateSphere(seed int64, numSamples, numCandidates int, emit func(p s2.Point)) error {
	s, err := NewSphere(seed, WithCandidates(numCandidates))
	if err != nil {
		return err
	}
	return s.Generate(numSamples, emit)
}

// Generate produces numSamples further samples and calls emit once per
// accepted sample. Each emitted point is a unit-length direction.
func (s *Sphere) Generate(numSamples int, emit func(p s2.Point)) error {
	if numSamples < 0 {
		return fmt.Errorf("%w: numSamples must be non-negative, got %d",
			ErrInvalidArgument, numSamples)
	}
	if emit == nil {
		return fmt.Errorf("%w: emit must be non-nil", ErrInvalidArgument)
	}

	inf := s1.Angle(math.Inf(1))
	for range numSamples {
		var best s2.Point
		bestDist := s1.Angle(0)
		for range s.candidates {
			c := s.randomOnSphere()
			minDist := s.tree.NearestDistance(c, inf)
			if minDist > bestDist {
				bestDist = minDist
				best = c
			}
			// The tree is empty, so any candidate is maximally dispersed.
			if math.IsInf(minDist.Radians(), 1) {
				break
			}
		}
		emit(best)
		s.tree.Insert(best)
	}
	return nil
}

// Len returns the number of samples accepted so far.
func (s *Sphere) Len() int {
	return s.tree.Len()
}

// randomOnSphere draws a uniformly distributed direction via the Marsaglia
// (1972) method: a rejection-sampled point in the unit disk mapped onto the
// sphere.
func (s *Sphere) randomOnSphere() s2.Point {
	var x1, x2 float64
	for {
		x1 = s.rnd.Float64()*2 - 1
		x2 = s.rnd.Float64()*2 - 1
		if x1*x1+x2*x2 <= 1 {
			break
		}
	}
	sq := math.Sqrt(1 - x1*x1 - x2*x2)
	return s2.Point{Vector: r3.Vector{
		X: 2 * x1 * sq,
		Y: 2 * x2 * sq,
		Z: 1 - 2*(x1*x1+x2*x2),
	}}
}
