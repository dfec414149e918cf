// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package bluenoise

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/2dChan/bluenoise/quadtree"
	"github.com/golang/geo/r2"
)

// Disk generates best-candidate samples inside the unit disk. It keeps the
// accepted samples in a quadtree over [-1,1]², so successive calls to
// Generate continue the same run.
type Disk struct {
	rnd        *rand.Rand
	tree       *quadtree.Tree
	candidates int
}

// NewDisk creates a disk sampler seeded with seed.
func NewDisk(seed int64, setters ...Option) (*Disk, error) {
	opts, err := applyOptions(setters)
	if err != nil {
		return nil, err
	}
	//nolint:gosec
	return &Disk{
		rnd:        rand.New(rand.NewSource(seed)),
		tree:       quadtree.New(-1, -1, 2),
		candidates: opts.Candidates,
	}, nil
}

// GenerateDisk generates numSamples best-candidate samples in the unit
// disk, trying numCandidates candidates per sample, and calls emit once per
// accepted sample in acceptance order.
func GenerateDisk(seed int64, numSamples, numCandidates int, emit func(p r2.Point)) error {
	d, err := NewDisk(seed, WithCandidates(numCandidates))
	if err != nil {
		return err
	}
	return d.Generate(numSamples, emit)
}

// Generate produces numSamples further samples and calls emit once per
// accepted sample. Each emitted point satisfies x²+y² ≤ 1.
func (d *Disk) Generate(numSamples int, emit func(p r2.Point)) error {
	if numSamples < 0 {
		return fmt.Errorf("%w: numSamples must be non-negative, got %d",
			ErrInvalidArgument, numSamples)
	}
	if emit == nil {
		return fmt.Errorf("%w: emit must be non-nil", ErrInvalidArgument)
	}

	inf := math.Inf(1)
	for range numSamples {
		var best r2.Point
		bestDist := 0.0
		for range d.candidates {
			c := d.randomInDisk()
			minDist := d.tree.NearestDistance(c, inf)
			if minDist > bestDist {
				bestDist = minDist
				best = c
			}
			// The tree is empty, so any candidate is maximally dispersed.
			if math.IsInf(minDist, 1) {
				break
			}
		}
		emit(best)
		d.tree.Insert(best)
	}
	return nil
}

// Len returns the number of samples accepted so far.
func (d *Disk) Len() int {
	return d.tree.Len()
}

func (d *Disk) randomInDisk() r2.Point {
	for {
		x := d.rnd.Float64()*2 - 1
		y := d.rnd.Float64()*2 - 1
		if x*x+y*y <= 1 {
			return r2.Point{X: x, Y: y}
		}
	}
}
