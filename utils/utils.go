// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides seeded uniform point generators on the unit sphere
// and the unit disk, the non-best-candidate baseline used by tests and
// examples.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// GenerateRandomSpherePoints generates a vector of uniformly distributed
// random points on the unit sphere, using the Marsaglia (1972) method.
// The seed parameter ensures reproducibility.
func GenerateRandomSpherePoints(cnt int, seed int64) s2.PointVector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make(s2.PointVector, cnt)

	for i := range cnt {
		var x1, x2 float64
		for {
			x1 = random.Float64()*2 - 1
			x2 = random.Float64()*2 - 1
			if x1*x1+x2*x2 <= 1 {
				break
			}
		}
		sq := math.Sqrt(1 - x1*x1 - x2*x2)
		points[i] = s2.Point{Vector: r3.Vector{
			X: 2 * x1 * sq,
			Y: 2 * x2 * sq,
			Z: 1 - 2*(x1*x1+x2*x2),
		}}
	}

	return points
}

// GenerateRandomDiskPoints generates uniformly distributed random points in
// the unit disk by rejection sampling over [-1,1]².
// The seed parameter ensures reproducibility.
func GenerateRandomDiskPoints(cnt int, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := range cnt {
		for {
			x := random.Float64()*2 - 1
			y := random.Float64()*2 - 1
			if x*x+y*y <= 1 {
				points[i] = r2.Point{X: x, Y: y}
				break
			}
		}
	}

	return points
}
