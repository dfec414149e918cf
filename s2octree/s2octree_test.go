// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2octree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/2dChan/bluenoise/utils"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

func TestTree_NearestDistance_Empty(t *testing.T) {
	tests := []struct {
		name  string
		bound s1.Angle
	}{
		{"infinite bound", s1.Angle(math.Inf(1))},
		{"finite bound", 0.25},
		{"zero bound", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New()
			got := tree.NearestDistance(s2.PointFromCoords(0, 0, 1), tt.bound)
			if got != tt.bound {
				t.Errorf("NearestDistance(...) on empty tree = %v, want %v", got, tt.bound)
			}
		})
	}
}

func TestTree_InsertThenQuery(t *testing.T) {
	const (
		cnt     = 500
		seed    = 0
		epsilon = 1e-9
	)
	tree := New()
	points := utils.GenerateRandomSpherePoints(cnt, seed)
	for _, p := range points {
		tree.Insert(p)
	}

	if got := tree.Len(); got != cnt {
		t.Fatalf("tree.Len() = %v, want %v", got, cnt)
	}
	for i, p := range points {
		d := tree.NearestDistance(p, s1.Angle(math.Inf(1)))
		if d.Radians() > epsilon {
			t.Errorf("NearestDistance(points[%d], +Inf) = %v, want ≈0", i, d)
		}
	}
}

func TestTree_NearestDistance_MatchesBruteForce(t *testing.T) {
	const (
		cnt     = 300
		queries = 50
		epsilon = 1e-12
	)
	tree := New()
	points := utils.GenerateRandomSpherePoints(cnt, 1)
	for _, p := range points {
		tree.Insert(p)
	}

	bounds := []s1.Angle{s1.Angle(math.Inf(1)), 1.0, 0.25, 0.01}
	for qi, q := range utils.GenerateRandomSpherePoints(queries, 2) {
		truth := s1.Angle(math.Inf(1))
		for _, p := range points {
			truth = min(truth, q.Distance(p))
		}
		for _, bound := range bounds {
			want := min(bound, truth)
			got := tree.NearestDistance(q, bound)
			if math.Abs(got.Radians()-want.Radians()) > epsilon {
				t.Errorf("NearestDistance(queries[%d], %v) = %v, want %v", qi, bound, got, want)
			}
			if got > bound {
				t.Errorf("NearestDistance(queries[%d], %v) = %v, exceeds bound", qi, bound, got)
			}
		}
	}
}

func TestTree_CapacityInvariant(t *testing.T) {
	tree := New()
	points := clusteredPositiveOctant(maxPointsPerNode + 1)

	for _, p := range points[:maxPointsPerNode] {
		tree.Insert(p)
	}
	leaf := tree.root.children[1]
	if leaf.children != nil {
		t.Fatalf("leaf split after %d insertions, want split only on %d",
			maxPointsPerNode, maxPointsPerNode+1)
	}
	if got := len(leaf.points); got != maxPointsPerNode {
		t.Fatalf("leaf holds %d points, want %d", got, maxPointsPerNode)
	}

	tree.Insert(points[maxPointsPerNode])
	if leaf.children == nil {
		t.Fatalf("leaf not split after %d insertions", maxPointsPerNode+1)
	}
	if leaf.points != nil {
		t.Errorf("split node still holds %d points, want none", len(leaf.points))
	}
}

func TestTree_SplitRedistribution(t *testing.T) {
	const epsilon = 1e-9
	tree := New()
	points := spreadPositiveOctant(40)
	cnt := len(points)
	for _, p := range points {
		tree.Insert(p)
	}

	node := tree.root.children[1]
	if node.children == nil {
		t.Fatalf("root triangle not split after %d insertions", cnt)
	}
	for i, c := range node.children {
		if c.children != nil {
			t.Errorf("child %d split again, want a single split for %d points", i, cnt)
		}
	}

	if got := tree.Len(); got != cnt {
		t.Errorf("tree.Len() = %v, want %v", got, cnt)
	}
	for i, p := range points {
		d := tree.NearestDistance(p, s1.Angle(math.Inf(1)))
		if d.Radians() > epsilon {
			t.Errorf("NearestDistance(points[%d], +Inf) = %v after split, want ≈0", i, d)
		}
	}
}

func TestOnSphericalTriangle(t *testing.T) {
	v0 := s2.PointFromCoords(0, 0, 1)
	v1 := s2.PointFromCoords(1, 0, 0)
	v2 := s2.PointFromCoords(0, 1, 0)

	tests := []struct {
		name       string
		p          s2.Point
		t0, t1, t2 s2.Point
		want       bool
	}{
		{"centroid inside", s2.PointFromCoords(1, 1, 1), v0, v1, v2, true},
		{"antipode outside", s2.PointFromCoords(-1, -1, -1), v0, v1, v2, false},
		{"neighbor octant outside", s2.PointFromCoords(-1, 1, 1), v0, v1, v2, false},
		{"degenerate triangle", s2.PointFromCoords(1, 1, 1), v0, v0, v2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := onSphericalTriangle(tt.p, tt.t0, tt.t1, tt.t2, insertEps)
			if got != tt.want {
				t.Errorf("onSphericalTriangle(%v, ...) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// Benchmarks

func BenchmarkTree_NearestDistance(b *testing.B) {
	const cnt = 10000
	tree := New()
	for _, p := range utils.GenerateRandomSpherePoints(cnt, 0) {
		tree.Insert(p)
	}
	queries := utils.GenerateRandomSpherePoints(1000, 1)
	inf := s1.Angle(math.Inf(1))

	b.ReportAllocs()
	b.ResetTimer()
	i := 0
	for b.Loop() {
		tree.NearestDistance(queries[i%len(queries)], inf)
		i++
	}
}

// Helpers

// clusteredPositiveOctant returns cnt distinct directions close to the
// normalized (1,1,1) axis, all inside the positive-octant root triangle.
func clusteredPositiveOctant(cnt int) []s2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(3))
	points := make([]s2.Point, cnt)
	for i := range cnt {
		points[i] = s2.Point{Vector: r3.Vector{
			X: 1 + random.Float64()*0.1,
			Y: 1 + random.Float64()*0.1,
			Z: 1 + random.Float64()*0.1,
		}.Normalize()}
	}
	return points
}

// spreadPositiveOctant returns cnt directions inside the positive-octant
// root triangle, clustered evenly around the four sub-triangle centers so
// that splitting the face once never overfills a child.
func spreadPositiveOctant(cnt int) []s2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(4))
	bases := []r3.Vector{
		{X: 0.1, Y: 0.1, Z: 1},
		{X: 1, Y: 0.1, Z: 0.1},
		{X: 0.1, Y: 1, Z: 0.1},
		{X: 1, Y: 1, Z: 1},
	}
	points := make([]s2.Point, cnt)
	for i := range cnt {
		b := bases[i%len(bases)]
		points[i] = s2.Point{Vector: r3.Vector{
			X: b.X + random.Float64()*0.02,
			Y: b.Y + random.Float64()*0.02,
			Z: b.Z + random.Float64()*0.02,
		}.Normalize()}
	}
	return points
}
