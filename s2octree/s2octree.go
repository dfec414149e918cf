// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package s2octree implements an incremental spatial index over the unit
// sphere for nearest-neighbor distance queries. The sphere is tiled by the
// eight faces of an octahedron; each face is a spherical triangle that
// splits into four sub-triangles (midpoint subdivision projected back onto
// the sphere) once it holds too many points.
//
// References:
//   - Indexing the Sphere with the Hierarchical Triangular Mesh,
//     https://www.microsoft.com/en-us/research/wp-content/uploads/2005/09/tr-2005-123.pdf
//   - Point in a spherical triangle test,
//     http://math.stackexchange.com/questions/1244512/point-in-a-spherical-triangle-test
package s2octree

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	maxPointsPerNode = 32

	// insertEps rejects near-degenerate determinants when routing an
	// insertion to a child triangle; queryEps is the looser bound used
	// when only an ordering hint is needed.
	insertEps = 1e-6
	queryEps  = 1e-5
)

// Tree is a spatial index over points on the unit sphere. The zero value is
// not usable; create one with New.
type Tree struct {
	root *node
	size int
}

type node struct {
	// Vertices of the node's spherical triangle. Unset on the root, which
	// covers the whole sphere.
	v0, v1, v2 s2.Point

	// center is the normalized centroid direction and arc twice the
	// longest great-circle edge of the triangle; together they bound the
	// angular distance from center to any point inside the triangle.
	center s2.Point
	arc    s1.Angle

	points   []s2.Point
	children []*node
}

// New returns an empty tree whose eight root triangles are the faces of the
// octahedron inscribed in the unit sphere.
func New() *Tree {
	root := &node{arc: s1.Angle(math.Pi)}
	root.children = []*node{
		newNode(pt(-1, 0, 0), pt(0, 0, 1), pt(0, 1, 0)),
		newNode(pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0)),
		newNode(pt(1, 0, 0), pt(0, 0, -1), pt(0, 1, 0)),
		newNode(pt(0, 0, -1), pt(-1, 0, 0), pt(0, 1, 0)),
		newNode(pt(-1, 0, 0), pt(0, -1, 0), pt(0, 0, 1)),
		newNode(pt(0, 0, 1), pt(0, -1, 0), pt(1, 0, 0)),
		newNode(pt(1, 0, 0), pt(0, -1, 0), pt(0, 0, -1)),
		newNode(pt(0, 0, -1), pt(0, -1, 0), pt(-1, 0, 0)),
	}
	return &Tree{root: root}
}

func pt(x, y, z float64) s2.Point {
	return s2.PointFromCoords(x, y, z)
}

func newNode(v0, v1, v2 s2.Point) *node {
	e0 := v0.Distance(v1)
	e1 := v0.Distance(v2)
	e2 := v1.Distance(v2)
	return &node{
		v0:     v0,
		v1:     v1,
		v2:     v2,
		center: s2.Point{Vector: v0.Add(v1.Vector).Add(v2.Vector).Normalize()},
		arc:    2 * max(e0, e1, e2),
	}
}

// Len returns the number of points inserted into the tree.
func (t *Tree) Len() int {
	return t.size
}

// Insert adds a point, assumed to be a unit-length direction, to the tree.
// Points are never removed; a leaf exceeding its capacity splits into four
// sub-triangles and redistributes its points.
func (t *Tree) Insert(p s2.Point) {
	t.root.insert(p)
	t.size++
}

// NearestDistance returns the great-circle angular distance from p to the
// nearest point in the tree, or bound if no point lies closer than bound.
// The result never exceeds bound; querying an empty tree returns bound
// unchanged, so a +Inf bound is preserved.
func (t *Tree) NearestDistance(p s2.Point, bound s1.Angle) s1.Angle {
	return t.root.nearestDistance(p, bound)
}

func (n *node) insert(p s2.Point) {
	if n.children != nil {
		n.insertIntoChild(p)
		return
	}
	if len(n.points) == maxPointsPerNode {
		n.split()
		for _, q := range n.points {
			n.insertIntoChild(q)
		}
		n.points = nil
		n.insertIntoChild(p)
		return
	}
	n.points = append(n.points, p)
}

func (n *node) insertIntoChild(p s2.Point) {
	for _, c := range n.children {
		if onSphericalTriangle(p, c.v0, c.v1, c.v2, insertEps) {
			c.insert(p)
			return
		}
	}
	// Numerical edge between triangles: no child claims the direction.
	// Fall back to the first child instead of dropping the point.
	n.children[0].insert(p)
}

// split subdivides the node's triangle into four, connecting the edge
// midpoints projected back onto the sphere.
func (n *node) split() {
	w0 := s2.Point{Vector: n.v1.Add(n.v2.Vector).Normalize()}
	w1 := s2.Point{Vector: n.v0.Add(n.v2.Vector).Normalize()}
	w2 := s2.Point{Vector: n.v0.Add(n.v1.Vector).Normalize()}
	n.children = []*node{
		newNode(n.v0, w2, w1),
		newNode(n.v1, w0, w2),
		newNode(n.v2, w1, w0),
		newNode(w0, w1, w2),
	}
}

// childIndex returns the index of the child triangle containing p, or 0
// when no child claims it. The miss case is expected while a nearest query
// probes nodes that do not contain p; the return value is only an ordering
// hint there.
func (n *node) childIndex(p s2.Point) int {
	for i, c := range n.children {
		if onSphericalTriangle(p, c.v0, c.v1, c.v2, queryEps) {
			return i
		}
	}
	return 0
}

func (n *node) nearestDistance(p s2.Point, bound s1.Angle) s1.Angle {
	// The subtree lies within arc of center, so nothing in it can beat
	// the current bound when p is farther away than that.
	if p.Distance(n.center)-n.arc > bound {
		return bound
	}
	nr := bound
	if n.children != nil {
		// Start at the child containing p; its result tightens the bound
		// before the remaining siblings are visited in cyclic order.
		for i, c := n.childIndex(p), 0; c < len(n.children); i, c = (i+1)%len(n.children), c+1 {
			nr = min(nr, n.children[i].nearestDistance(p, nr))
		}
		return nr
	}
	for _, q := range n.points {
		nr = min(nr, p.Distance(q))
	}
	return nr
}

// onSphericalTriangle reports whether the great-circle ray from the sphere's
// center through p passes through the spherical triangle (v0, v1, v2). The
// test is a Möller–Trumbore ray intersection against the planar triangle
// spanned by the vertices; determinants within ±eps of zero report no
// containment.
func onSphericalTriangle(p, v0, v1, v2 s2.Point, eps float64) bool {
	edge1 := v1.Sub(v0.Vector)
	edge2 := v2.Sub(v0.Vector)
	pvec := p.Vector.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -eps && det < eps {
		return false
	}
	invDet := 1 / det
	tvec := v0.Mul(-1)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}
	qvec := tvec.Cross(edge1)
	v := p.Vector.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}
	return edge2.Dot(qvec)*invDet >= eps
}
