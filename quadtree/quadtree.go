// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package quadtree implements an incremental point quadtree for
// nearest-neighbor distance queries over an axis-aligned square.
package quadtree

import (
	"math"

	"github.com/golang/geo/r2"
)

const maxPointsPerNode = 32

// Quadrant indices. The cyclic visiting order of nearest-distance queries
// follows this numbering.
const (
	pxny = iota
	nxny
	nxpy
	pxpy
)

// Tree is a spatial index over points in an axis-aligned square. The zero
// value is not usable; create one with New.
type Tree struct {
	root *node
	size int
}

type node struct {
	// Minimum corner and half-size of the node's square.
	minX, minY, hs float64

	points   []r2.Point
	children []*node
}

// New returns an empty tree covering the square with minimum corner
// (minX, minY) and the given side length.
func New(minX, minY, size float64) *Tree {
	return &Tree{root: &node{minX: minX, minY: minY, hs: size / 2}}
}

// Len returns the number of points inserted into the tree.
func (t *Tree) Len() int {
	return t.size
}

// Insert adds a point, assumed to lie inside the tree's square. Points are
// never removed; a leaf exceeding its capacity splits into four quadrants
// and redistributes its points.
func (t *Tree) Insert(p r2.Point) {
	t.root.insert(p)
	t.size++
}

// NearestDistance returns the distance from p to the nearest point in the
// tree, or bound if no point lies closer than bound. The result never
// exceeds bound; querying an empty tree returns bound unchanged, so a +Inf
// bound is preserved.
func (t *Tree) NearestDistance(p r2.Point, bound float64) float64 {
	return t.root.nearestDistance(p, bound)
}

func (n *node) insert(p r2.Point) {
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

func (n *node) split() {
	n.children = make([]*node, 4)
	n.children[nxny] = &node{minX: n.minX, minY: n.minY, hs: n.hs / 2}
	n.children[pxny] = &node{minX: n.minX + n.hs, minY: n.minY, hs: n.hs / 2}
	n.children[nxpy] = &node{minX: n.minX, minY: n.minY + n.hs, hs: n.hs / 2}
	n.children[pxpy] = &node{minX: n.minX + n.hs, minY: n.minY + n.hs, hs: n.hs / 2}
}

// insertIntoChild routes p by comparing against the quadrant midpoint.
// The ≥ comparisons make the assignment total and disjoint, boundary
// points included.
func (n *node) insertIntoChild(p r2.Point) {
	xm := n.minX + n.hs
	ym := n.minY + n.hs
	switch {
	case p.X >= xm && p.Y >= ym:
		n.children[pxpy].insert(p)
	case p.X >= xm:
		n.children[pxny].insert(p)
	case p.Y >= ym:
		n.children[nxpy].insert(p)
	default:
		n.children[nxny].insert(p)
	}
}

func (n *node) quadrant(p r2.Point) int {
	if p.X < n.minX+n.hs {
		if p.Y < n.minY+n.hs {
			return nxny
		}
		return nxpy
	}
	if p.Y < n.minY+n.hs {
		return pxny
	}
	return pxpy
}

func (n *node) nearestDistance(p r2.Point, bound float64) float64 {
	// Nothing in the node's square can beat the bound when p lies outside
	// the square grown by bound on every side.
	if p.X < n.minX-bound || p.X > n.minX+2*n.hs+bound ||
		p.Y < n.minY-bound || p.Y > n.minY+2*n.hs+bound {
		return bound
	}
	nr := bound
	if n.children != nil {
		// Start at the quadrant containing p; its result tightens the
		// bound before the remaining quadrants are visited in cyclic
		// order.
		for i, c := n.quadrant(p), 0; c < 4; i, c = (i+1)%4, c+1 {
			nr = min(nr, n.children[i].nearestDistance(p, nr))
		}
		return nr
	}
	nr2 := nr * nr
	for _, q := range n.points {
		d := q.Sub(p)
		nr2 = min(nr2, d.Dot(d))
	}
	return math.Sqrt(nr2)
}
