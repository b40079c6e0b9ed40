package datastructure

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// static 2-d tree over network node coordinates. build is O(n log n) with a median-of-medians
// pivot, so the tree is balanced and the same input always yields the same tree.
// https://en.wikipedia.org/wiki/K-d_tree

// indexedPoint is a network node position stored in the tree. pos = position in NodeIndex.nodes.
type indexedPoint struct {
	pos  int
	x, y float64
}

func (p indexedPoint) coord(d kdtree.Dim) float64 {
	switch d {
	case 0:
		return p.x
	case 1:
		return p.y
	default:
		panic("illegal dimension")
	}
}

// Compare returns the signed distance of p from the plane through c along dimension d.
func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	return p.coord(d) - q.coord(d)
}

func (p indexedPoint) Dims() int { return 2 }

// Distance returns the squared euclidean distance, gonum's kdtree prunes with squared distances.
func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexedPoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p indexedPoints) Len() int                      { return len(p) }
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return pointPlane{indexedPoints: p, Dim: d}.Pivot()
}
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type pointPlane struct {
	kdtree.Dim
	indexedPoints
}

// Less orders by coordinate, then by position so equal coordinates still split evenly.
func (p pointPlane) Less(i, j int) bool {
	a, b := p.indexedPoints[i], p.indexedPoints[j]
	if a.coord(p.Dim) != b.coord(p.Dim) {
		return a.coord(p.Dim) < b.coord(p.Dim)
	}
	return a.pos < b.pos
}

func (p pointPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	p.indexedPoints = p.indexedPoints[start:end]
	return p
}

func (p pointPlane) Swap(i, j int) {
	p.indexedPoints[i], p.indexedPoints[j] = p.indexedPoints[j], p.indexedPoints[i]
}

// NodeIndex is a read-only spatial index over network nodes. Safe for concurrent queries.
type NodeIndex struct {
	tree  *kdtree.Tree
	nodes []NetworkNode
}

// NewNodeIndex builds the tree. nodes is copied, the caller may reuse it.
func NewNodeIndex(nodes []NetworkNode) *NodeIndex {
	idx := &NodeIndex{
		nodes: make([]NetworkNode, len(nodes)),
	}
	copy(idx.nodes, nodes)

	if len(nodes) == 0 {
		return idx
	}

	points := make(indexedPoints, len(nodes))
	for i, n := range nodes {
		points[i] = indexedPoint{pos: i, x: n.X, y: n.Y}
	}
	idx.tree = kdtree.New(points, false)
	return idx
}

func (idx *NodeIndex) Len() int {
	return len(idx.nodes)
}

// Nearest returns the node closest to (x, y) under the planar metric and its planar distance.
// ok is false if the index is empty.
// on exact distance ties the node reached first by the tree search wins.
func (idx *NodeIndex) Nearest(x, y float64) (node NetworkNode, dist float64, ok bool) {
	if idx.tree == nil || idx.tree.Root == nil {
		return NetworkNode{}, math.Inf(1), false
	}

	c, sqDist := idx.tree.Nearest(indexedPoint{pos: -1, x: x, y: y})
	if c == nil {
		return NetworkNode{}, math.Inf(1), false
	}
	p := c.(indexedPoint)
	return idx.nodes[p.pos], math.Sqrt(sqDist), true
}

// NearestWithin is Nearest bounded by radius: a nearest node further than radius is not a match.
func (idx *NodeIndex) NearestWithin(x, y, radius float64) (NetworkNode, float64, bool) {
	node, dist, ok := idx.Nearest(x, y)
	if !ok || dist > radius {
		return NetworkNode{}, dist, false
	}
	return node, dist, true
}
