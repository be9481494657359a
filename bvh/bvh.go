// Package bvh implements a bounding volume hierarchy over curveray shapes.
// The hierarchy is a flat node array with children stored adjacently. Leaves
// hold ranges into a permutation of the primitive indices so the caller's
// primitive slice is never reordered.
package bvh

import (
	"sort"

	"github.com/soypat/curveray"
)

const (
	leaf = iota
	xSplit
	ySplit
	zSplit
)

// maxLeafSize is the primitive count at or below which a node becomes a leaf.
const maxLeafSize = 4

type node struct {
	// offset to children is stored in the upper bits, lower two bits are the split axis
	// or leaf flag.
	flags int
	box   curveray.Box
	// leaf range into BVH.perm.
	start, end int
}

func (n *node) isLeaf() bool { return n.flags&3 == leaf }

func (n *node) children() (left, right int) {
	left = n.flags >> 2
	return left, left + 1
}

// BVH is an immutable bounding volume hierarchy. It is safe for concurrent
// traversal once built.
type BVH struct {
	nodes []node
	perm  []int
	depth int
}

// Build creates a hierarchy over shapes using a median split along the
// longest axis of the node bounds. Each shape's node index is set to the leaf
// that holds it. The shapes slice is not modified otherwise and must not
// change while the hierarchy is in use.
func Build[S curveray.Shape](shapes []S) *BVH {
	b := &BVH{perm: make([]int, len(shapes))}
	if len(shapes) == 0 {
		return b
	}
	boxes := make([]curveray.Box, len(shapes))
	centroids := make([][3]float32, len(shapes))
	for i := range shapes {
		b.perm[i] = i
		boxes[i] = shapes[i].Bounds()
		c := boxes[i].Center()
		centroids[i] = [3]float32{c.X, c.Y, c.Z}
	}
	b.nodes = make([]node, 1, 2*len(shapes)/maxLeafSize+1)
	b.subdivide(0, 0, b.perm, boxes, centroids, 1)
	for ni := range b.nodes {
		n := &b.nodes[ni]
		if !n.isLeaf() {
			continue
		}
		for _, pi := range b.perm[n.start:n.end] {
			shapes[pi].SetNodeIndex(ni)
		}
	}
	return b
}

func (b *BVH) subdivide(nodeIdx, start int, prims []int, boxes []curveray.Box, centroids [][3]float32, depth int) {
	if depth > b.depth {
		b.depth = depth
	}
	bb := boxes[prims[0]]
	for _, pi := range prims[1:] {
		bb = bb.Union(boxes[pi])
	}
	if len(prims) <= maxLeafSize {
		b.nodes[nodeIdx] = node{flags: leaf, box: bb, start: start, end: start + len(prims)}
		return
	}
	// classical heuristic, the longest axis with the median as pivot.
	dims := bb.Size()
	split := xSplit
	switch {
	case dims.X >= dims.Y && dims.X >= dims.Z:
		split = xSplit
	case dims.Y >= dims.X && dims.Y >= dims.Z:
		split = ySplit
	default:
		split = zSplit
	}
	axis := split - 1
	sort.SliceStable(prims, func(i, j int) bool {
		return centroids[prims[i]][axis] < centroids[prims[j]][axis]
	})
	half := len(prims) / 2

	// append two new nodes to store the children
	childIdx := len(b.nodes)
	b.nodes = append(b.nodes, node{}, node{})
	b.subdivide(childIdx, start, prims[:half], boxes, centroids, depth+1)
	b.subdivide(childIdx+1, start+half, prims[half:], boxes, centroids, depth+1)
	b.nodes[nodeIdx] = node{flags: childIdx<<2 | split, box: bb}
}

// Traverse calls fn with the index of every primitive whose leaf bounds are
// crossed by r. Nearer children are visited first. Traversal stops early when
// fn returns false. The visit order is not sorted by hit distance so callers
// must keep the nearest hit themselves.
func (b *BVH) Traverse(r curveray.Ray, fn func(i int) bool) {
	if len(b.nodes) == 0 {
		return
	}
	if _, tExit := b.nodes[0].box.Slice(r); tExit < 0 {
		return
	}
	stack := make([]int, 1, 2*b.depth+1)
	for len(stack) > 0 {
		n := &b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if n.isLeaf() {
			for _, pi := range b.perm[n.start:n.end] {
				if !fn(pi) {
					return
				}
			}
			continue
		}
		li, ri := n.children()
		lEnter, lExit := b.nodes[li].box.Slice(r)
		rEnter, rExit := b.nodes[ri].box.Slice(r)
		lHit, rHit := lExit >= 0, rExit >= 0
		switch {
		case lHit && rHit:
			// Push the far child first so the near one pops next.
			if lEnter <= rEnter {
				stack = append(stack, ri, li)
			} else {
				stack = append(stack, li, ri)
			}
		case lHit:
			stack = append(stack, li)
		case rHit:
			stack = append(stack, ri)
		}
	}
}

// Candidates appends to dst the indices of primitives possibly hit by r.
func (b *BVH) Candidates(dst []int, r curveray.Ray) []int {
	b.Traverse(r, func(i int) bool {
		dst = append(dst, i)
		return true
	})
	return dst
}

// Len returns the number of primitives in the hierarchy.
func (b *BVH) Len() int { return len(b.perm) }

// Nodes returns the number of nodes in the hierarchy.
func (b *BVH) Nodes() int { return len(b.nodes) }

// Depth returns the number of levels of the hierarchy.
func (b *BVH) Depth() int { return b.depth }

// Bounds returns the box enclosing all primitives. It is the zero box for an
// empty hierarchy.
func (b *BVH) Bounds() curveray.Box {
	if len(b.nodes) == 0 {
		return curveray.Box{}
	}
	return b.nodes[0].box
}

// LeafBounds returns the bounds of the leaf at node index i, as stored by
// Shape.SetNodeIndex during Build.
func (b *BVH) LeafBounds(i int) (curveray.Box, bool) {
	if i < 0 || i >= len(b.nodes) || !b.nodes[i].isLeaf() {
		return curveray.Box{}, false
	}
	return b.nodes[i].box, true
}

// Volume returns the sum of leaf box volumes, a rough quality measure.
func (b *BVH) Volume() float32 {
	var vol float32
	for i := range b.nodes {
		if !b.nodes[i].isLeaf() {
			continue
		}
		sz := b.nodes[i].box.Size()
		vol += sz.X * sz.Y * sz.Z
	}
	return vol
}
