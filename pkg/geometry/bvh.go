package geometry

import (
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// BVHNode is a node in a Bounding Volume Hierarchy. Children are either other
// nodes or primitives, so the tree is itself a core.Shape.
type BVHNode struct {
	left  core.Shape
	right core.Shape
	bbox  core.AABB
}

// BVHStats summarizes the structure of a hierarchy
type BVHStats struct {
	Nodes      int // interior nodes
	Leaves     int // primitive references at the bottom of the tree
	MaxDepth   int
	Primitives int // distinct primitives
}

// NewBVH builds a hierarchy over the shapes in list.
// The list itself is left untouched.
func NewBVH(list *ShapeList) *BVHNode {
	return NewBVHFromShapes(list.shapes)
}

// NewBVHFromShapes builds a hierarchy over shapes. The slice is copied before
// sorting so callers keep their order.
func NewBVHFromShapes(shapes []core.Shape) *BVHNode {
	if len(shapes) == 0 {
		return &BVHNode{bbox: core.EmptyAABB}
	}

	shapesCopy := make([]core.Shape, len(shapes))
	copy(shapesCopy, shapes)

	return buildBVH(shapesCopy, 0, len(shapesCopy))
}

// buildBVH builds the subtree for shapes[start:end] using a median split
// along the longest axis of the span's bounding box
func buildBVH(shapes []core.Shape, start, end int) *BVHNode {
	node := &BVHNode{bbox: core.EmptyAABB}
	for i := start; i < end; i++ {
		node.bbox = node.bbox.Union(shapes[i].BoundingBox())
	}

	axis := node.bbox.LongestAxis()
	span := end - start

	switch span {
	case 1:
		node.left = shapes[start]
		node.right = shapes[start]
	case 2:
		node.left = shapes[start]
		node.right = shapes[start+1]
	default:
		sortShapesByAxis(shapes[start:end], axis)
		mid := start + span/2
		node.left = buildBVH(shapes, start, mid)
		node.right = buildBVH(shapes, mid, end)
	}

	return node
}

// sortShapesByAxis orders shapes by the minimum of their box on axis,
// breaking ties by the box midpoint
func sortShapesByAxis(shapes []core.Shape, axis int) {
	sort.SliceStable(shapes, func(i, j int) bool {
		a := shapes[i].BoundingBox().AxisInterval(axis)
		b := shapes[j].BoundingBox().AxisInterval(axis)
		if a.Min != b.Min {
			return a.Min < b.Min
		}
		return a.Min+a.Max < b.Min+b.Max
	})
}

// Hit returns the closest hit in the subtree. The right child is only searched
// up to the left child's hit, if any.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	if n.left == nil || !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.left.Hit(ray, rayT)

	rightRange := rayT
	if hitLeft {
		rightRange.Max = leftHit.T
	}
	if rightHit, hitRight := n.right.Hit(ray, rightRange); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the box enclosing every shape in the subtree
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// Stats walks the tree and reports its shape
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	if n.left == nil {
		return stats
	}
	seen := make(map[core.Shape]bool)
	n.collectStats(0, &stats, seen)
	stats.Primitives = len(seen)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats, seen map[core.Shape]bool) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []core.Shape{n.left}
	if n.right != n.left {
		children = append(children, n.right)
	}
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats, seen)
			continue
		}
		stats.Leaves++
		seen[child] = true
		if depth+1 > stats.MaxDepth {
			stats.MaxDepth = depth + 1
		}
	}
}
