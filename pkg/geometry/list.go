package geometry

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// ShapeList is an ordered collection of shapes tested by linear search.
// It is the flat scene aggregate a BVH is built from.
type ShapeList struct {
	shapes []core.Shape
	bbox   core.AABB
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...core.Shape) *ShapeList {
	list := &ShapeList{bbox: core.EmptyAABB}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape and grows the cached bounding box
func (l *ShapeList) Add(shape core.Shape) {
	l.shapes = append(l.shapes, shape)
	l.bbox = l.bbox.Union(shape.BoundingBox())
}

// Clear removes every shape
func (l *ShapeList) Clear() {
	l.shapes = nil
	l.bbox = core.EmptyAABB
}

// Len returns the number of shapes
func (l *ShapeList) Len() int {
	return len(l.shapes)
}

// Shapes returns a copy of the shapes in insertion order
func (l *ShapeList) Shapes() []core.Shape {
	out := make([]core.Shape, len(l.shapes))
	copy(out, l.shapes)
	return out
}

// Hit returns the closest hit across all shapes, shrinking the search range
// as closer hits are found
func (l *ShapeList) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all shape boxes
func (l *ShapeList) BoundingBox() core.AABB {
	return l.bbox
}
