package core

// aabbMinWidth is the narrowest extent an AABB axis may have. Flat shapes are
// padded up to it so the slab test can still hit them.
const aabbMinWidth = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

var (
	// EmptyAABB encloses nothing and is the identity for Union
	EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
	// UniverseAABB encloses all of space
	UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}
)

// NewAABB creates an AABB from per-axis intervals, padding thin axes
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: x, Y: y, Z: z}
	aabb.padToMinimums()
	return aabb
}

// NewAABBFromPoints creates an AABB with a and b as opposite corners, in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		orderedInterval(a.X, b.X),
		orderedInterval(a.Y, b.Y),
		orderedInterval(a.Z, b.Z),
	)
}

// NewAABBEnclosing returns the union of two boxes
func NewAABBEnclosing(a, b AABB) AABB {
	return AABB{
		X: NewIntervalEnclosing(a.X, b.X),
		Y: NewIntervalEnclosing(a.Y, b.Y),
		Z: NewIntervalEnclosing(a.Z, b.Z),
	}
}

func orderedInterval(a, b float64) Interval {
	if a <= b {
		return NewInterval(a, b)
	}
	return NewInterval(b, a)
}

func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < aabbMinWidth {
		aabb.X = aabb.X.Expand(aabbMinWidth)
	}
	if aabb.Y.Size() < aabbMinWidth {
		aabb.Y = aabb.Y.Expand(aabbMinWidth)
	}
	if aabb.Z.Size() < aabbMinWidth {
		aabb.Z = aabb.Z.Expand(aabbMinWidth)
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return NewAABBEnclosing(aabb, other)
}

// AxisInterval returns the extent along axis 1=Y, 2=Z, anything else X
func (aabb AABB) AxisInterval(axis int) Interval {
	switch axis {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Hit tests if a ray intersects this AABB within rayT using the slab method.
// A zero direction component divides to ±Inf, which correctly leaves that axis
// unbounded when the origin lies inside the slab.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		ax := aabb.AxisInterval(axis)
		origin := ray.Origin.Component(axis)
		invDirection := 1.0 / ray.Direction.Component(axis)

		t0 := (ax.Min - origin) * invDirection
		t1 := (ax.Max - origin) * invDirection

		if t0 < t1 {
			if t0 > rayT.Min {
				rayT.Min = t0
			}
			if t1 < rayT.Max {
				rayT.Max = t1
			}
		} else {
			if t1 > rayT.Min {
				rayT.Min = t1
			}
			if t0 < rayT.Max {
				rayT.Max = t0
			}
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}
	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to the later axis.
func (aabb AABB) LongestAxis() int {
	if aabb.X.Size() > aabb.Y.Size() {
		if aabb.X.Size() > aabb.Z.Size() {
			return 0
		}
		return 2
	}
	if aabb.Y.Size() > aabb.Z.Size() {
		return 1
	}
	return 2
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return NewVec3(
		(aabb.X.Min+aabb.X.Max)/2,
		(aabb.Y.Min+aabb.Y.Max)/2,
		(aabb.Z.Min+aabb.Z.Max)/2,
	)
}

// Translate returns the box moved by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Add(offset.X),
		Y: aabb.Y.Add(offset.Y),
		Z: aabb.Z.Add(offset.Z),
	}
}

// IsEmpty reports whether any axis is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}
