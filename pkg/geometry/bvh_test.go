package geometry

import (
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func randomSpheres(random *rand.Rand, n int) []core.Shape {
	shapes := make([]core.Shape, n)
	for i := range shapes {
		center := core.NewVec3(
			random.Float64()*20-10,
			random.Float64()*20-10,
			random.Float64()*20-10,
		)
		shapes[i] = NewSphere(center, 0.2+random.Float64(), &testMaterial{id: i})
	}
	return shapes
}

// randomRay aims every other ray at a shape center so hits and misses both occur
func randomRay(random *rand.Rand, shapes []core.Shape) core.Ray {
	origin := core.NewVec3(
		random.Float64()*40-20,
		random.Float64()*40-20,
		random.Float64()*40-20,
	)
	target := core.NewVec3(
		random.Float64()*16-8,
		random.Float64()*16-8,
		random.Float64()*16-8,
	)
	if random.Intn(2) == 0 {
		target = shapes[random.Intn(len(shapes))].BoundingBox().Center()
	}
	return core.NewRay(origin, target.Subtract(origin))
}

func TestBVH_MatchesLinearSearch(t *testing.T) {
	for _, count := range []int{1, 2, 3, 7, 64, 257} {
		random := rand.New(rand.NewSource(int64(count)))
		shapes := randomSpheres(random, count)
		list := NewShapeList(shapes...)
		bvh := NewBVH(list)

		hits := 0
		for i := 0; i < 2000; i++ {
			ray := randomRay(random, shapes)
			listHit, listOK := list.Hit(ray, hitRange)
			bvhHit, bvhOK := bvh.Hit(ray, hitRange)

			if listOK != bvhOK {
				t.Fatalf("count %d ray %d: list hit=%v, bvh hit=%v", count, i, listOK, bvhOK)
			}
			if !listOK {
				continue
			}
			hits++
			if listHit.T != bvhHit.T {
				t.Fatalf("count %d ray %d: list t=%g, bvh t=%g", count, i, listHit.T, bvhHit.T)
			}
			if listHit.Material != bvhHit.Material {
				t.Fatalf("count %d ray %d: hit different primitives", count, i)
			}
		}
		if hits == 0 {
			t.Errorf("count %d: no ray hit anything, test is not exercising the tree", count)
		}
	}
}

func TestBVH_LeavesInputOrderUntouched(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	shapes := randomSpheres(random, 50)
	original := make([]core.Shape, len(shapes))
	copy(original, shapes)

	list := NewShapeList(shapes...)
	NewBVHFromShapes(shapes)
	NewBVH(list)

	for i := range shapes {
		if shapes[i] != original[i] {
			t.Fatalf("Input slice reordered at index %d", i)
		}
	}
	listed := list.Shapes()
	for i := range listed {
		if listed[i] != original[i] {
			t.Fatalf("List reordered at index %d", i)
		}
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVHFromShapes(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := bvh.Hit(ray, hitRange); isHit {
		t.Error("Empty BVH should never report a hit")
	}
	if !bvh.BoundingBox().IsEmpty() {
		t.Errorf("Empty BVH should have an empty box, got %v", bvh.BoundingBox())
	}
	if stats := bvh.Stats(); stats != (BVHStats{}) {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}

func TestBVH_SmallSpans(t *testing.T) {
	a := NewSphere(core.NewVec3(0, 0, -5), 1, &testMaterial{id: 1})
	b := NewSphere(core.NewVec3(0, 0, -10), 1, &testMaterial{id: 2})

	t.Run("one shape", func(t *testing.T) {
		bvh := NewBVHFromShapes([]core.Shape{a})
		if bvh.left != a || bvh.right != a {
			t.Error("Single shape should be both children")
		}
		stats := bvh.Stats()
		if stats.Nodes != 1 || stats.Primitives != 1 {
			t.Errorf("Unexpected stats %+v", stats)
		}
	})

	t.Run("two shapes", func(t *testing.T) {
		bvh := NewBVHFromShapes([]core.Shape{b, a})
		if bvh.left != b || bvh.right != a {
			t.Error("Two shapes should become the children in input order")
		}

		// The nearer sphere is in the right child and still wins
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
		hit, isHit := bvh.Hit(ray, hitRange)
		if !isHit {
			t.Fatal("Expected hit")
		}
		if hit.Material != a.Material {
			t.Errorf("Expected the nearer sphere, got t=%g", hit.T)
		}
	})
}

func TestBVH_Stats(t *testing.T) {
	random := rand.New(rand.NewSource(9))
	shapes := randomSpheres(random, 100)
	stats := NewBVHFromShapes(shapes).Stats()

	if stats.Primitives != 100 {
		t.Errorf("Expected 100 primitives, got %d", stats.Primitives)
	}
	if stats.Leaves != 100 {
		t.Errorf("Expected 100 leaf references, got %d", stats.Leaves)
	}
	// Median splits keep the tree balanced
	if stats.MaxDepth > 8 {
		t.Errorf("Expected a balanced tree, max depth %d", stats.MaxDepth)
	}
	if stats.Nodes < 50 {
		t.Errorf("Expected at least 50 interior nodes, got %d", stats.Nodes)
	}
}

func TestBVH_BoundingBoxMatchesList(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	list := NewShapeList(randomSpheres(random, 30)...)
	if NewBVH(list).BoundingBox() != list.BoundingBox() {
		t.Error("BVH root box should equal the union of every shape box")
	}
}

// assertMatchesList traces rays through both aggregates and fails on any difference
func assertMatchesList(t *testing.T, shapes []core.Shape, rays []core.Ray) int {
	t.Helper()
	list := NewShapeList(shapes...)
	bvh := NewBVH(list)

	hits := 0
	for i, ray := range rays {
		listHit, listOK := list.Hit(ray, hitRange)
		bvhHit, bvhOK := bvh.Hit(ray, hitRange)

		if listOK != bvhOK {
			t.Fatalf("ray %d: list hit=%v, bvh hit=%v", i, listOK, bvhOK)
		}
		if !listOK {
			continue
		}
		hits++
		if listHit.T != bvhHit.T {
			t.Fatalf("ray %d: list t=%g, bvh t=%g", i, listHit.T, bvhHit.T)
		}
		if listHit.Material != bvhHit.Material {
			t.Fatalf("ray %d: hit different primitives", i)
		}
	}
	return hits
}

func TestBVH_CoincidentBounds(t *testing.T) {
	random := rand.New(rand.NewSource(17))

	identical := make([]core.Shape, 500)
	for i := range identical {
		identical[i] = NewSphere(core.NewVec3(0, 0, 0), 1, &testMaterial{id: i})
	}

	// Every sphere touches x = 0 from the right
	sharedMin := make([]core.Shape, 300)
	for i := range sharedMin {
		radius := 0.1 + 1.9*random.Float64()
		center := core.NewVec3(radius, random.Float64()*2-1, random.Float64()*2-1)
		sharedMin[i] = NewSphere(center, radius, &testMaterial{id: i})
	}

	tests := []struct {
		name   string
		shapes []core.Shape
	}{
		{"identical spheres", identical},
		{"shared axis minimum", sharedMin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewBVHFromShapes(tt.shapes).Stats()
			if stats.Primitives != len(tt.shapes) || stats.Leaves != len(tt.shapes) {
				t.Errorf("Expected %d primitives and leaves, got %+v", len(tt.shapes), stats)
			}
			if stats.MaxDepth > 2*bitsFor(len(tt.shapes)) {
				t.Errorf("Tree too deep for a median split: %+v", stats)
			}

			rays := make([]core.Ray, 1000)
			for i := range rays {
				origin := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, 10+random.Float64()*10)
				target := tt.shapes[random.Intn(len(tt.shapes))].BoundingBox().Center()
				target = target.Add(core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, 0))
				rays[i] = core.NewRay(origin, target.Subtract(origin))
			}
			if hits := assertMatchesList(t, tt.shapes, rays); hits == 0 {
				t.Error("No ray hit anything")
			}
		})
	}
}

// bitsFor returns the number of bits needed to count to n
func bitsFor(n int) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

func TestSortShapesByAxis_TieBreak(t *testing.T) {
	wide := NewSphere(core.NewVec3(2, 0, 0), 2, nil)   // x in [0, 4]
	narrow := NewSphere(core.NewVec3(1, 0, 5), 1, nil) // x in [0, 2]
	left := NewSphere(core.NewVec3(-1, 0, 0), 3, nil)  // x in [-4, 2]

	shapes := []core.Shape{wide, narrow, left}
	sortShapesByAxis(shapes, 0)

	expected := []core.Shape{left, narrow, wide}
	for i := range expected {
		if shapes[i] != expected[i] {
			t.Fatalf("Position %d: expected box %v, got %v", i, expected[i].BoundingBox().X, shapes[i].BoundingBox().X)
		}
	}

	// Fully equal keys keep their input order
	twinA := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	twinB := NewSphere(core.NewVec3(0, 3, 0), 1, nil)
	twins := []core.Shape{twinA, twinB}
	sortShapesByAxis(twins, 0)
	if twins[0] != twinA || twins[1] != twinB {
		t.Error("Equal keys were reordered")
	}
}

func TestBVH_MatchesLinearSearch_MovingSpheres(t *testing.T) {
	random := rand.New(rand.NewSource(23))

	spheres := make([]*Sphere, 200)
	shapes := make([]core.Shape, len(spheres))
	for i := range spheres {
		start := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		end := start.Add(core.NewVec3(random.Float64()*6-3, random.Float64()*6-3, random.Float64()*6-3))
		spheres[i] = NewMovingSphere(start, end, 0.2+0.6*random.Float64(), &testMaterial{id: i})
		shapes[i] = spheres[i]
	}

	rays := make([]core.Ray, 5000)
	for i := range rays {
		time := random.Float64()
		origin := core.NewVec3(random.Float64()*40-20, random.Float64()*40-20, random.Float64()*40-20)
		target := core.NewVec3(random.Float64()*16-8, random.Float64()*16-8, random.Float64()*16-8)
		if random.Intn(2) == 0 {
			target = spheres[random.Intn(len(spheres))].Center(time)
		}
		rays[i] = core.NewRayAtTime(origin, target.Subtract(origin), time)
	}

	if hits := assertMatchesList(t, shapes, rays); hits == 0 {
		t.Error("No ray hit anything")
	}
}
