// Package kernel defines the abstract extrusion kernel interface used to
// turn planar face rings into 3-D preview solids. Implementations (sdfx,
// prism) sit behind this interface so the preview backend can be swapped
// without changing the tessellation pipeline.
package kernel

// Vec2 is a point in the floorplan plane.
type Vec2 struct {
	X, Y float64
}

// Solid is an opaque handle to a kernel solid. Implementations wrap their
// internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract extrusion kernel interface.
type Kernel interface {
	// Prism extrudes a closed planar ring (first point not repeated)
	// vertically by height, with the base at z = 0.
	Prism(ring []Vec2, height float64) (Solid, error)

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh converts a solid into a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
