// Package prism implements the kernel.Kernel interface with an exact
// pure-Go mesher: ear-clipping triangulation of the floor ring plus one
// quad per wall. No sampling is involved, so meshes are small and vertex
// positions are exact, which makes this the backend of choice for tests
// and for fast interactive preview.
package prism

import (
	"fmt"
	"math"

	"github.com/Mkellyeng/floorspace/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*PrismKernel)(nil)

// prismSolid is a vertical extrusion of a planar ring.
type prismSolid struct {
	ring   []kernel.Vec2 // counter-clockwise
	height float64
	offset [3]float64
}

// BoundingBox returns the axis-aligned bounding box.
func (s *prismSolid) BoundingBox() (min, max [3]float64) {
	min = [3]float64{s.ring[0].X, s.ring[0].Y, 0}
	max = min
	for _, p := range s.ring {
		if p.X < min[0] {
			min[0] = p.X
		}
		if p.X > max[0] {
			max[0] = p.X
		}
		if p.Y < min[1] {
			min[1] = p.Y
		}
		if p.Y > max[1] {
			max[1] = p.Y
		}
	}
	max[2] = s.height
	for i := 0; i < 3; i++ {
		min[i] += s.offset[i]
		max[i] += s.offset[i]
	}
	return min, max
}

// PrismKernel implements kernel.Kernel with exact prism meshes.
type PrismKernel struct{}

// New returns a new PrismKernel.
func New() *PrismKernel {
	return &PrismKernel{}
}

// Prism extrudes the ring by height with the base at z = 0. The ring may
// be wound either way; it is normalized to counter-clockwise internally.
func (k *PrismKernel) Prism(ring []kernel.Vec2, height float64) (kernel.Solid, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("prism: ring has %d points, need at least 3", len(ring))
	}
	if height <= 0 {
		return nil, fmt.Errorf("prism: height %v must be positive", height)
	}
	normalized := make([]kernel.Vec2, len(ring))
	copy(normalized, ring)
	area := signedArea(normalized)
	if area == 0 {
		return nil, fmt.Errorf("prism: ring has zero area")
	}
	if area < 0 {
		reverse(normalized)
	}
	return &prismSolid{ring: normalized, height: height}, nil
}

// Translate moves a solid by (x, y, z).
func (k *PrismKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	p := s.(*prismSolid)
	moved := *p
	moved.offset = [3]float64{p.offset[0] + x, p.offset[1] + y, p.offset[2] + z}
	return &moved
}

// ToMesh triangulates the solid: an ear-clipped cap at the bottom and
// top, and two triangles per wall. Vertices are duplicated per facet so
// every triangle carries its flat face normal.
func (k *PrismKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	p := s.(*prismSolid)

	capTris, err := earClip(p.ring)
	if err != nil {
		return nil, fmt.Errorf("prism: %w", err)
	}

	m := &kernel.Mesh{}

	// Bottom cap faces down, so its triangles are emitted clockwise.
	for _, tri := range capTris {
		a, b, c := p.ring[tri[0]], p.ring[tri[2]], p.ring[tri[1]]
		addTriangle(m, p.offset,
			[3]float64{a.X, a.Y, 0}, [3]float64{b.X, b.Y, 0}, [3]float64{c.X, c.Y, 0},
			[3]float64{0, 0, -1})
	}
	// Top cap faces up.
	for _, tri := range capTris {
		a, b, c := p.ring[tri[0]], p.ring[tri[1]], p.ring[tri[2]]
		addTriangle(m, p.offset,
			[3]float64{a.X, a.Y, p.height}, [3]float64{b.X, b.Y, p.height}, [3]float64{c.X, c.Y, p.height},
			[3]float64{0, 0, 1})
	}
	// Walls: one outward-facing quad per ring edge.
	for i := range p.ring {
		a := p.ring[i]
		b := p.ring[(i+1)%len(p.ring)]
		n := outwardNormal(a, b)
		lo0 := [3]float64{a.X, a.Y, 0}
		lo1 := [3]float64{b.X, b.Y, 0}
		hi0 := [3]float64{a.X, a.Y, p.height}
		hi1 := [3]float64{b.X, b.Y, p.height}
		addTriangle(m, p.offset, lo0, lo1, hi1, n)
		addTriangle(m, p.offset, lo0, hi1, hi0, n)
	}

	return m, nil
}

func addTriangle(m *kernel.Mesh, offset [3]float64, a, b, c, n [3]float64) {
	base := uint32(m.VertexCount())
	for _, v := range [][3]float64{a, b, c} {
		m.Vertices = append(m.Vertices,
			float32(v[0]+offset[0]), float32(v[1]+offset[1]), float32(v[2]+offset[2]))
		m.Normals = append(m.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
	}
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// outwardNormal returns the unit normal of wall a→b pointing away from a
// counter-clockwise ring's interior.
func outwardNormal(a, b kernel.Vec2) [3]float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return [3]float64{0, 0, 0}
	}
	return [3]float64{dy / length, -dx / length, 0}
}

// signedArea returns the shoelace area: positive for counter-clockwise
// rings.
func signedArea(ring []kernel.Vec2) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func reverse(ring []kernel.Vec2) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}

// earClip triangulates a simple counter-clockwise polygon into index
// triples over the input ring. Exactly-collinear corners, such as a
// vertex welded into the middle of a straight wall, span no cap area;
// they are pruned up front so they cannot block ear detection.
func earClip(ring []kernel.Vec2) ([][3]int, error) {
	indices := make([]int, len(ring))
	for i := range indices {
		indices[i] = i
	}
	indices = pruneCollinear(ring, indices)

	var tris [][3]int
	for len(indices) > 3 {
		clipped := false
		for i := 0; i < len(indices); i++ {
			prev := indices[(i+len(indices)-1)%len(indices)]
			curr := indices[i]
			next := indices[(i+1)%len(indices)]
			if !isEar(ring, indices, prev, curr, next) {
				continue
			}
			tris = append(tris, [3]int{prev, curr, next})
			indices = append(indices[:i], indices[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("ear clipping stalled; ring is degenerate or self-intersecting")
		}
	}
	tris = append(tris, [3]int{indices[0], indices[1], indices[2]})
	return tris, nil
}

// pruneCollinear drops indices whose corner has zero turn. Removing a
// corner can flatten a neighboring one, so the pass repeats until
// stable.
func pruneCollinear(ring []kernel.Vec2, indices []int) []int {
	for {
		pruned := false
		for i := 0; i < len(indices) && len(indices) > 3; i++ {
			prev := indices[(i+len(indices)-1)%len(indices)]
			curr := indices[i]
			next := indices[(i+1)%len(indices)]
			if cross(ring[prev], ring[curr], ring[next]) == 0 {
				indices = append(indices[:i], indices[i+1:]...)
				pruned = true
				i--
			}
		}
		if !pruned {
			return indices
		}
	}
}

// isEar reports whether the corner prev-curr-next is convex and its
// triangle contains no other remaining ring vertex.
func isEar(ring []kernel.Vec2, remaining []int, prev, curr, next int) bool {
	a, b, c := ring[prev], ring[curr], ring[next]
	if cross(a, b, c) <= 0 {
		return false
	}
	for _, idx := range remaining {
		if idx == prev || idx == curr || idx == next {
			continue
		}
		if pointInTriangle(ring[idx], a, b, c) {
			return false
		}
	}
	return true
}

func cross(a, b, c kernel.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func pointInTriangle(p, a, b, c kernel.Vec2) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
