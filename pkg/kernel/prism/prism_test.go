package prism

import (
	"testing"

	"github.com/Mkellyeng/floorspace/pkg/kernel"
)

func unitSquare() []kernel.Vec2 {
	return []kernel.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
}

func TestPrismRejectsBadInput(t *testing.T) {
	k := New()
	if _, err := k.Prism(unitSquare()[:2], 300); err == nil {
		t.Error("Prism with 2 points should fail")
	}
	if _, err := k.Prism(unitSquare(), 0); err == nil {
		t.Error("Prism with zero height should fail")
	}
}

func TestPrismBoundingBox(t *testing.T) {
	k := New()
	s, err := k.Prism(unitSquare(), 300)
	if err != nil {
		t.Fatalf("Prism: %v", err)
	}

	min, max := s.BoundingBox()
	if min != [3]float64{0, 0, 0} {
		t.Errorf("min = %v, want origin", min)
	}
	if max != [3]float64{100, 100, 300} {
		t.Errorf("max = %v, want (100,100,300)", max)
	}

	moved := k.Translate(s, 10, 20, 30)
	min, max = moved.BoundingBox()
	if min != [3]float64{10, 20, 30} {
		t.Errorf("translated min = %v, want (10,20,30)", min)
	}
	if max != [3]float64{110, 120, 330} {
		t.Errorf("translated max = %v, want (110,120,330)", max)
	}
}

func TestPrismMeshTriangleCount(t *testing.T) {
	// An N-gon prism meshes to 2(N-2) cap triangles plus 2N wall
	// triangles.
	tests := []struct {
		name string
		ring []kernel.Vec2
		want int
	}{
		{"triangle", []kernel.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 25, Y: 50}}, 8},
		{"square", unitSquare(), 12},
		{"L-shape", []kernel.Vec2{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50},
			{X: 50, Y: 50}, {X: 50, Y: 100}, {X: 0, Y: 100},
		}, 20},
	}
	k := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := k.Prism(tt.ring, 300)
			if err != nil {
				t.Fatalf("Prism: %v", err)
			}
			m, err := k.ToMesh(s)
			if err != nil {
				t.Fatalf("ToMesh: %v", err)
			}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
			if m.VertexCount() != 3*tt.want {
				t.Errorf("VertexCount() = %d, want %d", m.VertexCount(), 3*tt.want)
			}
		})
	}
}

func TestPrismClockwiseRingNormalized(t *testing.T) {
	// The same square wound clockwise must produce the same mesh size.
	cw := []kernel.Vec2{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}}

	k := New()
	s, err := k.Prism(cw, 300)
	if err != nil {
		t.Fatalf("Prism: %v", err)
	}
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", m.TriangleCount())
	}
}

func TestPrismWallNormalsPointOutward(t *testing.T) {
	k := New()
	s, err := k.Prism(unitSquare(), 300)
	if err != nil {
		t.Fatalf("Prism: %v", err)
	}
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}

	// Centroid of the square is (50,50). Every wall normal must point
	// away from it.
	for i := 0; i < m.VertexCount(); i++ {
		nx := float64(m.Normals[i*3])
		ny := float64(m.Normals[i*3+1])
		nz := float64(m.Normals[i*3+2])
		if nz != 0 {
			continue // cap vertex
		}
		vx := float64(m.Vertices[i*3]) - 50
		vy := float64(m.Vertices[i*3+1]) - 50
		if nx*vx+ny*vy <= 0 {
			t.Errorf("vertex %d: wall normal (%v,%v) points inward", i, nx, ny)
		}
	}
}

func TestPrismMeshesMidWallVertex(t *testing.T) {
	// A vertex welded into the middle of a straight wall makes one ring
	// corner exactly collinear. The caps triangulate as if the corner
	// were absent, while the walls keep one quad per ring edge.
	ring := []kernel.Vec2{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0},
		{X: 100, Y: 100}, {X: 0, Y: 100},
	}

	k := New()
	s, err := k.Prism(ring, 300)
	if err != nil {
		t.Fatalf("Prism: %v", err)
	}
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}

	// 2 triangles per cap for the effective square, 2 per wall edge.
	if got := m.TriangleCount(); got != 14 {
		t.Errorf("TriangleCount() = %d, want 14", got)
	}
}

func TestPrismRejectsDegenerateRing(t *testing.T) {
	// Three collinear points enclose no area.
	k := New()
	if _, err := k.Prism([]kernel.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}}, 300); err == nil {
		t.Error("Prism of a collinear ring should fail")
	}
}
