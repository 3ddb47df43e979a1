package geometry

import (
	"errors"
	"fmt"
)

// ErrRingTooShort is returned when CreateFace receives fewer than three
// points.
var ErrRingTooShort = errors.New("face ring needs at least 3 points")

// ErrOwnerOccupied is returned when CreateFace's owner already references
// a face. The caller must destroy the old face first; replacing it
// implicitly would hide a stale ring from the UI.
var ErrOwnerOccupied = errors.New("owner already references a face")

// CreateFace assembles a face from an ordered ring of points and attaches
// it to owner. The ring wraps implicitly: the last point connects back to
// the first, so the first point is not repeated at the end.
//
// Each point either carries the ID of an existing vertex (welding that
// vertex into the new ring) or is a fresh coordinate pair, for which a new
// vertex is created. For each consecutive vertex pair an existing edge
// between the two endpoints is reused regardless of its direction; the
// face records Reverse = true when its traversal runs against the edge's
// canonical direction. Missing edges are created with their canonical
// direction equal to the current traversal, so new edges always enter the
// ring with Reverse = false.
//
// Point IDs are checked before anything is mutated: a ring referencing an
// unknown vertex fails with ErrNotFound and leaves the geometry untouched.
func (g *Geometry) CreateFace(points []Point, owner FaceOwner) (*Face, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("face ring has %d points: %w", len(points), ErrRingTooShort)
	}
	if owner.FaceRef() != NilID {
		return nil, fmt.Errorf("face %s: %w", owner.FaceRef(), ErrOwnerOccupied)
	}
	for _, p := range points {
		if p.ID != NilID && g.vertices[p.ID] == nil {
			return nil, fmt.Errorf("point references vertex %s: %w", p.ID, ErrNotFound)
		}
	}

	// Resolve one vertex per ring position, creating the fresh ones.
	ring := make([]ID, len(points))
	for i, p := range points {
		if p.ID != NilID {
			ring[i] = p.ID
			continue
		}
		v := &Vertex{ID: NewID(), X: p.X, Y: p.Y}
		g.AddVertex(v)
		ring[i] = v.ID
	}

	// Resolve one edge per consecutive vertex pair, closing the ring.
	refs := make([]EdgeRef, 0, len(ring))
	for i, from := range ring {
		to := ring[(i+1)%len(ring)]
		if e := g.EdgeBetween(from, to); e != nil {
			refs = append(refs, EdgeRef{Edge: e.ID, Reverse: e.V1 == to})
			continue
		}
		e := &Edge{ID: NewID(), V1: from, V2: to}
		g.AddEdge(e)
		refs = append(refs, EdgeRef{Edge: e.ID})
	}

	f := &Face{ID: NewID(), EdgeRefs: refs}
	g.faces[f.ID] = f
	g.faceOrder = append(g.faceOrder, f.ID)
	owner.SetFaceRef(f.ID)
	return f, nil
}

// DestroyFace removes the face referenced by owner and clears the owner's
// back-reference. Edges and vertices are left in place even when the face
// was their last referent; Validate reports them as orphans and callers
// that want a clean mesh remove them explicitly.
func (g *Geometry) DestroyFace(owner FaceOwner) error {
	id := owner.FaceRef()
	if id == NilID {
		return fmt.Errorf("owner references no face: %w", ErrNotFound)
	}
	if _, ok := g.faces[id]; !ok {
		return fmt.Errorf("face %s: %w", id, ErrNotFound)
	}
	delete(g.faces, id)
	g.faceOrder = removeID(g.faceOrder, id)
	owner.SetFaceRef(NilID)
	return nil
}
