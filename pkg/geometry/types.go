package geometry

import "github.com/google/uuid"

// ID identifies a vertex, edge, face, or geometry. IDs are unique within
// the process, which makes them a fortiori unique within a geometry.
type ID string

// NilID is the zero ID, used to mark absent references.
const NilID ID = ""

// NewID returns a fresh ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Vertex is a named point in the plane. Identity is solely the ID: two
// vertices at the same coordinates are distinct vertices.
type Vertex struct {
	ID ID      `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Edge is an undirected connection between two vertices, stored with one
// fixed canonical direction V1→V2 assigned at creation. At most one edge
// may exist between any unordered pair of vertices within a geometry.
type Edge struct {
	ID ID `json:"id"`
	V1 ID `json:"v1"`
	V2 ID `json:"v2"`
}

// Other reports whether the edge touches v and returns the opposite
// endpoint when it does.
func (e *Edge) Other(v ID) (ID, bool) {
	switch v {
	case e.V1:
		return e.V2, true
	case e.V2:
		return e.V1, true
	}
	return NilID, false
}

// Touches reports whether v is one of the edge's endpoints.
func (e *Edge) Touches(v ID) bool {
	return e.V1 == v || e.V2 == v
}

// EdgeRef is a face's per-ring-position record of an edge traversal.
// Reverse is true iff the face traverses the edge from V2 to V1, against
// the edge's canonical direction. Traversal direction lives here, on the
// face side, never as mutable state on the Edge itself.
type EdgeRef struct {
	Edge    ID   `json:"edge_id"`
	Reverse bool `json:"reverse"`
}

// Face is a closed ring of edge references in traversal order.
type Face struct {
	ID       ID        `json:"id"`
	EdgeRefs []EdgeRef `json:"edge_refs"`
}

// References reports whether the face's ring contains the given edge.
func (f *Face) References(edge ID) bool {
	for _, ref := range f.EdgeRefs {
		if ref.Edge == edge {
			return true
		}
	}
	return false
}

// Point is one position of an input ring handed to CreateFace. A point
// with a non-zero ID reuses the existing vertex with that ID; this is the
// only reuse signal — coincident coordinates never weld.
type Point struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID ID      `json:"id,omitempty"`
}

// FaceOwner is an external entity (a space, or a future owner type) that
// holds a non-owning back-reference to a face. CreateFace writes the
// reference, DestroyFace clears it.
type FaceOwner interface {
	FaceRef() ID
	SetFaceRef(ID)
}

// StoryRef is the story side of the story↔geometry association. The
// geometry reference is written exactly once, by Registry.InitGeometry.
type StoryRef interface {
	SetGeometryRef(ID)
}
