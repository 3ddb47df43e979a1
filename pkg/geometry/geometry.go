package geometry

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation names a vertex, edge, or face
// that is not present in the geometry. Removal of an absent entity always
// fails with this error; it is never a silent no-op.
var ErrNotFound = errors.New("not found")

// Geometry is the full mesh belonging to one story. Entities live in maps
// keyed by ID for O(1) lookup and removal; explicit order slices preserve
// insertion order for iteration, which the UI relies on for stable
// rendering and selection.
type Geometry struct {
	id ID

	vertices    map[ID]*Vertex
	vertexOrder []ID

	edges     map[ID]*Edge
	edgeOrder []ID

	faces     map[ID]*Face
	faceOrder []ID
}

// NewGeometry creates an empty geometry with a fresh ID.
func NewGeometry() *Geometry {
	return &Geometry{
		id:       NewID(),
		vertices: make(map[ID]*Vertex),
		edges:    make(map[ID]*Edge),
		faces:    make(map[ID]*Face),
	}
}

// ID returns the geometry's identity.
func (g *Geometry) ID() ID {
	return g.id
}

// AddVertex appends a fully-formed vertex. No deduplication is performed:
// the caller owns vertex identity, and coincident coordinates are allowed.
func (g *Geometry) AddVertex(v *Vertex) {
	g.vertices[v.ID] = v
	g.vertexOrder = append(g.vertexOrder, v.ID)
}

// Vertex returns the vertex with the given ID, or nil.
func (g *Geometry) Vertex(id ID) *Vertex {
	return g.vertices[id]
}

// Vertices returns all vertices in insertion order.
func (g *Geometry) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.vertexOrder))
	for _, id := range g.vertexOrder {
		out = append(out, g.vertices[id])
	}
	return out
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.vertices)
}

// RemoveVertex removes the vertex with the given ID. It does not check
// for edges still referencing the vertex; not orphaning edges is the
// caller's responsibility.
func (g *Geometry) RemoveVertex(id ID) error {
	if _, ok := g.vertices[id]; !ok {
		return fmt.Errorf("vertex %s: %w", id, ErrNotFound)
	}
	delete(g.vertices, id)
	g.vertexOrder = removeID(g.vertexOrder, id)
	return nil
}

// AddEdge appends a fully-formed edge. No deduplication by endpoint pair
// is performed here; that is the face assembler's job.
func (g *Geometry) AddEdge(e *Edge) {
	g.edges[e.ID] = e
	g.edgeOrder = append(g.edgeOrder, e.ID)
}

// Edge returns the edge with the given ID, or nil.
func (g *Geometry) Edge(id ID) *Edge {
	return g.edges[id]
}

// Edges returns all edges in insertion order.
func (g *Geometry) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		out = append(out, g.edges[id])
	}
	return out
}

// EdgeCount returns the number of edges.
func (g *Geometry) EdgeCount() int {
	return len(g.edges)
}

// RemoveEdge removes the edge with the given ID.
func (g *Geometry) RemoveEdge(id ID) error {
	if _, ok := g.edges[id]; !ok {
		return fmt.Errorf("edge %s: %w", id, ErrNotFound)
	}
	delete(g.edges, id)
	g.edgeOrder = removeID(g.edgeOrder, id)
	return nil
}

// EdgeBetween returns the edge whose unordered endpoint pair is {a, b},
// or nil if no such edge exists. The scan is linear; geometries stay small
// enough (one story's floorplan) that this is fine.
func (g *Geometry) EdgeBetween(a, b ID) *Edge {
	for _, id := range g.edgeOrder {
		e := g.edges[id]
		if (e.V1 == a && e.V2 == b) || (e.V1 == b && e.V2 == a) {
			return e
		}
	}
	return nil
}

// Face returns the face with the given ID, or nil.
func (g *Geometry) Face(id ID) *Face {
	return g.faces[id]
}

// Faces returns all faces in insertion order.
func (g *Geometry) Faces() []*Face {
	out := make([]*Face, 0, len(g.faceOrder))
	for _, id := range g.faceOrder {
		out = append(out, g.faces[id])
	}
	return out
}

// FaceCount returns the number of faces.
func (g *Geometry) FaceCount() int {
	return len(g.faces)
}

func removeID(ids []ID, id ID) []ID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Registry is the per-project collection of geometries, one per story.
type Registry struct {
	geometries map[ID]*Geometry
	order      []ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{geometries: make(map[ID]*Geometry)}
}

// InitGeometry adds a fresh geometry to the registry and establishes the
// sole owning link from the story to it. The caller guarantees one call
// per story with an empty geometry.
func (r *Registry) InitGeometry(g *Geometry, story StoryRef) {
	r.geometries[g.id] = g
	r.order = append(r.order, g.id)
	story.SetGeometryRef(g.id)
}

// Geometry returns the geometry with the given ID, or nil.
func (r *Registry) Geometry(id ID) *Geometry {
	return r.geometries[id]
}

// Geometries returns all geometries in registration order.
func (r *Registry) Geometries() []*Geometry {
	out := make([]*Geometry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.geometries[id])
	}
	return out
}

// Count returns the number of registered geometries.
func (r *Registry) Count() int {
	return len(r.geometries)
}
