package geometry

// Read-only traversal helpers. All of these are pure: they scan the
// face edge-reference lists without mutating anything, and repeated calls
// on an unchanged geometry return equal results in insertion order.

// FacesForVertex returns the faces whose ring contains an edge incident
// to the given vertex. A vertex returned for two or more faces is a
// shared (welded) vertex.
func (g *Geometry) FacesForVertex(vertex ID) []*Face {
	var out []*Face
	for _, fid := range g.faceOrder {
		f := g.faces[fid]
		for _, ref := range f.EdgeRefs {
			e := g.edges[ref.Edge]
			if e != nil && e.Touches(vertex) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// FacesForEdge returns the faces whose ring contains the given edge.
// An edge referenced by exactly two faces is an interior (shared) edge;
// by one, a boundary edge.
func (g *Geometry) FacesForEdge(edge ID) []*Face {
	var out []*Face
	for _, fid := range g.faceOrder {
		if f := g.faces[fid]; f.References(edge) {
			out = append(out, f)
		}
	}
	return out
}

// EdgesForVertex returns the edges incident to the given vertex, in
// insertion order.
func (g *Geometry) EdgesForVertex(vertex ID) []*Edge {
	var out []*Edge
	for _, eid := range g.edgeOrder {
		if e := g.edges[eid]; e.Touches(vertex) {
			out = append(out, e)
		}
	}
	return out
}

// FaceEdges returns the face's edges in ring order. Edge references that
// no longer resolve are skipped; Validate reports them.
func (g *Geometry) FaceEdges(f *Face) []*Edge {
	out := make([]*Edge, 0, len(f.EdgeRefs))
	for _, ref := range f.EdgeRefs {
		if e := g.edges[ref.Edge]; e != nil {
			out = append(out, e)
		}
	}
	return out
}

// FaceVertices reconstructs the face's vertex ring in traversal order by
// taking the start vertex of each edge reference, honoring the reference's
// Reverse flag. The result has one vertex per ring position and does not
// repeat the first vertex at the end.
func (g *Geometry) FaceVertices(f *Face) []*Vertex {
	out := make([]*Vertex, 0, len(f.EdgeRefs))
	for _, ref := range f.EdgeRefs {
		e := g.edges[ref.Edge]
		if e == nil {
			continue
		}
		start := e.V1
		if ref.Reverse {
			start = e.V2
		}
		if v := g.vertices[start]; v != nil {
			out = append(out, v)
		}
	}
	return out
}
