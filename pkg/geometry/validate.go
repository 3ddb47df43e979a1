package geometry

import "fmt"

// Severity distinguishes blocking problems from advisory ones.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// ValidationError reports an invariant violation found in a geometry.
type ValidationError struct {
	Entity   ID
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Entity != NilID {
		return fmt.Sprintf("%s (entity: %s)", e.Message, e.Entity)
	}
	return e.Message
}

// ValidationWarning is an advisory finding that does not block editing.
type ValidationWarning struct {
	Entity  ID
	Message string
}

// Validate runs all topology checks over a geometry. Errors are blocking
// (the mesh violates a kernel invariant); warnings are advisory (orphaned
// geometry that a cleanup pass may reap).
func Validate(g *Geometry) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError

	errs = append(errs, validateEdgeEndpoints(g)...)
	errs = append(errs, validateFaceRefs(g)...)
	errs = append(errs, validateRings(g)...)
	errs = append(errs, validateUniqueEdgePairs(g)...)

	return errs, validateOrphans(g)
}

// validateEdgeEndpoints checks that every edge's endpoints exist.
func validateEdgeEndpoints(g *Geometry) []ValidationError {
	var errs []ValidationError
	for _, e := range g.Edges() {
		for _, v := range []ID{e.V1, e.V2} {
			if g.Vertex(v) == nil {
				errs = append(errs, ValidationError{
					Entity:   e.ID,
					Message:  fmt.Sprintf("edge endpoint %s does not resolve to a vertex", v),
					Severity: SeverityError,
				})
			}
		}
		if e.V1 == e.V2 {
			errs = append(errs, ValidationError{
				Entity:   e.ID,
				Message:  "edge connects a vertex to itself",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateFaceRefs checks that every edge reference in every face resolves.
func validateFaceRefs(g *Geometry) []ValidationError {
	var errs []ValidationError
	for _, f := range g.Faces() {
		for i, ref := range f.EdgeRefs {
			if g.Edge(ref.Edge) == nil {
				errs = append(errs, ValidationError{
					Entity:   f.ID,
					Message:  fmt.Sprintf("edge reference %d (%s) does not resolve to an edge", i, ref.Edge),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateRings checks that each face's edge references, read as vertex
// transitions with their Reverse flags applied, form a closed ring in
// which consecutive transitions share a vertex.
func validateRings(g *Geometry) []ValidationError {
	var errs []ValidationError
	for _, f := range g.Faces() {
		transitions := make([][2]ID, 0, len(f.EdgeRefs))
		for _, ref := range f.EdgeRefs {
			e := g.Edge(ref.Edge)
			if e == nil {
				continue // reported by validateFaceRefs
			}
			if ref.Reverse {
				transitions = append(transitions, [2]ID{e.V2, e.V1})
			} else {
				transitions = append(transitions, [2]ID{e.V1, e.V2})
			}
		}
		if len(transitions) != len(f.EdgeRefs) {
			continue
		}
		for i, tr := range transitions {
			next := transitions[(i+1)%len(transitions)]
			if tr[1] != next[0] {
				errs = append(errs, ValidationError{
					Entity:   f.ID,
					Message:  fmt.Sprintf("ring break after position %d: transition ends at %s, next starts at %s", i, tr[1], next[0]),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// pairKey is a canonical key for an unordered vertex pair, so {a,b} and
// {b,a} map to the same key.
type pairKey struct {
	lo, hi ID
}

func makePairKey(a, b ID) pairKey {
	if a < b {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}

// validateUniqueEdgePairs checks the at-most-one-edge-per-vertex-pair
// invariant.
func validateUniqueEdgePairs(g *Geometry) []ValidationError {
	var errs []ValidationError
	seen := make(map[pairKey]ID) // first edge that used this pair
	for _, e := range g.Edges() {
		key := makePairKey(e.V1, e.V2)
		if first, exists := seen[key]; exists {
			errs = append(errs, ValidationError{
				Entity:   e.ID,
				Message:  fmt.Sprintf("duplicate edge: vertex pair already connected by edge %s", first),
				Severity: SeverityError,
			})
			continue
		}
		seen[key] = e.ID
	}
	return errs
}

// validateOrphans reports vertices with no incident edge and edges with no
// referencing face. Both are legal between operations, hence warnings.
func validateOrphans(g *Geometry) []ValidationWarning {
	var warnings []ValidationWarning
	for _, v := range g.Vertices() {
		if len(g.EdgesForVertex(v.ID)) == 0 {
			warnings = append(warnings, ValidationWarning{
				Entity:  v.ID,
				Message: "vertex has no incident edges",
			})
		}
	}
	for _, e := range g.Edges() {
		if len(g.FacesForEdge(e.ID)) == 0 {
			warnings = append(warnings, ValidationWarning{
				Entity:  e.ID,
				Message: "edge is not referenced by any face",
			})
		}
	}
	return warnings
}
