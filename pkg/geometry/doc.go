// Package geometry implements the planar mesh kernel for Floorspace.
// Each story owns one Geometry: a shared topological structure of
// vertices, edges, and faces in which adjacent spaces reuse boundary
// geometry instead of duplicating it.
package geometry
