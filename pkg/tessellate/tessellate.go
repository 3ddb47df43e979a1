// Package tessellate walks a project and produces triangle meshes for
// the 3-D preview using an extrusion kernel. One mesh is produced per
// space that has a face: the space's floor ring extruded by its story's
// height and lifted to the story's elevation.
package tessellate

import (
	"fmt"

	"github.com/Mkellyeng/floorspace/pkg/geometry"
	"github.com/Mkellyeng/floorspace/pkg/kernel"
	"github.com/Mkellyeng/floorspace/pkg/model"
)

// Tessellate extrudes every space face in the project through the given
// kernel. The tessellator is read-only and never mutates the project or
// its geometries. Spaces without a face are skipped.
func Tessellate(p *model.Project, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if p == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, story := range p.Stories {
		g := p.Registry.Geometry(story.GeometryID)
		if g == nil {
			return nil, fmt.Errorf("tessellate: story %q has no geometry", story.Name)
		}
		for _, space := range story.Spaces {
			if space.FaceID == geometry.NilID {
				continue
			}
			m, err := meshSpace(g, story, space, k)
			if err != nil {
				return nil, fmt.Errorf("tessellate: space %q on story %q: %w", space.Name, story.Name, err)
			}
			meshes = append(meshes, m)
		}
	}
	return meshes, nil
}

// meshSpace extrudes one space's face ring into a labeled mesh.
func meshSpace(g *geometry.Geometry, story *model.Story, space *model.Space, k kernel.Kernel) (*kernel.Mesh, error) {
	f := g.Face(space.FaceID)
	if f == nil {
		return nil, fmt.Errorf("face %s does not resolve", space.FaceID)
	}

	verts := g.FaceVertices(f)
	ring := make([]kernel.Vec2, len(verts))
	for i, v := range verts {
		ring[i] = kernel.Vec2{X: v.X, Y: v.Y}
	}

	solid, err := k.Prism(ring, story.Height)
	if err != nil {
		return nil, err
	}
	if story.Elevation != 0 {
		solid = k.Translate(solid, 0, 0, story.Elevation)
	}

	m, err := k.ToMesh(solid)
	if err != nil {
		return nil, err
	}
	m.SpaceName = space.Name
	m.StoryName = story.Name
	return m, nil
}
