// Package model defines the host application model around the geometry
// kernel: a project of stories, each owning one geometry, and the spaces
// that hold non-owning face references into it.
package model

import (
	"fmt"

	"github.com/Mkellyeng/floorspace/pkg/geometry"
)

// DefaultStoryHeight is the default floor-to-floor height in centimeters.
const DefaultStoryHeight = 300

// Space is a room or zone on a story. It holds a non-owning reference to
// its face; the geometry kernel writes and clears it.
type Space struct {
	ID     geometry.ID `json:"id"`
	Name   string      `json:"name"`
	FaceID geometry.ID `json:"face_id,omitempty"`
}

// FaceRef returns the space's face reference.
func (s *Space) FaceRef() geometry.ID { return s.FaceID }

// SetFaceRef writes the space's face reference.
func (s *Space) SetFaceRef(id geometry.ID) { s.FaceID = id }

// Story is one floor of the building. It references (but does not own)
// its geometry via GeometryID, written once at association time.
type Story struct {
	ID         geometry.ID `json:"id"`
	Name       string      `json:"name"`
	Height     float64     `json:"height"`
	Elevation  float64     `json:"elevation"`
	GeometryID geometry.ID `json:"geometry_id,omitempty"`
	Spaces     []*Space    `json:"spaces"`
}

// SetGeometryRef writes the story's geometry reference.
func (s *Story) SetGeometryRef(id geometry.ID) { s.GeometryID = id }

// Space returns the story's space with the given name, or nil.
func (s *Story) Space(name string) *Space {
	for _, sp := range s.Spaces {
		if sp.Name == name {
			return sp
		}
	}
	return nil
}

// Project is the top-level editing model: the story list plus the
// geometry registry holding one geometry per story.
type Project struct {
	Stories  []*Story           `json:"stories"`
	Registry *geometry.Registry `json:"-"`
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{Registry: geometry.NewRegistry()}
}

// AddStory appends a story, creates its empty geometry, and associates
// the two. Story names must be unique within the project.
func (p *Project) AddStory(name string, height float64) (*Story, error) {
	if p.Story(name) != nil {
		return nil, fmt.Errorf("story %q already exists", name)
	}
	if height <= 0 {
		height = DefaultStoryHeight
	}
	story := &Story{
		ID:        geometry.NewID(),
		Name:      name,
		Height:    height,
		Elevation: p.totalHeight(),
	}
	p.Registry.InitGeometry(geometry.NewGeometry(), story)
	p.Stories = append(p.Stories, story)
	return story, nil
}

// AddSpace appends a space to the named story. Space names must be unique
// within their story.
func (p *Project) AddSpace(storyName, spaceName string) (*Space, error) {
	story := p.Story(storyName)
	if story == nil {
		return nil, fmt.Errorf("story %q not found", storyName)
	}
	if story.Space(spaceName) != nil {
		return nil, fmt.Errorf("space %q already exists on story %q", spaceName, storyName)
	}
	space := &Space{ID: geometry.NewID(), Name: spaceName}
	story.Spaces = append(story.Spaces, space)
	return space, nil
}

// Story returns the story with the given name, or nil.
func (p *Project) Story(name string) *Story {
	for _, s := range p.Stories {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// MustStory returns the story with the given name, or panics.
func (p *Project) MustStory(name string) *Story {
	s := p.Story(name)
	if s == nil {
		panic(fmt.Sprintf("model: no story named %q", name))
	}
	return s
}

// Geometry returns the geometry owned by the named story, or nil.
func (p *Project) Geometry(storyName string) *geometry.Geometry {
	story := p.Story(storyName)
	if story == nil {
		return nil
	}
	return p.Registry.Geometry(story.GeometryID)
}

// StoryCount returns the number of stories.
func (p *Project) StoryCount() int {
	return len(p.Stories)
}

// totalHeight sums the heights of all stories, giving the elevation of
// the next story to be added.
func (p *Project) totalHeight() float64 {
	var sum float64
	for _, s := range p.Stories {
		sum += s.Height
	}
	return sum
}
