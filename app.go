package main

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Mkellyeng/floorspace/pkg/config"
	"github.com/Mkellyeng/floorspace/pkg/geometry"
	"github.com/Mkellyeng/floorspace/pkg/kernel"
	"github.com/Mkellyeng/floorspace/pkg/kernel/prism"
	"github.com/Mkellyeng/floorspace/pkg/kernel/sdfx"
	"github.com/Mkellyeng/floorspace/pkg/model"
	"github.com/Mkellyeng/floorspace/pkg/script"
	"github.com/Mkellyeng/floorspace/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to spaces.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via
// bindings. Direct mutations (the draw tools) and script evaluation both
// funnel through the mutex, so each geometry only ever sees one mutation
// at a time.
type App struct {
	ctx    context.Context
	cfg    config.Config
	log    *logrus.Logger
	engine *script.Engine
	kernel kernel.Kernel

	mu      sync.Mutex
	project *model.Project
}

// PointData is the JSON point shape the frontend sends when drawing a
// ring. ID is set when the frontend snapped the point to an existing
// vertex.
type PointData struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID string  `json:"id,omitempty"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	SpaceName string    `json:"spaceName"`
	StoryName string    `json:"storyName"`
	Color     string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// OpResult reports the outcome of a single direct mutation.
type OpResult struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewApp creates a new App with a script engine and the configured
// preview kernel.
func NewApp(cfg config.Config, log *logrus.Logger) *App {
	if log == nil {
		log = logrus.New()
	}
	var k kernel.Kernel
	switch cfg.PreviewBackend {
	case config.BackendSdfx:
		k = sdfx.NewWithResolution(cfg.MeshCells)
	default:
		k = prism.New()
	}
	return &App{
		cfg:     cfg,
		log:     log,
		engine:  script.NewEngineWithTimeout(time.Duration(cfg.EvalTimeoutSeconds) * time.Second),
		kernel:  k,
		project: model.NewProject(),
	}
}

// startup is called by Wails on app startup. The context is saved so we
// can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.log.WithField("backend", a.cfg.PreviewBackend).Info("floorspace backend started")
}

// NewPlan discards the current project and starts an empty one.
func (a *App) NewPlan() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.project = model.NewProject()
	a.log.Info("new plan")
}

// AddStory creates a story with its empty geometry. A zero height uses
// the configured default.
func (a *App) AddStory(name string, height float64) OpResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if height <= 0 {
		height = a.cfg.DefaultStoryHeight
	}
	story, err := a.project.AddStory(name, height)
	if err != nil {
		a.log.WithError(err).Warn("add story failed")
		return OpResult{Error: err.Error()}
	}
	return OpResult{OK: true, ID: string(story.ID)}
}

// AddSpace creates a space on a story.
func (a *App) AddSpace(storyName, spaceName string) OpResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	space, err := a.project.AddSpace(storyName, spaceName)
	if err != nil {
		a.log.WithError(err).Warn("add space failed")
		return OpResult{Error: err.Error()}
	}
	return OpResult{OK: true, ID: string(space.ID)}
}

// DrawFace assembles a face from the ring the user drew and attaches it
// to the named space. Points carrying an id weld to existing vertices.
func (a *App) DrawFace(storyName, spaceName string, points []PointData) OpResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	story := a.project.Story(storyName)
	if story == nil {
		return OpResult{Error: "story " + storyName + " not found"}
	}
	space := story.Space(spaceName)
	if space == nil {
		return OpResult{Error: "space " + spaceName + " not found on story " + storyName}
	}

	ring := make([]geometry.Point, len(points))
	for i, p := range points {
		ring[i] = geometry.Point{X: p.X, Y: p.Y, ID: geometry.ID(p.ID)}
	}

	f, err := a.project.Geometry(storyName).CreateFace(ring, space)
	if err != nil {
		a.log.WithError(err).Warn("draw face failed")
		return OpResult{Error: err.Error()}
	}
	a.log.WithFields(logrus.Fields{
		"story": storyName,
		"space": spaceName,
		"face":  f.ID,
	}).Debug("face drawn")
	return OpResult{OK: true, ID: string(f.ID)}
}

// EraseFace removes the named space's face and clears its reference.
func (a *App) EraseFace(storyName, spaceName string) OpResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	story := a.project.Story(storyName)
	if story == nil {
		return OpResult{Error: "story " + storyName + " not found"}
	}
	space := story.Space(spaceName)
	if space == nil {
		return OpResult{Error: "space " + spaceName + " not found on story " + storyName}
	}

	if err := a.project.Geometry(storyName).DestroyFace(space); err != nil {
		return OpResult{Error: err.Error()}
	}
	return OpResult{OK: true}
}

// Preview tessellates the current project for the 3-D view.
func (a *App) Preview() EvalResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.render(a.project)
}

// Evaluate takes DSL source, builds a project from it, and returns mesh
// data + errors. On success the built project replaces the current one.
// This is the binding called by the frontend script editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{Meshes: []MeshData{}, Errors: []EvalErrorData{}}

	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.WithError(err).Error("evaluate fatal error")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Render while the new project is still exclusively owned, then
	// publish it. Rendering after the swap would let the draw-tool
	// bindings mutate the project mid-walk.
	result = a.render(p)

	a.mu.Lock()
	a.project = p
	a.mu.Unlock()

	return result
}

// render tessellates a project into frontend mesh data. Callers hold the
// mutex or own the project exclusively.
func (a *App) render(p *model.Project) EvalResult {
	result := EvalResult{Meshes: []MeshData{}, Errors: []EvalErrorData{}}

	meshes, err := tessellate.Tessellate(p, a.kernel)
	if err != nil {
		a.log.WithError(err).Error("tessellate error")
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:  m.Vertices,
			Normals:   m.Normals,
			Indices:   m.Indices,
			SpaceName: m.SpaceName,
			StoryName: m.StoryName,
			Color:     colorPalette[i%len(colorPalette)],
		})
	}
	return result
}
