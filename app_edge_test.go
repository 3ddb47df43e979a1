package main

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Mkellyeng/floorspace/pkg/config"
)

func TestE2EEmptySource(t *testing.T) {
	app := NewApp(config.Default(), nil)
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	// Slices must be non-nil so JSON serializes them as [] not null.
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
}

func TestE2ESyntaxError(t *testing.T) {
	app := NewApp(config.Default(), nil)

	// Valid code on line 1, broken code on line 2 so line info is
	// meaningful.
	result := app.Evaluate("(+ 1 2)\n(story \"ground\"")

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}
	if result.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
}

func TestE2EEvalErrorDoesNotReplaceProject(t *testing.T) {
	app := NewApp(config.Default(), nil)

	result := app.Evaluate(`(story "ground") (space "ground" "kitchen")`)
	if len(result.Errors) != 0 {
		t.Fatalf("setup eval failed: %v", result.Errors)
	}

	// A failing script must leave the last good project in place.
	result = app.Evaluate(`(space "nowhere" "room")`)
	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors")
	}
	if app.project.Story("ground") == nil {
		t.Error("failed evaluation replaced the current project")
	}
}

func TestDrawFaceUnknownTargets(t *testing.T) {
	app := NewApp(config.Default(), nil)
	app.AddStory("ground", 300)

	res := app.DrawFace("attic", "box", []PointData{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	if res.OK || !strings.Contains(res.Error, "attic") {
		t.Errorf("DrawFace on missing story: %+v", res)
	}

	res = app.DrawFace("ground", "box", []PointData{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	if res.OK || !strings.Contains(res.Error, "box") {
		t.Errorf("DrawFace on missing space: %+v", res)
	}
}

func TestEraseFaceWithoutFace(t *testing.T) {
	app := NewApp(config.Default(), nil)
	app.AddStory("ground", 300)
	app.AddSpace("ground", "kitchen")

	if res := app.EraseFace("ground", "kitchen"); res.OK {
		t.Error("EraseFace of a faceless space should fail")
	}
}

func TestNewPlanResets(t *testing.T) {
	app := NewApp(config.Default(), nil)
	app.AddStory("ground", 300)

	app.NewPlan()
	if app.project.StoryCount() != 0 {
		t.Errorf("story count after NewPlan = %d, want 0", app.project.StoryCount())
	}
	// The old story name is free again.
	if res := app.AddStory("ground", 300); !res.OK {
		t.Errorf("AddStory after NewPlan: %s", res.Error)
	}
}

func TestEvaluateConcurrentWithDrawTools(t *testing.T) {
	app := NewApp(config.Default(), nil)

	// Evaluate must never render a project the draw-tool bindings can
	// reach. Hammer both sides; the race detector flags any overlap.
	source := `(story "ground")
(space "ground" "kitchen")
(face "ground" "kitchen" (point 0 0) (point 0 50) (point 50 50) (point 50 0))`

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			app.Evaluate(source)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			name := fmt.Sprintf("floor-%d", i)
			app.AddStory(name, 300)
			app.AddSpace(name, "room")
			app.DrawFace(name, "room", []PointData{
				{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
			})
			app.EraseFace(name, "room")
		}
	}()
	wg.Wait()

	if app.project.Story("ground") == nil {
		t.Error("evaluated story missing after concurrent mutation")
	}
}

func TestAddStoryDuplicate(t *testing.T) {
	app := NewApp(config.Default(), nil)

	if res := app.AddStory("ground", 300); !res.OK {
		t.Fatalf("AddStory: %s", res.Error)
	}
	if res := app.AddStory("ground", 300); res.OK {
		t.Error("duplicate AddStory should fail")
	}
}
