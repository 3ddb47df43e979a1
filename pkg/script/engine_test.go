package script

import (
	"strings"
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	p, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if p == nil {
		t.Fatal("expected non-nil project")
	}
	if p.StoryCount() != 0 {
		t.Errorf("expected empty project, got %d stories", p.StoryCount())
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	p, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if p == nil || p.StoryCount() != 0 {
		t.Errorf("expected empty project")
	}
}

func TestEvaluatePlainLisp(t *testing.T) {
	eng := NewEngine()

	// Valid Lisp that touches no builtin leaves the project empty.
	p, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if p.StoryCount() != 0 {
		t.Errorf("expected 0 stories, got %d", p.StoryCount())
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	p, evalErrs, err := eng.Evaluate("(story \"ground\"")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if p != nil {
		t.Error("expected nil project on parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced parens")
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	eng := NewEngine()

	// Space on a story that does not exist.
	_, evalErrs, err := eng.Evaluate(`(space "penthouse" "pool")`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	found := false
	for _, e := range evalErrs {
		if strings.Contains(e.Message, "penthouse") {
			found = true
		}
	}
	if !found {
		t.Errorf("error should mention the missing story: %v", evalErrs)
	}
}

func TestEvaluateBuildsPlan(t *testing.T) {
	eng := NewEngine()

	source := `
; ground floor with one square room
(story "ground" :height 300)
(space "ground" "kitchen")
(face "ground" "kitchen"
  (point 0 0) (point 0 50) (point 50 50) (point 50 0))
`
	p, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}

	if p.StoryCount() != 1 {
		t.Fatalf("story count = %d, want 1", p.StoryCount())
	}
	story := p.Story("ground")
	if story.Height != 300 {
		t.Errorf("story height = %v, want 300", story.Height)
	}

	g := p.Geometry("ground")
	if g.VertexCount() != 4 || g.EdgeCount() != 4 || g.FaceCount() != 1 {
		t.Errorf("geometry = %d vertices, %d edges, %d faces; want 4, 4, 1",
			g.VertexCount(), g.EdgeCount(), g.FaceCount())
	}

	space := story.Space("kitchen")
	if space == nil || space.FaceID == "" {
		t.Error("kitchen has no face reference")
	}
}

func TestEvaluateWeldsThroughVertexBuiltin(t *testing.T) {
	eng := NewEngine()

	// The second square reuses the first square's corners 2 and 3, so
	// the x=50 wall is shared.
	source := `
(story "ground")
(space "ground" "kitchen")
(space "ground" "hall")
(face "ground" "kitchen"
  (point 0 0) (point 0 50) (point 50 50) (point 50 0))
(face "ground" "hall"
  (vertex "ground" 3) (vertex "ground" 2) (point 100 50) (point 100 0))
`
	p, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}

	g := p.Geometry("ground")
	if g.VertexCount() != 6 {
		t.Errorf("vertex count = %d, want 6", g.VertexCount())
	}
	if g.EdgeCount() != 7 {
		t.Errorf("edge count = %d, want 7", g.EdgeCount())
	}
	if g.FaceCount() != 2 {
		t.Errorf("face count = %d, want 2", g.FaceCount())
	}
}

func TestEvaluateErase(t *testing.T) {
	eng := NewEngine()

	source := `
(story "ground")
(space "ground" "kitchen")
(face "ground" "kitchen"
  (point 0 0) (point 0 50) (point 50 50) (point 50 0))
(erase "ground" "kitchen")
`
	p, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}

	g := p.Geometry("ground")
	if g.FaceCount() != 0 {
		t.Errorf("face count after erase = %d, want 0", g.FaceCount())
	}
	if space := p.Story("ground").Space("kitchen"); space.FaceID != "" {
		t.Error("face ref not cleared after erase")
	}
}

func TestEvaluateIsolation(t *testing.T) {
	eng := NewEngine()

	// Each evaluation starts from a fresh project.
	if _, _, err := eng.Evaluate(`(story "ground")`); err != nil {
		t.Fatalf("first Evaluate: %v", err)
	}
	p, evalErrs, err := eng.Evaluate(`(story "ground")`)
	if err != nil {
		t.Fatalf("second Evaluate: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("second evaluation saw state from the first: %v", evalErrs)
	}
	if p.StoryCount() != 1 {
		t.Errorf("story count = %d, want 1", p.StoryCount())
	}
}
