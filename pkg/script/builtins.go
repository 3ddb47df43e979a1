package script

import (
	"fmt"
	"strings"

	"github.com/Mkellyeng/floorspace/pkg/geometry"
	"github.com/Mkellyeng/floorspace/pkg/model"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a geometry.Point so it can be returned from `point` or
// `vertex` and consumed by `face`.
type sexpPoint struct {
	p geometry.Point
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	if s.p.ID != geometry.NilID {
		return fmt.Sprintf("(vertex %s)", s.p.ID)
	}
	return fmt.Sprintf("(point %.1f %.1f)", s.p.X, s.p.Y)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a geometry.Point from a sexpPoint.
func toPoint(s zygo.Sexp) (geometry.Point, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	return geometry.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the floorplan DSL builtins into a zygomys
// environment. The builtins operate on the provided Project, populating
// its stories, spaces, and geometries during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, project *model.Project) {

	// -----------------------------------------------------------------------
	// (story "ground" :height 300)
	// -----------------------------------------------------------------------
	env.AddFunction("story", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("story requires a name")
		}
		storyName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("story: name: %w", err)
		}

		var height float64
		if v, ok := pa.kw["height"]; ok {
			if height, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("story: height: %w", err)
			}
		}

		if _, err := project.AddStory(storyName, height); err != nil {
			return zygo.SexpNull, fmt.Errorf("story: %w", err)
		}
		return &zygo.SexpStr{S: storyName}, nil
	})

	// -----------------------------------------------------------------------
	// (space "ground" "kitchen")
	// -----------------------------------------------------------------------
	env.AddFunction("space", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("space requires a story name and a space name")
		}
		storyName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("space: story: %w", err)
		}
		spaceName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("space: name: %w", err)
		}

		if _, err := project.AddSpace(storyName, spaceName); err != nil {
			return zygo.SexpNull, fmt.Errorf("space: %w", err)
		}
		return &zygo.SexpStr{S: spaceName}, nil
	})

	// -----------------------------------------------------------------------
	// (point 0 50)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("point requires x and y")
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		return &sexpPoint{p: geometry.Point{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (vertex "ground" 2) — the story's third vertex, by insertion order.
	// Welds the existing vertex into the face under construction.
	// -----------------------------------------------------------------------
	env.AddFunction("vertex", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("vertex requires a story name and an index")
		}
		storyName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vertex: story: %w", err)
		}
		idx, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vertex: index: %w", err)
		}

		g := project.Geometry(storyName)
		if g == nil {
			return zygo.SexpNull, fmt.Errorf("vertex: story %q not found", storyName)
		}
		verts := g.Vertices()
		if idx < 0 || idx >= len(verts) {
			return zygo.SexpNull, fmt.Errorf("vertex: index %d out of range (story %q has %d vertices)", idx, storyName, len(verts))
		}
		v := verts[idx]
		return &sexpPoint{p: geometry.Point{X: v.X, Y: v.Y, ID: v.ID}}, nil
	})

	// -----------------------------------------------------------------------
	// (face "ground" "kitchen" (point 0 0) (point 100 0) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("face requires a story name and a space name")
		}
		storyName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: story: %w", err)
		}
		spaceName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: space: %w", err)
		}

		points := make([]geometry.Point, 0, len(args)-2)
		for i, arg := range args[2:] {
			p, err := toPoint(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: ring position %d: %w", i, err)
			}
			points = append(points, p)
		}

		story := project.Story(storyName)
		if story == nil {
			return zygo.SexpNull, fmt.Errorf("face: story %q not found", storyName)
		}
		space := story.Space(spaceName)
		if space == nil {
			return zygo.SexpNull, fmt.Errorf("face: space %q not found on story %q", spaceName, storyName)
		}

		f, err := project.Geometry(storyName).CreateFace(points, space)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		return &zygo.SexpStr{S: string(f.ID)}, nil
	})

	// -----------------------------------------------------------------------
	// (erase "ground" "kitchen")
	// -----------------------------------------------------------------------
	env.AddFunction("erase", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("erase requires a story name and a space name")
		}
		storyName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("erase: story: %w", err)
		}
		spaceName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("erase: space: %w", err)
		}

		story := project.Story(storyName)
		if story == nil {
			return zygo.SexpNull, fmt.Errorf("erase: story %q not found", storyName)
		}
		space := story.Space(spaceName)
		if space == nil {
			return zygo.SexpNull, fmt.Errorf("erase: space %q not found on story %q", spaceName, storyName)
		}

		if err := project.Geometry(storyName).DestroyFace(space); err != nil {
			return zygo.SexpNull, fmt.Errorf("erase: %w", err)
		}
		return zygo.SexpNull, nil
	})
}
