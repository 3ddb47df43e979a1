package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "floorspace.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "default_story_height: 280\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultStoryHeight != 280 {
		t.Errorf("DefaultStoryHeight = %v, want 280", cfg.DefaultStoryHeight)
	}
	if cfg.MeshCells != Default().MeshCells {
		t.Errorf("MeshCells = %d, want default %d", cfg.MeshCells, Default().MeshCells)
	}
	if cfg.PreviewBackend != BackendPrism {
		t.Errorf("PreviewBackend = %q, want prism", cfg.PreviewBackend)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, "default_story_height: 350\nmesh_cells: 64\npreview_backend: sdfx\neval_timeout_seconds: 10\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{DefaultStoryHeight: 350, MeshCells: 64, PreviewBackend: BackendSdfx, EvalTimeoutSeconds: 10}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative height", "default_story_height: -1\n"},
		{"zero cells", "mesh_cells: 0\n"},
		{"unknown backend", "preview_backend: povray\n"},
		{"zero timeout", "eval_timeout_seconds: 0\n"},
		{"malformed yaml", "default_story_height: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			cfg, err := Load(path)
			if err == nil {
				t.Fatal("Load should fail")
			}
			// A bad file never produces a partial config.
			if cfg != Default() {
				t.Errorf("cfg = %+v, want defaults on error", cfg)
			}
		})
	}
}
