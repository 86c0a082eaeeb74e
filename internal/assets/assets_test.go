package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/pkg/math"
)

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "house.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}
	return path
}

func TestLoadLayout(t *testing.T) {
	path := writeLayout(t, `
name: "test house"
spawn: [1.0, 0.0, 2.0]
blocks:
  - name: floor
    min: [-5.0, -0.2, -5.0]
    max: [5.0, 0.0, 5.0]
    color: [0.8, 0.7, 0.6, 1.0]
  - name: wall-north
    min: [-5.0, 0.0, -5.2]
    max: [5.0, 2.5, -5.0]
`)

	layout, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("failed to load layout: %v", err)
	}

	if layout.Name != "test house" {
		t.Errorf("expected name 'test house', got %s", layout.Name)
	}
	if len(layout.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(layout.Blocks))
	}

	spawn := layout.SpawnPoint()
	if spawn != (math.Vec3{X: 1, Y: 0, Z: 2}) {
		t.Errorf("unexpected spawn point %v", spawn)
	}

	min, max := layout.Blocks[0].Bounds()
	if min != (math.Vec3{X: -5, Y: -0.2, Z: -5}) || max != (math.Vec3{X: 5, Y: 0, Z: 5}) {
		t.Errorf("unexpected floor bounds %v %v", min, max)
	}
}

func TestLoadLayoutMissingFile(t *testing.T) {
	if _, err := LoadLayout("/nonexistent/house.yaml"); err == nil {
		t.Error("expected error loading missing layout, got nil")
	}
}

func TestLoadLayoutInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no blocks",
			content: "name: empty\nblocks: []\n",
		},
		{
			name: "bad bounds",
			content: `
blocks:
  - name: floor
    min: [0.0, 0.0]
    max: [1.0, 1.0, 1.0]
`,
		},
		{
			name: "bad color",
			content: `
blocks:
  - name: floor
    min: [0.0, 0.0, 0.0]
    max: [1.0, 1.0, 1.0]
    color: [1.0, 0.5]
`,
		},
		{
			name: "bad spawn",
			content: `
spawn: [1.0]
blocks:
  - name: floor
    min: [0.0, 0.0, 0.0]
    max: [1.0, 1.0, 1.0]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLayout(t, tt.content)
			if _, err := LoadLayout(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSpawnPointDefault(t *testing.T) {
	layout := &Layout{}
	if layout.SpawnPoint() != (math.Vec3{}) {
		t.Error("expected origin spawn when unset")
	}
}

func TestBuildScene(t *testing.T) {
	path := writeLayout(t, `
name: "test house"
blocks:
  - name: floor
    min: [-5.0, -0.2, -5.0]
    max: [5.0, 0.0, 5.0]
`)

	layout, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("failed to load layout: %v", err)
	}

	scene := layout.BuildScene()
	if len(scene.Children()) != 1 {
		t.Fatalf("expected 1 child node, got %d", len(scene.Children()))
	}

	// Ray straight down onto the floor slab
	hit, ok := scene.Raycast(collision.Ray{
		Origin:    math.Vec3{Y: 1},
		Direction: math.Vec3{Y: -1},
	}, 10)
	if !ok {
		t.Fatal("expected floor hit")
	}
	if hit.Node == nil || hit.Node.Name != "floor" {
		t.Errorf("expected hit on floor node, got %+v", hit.Node)
	}
}

func TestBlockColorDefault(t *testing.T) {
	b := Block{}
	c := b.BlockColor()
	if c != [4]float32{0.7, 0.7, 0.7, 1.0} {
		t.Errorf("unexpected default color %v", c)
	}
}
