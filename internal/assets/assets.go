// Package assets loads house layout files.
package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// Block is one axis-aligned piece of the house: a floor slab, a wall
// segment, or a furniture item. Blocks are both teleport targets and
// obstacles; the surface validity check decides which landings count.
type Block struct {
	Name  string    `yaml:"name"`
	Min   []float32 `yaml:"min"`
	Max   []float32 `yaml:"max"`
	Color []float32 `yaml:"color"`
}

// Layout is a parsed house layout.
type Layout struct {
	Name   string    `yaml:"name"`
	Spawn  []float32 `yaml:"spawn"`
	Blocks []Block   `yaml:"blocks"`
}

// LoadLayout reads and validates a house layout YAML file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}

	if err := layout.validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &layout, nil
}

func (l *Layout) validate() error {
	if len(l.Blocks) == 0 {
		return fmt.Errorf("no blocks")
	}
	if l.Spawn != nil && len(l.Spawn) != 3 {
		return fmt.Errorf("spawn must have 3 components, got %d", len(l.Spawn))
	}
	for i, b := range l.Blocks {
		if len(b.Min) != 3 || len(b.Max) != 3 {
			return fmt.Errorf("block %d (%s): min and max must have 3 components", i, b.Name)
		}
		if b.Color != nil && len(b.Color) != 4 {
			return fmt.Errorf("block %d (%s): color must have 4 components", i, b.Name)
		}
	}
	return nil
}

// SpawnPoint returns the configured spawn position, or the origin.
func (l *Layout) SpawnPoint() math.Vec3 {
	if len(l.Spawn) == 3 {
		return math.Vec3{X: l.Spawn[0], Y: l.Spawn[1], Z: l.Spawn[2]}
	}
	return math.Vec3{}
}

// BuildScene builds the collision hierarchy for the layout. Every
// block becomes a box collider under a single root node.
func (l *Layout) BuildScene() *collision.Node {
	root := collision.NewNode(l.Name)
	for _, b := range l.Blocks {
		box := collision.NewBox(
			math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
			math.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
		)
		root.AddChild(collision.NewColliderNode(b.Name, box))
	}
	return root
}

// BlockColor returns the block's color, or a neutral grey when the
// layout omits one.
func (b Block) BlockColor() [4]float32 {
	if len(b.Color) == 4 {
		return [4]float32{b.Color[0], b.Color[1], b.Color[2], b.Color[3]}
	}
	return [4]float32{0.7, 0.7, 0.7, 1.0}
}

// Bounds returns the block extents as vectors.
func (b Block) Bounds() (min, max math.Vec3) {
	min = math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]}
	max = math.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]}
	return min, max
}
