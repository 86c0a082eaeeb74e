package render

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hauswalk/internal/engine/shader"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// markerSegments is the ring tessellation.
const markerSegments = 32

// Marker draws the landing spot as a flat ring with a forward notch
// showing the committed facing direction. Implements
// locomotion.MarkerSink.
type Marker struct {
	program  uint32
	vao      uint32
	vbo      uint32
	locMVP   int32
	locColor int32

	count    int32
	position math.Vec3
	yaw      float32
	visible  bool

	Color [4]float32
}

// NewMarker creates the landing marker renderer.
func NewMarker(radius float32) (*Marker, error) {
	program, err := shader.CompileProgram(flatVertexShader, flatFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("marker shader: %w", err)
	}

	m := &Marker{
		program:  program,
		locMVP:   shader.Uniform(program, "uMVP"),
		locColor: shader.Uniform(program, "uColor"),
		Color:    [4]float32{0.3, 1.0, 0.5, 0.9},
	}

	verts := markerVertices(radius)
	m.count = int32(len(verts) / 3)

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)

	return m, nil
}

// markerVertices builds the ring line segments plus a notch pointing
// along -Z, slightly above the surface to avoid z-fighting.
func markerVertices(radius float32) []float32 {
	const lift = 0.01
	verts := make([]float32, 0, (markerSegments+1)*6)

	for i := 0; i < markerSegments; i++ {
		a0 := 2 * gomath.Pi * float64(i) / markerSegments
		a1 := 2 * gomath.Pi * float64(i+1) / markerSegments
		verts = append(verts,
			radius*float32(gomath.Cos(a0)), lift, radius*float32(gomath.Sin(a0)),
			radius*float32(gomath.Cos(a1)), lift, radius*float32(gomath.Sin(a1)),
		)
	}

	// Facing notch
	verts = append(verts,
		0, lift, -radius*0.6,
		0, lift, -radius*1.4,
	)

	return verts
}

// SetPose places the marker at a landing point with the given facing
// yaw.
func (m *Marker) SetPose(position math.Vec3, yaw float32) {
	m.position = position
	m.yaw = yaw
}

// SetVisible toggles drawing.
func (m *Marker) SetVisible(visible bool) {
	m.visible = visible
}

// Draw renders the marker with the given view-projection matrix.
func (m *Marker) Draw(viewProj math.Mat4) {
	if !m.visible {
		return
	}

	model := math.Translate(m.position.X, m.position.Y, m.position.Z).
		Mul(math.RotateY(m.yaw))
	mvp := viewProj.Mul(model)

	gl.UseProgram(m.program)
	gl.UniformMatrix4fv(m.locMVP, 1, false, mvp.Ptr())
	gl.Uniform4fv(m.locColor, 1, &m.Color[0])

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.LINES, 0, m.count)
	gl.BindVertexArray(0)
}

// Destroy releases GL resources.
func (m *Marker) Destroy() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteProgram(m.program)
}
