// Package render binds the locomotion core's plain data (point
// sequences, poses, visibility flags) to concrete OpenGL objects. The
// core never touches GL directly.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hauswalk/internal/engine/shader"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// ArcLine draws the teleport arc as a line strip. It implements
// locomotion.PolylineSink; the vertex buffer is rebuilt on every
// SetPoints call.
type ArcLine struct {
	program  uint32
	vao      uint32
	vbo      uint32
	locMVP   int32
	locColor int32

	count   int32
	visible bool

	Color [4]float32
}

// NewArcLine creates the arc renderer.
func NewArcLine() (*ArcLine, error) {
	program, err := shader.CompileProgram(flatVertexShader, flatFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("arc shader: %w", err)
	}

	l := &ArcLine{
		program:  program,
		locMVP:   shader.Uniform(program, "uMVP"),
		locColor: shader.Uniform(program, "uColor"),
		Color:    [4]float32{0.4, 0.8, 1.0, 0.9},
	}

	gl.GenVertexArrays(1, &l.vao)
	gl.GenBuffers(1, &l.vbo)

	gl.BindVertexArray(l.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)

	return l, nil
}

// SetPoints uploads a fresh vertex buffer from the arc samples.
func (l *ArcLine) SetPoints(points []math.Vec3) {
	verts := make([]float32, 0, len(points)*3)
	for _, p := range points {
		verts = append(verts, p.X, p.Y, p.Z)
	}
	l.count = int32(len(points))

	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// SetVisible toggles drawing.
func (l *ArcLine) SetVisible(visible bool) {
	l.visible = visible
}

// Draw renders the arc with the given view-projection matrix.
func (l *ArcLine) Draw(viewProj math.Mat4) {
	if !l.visible || l.count < 2 {
		return
	}

	gl.UseProgram(l.program)
	gl.UniformMatrix4fv(l.locMVP, 1, false, viewProj.Ptr())
	gl.Uniform4fv(l.locColor, 1, &l.Color[0])

	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINE_STRIP, 0, l.count)
	gl.BindVertexArray(0)
}

// Destroy releases GL resources.
func (l *ArcLine) Destroy() {
	gl.DeleteBuffers(1, &l.vbo)
	gl.DeleteVertexArrays(1, &l.vao)
	gl.DeleteProgram(l.program)
}
