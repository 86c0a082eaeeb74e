package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hauswalk/internal/engine/shader"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// Box is one renderable axis-aligned block of the house.
type Box struct {
	Min   math.Vec3
	Max   math.Vec3
	Color [4]float32
}

// HouseMesh draws the static house geometry as flat-shaded boxes. The
// geometry never changes after load; teleporting rebases the viewer's
// frame instead of moving these vertices.
type HouseMesh struct {
	program     uint32
	vao         uint32
	vbo         uint32
	locMVP      int32
	locColor    int32
	locLightDir int32

	ranges []meshRange

	LightDir [3]float32
}

type meshRange struct {
	first int32
	count int32
	color [4]float32
}

// NewHouseMesh uploads the boxes as a single static buffer.
func NewHouseMesh(boxes []Box) (*HouseMesh, error) {
	program, err := shader.CompileProgram(litVertexShader, litFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("house shader: %w", err)
	}

	h := &HouseMesh{
		program:     program,
		locMVP:      shader.Uniform(program, "uMVP"),
		locColor:    shader.Uniform(program, "uColor"),
		locLightDir: shader.Uniform(program, "uLightDir"),
		LightDir:    [3]float32{-0.4, -1.0, -0.3},
	}

	var verts []float32
	for _, box := range boxes {
		first := int32(len(verts) / 6)
		verts = appendBoxVertices(verts, box.Min, box.Max)
		h.ranges = append(h.ranges, meshRange{
			first: first,
			count: int32(len(verts)/6) - first,
			color: box.Color,
		})
	}

	gl.GenVertexArrays(1, &h.vao)
	gl.GenBuffers(1, &h.vbo)

	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	}
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.BindVertexArray(0)

	return h, nil
}

// appendBoxVertices emits two triangles per face, position then normal.
func appendBoxVertices(verts []float32, min, max math.Vec3) []float32 {
	quad := func(a, b, c, d math.Vec3, n math.Vec3) {
		for _, p := range []math.Vec3{a, b, c, a, c, d} {
			verts = append(verts, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
		}
	}

	// Corner shorthand: lower y = min.Y plane, upper y = max.Y plane
	lll := math.Vec3{X: min.X, Y: min.Y, Z: min.Z}
	llh := math.Vec3{X: min.X, Y: min.Y, Z: max.Z}
	lhl := math.Vec3{X: min.X, Y: max.Y, Z: min.Z}
	lhh := math.Vec3{X: min.X, Y: max.Y, Z: max.Z}
	hll := math.Vec3{X: max.X, Y: min.Y, Z: min.Z}
	hlh := math.Vec3{X: max.X, Y: min.Y, Z: max.Z}
	hhl := math.Vec3{X: max.X, Y: max.Y, Z: min.Z}
	hhh := math.Vec3{X: max.X, Y: max.Y, Z: max.Z}

	quad(llh, hlh, hhh, lhh, math.Vec3{Z: 1})  // +Z
	quad(hll, lll, lhl, hhl, math.Vec3{Z: -1}) // -Z
	quad(hlh, hll, hhl, hhh, math.Vec3{X: 1})  // +X
	quad(lll, llh, lhh, lhl, math.Vec3{X: -1}) // -X
	quad(lhh, hhh, hhl, lhl, math.Vec3{Y: 1})  // +Y
	quad(lll, hll, hlh, llh, math.Vec3{Y: -1}) // -Y

	return verts
}

// Draw renders all boxes with the given view-projection matrix.
func (h *HouseMesh) Draw(viewProj math.Mat4) {
	gl.UseProgram(h.program)
	gl.UniformMatrix4fv(h.locMVP, 1, false, viewProj.Ptr())
	gl.Uniform3fv(h.locLightDir, 1, &h.LightDir[0])

	gl.BindVertexArray(h.vao)
	for _, r := range h.ranges {
		gl.Uniform4fv(h.locColor, 1, &r.color[0])
		gl.DrawArrays(gl.TRIANGLES, r.first, r.count)
	}
	gl.BindVertexArray(0)
}

// Destroy releases GL resources.
func (h *HouseMesh) Destroy() {
	gl.DeleteBuffers(1, &h.vbo)
	gl.DeleteVertexArrays(1, &h.vao)
	gl.DeleteProgram(h.program)
}
