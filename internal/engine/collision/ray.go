// Package collision provides the collidable scene tree and ray queries
// used for teleport targeting.
package collision

import (
	gomath "math"

	"github.com/Faultbox/hauswalk/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// Hit is the nearest intersection found by a ray query.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Node     *Node
}

// Collider is a shape that can be tested against a bounded ray.
// Implementations report the nearest intersection within maxDist.
type Collider interface {
	IntersectRay(r Ray, maxDist float32) (Hit, bool)
}

// Box is an axis-aligned box collider.
type Box struct {
	Min math.Vec3
	Max math.Vec3
}

// NewBox creates a Box from two corners, normalizing min/max per axis.
func NewBox(a, b math.Vec3) Box {
	box := Box{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// IntersectRay tests the ray against the box using the slab method.
// The hit normal is the outward normal of the entered face.
func (b Box) IntersectRay(r Ray, maxDist float32) (Hit, bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	// Axis of the entering face, encoded as 0=X 1=Y 2=Z.
	enterAxis := -1

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	min := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	max := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (min[axis] - origin[axis]) / dir[axis]
			t2 := (max[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
				enterAxis = axis
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < min[axis] || origin[axis] > max[axis] {
			return Hit{}, false
		}
	}

	if tmax < tmin || tmax < 0 || tmin > maxDist {
		return Hit{}, false
	}
	if tmin < 0 {
		// Ray starts inside the box; no usable entry face.
		return Hit{}, false
	}

	var normal math.Vec3
	switch enterAxis {
	case 0:
		normal = math.Vec3{X: 1}
	case 1:
		normal = math.Vec3{Y: 1}
	case 2:
		normal = math.Vec3{Z: 1}
	default:
		return Hit{}, false
	}
	if dir[enterAxis] > 0 {
		normal = normal.Negate()
	}

	return Hit{
		Point:    r.Origin.Add(r.Direction.Scale(tmin)),
		Normal:   normal,
		Distance: tmin,
	}, true
}

// Quad is a planar parallelogram collider: origin corner plus two edge
// vectors. It is two-sided; the reported normal faces the ray.
type Quad struct {
	Corner math.Vec3
	EdgeU  math.Vec3
	EdgeV  math.Vec3
}

// IntersectRay tests the ray against the quad's plane and bounds.
func (q Quad) IntersectRay(r Ray, maxDist float32) (Hit, bool) {
	normal := q.EdgeU.Cross(q.EdgeV).Normalize()
	denom := r.Direction.Dot(normal)
	if denom > -1e-6 && denom < 1e-6 {
		return Hit{}, false // Ray parallel to plane
	}

	t := q.Corner.Sub(r.Origin).Dot(normal) / denom
	if t < 0 || t > maxDist {
		return Hit{}, false
	}

	// Express the hit point in edge coordinates.
	p := r.Origin.Add(r.Direction.Scale(t)).Sub(q.Corner)
	uu := q.EdgeU.Dot(q.EdgeU)
	vv := q.EdgeV.Dot(q.EdgeV)
	uv := q.EdgeU.Dot(q.EdgeV)
	pu := p.Dot(q.EdgeU)
	pv := p.Dot(q.EdgeV)

	det := uu*vv - uv*uv
	if det == 0 {
		return Hit{}, false // Degenerate quad
	}
	u := (pu*vv - pv*uv) / det
	v := (pv*uu - pu*uv) / det
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return Hit{}, false
	}

	if denom > 0 {
		normal = normal.Negate()
	}
	return Hit{
		Point:    r.Origin.Add(r.Direction.Scale(t)),
		Normal:   normal,
		Distance: t,
	}, true
}
