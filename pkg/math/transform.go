package math

// RigidTransform is a rigid motion: a rotation followed by a translation.
// Applying it maps a point from local coordinates into the parent space:
// p' = R*p + T.
type RigidTransform struct {
	Position Vec3
	Rotation Quat
}

// IdentityTransform returns the identity rigid transform.
func IdentityTransform() RigidTransform {
	return RigidTransform{Rotation: QuatIdentity()}
}

// Apply transforms a point by this rigid transform.
func (t RigidTransform) Apply(p Vec3) Vec3 {
	return t.Rotation.RotateVec3(p).Add(t.Position)
}

// Inverse returns the transform that undoes this one.
func (t RigidTransform) Inverse() RigidTransform {
	inv := t.Rotation.Conjugate()
	return RigidTransform{
		Position: inv.RotateVec3(t.Position.Negate()),
		Rotation: inv,
	}
}

// Compose returns the transform equivalent to applying other first,
// then this transform.
func (t RigidTransform) Compose(other RigidTransform) RigidTransform {
	return RigidTransform{
		Position: t.Apply(other.Position),
		Rotation: t.Rotation.Mul(other.Rotation),
	}
}
