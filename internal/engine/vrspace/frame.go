// Package vrspace manages the session's spatial reference frames. A
// committed teleport is realized by rebasing the active frame rather
// than moving scene geometry.
package vrspace

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hauswalk/pkg/math"
)

// Kind names a reference frame flavor requested during negotiation.
type Kind string

const (
	// KindFloor is a frame with its origin on the physical floor.
	KindFloor Kind = "local-floor"
	// KindViewer is a frame with its origin at the viewer's eyes.
	KindViewer Kind = "viewer"
)

// DefaultEyeHeight is the vertical offset applied when falling back to
// a viewer-relative frame, in meters.
const DefaultEyeHeight = 1.6

// ErrUnsupported is returned by providers for frame kinds they cannot
// supply.
var ErrUnsupported = errors.New("reference frame kind unsupported")

// Provider negotiates tracking frames with the host runtime at session
// start.
type Provider interface {
	RequestFrame(kind Kind) (Frame, error)
}

// Frame is a spatial reference frame: the coordinate system device
// poses are reported against. Its transform maps frame coordinates into
// the session's physical tracking space.
type Frame struct {
	transform math.RigidTransform
}

// NewFrame creates a frame with the given physical-space transform.
func NewFrame(t math.RigidTransform) Frame {
	return Frame{transform: t}
}

// OffsetBy derives a new frame whose origin sits at the given transform
// within this frame.
func (f Frame) OffsetBy(t math.RigidTransform) Frame {
	return Frame{transform: f.transform.Compose(t)}
}

// Localize expresses a physical-space position in this frame's
// coordinates.
func (f Frame) Localize(physical math.Vec3) math.Vec3 {
	return f.transform.Inverse().Apply(physical)
}

// Transform returns the frame's physical-space transform.
func (f Frame) Transform() math.RigidTransform {
	return f.transform
}

// Manager owns the negotiated base frame and is the sole authority for
// the currently active frame. The offset between them is replaced
// wholesale on each teleport commit.
type Manager struct {
	base   Frame
	active Frame
	offset math.RigidTransform
}

// Negotiate acquires the base tracking frame, preferring a
// floor-relative frame and falling back to a viewer-relative frame
// shifted down by eyeHeight. Exhausting the fallback chain is fatal to
// session startup.
func Negotiate(p Provider, eyeHeight float32) (*Manager, error) {
	if eyeHeight <= 0 {
		eyeHeight = DefaultEyeHeight
	}

	base, err := p.RequestFrame(KindFloor)
	if err != nil {
		if !errors.Is(err, ErrUnsupported) {
			return nil, fmt.Errorf("requesting %s frame: %w", KindFloor, err)
		}
		viewer, verr := p.RequestFrame(KindViewer)
		if verr != nil {
			return nil, fmt.Errorf("no supported reference frame: %w", verr)
		}
		// Emulate a floor frame by dropping the viewer origin to
		// floor level.
		base = viewer.OffsetBy(math.RigidTransform{
			Position: math.Vec3{Y: -eyeHeight},
			Rotation: math.QuatIdentity(),
		})
	}

	return &Manager{
		base:   base,
		active: base,
		offset: math.IdentityTransform(),
	}, nil
}

// SetOffset installs the offset frame realizing a teleport to target
// facing angle: a yaw-only rotation of -angle combined with the rotated
// negated target. Device poses reported against the new frame place the
// user at target facing angle without any geometry moving.
func (m *Manager) SetOffset(target math.Vec3, angle float32) {
	rotation := math.QuatFromYaw(-angle)
	offset := math.RigidTransform{
		Position: rotation.RotateVec3(target.Negate()),
		Rotation: rotation,
	}
	m.offset = offset
	m.active = m.base.OffsetBy(offset)
}

// Active returns the frame poses are currently reported against.
func (m *Manager) Active() Frame {
	return m.active
}

// Base returns the negotiated base frame.
func (m *Manager) Base() Frame {
	return m.base
}

// Offset returns the active frame's offset relative to the base frame.
func (m *Manager) Offset() math.RigidTransform {
	return m.offset
}

// LocalizePose expresses a pose sampled in the base frame in the active
// frame's coordinates.
func (m *Manager) LocalizePose(pose math.RigidTransform) math.RigidTransform {
	return m.offset.Inverse().Compose(pose)
}
