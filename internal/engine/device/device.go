// Package device is the adapter boundary between host controller events
// and the locomotion core. Connect and disconnect are plain function
// calls so the state machine is testable without a live device.
package device

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/internal/engine/locomotion"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// MinAxes is the minimum analog-axis count the stick policy needs.
const MinAxes = 2

// TargetRayMode describes how a device expresses its pointing ray.
type TargetRayMode string

const (
	// TrackedPointer is a hand-held controller with its own tracked pose.
	TrackedPointer TargetRayMode = "tracked-pointer"
	// Gaze points along the viewer's head orientation.
	Gaze TargetRayMode = "gaze"
	// Screen points through a 2D screen touch.
	Screen TargetRayMode = "screen"
)

// Integration faults raised at connect time. These indicate a host
// wiring bug, not a runtime condition to recover from.
var (
	ErrUnknownTargetRayMode = errors.New("unknown target ray mode")
	ErrTooFewAxes           = errors.New("controller reports too few analog axes")
	ErrSlotOccupied         = errors.New("controller slot already connected")
)

// Descriptor announces a connecting device's capabilities.
type Descriptor struct {
	Handedness    string
	TargetRayMode TargetRayMode
	AxisCount     int
	ButtonCount   int
}

// RigKind selects the visual representation attached to a device.
type RigKind int

const (
	// RigPointer is a ray line anchored to the controller grip.
	RigPointer RigKind = iota
	// RigReticle is a gaze reticle ahead of the viewer.
	RigReticle
	// RigNone attaches no visual.
	RigNone
)

// RigFor maps a targeting mode to its visual rig. The mode set is
// closed; an unknown tag is an integration fault, never a silent
// default.
func RigFor(mode TargetRayMode) (RigKind, error) {
	switch mode {
	case TrackedPointer:
		return RigPointer, nil
	case Gaze:
		return RigReticle, nil
	case Screen:
		return RigNone, nil
	}
	return RigNone, fmt.Errorf("%w: %q", ErrUnknownTargetRayMode, mode)
}

// Sample is one per-frame reading of a controller's pose and analog
// inputs, taken once per rendered frame.
type Sample struct {
	Position    math.Vec3
	Orientation math.Quat
	Axes        [MinAxes]float32
}

// Slot tracks one controller's connection state and owns its locomotion
// controller.
type Slot struct {
	desc      Descriptor
	rig       RigKind
	connected bool
	ctrl      *locomotion.Controller
}

// NewSlot creates a disconnected slot driving the given controller.
func NewSlot(ctrl *locomotion.Controller) *Slot {
	return &Slot{ctrl: ctrl}
}

// OnConnect validates the descriptor and marks the slot connected.
// A second connect on an occupied slot is an invariant violation and
// fails rather than silently overwriting.
func (s *Slot) OnConnect(desc Descriptor) error {
	if s.connected {
		return fmt.Errorf("%w: %s", ErrSlotOccupied, s.desc.Handedness)
	}
	rig, err := RigFor(desc.TargetRayMode)
	if err != nil {
		return err
	}
	if desc.AxisCount < MinAxes {
		return fmt.Errorf("%w: got %d, need %d", ErrTooFewAxes, desc.AxisCount, MinAxes)
	}
	s.desc = desc
	s.rig = rig
	s.connected = true
	return nil
}

// Drive feeds one frame's sample through the stick policy. No-op while
// disconnected.
func (s *Slot) Drive(scene *collision.Node, sample Sample, frames locomotion.FrameRebaser) {
	if !s.connected {
		return
	}
	s.ctrl.Drive(scene, sample.Position, sample.Orientation, sample.Axes[0], sample.Axes[1], frames)
}

// OnDisconnect marks the slot disconnected. Aiming in progress is
// canceled and all visuals hidden; the active spatial frame is
// untouched. Safe to call on a disconnected slot.
func (s *Slot) OnDisconnect() {
	if !s.connected {
		return
	}
	s.connected = false
	s.ctrl.Cancel()
}

// Connected reports whether a device currently occupies the slot.
func (s *Slot) Connected() bool {
	return s.connected
}

// Descriptor returns the connected device's capabilities.
func (s *Slot) Descriptor() Descriptor {
	return s.desc
}

// Rig returns the visual rig kind chosen at connect time.
func (s *Slot) Rig() RigKind {
	return s.rig
}

// Controller returns the slot's locomotion controller.
func (s *Slot) Controller() *locomotion.Controller {
	return s.ctrl
}
