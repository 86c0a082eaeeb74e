package vrspace

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/hauswalk/pkg/math"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := Negotiate(EmulatedProvider{}, DefaultEyeHeight)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	return m
}

func TestSetOffsetRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		target math.Vec3
		angle  float32
	}{
		{"origin no turn", math.Vec3{}, 0},
		{"forward", math.Vec3{Z: -3}, 0},
		{"sideways with turn", math.Vec3{X: 2.5, Z: -1}, 1.2},
		{"negative angle", math.Vec3{X: -4, Y: 0.5, Z: 3}, -2.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			m.SetOffset(tt.target, tt.angle)

			inv := m.Offset().Inverse()

			// The inverse of the installed offset applied to the
			// origin must reproduce the teleport target.
			got := inv.Apply(math.Vec3{})
			if got.Distance(tt.target) > 1e-3 {
				t.Errorf("recovered target: got %v, want %v", got, tt.target)
			}

			// The recovered yaw must match modulo 2 pi.
			diff := float64(inv.Rotation.Yaw() - tt.angle)
			diff = gomath.Mod(diff+gomath.Pi, 2*gomath.Pi) - gomath.Pi
			if gomath.Abs(diff) > 1e-3 {
				t.Errorf("recovered yaw: got %v, want %v", inv.Rotation.Yaw(), tt.angle)
			}
		})
	}
}

func TestSetOffsetRelocatesReportedPose(t *testing.T) {
	m := newTestManager(t)
	target := math.Vec3{X: 3, Z: -2}
	m.SetOffset(target, 0.9)

	// The user physically at the base origin is reported at the
	// teleport target in the new frame.
	pose := m.LocalizePose(math.IdentityTransform())
	if pose.Position.Distance(target) > 1e-3 {
		t.Errorf("reported position: got %v, want %v", pose.Position, target)
	}
	if abs(pose.Rotation.Yaw()-0.9) > 1e-3 {
		t.Errorf("reported yaw: got %v, want 0.9", pose.Rotation.Yaw())
	}
}

func TestSetOffsetReplacedWholesale(t *testing.T) {
	m := newTestManager(t)

	m.SetOffset(math.Vec3{X: 10}, 1.0)
	m.SetOffset(math.Vec3{Z: -5}, 0)

	// The second commit must not accumulate the first.
	got := m.Offset().Inverse().Apply(math.Vec3{})
	want := math.Vec3{Z: -5}
	if got.Distance(want) > 1e-3 {
		t.Errorf("offset target after second commit: got %v, want %v", got, want)
	}
}

func TestNegotiatePrefersFloor(t *testing.T) {
	m, err := Negotiate(EmulatedProvider{Kinds: []Kind{KindFloor, KindViewer}}, 1.6)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	// Floor frame sits at the physical origin, no eye-height shift.
	if m.Base().Transform().Position != (math.Vec3{}) {
		t.Errorf("floor base position: got %v, want origin", m.Base().Transform().Position)
	}
}

func TestNegotiateFallsBackToViewer(t *testing.T) {
	m, err := Negotiate(EmulatedProvider{Kinds: []Kind{KindViewer}}, 1.6)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	// Viewer fallback drops the origin by the eye height.
	want := math.Vec3{Y: -1.6}
	if m.Base().Transform().Position.Distance(want) > 1e-3 {
		t.Errorf("viewer base position: got %v, want %v", m.Base().Transform().Position, want)
	}
}

func TestNegotiateExhaustedIsFatal(t *testing.T) {
	_, err := Negotiate(EmulatedProvider{Kinds: []Kind{"bounded-floor"}}, 1.6)
	if err == nil {
		t.Fatal("expected error when no frame kind is supported")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("error should wrap ErrUnsupported, got %v", err)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
