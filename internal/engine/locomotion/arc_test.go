package locomotion

import (
	"testing"

	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/pkg/math"
)

type fakeLine struct {
	points  []math.Vec3
	visible bool
	updates int
}

func (l *fakeLine) SetPoints(points []math.Vec3) {
	l.points = append(l.points[:0], points...)
	l.updates++
}

func (l *fakeLine) SetVisible(v bool) { l.visible = v }

type fakeMarker struct {
	pos       math.Vec3
	yaw       float32
	visible   bool
	poseCalls int
}

func (m *fakeMarker) SetPose(p math.Vec3, yaw float32) {
	m.pos = p
	m.yaw = yaw
	m.poseCalls++
}

func (m *fakeMarker) SetVisible(v bool) { m.visible = v }

// stubCollider reports a fixed hit regardless of the ray.
type stubCollider struct {
	hit collision.Hit
}

func (s stubCollider) IntersectRay(r collision.Ray, maxDist float32) (collision.Hit, bool) {
	return s.hit, true
}

func newTestArc(line *fakeLine, marker *fakeMarker) *Arc {
	return NewArc(NewSimulator(DefaultConfig()), line, marker, nil)
}

func stubScene(normal math.Vec3) *collision.Node {
	scene := collision.NewNode("stub")
	scene.AddChild(collision.NewColliderNode("surface", stubCollider{
		hit: collision.Hit{Point: math.Vec3{X: 1, Z: -2}, Normal: normal, Distance: 0.05},
	}))
	return scene
}

func TestArcValidityBoundary(t *testing.T) {
	tests := []struct {
		name    string
		normalY float32
		visible bool
	}{
		{"above threshold", 0.91, true},
		{"below threshold", 0.89, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := &fakeLine{}
			marker := &fakeMarker{}
			arc := newTestArc(line, marker)

			arc.Update(stubScene(math.Vec3{Y: tt.normalY}), math.Vec3{Y: 1}, math.QuatIdentity(), 0)

			if marker.visible != tt.visible {
				t.Errorf("marker visible: got %v, want %v", marker.visible, tt.visible)
			}
			if arc.MarkerVisible() != tt.visible {
				t.Errorf("MarkerVisible: got %v, want %v", arc.MarkerVisible(), tt.visible)
			}
		})
	}
}

func TestArcLineDrawnRegardlessOfValidity(t *testing.T) {
	line := &fakeLine{}
	marker := &fakeMarker{}
	arc := newTestArc(line, marker)

	// Wall-like normal: marker rejected, arc still drawn.
	arc.Update(stubScene(math.Vec3{X: 1}), math.Vec3{Y: 1}, math.QuatIdentity(), 0)

	if !line.visible {
		t.Error("polyline should be visible while aiming even on invalid hit")
	}
	if marker.visible {
		t.Error("marker should be hidden on a wall hit")
	}
}

func TestArcPolylineStartsAtController(t *testing.T) {
	line := &fakeLine{}
	marker := &fakeMarker{}
	arc := newTestArc(line, marker)

	pos := math.Vec3{X: 3, Y: 1.4, Z: 2}
	arc.Update(collision.NewNode("empty"), pos, math.QuatIdentity(), 0)

	if len(line.points) == 0 || line.points[0] != pos {
		t.Errorf("polyline should start at the controller position %v", pos)
	}
}

func TestArcPolylineRebuiltEveryUpdate(t *testing.T) {
	line := &fakeLine{}
	marker := &fakeMarker{}
	arc := newTestArc(line, marker)

	arc.Update(collision.NewNode("empty"), math.Vec3{Y: 1}, math.QuatIdentity(), 0)
	arc.Update(collision.NewNode("empty"), math.Vec3{Y: 2}, math.QuatIdentity(), 0)

	if line.updates != 2 {
		t.Errorf("polyline updates: got %d, want 2", line.updates)
	}
	if line.points[0] != (math.Vec3{Y: 2}) {
		t.Error("polyline should reflect the latest pose, not a cached one")
	}
}

func TestArcMarkerYawFromHeading(t *testing.T) {
	line := &fakeLine{}
	marker := &fakeMarker{}
	arc := newTestArc(line, marker)

	arc.Update(stubScene(math.Vec3{Y: 1}), math.Vec3{Y: 1}, math.QuatIdentity(), 1.25)

	if marker.poseCalls != 1 {
		t.Fatalf("pose calls: got %d, want 1", marker.poseCalls)
	}
	if marker.yaw != 1.25 {
		t.Errorf("marker yaw: got %v, want 1.25", marker.yaw)
	}
}

func TestArcMarkerStaleWhenHidden(t *testing.T) {
	line := &fakeLine{}
	marker := &fakeMarker{}
	arc := newTestArc(line, marker)

	// Valid hit places the marker.
	arc.Update(stubScene(math.Vec3{Y: 1}), math.Vec3{Y: 1}, math.QuatIdentity(), 0)
	placed := marker.pos

	// Empty scene hides the marker but must not move it.
	arc.Update(collision.NewNode("empty"), math.Vec3{Y: 1}, math.QuatIdentity(), 0)

	if marker.visible {
		t.Error("marker should be hidden with no collision")
	}
	if marker.pos != placed {
		t.Errorf("hidden marker moved: got %v, want %v", marker.pos, placed)
	}
}

func TestArcHide(t *testing.T) {
	line := &fakeLine{}
	marker := &fakeMarker{}
	arc := newTestArc(line, marker)

	arc.Update(stubScene(math.Vec3{Y: 1}), math.Vec3{Y: 1}, math.QuatIdentity(), 0)
	arc.Hide()

	if line.visible || marker.visible {
		t.Error("Hide should suppress both polyline and marker")
	}
	if arc.MarkerVisible() {
		t.Error("MarkerVisible should be false after Hide")
	}
}
