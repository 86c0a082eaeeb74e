// Package viewer implements the walkthrough application: window, frame
// loop, desktop-emulated tracking, and the teleport locomotion wiring.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hauswalk/internal/assets"
	"github.com/Faultbox/hauswalk/internal/config"
	"github.com/Faultbox/hauswalk/internal/engine/audio"
	"github.com/Faultbox/hauswalk/internal/engine/camera"
	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/internal/engine/device"
	"github.com/Faultbox/hauswalk/internal/engine/input"
	"github.com/Faultbox/hauswalk/internal/engine/locomotion"
	"github.com/Faultbox/hauswalk/internal/engine/render"
	"github.com/Faultbox/hauswalk/internal/engine/vrspace"
	"github.com/Faultbox/hauswalk/internal/engine/window"
	"github.com/Faultbox/hauswalk/internal/logger"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// Viewer is the main application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input
	camera *camera.FirstPersonCamera

	layout *assets.Layout
	scene  *collision.Node
	house  *render.HouseMesh

	frames *vrspace.Manager
	slot   *device.Slot
	arc    *render.ArcLine
	marker *render.Marker
	audio  *audio.Manager

	width  int
	height int
}

// New creates a viewer from the loaded configuration.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
	}

	layout, err := assets.LoadLayout(cfg.House.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("loading house: %w", err)
	}
	v.layout = layout
	v.scene = layout.BuildScene()
	logger.Sugar.Infow("house loaded",
		"name", layout.Name,
		"blocks", len(layout.Blocks),
	)

	// Window first; the GL context must exist before any GL object is
	// created.
	v.window, err = window.New(window.Config{
		Title:      "Hauswalk",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.12, 0.13, 0.16, 1.0)

	if err := v.initScene(); err != nil {
		v.window.Close()
		return nil, err
	}

	// Tracking frame negotiation; failure here is fatal to startup.
	v.frames, err = vrspace.Negotiate(vrspace.EmulatedProvider{}, cfg.Locomotion.EyeHeight)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("negotiating reference frame: %w", err)
	}

	if err := v.initLocomotion(); err != nil {
		v.Close()
		return nil, err
	}

	v.input = input.New()
	v.camera = camera.NewFirstPersonCamera(cfg.Locomotion.EyeHeight)
	v.camera.Position = layout.SpawnPoint().Add(math.Vec3{Y: cfg.Locomotion.EyeHeight})
	v.window.SetRelativeMouse(true)

	v.audio = audio.New()
	v.audio.SetVolume(float64(cfg.Audio.SFXVolume))
	v.audio.SetMuted(cfg.Audio.Muted)
	if err := v.audio.Init(); err != nil {
		// Missing audio devices are common on dev machines; keep going.
		logger.Sugar.Warnf("audio unavailable: %v", err)
	}

	if err := v.connectController(); err != nil {
		v.Close()
		return nil, fmt.Errorf("connecting controller: %w", err)
	}

	logger.Info("viewer initialized")
	return v, nil
}

// initScene uploads the static house geometry.
func (v *Viewer) initScene() error {
	boxes := make([]render.Box, 0, len(v.layout.Blocks))
	for _, b := range v.layout.Blocks {
		min, max := b.Bounds()
		boxes = append(boxes, render.Box{Min: min, Max: max, Color: b.BlockColor()})
	}

	var err error
	v.house, err = render.NewHouseMesh(boxes)
	if err != nil {
		return fmt.Errorf("building house mesh: %w", err)
	}
	return nil
}

// initLocomotion wires the simulator, arc visuals, and controller.
func (v *Viewer) initLocomotion() error {
	loco := v.cfg.Locomotion

	sim := locomotion.NewSimulator(locomotion.Config{
		Gravity:  math.Vec3{Y: loco.GravityY},
		TimeStep: loco.TimeStep,
		MaxSteps: loco.MaxSteps,
	})

	var err error
	v.arc, err = render.NewArcLine()
	if err != nil {
		return fmt.Errorf("creating arc renderer: %w", err)
	}
	v.marker, err = render.NewMarker(0.3)
	if err != nil {
		return fmt.Errorf("creating marker renderer: %w", err)
	}

	arc := locomotion.NewArc(sim, v.arc, v.marker, locomotion.SurfaceValidity(loco.SurfaceThreshold))
	v.slot = device.NewSlot(locomotion.NewController(arc, loco.Deadzone))
	return nil
}

// connectController attaches the emulated controller to its slot.
func (v *Viewer) connectController() error {
	desc := device.Descriptor{
		Handedness:    "right",
		TargetRayMode: device.TrackedPointer,
		AxisCount:     2,
		ButtonCount:   2,
	}
	if err := v.slot.OnConnect(desc); err != nil {
		return err
	}
	logger.Sugar.Infow("controller connected",
		"handedness", desc.Handedness,
		"mode", string(desc.TargetRayMode),
		"rig", int(v.slot.Rig()),
	)
	return nil
}

// Run starts the main frame loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		if !v.running {
			break
		}

		v.update(dt)
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Sugar.Debugf("fps: %d", frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents processes discrete input events.
func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.width, v.height = event.Width, event.Height
			gl.Viewport(0, 0, int32(event.Width), int32(event.Height))
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_C:
				v.toggleController()
			case sdl.SCANCODE_M:
				v.audio.SetMuted(!v.audio.Muted())
			}
		}
	}
}

// toggleController exercises the connect and disconnect paths from the
// keyboard.
func (v *Viewer) toggleController() {
	if v.slot.Connected() {
		v.slot.OnDisconnect()
		logger.Info("controller disconnected")
		return
	}
	if err := v.connectController(); err != nil {
		logger.Error("controller reconnect failed", zap.Error(err))
	}
}

// update advances one frame: look, physical walking within the tracking
// space, and the teleport stick policy.
func (v *Viewer) update(dt float32) {
	dx, dy := v.input.MouseDelta()
	v.camera.HandleLook(float32(dx), float32(dy))

	// WASD is physical movement inside the tracking space, like taking
	// steps in the play area. Teleporting is the arrow-key stick.
	var forward, right float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward -= 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right -= 1
	}
	v.camera.HandleMovement(forward, right, dt)

	pose := v.worldPose()
	x, y := v.stickAxes()
	v.slot.Drive(v.scene, device.Sample{
		Position:    pose.Position,
		Orientation: pose.Rotation,
		Axes:        [device.MinAxes]float32{x, y},
	}, v)
}

// stickAxes derives the emulated thumbstick from the arrow keys.
// Forward deflection is negative y, matching thumbstick convention.
func (v *Viewer) stickAxes() (x, y float32) {
	if v.input.IsKeyHeld(sdl.SCANCODE_UP) {
		y -= 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_DOWN) {
		y += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_LEFT) {
		x -= 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_RIGHT) {
		x += 1
	}
	return x, y
}

// worldPose maps the tracked camera pose through the active reference
// frame. Teleports change this mapping, never the tracked pose itself.
func (v *Viewer) worldPose() math.RigidTransform {
	tracked := math.RigidTransform{
		Position: v.camera.Position,
		Rotation: v.camera.Orientation(),
	}
	return v.frames.LocalizePose(tracked)
}

// SetOffset implements locomotion.FrameRebaser. It installs the new
// frame offset and plays the teleport chime.
func (v *Viewer) SetOffset(target math.Vec3, angle float32) {
	v.frames.SetOffset(target, angle)
	v.audio.PlayTeleport()
	logger.Sugar.Infow("teleported",
		"x", target.X, "y", target.Y, "z", target.Z,
		"heading", angle,
	)
}

// render draws the house, the aim arc, and the landing marker.
func (v *Viewer) render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	pose := v.worldPose()
	eye := pose.Position
	view := math.LookAt(eye, eye.Add(pose.Rotation.Forward()), math.Up)
	proj := math.Perspective(1.05, float32(v.width)/float32(v.height), 0.05, 100)
	viewProj := proj.Mul(view)

	v.house.Draw(viewProj)
	v.arc.Draw(viewProj)
	v.marker.Draw(viewProj)
}

// Close releases all resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.audio != nil {
		v.audio.Close()
	}
	if v.marker != nil {
		v.marker.Destroy()
	}
	if v.arc != nil {
		v.arc.Destroy()
	}
	if v.house != nil {
		v.house.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
