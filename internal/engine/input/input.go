// Package input turns SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/hyperview/internal/engine/rotation"
	"github.com/Faultbox/hyperview/pkg/math"
)

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDrag
	EventScroll
	EventPinch
)

// wheelStep converts one wheel notch into scroll units.
const wheelStep = 20

// Event represents a processed input event.
type Event struct {
	Type EventType
	Key  sdl.Keycode

	// Width and Height are set for EventWindowResize.
	Width, Height int

	// Delta carries the drag motion in screen points (y down) or the
	// scroll delta.
	Delta math.Vec2
	// Mode is the rotation-plane pair selected by the held modifier.
	Mode rotation.Mode

	// Magnification is the relative pinch change.
	Magnification float32
}

// Input handles all input processing.
type Input struct {
	events   []Event
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// ModeFor maps the keyboard modifier state to a drag mode: none rotates
// xy/zw, shift/ctrl/gui rotates yz/wx and alt rotates xz/yw.
func ModeFor(mod sdl.Keymod) rotation.Mode {
	switch {
	case mod&sdl.KMOD_ALT != 0:
		return rotation.ModeXZYW
	case mod&(sdl.KMOD_SHIFT|sdl.KMOD_CTRL|sdl.KMOD_GUI) != 0:
		return rotation.ModeYZWX
	default:
		return rotation.ModeXYZW
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Sym})
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT && e.Which != sdl.TOUCH_MOUSEID {
				i.dragging = e.State == sdl.PRESSED
			}

		case *sdl.MouseMotionEvent:
			if i.dragging && (e.XRel != 0 || e.YRel != 0) {
				i.events = append(i.events, Event{
					Type:  EventDrag,
					Delta: math.Vec2{X: float32(e.XRel), Y: float32(e.YRel)},
					Mode:  ModeFor(sdl.GetModState()),
				})
			}

		case *sdl.MouseWheelEvent:
			delta := math.Vec2{X: float32(e.X), Y: float32(e.Y)}.Scale(wheelStep)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				delta = delta.Scale(-1)
			}
			i.events = append(i.events, Event{Type: EventScroll, Delta: delta})

		case *sdl.MultiGestureEvent:
			if e.DDist != 0 {
				i.events = append(i.events, Event{Type: EventPinch, Magnification: e.DDist})
			}
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
