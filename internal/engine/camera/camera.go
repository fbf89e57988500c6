// Package camera provides the view camera of the polytope viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hyperview/pkg/math"
)

const (
	// DefaultFieldOfView is 60 degrees.
	DefaultFieldOfView = gomath.Pi / 3
	DefaultNear        = 0.001
	DefaultFar         = 100.0

	// DefaultScrollSensitivity is the pan distance per scroll unit at a
	// 45 degree field of view.
	DefaultScrollSensitivity = 0.003

	minFieldOfView = 0.05
	maxFieldOfView = 3.0
)

// ViewCamera looks from Eye towards Centre. The projected polytope sits at
// the origin of its model space; Model places it in the world and is
// translated by panning.
type ViewCamera struct {
	Eye, Centre, Up math.Vec3

	FieldOfView float32 // vertical, radians
	Near, Far   float32
	Aspect      float32 // width / height

	Model math.Mat4

	ScrollSensitivity float32
	MinFieldOfView    float32
	MaxFieldOfView    float32
}

// NewViewCamera creates a camera at the origin looking down +Z at a model
// placed five units away.
func NewViewCamera() *ViewCamera {
	c := &ViewCamera{
		Eye:               math.Vec3{},
		Centre:            math.Vec3{Z: 5},
		Up:                math.Vec3{Y: 1},
		FieldOfView:       DefaultFieldOfView,
		Near:              DefaultNear,
		Far:               DefaultFar,
		Aspect:            1,
		ScrollSensitivity: DefaultScrollSensitivity,
		MinFieldOfView:    minFieldOfView,
		MaxFieldOfView:    maxFieldOfView,
	}
	c.Reset()
	return c
}

// Reset moves the model back to the view centre.
func (c *ViewCamera) Reset() {
	c.Model = math.Translate(c.Centre)
}

// ViewMatrix returns the view matrix for this camera.
func (c *ViewCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Centre, c.Up)
}

// ProjectionMatrix returns the perspective matrix for the current field of
// view and aspect ratio.
func (c *ViewCamera) ProjectionMatrix() math.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FieldOfView, aspect, c.Near, c.Far)
}

// MVP returns projection * view * model.
func (c *ViewCamera) MVP() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix().Mul(c.Model))
}

// SetViewport updates the aspect ratio. Zero sizes are ignored.
func (c *ViewCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// HandleScroll pans the model. The scroll delta is a motion in camera
// coordinates (y up); it is mapped into object coordinates and applied as a
// translation on the model side, so panning stays screen-aligned.
func (c *ViewCamera) HandleScroll(deltaX, deltaY float32) {
	if deltaX == 0 && deltaY == 0 {
		return
	}
	s := c.ScrollSensitivity * (c.FieldOfView / (gomath.Pi / 4))
	motion := math.Vec3{X: s * deltaX, Y: -s * deltaY}

	cameraToObject := c.ViewMatrix().Mul(c.Model).Linear().Inverse()
	c.Model = c.Model.Mul(math.Translate(cameraToObject.TransformDirection(motion)))
}

// HandlePinch narrows the field of view as the fingers spread. magnification
// is the relative change in finger distance.
func (c *ViewCamera) HandlePinch(magnification float32) {
	scale := 1 + magnification
	if scale <= 0.01 {
		scale = 0.01
	}
	c.FieldOfView /= scale
	if c.FieldOfView < c.MinFieldOfView {
		c.FieldOfView = c.MinFieldOfView
	}
	if c.FieldOfView > c.MaxFieldOfView {
		c.FieldOfView = c.MaxFieldOfView
	}
}
