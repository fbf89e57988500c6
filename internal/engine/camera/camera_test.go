package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/hyperview/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

var origin = math.Vec4{W: 1}

func TestNewViewCamera_CentresModel(t *testing.T) {
	c := NewViewCamera()
	clip := c.MVP().MulVec4(origin)
	if !near(clip.X/clip.W, 0) || !near(clip.Y/clip.W, 0) {
		t.Errorf("model origin at NDC (%v, %v), want screen centre", clip.X/clip.W, clip.Y/clip.W)
	}
	if !near(clip.W, 5) {
		t.Errorf("clip w = %v, want distance 5", clip.W)
	}
	if ndcZ := clip.Z / clip.W; ndcZ <= -1 || ndcZ >= 1 {
		t.Errorf("model origin NDC depth %v outside the clip volume", ndcZ)
	}
}

func TestHandleScroll_PansInCameraSpace(t *testing.T) {
	c := NewViewCamera()
	before := c.ViewMatrix().Mul(c.Model).MulVec4(origin)

	c.HandleScroll(10, -20)

	after := c.ViewMatrix().Mul(c.Model).MulVec4(origin)
	s := float32(DefaultScrollSensitivity * (DefaultFieldOfView / (gomath.Pi / 4)))
	if dx := after.X - before.X; !near(dx, 10*s) {
		t.Errorf("view x moved by %v, want %v", dx, 10*s)
	}
	if dy := after.Y - before.Y; !near(dy, 20*s) {
		t.Errorf("view y moved by %v, want %v", dy, 20*s)
	}
	if dz := after.Z - before.Z; !near(dz, 0) {
		t.Errorf("view z moved by %v, want 0", dz)
	}
}

func TestHandleScroll_Zero(t *testing.T) {
	c := NewViewCamera()
	m := c.Model
	c.HandleScroll(0, 0)
	if c.Model != m {
		t.Errorf("zero scroll changed the model matrix")
	}
}

func TestHandlePinch(t *testing.T) {
	c := NewViewCamera()
	fov := c.FieldOfView
	c.HandlePinch(0.5)
	if !near(c.FieldOfView, fov/1.5) {
		t.Errorf("FieldOfView = %v, want %v", c.FieldOfView, fov/1.5)
	}

	for i := 0; i < 100; i++ {
		c.HandlePinch(1)
	}
	if c.FieldOfView != c.MinFieldOfView {
		t.Errorf("FieldOfView = %v, want clamped to %v", c.FieldOfView, c.MinFieldOfView)
	}

	for i := 0; i < 100; i++ {
		c.HandlePinch(-0.9)
	}
	if c.FieldOfView != c.MaxFieldOfView {
		t.Errorf("FieldOfView = %v, want clamped to %v", c.FieldOfView, c.MaxFieldOfView)
	}
}

func TestSetViewport(t *testing.T) {
	c := NewViewCamera()
	c.SetViewport(1600, 800)
	if c.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", c.Aspect)
	}
	c.SetViewport(0, 600)
	if c.Aspect != 2 {
		t.Errorf("zero width changed Aspect to %v", c.Aspect)
	}
}

func TestReset(t *testing.T) {
	c := NewViewCamera()
	c.HandleScroll(50, 50)
	c.Reset()
	if c.Model != math.Translate(c.Centre) {
		t.Errorf("Reset() left model at %v", c.Model)
	}
}
