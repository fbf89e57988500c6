// Package rotation accumulates the 4D orientation of the polytope from
// pointer drags.
package rotation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Faultbox/hyperview/pkg/math"
)

// ErrInvalidMode is returned for a drag mode outside ModeXYZW..ModeXZYW.
var ErrInvalidMode = errors.New("rotation: invalid drag mode")

// Mode selects the pair of coordinate planes a drag rotates. The three
// modes together reach all six planes of 4D space with a 2D pointer.
type Mode int

const (
	// ModeXYZW rotates xy with the horizontal drag and zw with the vertical.
	ModeXYZW Mode = iota
	// ModeYZWX rotates yz and wx. Selected by the primary modifier.
	ModeYZWX
	// ModeXZYW rotates xz and yw. Selected by the secondary modifier.
	ModeXZYW
)

var modePlanes = [...][2]math.Plane{
	ModeXYZW: {math.PlaneXY, math.PlaneZW},
	ModeYZWX: {math.PlaneYZ, math.PlaneWX},
	ModeXZYW: {math.PlaneXZ, math.PlaneYW},
}

// Planes returns the (horizontal, vertical) plane pair of the mode.
func (m Mode) Planes() (math.Plane, math.Plane, error) {
	if m < 0 || int(m) >= len(modePlanes) {
		return math.Plane{}, math.Plane{}, fmt.Errorf("mode %d: %w", int(m), ErrInvalidMode)
	}
	p := modePlanes[m]
	return p[0], p[1], nil
}

// String returns the plane pair, e.g. "xy/zw".
func (m Mode) String() string {
	first, second, err := m.Planes()
	if err != nil {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return first.String() + "/" + second.String()
}

// ParseMode accepts a plane pair name such as "yz/wx", or the mode number.
func ParseMode(name string) (Mode, error) {
	for m := ModeXYZW; m <= ModeXZYW; m++ {
		if name == m.String() || name == strconv.Itoa(int(m)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mode %q: %w", name, ErrInvalidMode)
}

// State holds the accumulated rotation. The zero value is not usable; call
// New.
//
// The matrix is only ever composed with elementary rotations. It is never
// reset or re-orthonormalized, so float32 drift builds up over a long
// session; Drift reports how far it has gone.
type State struct {
	matrix math.Mat4
	drags  int
}

// New returns a state at the identity orientation.
func New() *State {
	return &State{matrix: math.Identity()}
}

// Matrix returns the current rotation.
func (s *State) Matrix() math.Mat4 {
	return s.matrix
}

// Drags returns how many drags have been applied.
func (s *State) Drags() int {
	return s.drags
}

// ApplyDrag rotates by dx radians in the mode's first plane and dy radians
// in its second, on top of the current orientation:
//
//	M <- R(second, dy) * R(first, dx) * M
func (s *State) ApplyDrag(dx, dy float32, mode Mode) error {
	first, second, err := mode.Planes()
	if err != nil {
		return err
	}
	primary := math.RotatePlane(first, dx)
	secondary := math.RotatePlane(second, dy)
	s.matrix = secondary.Mul(primary.Mul(s.matrix))
	s.drags++
	return nil
}

// Drift returns the largest deviation of M^T * M from the identity.
func (s *State) Drift() float32 {
	return s.matrix.Transpose().Mul(s.matrix).MaxAbsDiff(math.Identity())
}
