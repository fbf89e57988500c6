package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/hyperview/internal/engine/rotation"
	"github.com/Faultbox/hyperview/pkg/math"
)

// Drag is one recorded pointer drag in screen points.
type Drag struct {
	Delta math.Vec2
	Mode  rotation.Mode
}

// ParseDrags reads a drag script: drags separated by ';', each written as
// "dx,dy" or "dx,dy,mode" where mode is a plane pair such as "yz/wx" or
// its number. Blank entries are skipped.
func ParseDrags(script string) ([]Drag, error) {
	var drags []Drag
	for i, entry := range strings.Split(script, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.Split(entry, ",")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("drag %d %q: want dx,dy[,mode]", i+1, entry)
		}
		var d Drag
		for k, dst := range []*float32{&d.Delta.X, &d.Delta.Y} {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[k]), 32)
			if err != nil {
				return nil, fmt.Errorf("drag %d %q: %w", i+1, entry, err)
			}
			*dst = float32(v)
		}
		if len(fields) == 3 {
			m, err := rotation.ParseMode(strings.TrimSpace(fields[2]))
			if err != nil {
				return nil, fmt.Errorf("drag %d: %w", i+1, err)
			}
			d.Mode = m
		}
		drags = append(drags, d)
	}
	return drags, nil
}

// Replay applies the drags in order. The scene regenerates once, on the
// next Update.
func (s *Scene) Replay(drags []Drag) error {
	for _, d := range drags {
		if err := s.HandleDrag(d.Delta, d.Mode); err != nil {
			return err
		}
	}
	return nil
}
