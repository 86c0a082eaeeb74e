package vrspace

import (
	"fmt"

	"github.com/Faultbox/hauswalk/pkg/math"
)

// EmulatedProvider serves tracking frames for desktop runs without a VR
// runtime. The frames it hands out sit at the physical origin.
type EmulatedProvider struct {
	// Kinds lists the frame kinds the emulation serves. Empty serves
	// every kind.
	Kinds []Kind
}

// RequestFrame implements Provider.
func (p EmulatedProvider) RequestFrame(kind Kind) (Frame, error) {
	if kind != KindFloor && kind != KindViewer {
		return Frame{}, fmt.Errorf("requesting %q: %w", kind, ErrUnsupported)
	}
	if len(p.Kinds) == 0 {
		return NewFrame(math.IdentityTransform()), nil
	}
	for _, k := range p.Kinds {
		if k == kind {
			return NewFrame(math.IdentityTransform()), nil
		}
	}
	return Frame{}, fmt.Errorf("requesting %q: %w", kind, ErrUnsupported)
}
