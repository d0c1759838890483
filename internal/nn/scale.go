package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/feedforward/internal/nnerr"
	"github.com/born-ml/feedforward/internal/optim"
)

// Scale multiplies each output of its predecessor by a constant factor.
//
//	out_i = factor * prev_i
//
// Scale has no trainable parameters and needs the same neuron count as its
// predecessor; a mismatch fails with nnerr.ErrShapeMismatch.
//
// Example:
//
//	half := nn.NewScale(4, 0.5)
type Scale struct {
	neurons

	factor float64
}

// NewScale creates a scale layer with n neurons.
//
// Panics if n is negative.
func NewScale(n int, factor float64) *Scale {
	if n < 0 {
		panic(fmt.Sprintf("nn.NewScale: negative neuron count %d", n))
	}
	return &Scale{neurons: newNeurons(n), factor: factor}
}

// Factor returns the scale factor.
func (s *Scale) Factor() float64 { return s.factor }

// SetFactor changes the scale factor.
func (s *Scale) SetFactor(factor float64) { s.factor = factor }

// Resize changes the neuron count.
func (s *Scale) Resize(n int) error {
	if n < 0 {
		return nnerr.Configf("resize", "negative neuron count %d for %s", n, s)
	}
	if n == s.Size() {
		return nil
	}
	s.neurons.resize(n)
	if s.next != nil {
		s.next.previousChanged()
	}
	return nil
}

func (s *Scale) previousChanged() {}

func (s *Scale) checkShape(op string) error {
	if s.prev.Size() != s.Size() {
		return nnerr.ShapeMismatchf(op, s.String(),
			"previous layer has %d neurons, want %d", s.prev.Size(), s.Size())
	}
	return nil
}

// Initialize is a no-op; Scale has nothing to train.
func (s *Scale) Initialize(*rand.Rand) {}

// Forward scales the predecessor's outputs and recurses into the successor.
func (s *Scale) Forward() (Layer, error) {
	if s.prev != nil {
		if err := s.checkShape("forward"); err != nil {
			return nil, err
		}
		for i, x := range s.prev.Outputs() {
			s.values[i] = x * s.factor
			s.derivatives[i] = s.factor
		}
	}
	if s.next == nil {
		return s, nil
	}
	return s.next.Forward()
}

// Backward computes each neuron's delta and recurses into the predecessor.
func (s *Scale) Backward(opt optim.Optimizer) error {
	if s.prev == nil {
		return nil
	}
	if err := s.checkShape("backward"); err != nil {
		return err
	}
	for i := range s.deltas {
		dTotalOverOut := s.deltas[i]
		if s.next != nil {
			c, err := s.next.DeltaContribution(i)
			if err != nil {
				return err
			}
			dTotalOverOut = c
		}
		s.deltas[i] = dTotalOverOut * s.derivatives[i]
	}
	return s.prev.Backward(opt)
}

// DeltaContribution returns the delta of neuron prevIndex; each output
// depends on exactly one input.
func (s *Scale) DeltaContribution(prevIndex int) (float64, error) {
	if prevIndex < 0 || prevIndex >= s.Size() {
		return 0, nnerr.ShapeMismatchf("delta contribution", s.String(), "no input %d", prevIndex)
	}
	return s.deltas[prevIndex], nil
}

// Clone returns an unlinked copy.
func (s *Scale) Clone() Layer {
	c := NewScale(s.Size(), s.factor)
	s.cloneInto(&c.neurons)
	return c
}

// String describes the layer, e.g. "scale(4, x0.5)".
func (s *Scale) String() string {
	return fmt.Sprintf("scale(%d, x%g)", s.Size(), s.factor)
}
