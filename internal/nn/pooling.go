package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/feedforward/internal/nnerr"
	"github.com/born-ml/feedforward/internal/optim"
)

// PoolKind selects the reduction a Pooling layer applies to each window.
type PoolKind int

// Pooling reductions.
const (
	MaxPool PoolKind = iota
	AveragePool
)

// String returns "max" or "average".
func (k PoolKind) String() string {
	switch k {
	case MaxPool:
		return "max"
	case AveragePool:
		return "average"
	default:
		return fmt.Sprintf("PoolKind(%d)", int(k))
	}
}

// Pooling reduces non-overlapping windows of its predecessor's outputs to
// one value each.
//
// Input size:  inputs
// Output size: inputs / window (a trailing partial window is ignored)
//
// Only the forward pass is implemented. Backward and DeltaContribution fail
// with nnerr.ErrUnsupported, so a chain containing a Pooling layer can be
// evaluated but not trained.
//
// Example:
//
//	pool := nn.NewPooling(nn.MaxPool, 8, 2) // 8 inputs -> 4 outputs
type Pooling struct {
	neurons

	kind   PoolKind
	inputs int
	window int
}

// NewPooling creates a pooling layer over inputs values with the given
// window size.
//
// Panics if window is not positive or inputs is negative.
func NewPooling(kind PoolKind, inputs, window int) *Pooling {
	if window <= 0 || inputs < 0 {
		panic(fmt.Sprintf("nn.NewPooling: invalid inputs=%d window=%d", inputs, window))
	}
	return &Pooling{
		neurons: newNeurons(inputs / window),
		kind:    kind,
		inputs:  inputs,
		window:  window,
	}
}

// Kind returns the pooling reduction.
func (p *Pooling) Kind() PoolKind { return p.kind }

// Window returns the window size.
func (p *Pooling) Window() int { return p.window }

// Resize fails: the neuron count is derived from the input size and window.
func (p *Pooling) Resize(n int) error {
	if n == p.Size() {
		return nil
	}
	return nnerr.Unsupportedf("resize", p.String(), "neuron count is fixed by inputs/window")
}

func (p *Pooling) previousChanged() {}

// Initialize is a no-op; Pooling has nothing to train.
func (p *Pooling) Initialize(*rand.Rand) {}

// Forward reduces each window of the predecessor's outputs and recurses into
// the successor.
func (p *Pooling) Forward() (Layer, error) {
	if p.prev != nil {
		if p.prev.Size() != p.inputs {
			return nil, nnerr.ShapeMismatchf("forward", p.String(),
				"previous layer has %d neurons, want %d", p.prev.Size(), p.inputs)
		}
		in := p.prev.Outputs()
		for i := range p.values {
			w := in[i*p.window : (i+1)*p.window]
			p.values[i] = p.reduce(w)
			p.derivatives[i] = 1
		}
	}
	if p.next == nil {
		return p, nil
	}
	return p.next.Forward()
}

func (p *Pooling) reduce(w []float64) float64 {
	switch p.kind {
	case AveragePool:
		var sum float64
		for _, x := range w {
			sum += x
		}
		return sum / float64(len(w))
	default:
		m := w[0]
		for _, x := range w[1:] {
			m = max(m, x)
		}
		return m
	}
}

// Backward is not implemented for pooling layers.
func (p *Pooling) Backward(optim.Optimizer) error {
	return nnerr.Unsupportedf("backward", p.String(), "pooling layers cannot be trained")
}

// DeltaContribution is not implemented for pooling layers.
func (p *Pooling) DeltaContribution(int) (float64, error) {
	return 0, nnerr.Unsupportedf("delta contribution", p.String(), "pooling layers cannot be trained")
}

// Clone returns an unlinked copy.
func (p *Pooling) Clone() Layer {
	c := NewPooling(p.kind, p.inputs, p.window)
	p.cloneInto(&c.neurons)
	return c
}

// String describes the layer, e.g. "pooling(max, 8/2)".
func (p *Pooling) String() string {
	return fmt.Sprintf("pooling(%s, %d/%d)", p.kind, p.inputs, p.window)
}
