// Package nn implements the layer chain of the feed-forward engine.
//
// This package provides:
//   - Layer interface: the capability set every layer in a chain implements
//   - Dense: fully connected layer with optional bias
//   - Scale: element-wise constant scaling
//   - Pooling: 1-D max/average pooling (forward only)
//   - Link, Unlink, Last, Count, All: chain construction and traversal
//
// Layers form a single linear chain. Each layer knows its predecessor and
// successor; Link is the only way to change either, and it keeps both ends
// paired and rebuilds the weight storage that depends on them.
package nn

import (
	"maps"
	"math/rand/v2"

	"github.com/born-ml/feedforward/internal/nnerr"
	"github.com/born-ml/feedforward/internal/optim"
)

// Layer is the capability set shared by all layers of a chain.
//
// The set of implementations is closed: every Layer embeds the package's
// neuron storage, so layers outside this package cannot be linked.
type Layer interface {
	// Size returns the neuron count.
	Size() int

	// Resize changes the neuron count. Outputs, derivatives and deltas are
	// resized in lockstep and the successor rebuilds its weights.
	Resize(n int) error

	// Previous returns the predecessor, nil for the head of a chain.
	Previous() Layer

	// Next returns the successor, nil for the tail of a chain.
	Next() Layer

	// Outputs returns the values computed by the last Forward.
	// The slice is owned by the layer.
	Outputs() []float64

	// SetOutputs assigns output values directly. Used for the head layer,
	// which passes its assigned input through untouched.
	SetOutputs(values []float64) error

	// Derivatives returns the activation slope at the last weighted sums.
	Derivatives() []float64

	// Deltas returns the per-neuron d cost / d net input terms.
	Deltas() []float64

	// SetDelta seeds the delta of neuron i. The network seeds the tail
	// layer with the cost derivative before calling Backward.
	SetDelta(i int, v float64)

	// Forward evaluates this layer from its predecessor's outputs and
	// recurses into the successor. It returns the tail of the chain.
	Forward() (Layer, error)

	// Backward computes gradients, applies opt to every weight and bias and
	// recurses into the predecessor. It is a no-op on the head layer.
	Backward(opt optim.Optimizer) error

	// DeltaContribution returns d cost / d output of neuron prevIndex of the
	// predecessor, summed over this layer's neurons.
	DeltaContribution(prevIndex int) (float64, error)

	// Initialize draws every trainable value from rng.
	Initialize(rng *rand.Rand)

	// Clone returns an unlinked copy of the layer and its parameters.
	Clone() Layer

	// NeuronValue returns the output of the neuron registered under name.
	NeuronValue(name string) (float64, bool)

	// SetNeuronNames registers name → neuron index associations.
	SetNeuronNames(names map[string]int)

	// String describes the layer for errors and logs.
	String() string

	core() *neurons
	previousChanged()
}

// neurons is the per-neuron state and the chain links every layer embeds.
type neurons struct {
	values      []float64
	derivatives []float64
	deltas      []float64

	prev Layer
	next Layer

	names map[string]int
}

func newNeurons(n int) neurons {
	return neurons{
		values:      make([]float64, n),
		derivatives: make([]float64, n),
		deltas:      make([]float64, n),
	}
}

func (b *neurons) core() *neurons { return b }

// Size returns the neuron count.
func (b *neurons) Size() int { return len(b.values) }

// Previous returns the predecessor.
func (b *neurons) Previous() Layer { return b.prev }

// Next returns the successor.
func (b *neurons) Next() Layer { return b.next }

// Outputs returns the output values.
func (b *neurons) Outputs() []float64 { return b.values }

// Derivatives returns the activation derivatives.
func (b *neurons) Derivatives() []float64 { return b.derivatives }

// Deltas returns the deltas.
func (b *neurons) Deltas() []float64 { return b.deltas }

// SetDelta seeds the delta of neuron i.
//
// Panics if i is out of range.
func (b *neurons) SetDelta(i int, v float64) { b.deltas[i] = v }

// SetOutputs copies values into the outputs. The length must match Size.
func (b *neurons) SetOutputs(values []float64) error {
	if len(values) != len(b.values) {
		return nnerr.Configf("set outputs", "got %d values for %d neurons", len(values), len(b.values))
	}
	copy(b.values, values)
	return nil
}

func (b *neurons) resize(n int) {
	b.values = resized(b.values, n)
	b.derivatives = resized(b.derivatives, n)
	b.deltas = resized(b.deltas, n)
}

// NeuronValue returns the output of the neuron registered under name.
func (b *neurons) NeuronValue(name string) (float64, bool) {
	i, ok := b.names[name]
	if !ok || i < 0 || i >= len(b.values) {
		return 0, false
	}
	return b.values[i], true
}

// SetNeuronNames registers name → neuron index associations, replacing any
// previous ones. A nil map clears them.
func (b *neurons) SetNeuronNames(names map[string]int) {
	b.names = maps.Clone(names)
}

func (b *neurons) cloneInto(dst *neurons) {
	copy(dst.values, b.values)
	copy(dst.derivatives, b.derivatives)
	dst.SetNeuronNames(b.names)
}

// resized returns s with length n, keeping the common prefix and zeroing the
// rest. s itself is returned when the length already matches.
func resized(s []float64, n int) []float64 {
	if len(s) == n {
		return s
	}
	out := make([]float64, n)
	copy(out, s)
	return out
}
