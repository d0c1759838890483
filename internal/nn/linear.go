package nn

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/nnerr"
	"github.com/born-ml/feedforward/internal/optim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dense implements a fully connected layer.
//
// For every neuron n it computes:
//
//	sum_n = bias_n + Σ_p weight(n, p) * prev_p
//	out_n = activation(sum_n)
//
// Weights are stored row-major: weight(n, p) lives at n*prevCount + p, so
// the slice has Size() * Previous().Size() entries (0 without a predecessor).
// Every weight and bias keeps the value it held before its last update,
// which momentum optimizers and delta propagation read.
//
// Example:
//
//	hidden := nn.NewDense(activation.Sine{}, 2, true)
//	output := nn.NewDense(activation.Logistic{}, 1, true)
type Dense struct {
	neurons

	activation activation.Function
	useBias    bool
	input      bool

	inputs      int // predecessor neuron count the weights are shaped for
	weights     []float64
	prevWeights []float64
	biases      []float64
	prevBiases  []float64
}

// NewDense creates a new fully connected layer with n neurons.
//
// A nil activation defaults to activation.Logistic. Weights are allocated
// when the layer is linked behind a predecessor.
//
// Panics if n is negative.
func NewDense(act activation.Function, n int, useBias bool) *Dense {
	if n < 0 {
		panic(fmt.Sprintf("nn.NewDense: negative neuron count %d", n))
	}
	if act == nil {
		act = activation.Logistic{}
	}
	return &Dense{
		neurons:    newNeurons(n),
		activation: act,
		useBias:    useBias,
		biases:     make([]float64, n),
		prevBiases: make([]float64, n),
	}
}

// NewInput creates the bias-free head layer of a network. Its outputs are
// whatever was last assigned with SetOutputs.
func NewInput(n int) *Dense {
	d := NewDense(activation.Identity{}, n, false)
	d.input = true
	return d
}

// Activation returns the layer's activation function.
func (d *Dense) Activation() activation.Function { return d.activation }

// UseBias reports whether the layer adds a bias to each weighted sum.
func (d *Dense) UseBias() bool { return d.useBias }

// Resize changes the neuron count, keeping the weights and biases of the
// neurons that survive.
func (d *Dense) Resize(n int) error {
	if n < 0 {
		return nnerr.Configf("resize", "negative neuron count %d for %s", n, d)
	}
	if n == d.Size() {
		return nil
	}
	rows := d.Size()
	d.neurons.resize(n)
	d.biases = resized(d.biases, n)
	d.prevBiases = resized(d.prevBiases, n)
	d.rebuildWeights(rows)
	if d.next != nil {
		d.next.previousChanged()
	}
	return nil
}

func (d *Dense) previousChanged() {
	d.rebuildWeights(d.Size())
}

// rebuildWeights reshapes the weight storage for the current predecessor.
// rows is the neuron count the existing storage was shaped for. Connections
// present in both shapes keep their values; new ones start at zero.
func (d *Dense) rebuildWeights(rows int) {
	inputs := 0
	if d.prev != nil {
		inputs = d.prev.Size()
	}
	n := d.Size()
	if inputs == d.inputs && rows == n && len(d.weights) == n*inputs {
		return
	}

	weights := make([]float64, n*inputs)
	prevWeights := make([]float64, n*inputs)
	keepRows, keepCols := min(rows, n), min(d.inputs, inputs)
	for r := range keepRows {
		copy(weights[r*inputs:r*inputs+keepCols], d.weights[r*d.inputs:])
		copy(prevWeights[r*inputs:r*inputs+keepCols], d.prevWeights[r*d.inputs:])
	}
	d.weights, d.prevWeights, d.inputs = weights, prevWeights, inputs
}

func (d *Dense) checkShape(op string) error {
	if d.prev == nil {
		return nil
	}
	if want := d.prev.Size() * d.Size(); len(d.weights) != want || d.inputs != d.prev.Size() {
		return nnerr.Configf(op, "%s has %d weights, want %d for %d inputs",
			d, len(d.weights), want, d.prev.Size())
	}
	return nil
}

// Initialize draws every weight and bias uniformly from [0, 1). The
// previous-value snapshots start equal to the drawn values.
func (d *Dense) Initialize(rng *rand.Rand) {
	for n := range d.Size() {
		d.biases[n] = rng.Float64()
		d.prevBiases[n] = d.biases[n]
		for p := range d.inputs {
			i := n*d.inputs + p
			d.weights[i] = rng.Float64()
			d.prevWeights[i] = d.weights[i]
		}
	}
}

// Forward computes the outputs from the predecessor and recurses into the
// successor. Without a predecessor the assigned outputs pass through.
func (d *Dense) Forward() (Layer, error) {
	if d.prev != nil {
		if err := d.checkShape("forward"); err != nil {
			return nil, err
		}
		in := d.prev.Outputs()
		p := d.inputs
		for n := range d.values {
			sum := floats.Dot(d.weights[n*p:(n+1)*p], in)
			if d.useBias {
				sum += d.biases[n]
			}
			d.derivatives[n] = d.activation.Derivative(sum)
			d.values[n] = d.activation.Value(sum)
		}
	}
	if d.next == nil {
		return d, nil
	}
	return d.next.Forward()
}

// Backward updates every weight and bias of the layer and recurses into the
// predecessor.
//
// For neuron n and input p:
//
//	dTotalOverOut = seeded delta (tail) or next.DeltaContribution(n)
//	dTotalOverNet = dTotalOverOut * derivative_n   (stored as delta_n)
//	gradient      = dTotalOverNet * prev_p
func (d *Dense) Backward(opt optim.Optimizer) error {
	if d.prev == nil {
		return nil
	}
	if err := d.checkShape("backward"); err != nil {
		return err
	}

	in := d.prev.Outputs()
	p := d.inputs
	for n := range d.values {
		dTotalOverOut := d.deltas[n]
		if d.next != nil {
			c, err := d.next.DeltaContribution(n)
			if err != nil {
				return err
			}
			dTotalOverOut = c
		}
		dTotalOverNet := dTotalOverOut * d.derivatives[n]
		d.deltas[n] = dTotalOverNet

		row := n * p
		for i, x := range in {
			w := d.weights[row+i]
			updated := opt.UpdateWeight(w, d.prevWeights[row+i], dTotalOverNet*x)
			d.prevWeights[row+i] = w
			d.weights[row+i] = updated
		}

		if d.useBias {
			b := d.biases[n]
			updated := opt.UpdateWeight(b, d.prevBiases[n], dTotalOverNet)
			d.prevBiases[n] = b
			d.biases[n] = updated
		}
	}

	return d.prev.Backward(opt)
}

// DeltaContribution returns Σ_n delta_n * weight(n, prevIndex), reading each
// weight as it was before the update of the current backward pass.
func (d *Dense) DeltaContribution(prevIndex int) (float64, error) {
	if prevIndex < 0 || prevIndex >= d.inputs {
		return 0, nnerr.Configf("delta contribution", "%s has no input %d", d, prevIndex)
	}
	var sum float64
	for n, delta := range d.deltas {
		sum += delta * d.prevWeights[n*d.inputs+prevIndex]
	}
	return sum, nil
}

// Weight returns weight(n, p).
//
// Panics if n or p is out of range.
func (d *Dense) Weight(n, p int) float64 {
	return d.weights[d.index(n, p)]
}

// PreviousWeight returns the value weight(n, p) held before its last update.
func (d *Dense) PreviousWeight(n, p int) float64 {
	return d.prevWeights[d.index(n, p)]
}

// SetWeight assigns weight(n, p), shifting the old value into the previous
// slot.
func (d *Dense) SetWeight(n, p int, w float64) {
	i := d.index(n, p)
	d.prevWeights[i] = d.weights[i]
	d.weights[i] = w
}

// Bias returns the bias of neuron n.
func (d *Dense) Bias(n int) float64 {
	return d.biases[n]
}

// SetBias assigns the bias of neuron n, shifting the old value into the
// previous slot.
func (d *Dense) SetBias(n int, b float64) {
	d.prevBiases[n] = d.biases[n]
	d.biases[n] = b
}

func (d *Dense) index(n, p int) int {
	if n < 0 || n >= d.Size() || p < 0 || p >= d.inputs {
		panic(fmt.Sprintf("Dense.Weight: index (%d, %d) out of range [%d, %d]", n, p, d.Size(), d.inputs))
	}
	return n*d.inputs + p
}

// Weights returns a copy of the flattened weights.
func (d *Dense) Weights() []float64 { return slices.Clone(d.weights) }

// PreviousWeights returns a copy of the flattened previous weights.
func (d *Dense) PreviousWeights() []float64 { return slices.Clone(d.prevWeights) }

// Biases returns a copy of the biases.
func (d *Dense) Biases() []float64 { return slices.Clone(d.biases) }

// WeightMatrix returns the weights as a Size() x Previous().Size() matrix.
// Returns nil when the layer has no inputs.
func (d *Dense) WeightMatrix() *mat.Dense {
	if d.inputs == 0 || d.Size() == 0 {
		return nil
	}
	return mat.NewDense(d.Size(), d.inputs, slices.Clone(d.weights))
}

// Clone returns an unlinked copy with the same weights, biases and outputs.
func (d *Dense) Clone() Layer {
	c := NewDense(d.activation, d.Size(), d.useBias)
	c.input = d.input
	c.inputs = d.inputs
	c.weights = slices.Clone(d.weights)
	c.prevWeights = slices.Clone(d.prevWeights)
	copy(c.biases, d.biases)
	copy(c.prevBiases, d.prevBiases)
	d.cloneInto(&c.neurons)
	return c
}

// String describes the layer, e.g. "dense(sine, 2, bias)".
func (d *Dense) String() string {
	if d.input {
		return fmt.Sprintf("input(%d)", d.Size())
	}
	bias := "no bias"
	if d.useBias {
		bias = "bias"
	}
	return fmt.Sprintf("dense(%s, %d, %s)", d.activation.Name(), d.Size(), bias)
}
