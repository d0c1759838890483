// Package network owns a layer chain together with its cost function and
// optimizer, and trains it one sample per iteration.
//
// A Network is not safe for concurrent use. One goroutine at a time may
// evaluate or train it; observers run synchronously on that goroutine.
package network

import (
	"iter"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/born-ml/feedforward/internal/cost"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/nnerr"
	"github.com/born-ml/feedforward/internal/optim"
)

// Sample is one training example.
type Sample struct {
	Input  []float64
	Output []float64
}

// Network is a feed-forward network: a synthetic input layer followed by a
// chain of layers, a cost function and one optimizer applied uniformly to
// every layer.
type Network struct {
	input      nn.Layer
	output     nn.Layer
	layerCount int

	costFn cost.Function
	opt    optim.Optimizer
	rng    *rand.Rand
	logger *slog.Logger

	currentCost     float64
	previousCost    float64
	totalIterations int

	costChanged       observers[CostChangedFunc]
	forwardPropagated observers[ForwardPropagatedFunc]
	backPropagated    observers[BackPropagatedFunc]
}

// Option configures a Network.
type Option func(*options)

type options struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// WithRand sets the generator used for weight initialization and random
// sampling.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds the generator used for weight initialization and random
// sampling.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = nn.NewRand(seed) }
}

// WithLogger sets the logger for construction and training events.
// The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New builds a network with inputSize inputs followed by layers.
//
// The layers are linked in order behind a bias-free input layer and every
// weight and bias is drawn uniformly from [0, 1).
//
// Example:
//
//	net, err := network.New(2,
//	    cost.DiffSquared{},
//	    optim.NewMomentum(optim.MomentumConfig{LR: 0.8, Momentum: 0.2}),
//	    []nn.Layer{
//	        nn.NewDense(activation.Sine{}, 2, true),
//	        nn.NewDense(activation.Logistic{}, 1, true),
//	    })
func New(inputSize int, costFn cost.Function, opt optim.Optimizer, layers []nn.Layer, opts ...Option) (*Network, error) {
	if inputSize <= 0 {
		return nil, nnerr.Configf("new network", "input size must be positive, got %d", inputSize)
	}
	if costFn == nil {
		return nil, nnerr.Configf("new network", "cost function is nil")
	}
	if opt == nil {
		return nil, nnerr.Configf("new network", "optimizer is nil")
	}
	if len(layers) == 0 {
		return nil, nnerr.Configf("new network", "network needs at least one layer after the input")
	}
	for i, l := range layers {
		if l == nil {
			return nil, nnerr.Configf("new network", "layer %d is nil", i)
		}
		if l.Size() <= 0 {
			return nil, nnerr.Configf("new network", "layer %d (%s) has no neurons", i, l)
		}
	}

	o := options{}
	for _, apply := range opts {
		apply(&o)
	}
	if o.rng == nil {
		o.rng = nn.NewTimeRand()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	input := nn.NewInput(inputSize)
	prev := nn.Layer(input)
	for _, l := range layers {
		if err := nn.Link(prev, l); err != nil {
			return nil, err
		}
		prev = l
	}

	n := &Network{
		costFn: costFn,
		opt:    opt,
		rng:    o.rng,
		logger: o.logger,
	}
	n.setInput(input)

	n.logger.Debug("network built",
		"inputs", inputSize,
		"outputs", n.output.Size(),
		"layers", n.layerCount,
		"cost", costFn.Name())
	return n, nil
}

// SetInput replaces the head of the chain and initializes every layer from
// it to the tail. A nil head leaves the network unusable until a new one is
// set.
func (n *Network) SetInput(head nn.Layer) {
	n.setInput(head)
}

func (n *Network) setInput(head nn.Layer) {
	n.input = head
	n.Relink()
	if head != nil {
		nn.InitializeAll(head, n.rng)
	}
}

// Reinitialize draws fresh weights and biases for the whole chain.
func (n *Network) Reinitialize() {
	if n.input != nil {
		nn.InitializeAll(n.input, n.rng)
	}
}

// Relink recomputes the tail and layer count after the chain was changed with
// nn.Link. Training and evaluation call it themselves.
func (n *Network) Relink() {
	n.output = nn.Last(n.input)
	n.layerCount = nn.Count(n.input)
}

// Input returns the head layer.
func (n *Network) Input() nn.Layer { return n.input }

// Output returns the tail layer.
func (n *Network) Output() nn.Layer { return n.output }

// LayerCount returns the number of layers including the input layer.
func (n *Network) LayerCount() int { return n.layerCount }

// Layers yields every layer from head to tail.
func (n *Network) Layers() iter.Seq[nn.Layer] { return nn.All(n.input) }

// CostFunction returns the cost function.
func (n *Network) CostFunction() cost.Function { return n.costFn }

// Optimizer returns the optimizer shared by all layers.
func (n *Network) Optimizer() optim.Optimizer { return n.opt }

// CurrentCost returns the total cost of the most recent training sample.
func (n *Network) CurrentCost() float64 { return n.currentCost }

// PreviousCost returns the cost before CurrentCost.
func (n *Network) PreviousCost() float64 { return n.previousCost }

// TotalIterationsTrained returns the number of backward passes performed
// over the network's lifetime.
func (n *Network) TotalIterationsTrained() int { return n.totalIterations }

// ConfidencePercentage returns (1 - CurrentCost) * 100.
func (n *Network) ConfidencePercentage() float64 {
	return (1 - n.currentCost) * 100
}

// NeuronValue returns the output neuron registered under name with
// SetNeuronNames on the output layer.
func (n *Network) NeuronValue(name string) (float64, bool) {
	if n.output == nil {
		return 0, false
	}
	return n.output.NeuronValue(name)
}

// Calculate propagates input through the network and returns a copy of the
// output values.
func (n *Network) Calculate(input []float64) ([]float64, error) {
	out, err := n.evaluate("calculate", input)
	if err != nil {
		return nil, err
	}
	return slices.Clone(out.Outputs()), nil
}

// CalculateError propagates input and returns target - actual for every
// output neuron together with the summed cost. The network is not trained.
func (n *Network) CalculateError(input, expected []float64) ([]float64, float64, error) {
	out, err := n.evaluate("calculate error", input)
	if err != nil {
		return nil, 0, err
	}
	actual := out.Outputs()
	if len(expected) != len(actual) {
		return nil, 0, nnerr.Configf("calculate error", "expected output has %d values, want %d", len(expected), len(actual))
	}

	errs := make([]float64, len(actual))
	var total float64
	for i, a := range actual {
		errs[i] = expected[i] - a
		total += n.costFn.Evaluate(expected[i], a)
	}
	return errs, total, nil
}

// Cost returns the summed cost of the network over samples without training.
func (n *Network) Cost(samples []Sample) (float64, error) {
	if err := n.validateTraining("cost", samples); err != nil {
		return 0, err
	}
	var total float64
	for _, s := range samples {
		_, c, err := n.CalculateError(s.Input, s.Output)
		if err != nil {
			return 0, err
		}
		total += c
	}
	return total, nil
}

func (n *Network) evaluate(op string, input []float64) (nn.Layer, error) {
	if n.input == nil {
		return nil, nnerr.Configf(op, "network has no input layer")
	}
	if len(input) != n.input.Size() {
		return nil, nnerr.Configf(op, "input has %d values, want %d", len(input), n.input.Size())
	}
	n.Relink()
	if err := n.input.SetOutputs(input); err != nil {
		return nil, err
	}
	return n.input.Forward()
}

// Clone returns a deep copy of the network: same weights, cost function,
// optimizer, costs and iteration count. Observers are not copied.
func (n *Network) Clone() *Network {
	c := &Network{
		costFn:          n.costFn,
		opt:             n.opt,
		rng:             nn.NewRand(n.rng.Uint64()),
		logger:          n.logger,
		currentCost:     n.currentCost,
		previousCost:    n.previousCost,
		totalIterations: n.totalIterations,
	}
	var head, prev nn.Layer
	for l := range nn.All(n.input) {
		copied := l.Clone()
		if prev == nil {
			head = copied
		} else {
			// Clones are fresh and acyclic.
			_ = nn.Link(prev, copied)
		}
		prev = copied
	}
	c.input = head
	c.Relink()
	return c
}
