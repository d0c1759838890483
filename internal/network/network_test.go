package network_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/cost"
	"github.com/born-ml/feedforward/internal/dataset"
	"github.com/born-ml/feedforward/internal/network"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/nnerr"
	"github.com/born-ml/feedforward/internal/optim"
)

func momentum() optim.Optimizer {
	return optim.NewMomentum(optim.MomentumConfig{LR: 0.8, Momentum: 0.2})
}

// gateNet builds the 2-2-1 network used for logic gates.
func gateNet(t *testing.T, hidden activation.Function, seed uint64, opts ...network.Option) *network.Network {
	t.Helper()
	opts = append([]network.Option{network.WithSeed(seed)}, opts...)
	net, err := network.New(2, cost.DiffSquared{}, momentum(), []nn.Layer{
		nn.NewDense(hidden, 2, true),
		nn.NewDense(activation.Logistic{}, 1, true),
	}, opts...)
	require.NoError(t, err)
	return net
}

// constantNet returns a network whose outputs are all 0.5 regardless of its
// single input.
func constantNet(t *testing.T, costFn cost.Function, outputs int) *network.Network {
	t.Helper()
	out := nn.NewDense(activation.Identity{}, outputs, true)
	net, err := network.New(1, costFn,
		optim.NewStaticLearningRate(optim.StaticConfig{LR: 0.01}),
		[]nn.Layer{out}, network.WithSeed(1))
	require.NoError(t, err)
	for n := range outputs {
		out.SetWeight(n, 0, 0)
		out.SetBias(n, 0.5)
	}
	return net
}

func constantSamples(outputs int) []network.Sample {
	target := make([]float64, outputs)
	for i := range target {
		target[i] = 0.55
	}
	return []network.Sample{{Input: []float64{0}, Output: target}}
}

func TestNew(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 1)

	assert.Equal(t, 3, net.LayerCount())
	assert.Equal(t, 2, net.Input().Size())
	assert.Equal(t, 1, net.Output().Size())
	assert.Nil(t, net.Input().Previous())
	assert.Nil(t, net.Output().Next())
	assert.Equal(t, 0, net.TotalIterationsTrained())
	assert.Equal(t, "diffsquared", net.CostFunction().Name())
	assert.InDelta(t, 0.8, net.Optimizer().GetLR(), 1e-12)

	var names []string
	for l := range net.Layers() {
		names = append(names, l.String())
	}
	assert.Equal(t, []string{"input(2)", "dense(sine, 2, bias)", "dense(logistic, 1, bias)"}, names)
}

func TestNew_Errors(t *testing.T) {
	dense := func() []nn.Layer { return []nn.Layer{nn.NewDense(nil, 1, true)} }

	tests := []struct {
		name   string
		inputs int
		cost   cost.Function
		opt    optim.Optimizer
		layers []nn.Layer
	}{
		{"zero inputs", 0, cost.DiffSquared{}, momentum(), dense()},
		{"nil cost", 2, nil, momentum(), dense()},
		{"nil optimizer", 2, cost.DiffSquared{}, nil, dense()},
		{"no layers", 2, cost.DiffSquared{}, momentum(), nil},
		{"nil layer", 2, cost.DiffSquared{}, momentum(), []nn.Layer{nil}},
		{"empty layer", 2, cost.DiffSquared{}, momentum(), []nn.Layer{nn.NewDense(nil, 0, true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := network.New(tt.inputs, tt.cost, tt.opt, tt.layers)
			require.Error(t, err)
			assert.True(t, errors.Is(err, nnerr.ErrConfiguration), "got %v", err)
		})
	}

	t.Run("repeated layer", func(t *testing.T) {
		l := nn.NewDense(nil, 1, true)
		_, err := network.New(2, cost.DiffSquared{}, momentum(), []nn.Layer{l, l})
		require.Error(t, err)
		assert.True(t, errors.Is(err, nnerr.ErrConfiguration))
	})
}

func TestCalculate(t *testing.T) {
	out := nn.NewDense(activation.Identity{}, 2, true)
	net, err := network.New(2, cost.DiffSquared{}, momentum(), []nn.Layer{out}, network.WithSeed(3))
	require.NoError(t, err)

	out.SetWeight(0, 0, 1)
	out.SetWeight(0, 1, 2)
	out.SetBias(0, 0.5)
	out.SetWeight(1, 0, -1)
	out.SetWeight(1, 1, 0)
	out.SetBias(1, 0)

	got, err := net.Calculate([]float64{1, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5.5, -1}, got, 1e-12)

	// The result is a copy.
	got[0] = 100
	assert.InDelta(t, 5.5, net.Output().Outputs()[0], 1e-12)

	errs, total, err := net.CalculateError([]float64{1, 2}, []float64{5, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, 2}, errs, 1e-12)
	assert.InDelta(t, 0.25+4, total, 1e-12)
	assert.Equal(t, 0, net.TotalIterationsTrained())

	_, err = net.Calculate([]float64{1})
	assert.True(t, errors.Is(err, nnerr.ErrConfiguration))

	_, _, err = net.CalculateError([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, nnerr.ErrConfiguration))
}

func TestCalculate_Deterministic(t *testing.T) {
	a := gateNet(t, activation.Sine{}, 7)
	b := gateNet(t, activation.Sine{}, 7)

	for _, s := range dataset.XOR.Samples() {
		ga, err := a.Calculate(s.Input)
		require.NoError(t, err)
		gb, err := b.Calculate(s.Input)
		require.NoError(t, err)
		assert.Equal(t, ga, gb)
	}
}

func TestNeuronValue(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 2)
	net.Output().SetNeuronNames(map[string]int{"result": 0})

	got, err := net.Calculate([]float64{1, 0})
	require.NoError(t, err)

	v, ok := net.NeuronValue("result")
	require.True(t, ok)
	assert.Equal(t, got[0], v)

	_, ok = net.NeuronValue("missing")
	assert.False(t, ok)
}

// XOR is the canary: fixed-iteration training must reduce the summed cost
// over the truth table.
func TestTrain_XORReducesCost(t *testing.T) {
	net := gateNet(t, activation.Sigmoid{}, 1)
	samples := dataset.XOR.Samples()

	before, err := net.Cost(samples)
	require.NoError(t, err)

	res, err := net.Train(context.Background(), 20000, samples)
	require.NoError(t, err)
	assert.Equal(t, 20000, res.Iterations)
	assert.False(t, res.Converged)
	assert.Equal(t, 20000, net.TotalIterationsTrained())

	after, err := net.Cost(samples)
	require.NoError(t, err)
	assert.Less(t, after, before)
}

func TestTrainToTarget_OR(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 1)
	samples := dataset.OR.Samples()

	res, err := net.TrainToTarget(context.Background(), network.TargetConfig{
		TargetError:   0.004,
		Policy:        network.Individual,
		MaxIterations: 10_000_000,
	}, samples)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.Equal(t, res.Iterations, net.TotalIterationsTrained())

	for _, s := range samples {
		got, err := net.Calculate(s.Input)
		require.NoError(t, err)
		if s.Output[0] == 1 {
			assert.Greater(t, got[0], 0.5, "input %v", s.Input)
		} else {
			assert.Less(t, got[0], 0.5, "input %v", s.Input)
		}
	}

	assert.InDelta(t, (1-net.CurrentCost())*100, net.ConfidencePercentage(), 1e-12)
}

func TestTrainToTarget_RandomSampling(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 5)

	res, err := net.TrainToTarget(context.Background(), network.TargetConfig{
		TargetError:    0.1,
		Policy:         network.Total,
		RandomSampling: true,
		MaxIterations:  1_000_000,
	}, dataset.OR.Samples())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.Cost, 0.1)
}

func TestTrainToTarget_Policies(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		cost      cost.Function
		outputs   int
		target    float64
		policy    network.Policy
		converged bool
	}{
		{"individual loose", cost.Absolute{}, 1, 0.1, network.Individual, true},
		{"weighted loose", cost.Absolute{}, 1, 0.1, network.IndividualWeighted, true},
		{"total loose", cost.Absolute{}, 1, 0.1, network.Total, true},
		{"individual tight", cost.Absolute{}, 1, 0.01, network.Individual, false},
		{"weighted tight", cost.Absolute{}, 1, 0.01, network.IndividualWeighted, false},
		{"total tight", cost.Absolute{}, 1, 0.01, network.Total, false},

		// Two outputs at 0.05 each: every output passes, the sum does not.
		{"individual two outputs", cost.Absolute{}, 2, 0.1, network.Individual, true},
		{"total two outputs", cost.Absolute{}, 2, 0.1, network.Total, false},

		// Squared error 0.0025 passes where the raw error 0.05 does not.
		{"individual squared", cost.DiffSquared{}, 1, 0.01, network.Individual, false},
		{"weighted squared", cost.DiffSquared{}, 1, 0.01, network.IndividualWeighted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := constantNet(t, tt.cost, tt.outputs)
			res, err := net.TrainToTarget(ctx, network.TargetConfig{
				TargetError:   tt.target,
				Policy:        tt.policy,
				MaxIterations: 1,
			}, constantSamples(tt.outputs))

			if tt.converged {
				require.NoError(t, err)
				assert.True(t, res.Converged)
				assert.Equal(t, 0, res.Iterations)
				assert.Equal(t, 0, net.TotalIterationsTrained())
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, nnerr.ErrNotConverged), "got %v", err)
			assert.False(t, res.Converged)
			assert.Equal(t, 1, res.Iterations)
			assert.Equal(t, 1, net.TotalIterationsTrained())
		})
	}
}

func TestTrain_Errors(t *testing.T) {
	ctx := context.Background()
	samples := dataset.OR.Samples()

	tests := []struct {
		name string
		run  func(net *network.Network) error
	}{
		{"zero iterations", func(net *network.Network) error {
			_, err := net.Train(ctx, 0, samples)
			return err
		}},
		{"no samples", func(net *network.Network) error {
			_, err := net.Train(ctx, 1, nil)
			return err
		}},
		{"short input", func(net *network.Network) error {
			_, err := net.Train(ctx, 1, []network.Sample{{Input: []float64{1}, Output: []float64{1}}})
			return err
		}},
		{"long output", func(net *network.Network) error {
			_, err := net.Train(ctx, 1, []network.Sample{{Input: []float64{1, 0}, Output: []float64{1, 0}}})
			return err
		}},
		{"zero target", func(net *network.Network) error {
			_, err := net.TrainToTarget(ctx, network.TargetConfig{}, samples)
			return err
		}},
		{"negative target", func(net *network.Network) error {
			_, err := net.TrainToTarget(ctx, network.TargetConfig{TargetError: -1}, samples)
			return err
		}},
		{"NaN target", func(net *network.Network) error {
			_, err := net.TrainToTarget(ctx, network.TargetConfig{TargetError: math.NaN()}, samples)
			return err
		}},
		{"unknown policy", func(net *network.Network) error {
			_, err := net.TrainToTarget(ctx, network.TargetConfig{TargetError: 0.1, Policy: network.Policy(9)}, samples)
			return err
		}},
		{"negative max iterations", func(net *network.Network) error {
			_, err := net.TrainToTarget(ctx, network.TargetConfig{TargetError: 0.1, MaxIterations: -1}, samples)
			return err
		}},
		{"empty cost set", func(net *network.Network) error {
			_, err := net.Cost(nil)
			return err
		}},
		{"missing head", func(net *network.Network) error {
			net.SetInput(nil)
			_, err := net.Train(ctx, 1, samples)
			return err
		}},
		{"missing head calculate", func(net *network.Network) error {
			net.SetInput(nil)
			_, err := net.Calculate([]float64{0, 0})
			return err
		}},
		{"single layer", func(net *network.Network) error {
			net.SetInput(nn.NewInput(2))
			_, err := net.Train(ctx, 1, samples)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := gateNet(t, activation.Sine{}, 1)
			err := tt.run(net)
			require.Error(t, err)
			assert.True(t, errors.Is(err, nnerr.ErrConfiguration), "got %v", err)
			assert.Equal(t, 0, net.TotalIterationsTrained())
		})
	}
}

func TestTrain_UnsupportedLayer(t *testing.T) {
	net, err := network.New(4, cost.DiffSquared{}, momentum(), []nn.Layer{
		nn.NewDense(activation.Identity{}, 4, true),
		nn.NewPooling(nn.MaxPool, 4, 2),
	}, network.WithSeed(1))
	require.NoError(t, err)

	got, err := net.Calculate([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = net.Train(context.Background(), 1, []network.Sample{
		{Input: []float64{1, 2, 3, 4}, Output: []float64{0, 1}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, nnerr.ErrUnsupported), "got %v", err)
}

func TestTrain_Canceled(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 1)
	ctx, cancel := context.WithCancel(context.Background())

	// Cancel from inside training after the third backward pass.
	stop := net.OnBackPropagated(func() {
		if net.TotalIterationsTrained() == 3 {
			cancel()
		}
	})
	defer stop()

	res, err := net.Train(ctx, 100, dataset.OR.Samples())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, 3, net.TotalIterationsTrained())

	_, err = net.TrainToTarget(ctx, network.TargetConfig{TargetError: 0.1}, dataset.OR.Samples())
	require.ErrorIs(t, err, context.Canceled)
}

func TestObservers(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 1)

	var events []string
	var costs []float64
	stopCost := net.OnCostChanged(func(oldCost, newCost float64, iteration int) {
		events = append(events, fmt.Sprintf("cost@%d", iteration))
		assert.Equal(t, oldCost, net.PreviousCost())
		assert.Equal(t, newCost, net.CurrentCost())
		costs = append(costs, oldCost, newCost)
	})
	stopForward := net.OnForwardPropagated(func(output []float64) {
		require.Len(t, output, 1)
		assert.Equal(t, net.Output().Outputs()[0], output[0])
		output[0] = -1 // observers own their copy
		events = append(events, "forward")
	})
	stopBack := net.OnBackPropagated(func() {
		events = append(events, fmt.Sprintf("back@%d", net.TotalIterationsTrained()))
	})

	_, err := net.Train(context.Background(), 2, dataset.OR.Samples())
	require.NoError(t, err)

	assert.Equal(t, []string{"cost@0", "forward", "back@1", "cost@1", "forward", "back@2"}, events)
	require.Len(t, costs, 4)
	assert.Equal(t, 0.0, costs[0])
	assert.Equal(t, costs[1], costs[2])

	stopCost()
	stopForward()
	stopBack()
	events = nil
	_, err = net.Train(context.Background(), 2, dataset.OR.Samples())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestObservers_NotCalledByCalculate(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 1)
	calls := 0
	net.OnCostChanged(func(float64, float64, int) { calls++ })
	net.OnForwardPropagated(func([]float64) { calls++ })

	_, err := net.Calculate([]float64{1, 1})
	require.NoError(t, err)
	_, err = net.Cost(dataset.OR.Samples())
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestClone(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 4)
	_, err := net.Train(context.Background(), 10, dataset.OR.Samples())
	require.NoError(t, err)

	c := net.Clone()
	assert.Equal(t, net.LayerCount(), c.LayerCount())
	assert.Equal(t, net.TotalIterationsTrained(), c.TotalIterationsTrained())
	assert.Equal(t, net.CurrentCost(), c.CurrentCost())
	assert.NotSame(t, net.Output(), c.Output())

	for _, s := range dataset.OR.Samples() {
		want, err := net.Calculate(s.Input)
		require.NoError(t, err)
		got, err := c.Calculate(s.Input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	before, err := net.Calculate([]float64{1, 1})
	require.NoError(t, err)
	_, err = c.Train(context.Background(), 100, dataset.AND.Samples())
	require.NoError(t, err)
	after, err := net.Calculate([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 10, net.TotalIterationsTrained())
}

func TestRelink(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 1)
	extra := nn.NewDense(activation.Identity{}, 3, false)
	require.NoError(t, nn.Link(net.Output(), extra))

	net.Relink()
	assert.Equal(t, 4, net.LayerCount())
	assert.Same(t, extra, net.Output())

	got, err := net.Calculate([]float64{0, 1})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestReinitialize(t *testing.T) {
	net := gateNet(t, activation.Sine{}, 1)
	before, err := net.Calculate([]float64{1, 0})
	require.NoError(t, err)

	net.Reinitialize()
	after, err := net.Calculate([]float64{1, 0})
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	net := gateNet(t, activation.Sine{}, 1, network.WithLogger(logger))
	_, err := net.Train(context.Background(), 4, dataset.OR.Samples())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "network built")
	assert.Contains(t, out, "training started")
	assert.Contains(t, out, "training finished")
	assert.Contains(t, out, "iterations=4")
}
