package network

import (
	"context"
	"math"
	"slices"

	"github.com/born-ml/feedforward/internal/nnerr"
)

// Result summarizes one training call.
type Result struct {
	Iterations int     // backward passes performed by this call
	Converged  bool    // target-error training met its policy
	Cost       float64 // total cost of the last evaluated sample
}

// TargetConfig configures TrainToTarget.
type TargetConfig struct {
	TargetError    float64 // must be positive
	Policy         Policy
	RandomSampling bool // pick samples uniformly at random instead of cycling
	MaxIterations  int  // 0 means unbounded
}

// Train runs exactly iterations forward/backward passes, cycling through
// samples in order. It stops early only when ctx is done.
func (n *Network) Train(ctx context.Context, iterations int, samples []Sample) (Result, error) {
	if iterations <= 0 {
		return Result{}, nnerr.Configf("train", "iterations must be positive, got %d", iterations)
	}
	if err := n.validateTraining("train", samples); err != nil {
		return Result{}, err
	}

	n.logger.Debug("training started", "iterations", iterations, "samples", len(samples))

	var res Result
	eval := n.newEvaluation()
	for i := range iterations {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := n.forward(samples[i%len(samples)], &eval); err != nil {
			return res, err
		}
		res.Cost = eval.Total
		if err := n.backward(); err != nil {
			return res, err
		}
		res.Iterations++
	}

	n.logger.Debug("training finished", "iterations", res.Iterations, "cost", res.Cost)
	return res, nil
}

// TrainToTarget trains until the current sample satisfies cfg.Policy.
//
// The policy is checked after each forward pass and before its backward
// pass, so the converging sample is not trained on. With MaxIterations set,
// an unconverged run returns an error wrapping nnerr.ErrNotConverged.
func (n *Network) TrainToTarget(ctx context.Context, cfg TargetConfig, samples []Sample) (Result, error) {
	if !(cfg.TargetError > 0) || math.IsInf(cfg.TargetError, 1) {
		return Result{}, nnerr.Configf("train to target", "target error must be positive and finite, got %v", cfg.TargetError)
	}
	if !cfg.Policy.valid() {
		return Result{}, nnerr.Configf("train to target", "unknown convergence policy %v", cfg.Policy)
	}
	if cfg.MaxIterations < 0 {
		return Result{}, nnerr.Configf("train to target", "max iterations must not be negative, got %d", cfg.MaxIterations)
	}
	if err := n.validateTraining("train to target", samples); err != nil {
		return Result{}, err
	}

	n.logger.Debug("target training started",
		"target", cfg.TargetError,
		"policy", cfg.Policy.String(),
		"random", cfg.RandomSampling,
		"samples", len(samples))

	var res Result
	eval := n.newEvaluation()
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if cfg.MaxIterations > 0 && i >= cfg.MaxIterations {
			n.logger.Debug("target training gave up", "iterations", res.Iterations, "cost", res.Cost)
			return res, nnerr.NotConvergedf("train to target",
				"cost %v after %d iterations, target %v", res.Cost, res.Iterations, cfg.TargetError)
		}

		idx := i % len(samples)
		if cfg.RandomSampling {
			idx = n.rng.IntN(len(samples))
		}
		if err := n.forward(samples[idx], &eval); err != nil {
			return res, err
		}
		res.Cost = eval.Total

		if cfg.Policy.Satisfied(cfg.TargetError, eval) {
			res.Converged = true
			n.logger.Debug("target training converged", "iterations", res.Iterations, "cost", res.Cost)
			return res, nil
		}

		if err := n.backward(); err != nil {
			return res, err
		}
		res.Iterations++
	}
}

func (n *Network) validateTraining(op string, samples []Sample) error {
	if n.input == nil {
		return nnerr.Configf(op, "network has no input layer")
	}
	n.Relink()
	if n.layerCount < 2 {
		return nnerr.Configf(op, "network has %d layer, needs at least 2", n.layerCount)
	}
	if len(samples) == 0 {
		return nnerr.Configf(op, "no samples")
	}
	in, out := n.input.Size(), n.output.Size()
	for i, s := range samples {
		if len(s.Input) != in {
			return nnerr.Configf(op, "sample %d has %d inputs, want %d", i, len(s.Input), in)
		}
		if len(s.Output) != out {
			return nnerr.Configf(op, "sample %d has %d outputs, want %d", i, len(s.Output), out)
		}
	}
	return nil
}

func (n *Network) newEvaluation() Evaluation {
	size := n.output.Size()
	return Evaluation{
		AbsErrors: make([]float64, size),
		Costs:     make([]float64, size),
	}
}

// forward evaluates s, seeds the output deltas with the cost derivative and
// records the new cost.
func (n *Network) forward(s Sample, eval *Evaluation) error {
	if err := n.input.SetOutputs(s.Input); err != nil {
		return err
	}
	out, err := n.input.Forward()
	if err != nil {
		return err
	}

	actual := out.Outputs()
	eval.Total = 0
	for i, a := range actual {
		t := s.Output[i]
		c := n.costFn.Evaluate(t, a)
		eval.AbsErrors[i] = math.Abs(t - a)
		eval.Costs[i] = c
		eval.Total += c
		out.SetDelta(i, n.costFn.Derivative(t, a))
	}

	old := n.currentCost
	n.previousCost = old
	n.currentCost = eval.Total
	n.costChanged.each(func(fn CostChangedFunc) { fn(old, eval.Total, n.totalIterations) })
	if n.forwardPropagated.len() > 0 {
		n.forwardPropagated.each(func(fn ForwardPropagatedFunc) { fn(slices.Clone(actual)) })
	}
	return nil
}

func (n *Network) backward() error {
	if err := n.output.Backward(n.opt); err != nil {
		return err
	}
	n.totalIterations++
	n.backPropagated.each(func(fn BackPropagatedFunc) { fn() })
	return nil
}
