// Package optim implements the weight-update rules applied during backward
// propagation.
//
// This package provides:
//   - Optimizer interface: pure per-weight update rule
//   - StaticLearningRate: plain gradient descent
//   - Momentum: gradient descent with a momentum term on the last step
//
// An optimizer never reads layer internals. The layer supplies the current
// weight, the weight before its previous update and the gradient, then stores
// the returned value and shifts the old one into its previous-weight slot.
//
// Example usage:
//
//	opt := optim.NewMomentum(optim.MomentumConfig{
//	    LR:       0.8,
//	    Momentum: 0.2,
//	})
//
//	w = opt.UpdateWeight(w, prevW, grad)
package optim

import (
	"math"

	"github.com/born-ml/feedforward/internal/nnerr"
)

// Optimizer is the base interface for all weight-update rules.
//
// Implementations are stateless: one instance is shared by every layer of a
// network and invoked once per weight and once per bias.
type Optimizer interface {
	// UpdateWeight returns the new value of weight.
	//
	// previous is the value weight held before its last update, gradient is
	// d cost / d weight for the current sample.
	UpdateWeight(weight, previous, gradient float64) float64

	// GetLR returns the learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// validateRate rejects learning rates and coefficients that cannot describe
// a descent step.
func validateRate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nnerr.Configf("optimizer", "%s must be a finite non-negative number, got %v", name, v)
	}
	return nil
}
