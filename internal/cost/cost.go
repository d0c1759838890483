// Package cost implements the per-neuron error functions the network
// minimizes.
//
// Derivative always returns the partial derivative of Evaluate with respect
// to the actual output. The backward pass subtracts the resulting gradient
// from each weight, so training descends the cost surface.
package cost

import (
	"math"
	"strings"

	"github.com/born-ml/feedforward/internal/nnerr"
)

// Function is the interface implemented by all cost functions.
type Function interface {
	// Evaluate returns the cost of one output neuron.
	Evaluate(target, actual float64) float64

	// Derivative returns d Evaluate / d actual.
	Derivative(target, actual float64) float64

	// Name returns the lower-case identifier used by ByName.
	Name() string
}

// DiffSquared is the squared difference (target - actual)².
//
// Example:
//
//	net, err := network.New(2, cost.DiffSquared{}, opt, layers)
type DiffSquared struct{}

// Evaluate returns (target - actual)².
func (DiffSquared) Evaluate(target, actual float64) float64 {
	d := target - actual
	return d * d
}

// Derivative returns 2 * (actual - target).
func (DiffSquared) Derivative(target, actual float64) float64 {
	return 2 * (actual - target)
}

// Name returns "diffsquared".
func (DiffSquared) Name() string { return "diffsquared" }

// Absolute is the absolute difference |target - actual|.
type Absolute struct{}

// Evaluate returns |target - actual|.
func (Absolute) Evaluate(target, actual float64) float64 {
	return math.Abs(target - actual)
}

// Derivative returns sign(actual - target), 0 when they are equal.
func (Absolute) Derivative(target, actual float64) float64 {
	switch {
	case actual > target:
		return 1
	case actual < target:
		return -1
	default:
		return 0
	}
}

// Name returns "absolute".
func (Absolute) Name() string { return "absolute" }

// ByName returns the cost function registered under name.
func ByName(name string) (Function, error) {
	for _, fn := range []Function{DiffSquared{}, Absolute{}} {
		if strings.EqualFold(fn.Name(), name) {
			return fn, nil
		}
	}
	return nil, nnerr.Configf("cost", "unknown cost function %q", name)
}
