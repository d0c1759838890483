// Package activation implements the scalar activation functions used inside
// a layer's forward and backward math.
//
// Every function is stateless and safe to share between layers:
//   - Logistic, Sigmoid: 1 / (1 + exp(-x)), range (0, 1)
//   - Sine: sin(x), range [-1, 1]
//   - TanH: tanh(x), range (-1, 1)
//   - Identity: x
//
// Overflow and NaN propagation are left to the caller.
package activation

import (
	"math"
	"strings"

	"github.com/born-ml/feedforward/internal/nnerr"
)

// Function is the interface implemented by all activation functions.
type Function interface {
	// Value returns the activation of a neuron given its weighted input sum.
	Value(sum float64) float64

	// Derivative returns d Value / d sum evaluated at sum.
	Derivative(sum float64) float64

	// Name returns the lower-case identifier used by ByName.
	Name() string
}

// Logistic is the logistic curve σ(x) = 1 / (1 + exp(-x)).
//
// Example:
//
//	layer := nn.NewDense(activation.Logistic{}, 1, true)
type Logistic struct{}

// Value applies σ(x).
func (Logistic) Value(sum float64) float64 {
	return logistic(sum)
}

// Derivative returns σ(x) * (1 - σ(x)).
func (Logistic) Derivative(sum float64) float64 {
	v := logistic(sum)
	return v * (1 - v)
}

// Name returns "logistic".
func (Logistic) Name() string { return "logistic" }

// Sigmoid is the same curve as Logistic under its other common name.
type Sigmoid struct{}

// Value applies σ(x).
func (Sigmoid) Value(sum float64) float64 {
	return logistic(sum)
}

// Derivative returns σ(x) * (1 - σ(x)).
func (Sigmoid) Derivative(sum float64) float64 {
	v := logistic(sum)
	return v * (1 - v)
}

// Name returns "sigmoid".
func (Sigmoid) Name() string { return "sigmoid" }

// Sine applies sin(x).
type Sine struct{}

// Value applies sin(x).
func (Sine) Value(sum float64) float64 { return math.Sin(sum) }

// Derivative returns cos(x).
func (Sine) Derivative(sum float64) float64 { return math.Cos(sum) }

// Name returns "sine".
func (Sine) Name() string { return "sine" }

// TanH applies the hyperbolic tangent.
type TanH struct{}

// Value applies tanh(x).
func (TanH) Value(sum float64) float64 { return math.Tanh(sum) }

// Derivative returns 1 - tanh²(x).
func (TanH) Derivative(sum float64) float64 {
	y := math.Tanh(sum)
	return 1 - y*y
}

// Name returns "tanh".
func (TanH) Name() string { return "tanh" }

// Identity passes the weighted sum through unchanged.
type Identity struct{}

// Value returns sum.
func (Identity) Value(sum float64) float64 { return sum }

// Derivative returns 1.
func (Identity) Derivative(float64) float64 { return 1 }

// Name returns "identity".
func (Identity) Name() string { return "identity" }

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// All returns one instance of every activation function.
func All() []Function {
	return []Function{Logistic{}, Sigmoid{}, Sine{}, TanH{}, Identity{}}
}

// ByName returns the activation function registered under name.
// Matching is case-insensitive.
func ByName(name string) (Function, error) {
	for _, fn := range All() {
		if strings.EqualFold(fn.Name(), name) {
			return fn, nil
		}
	}
	return nil, nnerr.Configf("activation", "unknown activation function %q", name)
}
