// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"iter"
	"math/rand/v2"

	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/cost"
	"github.com/born-ml/feedforward/internal/nn"
)

// Layer is one stage of a feed-forward chain.
type Layer = nn.Layer

// Layers

// Dense represents a fully connected layer.
type Dense = nn.Dense

// NewDense creates a fully connected layer of n neurons.
//
// Example:
//
//	hidden := nn.NewDense(nn.Sine{}, 2, true)
func NewDense(act Activation, n int, useBias bool) *Dense {
	return nn.NewDense(act, n, useBias)
}

// NewInput creates a bias-free identity layer used as a chain head.
func NewInput(n int) *Dense {
	return nn.NewInput(n)
}

// Scale multiplies every input by a constant factor.
type Scale = nn.Scale

// NewScale creates a scaling layer of n neurons.
//
// Example:
//
//	half := nn.NewScale(4, 0.5)
func NewScale(n int, factor float64) *Scale {
	return nn.NewScale(n, factor)
}

// Pooling reduces fixed windows of its inputs. It can be evaluated but not
// trained.
type Pooling = nn.Pooling

// PoolKind selects the pooling reduction.
type PoolKind = nn.PoolKind

// Pooling reductions.
const (
	MaxPool     = nn.MaxPool
	AveragePool = nn.AveragePool
)

// NewPooling creates a pooling layer.
//
// Example:
//
//	pool := nn.NewPooling(nn.MaxPool, 8, 2)
func NewPooling(kind PoolKind, inputs, window int) *Pooling {
	return nn.NewPooling(kind, inputs, window)
}

// Chain utilities

// Link makes b the successor of a.
func Link(a, b Layer) error { return nn.Link(a, b) }

// Unlink detaches l from both neighbors.
func Unlink(l Layer) { nn.Unlink(l) }

// Last returns the tail of the chain starting at l.
func Last(l Layer) Layer { return nn.Last(l) }

// Count returns the number of layers from l to the tail.
func Count(l Layer) int { return nn.Count(l) }

// All yields the layers from l to the tail.
func All(l Layer) iter.Seq[Layer] { return nn.All(l) }

// InitializeAll initializes every layer from l to the tail.
func InitializeAll(l Layer, rng *rand.Rand) { nn.InitializeAll(l, rng) }

// NewRand returns a seeded generator for reproducible initialization.
func NewRand(seed uint64) *rand.Rand { return nn.NewRand(seed) }

// Activations

// Activation maps a neuron's weighted sum to its output.
type Activation = activation.Function

// Activation functions.
type (
	Logistic = activation.Logistic
	Sigmoid  = activation.Sigmoid
	Sine     = activation.Sine
	TanH     = activation.TanH
	Identity = activation.Identity
)

// ActivationByName returns the activation registered under name.
func ActivationByName(name string) (Activation, error) {
	return activation.ByName(name)
}

// Cost functions

// Cost measures how far an output is from its target.
type Cost = cost.Function

// Cost functions.
type (
	DiffSquared = cost.DiffSquared
	Absolute    = cost.Absolute
)

// CostByName returns the cost function registered under name.
func CostByName(name string) (Cost, error) {
	return cost.ByName(name)
}
