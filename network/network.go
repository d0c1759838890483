// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package network

import (
	"log/slog"
	"math/rand/v2"

	"github.com/born-ml/feedforward/internal/dataset"
	"github.com/born-ml/feedforward/internal/network"
	"github.com/born-ml/feedforward/internal/nnerr"
	"github.com/born-ml/feedforward/nn"
	"github.com/born-ml/feedforward/optim"
)

// Network is a trainable feed-forward network.
type Network = network.Network

// Sample is one training example.
type Sample = network.Sample

// Result summarizes a training call.
type Result = network.Result

// Option configures a Network.
type Option = network.Option

// New builds a network with inputSize inputs followed by layers.
//
// Example:
//
//	net, err := network.New(2,
//	    nn.DiffSquared{},
//	    optim.NewMomentum(optim.MomentumConfig{LR: 0.8, Momentum: 0.2}),
//	    []nn.Layer{
//	        nn.NewDense(nn.Sine{}, 2, true),
//	        nn.NewDense(nn.Logistic{}, 1, true),
//	    },
//	    network.WithSeed(1),
//	)
func New(inputSize int, costFn nn.Cost, opt optim.Optimizer, layers []nn.Layer, opts ...Option) (*Network, error) {
	return network.New(inputSize, costFn, opt, layers, opts...)
}

// WithRand sets the generator for initialization and random sampling.
func WithRand(rng *rand.Rand) Option { return network.WithRand(rng) }

// WithSeed seeds the generator for initialization and random sampling.
func WithSeed(seed uint64) Option { return network.WithSeed(seed) }

// WithLogger sets the logger for construction and training events.
func WithLogger(logger *slog.Logger) Option { return network.WithLogger(logger) }

// Target training

// TargetConfig configures Network.TrainToTarget.
type TargetConfig = network.TargetConfig

// Policy decides when target training stops.
type Policy = network.Policy

// Evaluation holds the per-output errors a Policy inspects.
type Evaluation = network.Evaluation

// Convergence policies.
const (
	Individual         = network.Individual
	IndividualWeighted = network.IndividualWeighted
	Total              = network.Total
)

// ParsePolicy returns the policy with the given name.
func ParsePolicy(s string) (Policy, error) { return network.ParsePolicy(s) }

// Logic gates

// Gate is a two-input boolean function with a four-row truth table.
type Gate = dataset.Gate

// Logic gates.
const (
	OR   = dataset.OR
	AND  = dataset.AND
	XOR  = dataset.XOR
	NOR  = dataset.NOR
	XNOR = dataset.XNOR
	NAND = dataset.NAND
)

// ParseGate returns the gate with the given name.
func ParseGate(s string) (Gate, error) { return dataset.ParseGate(s) }

// Error classes.
var (
	ErrConfiguration = nnerr.ErrConfiguration
	ErrUnsupported   = nnerr.ErrUnsupported
	ErrShapeMismatch = nnerr.ErrShapeMismatch
	ErrNotConverged  = nnerr.ErrNotConverged
)

// LayerError carries the failing operation and layer.
type LayerError = nnerr.LayerError
