// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/feedforward/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// Static learning rate

// StaticLearningRate applies plain gradient descent.
type StaticLearningRate = optim.StaticLearningRate

// StaticConfig contains configuration for StaticLearningRate.
type StaticConfig = optim.StaticConfig

// NewStaticLearningRate creates a gradient-descent optimizer.
//
// Example:
//
//	opt := optim.NewStaticLearningRate(optim.StaticConfig{LR: 0.5})
func NewStaticLearningRate(config StaticConfig) *StaticLearningRate {
	return optim.NewStaticLearningRate(config)
}

// Momentum

// Momentum adds a fraction of the previous step to every update.
type Momentum = optim.Momentum

// MomentumConfig contains configuration for Momentum.
type MomentumConfig = optim.MomentumConfig

// NewMomentum creates a momentum optimizer.
//
// Example:
//
//	opt := optim.NewMomentum(optim.MomentumConfig{
//	    LR:       0.8,
//	    Momentum: 0.2,
//	})
func NewMomentum(config MomentumConfig) *Momentum {
	return optim.NewMomentum(config)
}
