// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the weight-update rules used during training.
//
// # Overview
//
// This package contains:
//   - StaticLearningRate: w - lr*g
//   - Momentum: w - lr*g + momentum*(w - previous)
//   - Optimizer interface for custom update rules
//
// An optimizer sees one scalar at a time: the current weight or bias, its
// value before the previous update and its gradient. It returns the new
// value. Optimizers hold no per-weight state, so one instance serves every
// layer of a network.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/feedforward/network"
//	    "github.com/born-ml/feedforward/nn"
//	    "github.com/born-ml/feedforward/optim"
//	)
//
//	func main() {
//	    opt := optim.NewMomentum(optim.MomentumConfig{LR: 0.8, Momentum: 0.2})
//	    net, err := network.New(2, nn.DiffSquared{}, opt, []nn.Layer{
//	        nn.NewDense(nn.Sine{}, 2, true),
//	        nn.NewDense(nn.Logistic{}, 1, true),
//	    })
//	    ...
//	}
//
// # Custom optimizers
//
// Implement UpdateWeight and GetLR:
//
//	type clipped struct{ lr, limit float64 }
//
//	func (c clipped) UpdateWeight(w, _, g float64) float64 {
//	    return w - c.lr*max(-c.limit, min(c.limit, g))
//	}
//
//	func (c clipped) GetLR() float64 { return c.lr }
package optim
