// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides feed-forward layers and the functions they are built
// from.
//
// # Overview
//
// This package contains:
//   - Layers: Dense, Scale, Pooling
//   - Activations: Logistic, Sigmoid, Sine, TanH, Identity
//   - Cost functions: DiffSquared, Absolute
//   - Chain utilities: Link, Unlink, Last, Count, All
//
// # Basic Usage
//
//	import "github.com/born-ml/feedforward/nn"
//
//	func main() {
//	    input := nn.NewInput(2)
//	    hidden := nn.NewDense(nn.Sine{}, 2, true)
//	    output := nn.NewDense(nn.Logistic{}, 1, true)
//
//	    _ = nn.Link(input, hidden)
//	    _ = nn.Link(hidden, output)
//	    nn.InitializeAll(input, nn.NewRand(1))
//
//	    _ = input.SetOutputs([]float64{1, 0})
//	    tail, _ := input.Forward()
//	    fmt.Println(tail.Outputs())
//	}
//
// # Layers
//
// Dense: fully connected, one weight per (neuron, input) plus an optional bias
//
//	layer := nn.NewDense(nn.TanH{}, 8, true)
//
// Scale: multiplies each input by a constant, no trainable state
//
//	scale := nn.NewScale(8, 0.5)
//
// Pooling: max or average over fixed windows, forward only
//
//	pool := nn.NewPooling(nn.AveragePool, 8, 4)
//
// # Chains
//
// Layers form a doubly linked chain. Link is the only way to connect two
// layers; it keeps both ends consistent and reshapes the successor's weights.
// Resize keeps the weights of connections that survive and cascades to the
// successor.
//
// Most programs build chains through network.New rather than by hand.
package nn
