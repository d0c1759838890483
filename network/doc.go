// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package network trains feed-forward networks one sample at a time.
//
// # Overview
//
// A Network owns a chain of layers behind a synthetic input layer, a cost
// function and an optimizer. Each training iteration runs a forward pass on
// one sample, seeds the output deltas with the cost derivative and
// back-propagates from the tail to the head, updating every weight and bias
// in place.
//
// # Training
//
// Fixed iterations, cycling through the samples in order:
//
//	res, err := net.Train(ctx, 20000, network.XOR.Samples())
//
// Until a target error is met:
//
//	res, err := net.TrainToTarget(ctx, network.TargetConfig{
//	    TargetError: 0.004,
//	    Policy:      network.Individual,
//	}, network.OR.Samples())
//
// The policy is checked against the current sample after every forward pass.
// Individual compares |target - actual| per output, IndividualWeighted the
// per-output cost and Total the summed cost. MaxIterations bounds the run;
// exceeding it returns an error wrapping ErrNotConverged.
//
// # Observers
//
// OnCostChanged, OnForwardPropagated and OnBackPropagated register callbacks
// that run synchronously on the training goroutine, in registration order.
// Each returns a function that unregisters the callback.
//
// # Errors
//
// Every error wraps one of ErrConfiguration, ErrUnsupported,
// ErrShapeMismatch or ErrNotConverged:
//
//	if errors.Is(err, network.ErrConfiguration) {
//	    ...
//	}
package network
