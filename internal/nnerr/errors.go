// Package nnerr defines the error taxonomy shared by the layer chain and the
// network.
//
// Every error returned by the engine wraps exactly one of the sentinels below,
// so callers classify failures with errors.Is:
//
//	if errors.Is(err, nnerr.ErrConfiguration) {
//	    // fix the topology or the hyperparameters
//	}
package nnerr

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	// ErrConfiguration reports malformed topology, mismatched vector lengths
	// or invalid hyperparameters.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupported reports an operation a layer variant does not implement.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrShapeMismatch reports adjacent layers whose neuron counts disagree
	// where the layer requires them to match.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNotConverged reports target-error training that exhausted its
	// iteration bound.
	ErrNotConverged = errors.New("training did not converge")
)

// LayerError provides the operation and layer involved in a failure.
type LayerError struct {
	Op      string // Operation that failed (e.g., "forward", "train")
	Layer   string // Layer description, empty for network-level failures
	Details string // Additional details
	Err     error  // One of the sentinels above
}

// Error implements the error interface.
func (e *LayerError) Error() string {
	if e.Layer != "" {
		return fmt.Sprintf("%s: %s: %v: %s", e.Op, e.Layer, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Details)
}

// Unwrap returns the error class.
func (e *LayerError) Unwrap() error {
	return e.Err
}

// Configf returns a configuration error for op.
func Configf(op, format string, args ...any) error {
	return &LayerError{Op: op, Err: ErrConfiguration, Details: fmt.Sprintf(format, args...)}
}

// Unsupportedf returns an unsupported-operation error for op on layer.
func Unsupportedf(op, layer, format string, args ...any) error {
	return &LayerError{Op: op, Layer: layer, Err: ErrUnsupported, Details: fmt.Sprintf(format, args...)}
}

// ShapeMismatchf returns a shape error for op on layer.
func ShapeMismatchf(op, layer, format string, args ...any) error {
	return &LayerError{Op: op, Layer: layer, Err: ErrShapeMismatch, Details: fmt.Sprintf(format, args...)}
}

// NotConvergedf returns a convergence failure for op.
func NotConvergedf(op, format string, args ...any) error {
	return &LayerError{Op: op, Err: ErrNotConverged, Details: fmt.Sprintf(format, args...)}
}
