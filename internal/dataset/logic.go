// Package dataset provides the two-input logic-gate truth tables used to
// exercise and demonstrate the network.
package dataset

import (
	"fmt"
	"strings"

	"github.com/born-ml/feedforward/internal/network"
	"github.com/born-ml/feedforward/internal/nnerr"
)

// Gate is a two-input boolean function.
type Gate int

// Supported gates.
const (
	OR Gate = iota
	AND
	XOR
	NOR
	XNOR
	NAND
)

// Gates returns every supported gate.
func Gates() []Gate {
	return []Gate{OR, AND, XOR, NOR, XNOR, NAND}
}

var gateNames = [...]string{"OR", "AND", "XOR", "NOR", "XNOR", "NAND"}

// String returns the upper-case gate name.
func (g Gate) String() string {
	if g < 0 || int(g) >= len(gateNames) {
		return fmt.Sprintf("Gate(%d)", int(g))
	}
	return gateNames[g]
}

// ParseGate returns the gate named s, case-insensitively.
func ParseGate(s string) (Gate, error) {
	for _, g := range Gates() {
		if strings.EqualFold(g.String(), s) {
			return g, nil
		}
	}
	return 0, nnerr.Configf("parse gate", "unknown gate %q", s)
}

// Eval applies the gate to a and b.
func (g Gate) Eval(a, b bool) bool {
	switch g {
	case OR:
		return a || b
	case AND:
		return a && b
	case XOR:
		return a != b
	case NOR:
		return !(a || b)
	case XNOR:
		return a == b
	case NAND:
		return !(a && b)
	default:
		return false
	}
}

// Samples returns the four rows of the gate's truth table in the order
// (0,0), (0,1), (1,0), (1,1), encoded as 0 and 1.
func (g Gate) Samples() []network.Sample {
	samples := make([]network.Sample, 0, 4)
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			samples = append(samples, network.Sample{
				Input:  []float64{bit(a), bit(b)},
				Output: []float64{bit(g.Eval(a, b))},
			})
		}
	}
	return samples
}

func bit(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
