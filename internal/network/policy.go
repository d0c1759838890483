package network

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/feedforward/internal/nnerr"
)

// Policy decides when target-error training stops.
type Policy int

// Convergence policies.
const (
	// Individual requires |target - actual| <= target error for every
	// output neuron of the current sample.
	Individual Policy = iota

	// IndividualWeighted requires the cost of every output neuron of the
	// current sample to be <= target error.
	IndividualWeighted

	// Total requires the summed cost of the current sample to be below the
	// target error.
	Total
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Individual:
		return "individual"
	case IndividualWeighted:
		return "individual-weighted"
	case Total:
		return "total"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy returns the policy named s, as printed by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{Individual, IndividualWeighted, Total} {
		if strings.EqualFold(p.String(), s) {
			return p, nil
		}
	}
	return 0, nnerr.Configf("policy", "unknown convergence policy %q", s)
}

func (p Policy) valid() bool {
	return p >= Individual && p <= Total
}

// Evaluation holds the errors of one forward pass against one sample.
type Evaluation struct {
	AbsErrors []float64 // |target - actual| per output neuron
	Costs     []float64 // cost function value per output neuron
	Total     float64   // sum of Costs
}

// Satisfied reports whether e meets targetError under the policy.
func (p Policy) Satisfied(targetError float64, e Evaluation) bool {
	switch p {
	case Individual:
		return allAtMost(e.AbsErrors, targetError)
	case IndividualWeighted:
		return allAtMost(e.Costs, targetError)
	case Total:
		return math.Abs(e.Total) < targetError
	default:
		return false
	}
}

func allAtMost(values []float64, limit float64) bool {
	for _, v := range values {
		if !(v <= limit) {
			return false
		}
	}
	return true
}
