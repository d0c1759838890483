package nn

import (
	"iter"

	"github.com/born-ml/feedforward/internal/nnerr"
)

// Link makes b the successor of a.
//
// a's old successor and b's old predecessor are detached first, so both ends
// stay paired:
//
//	a.Next() == b && b.Previous() == a
//
// b then rebuilds its weight storage for a's neuron count. Link(a, nil)
// detaches a's successor and Link(nil, b) detaches b's predecessor.
//
// Example:
//
//	input := nn.NewInput(2)
//	hidden := nn.NewDense(activation.Sine{}, 2, true)
//	output := nn.NewDense(activation.Logistic{}, 1, true)
//
//	_ = nn.Link(input, hidden)
//	_ = nn.Link(hidden, output)
//
// Linking a layer to itself or to one of its predecessors is a configuration
// error and leaves the chain unchanged.
func Link(a, b Layer) error {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b != nil {
		if a == b {
			return nnerr.Configf("link", "%s cannot follow itself", a)
		}
		for l := a.Previous(); l != nil; l = l.Previous() {
			if l == b {
				return nnerr.Configf("link", "%s precedes %s; linking would form a cycle", b, a)
			}
		}
	}

	if a != nil {
		if old := a.core().next; old != nil && old != b {
			old.core().prev = nil
			a.core().next = nil
			old.previousChanged()
		}
	}
	if b != nil {
		if old := b.core().prev; old != nil && old != a {
			old.core().next = nil
			b.core().prev = nil
		}
	}
	if a != nil && b != nil {
		a.core().next = b
		b.core().prev = a
	}
	if b != nil {
		b.previousChanged()
	}
	return nil
}

// Unlink detaches l from both of its neighbors. The neighbors are not joined.
func Unlink(l Layer) {
	if l == nil {
		return
	}
	_ = Link(nil, l)
	_ = Link(l, nil)
}

// Last returns the tail of the chain starting at l.
func Last(l Layer) Layer {
	if l == nil {
		return nil
	}
	for l.Next() != nil {
		l = l.Next()
	}
	return l
}

// Count returns the number of layers from l to the tail, inclusive.
func Count(l Layer) int {
	n := 0
	for ; l != nil; l = l.Next() {
		n++
	}
	return n
}

// All yields the layers from l to the tail in order.
//
//	for layer := range nn.All(head) {
//	    fmt.Println(layer)
//	}
func All(l Layer) iter.Seq[Layer] {
	return func(yield func(Layer) bool) {
		for ; l != nil; l = l.Next() {
			if !yield(l) {
				return
			}
		}
	}
}
