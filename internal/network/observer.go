package network

// CostChangedFunc observes a new sample cost. iteration is the network's
// total iteration count at the time of the forward pass.
type CostChangedFunc func(oldCost, newCost float64, iteration int)

// ForwardPropagatedFunc observes the output vector after a training forward
// pass. The slice is a copy owned by the observer.
type ForwardPropagatedFunc func(output []float64)

// BackPropagatedFunc observes the end of a training backward pass.
type BackPropagatedFunc func()

// observers is an ordered listener registry.
//
// Listeners run synchronously on the training goroutine in registration
// order. They must not block for long and must not change the network's
// structure; removing a listener from inside a callback takes effect from the
// next notification.
type observers[F any] struct {
	nextID int
	list   []listener[F]
}

type listener[F any] struct {
	id int
	fn F
}

func (o *observers[F]) add(fn F) (cancel func()) {
	id := o.nextID
	o.nextID++
	o.list = append(o.list, listener[F]{id: id, fn: fn})
	return func() { o.remove(id) }
}

func (o *observers[F]) remove(id int) {
	kept := make([]listener[F], 0, len(o.list))
	for _, l := range o.list {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	o.list = kept
}

func (o *observers[F]) len() int { return len(o.list) }

func (o *observers[F]) each(call func(F)) {
	for _, l := range o.list {
		call(l.fn)
	}
}

// OnCostChanged registers fn to run every time a training forward pass
// produces a new cost. The returned function unregisters it.
func (n *Network) OnCostChanged(fn CostChangedFunc) (cancel func()) {
	return n.costChanged.add(fn)
}

// OnForwardPropagated registers fn to run after every training forward pass.
func (n *Network) OnForwardPropagated(fn ForwardPropagatedFunc) (cancel func()) {
	return n.forwardPropagated.add(fn)
}

// OnBackPropagated registers fn to run after every training backward pass.
func (n *Network) OnBackPropagated(fn BackPropagatedFunc) (cancel func()) {
	return n.backPropagated.add(fn)
}
