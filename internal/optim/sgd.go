package optim

// StaticLearningRate implements gradient descent with a fixed learning rate.
//
// Update rule:
//
//	weight = weight - lr * gradient
//
// Example:
//
//	opt := optim.NewStaticLearningRate(optim.StaticConfig{LR: 0.5})
type StaticLearningRate struct {
	lr float64
}

// StaticConfig holds configuration for StaticLearningRate.
type StaticConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewStaticLearningRate creates a new fixed learning rate optimizer.
func NewStaticLearningRate(config StaticConfig) *StaticLearningRate {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &StaticLearningRate{lr: config.LR}
}

// UpdateWeight returns weight - lr * gradient.
func (s *StaticLearningRate) UpdateWeight(weight, _, gradient float64) float64 {
	return weight - s.lr*gradient
}

// GetLR returns the learning rate.
func (s *StaticLearningRate) GetLR() float64 {
	return s.lr
}

// Validate reports whether the configuration describes a descent step.
func (s *StaticLearningRate) Validate() error {
	return validateRate("learning rate", s.lr)
}

// Momentum implements gradient descent with a momentum term.
//
// Update rule:
//
//	weight = weight - lr * gradient + momentum * (weight - previous)
//
// where previous is the value the weight held before its last update.
// Momentum helps accelerate descent along consistent directions and dampens
// oscillations.
//
// Example:
//
//	opt := optim.NewMomentum(optim.MomentumConfig{
//	    LR:       0.8,
//	    Momentum: 0.2,
//	})
type Momentum struct {
	lr       float64
	momentum float64
}

// MomentumConfig holds configuration for Momentum.
type MomentumConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewMomentum creates a new momentum optimizer.
func NewMomentum(config MomentumConfig) *Momentum {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &Momentum{
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// UpdateWeight returns weight - lr * gradient + momentum * (weight - previous).
func (m *Momentum) UpdateWeight(weight, previous, gradient float64) float64 {
	return weight - m.lr*gradient + m.momentum*(weight-previous)
}

// GetLR returns the learning rate.
func (m *Momentum) GetLR() float64 {
	return m.lr
}

// GetMomentum returns the momentum coefficient.
func (m *Momentum) GetMomentum() float64 {
	return m.momentum
}

// Validate reports whether the configuration describes a descent step.
func (m *Momentum) Validate() error {
	if err := validateRate("learning rate", m.lr); err != nil {
		return err
	}
	return validateRate("momentum", m.momentum)
}
