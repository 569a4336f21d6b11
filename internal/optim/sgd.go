package optim

import (
	"errors"
	"fmt"

	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// SGDConfig holds configuration for BuildSGD.
type SGDConfig struct {
	BaseLearningRate float32 // default 0.01
	Policy           string  // schedule policy: fixed, step, exp, inv (default fixed)
	StepSize         int64   // interval for the step policy
	Gamma            float32 // decay factor for step, exp and inv
}

// BuildSGD appends stochastic gradient descent updates to the train net.
//
// Update rule, applied by the emitted operators:
//
//	param = 1 * param + lr * grad
//
// with lr following the configured schedule from a negated base rate, so the
// update walks against the gradient. One WeightedSum per parameter, a shared
// learning-rate schedule and a shared ONE constant. Gradients must already
// exist; parameters without one are left alone, as are sparse parameters
// when the model skips sparse updates.
//
// Returns the learning-rate blob.
func BuildSGD(m *model.Helper, config SGDConfig) (core.BlobRef, error) {
	if !m.GradientsAdded() {
		return "", errors.New("building SGD requires gradients, call AddGradientOperators first")
	}
	if config.BaseLearningRate < 0 {
		return "", fmt.Errorf("base learning rate must be positive, got %v", config.BaseLearningRate)
	}
	if config.BaseLearningRate == 0 {
		config.BaseLearningRate = 0.01
	}
	if config.Policy == "" {
		config.Policy = "fixed"
	}

	lr := buildLR(m, config.BaseLearningRate, config.Policy, config.StepSize, config.Gamma)
	oneBlob := one(m)
	for _, p := range updateParams(m) {
		grad, _ := m.ParamToGrad(p)
		m.Net().AddOp("WeightedSum",
			[]core.BlobRef{p, oneBlob, grad, lr}, []core.BlobRef{p})
	}
	return lr, nil
}
