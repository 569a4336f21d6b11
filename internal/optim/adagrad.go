package optim

import (
	"errors"
	"fmt"

	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// AdagradConfig holds configuration for BuildAdagrad.
type AdagradConfig struct {
	Alpha    float32 // base learning rate, default 0.01
	Epsilon  float32 // divisor guard, default 1e-4
	Decay    float32 // moment decay per step, default 1 (no decay)
	Policy   string  // schedule policy, default fixed
	StepSize int64
	Gamma    float32
}

// BuildAdagrad appends adaptive gradient updates to the train net.
//
// Each parameter gets a moment blob accumulating squared gradients:
//
//	moment = decay * moment + grad * grad
//	param  = param + lr * grad / (sqrt(moment) + epsilon)
//
// applied by one Adagrad op per parameter over the shared learning-rate
// schedule. Moments are zero-filled in the init net, shaped from the
// parameter, and registered as computed parameters so they ride along with
// checkpoints without being optimized themselves.
//
// Returns the learning-rate blob.
func BuildAdagrad(m *model.Helper, config AdagradConfig) (core.BlobRef, error) {
	if !m.GradientsAdded() {
		return "", errors.New("building Adagrad requires gradients, call AddGradientOperators first")
	}
	if config.Alpha < 0 {
		return "", fmt.Errorf("base learning rate must be positive, got %v", config.Alpha)
	}
	if config.Alpha == 0 {
		config.Alpha = 0.01
	}
	if config.Epsilon == 0 {
		config.Epsilon = 1e-4
	}
	if config.Decay == 0 {
		config.Decay = 1
	}
	if config.Policy == "" {
		config.Policy = "fixed"
	}

	lr := buildLR(m, config.Alpha, config.Policy, config.StepSize, config.Gamma)
	for _, p := range updateParams(m) {
		grad, _ := m.ParamToGrad(p)
		moment := p + "_moment"
		m.ParamInitNet().AddOp("ConstantFill",
			[]core.BlobRef{p}, []core.BlobRef{moment},
			core.MakeArgument("value", float32(0.0)))
		m.AddParameter(moment, model.TagComputedParam)

		m.Net().AddOp("Adagrad",
			[]core.BlobRef{p, moment, grad, lr}, []core.BlobRef{p, moment},
			core.MakeArgument("epsilon", config.Epsilon),
			core.MakeArgument("decay", config.Decay))
	}
	return lr, nil
}
