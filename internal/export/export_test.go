package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/barista/internal/brew"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
	"github.com/born-ml/barista/internal/optim"
)

// trainedModel builds a classifier with loss, metrics, gradients, weight
// decay and SGD updates, the full surface extraction has to strip.
func trainedModel(t *testing.T) *model.Helper {
	t.Helper()
	m := model.New("clf")
	brew.FC(m, "data", "fc1", 8, 4)
	brew.Relu(m, "fc1", "fc1")
	brew.Softmax(m, "fc1", "pred")
	m.Net().AddOp("LabelCrossEntropy", []core.BlobRef{"pred", "label"}, []core.BlobRef{"xent"})
	m.Net().AddOp("AveragedLoss", []core.BlobRef{"xent"}, []core.BlobRef{"loss"})
	brew.Accuracy(m, "pred", "label", "accuracy")
	_, err := m.AddGradientOperators("loss")
	require.NoError(t, err)
	require.NoError(t, brew.AddWeightDecay(m, 1e-4))
	_, err = optim.BuildSGD(m, optim.SGDConfig{})
	require.NoError(t, err)
	return m
}

// TestExtractPredictorNets verifies the stripped pair of a trained model.
func TestExtractPredictorNets(t *testing.T) {
	m := trainedModel(t)
	initNet, predictNet, err := ExtractPredictorNets(m, []core.BlobRef{"data"}, []core.BlobRef{"pred"})
	require.NoError(t, err)

	var types []string
	for _, op := range predictNet.Proto().Op {
		types = append(types, op.Type)
	}
	assert.Equal(t, []string{"FC", "Relu", "Softmax"}, types)
	assert.Equal(t, []string{"data", "fc1_w", "fc1_b"}, predictNet.Proto().ExternalInput)
	assert.Equal(t, []string{"pred"}, predictNet.Proto().ExternalOutput)
	assert.Equal(t, "clf_predict", predictNet.Name())

	fills := initNet.Proto().Op
	require.Len(t, fills, 2)
	assert.Equal(t, []string{"fc1_w"}, fills[0].Output)
	assert.Equal(t, []string{"fc1_b"}, fills[1].Output)
	assert.Equal(t, "clf_predict_init", initNet.Name())
}

// TestExtractPredictorNets_ComputedParams verifies running statistics ride
// along when a normalization layer consumes them.
func TestExtractPredictorNets_ComputedParams(t *testing.T) {
	m := model.New("m")
	brew.SpatialBN(m, "data", "bn", 8, brew.WithIsTest(true))
	brew.FC(m, "bn", "out", 8, 2)

	initNet, predictNet, err := ExtractPredictorNets(m, []core.BlobRef{"data"}, []core.BlobRef{"out"})
	require.NoError(t, err)

	assert.Contains(t, predictNet.Proto().ExternalInput, "bn_rm")
	assert.Contains(t, predictNet.Proto().ExternalInput, "bn_riv")
	var fillOuts []string
	for _, op := range initNet.Proto().Op {
		fillOuts = append(fillOuts, op.Output[0])
	}
	assert.ElementsMatch(t, []string{"bn_s", "bn_b", "bn_rm", "bn_riv", "out_w", "out_b"}, fillOuts)
}

// TestExtractPredictorNets_TrainMode verifies train-mode operators are
// rejected.
func TestExtractPredictorNets_TrainMode(t *testing.T) {
	m := model.New("m")
	brew.FC(m, "data", "fc1", 8, 4)
	brew.Dropout(m, "fc1", "drop", brew.WithIsTest(false))

	_, _, err := ExtractPredictorNets(m, []core.BlobRef{"data"}, []core.BlobRef{"drop"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is_test=0")
}

// TestExtractPredictorNets_MissingInput verifies unreachable source blobs
// are reported.
func TestExtractPredictorNets_MissingInput(t *testing.T) {
	m := trainedModel(t)
	_, _, err := ExtractPredictorNets(m, nil, []core.BlobRef{"pred"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data")
}

// TestExtractPredictorNets_NoProducer verifies unknown outputs are reported.
func TestExtractPredictorNets_NoProducer(t *testing.T) {
	m := trainedModel(t)
	_, _, err := ExtractPredictorNets(m, []core.BlobRef{"data"}, []core.BlobRef{"bogus"})
	require.Error(t, err)

	_, _, err = ExtractPredictorNets(m, []core.BlobRef{"data"}, nil)
	require.Error(t, err)
}

// TestSaveLoadPredictor verifies the round trip and the optional text
// renderings.
func TestSaveLoadPredictor(t *testing.T) {
	m := trainedModel(t)
	initNet, predictNet, err := ExtractPredictorNets(m, []core.BlobRef{"data"}, []core.BlobRef{"pred"})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "predictor")
	require.NoError(t, SavePredictor(dir, initNet, predictNet, Options{Text: true}))

	for _, name := range []string{InitNetFile, PredictNetFile, "clf_predict_init.pbtxt", "clf_predict.pbtxt"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	gotInit, gotPredict, err := LoadPredictor(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(initNet.Proto(), gotInit.Proto()); diff != "" {
		t.Errorf("init net mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(predictNet.Proto(), gotPredict.Proto()); diff != "" {
		t.Errorf("predict net mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadPredictor_Missing verifies the error path.
func TestLoadPredictor_Missing(t *testing.T) {
	_, _, err := LoadPredictor(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), InitNetFile)
}
