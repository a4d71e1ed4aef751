package classifier

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/rangoli/internal/tracker"
)

// writeTestModel writes a minimal TF.js layers-model export into dir: a
// single 63x4 softmax Dense layer with zero kernel and the given biases.
// With a zero kernel, the output distribution is softmax(bias) for any
// input, which makes expectations exact.
func writeTestModel(t *testing.T, dir string, bias [4]float32) {
	t.Helper()

	modelJSON := `{
		"modelTopology": {
			"class_name": "Sequential",
			"config": {
				"layers": [
					{"class_name": "InputLayer", "config": {}},
					{"class_name": "Dense", "config": {"activation": "softmax", "units": 4}}
				]
			}
		},
		"weightsManifest": [{
			"paths": ["group0-shard1of1.bin", "group1-shard1of1.bin"],
			"weights": [
				{"name": "dense/kernel", "shape": [63, 4], "dtype": "float32"},
				{"name": "dense/bias", "shape": [4], "dtype": "float32"}
			]
		}]
	}`
	if err := os.WriteFile(filepath.Join(dir, "model.json"), []byte(modelJSON), 0644); err != nil {
		t.Fatalf("write model.json: %v", err)
	}

	labelMapping := `{"0": "idle", "1": "open_palm", "2": "pinch", "3": "pointing"}`
	if err := os.WriteFile(filepath.Join(dir, "label_mapping.json"), []byte(labelMapping), 0644); err != nil {
		t.Fatalf("write label_mapping.json: %v", err)
	}

	kernel := make([]byte, 4*63*4)
	if err := os.WriteFile(filepath.Join(dir, "group0-shard1of1.bin"), kernel, 0644); err != nil {
		t.Fatalf("write kernel shard: %v", err)
	}

	biasBytes := make([]byte, 4*4)
	for i, b := range bias {
		binary.LittleEndian.PutUint32(biasBytes[4*i:], math.Float32bits(b))
	}
	if err := os.WriteFile(filepath.Join(dir, "group1-shard1of1.bin"), biasBytes, 0644); err != nil {
		t.Fatalf("write bias shard: %v", err)
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir, [4]float32{0, 0, 4, 0})

	model, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	labels := model.Labels()
	want := []Label{LabelIdle, LabelOpenPalm, LabelPinch, LabelPointing}
	if len(labels) != len(want) {
		t.Fatalf("Labels() length = %d, want %d", len(labels), len(want))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestLoadModel_MissingDir(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("LoadModel() on a missing directory: want error, got nil")
	}
}

func TestModel_Predict(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir, [4]float32{0, 0, 4, 0})

	model, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	probs, err := model.Predict(make([]float64, FeatureLength))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %f, want 1.0", sum)
	}

	// softmax([0,0,4,0]): class 2 gets e^4/(e^4+3) ~ 0.948.
	if probs[2] < 0.9 {
		t.Errorf("probs[2] = %f, want > 0.9", probs[2])
	}
}

func TestModel_Predict_WrongFeatureLength(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir, [4]float32{0, 0, 0, 0})

	model, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	if _, err := model.Predict(make([]float64, 10)); err == nil {
		t.Error("Predict() with 10 features: want error, got nil")
	}
}

func TestLearned_ConfidentPrediction(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir, [4]float32{0, 0, 4, 0})

	model, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	learned := NewLearned(model, DefaultConfidenceThreshold)
	pose := tracker.FistPose()

	result, err := learned.Classify(&pose)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Label != LabelPinch {
		t.Errorf("Classify() label = %q, want %q", result.Label, LabelPinch)
	}
	if result.Confidence < 0.9 {
		t.Errorf("Classify() confidence = %f, want > 0.9", result.Confidence)
	}
}

func TestLearned_LowConfidenceYieldsIdle(t *testing.T) {
	dir := t.TempDir()

	// Arg-max is open_palm but its probability (~0.35) is below the 0.6
	// threshold, so the result must be idle regardless.
	writeTestModel(t, dir, [4]float32{0, 0.5, 0, 0})

	model, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	learned := NewLearned(model, DefaultConfidenceThreshold)
	pose := tracker.OpenPalmPose()

	result, err := learned.Classify(&pose)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Label != LabelIdle {
		t.Errorf("Classify() label = %q, want %q below the threshold", result.Label, LabelIdle)
	}
	if result.Confidence >= DefaultConfidenceThreshold {
		t.Errorf("Classify() confidence = %f, want < %f", result.Confidence, DefaultConfidenceThreshold)
	}
}

type failingClassifier struct{}

func (failingClassifier) Classify(*tracker.HandPose) (Result, error) {
	return Result{}, errors.New("inference exploded")
}

func TestFallback_UsesRulesOnError(t *testing.T) {
	fallback := NewFallback(failingClassifier{}, NewRuleBased(DefaultRuleConfig()))
	pose := tracker.PointingPose()

	result, err := fallback.Classify(&pose)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Label != LabelPointing {
		t.Errorf("Classify() label = %q, want %q from the rule path", result.Label, LabelPointing)
	}
}

func TestFallback_NilLearnedGoesStraightToRules(t *testing.T) {
	fallback := NewFallback(nil, NewRuleBased(DefaultRuleConfig()))
	pose := tracker.PinchPose()

	result, err := fallback.Classify(&pose)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Label != LabelPinch {
		t.Errorf("Classify() label = %q, want %q", result.Label, LabelPinch)
	}
}

func TestFallback_PrefersLearned(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir, [4]float32{0, 4, 0, 0})

	model, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	fallback := NewFallback(NewLearned(model, DefaultConfidenceThreshold), NewRuleBased(DefaultRuleConfig()))

	// The rules would call this pose pointing; the model says open_palm.
	pose := tracker.PointingPose()
	result, err := fallback.Classify(&pose)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Label != LabelOpenPalm {
		t.Errorf("Classify() label = %q, want %q from the learned path", result.Label, LabelOpenPalm)
	}
}
