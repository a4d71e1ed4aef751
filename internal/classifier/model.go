package classifier

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Model is a trained gesture classifier loaded from a TensorFlow.js
// Layers-format export: model.json plus binary float32 weight shards.
// Only the architecture the training script produces is supported:
// a stack of Dense layers (Dropout is inference-time identity).
type Model struct {
	layers []denseLayer
	labels []Label
}

type denseLayer struct {
	weights    *mat.Dense // inputDim x outputDim, row-major kernel
	bias       []float64
	activation string // "relu", "softmax" or "linear"
}

// modelJSON mirrors the parts of model.json the loader needs.
type modelJSON struct {
	ModelTopology struct {
		Config struct {
			Layers []struct {
				ClassName string `json:"class_name"`
				Config    struct {
					Activation string `json:"activation"`
				} `json:"config"`
			} `json:"layers"`
		} `json:"config"`
	} `json:"modelTopology"`
	WeightsManifest []struct {
		Paths   []string `json:"paths"`
		Weights []struct {
			Name  string `json:"name"`
			Shape []int  `json:"shape"`
			Dtype string `json:"dtype"`
		} `json:"weights"`
	} `json:"weightsManifest"`
}

// LoadModel reads a TF.js model directory containing model.json, the
// weight shard files it references, and label_mapping.json.
func LoadModel(dir string) (*Model, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "model.json"))
	if err != nil {
		return nil, fmt.Errorf("read model.json: %w", err)
	}

	var mj modelJSON
	if err := json.Unmarshal(raw, &mj); err != nil {
		return nil, fmt.Errorf("parse model.json: %w", err)
	}

	labels, err := loadLabelMapping(filepath.Join(dir, "label_mapping.json"))
	if err != nil {
		return nil, err
	}

	// Activations for Dense layers in topology order. Dropout and
	// InputLayer entries carry no weights and are skipped.
	var activations []string
	for _, layer := range mj.ModelTopology.Config.Layers {
		if layer.ClassName == "Dense" {
			act := layer.Config.Activation
			if act == "" {
				act = "linear"
			}
			activations = append(activations, act)
		}
	}

	model := &Model{labels: labels}

	for _, group := range mj.WeightsManifest {
		if len(group.Paths) != len(group.Weights) {
			return nil, fmt.Errorf("weights manifest: %d paths for %d weights", len(group.Paths), len(group.Weights))
		}

		// The converter writes one shard per array, kernel then bias
		// per Dense layer, in layer order.
		for i := 0; i < len(group.Weights); i++ {
			w := group.Weights[i]
			if w.Dtype != "float32" {
				return nil, fmt.Errorf("weight %s: unsupported dtype %s", w.Name, w.Dtype)
			}

			values, err := readWeightShard(filepath.Join(dir, group.Paths[i]), w.Shape)
			if err != nil {
				return nil, fmt.Errorf("weight %s: %w", w.Name, err)
			}

			switch {
			case strings.HasSuffix(w.Name, "/kernel"):
				if len(w.Shape) != 2 {
					return nil, fmt.Errorf("kernel %s: expected 2 dims, got %d", w.Name, len(w.Shape))
				}
				model.layers = append(model.layers, denseLayer{
					weights: mat.NewDense(w.Shape[0], w.Shape[1], values),
				})
			case strings.HasSuffix(w.Name, "/bias"):
				if len(model.layers) == 0 {
					return nil, fmt.Errorf("bias %s before any kernel", w.Name)
				}
				model.layers[len(model.layers)-1].bias = values
			default:
				return nil, fmt.Errorf("unrecognized weight name %s", w.Name)
			}
		}
	}

	if len(model.layers) == 0 {
		return nil, fmt.Errorf("model has no dense layers")
	}
	if len(activations) != len(model.layers) {
		return nil, fmt.Errorf("topology lists %d dense layers but weights contain %d", len(activations), len(model.layers))
	}
	for i := range model.layers {
		model.layers[i].activation = activations[i]
		if model.layers[i].bias == nil {
			return nil, fmt.Errorf("dense layer %d has no bias", i)
		}
	}

	_, out := model.layers[len(model.layers)-1].weights.Dims()
	if out != len(labels) {
		return nil, fmt.Errorf("model outputs %d classes but label mapping has %d", out, len(labels))
	}

	return model, nil
}

// Predict runs the forward pass and returns the probability vector, one
// entry per label in mapping order.
func (m *Model) Predict(features []float64) ([]float64, error) {
	in, _ := m.layers[0].weights.Dims()
	if len(features) != in {
		return nil, fmt.Errorf("model expects %d features, got %d", in, len(features))
	}

	x := mat.NewDense(1, len(features), features)
	for _, layer := range m.layers {
		var y mat.Dense
		y.Mul(x, layer.weights)

		row := y.RawRowView(0)
		for j := range row {
			row[j] += layer.bias[j]
		}

		switch layer.activation {
		case "relu":
			for j := range row {
				if row[j] < 0 {
					row[j] = 0
				}
			}
		case "softmax":
			softmax(row)
		}

		x = &y
	}

	out := x.RawRowView(0)
	probs := make([]float64, len(out))
	copy(probs, out)
	return probs, nil
}

// Labels returns the class labels in model output order.
func (m *Model) Labels() []Label {
	return m.labels
}

// softmax normalizes logits in place, shifted by the max for numerical
// stability.
func softmax(v []float64) {
	maxv := v[0]
	for _, x := range v[1:] {
		if x > maxv {
			maxv = x
		}
	}

	var sum float64
	for i := range v {
		v[i] = math.Exp(v[i] - maxv)
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
}

// loadLabelMapping reads label_mapping.json, which maps output indices to
// class names: {"0": "idle", "1": "open_palm", ...}.
func loadLabelMapping(path string) ([]Label, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label mapping: %w", err)
	}

	var mapping map[string]string
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, fmt.Errorf("parse label mapping: %w", err)
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("label mapping is empty")
	}

	indices := make([]int, 0, len(mapping))
	for k := range mapping {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("label mapping key %q is not an index", k)
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	labels := make([]Label, 0, len(indices))
	for i, idx := range indices {
		if idx != i {
			return nil, fmt.Errorf("label mapping indices are not contiguous from 0")
		}
		labels = append(labels, Label(mapping[strconv.Itoa(idx)]))
	}
	return labels, nil
}

// readWeightShard reads one binary shard of little-endian float32 values
// and checks it against the declared shape.
func readWeightShard(path string, shape []int) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	n := 1
	for _, dim := range shape {
		n *= dim
	}
	if len(data) != 4*n {
		return nil, fmt.Errorf("shard holds %d bytes, shape %v needs %d", len(data), shape, 4*n)
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(data[4*i:])
		values[i] = float64(math.Float32frombits(bits))
	}
	return values, nil
}
