package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cinderchess/cinder/board"
)

var (
	// ErrModelUnavailable is returned when an evaluation model file cannot be
	// loaded or does not fit the board feature vector.
	ErrModelUnavailable = errors.New("model unavailable")
)

// Network is a small fully connected evaluation network over the board
// feature vector. Hidden layers use ReLU activations, the single output is
// squashed with a sigmoid so it lands in [0, 1] like every other Evaluator.
type Network struct {
	layers []networkLayer
}

type networkLayer struct {
	// Weights is indexed [output][input].
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

type networkModel struct {
	Layers []networkLayer `json:"layers"`
}

// NewNetworkFromFile loads network weights from a JSON model file.
func NewNetworkFromFile(path string) (*Network, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	var model networkModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if err := validateModel(model); err != nil {
		return nil, err
	}
	return &Network{layers: model.Layers}, nil
}

func validateModel(model networkModel) error {
	if len(model.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrModelUnavailable)
	}
	in := board.FeatureCount
	for i, l := range model.Layers {
		if len(l.Weights) == 0 || len(l.Weights) != len(l.Biases) {
			return fmt.Errorf("%w: layer %d shape mismatch", ErrModelUnavailable, i)
		}
		for _, row := range l.Weights {
			if len(row) != in {
				return fmt.Errorf("%w: layer %d expects %d inputs, weights have %d", ErrModelUnavailable, i, in, len(row))
			}
		}
		in = len(l.Weights)
	}
	if in != 1 {
		return fmt.Errorf("%w: final layer must have one output, has %d", ErrModelUnavailable, in)
	}
	return nil
}

func (n *Network) Evaluate(b *board.Board) float64 {
	x := b.Features()
	last := len(n.layers) - 1
	for i, l := range n.layers {
		out := make([]float64, len(l.Weights))
		for j, row := range l.Weights {
			sum := l.Biases[j]
			for k, w := range row {
				sum += w * x[k]
			}
			if i < last && sum < 0 {
				sum = 0
			}
			out[j] = sum
		}
		x = out
	}
	return 1 / (1 + math.Exp(-x[0]))
}
