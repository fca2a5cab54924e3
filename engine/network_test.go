package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cinderchess/cinder/board"
)

func writeModel(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal("unexpected error:", err)
	}
	return path
}

func TestNewNetworkFromFile(t *testing.T) {
	t.Parallel()

	// Two layers: 17 -> 2 -> 1, all weights zero, biases zero. The output
	// sigmoid of zero is exactly 0.5 for every position.
	model := `{
		"layers": [
			{
				"weights": [
					[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],
					[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]
				],
				"biases": [0, 0]
			},
			{
				"weights": [[0, 0]],
				"biases": [0]
			}
		]
	}`
	n, err := NewNetworkFromFile(writeModel(t, model))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	b := mustBoard(t, board.DefaultStartingPositionFEN)
	if got := n.Evaluate(b); got != 0.5 {
		t.Errorf("unexpected score: got=%f want=0.5", got)
	}
}

func TestNewNetworkFromFileBias(t *testing.T) {
	t.Parallel()

	// A single positive output bias pushes the sigmoid above 0.5.
	model := `{
		"layers": [
			{
				"weights": [[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]],
				"biases": [2.0]
			}
		]
	}`
	n, err := NewNetworkFromFile(writeModel(t, model))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	if got := n.Evaluate(b); got <= 0.5 || got >= 1 {
		t.Errorf("unexpected score: got=%f want in (0.5, 1)", got)
	}
}

func TestNewNetworkFromFileErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		contents string
	}{
		{name: "not_json", contents: "not a model"},
		{name: "no_layers", contents: `{"layers": []}`},
		{name: "input_mismatch", contents: `{"layers": [{"weights": [[0, 0]], "biases": [0]}]}`},
		{name: "bias_mismatch", contents: `{"layers": [{"weights": [[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]], "biases": [0, 1]}]}`},
		{name: "multi_output", contents: `{
			"layers": [{
				"weights": [
					[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],
					[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]
				],
				"biases": [0, 0]
			}]
		}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewNetworkFromFile(writeModel(t, tt.contents)); !errors.Is(err, ErrModelUnavailable) {
				t.Errorf("unexpected error: got=%v want=%v", err, ErrModelUnavailable)
			}
		})
	}
}

func TestNewNetworkFromFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := NewNetworkFromFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrModelUnavailable)
	}
}

func TestSearchWithNetworkEvaluator(t *testing.T) {
	t.Parallel()

	model := `{
		"layers": [
			{
				"weights": [[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]],
				"biases": [0]
			}
		]
	}`
	n, err := NewNetworkFromFile(writeModel(t, model))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	// Terminal positions still score exactly, so mate in one is found even
	// with a constant network.
	e := NewEngine(&EngineConfig{Evaluator: n, Simulations: 20_000, Logger: discardLogger})
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	mv, err := e.Search(context.Background(), b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := mv.UCI(); got != "a1a8" {
		t.Errorf("unexpected move: got=%s want=a1a8", got)
	}
}
