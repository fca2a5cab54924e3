package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cinderchess/cinder/board"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func discardLogger(...any) {}

func searchMove(t *testing.T, b *board.Board, simulations uint32) board.Move {
	t.Helper()
	e := NewEngine(&EngineConfig{Simulations: simulations, Logger: discardLogger})
	mv, err := e.Search(context.Background(), b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return mv
}

func TestNewEngineDefaults(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*EngineConfig{nil, {}} {
		e := NewEngine(cfg)
		if _, ok := e.evaluator.(Material); !ok {
			t.Errorf("unexpected default evaluator: got=%T want=%T", e.evaluator, Material{})
		}
		if e.simulations != defaultSimulations {
			t.Errorf("unexpected default simulations: got=%d want=%d", e.simulations, defaultSimulations)
		}
		if e.logger == nil {
			t.Error("default logger not set")
		}
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{name: "back_rank", fen: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", want: "a1a8"},
		{name: "rook_ladder", fen: "k7/8/1K6/8/8/8/8/7R w - - 0 1", want: "h1h8"},
		{name: "black_mates", fen: "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", want: "a8a1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := mustBoard(t, tt.fen)
			if got := searchMove(t, b, 20_000); got.UCI() != tt.want {
				t.Errorf("unexpected move: got=%s want=%s", got.UCI(), tt.want)
			}
		})
	}
}

func TestSearchFindsMateInTwo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		first string
		reply string
		mate  string
	}{
		// Only 1. Kb6 forces mate: 1... Kb8 (forced) 2. Rh8#.
		{name: "rook_box", fen: "k7/8/2K5/8/8/8/8/7R w - - 0 1", first: "c6b6", reply: "a8b8", mate: "h1h8"},
		// Only 1. Kg6 forces mate: 1... Kg8 (forced) 2. Ra8#.
		{name: "rook_box_kingside", fen: "7k/8/5K2/8/8/8/8/R7 w - - 0 1", first: "f6g6", reply: "h8g8", mate: "a1a8"},
		// Only 1. Kb6 forces mate: 1... Kb8 (forced) 2. Qg8#.
		{name: "queen_approach", fen: "k7/8/8/1K6/8/8/8/6Q1 w - - 0 1", first: "b5b6", reply: "a8b8", mate: "g1g8"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := mustBoard(t, tt.fen)
			if got := searchMove(t, b, 40_000); got.UCI() != tt.first {
				t.Fatalf("unexpected move: got=%s want=%s", got.UCI(), tt.first)
			}

			// Play the line out: the follow-up must deliver mate.
			mustApplyUCI(t, b, tt.first)
			mustApplyUCI(t, b, tt.reply)
			if got := searchMove(t, b, 20_000); got.UCI() != tt.mate {
				t.Fatalf("unexpected mating move: got=%s want=%s", got.UCI(), tt.mate)
			}
			mustApplyUCI(t, b, tt.mate)
			if got := b.Winner(); got != board.SideWhite {
				t.Errorf("unexpected winner: got=%s want=%s", got, board.SideWhite)
			}
		})
	}
}

func mustApplyUCI(t *testing.T, b *board.Board, uci string) {
	t.Helper()
	for _, mv := range b.LegalMoves() {
		if mv.UCI() == uci {
			if _, err := b.Apply(mv); err != nil {
				t.Fatal("unexpected error:", err)
			}
			return
		}
	}
	t.Fatalf("move %s not legal: got=%v", uci, b.LegalMoves())
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, board.DefaultStartingPositionFEN)
	before := b.FEN()
	beforeMoves := len(b.LegalMoves())

	searchMove(t, b, 500)

	if got := b.FEN(); got != before {
		t.Errorf("search mutated the board: got=%s want=%s", got, before)
	}
	if got := len(b.LegalMoves()); got != beforeMoves {
		t.Errorf("search mutated the move list: got=%d want=%d", got, beforeMoves)
	}
}

func TestSearchNoMoves(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
	}{
		{name: "stalemate", fen: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"},
		{name: "checkmate", fen: "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEngine(&EngineConfig{Logger: discardLogger})
			_, err := e.Search(context.Background(), mustBoard(t, tt.fen))
			if !errors.Is(err, ErrNoMoves) {
				t.Errorf("unexpected error: got=%v want=%v", err, ErrNoMoves)
			}
		})
	}
}

func TestSearchCanceledContext(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, board.DefaultStartingPositionFEN)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(&EngineConfig{Logger: discardLogger})
	mv, err := e.Search(ctx, b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	legal := false
	for _, cand := range b.LegalMoves() {
		if cand == mv {
			legal = true
			break
		}
	}
	if !legal {
		t.Errorf("returned move is not legal: got=%s", mv)
	}
}

func TestSearchDeadline(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, board.DefaultStartingPositionFEN)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	e := NewEngine(&EngineConfig{Simulations: math.MaxUint32, Logger: discardLogger})
	start := time.Now()
	mv, err := e.Search(ctx, b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("search ignored the deadline: elapsed=%s", elapsed)
	}
	if mv.Side != board.SideWhite {
		t.Errorf("unexpected move side: got=%s", mv.Side)
	}
}

func TestSearchDeterministic(t *testing.T) {
	t.Parallel()

	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	first := searchMove(t, mustBoard(t, fen), 3000)
	second := searchMove(t, mustBoard(t, fen), 3000)
	if first != second {
		t.Errorf("search is not deterministic: first=%s second=%s", first, second)
	}
}

func TestMaterialEvaluate(t *testing.T) {
	t.Parallel()

	eval := Material{}

	start := mustBoard(t, board.DefaultStartingPositionFEN)
	if got := eval.Evaluate(start); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("unexpected symmetric score: got=%f want=0.5", got)
	}

	// White is a queen up; the score must favor the side to move accordingly.
	queenUpWhite := mustBoard(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	queenUpBlack := mustBoard(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	w, bl := eval.Evaluate(queenUpWhite), eval.Evaluate(queenUpBlack)
	if w <= 0.6 {
		t.Errorf("expected clear advantage for White: got=%f", w)
	}
	if bl >= 0.4 {
		t.Errorf("expected clear disadvantage for Black: got=%f", bl)
	}
	if math.Abs(w+bl-1) > 1e-9 {
		t.Errorf("perspectives should mirror: white=%f black=%f", w, bl)
	}
}
