package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cinderchess/cinder/board"
	"github.com/cinderchess/cinder/engine"
)

// play runs an engine self-play game from the given position.
func play(fen string, sims uint32, modelPath string, moveTime int) error {
	log.Println("============ play")
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}

	var evaluator engine.Evaluator = engine.Material{}
	if modelPath != "" {
		network, err := engine.NewNetworkFromFile(modelPath)
		if err != nil {
			return err
		}
		evaluator = network
	}
	e := engine.NewEngine(&engine.EngineConfig{
		Evaluator:   evaluator,
		Simulations: sims,
	})

	fmt.Println(draw(b))
	for !b.GameOver() {
		mv, err := func() (board.Move, error) {
			ctx := context.Background()
			if moveTime > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(moveTime)*time.Second)
				defer cancel()
			}
			return e.Search(ctx, b)
		}()
		if err != nil {
			return err
		}
		if _, err := b.Apply(mv); err != nil {
			return err
		}
		fmt.Printf("\n===== [#%d] %s: %s (%s)\n", b.FullMoveClock(), mv.Side, mv, mv.Algebra())
		fmt.Println(draw(b))
		fmt.Println(b.FEN())
	}

	fmt.Println()
	fmt.Println("result:", b.State())
	if winner := b.Winner(); winner != board.SideUnknown {
		fmt.Println("winner:", winner)
	}
	return nil
}
