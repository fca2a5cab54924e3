package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/cinderchess/cinder/board"
)

// step plays random legal moves until the game ends, timing the board
// operations along the way.
func step(fen string) error {
	log.Println("============ step")
	var (
		timesApply []time.Duration
		timesUndo  []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for ply := 0; ; ply++ {
		mvs := b.LegalMoves()
		if len(mvs) == 0 {
			break
		}
		mv := mvs[rng.Intn(len(mvs))]

		t1 := time.Now()
		pm, err := b.Apply(mv)
		if err != nil {
			return err
		}
		timesApply = append(timesApply, time.Since(t1))

		// Exercise the exact-reversal path: undo and replay every move.
		t1 = time.Now()
		b.Undo(pm)
		timesUndo = append(timesUndo, time.Since(t1))
		if _, err := b.Apply(mv); err != nil {
			return err
		}

		fmt.Printf("\n===== [#%d] %s: %s\n", ply/2+1, mv.Side, mv)
		fmt.Println(draw(b))
		fmt.Println(b.FEN())
		fmt.Println(describe(b))
		<-time.Tick(10 * time.Millisecond)
	}

	avg := func(ds []time.Duration) time.Duration {
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return time.Duration(s.Seconds() / float64(len(ds)) * float64(time.Second))
	}

	fmt.Println()
	fmt.Println(b.State())
	fmt.Println("apply:", avg(timesApply))
	fmt.Println("undo:", avg(timesUndo))
	return nil
}
