package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/cinderchess/cinder/board"
)

func movegen(fen string, drawMoves bool) error {
	log.Println("============ movegen")
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	fmt.Println(draw(b))
	fmt.Println(describe(b))
	dumpMoves(b)

	if drawMoves {
		for _, mv := range b.LegalMoves() {
			pm, err := b.Apply(mv)
			if err != nil {
				return err
			}
			fmt.Println(mv)
			fmt.Println(draw(b))
			fmt.Println(b.FEN())
			b.Undo(pm)
		}
	}
	return nil
}

func dumpMoves(b *board.Board) {
	mvs := b.LegalMoves()
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] [%s] %s %s %s => %s (cap=%v) (flag=%d)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Algebra(), mv.Side, mv.Piece, mv.From, mv.To, mv.IsCapture, mv.Flag)
	}
}
