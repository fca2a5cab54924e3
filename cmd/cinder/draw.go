package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/cinderchess/cinder/board"
	"github.com/cinderchess/cinder/position"
)

var (
	labelColor = color.New(color.Bold)
	lightCell  = color.New(color.FgBlack, color.BgHiWhite)
	darkCell   = color.New(color.FgBlack, color.BgHiGreen)
)

// draw renders the position as a colored checkerboard, from White's point of
// view.
func draw(b *board.Board) string {
	builder := strings.Builder{}
	for y := position.Width - 1; y >= 0; y-- {
		_, _ = builder.WriteString(labelColor.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < position.Width; x++ {
			s, p := b.At(y*position.Width + x)
			sym := " "
			if p != board.PieceUnknown {
				sym = p.SymbolUnicode(s, false)
			}
			cell := lightCell
			if x%2^y%2 == 0 {
				cell = darkCell
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < position.Width; x++ {
		_, _ = builder.WriteString(labelColor.Sprintf(" %s ", x.FileNotation()))
	}
	return builder.String()
}

// describe summarizes the board metadata in one line.
func describe(b *board.Board) string {
	return fmt.Sprintf("cast=%s half=%d full=%d state=%s", b.CastleRights(), b.HalfMoveClock(), b.FullMoveClock(), b.State())
}
