package board

import (
	"github.com/cinderchess/cinder/position"
)

// DefaultStartingPositionFEN is the standard chess starting position.
const DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	maskCell   [position.Total]bitmap
	maskRow    [position.Width]bitmap
	maskCol    [position.Width]bitmap
	maskKnight [position.Total]bitmap
	maskKing   [position.Total]bitmap
)

func init() {
	for p := position.Pos(0); p < position.Total; p++ {
		maskCell[p] = 1 << p
	}
	for i := position.Pos(0); i < position.Width; i++ {
		maskRow[i] = bitmap(0xFF) << (i * position.Width)
		maskCol[i] = bitmap(0x0101_0101_0101_0101) << i
	}
	for p := position.Pos(0); p < position.Total; p++ {
		c := maskCell[p]
		nAB := c &^ (maskCol[0] | maskCol[1])
		nA := c &^ maskCol[0]
		nH := c &^ maskCol[7]
		nGH := c &^ (maskCol[6] | maskCol[7])
		maskKnight[p] = nA<<15 | nH<<17 | nGH<<10 | nGH>>6 |
			nH>>15 | nA>>17 | nAB>>10 | nAB<<6
		maskKing[p] = ShiftN(c) | ShiftS(c) |
			ShiftE(nH) | ShiftNE(nH) | ShiftSE(nH) |
			ShiftW(nA) | ShiftNW(nA) | ShiftSW(nA)
	}
}
