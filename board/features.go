package board

import (
	"math"
)

// FeatureCount is the length of the vector returned by Features.
const FeatureCount = 17

// Features encodes the position as a fixed-length numeric vector from the
// side to move's perspective: the mover's six piece bitmaps, the opponent's
// six, the en passant bitmap, and the four castling rights. Bitmaps are
// rotated into the mover's view and normalized to [0, 1].
func (b *Board) Features() []float64 {
	f := make([]float64, 0, FeatureCount)
	us, them := b.turn, b.turn.Opposite()
	rotated := b.turn == SideBlack

	normalize := func(bm bitmap) float64 {
		if rotated {
			bm = Rotate180(bm)
		}
		return float64(bm) / float64(math.MaxUint64)
	}
	for p := PiecePawn; p <= PieceKing; p++ {
		f = append(f, normalize(b.pieces[us][p]))
	}
	for p := PiecePawn; p <= PieceKing; p++ {
		f = append(f, normalize(b.pieces[them][p]))
	}
	// The en passant bitmap is stored mover-oriented already.
	f = append(f, float64(b.enPassant)/float64(math.MaxUint64))

	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		if b.castleRights.IsAllowed(d) {
			f = append(f, 1)
		} else {
			f = append(f, 0)
		}
	}
	return f
}
