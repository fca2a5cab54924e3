package board

import (
	"strings"

	"github.com/cinderchess/cinder/position"
)

type MoveFlag uint8

const (
	MoveFlagNone MoveFlag = iota
	MoveFlagPromotion
	MoveFlagEnPassant
	MoveFlagDoublePush
	MoveFlagCastling
)

// Move is a fully specified legal move. All fields are comparable, so two
// moves are the same move exactly when the structs are equal.
type Move struct {
	From, To position.Pos
	Side     Side
	Piece    Piece
	Flag     MoveFlag

	IsCapture bool

	// Promote is the replacement piece for MoveFlagPromotion moves.
	Promote Piece
	// EPCapture is the square of the pawn removed by a MoveFlagEnPassant move.
	EPCapture position.Pos
	// EPTarget is the en passant bitmap a MoveFlagDoublePush move exposes,
	// already oriented to the next side to move.
	EPTarget bitmap
	// RookFrom and RookTo describe the rook leg of a MoveFlagCastling move.
	RookFrom, RookTo position.Pos
}

// UCI renders the move in long algebraic coordinate notation, e.g. "e2e4" or
// "e7e8q".
func (m Move) UCI() string {
	n := m.From.Notation() + m.To.Notation()
	if m.Flag == MoveFlagPromotion {
		n += strings.ToLower(m.Promote.SymbolAlgebra())
	}
	return n
}

// Algebra renders the move in short algebraic notation without check or
// disambiguation marks.
func (m Move) Algebra() string {
	if m.Flag == MoveFlagCastling {
		if m.To.File() > m.From.File() {
			return "0-0"
		}
		return "0-0-0"
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(m.Piece.SymbolAlgebra())
	if m.IsCapture {
		if m.Piece == PiecePawn {
			_, _ = builder.WriteString(m.From.File().FileNotation())
		}
		_, _ = builder.WriteString("x")
	}
	_, _ = builder.WriteString(m.To.Notation())
	if m.Flag == MoveFlagPromotion {
		_, _ = builder.WriteString("=" + m.Promote.SymbolAlgebra())
	}
	return builder.String()
}

func (m Move) String() string {
	return m.UCI()
}

// PerformedMove records everything needed to reverse a move exactly. Undo
// restores the captured state verbatim instead of recomputing it.
type PerformedMove struct {
	Move Move

	captured         Piece
	rightsLost       CastleRights
	oldEnPassant     bitmap
	oldHalfMoveClock uint16
	oldLegalMoves    []Move
	oldState         State
	oldInCheck       bool
	evicted          historyEntry
}

// Captured returns the piece removed by the move, or PieceUnknown. En passant
// captures are recorded on the Move itself, not here.
func (pm PerformedMove) Captured() Piece {
	return pm.captured
}
