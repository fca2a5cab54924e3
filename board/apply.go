package board

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var (
	// ErrIllegalMove is returned by Apply when the move is not in the current
	// legal move list.
	ErrIllegalMove = errors.New("illegal move")
)

// Apply validates mv against the legal move list, executes it, and updates
// the game state. The returned PerformedMove reverses it via Undo.
func (b *Board) Apply(mv Move) (PerformedMove, error) {
	if !slices.Contains(b.legalMoves, mv) {
		return PerformedMove{}, fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}
	pm := b.ForceApply(mv)
	b.UpdateState()
	return pm, nil
}

// ForceApply executes mv without validating it and without refreshing the
// legal move list or game state; the caller must follow up with UpdateState
// (or Undo). Search uses this to skip regeneration on lines it will unwind.
func (b *Board) ForceApply(mv Move) PerformedMove {
	pm := PerformedMove{
		Move:             mv,
		oldEnPassant:     b.enPassant,
		oldHalfMoveClock: b.halfMoveClock,
		oldLegalMoves:    b.legalMoves,
		oldState:         b.state,
		oldInCheck:       b.inCheck,
	}
	prev := repState{
		pieces:       b.pieces,
		sides:        b.sides,
		turn:         b.turn,
		castleRights: b.castleRights,
		enPassant:    b.enPassant,
	}

	us, them := b.turn, b.turn.Opposite()

	if _, captured := b.At(mv.To); captured != PieceUnknown {
		pm.captured = captured
		b.unset(them, captured, mv.To)
	}
	b.unset(us, mv.Piece, mv.From)
	b.set(us, mv.Piece, mv.To)

	var nextEnPassant bitmap
	switch mv.Flag {
	case MoveFlagPromotion:
		b.unset(us, PiecePawn, mv.To)
		b.set(us, mv.Promote, mv.To)
	case MoveFlagEnPassant:
		b.unset(them, PiecePawn, mv.EPCapture)
	case MoveFlagDoublePush:
		nextEnPassant = mv.EPTarget
	case MoveFlagCastling:
		b.unset(us, PieceRook, mv.RookFrom)
		b.set(us, PieceRook, mv.RookTo)
	}

	// Castling rights revocation: only rights actually held are recorded so
	// Undo restores exactly what was lost.
	var lost CastleRights
	if mv.Piece == PieceKing {
		lost = b.castleRights & sideCastleRights(us)
	} else if mv.Piece == PieceRook {
		if d := rookHomeRight(us, mv.From); d != CastleDirectionUnknown && b.castleRights.IsAllowed(d) {
			lost.Set(d)
		}
	}
	if pm.captured == PieceRook {
		if d := rookHomeRight(them, mv.To); d != CastleDirectionUnknown && b.castleRights.IsAllowed(d) {
			lost.Set(d)
		}
	}
	b.castleRights &^= lost
	pm.rightsLost = lost

	if mv.Piece == PiecePawn || pm.captured != PieceUnknown || mv.Flag == MoveFlagEnPassant {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}
	if us == SideBlack {
		b.fullMoveClock++
	}

	// Push the pre-move snapshot into the rolling repetition history.
	pm.evicted = b.history[0]
	copy(b.history[:historySize-1], b.history[1:])
	b.history[historySize-1] = historyEntry{state: prev, ok: true}

	b.enPassant = nextEnPassant
	b.turn = them
	b.cachedState = nil
	b.legalMoves = nil
	return pm
}

// Undo reverses a move produced by ForceApply (or Apply), restoring every
// piece of captured state verbatim. Moves must be undone in reverse order of
// application.
func (b *Board) Undo(pm PerformedMove) {
	mv := pm.Move
	us, them := mv.Side, mv.Side.Opposite()

	b.turn = us
	b.enPassant = pm.oldEnPassant
	b.halfMoveClock = pm.oldHalfMoveClock
	if us == SideBlack {
		b.fullMoveClock--
	}
	b.castleRights |= pm.rightsLost

	popped := b.history[historySize-1]
	copy(b.history[1:], b.history[:historySize-1])
	b.history[0] = pm.evicted
	if popped.ok {
		st := popped.state
		b.cachedState = &st
	} else {
		b.cachedState = nil
	}

	switch mv.Flag {
	case MoveFlagPromotion:
		b.unset(us, mv.Promote, mv.To)
		b.set(us, PiecePawn, mv.To)
	case MoveFlagEnPassant:
		b.set(them, PiecePawn, mv.EPCapture)
	case MoveFlagCastling:
		b.unset(us, PieceRook, mv.RookTo)
		b.set(us, PieceRook, mv.RookFrom)
	}
	b.unset(us, mv.Piece, mv.To)
	b.set(us, mv.Piece, mv.From)
	if pm.captured != PieceUnknown {
		b.set(them, pm.captured, mv.To)
	}

	b.legalMoves = pm.oldLegalMoves
	b.state = pm.oldState
	b.inCheck = pm.oldInCheck
}

// UpdateState regenerates the legal move list and derives the game state.
// Terminal states clear the move list.
func (b *Board) UpdateState() {
	b.legalMoves, b.inCheck = b.generateLegalMoves()
	b.cachedState = nil
	switch {
	case len(b.legalMoves) == 0 && b.inCheck:
		if b.turn == SideWhite {
			b.state = StateCheckmateWhite
		} else {
			b.state = StateCheckmateBlack
		}
	case len(b.legalMoves) == 0:
		b.state = StateStalemate
	case b.halfMoveClock >= 100:
		b.state = StateFiftyMoveViolated
	case b.historyContains(b.currentState()):
		b.state = StateTwofoldRepetition
	case b.inCheck:
		if b.turn == SideWhite {
			b.state = StateCheckWhite
		} else {
			b.state = StateCheckBlack
		}
	default:
		b.state = StateRunning
	}
	if !b.state.IsRunning() {
		b.legalMoves = nil
	}
}
