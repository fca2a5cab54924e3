// Package board implements bitboard based chess rules: position state, legal
// move generation, reversible move execution, and game end detection.
package board

import (
	"fmt"
	"strings"

	"github.com/cinderchess/cinder/position"
)

// historySize is the number of past positions kept for repetition detection.
const historySize = 10

// repState is the comparable slice of board state that decides whether two
// positions repeat.
type repState struct {
	pieces       [3][7]bitmap
	sides        [3]bitmap
	turn         Side
	castleRights CastleRights
	enPassant    bitmap
}

type historyEntry struct {
	state repState
	ok    bool
}

// Board is a complete chess position with cached legal moves and game state.
// It is not safe for concurrent mutation; use Clone for parallel work.
type Board struct {
	pieces   [3][7]bitmap
	sides    [3]bitmap
	occupied bitmap

	turn         Side
	castleRights CastleRights
	// enPassant is oriented to the side to move: the capture target square as
	// that side sees the board.
	enPassant     bitmap
	halfMoveClock uint16
	fullMoveClock uint16

	history     [historySize]historyEntry
	cachedState *repState

	legalMoves []Move
	state      State
	inCheck    bool
}

type boardConfig struct {
	fen string
}

type Option func(*boardConfig)

// WithFEN initializes the board from the given FEN record instead of the
// standard starting position.
func WithFEN(fen string) Option {
	return func(c *boardConfig) {
		c.fen = fen
	}
}

func NewBoard(opts ...Option) (*Board, error) {
	cfg := boardConfig{fen: DefaultStartingPositionFEN}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &Board{}
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	b.UpdateState()
	return b, nil
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

func (b *Board) HalfMoveClock() uint16 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint16 {
	return b.fullMoveClock
}

// State returns the game state as of the last UpdateState.
func (b *Board) State() State {
	return b.state
}

func (b *Board) InCheck() bool {
	return b.inCheck
}

func (b *Board) GameOver() bool {
	return !b.state.IsRunning()
}

// Winner returns the side that delivered checkmate, or SideUnknown while the
// game runs or ends drawn.
func (b *Board) Winner() Side {
	return b.state.Winner()
}

// LegalMoves returns the cached legal moves for the side to move. The slice
// is empty once the game is over.
func (b *Board) LegalMoves() []Move {
	return b.legalMoves
}

// LegalMovesFrom returns the legal moves starting at the given square.
func (b *Board) LegalMovesFrom(p position.Pos) []Move {
	var moves []Move
	for _, mv := range b.legalMoves {
		if mv.From == p {
			moves = append(moves, mv)
		}
	}
	return moves
}

// At returns the side and piece on the given square, or unknowns when empty.
func (b *Board) At(p position.Pos) (Side, Piece) {
	if b.occupied&maskCell[p] == 0 {
		return SideUnknown, PieceUnknown
	}
	s := SideWhite
	if b.sides[SideBlack]&maskCell[p] != 0 {
		s = SideBlack
	}
	for pc := PiecePawn; pc <= PieceKing; pc++ {
		if b.pieces[s][pc]&maskCell[p] != 0 {
			return s, pc
		}
	}
	return SideUnknown, PieceUnknown
}

func (b *Board) set(s Side, p Piece, pos position.Pos) {
	b.pieces[s][p].Set(pos)
	b.sides[s].Set(pos)
	b.occupied.Set(pos)
}

func (b *Board) unset(s Side, p Piece, pos position.Pos) {
	b.pieces[s][p].Unset(pos)
	b.sides[s].Unset(pos)
	b.occupied.Unset(pos)
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (b *Board) Clone() *Board {
	c := *b
	if b.legalMoves != nil {
		c.legalMoves = make([]Move, len(b.legalMoves))
		copy(c.legalMoves, b.legalMoves)
	}
	if b.cachedState != nil {
		st := *b.cachedState
		c.cachedState = &st
	}
	return &c
}

// currentState builds (and caches) the repetition snapshot of the position as
// it stands now.
func (b *Board) currentState() *repState {
	if b.cachedState == nil {
		b.cachedState = &repState{
			pieces:       b.pieces,
			sides:        b.sides,
			turn:         b.turn,
			castleRights: b.castleRights,
			enPassant:    b.enPassant,
		}
	}
	return b.cachedState
}

func (b *Board) historyContains(st *repState) bool {
	for i := range b.history {
		if b.history[i].ok && b.history[i].state == *st {
			return true
		}
	}
	return false
}

// Dump renders the position as ASCII, from White's point of view.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Width; y > 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y))
		for x := position.Pos(0); x < position.Width; x++ {
			s, p := b.At((y-1)*position.Width + x)
			if p == PieceUnknown {
				_, _ = builder.WriteString(" . ")
			} else {
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", p.SymbolFEN(s)))
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < position.Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.FileNotation()))
	}
	return builder.String()
}
