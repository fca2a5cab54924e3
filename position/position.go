// Package position defines the square coordinate system shared by the board
// and search packages: squares are numbered 0..63 in little-endian rank-file
// order (A1 = 0, H1 = 7, A8 = 56, H8 = 63).
package position

import (
	"errors"
)

const (
	// Width is the number of files/ranks on the board.
	Width Pos = 8

	// Total is the number of squares on the board.
	Total = Width * Width
)

var (
	// ErrInvalidNotation represents an invalid algebraic notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

type Pos int8

func NewPosFromNotation(n string) (Pos, error) {
	if len(n) != 2 {
		return 0, ErrInvalidNotation
	}
	file := Pos(n[0] - 'a')
	rank := Pos(n[1] - '1')
	if file < 0 || Width <= file || rank < 0 || Width <= rank {
		return 0, ErrInvalidNotation
	}
	return rank*Width + file, nil
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if p < 0 || Total <= p {
		return ""
	}
	return string(rune('a'+p.File())) + string(rune('1'+p.Rank()))
}

// File returns the 0-based file component (0 = file a).
func (p Pos) File() Pos {
	return p % Width
}

// Rank returns the 0-based rank component (0 = rank 1).
func (p Pos) Rank() Pos {
	return p / Width
}

// Rotated returns the square's image under a 180 degree rotation of the
// board. It translates between absolute squares and squares expressed in the
// opposite side's perspective, and is an involution: p.Rotated().Rotated() == p.
func (p Pos) Rotated() Pos {
	return Total - 1 - p
}

func (p Pos) FileNotation() string {
	if p < 0 || Width <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) RankNotation() string {
	if p < 0 || Width <= p {
		return ""
	}
	return string(rune('1' + p))
}
