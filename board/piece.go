package board

import "strings"

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// pawnPromoteCandidates lists promotion targets in generation order.
var pawnPromoteCandidates = [4]Piece{PieceQueen, PieceRook, PieceBishop, PieceKnight}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return "Unknown"
	}
}

func (p Piece) SymbolAlgebra() string {
	switch p {
	case PiecePawn:
		return ""
	case PieceBishop:
		return "B"
	case PieceKnight:
		return "N"
	case PieceRook:
		return "R"
	case PieceQueen:
		return "Q"
	case PieceKing:
		return "K"
	default:
		return "?"
	}
}

func (p Piece) SymbolFEN(s Side) string {
	var sym string
	switch p {
	case PiecePawn:
		sym = "p"
	case PieceBishop:
		sym = "b"
	case PieceKnight:
		sym = "n"
	case PieceRook:
		sym = "r"
	case PieceQueen:
		sym = "q"
	case PieceKing:
		sym = "k"
	default:
		return "?"
	}
	if s == SideWhite {
		return strings.ToUpper(sym)
	}
	return sym
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	white := s == SideWhite
	if invert {
		white = !white
	}
	if white {
		switch p {
		case PiecePawn:
			return "♙"
		case PieceBishop:
			return "♗"
		case PieceKnight:
			return "♘"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		}
	} else {
		switch p {
		case PiecePawn:
			return "♟"
		case PieceBishop:
			return "♝"
		case PieceKnight:
			return "♞"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		}
	}
	return "?"
}

func (p Piece) String() string {
	return p.Name()
}
