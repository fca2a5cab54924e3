package board

import (
	"strings"

	"github.com/cinderchess/cinder/position"
)

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return "Unknown"
	}
}

// CastleRights packs the four castling permissions into the low nibble.
type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection) {
	*c |= 1 << (d - 1)
}

func (c *CastleRights) Unset(d CastleDirection) {
	*c &^= 1 << (d - 1)
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&(1<<(d-1)) != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&0b0011 != 0
	}
	return c&0b1100 != 0
}

func (c CastleRights) String() string {
	if c == 0 {
		return "-"
	}
	builder := strings.Builder{}
	if c.IsAllowed(CastleDirectionWhiteRight) {
		_, _ = builder.WriteString("K")
	}
	if c.IsAllowed(CastleDirectionWhiteLeft) {
		_, _ = builder.WriteString("Q")
	}
	if c.IsAllowed(CastleDirectionBlackRight) {
		_, _ = builder.WriteString("k")
	}
	if c.IsAllowed(CastleDirectionBlackLeft) {
		_, _ = builder.WriteString("q")
	}
	return builder.String()
}

func sideCastleRights(s Side) CastleRights {
	if s == SideWhite {
		return 0b0011
	}
	return 0b1100
}

// castleSpec describes one castling move. The clear mask and transit squares
// are expressed in the mover's perspective, matching the rotated view move
// generation runs in; the king and rook squares are absolute.
type castleSpec struct {
	right   CastleDirection
	clear   bitmap
	transit []position.Pos

	kingFrom, kingTo position.Pos
	rookFrom, rookTo position.Pos
}

var castleSpecsWhite = [2]castleSpec{
	{
		right:    CastleDirectionWhiteRight,
		clear:    1<<position.F1 | 1<<position.G1,
		transit:  []position.Pos{position.F1, position.G1},
		kingFrom: position.E1, kingTo: position.G1,
		rookFrom: position.H1, rookTo: position.F1,
	},
	{
		right:    CastleDirectionWhiteLeft,
		clear:    1<<position.B1 | 1<<position.C1 | 1<<position.D1,
		transit:  []position.Pos{position.D1, position.C1},
		kingFrom: position.E1, kingTo: position.C1,
		rookFrom: position.A1, rookTo: position.D1,
	},
}

// Black's clear and transit squares are pre-rotated: F8 maps to C1, G8 to B1,
// and so on under the 180 degree rotation.
var castleSpecsBlack = [2]castleSpec{
	{
		right:    CastleDirectionBlackRight,
		clear:    1<<position.B1 | 1<<position.C1,
		transit:  []position.Pos{position.C1, position.B1},
		kingFrom: position.E8, kingTo: position.G8,
		rookFrom: position.H8, rookTo: position.F8,
	},
	{
		right:    CastleDirectionBlackLeft,
		clear:    1<<position.E1 | 1<<position.F1 | 1<<position.G1,
		transit:  []position.Pos{position.E1, position.F1},
		kingFrom: position.E8, kingTo: position.C8,
		rookFrom: position.A8, rookTo: position.D8,
	},
}

// rookHomeRight maps a rook's starting square to the castling right it
// anchors. Moving or capturing the rook on that square revokes the right.
func rookHomeRight(s Side, p position.Pos) CastleDirection {
	if s == SideWhite {
		switch p {
		case position.H1:
			return CastleDirectionWhiteRight
		case position.A1:
			return CastleDirectionWhiteLeft
		}
	} else {
		switch p {
		case position.H8:
			return CastleDirectionBlackRight
		case position.A8:
			return CastleDirectionBlackLeft
		}
	}
	return CastleDirectionUnknown
}
