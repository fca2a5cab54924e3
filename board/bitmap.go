package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/cinderchess/cinder/position"
)

// bitmap is a 64-bit board occupancy mask in little-endian rank-file order:
// bit i set means square position.Pos(i) is occupied.
type bitmap uint64

// Rotate180 reverses all 64 bits, re-expressing a bitmap from the opposite
// side's perspective. It is a pure bit permutation and an involution.
func Rotate180(bm bitmap) bitmap {
	return bitmap(bits.Reverse64(uint64(bm)))
}

func ShiftNW(bm bitmap) bitmap {
	return bm << 7
}

func ShiftN(bm bitmap) bitmap {
	return bm << 8
}

func ShiftNE(bm bitmap) bitmap {
	return bm << 9
}

func ShiftE(bm bitmap) bitmap {
	return bm << 1
}

func ShiftSE(bm bitmap) bitmap {
	return bm >> 7
}

func ShiftS(bm bitmap) bitmap {
	return bm >> 8
}

func ShiftSW(bm bitmap) bitmap {
	return bm >> 9
}

func ShiftW(bm bitmap) bitmap {
	return bm >> 1
}

func (bm *bitmap) Set(pos position.Pos) {
	*bm |= maskCell[pos]
}

func (bm *bitmap) Unset(pos position.Pos) {
	*bm &^= maskCell[pos]
}

// LS1B returns the position of the least significant set bit.
func (bm bitmap) LS1B() position.Pos {
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

// MS1B returns the position of the most significant set bit.
func (bm bitmap) MS1B() position.Pos {
	return position.Pos(63 - bits.LeadingZeros64(uint64(bm)))
}

func (bm bitmap) BitCount() uint8 {
	return uint8(bits.OnesCount64(uint64(bm)))
}

func (bm bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := position.Width; y > 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y))
		for x := position.Pos(0); x < position.Width; x++ {
			if bm&maskCell[(y-1)*position.Width+x] != 0 {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
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
