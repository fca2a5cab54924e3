package board

import (
	"github.com/cinderchess/cinder/position"
)

type direction uint8

const (
	dirN direction = iota
	dirNE
	dirE
	dirSE
	dirS
	dirSW
	dirW
	dirNW
	dirCount
)

var rookDirections = [4]direction{dirN, dirE, dirS, dirW}
var bishopDirections = [4]direction{dirNE, dirSE, dirSW, dirNW}

// positive directions shift toward higher square indices; the nearest blocker
// along them is the LS1B, along the others the MS1B.
func (d direction) positive() bool {
	switch d {
	case dirN, dirNE, dirE, dirNW:
		return true
	default:
		return false
	}
}

func (d direction) diagonal() bool {
	switch d {
	case dirNE, dirSE, dirSW, dirNW:
		return true
	default:
		return false
	}
}

var (
	// rayMasks[d][p] holds every square strictly beyond p in direction d,
	// up to and including the board edge.
	rayMasks [dirCount][position.Total]bitmap

	rookBlockerMasks   [position.Total]bitmap
	bishopBlockerMasks [position.Total]bitmap
	rookMoves          [position.Total]map[bitmap]bitmap
	bishopMoves        [position.Total]map[bitmap]bitmap
)

func init() {
	steps := [dirCount][2]position.Pos{
		dirN:  {0, 1},
		dirNE: {1, 1},
		dirE:  {1, 0},
		dirSE: {1, -1},
		dirS:  {0, -1},
		dirSW: {-1, -1},
		dirW:  {-1, 0},
		dirNW: {-1, 1},
	}
	for d := direction(0); d < dirCount; d++ {
		for p := position.Pos(0); p < position.Total; p++ {
			x, y := p.File(), p.Rank()
			for {
				x += steps[d][0]
				y += steps[d][1]
				if x < 0 || position.Width <= x || y < 0 || position.Width <= y {
					break
				}
				rayMasks[d][p] |= 1 << (y*position.Width + x)
			}
		}
	}

	for p := position.Pos(0); p < position.Total; p++ {
		for _, d := range rookDirections {
			rookBlockerMasks[p] |= trimEdge(rayMasks[d][p], d)
		}
		for _, d := range bishopDirections {
			bishopBlockerMasks[p] |= trimEdge(rayMasks[d][p], d)
		}
		rookMoves[p] = buildMoveTable(p, rookBlockerMasks[p], rookDirections)
		bishopMoves[p] = buildMoveTable(p, bishopBlockerMasks[p], bishopDirections)
	}
}

// trimEdge drops the ray's final square: a blocker on the edge never shortens
// the attack set, so omitting it shrinks the table keyspace.
func trimEdge(ray bitmap, d direction) bitmap {
	if ray == 0 {
		return 0
	}
	if d.positive() {
		return ray &^ (1 << ray.MS1B())
	}
	return ray &^ (1 << ray.LS1B())
}

// buildMoveTable enumerates every subset of the blocker mask and precomputes
// the attack set for it, so slider lookups at run time are a mask and a map
// access.
func buildMoveTable(p position.Pos, mask bitmap, dirs [4]direction) map[bitmap]bitmap {
	table := make(map[bitmap]bitmap)
	sub := bitmap(0)
	for {
		table[sub] = slideAttacks(p, sub, dirs)
		sub = (sub - mask) & mask
		if sub == 0 {
			break
		}
	}
	return table
}

func slideAttacks(p position.Pos, occupied bitmap, dirs [4]direction) bitmap {
	var attacks bitmap
	for _, d := range dirs {
		ray := rayMasks[d][p]
		blockers := ray & occupied
		if blockers == 0 {
			attacks |= ray
			continue
		}
		var first position.Pos
		if d.positive() {
			first = blockers.LS1B()
		} else {
			first = blockers.MS1B()
		}
		attacks |= ray &^ rayMasks[d][first]
	}
	return attacks
}

func rookMovesAt(p position.Pos, occupied bitmap) bitmap {
	return rookMoves[p][occupied&rookBlockerMasks[p]]
}

func bishopMovesAt(p position.Pos, occupied bitmap) bitmap {
	return bishopMoves[p][occupied&bishopBlockerMasks[p]]
}

// firstBlocker returns the nearest occupied square from p in direction d and
// the path up to and including it. Both are zero when the ray is empty.
func firstBlocker(p position.Pos, d direction, occupied bitmap) (first, path bitmap) {
	ray := rayMasks[d][p]
	blockers := ray & occupied
	if blockers == 0 {
		return 0, 0
	}
	var sq position.Pos
	if d.positive() {
		sq = blockers.LS1B()
	} else {
		sq = blockers.MS1B()
	}
	return maskCell[sq], ray &^ rayMasks[d][sq]
}
