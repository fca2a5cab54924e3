package board

import (
	"github.com/cinderchess/cinder/position"
)

// moverView is the position re-expressed from the side to move's perspective.
// Black's bitmaps are rotated 180 degrees so pawns always push toward higher
// squares and generation logic never branches on color.
type moverView struct {
	mover, opp [7]bitmap
	same       bitmap
	enemy      bitmap
	game       bitmap
	// noKing is game with the mover's king removed, used for attack tests so
	// the king cannot shield a square behind itself.
	noKing  bitmap
	ep      bitmap
	kingSq  position.Pos
	rotated bool
}

func (b *Board) orient() moverView {
	us, them := b.turn, b.turn.Opposite()
	v := moverView{
		rotated: b.turn == SideBlack,
		ep:      b.enPassant,
		same:    b.sides[us],
		enemy:   b.sides[them],
	}
	for p := PiecePawn; p <= PieceKing; p++ {
		v.mover[p] = b.pieces[us][p]
		v.opp[p] = b.pieces[them][p]
	}
	if v.rotated {
		for p := PiecePawn; p <= PieceKing; p++ {
			v.mover[p] = Rotate180(v.mover[p])
			v.opp[p] = Rotate180(v.opp[p])
		}
		v.same = Rotate180(v.same)
		v.enemy = Rotate180(v.enemy)
	}
	v.game = v.same | v.enemy
	v.noKing = v.game &^ v.mover[PieceKing]
	v.kingSq = v.mover[PieceKing].LS1B()
	return v
}

// pseudoMove is a candidate move in mover perspective, before the legality
// filter and before translation back to absolute squares.
type pseudoMove struct {
	piece     Piece
	from, to  bitmap
	flag      MoveFlag
	promote   Piece
	epCapture bitmap
	epTarget  bitmap
}

// sliderFor returns the enemy pieces that attack along direction d.
func (v *moverView) sliderFor(d direction) bitmap {
	if d.diagonal() {
		return v.opp[PieceBishop] | v.opp[PieceQueen]
	}
	return v.opp[PieceRook] | v.opp[PieceQueen]
}

// pinsAndChecks scans the eight rays around the mover's king. It returns the
// absolutely pinned mover pieces, the squares a single check can be resolved
// on (the checker and any interposition squares, zero under double check),
// and whether the king is in check at all.
func (v *moverView) pinsAndChecks() (pinned, blockable bitmap, inCheck bool) {
	checks := 0
	for d := direction(0); d < dirCount; d++ {
		first, path := firstBlocker(v.kingSq, d, v.game)
		if first == 0 {
			continue
		}
		if first&v.enemy != 0 {
			attacker := first&v.sliderFor(d) != 0
			if !attacker && path == first && d.positive() && d.diagonal() {
				attacker = first&v.opp[PiecePawn] != 0
			}
			if attacker {
				checks++
				blockable |= path
			}
			continue
		}
		// Own piece in front: pinned if an attacking slider sits behind it.
		second, _ := firstBlocker(first.LS1B(), d, v.game)
		if second != 0 && second&v.sliderFor(d) != 0 {
			pinned |= first
		}
	}
	if kn := maskKnight[v.kingSq] & v.opp[PieceKnight]; kn != 0 {
		checks += int(kn.BitCount())
		blockable |= kn
	}
	if checks > 1 {
		blockable = 0
	}
	return pinned, blockable, checks > 0
}

// squareAttacked reports whether the enemy attacks the given mover-view
// square. The mover's king is excluded from the occupancy so a king cannot
// escape along the ray it is checked on.
func (v *moverView) squareAttacked(sq position.Pos) bool {
	if maskKnight[sq]&v.opp[PieceKnight] != 0 {
		return true
	}
	for d := direction(0); d < dirCount; d++ {
		first, path := firstBlocker(sq, d, v.noKing)
		if first == 0 || first&v.enemy == 0 {
			continue
		}
		if first&v.sliderFor(d) != 0 {
			return true
		}
		if path == first {
			if first&v.opp[PieceKing] != 0 {
				return true
			}
			if d.positive() && d.diagonal() && first&v.opp[PiecePawn] != 0 {
				return true
			}
		}
	}
	return false
}

// pinShifts are the candidate ray step sizes, tested largest first so the
// modulus classification is unambiguous for every reachable pin geometry.
var pinShifts = [4]int{9, 8, 7, 1}

func shiftDirection(from, to position.Pos) int {
	diff := int(to) - int(from)
	for _, s := range pinShifts {
		if diff%s == 0 {
			return s
		}
	}
	return 0
}

// epExposesKing re-tests the king's rank with both en passant pawns lifted.
// The capture empties two squares on one rank at once, which the pin scan
// cannot see when the captured pawn sits beyond the capturing pawn.
func (v *moverView) epExposesKing(pm pseudoMove) bool {
	if maskRow[v.kingSq.Rank()]&pm.from == 0 {
		return false
	}
	occ := v.game &^ (pm.from | pm.epCapture)
	for _, d := range [2]direction{dirE, dirW} {
		first, _ := firstBlocker(v.kingSq, d, occ)
		if first != 0 && first&(v.opp[PieceRook]|v.opp[PieceQueen]) != 0 {
			return true
		}
	}
	return false
}

// legalNonKing applies the pin and check filters to a non-king pseudo move.
func (v *moverView) legalNonKing(pm pseudoMove, pinned, blockable bitmap, inCheck bool) bool {
	if pm.flag == MoveFlagEnPassant && v.epExposesKing(pm) {
		return false
	}
	if inCheck {
		if pm.from&pinned != 0 {
			return false
		}
		if pm.to&blockable != 0 {
			return true
		}
		return pm.flag == MoveFlagEnPassant && pm.epCapture&blockable != 0
	}
	if pm.from&pinned != 0 {
		if pm.piece == PieceKnight {
			return false
		}
		return shiftDirection(v.kingSq, pm.from.LS1B()) == shiftDirection(pm.from.LS1B(), pm.to.LS1B())
	}
	return true
}

// materialize translates a pseudo move back to absolute squares.
func (v *moverView) materialize(pm pseudoMove, turn Side) Move {
	from, to := pm.from.LS1B(), pm.to.LS1B()
	if v.rotated {
		from, to = from.Rotated(), to.Rotated()
	}
	mv := Move{
		From:     from,
		To:       to,
		Side:     turn,
		Piece:    pm.piece,
		Flag:     pm.flag,
		Promote:  pm.promote,
		EPTarget: pm.epTarget,
	}
	if pm.flag == MoveFlagEnPassant {
		cap := pm.epCapture.LS1B()
		if v.rotated {
			cap = cap.Rotated()
		}
		mv.EPCapture = cap
		mv.IsCapture = true
	} else {
		mv.IsCapture = pm.to&v.enemy != 0
	}
	return mv
}

// generateLegalMoves computes every legal move for the side to move, in a
// deterministic order: king steps, queens, rooks, bishops, knights, pawns,
// castling. It also reports whether the mover is in check.
func (b *Board) generateLegalMoves() ([]Move, bool) {
	v := b.orient()
	pinned, blockable, inCheck := v.pinsAndChecks()

	var moves []Move
	emit := func(pm pseudoMove) {
		if v.legalNonKing(pm, pinned, blockable, inCheck) {
			moves = append(moves, v.materialize(pm, b.turn))
		}
	}

	// King steps.
	kingBB := v.mover[PieceKing]
	for dsts := maskKing[v.kingSq] &^ v.same; dsts != 0; {
		to := dsts.LS1B()
		dsts &^= maskCell[to]
		if !v.squareAttacked(to) {
			moves = append(moves, v.materialize(pseudoMove{piece: PieceKing, from: kingBB, to: maskCell[to]}, b.turn))
		}
	}

	// Sliders.
	for _, p := range [3]Piece{PieceQueen, PieceRook, PieceBishop} {
		for bb := v.mover[p]; bb != 0; {
			from := bb.LS1B()
			bb &^= maskCell[from]
			var dsts bitmap
			switch p {
			case PieceRook:
				dsts = rookMovesAt(from, v.game)
			case PieceBishop:
				dsts = bishopMovesAt(from, v.game)
			case PieceQueen:
				dsts = rookMovesAt(from, v.game) | bishopMovesAt(from, v.game)
			}
			for dsts &^= v.same; dsts != 0; {
				to := dsts.LS1B()
				dsts &^= maskCell[to]
				emit(pseudoMove{piece: p, from: maskCell[from], to: maskCell[to]})
			}
		}
	}

	// Knights.
	for bb := v.mover[PieceKnight]; bb != 0; {
		from := bb.LS1B()
		bb &^= maskCell[from]
		for dsts := maskKnight[from] &^ v.same; dsts != 0; {
			to := dsts.LS1B()
			dsts &^= maskCell[to]
			emit(pseudoMove{piece: PieceKnight, from: maskCell[from], to: maskCell[to]})
		}
	}

	// Pawns. Single pushes feed double pushes, so both are precomputed.
	pawns := v.mover[PiecePawn]
	single := ShiftN(pawns) &^ v.game
	double := ShiftN(single&maskRow[2]) &^ v.game
	emitPawn := func(pm pseudoMove) {
		if pm.from&maskRow[6] != 0 {
			pm.flag = MoveFlagPromotion
			for _, cand := range pawnPromoteCandidates {
				pm.promote = cand
				emit(pm)
			}
			return
		}
		emit(pm)
	}
	for bb := pawns; bb != 0; {
		from := bb.LS1B()
		bb &^= maskCell[from]
		fromBB := maskCell[from]
		if toBB := ShiftN(fromBB) & single; toBB != 0 {
			emitPawn(pseudoMove{piece: PiecePawn, from: fromBB, to: toBB})
			if toBB2 := ShiftN(toBB) & double; toBB2 != 0 && fromBB&maskRow[1] != 0 {
				emit(pseudoMove{
					piece:    PiecePawn,
					from:     fromBB,
					to:       toBB2,
					flag:     MoveFlagDoublePush,
					epTarget: Rotate180(ShiftN(fromBB)),
				})
			}
		}
		if fromBB&maskCol[0] == 0 {
			if capBB := ShiftNW(fromBB); capBB&v.enemy != 0 {
				emitPawn(pseudoMove{piece: PiecePawn, from: fromBB, to: capBB})
			} else if capBB&v.ep != 0 {
				emit(pseudoMove{
					piece:     PiecePawn,
					from:      fromBB,
					to:        capBB,
					flag:      MoveFlagEnPassant,
					epCapture: ShiftS(capBB),
				})
			}
		}
		if fromBB&maskCol[7] == 0 {
			if capBB := ShiftNE(fromBB); capBB&v.enemy != 0 {
				emitPawn(pseudoMove{piece: PiecePawn, from: fromBB, to: capBB})
			} else if capBB&v.ep != 0 {
				emit(pseudoMove{
					piece:     PiecePawn,
					from:      fromBB,
					to:        capBB,
					flag:      MoveFlagEnPassant,
					epCapture: ShiftS(capBB),
				})
			}
		}
	}

	// Castling. Never available while in check; transit squares must be safe.
	if !inCheck {
		specs := &castleSpecsWhite
		if v.rotated {
			specs = &castleSpecsBlack
		}
		for i := range specs {
			cs := &specs[i]
			if !b.castleRights.IsAllowed(cs.right) {
				continue
			}
			if cs.clear&v.game != 0 {
				continue
			}
			safe := true
			for _, t := range cs.transit {
				if v.squareAttacked(t) {
					safe = false
					break
				}
			}
			if !safe {
				continue
			}
			moves = append(moves, Move{
				From:     cs.kingFrom,
				To:       cs.kingTo,
				Side:     b.turn,
				Piece:    PieceKing,
				Flag:     MoveFlagCastling,
				RookFrom: cs.rookFrom,
				RookTo:   cs.rookTo,
			})
		}
	}

	return moves, inCheck
}
