// Package bench exercises move generation with perft: exhaustive move tree
// walks whose node counts are compared against known reference values.
package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cinderchess/cinder/board"
)

// Perft walks the legal move tree to the given depth and reports node and
// move-type totals on out. With verbose set, each root move's subtree count
// is reported as well. The sequential walker reuses one board with apply and
// undo; the parallel walker clones per branch.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) error {
	b, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	var nodes, cap, enp, cas, pro uint64
	start := time.Now()
	run(b, depth, true, verbose, out, &nodes, &cap, &enp, &cas, &pro)
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d (%.3fs elapsed)",
			depth, nodes, int(float64(nodes)/elapsed.Seconds()), cap, enp, cas, pro, elapsed.Seconds())

	return nil
}

type perftFunc func(b *board.Board, d int, root, verbose bool, out chan string, nodes, cap, enp, cas, pro *uint64) uint64

func tally(mv board.Move, cap, enp, cas, pro *uint64) {
	if mv.IsCapture {
		*cap++
	}
	switch mv.Flag {
	case board.MoveFlagEnPassant:
		*enp++
	case board.MoveFlagCastling:
		*cas++
	case board.MoveFlagPromotion:
		*pro++
	}
}

func runPerft(b *board.Board, d int, root, verbose bool, out chan string, nodes, cap, enp, cas, pro *uint64) uint64 {
	if d == 0 {
		*nodes++
		return 1
	}

	var sum uint64
	// Apply swaps out the cached move list, so iterate over a copy.
	moves := append([]board.Move(nil), b.LegalMoves()...)
	for _, mv := range moves {
		pm, err := b.Apply(mv)
		if err != nil {
			panic(err)
		}
		var child uint64
		if d != 2 {
			child = runPerft(b, d-1, false, verbose, out, nodes, cap, enp, cas, pro)
		} else {
			leafMoves := b.LegalMoves()
			child = uint64(len(leafMoves))
			*nodes += child
			for _, leaf := range leafMoves {
				tally(leaf, cap, enp, cas, pro)
			}
		}
		b.Undo(pm)
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

func runPerftParallel(b *board.Board, d int, root, verbose bool, out chan string, nodes, cap, enp, cas, pro *uint64) uint64 {
	if d == 0 {
		atomic.AddUint64(nodes, 1)
		return 1
	}

	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range b.LegalMoves() {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			bb := b.Clone()
			if _, err := bb.Apply(mv); err != nil {
				panic(err)
			}
			var child uint64
			if d != 2 {
				child = runPerftParallel(bb, d-1, false, verbose, out, nodes, cap, enp, cas, pro)
			} else {
				leafMoves := bb.LegalMoves()
				child = uint64(len(leafMoves))
				atomic.AddUint64(nodes, child)
				for _, leaf := range leafMoves {
					if leaf.IsCapture {
						atomic.AddUint64(cap, 1)
					}
					switch leaf.Flag {
					case board.MoveFlagEnPassant:
						atomic.AddUint64(enp, 1)
					case board.MoveFlagCastling:
						atomic.AddUint64(cas, 1)
					case board.MoveFlagPromotion:
						atomic.AddUint64(pro, 1)
					}
				}
			}
			if verbose && root {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}
			atomic.AddUint64(&sum, child)
		}()
	}
	wg.Wait()
	return sum
}
