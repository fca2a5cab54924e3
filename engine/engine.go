// Package engine selects moves with Monte Carlo tree search guided by a
// pluggable position evaluator.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cinderchess/cinder/board"
)

const (
	// explorationConstant is the UCB1 exploration weight.
	explorationConstant = math.Sqrt2

	defaultSimulations uint32 = 20_000
)

var (
	// ErrNoMoves is returned when the position has no legal moves, i.e. the
	// game is already over.
	ErrNoMoves = errors.New("no legal moves")
)

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

type EngineConfig struct {
	// Evaluator scores leaf positions; defaults to Material.
	Evaluator Evaluator
	// Simulations bounds the number of MCTS iterations per search.
	Simulations uint32
	Logger      func(a ...any)
}

type Engine struct {
	evaluator   Evaluator
	simulations uint32
	logger      func(a ...any)
}

// NewEngine builds an engine from cfg; a nil cfg or zero fields fall back to
// the Material evaluator, defaultSimulations, and DefaultLogger.
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	e := &Engine{
		evaluator:   cfg.Evaluator,
		simulations: cfg.Simulations,
		logger:      cfg.Logger,
	}
	if e.evaluator == nil {
		e.evaluator = Material{}
	}
	if e.simulations == 0 {
		e.simulations = defaultSimulations
	}
	if e.logger == nil {
		e.logger = DefaultLogger
	}
	return e
}

// node is a search tree node. Nodes live in a flat arena and refer to each
// other by index; reward accumulates from the perspective of the player who
// moved into the node.
type node struct {
	move     board.Move
	parent   int32
	children []int32
	visits   uint32
	reward   float64
	expanded bool
}

type searchTree struct {
	nodes []node
	b     *board.Board
	eval  Evaluator
	stack []board.PerformedMove
}

// Search runs MCTS from the given position and returns the most visited root
// move. The board is cloned, so the caller's board is never mutated. Search
// stops early when ctx is done and returns the best move found so far.
func (e *Engine) Search(ctx context.Context, b *board.Board) (board.Move, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return board.Move{}, fmt.Errorf("%w: state=%s", ErrNoMoves, b.State())
	}

	t := &searchTree{
		nodes: make([]node, 1, 1+uint32(len(moves))*64),
		b:     b.Clone(),
		eval:  e.evaluator,
	}
	t.nodes[0] = node{parent: -1}

	var ran uint32
simulations:
	for ; ran < e.simulations; ran++ {
		select {
		case <-ctx.Done():
			break simulations
		default:
		}
		t.simulate()
	}

	best := t.bestRootMove()
	if best == nil {
		// The context expired before the first simulation finished; any legal
		// move is acceptable.
		e.logger(fmt.Sprintf("search aborted early, falling back to first legal move: move=%s", moves[0]))
		return moves[0], nil
	}
	e.logger(fmt.Sprintf("search done: move=%s simulations=%d visits=%d score=%.3f nodes=%d",
		best.move, ran, best.visits, best.reward/float64(best.visits), len(t.nodes)))
	return best.move, nil
}

func (t *searchTree) bestRootMove() *node {
	var best *node
	for _, c := range t.nodes[0].children {
		child := &t.nodes[c]
		if child.visits == 0 {
			continue
		}
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	return best
}

// simulate runs one MCTS iteration: select to a leaf, expand it, evaluate
// one child, and backpropagate. The board is always unwound afterwards.
func (t *searchTree) simulate() {
	defer t.unwind()

	// Selection: descend along UCB-maximal children.
	idx := int32(0)
	for t.nodes[idx].expanded && len(t.nodes[idx].children) > 0 {
		idx = t.selectChild(idx)
		t.descend(idx)
	}

	// Expansion: materialize the children of the leaf once.
	if !t.nodes[idx].expanded {
		moves := t.b.LegalMoves()
		children := make([]int32, 0, len(moves))
		for _, mv := range moves {
			t.nodes = append(t.nodes, node{move: mv, parent: idx})
			children = append(children, int32(len(t.nodes)-1))
		}
		t.nodes[idx].children = children
		t.nodes[idx].expanded = true
		if len(children) > 0 {
			idx = t.selectChild(idx)
			t.descend(idx)
		}
	}

	t.backpropagate(idx, t.evaluate())
}

// descend applies the node's move to the working board.
func (t *searchTree) descend(idx int32) {
	pm := t.b.ForceApply(t.nodes[idx].move)
	t.b.UpdateState()
	t.stack = append(t.stack, pm)
}

func (t *searchTree) unwind() {
	for i := len(t.stack) - 1; i >= 0; i-- {
		t.b.Undo(t.stack[i])
	}
	t.stack = t.stack[:0]
}

// selectChild returns the UCB1-maximal child of the given node. Unvisited
// children rank highest; ties resolve to the first child, keeping the search
// deterministic.
func (t *searchTree) selectChild(idx int32) int32 {
	parent := &t.nodes[idx]
	bestScore := math.Inf(-1)
	best := parent.children[0]
	for _, c := range parent.children {
		child := &t.nodes[c]
		if child.visits == 0 {
			return c
		}
		score := child.reward/float64(child.visits) +
			explorationConstant*math.Sqrt(math.Log(float64(parent.visits))/float64(child.visits))
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// evaluate scores the working board for its side to move. Terminal positions
// score exactly: a mated mover scores 0, draws 0.5.
func (t *searchTree) evaluate() float64 {
	if t.b.GameOver() {
		if t.b.State().IsDraw() {
			return 0.5
		}
		return 0
	}
	return t.eval.Evaluate(t.b)
}

// backpropagate walks from the evaluated node to the root, flipping the value
// at every level: a position good for the side to move is bad for the player
// who moved into it.
func (t *searchTree) backpropagate(idx int32, value float64) {
	for cur := idx; cur != -1; cur = t.nodes[cur].parent {
		t.nodes[cur].visits++
		t.nodes[cur].reward += 1 - value
		value = 1 - value
	}
}
