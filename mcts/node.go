package mcts

import (
	"math"
	"sync"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

// MCTSNode is one node of the search tree: the state reached by Move from
// Parent, plus the visit statistics UCT needs.
type MCTSNode struct {
	// Identity: how this node was reached.
	Parent *MCTSNode
	Move   *engine.LegalMove
	State  *engine.GameState

	// Expansion frontier.
	Children     []*MCTSNode
	UntriedMoves []engine.LegalMove

	// Statistics, from the perspective of PlayerID (the seat on move at
	// this node's state).
	PlayerID uint8
	Visits   int
	Wins     float64
}

// nodePool recycles nodes between searches; the tree is torn down after
// every move decision, so allocation would otherwise dominate.
var nodePool = sync.Pool{
	New: func() interface{} {
		return &MCTSNode{
			Children:     make([]*MCTSNode, 0, 10),
			UntriedMoves: make([]engine.LegalMove, 0, 20),
		}
	},
}

// GetNode hands out a zeroed node from the pool.
func GetNode() *MCTSNode {
	node := nodePool.Get().(*MCTSNode)
	node.Reset()
	return node
}

// PutNode returns a node and its whole subtree to the pool.
func PutNode(node *MCTSNode) {
	if node == nil {
		return
	}
	for _, child := range node.Children {
		PutNode(child)
	}
	nodePool.Put(node)
}

// Reset clears a node for reuse, keeping its slice capacity.
func (n *MCTSNode) Reset() {
	*n = MCTSNode{
		Children:     n.Children[:0],
		UntriedMoves: n.UntriedMoves[:0],
	}
}

// UCB1 scores a child for selection: mean reward plus the exploration
// bonus. An unvisited node scores +Inf so it is always tried first.
func (n *MCTSNode) UCB1(explorationParam float64) float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	visits := float64(n.Visits)
	bonus := explorationParam * math.Sqrt(math.Log(float64(n.Parent.Visits))/visits)
	return n.Wins/visits + bonus
}

// BestChild picks the child maximizing UCB1, or nil on a leaf.
func (n *MCTSNode) BestChild(explorationParam float64) *MCTSNode {
	return n.argmaxChild(func(c *MCTSNode) float64 { return c.UCB1(explorationParam) })
}

// MostVisitedChild picks the child with the highest visit count - the
// final move choice after the iteration budget is spent. Visit count is
// the standard robust-child criterion; it is less noisy than mean reward.
func (n *MCTSNode) MostVisitedChild() *MCTSNode {
	return n.argmaxChild(func(c *MCTSNode) float64 { return float64(c.Visits) })
}

// argmaxChild returns the child maximizing score; ties keep the earliest
// child so selection stays deterministic.
func (n *MCTSNode) argmaxChild(score func(*MCTSNode) float64) *MCTSNode {
	if len(n.Children) == 0 {
		return nil
	}
	best, bestScore := n.Children[0], score(n.Children[0])
	for _, child := range n.Children[1:] {
		if s := score(child); s > bestScore {
			best, bestScore = child, s
		}
	}
	return best
}

// IsFullyExpanded reports whether every legal move from this node already
// has a child.
func (n *MCTSNode) IsFullyExpanded() bool {
	return len(n.UntriedMoves) == 0
}

// IsTerminal reports whether the node's game is over. A nil state counts
// as terminal so a half-built node can never be selected into.
func (n *MCTSNode) IsTerminal() bool {
	return n.State == nil || n.State.WinnerID >= 0
}
