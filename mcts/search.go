package mcts

import (
	"math/rand"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

const (
	DefaultExplorationParam = 1.414 // sqrt(2)
)

// mix64 folds a counter into a seed using the splitmix64 finalizer (the deck
// shuffle in GameState.ShuffleDeck uses a plain LCG instead). It gives each MCTS
// iteration an independent-looking stream without touching math/rand's
// global source.
func mix64(seed uint64) uint64 {
	seed += 0x9e3779b97f4a7c15
	seed = (seed ^ (seed >> 30)) * 0xbf58476d1ce4e5b9
	seed = (seed ^ (seed >> 27)) * 0x94d049bb133111eb
	return seed ^ (seed >> 31)
}

// iterationSeed derives a deterministic seed for one MCTS iteration from the
// game seed, the ply at which the search was invoked, and the player on
// move. Two iterations never share a stream, and the same (seed, ply,
// player) always replays identically regardless of goroutine scheduling.
func iterationSeed(gameSeed uint64, ply uint32, player uint8, iteration int) uint64 {
	s := mix64(gameSeed)
	s = mix64(s ^ uint64(ply))
	s = mix64(s ^ uint64(player)<<32)
	return mix64(s ^ uint64(iteration))
}

// Search performs MCTS from the given state and returns the best move.
// gameSeed and ply anchor the per-iteration PRNG so that two calls with the
// same arguments (including the same root state reached via the same seed)
// always explore the tree identically, independent of goroutine scheduling.
func Search(state *engine.GameState, genome *engine.Genome, iterations int, explorationParam float64, gameSeed uint64, ply uint32) *engine.LegalMove {
	if explorationParam == 0 {
		explorationParam = DefaultExplorationParam
	}

	root := GetNode()
	defer PutNode(root)

	root.State = state.Clone()
	root.PlayerID = state.CurrentPlayer
	root.UntriedMoves = engine.GenerateLegalMoves(root.State, genome)

	for i := 0; i < iterations; i++ {
		rng := rand.New(rand.NewSource(int64(iterationSeed(gameSeed, ply, root.PlayerID, i))))

		node := root

		// 1. Selection - traverse tree using UCB1
		for !node.IsTerminal() && node.IsFullyExpanded() {
			node = node.BestChild(explorationParam)
			if node == nil {
				break
			}
		}

		if node == nil {
			continue
		}

		// 2. Expansion - add a new child node
		if !node.IsTerminal() && len(node.UntriedMoves) > 0 {
			node = expand(node, genome, rng)
		}

		// 3. Simulation - play out randomly to terminal state
		winner := simulate(node.State, genome, rng)

		// 4. Backpropagation - update statistics
		backpropagate(node, winner)
	}

	bestChild := root.MostVisitedChild()
	if bestChild == nil || bestChild.Move == nil {
		moves := engine.GenerateLegalMoves(state, genome)
		if len(moves) > 0 {
			return &moves[0]
		}
		return nil
	}

	moveCopy := *bestChild.Move
	return &moveCopy
}

// expand adds a new child node for an untried move, chosen via rng.
func expand(node *MCTSNode, genome *engine.Genome, rng *rand.Rand) *MCTSNode {
	moveIndex := rng.Intn(len(node.UntriedMoves))
	move := node.UntriedMoves[moveIndex]

	node.UntriedMoves[moveIndex] = node.UntriedMoves[len(node.UntriedMoves)-1]
	node.UntriedMoves = node.UntriedMoves[:len(node.UntriedMoves)-1]

	childState := node.State.Clone()
	engine.ApplyMove(childState, &move, genome)

	child := GetNode()
	child.State = childState
	child.Move = &move
	child.Parent = node
	child.PlayerID = childState.CurrentPlayer
	child.UntriedMoves = engine.GenerateLegalMoves(childState, genome)

	node.Children = append(node.Children, child)

	return child
}

// simulate plays out the game randomly from the current state using rng,
// never math/rand's global source.
func simulate(state *engine.GameState, genome *engine.Genome, rng *rand.Rand) int8 {
	simState := state.Clone()
	defer engine.PutState(simState)

	maxSimulationTurns := int(genome.Header.MaxTurns) * 2 // Safety limit

	for i := 0; i < maxSimulationTurns; i++ {
		winner := engine.CheckWinConditions(simState, genome)
		if winner >= 0 {
			return winner
		}

		moves := engine.GenerateLegalMoves(simState, genome)
		if len(moves) == 0 {
			return -1
		}

		move := moves[rng.Intn(len(moves))]
		engine.ApplyMove(simState, &move, genome)
	}

	return -1
}

// backpropagate updates node statistics up the tree
func backpropagate(node *MCTSNode, winner int8) {
	for node != nil {
		node.Visits++

		if winner >= 0 {
			if uint8(winner) == node.PlayerID {
				node.Wins += 1.0
			}
		}

		node = node.Parent
	}
}

// SearchParams bundles MCTS tuning and the determinism anchor.
type SearchParams struct {
	Iterations       int
	ExplorationParam float64
	GameSeed         uint64
	Ply              uint32
}

// SearchWithParams runs MCTS with custom parameters.
func SearchWithParams(state *engine.GameState, genome *engine.Genome, params SearchParams) *engine.LegalMove {
	return Search(state, genome, params.Iterations, params.ExplorationParam, params.GameSeed, params.Ply)
}
