package simulation

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/signalnine/cards-evolve/gosim/engine"
	"github.com/signalnine/cards-evolve/gosim/mcts"
)

// AIPlayerType specifies which AI to use
type AIPlayerType uint8

const (
	RandomAI    AIPlayerType = 0
	GreedyAI    AIPlayerType = 1
	MCTS100AI   AIPlayerType = 2
	MCTS500AI   AIPlayerType = 3
	MCTS1000AI  AIPlayerType = 4
	MCTS2000AI  AIPlayerType = 5
)

// GameMetrics holds Phase 1 instrumentation counters
type GameMetrics struct {
	TotalDecisions    uint64 // Decision points (when player chooses move)
	TotalValidMoves   uint64 // Sum of valid moves at each decision
	ForcedDecisions   uint64 // Decisions with only 1 valid move
	TotalInteractions uint64 // Actions affecting opponent state
	TotalActions      uint64 // Total actions taken

	// MoveDisruptionEvents counts moves that strictly reduced some other
	// player's legal-move count on their next turn.
	MoveDisruptionEvents uint64
	// ContentionEvents counts decisions where multiple players are drawing
	// against the same near-exhausted shared pile.
	ContentionEvents uint64
	// ForcedResponseEvents counts moves after which the next player to act
	// has at most one legal move.
	ForcedResponseEvents uint64
	// OpponentTurnCount counts turns taken by any player other than seat 0.
	OpponentTurnCount uint64
}

// GameResult holds the outcome of a single game
type GameResult struct {
	WinnerID   int8
	TurnCount  uint32
	DurationNs uint64
	Error      string
	Metrics    GameMetrics // Phase 1 instrumentation
	Tension    engine.TensionMetrics
}

// AggregatedStats summarizes multiple game results
type AggregatedStats struct {
	TotalGames    uint32
	Player0Wins   uint32
	Player1Wins   uint32
	Draws         uint32
	AvgTurns      float32
	MedianTurns   uint32
	AvgDurationNs uint64
	Errors        uint32

	// Phase 1 instrumentation: aggregated across all games
	TotalDecisions    uint64
	TotalValidMoves   uint64
	ForcedDecisions   uint64
	TotalInteractions uint64
	TotalActions      uint64

	MoveDisruptionEvents uint64
	ContentionEvents     uint64
	ForcedResponseEvents uint64
	OpponentTurnCount    uint64

	// Tension curve, averaged across all completed games.
	AvgLeadChanges   float32
	AvgDecisiveTurn  float32
	AvgClosestMargin float32
}

// RunBatch simulates multiple games with the same genome and AI configuration
func RunBatch(genome *engine.Genome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	results := make([]GameResult, numGames)

	// Use seed for determinism
	rng := rand.New(rand.NewSource(int64(seed)))

	for i := 0; i < numGames; i++ {
		gameSeed := rng.Uint64()
		results[i] = RunSingleGame(genome, aiType, mctsIterations, gameSeed)
	}

	return aggregateResults(results)
}

// randomMoveRNG derives a decorrelated PRNG for a random-AI player, seeded
// from the game seed and player index so that player 0's and player 1's
// draws never share a stream and seat order can be swapped without
// permuting one shared sequence.
func randomMoveRNG(seed uint64, player uint8) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix64(seed ^ uint64(player)<<48))))
}

// mix64 folds a counter into a seed using the splitmix64 finalizer.
func mix64(seed uint64) uint64 {
	seed += 0x9e3779b97f4a7c15
	seed = (seed ^ (seed >> 30)) * 0xbf58476d1ce4e5b9
	seed = (seed ^ (seed >> 27)) * 0x94d049bb133111eb
	return seed ^ (seed >> 31)
}

// RunSingleGame plays one complete game to termination
func RunSingleGame(genome *engine.Genome, aiType AIPlayerType, mctsIterations int, seed uint64) GameResult {
	start := time.Now()
	var metrics GameMetrics

	// Initialize game state
	state := engine.GetState()
	defer engine.PutState(state)

	// Setup deck and deal cards
	setupDeck(state, seed)

	randRNGs := [4]*rand.Rand{randomMoveRNG(seed, 0), randomMoveRNG(seed, 1), randomMoveRNG(seed, 2), randomMoveRNG(seed, 3)}

	// Read cards_per_player from genome setup section
	cardsPerPlayer := 26 // Default for War
	if genome.Header.SetupOffset > 0 && genome.Header.SetupOffset+8 <= int32(len(genome.Bytecode)) {
		setupOffset := genome.Header.SetupOffset
		cardsPerPlayer = int(int32(binary.BigEndian.Uint32(genome.Bytecode[setupOffset : setupOffset+4])))
	}

	// Determine number of players from genome header
	numPlayers := int(genome.Header.PlayerCount)
	if numPlayers == 0 || numPlayers > 4 {
		numPlayers = 2 // Default to 2 players
	}

	// Initialize trick-taking state
	state.NumPlayers = uint8(numPlayers)
	state.CardsPerPlayer = cardsPerPlayer
	applyTableauLayout(state, genome)

	// Deal cards to each player
	for i := 0; i < cardsPerPlayer; i++ {
		for p := 0; p < numPlayers; p++ {
			state.DrawCard(uint8(p), engine.LocationDeck)
		}
	}

	if hasBiddingPhase(genome) {
		biddingAITypes := make([]AIPlayerType, numPlayers)
		for i := range biddingAITypes {
			biddingAITypes[i] = aiType
		}
		runBiddingRound(state, genome, biddingAITypes)
	}

	tension := engine.NewTensionMetrics(numPlayers)

	// Game loop with turn limit protection
	maxTurns := genome.Header.MaxTurns
	for state.TurnNumber < maxTurns {
		// Check win conditions
		winner := engine.CheckWinConditions(state, genome)
		if winner >= 0 {
			tension.Finalize()
			return GameResult{
				WinnerID:   winner,
				TurnCount:  state.TurnNumber,
				DurationNs: uint64(time.Since(start).Nanoseconds()),
				Metrics:    metrics,
				Tension:    *tension,
			}
		}

		// Generate legal moves
		moves := engine.GenerateLegalMoves(state, genome)
		if len(moves) == 0 {
			// Deadlock: nobody can act and no win condition fired. Resolved
			// by tie-break, not treated as an error.
			tension.Finalize()
			return GameResult{
				WinnerID:   tieBreakWinner(state, genome),
				TurnCount:  state.TurnNumber,
				DurationNs: uint64(time.Since(start).Nanoseconds()),
				Metrics:    metrics,
				Tension:    *tension,
			}
		}

		tension.Observe(state, engine.ScoreLeaderDetector{}, int(state.TurnNumber))

		// Phase 1 instrumentation: decision counting
		metrics.TotalDecisions++
		metrics.TotalValidMoves += uint64(len(moves))
		if len(moves) == 1 {
			metrics.ForcedDecisions++
		}
		if hasContention(state, moves) {
			metrics.ContentionEvents++
		}

		// Select and apply move based on AI type
		var move *engine.LegalMove
		switch aiType {
		case RandomAI:
			playerRNG := randRNGs[state.CurrentPlayer%4]
			move = &moves[playerRNG.Intn(len(moves))]
		case GreedyAI:
			move = selectGreedyMove(state, genome, moves)
		case MCTS100AI:
			iterations := mctsIterations
			if iterations <= 0 {
				iterations = 100
			}
			move = mcts.Search(state, genome, iterations, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		case MCTS500AI:
			move = mcts.Search(state, genome, 500, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		case MCTS1000AI:
			move = mcts.Search(state, genome, 1000, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		case MCTS2000AI:
			move = mcts.Search(state, genome, 2000, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		default:
			move = &moves[0]
		}

		if move == nil {
			tension.Finalize()
			return GameResult{
				WinnerID:   -1,
				TurnCount:  state.TurnNumber,
				DurationNs: uint64(time.Since(start).Nanoseconds()),
				Error:      "AI returned nil move",
				Metrics:    metrics,
				Tension:    *tension,
			}
		}

		// Phase 1 instrumentation: action and interaction counting
		metrics.TotalActions++
		if state.CurrentPlayer != 0 {
			metrics.OpponentTurnCount++
		}
		interacting := isInteraction(state, move, genome)
		if interacting {
			metrics.TotalInteractions++
			recordDisruptionMetrics(state, move, genome, &metrics)
		}

		engine.ApplyMove(state, move, genome)
	}

	// Max turns reached - forced end, settled by tie-break
	tension.Finalize()
	return GameResult{
		WinnerID:   tieBreakWinner(state, genome),
		TurnCount:  state.TurnNumber,
		DurationNs: uint64(time.Since(start).Nanoseconds()),
		Metrics:    metrics,
		Tension:    *tension,
	}
}

// RunBatchAsymmetric simulates games with different AI types for each player.
// Used for skill gap measurement (e.g., MCTS vs Random).
func RunBatchAsymmetric(genome *engine.Genome, numGames int, p0AIType AIPlayerType, p1AIType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	results := make([]GameResult, numGames)
	rng := rand.New(rand.NewSource(int64(seed)))

	for i := 0; i < numGames; i++ {
		gameSeed := rng.Uint64()
		results[i] = RunSingleGameAsymmetric(genome, p0AIType, p1AIType, mctsIterations, gameSeed)
	}

	return aggregateResults(results)
}

// RunSingleGameAsymmetric plays one game with different AI for each player.
func RunSingleGameAsymmetric(genome *engine.Genome, p0AIType AIPlayerType, p1AIType AIPlayerType, mctsIterations int, seed uint64) GameResult {
	start := time.Now()
	var metrics GameMetrics

	state := engine.GetState()
	defer engine.PutState(state)

	setupDeck(state, seed)

	randRNGs := [4]*rand.Rand{randomMoveRNG(seed, 0), randomMoveRNG(seed, 1), randomMoveRNG(seed, 2), randomMoveRNG(seed, 3)}

	cardsPerPlayer := 26
	if genome.Header.SetupOffset > 0 && genome.Header.SetupOffset+8 <= int32(len(genome.Bytecode)) {
		setupOffset := genome.Header.SetupOffset
		cardsPerPlayer = int(int32(binary.BigEndian.Uint32(genome.Bytecode[setupOffset : setupOffset+4])))
	}

	numPlayers := int(genome.Header.PlayerCount)
	if numPlayers == 0 || numPlayers > 4 {
		numPlayers = 2
	}

	state.NumPlayers = uint8(numPlayers)
	state.CardsPerPlayer = cardsPerPlayer
	applyTableauLayout(state, genome)

	for i := 0; i < cardsPerPlayer; i++ {
		for p := 0; p < numPlayers; p++ {
			state.DrawCard(uint8(p), engine.LocationDeck)
		}
	}

	if hasBiddingPhase(genome) {
		biddingAITypes := make([]AIPlayerType, numPlayers)
		for i := range biddingAITypes {
			if i%2 == 0 {
				biddingAITypes[i] = p0AIType
			} else {
				biddingAITypes[i] = p1AIType
			}
		}
		runBiddingRound(state, genome, biddingAITypes)
	}

	tension := engine.NewTensionMetrics(numPlayers)

	maxTurns := genome.Header.MaxTurns
	for state.TurnNumber < maxTurns {
		winner := engine.CheckWinConditions(state, genome)
		if winner >= 0 {
			tension.Finalize()
			return GameResult{
				WinnerID:   winner,
				TurnCount:  state.TurnNumber,
				DurationNs: uint64(time.Since(start).Nanoseconds()),
				Metrics:    metrics,
				Tension:    *tension,
			}
		}

		moves := engine.GenerateLegalMoves(state, genome)
		if len(moves) == 0 {
			tension.Finalize()
			return GameResult{
				WinnerID:   tieBreakWinner(state, genome),
				TurnCount:  state.TurnNumber,
				DurationNs: uint64(time.Since(start).Nanoseconds()),
				Metrics:    metrics,
				Tension:    *tension,
			}
		}

		tension.Observe(state, engine.ScoreLeaderDetector{}, int(state.TurnNumber))

		metrics.TotalDecisions++
		metrics.TotalValidMoves += uint64(len(moves))
		if len(moves) == 1 {
			metrics.ForcedDecisions++
		}
		if hasContention(state, moves) {
			metrics.ContentionEvents++
		}

		// Select AI based on current player
		var aiType AIPlayerType
		if state.CurrentPlayer == 0 {
			aiType = p0AIType
		} else {
			aiType = p1AIType
		}

		var move *engine.LegalMove
		switch aiType {
		case RandomAI:
			playerRNG := randRNGs[state.CurrentPlayer%4]
			move = &moves[playerRNG.Intn(len(moves))]
		case GreedyAI:
			move = selectGreedyMove(state, genome, moves)
		case MCTS100AI:
			iterations := mctsIterations
			if iterations <= 0 {
				iterations = 100
			}
			move = mcts.Search(state, genome, iterations, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		case MCTS500AI:
			move = mcts.Search(state, genome, 500, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		case MCTS1000AI:
			move = mcts.Search(state, genome, 1000, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		case MCTS2000AI:
			move = mcts.Search(state, genome, 2000, mcts.DefaultExplorationParam, seed, state.TurnNumber)
		default:
			move = &moves[0]
		}

		if move == nil {
			tension.Finalize()
			return GameResult{
				WinnerID:   -1,
				TurnCount:  state.TurnNumber,
				DurationNs: uint64(time.Since(start).Nanoseconds()),
				Error:      "AI returned nil move",
				Metrics:    metrics,
				Tension:    *tension,
			}
		}

		metrics.TotalActions++
		if state.CurrentPlayer != 0 {
			metrics.OpponentTurnCount++
		}
		if isInteraction(state, move, genome) {
			metrics.TotalInteractions++
			recordDisruptionMetrics(state, move, genome, &metrics)
		}

		engine.ApplyMove(state, move, genome)
	}

	tension.Finalize()
	return GameResult{
		WinnerID:   tieBreakWinner(state, genome),
		TurnCount:  state.TurnNumber,
		DurationNs: uint64(time.Since(start).Nanoseconds()),
		Metrics:    metrics,
		Tension:    *tension,
	}
}

// isInteraction determines if a move affects the opponent's state
func isInteraction(state *engine.GameState, move *engine.LegalMove, genome *engine.Genome) bool {
	if move.PhaseIndex >= len(genome.TurnPhases) {
		return false
	}

	phase := genome.TurnPhases[move.PhaseIndex]

	switch phase.PhaseType {
	case 1: // DrawPhase
		// Drawing from opponent's hand is an interaction
		if move.TargetLoc == engine.LocationOpponentHand {
			return true
		}
	case 2: // PlayPhase
		// Playing to tableau triggers War battle resolution which affects opponent
		if move.TargetLoc == engine.LocationTableau {
			return true
		}
		// Playing to opponent's locations is an interaction
		if move.TargetLoc == engine.LocationOpponentHand ||
			move.TargetLoc == engine.LocationOpponentDiscard {
			return true
		}
	case 3: // DiscardPhase
		// Regular discard doesn't affect opponent
		return false
	}

	return false
}

// recordDisruptionMetrics clones state before an interacting move is
// applied, applies the move to the clone, and compares the next player's
// legal-move set before and after: a strict reduction is a disruption event,
// and a post-move count of at most one is a forced-response event. Cloning
// is only paid on moves isInteraction already flagged as touching another
// player's state.
func recordDisruptionMetrics(state *engine.GameState, move *engine.LegalMove, genome *engine.Genome, metrics *GameMetrics) {
	actor := state.CurrentPlayer

	after := state.Clone()
	defer engine.PutState(after)
	engine.ApplyMove(after, move, genome)
	if after.CurrentPlayer == actor {
		return
	}
	afterMoves := engine.GenerateLegalMoves(after, genome)

	// Counterfactual: what the next player could have done had this move
	// never happened.
	before := state.Clone()
	defer engine.PutState(before)
	before.CurrentPlayer = after.CurrentPlayer
	beforeMoves := engine.GenerateLegalMoves(before, genome)

	if len(afterMoves) < len(beforeMoves) {
		metrics.MoveDisruptionEvents++
	}
	if len(afterMoves) <= 1 {
		metrics.ForcedResponseEvents++
	}
}

// hasContention reports whether the acting decision draws against a shared
// pile too small to serve every remaining player - the hallmark of players
// competing for the same scarce resource in one phase.
func hasContention(state *engine.GameState, moves []engine.LegalMove) bool {
	for _, m := range moves {
		if m.TargetLoc == engine.LocationDeck && len(state.Deck) < int(state.NumPlayers) {
			return true
		}
	}
	return false
}

// movesDisrupted reports whether an opponent's legal-move set changed
// between two snapshots - counted once per triggering event (a single
// disruptive play that narrows several cards off the board still counts
// as one disruption, not one per affected move).
func movesDisrupted(before, after []engine.LegalMove) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}

// applyTableauLayout copies the genome's tableau configuration onto a fresh
// state. V1 bytecode predates the tableau header fields; its tableau games
// were all War-style battles, so the war layout is the legacy default.
func applyTableauLayout(state *engine.GameState, genome *engine.Genome) {
	state.TableauMode = genome.Header.TableauMode
	state.SequenceDirection = genome.Header.SequenceDirection
	if genome.Header.BytecodeVersion <= 1 && state.TableauMode == 0 {
		state.TableauMode = 1
	}
}

// tieBreakWinner settles a game that hit the turn cap or deadlocked with
// no win condition fired: highest score in scoring games (lowest when the
// genome plays for low score), otherwise largest hand. Ties go to the
// lowest seat, so a forced end always names a winner.
func tieBreakWinner(state *engine.GameState, genome *engine.Genome) int8 {
	scoring := false
	lowScore := false
	for _, wc := range genome.WinConditions {
		switch wc.WinType {
		case 1, 2, 5:
			scoring = true
		case 4:
			scoring = true
			lowScore = true
		}
	}
	if len(genome.CardScoring) > 0 {
		scoring = true
	}

	numPlayers := int(state.NumPlayers)
	if numPlayers == 0 || numPlayers > len(state.Players) {
		numPlayers = len(state.Players)
	}
	if numPlayers == 0 {
		return -1
	}

	winner := 0
	for p := 1; p < numPlayers; p++ {
		if scoring {
			if lowScore {
				if state.Players[p].Score < state.Players[winner].Score {
					winner = p
				}
			} else if state.Players[p].Score > state.Players[winner].Score {
				winner = p
			}
		} else if len(state.Players[p].Hand) > len(state.Players[winner].Hand) {
			winner = p
		}
	}
	return int8(winner)
}

// setupDeck creates and shuffles a standard 52-card deck
func setupDeck(state *engine.GameState, seed uint64) {
	// Create standard 52-card deck
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			state.Deck = append(state.Deck, engine.Card{Rank: rank, Suit: suit})
		}
	}

	// Shuffle with seed
	state.ShuffleDeck(seed)
}

// selectGreedyMove picks the move that maximizes immediate score
func selectGreedyMove(state *engine.GameState, genome *engine.Genome, moves []engine.LegalMove) *engine.LegalMove {
	// Greedy heuristic: prefer moves that:
	// 1. Reduce hand size (get closer to winning)
	// 2. Play higher ranked cards (might matter for War-like games)

	bestMove := &moves[0]
	bestScore := scoreMove(state, &moves[0])

	for i := 1; i < len(moves); i++ {
		score := scoreMove(state, &moves[i])
		if score > bestScore {
			bestScore = score
			bestMove = &moves[i]
		}
	}

	return bestMove
}

// scoreMove assigns a heuristic value to a move
func scoreMove(state *engine.GameState, move *engine.LegalMove) float64 {
	score := 0.0

	// Prefer moves that reduce hand size
	if move.CardIndex >= 0 {
		score += 10.0
	}

	// Prefer playing higher ranked cards
	if move.CardIndex >= 0 && move.CardIndex < len(state.Players[state.CurrentPlayer].Hand) {
		card := state.Players[state.CurrentPlayer].Hand[move.CardIndex]
		score += float64(card.Rank)
	}

	return score
}

// aggregateResults computes summary statistics
func aggregateResults(results []GameResult) AggregatedStats {
	stats := AggregatedStats{
		TotalGames: uint32(len(results)),
	}

	turnCounts := make([]uint32, 0, len(results))
	totalDuration := uint64(0)
	totalLeadChanges := 0
	totalDecisiveTurn := 0
	totalClosestMargin := float32(0)
	completedGames := 0

	for _, result := range results {
		if result.Error != "" {
			stats.Errors++
			continue
		}

		switch result.WinnerID {
		case 0:
			stats.Player0Wins++
		case 1:
			stats.Player1Wins++
		default:
			stats.Draws++
		}

		turnCounts = append(turnCounts, result.TurnCount)
		totalDuration += result.DurationNs

		// Phase 1 instrumentation: aggregate metrics from each game
		stats.TotalDecisions += result.Metrics.TotalDecisions
		stats.TotalValidMoves += result.Metrics.TotalValidMoves
		stats.ForcedDecisions += result.Metrics.ForcedDecisions
		stats.TotalInteractions += result.Metrics.TotalInteractions
		stats.TotalActions += result.Metrics.TotalActions
		stats.MoveDisruptionEvents += result.Metrics.MoveDisruptionEvents
		stats.ContentionEvents += result.Metrics.ContentionEvents
		stats.ForcedResponseEvents += result.Metrics.ForcedResponseEvents
		stats.OpponentTurnCount += result.Metrics.OpponentTurnCount

		totalLeadChanges += result.Tension.LeadChanges
		totalDecisiveTurn += result.Tension.DecisiveTurn
		totalClosestMargin += result.Tension.ClosestMargin
		completedGames++
	}

	if completedGames > 0 {
		stats.AvgLeadChanges = float32(totalLeadChanges) / float32(completedGames)
		stats.AvgDecisiveTurn = float32(totalDecisiveTurn) / float32(completedGames)
		stats.AvgClosestMargin = totalClosestMargin / float32(completedGames)
	}

	// Calculate averages
	if len(turnCounts) > 0 {
		sum := uint64(0)
		for _, tc := range turnCounts {
			sum += uint64(tc)
		}
		stats.AvgTurns = float32(sum) / float32(len(turnCounts))

		// Median (simple sort-based approach)
		// For production, use quickselect
		stats.MedianTurns = median(turnCounts)
	}

	if stats.TotalGames > 0 {
		stats.AvgDurationNs = totalDuration / uint64(stats.TotalGames)
	}

	return stats
}

// median calculates the median of a slice
func median(values []uint32) uint32 {
	if len(values) == 0 {
		return 0
	}

	// Simple bubble sort (fine for small batches)
	sorted := make([]uint32, len(values))
	copy(sorted, values)

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i] > sorted[j] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
