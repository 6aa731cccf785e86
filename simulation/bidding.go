package simulation

import (
	"math/rand"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

// hasBiddingPhase reports whether genome declares a PhaseTypeBidding phase.
func hasBiddingPhase(genome *engine.Genome) bool {
	for _, phase := range genome.TurnPhases {
		if phase.PhaseType == engine.PhaseTypeBidding {
			return true
		}
	}
	return false
}

// getBiddingPhaseData returns the parsed bidding/contract-scoring config,
// or nil if the genome has no bidding phase.
func getBiddingPhaseData(genome *engine.Genome) *engine.BiddingPhaseData {
	for _, phase := range genome.TurnPhases {
		if phase.PhaseType == engine.PhaseTypeBidding {
			data, err := engine.ParseBiddingPhaseData(phase.Data)
			if err != nil {
				return nil
			}
			return data
		}
	}
	return nil
}

// selectGreedyBid estimates a bid from hand strength: count cards ranked
// queen or higher as likely trick winners, clamped to the phase's bounds.
func selectGreedyBid(state *engine.GameState, phase engine.BiddingPhase, playerIdx int) engine.Bid {
	highCards := 0
	for _, card := range state.Players[playerIdx].Hand {
		if card.Rank >= 10 { // Q, K, A
			highCards++
		}
	}

	value := highCards
	if value < phase.MinBid {
		value = phase.MinBid
	}
	maxBid := phase.MaxBid
	if handSize := len(state.Players[playerIdx].Hand); handSize < maxBid {
		maxBid = handSize
	}
	if value > maxBid {
		value = maxBid
	}

	return engine.Bid{Value: value}
}

// selectRandomBid picks uniformly among the legal bids for a player.
func selectRandomBid(state *engine.GameState, phase engine.BiddingPhase, playerIdx int, rng *rand.Rand) engine.Bid {
	handSize := len(state.Players[playerIdx].Hand)
	bids := engine.GenerateBidMoves(phase, handSize)
	if len(bids) == 0 {
		return engine.Bid{Value: phase.MinBid}
	}
	return bids[rng.Intn(len(bids))]
}

// runBiddingRound drives every player through one bid in turn order,
// starting from the dealer's left (player 0), applying each bid via
// engine.ApplyBid until state.BiddingComplete is set.
func runBiddingRound(state *engine.GameState, genome *engine.Genome, aiTypes []AIPlayerType) {
	data := getBiddingPhaseData(genome)
	if data == nil {
		return
	}

	if len(state.TeamScores) == 0 && state.NumPlayers == 4 {
		// Classic Spades-style partnership: seats across the table are
		// partners (0+2 vs 1+3).
		state.InitializeTeams(engine.ParseTeams([]byte{2, 2, 0, 2, 2, 1, 3}))
	}

	rng := rand.New(rand.NewSource(int64(state.TurnNumber) + 1))

	for p := 0; p < int(state.NumPlayers) && p < len(aiTypes); p++ {
		var bid engine.Bid
		switch aiTypes[p] {
		case RandomAI:
			bid = selectRandomBid(state, data.Phase, p, rng)
		default:
			bid = selectGreedyBid(state, data.Phase, p)
		}
		engine.ApplyBid(state, uint8(p), bid)
	}
}
