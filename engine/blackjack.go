package engine

// CalculateBlackjackValue calculates the value of a blackjack hand
// Returns the best value (using Ace as 11 if it doesn't bust, otherwise 1)
// Card.Rank encoding: 0-8=2-10, 9-11=J,Q,K, 12=Ace
func CalculateBlackjackValue(cards []Card) int {
	if len(cards) == 0 {
		return 0
	}

	total := 0
	aceCount := 0

	for _, card := range cards {
		switch {
		case card.Rank == 12: // Ace
			aceCount++
			total += 11 // Initially count Ace as 11
		case card.Rank >= 9: // J, Q, K (ranks 9, 10, 11)
			total += 10
		default: // 2-10 (ranks 0-8)
			total += int(card.Rank) + 2 // rank 0 = 2, rank 8 = 10
		}
	}

	// Convert Aces from 11 to 1 as needed to avoid bust
	for aceCount > 0 && total > 21 {
		total -= 10 // Change an Ace from 11 to 1
		aceCount--
	}

	return total
}

// FindBestBlackjackWinner finds the player with the best blackjack hand
// Returns the player ID, or -1 when no player has a non-bust hand still in
// play; ties go to the lowest-numbered player
// In blackjack, closest to 21 without going over wins
// Bust (over 21) loses to any non-bust hand
func FindBestBlackjackWinner(state *GameState, numPlayers int) int8 {
	if numPlayers == 0 {
		numPlayers = 2
	}

	bestPlayer := int8(-1)
	bestValue := 0

	for playerID := 0; playerID < numPlayers && playerID < len(state.Players); playerID++ {
		// Skip folded players
		if state.Players[playerID].HasFolded {
			continue
		}

		hand := state.Players[playerID].Hand
		if len(hand) == 0 {
			continue // Skip players with no cards
		}

		value := CalculateBlackjackValue(hand)

		// Skip busted hands
		if value > 21 {
			continue
		}

		if value > bestValue {
			bestValue = value
			bestPlayer = int8(playerID)
		} else if value == bestValue && bestPlayer >= 0 {
			// Tie - for simplicity, first player wins ties
			// In real blackjack, would be a push
		}
	}

	return bestPlayer
}

// IsBlackjackGame checks if the genome uses blackjack-style scoring
// (high_score win condition with threshold around 21)
func IsBlackjackGame(genome *Genome) bool {
	for _, wc := range genome.WinConditions {
		if wc.WinType == 1 { // high_score
			// Threshold of 21 strongly suggests blackjack
			if wc.Threshold == 21 {
				return true
			}
		}
	}
	return false
}

// SelectBlackjackMove implements basic blackjack strategy
// Hit on < 17, stand on >= 17 (or if already busted)
// Returns the index into the moves slice
func SelectBlackjackMove(state *GameState, moves []LegalMove) int {
	if len(moves) == 0 {
		return -1
	}

	// Calculate current hand value
	hand := state.Players[state.CurrentPlayer].Hand
	handValue := CalculateBlackjackValue(hand)

	// Find hit and stand moves
	hitIdx := -1
	standIdx := -1
	for i, move := range moves {
		if move.CardIndex == MoveDraw { // -1 = hit
			hitIdx = i
		} else if move.CardIndex == MoveDrawPass { // -3 = stand
			standIdx = i
		}
	}

	// Basic strategy: hit on < 17, stand on >= 17
	// Also stand if busted (>=22) to avoid making it worse
	if handValue >= 17 && standIdx >= 0 {
		return standIdx
	}
	if handValue < 17 && hitIdx >= 0 {
		return hitIdx
	}

	// Fallback: return first available move
	return 0
}

// IsBlackjackDrawMove checks if a move is a hit/stand from blackjack
func IsBlackjackDrawMove(move *LegalMove) bool {
	return move.CardIndex == MoveDraw || move.CardIndex == MoveDrawPass
}

// EvaluatePointTotal scores a hand per a genome's POINT_TOTAL hand
// evaluation (HandEval method 2): each card's rank is looked up against
// eval.CardValues for its point value, falling back to standard playing-card
// counting (two through ten at face value, face cards 10, ace 1) for ranks the genome doesn't
// override. Ranks with a nonzero AltValue (e.g. Ace, worth 11 or 1) count
// at their primary Value until the total would bust, then drop to AltValue
// one card at a time.
func EvaluatePointTotal(cards []Card, eval *HandEvaluation) int {
	if eval == nil || len(cards) == 0 {
		return 0
	}

	lookup := make(map[uint8]CardValue, len(eval.CardValues))
	for _, cv := range eval.CardValues {
		lookup[cv.Rank] = cv
	}

	total := 0
	altCards := 0
	for _, card := range cards {
		if cv, ok := lookup[card.Rank]; ok {
			total += int(cv.Value)
			if cv.AltValue > 0 {
				altCards++
			}
			continue
		}
		switch {
		case card.Rank == 12:
			total++
		case card.Rank >= 9:
			total += 10
		default:
			total += int(card.Rank) + 2
		}
	}

	bust := int(eval.BustThreshold)
	if bust == 0 {
		bust = 21
	}
	for altCards > 0 && total > bust {
		for _, cv := range eval.CardValues {
			if cv.AltValue > 0 {
				total -= int(cv.Value) - int(cv.AltValue)
				break
			}
		}
		altCards--
	}
	return total
}

// defaultBlackjackEval is the evaluation used when a genome declares
// POINT_TOTAL scoring without supplying its own card values: standard
// blackjack, Ace worth 11 or 1, bust above 21.
var defaultBlackjackEval = &HandEvaluation{
	CardValues:    []CardValue{{Rank: 12, Value: 11, AltValue: 1}},
	BustThreshold: 21,
	TargetValue:   21,
}

// FindBestPointTotalWinner resolves a POINT_TOTAL hand evaluation across
// every player still in the hand (not folded, not empty-handed), returning
// whoever is closest to the genome's bust threshold without going over, or
// -1 if everyone busted.
func FindBestPointTotalWinner(state *GameState, genome *Genome) int8 {
	eval := genome.HandEval
	if eval == nil || eval.Method != EvalMethodPointTotal {
		eval = defaultBlackjackEval
	}
	bust := int(eval.BustThreshold)
	if bust == 0 {
		bust = 21
	}

	bestPlayer := int8(-1)
	bestValue := -1
	for playerID := 0; playerID < int(state.NumPlayers) && playerID < len(state.Players); playerID++ {
		player := &state.Players[playerID]
		if player.HasFolded || len(player.Hand) == 0 {
			continue
		}
		value := EvaluatePointTotal(player.Hand, eval)
		if value > bust {
			continue
		}
		if value > bestValue {
			bestValue = value
			bestPlayer = int8(playerID)
		}
	}
	return bestPlayer
}
