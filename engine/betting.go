package engine

// BettingAction is one poker-style action in a betting round.
type BettingAction int

const (
	BettingCheck BettingAction = iota
	BettingBet
	BettingCall
	BettingRaise
	BettingAllIn
	BettingFold
)

// Greedy betting thresholds on the 0..1 hand-strength scale.
const (
	strongHandThreshold = 0.7
	mediumHandThreshold = 0.3
)

// GenerateBettingMoves enumerates the actions playerID may take against the
// current bet. A player who folded, is all-in, or is out of chips has no
// actions. Facing no bet: check, plus bet (or all-in when the minimum is
// out of reach). Facing a bet: call/raise when affordable, all-in when the
// call itself is not, and fold always.
func GenerateBettingMoves(gs *GameState, phase *BettingPhaseData, playerID int) []BettingAction {
	player := &gs.Players[playerID]
	if player.HasFolded || player.IsAllIn || player.Chips <= 0 {
		return nil
	}

	moves := make([]BettingAction, 0, 4)
	owed := gs.CurrentBet - player.CurrentBet

	if owed == 0 {
		moves = append(moves, BettingCheck)
		switch {
		case player.Chips >= int64(phase.MinBet):
			moves = append(moves, BettingBet)
		case player.Chips > 0:
			moves = append(moves, BettingAllIn)
		}
		return moves
	}

	if player.Chips >= owed {
		moves = append(moves, BettingCall)
		canRaise := gs.RaiseCount < phase.MaxRaises &&
			player.Chips >= owed+int64(phase.MinBet)
		if canRaise {
			moves = append(moves, BettingRaise)
		}
	} else {
		moves = append(moves, BettingAllIn)
	}
	return append(moves, BettingFold)
}

// ApplyBettingAction commits an action to the state. Chips only ever move
// between a player's stack and the pot, so the chip total is conserved by
// construction.
func ApplyBettingAction(gs *GameState, phase *BettingPhaseData, playerID int, action BettingAction) {
	player := &gs.Players[playerID]

	commit := func(amount int64) {
		player.Chips -= amount
		player.CurrentBet += amount
		gs.Pot += amount
	}

	switch action {
	case BettingCheck:

	case BettingBet:
		commit(int64(phase.MinBet))
		gs.CurrentBet = player.CurrentBet

	case BettingCall:
		commit(gs.CurrentBet - player.CurrentBet)

	case BettingRaise:
		owed := gs.CurrentBet - player.CurrentBet
		commit(owed + int64(phase.MinBet))
		gs.CurrentBet = player.CurrentBet
		gs.RaiseCount++

	case BettingAllIn:
		commit(player.Chips)
		player.IsAllIn = true
		if player.CurrentBet > gs.CurrentBet {
			gs.CurrentBet = player.CurrentBet
		}

	case BettingFold:
		player.HasFolded = true
	}
}

// CountActivePlayers counts players still contesting the pot.
func CountActivePlayers(gs *GameState) int {
	n := 0
	for i := range gs.Players {
		if !gs.Players[i].HasFolded {
			n++
		}
	}
	return n
}

// CountActingPlayers counts players who can still make a betting decision:
// in the hand, not all-in, and holding chips.
func CountActingPlayers(gs *GameState) int {
	n := 0
	for i := range gs.Players {
		p := &gs.Players[i]
		if !p.HasFolded && !p.IsAllIn && p.Chips > 0 {
			n++
		}
	}
	return n
}

// AllBetsMatched reports whether every player still able to act has put in
// the current bet. Folded and all-in players are excused.
func AllBetsMatched(gs *GameState) bool {
	for i := range gs.Players {
		p := &gs.Players[i]
		if !p.HasFolded && !p.IsAllIn && p.CurrentBet != gs.CurrentBet {
			return false
		}
	}
	return true
}

// ResolveShowdown returns the seats still eligible for the pot. With one
// survivor the hand is over; with several the caller compares hands.
func ResolveShowdown(gs *GameState) []int {
	eligible := []int{}
	for i := range gs.Players {
		if !gs.Players[i].HasFolded {
			eligible = append(eligible, i)
		}
	}
	return eligible
}

// AwardPot splits the pot evenly across winnerIDs; an indivisible remainder
// goes to the first listed winner so no chip is ever lost.
func AwardPot(gs *GameState, winnerIDs []int) {
	if len(winnerIDs) == 0 {
		return
	}

	share := gs.Pot / int64(len(winnerIDs))
	remainder := gs.Pot % int64(len(winnerIDs))
	for _, id := range winnerIDs {
		gs.Players[id].Chips += share
	}
	gs.Players[winnerIDs[0]].Chips += remainder
	gs.Pot = 0
}

// SelectRandomBettingAction picks uniformly among moves; folding is the
// fallback when there is nothing to pick from.
func SelectRandomBettingAction(moves []BettingAction, rngIntn func(n int) int) BettingAction {
	if len(moves) == 0 {
		return BettingFold
	}
	return moves[rngIntn(len(moves))]
}

// SelectGreedyBettingAction maps hand strength to aggression: strong hands
// push (raise, then bet, then all-in), medium hands keep pace (call, then
// check), weak hands check for free or fold.
func SelectGreedyBettingAction(gs *GameState, moves []BettingAction, handStrength float64) BettingAction {
	offered := make(map[BettingAction]bool, len(moves))
	for _, m := range moves {
		offered[m] = true
	}

	var preference []BettingAction
	switch {
	case handStrength > strongHandThreshold:
		preference = []BettingAction{BettingRaise, BettingBet, BettingAllIn, BettingCall, BettingCheck}
	case handStrength > mediumHandThreshold:
		preference = []BettingAction{BettingCall, BettingCheck}
	default:
		preference = []BettingAction{BettingCheck}
	}

	for _, want := range preference {
		if offered[want] {
			return want
		}
	}
	return BettingFold
}

// EvaluateHandStrength scores a hand on [0, 1] from two cheap signals: the
// largest same-rank group (pair/trips/quads) and the highest card, ace
// high. It is a betting heuristic, not a full poker ranking.
func EvaluateHandStrength(hand []Card) float64 {
	if len(hand) == 0 {
		return 0
	}

	counts := [13]int{}
	for _, card := range hand {
		counts[card.Rank]++
	}

	largestGroup := 0
	highCard := 0
	for rank, n := range counts {
		if n == 0 {
			continue
		}
		if n > largestGroup {
			largestGroup = n
		}
		effective := rank + 1 // rank 12 (ace) plays high

		if effective > highCard {
			highCard = effective
		}
	}

	score := float64(largestGroup-1)*0.2 + float64(highCard)/13.0*0.4
	if score > 1 {
		score = 1
	}
	return score
}
