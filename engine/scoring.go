package engine

// EvaluateContracts settles every team's bidding contract once the hand is
// played out: nil bids swing first, then the contract itself, then bag
// bookkeeping. Tricks are tallied from GameState.TricksWon by seat.
func EvaluateContracts(state *GameState, scoring *ContractScoring) {
	for teamIdx := range state.TeamScores {
		settleTeam(state, scoring, teamIdx)
	}
}

func settleTeam(state *GameState, scoring *ContractScoring, teamIdx int) {
	score := &state.TeamScores[teamIdx]
	tricksWon := int32(0)

	for _, seat := range getTeamPlayers(state, teamIdx) {
		tricks := uint8(0)
		if seat < len(state.TricksWon) {
			tricks = state.TricksWon[seat]
		}
		tricksWon += int32(tricks)

		if state.Players[seat].IsNilBid {
			// A kept nil pays its bonus; one trick breaks it.
			if tricks == 0 {
				*score += int32(scoring.NilBonus)
			} else {
				*score -= int32(scoring.NilPenalty)
			}
		}
	}

	contract := int32(state.TeamContracts[teamIdx])
	if tricksWon < contract {
		*score -= contract * int32(scoring.FailedContractPenalty)
		return
	}

	*score += contract * int32(scoring.PointsPerTrickBid)
	overtricks := tricksWon - contract
	*score += overtricks * int32(scoring.OvertrickPoints)

	// Overtricks accumulate as bags across hands; crossing the limit costs
	// the penalty and the excess carries forward.
	state.AccumulatedBags[teamIdx] += int8(overtricks)
	if state.AccumulatedBags[teamIdx] >= int8(scoring.BagLimit) {
		*score -= int32(scoring.BagPenalty)
		state.AccumulatedBags[teamIdx] -= int8(scoring.BagLimit)
	}
}

// getTeamPlayers returns the seats assigned to a team.
func getTeamPlayers(state *GameState, teamIdx int) []int {
	seats := []int{}
	for seat, team := range state.PlayerToTeam {
		if int(team) == teamIdx {
			seats = append(seats, seat)
		}
	}
	return seats
}
