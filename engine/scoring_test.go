package engine

import (
	"testing"
)

func contractState() *GameState {
	s := NewGameState(4)
	s.NumPlayers = 4
	s.InitializeTeams([]Team{{0, 2}, {1, 3}})
	return s
}

func TestEvaluateContractsBagAccumulation(t *testing.T) {
	scoring := &ContractScoring{
		PointsPerTrickBid: 10,
		OvertrickPoints:   1,
		BagLimit:          3,
		BagPenalty:        100,
	}

	s := contractState()
	s.TeamContracts = []int8{2, 2}
	s.AccumulatedBags = []int8{2, 0} // team 0 is one bag from the penalty
	s.TricksWon = []uint8{2, 1, 2, 1} // team 0: 4 tricks on a 2-bid

	EvaluateContracts(s, scoring)

	// Team 0: 20 for the contract, 2 for overtricks, then the bag penalty
	// lands (2 carried + 2 new crosses the limit of 3).
	if s.TeamScores[0] != 20+2-100 {
		t.Errorf("team 0 score = %d, want %d", s.TeamScores[0], 20+2-100)
	}
	// Bags wrap past the limit rather than resetting to zero.
	if s.AccumulatedBags[0] != 1 {
		t.Errorf("team 0 bags should carry 1 past the limit, got %d", s.AccumulatedBags[0])
	}
	// Team 1 made its 2-bid exactly: no overtricks, no bags.
	if s.TeamScores[1] != 20 {
		t.Errorf("team 1 score = %d, want 20", s.TeamScores[1])
	}
	if s.AccumulatedBags[1] != 0 {
		t.Errorf("team 1 bags = %d, want 0", s.AccumulatedBags[1])
	}
}

func TestEvaluateContractsNoTeamsIsANoOp(t *testing.T) {
	s := NewGameState(2)
	s.NumPlayers = 2

	EvaluateContracts(s, &ContractScoring{PointsPerTrickBid: 10})

	if len(s.TeamScores) != 0 {
		t.Errorf("no-team state should stay team-free, got %v", s.TeamScores)
	}
}

func TestGetTeamPlayers(t *testing.T) {
	s := contractState()

	if got := getTeamPlayers(s, 0); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("team 0 should be seats {0,2}, got %v", got)
	}
	if got := getTeamPlayers(s, 1); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("team 1 should be seats {1,3}, got %v", got)
	}
	if got := getTeamPlayers(s, 9); len(got) != 0 {
		t.Errorf("unknown team should have no players, got %v", got)
	}
}
