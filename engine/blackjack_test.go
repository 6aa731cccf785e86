package engine

import (
	"testing"
)

func TestCalculateBlackjackValue(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want int
	}{
		{"empty", nil, 0},
		{"number cards", []Card{{Rank: 2, Suit: 0}, {Rank: 7, Suit: 1}}, 13}, // 4 + 9
		{"face cards count ten", []Card{{Rank: 9, Suit: 0}, {Rank: 11, Suit: 1}}, 20},
		{"soft ace", []Card{{Rank: 12, Suit: 0}, {Rank: 4, Suit: 1}}, 17},          // A + 6
		{"ace demotes past 21", []Card{{Rank: 12, Suit: 0}, {Rank: 7, Suit: 1}, {Rank: 8, Suit: 2}}, 20}, // A + 9 + 10
		{"two aces", []Card{{Rank: 12, Suit: 0}, {Rank: 12, Suit: 1}}, 12},          // 11 + 1
		{"blackjack", []Card{{Rank: 12, Suit: 0}, {Rank: 10, Suit: 1}}, 21},        // A + Q
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateBlackjackValue(tt.hand); got != tt.want {
				t.Errorf("value = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindBestBlackjackWinner(t *testing.T) {
	s := NewGameState(3)
	s.NumPlayers = 3
	s.Players[0].Hand = []Card{{Rank: 9, Suit: 0}, {Rank: 9, Suit: 1}, {Rank: 9, Suit: 2}} // 30: bust
	s.Players[1].Hand = []Card{{Rank: 9, Suit: 0}, {Rank: 5, Suit: 1}}                     // 17
	s.Players[2].Hand = []Card{{Rank: 9, Suit: 0}, {Rank: 7, Suit: 1}}                     // 19

	if got := FindBestBlackjackWinner(s, 3); got != 2 {
		t.Errorf("best non-bust hand should win, got player %d", got)
	}

	// Folding the leader promotes the runner-up.
	s.Players[2].HasFolded = true
	if got := FindBestBlackjackWinner(s, 3); got != 1 {
		t.Errorf("folded players are out of the showdown, got %d", got)
	}

	// Everyone busted or out: nobody wins.
	s.Players[1].HasFolded = true
	if got := FindBestBlackjackWinner(s, 3); got != -1 {
		t.Errorf("all-bust table should return -1, got %d", got)
	}
}

func TestIsBlackjackGame(t *testing.T) {
	blackjack := &Genome{WinConditions: []WinCondition{{WinType: 1, Threshold: 21}}}
	if !IsBlackjackGame(blackjack) {
		t.Error("high_score at 21 is the blackjack signature")
	}

	hearts := &Genome{WinConditions: []WinCondition{{WinType: 4, Threshold: 100}}}
	plainRace := &Genome{WinConditions: []WinCondition{{WinType: 1, Threshold: 100}}}
	for _, g := range []*Genome{hearts, plainRace} {
		if IsBlackjackGame(g) {
			t.Errorf("non-21 genome misclassified: %+v", g.WinConditions)
		}
	}
}

func TestSelectBlackjackMoveBasicStrategy(t *testing.T) {
	moves := []LegalMove{
		{PhaseIndex: 0, CardIndex: MoveDraw, TargetLoc: LocationDeck},
		{PhaseIndex: 0, CardIndex: MoveDrawPass, TargetLoc: LocationDeck},
	}

	tests := []struct {
		name string
		hand []Card
		want int // index into moves
	}{
		{"hit at 12", []Card{{Rank: 3, Suit: 0}, {Rank: 5, Suit: 1}}, 0},
		{"hit at 16", []Card{{Rank: 9, Suit: 0}, {Rank: 4, Suit: 1}}, 0},
		{"stand at 17", []Card{{Rank: 9, Suit: 0}, {Rank: 5, Suit: 1}}, 1},
		{"stand at 20", []Card{{Rank: 9, Suit: 0}, {Rank: 9, Suit: 1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGameState(2)
			s.NumPlayers = 2
			s.Players[0].Hand = tt.hand
			s.CurrentPlayer = 0
			if got := SelectBlackjackMove(s, moves); got != tt.want {
				t.Errorf("move index = %d, want %d", got, tt.want)
			}
		})
	}

	if SelectBlackjackMove(NewGameState(2), nil) != -1 {
		t.Error("no moves should return -1")
	}
}

func TestEvaluatePointTotalWithCustomValues(t *testing.T) {
	eval := &HandEvaluation{
		Method:        EvalMethodPointTotal,
		TargetValue:   21,
		BustThreshold: 22,
		CardValues: []CardValue{
			{Rank: 12, Value: 11, AltValue: 1}, // ace high-rank encoding
			{Rank: 8, Value: 10},
		},
	}

	// Ace counts 11 while safe.
	if got := EvaluatePointTotal([]Card{{Rank: 12, Suit: 0}, {Rank: 8, Suit: 1}}, eval); got != 21 {
		t.Errorf("soft total = %d, want 21", got)
	}

	// Ace demotes to its alternate value rather than busting.
	hand := []Card{{Rank: 12, Suit: 0}, {Rank: 8, Suit: 1}, {Rank: 8, Suit: 2}}
	if got := EvaluatePointTotal(hand, eval); got != 21 {
		t.Errorf("demoted total = %d, want 21", got)
	}

	// Ranks without an entry fall back to standard counting.
	if got := EvaluatePointTotal([]Card{{Rank: 3, Suit: 0}}, eval); got != 5 {
		t.Errorf("fallback count = %d, want 5", got)
	}

	if got := EvaluatePointTotal(nil, eval); got != 0 {
		t.Errorf("empty hand = %d, want 0", got)
	}
	if got := EvaluatePointTotal([]Card{{Rank: 4, Suit: 0}}, nil); got != 0 {
		t.Errorf("nil evaluation = %d, want 0", got)
	}
}

func TestFindBestPointTotalWinner(t *testing.T) {
	genome := &Genome{
		HandEval: &HandEvaluation{
			Method:        EvalMethodPointTotal,
			BustThreshold: 21,
			CardValues:    []CardValue{{Rank: 12, Value: 11, AltValue: 1}},
		},
	}

	s := NewGameState(2)
	s.NumPlayers = 2
	s.Players[0].Hand = []Card{{Rank: 7, Suit: 0}, {Rank: 5, Suit: 1}} // 9 + 7 = 16
	s.Players[1].Hand = []Card{{Rank: 7, Suit: 0}, {Rank: 6, Suit: 1}} // 9 + 8 = 17

	if got := FindBestPointTotalWinner(s, genome); got != 1 {
		t.Errorf("higher safe total should win, got %d", got)
	}

	// Busting both players leaves no winner.
	s.Players[0].Hand = []Card{{Rank: 8, Suit: 0}, {Rank: 8, Suit: 1}, {Rank: 8, Suit: 2}}
	s.Players[1].Hand = []Card{{Rank: 8, Suit: 0}, {Rank: 8, Suit: 1}, {Rank: 7, Suit: 2}}
	if got := FindBestPointTotalWinner(s, genome); got != -1 {
		t.Errorf("all-bust should return -1, got %d", got)
	}
}
