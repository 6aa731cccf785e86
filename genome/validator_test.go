package genome

import (
	"testing"
)

// shedGame is a minimal structurally-sound genome the failure cases below
// perturb one field at a time.
func shedGame() *GameGenome {
	return &GameGenome{
		Name:  "shed",
		Setup: SetupRules{CardsPerPlayer: 7},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{Target: LocationDiscard, MinCards: 1, MaxCards: 1},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
	}
}

func fieldsOf(errs []ValidationError) map[string]bool {
	fields := make(map[string]bool, len(errs))
	for _, e := range errs {
		fields[e.Field] = true
	}
	return fields
}

func TestValidateAcceptsSoundGenomes(t *testing.T) {
	sound := map[string]*GameGenome{
		"shedding": shedGame(),
		"war": {
			Name:  "war",
			Setup: SetupRules{CardsPerPlayer: 26},
			TurnStructure: TurnStructure{
				Phases:      []Phase{&PlayPhase{Target: LocationTableau, MinCards: 1, MaxCards: 1}},
				TableauMode: TableauModeWar,
			},
			WinConditions: []WinCondition{{Type: WinTypeCaptureAll}},
		},
		"hearts": {
			Name:  "hearts",
			Setup: SetupRules{CardsPerPlayer: 13},
			TurnStructure: TurnStructure{
				Phases: []Phase{&TrickPhase{LeadSuitRequired: true, TrumpSuit: 255, HighCardWins: true}},
			},
			WinConditions: []WinCondition{{Type: WinTypeLowScore, Threshold: 100}},
			CardScoring: []CardScoringRule{
				{Suit: SuitHearts, Rank: RankAny, Points: 1, Trigger: TriggerTrickWin},
			},
		},
	}
	for name, g := range sound {
		if errs := ValidateGenome(g); len(errs) > 0 {
			t.Errorf("%s should validate cleanly, got %v", name, errs)
		}
	}
}

func TestValidateDeckBudget(t *testing.T) {
	g := shedGame()
	g.Setup.CardsPerPlayer = 30 // 60 for two players
	if !fieldsOf(ValidateGenome(g))["setup.cards_per_player"] {
		t.Error("oversubscribed deck should be flagged")
	}

	// The tableau deal counts against the same budget.
	g = shedGame()
	g.Setup.CardsPerPlayer = 25
	g.Setup.DealToTableau = 3 // 50 + 3 > 52
	if !fieldsOf(ValidateGenome(g))["setup.cards_per_player"] {
		t.Error("tableau deal should count against the deck budget")
	}
}

func TestValidateScoreWinNeedsAScoreSource(t *testing.T) {
	g := shedGame()
	g.WinConditions = []WinCondition{{Type: WinTypeHighScore, Threshold: 50}}
	if !fieldsOf(ValidateGenome(g))["win_conditions"] {
		t.Error("a score race with no score source should be flagged")
	}

	// Any of the three score sources satisfies the check.
	withScoring := shedGame()
	withScoring.WinConditions = []WinCondition{{Type: WinTypeHighScore, Threshold: 50}}
	withScoring.CardScoring = []CardScoringRule{{Suit: 255, Rank: 255, Points: 1, Trigger: TriggerPlay}}

	withContracts := shedGame()
	withContracts.WinConditions = []WinCondition{{Type: WinTypeFirstToScore, Threshold: 500}}
	withContracts.TurnStructure.Phases = []Phase{
		&BiddingPhase{MinBid: 1, MaxBid: 13},
		&TrickPhase{LeadSuitRequired: true, TrumpSuit: 255, HighCardWins: true},
	}

	withPointTotal := shedGame()
	withPointTotal.WinConditions = []WinCondition{{Type: WinTypeHighScore, Threshold: 21}}
	withPointTotal.HandEval = &HandEvaluation{Method: EvalMethodPointTotal, TargetValue: 21}

	for name, g := range map[string]*GameGenome{
		"card scoring": withScoring, "contracts": withContracts, "point total": withPointTotal,
	} {
		if fieldsOf(ValidateGenome(g))["win_conditions"] {
			t.Errorf("%s should satisfy the score-source check", name)
		}
	}
}

func TestValidateBestHandNeedsPatterns(t *testing.T) {
	g := shedGame()
	g.WinConditions = []WinCondition{{Type: WinTypeBestHand}}
	if !fieldsOf(ValidateGenome(g))["win_conditions"] {
		t.Error("best_hand without pattern evaluation should be flagged")
	}

	g.HandEval = &HandEvaluation{Method: EvalMethodPatternMatch, Patterns: []HandPattern{{Name: "pair"}}}
	if fieldsOf(ValidateGenome(g))["win_conditions"] {
		t.Error("best_hand with patterns should pass")
	}
}

func TestValidateBettingNeedsChips(t *testing.T) {
	g := shedGame()
	g.TurnStructure.Phases = append(g.TurnStructure.Phases, &BettingPhase{MinBet: 10, MaxRaises: 2})
	if !fieldsOf(ValidateGenome(g))["setup.starting_chips"] {
		t.Error("betting without chips should be flagged")
	}

	g.Setup.StartingChips = 200
	if fieldsOf(ValidateGenome(g))["setup.starting_chips"] {
		t.Error("funded betting should pass")
	}
}

func TestValidateCaptureWinsNeedACaptureMechanic(t *testing.T) {
	g := shedGame()
	g.WinConditions = []WinCondition{{Type: WinTypeCaptureAll}}
	if !fieldsOf(ValidateGenome(g))["turn_structure.tableau_mode"] {
		t.Error("capture win without a capture mechanic should be flagged")
	}

	// Trick-taking counts: won tricks are captures.
	g.TurnStructure.Phases = []Phase{
		&TrickPhase{LeadSuitRequired: true, TrumpSuit: 255, HighCardWins: true},
	}
	g.WinConditions = []WinCondition{{Type: WinTypeMostCaptured}}
	if fieldsOf(ValidateGenome(g))["turn_structure.tableau_mode"] {
		t.Error("trick games capture cards; should pass")
	}
}

func TestValidatePatternArithmetic(t *testing.T) {
	g := shedGame()
	g.HandEval = &HandEvaluation{
		Method: EvalMethodPatternMatch,
		Patterns: []HandPattern{
			{Name: "impossible", RequiredCount: 5, SameRankGroups: []uint8{4, 4}},
		},
	}
	if !fieldsOf(ValidateGenome(g))["hand_evaluation.patterns"] {
		t.Error("groups summing past the card count should be flagged")
	}
}

func TestValidateNeedsCardPlay(t *testing.T) {
	g := shedGame()
	g.Setup.StartingChips = 1000
	g.TurnStructure.Phases = []Phase{&BettingPhase{MinBet: 10, MaxRaises: 2}}
	if !fieldsOf(ValidateGenome(g))["turn_structure.phases"] {
		t.Error("betting-only without a showdown should be flagged")
	}

	// A betting game with a hand evaluation is a showdown game.
	g.HandEval = &HandEvaluation{Method: EvalMethodPatternMatch, Patterns: []HandPattern{{Name: "pair"}}}
	g.WinConditions = []WinCondition{{Type: WinTypeBestHand}}
	if fieldsOf(ValidateGenome(g))["turn_structure.phases"] {
		t.Error("showdown games should pass the card-play check")
	}
}

func TestValidateBetSizing(t *testing.T) {
	g := shedGame()
	g.Setup.StartingChips = 100
	g.TurnStructure.Phases = append(g.TurnStructure.Phases, &BettingPhase{MinBet: 60, MaxRaises: 2})
	if !fieldsOf(ValidateGenome(g))["betting_phase.min_bet"] {
		t.Error("a minimum bet above half the stack should be flagged")
	}
}

func TestValidateTeams(t *testing.T) {
	partnership := func() *GameGenome {
		g := shedGame()
		g.Setup.CardsPerPlayer = 13
		g.Teams = &TeamConfig{Enabled: true, Teams: [][]int{{0, 2}, {1, 3}}}
		return g
	}

	if errs := ValidateGenome(partnership()); len(errs) > 0 {
		t.Errorf("a 4-player partnership should validate, got %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(*GameGenome)
	}{
		{"single team", func(g *GameGenome) { g.Teams.Teams = [][]int{{0, 1, 2, 3}} }},
		{"empty team", func(g *GameGenome) { g.Teams.Teams = [][]int{{0, 1, 2, 3}, {}} }},
		{"duplicate player", func(g *GameGenome) { g.Teams.Teams = [][]int{{0, 2}, {0, 1, 3}} }},
		{"unassigned player", func(g *GameGenome) { g.Teams.Teams = [][]int{{0, 3}, {1}} }},
		{"negative index", func(g *GameGenome) { g.Teams.Teams = [][]int{{-1, 2}, {1, 3}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := partnership()
			tt.mutate(g)
			if !fieldsOf(ValidateGenome(g))["teams"] {
				t.Error("expected a teams error")
			}
		})
	}
}

func TestValidateBiddingNeedsTricks(t *testing.T) {
	g := shedGame()
	g.TurnStructure.Phases = []Phase{
		&BiddingPhase{MinBid: 1, MaxBid: 13},
		&PlayPhase{Target: LocationDiscard, MinCards: 1, MaxCards: 1},
	}
	if !fieldsOf(ValidateGenome(g))["turn_structure.phases"] {
		t.Error("bidding without tricks should be flagged")
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(shedGame()) {
		t.Error("the base fixture should be valid")
	}

	broken := shedGame()
	broken.TurnStructure.Phases = nil
	if IsValid(broken) {
		t.Error("a phaseless genome should be invalid")
	}
}
