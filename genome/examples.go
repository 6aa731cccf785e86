package genome

// Suit values as dealt by the engine (color = suit / 2: hearts and diamonds
// red, clubs and spades black).
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
	SuitAny      uint8 = 255
)

// Rank values, 0-based from two up to ace.
const (
	RankTwo   uint8 = 0
	RankThree uint8 = 1
	RankFour  uint8 = 2
	RankFive  uint8 = 3
	RankSix   uint8 = 4
	RankSeven uint8 = 5
	RankEight uint8 = 6
	RankNine  uint8 = 7
	RankTen   uint8 = 8
	RankJack  uint8 = 9
	RankQueen uint8 = 10
	RankKing  uint8 = 11
	RankAce   uint8 = 12
	RankAny   uint8 = 255
)

const noSuit uint8 = 255

// The seed genomes below are hand-written renditions of real card games.
// They anchor the initial population and double as test fixtures: each one
// exercises a different slice of the phase/effect/scoring vocabulary.

// spadesBidding is the contract-bidding configuration shared by the Spades
// variants: 10 per bid trick, 1 per bag, 100-point nil swing, 100-point
// penalty at ten bags.
func spadesBidding() *BiddingPhase {
	return &BiddingPhase{
		MinBid:                1,
		MaxBid:                13,
		AllowNil:              true,
		PointsPerTrickBid:     10,
		OvertrickPoints:       1,
		FailedContractPenalty: 10,
		NilBonus:              100,
		NilPenalty:            100,
		BagLimit:              10,
		BagPenalty:            100,
	}
}

// pokerRankings is the standard ten-category poker ladder used by the
// showdown games.
func pokerRankings() []HandPattern {
	return []HandPattern{
		{Name: "Royal Flush", Priority: 100, RequiredCount: 5, SameSuitCount: 5, SequenceLength: 5,
			RequiredRanks: []uint8{RankTen, RankJack, RankQueen, RankKing, RankAce}},
		{Name: "Straight Flush", Priority: 90, RequiredCount: 5, SameSuitCount: 5, SequenceLength: 5},
		{Name: "Four of a Kind", Priority: 80, RequiredCount: 5, SameRankGroups: []uint8{4}},
		{Name: "Full House", Priority: 70, RequiredCount: 5, SameRankGroups: []uint8{3, 2}},
		{Name: "Flush", Priority: 60, RequiredCount: 5, SameSuitCount: 5},
		{Name: "Straight", Priority: 50, RequiredCount: 5, SequenceLength: 5, SequenceWrap: true},
		{Name: "Three of a Kind", Priority: 40, RequiredCount: 5, SameRankGroups: []uint8{3}},
		{Name: "Two Pair", Priority: 30, RequiredCount: 5, SameRankGroups: []uint8{2, 2}},
		{Name: "One Pair", Priority: 20, RequiredCount: 5, SameRankGroups: []uint8{2}},
		{Name: "High Card", Priority: 10, RequiredCount: 5},
	}
}

// blackjackValues assigns every rank its 21-count, ace soft-counting as 1
// or 11.
func blackjackValues() []CardValue {
	values := make([]CardValue, 0, 13)
	values = append(values, CardValue{Rank: RankAce, Value: 1, AltValue: 11})
	for rank := RankTwo; rank <= RankTen; rank++ {
		values = append(values, CardValue{Rank: rank, Value: rank + 2})
	}
	for _, face := range []uint8{RankJack, RankQueen, RankKing} {
		values = append(values, CardValue{Rank: face, Value: 10})
	}
	return values
}

// CreateWarGenome: the zero-decision baseline. Flip, higher card takes
// both, hold everything to win.
func CreateWarGenome() *GameGenome {
	return &GameGenome{
		Name:  "War",
		Setup: SetupRules{CardsPerPlayer: 26},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{Target: LocationTableau, MinCards: 1, MaxCards: 1},
			},
			MaxTurns:    1000,
			TableauMode: TableauModeWar,
		},
		WinConditions: []WinCondition{{Type: WinTypeCaptureAll}},
	}
}

// CreateBettingWarGenome: War with a betting round in front of every flip.
func CreateBettingWarGenome() *GameGenome {
	return &GameGenome{
		Name:  "Betting War",
		Setup: SetupRules{CardsPerPlayer: 26, StartingChips: 500},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{MinBet: 10, MaxRaises: 2},
				&PlayPhase{Target: LocationTableau, MinCards: 1, MaxCards: 1},
			},
			MaxTurns:    1000,
			TableauMode: TableauModeWar,
		},
		WinConditions: []WinCondition{{Type: WinTypeCaptureAll}},
		HandEval:      &HandEvaluation{Method: EvalMethodHighCard},
	}
}

// CreateHeartsGenome: follow suit, hearts blocked until broken, every
// heart one point and the black queen thirteen, low score wins.
func CreateHeartsGenome() *GameGenome {
	return &GameGenome{
		Name:  "Hearts",
		Setup: SetupRules{CardsPerPlayer: 13},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{
					LeadSuitRequired: true,
					TrumpSuit:        noSuit,
					HighCardWins:     true,
					BreakingSuit:     SuitHearts,
				},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeLowScore, Threshold: 100},
			{Type: WinTypeAllHandsEmpty},
		},
		CardScoring: []CardScoringRule{
			{Suit: SuitHearts, Rank: RankAny, Points: 1, Trigger: TriggerTrickWin},
			{Suit: SuitSpades, Rank: RankQueen, Points: 13, Trigger: TriggerTrickWin},
		},
	}
}

// CreateScotchWhistGenome: trump tricks, most cards captured wins.
func CreateScotchWhistGenome() *GameGenome {
	return &GameGenome{
		Name:  "Scotch Whist",
		Setup: SetupRules{CardsPerPlayer: 13},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{LeadSuitRequired: true, TrumpSuit: SuitSpades, HighCardWins: true},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeMostCaptured},
			{Type: WinTypeAllHandsEmpty},
		},
	}
}

// CreateKnockoutWhistGenome: short-handed whist, hearts trump.
func CreateKnockoutWhistGenome() *GameGenome {
	return &GameGenome{
		Name:  "Knock-Out Whist",
		Setup: SetupRules{CardsPerPlayer: 7},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{LeadSuitRequired: true, TrumpSuit: SuitHearts, HighCardWins: true},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeMostCaptured},
			{Type: WinTypeAllHandsEmpty},
		},
	}
}

// CreateSpadesGenome: contract bidding then spade-trump tricks, race to
// 500 points.
func CreateSpadesGenome() *GameGenome {
	return &GameGenome{
		Name:  "Spades",
		Setup: SetupRules{CardsPerPlayer: 13},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				spadesBidding(),
				&TrickPhase{
					LeadSuitRequired: true,
					TrumpSuit:        SuitSpades,
					HighCardWins:     true,
					BreakingSuit:     SuitSpades,
				},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{{Type: WinTypeFirstToScore, Threshold: 500}},
	}
}

// CreatePartnershipSpadesGenome: Spades with the classic across-the-table
// partnership, seats 0+2 against 1+3.
func CreatePartnershipSpadesGenome() *GameGenome {
	g := CreateSpadesGenome()
	g.Name = "Partnership Spades"
	g.Teams = &TeamConfig{
		Enabled: true,
		Teams:   [][]int{{0, 2}, {1, 3}},
	}
	return g
}

// CreateCrazyEightsGenome: match the discard's suit or rank, eights wild,
// shed everything to win.
func CreateCrazyEightsGenome() *GameGenome {
	return &GameGenome{
		Name:  "Crazy Eights",
		Setup: SetupRules{CardsPerPlayer: 10, DealToTableau: 1},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationDeck, Count: 1},
				&PlayPhase{
					Target:       LocationDiscard,
					MinCards:     1,
					MaxCards:     4,
					Mandatory:    true,
					PassIfUnable: true,
				},
			},
			MaxTurns: 500,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
		Effects: []SpecialEffect{
			{TriggerRank: RankEight, Effect: EffectWild},
		},
	}
}

// CreateOldMaidGenome: draw from the opponent, shed pairs, don't be left
// holding the odd card.
func CreateOldMaidGenome() *GameGenome {
	return &GameGenome{
		Name:  "Old Maid",
		Setup: SetupRules{CardsPerPlayer: 13, DealToTableau: 1},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationOpponentHand, Count: 1, Mandatory: true},
				&DiscardPhase{Target: LocationDiscard, Count: 2},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
	}
}

// CreatePresidentGenome: climbing game, each play must beat the last.
func CreatePresidentGenome() *GameGenome {
	return &GameGenome{
		Name:  "President",
		Setup: SetupRules{CardsPerPlayer: 13},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationTableau,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    true,
					PassIfUnable: true,
					ValidPlayCondition: &Condition{
						OpCode: 14, // check_card_beats_top
						RefLoc: 2,  // reference: last played card
					},
				},
			},
			MaxTurns: 300,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
	}
}

// CreateFanTanGenome: build suit sequences outward on the tableau.
func CreateFanTanGenome() *GameGenome {
	return &GameGenome{
		Name:  "Fan Tan",
		Setup: SetupRules{CardsPerPlayer: 10},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationTableau,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    true,
					PassIfUnable: true,
				},
				&DrawPhase{Source: LocationDeck, Count: 1},
			},
			MaxTurns:          150,
			TableauMode:       TableauModeSequence,
			SequenceDirection: SequenceBoth,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
	}
}

// CreateUnoStyleGenome: shedding with punish cards - twos draw two, jacks
// skip, queens reverse.
func CreateUnoStyleGenome() *GameGenome {
	return &GameGenome{
		Name:  "Uno Style",
		Setup: SetupRules{CardsPerPlayer: 7, DealToTableau: 1},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationDiscard,
					MinCards:     1,
					MaxCards:     1,
					PassIfUnable: true,
				},
				&DrawPhase{Source: LocationDeck, Count: 1},
			},
			MaxTurns: 500,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
		Effects: []SpecialEffect{
			{TriggerRank: RankTwo, Effect: EffectDrawTwo, Target: 0, Value: 2},
			{TriggerRank: RankJack, Effect: EffectSkipNext, Target: 0, Value: 1},
			{TriggerRank: RankQueen, Effect: EffectReverse, Target: 2, Value: 1},
		},
	}
}

// CreateGinRummyGenome: draw, meld, discard.
func CreateGinRummyGenome() *GameGenome {
	return &GameGenome{
		Name:  "Gin Rummy",
		Setup: SetupRules{CardsPerPlayer: 10, DealToTableau: 1},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationDeck, Count: 1, Mandatory: true},
				&PlayPhase{Target: LocationTableau, MinCards: 0, MaxCards: 10},
				&DiscardPhase{Target: LocationDiscard, Count: 1, Mandatory: true},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
	}
}

// CreateGoFishGenome: collect and lay down rank sets; each completed set
// scores its cards.
func CreateGoFishGenome() *GameGenome {
	return &GameGenome{
		Name:  "Go Fish",
		Setup: SetupRules{CardsPerPlayer: 10},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationDeck, Count: 1, Mandatory: true},
				&PlayPhase{Target: LocationTableau, MinCards: 2, MaxCards: 4},
				&PlayPhase{Target: LocationDiscard, MinCards: 4, MaxCards: 4},
				&DiscardPhase{Target: LocationDiscard, Count: 1},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeHighScore, Threshold: 1},
			{Type: WinTypeEmptyHand},
		},
		CardScoring: []CardScoringRule{
			{Suit: SuitAny, Rank: RankAny, Points: 1, Trigger: TriggerSetComplete},
		},
	}
}

// CreateSimplePokerGenome: deal five, one betting round, showdown.
func CreateSimplePokerGenome() *GameGenome {
	return &GameGenome{
		Name:  "Simple Poker",
		Setup: SetupRules{CardsPerPlayer: 5, StartingChips: 1000},
		TurnStructure: TurnStructure{
			Phases:   []Phase{&BettingPhase{MinBet: 10, MaxRaises: 3}},
			MaxTurns: 10,
		},
		WinConditions: []WinCondition{{Type: WinTypeBestHand}},
		HandEval: &HandEvaluation{
			Method:   EvalMethodPatternMatch,
			Patterns: pokerRankings(),
		},
	}
}

// CreateCheatGenome: claim ranks face down, challenge at your peril.
func CreateCheatGenome() *GameGenome {
	return &GameGenome{
		Name:  "Cheat",
		Setup: SetupRules{CardsPerPlayer: 26},
		TurnStructure: TurnStructure{
			Phases:   []Phase{&ClaimPhase{}},
			MaxTurns: 2000,
		},
		WinConditions: []WinCondition{{Type: WinTypeEmptyHand}},
	}
}

// CreateScopaGenome: capture tableau cards by rank match; redraw three
// whenever the hand empties.
func CreateScopaGenome() *GameGenome {
	return &GameGenome{
		Name:  "Scopa",
		Setup: SetupRules{CardsPerPlayer: 3, DealToTableau: 4},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{Target: LocationTableau, MinCards: 1, MaxCards: 1},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     3,
					Mandatory: true,
					Condition: &Condition{
						OpCode:   0, // check_hand_size
						Operator: OperatorEQ,
						Value:    0,
					},
				},
			},
			MaxTurns:    100,
			TableauMode: TableauModeMatchRank,
		},
		WinConditions: []WinCondition{{Type: WinTypeMostCaptured}},
	}
}

// CreateDrawPokerGenome: bet, break your hand, draw back to five, showdown.
func CreateDrawPokerGenome() *GameGenome {
	return &GameGenome{
		Name:  "Draw Poker",
		Setup: SetupRules{CardsPerPlayer: 5, StartingChips: 1000},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{MinBet: 20, MaxRaises: 3},
				&DiscardPhase{Target: LocationDiscard, Count: 3},
				&DrawPhase{
					Source: LocationDeck,
					Count:  3,
					Condition: &Condition{
						OpCode:   0, // check_hand_size
						Operator: OperatorLT,
						Value:    5,
					},
				},
			},
			MaxTurns: 20,
		},
		WinConditions: []WinCondition{{Type: WinTypeBestHand}},
		HandEval: &HandEvaluation{
			Method:   EvalMethodPatternMatch,
			Patterns: pokerRankings(),
		},
	}
}

// CreateBlackjackGenome: hit toward 21, stand, soft aces, five-card cap.
func CreateBlackjackGenome() *GameGenome {
	return &GameGenome{
		Name:  "Blackjack",
		Setup: SetupRules{CardsPerPlayer: 2, StartingChips: 500},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{MinBet: 25, MaxRaises: 1},
				&DrawPhase{
					Source: LocationDeck,
					Count:  1,
					Condition: &Condition{
						OpCode:   0, // check_hand_size
						Operator: OperatorLT,
						Value:    5, // five-card charlie
					},
				},
			},
			MaxTurns: 20,
		},
		WinConditions: []WinCondition{{Type: WinTypeHighScore, Threshold: 21}},
		HandEval: &HandEvaluation{
			Method:        EvalMethodPointTotal,
			TargetValue:   21,
			BustThreshold: 22,
			CardValues:    blackjackValues(),
		},
	}
}

// GetSeedGenomes returns the full starting population: nineteen games
// spanning luck, trick-taking, shedding, set collection, betting,
// bluffing, capture, and bust mechanics.
func GetSeedGenomes() []*GameGenome {
	return []*GameGenome{
		CreateWarGenome(),
		CreateBettingWarGenome(),
		CreateHeartsGenome(),
		CreateScotchWhistGenome(),
		CreateKnockoutWhistGenome(),
		CreateSpadesGenome(),
		CreatePartnershipSpadesGenome(),
		CreateCrazyEightsGenome(),
		CreateOldMaidGenome(),
		CreatePresidentGenome(),
		CreateFanTanGenome(),
		CreateUnoStyleGenome(),
		CreateGinRummyGenome(),
		CreateGoFishGenome(),
		CreateSimplePokerGenome(),
		CreateCheatGenome(),
		CreateScopaGenome(),
		CreateDrawPokerGenome(),
		CreateBlackjackGenome(),
	}
}
