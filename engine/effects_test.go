package engine

import (
	"testing"
)

func effectState(numPlayers uint8, current uint8) *GameState {
	s := NewGameState(int(numPlayers))
	s.NumPlayers = numPlayers
	s.CurrentPlayer = current
	return s
}

func TestSkipEffectsAccumulateAndCap(t *testing.T) {
	tests := []struct {
		name     string
		existing uint8
		value    uint8
		want     uint8
	}{
		{"single skip", 0, 1, 1},
		{"stacked skips", 1, 1, 2},
		{"capped one below table size", 2, 5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := effectState(3, 0)
			s.SkipCount = tt.existing
			ApplyEffect(s, &SpecialEffect{EffectType: EFFECT_SKIP_NEXT, Value: tt.value}, nil)
			if s.SkipCount != tt.want {
				t.Errorf("SkipCount = %d, want %d", s.SkipCount, tt.want)
			}
		})
	}
}

func TestReverseEffectIsAnInvolution(t *testing.T) {
	s := effectState(3, 0)
	reverse := &SpecialEffect{EffectType: EFFECT_REVERSE}

	ApplyEffect(s, reverse, nil)
	if s.PlayDirection != -1 {
		t.Fatalf("one reverse should flip to -1, got %d", s.PlayDirection)
	}
	ApplyEffect(s, reverse, nil)
	if s.PlayDirection != 1 {
		t.Errorf("two reverses should cancel, got %d", s.PlayDirection)
	}
}

func TestDrawCardsEffectStopsAtEmptyDeck(t *testing.T) {
	s := effectState(2, 0)
	s.Deck = []Card{{Rank: 3, Suit: 0}, {Rank: 4, Suit: 1}}

	ApplyEffect(s, &SpecialEffect{
		EffectType: EFFECT_DRAW_CARDS,
		Target:     TARGET_NEXT_PLAYER,
		Value:      5, // more than the deck holds
	}, nil)

	if len(s.Players[1].Hand) != 2 {
		t.Errorf("target should draw only what the deck had, got %d", len(s.Players[1].Hand))
	}
	if len(s.Deck) != 0 {
		t.Errorf("deck should be exhausted, got %d", len(s.Deck))
	}
}

func TestForceDiscardEffectClampsToHand(t *testing.T) {
	s := effectState(2, 0)
	s.Players[1].Hand = []Card{{Rank: 2, Suit: 0}, {Rank: 5, Suit: 1}}

	ApplyEffect(s, &SpecialEffect{
		EffectType: EFFECT_FORCE_DISCARD,
		Target:     TARGET_NEXT_PLAYER,
		Value:      3,
	}, nil)

	if len(s.Players[1].Hand) != 0 {
		t.Errorf("target should discard their whole hand, got %d cards", len(s.Players[1].Hand))
	}
	if len(s.Discard) != 2 {
		t.Errorf("discard should hold both cards, got %d", len(s.Discard))
	}
}

func TestExtraTurnEffectSkipsEveryoneElse(t *testing.T) {
	s := effectState(4, 1)

	ApplyEffect(s, &SpecialEffect{EffectType: EFFECT_EXTRA_TURN}, nil)
	if s.SkipCount != 3 {
		t.Fatalf("extra turn should queue NumPlayers-1 skips, got %d", s.SkipCount)
	}
	AdvanceTurn(s)
	if s.CurrentPlayer != 1 {
		t.Errorf("the advance should come back around to player 1, got %d", s.CurrentPlayer)
	}
}

func TestWildEffectDeclaresSuit(t *testing.T) {
	s := effectState(2, 0)
	ApplyEffect(s, &SpecialEffect{EffectType: EFFECT_WILD_CARD, Value: 3}, nil)
	if s.TableauWildSuit != 3 {
		t.Errorf("wild should declare suit 3, got %d", s.TableauWildSuit)
	}
}

func TestBlockEffectMarksTarget(t *testing.T) {
	s := effectState(3, 0)
	ApplyEffect(s, &SpecialEffect{EffectType: EFFECT_BLOCK_NEXT, Target: TARGET_NEXT_PLAYER}, nil)
	if s.BlockedPlayer != 1 {
		t.Errorf("block should mark player 1, got %d", s.BlockedPlayer)
	}
}

func TestSwapHandsEffect(t *testing.T) {
	s := effectState(2, 0)
	s.Players[0].Hand = []Card{{Rank: 1, Suit: 0}}
	s.Players[1].Hand = []Card{{Rank: 9, Suit: 1}, {Rank: 10, Suit: 2}}

	ApplyEffect(s, &SpecialEffect{EffectType: EFFECT_SWAP_HANDS, Target: TARGET_NEXT_PLAYER}, nil)

	if len(s.Players[0].Hand) != 2 || len(s.Players[1].Hand) != 1 {
		t.Errorf("hands should trade places: %v / %v", s.Players[0].Hand, s.Players[1].Hand)
	}
}

func TestStealCardEffect(t *testing.T) {
	s := effectState(2, 0)
	s.Players[1].Hand = []Card{{Rank: 9, Suit: 1}, {Rank: 12, Suit: 2}}

	ApplyEffect(s, &SpecialEffect{
		EffectType: EFFECT_STEAL_CARD,
		Target:     TARGET_NEXT_PLAYER,
		Value:      1,
	}, nil)

	if len(s.Players[0].Hand) != 1 || len(s.Players[1].Hand) != 1 {
		t.Errorf("one card should change owners: %v / %v", s.Players[0].Hand, s.Players[1].Hand)
	}
	if s.Players[0].Hand[0].Rank != 12 {
		t.Errorf("the stolen card comes off the tail, got rank %d", s.Players[0].Hand[0].Rank)
	}
}

func TestPeekEffectLeavesOnlyACounter(t *testing.T) {
	s := effectState(2, 0)
	ApplyEffect(s, &SpecialEffect{EffectType: EFFECT_PEEK_HAND, Target: TARGET_NEXT_PLAYER}, nil)
	if s.PeekCount != 1 {
		t.Errorf("peek should only increment its counter, got %d", s.PeekCount)
	}
}

func TestResolveTargetFollowsDirection(t *testing.T) {
	tests := []struct {
		name      string
		current   uint8
		direction int8
		target    uint8
		want      int
	}{
		{"next clockwise", 1, 1, TARGET_NEXT_PLAYER, 2},
		{"next counter-clockwise", 1, -1, TARGET_NEXT_PLAYER, 0},
		{"previous clockwise", 1, 1, TARGET_PREV_PLAYER, 0},
		{"previous counter-clockwise", 1, -1, TARGET_PREV_PLAYER, 2},
		{"next wraps", 3, 1, TARGET_NEXT_PLAYER, 0},
		{"all opponents sentinel", 0, 1, TARGET_ALL_OPPONENTS, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := effectState(4, tt.current)
			s.PlayDirection = tt.direction
			if got := resolveTarget(s, tt.target); got != tt.want {
				t.Errorf("resolveTarget = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdvanceTurn(t *testing.T) {
	tests := []struct {
		name      string
		players   uint8
		current   uint8
		direction int8
		skips     uint8
		want      uint8
	}{
		{"plain step", 4, 0, 1, 0, 1},
		{"skip one", 4, 0, 1, 1, 2},
		{"reversed", 4, 1, -1, 0, 0},
		{"reversed wrap", 3, 0, -1, 0, 2},
		{"wrap forward", 3, 2, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := effectState(tt.players, tt.current)
			s.PlayDirection = tt.direction
			s.SkipCount = tt.skips
			AdvanceTurn(s)
			if s.CurrentPlayer != tt.want {
				t.Errorf("CurrentPlayer = %d, want %d", s.CurrentPlayer, tt.want)
			}
			if s.SkipCount != 0 {
				t.Errorf("SkipCount should be consumed, got %d", s.SkipCount)
			}
		})
	}
}
