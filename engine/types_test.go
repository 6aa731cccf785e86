package engine

import (
	"testing"
)

func TestResetRestoresDefaults(t *testing.T) {
	s := GetState()
	defer PutState(s)

	s.PlayDirection = -1
	s.SkipCount = 2
	s.TableauWildSuit = 1
	s.BlockedPlayer = 1
	s.WinningTeam = 0
	s.HeartsBroken = true
	s.Reset()

	if s.PlayDirection != 1 {
		t.Errorf("PlayDirection should reset to 1, got %d", s.PlayDirection)
	}
	if s.SkipCount != 0 {
		t.Errorf("SkipCount should reset to 0, got %d", s.SkipCount)
	}
	if s.TableauWildSuit != 255 {
		t.Errorf("TableauWildSuit should reset to 255, got %d", s.TableauWildSuit)
	}
	if s.BlockedPlayer != -1 {
		t.Errorf("BlockedPlayer should reset to -1, got %d", s.BlockedPlayer)
	}
	if s.WinningTeam != -1 {
		t.Errorf("WinningTeam should reset to -1, got %d", s.WinningTeam)
	}
	if s.HeartsBroken {
		t.Error("HeartsBroken should reset to false")
	}
}

func TestStatePoolReusesMemory(t *testing.T) {
	s1 := GetState()
	backing := &s1.Players[0]
	PutState(s1)

	s2 := GetState()
	defer PutState(s2)
	if backing != &s2.Players[0] {
		t.Error("pool should hand the same backing arrays back")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := GetState()
	defer PutState(s)
	s.NumPlayers = 2
	s.Players[0].Hand = append(s.Players[0].Hand, Card{Rank: 4, Suit: 1})
	s.Deck = append(s.Deck, Card{Rank: 7, Suit: 2})
	s.Tableau = append(s.Tableau, []Card{{Rank: 9, Suit: 3}})
	s.CurrentClaim = &Claim{ClaimerID: 1, ClaimedRank: 5, CardsPlayed: []Card{{Rank: 5, Suit: 0}}}
	s.PlayerToTeam = append(s.PlayerToTeam, 0, 1)
	s.TeamScores = append(s.TeamScores, 10, 20)

	clone := s.Clone()
	defer PutState(clone)

	// Mutating the original must not reach the clone through any slice or
	// pointer.
	s.Players[0].Hand[0].Rank = 12
	s.Deck[0].Suit = 0
	s.Tableau[0][0].Rank = 0
	s.CurrentClaim.ClaimedRank = 9
	s.TeamScores[0] = 99

	if clone.Players[0].Hand[0].Rank != 4 {
		t.Error("hand should be deep-copied")
	}
	if clone.Deck[0].Suit != 2 {
		t.Error("deck should be deep-copied")
	}
	if clone.Tableau[0][0].Rank != 9 {
		t.Error("tableau should be deep-copied")
	}
	if clone.CurrentClaim.ClaimedRank != 5 {
		t.Error("claim should be deep-copied")
	}
	if clone.TeamScores[0] != 10 {
		t.Error("team scores should be deep-copied")
	}
}

func TestDrawCardMovesTopCard(t *testing.T) {
	s := GetState()
	defer PutState(s)
	s.Deck = append(s.Deck, Card{Rank: 1, Suit: 0}, Card{Rank: 5, Suit: 2})

	if !s.DrawCard(0, LocationDeck) {
		t.Fatal("draw from a stocked deck should succeed")
	}
	hand := s.Players[0].Hand
	if len(hand) != 1 || hand[0] != (Card{Rank: 5, Suit: 2}) {
		t.Errorf("draw should take the top card, got %v", hand)
	}
	if len(s.Deck) != 1 {
		t.Errorf("deck should shrink to 1, got %d", len(s.Deck))
	}
}

func TestDrawCardRejectsBadInputs(t *testing.T) {
	s := GetState()
	defer PutState(s)

	if s.DrawCard(9, LocationDeck) {
		t.Error("out-of-range player should not draw")
	}
	if s.DrawCard(0, LocationDeck) {
		t.Error("empty deck should not serve a draw")
	}
	if s.DrawCard(0, LocationTableau) {
		t.Error("the tableau is not a draw source")
	}
}

func TestDrawCardFromOpponentHand(t *testing.T) {
	s := GetState()
	defer PutState(s)
	s.NumPlayers = 2
	s.Players[1].Hand = append(s.Players[1].Hand, Card{Rank: 3, Suit: 3})

	if !s.DrawCard(0, LocationOpponentHand) {
		t.Fatal("draw from opponent hand should succeed")
	}
	if len(s.Players[1].Hand) != 0 || len(s.Players[0].Hand) != 1 {
		t.Errorf("card should move between hands: %v / %v",
			s.Players[0].Hand, s.Players[1].Hand)
	}
}

func TestPlayCardTargets(t *testing.T) {
	s := GetState()
	defer PutState(s)
	s.Players[0].Hand = append(s.Players[0].Hand,
		Card{Rank: 2, Suit: 0}, Card{Rank: 6, Suit: 1})

	if !s.PlayCard(0, 1, LocationDiscard) {
		t.Fatal("play to discard should succeed")
	}
	if len(s.Discard) != 1 || s.Discard[0].Rank != 6 {
		t.Errorf("discard should receive the played card, got %v", s.Discard)
	}

	if !s.PlayCard(0, 0, LocationTableau) {
		t.Fatal("play to tableau should succeed")
	}
	if len(s.Tableau) != 1 || len(s.Tableau[0]) != 1 {
		t.Errorf("tableau should receive the played card, got %v", s.Tableau)
	}
	if len(s.Players[0].Hand) != 0 {
		t.Errorf("hand should be empty, got %v", s.Players[0].Hand)
	}

	if s.PlayCard(0, 0, LocationDiscard) {
		t.Error("playing from an empty hand should fail")
	}
	s.Players[0].Hand = append(s.Players[0].Hand, Card{Rank: 8, Suit: 2})
	if s.PlayCard(0, 0, LocationDeck) {
		t.Error("the deck is not a play target")
	}
}

func TestShuffleDeckDeterministicAndConserving(t *testing.T) {
	build := func() *GameState {
		s := GetState()
		for suit := uint8(0); suit < 4; suit++ {
			for rank := uint8(0); rank < 13; rank++ {
				s.Deck = append(s.Deck, Card{Rank: rank, Suit: suit})
			}
		}
		return s
	}

	a, b := build(), build()
	defer PutState(a)
	defer PutState(b)
	a.ShuffleDeck(1234)
	b.ShuffleDeck(1234)

	for i := range a.Deck {
		if a.Deck[i] != b.Deck[i] {
			t.Fatalf("same seed must give the same permutation (index %d)", i)
		}
	}

	seen := make(map[Card]int)
	for _, c := range a.Deck {
		seen[c]++
	}
	if len(seen) != 52 {
		t.Errorf("shuffle should preserve all 52 distinct cards, got %d", len(seen))
	}
}

func TestInitializeChipsAndResetHand(t *testing.T) {
	s := GetState()
	defer PutState(s)

	s.InitializeChips(500)
	for i := range s.Players {
		if s.Players[i].Chips != 500 {
			t.Fatalf("player %d should start with 500 chips, got %d", i, s.Players[i].Chips)
		}
	}

	s.Players[0].CurrentBet = 50
	s.Players[1].HasFolded = true
	s.Pot = 100
	s.ResetHand()

	if s.Players[0].CurrentBet != 0 || s.Players[1].HasFolded {
		t.Error("ResetHand should clear per-hand betting state")
	}
	if s.Pot != 0 {
		t.Errorf("ResetHand should clear the pot, got %d", s.Pot)
	}
	if s.BettingStartPlayer != 1 {
		t.Errorf("ResetHand should rotate the opening seat, got %d", s.BettingStartPlayer)
	}
}
