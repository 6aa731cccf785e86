package engine

// pile resolves a Location to the concrete card stack it names, from the
// perspective of playerID. Locations that don't map to a single stack (or
// that this state can't serve) return nil.
func (s *GameState) pile(playerID uint8, loc Location) *[]Card {
	switch loc {
	case LocationDeck:
		return &s.Deck
	case LocationDiscard:
		return &s.Discard
	case LocationHand:
		if int(playerID) < len(s.Players) {
			return &s.Players[playerID].Hand
		}
	case LocationOpponentHand:
		if s.NumPlayers == 0 {
			return nil
		}
		opponent := (playerID + 1) % s.NumPlayers
		if int(opponent) < len(s.Players) {
			return &s.Players[opponent].Hand
		}
	case LocationTableau:
		if len(s.Tableau) == 0 {
			s.Tableau = append(s.Tableau, make([]Card, 0, 10))
		}
		return &s.Tableau[0]
	}
	return nil
}

// DrawCard moves the top card of source into playerID's hand. Returns false
// when the source can't be resolved or is empty; the state is untouched.
func (s *GameState) DrawCard(playerID uint8, source Location) bool {
	if int(playerID) >= len(s.Players) {
		return false
	}
	if source == LocationHand || source == LocationTableau {
		return false // a hand never draws from itself or the board
	}

	src := s.pile(playerID, source)
	if src == nil || len(*src) == 0 {
		return false
	}

	card := (*src)[len(*src)-1]
	*src = (*src)[:len(*src)-1]
	s.Players[playerID].Hand = append(s.Players[playerID].Hand, card)
	return true
}

// PlayCard moves the hand card at cardIndex to target. Only the discard
// pile and the tableau accept plays; anything else returns false with the
// hand unchanged.
func (s *GameState) PlayCard(playerID uint8, cardIndex int, target Location) bool {
	if int(playerID) >= len(s.Players) {
		return false
	}
	if target != LocationDiscard && target != LocationTableau {
		return false
	}

	hand := &s.Players[playerID].Hand
	if cardIndex < 0 || cardIndex >= len(*hand) {
		return false
	}

	card := (*hand)[cardIndex]
	*hand = append((*hand)[:cardIndex], (*hand)[cardIndex+1:]...)

	dst := s.pile(playerID, target)
	*dst = append(*dst, card)
	return true
}

// ShuffleDeck permutes the deck in place with a Fisher-Yates pass driven by
// a multiplicative congruential stream. The whole shuffle is a pure
// function of (deck contents, seed), which is what the determinism
// contract needs from dealing.
func (s *GameState) ShuffleDeck(seed uint64) {
	const (
		mul = 6364136223846793005
		inc = 1442695040888963407
	)
	stream := seed
	for i := len(s.Deck) - 1; i > 0; i-- {
		stream = stream*mul + inc
		j := int(stream % uint64(i+1))
		s.Deck[i], s.Deck[j] = s.Deck[j], s.Deck[i]
	}
}
