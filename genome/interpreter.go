package genome

import (
	"github.com/signalnine/cards-evolve/gosim/engine"
)

// GenerateLegalMovesTyped enumerates the active player's legal moves by
// walking the typed phase list directly, with no bytecode in between. This
// is the controller/worker path; the batch path decodes bytecode and uses
// engine.GenerateLegalMoves. The two must agree on what is legal, so both
// lean on the same engine-level primitives for conditions, betting, and
// bidding.
func GenerateLegalMovesTyped(state *engine.GameState, genome *GameGenome) []engine.LegalMove {
	moves := make([]engine.LegalMove, 0, 10)
	player := state.CurrentPlayer

	for idx, phase := range genome.TurnStructure.Phases {
		switch p := phase.(type) {
		case *DrawPhase:
			moves = drawMoves(moves, state, player, idx, p)
		case *PlayPhase:
			moves = playMoves(moves, state, player, idx, p)
		case *DiscardPhase:
			moves = discardMoves(moves, state, player, idx)
		case *TrickPhase:
			moves = trickMoves(moves, state, player, idx, p)
		case *BettingPhase:
			moves = bettingMoves(moves, state, player, idx, p)
		case *ClaimPhase:
			moves = claimMoves(moves, state, player, idx)
		case *BiddingPhase:
			moves = biddingMoves(moves, state, player, idx, p)
		default:
			panic("genome: unreachable phase kind in move generation")
		}
	}
	return moves
}

// condBytes packs a typed Condition into the 7-byte encoding the engine
// evaluator consumes. Operators are normalized: genomes written against
// the old 50-based operator spelling still evaluate correctly.
func condBytes(c *Condition) []byte {
	op := c.Operator
	if op >= 50 {
		op -= 50
	}
	return []byte{
		c.OpCode,
		op,
		byte(c.Value >> 24), byte(c.Value >> 16), byte(c.Value >> 8), byte(c.Value),
		c.RefLoc,
	}
}

func conditionHolds(state *engine.GameState, player uint8, c *Condition) bool {
	if c == nil {
		return true
	}
	return engine.EvaluateCondition(state, player, condBytes(c))
}

func cardConditionHolds(state *engine.GameState, player uint8, card engine.Card, c *Condition) bool {
	if c == nil {
		return true
	}
	return engine.EvaluateCardCondition(state, player, card, condBytes(c))
}

func drawMoves(moves []engine.LegalMove, state *engine.GameState, player uint8, idx int, p *DrawPhase) []engine.LegalMove {
	if int(player) < len(state.HasStood) && state.HasStood[player] {
		return moves // already standing
	}
	if !conditionHolds(state, player, p.Condition) {
		return moves
	}

	source := engine.Location(p.Source)
	var canDraw bool
	switch source {
	case engine.LocationDeck:
		// An empty deck refills from the discard, so either pile serves.
		canDraw = len(state.Deck) > 0 || len(state.Discard) > 1
	case engine.LocationDiscard:
		canDraw = len(state.Discard) > 0
	case engine.LocationOpponentHand:
		opponent := (player + 1) % state.NumPlayers
		canDraw = len(state.Players[opponent].Hand) > 0
	}
	if canDraw {
		moves = append(moves, engine.LegalMove{
			PhaseIndex: idx,
			CardIndex:  engine.MoveDraw,
			TargetLoc:  source,
		})
	}
	// Standing stays legal in an optional phase even with nothing left to
	// draw, mirroring the bytecode path.
	if !p.Mandatory {
		moves = append(moves, engine.LegalMove{
			PhaseIndex: idx,
			CardIndex:  engine.MoveDrawPass,
			TargetLoc:  source,
		})
	}
	return moves
}

func playMoves(moves []engine.LegalMove, state *engine.GameState, player uint8, idx int, p *PlayPhase) []engine.LegalMove {
	hand := state.Players[player].Hand
	if len(hand) == 0 {
		return moves
	}

	target := engine.Location(p.Target)
	sequenceMode := state.TableauMode == uint8(TableauModeSequence) && target == engine.LocationTableau
	added := 0

	if p.MinCards <= 1 && p.MaxCards >= 1 {
		for cardIdx, card := range hand {
			if !cardConditionHolds(state, player, card, p.ValidPlayCondition) {
				continue
			}
			if sequenceMode && !fitsSomePile(state, card) {
				continue
			}
			moves = append(moves, engine.LegalMove{
				PhaseIndex: idx,
				CardIndex:  cardIdx,
				TargetLoc:  target,
			})
			added++
		}
	}

	// Rank sets (Go Fish books): one move per rank held in quantity.
	if p.MinCards > 1 {
		byRank := make(map[uint8]int)
		for _, card := range hand {
			byRank[card.Rank]++
		}
		for rank, n := range byRank {
			if n >= p.MinCards && n <= p.MaxCards {
				moves = append(moves, engine.LegalMove{
					PhaseIndex: idx,
					CardIndex:  engine.MultiCardPlayBase - int(rank),
					TargetLoc:  target,
				})
				added++
			}
		}
	}

	if added == 0 && p.PassIfUnable {
		moves = append(moves, engine.LegalMove{
			PhaseIndex: idx,
			CardIndex:  engine.MovePlayPass,
			TargetLoc:  target,
		})
	}
	return moves
}

// fitsSomePile reports whether a card can land anywhere on a sequence
// tableau: extending a pile in the state's direction, or seeding an empty
// pile (an empty tableau accepts anything).
func fitsSomePile(state *engine.GameState, card engine.Card) bool {
	if len(state.Tableau) == 0 {
		return true
	}
	for _, pile := range state.Tableau {
		if len(pile) == 0 {
			return true
		}
		if extendsSequence(card, pile[len(pile)-1], state.SequenceDirection) {
			return true
		}
	}
	return false
}

// extendsSequence checks suit-matched rank adjacency without wrapping past
// either end of the rank order.
func extendsSequence(card, top engine.Card, direction uint8) bool {
	if card.Suit != top.Suit {
		return false
	}
	ascends := top.Rank != 13 && card.Rank == top.Rank+1
	descends := top.Rank != 2 && card.Rank == top.Rank-1
	switch SequenceDirection(direction) {
	case SequenceAscending:
		return ascends
	case SequenceDescending:
		return descends
	case SequenceBoth:
		return ascends || descends
	}
	return false
}

func discardMoves(moves []engine.LegalMove, state *engine.GameState, player uint8, idx int) []engine.LegalMove {
	for cardIdx := range state.Players[player].Hand {
		moves = append(moves, engine.LegalMove{
			PhaseIndex: idx,
			CardIndex:  cardIdx,
			TargetLoc:  engine.LocationDiscard,
		})
	}
	return moves
}

func trickMoves(moves []engine.LegalMove, state *engine.GameState, player uint8, idx int, p *TrickPhase) []engine.LegalMove {
	hand := state.Players[player].Hand
	if len(hand) == 0 {
		return moves
	}

	trickMove := func(cardIdx int) engine.LegalMove {
		return engine.LegalMove{PhaseIndex: idx, CardIndex: cardIdx, TargetLoc: engine.LocationTableau}
	}

	if len(state.CurrentTrick) == 0 {
		// Leading: anything goes, except an unbroken breaking suit while
		// the player still holds an alternative.
		for cardIdx, card := range hand {
			if p.BreakingSuit != 255 && card.Suit == p.BreakingSuit && !state.HeartsBroken &&
				holdsOtherSuit(hand, p.BreakingSuit) {
				continue
			}
			moves = append(moves, trickMove(cardIdx))
		}
		return moves
	}

	leadSuit := state.CurrentTrick[0].Card.Suit
	mustFollow := p.LeadSuitRequired && holdsSuit(hand, leadSuit)
	for cardIdx, card := range hand {
		if mustFollow && card.Suit != leadSuit {
			continue
		}
		moves = append(moves, trickMove(cardIdx))
	}
	return moves
}

func holdsSuit(hand []engine.Card, suit uint8) bool {
	for _, card := range hand {
		if card.Suit == suit {
			return true
		}
	}
	return false
}

func holdsOtherSuit(hand []engine.Card, suit uint8) bool {
	for _, card := range hand {
		if card.Suit != suit {
			return true
		}
	}
	return false
}

func bettingMoves(moves []engine.LegalMove, state *engine.GameState, player uint8, idx int, p *BettingPhase) []engine.LegalMove {
	if state.BettingComplete {
		return moves
	}
	if engine.CountActivePlayers(state) <= 1 ||
		(engine.AllBetsMatched(state) && engine.CountActingPlayers(state) == 0) {
		state.BettingComplete = true
		return moves
	}

	data := &engine.BettingPhaseData{MinBet: p.MinBet, MaxRaises: p.MaxRaises}
	for _, action := range engine.GenerateBettingMoves(state, data, int(player)) {
		moves = append(moves, engine.LegalMove{
			PhaseIndex: idx,
			CardIndex:  engine.BettingMoveBase - int(action),
			TargetLoc:  engine.LocationDeck,
		})
	}
	return moves
}

func claimMoves(moves []engine.LegalMove, state *engine.GameState, player uint8, idx int) []engine.LegalMove {
	if state.CurrentClaim == nil {
		// Stake a claim: any hand card may anchor one.
		for cardIdx := range state.Players[player].Hand {
			moves = append(moves, engine.LegalMove{
				PhaseIndex: idx,
				CardIndex:  cardIdx,
				TargetLoc:  engine.LocationDiscard,
			})
		}
		return moves
	}
	if player == state.CurrentClaim.ClaimerID {
		return moves // the claimant waits out the challenge window
	}
	moves = append(moves, engine.LegalMove{
		PhaseIndex: idx, CardIndex: engine.MoveChallenge, TargetLoc: engine.LocationDiscard,
	})
	return append(moves, engine.LegalMove{
		PhaseIndex: idx, CardIndex: engine.MovePass, TargetLoc: engine.LocationDiscard,
	})
}

func biddingMoves(moves []engine.LegalMove, state *engine.GameState, player uint8, idx int, p *BiddingPhase) []engine.LegalMove {
	if state.BiddingComplete || state.Players[player].CurrentBid >= 0 {
		return moves
	}

	phase := engine.BiddingPhase{MinBid: p.MinBid, MaxBid: p.MaxBid, AllowNil: p.AllowNil}
	for _, bid := range engine.GenerateBidMoves(phase, len(state.Players[player].Hand)) {
		target := engine.LocationDeck
		if bid.IsNil {
			target = engine.LocationDiscard
		}
		moves = append(moves, engine.LegalMove{
			PhaseIndex: idx,
			CardIndex:  engine.MoveBidOffset - bid.Value,
			TargetLoc:  target,
		})
	}
	return moves
}
