package engine

import (
	"encoding/binary"
)

// LegalMove represents a possible action
type LegalMove struct {
	PhaseIndex int
	CardIndex  int // -1 if not card-specific
	TargetLoc  Location
}

// GenerateLegalMoves returns all valid moves for current player
func GenerateLegalMoves(state *GameState, genome *Genome) []LegalMove {
	moves := make([]LegalMove, 0, 10)
	currentPlayer := state.CurrentPlayer

	for phaseIdx, phase := range genome.TurnPhases {
		switch phase.PhaseType {
		case 1: // DrawPhase
			if len(phase.Data) < 7 {
				continue
			}
			if int(currentPlayer) < len(state.HasStood) && state.HasStood[currentPlayer] {
				continue
			}
			source := Location(phase.Data[0])
			mandatory := phase.Data[5] == 1

			// A gated draw phase (e.g. "draw only while hand is empty")
			// contributes no moves when its condition fails.
			if phase.Data[6] == 1 && len(phase.Data) >= 14 {
				if !EvaluateCondition(state, currentPlayer, phase.Data[7:14]) {
					continue
				}
			}

			// Check if can draw
			canDraw := false
			switch source {
			case LocationDeck:
				// An exhausted deck replenishes from the discard pile (all
				// but its top card), so drawing stays legal as long as
				// either pile can serve it.
				canDraw = len(state.Deck) > 0 || len(state.Discard) > 1
			case LocationDiscard:
				canDraw = len(state.Discard) > 0
			case LocationOpponentHand:
				opponentID := 1 - currentPlayer
				canDraw = len(state.Players[opponentID].Hand) > 0
			}

			if canDraw || mandatory {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  -1,
					TargetLoc:  source,
				})
			}
			if !mandatory {
				// MoveDrawPass: stand. Always legal in an optional draw
				// phase, independent of whether the deck still has cards.
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  MoveDrawPass,
					TargetLoc:  source,
				})
			}

		case 2: // PlayPhase
			if len(phase.Data) < 3 {
				continue
			}
			target := Location(phase.Data[0])
			minCards := int(phase.Data[1])
			maxCards := int(phase.Data[2])
			passIfUnable := len(phase.Data) >= 5 && phase.Data[4] == 1
			condition := playCondition(phase.Data)

			hand := state.Players[currentPlayer].Hand
			playMoves := 0

			if state.TableauMode == 3 && target == LocationTableau {
				// Sequence building: a card must extend an existing pile or
				// start a fresh one.
				for cardIdx, card := range hand {
					if !cardPlayable(state, genome, currentPlayer, card, condition) {
						continue
					}
					if canPlaceInSequence(state, card) {
						moves = append(moves, LegalMove{
							PhaseIndex: phaseIdx,
							CardIndex:  cardIdx,
							TargetLoc:  target,
						})
						playMoves++
					}
				}
			} else if minCards <= 1 && maxCards >= 1 {
				for cardIdx, card := range hand {
					if !cardPlayable(state, genome, currentPlayer, card, condition) {
						continue
					}
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  target,
					})
					playMoves++
				}
			}

			// Multi-card set plays (Go Fish books): one move per rank the
			// player holds enough of.
			if minCards > 1 {
				counts := make(map[uint8]int)
				for _, card := range hand {
					counts[card.Rank]++
				}
				for rank, count := range counts {
					if count >= minCards && count <= maxCards {
						moves = append(moves, LegalMove{
							PhaseIndex: phaseIdx,
							CardIndex:  MultiCardPlayBase - int(rank),
							TargetLoc:  target,
						})
						playMoves++
					}
				}
			}

			if playMoves == 0 && passIfUnable && len(hand) > 0 {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  MovePlayPass,
					TargetLoc:  target,
				})
			}

		case 3: // DiscardPhase
			// Always allow discard if have cards
			if len(state.Players[currentPlayer].Hand) > 0 {
				for cardIdx := range state.Players[currentPlayer].Hand {
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationDiscard,
					})
				}
			}

		case 4: // TrickPhase
			if len(phase.Data) < 4 {
				continue
			}
			leadSuitRequired := phase.Data[0] == 1
			// trumpSuit := phase.Data[1]  // 255 = none
			// highCardWins := phase.Data[2] == 1
			breakingSuit := phase.Data[3] // 255 = none

			hand := state.Players[currentPlayer].Hand
			if len(hand) == 0 {
				continue
			}

			// Determine if we're leading or following
			isLeading := len(state.CurrentTrick) == 0

			if isLeading {
				// Leading: can play any card, except breaking suit until broken
				for cardIdx, card := range hand {
					// If breaking suit (e.g., Hearts) and not broken yet, can't lead it
					if breakingSuit != 255 && card.Suit == breakingSuit && !state.HeartsBroken {
						// Check if player has any non-breaking suit cards
						hasOther := false
						for _, c := range hand {
							if c.Suit != breakingSuit {
								hasOther = true
								break
							}
						}
						if hasOther {
							continue // Can't lead breaking suit
						}
						// If only breaking suit cards, can lead them
					}
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationTableau, // Use tableau as trick area
					})
				}
			} else {
				// Following: must follow suit if able
				leadSuit := state.CurrentTrick[0].Card.Suit
				if state.TableauWildSuit != 255 {
					leadSuit = state.TableauWildSuit
				}

				if leadSuitRequired {
					// Check if we have cards of lead suit
					hasLeadSuit := false
					for _, card := range hand {
						if card.Suit == leadSuit {
							hasLeadSuit = true
							break
						}
					}

					if hasLeadSuit {
						// Must follow suit
						for cardIdx, card := range hand {
							if card.Suit == leadSuit {
								moves = append(moves, LegalMove{
									PhaseIndex: phaseIdx,
									CardIndex:  cardIdx,
									TargetLoc:  LocationTableau,
								})
							}
						}
					} else {
						// Can't follow suit - can play any card
						for cardIdx := range hand {
							moves = append(moves, LegalMove{
								PhaseIndex: phaseIdx,
								CardIndex:  cardIdx,
								TargetLoc:  LocationTableau,
							})
						}
					}
				} else {
					// No suit following required - can play any card
					for cardIdx := range hand {
						moves = append(moves, LegalMove{
							PhaseIndex: phaseIdx,
							CardIndex:  cardIdx,
							TargetLoc:  LocationTableau,
						})
					}
				}
			}

		case PhaseTypeBetting:
			data, err := ParseBettingPhaseData(phase.Data)
			if err != nil {
				continue
			}
			for _, action := range GenerateBettingMoves(state, data, int(currentPlayer)) {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  BettingMoveBase - int(action),
					TargetLoc:  LocationHand,
				})
			}

		case PhaseTypeClaim:
			data, err := ParseClaimPhaseData(phase.Data)
			if err != nil {
				continue
			}
			moves = appendClaimMoves(moves, state, data, currentPlayer, phaseIdx)

		case PhaseTypeBidding:
			// Bidding normally runs as its own pregame round (see
			// simulation.runBiddingRound) which sets BiddingComplete before
			// the per-turn loop starts. Exposing it here too lets a caller
			// drive an entire hand - bids included - through nothing but
			// GenerateLegalMoves/ApplyMove.
			if state.BiddingComplete {
				continue
			}
			data, err := ParseBiddingPhaseData(phase.Data)
			if err != nil {
				continue
			}
			if state.Players[currentPlayer].CurrentBid >= 0 {
				continue
			}
			handSize := len(state.Players[currentPlayer].Hand)
			for _, bid := range GenerateBidMoves(data.Phase, handSize) {
				targetLoc := LocationDeck
				if bid.IsNil {
					targetLoc = LocationDiscard
				}
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  MoveBidOffset - bid.Value,
					TargetLoc:  targetLoc,
				})
			}
		}
	}

	return moves
}

// playCondition extracts the valid_play_condition bytes from PlayPhase data,
// or nil when the phase has none.
func playCondition(data []byte) []byte {
	if len(data) < 9 {
		return nil
	}
	condLen := int(binary.BigEndian.Uint32(data[5:9]))
	if condLen < 7 || 9+condLen > len(data) {
		return nil
	}
	return data[9 : 9+condLen]
}

// cardPlayable reports whether a hand card satisfies the phase's play
// condition. Wild cards (a WILD_CARD special effect on the card's rank) are
// always playable regardless of the condition.
func cardPlayable(state *GameState, genome *Genome, playerID uint8, card Card, condition []byte) bool {
	if condition == nil {
		return true
	}
	if eff, ok := genome.Effects[card.Rank]; ok && eff.EffectType == EFFECT_WILD_CARD {
		return true
	}
	return EvaluateCardCondition(state, playerID, card, condition)
}

// canPlaceInSequence reports whether a card extends any tableau pile in the
// state's sequence direction, or can seed an empty pile.
func canPlaceInSequence(state *GameState, card Card) bool {
	if len(state.Tableau) == 0 {
		return true
	}
	for _, pile := range state.Tableau {
		if len(pile) == 0 {
			return true
		}
		if isValidSequencePlay(card, pile[len(pile)-1], state.SequenceDirection) {
			return true
		}
	}
	return false
}

// isValidSequencePlay reports whether card may be placed on topCard under
// the given direction (0=ascending, 1=descending, 2=both). Suits must match
// and ranks never wrap past the ends.
func isValidSequencePlay(card Card, topCard Card, direction uint8) bool {
	if card.Suit != topCard.Suit {
		return false
	}
	switch direction {
	case 0: // ascending
		if topCard.Rank == 13 {
			return false
		}
		return card.Rank == topCard.Rank+1
	case 1: // descending
		if topCard.Rank == 2 {
			return false
		}
		return card.Rank == topCard.Rank-1
	case 2: // both
		canAscend := topCard.Rank != 13 && card.Rank == topCard.Rank+1
		canDescend := topCard.Rank != 2 && card.Rank == topCard.Rank-1
		return canAscend || canDescend
	}
	return false
}

// appendClaimMoves enumerates Claim-phase actions: when no claim is pending,
// the current player stakes a claim on a rank they hold enough of; when one
// is pending, every other player may challenge it or let it stand.
func appendClaimMoves(moves []LegalMove, state *GameState, data *ClaimPhaseData, currentPlayer uint8, phaseIdx int) []LegalMove {
	if state.CurrentClaim == nil {
		counts := make(map[uint8]int)
		for _, card := range state.Players[currentPlayer].Hand {
			counts[card.Rank]++
		}
		for rank, count := range counts {
			if count < data.MinClaimCount {
				continue
			}
			moves = append(moves, LegalMove{
				PhaseIndex: phaseIdx,
				CardIndex:  MultiCardPlayBase - int(rank),
				TargetLoc:  LocationTableau,
			})
		}
		return moves
	}

	if currentPlayer == state.CurrentClaim.ClaimerID {
		return moves
	}
	moves = append(moves, LegalMove{PhaseIndex: phaseIdx, CardIndex: MoveChallenge, TargetLoc: LocationDiscard})
	moves = append(moves, LegalMove{PhaseIndex: phaseIdx, CardIndex: MovePass, TargetLoc: LocationDiscard})
	return moves
}

// applyClaimMove stakes a new claim, or resolves a pending one when
// challenged or let stand. A challenge reveals the claimed cards: the loser
// (claimant if the claim was false, challenger if it held) draws the claim
// phase's penalty count from the deck. Passing lets the claim stand and its
// cards move to the discard pile.
func applyClaimMove(state *GameState, move *LegalMove, currentPlayer uint8, data *ClaimPhaseData) {
	if move.CardIndex <= MultiCardPlayBase {
		rank := uint8(-(move.CardIndex - MultiCardPlayBase))
		hand := &state.Players[currentPlayer].Hand
		played := make([]Card, 0, 4)
		for i := len(*hand) - 1; i >= 0 && (data.MaxClaimCount <= 0 || len(played) < data.MaxClaimCount); i-- {
			if (*hand)[i].Rank == rank {
				played = append(played, (*hand)[i])
				*hand = append((*hand)[:i], (*hand)[i+1:]...)
			}
		}
		state.CurrentClaim = &Claim{
			ClaimerID:    currentPlayer,
			ClaimedRank:  rank,
			ClaimedCount: uint8(len(played)),
			CardsPlayed:  played,
		}
		return
	}

	claim := state.CurrentClaim
	if claim == nil {
		return
	}

	switch move.CardIndex {
	case MoveChallenge:
		claim.Challenged = true
		claim.ChallengerID = currentPlayer
		truthful := true
		for _, card := range claim.CardsPlayed {
			if card.Rank != claim.ClaimedRank {
				truthful = false
				break
			}
		}
		loser := claim.ClaimerID
		if truthful {
			loser = currentPlayer
		}
		penalty := data.ChallengePenalty
		for i := 0; i < penalty && len(state.Deck) > 0; i++ {
			state.Players[loser].Hand = append(state.Players[loser].Hand, state.Deck[0])
			state.Deck = state.Deck[1:]
		}
		state.Discard = append(state.Discard, claim.CardsPlayed...)
		state.CurrentClaim = nil

	case MovePass:
		state.Discard = append(state.Discard, claim.CardsPlayed...)
		state.CurrentClaim = nil
	}
}

// defaultClaimPenalty is the fallback challenge penalty when a ClaimPhase
// descriptor isn't available to ApplyMove (the phase is looked up by the
// caller but GenerateLegalMoves already filters to valid decisions, so this
// only matters if ParseClaimPhaseData ever fails after moves were generated).
const defaultClaimPenalty = 1

// ApplyMove executes a legal move, mutating state
func ApplyMove(state *GameState, move *LegalMove, genome *Genome) {
	if move.PhaseIndex >= len(genome.TurnPhases) {
		return
	}

	phase := genome.TurnPhases[move.PhaseIndex]
	currentPlayer := state.CurrentPlayer

	switch phase.PhaseType {
	case 1: // DrawPhase
		if move.CardIndex == MoveDrawPass {
			if int(currentPlayer) < len(state.HasStood) {
				state.HasStood[currentPlayer] = true
			}
		} else if len(phase.Data) >= 5 {
			count := int(binary.BigEndian.Uint32(phase.Data[1:5]))
			for i := 0; i < count; i++ {
				if move.TargetLoc == LocationDeck && len(state.Deck) == 0 {
					replenishDeck(state)
				}
				state.DrawCard(currentPlayer, move.TargetLoc)
			}
			// Point-total hand evaluation (blackjack-style): busting ends
			// this player's draw phase just as standing would.
			if genome.HandEval != nil && genome.HandEval.Method == EvalMethodPointTotal {
				bust := int(genome.HandEval.BustThreshold)
				if bust == 0 {
					bust = 21
				}
				if EvaluatePointTotal(state.Players[currentPlayer].Hand, genome.HandEval) > bust {
					if int(currentPlayer) < len(state.HasStood) {
						state.HasStood[currentPlayer] = true
					}
				}
			}
		}

	case 2: // PlayPhase
		if move.CardIndex >= 0 && move.CardIndex < len(state.Players[currentPlayer].Hand) {
			card := state.Players[currentPlayer].Hand[move.CardIndex]

			if move.TargetLoc == LocationTableau {
				applyTableauPlay(state, genome, currentPlayer, move.CardIndex, card)
			} else {
				state.PlayCard(currentPlayer, move.CardIndex, move.TargetLoc)
			}

			scoreCardPlay(state, genome, currentPlayer, card)
			fireEffects(state, genome, card)
		} else if move.CardIndex <= MultiCardPlayBase {
			applySetPlay(state, genome, currentPlayer, move)
		}

	case 3: // DiscardPhase
		if move.CardIndex >= 0 {
			state.PlayCard(currentPlayer, move.CardIndex, LocationDiscard)
		}

	case 4: // TrickPhase
		if move.CardIndex >= 0 && move.CardIndex < len(state.Players[currentPlayer].Hand) {
			card := state.Players[currentPlayer].Hand[move.CardIndex]

			// Remove card from hand
			state.Players[currentPlayer].Hand = append(
				state.Players[currentPlayer].Hand[:move.CardIndex],
				state.Players[currentPlayer].Hand[move.CardIndex+1:]...,
			)

			// Add to current trick
			state.CurrentTrick = append(state.CurrentTrick, TrickCard{
				PlayerID: currentPlayer,
				Card:     card,
			})

			// Check if this card breaks hearts (or other breaking suit)
			if len(phase.Data) >= 4 {
				breakingSuit := phase.Data[3]
				if breakingSuit != 255 && card.Suit == breakingSuit {
					state.HeartsBroken = true
				}
			}

			// Wild cards override the suit a follower must match. Other
			// effects stay out of tricks so every seat still plays exactly
			// once per trick.
			if eff, ok := genome.Effects[card.Rank]; ok && eff.EffectType == EFFECT_WILD_CARD {
				ApplyEffect(state, &eff, nil)
			}

			// Check if trick is complete
			numPlayers := int(state.NumPlayers)
			if numPlayers == 0 {
				numPlayers = 2 // Default to 2 players
			}
			if len(state.CurrentTrick) >= numPlayers {
				// Resolve trick
				resolveTrick(state, genome, phase)
				return // Don't advance turn normally - resolveTrick sets next player
			}
		}

	case PhaseTypeBetting:
		if data, err := ParseBettingPhaseData(phase.Data); err == nil {
			action := BettingAction(BettingMoveBase - move.CardIndex)
			ApplyBettingAction(state, data, int(currentPlayer), action)
		}

	case PhaseTypeClaim:
		data, err := ParseClaimPhaseData(phase.Data)
		if err != nil {
			data = &ClaimPhaseData{ChallengePenalty: defaultClaimPenalty}
		}
		applyClaimMove(state, move, currentPlayer, data)

	case PhaseTypeBidding:
		if data, err := ParseBiddingPhaseData(phase.Data); err == nil {
			var bid Bid
			if move.TargetLoc == LocationDiscard {
				bid = Bid{IsNil: true}
			} else {
				bid = Bid{Value: MoveBidOffset - move.CardIndex}
			}
			_ = data
			ApplyBid(state, currentPlayer, bid)
		}
	}

	// Advance turn, honoring play direction and any pending skips the
	// applied effects queued up.
	if state.NumPlayers == 0 {
		state.CurrentPlayer = 1 - currentPlayer // Fallback for 2 players
	} else {
		AdvanceTurn(state)
		if state.BlockedPlayer >= 0 && state.CurrentPlayer == uint8(state.BlockedPlayer) {
			state.BlockedPlayer = -1
			step := int(state.PlayDirection)
			numPlayers := int(state.NumPlayers)
			state.CurrentPlayer = uint8((int(state.CurrentPlayer) + step + numPlayers) % numPlayers)
		}
	}
	state.TurnNumber++
}

// replenishDeck refills an empty deck from the discard pile, leaving the
// top discard in place. The recycled cards are reshuffled with a seed
// derived from the turn counter so the refresh is a pure function of state.
func replenishDeck(state *GameState) {
	if len(state.Deck) > 0 || len(state.Discard) <= 1 {
		return
	}
	top := state.Discard[len(state.Discard)-1]
	state.Deck = append(state.Deck, state.Discard[:len(state.Discard)-1]...)
	state.Discard = state.Discard[:0]
	state.Discard = append(state.Discard, top)
	state.ShuffleDeck(uint64(state.TurnNumber)*0x9e3779b97f4a7c15 + uint64(len(state.Deck)))
}

// applyTableauPlay moves a hand card to the tableau and resolves it per the
// state's tableau mode: War battles, rank-match captures, sequence piles,
// or a plain stacking pile.
func applyTableauPlay(state *GameState, genome *Genome, playerID uint8, cardIndex int, card Card) {
	hand := &state.Players[playerID].Hand
	*hand = append((*hand)[:cardIndex], (*hand)[cardIndex+1:]...)

	switch state.TableauMode {
	case 1: // war
		if len(state.Tableau) == 0 {
			state.Tableau = append(state.Tableau, make([]Card, 0, 10))
		}
		state.Tableau[0] = append(state.Tableau[0], card)
		if state.NumPlayers == 2 {
			resolveWarBattle(state)
		}

	case 2: // match_rank capture
		captured := captureMatchingRank(state, card)
		if len(captured) > 0 {
			captured = append(captured, card)
			points := int32(len(captured))
			points += capturePoints(genome, captured)
			state.Players[playerID].Score += points
			state.Discard = append(state.Discard, captured...)
		} else {
			if len(state.Tableau) == 0 {
				state.Tableau = append(state.Tableau, make([]Card, 0, 10))
			}
			state.Tableau[0] = append(state.Tableau[0], card)
		}

	case 3: // sequence building
		placeInSequence(state, card)

	default: // none: plain stacking pile
		if len(state.Tableau) == 0 {
			state.Tableau = append(state.Tableau, make([]Card, 0, 10))
		}
		state.Tableau[0] = append(state.Tableau[0], card)
	}
}

// captureMatchingRank removes and returns every tableau card whose rank
// matches the played card.
func captureMatchingRank(state *GameState, card Card) []Card {
	var captured []Card
	for p := range state.Tableau {
		pile := state.Tableau[p]
		kept := pile[:0]
		for _, c := range pile {
			if c.Rank == card.Rank {
				captured = append(captured, c)
			} else {
				kept = append(kept, c)
			}
		}
		state.Tableau[p] = kept
	}
	return captured
}

// capturePoints sums any explicit CAPTURE-triggered scoring rules over the
// captured cards. The one-point-per-card base is handled by the caller.
func capturePoints(genome *Genome, captured []Card) int32 {
	var points int32
	for _, rule := range genome.CardScoring {
		if rule.Trigger != TriggerCapture {
			continue
		}
		for _, c := range captured {
			if (rule.Suit == 255 || rule.Suit == c.Suit) &&
				(rule.Rank == 255 || rule.Rank == c.Rank) {
				points += int32(rule.Points)
			}
		}
	}
	return points
}

// placeInSequence appends a card to the first pile it legally extends, or
// to the first empty pile; the final fallback stacks on pile 0 so the card
// is never lost even for a move the generator should not have produced.
func placeInSequence(state *GameState, card Card) {
	if len(state.Tableau) == 0 {
		state.Tableau = append(state.Tableau, make([]Card, 0, 10))
	}
	for p, pile := range state.Tableau {
		if len(pile) > 0 && isValidSequencePlay(card, pile[len(pile)-1], state.SequenceDirection) {
			state.Tableau[p] = append(state.Tableau[p], card)
			return
		}
	}
	for p, pile := range state.Tableau {
		if len(pile) == 0 {
			state.Tableau[p] = append(state.Tableau[p], card)
			return
		}
	}
	state.Tableau[0] = append(state.Tableau[0], card)
}

// applySetPlay plays every held card of the encoded rank (a Go Fish style
// book) to the phase target, scoring one point per card laid down.
func applySetPlay(state *GameState, genome *Genome, playerID uint8, move *LegalMove) {
	rank := uint8(-(move.CardIndex - MultiCardPlayBase))
	hand := &state.Players[playerID].Hand
	played := 0
	for i := len(*hand) - 1; i >= 0; i-- {
		if (*hand)[i].Rank == rank {
			card := (*hand)[i]
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			state.Discard = append(state.Discard, card)
			played++
		}
	}
	state.Players[playerID].Score += int32(played)
}

// scoreCardPlay applies PLAY-triggered card scoring rules to a played card.
func scoreCardPlay(state *GameState, genome *Genome, playerID uint8, card Card) {
	for _, rule := range genome.CardScoring {
		if rule.Trigger != TriggerPlay {
			continue
		}
		if (rule.Suit == 255 || rule.Suit == card.Suit) &&
			(rule.Rank == 255 || rule.Rank == card.Rank) {
			state.Players[playerID].Score += int32(rule.Points)
		}
	}
}

// fireEffects triggers the genome's special effect for the played card's
// rank, if any. A non-wild play also clears a standing wild-suit override:
// the new top card supersedes the declared suit.
func fireEffects(state *GameState, genome *Genome, card Card) {
	eff, ok := genome.Effects[card.Rank]
	if !ok {
		if state.TableauWildSuit != 255 && len(state.CurrentTrick) == 0 {
			state.TableauWildSuit = 255
		}
		return
	}
	ApplyEffect(state, &eff, nil)
	if eff.EffectType != EFFECT_WILD_CARD && state.TableauWildSuit != 255 && len(state.CurrentTrick) == 0 {
		state.TableauWildSuit = 255
	}
}

// resolveTrick determines the winner and scores points
func resolveTrick(state *GameState, genome *Genome, phase PhaseDescriptor) {
	if len(state.CurrentTrick) == 0 {
		return
	}

	// Parse phase data
	trumpSuit := uint8(255) // None
	highCardWins := true
	breakingSuit := uint8(255)
	if len(phase.Data) >= 4 {
		trumpSuit = phase.Data[1]
		highCardWins = phase.Data[2] == 1
		breakingSuit = phase.Data[3]
	}

	leadSuit := state.CurrentTrick[0].Card.Suit
	if state.TableauWildSuit != 255 {
		leadSuit = state.TableauWildSuit
	}
	winnerIdx := 0
	winningCard := state.CurrentTrick[0].Card

	for i := 1; i < len(state.CurrentTrick); i++ {
		tc := state.CurrentTrick[i]
		card := tc.Card

		// Determine if this card beats the current winner
		beats := false

		if trumpSuit != 255 {
			// Trump game rules
			winnerIsTrump := winningCard.Suit == trumpSuit
			cardIsTrump := card.Suit == trumpSuit

			if cardIsTrump && !winnerIsTrump {
				// Trump beats non-trump
				beats = true
			} else if cardIsTrump && winnerIsTrump {
				// Both trump - compare ranks
				if highCardWins {
					beats = card.Rank > winningCard.Rank
				} else {
					beats = card.Rank < winningCard.Rank
				}
			} else if !cardIsTrump && !winnerIsTrump && card.Suit == leadSuit {
				// Neither trump - must follow suit to win
				if winningCard.Suit == leadSuit {
					if highCardWins {
						beats = card.Rank > winningCard.Rank
					} else {
						beats = card.Rank < winningCard.Rank
					}
				} else {
					// Current winner didn't follow suit, this card does
					beats = true
				}
			}
		} else {
			// No trump - only lead suit counts
			if card.Suit == leadSuit {
				if winningCard.Suit != leadSuit {
					beats = true
				} else if highCardWins {
					beats = card.Rank > winningCard.Rank
				} else {
					beats = card.Rank < winningCard.Rank
				}
			}
		}

		if beats {
			winnerIdx = i
			winningCard = card
		}
	}

	winner := state.CurrentTrick[winnerIdx].PlayerID

	state.Players[winner].Score += calculateTrickPoints(state, genome, breakingSuit)

	// Track tricks won
	if len(state.TricksWon) <= int(winner) {
		// Extend TricksWon slice if needed
		for len(state.TricksWon) <= int(winner) {
			state.TricksWon = append(state.TricksWon, 0)
		}
	}
	state.TricksWon[winner]++

	// Clear current trick
	state.CurrentTrick = state.CurrentTrick[:0]
	state.TableauWildSuit = 255

	// Settle team contracts once the hand is fully played out.
	if len(state.TeamScores) > 0 {
		allEmpty := true
		for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
			if len(state.Players[i].Hand) > 0 {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			if scoring := FindContractScoring(genome); scoring != nil {
				EvaluateContracts(state, scoring)
			}
		}
	}

	// Winner leads next trick
	state.CurrentPlayer = winner
	state.TrickLeader = winner
	state.TurnNumber++
}

// calculateTrickPoints totals the points the trick winner collects. Explicit
// TRICK_WIN card scoring rules take precedence; without any, the classic
// Hearts fallback applies (one per breaking-suit card, thirteen for the
// queen of spades).
func calculateTrickPoints(state *GameState, genome *Genome, breakingSuit uint8) int32 {
	points := int32(0)

	if len(genome.CardScoring) > 0 {
		for _, tc := range state.CurrentTrick {
			for _, rule := range genome.CardScoring {
				if rule.Trigger != TriggerTrickWin {
					continue
				}
				if (rule.Suit == 255 || rule.Suit == tc.Card.Suit) &&
					(rule.Rank == 255 || rule.Rank == tc.Card.Rank) {
					points += int32(rule.Points)
				}
			}
		}
		return points
	}

	for _, tc := range state.CurrentTrick {
		if breakingSuit != 255 && tc.Card.Suit == breakingSuit {
			points++
		}
		if tc.Card.Suit == 3 && tc.Card.Rank == 10 { // queen of spades
			points += 13
		}
	}
	return points
}

// resolveWarBattle handles War game card comparison
func resolveWarBattle(state *GameState) {
	// Check if both players have played (tableau has 2 cards)
	if len(state.Tableau) == 0 || len(state.Tableau[0]) < 2 {
		return
	}

	tableau := state.Tableau[0]
	card1 := tableau[len(tableau)-2] // Second-to-last card (player 0's card)
	card2 := tableau[len(tableau)-1] // Last card (player 1's card)

	// Compare ranks (Ace high: A=12, K=11, ..., 2=0)
	var winner uint8
	if card1.Rank > card2.Rank {
		winner = 0
	} else if card2.Rank > card1.Rank {
		winner = 1
	} else {
		// Tie - in simplified War, ties alternate by battle number (two
		// turns per battle) so neither seat gets a standing edge.
		winner = uint8((state.TurnNumber / 2) % 2)
	}

	// Winner takes all cards from tableau
	for _, card := range tableau {
		state.Players[winner].Hand = append(state.Players[winner].Hand, card)
	}

	// Clear tableau
	state.Tableau[0] = state.Tableau[0][:0]
}

// CheckWinConditions evaluates win conditions, returns winner ID or -1
// Exported so mcts package can use it
func CheckWinConditions(state *GameState, genome *Genome) int8 {
	n := int(state.NumPlayers)
	if n == 0 || n > len(state.Players) {
		n = len(state.Players)
	}

	for _, wc := range genome.WinConditions {
		switch wc.WinType {
		case 0: // empty_hand
			for playerID := 0; playerID < n; playerID++ {
				if len(state.Players[playerID].Hand) == 0 {
					return recordWin(state, int8(playerID))
				}
			}
		case 1: // high_score (highest score wins, triggers when anyone reaches threshold)
			maxScore := int32(-1)
			winner := int8(-1)
			triggered := false
			for playerID := 0; playerID < n; playerID++ {
				player := &state.Players[playerID]
				if player.Score >= wc.Threshold {
					triggered = true
				}
				if player.Score > maxScore {
					maxScore = player.Score
					winner = int8(playerID)
				}
			}
			if triggered && winner >= 0 {
				return recordWin(state, winner)
			}
		case 2: // first_to_score
			for playerID := 0; playerID < n; playerID++ {
				if state.Players[playerID].Score >= wc.Threshold {
					return recordWin(state, int8(playerID))
				}
			}
		case 3: // capture_all
			for playerID := 0; playerID < n; playerID++ {
				if len(state.Players[playerID].Hand) == 52 {
					return recordWin(state, int8(playerID))
				}
			}
		case 4: // low_score (Hearts: lowest score wins when anyone reaches threshold)
			minScore := int32(999999)
			winner := int8(-1)
			triggered := false
			for playerID := 0; playerID < n; playerID++ {
				player := &state.Players[playerID]
				if player.Score >= wc.Threshold {
					triggered = true
				}
				if player.Score < minScore {
					minScore = player.Score
					winner = int8(playerID)
				}
			}
			if triggered && winner >= 0 {
				return recordWin(state, winner)
			}
		case 5: // all_hands_empty (trick-taking: hand ends when all empty)
			allEmpty := true
			for playerID := 0; playerID < n; playerID++ {
				if len(state.Players[playerID].Hand) > 0 {
					allEmpty = false
					break
				}
			}
			if allEmpty {
				// In trick-taking games, lowest score wins when hand ends
				minScore := int32(999999)
				winner := int8(-1)
				for playerID := 0; playerID < n; playerID++ {
					if state.Players[playerID].Score < minScore {
						minScore = state.Players[playerID].Score
						winner = int8(playerID)
					}
				}
				return recordWin(state, winner)
			}

		case 6: // team_high_score: highest-scoring team wins once any team crosses threshold
			if len(state.TeamScores) == 0 {
				continue
			}
			triggered := false
			bestTeam := -1
			bestScore := int32(-1)
			for team, score := range state.TeamScores {
				if score >= wc.Threshold {
					triggered = true
				}
				if score > bestScore {
					bestScore = score
					bestTeam = team
				}
			}
			if triggered && bestTeam >= 0 {
				if playerID := firstPlayerOnTeam(state, bestTeam); playerID >= 0 {
					state.WinningTeam = int8(bestTeam)
					return playerID
				}
			}

		case 7: // team_first_to_score: first team to cross threshold wins
			if len(state.TeamScores) == 0 {
				continue
			}
			for team, score := range state.TeamScores {
				if score >= wc.Threshold {
					if playerID := firstPlayerOnTeam(state, team); playerID >= 0 {
						state.WinningTeam = int8(team)
						return playerID
					}
				}
			}

		case 8: // closest_to_target: point-total hand evaluation (blackjack-style)
			allDone := true
			for i := 0; i < int(state.NumPlayers) && i < len(state.HasStood); i++ {
				if !state.HasStood[i] && !state.Players[i].HasFolded {
					allDone = false
					break
				}
			}
			if allDone {
				return recordWin(state, FindBestPointTotalWinner(state, genome))
			}
		}
	}
	return -1
}

// recordWin stamps the winning player's team onto the state before the
// winner is reported, so team games can settle by team without the caller
// re-deriving the mapping. A winner outside the team map leaves WinningTeam
// untouched.
func recordWin(state *GameState, winner int8) int8 {
	if winner >= 0 && int(winner) < len(state.PlayerToTeam) {
		team := state.PlayerToTeam[winner]
		if team >= 0 && int(team) < len(state.TeamScores) {
			state.WinningTeam = team
		}
	}
	return winner
}

// firstPlayerOnTeam returns the lowest-indexed player assigned to a team,
// used to report a team win through the player-indexed WinnerID field.
func firstPlayerOnTeam(state *GameState, team int) int8 {
	for playerID, t := range state.PlayerToTeam {
		if int(t) == team {
			return int8(playerID)
		}
	}
	return -1
}
