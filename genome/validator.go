package genome

import (
	"fmt"
)

// StandardDeckSize is the card count of the single-deck universe.
const StandardDeckSize = 52

// DefaultPlayerCount applies when a genome doesn't imply a player count.
const DefaultPlayerCount = 2

// ValidationError is one structural problem found in a genome.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GenomeValidator checks that a genome's parts can actually work together
// before any simulation is spent on it. Validation never rejects a merely
// bad game - only one whose rules are structurally incoherent.
type GenomeValidator struct{}

// genomeCheck is one validation rule.
type genomeCheck func(g *GameGenome, playerCount int) []ValidationError

var genomeChecks = []genomeCheck{
	checkDeckBudget,
	checkScoreWinsHaveScoring,
	checkBestHandHasPatterns,
	checkBettingHasChips,
	checkCaptureWinsHaveCaptureMode,
	checkPatternArithmetic,
	checkHasCardPlay,
	checkBetSizing,
	checkTeams,
	checkBiddingHasTricks,
}

// Validate runs every check and returns all findings (empty = valid).
func (v *GenomeValidator) Validate(genome *GameGenome) []ValidationError {
	playerCount := impliedPlayerCount(genome)

	var errors []ValidationError
	for _, check := range genomeChecks {
		errors = append(errors, check(genome, playerCount)...)
	}
	return errors
}

// impliedPlayerCount derives the seat count: a team assignment names its
// players, otherwise the default applies.
func impliedPlayerCount(g *GameGenome) int {
	count := DefaultPlayerCount
	if g.Teams != nil && g.Teams.Enabled {
		for _, team := range g.Teams.Teams {
			for _, idx := range team {
				if idx+1 > count {
					count = idx + 1
				}
			}
		}
	}
	return count
}

func winTypeSet(g *GameGenome) map[WinConditionType]bool {
	set := make(map[WinConditionType]bool, len(g.WinConditions))
	for _, wc := range g.WinConditions {
		set[wc.Type] = true
	}
	return set
}

func checkDeckBudget(g *GameGenome, playerCount int) []ValidationError {
	needed := g.Setup.CardsPerPlayer*playerCount + g.Setup.DealToTableau
	if needed <= StandardDeckSize {
		return nil
	}
	return []ValidationError{{
		Field:   "setup.cards_per_player",
		Message: fmt.Sprintf("Setup requires %d cards but deck only has %d", needed, StandardDeckSize),
	}}
}

func checkScoreWinsHaveScoring(g *GameGenome, _ int) []ValidationError {
	wins := winTypeSet(g)
	scoreBased := wins[WinTypeHighScore] || wins[WinTypeLowScore] || wins[WinTypeFirstToScore]
	if !scoreBased || len(g.CardScoring) > 0 {
		return nil
	}
	// Scores can also come from bidding contracts or a point-total hand
	// evaluation (blackjack-style).
	if g.HandEval != nil && g.HandEval.Method == EvalMethodPointTotal {
		return nil
	}
	for _, phase := range g.TurnStructure.Phases {
		if _, ok := phase.(*BiddingPhase); ok {
			return nil
		}
	}
	return []ValidationError{{
		Field:   "win_conditions",
		Message: "Score-based win condition requires card_scoring",
	}}
}

func checkBestHandHasPatterns(g *GameGenome, _ int) []ValidationError {
	if !winTypeSet(g)[WinTypeBestHand] {
		return nil
	}
	if g.HandEval != nil && g.HandEval.Method == EvalMethodPatternMatch {
		return nil
	}
	return []ValidationError{{
		Field:   "win_conditions",
		Message: "best_hand win condition requires hand_evaluation with PATTERN_MATCH",
	}}
}

func checkBettingHasChips(g *GameGenome, _ int) []ValidationError {
	for _, phase := range g.TurnStructure.Phases {
		if _, ok := phase.(*BettingPhase); ok {
			if g.Setup.StartingChips <= 0 {
				return []ValidationError{{
					Field:   "setup.starting_chips",
					Message: "BettingPhase requires setup.starting_chips > 0",
				}}
			}
			return nil
		}
	}
	return nil
}

func checkCaptureWinsHaveCaptureMode(g *GameGenome, _ int) []ValidationError {
	wins := winTypeSet(g)
	if !wins[WinTypeCaptureAll] && !wins[WinTypeMostCaptured] {
		return nil
	}
	mode := g.TurnStructure.TableauMode
	if mode == TableauModeWar || mode == TableauModeMatchRank {
		return nil
	}
	// Trick-taking captures too: won tricks are captured cards.
	for _, phase := range g.TurnStructure.Phases {
		if _, ok := phase.(*TrickPhase); ok {
			return nil
		}
	}
	return []ValidationError{{
		Field:   "turn_structure.tableau_mode",
		Message: "Capture win condition requires tableau_mode WAR or MATCH_RANK",
	}}
}

func checkPatternArithmetic(g *GameGenome, _ int) []ValidationError {
	if g.HandEval == nil {
		return nil
	}
	var errors []ValidationError
	for _, pattern := range g.HandEval.Patterns {
		if pattern.RequiredCount == 0 || len(pattern.SameRankGroups) == 0 {
			continue
		}
		sum := uint8(0)
		for _, group := range pattern.SameRankGroups {
			sum += group
		}
		if sum > pattern.RequiredCount {
			errors = append(errors, ValidationError{
				Field: "hand_evaluation.patterns",
				Message: fmt.Sprintf("HandPattern '%s': same_rank_groups sum (%d) exceeds required_count (%d)",
					pattern.Name, sum, pattern.RequiredCount),
			})
		}
	}
	return errors
}

func checkHasCardPlay(g *GameGenome, _ int) []ValidationError {
	hasBetting := false
	for _, phase := range g.TurnStructure.Phases {
		switch phase.(type) {
		case *PlayPhase, *DrawPhase, *DiscardPhase, *TrickPhase, *ClaimPhase:
			return nil
		case *BettingPhase:
			hasBetting = true
		}
	}
	// A pure showdown game is still a card game: the dealt hands decide it.
	if hasBetting && g.HandEval != nil {
		return nil
	}
	return []ValidationError{{
		Field:   "turn_structure.phases",
		Message: "Game has no card play phases (needs PlayPhase, DrawPhase, DiscardPhase, or TrickPhase)",
	}}
}

func checkBetSizing(g *GameGenome, _ int) []ValidationError {
	starting := g.Setup.StartingChips
	if starting <= 0 {
		return nil
	}
	var errors []ValidationError
	for _, phase := range g.TurnStructure.Phases {
		bp, ok := phase.(*BettingPhase)
		if !ok || bp.MinBet <= 0 {
			continue
		}
		// Above half the stack a player can bet at most once per game.
		if bp.MinBet > starting/2 {
			errors = append(errors, ValidationError{
				Field: "betting_phase.min_bet",
				Message: fmt.Sprintf("BettingPhase min_bet (%d) is too high relative to starting_chips (%d) - limits meaningful betting",
					bp.MinBet, starting),
			})
		}
	}
	return errors
}

func checkTeams(g *GameGenome, playerCount int) []ValidationError {
	if g.Teams == nil || !g.Teams.Enabled {
		return nil
	}

	if len(g.Teams.Teams) < 2 {
		return []ValidationError{{
			Field:   "teams",
			Message: fmt.Sprintf("Team mode requires at least 2 teams, got %d", len(g.Teams.Teams)),
		}}
	}

	var errors []ValidationError
	seen := make(map[int]bool)
	for teamIdx, team := range g.Teams.Teams {
		if len(team) == 0 {
			errors = append(errors, ValidationError{
				Field:   "teams",
				Message: fmt.Sprintf("Team %d is empty", teamIdx),
			})
			continue
		}
		for _, playerIdx := range team {
			if playerIdx < 0 || playerIdx >= playerCount {
				errors = append(errors, ValidationError{
					Field:   "teams",
					Message: fmt.Sprintf("Player index %d out of range [0, %d)", playerIdx, playerCount),
				})
			}
			if seen[playerIdx] {
				errors = append(errors, ValidationError{
					Field:   "teams",
					Message: fmt.Sprintf("Duplicate player %d appears in multiple teams", playerIdx),
				})
			}
			seen[playerIdx] = true
		}
	}

	for i := 0; i < playerCount; i++ {
		if !seen[i] {
			errors = append(errors, ValidationError{
				Field:   "teams",
				Message: fmt.Sprintf("Player %d not assigned to any team", i),
			})
		}
	}
	return errors
}

func checkBiddingHasTricks(g *GameGenome, _ int) []ValidationError {
	hasBidding, hasTrick := false, false
	for _, phase := range g.TurnStructure.Phases {
		switch phase.(type) {
		case *BiddingPhase:
			hasBidding = true
		case *TrickPhase:
			hasTrick = true
		}
	}
	if hasBidding && !hasTrick {
		return []ValidationError{{
			Field:   "turn_structure.phases",
			Message: "BiddingPhase requires at least one TrickPhase (contracts need tricks)",
		}}
	}
	return nil
}

// ValidateGenome validates with a throwaway validator.
func ValidateGenome(genome *GameGenome) []ValidationError {
	v := &GenomeValidator{}
	return v.Validate(genome)
}

// IsValid reports whether a genome passes every check.
func IsValid(genome *GameGenome) bool {
	return len(ValidateGenome(genome)) == 0
}
