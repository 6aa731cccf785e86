package genome

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSON is the genome's controller-facing encoding. Two dialects arrive on
// the wire: this package's own shape (phase type plus a nested "data"
// object) and the controller's flat shape (phase fields inlined, enum
// names in SCREAMING_CASE, effects under "special_effects"). Decoding
// accepts both; encoding always produces the nested shape.

// phaseEnvelope is the union of both dialects for a single phase entry.
type phaseEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`

	// Flat-dialect fields.
	Source             string         `json:"source,omitempty"`
	Target             string         `json:"target,omitempty"`
	Count              int            `json:"count,omitempty"`
	Mandatory          bool           `json:"mandatory,omitempty"`
	MinCards           int            `json:"min_cards,omitempty"`
	MaxCards           int            `json:"max_cards,omitempty"`
	ValidPlayCondition *conditionNode `json:"valid_play_condition,omitempty"`
	Condition          *conditionNode `json:"condition,omitempty"`
	LeadSuitRequired   bool           `json:"lead_suit_required,omitempty"`
	TrumpSuit          *string        `json:"trump_suit,omitempty"`
	HighCardWins       bool           `json:"high_card_wins,omitempty"`
	BreakingSuit       *string        `json:"breaking_suit,omitempty"`
	MinBet             int            `json:"min_bet,omitempty"`
	MaxRaises          int            `json:"max_raises,omitempty"`
	MinBid             int            `json:"min_bid,omitempty"`
	MaxBid             int            `json:"max_bid,omitempty"`
	AllowNil           bool           `json:"allow_nil,omitempty"`
	SequentialRank     bool           `json:"sequential_rank,omitempty"`
	AllowChallenge     bool           `json:"allow_challenge,omitempty"`
	PilePenalty        bool           `json:"pile_penalty,omitempty"`
}

type turnStructureJSON struct {
	Phases            []json.RawMessage `json:"phases"`
	MaxTurns          int               `json:"max_turns,omitempty"`
	TableauMode       string            `json:"tableau_mode,omitempty"`
	SequenceDirection string            `json:"sequence_direction,omitempty"`
	IsTrickBased      bool              `json:"is_trick_based,omitempty"`
	TricksPerHand     *int              `json:"tricks_per_hand,omitempty"`
}

type setupJSON struct {
	CardsPerPlayer int    `json:"cards_per_player"`
	TableauSize    int    `json:"tableau_size,omitempty"`
	StartingChips  int    `json:"starting_chips,omitempty"`
	DealToTableau  int    `json:"deal_to_tableau,omitempty"`
	// Flat-dialect extras; the setup-level tableau fields win over the
	// turn-structure ones when both appear.
	InitialDeck         string `json:"initial_deck,omitempty"`
	InitialDiscardCount int    `json:"initial_discard_count,omitempty"`
	TrumpSuit           string `json:"trump_suit,omitempty"`
	TableauMode         string `json:"tableau_mode,omitempty"`
	SequenceDirection   string `json:"sequence_direction,omitempty"`
}

type genomeJSON struct {
	Name          string             `json:"name,omitempty"`
	Setup         json.RawMessage    `json:"setup"`
	TurnStructure turnStructureJSON  `json:"turn_structure"`
	WinConditions []winConditionJSON `json:"win_conditions"`
	Effects       []SpecialEffect    `json:"effects,omitempty"`
	CardScoring   []CardScoringRule  `json:"card_scoring,omitempty"`
	HandEval      *HandEvaluation    `json:"hand_evaluation,omitempty"`
	Teams         *TeamConfig        `json:"teams,omitempty"`

	// Flat-dialect extras.
	SchemaVersion  string           `json:"schema_version,omitempty"`
	GenomeID       string           `json:"genome_id,omitempty"`
	Generation     int              `json:"generation,omitempty"`
	SpecialEffects []namedEffect    `json:"special_effects,omitempty"`
	ScoringRules   []int            `json:"scoring_rules,omitempty"`
	MaxTurns       int              `json:"max_turns,omitempty"`
	MinTurns       int              `json:"min_turns,omitempty"`
	PlayerCount    int              `json:"player_count,omitempty"`
}

// namedEffect is the flat dialect's effect entry: every field an enum name.
type namedEffect struct {
	TriggerRank string `json:"trigger_rank"`
	EffectType  string `json:"effect_type"`
	Target      string `json:"target"`
	Value       int    `json:"value"`
}

type winConditionJSON struct {
	Type      string `json:"type"`
	Threshold int32  `json:"threshold,omitempty"`
}

type drawPhaseJSON struct {
	Source    string         `json:"source"`
	Count     int            `json:"count"`
	Mandatory bool           `json:"mandatory"`
	Condition *conditionNode `json:"condition,omitempty"`
}

type playPhaseJSON struct {
	Target             string         `json:"target"`
	MinCards           int            `json:"min_cards"`
	MaxCards           int            `json:"max_cards"`
	Mandatory          bool           `json:"mandatory"`
	PassIfUnable       bool           `json:"pass_if_unable"`
	ValidPlayCondition *conditionNode `json:"valid_play_condition,omitempty"`
}

type discardPhaseJSON struct {
	Target    string `json:"target"`
	Count     int    `json:"count"`
	Mandatory bool   `json:"mandatory"`
}

type trickPhaseJSON struct {
	LeadSuitRequired bool   `json:"lead_suit_required"`
	TrumpSuit        string `json:"trump_suit,omitempty"`
	HighCardWins     bool   `json:"high_card_wins"`
	BreakingSuit     string `json:"breaking_suit,omitempty"`
}

type bettingPhaseJSON struct {
	MinBet    int `json:"min_bet"`
	MaxRaises int `json:"max_raises"`
}

type claimPhaseJSON struct{}

type biddingPhaseJSON struct {
	MinBid                int  `json:"min_bid"`
	MaxBid                int  `json:"max_bid"`
	AllowNil              bool `json:"allow_nil"`
	PointsPerTrickBid     int  `json:"points_per_trick_bid,omitempty"`
	OvertrickPoints       int  `json:"overtrick_points,omitempty"`
	FailedContractPenalty int  `json:"failed_contract_penalty,omitempty"`
	NilBonus              int  `json:"nil_bonus,omitempty"`
	NilPenalty            int  `json:"nil_penalty,omitempty"`
	BagLimit              int  `json:"bag_limit,omitempty"`
	BagPenalty            int  `json:"bag_penalty,omitempty"`
}

// conditionNode is the union condition encoding: either this package's
// atomic form (op_code/operator/value/ref_loc) or the flat dialect's
// simple/compound tree with enum-named fields.
type conditionNode struct {
	OpCode   string `json:"op_code,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    int32  `json:"value,omitempty"`
	RefLoc   string `json:"ref_loc,omitempty"`

	Type          string          `json:"type,omitempty"`           // "simple" | "compound"
	ConditionType string          `json:"condition_type,omitempty"` // flat enum name
	Reference     interface{}     `json:"reference,omitempty"`
	Logic         string          `json:"logic,omitempty"` // "AND" | "OR"
	Conditions    []conditionNode `json:"conditions,omitempty"`
}

// Name tables. Each enum keeps one slice indexed by value; lookups go
// through nameOf/valueOf so the forward and reverse mappings can never
// drift apart.

var locationNames = []string{"deck", "hand", "discard", "tableau", "opponent_hand", "captured"}
var suitNames = []string{"hearts", "diamonds", "clubs", "spades"}
var tableauModeNames = []string{"none", "war", "match_rank", "sequence"}
var sequenceDirNames = []string{"ascending", "descending", "both"}
var winTypeNames = []string{
	"empty_hand", "high_score", "first_to_score", "capture_all",
	"low_score", "all_hands_empty", "best_hand", "most_captured",
}
var rankNames = []string{
	"two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "jack", "queen", "king", "ace",
}

// Condition opcodes and comparison operators are sparse, so they keep
// explicit value maps instead of dense slices.
var opCodeByName = map[string]uint8{
	"check_hand_size":         0,
	"check_card_rank":         1,
	"check_card_suit":         2,
	"check_location_size":     3,
	"check_sequence":          4,
	"check_card_matches_rank": 12,
	"check_card_matches_suit": 13,
	"check_card_beats_top":    14,
}

// Operators use the engine's 0-based comparison codes.
var operatorByName = map[string]uint8{
	"eq": OperatorEQ, "ne": OperatorNE, "lt": OperatorLT,
	"gt": OperatorGT, "le": OperatorLE, "ge": OperatorGE,
}

// Flat-dialect spellings that differ from this package's canonical names.
var flatConditionTypes = map[string]uint8{
	"HAND_SIZE":     0,
	"CARD_RANK":     1,
	"CARD_SUIT":     2,
	"LOCATION_SIZE": 3,
	"SEQUENCE":      4,
	"MATCH_RANK":    12,
	"MATCH_SUIT":    13,
	"BEATS_TOP":     14,
}

var flatOperators = map[string]uint8{
	"EQ": OperatorEQ, "EQUALS": OperatorEQ, "==": OperatorEQ,
	"NE": OperatorNE, "NOT_EQUALS": OperatorNE, "!=": OperatorNE,
	"LT": OperatorLT, "LESS_THAN": OperatorLT, "<": OperatorLT,
	"GT": OperatorGT, "GREATER_THAN": OperatorGT, ">": OperatorGT,
	"LE": OperatorLE, "LESS_EQUAL": OperatorLE, "<=": OperatorLE,
	"GE": OperatorGE, "GREATER_EQUAL": OperatorGE, ">=": OperatorGE,
}

var flatEffectNames = map[string]EffectType{
	"SKIP_NEXT": EffectSkipNext, "SKIP": EffectSkipNext,
	"REVERSE":      EffectReverse,
	"DRAW_TWO":     EffectDrawTwo,
	"DRAW_FOUR":    EffectDrawFour,
	"WILD":         EffectWild,
	"SWAP_HANDS":   EffectSwapHands,
	"BLOCK_NEXT":   EffectBlockNext,
	"BLOCK":        EffectBlockNext,
	"STEAL_CARD":   EffectStealCard,
	"PEEK_HAND":    EffectPeekHand,
	"DISCARD_PILE": EffectDiscardPile,
}

var flatTargetNames = map[string]uint8{
	"NEXT": 0, "NEXT_PLAYER": 0,
	"PREVIOUS": 1, "PREVIOUS_PLAYER": 1,
	"ALL": 2, "ALL_PLAYERS": 2,
	"SELF":   3,
	"CHOSEN": 4, "CHOSEN_PLAYER": 4,
}

// valueOf resolves a name against a dense table, case-insensitively,
// falling back to zero. Every enum decode here is total: unknown names map
// to the zero value rather than erroring, matching the engine's
// unknown-input-is-false posture.
func valueOf(names []string, s string) uint8 {
	lower := strings.ToLower(s)
	for v, name := range names {
		if name == lower {
			return uint8(v)
		}
	}
	return 0
}

// nameOf is the reverse of valueOf; out-of-range values take index 0's
// name.
func nameOf(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return names[0]
}

// parseSuit is valueOf over suits plus the "none"/empty sentinel (255).
func parseSuit(s string) uint8 {
	lower := strings.ToLower(s)
	for v, name := range suitNames {
		if name == lower {
			return uint8(v)
		}
	}
	return 255
}

func suitName(suit uint8) string {
	if int(suit) < len(suitNames) {
		return suitNames[suit]
	}
	return "none"
}

// parseRank accepts a word ("queen"), a numeral ("10"), or a pip letter
// ("Q"), returning the 0-based rank (0 = two, 12 = ace).
func parseRank(s string) uint8 {
	lower := strings.ToLower(s)
	for v, name := range rankNames {
		if name == lower {
			return uint8(v)
		}
	}
	switch lower {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return lower[0] - '2'
	case "10":
		return 8
	case "j":
		return 9
	case "q":
		return 10
	case "k":
		return 11
	case "a":
		return 12
	}
	return 0
}

// UnmarshalJSON decodes either dialect into a GameGenome.
func (g *GameGenome) UnmarshalJSON(data []byte) error {
	var raw genomeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode genome: %w", err)
	}

	g.Name = raw.Name
	if g.Name == "" {
		g.Name = raw.GenomeID // flat dialect identifies by genome_id
	}
	g.Generation = raw.Generation

	var setup setupJSON
	if err := json.Unmarshal(raw.Setup, &setup); err != nil {
		return fmt.Errorf("decode setup: %w", err)
	}
	g.Setup = SetupRules{
		CardsPerPlayer: setup.CardsPerPlayer,
		TableauSize:    setup.TableauSize,
		StartingChips:  setup.StartingChips,
		DealToTableau:  setup.DealToTableau,
	}

	g.Effects = raw.Effects
	g.CardScoring = raw.CardScoring
	g.HandEval = raw.HandEval
	g.Teams = raw.Teams

	if len(raw.SpecialEffects) > 0 {
		g.Effects = make([]SpecialEffect, len(raw.SpecialEffects))
		for i, e := range raw.SpecialEffects {
			g.Effects[i] = SpecialEffect{
				TriggerRank: parseRank(e.TriggerRank),
				Effect:      flatEffectNames[strings.ToUpper(e.EffectType)],
				Target:      flatTargetNames[strings.ToUpper(e.Target)],
				Value:       uint8(e.Value),
			}
		}
	}

	g.TurnStructure.MaxTurns = raw.TurnStructure.MaxTurns
	if g.TurnStructure.MaxTurns == 0 {
		g.TurnStructure.MaxTurns = raw.MaxTurns // flat dialect hoists it
	}
	g.TurnStructure.IsTrickBased = raw.TurnStructure.IsTrickBased

	tableauMode := raw.TurnStructure.TableauMode
	if setup.TableauMode != "" {
		tableauMode = setup.TableauMode
	}
	g.TurnStructure.TableauMode = TableauMode(valueOf(tableauModeNames, tableauMode))

	seqDir := raw.TurnStructure.SequenceDirection
	if setup.SequenceDirection != "" {
		seqDir = setup.SequenceDirection
	}
	g.TurnStructure.SequenceDirection = SequenceDirection(valueOf(sequenceDirNames, seqDir))

	g.TurnStructure.Phases = make([]Phase, 0, len(raw.TurnStructure.Phases))
	for i, entry := range raw.TurnStructure.Phases {
		var env phaseEnvelope
		if err := json.Unmarshal(entry, &env); err != nil {
			return fmt.Errorf("decode phase %d: %w", i, err)
		}
		phase, err := decodePhase(env)
		if err != nil {
			return fmt.Errorf("phase %d: %w", i, err)
		}
		g.TurnStructure.Phases = append(g.TurnStructure.Phases, phase)
	}

	g.WinConditions = make([]WinCondition, len(raw.WinConditions))
	for i, wc := range raw.WinConditions {
		g.WinConditions[i] = WinCondition{
			Type:      WinConditionType(valueOf(winTypeNames, wc.Type)),
			Threshold: wc.Threshold,
		}
	}
	return nil
}

// MarshalJSON always emits the nested dialect.
func (g *GameGenome) MarshalJSON() ([]byte, error) {
	setupBytes, err := json.Marshal(setupJSON{
		CardsPerPlayer: g.Setup.CardsPerPlayer,
		TableauSize:    g.Setup.TableauSize,
		StartingChips:  g.Setup.StartingChips,
		DealToTableau:  g.Setup.DealToTableau,
	})
	if err != nil {
		return nil, fmt.Errorf("encode setup: %w", err)
	}

	raw := genomeJSON{
		Name:        g.Name,
		Generation:  g.Generation,
		Setup:       setupBytes,
		Effects:     g.Effects,
		CardScoring: g.CardScoring,
		HandEval:    g.HandEval,
		Teams:       g.Teams,
	}

	raw.TurnStructure.MaxTurns = g.TurnStructure.MaxTurns
	raw.TurnStructure.IsTrickBased = g.TurnStructure.IsTrickBased
	raw.TurnStructure.TableauMode = nameOf(tableauModeNames, uint8(g.TurnStructure.TableauMode))
	raw.TurnStructure.SequenceDirection = nameOf(sequenceDirNames, uint8(g.TurnStructure.SequenceDirection))

	raw.TurnStructure.Phases = make([]json.RawMessage, len(g.TurnStructure.Phases))
	for i, phase := range g.TurnStructure.Phases {
		env, err := encodePhase(phase)
		if err != nil {
			return nil, fmt.Errorf("encode phase %d: %w", i, err)
		}
		entry, err := json.Marshal(env)
		if err != nil {
			return nil, fmt.Errorf("encode phase %d: %w", i, err)
		}
		raw.TurnStructure.Phases[i] = entry
	}

	raw.WinConditions = make([]winConditionJSON, len(g.WinConditions))
	for i, wc := range g.WinConditions {
		raw.WinConditions[i] = winConditionJSON{
			Type:      nameOf(winTypeNames, uint8(wc.Type)),
			Threshold: wc.Threshold,
		}
	}
	return json.Marshal(raw)
}

// decodePhase turns one envelope into a typed phase. Nested "data" wins
// when present; otherwise the flat fields are used.
func decodePhase(env phaseEnvelope) (Phase, error) {
	kind := strings.TrimSuffix(strings.ToLower(env.Type), "phase")
	nested := len(env.Data) > 0

	switch kind {
	case "draw":
		if nested {
			var p drawPhaseJSON
			if err := json.Unmarshal(env.Data, &p); err != nil {
				return nil, fmt.Errorf("draw payload: %w", err)
			}
			return &DrawPhase{
				Source:    Location(valueOf(locationNames, p.Source)),
				Count:     p.Count,
				Mandatory: p.Mandatory,
				Condition: decodeCondition(p.Condition),
			}, nil
		}
		return &DrawPhase{
			Source:    Location(valueOf(locationNames, env.Source)),
			Count:     env.Count,
			Mandatory: env.Mandatory,
			Condition: decodeCondition(env.Condition),
		}, nil

	case "play":
		if nested {
			var p playPhaseJSON
			if err := json.Unmarshal(env.Data, &p); err != nil {
				return nil, fmt.Errorf("play payload: %w", err)
			}
			return &PlayPhase{
				Target:             Location(valueOf(locationNames, p.Target)),
				MinCards:           p.MinCards,
				MaxCards:           p.MaxCards,
				Mandatory:          p.Mandatory,
				PassIfUnable:       p.PassIfUnable,
				ValidPlayCondition: decodeCondition(p.ValidPlayCondition),
			}, nil
		}
		return &PlayPhase{
			Target:    Location(valueOf(locationNames, env.Target)),
			MinCards:  env.MinCards,
			MaxCards:  env.MaxCards,
			Mandatory: env.Mandatory,
			// The flat dialect has no pass flag: an optional play phase is
			// exactly one the player may pass out of.
			PassIfUnable:       !env.Mandatory,
			ValidPlayCondition: decodeCondition(env.ValidPlayCondition),
		}, nil

	case "discard":
		if nested {
			var p discardPhaseJSON
			if err := json.Unmarshal(env.Data, &p); err != nil {
				return nil, fmt.Errorf("discard payload: %w", err)
			}
			return &DiscardPhase{
				Target:    Location(valueOf(locationNames, p.Target)),
				Count:     p.Count,
				Mandatory: p.Mandatory,
			}, nil
		}
		return &DiscardPhase{
			Target:    Location(valueOf(locationNames, env.Target)),
			Count:     env.Count,
			Mandatory: env.Mandatory,
		}, nil

	case "trick":
		if nested {
			var p trickPhaseJSON
			if err := json.Unmarshal(env.Data, &p); err != nil {
				return nil, fmt.Errorf("trick payload: %w", err)
			}
			return &TrickPhase{
				LeadSuitRequired: p.LeadSuitRequired,
				TrumpSuit:        parseSuit(p.TrumpSuit),
				HighCardWins:     p.HighCardWins,
				BreakingSuit:     parseSuit(p.BreakingSuit),
			}, nil
		}
		return &TrickPhase{
			LeadSuitRequired: env.LeadSuitRequired,
			TrumpSuit:        parseSuit(deref(env.TrumpSuit)),
			HighCardWins:     env.HighCardWins,
			BreakingSuit:     parseSuit(deref(env.BreakingSuit)),
		}, nil

	case "betting":
		if nested {
			var p bettingPhaseJSON
			if err := json.Unmarshal(env.Data, &p); err != nil {
				return nil, fmt.Errorf("betting payload: %w", err)
			}
			return &BettingPhase{MinBet: p.MinBet, MaxRaises: p.MaxRaises}, nil
		}
		return &BettingPhase{MinBet: env.MinBet, MaxRaises: env.MaxRaises}, nil

	case "claim":
		return &ClaimPhase{}, nil

	case "bidding":
		if nested {
			var p biddingPhaseJSON
			if err := json.Unmarshal(env.Data, &p); err != nil {
				return nil, fmt.Errorf("bidding payload: %w", err)
			}
			return &BiddingPhase{
				MinBid:                p.MinBid,
				MaxBid:                p.MaxBid,
				AllowNil:              p.AllowNil,
				PointsPerTrickBid:     p.PointsPerTrickBid,
				OvertrickPoints:       p.OvertrickPoints,
				FailedContractPenalty: p.FailedContractPenalty,
				NilBonus:              p.NilBonus,
				NilPenalty:            p.NilPenalty,
				BagLimit:              p.BagLimit,
				BagPenalty:            p.BagPenalty,
			}, nil
		}
		return &BiddingPhase{MinBid: env.MinBid, MaxBid: env.MaxBid, AllowNil: env.AllowNil}, nil
	}

	return nil, fmt.Errorf("unknown phase type: %s", env.Type)
}

// encodePhase builds the nested envelope for a typed phase. Like every
// internal phase dispatch, an unknown kind is a programming error.
func encodePhase(phase Phase) (phaseEnvelope, error) {
	var env phaseEnvelope
	var payload interface{}

	switch p := phase.(type) {
	case *DrawPhase:
		env.Type = "draw"
		payload = drawPhaseJSON{
			Source:    nameOf(locationNames, uint8(p.Source)),
			Count:     p.Count,
			Mandatory: p.Mandatory,
			Condition: encodeCondition(p.Condition),
		}
	case *PlayPhase:
		env.Type = "play"
		payload = playPhaseJSON{
			Target:             nameOf(locationNames, uint8(p.Target)),
			MinCards:           p.MinCards,
			MaxCards:           p.MaxCards,
			Mandatory:          p.Mandatory,
			PassIfUnable:       p.PassIfUnable,
			ValidPlayCondition: encodeCondition(p.ValidPlayCondition),
		}
	case *DiscardPhase:
		env.Type = "discard"
		payload = discardPhaseJSON{
			Target:    nameOf(locationNames, uint8(p.Target)),
			Count:     p.Count,
			Mandatory: p.Mandatory,
		}
	case *TrickPhase:
		env.Type = "trick"
		payload = trickPhaseJSON{
			LeadSuitRequired: p.LeadSuitRequired,
			TrumpSuit:        suitName(p.TrumpSuit),
			HighCardWins:     p.HighCardWins,
			BreakingSuit:     suitName(p.BreakingSuit),
		}
	case *BettingPhase:
		env.Type = "betting"
		payload = bettingPhaseJSON{MinBet: p.MinBet, MaxRaises: p.MaxRaises}
	case *ClaimPhase:
		env.Type = "claim"
		payload = claimPhaseJSON{}
	case *BiddingPhase:
		env.Type = "bidding"
		payload = biddingPhaseJSON{
			MinBid:                p.MinBid,
			MaxBid:                p.MaxBid,
			AllowNil:              p.AllowNil,
			PointsPerTrickBid:     p.PointsPerTrickBid,
			OvertrickPoints:       p.OvertrickPoints,
			FailedContractPenalty: p.FailedContractPenalty,
			NilBonus:              p.NilBonus,
			NilPenalty:            p.NilPenalty,
			BagLimit:              p.BagLimit,
			BagPenalty:            p.BagPenalty,
		}
	default:
		return env, fmt.Errorf("unknown phase type: %T", phase)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return env, err
	}
	env.Data = data
	return env, nil
}

// decodeCondition resolves a condition node from either dialect. The typed
// Condition is atomic; a compound node decodes to its first child (the
// bytecode VM evaluates full compound trees, the typed interpreter takes
// the leading term).
func decodeCondition(node *conditionNode) *Condition {
	if node == nil {
		return nil
	}

	if node.Type == "compound" && len(node.Conditions) > 0 {
		return decodeCondition(&node.Conditions[0])
	}
	if node.Type == "simple" || node.ConditionType != "" {
		return decodeFlatCondition(node)
	}

	return &Condition{
		OpCode:   opCodeByName[node.OpCode],
		Operator: operatorByName[node.Operator],
		Value:    node.Value,
		RefLoc:   valueOf(locationNames, node.RefLoc),
	}
}

// decodeFlatCondition handles the flat dialect's enum-named conditions,
// where the comparison value may arrive as a number, a suit name, or a
// rank name.
func decodeFlatCondition(node *conditionNode) *Condition {
	value := node.Value
	switch ref := node.Reference.(type) {
	case string:
		if suit := parseSuit(ref); suit != 255 {
			value = int32(suit)
		} else {
			value = int32(parseRank(ref))
		}
	case float64:
		value = int32(ref)
	case int:
		value = int32(ref)
	}

	return &Condition{
		OpCode:   flatConditionTypes[strings.ToUpper(node.ConditionType)],
		Operator: flatOperators[strings.ToUpper(node.Operator)],
		Value:    value,
	}
}

func encodeCondition(c *Condition) *conditionNode {
	if c == nil {
		return nil
	}
	name := "check_hand_size"
	for n, v := range opCodeByName {
		if v == c.OpCode {
			name = n
			break
		}
	}
	op := "eq"
	for n, v := range operatorByName {
		if v == c.Operator {
			op = n
			break
		}
	}
	return &conditionNode{
		OpCode:   name,
		Operator: op,
		Value:    c.Value,
		RefLoc:   nameOf(locationNames, c.RefLoc),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// LoadGenomeFromJSON decodes a genome from either JSON dialect.
func LoadGenomeFromJSON(data []byte) (*GameGenome, error) {
	genome := &GameGenome{}
	if err := json.Unmarshal(data, genome); err != nil {
		return nil, err
	}
	return genome, nil
}

// SaveGenomeToJSON encodes a genome, indented for human diffing.
func SaveGenomeToJSON(genome *GameGenome) ([]byte, error) {
	return json.MarshalIndent(genome, "", "  ")
}
