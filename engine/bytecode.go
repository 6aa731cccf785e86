package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// OpCode is a stable bytecode opcode. Values are assigned once and never
// reused; the decoder rejects top-level opcodes it does not know.
type OpCode uint8

// Phase kind tags as they appear in the turn-structure section.
const (
	PhaseTypeDraw    = 1
	PhaseTypePlay    = 2
	PhaseTypeDiscard = 3
	PhaseTypeTrick   = 4
	PhaseTypeBetting = 5
	PhaseTypeClaim   = 6
	PhaseTypeBidding = 7
)

const (
	// Condition opcodes.
	OpCheckHandSize     OpCode = 0
	OpCheckCardRank     OpCode = 1
	OpCheckCardSuit     OpCode = 2
	OpCheckLocationSize OpCode = 3
	OpCheckSequence     OpCode = 4
	OpCheckHasSetOfN       OpCode = 5
	OpCheckHasRunOfN       OpCode = 6
	OpCheckHasMatchingPair OpCode = 7
	OpCheckChipCount       OpCode = 8
	OpCheckPotSize         OpCode = 9
	OpCheckCurrentBet      OpCode = 10
	OpCheckCanAfford       OpCode = 11
	// Candidate-card conditions, for valid_play_condition.
	OpCheckCardMatchesRank OpCode = 12
	OpCheckCardMatchesSuit OpCode = 13
	OpCheckCardBeatsTop    OpCode = 14

	// Action opcodes.
	OpDrawCards        OpCode = 20
	OpPlayCard         OpCode = 21
	OpDiscardCard      OpCode = 22
	OpSkipTurn         OpCode = 23
	OpReverseOrder     OpCode = 24
	OpDrawFromOpponent OpCode = 25
	OpDiscardPairs     OpCode = 26
	OpBet              OpCode = 27
	OpCall             OpCode = 28
	OpRaise            OpCode = 29
	OpFold             OpCode = 30
	OpCheck            OpCode = 31
	OpAllIn            OpCode = 32
	OpClaim            OpCode = 33
	OpChallenge        OpCode = 34
	OpReveal           OpCode = 35

	// Compound condition combinators.
	OpAnd OpCode = 40
	OpOr  OpCode = 41

	// Comparison operators (operator byte + 50).
	OpEQ OpCode = 50
	OpNE OpCode = 51
	OpLT OpCode = 52
	OpGT OpCode = 53
	OpLE OpCode = 54
	OpGE OpCode = 55
)

// OP_EFFECT_HEADER tags the special-effects section.
const OP_EFFECT_HEADER = 60

// BytecodeHeader is the fixed-layout header at the front of every genome.
//
// Two wire layouts exist. V1 is 36 bytes with no leading version byte:
// legacy version, genome hash, player count, turn cap, then four section
// offsets, all big-endian. V2 prepends a version byte (2), appends the
// tableau byte pair at offsets 37-38, and optionally two more section
// offsets at 39-46. The layouts are distinguishable because V1's first
// byte is the high byte of a small uint32 and therefore zero, never 2.
type BytecodeHeader struct {
	BytecodeVersion      uint8
	Version              uint32
	GenomeIDHash         uint64
	PlayerCount          uint32
	MaxTurns             uint32
	SetupOffset          int32
	TurnStructureOffset  int32
	WinConditionsOffset  int32
	ScoringOffset        int32
	TableauMode          uint8 // 0=none, 1=war, 2=match_rank, 3=sequence
	SequenceDirection    uint8 // 0=ascending, 1=descending, 2=both
	CardScoringOffset    int32 // V2 only; 0 when absent
	HandEvaluationOffset int32 // V2 only; 0 when absent
}

// ParseHeader decodes either header layout.
func ParseHeader(bytecode []byte) (*BytecodeHeader, error) {
	if len(bytecode) < 36 {
		return nil, errors.New("bytecode too short for header")
	}
	if bytecode[0] == 2 {
		return parseV2Header(bytecode)
	}
	return parseV1Header(bytecode)
}

func parseV1Header(bytecode []byte) (*BytecodeHeader, error) {
	return &BytecodeHeader{
		BytecodeVersion:     1,
		Version:             binary.BigEndian.Uint32(bytecode[0:4]),
		GenomeIDHash:        binary.BigEndian.Uint64(bytecode[4:12]),
		PlayerCount:         binary.BigEndian.Uint32(bytecode[12:16]),
		MaxTurns:            binary.BigEndian.Uint32(bytecode[16:20]),
		SetupOffset:         int32(binary.BigEndian.Uint32(bytecode[20:24])),
		TurnStructureOffset: int32(binary.BigEndian.Uint32(bytecode[24:28])),
		WinConditionsOffset: int32(binary.BigEndian.Uint32(bytecode[28:32])),
		ScoringOffset:       int32(binary.BigEndian.Uint32(bytecode[32:36])),
	}, nil
}

func parseV2Header(bytecode []byte) (*BytecodeHeader, error) {
	if len(bytecode) < 39 {
		return nil, fmt.Errorf("v2 bytecode too short: %d < 39", len(bytecode))
	}

	h := &BytecodeHeader{
		BytecodeVersion:     bytecode[0],
		Version:             binary.BigEndian.Uint32(bytecode[1:5]),
		GenomeIDHash:        binary.BigEndian.Uint64(bytecode[5:13]),
		PlayerCount:         binary.BigEndian.Uint32(bytecode[13:17]),
		MaxTurns:            binary.BigEndian.Uint32(bytecode[17:21]),
		SetupOffset:         int32(binary.BigEndian.Uint32(bytecode[21:25])),
		TurnStructureOffset: int32(binary.BigEndian.Uint32(bytecode[25:29])),
		WinConditionsOffset: int32(binary.BigEndian.Uint32(bytecode[29:33])),
		ScoringOffset:       int32(binary.BigEndian.Uint32(bytecode[33:37])),
		TableauMode:         bytecode[37],
		SequenceDirection:   bytecode[38],
	}

	// Older V2 producers stop at byte 39; the trailing offsets are
	// optional.
	if len(bytecode) >= 47 {
		h.CardScoringOffset = int32(binary.BigEndian.Uint32(bytecode[39:43]))
		h.HandEvaluationOffset = int32(binary.BigEndian.Uint32(bytecode[43:47]))
	}
	return h, nil
}

// Scoring triggers for CardScoringRule.
const (
	TriggerTrickWin    uint8 = 0
	TriggerCapture     uint8 = 1
	TriggerPlay        uint8 = 2
	TriggerHandEnd     uint8 = 3
	TriggerSetComplete uint8 = 4
)

// CardScoringRule awards Points when a matching card (255 wildcards
// either field) hits the rule's trigger.
type CardScoringRule struct {
	Suit    uint8
	Rank    uint8
	Points  int16
	Trigger uint8
}

// Hand evaluation methods.
const (
	EvalMethodNone         uint8 = 0
	EvalMethodHighCard     uint8 = 1
	EvalMethodPointTotal   uint8 = 2
	EvalMethodPatternMatch uint8 = 3
	EvalMethodCardCount    uint8 = 4
)

// CardValue is a rank's point value for POINT_TOTAL games; AltValue is
// the soft alternative (0 = none).
type CardValue struct {
	Rank     uint8
	Value    uint8
	AltValue uint8
}

// HandPattern is one poker-style hand shape.
type HandPattern struct {
	RankPriority   uint8
	RequiredCount  uint8
	SameSuitCount  uint8
	SequenceLength uint8
	SequenceWrap   bool
	SameRankGroups []uint8
	RequiredRanks  []uint8
}

// HandEvaluation is the decoded hand-comparison config.
type HandEvaluation struct {
	Method        uint8
	TargetValue   uint8
	BustThreshold uint8
	CardValues    []CardValue
	Patterns      []HandPattern
}

// Genome is a decoded bytecode genome. Decoding happens once per batch;
// the decoded value is shared read-only across workers.
type Genome struct {
	Header        *BytecodeHeader
	Bytecode      []byte
	TurnPhases    []PhaseDescriptor
	WinConditions []WinCondition
	Effects       map[uint8]SpecialEffect // trigger rank -> effect
	CardScoring   []CardScoringRule
	HandEval      *HandEvaluation
}

// PhaseDescriptor is one turn phase: its kind tag plus the raw payload
// bytes, whose layout depends on the kind.
type PhaseDescriptor struct {
	PhaseType uint8
	Data      []byte
}

// WinCondition pairs a win type with its threshold.
type WinCondition struct {
	WinType   uint8
	Threshold int32
}

// BettingPhaseData is a decoded PhaseTypeBetting payload.
type BettingPhaseData struct {
	MinBet    int
	MaxRaises int // bounds the round against raise wars
}

// ParseBettingPhaseData decodes min_bet:4 + max_raises:4, big-endian.
func ParseBettingPhaseData(data []byte) (*BettingPhaseData, error) {
	if len(data) < 8 {
		return nil, errors.New("betting phase data too short: need at least 8 bytes")
	}
	return &BettingPhaseData{
		MinBet:    int(binary.BigEndian.Uint32(data[0:4])),
		MaxRaises: int(binary.BigEndian.Uint32(data[4:8])),
	}, nil
}

// ClaimPhaseData is a decoded PhaseTypeClaim payload: the bluffing rules
// for Cheat-family games.
type ClaimPhaseData struct {
	MinClaimCount    int
	MaxClaimCount    int
	AllowBluff       bool
	ChallengePenalty int // cards the challenge loser draws
}

// ParseClaimPhaseData decodes min_count:1 + max_count:1 + flags:1 +
// challenge_penalty:1 + reserved:6.
func ParseClaimPhaseData(data []byte) (*ClaimPhaseData, error) {
	if len(data) < 10 {
		return nil, errors.New("claim phase data too short: need at least 10 bytes")
	}
	return &ClaimPhaseData{
		MinClaimCount:    int(data[0]),
		MaxClaimCount:    int(data[1]),
		AllowBluff:       data[2]&1 == 1,
		ChallengePenalty: int(data[3]),
	}, nil
}

// ParseGenome runs the one-pass decode: header, turn structure, win
// conditions, effects, and the optional V2 scoring/hand-evaluation
// sections. Same bytes always yield the same decoded value.
func ParseGenome(bytecode []byte) (*Genome, error) {
	header, err := ParseHeader(bytecode)
	if err != nil {
		return nil, err
	}

	genome := &Genome{Header: header, Bytecode: bytecode}

	if err := genome.parseTurnStructure(); err != nil {
		return nil, err
	}

	afterWins, err := genome.parseWinConditions()
	if err != nil {
		return nil, err
	}

	effects, _, err := parseEffects(bytecode, afterWins)
	if err != nil {
		return nil, fmt.Errorf("failed to parse effects: %w", err)
	}
	genome.Effects = effects

	// The V2 trailing offsets must land past the 47-byte V2 header;
	// anything smaller is V1 data misread as an offset.
	if header.CardScoringOffset >= 47 && int(header.CardScoringOffset) < len(bytecode) {
		scoring, err := ParseCardScoringRules(bytecode[header.CardScoringOffset:])
		if err != nil {
			return nil, fmt.Errorf("failed to parse card_scoring: %w", err)
		}
		genome.CardScoring = scoring
	}
	if header.HandEvaluationOffset >= 47 && int(header.HandEvaluationOffset) < len(bytecode) {
		eval, err := ParseHandEvaluation(bytecode[header.HandEvaluationOffset:])
		if err != nil {
			return nil, fmt.Errorf("failed to parse hand_evaluation: %w", err)
		}
		genome.HandEval = eval
	}

	return genome, nil
}

// phasePayloadLen returns the payload size for a phase at offset, or an
// error for a kind the decoder does not implement (UNSUPPORTED_OPCODE at
// the request level).
func (g *Genome) phasePayloadLen(phaseType uint8, offset int32) (int, error) {
	switch phaseType {
	case PhaseTypeDraw:
		// source:1 + count:4 + mandatory:1 + has_condition:1, plus a
		// 7-byte condition when the flag is set.
		if offset+7 > int32(len(g.Bytecode)) {
			return 0, errors.New("invalid draw phase data")
		}
		if g.Bytecode[offset+6] == 1 {
			return 14, nil
		}
		return 7, nil
	case PhaseTypePlay:
		// target:1 + min:1 + max:1 + mandatory:1 + pass_if_unable:1 +
		// condition_len:4 + condition bytes.
		if offset+9 > int32(len(g.Bytecode)) {
			return 0, errors.New("invalid play phase header")
		}
		conditionLen := int(binary.BigEndian.Uint32(g.Bytecode[offset+5 : offset+9]))
		return 9 + conditionLen, nil
	case PhaseTypeDiscard:
		return 6, nil // target:1 + count:4 + mandatory:1
	case PhaseTypeTrick:
		return 4, nil // lead_required:1 + trump:1 + high_wins:1 + breaking:1
	case PhaseTypeBetting:
		return 8, nil // min_bet:4 + max_raises:4
	case PhaseTypeClaim:
		return 10, nil
	case PhaseTypeBidding:
		return 16, nil // opcode:1 + bounds:3 + contract scoring:12
	}
	return 0, fmt.Errorf("unknown phase type: %d", phaseType)
}

func (g *Genome) parseTurnStructure() error {
	offset := g.Header.TurnStructureOffset
	if offset < 0 || offset >= int32(len(g.Bytecode)) {
		return errors.New("invalid turn structure offset")
	}

	phaseCount := int(binary.BigEndian.Uint32(g.Bytecode[offset : offset+4]))
	offset += 4

	g.TurnPhases = make([]PhaseDescriptor, 0, phaseCount)
	for i := 0; i < phaseCount; i++ {
		if offset >= int32(len(g.Bytecode)) {
			return errors.New("unexpected end of bytecode in turn structure")
		}
		phaseType := g.Bytecode[offset]
		offset++

		payloadLen, err := g.phasePayloadLen(phaseType, offset)
		if err != nil {
			return err
		}
		end := offset + int32(payloadLen)
		if end > int32(len(g.Bytecode)) {
			return errors.New("phase data exceeds bytecode length")
		}

		payload := make([]byte, payloadLen)
		copy(payload, g.Bytecode[offset:end])
		g.TurnPhases = append(g.TurnPhases, PhaseDescriptor{
			PhaseType: phaseType,
			Data:      payload,
		})
		offset = end
	}
	return nil
}

func (g *Genome) parseWinConditions() (int, error) {
	offset := g.Header.WinConditionsOffset
	if offset < 0 || offset >= int32(len(g.Bytecode)) {
		return 0, errors.New("invalid win conditions offset")
	}

	count := int(binary.BigEndian.Uint32(g.Bytecode[offset : offset+4]))
	offset += 4

	g.WinConditions = make([]WinCondition, count)
	for i := 0; i < count; i++ {
		if offset+5 > int32(len(g.Bytecode)) {
			return 0, errors.New("win condition data exceeds bytecode length")
		}
		g.WinConditions[i] = WinCondition{
			WinType:   g.Bytecode[offset],
			Threshold: int32(binary.BigEndian.Uint32(g.Bytecode[offset+1 : offset+5])),
		}
		offset += 5
	}
	return int(offset), nil
}

// parseEffects decodes the effects section at offset, if one is present:
// OP_EFFECT_HEADER, a count byte, then 4 bytes per effect. A later effect
// on the same trigger rank replaces an earlier one.
func parseEffects(data []byte, offset int) (map[uint8]SpecialEffect, int, error) {
	effects := make(map[uint8]SpecialEffect)

	if offset >= len(data) || data[offset] != OP_EFFECT_HEADER {
		return effects, offset, nil // no effects section
	}
	offset++

	if offset >= len(data) {
		return nil, offset, fmt.Errorf("truncated effects section: missing count")
	}
	count := int(data[offset])
	offset++

	if needed := count * 4; offset+needed > len(data) {
		return nil, offset, fmt.Errorf("truncated effects section: expected %d bytes, have %d",
			needed, len(data)-offset)
	}

	for i := 0; i < count; i++ {
		effect := SpecialEffect{
			TriggerRank: data[offset],
			EffectType:  data[offset+1],
			Target:      data[offset+2],
			Value:       data[offset+3],
		}
		effects[effect.TriggerRank] = effect
		offset += 4
	}
	return effects, offset, nil
}

// ParseCardScoringRules decodes count:2 then 5 bytes per rule
// (suit, rank, points:2, trigger).
func ParseCardScoringRules(data []byte) ([]CardScoringRule, error) {
	if len(data) < 2 {
		return nil, nil
	}
	count := binary.BigEndian.Uint16(data[0:2])
	if count == 0 {
		return nil, nil
	}

	rules := make([]CardScoringRule, count)
	offset := 2
	for i := range rules {
		if offset+5 > len(data) {
			return nil, fmt.Errorf("incomplete scoring rule at index %d", i)
		}
		rules[i] = CardScoringRule{
			Suit:    data[offset],
			Rank:    data[offset+1],
			Points:  int16(binary.BigEndian.Uint16(data[offset+2 : offset+4])),
			Trigger: data[offset+4],
		}
		offset += 5
	}
	return rules, nil
}

// sectionReader is a bounds-checked cursor over a byte slice, for the
// variable-length hand-evaluation section.
type sectionReader struct {
	data   []byte
	offset int
}

func (r *sectionReader) remaining() int { return len(r.data) - r.offset }

func (r *sectionReader) byte() (uint8, bool) {
	if r.offset >= len(r.data) {
		return 0, false
	}
	b := r.data[r.offset]
	r.offset++
	return b, true
}

func (r *sectionReader) bytes(n int) ([]byte, bool) {
	if r.offset+n > len(r.data) {
		return nil, false
	}
	out := r.data[r.offset : r.offset+n]
	r.offset += n
	return out, true
}

// ParseHandEvaluation decodes method:1 + target:1 + bust:1, a card-value
// list (count:1 then rank/value/alt triples), and an optional pattern
// list. Method NONE (or no data at all) decodes to nil, a valid "no hand
// evaluation" result.
func ParseHandEvaluation(data []byte) (*HandEvaluation, error) {
	if len(data) == 0 || data[0] == EvalMethodNone {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("hand evaluation data too short: need at least 4 bytes, got %d", len(data))
	}
	if data[0] > EvalMethodCardCount {
		return nil, fmt.Errorf("unknown evaluation method: %d", data[0])
	}

	eval := &HandEvaluation{
		Method:        data[0],
		TargetValue:   data[1],
		BustThreshold: data[2],
	}
	r := &sectionReader{data: data, offset: 3}

	valueCount, _ := r.byte()
	const cardValueSize = 3 // rank + value + alt_value
	raw, ok := r.bytes(int(valueCount) * cardValueSize)
	if !ok {
		return nil, fmt.Errorf("truncated card values: expected %d bytes, have %d",
			int(valueCount)*cardValueSize, r.remaining())
	}
	eval.CardValues = make([]CardValue, valueCount)
	for i := range eval.CardValues {
		eval.CardValues[i] = CardValue{
			Rank:     raw[i*cardValueSize],
			Value:    raw[i*cardValueSize+1],
			AltValue: raw[i*cardValueSize+2],
		}
	}

	patternCount, ok := r.byte()
	if !ok {
		return eval, nil // patterns are optional
	}

	eval.Patterns = make([]HandPattern, 0, patternCount)
	for i := 0; i < int(patternCount); i++ {
		header, ok := r.bytes(5) // priority, req_count, same_suit, seq_len, seq_wrap
		if !ok {
			return nil, fmt.Errorf("truncated pattern header at index %d", i)
		}
		p := HandPattern{
			RankPriority:   header[0],
			RequiredCount:  header[1],
			SameSuitCount:  header[2],
			SequenceLength: header[3],
			SequenceWrap:   header[4] == 1,
		}

		groupCount, ok := r.byte()
		if !ok {
			return nil, fmt.Errorf("truncated pattern: missing group count at index %d", i)
		}
		groups, ok := r.bytes(int(groupCount))
		if !ok {
			return nil, fmt.Errorf("truncated same rank groups at pattern %d", i)
		}
		p.SameRankGroups = append([]uint8(nil), groups...)

		rankCount, ok := r.byte()
		if !ok {
			return nil, fmt.Errorf("truncated pattern: missing rank count at index %d", i)
		}
		ranks, ok := r.bytes(int(rankCount))
		if !ok {
			return nil, fmt.Errorf("truncated required ranks at pattern %d", i)
		}
		p.RequiredRanks = append([]uint8(nil), ranks...)

		eval.Patterns = append(eval.Patterns, p)
	}
	return eval, nil
}
