// Package main is a worker binary speaking the newline-delimited JSON
// framing (§6) over stdin/stdout: one command per line in, one response per
// line out. Genome bytecode crosses the wire base64-encoded inside the JSON
// envelope, matching the structured scenarios a controller plays back
// move-by-move for human playtesting and tooling.
package main

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"go.uber.org/ratelimit"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

// Command is one incoming line of the worker protocol.
type Command struct {
	Action    string          `json:"action"`
	Genome    json.RawMessage `json:"genome,omitempty"`
	State     json.RawMessage `json:"state,omitempty"`
	MoveIndex int             `json:"move_index,omitempty"`
	AIType    string          `json:"ai_type,omitempty"`
	Seed      int64           `json:"seed,omitempty"`
}

// Response is one outgoing line of the worker protocol.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	State   json.RawMessage `json:"state,omitempty"`
	Moves   []MoveInfo      `json:"moves,omitempty"`
	Winner  int             `json:"winner,omitempty"`
	AIMove  *MoveInfo       `json:"ai_move,omitempty"`
}

// MoveInfo describes a legal move for a controller to present or replay.
type MoveInfo struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	CardIndex int    `json:"card_index"`
}

// SerializedState is the JSON-friendly mirror of engine.GameState used at
// the worker boundary, so a controller can persist/replay a position
// without pulling in the bytecode representation.
type SerializedState struct {
	Players       []SerializedPlayer `json:"players"`
	Deck          []SerializedCard   `json:"deck"`
	Discard       []SerializedCard   `json:"discard"`
	Tableau       [][]SerializedCard `json:"tableau"`
	CurrentPlayer int                `json:"current_player"`
	TurnNumber    int                `json:"turn_number"`
	WinnerID      int                `json:"winner_id"`
	NumPlayers    int                `json:"num_players"`

	Pot             int64 `json:"pot"`
	CurrentBet      int64 `json:"current_bet"`
	BettingComplete bool  `json:"betting_complete"`

	CurrentTrick []SerializedTrickCard `json:"current_trick,omitempty"`
	TrickLeader  int                   `json:"trick_leader"`
	TricksWon    []int                 `json:"tricks_won,omitempty"`
	HeartsBroken bool                  `json:"hearts_broken"`
}

// SerializedPlayer mirrors engine.PlayerState in JSON form.
type SerializedPlayer struct {
	Hand       []SerializedCard `json:"hand"`
	Score      int              `json:"score"`
	Active     bool             `json:"active"`
	Chips      int64            `json:"chips"`
	CurrentBet int64            `json:"current_bet"`
	HasFolded  bool             `json:"has_folded"`
	IsAllIn    bool             `json:"is_all_in"`
}

// SerializedCard mirrors engine.Card in JSON form.
type SerializedCard struct {
	Rank int `json:"rank"`
	Suit int `json:"suit"`
}

// SerializedTrickCard mirrors engine.TrickCard in JSON form.
type SerializedTrickCard struct {
	PlayerID int            `json:"player_id"`
	Card     SerializedCard `json:"card"`
}

var (
	currentGenome *engine.Genome
	currentState  *engine.GameState
)

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, len(buf))

	// Caps how fast we'll answer malformed lines: a controller stuck in a
	// tight reconnect-and-resend loop on bad input gets throttled instead
	// of spinning this process at 100% CPU writing error responses.
	malformedLimiter := ratelimit.New(50, ratelimit.WithoutSlack)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var cmd Command
		if err := json.Unmarshal([]byte(line), &cmd); err != nil {
			malformedLimiter.Take()
			writeResponse(&Response{Success: false, Error: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}

		writeResponse(handleCommand(&cmd))
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("error reading stdin: %v", err)
	}
}

func writeResponse(resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Fatalf("error marshaling response: %v", err)
	}
	fmt.Println(string(data))
}

func handleCommand(cmd *Command) *Response {
	switch cmd.Action {
	case "ping":
		return &Response{Success: true}
	case "start_game":
		return handleStartGame(cmd)
	case "apply_move":
		return handleApplyMove(cmd)
	case "validate_genome":
		return handleValidateGenome(cmd)
	case "get_ai_move":
		return handleGetAIMove(cmd)
	default:
		return &Response{Success: false, Error: fmt.Sprintf("unknown action: %s", cmd.Action)}
	}
}

func handleStartGame(cmd *Command) *Response {
	bytecode, errResp := decodeGenome(cmd.Genome)
	if errResp != nil {
		return errResp
	}

	genome, err := engine.ParseGenome(bytecode)
	if err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("failed to parse genome: %v", err)}
	}
	currentGenome = genome

	state := engine.GetState()
	setupDeck(state, uint64(cmd.Seed))

	cardsPerPlayer, initialDiscardCount, startingChips := readSetup(genome)

	numPlayers := int(genome.Header.PlayerCount)
	if numPlayers == 0 || numPlayers > 4 {
		numPlayers = 2
	}
	state.NumPlayers = uint8(numPlayers)
	state.CardsPerPlayer = cardsPerPlayer
	state.TableauMode = genome.Header.TableauMode
	state.SequenceDirection = genome.Header.SequenceDirection
	if genome.Header.BytecodeVersion <= 1 && state.TableauMode == 0 {
		// V1 bytecode predates the tableau header fields; its tableau games
		// were all War-style battles.
		state.TableauMode = 1
	}

	for i := 0; i < cardsPerPlayer; i++ {
		for p := 0; p < numPlayers; p++ {
			state.DrawCard(uint8(p), engine.LocationDeck)
		}
	}

	if initialDiscardCount > 0 && len(state.Deck) >= initialDiscardCount {
		for i := 0; i < initialDiscardCount; i++ {
			if len(state.Deck) == 0 {
				break
			}
			card := state.Deck[len(state.Deck)-1]
			state.Deck = state.Deck[:len(state.Deck)-1]
			state.Discard = append(state.Discard, card)
		}
	}

	if startingChips > 0 {
		state.InitializeChips(startingChips)
	}

	currentState = state

	moves := engine.GenerateLegalMoves(state, genome)
	winner := engine.CheckWinConditions(state, genome)

	stateJSON, err := json.Marshal(serializeState(state))
	if err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("failed to serialize state: %v", err)}
	}

	return &Response{
		Success: true,
		State:   stateJSON,
		Moves:   convertMoves(moves, state, genome),
		Winner:  int(winner),
	}
}

func handleApplyMove(cmd *Command) *Response {
	if currentGenome == nil || currentState == nil {
		return &Response{Success: false, Error: "no game in progress - call start_game first"}
	}

	if len(cmd.State) > 0 {
		var serialized SerializedState
		if err := json.Unmarshal(cmd.State, &serialized); err != nil {
			return &Response{Success: false, Error: fmt.Sprintf("invalid state: %v", err)}
		}
		deserializeState(&serialized, currentState)
	}

	moves := engine.GenerateLegalMoves(currentState, currentGenome)
	if cmd.MoveIndex < 0 || cmd.MoveIndex >= len(moves) {
		return &Response{Success: false, Error: fmt.Sprintf("invalid move index %d (have %d moves)", cmd.MoveIndex, len(moves))}
	}

	move := &moves[cmd.MoveIndex]
	engine.ApplyMove(currentState, move, currentGenome)

	winner := engine.CheckWinConditions(currentState, currentGenome)
	newMoves := engine.GenerateLegalMoves(currentState, currentGenome)

	stateJSON, err := json.Marshal(serializeState(currentState))
	if err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("failed to serialize state: %v", err)}
	}

	return &Response{
		Success: true,
		State:   stateJSON,
		Moves:   convertMoves(newMoves, currentState, currentGenome),
		Winner:  int(winner),
	}
}

func handleGetAIMove(cmd *Command) *Response {
	if currentGenome == nil || currentState == nil {
		return &Response{Success: false, Error: "no game in progress - call start_game first"}
	}

	if len(cmd.State) > 0 {
		var serialized SerializedState
		if err := json.Unmarshal(cmd.State, &serialized); err != nil {
			return &Response{Success: false, Error: fmt.Sprintf("invalid state: %v", err)}
		}
		deserializeState(&serialized, currentState)
	}

	moves := engine.GenerateLegalMoves(currentState, currentGenome)
	if len(moves) == 0 {
		return &Response{Success: false, Error: "no legal moves available"}
	}

	var moveIdx int
	switch cmd.AIType {
	case "random":
		moveIdx = rand.New(rand.NewSource(cmd.Seed)).Intn(len(moves))
	default:
		moveIdx = rand.New(rand.NewSource(cmd.Seed)).Intn(len(moves))
	}

	moveInfos := convertMoves(moves, currentState, currentGenome)
	aiMove := moveInfos[moveIdx]
	aiMove.Index = moveIdx

	return &Response{Success: true, AIMove: &aiMove}
}

func handleValidateGenome(cmd *Command) *Response {
	bytecode, errResp := decodeGenome(cmd.Genome)
	if errResp != nil {
		return errResp
	}

	genome, err := engine.ParseGenome(bytecode)
	if err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("failed to parse genome: %v", err)}
	}

	const validationGames = 5
	for i := 0; i < validationGames; i++ {
		if err := runValidationGame(genome, i); err != nil {
			return &Response{Success: false, Error: fmt.Sprintf("genome crashed on validation game %d: %v", i, err)}
		}
	}

	return &Response{Success: true}
}

// runValidationGame plays one throwaway game against a candidate genome.
// A malformed genome can drive the interpreter into a panic (bad index,
// nil dereference); recovered here so one bad genome can't take down the
// worker process, matching the batch executor's per-game isolation.
func runValidationGame(genome *engine.Genome, gameIndex int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	state := engine.GetState()
	defer engine.PutState(state)
	setupDeck(state, uint64(time.Now().UnixNano())+uint64(gameIndex))

	cardsPerPlayer, _, _ := readSetup(genome)
	numPlayers := int(genome.Header.PlayerCount)
	if numPlayers == 0 || numPlayers > 4 {
		numPlayers = 2
	}
	state.NumPlayers = uint8(numPlayers)
	state.CardsPerPlayer = cardsPerPlayer
	for c := 0; c < cardsPerPlayer; c++ {
		for p := 0; p < numPlayers; p++ {
			state.DrawCard(uint8(p), engine.LocationDeck)
		}
	}

	for turn := uint32(0); turn < genome.Header.MaxTurns; turn++ {
		if engine.CheckWinConditions(state, genome) >= 0 {
			break
		}
		moves := engine.GenerateLegalMoves(state, genome)
		if len(moves) == 0 {
			break
		}
		move := moves[rand.Intn(len(moves))]
		engine.ApplyMove(state, &move, genome)
	}
	return nil
}

func decodeGenome(raw json.RawMessage) ([]byte, *Response) {
	var genomeB64 string
	if err := json.Unmarshal(raw, &genomeB64); err != nil {
		return nil, &Response{Success: false, Error: fmt.Sprintf("invalid genome field: %v", err)}
	}
	bytecode, err := base64.StdEncoding.DecodeString(genomeB64)
	if err != nil {
		return nil, &Response{Success: false, Error: fmt.Sprintf("invalid base64 genome: %v", err)}
	}
	return bytecode, nil
}

func readSetup(genome *engine.Genome) (cardsPerPlayer, initialDiscardCount, startingChips int) {
	cardsPerPlayer = 26
	if genome.Header.SetupOffset > 0 && genome.Header.SetupOffset+12 <= int32(len(genome.Bytecode)) {
		off := genome.Header.SetupOffset
		cardsPerPlayer = int(int32(beUint32(genome.Bytecode[off : off+4])))
		initialDiscardCount = int(int32(beUint32(genome.Bytecode[off+4 : off+8])))
		startingChips = int(int32(beUint32(genome.Bytecode[off+8 : off+12])))
	}
	return
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func setupDeck(state *engine.GameState, seed uint64) {
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			state.Deck = append(state.Deck, engine.Card{Rank: rank, Suit: suit})
		}
	}
	state.ShuffleDeck(seed)
}

func convertMoves(moves []engine.LegalMove, state *engine.GameState, genome *engine.Genome) []MoveInfo {
	infos := make([]MoveInfo, len(moves))
	for i, m := range moves {
		label := "move"
		moveType := "unknown"
		switch {
		case m.CardIndex == -1:
			moveType = "draw"
			label = "Draw"
		case m.CardIndex >= 0:
			moveType = "play"
			if m.CardIndex < len(state.Players[state.CurrentPlayer].Hand) {
				card := state.Players[state.CurrentPlayer].Hand[m.CardIndex]
				label = fmt.Sprintf("Play %d of suit %d", card.Rank, card.Suit)
			}
		}
		infos[i] = MoveInfo{Index: i, Label: label, Type: moveType, CardIndex: m.CardIndex}
	}
	return infos
}

func serializeState(s *engine.GameState) *SerializedState {
	out := &SerializedState{
		CurrentPlayer:   int(s.CurrentPlayer),
		TurnNumber:      int(s.TurnNumber),
		WinnerID:        int(s.WinnerID),
		NumPlayers:      int(s.NumPlayers),
		Pot:             s.Pot,
		CurrentBet:      s.CurrentBet,
		BettingComplete: s.BettingComplete,
		TrickLeader:     int(s.TrickLeader),
		HeartsBroken:    s.HeartsBroken,
	}

	numPlayers := int(s.NumPlayers)
	if numPlayers == 0 {
		numPlayers = len(s.Players)
	}
	for i := 0; i < numPlayers && i < len(s.Players); i++ {
		p := s.Players[i]
		out.Players = append(out.Players, SerializedPlayer{
			Hand:       serializeCards(p.Hand),
			Score:      int(p.Score),
			Active:     p.Active,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			HasFolded:  p.HasFolded,
			IsAllIn:    p.IsAllIn,
		})
	}

	out.Deck = serializeCards(s.Deck)
	out.Discard = serializeCards(s.Discard)
	for _, pile := range s.Tableau {
		out.Tableau = append(out.Tableau, serializeCards(pile))
	}
	for _, tc := range s.CurrentTrick {
		out.CurrentTrick = append(out.CurrentTrick, SerializedTrickCard{
			PlayerID: int(tc.PlayerID),
			Card:     SerializedCard{Rank: int(tc.Card.Rank), Suit: int(tc.Card.Suit)},
		})
	}
	for _, tw := range s.TricksWon {
		out.TricksWon = append(out.TricksWon, int(tw))
	}
	return out
}

func serializeCards(cards []engine.Card) []SerializedCard {
	out := make([]SerializedCard, len(cards))
	for i, c := range cards {
		out[i] = SerializedCard{Rank: int(c.Rank), Suit: int(c.Suit)}
	}
	return out
}

func deserializeState(src *SerializedState, dst *engine.GameState) {
	dst.CurrentPlayer = uint8(src.CurrentPlayer)
	dst.TurnNumber = uint32(src.TurnNumber)
	dst.WinnerID = int8(src.WinnerID)
	dst.NumPlayers = uint8(src.NumPlayers)
	dst.Pot = src.Pot
	dst.CurrentBet = src.CurrentBet
	dst.BettingComplete = src.BettingComplete
	dst.TrickLeader = uint8(src.TrickLeader)
	dst.HeartsBroken = src.HeartsBroken

	dst.Players = dst.Players[:0]
	for _, p := range src.Players {
		dst.Players = append(dst.Players, engine.PlayerState{
			Hand:       deserializeCards(p.Hand),
			Score:      int32(p.Score),
			Active:     p.Active,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			HasFolded:  p.HasFolded,
			IsAllIn:    p.IsAllIn,
		})
	}

	dst.Deck = deserializeCards(src.Deck)
	dst.Discard = deserializeCards(src.Discard)
	dst.Tableau = dst.Tableau[:0]
	for _, pile := range src.Tableau {
		dst.Tableau = append(dst.Tableau, deserializeCards(pile))
	}
	dst.CurrentTrick = dst.CurrentTrick[:0]
	for _, tc := range src.CurrentTrick {
		dst.CurrentTrick = append(dst.CurrentTrick, engine.TrickCard{
			PlayerID: uint8(tc.PlayerID),
			Card:     engine.Card{Rank: uint8(tc.Card.Rank), Suit: uint8(tc.Card.Suit)},
		})
	}
	dst.TricksWon = dst.TricksWon[:0]
	for _, tw := range src.TricksWon {
		dst.TricksWon = append(dst.TricksWon, uint8(tw))
	}
}

func deserializeCards(cards []SerializedCard) []engine.Card {
	out := make([]engine.Card, len(cards))
	for i, c := range cards {
		out[i] = engine.Card{Rank: uint8(c.Rank), Suit: uint8(c.Suit)}
	}
	return out
}
