package engine

import "errors"

var errShortContractScoring = errors.New("engine: contract scoring data too short")

// Move encoding sentinels for phase kinds whose legal actions aren't a
// plain hand-card index. CardIndex >= 0 always means "play hand card at
// this index"; everything below 0 is a reserved action code.
const (
	MoveDraw      = -1 // draw/hit in a DrawPhase
	MoveDrawPass  = -3 // pass/stand in an optional DrawPhase
	MovePlayPass  = -4 // pass in a PlayPhase with pass_if_unable
	MoveChallenge = -5 // challenge the current claim
	MovePass      = -6 // decline to challenge the current claim

	// MultiCardPlayBase: a multi-card set play of rank R is encoded as
	// -(R + 100), so CardIndex <= -100 decodes via rank = -(CardIndex+100).
	MultiCardPlayBase = -100

	// MoveBidOffset anchors bidding moves: a bid of N tricks encodes as
	// MoveBidOffset - N (always <= MoveBidOffset, strictly below the
	// betting range above it). A nil bid is signalled via TargetLoc.
	MoveBidOffset = -1000

	// Betting actions encode as -10-int(BettingAction); BettingAction's
	// range (0..5) keeps this band clear of MoveBidOffset's below it and
	// the claim/pass sentinels above it.
	BettingMoveBase = -10
)

// BiddingPhase describes a Spades-style bidding round: each player commits
// to a number of tricks (or a nil bid) before play begins.
type BiddingPhase struct {
	MinBid   int
	MaxBid   int
	AllowNil bool
}

// Bid is one legal bidding action.
type Bid struct {
	Value int // tricks bid; meaningless when IsNil
	IsNil bool
}

// GenerateBidMoves enumerates legal bids given a phase's bounds and the
// bidder's hand size (a bid can never exceed cards in hand).
func GenerateBidMoves(phase BiddingPhase, handSize int) []Bid {
	maxBid := phase.MaxBid
	if handSize < maxBid {
		maxBid = handSize
	}

	bids := make([]Bid, 0, maxBid-phase.MinBid+2)
	if phase.AllowNil {
		bids = append(bids, Bid{IsNil: true})
	}
	for v := phase.MinBid; v <= maxBid; v++ {
		bids = append(bids, Bid{Value: v})
	}
	return bids
}

// ApplyBid records a player's bid and, once every active player has bid,
// closes the bidding round and sums each team's contract.
func ApplyBid(state *GameState, playerID uint8, bid Bid) {
	player := &state.Players[playerID]
	if bid.IsNil {
		player.CurrentBid = 0
		player.IsNilBid = true
	} else {
		player.CurrentBid = int8(bid.Value)
		player.IsNilBid = false
	}

	allBid := true
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		if state.Players[i].CurrentBid < 0 {
			allBid = false
			break
		}
	}
	if !allBid {
		return
	}

	state.BiddingComplete = true
	if len(state.TeamScores) == 0 {
		return
	}
	state.TeamContracts = make([]int8, len(state.TeamScores))
	for i := 0; i < int(state.NumPlayers) && i < len(state.PlayerToTeam); i++ {
		if state.Players[i].IsNilBid {
			continue
		}
		team := state.PlayerToTeam[i]
		state.TeamContracts[team] += state.Players[i].CurrentBid
	}
}

// Team lists the player indices belonging to one team.
type Team []int8

// ParseTeams decodes team assignments from bytecode. Format:
// team_count:1 + (player_count:1 + player_idx:1...) * team_count
func ParseTeams(data []byte) []Team {
	if len(data) == 0 {
		return nil
	}
	teamCount := int(data[0])
	offset := 1
	teams := make([]Team, 0, teamCount)
	for t := 0; t < teamCount; t++ {
		if offset >= len(data) {
			break
		}
		playerCount := int(data[offset])
		offset++
		team := make(Team, 0, playerCount)
		for p := 0; p < playerCount && offset < len(data); p++ {
			team = append(team, int8(data[offset]))
			offset++
		}
		teams = append(teams, team)
	}
	return teams
}

// InitializeTeams wires a parsed team assignment onto the game state,
// sizing the team-scoped score/contract/bag slices.
func (gs *GameState) InitializeTeams(teams []Team) {
	gs.PlayerToTeam = make([]int8, len(gs.Players))
	for teamIdx, team := range teams {
		for _, playerIdx := range team {
			if int(playerIdx) < len(gs.PlayerToTeam) {
				gs.PlayerToTeam[playerIdx] = int8(teamIdx)
			}
		}
	}
	gs.TeamScores = make([]int32, len(teams))
	gs.TeamContracts = make([]int8, len(teams))
	gs.AccumulatedBags = make([]int8, len(teams))
}

// ContractScoring holds the point values for resolving a bidding round's
// contracts into team scores, once all tricks in the hand are played.
type ContractScoring struct {
	PointsPerTrickBid     uint16
	OvertrickPoints       uint16
	FailedContractPenalty uint16
	NilBonus              uint16
	NilPenalty            uint16
	BagLimit              uint8
	BagPenalty            uint16
}

// BiddingPhaseData is a BiddingPhase plus the contract scoring it feeds,
// as parsed directly from a PhaseTypeBidding descriptor's 16-byte payload:
// opcode:1 + min_bid:1 + max_bid:1 + flags:1 + points_per_trick:1 +
// overtrick_points:1 + failed_contract_penalty:1 + nil_bonus:2 +
// nil_penalty:2 + bag_limit:1 + bag_penalty:2 + reserved:2.
type BiddingPhaseData struct {
	Phase   BiddingPhase
	Scoring ContractScoring
}

// FindContractScoring locates a genome's PhaseTypeBidding descriptor, if
// any, and returns its contract scoring. Used at hand-end to settle
// team contracts once every player's hand is empty.
func FindContractScoring(genome *Genome) *ContractScoring {
	for _, phase := range genome.TurnPhases {
		if phase.PhaseType != PhaseTypeBidding {
			continue
		}
		data, err := ParseBiddingPhaseData(phase.Data)
		if err != nil {
			return nil
		}
		return &data.Scoring
	}
	return nil
}

// ParseBiddingPhaseData decodes a PhaseTypeBidding descriptor's payload.
func ParseBiddingPhaseData(data []byte) (*BiddingPhaseData, error) {
	if len(data) < 16 {
		return nil, errShortContractScoring
	}
	le16 := func(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
	return &BiddingPhaseData{
		Phase: BiddingPhase{
			MinBid:   int(data[1]),
			MaxBid:   int(data[2]),
			AllowNil: data[3]&1 == 1,
		},
		Scoring: ContractScoring{
			PointsPerTrickBid:     uint16(data[4]),
			OvertrickPoints:       uint16(data[5]),
			FailedContractPenalty: uint16(data[6]),
			NilBonus:              le16(data[7:9]),
			NilPenalty:            le16(data[9:11]),
			BagLimit:              data[11],
			BagPenalty:            le16(data[12:14]),
		},
	}, nil
}
