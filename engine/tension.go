package engine

// TensionMetrics tracks tension curve data during simulation
type TensionMetrics struct {
	LeadChanges   int     // Number of times leader switched
	DecisiveTurn  int     // Observation index (0-based) when the final leader took its PERMANENT lead
	ClosestMargin float32 // Smallest normalized gap between 1st and 2nd (0 = tied)
	TotalTurns    int     // For computing decisive turn percentage

	// Internal tracking (not serialized)
	currentLeader int   // Player ID of current leader (-1 for tie)
	leaderHistory []int // Leader at each turn (for permanent lead calculation)
}

// LeaderDetector interface for game-type-specific leader detection
type LeaderDetector interface {
	GetLeader(state *GameState) int     // Returns player ID or -1 for tie
	GetMargin(state *GameState) float32 // Normalized gap (0-1), 0 = tied, 1 = max gap
}

// NewTensionMetrics creates initialized tension tracker
func NewTensionMetrics(numPlayers int) *TensionMetrics {
	return &TensionMetrics{
		currentLeader: -1,
		ClosestMargin: 1.0,
		leaderHistory: make([]int, 0, 100),
	}
}

// ScoreLeaderDetector is the default LeaderDetector: leader is whoever has
// the highest Score, margin is the gap to the runner-up normalized by the
// highest score on the table (0 when every score is 0).
type ScoreLeaderDetector struct{}

func (ScoreLeaderDetector) GetLeader(state *GameState) int {
	best := int32(-1 << 31)
	leader := -1
	tied := false
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		score := state.Players[i].Score
		if score > best {
			best = score
			leader = i
			tied = false
		} else if score == best {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (ScoreLeaderDetector) GetMargin(state *GameState) float32 {
	best, second := int32(-1<<31), int32(-1<<31)
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		score := state.Players[i].Score
		switch {
		case score > best:
			second = best
			best = score
		case score > second:
			second = score
		}
	}
	if best <= 0 {
		return 0
	}
	gap := best - second
	if gap < 0 {
		gap = 0
	}
	margin := float32(gap) / float32(best)
	if margin > 1 {
		margin = 1
	}
	return margin
}

// Observe records one turn's leader/margin snapshot, updating LeadChanges,
// ClosestMargin and TotalTurns (set to turn). DecisiveTurn is computed from
// the recorded leaders by Finalize; callers pass turn numbers in increasing
// order as the game progresses.
func (t *TensionMetrics) Observe(state *GameState, detector LeaderDetector, turn int) {
	leader := detector.GetLeader(state)
	t.leaderHistory = append(t.leaderHistory, leader)
	t.TotalTurns = turn

	if leader >= 0 && leader != t.currentLeader && t.currentLeader >= 0 {
		t.LeadChanges++
	}
	if leader >= 0 {
		t.currentLeader = leader
	}

	margin := detector.GetMargin(state)
	if margin < t.ClosestMargin {
		t.ClosestMargin = margin
	}
}

// Finalize computes DecisiveTurn: the 0-based index of the earliest
// observation from which the recorded leader never changed again (the turn
// numbers passed to Observe are not used here). Call once after the game ends.
func (t *TensionMetrics) Finalize() {
	if len(t.leaderHistory) == 0 {
		t.DecisiveTurn = 0
		return
	}
	finalLeader := t.leaderHistory[len(t.leaderHistory)-1]
	decisive := len(t.leaderHistory) - 1
	for i := len(t.leaderHistory) - 1; i >= 0; i-- {
		if t.leaderHistory[i] != finalLeader {
			break
		}
		decisive = i
	}
	t.DecisiveTurn = decisive
}
