package simulation

import (
	"encoding/binary"
	"testing"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

// buildV1Bytecode assembles a minimal V1 genome: an optional single play
// phase targeting the tableau, one win condition, and a setup section
// carrying cards_per_player.
func buildV1Bytecode(cardsPerPlayer uint32, winType uint8, threshold uint32, maxTurns uint32, withPlayPhase bool) []byte {
	bytecode := make([]byte, 200)

	binary.BigEndian.PutUint32(bytecode[0:4], 1)             // legacy version
	binary.BigEndian.PutUint64(bytecode[4:12], 0xDEADBEEF)   // genome id hash
	binary.BigEndian.PutUint32(bytecode[12:16], 2)           // player count
	binary.BigEndian.PutUint32(bytecode[16:20], maxTurns)    // max turns
	binary.BigEndian.PutUint32(bytecode[20:24], 36)          // setup offset
	binary.BigEndian.PutUint32(bytecode[24:28], 60)          // turn structure offset
	binary.BigEndian.PutUint32(bytecode[28:32], 100)         // win conditions offset
	binary.BigEndian.PutUint32(bytecode[32:36], 120)         // scoring offset

	// Setup section: cards_per_player
	binary.BigEndian.PutUint32(bytecode[36:40], cardsPerPlayer)

	// Turn structure
	if withPlayPhase {
		binary.BigEndian.PutUint32(bytecode[60:64], 1)
		bytecode[64] = 2                       // PlayPhase
		bytecode[65] = byte(engine.LocationTableau)
		bytecode[66] = 1 // min_cards
		bytecode[67] = 1 // max_cards
		bytecode[68] = 1 // mandatory
		bytecode[69] = 0 // pass_if_unable
		// condition_len = 0 at bytes 70-73
	} else {
		binary.BigEndian.PutUint32(bytecode[60:64], 0)
	}

	// Win conditions
	binary.BigEndian.PutUint32(bytecode[100:104], 1)
	bytecode[104] = winType
	binary.BigEndian.PutUint32(bytecode[105:109], threshold)

	return bytecode
}

func mustParse(t *testing.T, bytecode []byte) *engine.Genome {
	t.Helper()
	genome, err := engine.ParseGenome(bytecode)
	if err != nil {
		t.Fatalf("failed to parse genome: %v", err)
	}
	return genome
}

func TestRunSingleGameDeterminism(t *testing.T) {
	genome := mustParse(t, buildV1Bytecode(26, 3, 52, 1000, true))

	a := RunSingleGame(genome, RandomAI, 0, 42)
	b := RunSingleGame(genome, RandomAI, 0, 42)

	if a.WinnerID != b.WinnerID {
		t.Errorf("winner differs across runs: %d vs %d", a.WinnerID, b.WinnerID)
	}
	if a.TurnCount != b.TurnCount {
		t.Errorf("turn count differs across runs: %d vs %d", a.TurnCount, b.TurnCount)
	}
	if a.Metrics != b.Metrics {
		t.Errorf("metrics differ across runs: %+v vs %+v", a.Metrics, b.Metrics)
	}
}

func TestWarBaselineCompletes(t *testing.T) {
	genome := mustParse(t, buildV1Bytecode(26, 3, 52, 1000, true))

	stats := RunBatch(genome, 200, RandomAI, 0, 42)

	if stats.TotalGames != 200 {
		t.Fatalf("expected 200 games, got %d", stats.TotalGames)
	}
	if stats.Errors != 0 {
		t.Errorf("expected no errors, got %d", stats.Errors)
	}
	if stats.AvgTurns == 0 {
		t.Error("games should take at least one turn")
	}
	total := stats.Player0Wins + stats.Player1Wins + stats.Draws
	if total != 200 {
		t.Errorf("outcomes don't add up: %d+%d+%d = %d",
			stats.Player0Wins, stats.Player1Wins, stats.Draws, total)
	}
}

func TestRunBatchMatchesParallel(t *testing.T) {
	genome := mustParse(t, buildV1Bytecode(26, 3, 52, 1000, true))

	serial := RunBatch(genome, 100, RandomAI, 0, 7)
	parallel := RunBatchParallel(genome, 100, RandomAI, 0, 7)

	if serial.Player0Wins != parallel.Player0Wins ||
		serial.Player1Wins != parallel.Player1Wins ||
		serial.Draws != parallel.Draws {
		t.Errorf("outcomes differ: serial=%d/%d/%d parallel=%d/%d/%d",
			serial.Player0Wins, serial.Player1Wins, serial.Draws,
			parallel.Player0Wins, parallel.Player1Wins, parallel.Draws)
	}
	if serial.AvgTurns != parallel.AvgTurns {
		t.Errorf("avg turns differ: serial=%f parallel=%f", serial.AvgTurns, parallel.AvgTurns)
	}
	if serial.TotalDecisions != parallel.TotalDecisions ||
		serial.TotalActions != parallel.TotalActions {
		t.Errorf("instrumentation differs: serial=%d/%d parallel=%d/%d",
			serial.TotalDecisions, serial.TotalActions,
			parallel.TotalDecisions, parallel.TotalActions)
	}
}

func TestGreedyBeatsRandomAtCapture(t *testing.T) {
	// Capture-all War: greedy leads its highest card each battle, so it
	// should take far more than half the games from a random opponent.
	genome := mustParse(t, buildV1Bytecode(26, 3, 52, 1000, true))

	stats := RunBatchAsymmetric(genome, 300, GreedyAI, RandomAI, 0, 99)

	if stats.Errors != 0 {
		t.Fatalf("expected no errors, got %d", stats.Errors)
	}
	if stats.Player0Wins <= stats.Player1Wins {
		t.Errorf("greedy should beat random: greedy=%d random=%d",
			stats.Player0Wins, stats.Player1Wins)
	}
}

func TestDegenerateGenomeEmptyPhases(t *testing.T) {
	// No phases: the first decision has no legal moves and the game settles
	// immediately by tie-break, without counting as an error.
	genome := mustParse(t, buildV1Bytecode(5, 0, 0, 1000, false))

	stats := RunBatch(genome, 50, RandomAI, 0, 3)

	if stats.Errors != 0 {
		t.Errorf("deadlock should not be an error, got %d errors", stats.Errors)
	}
	if stats.AvgTurns >= 2 {
		t.Errorf("expected near-instant games, avg turns = %f", stats.AvgTurns)
	}
}

func TestInvalidBytecodeRejected(t *testing.T) {
	garbage := []byte{0xFF, 0x01, 0x02}
	if _, err := engine.ParseGenome(garbage); err == nil {
		t.Error("expected parse error for garbage bytecode")
	}
}

func BenchmarkRunSingleGame(b *testing.B) {
	bytecode := buildV1Bytecode(26, 3, 52, 1000, true)
	genome, err := engine.ParseGenome(bytecode)
	if err != nil {
		b.Fatalf("failed to parse genome: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunSingleGame(genome, RandomAI, 0, uint64(i))
	}
}

// movesDisrupted underpins the disruption counter: any change to an
// opponent's legal-move set counts once, regardless of how many moves it
// touched.
func TestMovesDisrupted(t *testing.T) {
	a := []engine.LegalMove{{PhaseIndex: 0, TargetLoc: 1}}
	b := []engine.LegalMove{{PhaseIndex: 0, TargetLoc: 1}, {PhaseIndex: 0, TargetLoc: 2}}
	c := []engine.LegalMove{{PhaseIndex: 0, TargetLoc: 2}}

	tests := []struct {
		name          string
		before, after []engine.LegalMove
		want          bool
	}{
		{"count changed", a, b, true},
		{"same count, different moves", a, c, true},
		{"identical", b, b, false},
		{"both empty", nil, nil, false},
		{"emptied out", a, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := movesDisrupted(tt.before, tt.after); got != tt.want {
				t.Errorf("movesDisrupted = %v, want %v", got, tt.want)
			}
		})
	}
}
