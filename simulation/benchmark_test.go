package simulation

import (
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

func benchGenome(b *testing.B) *engine.Genome {
	b.Helper()
	genome, err := engine.ParseGenome(buildV1Bytecode(26, 3, 52, 1000, true))
	if err != nil {
		b.Fatalf("failed to parse genome: %v", err)
	}
	return genome
}

// trickGenome builds a Hearts-shaped bytecode so the benchmarks cover the
// trick path as well as the war path.
func trickGenome(b *testing.B) *engine.Genome {
	b.Helper()
	bytecode := make([]byte, 200)
	binary.BigEndian.PutUint32(bytecode[0:4], 1)
	binary.BigEndian.PutUint32(bytecode[12:16], 2)   // players
	binary.BigEndian.PutUint32(bytecode[16:20], 300) // max turns
	binary.BigEndian.PutUint32(bytecode[20:24], 36)
	binary.BigEndian.PutUint32(bytecode[24:28], 60)
	binary.BigEndian.PutUint32(bytecode[28:32], 100)
	binary.BigEndian.PutUint32(bytecode[32:36], 120)
	binary.BigEndian.PutUint32(bytecode[36:40], 13) // cards per player

	binary.BigEndian.PutUint32(bytecode[60:64], 1)
	bytecode[64] = 4    // TrickPhase
	bytecode[65] = 1    // lead_suit_required
	bytecode[66] = 255  // no trump
	bytecode[67] = 1    // high card wins
	bytecode[68] = 0    // hearts break

	binary.BigEndian.PutUint32(bytecode[100:104], 1)
	bytecode[104] = 5 // all_hands_empty

	genome, err := engine.ParseGenome(bytecode)
	if err != nil {
		b.Fatalf("failed to parse trick genome: %v", err)
	}
	return genome
}

func BenchmarkSingleGameWar(b *testing.B) {
	genome := benchGenome(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunSingleGame(genome, RandomAI, 0, uint64(i))
	}
}

func BenchmarkSingleGameTricks(b *testing.B) {
	genome := trickGenome(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunSingleGame(genome, RandomAI, 0, uint64(i))
	}
}

func BenchmarkSingleGameGreedy(b *testing.B) {
	genome := benchGenome(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunSingleGame(genome, GreedyAI, 0, uint64(i))
	}
}

func BenchmarkSingleGameMCTS100(b *testing.B) {
	genome := benchGenome(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunSingleGame(genome, MCTS100AI, 100, uint64(i))
	}
}

func BenchmarkBatchSerial(b *testing.B) {
	genome := benchGenome(b)
	for _, size := range []int{10, 100, 1000} {
		b.Run(benchSizeName(size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				RunBatch(genome, size, RandomAI, 0, 42)
			}
		})
	}
}

func BenchmarkBatchParallel(b *testing.B) {
	genome := benchGenome(b)
	for _, size := range []int{10, 100, 1000} {
		b.Run(benchSizeName(size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				RunBatchParallel(genome, size, RandomAI, 0, 42)
			}
		})
	}
}

// BenchmarkBatchThroughput reports games/sec at the saturation batch size,
// the headline number the batch executor exists for.
func BenchmarkBatchThroughput(b *testing.B) {
	genome := benchGenome(b)
	const size = 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatchParallelN(genome, size, RandomAI, 0, 42, runtime.NumCPU())
	}
	b.StopTimer()

	gamesPerOp := float64(size)
	b.ReportMetric(gamesPerOp*float64(b.N)/b.Elapsed().Seconds(), "games/sec")
}

func benchSizeName(size int) string {
	switch size {
	case 10:
		return "batch10"
	case 100:
		return "batch100"
	default:
		return "batch1000"
	}
}
