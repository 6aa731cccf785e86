package simulation

import (
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

// GameJob represents a single simulation job
type GameJob struct {
	SimID int
	Seed  uint64
}

// runParallel fans numGames jobs out across numWorkers goroutines in an
// errgroup. Each job runs under runJobSafely, so a panic inside one game (a
// malformed genome driving the interpreter off the rails) is recovered into
// a single errored GameResult instead of taking the whole batch down - the
// failure isolation the batch executor promises callers.
func runParallel(numGames int, numWorkers int, play func(job GameJob) GameResult) []GameResult {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > numGames {
		numWorkers = numGames
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan GameJob, numGames)
	results := make([]GameResult, numGames)

	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		g.Go(func() error {
			for job := range jobs {
				results[job.SimID] = runJobSafely(job, play)
			}
			return nil
		})
	}

	for i := 0; i < numGames; i++ {
		jobs <- GameJob{SimID: i}
	}
	close(jobs)

	_ = g.Wait() // workers never return an error; panics are recovered per-job

	return results
}

// runJobSafely recovers a panic from a single game into an errored result
// so one bad genome can't crash the whole batch.
func runJobSafely(job GameJob, play func(job GameJob) GameResult) (result GameResult) {
	defer func() {
		if r := recover(); r != nil {
			result = GameResult{WinnerID: -1, Error: fmt.Sprintf("panic: %v", r)}
		}
	}()
	return play(job)
}

// deterministicSeeds generates numGames per-game seeds from a batch seed,
// identically regardless of how the work is later distributed across
// goroutines - the seed sequence itself is always produced serially.
func deterministicSeeds(seed uint64, numGames int) []uint64 {
	rng := rand.New(rand.NewSource(int64(seed)))
	seeds := make([]uint64, numGames)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

// RunBatchParallelN executes batch simulations using a specified number of workers.
// Use this when running under external process-level parallelism to avoid
// oversubscribing cores.
func RunBatchParallelN(genome *engine.Genome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64, numWorkers int) AggregatedStats {
	seeds := deterministicSeeds(seed, numGames)
	results := runParallel(numGames, numWorkers, func(job GameJob) GameResult {
		return RunSingleGame(genome, aiType, mctsIterations, seeds[job.SimID])
	})
	return aggregateResults(results)
}

// RunBatchParallel executes batch simulations using a worker per CPU core.
func RunBatchParallel(genome *engine.Genome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	return RunBatchParallelN(genome, numGames, aiType, mctsIterations, seed, runtime.NumCPU())
}

// RunBatchAsymmetricParallelN executes asymmetric batch simulations with specified workers.
func RunBatchAsymmetricParallelN(genome *engine.Genome, numGames int, p0AIType AIPlayerType, p1AIType AIPlayerType, mctsIterations int, seed uint64, numWorkers int) AggregatedStats {
	seeds := deterministicSeeds(seed, numGames)
	results := runParallel(numGames, numWorkers, func(job GameJob) GameResult {
		return RunSingleGameAsymmetric(genome, p0AIType, p1AIType, mctsIterations, seeds[job.SimID])
	})
	return aggregateResults(results)
}

// RunBatchAsymmetricParallel executes asymmetric batch simulations using a
// worker per CPU core. Used for MCTS skill evaluation where different AI
// types play against each other.
func RunBatchAsymmetricParallel(genome *engine.Genome, numGames int, p0AIType AIPlayerType, p1AIType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	return RunBatchAsymmetricParallelN(genome, numGames, p0AIType, p1AIType, mctsIterations, seed, runtime.NumCPU())
}
