package ipc

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/signalnine/cards-evolve/gosim/engine"
	"github.com/signalnine/cards-evolve/gosim/ipc/cardsim"
	"github.com/signalnine/cards-evolve/gosim/simulation"
)

// ProcessBatch runs every SimulationRequest in a parsed BatchRequest and
// returns the finished BatchResponse flatbuffer bytes. Shared by the cgo
// bridge (in-process call from the trainer) and the stdio service, so both
// entry points serialize results identically.
func ProcessBatch(batchRequest *cardsim.BatchRequest) []byte {
	builder := flatbuffers.NewBuilder(1024)

	requestCount := batchRequest.RequestsLength()
	resultOffsets := make([]flatbuffers.UOffsetT, requestCount)

	for i := 0; i < requestCount; i++ {
		req := new(cardsim.SimulationRequest)
		if !batchRequest.Requests(req, i) {
			continue
		}
		resultOffsets[i] = processOne(builder, req)
	}

	cardsim.BatchResponseStartResultsVector(builder, requestCount)
	for i := requestCount - 1; i >= 0; i-- {
		builder.PrependUOffsetT(resultOffsets[i])
	}
	resultsVec := builder.EndVector(requestCount)

	cardsim.BatchResponseStart(builder)
	cardsim.BatchResponseAddBatchId(builder, batchRequest.BatchId())
	cardsim.BatchResponseAddResults(builder, resultsVec)
	response := cardsim.BatchResponseEnd(builder)

	builder.Finish(response)
	return builder.FinishedBytes()
}

func processOne(builder *flatbuffers.Builder, req *cardsim.SimulationRequest) flatbuffers.UOffsetT {
	genome, err := engine.ParseGenome(req.GenomeBytecodeBytes())
	if err != nil {
		return serializeStats(builder, &simulation.AggregatedStats{
			TotalGames: req.NumGames(),
			Errors:     req.NumGames(),
		})
	}

	aiType := simulation.AIPlayerType(req.AiPlayerType())
	mctsIter := int(req.MctsIterations())
	seed := req.RandomSeed()

	p0AI, p1AI := aiType, aiType
	if v := req.Player0AiType(); v > 0 {
		p0AI = simulation.AIPlayerType(v - 1)
	}
	if v := req.Player1AiType(); v > 0 {
		p1AI = simulation.AIPlayerType(v - 1)
	}

	var stats simulation.AggregatedStats
	if p0AI == p1AI {
		stats = simulation.RunBatchParallel(genome, int(req.NumGames()), p0AI, mctsIter, seed)
	} else {
		stats = simulation.RunBatchAsymmetricParallel(genome, int(req.NumGames()), p0AI, p1AI, mctsIter, seed)
	}
	return serializeStats(builder, &stats)
}

func serializeStats(builder *flatbuffers.Builder, stats *simulation.AggregatedStats) flatbuffers.UOffsetT {
	cardsim.AggregatedStatsStart(builder)
	cardsim.AggregatedStatsAddTotalGames(builder, stats.TotalGames)
	cardsim.AggregatedStatsAddPlayer0Wins(builder, stats.Player0Wins)
	cardsim.AggregatedStatsAddPlayer1Wins(builder, stats.Player1Wins)
	cardsim.AggregatedStatsAddDraws(builder, stats.Draws)
	cardsim.AggregatedStatsAddAvgTurns(builder, stats.AvgTurns)
	cardsim.AggregatedStatsAddMedianTurns(builder, stats.MedianTurns)
	// Wall-clock timing is diagnostic and local-only: it never crosses the
	// wire, so a repeated request yields a byte-identical response.
	cardsim.AggregatedStatsAddAvgDurationNs(builder, 0)
	cardsim.AggregatedStatsAddErrors(builder, stats.Errors)
	cardsim.AggregatedStatsAddTotalDecisions(builder, stats.TotalDecisions)
	cardsim.AggregatedStatsAddTotalValidMoves(builder, stats.TotalValidMoves)
	cardsim.AggregatedStatsAddForcedDecisions(builder, stats.ForcedDecisions)
	cardsim.AggregatedStatsAddTotalInteractions(builder, stats.TotalInteractions)
	cardsim.AggregatedStatsAddTotalActions(builder, stats.TotalActions)
	cardsim.AggregatedStatsAddMoveDisruptionEvents(builder, stats.MoveDisruptionEvents)
	cardsim.AggregatedStatsAddContentionEvents(builder, stats.ContentionEvents)
	cardsim.AggregatedStatsAddForcedResponseEvents(builder, stats.ForcedResponseEvents)
	cardsim.AggregatedStatsAddOpponentTurnCount(builder, stats.OpponentTurnCount)
	return cardsim.AggregatedStatsEnd(builder)
}
