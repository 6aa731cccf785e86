package ipc

import (
	"encoding/binary"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/cards-evolve/gosim/engine"
	"github.com/signalnine/cards-evolve/gosim/ipc/cardsim"
)

// warBytecode builds a minimal V1 War genome: one mandatory play-to-tableau
// phase, capture_all win condition.
func warBytecode() []byte {
	bytecode := make([]byte, 200)
	binary.BigEndian.PutUint32(bytecode[0:4], 1)
	binary.BigEndian.PutUint64(bytecode[4:12], 0xCAFE)
	binary.BigEndian.PutUint32(bytecode[12:16], 2)    // players
	binary.BigEndian.PutUint32(bytecode[16:20], 1000) // max turns
	binary.BigEndian.PutUint32(bytecode[20:24], 36)   // setup
	binary.BigEndian.PutUint32(bytecode[24:28], 60)   // turn structure
	binary.BigEndian.PutUint32(bytecode[28:32], 100)  // win conditions
	binary.BigEndian.PutUint32(bytecode[32:36], 120)  // scoring

	binary.BigEndian.PutUint32(bytecode[36:40], 26) // cards per player

	binary.BigEndian.PutUint32(bytecode[60:64], 1) // one phase
	bytecode[64] = 2                               // PlayPhase
	bytecode[65] = byte(engine.LocationTableau)
	bytecode[66] = 1 // min
	bytecode[67] = 1 // max
	bytecode[68] = 1 // mandatory

	binary.BigEndian.PutUint32(bytecode[100:104], 1)
	bytecode[104] = 3 // capture_all
	binary.BigEndian.PutUint32(bytecode[105:109], 52)
	return bytecode
}

// buildBatchRequest serializes a BatchRequest with one SimulationRequest.
func buildBatchRequest(t *testing.T, batchID uint64, genome []byte, numGames uint32, seed uint64) []byte {
	t.Helper()
	builder := flatbuffers.NewBuilder(256)

	genomeVec := builder.CreateByteVector(genome)
	cardsim.SimulationRequestStart(builder)
	cardsim.SimulationRequestAddGenomeBytecode(builder, genomeVec)
	cardsim.SimulationRequestAddNumGames(builder, numGames)
	cardsim.SimulationRequestAddAiPlayerType(builder, 0) // random
	cardsim.SimulationRequestAddRandomSeed(builder, seed)
	reqOffset := cardsim.SimulationRequestEnd(builder)

	cardsim.BatchRequestStartRequestsVector(builder, 1)
	builder.PrependUOffsetT(reqOffset)
	requestsVec := builder.EndVector(1)

	cardsim.BatchRequestStart(builder)
	cardsim.BatchRequestAddBatchId(builder, batchID)
	cardsim.BatchRequestAddRequests(builder, requestsVec)
	builder.Finish(cardsim.BatchRequestEnd(builder))
	return builder.FinishedBytes()
}

func TestProcessBatchRunsGames(t *testing.T) {
	requestBytes := buildBatchRequest(t, 77, warBytecode(), 20, 42)
	request := cardsim.GetRootAsBatchRequest(requestBytes, 0)

	responseBytes := ProcessBatch(request)
	require.NotEmpty(t, responseBytes)

	response := cardsim.GetRootAsBatchResponse(responseBytes, 0)
	assert.Equal(t, uint64(77), response.BatchId())
	require.Equal(t, 1, response.ResultsLength())

	var stats cardsim.AggregatedStats
	require.True(t, response.Results(&stats, 0))
	assert.Equal(t, uint32(20), stats.TotalGames())
	assert.Zero(t, stats.Errors())
	outcomes := stats.Player0Wins() + stats.Player1Wins() + stats.Draws()
	assert.Equal(t, uint32(20), outcomes)
	assert.Greater(t, stats.TotalDecisions(), uint64(0))
}

func TestProcessBatchInvalidBytecode(t *testing.T) {
	requestBytes := buildBatchRequest(t, 5, []byte{0xFF, 0x00, 0x13}, 10, 1)
	request := cardsim.GetRootAsBatchRequest(requestBytes, 0)

	responseBytes := ProcessBatch(request)
	response := cardsim.GetRootAsBatchResponse(responseBytes, 0)
	require.Equal(t, 1, response.ResultsLength())

	var stats cardsim.AggregatedStats
	require.True(t, response.Results(&stats, 0))
	assert.Equal(t, uint32(10), stats.TotalGames())
	assert.Equal(t, uint32(10), stats.Errors())
	assert.Zero(t, stats.Player0Wins())
	assert.Zero(t, stats.Player1Wins())
	assert.Zero(t, stats.AvgTurns())
}

func TestProcessBatchDeterministic(t *testing.T) {
	requestBytes := buildBatchRequest(t, 9, warBytecode(), 50, 1234)

	first := ProcessBatch(cardsim.GetRootAsBatchRequest(requestBytes, 0))
	second := ProcessBatch(cardsim.GetRootAsBatchRequest(requestBytes, 0))

	assert.Equal(t, first, second, "repeated requests must serialize identically")
}
