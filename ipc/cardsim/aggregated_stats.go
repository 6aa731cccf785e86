package cardsim

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// AggregatedStats mirrors simulation.AggregatedStats' outcome and
// instrumentation counters (the tension averages are not carried) so the
// binary and JSON IPC paths agree on exactly what a batch run reports.
type AggregatedStats struct {
	_tab flatbuffers.Table
}

func GetRootAsAggregatedStats(buf []byte, offset flatbuffers.UOffsetT) *AggregatedStats {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &AggregatedStats{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *AggregatedStats) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *AggregatedStats) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *AggregatedStats) TotalGames() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) Player0Wins() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) Player1Wins() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) Draws() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(10))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) AvgTurns() float32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		return rcv._tab.GetFloat32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) MedianTurns() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(14))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) AvgDurationNs() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(16))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) Errors() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(18))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) TotalDecisions() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(20))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) TotalValidMoves() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(22))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) ForcedDecisions() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(24))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) TotalInteractions() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(26))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) TotalActions() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(28))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) MoveDisruptionEvents() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(30))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) ContentionEvents() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(32))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) ForcedResponseEvents() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(34))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *AggregatedStats) OpponentTurnCount() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(36))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func AggregatedStatsStart(builder *flatbuffers.Builder) {
	builder.StartObject(17)
}

func AggregatedStatsAddTotalGames(builder *flatbuffers.Builder, totalGames uint32) {
	builder.PrependUint32Slot(0, totalGames, 0)
}

func AggregatedStatsAddPlayer0Wins(builder *flatbuffers.Builder, player0Wins uint32) {
	builder.PrependUint32Slot(1, player0Wins, 0)
}

func AggregatedStatsAddPlayer1Wins(builder *flatbuffers.Builder, player1Wins uint32) {
	builder.PrependUint32Slot(2, player1Wins, 0)
}

func AggregatedStatsAddDraws(builder *flatbuffers.Builder, draws uint32) {
	builder.PrependUint32Slot(3, draws, 0)
}

func AggregatedStatsAddAvgTurns(builder *flatbuffers.Builder, avgTurns float32) {
	builder.PrependFloat32Slot(4, avgTurns, 0)
}

func AggregatedStatsAddMedianTurns(builder *flatbuffers.Builder, medianTurns uint32) {
	builder.PrependUint32Slot(5, medianTurns, 0)
}

func AggregatedStatsAddAvgDurationNs(builder *flatbuffers.Builder, avgDurationNs uint64) {
	builder.PrependUint64Slot(6, avgDurationNs, 0)
}

func AggregatedStatsAddErrors(builder *flatbuffers.Builder, errors uint32) {
	builder.PrependUint32Slot(7, errors, 0)
}

func AggregatedStatsAddTotalDecisions(builder *flatbuffers.Builder, totalDecisions uint64) {
	builder.PrependUint64Slot(8, totalDecisions, 0)
}

func AggregatedStatsAddTotalValidMoves(builder *flatbuffers.Builder, totalValidMoves uint64) {
	builder.PrependUint64Slot(9, totalValidMoves, 0)
}

func AggregatedStatsAddForcedDecisions(builder *flatbuffers.Builder, forcedDecisions uint64) {
	builder.PrependUint64Slot(10, forcedDecisions, 0)
}

func AggregatedStatsAddTotalInteractions(builder *flatbuffers.Builder, totalInteractions uint64) {
	builder.PrependUint64Slot(11, totalInteractions, 0)
}

func AggregatedStatsAddTotalActions(builder *flatbuffers.Builder, totalActions uint64) {
	builder.PrependUint64Slot(12, totalActions, 0)
}

func AggregatedStatsAddMoveDisruptionEvents(builder *flatbuffers.Builder, moveDisruptionEvents uint64) {
	builder.PrependUint64Slot(13, moveDisruptionEvents, 0)
}

func AggregatedStatsAddContentionEvents(builder *flatbuffers.Builder, contentionEvents uint64) {
	builder.PrependUint64Slot(14, contentionEvents, 0)
}

func AggregatedStatsAddForcedResponseEvents(builder *flatbuffers.Builder, forcedResponseEvents uint64) {
	builder.PrependUint64Slot(15, forcedResponseEvents, 0)
}

func AggregatedStatsAddOpponentTurnCount(builder *flatbuffers.Builder, opponentTurnCount uint64) {
	builder.PrependUint64Slot(16, opponentTurnCount, 0)
}

func AggregatedStatsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
