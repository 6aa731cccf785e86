// Code in this package hand-implements the flatbuffers Go codegen
// conventions for the simulation wire schema (see schema.fbs in this
// package) against the github.com/google/flatbuffers/go runtime, since no
// flatc toolchain is available in this build environment.
package cardsim

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// SimulationRequest is one genome's batch-simulation parameters.
type SimulationRequest struct {
	_tab flatbuffers.Table
}

func GetRootAsSimulationRequest(buf []byte, offset flatbuffers.UOffsetT) *SimulationRequest {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &SimulationRequest{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *SimulationRequest) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *SimulationRequest) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *SimulationRequest) GenomeBytecodeLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *SimulationRequest) GenomeBytecodeBytes() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *SimulationRequest) NumGames() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *SimulationRequest) AiPlayerType() uint8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.GetUint8(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *SimulationRequest) MctsIterations() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(10))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *SimulationRequest) RandomSeed() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

// Player0AiType/Player1AiType override AiPlayerType per seat. Zero means
// "no override"; a nonzero value N selects AI type N-1.
func (rcv *SimulationRequest) Player0AiType() uint8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(14))
	if o != 0 {
		return rcv._tab.GetUint8(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *SimulationRequest) Player1AiType() uint8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(16))
	if o != 0 {
		return rcv._tab.GetUint8(o + rcv._tab.Pos)
	}
	return 0
}

func SimulationRequestStart(builder *flatbuffers.Builder) {
	builder.StartObject(7)
}

func SimulationRequestAddGenomeBytecode(builder *flatbuffers.Builder, genomeBytecode flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, genomeBytecode, 0)
}

func SimulationRequestAddNumGames(builder *flatbuffers.Builder, numGames uint32) {
	builder.PrependUint32Slot(1, numGames, 0)
}

func SimulationRequestAddAiPlayerType(builder *flatbuffers.Builder, aiPlayerType uint8) {
	builder.PrependUint8Slot(2, aiPlayerType, 0)
}

func SimulationRequestAddMctsIterations(builder *flatbuffers.Builder, mctsIterations uint32) {
	builder.PrependUint32Slot(3, mctsIterations, 0)
}

func SimulationRequestAddRandomSeed(builder *flatbuffers.Builder, randomSeed uint64) {
	builder.PrependUint64Slot(4, randomSeed, 0)
}

func SimulationRequestAddPlayer0AiType(builder *flatbuffers.Builder, player0AiType uint8) {
	builder.PrependUint8Slot(5, player0AiType, 0)
}

func SimulationRequestAddPlayer1AiType(builder *flatbuffers.Builder, player1AiType uint8) {
	builder.PrependUint8Slot(6, player1AiType, 0)
}

func SimulationRequestEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
