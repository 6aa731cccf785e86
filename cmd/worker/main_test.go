package main

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/signalnine/cards-evolve/gosim/engine"
)

func testWarBytecode() []byte {
	bytecode := make([]byte, 200)
	binary.BigEndian.PutUint32(bytecode[0:4], 1)
	binary.BigEndian.PutUint64(bytecode[4:12], 0xBEEF)
	binary.BigEndian.PutUint32(bytecode[12:16], 2)
	binary.BigEndian.PutUint32(bytecode[16:20], 1000)
	binary.BigEndian.PutUint32(bytecode[20:24], 36)
	binary.BigEndian.PutUint32(bytecode[24:28], 60)
	binary.BigEndian.PutUint32(bytecode[28:32], 100)
	binary.BigEndian.PutUint32(bytecode[32:36], 120)

	binary.BigEndian.PutUint32(bytecode[36:40], 5) // cards per player

	binary.BigEndian.PutUint32(bytecode[60:64], 1)
	bytecode[64] = 2 // PlayPhase
	bytecode[65] = byte(engine.LocationTableau)
	bytecode[66] = 1
	bytecode[67] = 1
	bytecode[68] = 1

	binary.BigEndian.PutUint32(bytecode[100:104], 1)
	bytecode[104] = 0 // empty_hand
	return bytecode
}

func genomeField(bytecode []byte) json.RawMessage {
	encoded, _ := json.Marshal(base64.StdEncoding.EncodeToString(bytecode))
	return encoded
}

func TestHandleCommandPing(t *testing.T) {
	resp := handleCommand(&Command{Action: "ping"})
	if !resp.Success {
		t.Errorf("ping should succeed, got error %q", resp.Error)
	}
}

func TestHandleCommandUnknownAction(t *testing.T) {
	resp := handleCommand(&Command{Action: "explode"})
	if resp.Success {
		t.Fatal("unknown action should fail")
	}
	if !strings.Contains(resp.Error, "unknown action: explode") {
		t.Errorf("error should name the action, got %q", resp.Error)
	}
}

func TestHandleValidateGenomeGarbage(t *testing.T) {
	resp := handleCommand(&Command{
		Action: "validate_genome",
		Genome: genomeField([]byte{0xDE, 0xAD}),
	})
	if resp.Success {
		t.Error("garbage bytecode should fail validation")
	}
}

func TestHandleValidateGenomeAccepts(t *testing.T) {
	resp := handleCommand(&Command{
		Action: "validate_genome",
		Genome: genomeField(testWarBytecode()),
	})
	if !resp.Success {
		t.Errorf("well-formed genome should validate, got error %q", resp.Error)
	}
}

func TestStartGameAndApplyMove(t *testing.T) {
	start := handleCommand(&Command{
		Action: "start_game",
		Genome: genomeField(testWarBytecode()),
		Seed:   42,
	})
	if !start.Success {
		t.Fatalf("start_game failed: %q", start.Error)
	}
	if len(start.Moves) == 0 {
		t.Fatal("expected at least one legal move after setup")
	}

	apply := handleCommand(&Command{Action: "apply_move", MoveIndex: 0})
	if !apply.Success {
		t.Fatalf("apply_move failed: %q", apply.Error)
	}

	var state SerializedState
	if err := json.Unmarshal(apply.State, &state); err != nil {
		t.Fatalf("state should round-trip as JSON: %v", err)
	}
	if state.TurnNumber == 0 {
		t.Error("applying a move should advance the turn counter")
	}
}

func TestApplyMoveOutOfRange(t *testing.T) {
	start := handleCommand(&Command{
		Action: "start_game",
		Genome: genomeField(testWarBytecode()),
		Seed:   7,
	})
	if !start.Success {
		t.Fatalf("start_game failed: %q", start.Error)
	}

	resp := handleCommand(&Command{Action: "apply_move", MoveIndex: 999})
	if resp.Success {
		t.Error("out-of-range move index should fail")
	}
}
