// Package main builds as a C shared library exposing the batch simulation
// entry points. The request/response wire format and processing are shared
// with the stdio service via the ipc package; this file only handles the
// C memory handoff.
package main

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"
import (
	"unsafe"

	"github.com/signalnine/cards-evolve/gosim/ipc"
	"github.com/signalnine/cards-evolve/gosim/ipc/cardsim"
)

//export SimulateBatch
func SimulateBatch(requestPtr unsafe.Pointer, requestLen C.int, responseLen *C.int) unsafe.Pointer {
	requestBytes := C.GoBytes(requestPtr, requestLen)
	batchRequest := cardsim.GetRootAsBatchRequest(requestBytes, 0)

	responseBytes := ipc.ProcessBatch(batchRequest)
	*responseLen = C.int(len(responseBytes))
	if len(responseBytes) == 0 {
		return nil
	}

	// Copy into C memory the caller owns; it must call FreeResponse.
	cBytes := C.malloc(C.size_t(len(responseBytes)))
	if cBytes == nil {
		*responseLen = 0
		return nil
	}
	C.memcpy(cBytes, unsafe.Pointer(&responseBytes[0]), C.size_t(len(responseBytes)))
	return cBytes
}

//export FreeResponse
func FreeResponse(ptr unsafe.Pointer) {
	C.free(ptr)
}

func main() {} // Required for CGo
