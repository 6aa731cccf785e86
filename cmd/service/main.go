// Package main is the long-running simulation service: it speaks the
// length-prefixed binary framing over stdin/stdout so a controller can
// drive batch simulations without cgo. One frame in, one frame out; the
// process exits on a Shutdown frame or when its input closes.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/signalnine/cards-evolve/gosim/ipc"
	"github.com/signalnine/cards-evolve/gosim/ipc/cardsim"
)

func main() {
	verbose := flag.Bool("verbose", false, "log each request to stderr")
	flag.Parse()

	log.SetPrefix("cardsim-service: ")
	log.SetFlags(0)

	in := bufio.NewReaderSize(os.Stdin, 1<<20)
	out := bufio.NewWriterSize(os.Stdout, 1<<20)
	defer out.Flush()

	if err := serve(in, out, *verbose); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// serve runs the frame loop until shutdown, clean EOF, or a framing error.
// A framing error is unrecoverable (the stream position is lost), so the
// connection is dropped rather than resynchronized.
func serve(in io.Reader, out *bufio.Writer, verbose bool) error {
	for {
		msgType, payload, err := ipc.ReadFrame(in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		switch msgType {
		case ipc.MsgPing:
			if err := ipc.WriteFrame(out, ipc.MsgPingOk, nil); err != nil {
				return err
			}

		case ipc.MsgSimulateBatch:
			response := processBatchSafely(payload, verbose)
			var writeErr error
			if response == nil {
				writeErr = ipc.WriteFrame(out, ipc.MsgError,
					ipc.EncodeError(ipc.ErrCodeBytecodeMalformed, "malformed batch request"))
			} else {
				writeErr = ipc.WriteFrame(out, ipc.MsgBatchResponse, response)
			}
			if writeErr != nil {
				return writeErr
			}

		case ipc.MsgShutdown:
			return out.Flush()

		default:
			err := ipc.WriteFrame(out, ipc.MsgError,
				ipc.EncodeError(ipc.ErrCodeUnknownMessage, fmt.Sprintf("unknown message type: %d", msgType)))
			if err != nil {
				return err
			}
		}

		if err := out.Flush(); err != nil {
			return err
		}
	}
}

// processBatchSafely parses and runs a batch, recovering a panic from a
// corrupt flatbuffer into a nil response so one bad request can't kill the
// service.
func processBatchSafely(payload []byte, verbose bool) (response []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("batch request rejected: %v", r)
			response = nil
		}
	}()

	request := cardsim.GetRootAsBatchRequest(payload, 0)
	if verbose {
		log.Printf("batch %d: %d requests", request.BatchId(), request.RequestsLength())
	}
	return ipc.ProcessBatch(request)
}
