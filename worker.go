package networth

import (
	"errors"
	"fmt"
)

// The background worker takes full-horizon replays off the caller's
// goroutine. The handoff is message-based: a typed request goes in, a typed
// success or error response comes back. There is no cancellation and no
// timeout; a request either resolves or rejects. A worker that never
// replies would block its caller, which is a known open risk of this
// protocol, not an oversight to patch with ad hoc timers.

// CalcRequestType identifies the kind of computation requested.
type CalcRequestType string

// CalculateAll asks the worker for a full replay across the horizon.
const CalculateAll CalcRequestType = "calculateAll"

// CalcRequest is the message sent to the worker.
type CalcRequest struct {
	Type             CalcRequestType
	Transactions     []Transaction
	AssetDefinitions []*AssetDefinition
	DaysBack         int // 0 means the full horizon

	reply chan CalcResponse
}

// CalcResponseType identifies the outcome variant of a worker reply.
type CalcResponseType string

const (
	ResultAll   CalcResponseType = "resultAll"
	ResultError CalcResponseType = "error"
)

// CalcResponse is the message the worker replies with.
type CalcResponse struct {
	Type    CalcResponseType
	History []HistoryPoint
	Err     error
}

// ErrWorkerClosed is returned when a request is submitted to a worker that
// has been shut down.
var ErrWorkerClosed = errors.New("calculation worker is closed")

// Worker owns a single background goroutine that serves replay requests
// sequentially.
type Worker struct {
	requests chan CalcRequest
	quit     chan struct{}
	done     chan struct{}
}

// NewWorker starts the background calculation worker.
func NewWorker() *Worker {
	w := &Worker{
		requests: make(chan CalcRequest),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		select {
		case req := <-w.requests:
			req.reply <- w.serve(req)
		case <-w.quit:
			return
		}
	}
}

func (w *Worker) serve(req CalcRequest) (resp CalcResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = CalcResponse{Type: ResultError, Err: fmt.Errorf("worker computation failed: %v", r)}
		}
	}()

	switch req.Type {
	case CalculateAll:
		var history []HistoryPoint
		if req.DaysBack > 0 {
			history = ComputeHistoryForDays(req.Transactions, req.AssetDefinitions, req.DaysBack)
		} else {
			history = ComputeHistory(req.Transactions, req.AssetDefinitions)
		}
		return CalcResponse{Type: ResultAll, History: history}
	default:
		return CalcResponse{Type: ResultError, Err: fmt.Errorf("unknown calculation request type %q", req.Type)}
	}
}

// Calculate submits a request and awaits the response.
func (w *Worker) Calculate(req CalcRequest) ([]HistoryPoint, error) {
	req.reply = make(chan CalcResponse, 1)
	select {
	case w.requests <- req:
	case <-w.done:
		return nil, ErrWorkerClosed
	}
	select {
	case resp := <-req.reply:
		if resp.Type == ResultError {
			return nil, resp.Err
		}
		return resp.History, nil
	case <-w.done:
		// The request was accepted but the worker shut down before serving it.
		return nil, ErrWorkerClosed
	}
}

// Close shuts the worker down. In-flight work completes; later requests
// fail with ErrWorkerClosed. Close must be called at most once.
func (w *Worker) Close() {
	close(w.quit)
	<-w.done
}
