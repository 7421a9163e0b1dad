package client

import (
	"context"
	"sync"
)

// DefaultWatchLimit is the page size used when none is set
const DefaultWatchLimit = 50

// ShipmentsState is one snapshot of the watcher's view of the list.
// While a fetch is in flight Loading is true and the previous page is
// still visible.
type ShipmentsState struct {
	Loading  bool
	Err      error
	Edges    []*Shipment
	PageInfo PageInfo
}

// ShipmentsWatcher keeps a shipment list in sync with changing
// filter/sort/page parameters. Each parameter change starts a new
// fetch; only the most recently started fetch may commit its result,
// stale responses are dropped.
type ShipmentsWatcher struct {
	client   *Client
	onChange func(ShipmentsState)

	mu         sync.Mutex
	params     ShipmentsParams
	state      ShipmentsState
	generation uint64
	cancel     context.CancelFunc
}

// NewShipmentsWatcher creates a watcher. onChange is invoked after
// every state transition (loading started, result committed, fetch
// failed); it may be nil.
func NewShipmentsWatcher(c *Client, params ShipmentsParams, onChange func(ShipmentsState)) *ShipmentsWatcher {
	if params.Limit <= 0 {
		params.Limit = DefaultWatchLimit
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	return &ShipmentsWatcher{
		client:   c,
		params:   params,
		onChange: onChange,
	}
}

// State returns the current snapshot
func (w *ShipmentsWatcher) State() ShipmentsState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Params returns the current list parameters
func (w *ShipmentsWatcher) Params() ShipmentsParams {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.params
}

// SetParams replaces the list parameters and starts a fetch. An
// in-flight fetch for older parameters is cancelled.
func (w *ShipmentsWatcher) SetParams(ctx context.Context, params ShipmentsParams) {
	if params.Limit <= 0 {
		params.Limit = DefaultWatchLimit
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	w.mu.Lock()
	w.params = params
	w.mu.Unlock()

	w.Refetch(ctx)
}

// Refetch re-runs the list with the current parameters
func (w *ShipmentsWatcher) Refetch(ctx context.Context) {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.generation++
	gen := w.generation
	params := w.params
	w.state.Loading = true
	w.state.Err = nil
	snapshot := w.state
	w.mu.Unlock()

	w.notify(snapshot)

	go w.fetch(fetchCtx, gen, params)
}

// Stop cancels any in-flight fetch
func (w *ShipmentsWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()
}

func (w *ShipmentsWatcher) fetch(ctx context.Context, gen uint64, params ShipmentsParams) {
	conn, err := w.client.Shipments(ctx, params)

	w.mu.Lock()
	if gen != w.generation {
		// A newer fetch has started; this result is stale.
		w.mu.Unlock()
		return
	}
	w.state.Loading = false
	if err != nil {
		w.state.Err = err
	} else {
		w.state.Err = nil
		w.state.Edges = conn.Edges
		w.state.PageInfo = conn.PageInfo
	}
	snapshot := w.state
	w.mu.Unlock()

	w.notify(snapshot)
}

func (w *ShipmentsWatcher) notify(state ShipmentsState) {
	if w.onChange != nil {
		w.onChange(state)
	}
}
