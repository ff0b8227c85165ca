package networth

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// InitState is the lifecycle state of the application initializer.
type InitState int

const (
	Uninitialized InitState = iota
	Initializing
	Ready
)

func (s InitState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Initializer is a guarded lazy-init primitive: concurrent callers of
// Ensure share a single in-flight initialization instead of starting
// duplicates, and Reset is an explicit transition back to uninitialized
// (unlike sync.Once, which can never rearm).
type Initializer struct {
	mu    sync.Mutex
	state InitState
	fn    func(context.Context) error
	group singleflight.Group
}

// NewInitializer wraps the given initialization function.
func NewInitializer(fn func(context.Context) error) *Initializer {
	return &Initializer{fn: fn}
}

// State returns the current lifecycle state.
func (i *Initializer) State() InitState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Ensure runs the initialization exactly once per lifecycle. Callers that
// arrive while a run is in flight wait for it and share its outcome. A
// failed run leaves the state uninitialized so a later call can retry.
func (i *Initializer) Ensure(ctx context.Context) error {
	i.mu.Lock()
	if i.state == Ready {
		i.mu.Unlock()
		return nil
	}
	i.state = Initializing
	i.mu.Unlock()

	_, err, _ := i.group.Do("init", func() (any, error) {
		// A caller can reach here just after a previous flight finished
		// and marked the state Ready; don't initialize twice.
		if i.State() == Ready {
			return nil, nil
		}
		return nil, i.fn(ctx)
	})

	i.mu.Lock()
	if err == nil {
		i.state = Ready
	} else if i.state == Initializing {
		i.state = Uninitialized
	}
	i.mu.Unlock()
	return err
}

// Reset transitions back to uninitialized. The next Ensure reinitializes.
func (i *Initializer) Reset() {
	i.mu.Lock()
	i.state = Uninitialized
	i.mu.Unlock()
	i.group.Forget("init")
}
