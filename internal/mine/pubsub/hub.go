package pubsub

import (
	"context"
	"runtime"
	"sync"

	"github.com/mine-games/mine/internal/logging"
)

const sendBuffer = 64

// NewHub returns an in-memory fan-out Broadcaster. Subscribers receive every
// event published for their room; slow subscribers drop events rather than
// stall the engine.
func NewHub() *Hub {
	return &Hub{
		sndCh: make(chan Event, sendBuffer),
		subs:  map[string][]chan Event{},
	}
}

type Hub struct {
	mtx   sync.RWMutex
	sndCh chan Event
	subs  map[string][]chan Event
	sema  sync.Once
}

func (h *Hub) Run(ctx context.Context) {
	h.sema.Do(func() {
		workers := runtime.NumCPU() / 2
		if workers < 1 {
			workers = 1
		}
		for i := 0; i < workers; i++ {
			go h.worker(ctx)
		}
	})
}

func (h *Hub) worker(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("pubsub.worker")
	for {
		select {
		case event := <-h.sndCh:
			h.deliver(ctx, event)
		case <-ctx.Done():
			logger.Debugf("hub worker stopped")
			return
		}
	}
}

func (h *Hub) deliver(ctx context.Context, event Event) {
	logger := logging.FromContext(ctx).Named("pubsub.deliver")
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	for _, ch := range h.subs[event.Room] {
		select {
		case ch <- event:
		default:
			logger.Warnf("subscriber of room %s is lagging, event %s dropped", event.Room, event.Type)
		}
	}
}

func (h *Hub) Publish(event Event) {
	h.sndCh <- event
}

// Subscribe registers a listener for a room and returns the event channel
// with an unsubscribe func.
func (h *Hub) Subscribe(room string) (<-chan Event, func()) {
	ch := make(chan Event, sendBuffer)

	h.mtx.Lock()
	h.subs[room] = append(h.subs[room], ch)
	h.mtx.Unlock()

	return ch, func() {
		h.mtx.Lock()
		defer h.mtx.Unlock()
		subs := h.subs[room]
		for i, sub := range subs {
			if sub == ch {
				h.subs[room] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}
