package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

type event struct {
	id   EventId
	data interface{}
}

// Router is a bounded single-consumer event queue. Post never blocks; Exec
// and ExecLoop dispatch from one goroutine, so handler order matches post
// order and no handler runs concurrently with another.
type Router struct {
	events chan event

	OnOrder          OrderEventHandler
	OnOrderFill      OrderFillEventHandler
	OnOrderExpiry    OrderExpiryEventHandler
	OnOrderRejection OrderRejectionEventHandler
	OnPositionOpen   PositionOpenEventHandler
	OnPositionClose  PositionCloseEventHandler
	OnAccount        AccountEventHandler

	runTime       time.Duration
	postCount     atomic.Uint64
	postFails     atomic.Uint64
	dispatchCount atomic.Uint64
	dispatchFails atomic.Uint64
}

func NewRouter(eventCapacity int) *Router {
	return &Router{
		events: make(chan event, eventCapacity),
	}
}

func (r *Router) Post(id EventId, data interface{}) error {
	select {
	case r.events <- event{id, data}:
		r.postCount.Add(1)
		return nil
	default:
		r.postFails.Add(1)
		return errors.New("event capacity reached")
	}
}

// Exec dispatches queued events until the context is cancelled.
func (r *Router) Exec(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	go func() {
		start := time.Now()
		defer func() {
			r.runTime += time.Since(start)
		}()

		for {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					slog.Warn("dispatch failed", "error", err, "event", ev.id)
				}
			}
		}
	}()

	return done
}

// ExecLoop interleaves event dispatch with doOnceCb, which is invoked
// whenever the queue is drained. The loop ends when the callback returns an
// error or the context is cancelled, so a feeder can drive the whole run by
// returning a terminal error when it is out of data.
func (r *Router) ExecLoop(ctx context.Context, doOnceCb func() error) <-chan error {
	done := make(chan error, 1)

	go func() {
		start := time.Now()
		defer func() {
			r.runTime += time.Since(start)
		}()

		for {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					slog.Warn("dispatch failed", "error", err, "event", ev.id)
				}
			default:
				if err := doOnceCb(); err != nil {
					r.drain(ctx)
					done <- err
					return
				}
			}
		}
	}()

	return done
}

func (r *Router) PrintStatistics() {
	throughput := 0.0
	if r.runTime > 0 {
		throughput = float64(r.postCount.Load()) / r.runTime.Seconds()
	}
	slog.Info("router statistics",
		"run_time", r.runTime,
		"post_count", r.postCount.Load(),
		"post_fails", r.postFails.Load(),
		"dispatch_count", r.dispatchCount.Load(),
		"dispatch_fails", r.dispatchFails.Load(),
		"throughput", throughput)
}

func (r *Router) drain(ctx context.Context) {
	for {
		select {
		case ev := <-r.events:
			r.dispatchCount.Add(1)
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails.Add(1)
				slog.Warn("dispatch failed", "error", err, "event", ev.id)
			}
		default:
			return
		}
	}
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case OrderEvent:
		return dispatchTo(ctx, ev, &r.OnOrder)
	case OrderFillEvent:
		return dispatchTo(ctx, ev, &r.OnOrderFill)
	case OrderExpiryEvent:
		return dispatchTo(ctx, ev, &r.OnOrderExpiry)
	case OrderRejectionEvent:
		return dispatchTo(ctx, ev, &r.OnOrderRejection)
	case PositionOpenEvent:
		return dispatchTo(ctx, ev, &r.OnPositionOpen)
	case PositionCloseEvent:
		return dispatchTo(ctx, ev, &r.OnPositionClose)
	case AccountEvent:
		return dispatchTo(ctx, ev, &r.OnAccount)
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
}

func dispatchTo[H ~func(context.Context, T), T any](ctx context.Context, ev event, handler *H) error {
	data, ok := ev.data.(T)
	if !ok {
		return fmt.Errorf("invalid type assertion for %v event", ev.id)
	}
	if *handler == nil {
		slog.Debug("handler is nil", "event", ev.id)
		return nil
	}
	(*handler)(ctx, data)
	return nil
}
