package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/solquant/solstice/pkg/common"
)

func TestBusRouter_Post(t *testing.T) {
	r := NewRouter(10)

	err := r.Post(OrderEvent, common.Order{})
	if err != nil {
		t.Errorf("Post failed: %v", err)
	}

	if r.postCount.Load() != 1 {
		t.Errorf("Expected postCount=1, got %d", r.postCount.Load())
	}
}

func TestBusRouter_PostCapacityReached(t *testing.T) {
	r := NewRouter(1)

	err := r.Post(OrderEvent, common.Order{})
	if err != nil {
		t.Errorf("First Post failed: %v", err)
	}

	err = r.Post(OrderEvent, common.Order{})
	if err == nil {
		t.Error("Expected error when capacity reached")
	}

	if r.postFails.Load() != 1 {
		t.Errorf("Expected postFails=1, got %d", r.postFails.Load())
	}
}

func TestBusRouter_Exec(t *testing.T) {
	r := NewRouter(10)

	var orderHandled bool
	r.OnOrder = func(ctx context.Context, ord common.Order) {
		orderHandled = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errChan := r.Exec(ctx)

	if err := r.Post(OrderEvent, common.Order{}); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	cancel()

	err := <-errChan
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if !orderHandled {
		t.Error("Order handler not called")
	}

	if r.dispatchCount.Load() != 1 {
		t.Errorf("Expected dispatchCount=1, got %d", r.dispatchCount.Load())
	}
}

func TestBusRouter_ExecLoop(t *testing.T) {
	r := NewRouter(10)

	var accountHandled bool
	r.OnAccount = func(ctx context.Context, snap common.AccountSnapshot) {
		accountHandled = true
	}

	doOnceCount := 0
	doOnceCb := func() error {
		doOnceCount++
		if doOnceCount > 5 {
			return errors.New("done")
		}
		return nil
	}

	if err := r.Post(AccountEvent, common.AccountSnapshot{}); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	ctx := context.Background()
	errChan := r.ExecLoop(ctx, doOnceCb)

	err := <-errChan
	if err == nil || err.Error() != "done" {
		t.Errorf("Expected done error, got %v", err)
	}

	if !accountHandled {
		t.Error("Account handler not called")
	}

	if doOnceCount != 6 {
		t.Errorf("Expected 6 callback invocations, got %d", doOnceCount)
	}
}

func TestBusRouter_DispatchInvalidPayload(t *testing.T) {
	r := NewRouter(10)
	r.OnOrderFill = func(ctx context.Context, ord common.Order) {}

	doOnce := func() error {
		return errors.New("done")
	}

	if err := r.Post(OrderFillEvent, "not an order"); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	err := <-r.ExecLoop(context.Background(), doOnce)
	if err == nil {
		t.Error("Expected terminal error")
	}

	if r.dispatchFails.Load() != 1 {
		t.Errorf("Expected dispatchFails=1, got %d", r.dispatchFails.Load())
	}
}

func TestBusRouter_EventIdString(t *testing.T) {
	tests := []struct {
		id   EventId
		want string
	}{
		{OrderEvent, "order"},
		{OrderFillEvent, "order-fill"},
		{OrderExpiryEvent, "order-expiry"},
		{OrderRejectionEvent, "order-rejection"},
		{PositionOpenEvent, "position-open"},
		{PositionCloseEvent, "position-close"},
		{AccountEvent, "account"},
	}

	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("EventId(%d).String() = %q; want %q", tt.id, got, tt.want)
		}
	}
}
