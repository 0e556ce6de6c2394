package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

func createTestCounter(t *testing.T) (*Counter, *Ledger, *market.MemoryStore) {
	t.Helper()
	ledger, _, _, store := createTestLedger(t)
	counter := NewCounter(store, ledger, nil)
	return counter, ledger, store
}

func pendingOrder(price fixed.Point) *common.Order {
	return &common.Order{
		State:        common.StateOpen,
		Side:         common.LongFuture,
		Instrument:   "IF2406",
		Price:        price,
		Volume:       5,
		Margin:       fixed.FromInt(500, 0),
		MinOrderDate: day(2024, 3, 1),
		MaxOrderDate: day(2024, 3, 29),
	}
}

func TestCounter_SubmitValidation(t *testing.T) {
	counter, _, _ := createTestCounter(t)

	tests := []struct {
		name    string
		mutate  func(*common.Order)
		wantErr error
	}{
		{"zero volume", func(o *common.Order) { o.Volume = 0 }, ErrInvalidVolume},
		{"negative volume", func(o *common.Order) { o.Volume = -1 }, ErrInvalidVolume},
		{"zero price", func(o *common.Order) { o.Price = fixed.Zero }, ErrInvalidPrice},
		{"window ends before it starts", func(o *common.Order) {
			o.MaxOrderDate = day(2024, 2, 1)
		}, ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ord := pendingOrder(fixed.FromInt(1000, 0))
			tt.mutate(ord)
			_, err := counter.Submit(ord)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 0, counter.PendingCount())
}

func TestCounter_SubmitAssignsSequentialIDs(t *testing.T) {
	counter, _, _ := createTestCounter(t)

	first, err := counter.Submit(pendingOrder(fixed.FromInt(1000, 0)))
	require.NoError(t, err)
	second, err := counter.Submit(pendingOrder(fixed.FromInt(1001, 0)))
	require.NoError(t, err)

	assert.Equal(t, common.OrderID(1), first)
	assert.Equal(t, common.OrderID(2), second)
	assert.Equal(t, 2, counter.PendingCount())
}

func TestCounter_ProcessFillsWithinRange(t *testing.T) {
	counter, ledger, store := createTestCounter(t)
	ctx := context.Background()

	store.Add(common.DailyBar{
		Instrument: "IF2406", Date: day(2024, 3, 4),
		Low: fixed.FromInt(990, 0), High: fixed.FromInt(1010, 0),
		PrevSettle: fixed.FromInt(998, 0),
	})

	_, err := counter.Submit(pendingOrder(fixed.FromInt(1000, 0)))
	require.NoError(t, err)

	counter.Process(ctx, day(2024, 3, 4))

	assert.Equal(t, 0, counter.PendingCount())
	assert.Equal(t, int64(5), ledger.OpenVolume(common.LongFuture, "IF2406"))

	lots := ledger.Lots(common.LongFuture, "IF2406")
	require.Len(t, lots, 1)
	assert.True(t, lots[0].PrevSettle.Eq(fixed.FromInt(998, 0)),
		"futures take the bar's previous settlement")
}

func TestCounter_ProcessLeavesOrderOutsideRange(t *testing.T) {
	counter, ledger, store := createTestCounter(t)
	ctx := context.Background()

	store.Add(common.DailyBar{
		Instrument: "IF2406", Date: day(2024, 3, 4),
		Low: fixed.FromInt(1020, 0), High: fixed.FromInt(1040, 0),
	})

	_, err := counter.Submit(pendingOrder(fixed.FromInt(1000, 0)))
	require.NoError(t, err)

	counter.Process(ctx, day(2024, 3, 4))

	assert.Equal(t, 1, counter.PendingCount())
	assert.Equal(t, int64(0), ledger.OpenVolume(common.LongFuture, "IF2406"))
}

func TestCounter_ProcessSkipsMissingBar(t *testing.T) {
	counter, _, _ := createTestCounter(t)

	_, err := counter.Submit(pendingOrder(fixed.FromInt(1000, 0)))
	require.NoError(t, err)

	counter.Process(context.Background(), day(2024, 3, 4))
	assert.Equal(t, 1, counter.PendingCount())
}

func TestCounter_ProcessExpiresStaleOrders(t *testing.T) {
	counter, _, store := createTestCounter(t)
	ctx := context.Background()

	store.Add(common.DailyBar{
		Instrument: "IF2406", Date: day(2024, 3, 29),
		Low: fixed.FromInt(990, 0), High: fixed.FromInt(1010, 0),
	})

	_, err := counter.Submit(pendingOrder(fixed.FromInt(1000, 0)))
	require.NoError(t, err)

	// The window closes on the max order date, even if the bar would fill.
	counter.Process(ctx, day(2024, 3, 29))
	assert.Equal(t, 0, counter.PendingCount())
}

func TestCounter_ProcessHonorsMinOrderDate(t *testing.T) {
	counter, _, store := createTestCounter(t)
	ctx := context.Background()

	store.Add(common.DailyBar{
		Instrument: "IF2406", Date: day(2024, 2, 28),
		Low: fixed.FromInt(990, 0), High: fixed.FromInt(1010, 0),
	})

	_, err := counter.Submit(pendingOrder(fixed.FromInt(1000, 0)))
	require.NoError(t, err)

	counter.Process(ctx, day(2024, 2, 28))
	assert.Equal(t, 1, counter.PendingCount())
}

func TestCounter_ProcessFillsCloseOrder(t *testing.T) {
	counter, ledger, store := createTestCounter(t)
	ctx := context.Background()

	open := pendingOrder(fixed.FromInt(1000, 0))
	ledger.Open(day(2024, 3, 1), open, fixed.FromInt(1000, 0))

	store.Add(common.DailyBar{
		Instrument: "IF2406", Date: day(2024, 3, 4),
		Low: fixed.FromInt(1040, 0), High: fixed.FromInt(1060, 0),
	})

	closeOrd := &common.Order{
		State:        common.StateClose,
		Side:         common.LongFuture,
		Instrument:   "IF2406",
		Price:        fixed.FromInt(1050, 0),
		Volume:       5,
		MinOrderDate: day(2024, 3, 1),
		MaxOrderDate: day(2024, 3, 29),
	}
	_, err := counter.Submit(closeOrd)
	require.NoError(t, err)

	counter.Process(ctx, day(2024, 3, 4))

	assert.Equal(t, 0, counter.PendingCount())
	assert.Equal(t, int64(0), ledger.OpenVolume(common.LongFuture, "IF2406"))
}

func TestCounter_CloseFillAgainstEmptyBookKeepsCash(t *testing.T) {
	ledger, account, _, store := createTestLedger(t)
	counter := NewCounter(store, ledger, nil)
	ctx := context.Background()

	store.Add(common.DailyBar{
		Instrument: "IF2406", Date: day(2024, 3, 4),
		Low: fixed.FromInt(1040, 0), High: fixed.FromInt(1060, 0),
	})

	closeOrd := &common.Order{
		State:        common.StateClose,
		Side:         common.LongFuture,
		Instrument:   "IF2406",
		Price:        fixed.FromInt(1050, 0),
		Volume:       5,
		Commission:   fixed.FromInt(25, 0),
		MinOrderDate: day(2024, 3, 1),
		MaxOrderDate: day(2024, 3, 29),
	}
	_, err := counter.Submit(closeOrd)
	require.NoError(t, err)

	counter.Process(ctx, day(2024, 3, 4))

	// Nothing was closed, so no commission either.
	assert.Equal(t, 0, counter.PendingCount())
	assert.True(t, account.Cash().Eq(fixed.FromInt(100000, 0)), "cash %s", account.Cash())
}

func TestCounter_RollSettlement(t *testing.T) {
	counter, _, store := createTestCounter(t)
	ctx := context.Background()

	ord := pendingOrder(fixed.FromInt(900, 0))
	ord.Side = common.BuyCall
	ord.PrevSettle = fixed.FromInt(890, 0)
	_, err := counter.Submit(ord)
	require.NoError(t, err)

	store.Add(common.DailyBar{
		Instrument: "IF2406", Date: day(2024, 3, 4),
		Low: fixed.FromInt(1000, 0), High: fixed.FromInt(1020, 0),
		Settle: fixed.FromInt(1015, 0),
	})

	counter.RollSettlement(ctx, day(2024, 3, 4))

	pending := counter.Pending()
	require.Len(t, pending, 1)
	assert.True(t, pending[0].PrevSettle.Eq(fixed.FromInt(1015, 0)),
		"pending orders follow the daily settlement, got %s", pending[0].PrevSettle)
}
