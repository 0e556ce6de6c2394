package historical

import (
	"strings"
	"time"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// BinaryBar is the fixed-width on-disk record. Prices are scaled integers
// (four implied decimal places), timestamps are unix seconds at UTC midnight.
type BinaryBar struct {
	Instrument [24]byte
	Date       int64
	Open       int64
	High       int64
	Low        int64
	Close      int64
	Settle     int64
	PrevSettle int64
	Volume     int64
	TradeStart int64
	TradeEnd   int64
	Level      int64
}

const priceScale = 4

func (b *BinaryBar) ToDailyBar(bar *common.DailyBar) {
	bar.Instrument = strings.TrimRight(string(b.Instrument[:]), "\x00")
	bar.Date = time.Unix(b.Date, 0).UTC()
	bar.Open = fixed.FromInt64(b.Open, priceScale)
	bar.High = fixed.FromInt64(b.High, priceScale)
	bar.Low = fixed.FromInt64(b.Low, priceScale)
	bar.Close = fixed.FromInt64(b.Close, priceScale)
	bar.Settle = fixed.FromInt64(b.Settle, priceScale)
	bar.PrevSettle = fixed.FromInt64(b.PrevSettle, priceScale)
	bar.Volume = fixed.FromInt64(b.Volume, 0)
	bar.TradeStart = time.Unix(b.TradeStart, 0).UTC()
	bar.TradeEnd = time.Unix(b.TradeEnd, 0).UTC()
	bar.Level = fixed.FromInt64(b.Level, priceScale)
}

// LoadAll reads the whole file into a memory store.
func LoadAll(source *Source, store *market.MemoryStore) error {
	count, err := source.EntryCount()
	if err != nil {
		return err
	}

	var binaryBar BinaryBar
	var bar common.DailyBar
	for i := int64(0); i < count; i++ {
		if err := source.Read(i, &binaryBar); err != nil {
			return err
		}
		binaryBar.ToDailyBar(&bar)
		store.Add(bar)
	}
	return nil
}
